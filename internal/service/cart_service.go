package service

import (
	"strings"

	"github.com/prostore-go/internal/models"
	"github.com/prostore-go/internal/pricing"
	"github.com/prostore-go/internal/repository"
)

// CartIdentity 购物车归属标识：登录用户优先，其次匿名会话。
type CartIdentity struct {
	UserID        uint
	SessionCartID string
}

func (i CartIdentity) valid() bool {
	return i.UserID != 0 || strings.TrimSpace(i.SessionCartID) != ""
}

// CartService 购物车服务
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// GetCart 获取当前购物车，不存在时返回 nil。
func (s *CartService) GetCart(identity CartIdentity) (*models.Cart, error) {
	if !identity.valid() {
		return nil, ErrInvalidParams
	}
	if identity.UserID != 0 {
		cart, err := s.cartRepo.GetByUser(identity.UserID)
		if err != nil {
			return nil, err
		}
		if cart != nil {
			return cart, nil
		}
	}
	if sessionCartID := strings.TrimSpace(identity.SessionCartID); sessionCartID != "" {
		return s.cartRepo.GetBySessionCartID(sessionCartID)
	}
	return nil, nil
}

// AddItem 添加商品到购物车（已有行项则数量累加），返回面向用户的提示语。
// 库存校验为咨询性检查，最终扣减发生在支付落账时。
func (s *CartService) AddItem(identity CartIdentity, productID uint, qty int) (*models.Cart, string, error) {
	if !identity.valid() || productID == 0 {
		return nil, "", ErrInvalidParams
	}
	if qty <= 0 {
		qty = 1
	}

	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, "", err
	}
	if product == nil {
		return nil, "", ErrProductNotFound
	}

	cart, err := s.GetCart(identity)
	if err != nil {
		return nil, "", err
	}

	isNew := cart == nil
	if isNew {
		cart = &models.Cart{
			UserID:        identity.UserID,
			SessionCartID: strings.TrimSpace(identity.SessionCartID),
			Items:         models.CartLineItems{},
		}
	}

	existingQty := 0
	if line := cart.Items.Find(productID); line != nil {
		existingQty = line.Qty
	}
	if product.Stock < existingQty+qty {
		return nil, "", ErrStockInsufficient
	}

	message := product.Name + " added to cart"
	if line := cart.Items.Find(productID); line != nil {
		line.Qty += qty
		message = product.Name + " updated in cart"
	} else {
		cart.Items = append(cart.Items, models.CartLineItem{
			ProductID: product.ID,
			Name:      product.Name,
			Slug:      product.Slug,
			Price:     product.Price,
			Qty:       qty,
			Image:     product.FirstImage(),
		})
	}

	s.applyPricing(cart)

	if isNew {
		if err := s.cartRepo.Create(cart); err != nil {
			return nil, "", err
		}
		return cart, message, nil
	}
	if err := s.cartRepo.Save(cart); err != nil {
		return nil, "", err
	}
	return cart, message, nil
}

// RemoveItem 从购物车减少一件商品，数量归零时移除行项，返回面向用户的提示语。
func (s *CartService) RemoveItem(identity CartIdentity, productID uint) (*models.Cart, string, error) {
	if !identity.valid() || productID == 0 {
		return nil, "", ErrInvalidParams
	}

	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, "", err
	}
	if product == nil {
		return nil, "", ErrProductNotFound
	}

	cart, err := s.GetCart(identity)
	if err != nil {
		return nil, "", err
	}
	if cart == nil {
		return nil, "", ErrCartNotFound
	}

	line := cart.Items.Find(productID)
	if line == nil {
		return nil, "", ErrCartItemNotFound
	}

	message := product.Name + " updated in cart"
	if line.Qty <= 1 {
		message = product.Name + " removed from cart"
		remaining := make(models.CartLineItems, 0, len(cart.Items)-1)
		for _, item := range cart.Items {
			if item.ProductID != productID {
				remaining = append(remaining, item)
			}
		}
		cart.Items = remaining
	} else {
		line.Qty--
	}

	s.applyPricing(cart)

	if err := s.cartRepo.Save(cart); err != nil {
		return nil, "", err
	}
	return cart, message, nil
}

// AttachUser 登录时将匿名会话购物车归属到用户。
// 用户已有购物车时保留用户购物车，不做行项合并。
func (s *CartService) AttachUser(sessionCartID string, userID uint) error {
	sessionCartID = strings.TrimSpace(sessionCartID)
	if sessionCartID == "" || userID == 0 {
		return nil
	}

	sessionCart, err := s.cartRepo.GetBySessionCartID(sessionCartID)
	if err != nil {
		return err
	}
	if sessionCart == nil {
		return nil
	}

	userCart, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return err
	}
	if userCart != nil {
		return nil
	}

	return s.cartRepo.AttachUser(sessionCart.ID, userID)
}

func (s *CartService) applyPricing(cart *models.Cart) {
	breakdown := pricing.Compute(cart.Items)
	cart.ItemsPrice = breakdown.ItemsPrice
	cart.ShippingPrice = breakdown.ShippingPrice
	cart.TaxPrice = breakdown.TaxPrice
	cart.TotalPrice = breakdown.TotalPrice
}
