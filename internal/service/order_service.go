package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/prostore-go/internal/constants"
	"github.com/prostore-go/internal/logger"
	"github.com/prostore-go/internal/models"
	"github.com/prostore-go/internal/repository"

	"gorm.io/gorm"
)

// PlaceOrderResult 下单结果（前置条件不满足以数据形式返回，而非错误）
type PlaceOrderResult struct {
	Success    bool          `json:"success"`
	Message    string        `json:"message"`
	RedirectTo string        `json:"redirect_to"`
	Order      *models.Order `json:"order,omitempty"`
}

// OrderService 订单服务
type OrderService struct {
	orderRepo   repository.OrderRepository
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
}

// NewOrderService 创建订单服务
func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
	}
}

// PlaceOrder 从用户购物车创建订单
// 前置条件逐项检查：购物车非空、收货地址完整、支付方式有效，
// 任一不满足返回带跳转目标的拒绝结果。满足后在单个事务内
// 创建订单、写入行项快照并清空购物车。此处不扣减库存。
func (s *OrderService) PlaceOrder(userID uint) (*PlaceOrderResult, error) {
	if userID == 0 {
		return nil, ErrUnauthenticated
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	cart, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		return &PlaceOrderResult{
			Success:    false,
			Message:    "Your cart is empty",
			RedirectTo: constants.RedirectCart,
		}, nil
	}

	address := user.ShippingAddress()
	if address == nil || !address.IsComplete() {
		return &PlaceOrderResult{
			Success:    false,
			Message:    "No shipping address",
			RedirectTo: constants.RedirectShippingAddress,
		}, nil
	}

	paymentMethod := strings.TrimSpace(user.PaymentMethod)
	if !constants.IsValidPaymentMethod(paymentMethod) {
		return &PlaceOrderResult{
			Success:    false,
			Message:    "No payment method",
			RedirectTo: constants.RedirectPaymentMethod,
		}, nil
	}

	addressJSON, err := address.ToJSON()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	order := &models.Order{
		OrderNo:          generateOrderNo(),
		UserID:           userID,
		ShippingAddrJSON: addressJSON,
		PaymentMethod:    paymentMethod,
		ItemsPrice:       cart.ItemsPrice,
		ShippingPrice:    cart.ShippingPrice,
		TaxPrice:         cart.TaxPrice,
		TotalPrice:       cart.TotalPrice,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	items := make([]models.OrderItem, 0, len(cart.Items))
	for _, line := range cart.Items {
		items = append(items, models.OrderItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Slug:      line.Slug,
			Image:     line.Image,
			Price:     line.Price,
			Qty:       line.Qty,
		})
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.WithTx(tx).Create(order, items); err != nil {
			return err
		}
		return s.cartRepo.WithTx(tx).Clear(cart.ID)
	})
	if err != nil {
		logger.Errorw("order_create_tx_failed", "user_id", userID, "error", err)
		return nil, ErrOrderCreateFailed
	}

	return &PlaceOrderResult{
		Success:    true,
		Message:    "Order created",
		RedirectTo: fmt.Sprintf(constants.RedirectOrderDetail, order.ID),
		Order:      order,
	}, nil
}

// GetOrder 获取订单详情（本人或管理员可见）
func (s *OrderService) GetOrder(orderID uint, userID uint, isAdmin bool) (*models.Order, error) {
	if orderID == 0 {
		return nil, ErrInvalidParams
	}
	var (
		order *models.Order
		err   error
	)
	if isAdmin {
		order, err = s.orderRepo.GetByID(orderID)
	} else {
		order, err = s.orderRepo.GetByIDAndUser(orderID, userID)
	}
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListUserOrders 用户订单列表
func (s *OrderService) ListUserOrders(userID uint, page, pageSize int) ([]models.Order, int64, error) {
	if userID == 0 {
		return nil, 0, ErrUnauthenticated
	}
	return s.orderRepo.ListByUser(repository.OrderListFilter{
		Page:     page,
		PageSize: normalizePageSize(pageSize),
		UserID:   userID,
	})
}

// ListAdminOrders 管理端订单列表
func (s *OrderService) ListAdminOrders(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	filter.PageSize = normalizePageSize(filter.PageSize)
	return s.orderRepo.ListAdmin(filter)
}

// DeleteOrder 删除未支付订单（管理端）
func (s *OrderService) DeleteOrder(orderID uint) error {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return ErrOrderNotFound
	}
	if order.IsPaid {
		return ErrOrderPaidUndeletable
	}
	return s.orderRepo.Delete(orderID)
}

func normalizePageSize(pageSize int) int {
	if pageSize <= 0 {
		return constants.DefaultPageSize
	}
	if pageSize > constants.MaxPageSize {
		return constants.MaxPageSize
	}
	return pageSize
}

func generateOrderNo() string {
	now := time.Now().Format("20060102150405")
	return fmt.Sprintf("PS%s%s", now, randNumeric(6))
}

func randNumeric(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteString("0")
			continue
		}
		b.WriteString(fmt.Sprintf("%d", n.Int64()))
	}
	return b.String()
}
