package repository

import (
	"errors"

	"github.com/prostore-go/internal/models"

	"gorm.io/gorm"
)

// CartRepository 购物车数据访问接口
// 购物车归属二选一：登录用户按 user_id，匿名会话按 session_cart_id。
type CartRepository interface {
	GetByUser(userID uint) (*models.Cart, error)
	GetBySessionCartID(sessionCartID string) (*models.Cart, error)
	Create(cart *models.Cart) error
	Save(cart *models.Cart) error
	Clear(cartID uint) error
	AttachUser(cartID uint, userID uint) error
	Delete(cartID uint) error
	WithTx(tx *gorm.DB) CartRepository
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartRepository) WithTx(tx *gorm.DB) CartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// GetByUser 获取用户购物车
func (r *GormCartRepository) GetByUser(userID uint) (*models.Cart, error) {
	if userID == 0 {
		return nil, nil
	}
	var cart models.Cart
	if err := r.db.Where("user_id = ?", userID).Order("updated_at DESC").First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

// GetBySessionCartID 获取匿名会话购物车
func (r *GormCartRepository) GetBySessionCartID(sessionCartID string) (*models.Cart, error) {
	if sessionCartID == "" {
		return nil, nil
	}
	var cart models.Cart
	if err := r.db.Where("session_cart_id = ? AND user_id = 0", sessionCartID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

// Create 创建购物车
func (r *GormCartRepository) Create(cart *models.Cart) error {
	return r.db.Create(cart).Error
}

// Save 保存购物车（行项目与价格明细整体覆盖）
func (r *GormCartRepository) Save(cart *models.Cart) error {
	return r.db.Save(cart).Error
}

// Clear 清空购物车行项目并归零价格，保留购物车行本身。
func (r *GormCartRepository) Clear(cartID uint) error {
	if cartID == 0 {
		return nil
	}
	return r.db.Model(&models.Cart{}).Where("id = ?", cartID).Updates(map[string]interface{}{
		"items":          models.CartLineItems{},
		"items_price":    models.ZeroMoney(),
		"shipping_price": models.ZeroMoney(),
		"tax_price":      models.ZeroMoney(),
		"total_price":    models.ZeroMoney(),
	}).Error
}

// AttachUser 将匿名购物车归属到用户
func (r *GormCartRepository) AttachUser(cartID uint, userID uint) error {
	if cartID == 0 || userID == 0 {
		return errors.New("invalid cart attach params")
	}
	return r.db.Model(&models.Cart{}).Where("id = ?", cartID).Update("user_id", userID).Error
}

// Delete 删除购物车
func (r *GormCartRepository) Delete(cartID uint) error {
	if cartID == 0 {
		return nil
	}
	return r.db.Delete(&models.Cart{}, cartID).Error
}
