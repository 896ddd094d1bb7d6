package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderItem 订单项表
// 下单时从购物车行项快照而来，创建后不可变：
// 商品后续改价、改名不影响历史订单。
type OrderItem struct {
	ID        uint           `gorm:"primarykey" json:"id"`                                 // 主键
	OrderID   uint           `gorm:"index;not null;uniqueIndex:idx_order_product" json:"order_id"`   // 订单ID
	ProductID uint           `gorm:"index;not null;uniqueIndex:idx_order_product" json:"product_id"` // 商品ID
	Name      string         `gorm:"not null" json:"name"`                                 // 名称快照
	Slug      string         `gorm:"not null" json:"slug"`                                 // Slug 快照
	Image     string         `json:"image"`                                                // 图片快照
	Price     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`   // 单价快照
	Qty       int            `gorm:"not null" json:"qty"`                                  // 数量
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                              // 创建时间
	UpdatedAt time.Time      `json:"updated_at"`                                           // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                                       // 软删除时间
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}
