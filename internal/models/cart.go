package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

// CartLineItem 购物车行项（按 product_id 唯一）
type CartLineItem struct {
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	Price     Money  `json:"price"`
	Qty       int    `json:"qty"`
	Image     string `json:"image"`
}

// CartLineItems 行项集合 JSON 字段类型
type CartLineItems []CartLineItem

// Value 用于数据库写入
func (items CartLineItems) Value() (driver.Value, error) {
	if items == nil {
		return "[]", nil
	}
	return json.Marshal(items)
}

// Scan 用于数据库读取
func (items *CartLineItems) Scan(value interface{}) error {
	if value == nil {
		*items = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("unsupported cart items column type")
	}
	if len(data) == 0 {
		*items = nil
		return nil
	}
	return json.Unmarshal(data, items)
}

// Find 按商品查找行项
func (items CartLineItems) Find(productID uint) *CartLineItem {
	for i := range items {
		if items[i].ProductID == productID {
			return &items[i]
		}
	}
	return nil
}

// Cart 购物车表
// 归属：登录用户（user_id）或匿名会话（session_cart_id），用户优先。
// 下单成功后清空（items 置空、金额归零），不删除。
type Cart struct {
	ID            uint           `gorm:"primarykey" json:"id"`                                         // 主键
	UserID        uint           `gorm:"index" json:"user_id"`                                         // 用户ID（匿名为 0）
	SessionCartID string         `gorm:"index;not null" json:"session_cart_id"`                        // 会话购物车ID
	Items         CartLineItems  `gorm:"type:json" json:"items"`                                       // 行项集合
	ItemsPrice    Money          `gorm:"type:decimal(20,2);not null;default:0" json:"items_price"`     // 商品金额
	ShippingPrice Money          `gorm:"type:decimal(20,2);not null;default:0" json:"shipping_price"`  // 运费
	TaxPrice      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"tax_price"`       // 税费
	TotalPrice    Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_price"`     // 合计
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                                      // 创建时间
	UpdatedAt     time.Time      `json:"updated_at"`                                                   // 更新时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                                               // 软删除时间
}

// TableName 指定表名
func (Cart) TableName() string {
	return "carts"
}

// IsEmpty 判断购物车是否为空
func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Items) == 0
}
