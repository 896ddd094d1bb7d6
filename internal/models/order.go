package models

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// PaymentResult 规整化的支付结果
// 每个订单最多写入两次：创建远端支付对象时写占位，结算校验通过时写终值。
type PaymentResult struct {
	ProviderRef string `json:"provider_ref"`
	Status      string `json:"status"`
	PayerEmail  string `json:"payer_email"`
	PricePaid   string `json:"price_paid"`
}

// ToJSON 转换为 JSON 字段
func (r *PaymentResult) ToJSON() (JSON, error) {
	if r == nil {
		return nil, nil
	}
	data, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	var out JSON
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PaymentResultFromJSON 从 JSON 字段还原支付结果
func PaymentResultFromJSON(raw JSON) *PaymentResult {
	if raw == nil {
		return nil
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return nil
	}
	var result PaymentResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil
	}
	return &result
}

// Order 订单表
// is_paid 单调：一旦置 true 不再回退；paid_at 与 is_paid 在同一事务写入。
type Order struct {
	ID                uint           `gorm:"primarykey" json:"id"`                                         // 主键
	OrderNo           string         `gorm:"uniqueIndex;not null" json:"order_no"`                         // 订单编号
	UserID            uint           `gorm:"index;not null" json:"user_id"`                                // 用户ID
	ShippingAddrJSON  JSON           `gorm:"type:json;not null" json:"shipping_address"`                   // 收货地址快照
	PaymentMethod     string         `gorm:"not null;index" json:"payment_method"`                         // 支付方式
	ItemsPrice        Money          `gorm:"type:decimal(20,2);not null;default:0" json:"items_price"`     // 商品金额快照
	ShippingPrice     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"shipping_price"`  // 运费快照
	TaxPrice          Money          `gorm:"type:decimal(20,2);not null;default:0" json:"tax_price"`       // 税费快照
	TotalPrice        Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_price"`     // 合计快照
	IsPaid            bool           `gorm:"not null;default:false;index" json:"is_paid"`                  // 是否已支付
	PaidAt            *time.Time     `gorm:"index" json:"paid_at"`                                         // 支付时间
	IsDelivered       bool           `gorm:"not null;default:false;index" json:"is_delivered"`             // 是否已发货
	DeliveredAt       *time.Time     `gorm:"index" json:"delivered_at"`                                    // 发货时间
	PaymentResultJSON JSON           `gorm:"type:json" json:"payment_result,omitempty"`                    // 支付结果
	CreatedAt         time.Time      `gorm:"index" json:"created_at"`                                      // 创建时间
	UpdatedAt         time.Time      `json:"updated_at"`                                                   // 更新时间
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`                                               // 软删除时间

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"` // 订单项
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}

// ShippingAddress 返回地址快照
func (o *Order) ShippingAddress() *ShippingAddress {
	if o == nil {
		return nil
	}
	return ShippingAddressFromJSON(o.ShippingAddrJSON)
}

// PaymentResult 返回支付结果（未支付时可能为 nil）
func (o *Order) PaymentResult() *PaymentResult {
	if o == nil {
		return nil
	}
	return PaymentResultFromJSON(o.PaymentResultJSON)
}
