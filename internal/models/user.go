package models

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// ShippingAddress 收货地址快照结构
type ShippingAddress struct {
	FullName      string `json:"full_name"`
	StreetAddress string `json:"street_address"`
	City          string `json:"city"`
	PostalCode    string `json:"postal_code"`
	Country       string `json:"country"`
}

// IsComplete 判断地址是否填写完整
func (a *ShippingAddress) IsComplete() bool {
	if a == nil {
		return false
	}
	return a.FullName != "" && a.StreetAddress != "" && a.City != "" &&
		a.PostalCode != "" && a.Country != ""
}

// ToJSON 转换为 JSON 字段
func (a *ShippingAddress) ToJSON() (JSON, error) {
	if a == nil {
		return nil, nil
	}
	data, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	var out JSON
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ShippingAddressFromJSON 从 JSON 字段还原地址
func ShippingAddressFromJSON(raw JSON) *ShippingAddress {
	if raw == nil {
		return nil
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return nil
	}
	var addr ShippingAddress
	if err := json.Unmarshal(data, &addr); err != nil {
		return nil
	}
	return &addr
}

// User 用户表
type User struct {
	ID            uint           `gorm:"primarykey" json:"id"`                         // 主键
	Name          string         `gorm:"not null" json:"name"`                         // 昵称
	Email         string         `gorm:"uniqueIndex;not null" json:"email"`            // 邮箱
	PasswordHash  string         `gorm:"not null" json:"-"`                            // 密码哈希（不返回给前端）
	Role          string         `gorm:"not null;default:'user';index" json:"role"`    // 角色（user/admin）
	AddressJSON   JSON           `gorm:"type:json" json:"address,omitempty"`           // 收货地址
	PaymentMethod string         `gorm:"type:varchar(40)" json:"payment_method"`       // 默认支付方式
	LastLoginAt   *time.Time     `json:"last_login_at"`                                // 最后登录时间
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                      // 创建时间
	UpdatedAt     time.Time      `json:"updated_at"`                                   // 更新时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                               // 软删除时间
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

// ShippingAddress 返回收货地址快照（未填写时为 nil）
func (u *User) ShippingAddress() *ShippingAddress {
	if u == nil {
		return nil
	}
	return ShippingAddressFromJSON(u.AddressJSON)
}

// IsAdmin 判断是否为管理员
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == "admin"
}
