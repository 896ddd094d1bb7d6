package models

import (
	"time"

	"gorm.io/gorm"
)

// Review 商品评价表
// 每个用户对同一商品只保留一条评价，重复提交走更新。
type Review struct {
	ID          uint           `gorm:"primarykey" json:"id"`                                      // 主键
	ProductID   uint           `gorm:"not null;uniqueIndex:idx_reviews_product_user" json:"product_id"` // 商品ID
	UserID      uint           `gorm:"not null;uniqueIndex:idx_reviews_product_user" json:"user_id"`    // 用户ID
	UserName    string         `gorm:"not null" json:"user_name"`                                 // 用户名快照
	Title       string         `gorm:"not null" json:"title"`                                     // 标题
	Description string         `gorm:"type:text;not null" json:"description"`                     // 内容
	Rating      int            `gorm:"not null" json:"rating"`                                    // 评分 1-5
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                                                // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                            // 软删除时间
}

// TableName 指定表名
func (Review) TableName() string {
	return "reviews"
}
