package models

import (
	"time"

	"gorm.io/gorm"
)

// Cart 购物车聚合
// 行项与折扣之外的合计金额均为派生视图，不落库；
// Version 为单调递增的快照版本，用于检测并发写入冲突。
type Cart struct {
	ID                  uint           `gorm:"primarykey" json:"id"`                                  // 主键
	UserID              uint           `gorm:"uniqueIndex;not null" json:"user_id"`                   // 用户ID（一人一车）
	DiscountCode        string         `gorm:"type:varchar(40)" json:"discount_code"`                 // 已应用的折扣码
	DiscountKind        string         `gorm:"type:varchar(20)" json:"discount_kind"`                 // 折扣类型
	DiscountAmount      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"discount_amount"` // 折扣绝对金额（应用时计算）
	DiscountDescription string         `gorm:"type:varchar(200)" json:"discount_description"`         // 折扣描述
	Version             int64          `gorm:"not null;default:0" json:"version"`                     // 快照版本
	CreatedAt           time.Time      `gorm:"index" json:"created_at"`                               // 创建时间
	UpdatedAt           time.Time      `gorm:"index" json:"updated_at"`                               // 更新时间
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`                                        // 软删除时间

	Items []CartItem `gorm:"foreignKey:CartID" json:"items,omitempty"` // 行项
}

// TableName 指定表名
func (Cart) TableName() string {
	return "carts"
}

// HasDiscount 是否有已应用折扣
func (c *Cart) HasDiscount() bool {
	return c != nil && c.DiscountCode != ""
}
