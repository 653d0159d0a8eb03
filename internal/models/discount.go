package models

import (
	"time"

	"gorm.io/gorm"
)

// Discount 折扣码注册表
// 静态只读表；Value 的含义随 Kind 变化：percentage 为百分比、fixed 为金额、
// free_shipping 忽略 Value。
type Discount struct {
	ID          uint           `gorm:"primarykey" json:"id"`                       // 主键
	Code        string         `gorm:"uniqueIndex;not null" json:"code"`           // 折扣码
	Kind        string         `gorm:"not null" json:"kind"`                       // 类型（percentage/fixed/free_shipping）
	Value       Money          `gorm:"type:decimal(20,2);not null" json:"value"`   // 数值
	Description string         `gorm:"type:varchar(200)" json:"description"`       // 描述
	IsActive    bool           `gorm:"not null;default:true" json:"is_active"`     // 是否启用
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                    // 创建时间
	UpdatedAt   time.Time      `gorm:"index" json:"updated_at"`                    // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                             // 软删除时间
}

// TableName 指定表名
func (Discount) TableName() string {
	return "discounts"
}
