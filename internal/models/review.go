package models

import (
	"time"

	"gorm.io/gorm"
)

// Review 商品评论表
type Review struct {
	ID        uint           `gorm:"primarykey" json:"id"`             // 主键
	ProductID uint           `gorm:"index;not null" json:"product_id"` // 商品ID
	UserID    uint           `gorm:"index;not null" json:"user_id"`    // 用户ID
	UserName  string         `gorm:"not null" json:"user_name"`        // 用户名快照
	Rating    int            `gorm:"not null" json:"rating"`           // 评分（1-5）
	Title     string         `gorm:"type:varchar(200)" json:"title"`   // 标题
	Comment   string         `gorm:"type:text" json:"comment"`         // 内容
	Helpful   int            `gorm:"not null;default:0" json:"helpful"` // 点赞数
	CreatedAt time.Time      `gorm:"index" json:"created_at"`          // 创建时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                   // 软删除时间
}

// TableName 指定表名
func (Review) TableName() string {
	return "reviews"
}
