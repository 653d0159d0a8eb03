package models

import (
	"time"

	"gorm.io/gorm"
)

// Banner 首页轮播图
type Banner struct {
	ID        uint           `gorm:"primarykey" json:"id"`                    // 主键
	Title     string         `gorm:"type:varchar(200);not null" json:"title"` // 标题
	Subtitle  string         `gorm:"type:varchar(200)" json:"subtitle"`       // 副标题
	Image     string         `gorm:"type:varchar(500);not null" json:"image"` // 主图
	Link      string         `gorm:"type:varchar(1000)" json:"link"`          // 跳转链接
	IsActive  bool           `gorm:"default:true;index" json:"is_active"`     // 是否启用
	SortOrder int            `gorm:"default:0;index" json:"sort_order"`       // 排序
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                 // 创建时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                          // 软删除
}

// TableName 指定表名
func (Banner) TableName() string {
	return "banners"
}
