package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品表
type Product struct {
	ID            uint           `gorm:"primarykey" json:"id"`                                     // 主键
	CategoryID    uint           `gorm:"not null;index" json:"category_id"`                        // 分类ID
	BrandID       uint           `gorm:"index" json:"brand_id"`                                    // 品牌ID
	Slug          string         `gorm:"uniqueIndex;not null" json:"slug"`                         // 唯一标识
	Name          string         `gorm:"not null;index" json:"name"`                               // 商品名称
	Description   string         `gorm:"type:text" json:"description"`                             // 商品描述
	Price         Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`      // 现价
	OriginalPrice Money          `gorm:"type:decimal(20,2);not null;default:0" json:"original_price"` // 原价（划线价）
	Images        StringArray    `gorm:"type:json" json:"images"`                                  // 图片数组
	Tags          StringArray    `gorm:"type:json" json:"tags"`                                    // 标签数组
	Sizes         StringArray    `gorm:"type:json" json:"sizes"`                                   // 可选尺码
	Colors        StringArray    `gorm:"type:json" json:"colors"`                                  // 可选颜色
	Rating        float64        `gorm:"not null;default:0;index" json:"rating"`                   // 平均评分
	ReviewCount   int            `gorm:"not null;default:0" json:"review_count"`                   // 评论数
	Stock         int            `gorm:"not null;default:0" json:"stock"`                          // 库存（购物车行的 max_quantity 来源）
	IsActive      bool           `gorm:"default:true;index" json:"is_active"`                      // 是否上架
	SortOrder     int            `gorm:"default:0;index" json:"sort_order"`                        // 排序权重
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                                  // 创建时间
	UpdatedAt     time.Time      `json:"updated_at"`                                               // 更新时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                                           // 软删除时间

	// 关联
	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"` // 分类信息
	Brand    Brand    `gorm:"foreignKey:BrandID" json:"brand,omitempty"`       // 品牌信息
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}
