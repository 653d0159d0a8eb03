package models

import (
	"fmt"
	"time"
)

// CartItem 购物车行项
// 唯一键为 (cart_id, product_id, size, color)：同商品不同规格并存为两行。
// 行项随整车快照覆盖重写，删除为物理删除，不做软删除。
type CartItem struct {
	ID          uint      `gorm:"primarykey" json:"id"`                                            // 主键
	CartID      uint      `gorm:"not null;uniqueIndex:idx_cart_line_variant" json:"cart_id"`       // 购物车ID
	ProductID   uint      `gorm:"not null;uniqueIndex:idx_cart_line_variant" json:"product_id"`    // 商品ID
	Size        string    `gorm:"type:varchar(40);uniqueIndex:idx_cart_line_variant" json:"size"`  // 规格：尺码
	Color       string    `gorm:"type:varchar(40);uniqueIndex:idx_cart_line_variant" json:"color"` // 规格：颜色
	Name        string    `gorm:"not null" json:"name"`                                            // 商品名称快照
	Image       string    `gorm:"type:varchar(500)" json:"image"`                                  // 图片快照
	UnitPrice   Money     `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"`         // 单价快照
	Quantity    int       `gorm:"not null" json:"quantity"`                                        // 数量（恒 >= 1，归零即删行）
	MaxQuantity int       `gorm:"not null;default:0" json:"max_quantity"`                          // 数量上限（加车时的库存快照，0 表示不限制）
	CreatedAt   time.Time `gorm:"index" json:"created_at"`                                         // 创建时间
	UpdatedAt   time.Time `gorm:"index" json:"updated_at"`                                         // 更新时间
}

// TableName 指定表名
func (CartItem) TableName() string {
	return "cart_items"
}

// VariantKey 规格合并键
func (i CartItem) VariantKey() string {
	return fmt.Sprintf("%d|%s|%s", i.ProductID, i.Size, i.Color)
}
