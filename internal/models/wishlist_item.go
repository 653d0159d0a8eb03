package models

import (
	"time"
)

// WishlistItem 心愿单项
// 与购物车完全独立；(user_id, product_id) 唯一。
// 移出即物理删除，重新加入时同键可再次插入。
type WishlistItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                             // 主键
	UserID    uint      `gorm:"not null;uniqueIndex:idx_wishlist_user_product" json:"user_id"`    // 用户ID
	ProductID uint      `gorm:"not null;uniqueIndex:idx_wishlist_user_product" json:"product_id"` // 商品ID
	Name      string    `gorm:"not null" json:"name"`                                             // 商品名称快照
	UnitPrice Money     `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"`          // 单价快照
	Image     string    `gorm:"type:varchar(500)" json:"image"`                                   // 图片快照
	AddedAt   time.Time `gorm:"index;not null" json:"added_at"`                                   // 加入时间
}

// TableName 指定表名
func (WishlistItem) TableName() string {
	return "wishlist_items"
}
