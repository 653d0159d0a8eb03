package models

import "time"

// OrderStatusEvent 订单状态事件（仅追加，不更新不删除）
type OrderStatusEvent struct {
	ID        uint      `gorm:"primarykey" json:"id"`           // 主键
	OrderID   uint      `gorm:"index;not null" json:"order_id"` // 订单ID
	Status    string    `gorm:"not null" json:"status"`         // 进入的状态
	Reason    string    `gorm:"type:varchar(200)" json:"reason,omitempty"` // 原因（可选）
	CreatedAt time.Time `gorm:"index" json:"timestamp"`         // 发生时间
}

// TableName 指定表名
func (OrderStatusEvent) TableName() string {
	return "order_status_events"
}
