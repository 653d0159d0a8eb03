package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表
// 订单由下单时的购物车快照创建，行项与金额创建后不可变；
// 状态变化仅通过追加 OrderStatusEvent 并同步 Status 字段完成。
type Order struct {
	ID              uint           `gorm:"primarykey" json:"id"`                                        // 主键
	OrderNo         string         `gorm:"uniqueIndex;not null" json:"order_no"`                        // 订单编号
	UserID          uint           `gorm:"index;not null" json:"user_id"`                               // 用户ID
	Status          string         `gorm:"index;not null" json:"status"`                                // 当前状态
	Subtotal        Money          `gorm:"type:decimal(20,2);not null;default:0" json:"subtotal"`       // 行项小计
	DiscountCode    string         `gorm:"type:varchar(40)" json:"discount_code"`                       // 折扣码快照
	DiscountAmount  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"discount_amount"` // 折扣金额
	ShippingCost    Money          `gorm:"type:decimal(20,2);not null;default:0" json:"shipping_cost"`  // 运费
	Tax             Money          `gorm:"type:decimal(20,2);not null;default:0" json:"tax"`            // 税额
	TotalAmount     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"`   // 应付总额
	ShippingAddress JSON           `gorm:"type:json;not null" json:"shipping_address"`                  // 收货地址快照
	BillingAddress  JSON           `gorm:"type:json;not null" json:"billing_address"`                   // 账单地址快照
	PaymentMethod   string         `gorm:"type:varchar(20);not null" json:"payment_method"`             // 支付方式
	PaymentLast4    string         `gorm:"type:varchar(4)" json:"payment_last4"`                        // 卡号后四位（不存储完整卡数据）
	Notes           string         `gorm:"type:text" json:"notes"`                                      // 备注
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`                                     // 创建时间
	UpdatedAt       time.Time      `gorm:"index" json:"updated_at"`                                     // 更新时间
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                                              // 软删除时间

	Items        []OrderItem        `gorm:"foreignKey:OrderID" json:"items,omitempty"`          // 订单项
	StatusEvents []OrderStatusEvent `gorm:"foreignKey:OrderID" json:"status_history,omitempty"` // 状态历史（仅追加）
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
