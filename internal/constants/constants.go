package constants

// 订单状态常量
const (
	OrderStatusPending    = "pending"
	OrderStatusConfirmed  = "confirmed"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
	OrderStatusReturned   = "returned"
)

// 折扣类型常量
const (
	DiscountKindPercentage   = "percentage"
	DiscountKindFixed        = "fixed"
	DiscountKindFreeShipping = "free_shipping"
)

// 支付方式常量（仅记录方式与卡号后四位，不落任何卡数据）
const (
	PaymentMethodCard   = "card"
	PaymentMethodPaypal = "paypal"
	PaymentMethodCOD    = "cod"
)

// 商品排序字段常量
const (
	ProductSortName      = "name"
	ProductSortPrice     = "price"
	ProductSortRating    = "rating"
	ProductSortCreatedAt = "created_at"

	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"
)

// 队列与任务常量
const (
	QueueDefault = "default"

	TaskOrderStatusNotify = "order:status_notify"
	TaskOrderAutoConfirm  = "order:auto_confirm"
)

// 验证码常量
const (
	CaptchaSceneLogin = "login"

	CaptchaProviderNone  = "none"
	CaptchaProviderImage = "image"
)
