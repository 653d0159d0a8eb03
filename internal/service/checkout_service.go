package service

import (
	"regexp"
	"strings"

	"github.com/marketnest/internal/constants"
	"github.com/marketnest/internal/logger"
	"github.com/marketnest/internal/models"
	"github.com/marketnest/internal/repository"

	"github.com/shopspring/decimal"
)

// CheckoutService 结算编排。
// 下单分两步：先落库订单，成功后清空购物车。
// 订单创建失败时购物车保持原样；清车失败不回滚订单，
// 清车操作幂等，可重试。
type CheckoutService struct {
	cartService  *CartService
	orderService *OrderService
	cartRepo     repository.CartRepository
}

// NewCheckoutService 创建结算服务
func NewCheckoutService(cartService *CartService, orderService *OrderService, cartRepo repository.CartRepository) *CheckoutService {
	return &CheckoutService{
		cartService:  cartService,
		orderService: orderService,
		cartRepo:     cartRepo,
	}
}

// CheckoutInput 结算表单。
// 账单地址默认与收货地址一致，billing_same_as_shipping 为 false 时
// 需单独填写账单四项。
type CheckoutInput struct {
	Name                  string `json:"name"`
	Email                 string `json:"email"`
	Phone                 string `json:"phone"`
	Street                string `json:"street"`
	City                  string `json:"city"`
	State                 string `json:"state"`
	ZipCode               string `json:"zip_code"`
	BillingSameAsShipping bool   `json:"billing_same_as_shipping"`
	BillingStreet         string `json:"billing_street"`
	BillingCity           string `json:"billing_city"`
	BillingState          string `json:"billing_state"`
	BillingZipCode        string `json:"billing_zip_code"`
	PaymentMethod         string `json:"payment_method"`
	CardNumber            string `json:"card_number"`
	Notes                 string `json:"notes"`
}

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	zipPattern   = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
	digitPattern = regexp.MustCompile(`^\d+$`)
)

func validPaymentMethod(method string) bool {
	switch strings.ToLower(strings.TrimSpace(method)) {
	case constants.PaymentMethodCard, constants.PaymentMethodPaypal, constants.PaymentMethodCOD:
		return true
	}
	return false
}

// Validate 校验结算表单，逐字段返回错误信息
func (input CheckoutInput) Validate() error {
	fields := map[string]string{}

	if strings.TrimSpace(input.Name) == "" {
		fields["name"] = "required"
	}
	email := strings.TrimSpace(input.Email)
	if email == "" {
		fields["email"] = "required"
	} else if !emailPattern.MatchString(email) {
		fields["email"] = "invalid email"
	}
	if strings.TrimSpace(input.Phone) == "" {
		fields["phone"] = "required"
	}
	if strings.TrimSpace(input.Street) == "" {
		fields["street"] = "required"
	}
	if strings.TrimSpace(input.City) == "" {
		fields["city"] = "required"
	}
	if strings.TrimSpace(input.State) == "" {
		fields["state"] = "required"
	}
	zip := strings.TrimSpace(input.ZipCode)
	if zip == "" {
		fields["zip_code"] = "required"
	} else if !zipPattern.MatchString(zip) {
		fields["zip_code"] = "invalid zip code"
	}
	if !input.BillingSameAsShipping {
		if strings.TrimSpace(input.BillingStreet) == "" {
			fields["billing_street"] = "required"
		}
		if strings.TrimSpace(input.BillingCity) == "" {
			fields["billing_city"] = "required"
		}
		if strings.TrimSpace(input.BillingState) == "" {
			fields["billing_state"] = "required"
		}
		billingZip := strings.TrimSpace(input.BillingZipCode)
		if billingZip == "" {
			fields["billing_zip_code"] = "required"
		} else if !zipPattern.MatchString(billingZip) {
			fields["billing_zip_code"] = "invalid zip code"
		}
	}
	if !validPaymentMethod(input.PaymentMethod) {
		fields["payment_method"] = "unknown payment method"
	}
	if strings.ToLower(strings.TrimSpace(input.PaymentMethod)) == constants.PaymentMethodCard {
		card := strings.ReplaceAll(strings.TrimSpace(input.CardNumber), " ", "")
		if card == "" {
			fields["card_number"] = "required"
		} else if len(card) < 13 || len(card) > 19 || !digitPattern.MatchString(card) {
			fields["card_number"] = "invalid card number"
		}
	}

	if len(fields) > 0 {
		return NewValidationError(fields)
	}
	return nil
}

// billingAddress 生成账单地址快照；与收货地址一致时直接复用收货四项
func (input CheckoutInput) billingAddress() models.JSON {
	if input.BillingSameAsShipping {
		return models.JSON{
			"street":   strings.TrimSpace(input.Street),
			"city":     strings.TrimSpace(input.City),
			"state":    strings.TrimSpace(input.State),
			"zip_code": strings.TrimSpace(input.ZipCode),
		}
	}
	return models.JSON{
		"street":   strings.TrimSpace(input.BillingStreet),
		"city":     strings.TrimSpace(input.BillingCity),
		"state":    strings.TrimSpace(input.BillingState),
		"zip_code": strings.TrimSpace(input.BillingZipCode),
	}
}

// cardLast4 只保留卡号末四位，完整卡号不落库
func cardLast4(cardNumber string) string {
	card := strings.ReplaceAll(strings.TrimSpace(cardNumber), " ", "")
	if len(card) < 4 {
		return ""
	}
	return card[len(card)-4:]
}

// Preview 结算预览：返回当前购物车的金额明细，不生单不清车。
// 购物车为空返回 ErrCartEmpty。
func (s *CheckoutService) Preview(userID uint) (*CartView, error) {
	view, err := s.cartService.Get(userID)
	if err != nil {
		return nil, err
	}
	if len(view.Cart.Items) == 0 {
		return nil, ErrCartEmpty
	}
	return view, nil
}

// PlaceOrder 提交结算：按购物车当前快照生成订单。
// 购物车为空返回 ErrCartEmpty。
func (s *CheckoutService) PlaceOrder(userID uint, input CheckoutInput) (*models.Order, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	view, err := s.cartService.Get(userID)
	if err != nil {
		return nil, err
	}
	cart := view.Cart
	if len(cart.Items) == 0 {
		return nil, ErrCartEmpty
	}
	totals := view.Totals

	order := &models.Order{
		UserID:         userID,
		Subtotal:       totals.Subtotal,
		DiscountCode:   cart.DiscountCode,
		DiscountAmount: totals.DiscountAmount,
		ShippingCost:   totals.ShippingCost,
		Tax:            totals.Tax,
		TotalAmount:    totals.Total,
		ShippingAddress: models.JSON{
			"name":     strings.TrimSpace(input.Name),
			"email":    strings.ToLower(strings.TrimSpace(input.Email)),
			"phone":    strings.TrimSpace(input.Phone),
			"street":   strings.TrimSpace(input.Street),
			"city":     strings.TrimSpace(input.City),
			"state":    strings.TrimSpace(input.State),
			"zip_code": strings.TrimSpace(input.ZipCode),
		},
		BillingAddress: input.billingAddress(),
		PaymentMethod:  strings.ToLower(strings.TrimSpace(input.PaymentMethod)),
		PaymentLast4:   cardLast4(input.CardNumber),
		Notes:          strings.TrimSpace(input.Notes),
	}
	for _, item := range cart.Items {
		order.Items = append(order.Items, models.OrderItem{
			ProductID:  item.ProductID,
			Name:       item.Name,
			Size:       item.Size,
			Color:      item.Color,
			Image:      item.Image,
			UnitPrice:  item.UnitPrice,
			Quantity:   item.Quantity,
			TotalPrice: models.NewMoneyFromDecimal(item.UnitPrice.Decimal.Mul(decimal.NewFromInt(int64(item.Quantity)))),
		})
	}

	created, err := s.orderService.Create(order)
	if err != nil {
		return nil, err
	}

	// 清车失败不影响已生单，重试一次后交由下次结算前覆盖
	if err := s.cartRepo.ClearByUser(userID); err != nil {
		logger.Warnw("checkout_cart_clear_retry", "user_id", userID, "error", err)
		if err := s.cartRepo.ClearByUser(userID); err != nil {
			logger.Errorw("checkout_cart_clear_failed", "user_id", userID, "order_no", created.OrderNo, "error", err)
		}
	}

	return created, nil
}
