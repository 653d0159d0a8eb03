package service

import (
	"strings"

	"github.com/marketnest/internal/constants"
	"github.com/marketnest/internal/models"
	"github.com/marketnest/internal/repository"

	"github.com/shopspring/decimal"
)

// DiscountService 折扣码服务
type DiscountService struct {
	discountRepo repository.DiscountRepository
}

// NewDiscountService 创建折扣码服务
func NewDiscountService(discountRepo repository.DiscountRepository) *DiscountService {
	return &DiscountService{discountRepo: discountRepo}
}

// Resolve 校验折扣码，未找到或停用一律返回 ErrInvalidDiscountCode，
// 不向调用方泄露码值是否存在。
func (s *DiscountService) Resolve(code string) (*models.Discount, error) {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return nil, ErrInvalidDiscountCode
	}

	discount, err := s.discountRepo.GetByCode(trimmed, true)
	if err != nil {
		return nil, err
	}
	if discount == nil {
		return nil, ErrInvalidDiscountCode
	}
	return discount, nil
}

// ComputeAmount 计算折扣金额，结果截断到 [0, subtotal] 区间。
// free_shipping 类型不折减商品金额，运费减免由结算侧处理。
func (s *DiscountService) ComputeAmount(discount *models.Discount, subtotal models.Money) models.Money {
	if discount == nil {
		return models.Money{}
	}

	var amount decimal.Decimal
	switch strings.ToLower(strings.TrimSpace(discount.Kind)) {
	case constants.DiscountKindPercentage:
		percent := discount.Value.Decimal.Div(decimal.NewFromInt(100))
		amount = subtotal.Decimal.Mul(percent)
	case constants.DiscountKindFixed:
		amount = discount.Value.Decimal
	case constants.DiscountKindFreeShipping:
		amount = decimal.Zero
	default:
		amount = decimal.Zero
	}

	if amount.LessThan(decimal.Zero) {
		amount = decimal.Zero
	}
	if amount.GreaterThan(subtotal.Decimal) {
		amount = subtotal.Decimal
	}
	return models.NewMoneyFromDecimal(amount.Round(2))
}

// IsFreeShipping 判断折扣是否减免运费
func (s *DiscountService) IsFreeShipping(kind string) bool {
	return strings.ToLower(strings.TrimSpace(kind)) == constants.DiscountKindFreeShipping
}
