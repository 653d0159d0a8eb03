package service

import (
	"strings"

	"github.com/marketnest/internal/constants"
	"github.com/marketnest/internal/models"
	"github.com/marketnest/internal/repository"

	"github.com/shopspring/decimal"
)

// DiscountAdminService 折扣码后台管理服务
type DiscountAdminService struct {
	discountRepo repository.DiscountRepository
}

// NewDiscountAdminService 创建折扣码后台管理服务
func NewDiscountAdminService(discountRepo repository.DiscountRepository) *DiscountAdminService {
	return &DiscountAdminService{discountRepo: discountRepo}
}

// DiscountInput 折扣码写入参数
type DiscountInput struct {
	Code        string
	Kind        string
	Value       decimal.Decimal
	Description string
	IsActive    bool
}

func validDiscountKind(kind string) bool {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case constants.DiscountKindPercentage, constants.DiscountKindFixed, constants.DiscountKindFreeShipping:
		return true
	}
	return false
}

func (s *DiscountAdminService) validateInput(input DiscountInput) error {
	fields := map[string]string{}
	if strings.TrimSpace(input.Code) == "" {
		fields["code"] = "required"
	}
	if !validDiscountKind(input.Kind) {
		fields["kind"] = "unknown discount kind"
	}
	kind := strings.ToLower(strings.TrimSpace(input.Kind))
	if kind != constants.DiscountKindFreeShipping && input.Value.LessThanOrEqual(decimal.Zero) {
		fields["value"] = "must be positive"
	}
	if kind == constants.DiscountKindPercentage && input.Value.GreaterThan(decimal.NewFromInt(100)) {
		fields["value"] = "percentage cannot exceed 100"
	}
	if len(fields) > 0 {
		return NewValidationError(fields)
	}
	return nil
}

// List 折扣码列表
func (s *DiscountAdminService) List() ([]models.Discount, error) {
	return s.discountRepo.List()
}

// Create 创建折扣码
func (s *DiscountAdminService) Create(input DiscountInput) (*models.Discount, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	existing, err := s.discountRepo.GetByCode(input.Code, false)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDiscountExists
	}

	discount := &models.Discount{
		Code:        strings.ToUpper(strings.TrimSpace(input.Code)),
		Kind:        strings.ToLower(strings.TrimSpace(input.Kind)),
		Value:       models.NewMoneyFromDecimal(input.Value),
		Description: strings.TrimSpace(input.Description),
		IsActive:    input.IsActive,
	}
	if err := s.discountRepo.Create(discount); err != nil {
		return nil, err
	}
	return discount, nil
}

// Update 更新折扣码
func (s *DiscountAdminService) Update(id uint, input DiscountInput) (*models.Discount, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	target, err := s.discountRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrInvalidDiscountCode
	}

	duplicate, err := s.discountRepo.GetByCode(input.Code, false)
	if err != nil {
		return nil, err
	}
	if duplicate != nil && duplicate.ID != id {
		return nil, ErrDiscountExists
	}

	target.Code = strings.ToUpper(strings.TrimSpace(input.Code))
	target.Kind = strings.ToLower(strings.TrimSpace(input.Kind))
	target.Value = models.NewMoneyFromDecimal(input.Value)
	target.Description = strings.TrimSpace(input.Description)
	target.IsActive = input.IsActive
	if err := s.discountRepo.Update(target); err != nil {
		return nil, err
	}
	return target, nil
}

// Delete 删除折扣码
func (s *DiscountAdminService) Delete(id uint) error {
	return s.discountRepo.Delete(id)
}
