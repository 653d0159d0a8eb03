package repository

import (
	"errors"
	"strings"

	"github.com/marketnest/internal/models"

	"gorm.io/gorm"
)

// DiscountRepository 折扣码数据访问接口
type DiscountRepository interface {
	GetByCode(code string, onlyActive bool) (*models.Discount, error)
	GetByID(id uint) (*models.Discount, error)
	List() ([]models.Discount, error)
	Create(discount *models.Discount) error
	Update(discount *models.Discount) error
	Delete(id uint) error
	WithTx(tx *gorm.DB) DiscountRepository
}

// GormDiscountRepository GORM 实现
type GormDiscountRepository struct {
	db *gorm.DB
}

// NewDiscountRepository 创建折扣码仓库
func NewDiscountRepository(db *gorm.DB) *GormDiscountRepository {
	return &GormDiscountRepository{db: db}
}

// WithTx 绑定事务
func (r *GormDiscountRepository) WithTx(tx *gorm.DB) DiscountRepository {
	if tx == nil {
		return r
	}
	return &GormDiscountRepository{db: tx}
}

// GetByCode 根据折扣码查询，码值不区分大小写，统一按大写存储。
func (r *GormDiscountRepository) GetByCode(code string, onlyActive bool) (*models.Discount, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "" {
		return nil, nil
	}

	query := r.db.Where("code = ?", normalized)
	if onlyActive {
		query = query.Where("is_active = ?", true)
	}

	var discount models.Discount
	if err := query.First(&discount).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &discount, nil
}

// GetByID 根据 ID 获取折扣码
func (r *GormDiscountRepository) GetByID(id uint) (*models.Discount, error) {
	var discount models.Discount
	if err := r.db.First(&discount, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &discount, nil
}

// List 折扣码列表
func (r *GormDiscountRepository) List() ([]models.Discount, error) {
	var discounts []models.Discount
	if err := r.db.Order("id ASC").Find(&discounts).Error; err != nil {
		return nil, err
	}
	return discounts, nil
}

// Create 创建折扣码
func (r *GormDiscountRepository) Create(discount *models.Discount) error {
	if discount != nil {
		discount.Code = strings.ToUpper(strings.TrimSpace(discount.Code))
	}
	return r.db.Create(discount).Error
}

// Update 更新折扣码
func (r *GormDiscountRepository) Update(discount *models.Discount) error {
	if discount != nil {
		discount.Code = strings.ToUpper(strings.TrimSpace(discount.Code))
	}
	return r.db.Save(discount).Error
}

// Delete 删除折扣码
func (r *GormDiscountRepository) Delete(id uint) error {
	return r.db.Delete(&models.Discount{}, id).Error
}
