package repository

import (
	"errors"

	"github.com/marketnest/internal/models"

	"gorm.io/gorm"
)

// BannerRepository 首页轮播数据访问接口
type BannerRepository interface {
	ListActive() ([]models.Banner, error)
	List() ([]models.Banner, error)
	GetByID(id uint) (*models.Banner, error)
	Create(banner *models.Banner) error
	Update(banner *models.Banner) error
	Delete(id uint) error
	WithTx(tx *gorm.DB) BannerRepository
}

// GormBannerRepository GORM 实现
type GormBannerRepository struct {
	db *gorm.DB
}

// NewBannerRepository 创建轮播仓库
func NewBannerRepository(db *gorm.DB) *GormBannerRepository {
	return &GormBannerRepository{db: db}
}

// WithTx 绑定事务
func (r *GormBannerRepository) WithTx(tx *gorm.DB) BannerRepository {
	if tx == nil {
		return r
	}
	return &GormBannerRepository{db: tx}
}

// ListActive 启用的轮播列表
func (r *GormBannerRepository) ListActive() ([]models.Banner, error) {
	var banners []models.Banner
	if err := r.db.Where("is_active = ?", true).Order("sort_order DESC, id ASC").Find(&banners).Error; err != nil {
		return nil, err
	}
	return banners, nil
}

// List 全部轮播列表
func (r *GormBannerRepository) List() ([]models.Banner, error) {
	var banners []models.Banner
	if err := r.db.Order("sort_order DESC, id ASC").Find(&banners).Error; err != nil {
		return nil, err
	}
	return banners, nil
}

// GetByID 根据 ID 获取轮播
func (r *GormBannerRepository) GetByID(id uint) (*models.Banner, error) {
	var banner models.Banner
	if err := r.db.First(&banner, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &banner, nil
}

// Create 创建轮播
func (r *GormBannerRepository) Create(banner *models.Banner) error {
	return r.db.Create(banner).Error
}

// Update 更新轮播
func (r *GormBannerRepository) Update(banner *models.Banner) error {
	return r.db.Save(banner).Error
}

// Delete 删除轮播
func (r *GormBannerRepository) Delete(id uint) error {
	return r.db.Delete(&models.Banner{}, id).Error
}
