package repository

import (
	"github.com/marketnest/internal/models"

	"gorm.io/gorm"
)

// ReviewRepository 商品评论数据访问接口
type ReviewRepository interface {
	ListByProduct(filter ReviewListFilter) ([]models.Review, int64, error)
	Create(review *models.Review) error
	Delete(id uint) error
	AggregateForProduct(productID uint) (float64, int64, error)
	IncrementHelpful(id uint) (int64, error)
	WithTx(tx *gorm.DB) ReviewRepository
}

// GormReviewRepository GORM 实现
type GormReviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository 创建评论仓库
func NewReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// WithTx 绑定事务
func (r *GormReviewRepository) WithTx(tx *gorm.DB) ReviewRepository {
	if tx == nil {
		return r
	}
	return &GormReviewRepository{db: tx}
}

// ListByProduct 商品评论列表，按时间倒序
func (r *GormReviewRepository) ListByProduct(filter ReviewListFilter) ([]models.Review, int64, error) {
	var reviews []models.Review

	query := r.db.Model(&models.Review{}).Where("product_id = ?", filter.ProductID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("created_at DESC, id DESC").Find(&reviews).Error; err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}

// Create 创建评论
func (r *GormReviewRepository) Create(review *models.Review) error {
	return r.db.Create(review).Error
}

// Delete 删除评论
func (r *GormReviewRepository) Delete(id uint) error {
	return r.db.Delete(&models.Review{}, id).Error
}

// AggregateForProduct 聚合商品评分与评论数
func (r *GormReviewRepository) AggregateForProduct(productID uint) (float64, int64, error) {
	type row struct {
		Avg   float64
		Total int64
	}
	var result row
	if err := r.db.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS total").
		Where("product_id = ?", productID).
		Scan(&result).Error; err != nil {
		return 0, 0, err
	}
	return result.Avg, result.Total, nil
}

// IncrementHelpful 点赞评论
func (r *GormReviewRepository) IncrementHelpful(id uint) (int64, error) {
	result := r.db.Model(&models.Review{}).
		Where("id = ?", id).
		Update("helpful", gorm.Expr("helpful + 1"))
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
