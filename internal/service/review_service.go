package service

import (
	"strings"

	"github.com/marketnest/internal/logger"
	"github.com/marketnest/internal/models"
	"github.com/marketnest/internal/repository"
)

// ReviewService 商品评论服务
type ReviewService struct {
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
}

// NewReviewService 创建评论服务
func NewReviewService(reviewRepo repository.ReviewRepository, productRepo repository.ProductRepository) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
	}
}

// ListByProduct 商品评论列表
func (s *ReviewService) ListByProduct(filter repository.ReviewListFilter) ([]models.Review, int64, error) {
	return s.reviewRepo.ListByProduct(filter)
}

// ReviewInput 评论写入参数
type ReviewInput struct {
	ProductID uint
	Rating    int
	Title     string
	Comment   string
}

// Create 发表评论并回写商品评分聚合
func (s *ReviewService) Create(userID uint, userName string, input ReviewInput) (*models.Review, error) {
	fields := map[string]string{}
	if input.Rating < 1 || input.Rating > 5 {
		fields["rating"] = "must be between 1 and 5"
	}
	if strings.TrimSpace(input.Comment) == "" {
		fields["comment"] = "required"
	}
	if len(fields) > 0 {
		return nil, NewValidationError(fields)
	}

	product, err := s.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	review := &models.Review{
		ProductID: product.ID,
		UserID:    userID,
		UserName:  strings.TrimSpace(userName),
		Rating:    input.Rating,
		Title:     strings.TrimSpace(input.Title),
		Comment:   strings.TrimSpace(input.Comment),
	}
	if err := s.reviewRepo.Create(review); err != nil {
		return nil, err
	}

	s.syncProductRating(product.ID)
	return review, nil
}

// Delete 删除评论（后台）
func (s *ReviewService) Delete(id uint, productID uint) error {
	if err := s.reviewRepo.Delete(id); err != nil {
		return err
	}
	s.syncProductRating(productID)
	return nil
}

// MarkHelpful 评论点赞
func (s *ReviewService) MarkHelpful(id uint) error {
	affected, err := s.reviewRepo.IncrementHelpful(id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrReviewNotFound
	}
	return nil
}

// syncProductRating 评分聚合回写失败不阻断评论操作，只记日志。
func (s *ReviewService) syncProductRating(productID uint) {
	avg, count, err := s.reviewRepo.AggregateForProduct(productID)
	if err != nil {
		logger.Errorw("review_aggregate_failed", "product_id", productID, "error", err)
		return
	}
	if err := s.productRepo.UpdateRating(productID, avg, int(count)); err != nil {
		logger.Errorw("product_rating_sync_failed", "product_id", productID, "error", err)
	}
}
