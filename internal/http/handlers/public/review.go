package public

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/marketnest/internal/http/response"
	"github.com/marketnest/internal/models"
	"github.com/marketnest/internal/repository"
	"github.com/marketnest/internal/service"
)

// ReviewRequest 创建评价请求
type ReviewRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Title   string `json:"title"`
	Comment string `json:"comment" binding:"required"`
}

// resolveProductBySlug 按 slug 定位商品，未找到时直接响应
func (h *Handler) resolveProductBySlug(c *gin.Context) (*models.Product, bool) {
	slug := c.Param("slug")
	product, err := h.ProductService.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "product not found", nil)
			return nil, false
		}
		respondError(c, response.CodeInternal, "failed to fetch product", err)
		return nil, false
	}
	return product, true
}

// ListProductReviews 获取商品评价列表
func (h *Handler) ListProductReviews(c *gin.Context) {
	product, ok := h.resolveProductBySlug(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	reviews, total, err := h.ReviewService.ListByProduct(repository.ReviewListFilter{
		Page:      page,
		PageSize:  pageSize,
		ProductID: product.ID,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch reviews", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, reviews, pagination)
}

// CreateProductReview 创建商品评价
func (h *Handler) CreateProductReview(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	product, ok := h.resolveProductBySlug(c)
	if !ok {
		return
	}
	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	profile, err := h.UserAuthService.GetProfile(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to create review", err)
		return
	}

	review, err := h.ReviewService.Create(uid, profile.Name, service.ReviewInput{
		ProductID: product.ID,
		Rating:    req.Rating,
		Title:     req.Title,
		Comment:   req.Comment,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			respondError(c, response.CodeNotFound, "product not found", nil)
		default:
			respondWithMappedError(c, err, nil, response.CodeInternal, "failed to create review")
		}
		return
	}
	response.Success(c, review)
}

// MarkReviewHelpful 点赞评价
func (h *Handler) MarkReviewHelpful(c *gin.Context) {
	reviewID, ok := parseUintParam(c, "review_id")
	if !ok {
		return
	}

	if err := h.ReviewService.MarkHelpful(reviewID); err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			respondError(c, response.CodeNotFound, "review not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to update review", err)
		return
	}
	response.Success(c, gin.H{"updated": true})
}
