package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/marketnest/internal/http/response"
	"github.com/marketnest/internal/repository"
	"github.com/marketnest/internal/service"
)

// ProductUpsertRequest 商品创建/更新请求
type ProductUpsertRequest struct {
	CategoryID    uint     `json:"category_id" binding:"required"`
	BrandID       uint     `json:"brand_id"`
	Slug          string   `json:"slug" binding:"required"`
	Name          string   `json:"name" binding:"required"`
	Description   string   `json:"description"`
	Price         string   `json:"price" binding:"required"`
	OriginalPrice string   `json:"original_price"`
	Images        []string `json:"images"`
	Tags          []string `json:"tags"`
	Sizes         []string `json:"sizes"`
	Colors        []string `json:"colors"`
	Stock         int      `json:"stock"`
	IsActive      bool     `json:"is_active"`
	SortOrder     int      `json:"sort_order"`
}

func (r ProductUpsertRequest) toServiceInput() (service.ProductInput, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(r.Price))
	if err != nil {
		return service.ProductInput{}, err
	}
	originalPrice := price
	if raw := strings.TrimSpace(r.OriginalPrice); raw != "" {
		originalPrice, err = decimal.NewFromString(raw)
		if err != nil {
			return service.ProductInput{}, err
		}
	}
	return service.ProductInput{
		CategoryID:    r.CategoryID,
		BrandID:       r.BrandID,
		Slug:          r.Slug,
		Name:          r.Name,
		Description:   r.Description,
		Price:         price,
		OriginalPrice: originalPrice,
		Images:        r.Images,
		Tags:          r.Tags,
		Sizes:         r.Sizes,
		Colors:        r.Colors,
		Stock:         r.Stock,
		IsActive:      r.IsActive,
		SortOrder:     r.SortOrder,
	}, nil
}

// GetAdminProducts 获取商品列表 (Admin)
func (h *Handler) GetAdminProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.ProductListFilter{
		Page:      page,
		PageSize:  pageSize,
		Category:  strings.TrimSpace(c.Query("category")),
		Brand:     strings.TrimSpace(c.Query("brand")),
		Search:    strings.TrimSpace(c.Query("search")),
		SortBy:    strings.TrimSpace(c.Query("sort_by")),
		SortOrder: strings.TrimSpace(c.Query("sort_order")),
	}

	products, total, err := h.ProductService.ListAdmin(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch products", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, products, pagination)
}

// GetAdminProduct 获取商品详情 (Admin)
func (h *Handler) GetAdminProduct(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	product, err := h.ProductService.GetByID(id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "product not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to fetch product", err)
		return
	}

	response.Success(c, product)
}

// CreateProduct 创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	input, err := req.toServiceInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid price", err)
		return
	}

	product, err := h.ProductService.Create(input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSlugExists):
			respondError(c, response.CodeBadRequest, "slug already in use", nil)
		case errors.Is(err, service.ErrCategoryNotFound):
			respondError(c, response.CodeBadRequest, "category not found", nil)
		case errors.Is(err, service.ErrBrandNotFound):
			respondError(c, response.CodeBadRequest, "brand not found", nil)
		default:
			respondValidationAware(c, err, response.CodeInternal, "failed to create product")
		}
		return
	}

	response.Success(c, product)
}

// UpdateProduct 更新商品
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req ProductUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	input, err := req.toServiceInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid price", err)
		return
	}

	product, err := h.ProductService.Update(id, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			respondError(c, response.CodeNotFound, "product not found", nil)
		case errors.Is(err, service.ErrSlugExists):
			respondError(c, response.CodeBadRequest, "slug already in use", nil)
		case errors.Is(err, service.ErrCategoryNotFound):
			respondError(c, response.CodeBadRequest, "category not found", nil)
		case errors.Is(err, service.ErrBrandNotFound):
			respondError(c, response.CodeBadRequest, "brand not found", nil)
		default:
			respondValidationAware(c, err, response.CodeInternal, "failed to update product")
		}
		return
	}

	response.Success(c, product)
}

// DeleteProduct 删除商品
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.ProductService.Delete(id); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "product not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to delete product", err)
		return
	}

	response.Success(c, gin.H{"deleted": true})
}
