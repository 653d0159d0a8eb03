package admin

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/marketnest/internal/http/response"
	"github.com/marketnest/internal/service"
)

// CategoryUpsertRequest 分类创建/更新请求
type CategoryUpsertRequest struct {
	Slug      string `json:"slug" binding:"required"`
	Name      string `json:"name" binding:"required"`
	Image     string `json:"image"`
	SortOrder int    `json:"sort_order"`
}

// BrandUpsertRequest 品牌创建/更新请求
type BrandUpsertRequest struct {
	Slug string `json:"slug" binding:"required"`
	Name string `json:"name" binding:"required"`
	Logo string `json:"logo"`
}

// GetAdminCategories 获取分类列表 (Admin)
func (h *Handler) GetAdminCategories(c *gin.Context) {
	categories, err := h.CategoryService.ListCategories()
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch categories", err)
		return
	}
	response.Success(c, categories)
}

// CreateCategory 创建分类
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	category, err := h.CategoryService.CreateCategory(service.CategoryInput{
		Slug:      req.Slug,
		Name:      req.Name,
		Image:     req.Image,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		if errors.Is(err, service.ErrSlugExists) {
			respondError(c, response.CodeBadRequest, "slug already in use", nil)
			return
		}
		respondValidationAware(c, err, response.CodeInternal, "failed to create category")
		return
	}
	response.Success(c, category)
}

// UpdateCategory 更新分类
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req CategoryUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	category, err := h.CategoryService.UpdateCategory(id, service.CategoryInput{
		Slug:      req.Slug,
		Name:      req.Name,
		Image:     req.Image,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryNotFound):
			respondError(c, response.CodeNotFound, "category not found", nil)
		case errors.Is(err, service.ErrSlugExists):
			respondError(c, response.CodeBadRequest, "slug already in use", nil)
		default:
			respondValidationAware(c, err, response.CodeInternal, "failed to update category")
		}
		return
	}
	response.Success(c, category)
}

// DeleteCategory 删除分类
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.CategoryService.DeleteCategory(id); err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			respondError(c, response.CodeNotFound, "category not found", nil)
			return
		}
		respondValidationAware(c, err, response.CodeInternal, "failed to delete category")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// GetAdminBrands 获取品牌列表 (Admin)
func (h *Handler) GetAdminBrands(c *gin.Context) {
	brands, err := h.CategoryService.ListBrands()
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch brands", err)
		return
	}
	response.Success(c, brands)
}

// CreateBrand 创建品牌
func (h *Handler) CreateBrand(c *gin.Context) {
	var req BrandUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	brand, err := h.CategoryService.CreateBrand(service.BrandInput{
		Slug: req.Slug,
		Name: req.Name,
		Logo: req.Logo,
	})
	if err != nil {
		if errors.Is(err, service.ErrSlugExists) {
			respondError(c, response.CodeBadRequest, "slug already in use", nil)
			return
		}
		respondValidationAware(c, err, response.CodeInternal, "failed to create brand")
		return
	}
	response.Success(c, brand)
}

// UpdateBrand 更新品牌
func (h *Handler) UpdateBrand(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req BrandUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	brand, err := h.CategoryService.UpdateBrand(id, service.BrandInput{
		Slug: req.Slug,
		Name: req.Name,
		Logo: req.Logo,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBrandNotFound):
			respondError(c, response.CodeNotFound, "brand not found", nil)
		case errors.Is(err, service.ErrSlugExists):
			respondError(c, response.CodeBadRequest, "slug already in use", nil)
		default:
			respondValidationAware(c, err, response.CodeInternal, "failed to update brand")
		}
		return
	}
	response.Success(c, brand)
}

// DeleteBrand 删除品牌
func (h *Handler) DeleteBrand(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.CategoryService.DeleteBrand(id); err != nil {
		if errors.Is(err, service.ErrBrandNotFound) {
			respondError(c, response.CodeNotFound, "brand not found", nil)
			return
		}
		respondValidationAware(c, err, response.CodeInternal, "failed to delete brand")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
