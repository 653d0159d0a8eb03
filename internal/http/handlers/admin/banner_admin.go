package admin

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/marketnest/internal/http/response"
	"github.com/marketnest/internal/service"
)

// BannerUpsertRequest 轮播图创建/更新请求
type BannerUpsertRequest struct {
	Title     string `json:"title"`
	Subtitle  string `json:"subtitle"`
	Image     string `json:"image" binding:"required"`
	Link      string `json:"link"`
	IsActive  bool   `json:"is_active"`
	SortOrder int    `json:"sort_order"`
}

func (r BannerUpsertRequest) toServiceInput() service.BannerInput {
	return service.BannerInput{
		Title:     r.Title,
		Subtitle:  r.Subtitle,
		Image:     r.Image,
		Link:      r.Link,
		IsActive:  r.IsActive,
		SortOrder: r.SortOrder,
	}
}

// GetAdminBanners 获取后台轮播图列表
func (h *Handler) GetAdminBanners(c *gin.Context) {
	banners, err := h.BannerService.ListAdmin()
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch banners", err)
		return
	}
	response.Success(c, banners)
}

// CreateBanner 创建轮播图
func (h *Handler) CreateBanner(c *gin.Context) {
	var req BannerUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	banner, err := h.BannerService.Create(req.toServiceInput())
	if err != nil {
		respondValidationAware(c, err, response.CodeInternal, "failed to create banner")
		return
	}
	response.Success(c, banner)
}

// UpdateBanner 更新轮播图
func (h *Handler) UpdateBanner(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req BannerUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	banner, err := h.BannerService.Update(id, req.toServiceInput())
	if err != nil {
		if errors.Is(err, service.ErrBannerNotFound) {
			respondError(c, response.CodeNotFound, "banner not found", nil)
			return
		}
		respondValidationAware(c, err, response.CodeInternal, "failed to update banner")
		return
	}
	response.Success(c, banner)
}

// DeleteBanner 删除轮播图
func (h *Handler) DeleteBanner(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.BannerService.Delete(id); err != nil {
		if errors.Is(err, service.ErrBannerNotFound) {
			respondError(c, response.CodeNotFound, "banner not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to delete banner", err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
