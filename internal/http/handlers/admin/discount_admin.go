package admin

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/marketnest/internal/http/response"
	"github.com/marketnest/internal/service"
)

// DiscountUpsertRequest 折扣码创建/更新请求
type DiscountUpsertRequest struct {
	Code        string `json:"code" binding:"required"`
	Kind        string `json:"kind" binding:"required"`
	Value       string `json:"value"`
	Description string `json:"description"`
	IsActive    bool   `json:"is_active"`
}

func (r DiscountUpsertRequest) toServiceInput() (service.DiscountInput, error) {
	value := decimal.Zero
	if raw := strings.TrimSpace(r.Value); raw != "" {
		parsed, err := decimal.NewFromString(raw)
		if err != nil {
			return service.DiscountInput{}, err
		}
		value = parsed
	}
	return service.DiscountInput{
		Code:        r.Code,
		Kind:        r.Kind,
		Value:       value,
		Description: r.Description,
		IsActive:    r.IsActive,
	}, nil
}

// GetAdminDiscounts 获取折扣码列表
func (h *Handler) GetAdminDiscounts(c *gin.Context) {
	discounts, err := h.DiscountAdminService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch discounts", err)
		return
	}
	response.Success(c, discounts)
}

// CreateDiscount 创建折扣码
func (h *Handler) CreateDiscount(c *gin.Context) {
	var req DiscountUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	input, err := req.toServiceInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid value", err)
		return
	}

	discount, err := h.DiscountAdminService.Create(input)
	if err != nil {
		if errors.Is(err, service.ErrDiscountExists) {
			respondError(c, response.CodeBadRequest, "discount code already exists", nil)
			return
		}
		respondValidationAware(c, err, response.CodeInternal, "failed to create discount")
		return
	}
	response.Success(c, discount)
}

// UpdateDiscount 更新折扣码
func (h *Handler) UpdateDiscount(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req DiscountUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	input, err := req.toServiceInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid value", err)
		return
	}

	discount, err := h.DiscountAdminService.Update(id, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDiscountCode):
			respondError(c, response.CodeNotFound, "discount not found", nil)
		case errors.Is(err, service.ErrDiscountExists):
			respondError(c, response.CodeBadRequest, "discount code already exists", nil)
		default:
			respondValidationAware(c, err, response.CodeInternal, "failed to update discount")
		}
		return
	}
	response.Success(c, discount)
}

// DeleteDiscount 删除折扣码
func (h *Handler) DeleteDiscount(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.DiscountAdminService.Delete(id); err != nil {
		respondError(c, response.CodeInternal, "failed to delete discount", err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
