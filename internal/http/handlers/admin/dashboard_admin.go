package admin

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/marketnest/internal/http/response"
)

func parseDaysQuery(c *gin.Context) int {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))
	if days <= 0 {
		days = 30
	}
	if days > 365 {
		days = 365
	}
	return days
}

// GetDashboardOverview 获取经营总览
func (h *Handler) GetDashboardOverview(c *gin.Context) {
	overview, err := h.DashboardService.GetOverview(c.Request.Context(), parseDaysQuery(c))
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch dashboard overview", err)
		return
	}
	response.Success(c, overview)
}

// GetDashboardOrderTrends 获取订单趋势
func (h *Handler) GetDashboardOrderTrends(c *gin.Context) {
	trends, err := h.DashboardService.GetOrderTrends(parseDaysQuery(c))
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch order trends", err)
		return
	}
	response.Success(c, trends)
}

// GetDashboardTopProducts 获取商品销量排行
func (h *Handler) GetDashboardTopProducts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit <= 0 {
		limit = 10
	}
	if limit > 50 {
		limit = 50
	}

	ranking, err := h.DashboardService.GetTopProducts(parseDaysQuery(c), limit)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch product ranking", err)
		return
	}
	response.Success(c, ranking)
}

// GetDashboardRecentOrders 获取最近订单
func (h *Handler) GetDashboardRecentOrders(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit <= 0 {
		limit = 10
	}
	if limit > 50 {
		limit = 50
	}

	orders, err := h.DashboardService.GetRecentOrders(limit)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch recent orders", err)
		return
	}
	response.Success(c, orders)
}
