package service

import (
	"context"
	"time"

	"github.com/marketnest/internal/cache"
	"github.com/marketnest/internal/logger"
	"github.com/marketnest/internal/models"
	"github.com/marketnest/internal/repository"
)

const dashboardCacheTTL = 60 * time.Second

// DashboardService 后台仪表盘服务。
// 聚合查询较重，总览结果短暂缓存在 Redis。
type DashboardService struct {
	dashboardRepo repository.DashboardRepository
	orderRepo     repository.OrderRepository
}

// NewDashboardService 创建仪表盘服务
func NewDashboardService(dashboardRepo repository.DashboardRepository, orderRepo repository.OrderRepository) *DashboardService {
	return &DashboardService{
		dashboardRepo: dashboardRepo,
		orderRepo:     orderRepo,
	}
}

// DashboardOverview 仪表盘总览
type DashboardOverview struct {
	OrdersTotal     int64            `json:"orders_total"`
	PendingOrders   int64            `json:"pending_orders"`
	DeliveredOrders int64            `json:"delivered_orders"`
	CancelledOrders int64            `json:"cancelled_orders"`
	Revenue         float64          `json:"revenue"`
	NewUsers        int64            `json:"new_users"`
	ActiveProducts  int64            `json:"active_products"`
	LowStockCount   int64            `json:"low_stock_count"`
	StatusCounts    map[string]int64 `json:"status_counts"`
	GeneratedAt     time.Time        `json:"generated_at"`
}

// GetOverview 获取最近 N 天总览，命中缓存直接返回
func (s *DashboardService) GetOverview(ctx context.Context, days int) (*DashboardOverview, error) {
	if days <= 0 {
		days = 30
	}

	cacheKey := overviewCacheKey(days)
	var cached DashboardOverview
	if hit, err := cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
		return &cached, nil
	}

	endAt := time.Now()
	startAt := endAt.AddDate(0, 0, -days)

	row, err := s.dashboardRepo.GetOverview(startAt, endAt)
	if err != nil {
		return nil, err
	}
	statusCounts, err := s.orderRepo.CountByStatus()
	if err != nil {
		return nil, err
	}

	overview := &DashboardOverview{
		OrdersTotal:     row.OrdersTotal,
		PendingOrders:   row.PendingOrders,
		DeliveredOrders: row.DeliveredOrders,
		CancelledOrders: row.CancelledOrders,
		Revenue:         row.Revenue,
		NewUsers:        row.NewUsers,
		ActiveProducts:  row.ActiveProducts,
		LowStockCount:   row.LowStockCount,
		StatusCounts:    statusCounts,
		GeneratedAt:     time.Now(),
	}

	if err := cache.SetJSON(ctx, cacheKey, overview, dashboardCacheTTL); err != nil {
		logger.Warnw("dashboard_cache_write_failed", "error", err)
	}

	return overview, nil
}

// GetOrderTrends 获取订单趋势
func (s *DashboardService) GetOrderTrends(days int) ([]repository.DashboardOrderTrendRow, error) {
	if days <= 0 {
		days = 30
	}
	endAt := time.Now()
	return s.dashboardRepo.GetOrderTrends(endAt.AddDate(0, 0, -days), endAt)
}

// GetTopProducts 获取销量排行
func (s *DashboardService) GetTopProducts(days, limit int) ([]repository.DashboardProductRankingRow, error) {
	if days <= 0 {
		days = 30
	}
	endAt := time.Now()
	return s.dashboardRepo.GetTopProducts(endAt.AddDate(0, 0, -days), endAt, limit)
}

// GetRecentOrders 获取最近订单
func (s *DashboardService) GetRecentOrders(limit int) ([]models.Order, error) {
	return s.dashboardRepo.GetRecentOrders(limit)
}

func overviewCacheKey(days int) string {
	switch days {
	case 7:
		return "dashboard:overview:7d"
	case 30:
		return "dashboard:overview:30d"
	case 90:
		return "dashboard:overview:90d"
	}
	return "dashboard:overview:custom"
}
