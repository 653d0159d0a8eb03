package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/marketnest/internal/config"
	"github.com/marketnest/internal/constants"
	"github.com/marketnest/internal/logger"
	"github.com/marketnest/internal/models"
	"github.com/marketnest/internal/queue"
	"github.com/marketnest/internal/repository"

	"gorm.io/gorm"
)

// OrderService 订单服务。
// 订单创建后状态只能沿流转表前进，历史事件只追加不修改。
type OrderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	queueClient *queue.Client
	checkout    config.CheckoutConfig
}

// NewOrderService 创建订单服务
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	queueClient *queue.Client,
	checkout config.CheckoutConfig,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		queueClient: queueClient,
		checkout:    checkout,
	}
}

// Create 落库新订单：扣减库存、写入明细与首条状态事件，
// 随后推送状态通知与延迟自动确认任务。
func (s *OrderService) Create(order *models.Order) (*models.Order, error) {
	if order == nil || len(order.Items) == 0 {
		return nil, ErrCartEmpty
	}

	order.OrderNo = generateOrderNo()
	order.Status = constants.OrderStatusPending
	order.StatusEvents = []models.OrderStatusEvent{
		{Status: constants.OrderStatusPending, Reason: "order placed"},
	}

	err := s.orderRepo.Transaction(func(tx *gorm.DB) error {
		productTx := s.productRepo.WithTx(tx)
		for _, item := range order.Items {
			affected, err := productTx.AdjustStock(item.ProductID, -item.Quantity)
			if err != nil {
				return err
			}
			if affected == 0 {
				return ErrStockInsufficient
			}
		}
		return s.orderRepo.WithTx(tx).Create(order)
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("order_created",
		"order_id", order.ID,
		"order_no", order.OrderNo,
		"user_id", order.UserID,
		"total", order.TotalAmount.String(),
	)

	s.notifyStatus(order.ID, order.Status)
	s.scheduleAutoConfirm(order.ID)

	return order, nil
}

// GetForUser 获取用户订单，校验归属
func (s *OrderService) GetForUser(userID, orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// TrackForUser 按订单号查询用户订单，校验归属
func (s *OrderService) TrackForUser(userID uint, orderNo string) (*models.Order, error) {
	order, err := s.orderRepo.GetByOrderNo(orderNo)
	if err != nil {
		return nil, err
	}
	if order == nil || order.UserID != userID {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// GetByID 获取订单（后台）
func (s *OrderService) GetByID(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListByUser 用户订单列表
func (s *OrderService) ListByUser(userID uint, page, pageSize int) ([]models.Order, int64, error) {
	return s.orderRepo.List(repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   userID,
	})
}

// ListAdmin 后台订单列表
func (s *OrderService) ListAdmin(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.List(filter)
}

// UpdateStatus 流转订单状态。目标状态不在流转表内返回 ErrIllegalTransition；
// 条件更新 0 行命中说明状态已被并发变更，同样拒绝。
func (s *OrderService) UpdateStatus(orderID uint, toStatus, reason string) (*models.Order, error) {
	toStatus = strings.ToLower(strings.TrimSpace(toStatus))
	if !IsValidOrderStatus(toStatus) {
		return nil, ErrIllegalTransition
	}

	order, err := s.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if !CanTransition(order.Status, toStatus) {
		return nil, ErrIllegalTransition
	}

	affected, err := s.orderRepo.UpdateStatus(orderID, order.Status, toStatus, reason)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrIllegalTransition
	}

	logger.Infow("order_status_changed",
		"order_id", orderID,
		"from", order.Status,
		"to", toStatus,
	)

	if toStatus == constants.OrderStatusCancelled || toStatus == constants.OrderStatusReturned {
		s.restoreStock(order)
	}
	s.notifyStatus(orderID, toStatus)

	return s.GetByID(orderID)
}

// CancelForUser 用户取消订单，仅 pending/confirmed 允许
func (s *OrderService) CancelForUser(userID, orderID uint, reason string) (*models.Order, error) {
	order, err := s.GetForUser(userID, orderID)
	if err != nil {
		return nil, err
	}
	if !CanTransition(order.Status, constants.OrderStatusCancelled) {
		return nil, ErrIllegalTransition
	}
	if strings.TrimSpace(reason) == "" {
		reason = "cancelled by customer"
	}
	return s.UpdateStatus(orderID, constants.OrderStatusCancelled, reason)
}

// AutoConfirm 延迟任务回调：pending 订单自动确认。
// 订单已流转或已取消时静默返回，任务可安全重放。
func (s *OrderService) AutoConfirm(orderID uint) error {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if order == nil || order.Status != constants.OrderStatusPending {
		return nil
	}

	affected, err := s.orderRepo.UpdateStatus(orderID, constants.OrderStatusPending, constants.OrderStatusConfirmed, "auto confirmed")
	if err != nil {
		return err
	}
	if affected == 0 {
		return nil
	}

	logger.Infow("order_auto_confirmed", "order_id", orderID)
	s.notifyStatus(orderID, constants.OrderStatusConfirmed)
	return nil
}

// restoreStock 取消或退货后回补库存，失败只记日志不阻断流转。
func (s *OrderService) restoreStock(order *models.Order) {
	for _, item := range order.Items {
		if _, err := s.productRepo.AdjustStock(item.ProductID, item.Quantity); err != nil {
			logger.Errorw("order_stock_restore_failed",
				"order_id", order.ID,
				"product_id", item.ProductID,
				"error", err,
			)
		}
	}
}

func (s *OrderService) notifyStatus(orderID uint, status string) {
	if err := s.queueClient.EnqueueOrderStatusNotify(queue.OrderStatusNotifyPayload{
		OrderID: orderID,
		Status:  status,
	}); err != nil {
		logger.Errorw("order_status_notify_enqueue_failed", "order_id", orderID, "error", err)
	}
}

func (s *OrderService) scheduleAutoConfirm(orderID uint) {
	delay := time.Duration(s.checkout.AutoConfirmDelaySeconds) * time.Second
	if delay <= 0 {
		return
	}
	if err := s.queueClient.EnqueueOrderAutoConfirm(queue.OrderAutoConfirmPayload{OrderID: orderID}, delay); err != nil {
		logger.Errorw("order_auto_confirm_enqueue_failed", "order_id", orderID, "error", err)
	}
}

func generateOrderNo() string {
	now := time.Now().Format("20060102150405")
	return fmt.Sprintf("MN%s%s", now, randNumeric(6))
}

func randNumeric(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteString("0")
			continue
		}
		b.WriteString(fmt.Sprintf("%d", n.Int64()))
	}
	return b.String()
}
