package service

import (
	"errors"
	"testing"

	"github.com/marketnest/internal/constants"
	"github.com/marketnest/internal/models"

	"github.com/shopspring/decimal"
)

func TestOrderTransitionTable(t *testing.T) {
	allowed := [][2]string{
		{constants.OrderStatusPending, constants.OrderStatusConfirmed},
		{constants.OrderStatusPending, constants.OrderStatusCancelled},
		{constants.OrderStatusConfirmed, constants.OrderStatusProcessing},
		{constants.OrderStatusConfirmed, constants.OrderStatusCancelled},
		{constants.OrderStatusProcessing, constants.OrderStatusShipped},
		{constants.OrderStatusShipped, constants.OrderStatusDelivered},
		{constants.OrderStatusDelivered, constants.OrderStatusReturned},
	}
	for _, pair := range allowed {
		if !CanTransition(pair[0], pair[1]) {
			t.Fatalf("%s -> %s should be allowed", pair[0], pair[1])
		}
	}

	denied := [][2]string{
		{constants.OrderStatusPending, constants.OrderStatusShipped},
		{constants.OrderStatusProcessing, constants.OrderStatusCancelled},
		{constants.OrderStatusShipped, constants.OrderStatusCancelled},
		{constants.OrderStatusDelivered, constants.OrderStatusPending},
		{constants.OrderStatusCancelled, constants.OrderStatusConfirmed},
		{constants.OrderStatusReturned, constants.OrderStatusPending},
		{constants.OrderStatusConfirmed, constants.OrderStatusDelivered},
	}
	for _, pair := range denied {
		if CanTransition(pair[0], pair[1]) {
			t.Fatalf("%s -> %s should be rejected", pair[0], pair[1])
		}
	}

	if !IsTerminalStatus(constants.OrderStatusCancelled) || !IsTerminalStatus(constants.OrderStatusReturned) {
		t.Fatalf("cancelled and returned must be terminal")
	}
	if IsTerminalStatus(constants.OrderStatusDelivered) {
		t.Fatalf("delivered allows return, not terminal")
	}
}

func placeTestOrder(t *testing.T, env *checkoutTestEnv, userID uint, slug string, price int64, qty int) *models.Order {
	t.Helper()
	product := env.seedProduct(t, slug, price, 10)
	if _, err := env.cartService.AddItem(userID, AddItemInput{ProductID: product.ID, Quantity: qty}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	order, err := env.checkoutService.PlaceOrder(userID, validCheckoutInput())
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}
	return order
}

func TestUpdateStatusFollowsTable(t *testing.T) {
	env := newCheckoutTestEnv(t, "transit")
	order := placeTestOrder(t, env, 1, "tent", 120, 1)

	// 跳跃流转被拒绝
	if _, err := env.orderService.UpdateStatus(order.ID, constants.OrderStatusShipped, ""); !errors.Is(err, ErrIllegalTransition) {
		t.Fatalf("pending -> shipped should fail, got %v", err)
	}

	for _, status := range []string{
		constants.OrderStatusConfirmed,
		constants.OrderStatusProcessing,
		constants.OrderStatusShipped,
		constants.OrderStatusDelivered,
	} {
		updated, err := env.orderService.UpdateStatus(order.ID, status, "")
		if err != nil {
			t.Fatalf("transition to %s failed: %v", status, err)
		}
		if updated.Status != status {
			t.Fatalf("status want %s got %s", status, updated.Status)
		}
	}

	// 每次流转追加一条事件：pending + 4 次流转
	final, err := env.orderService.GetByID(order.ID)
	if err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if len(final.StatusEvents) != 5 {
		t.Fatalf("status events want 5 got %d", len(final.StatusEvents))
	}
	if final.StatusEvents[len(final.StatusEvents)-1].Status != constants.OrderStatusDelivered {
		t.Fatalf("last event want delivered got %s", final.StatusEvents[len(final.StatusEvents)-1].Status)
	}
}

func TestCancelOnlyFromEarlyStatuses(t *testing.T) {
	env := newCheckoutTestEnv(t, "cancel")
	order := placeTestOrder(t, env, 1, "kayak", 400, 1)

	cancelled, err := env.orderService.CancelForUser(1, order.ID, "changed my mind")
	if err != nil {
		t.Fatalf("cancel pending failed: %v", err)
	}
	if cancelled.Status != constants.OrderStatusCancelled {
		t.Fatalf("status want cancelled got %s", cancelled.Status)
	}
	events := cancelled.StatusEvents
	if events[len(events)-1].Reason != "changed my mind" {
		t.Fatalf("cancel reason not recorded: %+v", events[len(events)-1])
	}

	// 取消后库存回补
	fresh, err := env.productRepo.GetBySlug("kayak", false)
	if err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if fresh.Stock != 10 {
		t.Fatalf("stock want restored 10 got %d", fresh.Stock)
	}

	// 已发货订单不可取消
	shipped := placeTestOrder(t, env, 1, "paddle", 60, 1)
	for _, status := range []string{constants.OrderStatusConfirmed, constants.OrderStatusProcessing, constants.OrderStatusShipped} {
		if _, err := env.orderService.UpdateStatus(shipped.ID, status, ""); err != nil {
			t.Fatalf("transition to %s failed: %v", status, err)
		}
	}
	if _, err := env.orderService.CancelForUser(1, shipped.ID, ""); !errors.Is(err, ErrIllegalTransition) {
		t.Fatalf("cancel shipped should fail, got %v", err)
	}
}

func TestCancelEnforcesOwnership(t *testing.T) {
	env := newCheckoutTestEnv(t, "ownership")
	order := placeTestOrder(t, env, 1, "stove", 80, 1)

	if _, err := env.orderService.CancelForUser(2, order.ID, ""); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("foreign user cancel should yield ErrOrderNotFound, got %v", err)
	}
	if _, err := env.orderService.GetForUser(2, order.ID); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("foreign user read should yield ErrOrderNotFound, got %v", err)
	}
}

func TestAutoConfirmIsIdempotent(t *testing.T) {
	env := newCheckoutTestEnv(t, "autoconfirm")
	order := placeTestOrder(t, env, 1, "lantern", 25, 1)

	if err := env.orderService.AutoConfirm(order.ID); err != nil {
		t.Fatalf("auto confirm failed: %v", err)
	}
	confirmed, err := env.orderService.GetByID(order.ID)
	if err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if confirmed.Status != constants.OrderStatusConfirmed {
		t.Fatalf("status want confirmed got %s", confirmed.Status)
	}

	// 重放任务与已取消订单均静默
	if err := env.orderService.AutoConfirm(order.ID); err != nil {
		t.Fatalf("auto confirm replay should be silent: %v", err)
	}
	if err := env.orderService.AutoConfirm(99999); err != nil {
		t.Fatalf("auto confirm missing order should be silent: %v", err)
	}

	again, err := env.orderService.GetByID(order.ID)
	if err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if len(again.StatusEvents) != 2 {
		t.Fatalf("replay must not append events, want 2 got %d", len(again.StatusEvents))
	}
}

func TestReturnedRestoresStock(t *testing.T) {
	env := newCheckoutTestEnv(t, "returned")
	order := placeTestOrder(t, env, 1, "jacket-r", 90, 2)

	for _, status := range []string{
		constants.OrderStatusConfirmed,
		constants.OrderStatusProcessing,
		constants.OrderStatusShipped,
		constants.OrderStatusDelivered,
		constants.OrderStatusReturned,
	} {
		if _, err := env.orderService.UpdateStatus(order.ID, status, ""); err != nil {
			t.Fatalf("transition to %s failed: %v", status, err)
		}
	}

	fresh, err := env.productRepo.GetBySlug("jacket-r", false)
	if err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if fresh.Stock != 10 {
		t.Fatalf("stock want restored 10 got %d", fresh.Stock)
	}
}

func TestListByUserScopesOrders(t *testing.T) {
	env := newCheckoutTestEnv(t, "listuser")
	placeTestOrder(t, env, 1, "mat", 30, 1)
	placeTestOrder(t, env, 1, "pillow", 20, 1)
	placeTestOrder(t, env, 2, "towel", 15, 1)

	orders, total, err := env.orderService.ListByUser(1, 1, 10)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 2 || len(orders) != 2 {
		t.Fatalf("user 1 want 2 orders got total=%d len=%d", total, len(orders))
	}
	for _, order := range orders {
		if order.UserID != 1 {
			t.Fatalf("foreign order leaked: %+v", order)
		}
	}
}

func TestTrackForUserByOrderNo(t *testing.T) {
	env := newCheckoutTestEnv(t, "track")
	order := placeTestOrder(t, env, 1, "lantern", 25, 1)

	found, err := env.orderService.TrackForUser(1, order.OrderNo)
	if err != nil {
		t.Fatalf("track order failed: %v", err)
	}
	if found.ID != order.ID {
		t.Fatalf("order id want %d got %d", order.ID, found.ID)
	}

	// 他人订单号与不存在的订单号同样返回未找到
	if _, err := env.orderService.TrackForUser(2, order.OrderNo); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("foreign user want ErrOrderNotFound got %v", err)
	}
	if _, err := env.orderService.TrackForUser(1, "MN-00000000"); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("unknown order no want ErrOrderNotFound got %v", err)
	}
}

func TestComputeAmountKinds(t *testing.T) {
	s := NewDiscountService(nil)
	subtotal := models.NewMoneyFromDecimal(decimal.NewFromInt(200))

	percent := &models.Discount{Kind: constants.DiscountKindPercentage, Value: models.NewMoneyFromDecimal(decimal.NewFromInt(15))}
	if got := s.ComputeAmount(percent, subtotal); !got.Decimal.Equal(decimal.NewFromInt(30)) {
		t.Fatalf("percentage want 30 got %s", got.Decimal.String())
	}

	fixed := &models.Discount{Kind: constants.DiscountKindFixed, Value: models.NewMoneyFromDecimal(decimal.NewFromInt(20))}
	if got := s.ComputeAmount(fixed, subtotal); !got.Decimal.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("fixed want 20 got %s", got.Decimal.String())
	}

	freeShip := &models.Discount{Kind: constants.DiscountKindFreeShipping}
	if got := s.ComputeAmount(freeShip, subtotal); !got.Decimal.IsZero() {
		t.Fatalf("free shipping want 0 got %s", got.Decimal.String())
	}

	// 固定额超过小计时截断
	small := models.NewMoneyFromDecimal(decimal.NewFromInt(5))
	if got := s.ComputeAmount(fixed, small); !got.Decimal.Equal(decimal.NewFromInt(5)) {
		t.Fatalf("clamped fixed want 5 got %s", got.Decimal.String())
	}
}
