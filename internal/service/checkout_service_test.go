package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/marketnest/internal/config"
	"github.com/marketnest/internal/constants"
	"github.com/marketnest/internal/models"
	"github.com/marketnest/internal/queue"
	"github.com/marketnest/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type checkoutTestEnv struct {
	db              *gorm.DB
	cartRepo        *repository.GormCartRepository
	productRepo     *repository.GormProductRepository
	discountRepo    *repository.GormDiscountRepository
	orderRepo       *repository.GormOrderRepository
	cartService     *CartService
	orderService    *OrderService
	checkoutService *CheckoutService
}

func newCheckoutTestEnv(t *testing.T, name string) *checkoutTestEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:checkout_service_%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Category{}, &models.Brand{}, &models.Product{},
		&models.Cart{}, &models.CartItem{}, &models.Discount{},
		&models.Order{}, &models.OrderItem{}, &models.OrderStatusEvent{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	cartRepo := repository.NewCartRepository(db)
	productRepo := repository.NewProductRepository(db)
	discountRepo := repository.NewDiscountRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	queueClient, err := queue.NewClient(&config.QueueConfig{Enabled: false})
	if err != nil {
		t.Fatalf("new queue client failed: %v", err)
	}

	discountService := NewDiscountService(discountRepo)
	cartService := NewCartService(cartRepo, productRepo, discountService, testCheckoutConfig())
	orderService := NewOrderService(orderRepo, productRepo, queueClient, testCheckoutConfig())
	checkoutService := NewCheckoutService(cartService, orderService, cartRepo)

	return &checkoutTestEnv{
		db:              db,
		cartRepo:        cartRepo,
		productRepo:     productRepo,
		discountRepo:    discountRepo,
		orderRepo:       orderRepo,
		cartService:     cartService,
		orderService:    orderService,
		checkoutService: checkoutService,
	}
}

func (env *checkoutTestEnv) seedProduct(t *testing.T, slug string, price int64, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		CategoryID: 1,
		Slug:       slug,
		Name:       slug,
		Price:      models.NewMoneyFromDecimal(decimal.NewFromInt(price)),
		Stock:      stock,
		IsActive:   true,
	}
	if err := env.productRepo.Create(product); err != nil {
		t.Fatalf("seed product failed: %v", err)
	}
	return product
}

func validCheckoutInput() CheckoutInput {
	return CheckoutInput{
		Name:                  "Jordan Reyes",
		Email:                 "jordan@example.com",
		Phone:                 "555-0134",
		Street:                "12 Harbor Lane",
		City:                  "Portland",
		State:                 "OR",
		ZipCode:               "97201",
		BillingSameAsShipping: true,
		PaymentMethod:         constants.PaymentMethodCard,
		CardNumber:            "4242424242424242",
	}
}

func TestPlaceOrderSnapshotsCartAndClearsIt(t *testing.T) {
	env := newCheckoutTestEnv(t, "happy")
	product := env.seedProduct(t, "parka", 150, 10)
	if err := env.discountRepo.Create(&models.Discount{
		Code:     "SAVE10",
		Kind:     constants.DiscountKindPercentage,
		Value:    models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		IsActive: true,
	}); err != nil {
		t.Fatalf("seed discount failed: %v", err)
	}

	if _, err := env.cartService.AddItem(1, AddItemInput{ProductID: product.ID, Quantity: 1}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, _, err := env.cartService.ApplyDiscount(1, "SAVE10"); err != nil {
		t.Fatalf("apply discount failed: %v", err)
	}

	order, err := env.checkoutService.PlaceOrder(1, validCheckoutInput())
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}

	// 150 小计，10% 折扣 15，折后 135 免运费，税 10.8，总计 145.8
	if !order.Subtotal.Decimal.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("subtotal want 150 got %s", order.Subtotal.Decimal.String())
	}
	if !order.DiscountAmount.Decimal.Equal(decimal.NewFromInt(15)) {
		t.Fatalf("discount want 15 got %s", order.DiscountAmount.Decimal.String())
	}
	if !order.ShippingCost.Decimal.IsZero() {
		t.Fatalf("shipping want 0 got %s", order.ShippingCost.Decimal.String())
	}
	if !order.Tax.Decimal.Equal(decimal.RequireFromString("10.8")) {
		t.Fatalf("tax want 10.8 got %s", order.Tax.Decimal.String())
	}
	if !order.TotalAmount.Decimal.Equal(decimal.RequireFromString("145.8")) {
		t.Fatalf("total want 145.8 got %s", order.TotalAmount.Decimal.String())
	}
	if order.Status != constants.OrderStatusPending {
		t.Fatalf("status want pending got %s", order.Status)
	}
	if order.PaymentLast4 != "4242" {
		t.Fatalf("payment last4 want 4242 got %s", order.PaymentLast4)
	}
	// 账单与收货一致时，账单快照复用收货四项
	if order.BillingAddress["street"] != "12 Harbor Lane" || order.BillingAddress["zip_code"] != "97201" {
		t.Fatalf("unexpected billing address: %+v", order.BillingAddress)
	}
	if len(order.StatusEvents) != 1 || order.StatusEvents[0].Status != constants.OrderStatusPending {
		t.Fatalf("expected single pending status event, got %+v", order.StatusEvents)
	}

	// 下单成功后购物车清空
	view, err := env.cartService.Get(1)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if len(view.Cart.Items) != 0 || view.Cart.DiscountCode != "" {
		t.Fatalf("cart should be cleared after checkout: %+v", view.Cart)
	}

	// 库存已扣减
	fresh, err := env.productRepo.GetByID(product.ID)
	if err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if fresh.Stock != 9 {
		t.Fatalf("stock want 9 got %d", fresh.Stock)
	}
}

func TestPreviewReturnsTotalsWithoutPlacingOrder(t *testing.T) {
	env := newCheckoutTestEnv(t, "preview")
	product := env.seedProduct(t, "beanie", 20, 5)

	if _, err := env.cartService.AddItem(1, AddItemInput{ProductID: product.ID, Quantity: 2}); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	view, err := env.checkoutService.Preview(1)
	if err != nil {
		t.Fatalf("preview failed: %v", err)
	}
	// 40 小计，不足免运费门槛，运费 9.99
	if !view.Totals.Subtotal.Decimal.Equal(decimal.NewFromInt(40)) {
		t.Fatalf("subtotal want 40 got %s", view.Totals.Subtotal.Decimal.String())
	}
	if !view.Totals.ShippingCost.Decimal.Equal(decimal.RequireFromString("9.99")) {
		t.Fatalf("shipping want 9.99 got %s", view.Totals.ShippingCost.Decimal.String())
	}

	// 预览不生单也不清车
	orders, total, err := env.orderService.ListByUser(1, 1, 10)
	if err != nil {
		t.Fatalf("list orders failed: %v", err)
	}
	if total != 0 || len(orders) != 0 {
		t.Fatalf("preview must not create orders, got %d", total)
	}
	fresh, err := env.cartService.Get(1)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if len(fresh.Cart.Items) != 1 {
		t.Fatalf("cart should be untouched after preview: %+v", fresh.Cart)
	}
}

func TestPreviewEmptyCartRejected(t *testing.T) {
	env := newCheckoutTestEnv(t, "preview_empty")
	if _, err := env.checkoutService.Preview(1); !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("want ErrCartEmpty got %v", err)
	}
}

func TestPlaceOrderEmptyCartRejected(t *testing.T) {
	env := newCheckoutTestEnv(t, "empty")
	if _, err := env.checkoutService.PlaceOrder(1, validCheckoutInput()); !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("want ErrCartEmpty got %v", err)
	}
}

func TestPlaceOrderValidationErrors(t *testing.T) {
	env := newCheckoutTestEnv(t, "validate")

	input := validCheckoutInput()
	input.Email = "not-an-email"
	input.ZipCode = "abc"
	input.CardNumber = "12"

	_, err := env.checkoutService.PlaceOrder(1, input)
	verr, ok := AsValidationError(err)
	if !ok {
		t.Fatalf("want ValidationError got %v", err)
	}
	for _, field := range []string{"email", "zip_code", "card_number"} {
		if _, present := verr.Fields[field]; !present {
			t.Fatalf("expected field error for %s: %+v", field, verr.Fields)
		}
	}
}

func TestPlaceOrderSeparateBillingAddress(t *testing.T) {
	env := newCheckoutTestEnv(t, "billing")
	product := env.seedProduct(t, "satchel", 30, 5)
	if _, err := env.cartService.AddItem(1, AddItemInput{ProductID: product.ID, Quantity: 1}); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	input := validCheckoutInput()
	input.BillingSameAsShipping = false
	input.BillingStreet = "88 Ledger Ave"
	input.BillingCity = "Salem"
	input.BillingState = "OR"
	input.BillingZipCode = "97301"

	order, err := env.checkoutService.PlaceOrder(1, input)
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}
	if order.BillingAddress["street"] != "88 Ledger Ave" || order.BillingAddress["city"] != "Salem" {
		t.Fatalf("unexpected billing address: %+v", order.BillingAddress)
	}
	if order.ShippingAddress["street"] != "12 Harbor Lane" {
		t.Fatalf("shipping address should stay untouched: %+v", order.ShippingAddress)
	}

	// 重新加载确认账单快照已落库
	loaded, err := env.orderService.GetForUser(1, order.ID)
	if err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if loaded.BillingAddress["zip_code"] != "97301" {
		t.Fatalf("persisted billing address mismatch: %+v", loaded.BillingAddress)
	}
}

func TestPlaceOrderMissingBillingRejected(t *testing.T) {
	env := newCheckoutTestEnv(t, "billing_missing")

	input := validCheckoutInput()
	input.BillingSameAsShipping = false
	input.BillingZipCode = "abc"

	_, err := env.checkoutService.PlaceOrder(1, input)
	verr, ok := AsValidationError(err)
	if !ok {
		t.Fatalf("want ValidationError got %v", err)
	}
	for _, field := range []string{"billing_street", "billing_city", "billing_state", "billing_zip_code"} {
		if _, present := verr.Fields[field]; !present {
			t.Fatalf("expected field error for %s: %+v", field, verr.Fields)
		}
	}
}

func TestPlaceOrderFailureLeavesCartIntact(t *testing.T) {
	env := newCheckoutTestEnv(t, "rollback")
	product := env.seedProduct(t, "drone", 300, 2)

	if _, err := env.cartService.AddItem(1, AddItemInput{ProductID: product.ID, Quantity: 2}); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	// 他处先买走库存，下单时扣减失败
	if _, err := env.productRepo.AdjustStock(product.ID, -1); err != nil {
		t.Fatalf("drain stock failed: %v", err)
	}

	_, err := env.checkoutService.PlaceOrder(1, validCheckoutInput())
	if !errors.Is(err, ErrStockInsufficient) {
		t.Fatalf("want ErrStockInsufficient got %v", err)
	}

	// 失败的下单不动购物车
	view, err := env.cartService.Get(1)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if len(view.Cart.Items) != 1 || view.Cart.Items[0].Quantity != 2 {
		t.Fatalf("cart should be intact after failed checkout: %+v", view.Cart.Items)
	}

	// 订单不存在
	var count int64
	if err := env.db.Model(&models.Order{}).Count(&count).Error; err != nil {
		t.Fatalf("count orders failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("no order should exist, got %d", count)
	}
}
