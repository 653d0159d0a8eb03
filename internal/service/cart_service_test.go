package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/marketnest/internal/config"
	"github.com/marketnest/internal/constants"
	"github.com/marketnest/internal/models"
	"github.com/marketnest/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func testCheckoutConfig() config.CheckoutConfig {
	return config.CheckoutConfig{
		FreeShippingThreshold:   50,
		ShippingFee:             9.99,
		TaxRate:                 0.08,
		AutoConfirmDelaySeconds: 300,
	}
}

type cartTestEnv struct {
	db           *gorm.DB
	cartRepo     *repository.GormCartRepository
	productRepo  *repository.GormProductRepository
	discountRepo *repository.GormDiscountRepository
	cartService  *CartService
}

func newCartTestEnv(t *testing.T, name string) *cartTestEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:cart_service_%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Category{}, &models.Brand{}, &models.Product{},
		&models.Cart{}, &models.CartItem{}, &models.Discount{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	cartRepo := repository.NewCartRepository(db)
	productRepo := repository.NewProductRepository(db)
	discountRepo := repository.NewDiscountRepository(db)
	discountService := NewDiscountService(discountRepo)
	cartService := NewCartService(cartRepo, productRepo, discountService, testCheckoutConfig())

	return &cartTestEnv{
		db:           db,
		cartRepo:     cartRepo,
		productRepo:  productRepo,
		discountRepo: discountRepo,
		cartService:  cartService,
	}
}

func (env *cartTestEnv) seedProduct(t *testing.T, slug string, price int64, stock int) *models.Product {
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

func (env *cartTestEnv) seedDiscount(t *testing.T, code, kind string, value int64) {
	t.Helper()
	if err := env.discountRepo.Create(&models.Discount{
		Code:     code,
		Kind:     kind,
		Value:    models.NewMoneyFromDecimal(decimal.NewFromInt(value)),
		IsActive: true,
	}); err != nil {
		t.Fatalf("seed discount failed: %v", err)
	}
}

func TestAddItemMergesSameVariant(t *testing.T) {
	env := newCartTestEnv(t, "merge")
	product := env.seedProduct(t, "runner", 100, 10)

	if _, err := env.cartService.AddItem(1, AddItemInput{ProductID: product.ID, Quantity: 2, Size: "42"}); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	view, err := env.cartService.AddItem(1, AddItemInput{ProductID: product.ID, Quantity: 3, Size: "42"})
	if err != nil {
		t.Fatalf("second add failed: %v", err)
	}

	if len(view.Cart.Items) != 1 {
		t.Fatalf("expected single merged line, got %d", len(view.Cart.Items))
	}
	if view.Cart.Items[0].Quantity != 5 {
		t.Fatalf("merged quantity want 5 got %d", view.Cart.Items[0].Quantity)
	}

	// 不同规格是独立行
	view, err = env.cartService.AddItem(1, AddItemInput{ProductID: product.ID, Quantity: 1, Size: "43"})
	if err != nil {
		t.Fatalf("variant add failed: %v", err)
	}
	if len(view.Cart.Items) != 2 {
		t.Fatalf("expected 2 lines for distinct variants, got %d", len(view.Cart.Items))
	}
}

func TestAddItemClampsAtStock(t *testing.T) {
	env := newCartTestEnv(t, "clamp")
	product := env.seedProduct(t, "limited", 30, 3)

	view, err := env.cartService.AddItem(1, AddItemInput{ProductID: product.ID, Quantity: 2})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	view, err = env.cartService.AddItem(1, AddItemInput{ProductID: product.ID, Quantity: 5})
	if err != nil {
		t.Fatalf("second add failed: %v", err)
	}
	if view.Cart.Items[0].Quantity != 3 {
		t.Fatalf("quantity should clamp at stock 3, got %d", view.Cart.Items[0].Quantity)
	}
}

func TestAddItemRejectsBadInput(t *testing.T) {
	env := newCartTestEnv(t, "badinput")
	product := env.seedProduct(t, "plain", 10, 5)

	if _, err := env.cartService.AddItem(1, AddItemInput{ProductID: product.ID, Quantity: 0}); !errors.Is(err, ErrQuantityInvalid) {
		t.Fatalf("want ErrQuantityInvalid got %v", err)
	}
	if _, err := env.cartService.AddItem(1, AddItemInput{ProductID: 999, Quantity: 1}); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("want ErrProductNotFound got %v", err)
	}
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	env := newCartTestEnv(t, "setqty")
	product := env.seedProduct(t, "tee", 20, 10)

	if _, err := env.cartService.AddItem(1, AddItemInput{ProductID: product.ID, Quantity: 2}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	view, err := env.cartService.UpdateQuantity(1, product.ID, "", "", 0)
	if err != nil {
		t.Fatalf("update quantity failed: %v", err)
	}
	if len(view.Cart.Items) != 0 {
		t.Fatalf("line should be removed, got %d lines", len(view.Cart.Items))
	}

	// 不存在的行静默成功
	if _, err := env.cartService.UpdateQuantity(1, 555, "", "", 3); err != nil {
		t.Fatalf("missing line update should be silent, got %v", err)
	}
}

func TestDecrementFloorsAtOne(t *testing.T) {
	env := newCartTestEnv(t, "decrement")
	product := env.seedProduct(t, "cap", 12, 10)

	if _, err := env.cartService.AddItem(1, AddItemInput{ProductID: product.ID, Quantity: 1}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	view, err := env.cartService.DecrementItem(1, product.ID, "", "")
	if err != nil {
		t.Fatalf("decrement failed: %v", err)
	}
	if view.Cart.Items[0].Quantity != 1 {
		t.Fatalf("quantity should floor at 1, got %d", view.Cart.Items[0].Quantity)
	}
}

func TestApplyDiscountPercentageTotals(t *testing.T) {
	env := newCartTestEnv(t, "save10")
	product := env.seedProduct(t, "jacket", 100, 10)
	env.seedDiscount(t, "SAVE10", constants.DiscountKindPercentage, 10)

	if _, err := env.cartService.AddItem(1, AddItemInput{ProductID: product.ID, Quantity: 1}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	view, previous, err := env.cartService.ApplyDiscount(1, "save10")
	if err != nil {
		t.Fatalf("apply discount failed: %v", err)
	}
	if previous != "" {
		t.Fatalf("previous code want empty got %q", previous)
	}

	if !view.Totals.DiscountAmount.Decimal.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("discount want 10 got %s", view.Totals.DiscountAmount.Decimal.String())
	}
	// 折后 90 >= 50 免运费；税 90*0.08=7.2；总额 97.2
	if !view.Totals.ShippingCost.Decimal.IsZero() {
		t.Fatalf("shipping want 0 got %s", view.Totals.ShippingCost.Decimal.String())
	}
	if !view.Totals.Tax.Decimal.Equal(decimal.RequireFromString("7.2")) {
		t.Fatalf("tax want 7.2 got %s", view.Totals.Tax.Decimal.String())
	}
	if !view.Totals.Total.Decimal.Equal(decimal.RequireFromString("97.2")) {
		t.Fatalf("total want 97.2 got %s", view.Totals.Total.Decimal.String())
	}
}

func TestApplyDiscountReplacePreviousCode(t *testing.T) {
	env := newCartTestEnv(t, "replace")
	product := env.seedProduct(t, "boots", 200, 10)
	env.seedDiscount(t, "SAVE10", constants.DiscountKindPercentage, 10)
	env.seedDiscount(t, "WELCOME20", constants.DiscountKindFixed, 20)

	if _, err := env.cartService.AddItem(1, AddItemInput{ProductID: product.ID, Quantity: 1}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, _, err := env.cartService.ApplyDiscount(1, "SAVE10"); err != nil {
		t.Fatalf("apply SAVE10 failed: %v", err)
	}
	view, previous, err := env.cartService.ApplyDiscount(1, "WELCOME20")
	if err != nil {
		t.Fatalf("apply WELCOME20 failed: %v", err)
	}
	if previous != "SAVE10" {
		t.Fatalf("previous want SAVE10 got %q", previous)
	}
	if view.Cart.DiscountCode != "WELCOME20" {
		t.Fatalf("active code want WELCOME20 got %q", view.Cart.DiscountCode)
	}
	if !view.Totals.DiscountAmount.Decimal.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("discount want 20 got %s", view.Totals.DiscountAmount.Decimal.String())
	}
}

func TestApplyDiscountBogusCodeLeavesCartUntouched(t *testing.T) {
	env := newCartTestEnv(t, "bogus")
	product := env.seedProduct(t, "scarf", 25, 10)

	if _, err := env.cartService.AddItem(1, AddItemInput{ProductID: product.ID, Quantity: 1}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, _, err := env.cartService.ApplyDiscount(1, "NOPE"); !errors.Is(err, ErrInvalidDiscountCode) {
		t.Fatalf("want ErrInvalidDiscountCode got %v", err)
	}

	view, err := env.cartService.Get(1)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if view.Cart.DiscountCode != "" {
		t.Fatalf("cart should have no discount, got %q", view.Cart.DiscountCode)
	}
	if len(view.Cart.Items) != 1 {
		t.Fatalf("cart items should be untouched, got %d", len(view.Cart.Items))
	}
}

func TestFixedDiscountClampedToSubtotal(t *testing.T) {
	env := newCartTestEnv(t, "clampfix")
	product := env.seedProduct(t, "socks", 12, 10)
	env.seedDiscount(t, "WELCOME20", constants.DiscountKindFixed, 20)

	if _, err := env.cartService.AddItem(1, AddItemInput{ProductID: product.ID, Quantity: 1}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	view, _, err := env.cartService.ApplyDiscount(1, "WELCOME20")
	if err != nil {
		t.Fatalf("apply discount failed: %v", err)
	}
	// 固定减 20 超过小计 12，折扣截断为 12，折后 0
	if !view.Totals.DiscountAmount.Decimal.Equal(decimal.NewFromInt(12)) {
		t.Fatalf("discount want 12 got %s", view.Totals.DiscountAmount.Decimal.String())
	}
	if !view.Totals.Total.Decimal.Equal(decimal.RequireFromString("9.99")) {
		t.Fatalf("total want 9.99 (shipping only) got %s", view.Totals.Total.Decimal.String())
	}
}

func TestShippingThreshold(t *testing.T) {
	env := newCartTestEnv(t, "shipping")
	cheap := env.seedProduct(t, "cheap", 20, 10)
	costly := env.seedProduct(t, "costly", 80, 10)

	view, err := env.cartService.AddItem(1, AddItemInput{ProductID: cheap.ID, Quantity: 1})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if !view.Totals.ShippingCost.Decimal.Equal(decimal.RequireFromString("9.99")) {
		t.Fatalf("below threshold shipping want 9.99 got %s", view.Totals.ShippingCost.Decimal.String())
	}

	view, err = env.cartService.AddItem(1, AddItemInput{ProductID: costly.ID, Quantity: 1})
	if err != nil {
		t.Fatalf("second add failed: %v", err)
	}
	if !view.Totals.ShippingCost.Decimal.IsZero() {
		t.Fatalf("above threshold shipping want 0 got %s", view.Totals.ShippingCost.Decimal.String())
	}
}

func TestFreeShippingDiscountOverridesFee(t *testing.T) {
	env := newCartTestEnv(t, "freeship")
	product := env.seedProduct(t, "mug", 10, 10)
	env.seedDiscount(t, "FREESHIP", constants.DiscountKindFreeShipping, 0)

	if _, err := env.cartService.AddItem(1, AddItemInput{ProductID: product.ID, Quantity: 1}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	view, _, err := env.cartService.ApplyDiscount(1, "FREESHIP")
	if err != nil {
		t.Fatalf("apply discount failed: %v", err)
	}
	if !view.Totals.DiscountAmount.Decimal.IsZero() {
		t.Fatalf("free shipping should not discount items, got %s", view.Totals.DiscountAmount.Decimal.String())
	}
	if !view.Totals.ShippingCost.Decimal.IsZero() {
		t.Fatalf("shipping want 0 got %s", view.Totals.ShippingCost.Decimal.String())
	}
}

func TestClearEmptiesCartAndDiscount(t *testing.T) {
	env := newCartTestEnv(t, "clear")
	product := env.seedProduct(t, "belt", 35, 10)
	env.seedDiscount(t, "SAVE10", constants.DiscountKindPercentage, 10)

	if _, err := env.cartService.AddItem(1, AddItemInput{ProductID: product.ID, Quantity: 2}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, _, err := env.cartService.ApplyDiscount(1, "SAVE10"); err != nil {
		t.Fatalf("apply discount failed: %v", err)
	}

	view, err := env.cartService.Clear(1)
	if err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if len(view.Cart.Items) != 0 || view.Cart.DiscountCode != "" {
		t.Fatalf("cart should be empty without discount: %+v", view.Cart)
	}
	if view.Totals.ItemCount != 0 || !view.Totals.Total.Decimal.IsZero() {
		t.Fatalf("empty cart totals should be zero: %+v", view.Totals)
	}
}

func TestStaleSnapshotRejected(t *testing.T) {
	env := newCartTestEnv(t, "stale")
	product := env.seedProduct(t, "lamp", 45, 10)

	view, err := env.cartService.AddItem(1, AddItemInput{ProductID: product.ID, Quantity: 1})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}

	// 模拟他处并发写入：版本号前进一格
	stale := view.Cart
	if err := env.cartRepo.SaveSnapshot(stale, stale.Version); err != nil {
		t.Fatalf("concurrent snapshot failed: %v", err)
	}

	stale.Version -= 1
	err = env.cartRepo.SaveSnapshot(stale, stale.Version)
	if !errors.Is(err, repository.ErrVersionConflict) {
		t.Fatalf("want ErrVersionConflict got %v", err)
	}
}
