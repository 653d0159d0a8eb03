package repository

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/marketnest/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupCartRepositoryTest(t *testing.T, name string) *GormCartRepository {
	t.Helper()
	dsn := fmt.Sprintf("file:cart_repo_%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Cart{}, &models.CartItem{}); err != nil {
		t.Fatalf("migrate cart failed: %v", err)
	}
	return NewCartRepository(db)
}

func TestGetOrCreateByUserCreatesEmptyCart(t *testing.T) {
	repo := setupCartRepositoryTest(t, "create")

	cart, err := repo.GetOrCreateByUser(1)
	if err != nil {
		t.Fatalf("get or create cart failed: %v", err)
	}
	if cart == nil || cart.ID == 0 {
		t.Fatalf("expected persisted cart, got %+v", cart)
	}
	if len(cart.Items) != 0 {
		t.Fatalf("new cart items want 0 got %d", len(cart.Items))
	}

	again, err := repo.GetOrCreateByUser(1)
	if err != nil {
		t.Fatalf("get or create cart again failed: %v", err)
	}
	if again.ID != cart.ID {
		t.Fatalf("cart id changed: want %d got %d", cart.ID, again.ID)
	}
}

func TestSaveSnapshotBumpsVersionAndReplacesItems(t *testing.T) {
	repo := setupCartRepositoryTest(t, "snapshot")

	cart, err := repo.GetOrCreateByUser(2)
	if err != nil {
		t.Fatalf("get or create cart failed: %v", err)
	}

	cart.Items = []models.CartItem{
		{
			ProductID: 10,
			Name:      "Canvas Sneakers",
			Size:      "42",
			Color:     "white",
			UnitPrice: models.NewMoneyFromDecimal(decimal.NewFromInt(59)),
			Quantity:  2,
		},
	}
	if err := repo.SaveSnapshot(cart, 0); err != nil {
		t.Fatalf("save snapshot failed: %v", err)
	}
	if cart.Version != 1 {
		t.Fatalf("version want 1 got %d", cart.Version)
	}

	loaded, err := repo.GetByUser(2)
	if err != nil {
		t.Fatalf("load cart failed: %v", err)
	}
	if len(loaded.Items) != 1 || loaded.Items[0].Quantity != 2 {
		t.Fatalf("unexpected items after snapshot: %+v", loaded.Items)
	}

	loaded.Items = nil
	if err := repo.SaveSnapshot(loaded, 1); err != nil {
		t.Fatalf("save empty snapshot failed: %v", err)
	}
	reloaded, err := repo.GetByUser(2)
	if err != nil {
		t.Fatalf("reload cart failed: %v", err)
	}
	if len(reloaded.Items) != 0 {
		t.Fatalf("items want 0 after empty snapshot got %d", len(reloaded.Items))
	}
	if reloaded.Version != 2 {
		t.Fatalf("version want 2 got %d", reloaded.Version)
	}
}

func TestSaveSnapshotRewritesSameVariantRepeatedly(t *testing.T) {
	repo := setupCartRepositoryTest(t, "rewrite")

	cart, err := repo.GetOrCreateByUser(5)
	if err != nil {
		t.Fatalf("get or create cart failed: %v", err)
	}

	cart.Items = []models.CartItem{
		{
			ProductID: 12,
			Name:      "Denim Jacket",
			Size:      "M",
			Color:     "indigo",
			UnitPrice: models.NewMoneyFromDecimal(decimal.NewFromInt(89)),
			Quantity:  1,
		},
	}
	if err := repo.SaveSnapshot(cart, 0); err != nil {
		t.Fatalf("first snapshot failed: %v", err)
	}

	// 同一变体键在后续快照里反复重写，物理删除后再插入不应撞唯一索引。
	for version := int64(1); version <= 3; version++ {
		loaded, err := repo.GetByUser(5)
		if err != nil {
			t.Fatalf("load cart at version %d failed: %v", version, err)
		}
		loaded.Items[0].Quantity++
		if err := repo.SaveSnapshot(loaded, version); err != nil {
			t.Fatalf("snapshot rewrite at version %d failed: %v", version, err)
		}
	}

	final, err := repo.GetByUser(5)
	if err != nil {
		t.Fatalf("load final cart failed: %v", err)
	}
	if len(final.Items) != 1 {
		t.Fatalf("items want 1 got %d", len(final.Items))
	}
	if final.Items[0].Quantity != 4 {
		t.Fatalf("quantity want 4 got %d", final.Items[0].Quantity)
	}
	if final.Version != 4 {
		t.Fatalf("version want 4 got %d", final.Version)
	}
}

func TestSaveSnapshotStaleVersionRejected(t *testing.T) {
	repo := setupCartRepositoryTest(t, "stale")

	cart, err := repo.GetOrCreateByUser(3)
	if err != nil {
		t.Fatalf("get or create cart failed: %v", err)
	}
	if err := repo.SaveSnapshot(cart, 0); err != nil {
		t.Fatalf("first snapshot failed: %v", err)
	}

	err = repo.SaveSnapshot(cart, 0)
	if !errors.Is(err, ErrVersionConflict) {
		t.Fatalf("want ErrVersionConflict got %v", err)
	}
}

func TestClearByUserIsIdempotent(t *testing.T) {
	repo := setupCartRepositoryTest(t, "clear")

	if err := repo.ClearByUser(99); err != nil {
		t.Fatalf("clear missing cart should be nil error, got %v", err)
	}

	cart, err := repo.GetOrCreateByUser(4)
	if err != nil {
		t.Fatalf("get or create cart failed: %v", err)
	}
	cart.DiscountCode = "SAVE10"
	cart.Items = []models.CartItem{
		{
			ProductID: 11,
			Name:      "Wool Beanie",
			UnitPrice: models.NewMoneyFromDecimal(decimal.NewFromInt(19)),
			Quantity:  1,
		},
	}
	if err := repo.SaveSnapshot(cart, 0); err != nil {
		t.Fatalf("save snapshot failed: %v", err)
	}

	if err := repo.ClearByUser(4); err != nil {
		t.Fatalf("clear cart failed: %v", err)
	}
	if err := repo.ClearByUser(4); err != nil {
		t.Fatalf("second clear should stay nil, got %v", err)
	}

	loaded, err := repo.GetByUser(4)
	if err != nil {
		t.Fatalf("load cart failed: %v", err)
	}
	if len(loaded.Items) != 0 {
		t.Fatalf("items want 0 after clear got %d", len(loaded.Items))
	}
	if loaded.DiscountCode != "" {
		t.Fatalf("discount code should be cleared, got %q", loaded.DiscountCode)
	}
}
