package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/marketnest/internal/constants"
	"github.com/marketnest/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupProductRepositoryTest(t *testing.T, name string) *GormProductRepository {
	t.Helper()
	dsn := fmt.Sprintf("file:product_repo_%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Brand{}, &models.Product{}); err != nil {
		t.Fatalf("migrate product failed: %v", err)
	}
	if err := db.Create(&models.Category{Slug: "shoes", Name: "Shoes"}).Error; err != nil {
		t.Fatalf("seed category failed: %v", err)
	}
	return NewProductRepository(db)
}

func createProduct(t *testing.T, repo *GormProductRepository, slug, name string, price int64, rating float64) *models.Product {
	t.Helper()
	product := &models.Product{
		CategoryID: 1,
		Slug:       slug,
		Name:       name,
		Price:      models.NewMoneyFromDecimal(decimal.NewFromInt(price)),
		Rating:     rating,
		Stock:      10,
		IsActive:   true,
	}
	if err := repo.Create(product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func TestProductListPriceAndRatingFilter(t *testing.T) {
	repo := setupProductRepositoryTest(t, "filter")
	createProduct(t, repo, "budget-tee", "Budget Tee", 15, 3.2)
	createProduct(t, repo, "trail-runner", "Trail Runner", 89, 4.6)
	createProduct(t, repo, "leather-boot", "Leather Boot", 149, 4.8)

	minPrice := decimal.NewFromInt(50)
	maxPrice := decimal.NewFromInt(100)
	products, total, err := repo.List(ProductListFilter{
		Page:       1,
		PageSize:   10,
		MinPrice:   &minPrice,
		MaxPrice:   &maxPrice,
		MinRating:  4.0,
		OnlyActive: true,
	})
	if err != nil {
		t.Fatalf("list products failed: %v", err)
	}
	if total != 1 || len(products) != 1 {
		t.Fatalf("want 1 product got total=%d len=%d", total, len(products))
	}
	if products[0].Slug != "trail-runner" {
		t.Fatalf("unexpected product %q", products[0].Slug)
	}
}

func TestProductListSearchAndSort(t *testing.T) {
	repo := setupProductRepositoryTest(t, "sort")
	createProduct(t, repo, "canvas-low", "Canvas Low", 40, 4.1)
	createProduct(t, repo, "canvas-high", "Canvas High", 60, 4.5)
	createProduct(t, repo, "wool-sock", "Wool Sock", 9, 4.9)

	products, total, err := repo.List(ProductListFilter{
		Page:      1,
		PageSize:  10,
		Search:    "canvas",
		SortBy:    constants.ProductSortPrice,
		SortOrder: constants.SortOrderAsc,
	})
	if err != nil {
		t.Fatalf("list products failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("want total 2 got %d", total)
	}
	if products[0].Slug != "canvas-low" || products[1].Slug != "canvas-high" {
		t.Fatalf("unexpected sort order: %q, %q", products[0].Slug, products[1].Slug)
	}
}

func TestAdjustStockNeverGoesNegative(t *testing.T) {
	repo := setupProductRepositoryTest(t, "stock")
	product := createProduct(t, repo, "wool-runner", "Wool Runner", 20, 4.0)

	affected, err := repo.AdjustStock(product.ID, -10)
	if err != nil {
		t.Fatalf("deduct stock failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("deduct affected want 1 got %d", affected)
	}

	affected, err = repo.AdjustStock(product.ID, -1)
	if err != nil {
		t.Fatalf("over-deduct errored: %v", err)
	}
	if affected != 0 {
		t.Fatalf("over-deduct affected want 0 got %d", affected)
	}
}
