package main

import (
	"fmt"

	"github.com/marketnest/internal/config"
	"github.com/marketnest/internal/constants"
	"github.com/marketnest/internal/logger"
	"github.com/marketnest/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 添加分类
	categories := []models.Category{
		{Slug: "clothing", Name: "Clothing", SortOrder: 1},
		{Slug: "shoes", Name: "Shoes", SortOrder: 2},
		{Slug: "accessories", Name: "Accessories", SortOrder: 3},
		{Slug: "electronics", Name: "Electronics", SortOrder: 4},
	}
	for _, cat := range categories {
		var existing models.Category
		if err := models.DB.Where("slug = ?", cat.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&cat).Error; err != nil {
				stdLog.Printf("Failed to create category %s: %v", cat.Slug, err)
			} else {
				stdLog.Printf("Created category: %s", cat.Slug)
			}
		} else {
			stdLog.Printf("Category already exists: %s", cat.Slug)
		}
	}

	categoryIDs := map[string]uint{}
	var categoryList []models.Category
	if err := models.DB.Find(&categoryList).Error; err != nil {
		stdLog.Printf("Failed to load categories: %v", err)
	}
	for _, cat := range categoryList {
		categoryIDs[cat.Slug] = cat.ID
	}

	// 添加品牌
	brands := []models.Brand{
		{Slug: "nestwear", Name: "NestWear"},
		{Slug: "urbanstep", Name: "UrbanStep"},
		{Slug: "novatech", Name: "NovaTech"},
	}
	for _, brand := range brands {
		var existing models.Brand
		if err := models.DB.Where("slug = ?", brand.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&brand).Error; err != nil {
				stdLog.Printf("Failed to create brand %s: %v", brand.Slug, err)
			} else {
				stdLog.Printf("Created brand: %s", brand.Slug)
			}
		} else {
			stdLog.Printf("Brand already exists: %s", brand.Slug)
		}
	}

	brandIDs := map[string]uint{}
	var brandList []models.Brand
	if err := models.DB.Find(&brandList).Error; err != nil {
		stdLog.Printf("Failed to load brands: %v", err)
	}
	for _, brand := range brandList {
		brandIDs[brand.Slug] = brand.ID
	}

	// 添加商品
	products := []models.Product{
		{
			Slug:          "classic-cotton-tee",
			Name:          "Classic Cotton Tee",
			Description:   "Soft combed cotton with a relaxed everyday fit.",
			Price:         models.NewMoneyFromDecimal(decimal.NewFromFloat(24.99)),
			OriginalPrice: models.NewMoneyFromDecimal(decimal.NewFromFloat(29.99)),
			CategoryID:    categoryIDs["clothing"],
			BrandID:       brandIDs["nestwear"],
			Sizes:         models.StringArray([]string{"S", "M", "L", "XL"}),
			Colors:        models.StringArray([]string{"white", "black", "navy"}),
			Stock:         120,
			IsActive:      true,
			SortOrder:     1,
		},
		{
			Slug:          "denim-jacket",
			Name:          "Denim Jacket",
			Description:   "Stonewashed denim jacket with brass hardware.",
			Price:         models.NewMoneyFromDecimal(decimal.NewFromFloat(79.99)),
			OriginalPrice: models.NewMoneyFromDecimal(decimal.NewFromFloat(99.99)),
			CategoryID:    categoryIDs["clothing"],
			BrandID:       brandIDs["nestwear"],
			Sizes:         models.StringArray([]string{"M", "L", "XL"}),
			Colors:        models.StringArray([]string{"blue"}),
			Stock:         40,
			IsActive:      true,
			SortOrder:     2,
		},
		{
			Slug:          "trail-runner-sneakers",
			Name:          "Trail Runner Sneakers",
			Description:   "Lightweight trail sneakers with grippy outsole.",
			Price:         models.NewMoneyFromDecimal(decimal.NewFromFloat(89.99)),
			OriginalPrice: models.NewMoneyFromDecimal(decimal.NewFromFloat(89.99)),
			CategoryID:    categoryIDs["shoes"],
			BrandID:       brandIDs["urbanstep"],
			Sizes:         models.StringArray([]string{"40", "41", "42", "43", "44"}),
			Colors:        models.StringArray([]string{"gray", "green"}),
			Stock:         60,
			IsActive:      true,
			SortOrder:     3,
		},
		{
			Slug:          "leather-belt",
			Name:          "Leather Belt",
			Description:   "Full-grain leather belt with matte buckle.",
			Price:         models.NewMoneyFromDecimal(decimal.NewFromFloat(34.99)),
			OriginalPrice: models.NewMoneyFromDecimal(decimal.NewFromFloat(34.99)),
			CategoryID:    categoryIDs["accessories"],
			BrandID:       brandIDs["nestwear"],
			Stock:         200,
			IsActive:      true,
			SortOrder:     4,
		},
		{
			Slug:          "wireless-earbuds",
			Name:          "Wireless Earbuds",
			Description:   "Bluetooth 5.3 earbuds with active noise cancellation.",
			Price:         models.NewMoneyFromDecimal(decimal.NewFromFloat(129.99)),
			OriginalPrice: models.NewMoneyFromDecimal(decimal.NewFromFloat(159.99)),
			CategoryID:    categoryIDs["electronics"],
			BrandID:       brandIDs["novatech"],
			Colors:        models.StringArray([]string{"white", "black"}),
			Stock:         80,
			IsActive:      true,
			SortOrder:     5,
		},
		{
			Slug:          "smart-watch-lite",
			Name:          "Smart Watch Lite",
			Description:   "Fitness tracking, heart rate and 10-day battery.",
			Price:         models.NewMoneyFromDecimal(decimal.NewFromFloat(149.99)),
			OriginalPrice: models.NewMoneyFromDecimal(decimal.NewFromFloat(179.99)),
			CategoryID:    categoryIDs["electronics"],
			BrandID:       brandIDs["novatech"],
			Colors:        models.StringArray([]string{"black", "silver"}),
			Stock:         3, // 低库存演示商品
			IsActive:      true,
			SortOrder:     6,
		},
	}
	for _, product := range products {
		var existing models.Product
		if err := models.DB.Where("slug = ?", product.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&product).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", product.Slug, err)
			} else {
				stdLog.Printf("Created product: %s", product.Slug)
			}
		} else {
			stdLog.Printf("Product already exists: %s", product.Slug)
		}
	}

	// 添加折扣码
	discounts := []models.Discount{
		{
			Code:        "SAVE10",
			Kind:        constants.DiscountKindPercentage,
			Value:       models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
			Description: "10% off your order",
			IsActive:    true,
		},
		{
			Code:        "WELCOME20",
			Kind:        constants.DiscountKindFixed,
			Value:       models.NewMoneyFromDecimal(decimal.NewFromInt(20)),
			Description: "$20 off your first order",
			IsActive:    true,
		},
		{
			Code:        "STUDENT15",
			Kind:        constants.DiscountKindPercentage,
			Value:       models.NewMoneyFromDecimal(decimal.NewFromInt(15)),
			Description: "15% student discount",
			IsActive:    true,
		},
		{
			Code:        "FREESHIP",
			Kind:        constants.DiscountKindFreeShipping,
			Value:       models.NewMoneyFromDecimal(decimal.Zero),
			Description: "Free shipping on any order",
			IsActive:    true,
		},
	}
	for _, discount := range discounts {
		var existing models.Discount
		if err := models.DB.Where("code = ?", discount.Code).First(&existing).Error; err != nil {
			if err := models.DB.Create(&discount).Error; err != nil {
				stdLog.Printf("Failed to create discount %s: %v", discount.Code, err)
			} else {
				stdLog.Printf("Created discount: %s", discount.Code)
			}
		} else {
			stdLog.Printf("Discount already exists: %s", discount.Code)
		}
	}

	// 添加首页轮播图
	banners := []models.Banner{
		{
			Title:     "Autumn Collection",
			Subtitle:  "New arrivals up to 30% off",
			Image:     "https://images.unsplash.com/photo-1441986300917-64674bd600d8?w=1600",
			Link:      "/products?category=clothing",
			IsActive:  true,
			SortOrder: 1,
		},
		{
			Title:     "Tech Essentials",
			Subtitle:  "Earbuds, watches and more",
			Image:     "https://images.unsplash.com/photo-1498049794561-7780e7231661?w=1600",
			Link:      "/products?category=electronics",
			IsActive:  true,
			SortOrder: 2,
		},
	}
	for _, banner := range banners {
		var existing models.Banner
		if err := models.DB.Where("title = ?", banner.Title).First(&existing).Error; err != nil {
			if err := models.DB.Create(&banner).Error; err != nil {
				stdLog.Printf("Failed to create banner %s: %v", banner.Title, err)
			} else {
				stdLog.Printf("Created banner: %s", banner.Title)
			}
		} else {
			stdLog.Printf("Banner already exists: %s", banner.Title)
		}
	}

	// 添加演示用户
	demoEmail := "demo@marketnest.dev"
	var existingUser models.User
	if err := models.DB.Where("email = ?", demoEmail).First(&existingUser).Error; err != nil {
		hash, hashErr := bcrypt.GenerateFromPassword([]byte("demo1234"), bcrypt.DefaultCost)
		if hashErr != nil {
			stdLog.Printf("Failed to hash demo password: %v", hashErr)
		} else {
			demoUser := models.User{
				Email:        demoEmail,
				PasswordHash: string(hash),
				Name:         "Demo Shopper",
				Status:       "active",
			}
			if err := models.DB.Create(&demoUser).Error; err != nil {
				stdLog.Printf("Failed to create demo user: %v", err)
			} else {
				stdLog.Printf("Created demo user: %s", demoEmail)
			}
		}
	} else {
		stdLog.Printf("Demo user already exists: %s", demoEmail)
	}

	fmt.Println("\n✅ Seed data created successfully!")
	fmt.Println("Summary:")
	fmt.Println("- 4 Categories")
	fmt.Println("- 3 Brands")
	fmt.Println("- 6 Products (含低库存演示商品)")
	fmt.Println("- 4 Discount codes (SAVE10 / WELCOME20 / STUDENT15 / FREESHIP)")
	fmt.Println("- 2 Banners")
	fmt.Println("- 1 Demo user (demo@marketnest.dev / demo1234)")
}
