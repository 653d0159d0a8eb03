package service

import (
	"strings"

	"github.com/marketnest/internal/models"
	"github.com/marketnest/internal/repository"

	"github.com/shopspring/decimal"
)

// ProductService 商品服务
type ProductService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	brandRepo    repository.BrandRepository
}

// NewProductService 创建商品服务
func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	brandRepo repository.BrandRepository,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		brandRepo:    brandRepo,
	}
}

// ListPublic 店面商品列表，仅返回上架商品
func (s *ProductService) ListPublic(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	filter.OnlyActive = true
	return s.productRepo.List(filter)
}

// ListAdmin 后台商品列表
func (s *ProductService) ListAdmin(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	return s.productRepo.List(filter)
}

// GetBySlug 店面商品详情
func (s *ProductService) GetBySlug(slug string) (*models.Product, error) {
	product, err := s.productRepo.GetBySlug(strings.TrimSpace(slug), true)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// GetByID 按 ID 获取商品
func (s *ProductService) GetByID(id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// ProductInput 商品写入参数
type ProductInput struct {
	CategoryID    uint
	BrandID       uint
	Slug          string
	Name          string
	Description   string
	Price         decimal.Decimal
	OriginalPrice decimal.Decimal
	Images        []string
	Tags          []string
	Sizes         []string
	Colors        []string
	Stock         int
	IsActive      bool
	SortOrder     int
}

func (s *ProductService) validateInput(input ProductInput) error {
	fields := map[string]string{}
	if strings.TrimSpace(input.Slug) == "" {
		fields["slug"] = "required"
	}
	if strings.TrimSpace(input.Name) == "" {
		fields["name"] = "required"
	}
	if input.Price.LessThanOrEqual(decimal.Zero) {
		fields["price"] = "must be positive"
	}
	if input.Stock < 0 {
		fields["stock"] = "cannot be negative"
	}
	if len(fields) > 0 {
		return NewValidationError(fields)
	}
	return nil
}

func (s *ProductService) resolveRefs(input ProductInput) error {
	if input.CategoryID > 0 {
		category, err := s.categoryRepo.GetByID(input.CategoryID)
		if err != nil {
			return err
		}
		if category == nil {
			return ErrCategoryNotFound
		}
	}
	return nil
}

// Create 创建商品，slug 全局唯一
func (s *ProductService) Create(input ProductInput) (*models.Product, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}
	if err := s.resolveRefs(input); err != nil {
		return nil, err
	}

	count, err := s.productRepo.CountBySlug(strings.TrimSpace(input.Slug), nil)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSlugExists
	}

	product := &models.Product{
		CategoryID:    input.CategoryID,
		BrandID:       input.BrandID,
		Slug:          strings.TrimSpace(input.Slug),
		Name:          strings.TrimSpace(input.Name),
		Description:   input.Description,
		Price:         models.NewMoneyFromDecimal(input.Price),
		OriginalPrice: models.NewMoneyFromDecimal(input.OriginalPrice),
		Images:        input.Images,
		Tags:          input.Tags,
		Sizes:         input.Sizes,
		Colors:        input.Colors,
		Stock:         input.Stock,
		IsActive:      input.IsActive,
		SortOrder:     input.SortOrder,
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Update 更新商品
func (s *ProductService) Update(id uint, input ProductInput) (*models.Product, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}
	if err := s.resolveRefs(input); err != nil {
		return nil, err
	}

	product, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	count, err := s.productRepo.CountBySlug(strings.TrimSpace(input.Slug), &id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSlugExists
	}

	product.CategoryID = input.CategoryID
	product.BrandID = input.BrandID
	product.Slug = strings.TrimSpace(input.Slug)
	product.Name = strings.TrimSpace(input.Name)
	product.Description = input.Description
	product.Price = models.NewMoneyFromDecimal(input.Price)
	product.OriginalPrice = models.NewMoneyFromDecimal(input.OriginalPrice)
	product.Images = input.Images
	product.Tags = input.Tags
	product.Sizes = input.Sizes
	product.Colors = input.Colors
	product.Stock = input.Stock
	product.IsActive = input.IsActive
	product.SortOrder = input.SortOrder
	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete 删除商品
func (s *ProductService) Delete(id uint) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	return s.productRepo.Delete(id)
}
