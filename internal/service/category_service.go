package service

import (
	"strings"

	"github.com/marketnest/internal/models"
	"github.com/marketnest/internal/repository"
)

// CategoryService 分类与品牌服务
type CategoryService struct {
	categoryRepo repository.CategoryRepository
	brandRepo    repository.BrandRepository
}

// NewCategoryService 创建分类服务
func NewCategoryService(categoryRepo repository.CategoryRepository, brandRepo repository.BrandRepository) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		brandRepo:    brandRepo,
	}
}

// ListCategories 分类列表
func (s *CategoryService) ListCategories() ([]models.Category, error) {
	return s.categoryRepo.List()
}

// ListBrands 品牌列表
func (s *CategoryService) ListBrands() ([]models.Brand, error) {
	return s.brandRepo.List()
}

// CategoryInput 分类写入参数
type CategoryInput struct {
	Slug      string
	Name      string
	Image     string
	SortOrder int
}

// CreateCategory 创建分类
func (s *CategoryService) CreateCategory(input CategoryInput) (*models.Category, error) {
	slug := strings.TrimSpace(input.Slug)
	name := strings.TrimSpace(input.Name)
	if slug == "" || name == "" {
		fields := map[string]string{}
		if slug == "" {
			fields["slug"] = "required"
		}
		if name == "" {
			fields["name"] = "required"
		}
		return nil, NewValidationError(fields)
	}

	existing, err := s.categoryRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrSlugExists
	}

	category := &models.Category{
		Slug:      slug,
		Name:      name,
		Image:     strings.TrimSpace(input.Image),
		SortOrder: input.SortOrder,
	}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

// UpdateCategory 更新分类
func (s *CategoryService) UpdateCategory(id uint, input CategoryInput) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}

	slug := strings.TrimSpace(input.Slug)
	if slug != "" && slug != category.Slug {
		existing, err := s.categoryRepo.GetBySlug(slug)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrSlugExists
		}
		category.Slug = slug
	}
	if name := strings.TrimSpace(input.Name); name != "" {
		category.Name = name
	}
	category.Image = strings.TrimSpace(input.Image)
	category.SortOrder = input.SortOrder

	if err := s.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// BrandInput 品牌写入参数
type BrandInput struct {
	Slug string
	Name string
	Logo string
}

// CreateBrand 创建品牌
func (s *CategoryService) CreateBrand(input BrandInput) (*models.Brand, error) {
	slug := strings.TrimSpace(input.Slug)
	name := strings.TrimSpace(input.Name)
	if slug == "" || name == "" {
		fields := map[string]string{}
		if slug == "" {
			fields["slug"] = "required"
		}
		if name == "" {
			fields["name"] = "required"
		}
		return nil, NewValidationError(fields)
	}

	existing, err := s.brandRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrSlugExists
	}

	brand := &models.Brand{
		Slug: slug,
		Name: name,
		Logo: strings.TrimSpace(input.Logo),
	}
	if err := s.brandRepo.Create(brand); err != nil {
		return nil, err
	}
	return brand, nil
}

// UpdateBrand 更新品牌
func (s *CategoryService) UpdateBrand(id uint, input BrandInput) (*models.Brand, error) {
	brand, err := s.brandRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if brand == nil {
		return nil, ErrBrandNotFound
	}

	slug := strings.TrimSpace(input.Slug)
	if slug != "" && slug != brand.Slug {
		existing, err := s.brandRepo.GetBySlug(slug)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrSlugExists
		}
		brand.Slug = slug
	}
	if name := strings.TrimSpace(input.Name); name != "" {
		brand.Name = name
	}
	brand.Logo = strings.TrimSpace(input.Logo)

	if err := s.brandRepo.Update(brand); err != nil {
		return nil, err
	}
	return brand, nil
}

// DeleteBrand 删除品牌，存在商品时拒绝
func (s *CategoryService) DeleteBrand(id uint) error {
	brand, err := s.brandRepo.GetByID(id)
	if err != nil {
		return err
	}
	if brand == nil {
		return ErrBrandNotFound
	}

	count, err := s.brandRepo.CountProducts(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return NewValidationError(map[string]string{"brand": "has products"})
	}
	return s.brandRepo.Delete(id)
}

// DeleteCategory 删除分类，存在商品时拒绝
func (s *CategoryService) DeleteCategory(id uint) error {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}

	count, err := s.categoryRepo.CountProducts(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return NewValidationError(map[string]string{"category": "has products"})
	}
	return s.categoryRepo.Delete(id)
}
