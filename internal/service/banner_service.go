package service

import (
	"strings"

	"github.com/marketnest/internal/models"
	"github.com/marketnest/internal/repository"
)

// BannerService 首页轮播服务
type BannerService struct {
	bannerRepo repository.BannerRepository
}

// NewBannerService 创建轮播服务
func NewBannerService(bannerRepo repository.BannerRepository) *BannerService {
	return &BannerService{bannerRepo: bannerRepo}
}

// ListPublic 店面轮播列表，仅启用项
func (s *BannerService) ListPublic() ([]models.Banner, error) {
	return s.bannerRepo.ListActive()
}

// ListAdmin 后台轮播列表
func (s *BannerService) ListAdmin() ([]models.Banner, error) {
	return s.bannerRepo.List()
}

// BannerInput 轮播写入参数
type BannerInput struct {
	Title     string
	Subtitle  string
	Image     string
	Link      string
	IsActive  bool
	SortOrder int
}

// Create 创建轮播
func (s *BannerService) Create(input BannerInput) (*models.Banner, error) {
	if strings.TrimSpace(input.Image) == "" {
		return nil, NewValidationError(map[string]string{"image": "required"})
	}

	banner := &models.Banner{
		Title:     strings.TrimSpace(input.Title),
		Subtitle:  strings.TrimSpace(input.Subtitle),
		Image:     strings.TrimSpace(input.Image),
		Link:      strings.TrimSpace(input.Link),
		IsActive:  input.IsActive,
		SortOrder: input.SortOrder,
	}
	if err := s.bannerRepo.Create(banner); err != nil {
		return nil, err
	}
	return banner, nil
}

// Update 更新轮播
func (s *BannerService) Update(id uint, input BannerInput) (*models.Banner, error) {
	banner, err := s.bannerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if banner == nil {
		return nil, ErrBannerNotFound
	}

	banner.Title = strings.TrimSpace(input.Title)
	banner.Subtitle = strings.TrimSpace(input.Subtitle)
	if image := strings.TrimSpace(input.Image); image != "" {
		banner.Image = image
	}
	banner.Link = strings.TrimSpace(input.Link)
	banner.IsActive = input.IsActive
	banner.SortOrder = input.SortOrder

	if err := s.bannerRepo.Update(banner); err != nil {
		return nil, err
	}
	return banner, nil
}

// Delete 删除轮播
func (s *BannerService) Delete(id uint) error {
	banner, err := s.bannerRepo.GetByID(id)
	if err != nil {
		return err
	}
	if banner == nil {
		return ErrBannerNotFound
	}
	return s.bannerRepo.Delete(id)
}
