package service

import (
	"time"

	"github.com/marketnest/internal/models"
	"github.com/marketnest/internal/repository"
)

// WishlistService 心愿单服务
type WishlistService struct {
	wishlistRepo repository.WishlistRepository
	productRepo  repository.ProductRepository
}

// NewWishlistService 创建心愿单服务
func NewWishlistService(wishlistRepo repository.WishlistRepository, productRepo repository.ProductRepository) *WishlistService {
	return &WishlistService{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
	}
}

// List 用户心愿单
func (s *WishlistService) List(userID uint) ([]models.WishlistItem, error) {
	return s.wishlistRepo.ListByUser(userID)
}

// Contains 商品是否已收藏
func (s *WishlistService) Contains(userID, productID uint) (bool, error) {
	item, err := s.wishlistRepo.GetByUserAndProduct(userID, productID)
	if err != nil {
		return false, err
	}
	return item != nil, nil
}

// Toggle 收藏开关：未收藏则加入，已收藏则移除。
// 返回操作后的收藏态。
func (s *WishlistService) Toggle(userID, productID uint) (bool, error) {
	existing, err := s.wishlistRepo.GetByUserAndProduct(userID, productID)
	if err != nil {
		return false, err
	}
	if existing != nil {
		if _, err := s.wishlistRepo.DeleteByUserAndProduct(userID, productID); err != nil {
			return true, err
		}
		return false, nil
	}

	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return false, err
	}
	if product == nil {
		return false, ErrProductNotFound
	}

	item := &models.WishlistItem{
		UserID:    userID,
		ProductID: product.ID,
		Name:      product.Name,
		UnitPrice: product.Price,
		Image:     firstImage(product),
		AddedAt:   time.Now(),
	}
	if err := s.wishlistRepo.Create(item); err != nil {
		return false, err
	}
	return true, nil
}

// Remove 移出心愿单，不存在时静默成功
func (s *WishlistService) Remove(userID, productID uint) error {
	_, err := s.wishlistRepo.DeleteByUserAndProduct(userID, productID)
	return err
}

// Clear 清空心愿单
func (s *WishlistService) Clear(userID uint) error {
	return s.wishlistRepo.ClearByUser(userID)
}
