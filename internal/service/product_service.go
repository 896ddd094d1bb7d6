package service

import (
	"context"
	"strings"
	"time"

	"github.com/prostore-go/internal/cache"
	"github.com/prostore-go/internal/logger"
	"github.com/prostore-go/internal/models"
	"github.com/prostore-go/internal/repository"
)

const (
	featuredProductsCacheKey = "products:featured"
	featuredProductsCacheTTL = 5 * time.Minute
)

// ProductService 商品服务
type ProductService struct {
	productRepo repository.ProductRepository
}

// NewProductService 创建商品服务
func NewProductService(productRepo repository.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// List 商品列表
func (s *ProductService) List(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	filter.PageSize = normalizePageSize(filter.PageSize)
	return s.productRepo.List(filter)
}

// ListLatest 最新商品
func (s *ProductService) ListLatest(limit int) ([]models.Product, error) {
	return s.productRepo.ListLatest(limit)
}

// ListFeatured 精选商品（短 TTL 缓存）
func (s *ProductService) ListFeatured(ctx context.Context, limit int) ([]models.Product, error) {
	var cached []models.Product
	hit, err := cache.GetJSON(ctx, featuredProductsCacheKey, &cached)
	if err != nil {
		logger.Debugw("featured_cache_read_failed", "error", err)
	}
	if hit {
		return cached, nil
	}

	products, err := s.productRepo.ListFeatured(limit)
	if err != nil {
		return nil, err
	}
	_ = cache.SetJSON(ctx, featuredProductsCacheKey, products, featuredProductsCacheTTL)
	return products, nil
}

// ListCategories 分类列表
func (s *ProductService) ListCategories() ([]repository.CategorySummary, error) {
	return s.productRepo.ListCategories()
}

// GetBySlug 按 slug 获取商品
func (s *ProductService) GetBySlug(slug string) (*models.Product, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, ErrInvalidParams
	}
	product, err := s.productRepo.GetBySlug(slug)
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

// Create 创建商品（管理端）
func (s *ProductService) Create(product *models.Product) error {
	if product == nil || strings.TrimSpace(product.Slug) == "" || strings.TrimSpace(product.Name) == "" {
		return ErrInvalidParams
	}
	count, err := s.productRepo.CountBySlug(product.Slug, nil)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrSlugExists
	}
	if err := s.productRepo.Create(product); err != nil {
		return err
	}
	s.invalidateFeaturedCache()
	return nil
}

// Update 更新商品（管理端）
func (s *ProductService) Update(product *models.Product) error {
	if product == nil || product.ID == 0 {
		return ErrInvalidParams
	}
	existing, err := s.productRepo.GetByID(product.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrProductNotFound
	}
	count, err := s.productRepo.CountBySlug(product.Slug, &product.ID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrSlugExists
	}
	if err := s.productRepo.Update(product); err != nil {
		return err
	}
	s.invalidateFeaturedCache()
	return nil
}

// Delete 删除商品（管理端）
func (s *ProductService) Delete(id uint) error {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	if err := s.productRepo.Delete(id); err != nil {
		return err
	}
	s.invalidateFeaturedCache()
	return nil
}

func (s *ProductService) invalidateFeaturedCache() {
	if err := cache.Del(context.Background(), featuredProductsCacheKey); err != nil {
		logger.Debugw("featured_cache_del_failed", "error", err)
	}
}
