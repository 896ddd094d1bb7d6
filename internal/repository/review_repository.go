package repository

import (
	"errors"

	"github.com/prostore-go/internal/models"

	"gorm.io/gorm"
)

// ReviewRepository 商品评价数据访问接口
type ReviewRepository interface {
	GetByProductAndUser(productID, userID uint) (*models.Review, error)
	ListByProduct(productID uint, page, pageSize int) ([]models.Review, int64, error)
	Create(review *models.Review) error
	Update(review *models.Review) error
	AggregateByProduct(productID uint) (ReviewAggregate, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) ReviewRepository
}

// ReviewAggregate 商品评分聚合结果
type ReviewAggregate struct {
	AvgRating  float64
	NumReviews int64
}

// GormReviewRepository GORM 实现
type GormReviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository 创建评价仓库
func NewReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// WithTx 绑定事务
func (r *GormReviewRepository) WithTx(tx *gorm.DB) ReviewRepository {
	if tx == nil {
		return r
	}
	return &GormReviewRepository{db: tx}
}

// Transaction 执行事务
func (r *GormReviewRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// GetByProductAndUser 获取用户对商品的评价
func (r *GormReviewRepository) GetByProductAndUser(productID, userID uint) (*models.Review, error) {
	var review models.Review
	if err := r.db.Where("product_id = ? AND user_id = ?", productID, userID).
		First(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &review, nil
}

// ListByProduct 商品评价列表，按创建时间倒序。
func (r *GormReviewRepository) ListByProduct(productID uint, page, pageSize int) ([]models.Review, int64, error) {
	query := r.db.Model(&models.Review{}).Where("product_id = ?", productID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reviews []models.Review
	query = applyPagination(query.Order("created_at DESC"), page, pageSize)
	if err := query.Find(&reviews).Error; err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

// Create 创建评价
func (r *GormReviewRepository) Create(review *models.Review) error {
	return r.db.Create(review).Error
}

// Update 更新评价
func (r *GormReviewRepository) Update(review *models.Review) error {
	return r.db.Save(review).Error
}

// AggregateByProduct 统计商品的平均评分与评价数
func (r *GormReviewRepository) AggregateByProduct(productID uint) (ReviewAggregate, error) {
	var agg ReviewAggregate
	if err := r.db.Model(&models.Review{}).
		Where("product_id = ?", productID).
		Select("COALESCE(AVG(rating), 0) as avg_rating, COUNT(*) as num_reviews").
		Scan(&agg).Error; err != nil {
		return ReviewAggregate{}, err
	}
	return agg, nil
}
