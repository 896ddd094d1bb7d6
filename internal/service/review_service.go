package service

import (
	"strings"

	"github.com/prostore-go/internal/models"
	"github.com/prostore-go/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ReviewInput 创建或更新评价的输入
type ReviewInput struct {
	Title       string
	Description string
	Rating      int
}

// ReviewService 商品评价服务
// 评价写入与商品平均评分、评价数的重算在同一事务内完成。
type ReviewService struct {
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
}

// NewReviewService 创建评价服务
func NewReviewService(
	reviewRepo repository.ReviewRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
	}
}

// CreateUpdateReview 提交评价，同一用户对同一商品重复提交时覆盖原评价。
func (s *ReviewService) CreateUpdateReview(userID, productID uint, input ReviewInput) (*models.Review, error) {
	if userID == 0 {
		return nil, ErrUnauthenticated
	}
	if productID == 0 {
		return nil, ErrInvalidParams
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, ErrRatingInvalid
	}
	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	if title == "" || description == "" {
		return nil, ErrInvalidParams
	}

	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	var saved *models.Review
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		txReviewRepo := s.reviewRepo.WithTx(tx)

		review, err := txReviewRepo.GetByProductAndUser(productID, userID)
		if err != nil {
			return err
		}
		if review != nil {
			review.Title = title
			review.Description = description
			review.Rating = input.Rating
			review.UserName = user.Name
			if err := txReviewRepo.Update(review); err != nil {
				return err
			}
		} else {
			review = &models.Review{
				ProductID:   productID,
				UserID:      userID,
				UserName:    user.Name,
				Title:       title,
				Description: description,
				Rating:      input.Rating,
			}
			if err := txReviewRepo.Create(review); err != nil {
				return err
			}
		}
		saved = review

		agg, err := txReviewRepo.AggregateByProduct(productID)
		if err != nil {
			return err
		}
		return tx.Model(&models.Product{}).
			Where("id = ?", productID).
			Updates(map[string]interface{}{
				"rating":      models.NewMoneyFromDecimal(decimal.NewFromFloat(agg.AvgRating)),
				"num_reviews": agg.NumReviews,
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// GetProductReviews 商品评价列表（分页，按创建时间倒序）
func (s *ReviewService) GetProductReviews(productID uint, page, pageSize int) ([]models.Review, int64, error) {
	if productID == 0 {
		return nil, 0, ErrInvalidParams
	}
	return s.reviewRepo.ListByProduct(productID, page, pageSize)
}

// GetMyReview 获取当前用户对商品的评价，不存在时返回 ErrReviewNotFound。
func (s *ReviewService) GetMyReview(productID, userID uint) (*models.Review, error) {
	if userID == 0 {
		return nil, ErrUnauthenticated
	}
	if productID == 0 {
		return nil, ErrInvalidParams
	}
	review, err := s.reviewRepo.GetByProductAndUser(productID, userID)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, ErrReviewNotFound
	}
	return review, nil
}
