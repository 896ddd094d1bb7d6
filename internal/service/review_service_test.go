package service

import (
	"errors"
	"testing"

	"github.com/prostore-go/internal/models"
	"github.com/prostore-go/internal/repository"

	"gorm.io/gorm"
)

func newReviewService(db *gorm.DB) *ReviewService {
	return NewReviewService(
		repository.NewReviewRepository(db),
		repository.NewProductRepository(db),
		repository.NewUserRepository(db),
	)
}

func productRating(t *testing.T, db *gorm.DB, productID uint) (string, int) {
	t.Helper()
	var product models.Product
	if err := db.First(&product, productID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	return product.Rating.String(), product.NumReviews
}

func TestCreateReviewRecomputesProductRating(t *testing.T) {
	db := newTestDB(t, "review_create")
	svc := newReviewService(db)
	product := createTestProduct(t, db, "rated-shirt", "29.99", 10)
	alice := createTestUser(t, db, "alice@example.com", false, "")
	bob := createTestUser(t, db, "bob@example.com", false, "")

	review, err := svc.CreateUpdateReview(alice.ID, product.ID, ReviewInput{
		Title:       "Great shirt",
		Description: "Fits perfectly",
		Rating:      5,
	})
	if err != nil {
		t.Fatalf("create review failed: %v", err)
	}
	if review.ID == 0 || review.UserName != alice.Name {
		t.Fatalf("unexpected review: %+v", review)
	}

	rating, numReviews := productRating(t, db, product.ID)
	if rating != "5.00" || numReviews != 1 {
		t.Fatalf("after first review rating=%s num=%d, want 5.00/1", rating, numReviews)
	}

	if _, err := svc.CreateUpdateReview(bob.ID, product.ID, ReviewInput{
		Title:       "Decent",
		Description: "A bit thin",
		Rating:      4,
	}); err != nil {
		t.Fatalf("second review failed: %v", err)
	}

	rating, numReviews = productRating(t, db, product.ID)
	if rating != "4.50" || numReviews != 2 {
		t.Fatalf("after second review rating=%s num=%d, want 4.50/2", rating, numReviews)
	}
}

func TestCreateReviewUpsertsPerUser(t *testing.T) {
	db := newTestDB(t, "review_upsert")
	svc := newReviewService(db)
	product := createTestProduct(t, db, "upsert-shirt", "19.99", 10)
	user := createTestUser(t, db, "upsert@example.com", false, "")

	first, err := svc.CreateUpdateReview(user.ID, product.ID, ReviewInput{
		Title:       "Okay",
		Description: "Average quality",
		Rating:      3,
	})
	if err != nil {
		t.Fatalf("first submit failed: %v", err)
	}

	second, err := svc.CreateUpdateReview(user.ID, product.ID, ReviewInput{
		Title:       "Better than expected",
		Description: "Grew on me after a wash",
		Rating:      5,
	})
	if err != nil {
		t.Fatalf("resubmit failed: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("resubmit should update in place, got ids %d and %d", first.ID, second.ID)
	}

	rating, numReviews := productRating(t, db, product.ID)
	if rating != "5.00" || numReviews != 1 {
		t.Fatalf("after resubmit rating=%s num=%d, want 5.00/1", rating, numReviews)
	}

	reviews, total, err := svc.GetProductReviews(product.ID, 1, 10)
	if err != nil {
		t.Fatalf("list reviews failed: %v", err)
	}
	if total != 1 || len(reviews) != 1 || reviews[0].Title != "Better than expected" {
		t.Fatalf("expected single updated review, got total=%d reviews=%+v", total, reviews)
	}
}

func TestCreateReviewValidation(t *testing.T) {
	db := newTestDB(t, "review_validation")
	svc := newReviewService(db)
	product := createTestProduct(t, db, "valid-shirt", "9.99", 10)
	user := createTestUser(t, db, "validator@example.com", false, "")

	if _, err := svc.CreateUpdateReview(0, product.ID, ReviewInput{Title: "t", Description: "d", Rating: 4}); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got: %v", err)
	}
	if _, err := svc.CreateUpdateReview(user.ID, product.ID, ReviewInput{Title: "t", Description: "d", Rating: 6}); !errors.Is(err, ErrRatingInvalid) {
		t.Fatalf("expected ErrRatingInvalid for rating 6, got: %v", err)
	}
	if _, err := svc.CreateUpdateReview(user.ID, product.ID, ReviewInput{Title: "t", Description: "d", Rating: 0}); !errors.Is(err, ErrRatingInvalid) {
		t.Fatalf("expected ErrRatingInvalid for rating 0, got: %v", err)
	}
	if _, err := svc.CreateUpdateReview(user.ID, product.ID, ReviewInput{Title: " ", Description: "d", Rating: 3}); !errors.Is(err, ErrInvalidParams) {
		t.Fatalf("expected ErrInvalidParams for blank title, got: %v", err)
	}
	if _, err := svc.CreateUpdateReview(user.ID, 999, ReviewInput{Title: "t", Description: "d", Rating: 3}); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got: %v", err)
	}
}

func TestGetMyReview(t *testing.T) {
	db := newTestDB(t, "review_mine")
	svc := newReviewService(db)
	product := createTestProduct(t, db, "mine-shirt", "14.99", 10)
	user := createTestUser(t, db, "mine@example.com", false, "")

	if _, err := svc.GetMyReview(product.ID, user.ID); !errors.Is(err, ErrReviewNotFound) {
		t.Fatalf("expected ErrReviewNotFound before submit, got: %v", err)
	}

	if _, err := svc.CreateUpdateReview(user.ID, product.ID, ReviewInput{
		Title:       "Mine",
		Description: "My own take",
		Rating:      4,
	}); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	review, err := svc.GetMyReview(product.ID, user.ID)
	if err != nil {
		t.Fatalf("get my review failed: %v", err)
	}
	if review.Rating != 4 || review.Title != "Mine" {
		t.Fatalf("unexpected review: %+v", review)
	}
}
