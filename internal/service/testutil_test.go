package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/prostore-go/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Cart{},
		&models.Order{},
		&models.OrderItem{},
		&models.Review{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db
	return db
}

func createTestProduct(t *testing.T, db *gorm.DB, slug string, price string, stock int) *models.Product {
	t.Helper()
	parsed, err := decimal.NewFromString(price)
	if err != nil {
		t.Fatalf("parse price failed: %v", err)
	}
	product := &models.Product{
		Slug:     slug,
		Name:     "Product " + slug,
		Brand:    "TestBrand",
		Category: "TestCategory",
		Images:   models.StringArray{"/images/" + slug + ".jpg"},
		Price:    models.NewMoneyFromDecimal(parsed),
		Stock:    stock,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func createTestUser(t *testing.T, db *gorm.DB, email string, withAddress bool, paymentMethod string) *models.User {
	t.Helper()
	user := &models.User{
		Name:          "Test User",
		Email:         email,
		PasswordHash:  "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy",
		Role:          "user",
		PaymentMethod: paymentMethod,
	}
	if withAddress {
		address := models.ShippingAddress{
			FullName:      "Test User",
			StreetAddress: "123 Main St",
			City:          "Springfield",
			PostalCode:    "12345",
			Country:       "USA",
		}
		addressJSON, err := address.ToJSON()
		if err != nil {
			t.Fatalf("build address failed: %v", err)
		}
		user.AddressJSON = addressJSON
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}
