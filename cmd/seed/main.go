package main

import (
	"github.com/prostore-go/internal/config"
	"github.com/prostore-go/internal/constants"
	"github.com/prostore-go/internal/logger"
	"github.com/prostore-go/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

func main() {
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

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	seedProducts(stdLog.Printf)
	seedUsers(stdLog.Printf)

	stdLog.Printf("Seed finished")
}

func seedProducts(logf func(format string, v ...interface{})) {
	products := []models.Product{
		{
			Slug:        "polo-sporting-shirt",
			Name:        "Polo Sporting Shirt",
			Brand:       "Polo",
			Category:    "Men's Dress Shirts",
			Description: "Classic Polo style with modern comfort",
			Images:      models.StringArray{"/images/sample-products/p1-1.jpg", "/images/sample-products/p1-2.jpg"},
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(59.99)),
			Stock:       5,
			Rating:      models.NewMoneyFromDecimal(decimal.NewFromFloat(4.5)),
			NumReviews:  10,
			IsFeatured:  true,
			Banner:      "/images/banner-1.jpg",
		},
		{
			Slug:        "brooks-brothers-long-sleeved-shirt",
			Name:        "Brooks Brothers Long Sleeved Shirt",
			Brand:       "Brooks Brothers",
			Category:    "Men's Dress Shirts",
			Description: "Timeless style and premium comfort",
			Images:      models.StringArray{"/images/sample-products/p2-1.jpg", "/images/sample-products/p2-2.jpg"},
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(85.90)),
			Stock:       10,
			Rating:      models.NewMoneyFromDecimal(decimal.NewFromFloat(4.2)),
			NumReviews:  8,
			IsFeatured:  true,
			Banner:      "/images/banner-2.jpg",
		},
		{
			Slug:        "tommy-hilfiger-classic-fit-dress-shirt",
			Name:        "Tommy Hilfiger Classic Fit Dress Shirt",
			Brand:       "Tommy Hilfiger",
			Category:    "Men's Dress Shirts",
			Description: "A perfect blend of sophistication and comfort",
			Images:      models.StringArray{"/images/sample-products/p3-1.jpg", "/images/sample-products/p3-2.jpg"},
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(99.95)),
			Stock:       0,
			Rating:      models.NewMoneyFromDecimal(decimal.NewFromFloat(4.9)),
			NumReviews:  3,
		},
		{
			Slug:        "calvin-klein-slim-fit-stretch-shirt",
			Name:        "Calvin Klein Slim Fit Stretch Shirt",
			Brand:       "Calvin Klein",
			Category:    "Men's Dress Shirts",
			Description: "Streamlined design with flexible stretch fabric",
			Images:      models.StringArray{"/images/sample-products/p4-1.jpg", "/images/sample-products/p4-2.jpg"},
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(39.95)),
			Stock:       10,
			Rating:      models.NewMoneyFromDecimal(decimal.NewFromFloat(3.6)),
			NumReviews:  5,
		},
		{
			Slug:        "polo-ralph-lauren-oxford-shirt",
			Name:        "Polo Ralph Lauren Oxford Shirt",
			Brand:       "Polo",
			Category:    "Men's Dress Shirts",
			Description: "Iconic Polo design with refined oxford fabric",
			Images:      models.StringArray{"/images/sample-products/p5-1.jpg", "/images/sample-products/p5-2.jpg"},
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(79.99)),
			Stock:       6,
			Rating:      models.NewMoneyFromDecimal(decimal.NewFromFloat(4.7)),
			NumReviews:  18,
		},
		{
			Slug:        "polo-classic-pink-hoodie",
			Name:        "Polo Classic Pink Hoodie",
			Brand:       "Polo",
			Category:    "Men's Sweatshirts",
			Description: "Soft, stylish, and perfect for laid-back days",
			Images:      models.StringArray{"/images/sample-products/p6-1.jpg", "/images/sample-products/p6-2.jpg"},
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(99.99)),
			Stock:       8,
			Rating:      models.NewMoneyFromDecimal(decimal.NewFromFloat(4.6)),
			NumReviews:  12,
		},
	}

	for _, product := range products {
		var existing models.Product
		if err := models.DB.Where("slug = ?", product.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&product).Error; err != nil {
				logf("Failed to create product %s: %v", product.Slug, err)
			} else {
				logf("Created product: %s", product.Slug)
			}
		} else {
			logf("Product already exists: %s", product.Slug)
		}
	}
}

func seedUsers(logf func(format string, v ...interface{})) {
	type seedUser struct {
		Name     string
		Email    string
		Password string
		Role     string
	}
	users := []seedUser{
		{Name: "Admin", Email: "admin@example.com", Password: "123456", Role: constants.RoleAdmin},
		{Name: "Jane", Email: "jane@example.com", Password: "123456", Role: constants.RoleUser},
	}

	for _, u := range users {
		var existing models.User
		if err := models.DB.Where("email = ?", u.Email).First(&existing).Error; err == nil {
			logf("User already exists: %s", u.Email)
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			logf("Failed to hash password for %s: %v", u.Email, err)
			continue
		}
		user := models.User{
			Name:         u.Name,
			Email:        u.Email,
			PasswordHash: string(hash),
			Role:         u.Role,
		}
		if err := models.DB.Create(&user).Error; err != nil {
			logf("Failed to create user %s: %v", u.Email, err)
		} else {
			logf("Created user: %s", u.Email)
		}
	}
}
