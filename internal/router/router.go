package router

import (
	"fmt"
	"strings"

	"github.com/prostore-go/internal/cache"
	"github.com/prostore-go/internal/config"
	adminhandlers "github.com/prostore-go/internal/http/handlers/admin"
	publichandlers "github.com/prostore-go/internal/http/handlers/public"
	"github.com/prostore-go/internal/logger"
	"github.com/prostore-go/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "ps"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	secretKey := cfg.JWT.SecretKey

	apiV1 := r.Group("/api/v1")
	{
		// 公开商品接口
		products := apiV1.Group("/products")
		{
			products.GET("", publicHandler.GetProducts)
			products.GET("/latest", publicHandler.GetLatestProducts)
			products.GET("/featured", publicHandler.GetFeaturedProducts)
			products.GET("/categories", publicHandler.GetProductCategories)
			products.GET("/:slug", publicHandler.GetProductBySlug)
			products.GET("/:slug/reviews", publicHandler.GetProductReviews)
		}

		// 购物车接口（访客与登录用户共用，身份由 cookie / token 决定）
		cart := apiV1.Group("/cart")
		cart.Use(SessionCartMiddleware())
		cart.Use(OptionalUserJWTMiddleware(secretKey, c.UserRepo))
		{
			cart.GET("", publicHandler.GetCart)
			cart.POST("/items", publicHandler.AddCartItem)
			cart.DELETE("/items", publicHandler.RemoveCartItem)
		}

		// 用户认证接口
		auth := apiV1.Group("/auth")
		auth.Use(SessionCartMiddleware())
		{
			auth.POST("/register", publicHandler.UserRegister)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.UserLogin)
		}

		// 用户接口（需鉴权）
		user := apiV1.Group("")
		user.Use(UserJWTAuthMiddleware(secretKey, c.UserRepo))
		{
			user.GET("/me", publicHandler.GetProfile)
			user.PUT("/me/address", publicHandler.UpdateShippingAddress)
			user.PUT("/me/payment-method", publicHandler.UpdatePaymentMethod)
			user.POST("/orders", publicHandler.PlaceOrder)
			user.GET("/orders", publicHandler.GetMyOrders)
			user.GET("/orders/:id", publicHandler.GetOrder)
			user.POST("/orders/:id/paypal", publicHandler.CreatePayPalOrder)
			user.POST("/orders/:id/paypal/capture", publicHandler.ApprovePayPalOrder)
			user.POST("/orders/:id/stripe", publicHandler.CreateStripeIntent)
			user.POST("/orders/:id/stripe/reconcile", publicHandler.ReconcileStripePayment)
			user.POST("/products/:slug/reviews", publicHandler.CreateProductReview)
			user.GET("/products/:slug/reviews/me", publicHandler.GetMyProductReview)
		}

		// 管理端接口
		admin := apiV1.Group("/admin")
		admin.Use(UserJWTAuthMiddleware(secretKey, c.UserRepo))
		admin.Use(AdminRequiredMiddleware())
		{
			admin.GET("/orders", adminHandler.AdminListOrders)
			admin.GET("/orders/:id", adminHandler.AdminGetOrder)
			admin.PUT("/orders/:id/pay", adminHandler.AdminMarkOrderPaid)
			admin.PUT("/orders/:id/deliver", adminHandler.AdminMarkOrderDelivered)
			admin.DELETE("/orders/:id", adminHandler.AdminDeleteOrder)

			admin.GET("/products", adminHandler.AdminListProducts)
			admin.POST("/products", adminHandler.AdminCreateProduct)
			admin.GET("/products/:id", adminHandler.AdminGetProduct)
			admin.PUT("/products/:id", adminHandler.AdminUpdateProduct)
			admin.DELETE("/products/:id", adminHandler.AdminDeleteProduct)

			admin.GET("/users", adminHandler.AdminListUsers)
			admin.GET("/users/:id", adminHandler.AdminGetUser)
			admin.DELETE("/users/:id", adminHandler.AdminDeleteUser)
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
