package provider

import (
	"github.com/prostore-go/internal/cache"
	"github.com/prostore-go/internal/config"
	"github.com/prostore-go/internal/logger"
	"github.com/prostore-go/internal/models"
	"github.com/prostore-go/internal/queue"
	"github.com/prostore-go/internal/repository"
	"github.com/prostore-go/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UserRepo    repository.UserRepository
	ProductRepo repository.ProductRepository
	CartRepo    repository.CartRepository
	OrderRepo   repository.OrderRepository
	ReviewRepo  repository.ReviewRepository

	// Services
	UserAuthService   *service.UserAuthService
	ProductService    *service.ProductService
	CartService       *service.CartService
	OrderService      *service.OrderService
	SettlementService *service.SettlementService
	PaymentService    *service.PaymentService
	ReviewService     *service.ReviewService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.ReviewRepo = repository.NewReviewRepository(db)
}

func (c *Container) initServices() {
	c.ProductService = service.NewProductService(c.ProductRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo)
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo, c.CartService)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.CartRepo, c.ProductRepo, c.UserRepo)
	c.SettlementService = service.NewSettlementService(c.OrderRepo, c.ProductRepo, c.QueueClient)
	c.PaymentService = service.NewPaymentService(c.OrderRepo, c.SettlementService, &c.Config.Payment)
	c.ReviewService = service.NewReviewService(c.ReviewRepo, c.ProductRepo, c.UserRepo)
}
