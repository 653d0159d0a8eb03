package provider

import (
	"github.com/marketnest/internal/authz"
	"github.com/marketnest/internal/cache"
	"github.com/marketnest/internal/config"
	"github.com/marketnest/internal/logger"
	"github.com/marketnest/internal/models"
	"github.com/marketnest/internal/queue"
	"github.com/marketnest/internal/repository"
	"github.com/marketnest/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo     repository.AdminRepository
	UserRepo      repository.UserRepository
	ProductRepo   repository.ProductRepository
	CategoryRepo  repository.CategoryRepository
	BrandRepo     repository.BrandRepository
	CartRepo      repository.CartRepository
	WishlistRepo  repository.WishlistRepository
	DiscountRepo  repository.DiscountRepository
	OrderRepo     repository.OrderRepository
	ReviewRepo    repository.ReviewRepository
	BannerRepo    repository.BannerRepository
	DashboardRepo repository.DashboardRepository

	// Services
	AuthzService         *authz.Service
	AuthService          *service.AuthService
	UserAuthService      *service.UserAuthService
	UserAdminService     *service.UserAdminService
	CaptchaService       *service.CaptchaService
	ProductService       *service.ProductService
	CategoryService      *service.CategoryService
	CartService          *service.CartService
	WishlistService      *service.WishlistService
	DiscountService      *service.DiscountService
	DiscountAdminService *service.DiscountAdminService
	OrderService         *service.OrderService
	CheckoutService      *service.CheckoutService
	ReviewService        *service.ReviewService
	BannerService        *service.BannerService
	DashboardService     *service.DashboardService
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
	c.AdminRepo = repository.NewAdminRepository(db)
	c.UserRepo = repository.NewUserRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.BrandRepo = repository.NewBrandRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.WishlistRepo = repository.NewWishlistRepository(db)
	c.DiscountRepo = repository.NewDiscountRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.ReviewRepo = repository.NewReviewRepository(db)
	c.BannerRepo = repository.NewBannerRepository(db)
	c.DashboardRepo = repository.NewDashboardRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo)
	c.UserAdminService = service.NewUserAdminService(c.UserRepo)
	c.ProductService = service.NewProductService(c.ProductRepo, c.CategoryRepo, c.BrandRepo)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo, c.BrandRepo)
	c.DiscountService = service.NewDiscountService(c.DiscountRepo)
	c.DiscountAdminService = service.NewDiscountAdminService(c.DiscountRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo, c.DiscountService, c.Config.Checkout)
	c.WishlistService = service.NewWishlistService(c.WishlistRepo, c.ProductRepo)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.ProductRepo, c.QueueClient, c.Config.Checkout)
	c.CheckoutService = service.NewCheckoutService(c.CartService, c.OrderService, c.CartRepo)
	c.ReviewService = service.NewReviewService(c.ReviewRepo, c.ProductRepo)
	c.BannerService = service.NewBannerService(c.BannerRepo)
	c.DashboardService = service.NewDashboardService(c.DashboardRepo, c.OrderRepo)
}
