package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"glowskin_dev_v1/internal/controller"
	"glowskin_dev_v1/internal/middleware"
	"glowskin_dev_v1/internal/model"
	"glowskin_dev_v1/internal/repository"
	"glowskin_dev_v1/internal/router"
	"glowskin_dev_v1/internal/service"
	"glowskin_dev_v1/internal/task"
	"glowskin_dev_v1/pkg/config"
	"glowskin_dev_v1/pkg/database"
	"glowskin_dev_v1/pkg/payment"

	"gorm.io/gorm"
)

// @title GlowSkin API
// @version 1.0
// @description 护肤品直售电商 + 内容博客后端服务
// @host localhost:8080
// @BasePath /api

// Repositories 仓储层集合
type Repositories struct {
	User         repository.UserRepository
	Brand        repository.BrandRepository
	Category     repository.CategoryRepository
	Product      repository.ProductRepository
	Coupon       repository.CouponRepository
	Cart         repository.CartRepository
	Wishlist     repository.WishlistRepository
	Order        repository.OrderRepository
	Review       repository.ReviewRepository
	BlogPost     repository.BlogPostRepository
	BlogCategory repository.BlogCategoryRepository
	BlogTag      repository.BlogTagRepository
	BlogComment  repository.BlogCommentRepository
	Analytics    repository.AnalyticsRepository
}

// Services 服务层集合
type Services struct {
	Auth         *service.AuthService
	Brand        *service.BrandService
	Category     *service.CategoryService
	Product      *service.ProductService
	Coupon       *service.CouponService
	Cart         *service.CartService
	Wishlist     *service.WishlistService
	Order        *service.OrderService
	Review       *service.ReviewService
	BlogPost     *service.BlogPostService
	BlogCategory *service.BlogCategoryService
	BlogTag      *service.BlogTagService
	BlogComment  *service.BlogCommentService
	Analytics    *service.AnalyticsService
}

// Dependencies 应用依赖容器
type Dependencies struct {
	Config      *config.Config
	DB          *gorm.DB
	Repos       *Repositories
	Services    *Services
	Controllers router.Controllers
	TaskManager *task.TaskManager
	Gateway     *payment.Client
}

func main() {
	// 加载 .env（不存在也没关系，线上用环境变量）
	_ = godotenv.Load()

	cfg := config.Load(os.Getenv("GLOWSKIN_CONFIG_PATH"))

	deps := initDependencies(cfg)

	// 启动后台定时任务
	deps.TaskManager.Start()
	defer deps.TaskManager.Stop()

	gin.SetMode(cfg.Server.Mode)
	r := gin.Default()
	router.InitRoutes(r, deps.Controllers)

	startServer(r, cfg.Server.Port)
}

// initDatabase 初始化数据库并自动迁移所有模型
func initDatabase(cfg *config.Config) *gorm.DB {
	return database.InitDB(cfg.Database.DSN,
		&model.User{},
		&model.Brand{},
		&model.Category{},
		&model.Product{},
		&model.ProductImage{},
		&model.Coupon{},
		&model.CartItem{},
		&model.WishlistItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.Review{},
		&model.BlogCategory{},
		&model.BlogTag{},
		&model.BlogPost{},
		&model.BlogComment{},
		&model.BlogAnalyticsEvent{},
	)
}

// initDependencies 组装全部依赖：DB -> 仓储 -> 服务 -> 控制器 -> 任务
func initDependencies(cfg *config.Config) *Dependencies {
	db := initDatabase(cfg)

	middleware.SetJWTConfig(&middleware.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenTTL:  cfg.JWT.AccessTokenTTL,
		RefreshTokenTTL: cfg.JWT.RefreshTokenTTL,
		Issuer:          cfg.JWT.Issuer,
	})

	gateway := payment.NewClient(payment.Config{
		BaseURL:   cfg.Gateway.BaseURL,
		APIKey:    cfg.Gateway.APIKey,
		APISecret: cfg.Gateway.APISecret,
	})

	repos := initRepositories(db)
	services := initServices(db, repos, gateway)

	tm := task.NewTaskManager(&task.TaskManagerDeps{
		PostRepo:      repos.BlogPost,
		CouponRepo:    repos.Coupon,
		AnalyticsRepo: repos.Analytics,
	}, &task.TaskManagerConfig{
		PublishEnabled:   cfg.Tasks.PublishEnabled,
		CouponEnabled:    cfg.Tasks.CouponEnabled,
		AnalyticsEnabled: cfg.Tasks.AnalyticsEnabled,
	})

	return &Dependencies{
		Config:      cfg,
		DB:          db,
		Repos:       repos,
		Services:    services,
		Controllers: initControllers(services),
		TaskManager: tm,
		Gateway:     gateway,
	}
}

func initRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:         repository.NewUserRepository(db),
		Brand:        repository.NewBrandRepository(db),
		Category:     repository.NewCategoryRepository(db),
		Product:      repository.NewProductRepository(db),
		Coupon:       repository.NewCouponRepository(db),
		Cart:         repository.NewCartRepository(db),
		Wishlist:     repository.NewWishlistRepository(db),
		Order:        repository.NewOrderRepository(db),
		Review:       repository.NewReviewRepository(db),
		BlogPost:     repository.NewBlogPostRepository(db),
		BlogCategory: repository.NewBlogCategoryRepository(db),
		BlogTag:      repository.NewBlogTagRepository(db),
		BlogComment:  repository.NewBlogCommentRepository(db),
		Analytics:    repository.NewAnalyticsRepository(db),
	}
}

func initServices(db *gorm.DB, repos *Repositories, gateway *payment.Client) *Services {
	couponSvc := service.NewCouponService(repos.Coupon)

	return &Services{
		Auth:         service.NewAuthService(repos.User),
		Brand:        service.NewBrandService(repos.Brand),
		Category:     service.NewCategoryService(repos.Category),
		Product:      service.NewProductService(repos.Product, repos.Brand, repos.Category),
		Coupon:       couponSvc,
		Cart:         service.NewCartService(repos.Cart, repos.Product),
		Wishlist:     service.NewWishlistService(repos.Wishlist, repos.Product),
		Order:        service.NewOrderService(db, repos.Order, repos.Product, repos.Coupon, repos.Cart, couponSvc, gateway),
		Review:       service.NewReviewService(repos.Review, repos.Product),
		BlogPost:     service.NewBlogPostService(repos.BlogPost, repos.BlogCategory, repos.BlogTag),
		BlogCategory: service.NewBlogCategoryService(repos.BlogCategory),
		BlogTag:      service.NewBlogTagService(repos.BlogTag),
		BlogComment:  service.NewBlogCommentService(repos.BlogComment, repos.BlogPost),
		Analytics:    service.NewAnalyticsService(repos.Analytics, repos.BlogPost),
	}
}

func initControllers(services *Services) router.Controllers {
	return router.Controllers{
		Auth:         controller.NewAuthController(services.Auth),
		Brand:        controller.NewBrandController(services.Brand),
		Category:     controller.NewCategoryController(services.Category),
		Product:      controller.NewProductController(services.Product),
		Coupon:       controller.NewCouponController(services.Coupon),
		Cart:         controller.NewCartController(services.Cart, services.Wishlist),
		Order:        controller.NewOrderController(services.Order),
		Review:       controller.NewReviewController(services.Review),
		BlogPost:     controller.NewBlogPostController(services.BlogPost),
		BlogTaxonomy: controller.NewBlogTaxonomyController(services.BlogCategory, services.BlogTag),
		BlogComment:  controller.NewBlogCommentController(services.BlogComment),
		Analytics:    controller.NewAnalyticsController(services.Analytics),
	}
}

// startServer 启动 HTTP 服务并支持优雅停机
func startServer(r *gin.Engine, port string) {
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		log.Printf("服务启动，监听端口 %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	// 等待中断信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("收到停止信号，正在关闭服务...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务关闭异常: %v", err)
	}
	log.Println("服务已退出")
}
