package router

import (
	"time"

	"github.com/kalytamykhailo18-cyber/Multi-Branch-ERP-POS-System/internal/config"
	"github.com/kalytamykhailo18-cyber/Multi-Branch-ERP-POS-System/internal/handler"
	"github.com/kalytamykhailo18-cyber/Multi-Branch-ERP-POS-System/internal/middleware"
	"github.com/kalytamykhailo18-cyber/Multi-Branch-ERP-POS-System/internal/repository"
	"github.com/kalytamykhailo18-cyber/Multi-Branch-ERP-POS-System/internal/service"
	"github.com/kalytamykhailo18-cyber/Multi-Branch-ERP-POS-System/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	methodRepo := repository.NewPaymentMethodRepository(db)
	registerRepo := repository.NewRegisterRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	saleRepo := repository.NewSaleRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	sessionSvc := service.NewSessionService(sessionRepo, saleRepo, registerRepo)
	saleSvc := service.NewSaleService(saleRepo, sessionRepo, productRepo, customerRepo, methodRepo, dispatcher)
	catalogSvc := service.NewCatalogService(productRepo, customerRepo, methodRepo, registerRepo, sessionRepo, rdb)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	sessionsH := handler.NewSessionHandler(sessionSvc)
	salesH := handler.NewSaleHandler(saleSvc)
	productsH := handler.NewProductHandler(catalogSvc)
	customersH := handler.NewCustomerHandler(catalogSvc)
	methodsH := handler.NewPaymentMethodHandler(catalogSvc)
	registersH := handler.NewRegisterHandler(catalogSvc, sessionSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Price check — no auth required (kiosk displays)
	r.GET("/v1/price/:barcode", productsH.PriceCheck)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		anyRole := middleware.RequireRole("cashier", "supervisor", "admin")
		elevated := middleware.RequireRole("supervisor", "admin")
		adminOnly := middleware.RequireRole("admin")

		v1.POST("/sales", anyRole, salesH.Complete)
		v1.GET("/sales", anyRole, salesH.List)
		v1.GET("/sales/:id", anyRole, salesH.Get)
		v1.DELETE("/sales/:id", elevated, salesH.Void)

		sessions := v1.Group("/sessions")
		{
			sessions.POST("", anyRole, sessionsH.Open)
			sessions.GET("", elevated, sessionsH.List)
			sessions.GET("/mine", anyRole, sessionsH.Mine)
			sessions.GET("/:id", anyRole, sessionsH.Get)
			sessions.POST("/:id/close", anyRole, sessionsH.Close)
			sessions.POST("/:id/force-close", elevated, sessionsH.ForceClose)
			// Running totals would defeat the blind close if cashiers saw them.
			sessions.GET("/:id/summary", elevated, sessionsH.Summary)
		}

		v1.GET("/registers", anyRole, registersH.ListByBranch)
		v1.POST("/registers", adminOnly, registersH.Create)
		v1.GET("/registers/:id/session", anyRole, registersH.ActiveSession)

		v1.GET("/products", anyRole, productsH.Search)
		v1.GET("/products/:id", anyRole, productsH.Get)
		v1.GET("/customers", anyRole, customersH.Search)
		v1.GET("/customers/:id", anyRole, customersH.Get)
		v1.GET("/payment-methods", anyRole, methodsH.List)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
