package router

import (
	"time"

	"github.com/claudioasousa/Espetaria-PRO/internal/config"
	"github.com/claudioasousa/Espetaria-PRO/internal/handler"
	"github.com/claudioasousa/Espetaria-PRO/internal/infra"
	"github.com/claudioasousa/Espetaria-PRO/internal/middleware"
	"github.com/claudioasousa/Espetaria-PRO/internal/notify"
	"github.com/claudioasousa/Espetaria-PRO/internal/repository"
	"github.com/claudioasousa/Espetaria-PRO/internal/service"
	"github.com/claudioasousa/Espetaria-PRO/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, mailerCB *infra.CircuitBreaker) *gin.Engine {
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

	// ── Infrastructure ───────────────────────────────────────────────────────
	notifier := notify.New(rdb)
	dispatcher := worker.NewDispatcher(rdb)

	// ── Repositories ─────────────────────────────────────────────────────────
	productRepo := repository.NewProductRepository(db)
	tableRepo := repository.NewTableRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	cashRepo := repository.NewCashRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	productSvc := service.NewProductService(productRepo, rdb)
	orderSvc := service.NewOrderService(orderRepo, tableRepo, productRepo, notifier)
	tableSvc := service.NewTableService(tableRepo, orderRepo, dispatcher, notifier)
	inventorySvc := service.NewInventoryService(inventoryRepo, notifier)
	cashSvc := service.NewCashService(cashRepo, orderRepo, dispatcher, notifier)

	// ── Handlers ─────────────────────────────────────────────────────────────
	productsH := handler.NewProductHandler(productSvc)
	ordersH := handler.NewOrderHandler(orderSvc)
	tablesH := handler.NewTableHandler(tableSvc)
	inventoryH := handler.NewInventoryHandler(inventorySvc)
	cashH := handler.NewCashHandler(cashSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db, rdb, mailerCB))

	api := r.Group("/api")
	{
		api.GET("/products", productsH.List)

		api.GET("/tables", tablesH.List)
		api.GET("/tables/:number/bill", tablesH.Bill)
		api.POST("/tables/:number/pay", tablesH.Pay)

		api.GET("/orders", ordersH.List)
		api.POST("/orders", ordersH.Create)
		api.GET("/orders/:id", ordersH.Get)
		api.PATCH("/orders/:id/status", ordersH.UpdateStatus)

		api.GET("/inventory", inventoryH.List)
		api.GET("/inventory/alerts", inventoryH.Alerts)
		api.POST("/inventory/:id/restock", inventoryH.Restock)

		cash := api.Group("/cash")
		{
			cash.GET("/active", cashH.Active)
			cash.POST("/open", cashH.Open)
			cash.POST("/close/:id", cashH.Close)
			cash.POST("/transaction", cashH.Transaction)
			cash.GET("/sessions", cashH.Sessions)
		}

		// Change feed — one SSE stream instead of per-collection polling
		api.GET("/events", handler.Events(notifier))
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
