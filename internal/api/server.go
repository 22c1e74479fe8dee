package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/packtrack/stock-api/docs"
	v1 "github.com/packtrack/stock-api/internal/api/handler/v1"
	"github.com/packtrack/stock-api/internal/api/middleware"
	"github.com/packtrack/stock-api/internal/config"
	"github.com/packtrack/stock-api/internal/repository"
	"github.com/packtrack/stock-api/internal/repository/dao"
	"github.com/packtrack/stock-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

type handlers struct {
	worker  *v1.WorkerHandler
	item    *v1.ItemHandler
	buyer   *v1.BuyerHandler
	packing *v1.PackingHandler
	sale    *v1.SaleHandler
	stock   *v1.StockHandler
	report  *v1.ReportHandler
}

// NewServer wires the handlers on top of db. cache and publisher may be the
// no-op implementations when Redis or Kafka are not configured.
func NewServer(conf *config.AppConfig, db *gorm.DB, cache service.StockCache, publisher service.EventPublisher) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()
	s.MountHandlers(initHandlers(db, cache, publisher))

	return s
}

func initHandlers(db *gorm.DB, cache service.StockCache, publisher service.EventPublisher) handlers {
	workerRepo := repository.NewWorkerRepository(dao.NewWorkerDAO(db))
	itemRepo := repository.NewItemRepository(dao.NewItemDAO(db))
	buyerRepo := repository.NewBuyerRepository(dao.NewBuyerDAO(db))
	ledgerRepo := repository.NewLedgerRepository(dao.NewLedgerDAO(db))

	stockSvc := service.NewStockService(ledgerRepo, cache)
	ledgerSvc := service.NewLedgerService(ledgerRepo, stockSvc, cache, publisher)

	return handlers{
		worker:  v1.NewWorkerHandler(service.NewWorkerService(workerRepo)),
		item:    v1.NewItemHandler(service.NewItemService(itemRepo, cache)),
		buyer:   v1.NewBuyerHandler(service.NewBuyerService(buyerRepo)),
		packing: v1.NewPackingHandler(ledgerSvc),
		sale:    v1.NewSaleHandler(ledgerSvc),
		stock:   v1.NewStockHandler(stockSvc, ledgerSvc),
		report:  v1.NewReportHandler(service.NewReportService(ledgerRepo)),
	}
}

func (s *Server) MountMiddlewares() {
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.Logger())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(h handlers) {
	const basePath = "/api/v1"

	api := s.Router.Group(basePath)
	{
		api.GET("/workers", h.worker.HandleListWorkers)
		api.POST("/workers", h.worker.HandleCreateWorker)
		api.GET("/workers/:workerID", h.worker.HandleGetWorker)
		api.PUT("/workers/:workerID", h.worker.HandleUpdateWorker)
		api.DELETE("/workers/:workerID", h.worker.HandleDeleteWorker)

		api.GET("/items", h.item.HandleListItems)
		api.POST("/items", h.item.HandleCreateItem)
		api.GET("/items/:itemID", h.item.HandleGetItem)
		api.PUT("/items/:itemID", h.item.HandleUpdateItem)
		api.DELETE("/items/:itemID", h.item.HandleDeleteItem)

		api.GET("/buyers", h.buyer.HandleListBuyers)
		api.POST("/buyers", h.buyer.HandleCreateBuyer)
		api.GET("/buyers/:buyerID", h.buyer.HandleGetBuyer)
		api.PUT("/buyers/:buyerID", h.buyer.HandleUpdateBuyer)
		api.DELETE("/buyers/:buyerID", h.buyer.HandleDeleteBuyer)

		api.GET("/packing-entries", h.packing.HandleListPackingEntries)
		api.POST("/packing-entries", h.packing.HandleCreatePackingEntry)
		api.GET("/packing-entries/:entryID", h.packing.HandleGetPackingEntry)
		api.PUT("/packing-entries/:entryID", h.packing.HandleUpdatePackingEntry)
		api.DELETE("/packing-entries/:entryID", h.packing.HandleDeletePackingEntry)

		api.GET("/sales", h.sale.HandleListSales)
		api.POST("/sales", h.sale.HandleCreateSale)
		api.GET("/sales/:saleID", h.sale.HandleGetSale)
		api.DELETE("/sales/:saleID", h.sale.HandleDeleteSale)

		api.GET("/stock", h.stock.HandleListStock)
		api.GET("/items/:itemID/stock", h.stock.HandleGetItemStock)
		api.POST("/items/:itemID/stock/check", h.stock.HandleCheckStock)
		api.POST("/items/:itemID/adjustments", h.stock.HandleApplyAdjustments)

		api.GET("/stats/workers", h.report.HandleWorkerStats)
		api.GET("/stats/buyers", h.report.HandleBuyerStats)
		api.GET("/stats/items", h.report.HandleItemStats)
		api.GET("/reports/workers", h.report.HandleWorkerReport)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Packing stock ledger API"
	docs.SwaggerInfo.Description = "Packing entries, sales and the stock derived from them."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
