package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/capstore/capstore/internal/auth"
	authdomain "github.com/capstore/capstore/internal/auth/domain"
	"github.com/capstore/capstore/internal/auth/session"
	"github.com/capstore/capstore/internal/brand"
	branddomain "github.com/capstore/capstore/internal/brand/domain"
	"github.com/capstore/capstore/internal/cache"
	"github.com/capstore/capstore/internal/config"
	"github.com/capstore/capstore/internal/media"
	mediadomain "github.com/capstore/capstore/internal/media/domain"
	"github.com/capstore/capstore/internal/observability"
	obsmiddleware "github.com/capstore/capstore/internal/observability/logger"
	obsmetrics "github.com/capstore/capstore/internal/observability/metrics"
	obstracing "github.com/capstore/capstore/internal/observability/tracing"
	"github.com/capstore/capstore/internal/order"
	orderdomain "github.com/capstore/capstore/internal/order/domain"
	"github.com/capstore/capstore/internal/price"
	pricedomain "github.com/capstore/capstore/internal/price/domain"
	"github.com/capstore/capstore/internal/product"
	productdomain "github.com/capstore/capstore/internal/product/domain"
	"github.com/capstore/capstore/internal/stock"
	stockdomain "github.com/capstore/capstore/internal/stock/domain"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	auth.Module,
	brand.Module,
	cache.Module,
	media.Module,
	order.Module,
	price.Module,
	product.Module,
	stock.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine     *gin.Engine
	cfg        config.Config
	db         *gorm.DB
	genID      *snowflake.Node
	authsvc    authdomain.Service
	sessions   *session.Manager
	brandSvc   branddomain.Service
	productSvc productdomain.Service
	priceSvc   pricedomain.Service
	stockSvc   stockdomain.Service
	orderSvc   orderdomain.Service
	mediaSvc   mediadomain.Service
}

type ServerParams struct {
	fx.In

	Gin        *gin.Engine
	Cfg        config.Config
	DB         *gorm.DB
	GenID      *snowflake.Node
	Authsvc    authdomain.Service
	Sessions   *session.Manager
	BrandSvc   branddomain.Service
	ProductSvc productdomain.Service
	PriceSvc   pricedomain.Service
	StockSvc   stockdomain.Service
	OrderSvc   orderdomain.Service
	MediaSvc   mediadomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:     p.Gin,
		cfg:        p.Cfg,
		db:         p.DB,
		genID:      p.GenID,
		authsvc:    p.Authsvc,
		sessions:   p.Sessions,
		brandSvc:   p.BrandSvc,
		productSvc: p.ProductSvc,
		priceSvc:   p.PriceSvc,
		stockSvc:   p.StockSvc,
		orderSvc:   p.OrderSvc,
		mediaSvc:   p.MediaSvc,
	}

	svc.registerAuthRoutes()
	svc.registerAPIRoutes()
	svc.registerAdminRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAuthRoutes() {
	auth := s.engine.Group("/auth")

	auth.POST("/register", s.Register)
	auth.POST("/login", s.Login)
	auth.POST("/logout", s.Logout)
	auth.GET("/me", s.AuthRequired(), s.Me)
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	// -------- Catalog --------
	api.GET("/products", s.ListProducts)
	api.GET("/products/:id", s.GetProductByID)
	api.GET("/home", s.ListFeaturedProducts)
	api.GET("/brands", s.ListBrands)
	api.GET("/brands/:id", s.GetBrandByID)

	// -------- Orders --------
	api.GET("/orders", s.AuthRequired(), s.ListOrders)
	api.POST("/orders", s.AuthRequired(), s.CreateOrder)
	api.GET("/orders/:id", s.AuthRequired(), s.GetOrderByID)
}

func (s *Server) registerAdminRoutes() {
	admin := s.engine.Group("/admin")
	admin.Use(s.AuthRequired())

	// -------- Products --------
	admin.GET("/products", s.ListProducts)
	admin.POST("/products", s.CreateProduct)
	admin.GET("/products/:id", s.GetProductByID)
	admin.PATCH("/products/:id", s.UpdateProduct)
	admin.POST("/products/:id/archive", s.ArchiveProduct)
	admin.DELETE("/products/:id", s.DeleteProduct)

	// -------- Prices --------
	admin.GET("/products/:id/prices", s.ListProductPrices)
	admin.POST("/products/:id/prices", s.SetProductPrice)

	// -------- Photos --------
	admin.GET("/products/:id/photos", s.ListProductPhotos)
	admin.POST("/products/:id/photos", s.AddProductPhoto)
	admin.DELETE("/photos/:id", s.DeleteProductPhoto)

	// -------- Stocks --------
	admin.GET("/products/:id/stocks", s.ListProductStocks)
	admin.POST("/stocks", s.CreateStock)
	admin.GET("/stocks/:id", s.GetStockByID)
	admin.DELETE("/stocks/:id", s.DeleteStock)

	// -------- Brands --------
	admin.GET("/brands", s.ListBrands)
	admin.POST("/brands", s.CreateBrand)
	admin.GET("/brands/:id", s.GetBrandByID)
	admin.DELETE("/brands/:id", s.DeleteBrand)

	// -------- Links --------
	admin.GET("/links", s.ListLinks)
	admin.POST("/links", s.CreateLink)
	admin.DELETE("/links/:id", s.DeleteLink)
}
