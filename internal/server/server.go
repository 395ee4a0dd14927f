package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	clientdomain "github.com/hazimzaman/new-invoices/internal/client/domain"
	"github.com/hazimzaman/new-invoices/internal/config"
	invoicedomain "github.com/hazimzaman/new-invoices/internal/invoice/domain"
	obsmiddleware "github.com/hazimzaman/new-invoices/internal/observability/logger"
	obsmetrics "github.com/hazimzaman/new-invoices/internal/observability/metrics"
	"github.com/hazimzaman/new-invoices/internal/providers/email"
	"github.com/hazimzaman/new-invoices/internal/providers/pdf"
	settingsdomain "github.com/hazimzaman/new-invoices/internal/settings/domain"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(registerRoutes),
	fx.Invoke(run),
)

func NewEngine(cfg config.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           cfg.Environment != "production",
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

type Params struct {
	fx.In

	Engine      *gin.Engine
	Cfg         config.Config
	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	ClientSvc   clientdomain.Service
	SettingsSvc settingsdomain.Service
	InvoiceSvc  invoicedomain.Service
	PDF         pdf.Provider
	Mail        email.Provider
	Metrics     *obsmetrics.DomainMetrics `optional:"true"`
}

type Server struct {
	engine      *gin.Engine
	cfg         config.Config
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	clientSvc   clientdomain.Service
	settingsSvc settingsdomain.Service
	invoiceSvc  invoicedomain.Service
	pdf         pdf.Provider
	mail        email.Provider
	metrics     *obsmetrics.DomainMetrics
}

func NewServer(p Params) *Server {
	return &Server{
		engine:      p.Engine,
		cfg:         p.Cfg,
		db:          p.DB,
		log:         p.Log.Named("http.server"),
		genID:       p.GenID,
		clientSvc:   p.ClientSvc,
		settingsSvc: p.SettingsSvc,
		invoiceSvc:  p.InvoiceSvc,
		pdf:         p.PDF,
		mail:        p.Mail,
		metrics:     p.Metrics,
	}
}

// RegisterAPIRoutes mounts the user-scoped API under /api/v1.
func (s *Server) RegisterAPIRoutes() {
	api := s.engine.Group("/api/v1")
	api.Use(UserScopeMiddleware())

	api.POST("/clients", s.CreateClient)
	api.GET("/clients", s.ListClients)
	api.GET("/clients/:id", s.GetClientByID)
	api.PUT("/clients/:id", s.UpdateClient)
	api.DELETE("/clients/:id", s.DeleteClient)

	api.GET("/settings", s.GetSettings)
	api.PUT("/settings", s.UpsertSettings)

	api.POST("/invoices", s.CreateInvoice)
	api.GET("/invoices", s.ListInvoices)
	api.GET("/invoices/:id", s.GetInvoiceByID)
	api.PUT("/invoices/:id", s.UpdateInvoice)
	api.DELETE("/invoices/:id", s.DeleteInvoice)
	api.GET("/invoices/:id/pdf", s.DownloadInvoicePDF)
	api.POST("/invoices/:id/send", s.SendInvoice)
	api.POST("/invoices/preview-total", s.PreviewTotal)
}

func registerRoutes(s *Server) {
	s.RegisterAPIRoutes()
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			_ = ctx
			log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
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
