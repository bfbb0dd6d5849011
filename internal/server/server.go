// Package server is the HTTP boundary. Handlers bind requests, call the
// domain services and translate domain errors to status codes; no pricing
// logic lives here.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/renolab/bathquote/internal/config"
	packagepricedomain "github.com/renolab/bathquote/internal/packageprice/domain"
	quotedomain "github.com/renolab/bathquote/internal/quote/domain"
	snapshotdomain "github.com/renolab/bathquote/internal/snapshot/domain"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	fx.Provide(NewServer),
	fx.Invoke(func(*Server) {}),
	fx.Invoke(run),
)

func NewEngine(cfg config.Config) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(cfg config.Config) *gin.Engine {
	return NewEngine(cfg)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
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
	engine      *gin.Engine
	cfg         config.Config
	log         *zap.Logger
	quoteSvc    quotedomain.Service
	packageSvc  packagepricedomain.Service
	snapshotSvc snapshotdomain.Service
}

type ServerParams struct {
	fx.In

	Gin         *gin.Engine
	Cfg         config.Config
	Log         *zap.Logger
	QuoteSvc    quotedomain.Service
	PackageSvc  packagepricedomain.Service
	SnapshotSvc snapshotdomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:      p.Gin,
		cfg:         p.Cfg,
		log:         p.Log.Named("server"),
		quoteSvc:    p.QuoteSvc,
		packageSvc:  p.PackageSvc,
		snapshotSvc: p.SnapshotSvc,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) registerAPIRoutes() {
	v1 := s.engine.Group("/v1")

	v1.POST("/quotes/calculate", s.CalculateQuote)
	v1.POST("/packages/price", s.PricePackage)

	v1.POST("/snapshots", s.CreateSnapshot)
	v1.GET("/snapshots/:id", s.GetSnapshot)
	v1.PATCH("/snapshots/:id/status", s.TransitionSnapshot)
}
