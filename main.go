package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "eventrent-backend/docs"
	"eventrent-backend/internal/platform/audit"
	"eventrent-backend/internal/platform/auth"
	"eventrent-backend/internal/platform/config"
	"eventrent-backend/internal/platform/db"
	"eventrent-backend/internal/platform/logger"
	"eventrent-backend/internal/rental/assets"
	"eventrent-backend/internal/rental/catalog"
	"eventrent-backend/internal/rental/directory"
	"eventrent-backend/internal/rental/integrity"
	"eventrent-backend/internal/rental/payments"
	"eventrent-backend/internal/rental/quotations"
	"eventrent-backend/internal/rental/reservations"
)

// @title       Event Rental API
// @version     1.0
// @BasePath    /api/v1
// @securityDefinitions.apikey BearerAuth
// @in          header
// @name        Authorization
func main() {
	cfg, err := config.Load("config/config.yaml")
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Mode, cfg.Log)
	if err != nil {
		panic(err)
	}
	defer log.Sync()
	log.Info("starting", zap.String("mode", cfg.Mode), zap.String("version", cfg.Version))

	conn, err := db.Connect(cfg.DB)
	if err != nil {
		log.Fatal("connect db", zap.Error(err))
	}
	defer conn.Close()
	log.Info("connected to db", zap.String("dbname", cfg.DB.DBName))

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(logger.RequestID(), logger.Access(log), gin.Recovery())
	_ = r.SetTrustedProxies(nil)

	if cfg.Mode == config.ModeDev {
		// CORS is only needed for the local frontend
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.Server.AllowOrigins,
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
			ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-Request-ID"},
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowCredentials: true,
		}))
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	r.GET("/healthz", func(c *gin.Context) {
		if err := conn.PingContext(c.Request.Context()); err != nil {
			c.String(http.StatusServiceUnavailable, "db unavailable")
			return
		}
		c.String(http.StatusOK, "ok")
	})

	secret := []byte(cfg.Auth.JWTSecret)
	authSvc := auth.NewService(auth.NewStore(conn), secret, cfg.TokenTTL())

	api := r.Group("/api/v1")
	auth.RegisterPublicRoutes(api, authSvc)

	private := api.Group("", auth.RequireAuth(secret))
	auth.RegisterAdminRoutes(private, authSvc)

	sink := audit.NewDBSink(audit.NewStore(conn), log)

	productStore := catalog.NewStore(conn)
	assetStore := assets.NewStore(conn)
	directoryStore := directory.NewStore(conn)
	validator := integrity.NewValidator(productStore, assetStore, log)
	reservationSvc := reservations.NewService(reservations.NewStore(conn), directoryStore, validator, sink, log)

	catalog.RegisterRoutes(private, catalog.NewService(productStore, log), log)
	assets.RegisterRoutes(private, assets.NewService(assetStore, productStore, sink, log), log)
	directory.RegisterRoutes(private, directoryStore, log)
	integrity.RegisterRoutes(private, validator, log)
	reservations.RegisterRoutes(private, reservationSvc, log)
	quotations.RegisterRoutes(private, quotations.NewService(quotations.NewStore(conn), sink, log), log)
	payments.RegisterRoutes(private, payments.NewService(payments.NewStore(conn), reservationSvc, sink, log), log)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: r,
	}

	tlsDir := filepath.Join("config", "tls", cfg.Mode)
	certFile := filepath.Join(tlsDir, cfg.Server.Cert)
	keyFile := filepath.Join(tlsDir, cfg.Server.Key)

	go func() {
		log.Info("listening", zap.String("addr", "https://"+cfg.Server.Addr))
		if err := srv.ListenAndServeTLS(certFile, keyFile); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("listen", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown", zap.Error(err))
	}
	// drain audit writes before the deferred conn.Close
	if err := sink.Close(ctx); err != nil {
		log.Warn("audit writes still pending at exit", zap.Error(err))
	}
}
