package main

// @title           Biblioteca API
// @version         1.0
// @description     Catalog API for books, authors, genres, users and loans.

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/shelfshare/apps/biblioteca-api/internal/config"
	"github.com/snnyvrz/shelfshare/apps/biblioteca-api/internal/db"
	docs "github.com/snnyvrz/shelfshare/apps/biblioteca-api/internal/docs"
	"github.com/snnyvrz/shelfshare/apps/biblioteca-api/internal/handler"
	"github.com/snnyvrz/shelfshare/apps/biblioteca-api/internal/hostinfo"
	"github.com/snnyvrz/shelfshare/apps/biblioteca-api/internal/logging"
	"github.com/snnyvrz/shelfshare/apps/biblioteca-api/internal/middleware"
	"github.com/snnyvrz/shelfshare/apps/biblioteca-api/internal/repository"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

const appVersion = "0.1.0"

func main() {
	startTime := time.Now()

	cfg := config.Load()

	logs, err := logging.New(logging.Options{
		Dir:        cfg.LogDir,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		Console:    true,
	})
	if err != nil {
		log.Fatalf("logging: %v", err)
	}
	defer logs.Sync()

	gin.SetMode(cfg.GinMode)

	e := gin.New()
	e.Use(gin.Recovery(), middleware.RequestLogger(logs.Internal))

	e.SetTrustedProxies([]string{
		"127.0.0.1",
		"::1",
	})

	docs.SwaggerInfo.BasePath = "/"
	docs.SwaggerInfo.Version = appVersion

	database, err := db.ConnectWithRetry(cfg, logs.Internal)
	if err != nil {
		logs.Internal.Fatal("database connection failed", zap.Error(err))
	}

	if err := db.Migrate(database); err != nil {
		logs.Internal.Fatal("migration failed", zap.Error(err))
	}
	logs.Internal.Info("schema migrated", zap.String("dsn", cfg.RedactedDSN()))

	handler.NewHealthHandler(database, startTime, appVersion, logs).RegisterRoutes(e)
	handler.NewSystemHandler(database, cfg.RedactedDSN(), hostinfo.OutboundIP, logs).RegisterRoutes(e)

	loanRepo := repository.NewLoanRepository(database)

	api := e.Group("")
	{
		handler.NewBookHandler(repository.NewGormBookRepository(database), logs).RegisterRoutes(api)
		handler.NewAuthorHandler(repository.NewAuthorRepository(database), logs).RegisterRoutes(api)
		handler.NewGenreHandler(repository.NewGenreRepository(database), logs).RegisterRoutes(api)
		handler.NewUserHandler(repository.NewUserRepository(database), loanRepo, logs).RegisterRoutes(api)
		handler.NewLoanHandler(loanRepo, logs).RegisterRoutes(api)
	}

	e.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	logs.Internal.Info("listening", zap.String("addr", cfg.Addr()), zap.String("version", appVersion))

	if err := e.Run(cfg.Addr()); err != nil {
		logs.Internal.Fatal("server stopped", zap.Error(err))
	}
}
