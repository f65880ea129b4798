package main

import (
	"github.com/gin-gonic/gin"
	"github.com/sadiclarsan/web/internal/config"
	"github.com/sadiclarsan/web/internal/db"
	"github.com/sadiclarsan/web/internal/handler"
	"github.com/sadiclarsan/web/internal/router"
	"github.com/sadiclarsan/web/internal/service"
	"github.com/sadiclarsan/web/pkg/logger"
)

func main() {
	log := logger.New()

	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	gdb, err := db.Init(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DatabasePath).Msg("failed to initialize database")
	}

	// Runs before the listener starts so the first login cannot race
	// the bootstrap insert.
	admins := service.NewAdminUserService(gdb)
	if err := admins.EnsureDefaultAdmin(cfg.AdminUsername, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure default admin user")
	}

	api := handler.NewAPI(gdb, log, cfg.StaticRoot)
	r := router.Setup(api, cfg)

	log.Info().Str("addr", cfg.ListenAddr).Msg("starting server")
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
