package main

import (
	"log"
	"os"
	"strconv"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"crm-engine/internal/audit"
	"crm-engine/internal/config"
	"crm-engine/internal/handler"
)

func main() {
	cfg, err := config.Load(os.Getenv("CRM_CONFIG"))
	if err != nil {
		log.Fatalf("Config failed: %v", err)
	}

	logger := newLogger(cfg.Server.LogMode)
	defer logger.Sync()
	sugar := logger.Sugar()

	var store *audit.Store
	if cfg.Server.AuditDB != "" {
		store, err = audit.Open(cfg.Server.AuditDB)
		if err != nil {
			sugar.Fatalw("audit store failed", "path", cfg.Server.AuditDB, "error", err)
		}
		defer store.Close()
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = strconv.Itoa(cfg.Server.Port)
	}

	h := handler.New(&cfg.Engine, store, sugar)
	sugar.Infow("CRM engine starting", "port", port, "audit", cfg.Server.AuditDB != "")
	if err := fasthttp.ListenAndServe(":"+port, h.Handle); err != nil {
		sugar.Fatalw("server failed", "error", err)
	}
}

func newLogger(mode string) *zap.Logger {
	var zcfg zap.Config
	switch mode {
	case "prod", "production":
		zcfg = zap.NewProductionConfig()
	default:
		zcfg = zap.NewDevelopmentConfig()
	}
	logger, err := zcfg.Build()
	if err != nil {
		log.Fatalf("Logger failed: %v", err)
	}
	return logger
}
