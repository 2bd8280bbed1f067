package main

import (
	"flag"
	"log/slog"
	"os"

	"hotel-concierge-backend/config"
	"hotel-concierge-backend/dao"
	"hotel-concierge-backend/router"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := config.Load(*configPath); err != nil {
		slog.Error("Failed to load config", "path", *configPath, "err", err)
		os.Exit(1)
	}

	if err := dao.Init(config.Cfg.Database.DSN); err != nil {
		slog.Error("Failed to init database", "err", err)
		os.Exit(1)
	}
	if err := dao.AutoMigrate(); err != nil {
		slog.Error("Failed to migrate database", "err", err)
		os.Exit(1)
	}

	r := router.Register()
	if err := r.Run(config.Cfg.Server.Addr); err != nil {
		slog.Error("Server exited", "err", err)
		os.Exit(1)
	}
}
