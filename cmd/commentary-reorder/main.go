// commentary-reorder - разовый пересчёт ключей порядка одной ветки.
//
//	commentary-reorder --config ./config/local.yaml --site example.com --page /post/1
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/pribylovaa/commentary/internal/app"
	"github.com/pribylovaa/commentary/internal/config"
	"github.com/pribylovaa/commentary/internal/models"
	"github.com/pribylovaa/commentary/internal/service"
)

func main() {
	var configPath, site, page string
	flag.StringVar(&configPath, "config", "", "path to config file (overrides CONFIG_PATH env)")
	flag.StringVar(&site, "site", "", "site id")
	flag.StringVar(&page, "page", "", "page id")
	flag.Parse()

	cfg := config.MustLoad(configPath)

	log := app.SetupLogger(cfg.Env)
	slog.SetDefault(log)

	if site == "" || page == "" {
		log.Error("site and page are required")
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	st, err := app.OpenStorage(ctx, *cfg)
	if err != nil {
		log.Error("storage_connect_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}
	defer st.Close()

	svc := service.New(st, nil, nil, *cfg)

	rep, err := svc.ReorderAll(ctx, models.Scope{SiteID: site, PageID: page})
	if err != nil {
		log.Error("reorder_failed", slog.String("err", err.Error()))
		st.Close()
		os.Exit(1)
	}

	log.Info("reorder_done",
		slog.Int("total", rep.Total),
		slog.Int("updated", rep.Updated),
		slog.Int("orphans", rep.Orphans),
	)
}
