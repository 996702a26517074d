package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/pribylovaa/commentary/internal/app"
	"github.com/pribylovaa/commentary/internal/config"
	"github.com/pribylovaa/commentary/internal/metrics"
	"github.com/pribylovaa/commentary/internal/service"
	cmhttp "github.com/pribylovaa/commentary/internal/transport/http"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file (overrides CONFIG_PATH env)")
	flag.Parse()

	cfg := config.MustLoad(configPath)

	log := app.SetupLogger(cfg.Env)
	slog.SetDefault(log)
	log.Info("starting commentary", "env", cfg.Env, "driver", cfg.DB.Driver)

	rootCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer rootCancel()

	dbCtx, dbCancel := context.WithTimeout(rootCtx, 10*time.Second)
	st, err := app.OpenStorage(dbCtx, *cfg)
	dbCancel()
	if err != nil {
		log.Error("storage_connect_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}
	defer st.Close()
	log.Info("storage_connected")

	q, closeQuota, err := app.Quota(rootCtx, *cfg)
	if err != nil {
		log.Error("quota_init_failed", slog.String("err", err.Error()))
		st.Close()
		os.Exit(1)
	}
	defer func() {
		if cerr := closeQuota(); cerr != nil {
			log.Warn("quota_close_failed", slog.String("err", cerr.Error()))
		}
	}()

	var m *metrics.Metrics
	reg := prometheus.NewRegistry()
	if cfg.Metrics.Enabled {
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		m = metrics.New(reg)
	}

	svc := service.New(st, q, m, *cfg)
	log.Info("service_initialized")

	apiHandler := cmhttp.NewRouter(svc, st, cmhttp.Options{
		Logger:   log,
		Timeout:  cfg.Timeouts.Service,
		BasePath: cfg.HTTP.BasePath,
		Metrics:  m,
	})

	servers := []*http.Server{{
		Addr:              cfg.HTTP.Addr(),
		Handler:           apiHandler,
		ReadHeaderTimeout: 5 * time.Second,
	}}

	if cfg.Metrics.Enabled {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		servers = append(servers, &http.Server{
			Addr:              cfg.Metrics.Addr(),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		})
	}

	g, gctx := errgroup.WithContext(rootCtx)

	for _, srv := range servers {
		ln, err := net.Listen("tcp", srv.Addr)
		if err != nil {
			log.Error("http_listen_failed", slog.String("addr", srv.Addr), slog.String("err", err.Error()))
			rootCancel()
			break
		}
		log.Info("http_listen_start", slog.String("addr", srv.Addr))

		g.Go(func() error {
			if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown_requested")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Timeouts.Shutdown)
		defer cancel()

		for _, srv := range servers {
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Warn("http_shutdown_incomplete", slog.String("addr", srv.Addr), slog.String("err", err.Error()))
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("http_serve_failed", slog.String("err", err.Error()))
	}

	log.Info("service_stopped")
}
