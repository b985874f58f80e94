package main

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"serpentaware/internal/api"
	"serpentaware/internal/auth"
	"serpentaware/internal/catalog"
	"serpentaware/internal/certs"
	"serpentaware/internal/config"
	"serpentaware/internal/files"
	"serpentaware/internal/metrics"
	"serpentaware/internal/store"
	"serpentaware/internal/utils"
	"serpentaware/internal/web"
)

// certWarnWithin is how close to expiry a certificate must be before startup logs a warning.
const certWarnWithin = 30 * 24 * time.Hour

// datasetSource is the dataset init-data and startup seeding load: the
// configured file, or the embedded catalog.
func datasetSource(path string) api.DatasetSource {
	if path == "" {
		return func(context.Context) (catalog.Dataset, error) { return catalog.Seed() }
	}
	return func(context.Context) (catalog.Dataset, error) { return files.LoadDataset(path) }
}

// checkDataset fails early when a configured dataset file is missing, before
// the store or watcher touch it.
func checkDataset(path string) error {
	if path != "" && !files.FileExists(path) {
		return fmt.Errorf("dataset file %s does not exist", path)
	}
	return nil
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	return utils.NewLogger(utils.LogOptions{Level: cfg.Log.Level, Format: cfg.Log.Format, File: cfg.Log.File})
}

func serve(ctx context.Context, cfg config.Config) error {
	if err := checkDataset(cfg.Dataset.Path); err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	st, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	admin, err := auth.LoadVerifier(cfg.Admin.TokenHashFile)
	if err != nil {
		return err
	}
	if !admin.Enabled() {
		logger.Warn("no admin token configured; POST /api/init-data is open")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	source := datasetSource(cfg.Dataset.Path)
	h := api.NewHandlers(st, source, logger.With(zap.String("component", "api")), m)
	if err := seedIfEmpty(ctx, cfg, st, h, m); err != nil {
		return err
	}

	pages, err := web.New(st, logger)
	if err != nil {
		return err
	}
	srv := &http.Server{
		Addr: cfg.Addr,
		Handler: api.NewHandler(api.Options{
			Handlers:  h,
			Logger:    logger,
			Metrics:   m,
			Admin:     admin,
			RateLimit: cfg.RateLimit,
			Pages:     pages,
		}),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	if cfg.TLS.Enabled() {
		tlsCfg, err := loadTLS(cfg.TLS, logger)
		if err != nil {
			return err
		}
		srv.TLSConfig = tlsCfg
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server listening",
			zap.String("addr", cfg.Addr),
			zap.Bool("tls", cfg.TLS.Enabled()),
			zap.String("store", cfg.Store.Driver))
		var err error
		if srv.TLSConfig != nil {
			err = srv.ListenAndServeTLS("", "")
		} else {
			err = srv.ListenAndServe()
		}
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if cfg.Dataset.Watch {
		w := files.NewWatcher(cfg.Dataset.Path,
			func(ctx context.Context, d catalog.Dataset) error {
				_, err := h.Reload(ctx, "file", func(context.Context) (catalog.Dataset, error) { return d, nil })
				return err
			},
			files.WithLogger(logger.With(zap.String("component", "watcher"))),
			files.WithErrorHandler(func(err error) { m.ObserveReload("file", err) }),
		)
		g.Go(func() error { return w.Run(gctx) })
	}
	return g.Wait()
}

// seedIfEmpty loads the active dataset into an empty store. A store that
// already holds data (a persisted sqlite or postgres snapshot) is left alone.
func seedIfEmpty(ctx context.Context, cfg config.Config, st store.Store, h *api.Handlers, m *metrics.Metrics) error {
	snakes, emergency, err := st.Counts(ctx)
	if err != nil {
		return fmt.Errorf("count store: %w", err)
	}
	if snakes > 0 || !cfg.SeedOnStart {
		m.SetCatalogSize(snakes, emergency)
		return nil
	}
	if _, err := h.Reload(ctx, "seed", datasetSource(cfg.Dataset.Path)); err != nil {
		return fmt.Errorf("seed store: %w", err)
	}
	return nil
}

func loadTLS(cfg config.TLSConfig, logger *zap.Logger) (*tls.Config, error) {
	cm := certs.NewCertManager(cfg.CertFile, cfg.KeyFile)
	left, err := cm.Check()
	if err != nil {
		return nil, fmt.Errorf("tls certificate: %w", err)
	}
	if left < certWarnWithin {
		logger.Warn("tls certificate expires soon", zap.Duration("remaining", left))
	}
	pair, err := cm.LoadKeyPair()
	if err != nil {
		return nil, err
	}
	return &tls.Config{Certificates: []tls.Certificate{pair}, MinVersion: tls.VersionTLS12}, nil
}
