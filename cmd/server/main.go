package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"ekathra/internal/platform/blob"
	"ekathra/internal/platform/config"
	"ekathra/internal/platform/database"
	"ekathra/internal/platform/httpserver"
	"ekathra/internal/platform/logger"
	"ekathra/internal/platform/metrics"
	"ekathra/internal/platform/redis"
	"ekathra/internal/registration"
	regmetrics "ekathra/internal/registration/metrics"
	"ekathra/internal/registration/models"
	"ekathra/internal/registration/receipt"
	"ekathra/internal/registration/service"
	"ekathra/internal/registration/store"
	httptransport "ekathra/internal/transport/http"
	"ekathra/pkg/platform/middleware/admin"
)

// main wires dependencies and owns the server lifecycle. Business logic
// lives in internal/registration.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	recordStore, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Store.Driver, err)
	}
	defer closeStore()

	opts := []service.Option{
		service.WithLogger(log),
		service.WithMetrics(regmetrics.New()),
		service.WithStoreTimeout(cfg.Store.Timeout),
	}
	archive, err := openArchive(ctx, cfg.Archive)
	if err != nil {
		return fmt.Errorf("open %s archive: %w", cfg.Archive.Driver, err)
	}
	if archive != nil {
		opts = append(opts, service.WithArchive(archive))
	}

	event := models.Event{Name: cfg.Event.Name, Date: cfg.Event.Date, Venue: cfg.Event.Venue}
	svc := registration.NewService(recordStore, event, opts...)
	if err := svc.Load(ctx); err != nil {
		// Keep serving; the next request retries the load.
		log.Warn("initial roster load failed", "error", err)
	}

	renderer, err := openRenderer(cfg.Receipt)
	if err != nil {
		return fmt.Errorf("receipt renderer: %w", err)
	}
	gate := admin.NewGate(cfg.Admin.Passphrase, cfg.Admin.PassphraseHash)

	router := httptransport.NewRouter(httptransport.Deps{
		Logger:         log,
		Metrics:        metrics.New(),
		RequestTimeout: cfg.RequestTimeout,
		Health:         svc.Health,
		Modules: []httptransport.RouteRegistrar{
			registration.NewHandler(svc, renderer, gate, log),
		},
	})
	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting ekathra", "addr", cfg.Addr, "store", cfg.Store.Driver, "archive", cfg.Archive.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// openStore returns the configured record store and a func releasing its resources.
func openStore(ctx context.Context, cfg config.Server, log *slog.Logger) (service.Store, func(), error) {
	noop := func() {}
	logOpt := store.WithLogger(log)
	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		db, err := database.OpenPostgres(ctx, cfg.Store.DatabaseURL, store.PostgresMigrations())
		if err != nil {
			return nil, noop, err
		}
		return store.NewPostgres(db, logOpt), func() { _ = db.Close() }, nil
	case config.StoreDriverSQLite:
		db, err := database.OpenSQLite(ctx, cfg.Store.SQLitePath, store.SQLiteMigrations())
		if err != nil {
			return nil, noop, err
		}
		return store.NewSQLite(db, logOpt), func() { _ = db.Close() }, nil
	case config.StoreDriverRedis:
		client, err := redis.New(ctx, cfg.Redis)
		if err != nil {
			return nil, noop, err
		}
		return store.NewRedis(client.Client, cfg.Store.Collection, logOpt), func() { _ = client.Close() }, nil
	default:
		return store.NewInMemory(), noop, nil
	}
}

func openArchive(ctx context.Context, cfg config.ArchiveConfig) (service.Archive, error) {
	switch cfg.Driver {
	case config.ArchiveDriverMemory:
		return blob.NewMemory(), nil
	case config.ArchiveDriverS3:
		return blob.NewS3(ctx, blob.S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			PathStyle:       cfg.S3PathStyle,
			AccessKeyID:     cfg.S3AccessKey,
			SecretAccessKey: cfg.S3SecretKey,
		})
	default:
		return nil, nil
	}
}

func openRenderer(cfg config.ReceiptConfig) (*receipt.Renderer, error) {
	if cfg.FontPath == "" {
		return receipt.New()
	}
	regular, err := os.ReadFile(cfg.FontPath)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	var bold []byte
	if cfg.BoldFontPath != "" {
		if bold, err = os.ReadFile(cfg.BoldFontPath); err != nil {
			return nil, fmt.Errorf("read bold font: %w", err)
		}
	}
	return receipt.New(receipt.WithFont(regular, bold))
}
