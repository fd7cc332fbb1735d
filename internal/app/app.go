package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/andreyxaxa/Media-Service/config"
	"github.com/andreyxaxa/Media-Service/internal/controller/restapi"
	"github.com/andreyxaxa/Media-Service/internal/controller/restapi/middleware"
	"github.com/andreyxaxa/Media-Service/internal/controller/worker/derivation"
	"github.com/andreyxaxa/Media-Service/internal/infrastructure/metrics"
	"github.com/andreyxaxa/Media-Service/internal/repo"
	"github.com/andreyxaxa/Media-Service/internal/repo/persistent"
	derivationuc "github.com/andreyxaxa/Media-Service/internal/usecase/derivation"
	"github.com/andreyxaxa/Media-Service/internal/usecase/media"
	"github.com/andreyxaxa/Media-Service/pkg/httpserver"
	"github.com/andreyxaxa/Media-Service/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
)

// multipart framing on top of the file itself
const _multipartOverhead = 1 << 20

func Run(cfg *config.Config) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Logger
	l := logger.New(cfg.Log.Level)

	// Repository

	// mongo
	mongo, err := NewMongo(ctx, cfg)
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - NewMongo: %w", err))
	}
	defer func() {
		if err := mongo.Close(context.Background()); err != nil {
			l.Error(fmt.Errorf("app - Run - mongo.Close: %w", err))
		}
	}()

	assets := persistent.NewAssetMongoRepo(mongo, cfg.Mongo.Collection)
	if err = assets.EnsureIndexes(ctx); err != nil {
		l.Fatal(fmt.Errorf("app - Run - assets.EnsureIndexes: %w", err))
	}

	// object store
	store, err := NewObjectStore(ctx, cfg)
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - NewObjectStore: %w", err))
	}

	created, err := repo.EnsureBucket(ctx, store)
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - repo.EnsureBucket: %w", err))
	}
	if created {
		l.Info("app - Run - created bucket %s", cfg.Storage.Bucket)
	}

	// Metrics
	observer, err := metrics.NewPrometheusObserver("media", prometheus.DefaultRegisterer)
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - metrics.NewPrometheusObserver: %w", err))
	}

	// Use-Case

	// derivation use-case
	derivationUseCase := derivationuc.New(store, assets, NewProcessor(cfg), observer, l)

	// Derivation Worker Pool
	derivationPool := derivation.New(
		derivationUseCase,
		l,
		derivation.Workers(cfg.Worker.Workers),
		derivation.QueueSize(cfg.Worker.QueueSize),
		derivation.ProcessTimeout(cfg.Worker.ProcessTimeout),
	)

	err = observer.RegisterQueueDepth(derivationPool.Len)
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - observer.RegisterQueueDepth: %w", err))
	}

	// media use-case
	mediaUseCase := media.New(
		store,
		assets,
		NewProcessor(cfg),
		derivationPool,
		observer,
		l,
		media.MaxFileSize(cfg.Upload.MaxFileSize),
		media.AllowedContentTypes(cfg.Upload.AllowedContentTypes),
		media.URLTTL(cfg.Upload.PresignedURLTTL()),
	)

	// HTTP Server
	httpServer := httpserver.New(l,
		httpserver.Port(cfg.HTTP.Port),
		httpserver.Prefork(cfg.HTTP.UsePreforkMode),
		httpserver.ReadTimeout(cfg.HTTP.ReadTimeout),
		httpserver.WriteTimeout(cfg.HTTP.WriteTimeout),
		httpserver.BodyLimit(int(cfg.Upload.MaxFileSize)+_multipartOverhead),
		httpserver.ErrorHandler(middleware.ErrorHandler(l)),
	)
	restapi.NewRouter(httpServer.App, cfg, mediaUseCase, prometheus.DefaultGatherer, l)

	// Start Components
	err = derivationPool.Start(ctx)
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - derivationPool.Start: %w", err))
	}
	httpServer.Start()

	// Waiting Signal
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		l.Info("app - Run - signal: %s", s.String())
	case err = <-httpServer.Notify():
		l.Error(fmt.Errorf("app - Run - httpServer.Notify: %w", err))
	}

	// Shutdown: no new uploads, then drain derivations, then mongo (deferred)
	err = httpServer.Shutdown()
	if err != nil {
		l.Error(fmt.Errorf("app - Run - httpServer.Shutdown: %w", err))
	}

	poolShutdownCtx, poolShutdownCancel := context.WithTimeout(ctx, cfg.Worker.ShutdownTimeout)
	defer poolShutdownCancel()
	err = derivationPool.Shutdown(poolShutdownCtx)
	if err != nil {
		l.Error(fmt.Errorf("app - Run - derivationPool.Shutdown: %w", err))
	}
}
