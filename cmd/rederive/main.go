// Command rederive regenerates the thumbnail and WebP variants of stored
// originals. Derived keys are deterministic, so running it twice for the same
// key overwrites the same objects.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/andreyxaxa/Media-Service/config"
	"github.com/andreyxaxa/Media-Service/internal/app"
	"github.com/andreyxaxa/Media-Service/internal/infrastructure"
	"github.com/andreyxaxa/Media-Service/internal/repo/persistent"
	"github.com/andreyxaxa/Media-Service/internal/usecase/derivation"
	"github.com/andreyxaxa/Media-Service/pkg/logger"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		envFile string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "rederive FILE_KEY [FILE_KEY...]",
		Short: "Regenerate derived variants for stored originals",
		Example: "  rederive images/3f1c2a9e-8a41-4c1e-9d0b-6f2f0a4b7c11.png\n" +
			"  rederive --env-file prod.env images/a.jpg images/b.png",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(envFile)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return run(ctx, cfg, args, timeout)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", ".env", "optional dotenv file")
	cmd.Flags().DurationVar(&timeout, "timeout", time.Minute, "deadline per file key")

	return cmd
}

func run(ctx context.Context, cfg *config.Config, keys []string, timeout time.Duration) error {
	l := logger.New(cfg.Log.Level)

	mongo, err := app.NewMongo(ctx, cfg)
	if err != nil {
		return fmt.Errorf("rederive - app.NewMongo: %w", err)
	}
	defer func() {
		_ = mongo.Close(context.Background())
	}()

	store, err := app.NewObjectStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("rederive - app.NewObjectStore: %w", err)
	}

	uc := derivation.New(
		store,
		persistent.NewAssetMongoRepo(mongo, cfg.Mongo.Collection),
		app.NewProcessor(cfg),
		infrastructure.NopObserver{},
		l,
	)

	var failed []error
	for _, key := range keys {
		if ctx.Err() != nil {
			failed = append(failed, ctx.Err())

			break
		}

		keyCtx, cancel := context.WithTimeout(ctx, timeout)
		res, err := uc.DeriveStored(keyCtx, key)
		cancel()

		if err != nil {
			l.Error(err, "rederive - key=%s", key)
			failed = append(failed, fmt.Errorf("%s: %w", key, err))

			continue
		}

		l.Info("rederive - key=%s thumbnail=%s webp=%s matched=%d", key, res.ThumbnailKey, res.WebPKey, res.Matched)
	}

	if len(failed) > 0 {
		return fmt.Errorf("rederive - %d of %d keys failed: %w", len(failed), len(keys), errors.Join(failed...))
	}

	return nil
}
