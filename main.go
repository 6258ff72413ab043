package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/mkarpus/feedsignal/app"
	"github.com/mkarpus/feedsignal/config"
	"github.com/mkarpus/feedsignal/lib"
	"github.com/mkarpus/feedsignal/senders"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func NewLogger() (*zap.Logger, error) {
	switch os.Getenv("ENVIRONMENT") {
	default:
		return zap.NewDevelopment()

	case "production":
		logCfg := zap.NewProductionConfig()
		logCfg.EncoderConfig.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
			t = t.UTC()
			zapcore.ISO8601TimeEncoder(t, enc)
		}
		return logCfg.Build()
	}
}

func main() {
	opts, err := config.ParseArgs(os.Args[1:])
	if err != nil {
		if errors.Is(err, config.ErrHelp) {
			return
		}
		os.Exit(2)
	}

	fx.New(
		fx.Supply(opts),
		fx.Provide(NewLogger),
		fx.Provide(config.NewConfig),
		fx.Provide(config.NewFeedConfig),

		fx.Provide(app.NewTransport),
		fx.Provide(app.NewDatabase),
		fx.Provide(senders.NewRegistry),

		fx.Provide(lib.NewStateStore),
		fx.Provide(lib.NewFeedFetcher),
		fx.Provide(lib.NewSelector),
		fx.Provide(lib.NewPreviewExtractor),
		fx.Provide(lib.NewRunner),

		fx.Invoke(registerRun),
	).Run()
}

// registerRun launches the one-shot pipeline pass once the app has
// started and shuts the app down with the run's exit code.
func registerRun(
	lc fx.Lifecycle,
	shutdowner fx.Shutdowner,
	log *zap.Logger,
	opts *config.Options,
	feedCfg *config.FeedConfig,
	runner *lib.Runner,
) error {
	floor, err := opts.FloorDate()
	if err != nil {
		return err
	}

	params := lib.RunParams{
		FeedName: feedCfg.Name,
		FeedURL:  feedCfg.FeedURL,
		Dests:    feedCfg.Dests,
		Floor:    floor,
		DryRun:   opts.SkipSend,
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				code := 0
				if err := runner.Run(context.Background(), params); err != nil {
					log.Sugar().Errorw("Run failed", "feed", params.FeedName, "err", err)
					code = 1
				}
				shutdowner.Shutdown(fx.ExitCode(code))
			}()
			return nil
		},
	})
	return nil
}
