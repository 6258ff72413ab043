package senders

import (
	"context"
	"net/http"

	"github.com/mkarpus/feedsignal/config"
	"github.com/mkarpus/feedsignal/lib/models"
	"go.uber.org/zap"
)

// Notification is one entry's outgoing payload, shared by every
// destination of that entry. PreviewImage is a local file path, empty
// when extraction failed. With DryRun set, senders report the
// invocation instead of executing it.
type Notification struct {
	FeedName     string
	Entry        models.Entry
	PreviewImage string
	DryRun       bool
}

type Sender interface {
	Send(ctx context.Context, dest models.Destination, n Notification) error
}

type Registry map[string]Sender

func NewRegistry(log *zap.Logger, cfg *config.Config, feedCfg *config.FeedConfig, transport http.RoundTripper) Registry {
	base := base{log, cfg, transport}
	return Registry{
		models.PlatformSignal: &signalSender{base: base, command: feedCfg.SignalCommand},
		models.PlatformEmail:  &emailSender{base},
	}
}

type base struct {
	log       *zap.Logger
	cfg       *config.Config
	transport http.RoundTripper
}
