package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mkarpus/feedsignal/lib/models"
)

// FeedConfig is the external, read-only document describing one
// monitored feed: <name>.cfg.json under the state directory.
type FeedConfig struct {
	Name string `json:"-"`

	FeedURL string              `json:"feed_url"`
	Dests   models.Destinations `json:"dests"`

	// Optional argv prefix replacing the bare signal-cli command,
	// e.g. ["ssh", "relay-host", "signal-cli"].
	SignalCommand []string `json:"signal_cli,omitempty"`
}

func FeedConfigPath(dir, name string) string {
	return filepath.Join(dir, name+".cfg.json")
}

func StatePath(dir, name string) string {
	return filepath.Join(dir, name+".state.json")
}

// NewFeedConfig loads and validates the feed config named by the CLI
// options. A missing feed_url is fatal here, before any network
// activity.
func NewFeedConfig(opts *Options, cfg *Config) (*FeedConfig, error) {
	name := opts.Args.FeedName
	path := FeedConfigPath(cfg.StateDir, name)

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read feed config: %w", err)
	}

	fc := &FeedConfig{Name: name}
	if err := json.Unmarshal(raw, fc); err != nil {
		return nil, fmt.Errorf("parse feed config %s: %w", path, err)
	}
	if fc.FeedURL == "" {
		return nil, fmt.Errorf("feed config %s: feed_url is required", path)
	}
	if len(fc.SignalCommand) == 0 {
		fc.SignalCommand = []string{cfg.SignalCommand}
	}
	return fc, nil
}
