package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"
)

type Config struct {
	Env              string `env:"ENVIRONMENT"`
	StateDir         string `env:"FEEDSIGNAL_STATE_DIR" envDefault:"."`
	FetchTimeoutSecs int    `env:"FEEDSIGNAL_FETCH_TIMEOUT_SECS" envDefault:"10"`
	SignalCommand    string `env:"FEEDSIGNAL_SIGNAL_COMMAND" envDefault:"signal-cli"`
	HistoryDB        string `env:"FEEDSIGNAL_HISTORY_DB" envDefault:"feedsignal.sqlite"`
	UserAgent        string `env:"FEEDSIGNAL_USER_AGENT" envDefault:"feedsignal/1.0"`

	Mailgun struct {
		Domain      string `env:"MAILGUN_DOMAIN"`
		APIKey      string `env:"MAILGUN_API_KEY"`
		SenderFrom  string `env:"MAILGUN_SENDER_FROM"`
		TimeoutSecs int    `env:"MAILGUN_TIMEOUT_SECS" envDefault:"10"`
	}

	log *zap.Logger
}

func NewConfig(log *zap.Logger) (*Config, error) {
	cfg := &Config{log: log}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FetchTimeout bounds every feed, page and image request so a stalled
// remote cannot hang the whole run.
func (cfg *Config) FetchTimeout() time.Duration {
	return time.Duration(cfg.FetchTimeoutSecs) * time.Second
}

// MailgunTimeout bounds a single email send.
func (cfg *Config) MailgunTimeout() time.Duration {
	return time.Duration(cfg.Mailgun.TimeoutSecs) * time.Second
}
