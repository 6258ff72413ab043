package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/araddon/dateparse"
	"github.com/jessevdk/go-flags"
)

// Options is the CLI surface: one feed name resolving the
// <name>.cfg.json / <name>.state.json pair, an optional floor date,
// and a dry-run switch.
type Options struct {
	StartDate string `long:"start-date" description:"Ignore entries published at or before this date; interpreted as UTC when no zone is given"`
	SkipSend  bool   `long:"skip-send" description:"Log notification invocations instead of executing them"`

	Args struct {
		FeedName string `positional-arg-name:"feed-name" description:"Feed source name, resolves <name>.cfg.json and <name>.state.json"`
	} `positional-args:"yes" required:"yes"`
}

// ErrHelp is returned by ParseArgs when --help was shown; callers
// should exit cleanly without treating it as a failure.
var ErrHelp = errors.New("help requested")

func ParseArgs(args []string) (*Options, error) {
	var opts Options

	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.ParseArgs(args); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			return nil, ErrHelp
		}
		return nil, fmt.Errorf("failed to parse arguments: %w", err)
	}

	return &opts, nil
}

// FloorDate parses --start-date, applying UTC to zone-less values.
func (o *Options) FloorDate() (*time.Time, error) {
	if o.StartDate == "" {
		return nil, nil
	}
	t, err := dateparse.ParseIn(o.StartDate, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("invalid --start-date %q: %w", o.StartDate, err)
	}
	return &t, nil
}
