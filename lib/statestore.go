package lib

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/mkarpus/feedsignal/config"
	"github.com/mkarpus/feedsignal/lib/models"
	"go.uber.org/zap"
)

// StateStore reads and writes the per-feed persisted state document,
// <name>.state.json under the state directory.
type StateStore struct {
	dir string
	log *zap.Logger
}

func NewStateStore(cfg *config.Config, log *zap.Logger) *StateStore {
	return &StateStore{dir: cfg.StateDir, log: log}
}

// Load returns an empty state when no prior file exists; that is the
// normal first run, not an error. A file that exists but does not
// decode is a hard failure: silently starting from empty would
// re-notify the feed's entire history.
func (s *StateStore) Load(name string) (*models.PersistedState, error) {
	path := config.StatePath(s.dir, name)

	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		s.log.Sugar().Infow("No prior state, starting fresh", "feed", name)
		return &models.PersistedState{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read state: %w", err)
	}

	state := &models.PersistedState{}
	if err := json.Unmarshal(raw, state); err != nil {
		return nil, fmt.Errorf("corrupt state file %s: %w", path, err)
	}
	return state, nil
}

// Save overwrites the whole document. Called after every successfully
// notified entry and once more at the end of the run.
func (s *StateStore) Save(name string, state *models.PersistedState) error {
	raw, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	if err := os.WriteFile(config.StatePath(s.dir, name), raw, 0o644); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	return nil
}
