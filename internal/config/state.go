package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/viper"
)

// StateFile is the CLI's persisted single-slot state: the identifier of the
// last app opened. It mirrors Settings.LastSelectedApp for the GUI.
type StateFile struct {
	mu     sync.Mutex
	path   string
	v      *viper.Viper
	logger *slog.Logger
}

// OpenStateFile reads path if it exists. A missing file is an empty slot.
func OpenStateFile(path string, logger *slog.Logger) (*StateFile, error) {
	if logger == nil {
		logger = slog.Default()
	}
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetDefault(KeyLastSelectedApp, "")

	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read state %s: %w", path, err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("stat state %s: %w", path, err)
	}
	return &StateFile{path: path, v: v, logger: logger.With("component", "state")}, nil
}

// LastSelectedApp returns the persisted identifier
func (s *StateFile) LastSelectedApp() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v.GetString(KeyLastSelectedApp)
}

// SetLastSelectedApp persists id. Write failures are logged; the in-memory
// value is updated regardless.
func (s *StateFile) SetLastSelectedApp(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.v.Set(KeyLastSelectedApp, id)
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		s.logger.Warn("failed to create state directory", "path", s.path, "error", err)
		return
	}
	if err := s.v.WriteConfigAs(s.path); err != nil {
		s.logger.Warn("failed to write state", "path", s.path, "error", err)
	}
}
