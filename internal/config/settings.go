package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/samvad-hq/randwall/pkg/sources"
)

// SourceSettings is the option store read by the image sources. Values come
// from sources.Defaults, the optional settings file and the environment
// (UNSPLASH_KEYWORD overrides unsplash.keyword). It is safe for concurrent use;
// Watch swaps in a freshly loaded snapshot whenever the file changes.
type SourceSettings struct {
	path string
	log  sources.Logger

	mu sync.RWMutex
	v  *viper.Viper
}

// LoadSettings reads the settings file at path. A missing file or empty path
// leaves only defaults and environment overrides in effect.
func LoadSettings(path string, log sources.Logger) (*SourceSettings, error) {
	if log == nil {
		log = nopLogger{}
	}
	v, err := readSettings(path)
	if err != nil {
		return nil, err
	}
	return &SourceSettings{path: path, log: log, v: v}, nil
}

func readSettings(path string) (*viper.Viper, error) {
	v := viper.New()
	sources.RegisterDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if strings.TrimSpace(path) == "" {
		return v, nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return v, nil
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read settings file %s: %w", path, err)
	}
	return v, nil
}

func (s *SourceSettings) current() *viper.Viper {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.v
}

func (s *SourceSettings) GetString(key string) string { return s.current().GetString(key) }
func (s *SourceSettings) GetInt(key string) int       { return s.current().GetInt(key) }
func (s *SourceSettings) GetBool(key string) bool     { return s.current().GetBool(key) }

// Snapshot returns the values currently in effect. A later Reload or Watch
// swap does not change them, so one request never mixes two file versions.
func (s *SourceSettings) Snapshot() sources.Settings { return s.current() }

// Reload re-reads the settings file. On error the previous values stay in effect.
func (s *SourceSettings) Reload() error {
	v, err := readSettings(s.path)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.v = v
	s.mu.Unlock()
	return nil
}

// Watch reloads the settings whenever the file is written or created, until
// ctx is done. The parent directory is watched so files replaced by rename
// are picked up too.
func (s *SourceSettings) Watch(ctx context.Context) error {
	if strings.TrimSpace(s.path) == "" {
		return errors.New("settings file path is empty")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create settings watcher: %w", err)
	}
	defer watcher.Close()

	target := filepath.Clean(s.path)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			if err := s.Reload(); err != nil {
				s.log.WarnObj("source settings reload failed", "settings", map[string]any{
					"path":  s.path,
					"error": err.Error(),
				})
				continue
			}
			s.log.InfoObj("source settings reloaded", "settings", map[string]any{
				"path": s.path,
				"op":   ev.Op.String(),
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.log.WarnObj("source settings watcher error", "settings", map[string]any{
				"path":  s.path,
				"error": err.Error(),
			})
		}
	}
}

type nopLogger struct{}

func (nopLogger) InfoObj(string, string, interface{})  {}
func (nopLogger) DebugObj(string, string, interface{}) {}
func (nopLogger) WarnObj(string, string, interface{})  {}
func (nopLogger) ErrorObj(string, string, interface{}) {}
