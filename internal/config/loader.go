// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// Loader reads a YAML configuration and watches it, together with the input
// files it names, for changes. With an empty path the configuration only
// comes from the overrides.
type Loader struct {
	path      string
	overrides func(*Config)
	mu        sync.RWMutex
	current   *Config
	onChange  []func(*Config)
	logger    *slog.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithOverrides sets a function applied to the configuration after it is read
// and before it is validated, for instance to apply command line flags.
func WithOverrides(fn func(*Config)) LoaderOption {
	return func(l *Loader) { l.overrides = fn }
}

// WithLogger sets the logger used to report failed reloads.
func WithLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) { l.logger = logger }
}

// NewLoader creates a Loader and performs the initial load.
func NewLoader(path string, opts ...LoaderOption) (*Loader, error) {
	l := &Loader{path: path, logger: slog.Default()}
	for _, f := range opts {
		f(l)
	}
	cfg, err := l.load()
	if err != nil {
		return nil, err
	}
	l.current = cfg
	return l, nil
}

// Config returns the current configuration.
func (l *Loader) Config() *Config {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.current
}

// OnChange registers a callback invoked whenever the configuration reloads.
func (l *Loader) OnChange(fn func(*Config)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onChange = append(l.onChange, fn)
}

// Files returns the files watched for the current configuration.
func (l *Loader) Files() []string {
	var res []string
	if l.path != "" {
		res = append(res, l.path)
	}
	return append(res, l.Config().Input().Files()...)
}

// Watch starts a background goroutine that reloads the configuration when the
// configuration file or one of the input files is written. Call the returned
// stop function to clean up.
func (l *Loader) Watch() (stop func(), err error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config watcher: %w", err)
	}
	for _, f := range l.Files() {
		if err := w.Add(f); err != nil {
			w.Close()
			return nil, fmt.Errorf("config watcher add %s: %w", f, err)
		}
	}

	done := make(chan struct{})
	go func() {
		defer w.Close()
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
					continue
				}
				cfg, err := l.Reload()
				if err != nil {
					l.logger.Warn("reload failed, keeping previous configuration", "file", ev.Name, "error", err)
					continue
				}
				for _, f := range cfg.Input().Files() {
					if err := w.Add(f); err != nil {
						l.logger.Warn("cannot watch input file", "file", f, "error", err)
					}
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				l.logger.Warn("watcher error", "error", err)
			case <-done:
				return
			}
		}
	}()

	var once sync.Once
	return func() { once.Do(func() { close(done) }) }, nil
}

// Reload forces an immediate re-read of the configuration.
func (l *Loader) Reload() (*Config, error) {
	cfg, err := l.load()
	if err != nil {
		return nil, err
	}
	l.mu.Lock()
	l.current = cfg
	callbacks := make([]func(*Config), len(l.onChange))
	copy(callbacks, l.onChange)
	l.mu.Unlock()
	for _, fn := range callbacks {
		fn(cfg)
	}
	return cfg, nil
}

func (l *Loader) load() (*Config, error) {
	var cfg Config
	if l.path != "" {
		data, err := os.ReadFile(l.path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", l.path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", l.path, err)
		}
		cfg.resolve(filepath.Dir(l.path))
	}
	if l.overrides != nil {
		l.overrides(&cfg)
	}
	cfg.applyDefaults()
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
