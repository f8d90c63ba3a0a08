// Package config loads the YAML veil policy file: default forwarding
// direction and per-interface overrides, plus the log level and prefix
// the CLI flags can also supply. A file is optional; DefaultConfig (not
// the zero-value Config, which forwards nothing) matches the proxy's
// "transparent by default" stance.
package config

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// InterfaceOverride narrows forwarding for one interface away from the
// process-wide default.
type InterfaceOverride struct {
	ForwardToServer *bool `yaml:"forwardToServer,omitempty"`
	ForwardToClient *bool `yaml:"forwardToClient,omitempty"`
}

// Config is the veil policy, loaded once at startup and optionally
// hot-reloaded. All fields are optional; DefaultConfig gives the
// transparent-by-default state, while the zero value has both default
// forwarding directions off.
type Config struct {
	LogLevel               string                        `yaml:"logLevel"`
	LogPrefix              string                        `yaml:"logPrefix"`
	DefaultForwardToServer bool                          `yaml:"defaultForwardToServer"`
	DefaultForwardToClient bool                          `yaml:"defaultForwardToClient"`
	Interfaces             map[string]InterfaceOverride  `yaml:"interfaces"`
}

// DefaultConfig returns the policy applied when no config file is given:
// info logging, no prefix, forward everything both ways.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:               "info",
		DefaultForwardToServer: true,
		DefaultForwardToClient: true,
		Interfaces:             map[string]InterfaceOverride{},
	}
}

// Load reads and parses a YAML config file at path. A missing path is not
// an error here; callers pass "" to get DefaultConfig.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	// Start from the defaults so a file that only sets logLevel doesn't
	// accidentally zero out the forwarding booleans.
	*cfg = *DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if cfg.Interfaces == nil {
		cfg.Interfaces = map[string]InterfaceOverride{}
	}
	return cfg, nil
}

// ForwardToServer resolves the effective server-bound forwarding policy
// for an interface, applying any override over the default.
func (c *Config) ForwardToServer(iface string) bool {
	if o, ok := c.Interfaces[iface]; ok && o.ForwardToServer != nil {
		return *o.ForwardToServer
	}
	return c.DefaultForwardToServer
}

// ForwardToClient resolves the effective client-bound forwarding policy
// for an interface, applying any override over the default.
func (c *Config) ForwardToClient(iface string) bool {
	if o, ok := c.Interfaces[iface]; ok && o.ForwardToClient != nil {
		return *o.ForwardToClient
	}
	return c.DefaultForwardToClient
}

// Watcher reloads Config from disk whenever the backing file changes,
// swapping it in atomically so readers never observe a partially parsed
// config. Grounded in the fsnotify hot-reload pattern used elsewhere in
// the example pack's config-loading code.
type Watcher struct {
	path    string
	current atomic.Pointer[Config]
	watcher *fsnotify.Watcher

	mu      sync.Mutex
	onError func(error)
}

// NewWatcher starts watching path for changes, seeding the Watcher with
// an initial Load. If path is "", the Watcher holds DefaultConfig and
// never watches anything.
func NewWatcher(path string) (*Watcher, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	w := &Watcher{path: path}
	w.current.Store(cfg)

	if path == "" {
		return w, nil
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config: new watcher: %w", err)
	}
	if err := fsw.Add(path); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("config: watch %s: %w", path, err)
	}
	w.watcher = fsw

	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	for {
		select {
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			cfg, err := Load(w.path)
			if err != nil {
				w.reportError(err)
				continue
			}
			w.current.Store(cfg)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.reportError(err)
		}
	}
}

func (w *Watcher) reportError(err error) {
	w.mu.Lock()
	onErr := w.onError
	w.mu.Unlock()
	if onErr != nil {
		onErr(err)
	}
}

// OnError installs a callback invoked whenever a reload fails; the
// previously loaded config remains in effect.
func (w *Watcher) OnError(fn func(error)) {
	w.mu.Lock()
	w.onError = fn
	w.mu.Unlock()
}

// Current returns the most recently loaded Config.
func (w *Watcher) Current() *Config {
	return w.current.Load()
}

// Close stops watching the backing file.
func (w *Watcher) Close() error {
	if w.watcher == nil {
		return nil
	}
	return w.watcher.Close()
}
