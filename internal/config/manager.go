/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	applog "gocanvas/internal/log"
)

// ErrNoConfigFile is returned by Watch when there is no file on disk yet.
var ErrNoConfigFile = errors.New("config file does not exist")

// Manager loads settings through viper: defaults, then the file, then GCV_
// environment variables. It can watch the file and notify subscribers.
type Manager struct {
	v    *viper.Viper
	path string
	log  *slog.Logger

	mu        sync.RWMutex
	cfg       AppConfig
	fromFile  bool
	callbacks []func(AppConfig)
	watching  bool
}

// NewManager prepares a manager for path; an empty path means ConfigPath().
func NewManager(path string) (*Manager, error) {
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return nil, fmt.Errorf("resolve config path: %w", err)
		}
		path = p
	}
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range []string{"logging.level", "logging.format", "logging.source", "logging.file"} {
		if err := v.BindEnv(key, EnvName(key)); err != nil {
			return nil, fmt.Errorf("bind %s: %w", key, err)
		}
	}
	return &Manager{
		v:    v,
		path: path,
		log:  applog.WithComponent("config"),
		cfg:  Defaults(),
	}, nil
}

// Path is the settings file the manager reads.
func (m *Manager) Path() string { return m.path }

// FromFile reports whether the last load found a file.
func (m *Manager) FromFile() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.fromFile
}

// Load reads defaults, file and environment. A missing file is not an error.
func (m *Manager) Load() error {
	if err := m.setDefaults(); err != nil {
		return err
	}
	found := true
	if err := m.v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("read %s: %w", m.path, err)
		}
		found = false
		m.log.Debug("no config file, using defaults", slog.String("path", m.path))
	}
	cfg, err := m.decode()
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.cfg = cfg
	m.fromFile = found
	m.mu.Unlock()
	return nil
}

// setDefaults registers every leaf of Defaults() so that env overrides
// resolve for keys the file does not mention.
func (m *Manager) setDefaults() error {
	b, err := yaml.Marshal(Defaults())
	if err != nil {
		return fmt.Errorf("marshal defaults: %w", err)
	}
	var tree map[string]any
	if err := yaml.Unmarshal(b, &tree); err != nil {
		return fmt.Errorf("decode defaults: %w", err)
	}
	var walk func(prefix string, node map[string]any)
	walk = func(prefix string, node map[string]any) {
		for k, val := range node {
			key := k
			if prefix != "" {
				key = prefix + "." + k
			}
			if sub, ok := val.(map[string]any); ok {
				walk(key, sub)
				continue
			}
			m.v.SetDefault(key, val)
		}
	}
	walk("", tree)
	return nil
}

func (m *Manager) decode() (AppConfig, error) {
	var cfg AppConfig
	if err := m.v.Unmarshal(&cfg); err != nil {
		return AppConfig{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.Resize.Policy = strings.ToLower(strings.TrimSpace(cfg.Resize.Policy))
	for i, a := range cfg.Handles.Anchors {
		cfg.Handles.Anchors[i] = strings.ToLower(strings.TrimSpace(a))
	}
	if err := Validate(cfg); err != nil {
		return AppConfig{}, fmt.Errorf("invalid config %s: %w", m.path, err)
	}
	return cfg, nil
}

// Get returns a copy of the current settings.
func (m *Manager) Get() AppConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cfg.clone()
}

// OnConfigChange registers fn to receive every successfully reloaded config.
// Callbacks run on the watcher goroutine.
func (m *Manager) OnConfigChange(fn func(AppConfig)) {
	m.mu.Lock()
	m.callbacks = append(m.callbacks, fn)
	m.mu.Unlock()
}

// Reload re-reads the file and notifies subscribers. An invalid file keeps
// the previous settings and returns the error.
func (m *Manager) Reload() error {
	if err := m.v.ReadInConfig(); err != nil {
		return fmt.Errorf("read %s: %w", m.path, err)
	}
	return m.apply()
}

func (m *Manager) apply() error {
	cfg, err := m.decode()
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.cfg = cfg
	m.fromFile = true
	callbacks := append([]func(AppConfig){}, m.callbacks...)
	m.mu.Unlock()
	for _, fn := range callbacks {
		fn(cfg.clone())
	}
	return nil
}

// Watch starts following the settings file. Calling it twice is a no-op.
func (m *Manager) Watch() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.watching {
		return nil
	}
	if _, err := os.Stat(m.path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("watch %s: %w", m.path, ErrNoConfigFile)
		}
		return fmt.Errorf("watch %s: %w", m.path, err)
	}
	m.v.OnConfigChange(func(e fsnotify.Event) {
		l := m.log.With(slog.String("file", e.Name), slog.String("event", e.Op.String()))
		if err := m.apply(); err != nil {
			l.Warn("config reload rejected", slog.Any("err", err))
			return
		}
		l.Info("config reloaded")
	})
	m.v.WatchConfig()
	m.watching = true
	return nil
}
