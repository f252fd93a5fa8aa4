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
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"gocanvas/internal/domain"
	"gocanvas/internal/drag"
	applog "gocanvas/internal/log"
	"gocanvas/internal/scene"
	"gocanvas/internal/vector"
)

// ConfigVersion is bumped whenever the file layout changes incompatibly.
const ConfigVersion = 1

// Environment variables. Any key can also be overridden with GCV_<SECTION>_<KEY>,
// e.g. GCV_RESIZE_POLICY=clamp.
const (
	EnvPrefix    = "GCV"
	EnvConfig    = "GCV_CONFIG"
	EnvLogLevel  = "GCV_LOG_LEVEL"
	EnvLogFormat = "GCV_LOG_FORMAT"
	EnvLogSource = "GCV_LOG_SOURCE"
	EnvLogFile   = "GCV_LOG_FILE"
)

// AppConfig is the on-disk settings file.
type AppConfig struct {
	ConfigVersion int              `yaml:"config_version" mapstructure:"config_version" json:"config_version" jsonschema:"minimum=1"`
	Canvas        CanvasConfig     `yaml:"canvas" mapstructure:"canvas" json:"canvas"`
	Gesture       GestureConfig    `yaml:"gesture" mapstructure:"gesture" json:"gesture"`
	Resize        ResizeConfig     `yaml:"resize" mapstructure:"resize" json:"resize"`
	Handles       HandlesConfig    `yaml:"handles" mapstructure:"handles" json:"handles"`
	Appearance    AppearanceConfig `yaml:"appearance" mapstructure:"appearance" json:"appearance"`
	TUI           TUIConfig        `yaml:"tui" mapstructure:"tui" json:"tui"`
	Logging       LoggingConfig    `yaml:"logging" mapstructure:"logging" json:"logging"`
}

// CanvasConfig sets the artboard and the elements it starts with.
type CanvasConfig struct {
	Width      float64         `yaml:"width" mapstructure:"width" json:"width" jsonschema:"exclusiveMinimum=0,description=Artboard width in design units"`
	Height     float64         `yaml:"height" mapstructure:"height" json:"height" jsonschema:"exclusiveMinimum=0,description=Artboard height in design units"`
	Background string          `yaml:"background" mapstructure:"background" json:"background" jsonschema:"pattern=^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$"`
	Elements   []ElementConfig `yaml:"elements" mapstructure:"elements" json:"elements"`
}

// ElementConfig is one seed rectangle.
type ElementConfig struct {
	ID     int     `yaml:"id" mapstructure:"id" json:"id" jsonschema:"minimum=1"`
	X      float64 `yaml:"x" mapstructure:"x" json:"x"`
	Y      float64 `yaml:"y" mapstructure:"y" json:"y"`
	Width  float64 `yaml:"width" mapstructure:"width" json:"width"`
	Height float64 `yaml:"height" mapstructure:"height" json:"height"`
}

// GestureConfig holds the activation thresholds in design units.
type GestureConfig struct {
	BodyMinDistance   float64 `yaml:"body_min_distance" mapstructure:"body_min_distance" json:"body_min_distance" jsonschema:"minimum=0"`
	HandleMinDistance float64 `yaml:"handle_min_distance" mapstructure:"handle_min_distance" json:"handle_min_distance" jsonschema:"minimum=0"`
}

type ResizeConfig struct {
	Policy  string  `yaml:"policy" mapstructure:"policy" json:"policy" jsonschema:"enum=normalize,enum=clamp,enum=preserve"`
	MinSize float64 `yaml:"min_size" mapstructure:"min_size" json:"min_size" jsonschema:"minimum=0"`
}

// HandlesConfig lists the enabled anchors and the handle metrics.
type HandlesConfig struct {
	Anchors    []string `yaml:"anchors" mapstructure:"anchors" json:"anchors" jsonschema:"uniqueItems=true"`
	Size       float64  `yaml:"size" mapstructure:"size" json:"size" jsonschema:"exclusiveMinimum=0"`
	DragSize   float64  `yaml:"drag_size" mapstructure:"drag_size" json:"drag_size" jsonschema:"exclusiveMinimum=0"`
	Radius     float64  `yaml:"radius" mapstructure:"radius" json:"radius" jsonschema:"minimum=0"`
	DragRadius float64  `yaml:"drag_radius" mapstructure:"drag_radius" json:"drag_radius" jsonschema:"minimum=0"`
	HitSize    float64  `yaml:"hit_size" mapstructure:"hit_size" json:"hit_size" jsonschema:"exclusiveMinimum=0"`
}

type AppearanceConfig struct {
	ElementColor   string  `yaml:"element_color" mapstructure:"element_color" json:"element_color" jsonschema:"pattern=^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$"`
	AccentColor    string  `yaml:"accent_color" mapstructure:"accent_color" json:"accent_color" jsonschema:"pattern=^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$"`
	OverlayColor   string  `yaml:"overlay_color" mapstructure:"overlay_color" json:"overlay_color" jsonschema:"pattern=^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$"`
	OverlayOpacity float64 `yaml:"overlay_opacity" mapstructure:"overlay_opacity" json:"overlay_opacity" jsonschema:"minimum=0,maximum=1"`
	CornerRadius   float64 `yaml:"corner_radius" mapstructure:"corner_radius" json:"corner_radius" jsonschema:"minimum=0"`
	BorderWidth    float64 `yaml:"border_width" mapstructure:"border_width" json:"border_width" jsonschema:"minimum=0"`
	Shadow         bool    `yaml:"shadow" mapstructure:"shadow" json:"shadow"`
}

// TUIConfig maps design units onto terminal cells.
type TUIConfig struct {
	UnitsPerColumn float64 `yaml:"units_per_column" mapstructure:"units_per_column" json:"units_per_column" jsonschema:"exclusiveMinimum=0"`
	UnitsPerRow    float64 `yaml:"units_per_row" mapstructure:"units_per_row" json:"units_per_row" jsonschema:"exclusiveMinimum=0"`
	SidebarWidth   int     `yaml:"sidebar_width" mapstructure:"sidebar_width" json:"sidebar_width" jsonschema:"minimum=0"`
	ShowHelp       bool    `yaml:"show_help" mapstructure:"show_help" json:"show_help"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level" json:"level" jsonschema:"enum=debug,enum=info,enum=warn,enum=error"`
	Format string `yaml:"format" mapstructure:"format" json:"format" jsonschema:"enum=console,enum=json"`
	Source bool   `yaml:"source" mapstructure:"source" json:"source"`
	File   string `yaml:"file" mapstructure:"file" json:"file"`
}

// Defaults returns the built-in settings.
func Defaults() AppConfig {
	seed := domain.SeedElements()
	elems := make([]ElementConfig, 0, len(seed))
	for _, e := range seed {
		elems = append(elems, ElementConfig{ID: int(e.ID), X: e.Frame.X, Y: e.Frame.Y, Width: e.Frame.W, Height: e.Frame.H})
	}
	return AppConfig{
		ConfigVersion: ConfigVersion,
		Canvas:        CanvasConfig{Width: 540, Height: 720, Background: "#ffffff", Elements: elems},
		Gesture:       GestureConfig{BodyMinDistance: 2, HandleMinDistance: 0},
		Resize:        ResizeConfig{Policy: string(drag.PolicyNormalize), MinSize: 0},
		Handles: HandlesConfig{
			Anchors: anchorNames(domain.CornerAnchors()),
			Size:    12, DragSize: 12, Radius: 2, DragRadius: 25, HitSize: 60,
		},
		Appearance: AppearanceConfig{
			ElementColor:   "#000000",
			AccentColor:    vector.Accent.Hex(),
			OverlayColor:   vector.Gray.Hex(),
			OverlayOpacity: 0.2,
			CornerRadius:   15,
			BorderWidth:    4,
			Shadow:         true,
		},
		TUI:     TUIConfig{UnitsPerColumn: 10, UnitsPerRow: 20, SidebarWidth: 22, ShowHelp: true},
		Logging: LoggingConfig{Level: "info", Format: "console"},
	}
}

func anchorNames(as []domain.Anchor) []string {
	out := make([]string, 0, len(as))
	for _, a := range as {
		out = append(out, a.String())
	}
	return out
}

// ConfigPath returns the default settings file location. GCV_CONFIG wins.
func ConfigPath() (string, error) {
	if p := os.Getenv(EnvConfig); p != "" {
		return p, nil
	}
	var dir string
	switch runtime.GOOS {
	case "windows":
		base := os.Getenv("APPDATA")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			base = filepath.Join(home, "AppData", "Roaming")
		}
		dir = filepath.Join(base, "gocanvas")
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, "Library", "Application Support", "gocanvas")
	default:
		base := os.Getenv("XDG_CONFIG_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			base = filepath.Join(home, ".config")
		}
		dir = filepath.Join(base, "gocanvas")
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Save writes cfg as YAML, creating the parent directory.
func Save(path string, cfg AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	b, err := Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Marshal renders cfg in the file format.
func Marshal(cfg AppConfig) ([]byte, error) {
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return b, nil
}

// EnvName is the variable that overrides key ("section.field").
func EnvName(key string) string {
	switch key {
	case "logging.level":
		return EnvLogLevel
	case "logging.format":
		return EnvLogFormat
	case "logging.source":
		return EnvLogSource
	case "logging.file":
		return EnvLogFile
	}
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// EnvOverrideFor reports whether key is overridden by the environment and
// the variable doing it.
func EnvOverrideFor(key string) (string, bool) {
	name := EnvName(key)
	if v, ok := os.LookupEnv(name); ok && v != "" {
		return name, true
	}
	return "", false
}

// Elements returns the seed elements in file order.
func (c AppConfig) Elements() []domain.Element {
	out := make([]domain.Element, 0, len(c.Canvas.Elements))
	for _, e := range c.Canvas.Elements {
		out = append(out, domain.Element{ID: domain.ElementID(e.ID), Frame: vector.R(e.X, e.Y, e.Width, e.Height)})
	}
	return out
}

// DragOptions converts the gesture, resize and handle sections.
func (c AppConfig) DragOptions() (drag.Options, error) {
	policy, err := drag.ParsePolicy(strings.ToLower(c.Resize.Policy))
	if err != nil {
		return drag.Options{}, err
	}
	anchors, err := domain.ParseAnchors(c.Handles.Anchors)
	if err != nil {
		return drag.Options{}, err
	}
	return drag.Options{
		BodyMinDistance:   c.Gesture.BodyMinDistance,
		HandleMinDistance: c.Gesture.HandleMinDistance,
		Policy:            policy,
		MinSize:           c.Resize.MinSize,
		Anchors:           anchors,
	}, nil
}

// Theme converts the appearance and handle sections.
func (c AppConfig) Theme() (scene.Theme, error) {
	th := scene.DefaultTheme()
	var errs []error
	color := func(field, s string, dst *vector.Color) {
		col, err := vector.ParseHex(s)
		if err != nil {
			errs = append(errs, fmt.Errorf("appearance.%s: %w", field, err))
			return
		}
		*dst = col
	}
	color("element_color", c.Appearance.ElementColor, &th.ElementFill)
	color("accent_color", c.Appearance.AccentColor, &th.Accent)
	color("overlay_color", c.Appearance.OverlayColor, &th.OverlayColor)
	th.Handle.Color = th.Accent
	th.OverlayOpacity = c.Appearance.OverlayOpacity
	th.ElementRadius = c.Appearance.CornerRadius
	th.BorderWidth = c.Appearance.BorderWidth
	th.ElementShadow.Enabled = c.Appearance.Shadow
	th.Handle.Size = c.Handles.Size
	th.Handle.DragSize = c.Handles.DragSize
	th.Handle.Radius = c.Handles.Radius
	th.Handle.DragRadius = c.Handles.DragRadius
	th.Handle.HitSize = c.Handles.HitSize
	if err := errors.Join(errs...); err != nil {
		return scene.Theme{}, err
	}
	return th, nil
}

// Background parses the canvas background color.
func (c AppConfig) Background() (vector.Color, error) {
	col, err := vector.ParseHex(c.Canvas.Background)
	if err != nil {
		return vector.Color{}, fmt.Errorf("canvas.background: %w", err)
	}
	return col, nil
}

// LogOptions converts the logging section. Quiet and Console are left to the host.
func (c AppConfig) LogOptions() applog.Options {
	return applog.Options{
		Level:     c.Logging.Level,
		Format:    c.Logging.Format,
		AddSource: c.Logging.Source,
		File:      c.Logging.File,
	}
}

func (c AppConfig) clone() AppConfig {
	c.Canvas.Elements = append([]ElementConfig(nil), c.Canvas.Elements...)
	c.Handles.Anchors = append([]string(nil), c.Handles.Anchors...)
	return c
}
