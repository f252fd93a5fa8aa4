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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"gocanvas/internal/domain"
	"gocanvas/internal/drag"
	"gocanvas/internal/vector"
)

func newTestManager(t *testing.T) (*Manager, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	m, err := NewManager(path)
	require.NoError(t, err)
	return m, path
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestDefaultsAreValid(t *testing.T) {
	require.NoError(t, Validate(Defaults()))
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	m, _ := newTestManager(t)
	require.NoError(t, m.Load())
	require.False(t, m.FromFile())
	require.Equal(t, Defaults(), m.Get())
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	m, path := newTestManager(t)
	cfg := Defaults()
	cfg.Resize.Policy = "clamp"
	cfg.Resize.MinSize = 8
	cfg.Handles.Anchors = []string{"top-leading", "top", "bottom-trailing"}
	cfg.Canvas.Elements = []ElementConfig{{ID: 7, X: 1, Y: 2, Width: 3, Height: 4}}
	require.NoError(t, Save(path, cfg))

	require.NoError(t, m.Load())
	require.True(t, m.FromFile())
	require.Equal(t, cfg, m.Get())
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	m, path := newTestManager(t)
	writeFile(t, path, "resize:\n  policy: preserve\n")
	require.NoError(t, m.Load())

	got := m.Get()
	require.Equal(t, "preserve", got.Resize.Policy)
	require.Equal(t, 2.0, got.Gesture.BodyMinDistance)
	require.Equal(t, Defaults().Canvas.Elements, got.Canvas.Elements)
	require.Equal(t, Defaults().Handles.Anchors, got.Handles.Anchors)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("GCV_RESIZE_POLICY", "clamp")
	t.Setenv("GCV_GESTURE_BODY_MIN_DISTANCE", "5")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvLogSource, "true")
	m, _ := newTestManager(t)
	require.NoError(t, m.Load())

	got := m.Get()
	require.Equal(t, "clamp", got.Resize.Policy)
	require.Equal(t, 5.0, got.Gesture.BodyMinDistance)
	require.Equal(t, "debug", got.Logging.Level)
	require.True(t, got.Logging.Source)

	name, ok := EnvOverrideFor("resize.policy")
	require.True(t, ok)
	require.Equal(t, "GCV_RESIZE_POLICY", name)
	name, ok = EnvOverrideFor("logging.level")
	require.True(t, ok)
	require.Equal(t, EnvLogLevel, name)
	_, ok = EnvOverrideFor("canvas.width")
	require.False(t, ok)
}

func TestEnvOverridesAnchorList(t *testing.T) {
	t.Setenv("GCV_HANDLES_ANCHORS", "top,bottom")
	m, _ := newTestManager(t)
	require.NoError(t, m.Load())
	require.Equal(t, []string{"top", "bottom"}, m.Get().Handles.Anchors)
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	cases := map[string]string{
		"policy":       "resize:\n  policy: stretch\n",
		"anchor":       "handles:\n  anchors: [top-leading, middle]\n",
		"duplicate id": "canvas:\n  elements:\n    - {id: 1, x: 0, y: 0, width: 1, height: 1}\n    - {id: 1, x: 5, y: 5, width: 1, height: 1}\n",
		"color":        "appearance:\n  accent_color: blue\n",
		"negative":     "gesture:\n  body_min_distance: -1\n",
		"opacity":      "appearance:\n  overlay_opacity: 1.5\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			m, path := newTestManager(t)
			writeFile(t, path, body)
			require.Error(t, m.Load())
		})
	}
}

func TestValidateDocumentRejectsUnknownKeys(t *testing.T) {
	var doc map[string]any
	require.NoError(t, yaml.Unmarshal([]byte("resize:\n  polcy: clamp\n"), &doc))
	err := ValidateDocument(doc)
	require.Error(t, err)
	var fe *FieldError
	require.True(t, errors.As(err, &fe))
}

func TestValidateDocumentAcceptsPartialFile(t *testing.T) {
	var doc map[string]any
	require.NoError(t, yaml.Unmarshal([]byte("handles:\n  anchors: [top, bottom]\ntui:\n  units_per_row: 16\n"), &doc))
	require.NoError(t, ValidateDocument(doc))
}

func TestSchemaJSON(t *testing.T) {
	b, err := SchemaJSON()
	require.NoError(t, err)
	s := string(b)
	require.Contains(t, s, SchemaID)
	require.Contains(t, s, `"body_min_distance"`)
	require.Contains(t, s, `"normalize"`)
}

func TestReloadNotifiesSubscribers(t *testing.T) {
	m, path := newTestManager(t)
	require.NoError(t, Save(path, Defaults()))
	require.NoError(t, m.Load())

	var got []AppConfig
	m.OnConfigChange(func(c AppConfig) { got = append(got, c) })

	cfg := Defaults()
	cfg.Resize.Policy = "preserve"
	require.NoError(t, Save(path, cfg))
	require.NoError(t, m.Reload())
	require.Len(t, got, 1)
	require.Equal(t, "preserve", got[0].Resize.Policy)
	require.Equal(t, "preserve", m.Get().Resize.Policy)
}

func TestReloadKeepsPreviousOnError(t *testing.T) {
	m, path := newTestManager(t)
	require.NoError(t, Save(path, Defaults()))
	require.NoError(t, m.Load())
	calls := 0
	m.OnConfigChange(func(AppConfig) { calls++ })

	writeFile(t, path, "resize:\n  policy: sideways\n")
	require.Error(t, m.Reload())
	require.Zero(t, calls)
	require.Equal(t, "normalize", m.Get().Resize.Policy)
}

func TestWatchWithoutFile(t *testing.T) {
	m, _ := newTestManager(t)
	require.ErrorIs(t, m.Watch(), ErrNoConfigFile)
}

func TestGetReturnsCopy(t *testing.T) {
	m, _ := newTestManager(t)
	require.NoError(t, m.Load())
	c := m.Get()
	c.Handles.Anchors[0] = "bottom"
	c.Canvas.Elements[0].X = 999
	require.Equal(t, Defaults(), m.Get())
}

func TestConfigPathHonoursEnv(t *testing.T) {
	t.Setenv(EnvConfig, "/tmp/elsewhere.yaml")
	p, err := ConfigPath()
	require.NoError(t, err)
	require.Equal(t, "/tmp/elsewhere.yaml", p)
}

func TestConfigPathDefault(t *testing.T) {
	t.Setenv(EnvConfig, "")
	p, err := ConfigPath()
	require.NoError(t, err)
	require.Equal(t, "config.yaml", filepath.Base(p))
	require.True(t, strings.Contains(p, "gocanvas"))
}

func TestDragOptionsConversion(t *testing.T) {
	cfg := Defaults()
	opts, err := cfg.DragOptions()
	require.NoError(t, err)
	require.Equal(t, drag.DefaultOptions(), opts)

	cfg.Resize.Policy = "CLAMP"
	cfg.Resize.MinSize = 4
	cfg.Handles.Anchors = []string{"leading", "trailing"}
	opts, err = cfg.DragOptions()
	require.NoError(t, err)
	require.Equal(t, drag.PolicyClamp, opts.Policy)
	require.Equal(t, 4.0, opts.MinSize)
	require.Equal(t, []domain.Anchor{domain.CenterLeading, domain.CenterTrailing}, opts.Anchors)

	cfg.Handles.Anchors = []string{"nowhere"}
	_, err = cfg.DragOptions()
	require.Error(t, err)
}

func TestThemeConversion(t *testing.T) {
	cfg := Defaults()
	cfg.Appearance.AccentColor = "#ff0000"
	cfg.Appearance.Shadow = false
	cfg.Handles.HitSize = 44
	th, err := cfg.Theme()
	require.NoError(t, err)
	red := vector.Color{R: 255, A: 255}
	require.Equal(t, red, th.Accent)
	require.Equal(t, red, th.Handle.Color)
	require.False(t, th.ElementShadow.Enabled)
	require.Equal(t, 44.0, th.Handle.HitSize)
	require.Equal(t, 15.0, th.ElementRadius)

	cfg.Appearance.ElementColor = "nope"
	_, err = cfg.Theme()
	require.Error(t, err)
}

func TestElementsConversion(t *testing.T) {
	require.Equal(t, domain.SeedElements(), Defaults().Elements())
	bg, err := Defaults().Background()
	require.NoError(t, err)
	require.Equal(t, vector.White, bg)
}
