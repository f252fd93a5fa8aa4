/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"gocanvas/internal/version"
)

func run(t *testing.T, args ...string) (string, string, int) {
	t.Helper()
	var out, errOut bytes.Buffer
	code := Execute(context.Background(), args, &out, &errOut)
	return out.String(), errOut.String(), code
}

func tempConfig(t *testing.T) string {
	t.Helper()
	t.Setenv("GCV_CONFIG", "")
	return filepath.Join(t.TempDir(), "config.yaml")
}

func TestVersion(t *testing.T) {
	out, _, code := run(t, "version")
	require.Zero(t, code)
	require.Equal(t, "gocanvas "+version.String()+"\n", out)
}

func TestDemoPrintsBothScenarios(t *testing.T) {
	cfg := tempConfig(t)
	out, errOut, code := run(t, "--config", cfg, "demo")
	require.Zero(t, code, errOut)
	require.Contains(t, out, "body drag  element 1 body  (100,300) -> (120,330)")
	require.Contains(t, out, "after   x=70 y=250 w=190 h=250")
	require.Contains(t, out, "handle drag  element 1 handle top-leading  (50,220) -> (70,250)")
	require.Contains(t, out, "minX=70 minY=250 maxX=240 maxY=470")
	require.Contains(t, out, "select  element 1")
	require.Contains(t, out, "select  none")
}

func TestDemoSteps(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, runDemo(&b, 4))
	out := b.String()
	require.Contains(t, out, "move 3")
	// The pointer moves (5, 7.5) per step; the first move passes the threshold.
	require.Contains(t, out, "move 1  x=55 y=227.5 w=190 h=250")
}

func TestRenderWritesFiles(t *testing.T) {
	cfg := tempConfig(t)
	dir := t.TempDir()
	out, errOut, code := run(t, "--config", cfg, "render", "--format", "svg,png,pdf", "--out", dir, "--select", "2")
	require.Zero(t, code, errOut)
	for _, ext := range []string{"svg", "png", "pdf"} {
		p := filepath.Join(dir, "canvas."+ext)
		require.Contains(t, out, p)
		info, err := os.Stat(p)
		require.NoError(t, err)
		require.Positive(t, info.Size())
	}
	svg, err := os.ReadFile(filepath.Join(dir, "canvas.svg"))
	require.NoError(t, err)
	require.Contains(t, string(svg), `data-kind="handle"`)
}

func TestRenderRejectsBadInput(t *testing.T) {
	cfg := tempConfig(t)
	_, errOut, code := run(t, "--config", cfg, "render", "--format", "gif", "--out", t.TempDir())
	require.Equal(t, 1, code)
	require.Contains(t, errOut, "unknown format")

	_, errOut, code = run(t, "--config", cfg, "render", "--select", "42", "--out", t.TempDir())
	require.Equal(t, 1, code)
	require.Contains(t, errOut, "element 42")
}

func TestConfigInitShowValidate(t *testing.T) {
	cfg := tempConfig(t)

	out, errOut, code := run(t, "--config", cfg, "config", "path")
	require.Zero(t, code, errOut)
	require.Contains(t, out, "not found, using defaults")

	out, errOut, code = run(t, "--config", cfg, "config", "init")
	require.Zero(t, code, errOut)
	require.Contains(t, out, cfg)

	_, errOut, code = run(t, "--config", cfg, "config", "init")
	require.Equal(t, 1, code)
	require.Contains(t, errOut, "already exists")

	out, errOut, code = run(t, "--config", cfg, "config", "validate")
	require.Zero(t, code, errOut)
	require.Contains(t, out, "is valid")

	t.Setenv("GCV_RESIZE_POLICY", "clamp")
	out, errOut, code = run(t, "--config", cfg, "config", "show")
	require.Zero(t, code, errOut)
	require.Contains(t, out, "policy: clamp")
	require.Contains(t, out, "# resize.policy overridden by GCV_RESIZE_POLICY")
}

func TestConfigValidateRejectsTypos(t *testing.T) {
	cfg := tempConfig(t)
	require.NoError(t, os.WriteFile(cfg, []byte("resize:\n  polcy: clamp\n"), 0o644))
	_, errOut, code := run(t, "config", "validate", cfg)
	require.Equal(t, 1, code)
	require.Contains(t, errOut, "polcy")
}

func TestInvalidConfigFailsCommands(t *testing.T) {
	cfg := tempConfig(t)
	require.NoError(t, os.WriteFile(cfg, []byte("handles:\n  anchors: [middle]\n"), 0o644))
	_, errOut, code := run(t, "--config", cfg, "demo")
	require.Equal(t, 1, code)
	require.True(t, strings.Contains(errOut, "anchor"), errOut)

	// version and schema do not read the file.
	_, _, code = run(t, "--config", cfg, "version")
	require.Zero(t, code)
	out, _, code := run(t, "--config", cfg, "config", "schema")
	require.Zero(t, code)
	require.Contains(t, out, `"resize"`)
}
