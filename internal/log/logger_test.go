/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package log

import (
	"bufio"
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestInitAndStructuredLoggingToFile verifies that Init with a file handler writes JSON logs
// and that static and contextual attributes are present.
func TestInitAndStructuredLoggingToFile(t *testing.T) {
	fpath := filepath.Join(t.TempDir(), "gocanvas.log")
	Init(Options{Level: "debug", Format: "json", File: fpath, Quiet: true})
	t.Cleanup(func() { _ = Close() })

	l := WithOperation(WithComponent("drag"), "begin")
	l.Info("hello world", slog.String("part", "body"))
	if err := Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	b, err := os.ReadFile(fpath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	scanner := bufio.NewScanner(bytes.NewReader(b))
	var last string
	for scanner.Scan() {
		if s := strings.TrimSpace(scanner.Text()); s != "" {
			last = s
		}
	}
	if last == "" {
		t.Fatalf("no log lines found")
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(last), &m); err != nil {
		t.Fatalf("unmarshal json log: %v", err)
	}
	if m["app"] != "gocanvas" {
		t.Fatalf("missing app attr: %v", m["app"])
	}
	if _, ok := m["ver"].(string); !ok {
		t.Fatalf("missing ver attr")
	}
	if m["component"] != "drag" || m["op"] != "begin" || m["part"] != "body" {
		t.Fatalf("context attrs mismatch: %v", m)
	}
	if m["msg"] != "hello world" {
		t.Fatalf("msg mismatch: %v", m["msg"])
	}
}

func TestConsoleWriterAndQuiet(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Level: "info", Console: &buf})
	L().Debug("hidden")
	L().Info("shown", slog.Int("element", 2))
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "INF shown") || !strings.Contains(out, "element=2") {
		t.Fatalf("unexpected console output: %q", out)
	}

	buf.Reset()
	Init(Options{Level: "debug", Console: &buf, Quiet: true})
	L().Error("nothing")
	if buf.Len() != 0 {
		t.Fatalf("quiet logger wrote to console: %q", buf.String())
	}
	Init(Options{Quiet: true})
}

func TestFromEnvAndGetenv(t *testing.T) {
	t.Setenv("GCV_LOG_LEVEL", "warn")
	t.Setenv("GCV_LOG_FORMAT", "json")
	t.Setenv("GCV_LOG_SOURCE", "true")
	t.Setenv("GCV_LOG_FILE", "")

	opts := FromEnv()
	if opts.Level != "warn" || opts.Format != "json" || !opts.AddSource || opts.File != "" {
		t.Fatalf("FromEnv mismatch: %+v", opts)
	}
	if v := getenv("GCV_SOME_UNSET_VAR", "fallback"); v != "fallback" {
		t.Fatalf("getenv fallback failed: %q", v)
	}
	if parseLevel("WARNING") != slog.LevelWarn || parseLevel("nope") != slog.LevelInfo {
		t.Fatalf("unexpected level parsing")
	}
}

func TestPrettyTextHandler_Behavior(t *testing.T) {
	var buf bytes.Buffer
	h := &prettyTextHandler{opts: prettyOpts{Level: slog.LevelWarn}, w: &buf}

	if h.Enabled(nil, slog.LevelInfo) {
		t.Fatalf("info should not be enabled at warn level")
	}
	if !h.Enabled(nil, slog.LevelError) {
		t.Fatalf("error should be enabled at warn level")
	}

	h2 := h.WithAttrs([]slog.Attr{slog.String("k", "v")}).WithGroup("grp")
	r := slog.NewRecord(time.Now(), slog.LevelError, "boom", 0)
	r.AddAttrs(slog.Int("n", 42), slog.Float64("pi", 3.14), slog.Bool("ok", true), slog.String("s", "two words"))
	if err := h2.Handle(nil, r); err != nil {
		t.Fatalf("handle error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "ERR boom") || !strings.Contains(out, "k=v") {
		t.Fatalf("output missing expected content: %q", out)
	}
	if !strings.Contains(out, "grp.n=42") || !strings.Contains(out, "grp.pi=3.14") {
		t.Fatalf("grouped attr missing or malformed: %q", out)
	}
	if !strings.Contains(out, `grp.s="two words"`) {
		t.Fatalf("expected quoted value: %q", out)
	}
}

func TestMultiHandlerFansOut(t *testing.T) {
	var a, b bytes.Buffer
	m := multiHandler(
		&prettyTextHandler{opts: prettyOpts{Level: slog.LevelInfo}, w: &a},
		&prettyTextHandler{opts: prettyOpts{Level: slog.LevelError}, w: &b},
	)
	l := slog.New(m)
	l.Info("first")
	l.Error("second")
	if !strings.Contains(a.String(), "first") || !strings.Contains(a.String(), "second") {
		t.Fatalf("info handler missed records: %q", a.String())
	}
	if strings.Contains(b.String(), "first") || !strings.Contains(b.String(), "second") {
		t.Fatalf("error handler should only see errors: %q", b.String())
	}
}

func TestConsoleSourceLocation(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Level: "info", Console: &buf, AddSource: true})
	defer Init(Options{Quiet: true})
	L().Info("located")
	out := buf.String()
	if !strings.Contains(out, " src=") || !strings.Contains(out, "logger_test.go:") {
		t.Fatalf("expected caller source in console output: %q", out)
	}

	buf.Reset()
	Init(Options{Level: "info", Console: &buf})
	L().Info("plain")
	if strings.Contains(buf.String(), " src=") {
		t.Fatalf("source written without AddSource: %q", buf.String())
	}
}
