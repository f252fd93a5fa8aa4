/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package export

import (
	"bytes"
	"context"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gocanvas/internal/domain"
	"gocanvas/internal/scene"
	"gocanvas/internal/store"
	"gocanvas/internal/vector"
)

func seededDrawables(t *testing.T, selected domain.ElementID) []scene.Drawable {
	t.Helper()
	st := store.NewSeeded()
	if selected != 0 {
		if err := st.Select(selected); err != nil {
			t.Fatalf("select: %v", err)
		}
	}
	return scene.Build(st.Snapshot(), scene.Idle, domain.CornerAnchors(), scene.DefaultTheme())
}

func TestWriteSVG(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSVG(&buf, seededDrawables(t, 1), DefaultOptions()); err != nil {
		t.Fatalf("svg: %v", err)
	}
	s := buf.String()
	if !strings.HasPrefix(s, "<?xml") || !strings.Contains(s, `viewBox="0 0 540 720"`) {
		t.Fatalf("unexpected svg header: %s", s[:120])
	}
	if !strings.Contains(s, `data-kind="element" data-element="1" x="50" y="220" width="190" height="250" rx="15" ry="15" fill="#000000"`) {
		t.Fatalf("element 1 body missing: %s", s)
	}
	if strings.Count(s, `data-kind="handle"`) != 4 {
		t.Fatalf("expected four handles")
	}
	if !strings.Contains(s, `data-kind="border" data-element="1" x="50" y="220" width="190" height="250" fill="none" stroke="#007aff" stroke-width="4"`) {
		t.Fatalf("border missing: %s", s)
	}
	if !strings.Contains(s, "<feDropShadow") || !strings.Contains(s, ">#3</text>") {
		t.Fatalf("shadow filter or labels missing")
	}
}

func TestRasterizePixels(t *testing.T) {
	img := Rasterize(seededDrawables(t, 1), DefaultOptions())
	if b := img.Bounds(); b.Dx() != 540 || b.Dy() != 720 {
		t.Fatalf("unexpected size: %v", b)
	}
	if got := img.RGBAAt(5, 5); got != (color.RGBA{255, 255, 255, 255}) {
		t.Fatalf("background pixel: %v", got)
	}
	// inside element 1 only, away from the label
	if got := img.RGBAAt(100, 250); got != (color.RGBA{0, 0, 0, 255}) {
		t.Fatalf("body pixel: %v", got)
	}
	// on the selection border of element 1
	if got := img.RGBAAt(50, 300); got != (color.RGBA{0, 122, 255, 255}) {
		t.Fatalf("border pixel: %v", got)
	}
}

func TestWritePNGScaled(t *testing.T) {
	var buf bytes.Buffer
	opt := DefaultOptions()
	opt.Scale = 0.5
	if err := WritePNG(&buf, seededDrawables(t, 0), opt); err != nil {
		t.Fatalf("png: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 270 || b.Dy() != 360 {
		t.Fatalf("unexpected size: %v", b)
	}
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePDF(&buf, seededDrawables(t, 2), DefaultOptions()); err != nil {
		t.Fatalf("pdf: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Fatalf("not a pdf")
	}
}

func TestParseFormats(t *testing.T) {
	fs, err := ParseFormats(" svg,PNG,svg , pdf")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(fs) != 3 || fs[0] != FormatSVG || fs[1] != FormatPNG || fs[2] != FormatPDF {
		t.Fatalf("unexpected formats: %v", fs)
	}
	if _, err := ParseFormats("svg,gif"); err == nil {
		t.Fatalf("expected error for gif")
	}
	if _, err := ParseFormats(" , "); err == nil {
		t.Fatalf("expected error for empty list")
	}
}

func TestBatchWritesAllFormats(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	paths, err := Batch(context.Background(), dir, "canvas", []Format{FormatSVG, FormatPNG, FormatPDF}, seededDrawables(t, 3), DefaultOptions())
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	if len(paths) != 3 || filepath.Base(paths[1]) != "canvas.png" {
		t.Fatalf("unexpected paths: %v", paths)
	}
	for _, p := range paths {
		st, err := os.Stat(p)
		if err != nil || st.Size() == 0 {
			t.Fatalf("missing output %s: %v", p, err)
		}
	}
}

func TestBatchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Batch(ctx, t.TempDir(), "x", []Format{FormatSVG}, nil, Options{}); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestOptionsDefaults(t *testing.T) {
	o := Options{Background: vector.Black}.withDefaults()
	if o.Width != 540 || o.Height != 720 || o.Scale != 1 || o.Background != vector.Black {
		t.Fatalf("unexpected defaults: %+v", o)
	}
}
