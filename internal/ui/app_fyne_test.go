//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// These tests exercise the Fyne canvas widget. They are gated behind the
// "fyne" build tag so CI (which is headless) does not need Fyne or a display.
// To run locally:
//
//	go test -tags fyne ./internal/ui
package ui

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"

	"gocanvas/internal/drag"
	"gocanvas/internal/scene"
	"gocanvas/internal/store"
	"gocanvas/internal/vector"
)

func newTestCanvas(t *testing.T) (*Canvas, *store.ElementStore) {
	t.Helper()
	test.NewTempApp(t)
	st := store.NewSeeded()
	c := NewCanvas(drag.NewEngine(st, drag.DefaultOptions()), st, scene.DefaultTheme(), vector.White, vector.Pt{X: 540, Y: 720})
	c.Resize(fyne.NewSize(1000, 800))
	return c, st
}

func mouse(x, y float32) *desktop.MouseEvent {
	return &desktop.MouseEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)}, Button: desktop.MouseButtonPrimary}
}

func TestCanvas_Mapping(t *testing.T) {
	c, _ := newTestCanvas(t)
	// Artboard 540×720 centered in 1000×800 starts at (230, 40).
	if got := c.toScreen(vector.Pt{X: 100, Y: 300}); got != fyne.NewPos(330, 340) {
		t.Fatalf("toScreen = %v, want (330,340)", got)
	}
	if got := c.toDesign(fyne.NewPos(325, 330)); got != (vector.Pt{X: 95, Y: 290}) {
		t.Fatalf("toDesign = %v, want (95,290)", got)
	}
}

func TestCanvas_DragMovesElement(t *testing.T) {
	c, st := newTestCanvas(t)
	changes := 0
	c.OnChange = func() { changes++ }

	c.MouseDown(mouse(325, 330))
	c.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(345, 350)}, Dragged: fyne.NewDelta(20, 20)})
	c.MouseUp(mouse(345, 350))
	c.DragEnd()

	f, err := st.Frame(1)
	if err != nil {
		t.Fatalf("Frame: %v", err)
	}
	if f != vector.R(70, 240, 190, 250) {
		t.Fatalf("frame = %+v, want (70,240,190,250)", f)
	}
	if id, ok := st.Selected(); !ok || id != 1 {
		t.Fatalf("selected = %v,%v, want 1", id, ok)
	}
	if changes != 3 {
		t.Fatalf("OnChange calls = %d, want 3", changes)
	}
}

func TestCanvas_TapTogglesSelection(t *testing.T) {
	c, st := newTestCanvas(t)
	c.MouseDown(mouse(325, 330))
	c.MouseUp(mouse(325, 330))
	if _, ok := st.Selected(); !ok {
		t.Fatalf("tap should select")
	}
	c.MouseDown(mouse(325, 330))
	c.MouseUp(mouse(325, 330))
	if _, ok := st.Selected(); ok {
		t.Fatalf("second tap should deselect")
	}
}

func TestCanvas_DragOnEmptySpacePans(t *testing.T) {
	c, _ := newTestCanvas(t)
	c.MouseDown(mouse(10, 10))
	c.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(30, 15)}, Dragged: fyne.NewDelta(20, 5)})
	c.DragEnd()
	if c.offsetX != 20 || c.offsetY != 5 {
		t.Fatalf("offset = (%v,%v), want (20,5)", c.offsetX, c.offsetY)
	}
}

func TestCanvas_ZoomClamped(t *testing.T) {
	c, _ := newTestCanvas(t)
	c.SetZoom(100)
	if c.Zoom() != 4 {
		t.Fatalf("zoom = %v, want 4", c.Zoom())
	}
	c.SetZoom(0)
	if c.Zoom() != 0.1 {
		t.Fatalf("zoom = %v, want 0.1", c.Zoom())
	}
}

func TestCanvas_RendererObjects(t *testing.T) {
	c, st := newTestCanvas(t)
	r, ok := c.CreateRenderer().(*canvasRenderer)
	if !ok {
		t.Fatalf("expected canvasRenderer, got %T", c.CreateRenderer())
	}
	r.Layout(fyne.NewSize(1000, 800))
	if n := len(r.Objects()); n != 5 {
		t.Fatalf("objects = %d, want background, page and 3 elements", n)
	}
	if err := st.Select(2); err != nil {
		t.Fatal(err)
	}
	r.Layout(fyne.NewSize(1000, 800))
	if n := len(r.Objects()); n != 10 {
		t.Fatalf("objects with selection = %d, want 10", n)
	}
	if got := r.page.Size(); got != fyne.NewSize(540, 720) {
		t.Fatalf("page size = %v", got)
	}
}
