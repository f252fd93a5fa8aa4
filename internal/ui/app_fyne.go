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

package ui

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"gocanvas/internal/config"
	"gocanvas/internal/drag"
	applog "gocanvas/internal/log"
	"gocanvas/internal/scene"
	"gocanvas/internal/store"
	"gocanvas/internal/vector"
	"gocanvas/internal/version"
)

const mousePointer drag.PointerID = 0

// Run starts the Fyne desktop host on st and blocks until the window closes
// or ctx is cancelled.
func Run(ctx context.Context, st *store.ElementStore, cfg config.AppConfig, mgr *config.Manager) error {
	l := applog.WithComponent("ui")
	l.Info("starting UI", slog.String("version", version.String()))

	opts, err := cfg.DragOptions()
	if err != nil {
		return err
	}
	th, err := cfg.Theme()
	if err != nil {
		return err
	}
	bg, err := cfg.Background()
	if err != nil {
		return err
	}

	fyneApp := app.NewWithID("gocanvas")
	w := fyneApp.NewWindow("gocanvas")
	prefs := fyneApp.Preferences()
	winW := max(prefs.IntWithFallback("window.width", 1200), 800)
	winH := max(prefs.IntWithFallback("window.height", 860), 600)
	w.Resize(fyne.NewSize(float32(winW), float32(winH)))

	eng := drag.NewEngine(st, opts)
	cv := NewCanvas(eng, st, th, bg, vector.Pt{X: cfg.Canvas.Width, Y: cfg.Canvas.Height})
	status := widget.NewLabel("Ready")
	inspector := widget.NewLabel("")
	inspector.TextStyle = fyne.TextStyle{Monospace: true}
	zoom := widget.NewLabel("100%")

	layers := widget.NewList(
		func() int { return st.Len() },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(i widget.ListItemID, o fyne.CanvasObject) {
			elems := st.List()
			if i >= 0 && int(i) < len(elems) {
				o.(*widget.Label).SetText(fmt.Sprintf("Rectangle #%d", elems[i].ID))
			}
		},
	)
	syncing := false
	layers.OnSelected = func(i widget.ListItemID) {
		if syncing {
			return
		}
		elems := st.List()
		if int(i) < len(elems) {
			if err := st.Select(elems[i].ID); err != nil {
				status.SetText(err.Error())
			}
			cv.Refresh()
		}
	}

	// refresh mirrors store and engine state into the chrome.
	refresh := func() {
		snap := st.Snapshot()
		syncing = true
		layers.UnselectAll()
		for i, e := range snap.Elements {
			if snap.IsSelected(e.ID) {
				layers.Select(widget.ListItemID(i))
			}
		}
		syncing = false
		layers.Refresh()
		inspector.SetText(inspectorText(snap, eng))
		zoom.SetText(fmt.Sprintf("%.0f%%", cv.Zoom()*100))
	}
	cv.OnChange = refresh
	cv.OnError = func(err error) {
		l.Debug("gesture refused", slog.Any("err", err))
		status.SetText(err.Error())
	}

	inert := func() {}
	toolbar := widget.NewToolbar(
		widget.NewToolbarAction(theme.MenuIcon(), inert),
		widget.NewToolbarAction(theme.NavigateNextIcon(), inert),
		widget.NewToolbarAction(theme.CheckButtonIcon(), inert),
		widget.NewToolbarAction(theme.DocumentCreateIcon(), inert),
		widget.NewToolbarAction(theme.ViewRestoreIcon(), inert),
		widget.NewToolbarAction(theme.MailComposeIcon(), inert),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.AccountIcon(), inert),
		widget.NewToolbarAction(theme.MediaPlayIcon(), inert),
		widget.NewToolbarSpacer(),
		widget.NewToolbarAction(theme.ZoomOutIcon(), func() { cv.SetZoom(cv.Zoom() / 1.25) }),
		labelItem{zoom},
		widget.NewToolbarAction(theme.ZoomInIcon(), func() { cv.SetZoom(cv.Zoom() * 1.25) }),
	)

	sidebar := container.NewBorder(widget.NewLabelWithStyle("Layers", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}), nil, nil, nil, layers)
	right := container.NewVBox(widget.NewLabelWithStyle("Inspector", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}), inspector)
	split := container.NewHSplit(sidebar, container.NewBorder(nil, nil, nil, right, cv))
	split.Offset = 0.18
	w.SetContent(container.NewBorder(toolbar, status, nil, nil, split))

	w.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name != fyne.KeyEscape {
			return
		}
		if eng.InGesture(mousePointer) {
			cv.report(eng.GestureCancel(mousePointer))
		} else {
			st.ClearSelection()
		}
		cv.Refresh()
		refresh()
	})

	if mgr != nil {
		mgr.OnConfigChange(func(c config.AppConfig) {
			fyne.Do(func() {
				if err := cv.apply(c); err != nil {
					l.Warn("config ignored", slog.Any("err", err))
					status.SetText("config: " + err.Error())
					return
				}
				status.SetText("Config reloaded")
				refresh()
			})
		})
		if err := mgr.Watch(); err != nil && !errors.Is(err, config.ErrNoConfigFile) {
			return err
		}
	}

	go func() {
		<-ctx.Done()
		fyne.Do(fyneApp.Quit)
	}()
	w.SetOnClosed(func() {
		sz := w.Canvas().Size()
		prefs.SetInt("window.width", int(sz.Width))
		prefs.SetInt("window.height", int(sz.Height))
	})
	refresh()
	w.ShowAndRun()
	return nil
}

// labelItem puts a plain label into a toolbar.
type labelItem struct{ label *widget.Label }

func (i labelItem) ToolbarObject() fyne.CanvasObject { return i.label }

func inspectorText(snap store.Snapshot, eng *drag.Engine) string {
	if !snap.HasSelected {
		return "No selection"
	}
	for _, e := range snap.Elements {
		if e.ID != snap.Selected {
			continue
		}
		state := "idle"
		if a, ok := eng.Resizing(e.ID); ok {
			state = "resizing " + a.String()
		} else if eng.Dragging(e.ID) {
			state = "dragging"
		}
		f := e.Frame
		return fmt.Sprintf("Rectangle #%d\nX %.1f  Y %.1f\nW %.1f  H %.1f\n%s", e.ID, f.X, f.Y, f.W, f.H, state)
	}
	return "No selection"
}

// Canvas draws the scene and turns pointer input into gestures.
type Canvas struct {
	widget.BaseWidget

	engine     *drag.Engine
	store      *store.ElementStore
	theme      scene.Theme
	background vector.Color
	page       vector.Pt

	zoom    float32
	offsetX float32
	offsetY float32
	last    vector.Pt

	OnChange func()
	OnError  func(error)
}

var (
	_ desktop.Mouseable = (*Canvas)(nil)
	_ fyne.Draggable    = (*Canvas)(nil)
	_ fyne.Scrollable   = (*Canvas)(nil)
)

// NewCanvas creates the canvas widget. page is the artboard size in design units.
func NewCanvas(eng *drag.Engine, st *store.ElementStore, th scene.Theme, bg vector.Color, page vector.Pt) *Canvas {
	c := &Canvas{engine: eng, store: st, theme: th, background: bg, page: page, zoom: 1}
	c.ExtendBaseWidget(c)
	return c
}

func (c *Canvas) Zoom() float32 { return c.zoom }

func (c *Canvas) SetZoom(z float32) {
	c.zoom = min(max(z, 0.1), 4)
	c.Refresh()
	c.changed()
}

func (c *Canvas) apply(cfg config.AppConfig) error {
	opts, err := cfg.DragOptions()
	if err != nil {
		return err
	}
	th, err := cfg.Theme()
	if err != nil {
		return err
	}
	bg, err := cfg.Background()
	if err != nil {
		return err
	}
	c.report(c.engine.CancelAll())
	c.engine.SetOptions(opts)
	c.theme = th
	c.background = bg
	c.page = vector.Pt{X: cfg.Canvas.Width, Y: cfg.Canvas.Height}
	c.Refresh()
	return nil
}

// origin is the screen position of the artboard's top-left corner.
func (c *Canvas) origin() (x, y float32) {
	size := c.Size()
	x = size.Width/2 - float32(c.page.X)*c.zoom/2 + c.offsetX
	y = size.Height/2 - float32(c.page.Y)*c.zoom/2 + c.offsetY
	return x, y
}

func (c *Canvas) toScreen(p vector.Pt) fyne.Position {
	ox, oy := c.origin()
	return fyne.NewPos(ox+float32(p.X)*c.zoom, oy+float32(p.Y)*c.zoom)
}

func (c *Canvas) toDesign(pos fyne.Position) vector.Pt {
	ox, oy := c.origin()
	return vector.Pt{X: float64((pos.X - ox) / c.zoom), Y: float64((pos.Y - oy) / c.zoom)}
}

// MouseDown starts a gesture on whatever is under the pointer.
func (c *Canvas) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	if c.engine.InGesture(mousePointer) {
		c.report(c.engine.GestureCancel(mousePointer))
	}
	p := c.toDesign(e.Position)
	c.last = p
	t, ok := scene.HitTest(c.store.Snapshot(), c.engine.Options().Anchors, c.theme, p)
	if !ok {
		c.store.ClearSelection()
	} else {
		c.report(c.engine.GestureBegin(mousePointer, p, t))
	}
	c.Refresh()
	c.changed()
}

func (c *Canvas) Dragged(e *fyne.DragEvent) {
	if !c.engine.InGesture(mousePointer) {
		c.offsetX += e.Dragged.DX
		c.offsetY += e.Dragged.DY
		c.Refresh()
		return
	}
	c.last = c.toDesign(e.Position)
	c.report(c.engine.GestureChange(mousePointer, c.last))
	c.Refresh()
	c.changed()
}

// MouseUp and DragEnd both finish the gesture; whichever arrives second
// finds no gesture and does nothing.
func (c *Canvas) MouseUp(e *desktop.MouseEvent) {
	c.finish(c.toDesign(e.Position))
}

func (c *Canvas) DragEnd() { c.finish(c.last) }

func (c *Canvas) finish(p vector.Pt) {
	if !c.engine.InGesture(mousePointer) {
		return
	}
	c.report(c.engine.GestureEnd(mousePointer, p))
	c.Refresh()
	c.changed()
}

func (c *Canvas) Scrolled(e *fyne.ScrollEvent) {
	c.SetZoom(c.zoom + e.Scrolled.DY*0.005)
}

func (c *Canvas) changed() {
	if c.OnChange != nil {
		c.OnChange()
	}
}

func (c *Canvas) report(err error) {
	if err != nil && c.OnError != nil {
		c.OnError(err)
	}
}

func (c *Canvas) MinSize() fyne.Size { return fyne.NewSize(400, 400) }

func (c *Canvas) CreateRenderer() fyne.WidgetRenderer {
	r := &canvasRenderer{
		c:    c,
		bg:   canvas.NewRectangle(color.NRGBA{R: 28, G: 28, B: 30, A: 255}),
		page: canvas.NewRectangle(color.White),
	}
	r.Layout(c.Size())
	return r
}

// canvasRenderer keeps one rectangle per drawable, reusing them between frames.
type canvasRenderer struct {
	c       *Canvas
	bg      *canvas.Rectangle
	page    *canvas.Rectangle
	pool    []*canvas.Rectangle
	objects []fyne.CanvasObject
}

func (r *canvasRenderer) Destroy()                     {}
func (r *canvasRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *canvasRenderer) MinSize() fyne.Size           { return r.c.MinSize() }
func (r *canvasRenderer) Refresh()                     { r.Layout(r.c.Size()); canvas.Refresh(r.c) }

func (r *canvasRenderer) Layout(size fyne.Size) {
	c := r.c
	r.bg.Resize(size)
	r.bg.Move(fyne.NewPos(0, 0))
	r.page.FillColor = toColor(c.background)
	r.page.Move(c.toScreen(vector.Pt{}))
	r.page.Resize(fyne.NewSize(float32(c.page.X)*c.zoom, float32(c.page.Y)*c.zoom))

	ds := scene.Build(c.store.Snapshot(), c.engine, c.engine.Options().Anchors, c.theme)
	for len(r.pool) < len(ds) {
		r.pool = append(r.pool, canvas.NewRectangle(color.Transparent))
	}
	r.objects = append(r.objects[:0], r.bg, r.page)
	for i, d := range ds {
		rc := r.pool[i]
		rc.FillColor = color.Transparent
		rc.StrokeColor = color.Transparent
		rc.StrokeWidth = 0
		if d.Fill.Enabled {
			rc.FillColor = toColor(d.Fill.Color)
		}
		if d.Stroke.Enabled {
			rc.StrokeColor = toColor(d.Stroke.Color)
			rc.StrokeWidth = float32(d.Stroke.Width)
		}
		rc.CornerRadius = float32(d.Radius) * c.zoom
		rc.Move(c.toScreen(d.Rect.Origin()))
		rc.Resize(fyne.NewSize(float32(d.Rect.W)*c.zoom, float32(d.Rect.H)*c.zoom))
		rc.Refresh()
		r.objects = append(r.objects, rc)
	}
}

func toColor(c vector.Color) color.Color { return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A} }
