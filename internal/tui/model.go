/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package tui is the terminal host: a Bubble Tea program that draws the
// canvas in character cells and turns mouse presses, motion and releases
// into drag engine gestures.
package tui

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"gocanvas/internal/config"
	"gocanvas/internal/domain"
	"gocanvas/internal/drag"
	applog "gocanvas/internal/log"
	"gocanvas/internal/scene"
	"gocanvas/internal/store"
	"gocanvas/internal/vector"
)

const (
	mousePointer    drag.PointerID = 0
	keyboardPointer drag.PointerID = 1

	toolbarHeight  = 1
	inspectorWidth = 30
	minCanvasCols  = 20
)

var zoomLevels = []float64{0.25, 0.5, 0.75, 1, 1.5, 2, 3, 4}

// ConfigMsg carries a reloaded configuration into the event loop.
type ConfigMsg struct {
	Config config.AppConfig
}

// Model is the terminal host. Store and engine are shared pointers, so
// copies of the model drive the same canvas.
type Model struct {
	store  *store.ElementStore
	engine *drag.Engine
	log    *slog.Logger

	theme      scene.Theme
	background vector.Color
	artboard   vector.Rect
	styles     Styles
	vp         Viewport
	zoomIdx    int

	keys     KeyMap
	help     help.Model
	showHelp bool

	width, height int
	sidebarWidth  int
	status        string
	statusErr     bool
}

// New builds the host for st using cfg.
func New(st *store.ElementStore, cfg config.AppConfig) (Model, error) {
	opts, err := cfg.DragOptions()
	if err != nil {
		return Model{}, err
	}
	m := Model{
		store:    st,
		engine:   drag.NewEngine(st, opts),
		log:      applog.WithComponent("tui"),
		keys:     DefaultKeyMap(),
		help:     help.New(),
		width:    100,
		height:   40,
		zoomIdx:  3,
		showHelp: cfg.TUI.ShowHelp,
	}
	if err := m.configure(cfg); err != nil {
		return Model{}, err
	}
	return m, nil
}

// configure applies the parts of cfg the host reads on every reload.
func (m *Model) configure(cfg config.AppConfig) error {
	th, err := cfg.Theme()
	if err != nil {
		return err
	}
	bg, err := cfg.Background()
	if err != nil {
		return err
	}
	m.theme = th
	m.background = bg
	m.artboard = vector.R(0, 0, cfg.Canvas.Width, cfg.Canvas.Height)
	m.styles = NewStyles(th, bg)
	m.vp = Viewport{UnitsPerCol: cfg.TUI.UnitsPerColumn, UnitsPerRow: cfg.TUI.UnitsPerRow, Zoom: zoomLevels[m.zoomIdx]}
	m.sidebarWidth = cfg.TUI.SidebarWidth
	return nil
}

// Engine exposes the gesture engine the host drives.
func (m Model) Engine() *drag.Engine { return m.engine }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil
	case tea.BlurMsg:
		m.report(m.engine.CancelAll())
		return m, nil
	case ConfigMsg:
		m.applyConfig(msg.Config)
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.report(m.engine.CancelAll())
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
	case key.Matches(msg, m.keys.Left):
		m.nudge(-1, 0)
	case key.Matches(msg, m.keys.Right):
		m.nudge(1, 0)
	case key.Matches(msg, m.keys.Up):
		m.nudge(0, -1)
	case key.Matches(msg, m.keys.Down):
		m.nudge(0, 1)
	case key.Matches(msg, m.keys.Next):
		m.cycle(1)
	case key.Matches(msg, m.keys.Prev):
		m.cycle(-1)
	case key.Matches(msg, m.keys.Deselect):
		if m.engine.InGesture(mousePointer) {
			m.report(m.engine.GestureCancel(mousePointer))
			m.setStatus("gesture cancelled")
			break
		}
		m.store.ClearSelection()
	case key.Matches(msg, m.keys.ZoomIn):
		m.zoom(1)
	case key.Matches(msg, m.keys.ZoomOut):
		m.zoom(-1)
	}
	return m, nil
}

type region uint8

const (
	regionNone region = iota
	regionToolbar
	regionSidebar
	regionCanvas
	regionInspector
)

// layout returns the canvas size in cells and whether the inspector fits.
func (m Model) layout() (cols, rows int, inspector bool) {
	rows = m.height - toolbarHeight - m.footerHeight()
	cols = m.width - m.sidebarWidth
	if cols-inspectorWidth >= minCanvasCols {
		cols -= inspectorWidth
		inspector = true
	}
	return max(cols, 0), max(rows, 0), inspector
}

func (m Model) footerHeight() int {
	if m.showHelp {
		return 2
	}
	return 1
}

func (m Model) locate(x, y int) region {
	cols, rows, inspector := m.layout()
	switch {
	case y < toolbarHeight:
		return regionToolbar
	case y >= toolbarHeight+rows:
		return regionNone
	case x < m.sidebarWidth:
		return regionSidebar
	case x < m.sidebarWidth+cols:
		return regionCanvas
	case inspector:
		return regionInspector
	}
	return regionNone
}

// designPoint maps a screen cell to canvas design units. Cells off the
// canvas still map, so a drag can leave the canvas area.
func (m Model) designPoint(x, y int) vector.Pt {
	return m.vp.ToDesign(x-m.sidebarWidth, y-toolbarHeight)
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.zoom(1)
			return
		case tea.MouseButtonWheelDown:
			m.zoom(-1)
			return
		case tea.MouseButtonLeft:
		default:
			return
		}
		switch m.locate(msg.X, msg.Y) {
		case regionCanvas:
			m.press(m.designPoint(msg.X, msg.Y))
		case regionSidebar:
			m.pickLayer(msg.Y - toolbarHeight - 1)
		}
	case tea.MouseActionMotion:
		if m.engine.InGesture(mousePointer) {
			m.report(m.engine.GestureChange(mousePointer, m.designPoint(msg.X, msg.Y)))
		}
	case tea.MouseActionRelease:
		if m.engine.InGesture(mousePointer) {
			m.report(m.engine.GestureEnd(mousePointer, m.designPoint(msg.X, msg.Y)))
		}
	}
}

func (m *Model) press(p vector.Pt) {
	// A release outside the terminal never reaches us.
	if m.engine.InGesture(mousePointer) {
		m.report(m.engine.GestureCancel(mousePointer))
	}
	t, ok := scene.HitTest(m.store.Snapshot(), m.engine.Options().Anchors, m.theme, p)
	if !ok {
		m.store.ClearSelection()
		m.setStatus("")
		return
	}
	m.log.Debug("press", slog.String("target", t.String()), slog.Float64("x", p.X), slog.Float64("y", p.Y))
	m.report(m.engine.GestureBegin(mousePointer, p, t))
}

// nudge moves the selection by one cell through a body gesture so the
// engine applies it like any drag. The step is at least the body threshold.
func (m *Model) nudge(dx, dy int) {
	id, ok := m.store.Selected()
	if !ok {
		return
	}
	f, err := m.store.Frame(id)
	if err != nil {
		m.report(err)
		return
	}
	step := vector.Pt{X: float64(dx) * m.vp.colUnits(), Y: float64(dy) * m.vp.rowUnits()}
	if threshold := m.engine.Options().BodyMinDistance; step.Len() < threshold {
		k := threshold / step.Len()
		step = vector.Pt{X: step.X * k, Y: step.Y * k}
	}
	start := drag.Reference(drag.Body(id), f)
	if err := m.engine.GestureBegin(keyboardPointer, start, drag.Body(id)); err != nil {
		m.report(err)
		return
	}
	m.report(m.engine.GestureEnd(keyboardPointer, start.Add(step)))
}

// cycle moves the selection dir steps through the layer list.
func (m *Model) cycle(dir int) {
	elems := m.store.List()
	if len(elems) == 0 {
		return
	}
	next := 0
	if dir < 0 {
		next = len(elems) - 1
	}
	if id, ok := m.store.Selected(); ok {
		for i, e := range elems {
			if e.ID == id {
				next = ((i+dir)%len(elems) + len(elems)) % len(elems)
				break
			}
		}
	}
	m.report(m.store.Select(elems[next].ID))
}

// pickLayer selects the element shown on the given sidebar line.
func (m *Model) pickLayer(line int) {
	elems := m.store.List()
	if line < 0 || line >= len(elems) {
		return
	}
	m.report(m.store.Select(elems[line].ID))
}

func (m *Model) zoom(dir int) {
	i := min(max(m.zoomIdx+dir, 0), len(zoomLevels)-1)
	m.zoomIdx = i
	m.vp.Zoom = zoomLevels[i]
}

func (m *Model) applyConfig(cfg config.AppConfig) {
	opts, err := cfg.DragOptions()
	if err == nil {
		err = m.configure(cfg)
	}
	if err != nil {
		m.log.Warn("config ignored", slog.Any("err", err))
		m.report(fmt.Errorf("config: %w", err))
		return
	}
	// Gestures may be on handles the new settings disable.
	m.report(m.engine.CancelAll())
	m.engine.SetOptions(opts)
	m.showHelp = cfg.TUI.ShowHelp
	m.setStatus("config reloaded")
}

func (m *Model) report(err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, drag.ErrBusy), errors.Is(err, drag.ErrAnchorDisabled):
		m.log.Debug("gesture refused", slog.Any("err", err))
	default:
		m.log.Warn("gesture failed", slog.Any("err", err))
	}
	m.status = err.Error()
	m.statusErr = true
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

// selectedElement returns the selected element, if any.
func (m Model) selectedElement(snap store.Snapshot) (domain.Element, bool) {
	if !snap.HasSelected {
		return domain.Element{}, false
	}
	for _, e := range snap.Elements {
		if e.ID == snap.Selected {
			return e, true
		}
	}
	return domain.Element{}, false
}
