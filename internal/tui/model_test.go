/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"gocanvas/internal/config"
	"gocanvas/internal/domain"
	"gocanvas/internal/drag"
	"gocanvas/internal/scene"
	"gocanvas/internal/store"
	"gocanvas/internal/vector"
)

// With the default 10×20 units per cell and a 22 column sidebar, screen cell
// (x, y) shows design point ((x-22)*10+5, (y-1)*20+10).

func newTestModel(t *testing.T) (Model, *store.ElementStore) {
	t.Helper()
	st := store.NewSeeded()
	m, err := New(st, config.Defaults())
	require.NoError(t, err)
	return send(t, m, tea.WindowSizeMsg{Width: 120, Height: 50}), st
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func motion(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}
}

func release(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone}
}

func keyMsg(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func runeMsg(r rune) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}} }

func frame(t *testing.T, st *store.ElementStore, id domain.ElementID) vector.Rect {
	t.Helper()
	f, err := st.Frame(id)
	require.NoError(t, err)
	return f
}

func TestDesignPointMapping(t *testing.T) {
	m, _ := newTestModel(t)
	require.Equal(t, vector.Pt{X: 95, Y: 290}, m.designPoint(31, 15))
	require.Equal(t, regionToolbar, m.locate(40, 0))
	require.Equal(t, regionSidebar, m.locate(3, 5))
	require.Equal(t, regionCanvas, m.locate(31, 15))
	require.Equal(t, regionInspector, m.locate(100, 15))
	require.Equal(t, regionNone, m.locate(40, 49))
}

func TestMouseDragMovesElement(t *testing.T) {
	m, st := newTestModel(t)
	m = send(t, m, press(31, 15))
	require.True(t, m.Engine().InGesture(mousePointer))
	m = send(t, m, motion(33, 16))
	require.True(t, m.Engine().Dragging(1))
	m = send(t, m, release(33, 16))

	require.False(t, m.Engine().InGesture(mousePointer))
	require.Equal(t, vector.R(70, 240, 190, 250), frame(t, st, 1))
	id, ok := st.Selected()
	require.True(t, ok)
	require.Equal(t, domain.ElementID(1), id)
}

func TestMouseTapTogglesSelection(t *testing.T) {
	m, st := newTestModel(t)
	m = send(t, m, press(31, 15))
	m = send(t, m, release(31, 15))
	id, ok := st.Selected()
	require.True(t, ok)
	require.Equal(t, domain.ElementID(1), id)

	m = send(t, m, press(31, 15))
	send(t, m, release(31, 15))
	_, ok = st.Selected()
	require.False(t, ok)
	require.Equal(t, vector.R(50, 220, 190, 250), frame(t, st, 1))
}

func TestClickOnEmptyCanvasClearsSelection(t *testing.T) {
	m, st := newTestModel(t)
	require.NoError(t, st.Select(2))
	m = send(t, m, press(82, 15))
	require.False(t, m.Engine().InGesture(mousePointer))
	_, ok := st.Selected()
	require.False(t, ok)
}

func TestHandleDragResizesElement(t *testing.T) {
	m, st := newTestModel(t)
	require.NoError(t, st.Select(1))

	// (27, 11) is design (55, 210), inside the top-leading handle's hit area.
	m = send(t, m, press(27, 11))
	a, ok := m.Engine().Resizing(1)
	require.True(t, ok)
	require.Equal(t, domain.TopLeading, a)

	m = send(t, m, motion(29, 12))
	send(t, m, release(29, 12))

	f := frame(t, st, 1)
	require.InDelta(t, 70, f.MinX(), 1e-9)
	require.InDelta(t, 240, f.MinY(), 1e-9)
	require.InDelta(t, 240, f.MaxX(), 1e-9)
	require.InDelta(t, 470, f.MaxY(), 1e-9)
}

func TestEscapeCancelsMouseGesture(t *testing.T) {
	m, st := newTestModel(t)
	m = send(t, m, press(31, 15))
	m = send(t, m, motion(40, 20))
	require.NotEqual(t, vector.R(50, 220, 190, 250), frame(t, st, 1))

	m = send(t, m, keyMsg(tea.KeyEsc))
	require.False(t, m.Engine().InGesture(mousePointer))
	require.Equal(t, vector.R(50, 220, 190, 250), frame(t, st, 1))
	_, ok := st.Selected()
	require.True(t, ok, "cancel keeps the selection")

	send(t, m, keyMsg(tea.KeyEsc))
	_, ok = st.Selected()
	require.False(t, ok)
}

func TestNewPressAfterLostRelease(t *testing.T) {
	m, st := newTestModel(t)
	m = send(t, m, press(31, 15))
	m = send(t, m, motion(33, 16))
	require.NotPanics(t, func() { m = send(t, m, press(31, 15)) })
	require.Equal(t, vector.R(50, 220, 190, 250), frame(t, st, 1))
	require.True(t, m.Engine().InGesture(mousePointer))
}

func TestKeyboardNudge(t *testing.T) {
	m, st := newTestModel(t)
	m = send(t, m, keyMsg(tea.KeyRight))
	require.Equal(t, vector.R(50, 220, 190, 250), frame(t, st, 1), "nothing selected")

	require.NoError(t, st.Select(1))
	m = send(t, m, keyMsg(tea.KeyRight))
	m = send(t, m, keyMsg(tea.KeyDown))
	send(t, m, keyMsg(tea.KeyLeft))
	require.Equal(t, vector.R(50, 240, 190, 250), frame(t, st, 1))
	id, ok := st.Selected()
	require.True(t, ok)
	require.Equal(t, domain.ElementID(1), id)
}

func TestNudgeRespectsBodyThreshold(t *testing.T) {
	st := store.NewSeeded()
	cfg := config.Defaults()
	cfg.Gesture.BodyMinDistance = 35
	m, err := New(st, cfg)
	require.NoError(t, err)
	require.NoError(t, st.Select(1))
	send(t, m, keyMsg(tea.KeyRight))
	require.Equal(t, vector.R(85, 220, 190, 250), frame(t, st, 1))
	_, ok := st.Selected()
	require.True(t, ok)
}

func TestTabCyclesSelection(t *testing.T) {
	m, st := newTestModel(t)
	selected := func() domain.ElementID {
		id, ok := st.Selected()
		require.True(t, ok)
		return id
	}
	m = send(t, m, keyMsg(tea.KeyTab))
	require.Equal(t, domain.ElementID(1), selected())
	m = send(t, m, keyMsg(tea.KeyTab))
	require.Equal(t, domain.ElementID(2), selected())
	m = send(t, m, keyMsg(tea.KeyShiftTab))
	require.Equal(t, domain.ElementID(1), selected())
	send(t, m, keyMsg(tea.KeyShiftTab))
	require.Equal(t, domain.ElementID(3), selected())
}

func TestSidebarClickSelectsLayer(t *testing.T) {
	m, st := newTestModel(t)
	send(t, m, press(2, 3))
	id, ok := st.Selected()
	require.True(t, ok)
	require.Equal(t, domain.ElementID(2), id)
}

func TestZoom(t *testing.T) {
	m, _ := newTestModel(t)
	m = send(t, m, runeMsg('+'))
	require.Equal(t, 1.5, m.vp.Zoom)
	require.Contains(t, m.View(), "150%")
	for i := 0; i < 10; i++ {
		m = send(t, m, runeMsg('-'))
	}
	require.Equal(t, zoomLevels[0], m.vp.Zoom)
	m = send(t, m, tea.MouseMsg{X: 40, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp})
	require.Equal(t, zoomLevels[1], m.vp.Zoom)
}

func TestBlurCancelsGestures(t *testing.T) {
	m, st := newTestModel(t)
	m = send(t, m, press(31, 15))
	m = send(t, m, motion(35, 18))
	m = send(t, m, tea.BlurMsg{})
	require.False(t, m.Engine().InGesture(mousePointer))
	require.Equal(t, vector.R(50, 220, 190, 250), frame(t, st, 1))
}

func TestConfigMsgUpdatesEngine(t *testing.T) {
	m, st := newTestModel(t)
	require.NoError(t, st.Select(1))

	cfg := config.Defaults()
	cfg.Resize.Policy = "clamp"
	cfg.Handles.Anchors = []string{"bottom-trailing"}
	m = send(t, m, ConfigMsg{Config: cfg})
	require.Equal(t, drag.PolicyClamp, m.Engine().Options().Policy)
	require.Equal(t, "config reloaded", m.status)

	// The top-leading handle is gone, so the press lands on empty canvas.
	m = send(t, m, press(27, 11))
	require.False(t, m.Engine().InGesture(mousePointer))
	_, ok := st.Selected()
	require.False(t, ok)
}

func TestInvalidConfigMsgIsIgnored(t *testing.T) {
	m, _ := newTestModel(t)
	cfg := config.Defaults()
	cfg.Appearance.AccentColor = "not-a-color"
	cfg.Resize.Policy = "preserve"
	m = send(t, m, ConfigMsg{Config: cfg})
	require.Equal(t, drag.PolicyNormalize, m.Engine().Options().Policy)
	require.True(t, m.statusErr)
}

func TestQuitReturnsQuitCmd(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := m.Update(runeMsg('q'))
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
}

func TestViewShowsChrome(t *testing.T) {
	m, st := newTestModel(t)
	v := m.View()
	require.Contains(t, v, "Layers")
	require.Contains(t, v, "Rectangle #3")
	require.Contains(t, v, "No selection")
	require.Contains(t, v, "100%")

	require.NoError(t, st.Select(2))
	v = m.View()
	require.Contains(t, v, "X 100  Y 270")
	require.Contains(t, v, "W 190  H 250")
	require.Contains(t, v, "#007aff")
	require.Contains(t, v, "idle")
}

func TestRasterizeOutlinesElements(t *testing.T) {
	vp := Viewport{UnitsPerCol: 10, UnitsPerRow: 20, Zoom: 1}
	st := NewStyles(scene.DefaultTheme(), vector.White)
	ds := []scene.Drawable{{
		Kind: scene.KindElement,
		Rect: vector.R(0, 0, 50, 40),
		Fill: vector.Fill{Color: vector.Black, Enabled: true},
	}}
	g := rasterize(ds, vp, 6, 3, vector.R(0, 0, 60, 60), st)
	require.Equal(t, []string{"╭───╮ ", "╰───╯ ", "      "}, strings.Split(g.plain(), "\n"))
	require.Equal(t, st.element, g.at(2, 0).bg)
	require.Equal(t, st.artboard, g.at(5, 0).bg)
}

func TestRasterizeSelection(t *testing.T) {
	st := store.NewSeeded()
	require.NoError(t, st.Select(1))
	snap := st.Snapshot()
	th := scene.DefaultTheme()
	ds := scene.Build(snap, scene.Idle, domain.CornerAnchors(), th)
	vp := Viewport{UnitsPerCol: 10, UnitsPerRow: 20, Zoom: 1}
	g := rasterize(ds, vp, 40, 30, vector.R(0, 0, 540, 720), NewStyles(th, vector.White))

	// Element 1 spans columns 5..23 and rows 11..23; its leading corners
	// are not covered by elements 2 and 3.
	require.Equal(t, '■', g.at(5, 11).r)
	require.Equal(t, '■', g.at(5, 23).r)
	require.Equal(t, '━', g.at(10, 11).r)
	require.Equal(t, '┃', g.at(5, 15).r)
}

func TestSpan(t *testing.T) {
	a, b := span(50, 240, 10)
	require.Equal(t, [2]int{5, 23}, [2]int{a, b})
	a, b = span(12, 14, 10)
	require.Equal(t, [2]int{1, 1}, [2]int{a, b})
}
