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
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"gocanvas/internal/domain"
	"gocanvas/internal/scene"
	"gocanvas/internal/store"
)

// toolbarItems mirrors the editor toolbar; only the zoom readout is live.
var toolbarItems = []string{"≡", "cursor", "rect", "text", "hand", "comment", "|", "person", "play"}

// View implements tea.Model.
func (m Model) View() string {
	cols, rows, inspector := m.layout()
	snap := m.store.Snapshot()

	parts := make([]string, 0, 3)
	if m.sidebarWidth > 0 {
		parts = append(parts, m.sidebarView(snap, rows))
	}
	parts = append(parts, m.canvasView(snap, cols, rows))
	if inspector {
		parts = append(parts, m.inspectorView(snap, rows))
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, parts...)

	sections := []string{m.toolbarView(), body, m.statusView(snap)}
	if m.showHelp {
		sections = append(sections, m.help.View(m.keys))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) toolbarView() string {
	items := make([]string, 0, len(toolbarItems)+1)
	for i, it := range toolbarItems {
		switch {
		case it == "|":
			items = append(items, m.styles.ToolbarSep.Render("│"))
		case i == 1:
			items = append(items, m.styles.ToolbarActive.Render(it))
		default:
			items = append(items, m.styles.ToolbarItem.Render(it))
		}
	}
	items = append(items, m.styles.ToolbarItem.Render(fmt.Sprintf("%d%%", int(math.Round(m.vp.zoom()*100)))))
	return m.styles.Toolbar.Width(m.width).Render(lipgloss.JoinHorizontal(lipgloss.Top, items...))
}

func (m Model) sidebarView(snap store.Snapshot, rows int) string {
	lines := []string{m.styles.SidebarTitle.Render("Layers")}
	for _, e := range snap.Elements {
		name := fmt.Sprintf("▭ Rectangle #%d", e.ID)
		if snap.IsSelected(e.ID) {
			lines = append(lines, m.styles.LayerSelected.Render(name))
			continue
		}
		lines = append(lines, m.styles.Layer.Render(name))
	}
	return m.styles.Sidebar.
		Width(max(m.sidebarWidth-1, 0)).
		Height(rows).
		MaxHeight(rows).
		Render(strings.Join(lines, "\n"))
}

func (m Model) canvasView(snap store.Snapshot, cols, rows int) string {
	ds := scene.Build(snap, m.engine, m.engine.Options().Anchors, m.theme)
	return rasterize(ds, m.vp, cols, rows, m.artboard, m.styles).render()
}

func (m Model) inspectorView(snap store.Snapshot, rows int) string {
	var b strings.Builder
	row := func(label, value string) {
		b.WriteString(m.styles.Label.Render(label))
		b.WriteByte('\n')
		b.WriteString("  " + value)
		b.WriteByte('\n')
	}
	e, ok := m.selectedElement(snap)
	if !ok {
		b.WriteString(m.styles.Label.Render("No selection"))
	} else {
		f := e.Frame
		row("Layer", m.styles.InspectorTitle.Render(fmt.Sprintf("Rectangle #%d", e.ID)))
		row("Frame", fmt.Sprintf("X %s  Y %s\n  W %s  H %s", num(f.X), num(f.Y), num(f.W), num(f.H)))
		row("Fill", m.styles.swatch(m.theme.ElementFill))
		row("Stroke", m.styles.swatch(m.theme.Accent)+" "+num(m.theme.BorderWidth)+"pt")
		effects := "none"
		if sh := m.theme.ElementShadow; sh.Enabled {
			effects = fmt.Sprintf("shadow r%s y%s", num(sh.Radius), num(sh.OffsetY))
		}
		row("Effects", effects)
		row("State", m.gestureState(e.ID))
		row("Export", "gocanvas render")
	}
	return m.styles.Inspector.
		Width(inspectorWidth - 1).
		Height(rows).
		MaxHeight(rows).
		Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) gestureState(id domain.ElementID) string {
	if a, ok := m.engine.Resizing(id); ok {
		return "resizing " + a.String()
	}
	if m.engine.Dragging(id) {
		return "dragging"
	}
	return "idle"
}

func (m Model) statusView(snap store.Snapshot) string {
	if m.status != "" {
		if m.statusErr {
			return m.styles.StatusError.Render(m.status)
		}
		return m.styles.Status.Render(m.status)
	}
	sel := "none"
	if snap.HasSelected {
		sel = fmt.Sprintf("#%d", snap.Selected)
	}
	return m.styles.Status.Render(fmt.Sprintf("%d layers · selected %s · %s", len(snap.Elements), sel, m.engine.Options().Policy))
}

// num formats a design value with at most one decimal.
func num(v float64) string {
	return fmt.Sprintf("%g", math.Round(v*10)/10)
}
