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
	"github.com/charmbracelet/lipgloss"

	"gocanvas/internal/scene"
	"gocanvas/internal/vector"
)

// Palette for the chrome around the canvas. The canvas itself takes its
// colors from the scene theme.
const (
	chromeBg    = "#1c1c1e"
	chromeFg    = "#f2f2f7"
	chromeMuted = "#8e8e93"
	chromeLine  = "#3a3a3c"
	edgeColor   = "#636366"
)

// Styles holds the lipgloss styles of the terminal host.
type Styles struct {
	Toolbar       lipgloss.Style
	ToolbarItem   lipgloss.Style
	ToolbarActive lipgloss.Style
	ToolbarSep    lipgloss.Style

	Sidebar       lipgloss.Style
	SidebarTitle  lipgloss.Style
	Layer         lipgloss.Style
	LayerSelected lipgloss.Style

	Inspector      lipgloss.Style
	InspectorTitle lipgloss.Style
	Label          lipgloss.Style
	Value          lipgloss.Style
	Swatch         lipgloss.Style

	Status      lipgloss.Style
	StatusError lipgloss.Style

	// colors used by the rasterizer
	accent   string
	element  string
	overlay  string
	artboard string
	outside  string
}

// NewStyles derives the styles from the scene theme and the artboard color.
func NewStyles(th scene.Theme, background vector.Color) Styles {
	accent := lipgloss.Color(th.Accent.Hex())
	line := lipgloss.Color(chromeLine)
	return Styles{
		Toolbar:       lipgloss.NewStyle().Background(lipgloss.Color(chromeBg)).Foreground(lipgloss.Color(chromeFg)),
		ToolbarItem:   lipgloss.NewStyle().Background(lipgloss.Color(chromeBg)).Foreground(lipgloss.Color(chromeFg)).Padding(0, 1),
		ToolbarActive: lipgloss.NewStyle().Background(accent).Foreground(lipgloss.Color("#ffffff")).Padding(0, 1),
		ToolbarSep:    lipgloss.NewStyle().Background(lipgloss.Color(chromeBg)).Foreground(lipgloss.Color(chromeMuted)),

		Sidebar:       lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderRight(true).BorderForeground(line).Padding(0, 1),
		SidebarTitle:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(chromeMuted)),
		Layer:         lipgloss.NewStyle(),
		LayerSelected: lipgloss.NewStyle().Bold(true).Foreground(accent),

		Inspector:      lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderLeft(true).BorderForeground(line).Padding(0, 1),
		InspectorTitle: lipgloss.NewStyle().Bold(true),
		Label:          lipgloss.NewStyle().Foreground(lipgloss.Color(chromeMuted)),
		Value:          lipgloss.NewStyle(),
		Swatch:         lipgloss.NewStyle(),

		Status:      lipgloss.NewStyle().Foreground(lipgloss.Color(chromeMuted)),
		StatusError: lipgloss.NewStyle().Foreground(lipgloss.Color("#ff453a")),

		accent:   th.Accent.Hex(),
		element:  th.ElementFill.Hex(),
		overlay:  blend(th.ElementFill, th.OverlayColor, th.OverlayOpacity).Hex(),
		artboard: background.Hex(),
		outside:  chromeBg,
	}
}

// blend composites top over base with opacity t.
func blend(base, top vector.Color, t float64) vector.Color {
	mix := func(a, b uint8) uint8 { return uint8(float64(a)*(1-t) + float64(b)*t + 0.5) }
	return vector.Color{R: mix(base.R, top.R), G: mix(base.G, top.G), B: mix(base.B, top.B), A: 255}
}

// swatch renders a small color sample followed by its hex value.
func (s Styles) swatch(c vector.Color) string {
	return s.Swatch.Background(lipgloss.Color(c.Hex())).Render("  ") + " " + s.Value.Render(c.Hex())
}
