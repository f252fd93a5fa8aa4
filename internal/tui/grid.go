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
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"gocanvas/internal/scene"
	"gocanvas/internal/vector"
)

// Viewport maps terminal cells to design units. Cell (0,0) covers the
// artboard origin; a cell stands for the design point at its center.
type Viewport struct {
	UnitsPerCol float64
	UnitsPerRow float64
	Zoom        float64
}

func (v Viewport) colUnits() float64 { return v.UnitsPerCol / v.zoom() }
func (v Viewport) rowUnits() float64 { return v.UnitsPerRow / v.zoom() }

func (v Viewport) zoom() float64 {
	if v.Zoom <= 0 {
		return 1
	}
	return v.Zoom
}

// ToDesign returns the design point under a cell.
func (v Viewport) ToDesign(col, row int) vector.Pt {
	return vector.Pt{X: (float64(col) + 0.5) * v.colUnits(), Y: (float64(row) + 0.5) * v.rowUnits()}
}

// Cols returns the first and last column whose centers fall in [min, max].
// Spans thinner than a cell collapse onto the cell holding their midpoint.
func (v Viewport) Cols(min, max float64) (int, int) { return span(min, max, v.colUnits()) }

// Rows is Cols for the vertical axis.
func (v Viewport) Rows(min, max float64) (int, int) { return span(min, max, v.rowUnits()) }

func span(min, max, u float64) (int, int) {
	a := int(math.Ceil(min/u - 0.5))
	b := int(math.Floor(max/u - 0.5))
	if b < a {
		c := int(math.Floor((min + max) / 2 / u))
		return c, c
	}
	return a, b
}

type cell struct {
	r      rune
	fg, bg string
}

// grid is a rasterized canvas, row-major.
type grid struct {
	cols, rows int
	cells      []cell
}

func newGrid(cols, rows int) *grid {
	return &grid{cols: max(cols, 0), rows: max(rows, 0), cells: make([]cell, max(cols, 0)*max(rows, 0))}
}

func (g *grid) at(col, row int) *cell {
	if col < 0 || row < 0 || col >= g.cols || row >= g.rows {
		return nil
	}
	return &g.cells[row*g.cols+col]
}

// fill calls fn for every cell of the inclusive range that lies in the grid.
func (g *grid) fill(c0, c1, r0, r1 int, fn func(c *cell, col, row int)) {
	for row := max(r0, 0); row <= min(r1, g.rows-1); row++ {
		for col := max(c0, 0); col <= min(c1, g.cols-1); col++ {
			fn(&g.cells[row*g.cols+col], col, row)
		}
	}
}

var (
	roundBox = [6]rune{'─', '│', '╭', '╮', '╰', '╯'}
	heavyBox = [6]rune{'━', '┃', '┏', '┓', '┗', '┛'}
)

func outlineRune(box [6]rune, col, row, c0, c1, r0, r1 int) (rune, bool) {
	top, bottom, left, right := row == r0, row == r1, col == c0, col == c1
	switch {
	case top && left:
		return box[2], true
	case top && right:
		return box[3], true
	case bottom && left:
		return box[4], true
	case bottom && right:
		return box[5], true
	case top || bottom:
		return box[0], true
	case left || right:
		return box[1], true
	}
	return 0, false
}

// rasterize draws the scene onto a cols×rows grid. artboard is the page in
// design units; cells outside it get the chrome background.
func rasterize(ds []scene.Drawable, v Viewport, cols, rows int, artboard vector.Rect, st Styles) *grid {
	g := newGrid(cols, rows)
	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			c := g.at(col, row)
			c.r = ' '
			c.bg = st.outside
			if artboard.Contains(v.ToDesign(col, row)) {
				c.bg = st.artboard
			}
		}
	}
	for _, d := range ds {
		r := d.Rect.Standardized()
		c0, c1 := v.Cols(r.MinX(), r.MaxX())
		r0, r1 := v.Rows(r.MinY(), r.MaxY())
		switch d.Kind {
		case scene.KindElement:
			bg := d.Fill.Color.Hex()
			g.fill(c0, c1, r0, r1, func(c *cell, col, row int) {
				c.bg = bg
				c.fg = edgeColor
				c.r = ' '
				if ch, ok := outlineRune(roundBox, col, row, c0, c1, r0, r1); ok && c0 != c1 && r0 != r1 {
					c.r = ch
				}
			})
		case scene.KindOverlay:
			g.fill(c0, c1, r0, r1, func(c *cell, _, _ int) { c.bg = st.overlay })
		case scene.KindBorder:
			g.fill(c0, c1, r0, r1, func(c *cell, col, row int) {
				if c.r == '■' || c.r == '●' {
					return
				}
				if ch, ok := outlineRune(heavyBox, col, row, c0, c1, r0, r1); ok {
					c.r = ch
					c.fg = st.accent
				}
			})
		case scene.KindHandle:
			ch := '■'
			if d.Radius*2 >= math.Min(r.W, r.H) {
				ch = '●'
			}
			g.fill(c0, c1, r0, r1, func(c *cell, _, _ int) {
				c.r = ch
				c.fg = st.accent
			})
		}
	}
	return g
}

// render turns the grid into styled lines, one lipgloss render per run of
// cells sharing colors.
func (g *grid) render() string {
	cache := make(map[[2]string]lipgloss.Style)
	style := func(fg, bg string) lipgloss.Style {
		k := [2]string{fg, bg}
		s, ok := cache[k]
		if !ok {
			s = lipgloss.NewStyle().Background(lipgloss.Color(bg))
			if fg != "" {
				s = s.Foreground(lipgloss.Color(fg))
			}
			cache[k] = s
		}
		return s
	}
	var b strings.Builder
	for row := 0; row < g.rows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		var run []rune
		var fg, bg string
		flush := func() {
			if len(run) > 0 {
				b.WriteString(style(fg, bg).Render(string(run)))
				run = run[:0]
			}
		}
		for col := 0; col < g.cols; col++ {
			c := g.cells[row*g.cols+col]
			if c.fg != fg || c.bg != bg {
				flush()
				fg, bg = c.fg, c.bg
			}
			run = append(run, c.r)
		}
		flush()
	}
	return b.String()
}

// plain returns the grid runes without styling.
func (g *grid) plain() string {
	var b strings.Builder
	for row := 0; row < g.rows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		for col := 0; col < g.cols; col++ {
			b.WriteRune(g.cells[row*g.cols+col].r)
		}
	}
	return b.String()
}
