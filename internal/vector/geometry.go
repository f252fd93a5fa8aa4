/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package vector

// Basic 2D geometry for the canvas. Coordinates are float64 in a y-down space.

import "math"

// Pt is a 2D point (or vector).
type Pt struct{ X, Y float64 }

func (p Pt) Add(q Pt) Pt { return Pt{p.X + q.X, p.Y + q.Y} }
func (p Pt) Sub(q Pt) Pt { return Pt{p.X - q.X, p.Y - q.Y} }

// Len returns the euclidean length of p treated as a vector.
func (p Pt) Len() float64 { return math.Hypot(p.X, p.Y) }

// Dist returns the distance between p and q.
func (p Pt) Dist(q Pt) float64 { return q.Sub(p).Len() }

// Rect is an axis-aligned rectangle defined by origin and size.
// W and H may be negative; Left/Right/Top/Bottom report the raw edges
// (origin and origin+size) while MinX/MaxX/MinY/MaxY report standardized ones.
type Rect struct {
	X, Y float64
	W, H float64
}

func R(x, y, w, h float64) Rect { return Rect{X: x, Y: y, W: w, H: h} }

// FromEdges builds a rect from raw edges without reordering them.
func FromEdges(left, top, right, bottom float64) Rect {
	return Rect{X: left, Y: top, W: right - left, H: bottom - top}
}

func (r Rect) Left() float64   { return r.X }
func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Top() float64    { return r.Y }
func (r Rect) Bottom() float64 { return r.Y + r.H }

func (r Rect) MinX() float64 { return math.Min(r.X, r.X+r.W) }
func (r Rect) MaxX() float64 { return math.Max(r.X, r.X+r.W) }
func (r Rect) MinY() float64 { return math.Min(r.Y, r.Y+r.H) }
func (r Rect) MaxY() float64 { return math.Max(r.Y, r.Y+r.H) }
func (r Rect) MidX() float64 { return r.X + r.W/2 }
func (r Rect) MidY() float64 { return r.Y + r.H/2 }

func (r Rect) Origin() Pt { return Pt{r.X, r.Y} }
func (r Rect) Center() Pt { return Pt{r.MidX(), r.MidY()} }

// Negative reports whether either dimension is below zero.
func (r Rect) Negative() bool { return r.W < 0 || r.H < 0 }

// Standardized returns an equivalent rect with non-negative width and height.
func (r Rect) Standardized() Rect {
	return Rect{X: r.MinX(), Y: r.MinY(), W: math.Abs(r.W), H: math.Abs(r.H)}
}

// Offset translates the rect by d.
func (r Rect) Offset(d Pt) Rect { return Rect{X: r.X + d.X, Y: r.Y + d.Y, W: r.W, H: r.H} }

// CenteredAt returns a rect of size w×h centered on c.
func CenteredAt(c Pt, w, h float64) Rect { return Rect{X: c.X - w/2, Y: c.Y - h/2, W: w, H: h} }

// Contains tests p against the standardized rect, edges inclusive.
func (r Rect) Contains(p Pt) bool {
	return p.X >= r.MinX() && p.Y >= r.MinY() && p.X <= r.MaxX() && p.Y <= r.MaxY()
}

// RoundedContains tests p against the standardized rect with corners rounded by radius.
func (r Rect) RoundedContains(p Pt, radius float64) bool {
	s := r.Standardized()
	if !s.Contains(p) {
		return false
	}
	radius = math.Min(radius, math.Min(s.W, s.H)/2)
	if radius <= 0 {
		return true
	}
	// inside the cross formed by the core strips
	if (p.X >= s.X+radius && p.X <= s.X+s.W-radius) || (p.Y >= s.Y+radius && p.Y <= s.Y+s.H-radius) {
		return true
	}
	cx := []float64{s.X + radius, s.X + s.W - radius}
	cy := []float64{s.Y + radius, s.Y + s.H - radius}
	r2 := radius * radius
	for _, x := range cx {
		for _, y := range cy {
			dx := p.X - x
			dy := p.Y - y
			if dx*dx+dy*dy <= r2 {
				return true
			}
		}
	}
	return false
}

// FloatRound rounds v to n decimal places deterministically.
func FloatRound(v float64, places int) float64 {
	if places < 0 {
		return v
	}
	pow := math.Pow(10, float64(places))
	return math.Round(v*pow) / pow
}
