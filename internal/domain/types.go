/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package domain

import (
	"fmt"

	"gocanvas/internal/vector"
)

// This file defines the canvas data model: elements, their ids and the
// anchor model that decides which edges a resize handle controls.

// ElementID identifies an element for its whole lifetime.
type ElementID int

// Element is a rectangle on the canvas. The frame is in design units, y-down.
type Element struct {
	ID    ElementID   `json:"id"`
	Frame vector.Rect `json:"frame"`
}

// HEdge selects the horizontal reference of an anchor.
type HEdge uint8

const (
	HCenter HEdge = iota
	Leading
	Trailing
)

// VEdge selects the vertical reference of an anchor.
type VEdge uint8

const (
	VCenter VEdge = iota
	Top
	Bottom
)

// Anchor is one of the eight handle positions around a frame.
// The zero value (center, center) is not a handle.
type Anchor struct {
	H HEdge
	V VEdge
}

var (
	TopLeading     = Anchor{Leading, Top}
	TopCenter      = Anchor{HCenter, Top}
	TopTrailing    = Anchor{Trailing, Top}
	CenterLeading  = Anchor{Leading, VCenter}
	CenterTrailing = Anchor{Trailing, VCenter}
	BottomLeading  = Anchor{Leading, Bottom}
	BottomCenter   = Anchor{HCenter, Bottom}
	BottomTrailing = Anchor{Trailing, Bottom}
)

var anchorNames = map[Anchor]string{
	TopLeading:     "top-leading",
	TopCenter:      "top",
	TopTrailing:    "top-trailing",
	CenterLeading:  "leading",
	CenterTrailing: "trailing",
	BottomLeading:  "bottom-leading",
	BottomCenter:   "bottom",
	BottomTrailing: "bottom-trailing",
}

// AllAnchors lists the eight handles clockwise from the top-leading corner.
func AllAnchors() []Anchor {
	return []Anchor{TopLeading, TopCenter, TopTrailing, CenterTrailing, BottomTrailing, BottomCenter, BottomLeading, CenterLeading}
}

// CornerAnchors is the default active handle set.
func CornerAnchors() []Anchor {
	return []Anchor{TopLeading, TopTrailing, BottomLeading, BottomTrailing}
}

// Valid reports whether a is one of the eight handle anchors.
func (a Anchor) Valid() bool {
	_, ok := anchorNames[a]
	return ok
}

// Controls reports which raw edges a resize through a moves.
func (a Anchor) Controls() (left, right, top, bottom bool) {
	return a.H == Leading, a.H == Trailing, a.V == Top, a.V == Bottom
}

func (a Anchor) String() string {
	if n, ok := anchorNames[a]; ok {
		return n
	}
	return "center"
}

// ParseAnchor maps a kebab-case name (as produced by String) back to an anchor.
func ParseAnchor(s string) (Anchor, error) {
	for a, n := range anchorNames {
		if n == s {
			return a, nil
		}
	}
	return Anchor{}, fmt.Errorf("unknown anchor %q", s)
}

// ParseAnchors parses a list of names, rejecting duplicates.
func ParseAnchors(names []string) ([]Anchor, error) {
	out := make([]Anchor, 0, len(names))
	seen := make(map[Anchor]bool, len(names))
	for _, n := range names {
		a, err := ParseAnchor(n)
		if err != nil {
			return nil, err
		}
		if seen[a] {
			return nil, fmt.Errorf("duplicate anchor %q", n)
		}
		seen[a] = true
		out = append(out, a)
	}
	return out, nil
}

// HandlePosition returns the point of frame a handle at anchor sits on,
// using raw edges so a negative frame keeps its handles attached to the
// edges they control.
func HandlePosition(frame vector.Rect, a Anchor) vector.Pt {
	var p vector.Pt
	switch a.H {
	case Leading:
		p.X = frame.Left()
	case Trailing:
		p.X = frame.Right()
	default:
		p.X = frame.MidX()
	}
	switch a.V {
	case Top:
		p.Y = frame.Top()
	case Bottom:
		p.Y = frame.Bottom()
	default:
		p.Y = frame.MidY()
	}
	return p
}

// SeedElements returns the three overlapping rectangles the canvas starts with.
func SeedElements() []Element {
	return []Element{
		{ID: 1, Frame: vector.R(50, 220, 190, 250)},
		{ID: 2, Frame: vector.R(100, 270, 190, 250)},
		{ID: 3, Frame: vector.R(150, 320, 190, 250)},
	}
}
