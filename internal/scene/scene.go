/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package scene turns the store contents and the gesture state into an ordered
// list of drawables, and maps pointer positions back to gesture targets.
// Hosts (terminal, desktop, export) only need to paint the drawables.
package scene

import (
	"fmt"

	"gocanvas/internal/domain"
	"gocanvas/internal/drag"
	"gocanvas/internal/store"
	"gocanvas/internal/vector"
)

// Kind tells a renderer what a drawable represents.
type Kind uint8

const (
	KindElement Kind = iota
	KindOverlay
	KindHandle
	KindBorder
)

func (k Kind) String() string {
	switch k {
	case KindElement:
		return "element"
	case KindOverlay:
		return "overlay"
	case KindHandle:
		return "handle"
	case KindBorder:
		return "border"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Drawable is one filled and/or stroked rounded rectangle. Rect is always standardized.
type Drawable struct {
	Kind    Kind
	Element domain.ElementID
	Anchor  domain.Anchor // KindHandle only
	Rect    vector.Rect
	Radius  float64
	Fill    vector.Fill
	Stroke  vector.Stroke
	Shadow  vector.Shadow
	// HitTestable is false for decoration the pointer passes through (the drag overlay).
	HitTestable bool
}

// HandleStyle sizes the resize handles. Drag values apply while the handle is held.
type HandleStyle struct {
	Size       float64
	DragSize   float64
	Radius     float64
	DragRadius float64
	HitSize    float64
	Color      vector.Color
}

// Theme holds the colors and metrics used by Build.
type Theme struct {
	ElementFill    vector.Color
	ElementRadius  float64
	ElementShadow  vector.Shadow
	Accent         vector.Color
	BorderWidth    float64
	OverlayColor   vector.Color
	OverlayOpacity float64
	Handle         HandleStyle
}

func DefaultTheme() Theme {
	return Theme{
		ElementFill:    vector.Black,
		ElementRadius:  15,
		ElementShadow:  vector.Shadow{Radius: 20, OffsetY: 20, Color: vector.Black.WithAlpha(0.33), Enabled: true},
		Accent:         vector.Accent,
		BorderWidth:    4,
		OverlayColor:   vector.Gray,
		OverlayOpacity: 0.2,
		Handle: HandleStyle{
			Size:       12,
			DragSize:   12,
			Radius:     2,
			DragRadius: 25,
			HitSize:    60,
			Color:      vector.Accent,
		},
	}
}

// State is the gesture state the scene reflects. *drag.Engine implements it.
type State interface {
	Dragging(id domain.ElementID) bool
	Resizing(id domain.ElementID) (domain.Anchor, bool)
}

type idle struct{}

func (idle) Dragging(domain.ElementID) bool                  { return false }
func (idle) Resizing(domain.ElementID) (domain.Anchor, bool) { return domain.Anchor{}, false }

// Idle is a State with no gesture in progress.
var Idle State = idle{}

// Build emits, per element in z-order, its body and, for the selected element,
// the drag overlay (while moving), the active handles and the selection border.
func Build(snap store.Snapshot, st State, anchors []domain.Anchor, th Theme) []Drawable {
	if st == nil {
		st = Idle
	}
	out := make([]Drawable, 0, len(snap.Elements)+len(anchors)+2)
	for _, e := range snap.Elements {
		frame := e.Frame.Standardized()
		out = append(out, Drawable{
			Kind:        KindElement,
			Element:     e.ID,
			Rect:        frame,
			Radius:      th.ElementRadius,
			Fill:        vector.Fill{Color: th.ElementFill, Enabled: true},
			Shadow:      th.ElementShadow,
			HitTestable: true,
		})
		if !snap.IsSelected(e.ID) {
			continue
		}
		if st.Dragging(e.ID) {
			out = append(out, Drawable{
				Kind:    KindOverlay,
				Element: e.ID,
				Rect:    frame,
				Fill:    vector.Fill{Color: th.OverlayColor.WithAlpha(th.OverlayOpacity), Enabled: true},
			})
		}
		held, resizing := st.Resizing(e.ID)
		for _, a := range anchors {
			size, radius := th.Handle.Size, th.Handle.Radius
			if resizing && held == a {
				size, radius = th.Handle.DragSize, th.Handle.DragRadius
			}
			out = append(out, Drawable{
				Kind:        KindHandle,
				Element:     e.ID,
				Anchor:      a,
				Rect:        vector.CenteredAt(domain.HandlePosition(e.Frame, a), size, size),
				Radius:      radius,
				Fill:        vector.Fill{Color: th.Handle.Color, Enabled: true},
				HitTestable: true,
			})
		}
		out = append(out, Drawable{
			Kind:    KindBorder,
			Element: e.ID,
			Rect:    frame,
			Stroke:  vector.Stroke{Color: th.Accent, Width: th.BorderWidth, Enabled: true},
		})
	}
	return out
}

// HandleHitRect is the square around a handle that accepts pointer-down.
func HandleHitRect(frame vector.Rect, a domain.Anchor, th Theme) vector.Rect {
	return vector.CenteredAt(domain.HandlePosition(frame, a), th.Handle.HitSize, th.Handle.HitSize)
}

// HitTest finds the gesture target under p, topmost element first. The
// selected element's handles sit above its body and are tested before it.
func HitTest(snap store.Snapshot, anchors []domain.Anchor, th Theme, p vector.Pt) (drag.Target, bool) {
	for i := len(snap.Elements) - 1; i >= 0; i-- {
		e := snap.Elements[i]
		if snap.IsSelected(e.ID) {
			for _, a := range anchors {
				if HandleHitRect(e.Frame, a, th).Contains(p) {
					return drag.Handle(e.ID, a), true
				}
			}
		}
		if e.Frame.RoundedContains(p, th.ElementRadius) {
			return drag.Body(e.ID), true
		}
	}
	return drag.Target{}, false
}
