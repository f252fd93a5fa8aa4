/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package drag

import (
	"fmt"

	"github.com/google/uuid"

	"gocanvas/internal/domain"
	"gocanvas/internal/vector"
)

// Part is the piece of an element a gesture started on.
type Part uint8

const (
	PartBody Part = iota
	PartHandle
)

func (p Part) String() string {
	if p == PartHandle {
		return "handle"
	}
	return "body"
}

// Target names what a pointer went down on.
type Target struct {
	Element domain.ElementID
	Part    Part
	Anchor  domain.Anchor // only meaningful for PartHandle
}

func Body(id domain.ElementID) Target { return Target{Element: id, Part: PartBody} }

func Handle(id domain.ElementID, a domain.Anchor) Target {
	return Target{Element: id, Part: PartHandle, Anchor: a}
}

func (t Target) String() string {
	if t.Part == PartHandle {
		return fmt.Sprintf("element %d handle %s", t.Element, t.Anchor)
	}
	return fmt.Sprintf("element %d body", t.Element)
}

type edges struct{ left, top, right, bottom float64 }

func rawEdges(r vector.Rect) edges {
	return edges{left: r.Left(), top: r.Top(), right: r.Right(), bottom: r.Bottom()}
}

// crossed maps anchor a onto the standardized frame once its controlled
// edges have passed their opposites.
func (e edges) crossed(a domain.Anchor) domain.Anchor {
	if e.left > e.right {
		switch a.H {
		case domain.Leading:
			a.H = domain.Trailing
		case domain.Trailing:
			a.H = domain.Leading
		}
	}
	if e.top > e.bottom {
		switch a.V {
		case domain.Top:
			a.V = domain.Bottom
		case domain.Bottom:
			a.V = domain.Top
		}
	}
	return a
}

// Session is the transient state of one gesture.
type Session struct {
	ID     uuid.UUID
	Target Target
	// Offset is the pointer minus the reference point (frame center for the
	// body, the handle position for handles) at pointer-down.
	Offset  vector.Pt
	Start   vector.Pt
	Travel  float64
	Active  bool
	Initial vector.Rect

	working edges
}

// Reference returns the point the offset is measured from for target t on frame f.
func Reference(t Target, f vector.Rect) vector.Pt {
	if t.Part == PartHandle {
		return domain.HandlePosition(f, t.Anchor)
	}
	return f.Center()
}
