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
	"math"
	"slices"

	"gocanvas/internal/domain"
	"gocanvas/internal/vector"
)

// Policy decides what a resize writes when an edge crosses its opposite.
type Policy string

const (
	// PolicyNormalize writes the standardized rect; width and height stay non-negative.
	PolicyNormalize Policy = "normalize"
	// PolicyClamp stops a controlled edge MinSize short of the opposite edge.
	PolicyClamp Policy = "clamp"
	// PolicyPreserve writes negative sizes unchanged.
	PolicyPreserve Policy = "preserve"
)

// Policies lists the accepted policy names.
func Policies() []Policy { return []Policy{PolicyNormalize, PolicyClamp, PolicyPreserve} }

func ParsePolicy(s string) (Policy, error) {
	p := Policy(s)
	if slices.Contains(Policies(), p) {
		return p, nil
	}
	return "", fmt.Errorf("unknown resize policy %q", s)
}

// Options tune gesture recognition and resizing.
type Options struct {
	// BodyMinDistance is the travel a body gesture needs before it counts as a drag.
	// Shorter gestures are taps and toggle selection.
	BodyMinDistance float64
	// HandleMinDistance is the same threshold for handles; 0 activates on pointer-down.
	HandleMinDistance float64
	Policy            Policy
	MinSize           float64
	// Anchors are the handles that accept gestures.
	Anchors []domain.Anchor
}

func DefaultOptions() Options {
	return Options{
		BodyMinDistance:   2,
		HandleMinDistance: 0,
		Policy:            PolicyNormalize,
		Anchors:           domain.CornerAnchors(),
	}
}

// AnchorEnabled reports whether gestures on handle a are accepted.
func (o Options) AnchorEnabled(a domain.Anchor) bool { return slices.Contains(o.Anchors, a) }

func (o Options) minDistance(p Part) float64 {
	if p == PartHandle {
		return o.HandleMinDistance
	}
	return o.BodyMinDistance
}

// resize builds the frame for working edges (raw, in the order the session
// tracks them) according to the policy. For clamp the controlled flags say
// which edges the pointer moves.
func (o Options) resize(e edges, a domain.Anchor) vector.Rect {
	switch o.Policy {
	case PolicyPreserve:
		return vector.FromEdges(e.left, e.top, e.right, e.bottom)
	case PolicyClamp:
		min := math.Max(0, o.MinSize)
		cl, cr, ct, cb := a.Controls()
		if cl && e.left > e.right-min {
			e.left = e.right - min
		}
		if cr && e.right < e.left+min {
			e.right = e.left + min
		}
		if ct && e.top > e.bottom-min {
			e.top = e.bottom - min
		}
		if cb && e.bottom < e.top+min {
			e.bottom = e.top + min
		}
		return vector.FromEdges(e.left, e.top, e.right, e.bottom)
	default:
		return vector.FromEdges(e.left, e.top, e.right, e.bottom).Standardized()
	}
}
