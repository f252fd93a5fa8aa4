/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package export paints scene drawables to SVG, PNG and PDF. It is the
// headless render host used by the render command.
package export

import (
	"fmt"
	"strings"

	"gocanvas/internal/scene"
	"gocanvas/internal/vector"
)

// Options describe the output surface. Width and Height are in design units.
//
//nolint:revive // keep options grouped and explicit for clarity
type Options struct {
	Width      float64
	Height     float64
	Background vector.Color
	// Scale is pixels per design unit for PNG output (default 1).
	Scale float64
	// Labels writes the element id on each element body.
	Labels bool
	Title  string
}

func DefaultOptions() Options {
	return Options{Width: 540, Height: 720, Background: vector.White, Scale: 1, Labels: true, Title: "gocanvas"}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Width <= 0 {
		o.Width = d.Width
	}
	if o.Height <= 0 {
		o.Height = d.Height
	}
	if o.Scale <= 0 {
		o.Scale = 1
	}
	if o.Background == (vector.Color{}) {
		o.Background = d.Background
	}
	if o.Title == "" {
		o.Title = d.Title
	}
	return o
}

// Format is an output file type.
type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
	FormatPDF Format = "pdf"
)

// ParseFormats parses a comma separated list such as "svg,png".
// Duplicates are dropped; an empty list is an error.
func ParseFormats(s string) ([]Format, error) {
	var out []Format
	seen := map[Format]bool{}
	for _, part := range strings.Split(s, ",") {
		f := Format(strings.ToLower(strings.TrimSpace(part)))
		if f == "" {
			continue
		}
		switch f {
		case FormatSVG, FormatPNG, FormatPDF:
		default:
			return nil, fmt.Errorf("unknown format %q (want svg, png or pdf)", part)
		}
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no output format given")
	}
	return out, nil
}

func label(d scene.Drawable) (string, bool) {
	if d.Kind != scene.KindElement {
		return "", false
	}
	return fmt.Sprintf("#%d", d.Element), true
}
