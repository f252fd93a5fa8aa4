/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package export

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"gocanvas/internal/scene"
	"gocanvas/internal/vector"
)

// WriteSVG writes the drawables as an SVG document in design units.
func WriteSVG(w io.Writer, ds []scene.Drawable, opt Options) error {
	opt = opt.withDefaults()
	var buf bytes.Buffer
	var werr error
	wf := func(format string, args ...any) {
		if werr != nil {
			return
		}
		_, werr = fmt.Fprintf(&buf, format, args...)
	}

	pxW := int(math.Ceil(opt.Width * opt.Scale))
	pxH := int(math.Ceil(opt.Height * opt.Scale))
	wf("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	wf("<svg xmlns=\"http://www.w3.org/2000/svg\" version=\"1.1\" width=\"%dpx\" height=\"%dpx\" viewBox=\"0 0 %g %g\">\n", pxW, pxH, opt.Width, opt.Height)
	wf("  <title>%s</title>\n", escText(opt.Title))

	shadows := map[vector.Shadow]string{}
	var order []vector.Shadow
	for _, d := range ds {
		if d.Shadow.Enabled {
			if _, ok := shadows[d.Shadow]; !ok {
				shadows[d.Shadow] = fmt.Sprintf("shadow%d", len(order))
				order = append(order, d.Shadow)
			}
		}
	}
	if len(order) > 0 {
		wf("  <defs>\n")
		for _, s := range order {
			id := shadows[s]
			wf("    <filter id=\"%s\" x=\"-50%%\" y=\"-50%%\" width=\"200%%\" height=\"200%%\">\n", id)
			wf("      <feDropShadow dx=\"0\" dy=\"%g\" stdDeviation=\"%g\" flood-color=\"%s\" flood-opacity=\"%s\"/>\n",
				s.OffsetY, s.Radius/2, s.Color.Hex(), opacity(s.Color))
			wf("    </filter>\n")
		}
		wf("  </defs>\n")
	}
	wf("  <rect x=\"0\" y=\"0\" width=\"%g\" height=\"%g\" fill=\"%s\"/>\n", opt.Width, opt.Height, opt.Background.Hex())

	for _, d := range ds {
		r := d.Rect
		attrs := fmt.Sprintf("x=\"%g\" y=\"%g\" width=\"%g\" height=\"%g\"", r.X, r.Y, r.W, r.H)
		if rad := clampRadius(r, d.Radius); rad > 0 {
			attrs += fmt.Sprintf(" rx=\"%g\" ry=\"%g\"", rad, rad)
		}
		if d.Fill.Enabled {
			attrs += fmt.Sprintf(" fill=\"%s\"", d.Fill.Color.Hex())
			if d.Fill.Color.A < 255 {
				attrs += fmt.Sprintf(" fill-opacity=\"%s\"", opacity(d.Fill.Color))
			}
		} else {
			attrs += " fill=\"none\""
		}
		if d.Stroke.Enabled {
			attrs += fmt.Sprintf(" stroke=\"%s\" stroke-width=\"%g\"", d.Stroke.Color.Hex(), d.Stroke.Width)
		}
		if d.Shadow.Enabled {
			attrs += fmt.Sprintf(" filter=\"url(#%s)\"", shadows[d.Shadow])
		}
		wf("  <rect data-kind=\"%s\" data-element=\"%d\" %s/>\n", d.Kind, d.Element, attrs)
		if s, ok := label(d); ok && opt.Labels {
			wf("  <text x=\"%g\" y=\"%g\" font-family=\"Helvetica, Arial, sans-serif\" font-size=\"14\" fill=\"#ffffff\">%s</text>\n",
				r.X+12, r.Y+24, escText(s))
		}
	}
	wf("</svg>\n")
	if werr != nil {
		return fmt.Errorf("build svg: %w", werr)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func opacity(c vector.Color) string {
	return fmt.Sprintf("%g", vector.FloatRound(float64(c.A)/255, 3))
}

func clampRadius(r vector.Rect, radius float64) float64 {
	return math.Max(0, math.Min(radius, math.Min(r.W, r.H)/2))
}

func escText(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch ch {
		case '&':
			out = append(out, "&amp;"...)
		case '<':
			out = append(out, "&lt;"...)
		case '>':
			out = append(out, "&gt;"...)
		default:
			out = append(out, ch)
		}
	}
	return string(out)
}
