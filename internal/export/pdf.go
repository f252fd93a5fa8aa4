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
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"gocanvas/internal/scene"
	"gocanvas/internal/vector"
	"gocanvas/internal/version"
)

// WritePDF writes a single page PDF sized to the canvas; one design unit is one point.
// Page origin is top-left like the canvas.
func WritePDF(w io.Writer, ds []scene.Drawable, opt Options) error {
	opt = opt.withDefaults()
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: opt.Width, Ht: opt.Height},
	})
	pdf.SetTitle(opt.Title, true)
	pdf.SetCreator("gocanvas "+version.String(), true)
	pdf.SetFont("Helvetica", "", 14)
	pdf.AddPage()

	setFillColor(pdf, opt.Background)
	pdf.Rect(0, 0, opt.Width, opt.Height, "F")

	for _, d := range ds {
		if d.Shadow.Enabled {
			sh := d.Rect.Offset(vector.Pt{Y: d.Shadow.OffsetY})
			fillPDFPath(pdf, vector.RoundedRectPath(sh, d.Radius), d.Shadow.Color)
		}
		if d.Fill.Enabled {
			fillPDFPath(pdf, vector.RoundedRectPath(d.Rect, d.Radius), d.Fill.Color)
		}
		if d.Stroke.Enabled && d.Stroke.Width > 0 {
			setDrawColor(pdf, d.Stroke.Color)
			pdf.SetAlpha(float64(d.Stroke.Color.A)/255, "Normal")
			pdf.SetLineWidth(d.Stroke.Width)
			pdf.Rect(d.Rect.X, d.Rect.Y, d.Rect.W, d.Rect.H, "D")
		}
		if s, ok := label(d); ok && opt.Labels {
			pdf.SetAlpha(1, "Normal")
			pdf.SetTextColor(255, 255, 255)
			pdf.Text(d.Rect.X+12, d.Rect.Y+24, s)
		}
	}
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("build pdf: %w", err)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func fillPDFPath(pdf *gofpdf.Fpdf, p vector.Path, c vector.Color) {
	setFillColor(pdf, c)
	pdf.SetAlpha(float64(c.A)/255, "Normal")
	for _, cmd := range p.Cmds {
		a := cmd.Data
		switch cmd.Op {
		case vector.MoveTo:
			pdf.MoveTo(a[0], a[1])
		case vector.LineTo:
			pdf.LineTo(a[0], a[1])
		case vector.CubicTo:
			pdf.CurveBezierCubicTo(a[0], a[1], a[2], a[3], a[4], a[5])
		case vector.Close:
			pdf.ClosePath()
		}
	}
	pdf.DrawPath("F")
}

func setDrawColor(pdf *gofpdf.Fpdf, c vector.Color) {
	pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
}

func setFillColor(pdf *gofpdf.Fpdf, c vector.Color) {
	pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
}
