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
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	xvector "golang.org/x/image/vector"

	"gocanvas/internal/scene"
	"gocanvas/internal/vector"
)

// Rasterize paints the drawables into a new RGBA image with anti-aliased edges.
// Shadows are drawn as an offset tint without blur.
func Rasterize(ds []scene.Drawable, opt Options) *image.RGBA {
	opt = opt.withDefaults()
	pxW := int(math.Ceil(opt.Width * opt.Scale))
	pxH := int(math.Ceil(opt.Height * opt.Scale))
	img := image.NewRGBA(image.Rect(0, 0, pxW, pxH))
	draw.Draw(img, img.Bounds(), image.NewUniform(toNRGBA(opt.Background)), image.Point{}, draw.Src)

	ras := xvector.NewRasterizer(pxW, pxH)
	for _, d := range ds {
		if d.Shadow.Enabled {
			sh := d.Rect.Offset(vector.Pt{Y: d.Shadow.OffsetY})
			fillPath(img, ras, vector.RoundedRectPath(sh, d.Radius), opt.Scale, d.Shadow.Color)
		}
		if d.Fill.Enabled {
			fillPath(img, ras, vector.RoundedRectPath(d.Rect, d.Radius), opt.Scale, d.Fill.Color)
		}
		if d.Stroke.Enabled && d.Stroke.Width > 0 {
			fillPath(img, ras, vector.StrokeRectPath(d.Rect, d.Stroke.Width), opt.Scale, d.Stroke.Color)
		}
		if s, ok := label(d); ok && opt.Labels {
			dr := &font.Drawer{
				Dst:  img,
				Src:  image.NewUniform(color.White),
				Face: basicfont.Face7x13,
				Dot:  fixed.P(int((d.Rect.X+12)*opt.Scale), int((d.Rect.Y+24)*opt.Scale)),
			}
			dr.DrawString(s)
		}
	}
	return img
}

// WritePNG rasterizes the drawables and encodes them as PNG.
func WritePNG(w io.Writer, ds []scene.Drawable, opt Options) error {
	return png.Encode(w, Rasterize(ds, opt))
}

func fillPath(dst *image.RGBA, ras *xvector.Rasterizer, p vector.Path, scale float64, c vector.Color) {
	b := dst.Bounds()
	ras.Reset(b.Dx(), b.Dy())
	f := func(v float64) float32 { return float32(v * scale) }
	for _, cmd := range p.Cmds {
		a := cmd.Data
		switch cmd.Op {
		case vector.MoveTo:
			ras.MoveTo(f(a[0]), f(a[1]))
		case vector.LineTo:
			ras.LineTo(f(a[0]), f(a[1]))
		case vector.CubicTo:
			ras.CubeTo(f(a[0]), f(a[1]), f(a[2]), f(a[3]), f(a[4]), f(a[5]))
		case vector.Close:
			ras.ClosePath()
		}
	}
	ras.Draw(dst, b, image.NewUniform(toNRGBA(c)), image.Point{})
}

func toNRGBA(c vector.Color) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}
