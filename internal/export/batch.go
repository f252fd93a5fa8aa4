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
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"gocanvas/internal/scene"
)

// Write renders ds in format f to w.
func Write(w io.Writer, f Format, ds []scene.Drawable, opt Options) error {
	switch f {
	case FormatSVG:
		return WriteSVG(w, ds, opt)
	case FormatPNG:
		return WritePNG(w, ds, opt)
	case FormatPDF:
		return WritePDF(w, ds, opt)
	}
	return fmt.Errorf("unknown format %q", f)
}

// WriteFile renders ds in format f to path, creating parent directories.
func WriteFile(path string, f Format, ds []scene.Drawable, opt Options) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", f, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	return Write(out, f, ds, opt)
}

// Batch writes <dir>/<base>.<format> for every format concurrently. The
// returned paths follow the order of formats. The drawables are only read.
func Batch(ctx context.Context, dir, base string, formats []Format, ds []scene.Drawable, opt Options) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure out dir: %w", err)
	}
	paths := make([]string, len(formats))
	g, ctx := errgroup.WithContext(ctx)
	for i, f := range formats {
		paths[i] = filepath.Join(dir, base+"."+string(f))
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return WriteFile(paths[i], f, ds, opt)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}
