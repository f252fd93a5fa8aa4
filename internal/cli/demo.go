/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"gocanvas/internal/domain"
	"gocanvas/internal/drag"
	"gocanvas/internal/store"
	"gocanvas/internal/vector"
)

func newDemoCmd() *cobra.Command {
	var steps int
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run a body drag and a handle resize through the gesture engine",
		Long: `Replay two gestures on the seed canvas with default settings and print the
frames: a body drag of element 1 from (100,300) to (120,330) and a top-leading
handle drag from (50,220) to (70,250).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDemo(cmd.OutOrStdout(), steps)
		},
	}
	cmd.Flags().IntVar(&steps, "steps", 1, "pointer moves between press and release")
	return cmd
}

type demoGesture struct {
	title    string
	target   drag.Target
	from, to vector.Pt
}

func runDemo(w io.Writer, steps int) error {
	steps = max(steps, 1)
	gestures := []demoGesture{
		{"body drag", drag.Body(1), vector.Pt{X: 100, Y: 300}, vector.Pt{X: 120, Y: 330}},
		{"handle drag", drag.Handle(1, domain.TopLeading), vector.Pt{X: 50, Y: 220}, vector.Pt{X: 70, Y: 250}},
	}
	for i, g := range gestures {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if err := replay(w, g, steps); err != nil {
			return fmt.Errorf("%s: %w", g.title, err)
		}
	}
	return nil
}

// replay runs g on a fresh seed canvas, printing the frame after every event.
func replay(w io.Writer, g demoGesture, steps int) error {
	st := store.NewSeeded()
	eng := drag.NewEngine(st, drag.DefaultOptions())
	id := g.target.Element
	show := func(label string) error {
		f, err := st.Frame(id)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "  %-7s %s\n", label, describe(f))
		return nil
	}

	fmt.Fprintf(w, "%s  %s  (%g,%g) -> (%g,%g)\n", g.title, g.target, g.from.X, g.from.Y, g.to.X, g.to.Y)
	if err := show("before"); err != nil {
		return err
	}
	const ptr drag.PointerID = 0
	if err := eng.GestureBegin(ptr, g.from, g.target); err != nil {
		return err
	}
	d := g.to.Sub(g.from)
	for s := 1; s < steps; s++ {
		k := float64(s) / float64(steps)
		if err := eng.GestureChange(ptr, g.from.Add(vector.Pt{X: d.X * k, Y: d.Y * k})); err != nil {
			return err
		}
		if err := show(fmt.Sprintf("move %d", s)); err != nil {
			return err
		}
	}
	if err := eng.GestureEnd(ptr, g.to); err != nil {
		return err
	}
	if err := show("after"); err != nil {
		return err
	}
	sel, ok := st.Selected()
	fmt.Fprintf(w, "  %-7s %v\n", "select", selection(sel, ok))
	return nil
}

func describe(f vector.Rect) string {
	return fmt.Sprintf("x=%g y=%g w=%g h=%g  (minX=%g minY=%g maxX=%g maxY=%g)",
		f.X, f.Y, f.W, f.H, f.MinX(), f.MinY(), f.MaxX(), f.MaxY())
}

func selection(id domain.ElementID, ok bool) string {
	if !ok {
		return "none"
	}
	return fmt.Sprintf("element %d", id)
}
