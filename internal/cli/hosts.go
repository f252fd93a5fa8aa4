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
	"github.com/spf13/cobra"

	"gocanvas/internal/tui"
	"gocanvas/internal/ui"
)

func newTUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the terminal editor (default)",
		Long: `Open the canvas in the terminal. Click an element to select it, drag its body
to move it and drag a corner handle to resize it. Arrow keys nudge the
selection, tab cycles layers, esc cancels a drag or clears the selection.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error { return a.runTUI(cmd) },
	}
}

func (a *app) runTUI(cmd *cobra.Command) error {
	st, err := a.newStore()
	if err != nil {
		return err
	}
	return tui.Run(cmd.Context(), st, a.cfg, a.mgr)
}

func newUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Open the desktop editor (requires a build with -tags fyne)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := a.newStore()
			if err != nil {
				return err
			}
			return ui.Run(cmd.Context(), st, a.cfg, a.mgr)
		},
	}
}
