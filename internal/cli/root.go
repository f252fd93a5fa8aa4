/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package cli wires the gocanvas command tree: the terminal and desktop
// hosts, the headless render host, the gesture demo and config tooling.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"gocanvas/internal/config"
	applog "gocanvas/internal/log"
	"gocanvas/internal/store"
)

// app is the state shared by all commands of one invocation.
type app struct {
	configPath string
	logLevel   string

	mgr *config.Manager
	cfg config.AppConfig
	log *slog.Logger
}

// NewRootCmd builds the command tree. Without a subcommand it starts the
// terminal host.
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "gocanvas",
		Short: "Drag and resize rectangles on a canvas",
		Long: `gocanvas is a small design canvas: overlapping rounded rectangles that can be
selected, moved by dragging their body and resized from their corner handles.

Run without arguments to open the terminal editor. Use 'gocanvas ui' for the
desktop editor (built with -tags fyne) and 'gocanvas render' to export the
canvas as SVG, PNG or PDF.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = applog.Close()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runTUI(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default: per-user config dir, or $"+config.EnvConfig+")")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level override: debug, info, warn or error")

	root.AddCommand(
		newTUICmd(a),
		newUICmd(a),
		newRenderCmd(a),
		newDemoCmd(),
		newConfigCmd(a),
		newVersionCmd(),
	)
	return root
}

// skipInit lists commands that must work without a readable config.
func skipInit(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "help", "completion", "version", "schema", "validate":
		return true
	}
	return false
}

func (a *app) init(cmd *cobra.Command) error {
	if skipInit(cmd) {
		applog.Init(applog.Options{Level: "warn", Console: cmd.ErrOrStderr()})
		return nil
	}
	mgr, err := config.NewManager(a.configPath)
	if err != nil {
		return err
	}
	if err := mgr.Load(); err != nil {
		return err
	}
	a.mgr = mgr
	a.cfg = mgr.Get()

	opts := a.cfg.LogOptions()
	if a.logLevel != "" {
		opts.Level = a.logLevel
	}
	opts.Console = cmd.ErrOrStderr()
	// The terminal host owns the screen; logs go to the file sink only.
	if cmd == cmd.Root() || cmd.Name() == "tui" {
		opts.Quiet = true
	}
	applog.Init(opts)
	a.log = applog.WithComponent("cli")
	a.log.Debug("config loaded", slog.String("path", mgr.Path()), slog.Bool("from_file", mgr.FromFile()))
	return nil
}

// newStore seeds a store with the configured elements.
func (a *app) newStore() (*store.ElementStore, error) {
	st, err := store.New(a.cfg.Elements())
	if err != nil {
		return nil, fmt.Errorf("canvas.elements: %w", err)
	}
	return st, nil
}

// Execute runs the command tree and returns the process exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(stderr, "Error:", err)
			return 1
		}
	}
	return 0
}

// Main is Execute over the process arguments and standard streams.
func Main(ctx context.Context) int {
	return Execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
}
