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
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"gocanvas/internal/config"
	"gocanvas/internal/version"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and manage the configuration file",
	}
	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := a.mgr.Path()
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := config.Save(path, config.Defaults()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Wrote", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "path",
			Short: "Print the configuration file path",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				state := "not found, using defaults"
				if a.mgr.FromFile() {
					state = "loaded"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", a.mgr.Path(), state)
				return nil
			},
		},
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective configuration as YAML",
			Long:  "Print defaults merged with the file and GCV_ environment overrides. Overridden keys are listed at the end.",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				b, err := config.Marshal(a.cfg)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprint(out, string(b))
				for _, key := range overridableKeys() {
					if name, ok := config.EnvOverrideFor(key); ok {
						fmt.Fprintf(out, "# %s overridden by %s\n", key, name)
					}
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "schema",
			Short: "Print the JSON schema of the configuration file",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				b, err := config.SchemaJSON()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(b))
				return nil
			},
		},
		&cobra.Command{
			Use:   "validate [file]",
			Short: "Check a configuration file against the schema",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				path := a.configPath
				if len(args) == 1 {
					path = args[0]
				}
				if path == "" {
					p, err := config.ConfigPath()
					if err != nil {
						return err
					}
					path = p
				}
				if err := validateFile(path); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), path, "is valid")
				return nil
			},
		},
		initCmd,
	)
	return cmd
}

// validateFile checks the raw document, then the merged settings.
func validateFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%s: %w", path, config.ErrNoConfigFile)
		}
		return err
	}
	var doc map[string]any
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if doc == nil {
		doc = map[string]any{}
	}
	if err := config.ValidateDocument(doc); err != nil {
		return fmt.Errorf("%s:\n%w", path, err)
	}
	mgr, err := config.NewManager(path)
	if err != nil {
		return err
	}
	return mgr.Load()
}

// overridableKeys lists the keys "config show" checks for env overrides.
func overridableKeys() []string {
	return []string{
		"canvas.width", "canvas.height", "canvas.background",
		"gesture.body_min_distance", "gesture.handle_min_distance",
		"resize.policy", "resize.min_size",
		"handles.anchors",
		"tui.units_per_column", "tui.units_per_row",
		"logging.level", "logging.format", "logging.source", "logging.file",
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "gocanvas", version.String())
		},
	}
}
