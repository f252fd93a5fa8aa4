/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package tui

import (
	"context"
	"errors"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"gocanvas/internal/config"
	applog "gocanvas/internal/log"
	"gocanvas/internal/store"
)

// Run starts the terminal host on st and blocks until the user quits or ctx
// is cancelled. When mgr is non-nil its file is watched and reloads reach the
// model as ConfigMsg.
func Run(ctx context.Context, st *store.ElementStore, cfg config.AppConfig, mgr *config.Manager) error {
	m, err := New(st, cfg)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
	)
	l := applog.WithComponent("tui")
	if mgr != nil {
		mgr.OnConfigChange(func(c config.AppConfig) { p.Send(ConfigMsg{Config: c}) })
		if err := mgr.Watch(); err != nil {
			if !errors.Is(err, config.ErrNoConfigFile) {
				return err
			}
			l.Debug("config not watched", slog.Any("err", err))
		}
	}
	l.Info("terminal host started", slog.Int("elements", st.Len()))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}
