//go:build !fyne

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package ui

import (
	"context"
	"fmt"

	"gocanvas/internal/config"
	"gocanvas/internal/store"
)

// Run starts the desktop host. In non-fyne builds this is a stub so CI stays
// headless; the terminal host is the default.
func Run(_ context.Context, _ *store.ElementStore, _ config.AppConfig, _ *config.Manager) error {
	return fmt.Errorf("desktop UI not built in this binary. Rebuild with: go build -tags fyne ./cmd/gocanvas, or use: gocanvas tui")
}
