/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package drag turns pointer gestures on canvas elements into frame updates
// and selection changes. Each element gets its own Controller holding at most
// one Session; the Engine routes pointer ids to controllers.
package drag

import (
	"gocanvas/internal/domain"
	"gocanvas/internal/vector"
)

//go:generate mockgen -source=store.go -destination=mocks/mock_store.go

// Store is what a controller needs from the element store.
type Store interface {
	Frame(id domain.ElementID) (vector.Rect, error)
	SetFrame(id domain.ElementID, r vector.Rect) error
	Select(id domain.ElementID) error
	Toggle(id domain.ElementID) error
}
