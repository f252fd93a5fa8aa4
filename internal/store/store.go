/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package store holds the canvas elements and the single selection.
package store

import (
	"errors"
	"fmt"
	"sync"

	"gocanvas/internal/domain"
	"gocanvas/internal/vector"
)

// ErrNotFound is returned (wrapped with the id) for operations on an unknown element.
var ErrNotFound = errors.New("element not found")

func notFound(id domain.ElementID) error {
	return fmt.Errorf("element %d: %w", id, ErrNotFound)
}

// Snapshot is a copy of the store contents, safe to hand to another goroutine.
type Snapshot struct {
	Elements    []domain.Element
	Selected    domain.ElementID
	HasSelected bool
}

// IsSelected reports whether id is the selected element in the snapshot.
func (s Snapshot) IsSelected(id domain.ElementID) bool { return s.HasSelected && s.Selected == id }

// ElementStore is an ordered collection of elements plus at most one selected id.
// Order is insertion order; the last element is drawn on top.
// It is safe for concurrent use.
type ElementStore struct {
	mu       sync.RWMutex
	elems    []domain.Element
	index    map[domain.ElementID]int
	selected domain.ElementID
	hasSel   bool
}

// New returns a store holding a copy of elems. Duplicate ids are rejected.
func New(elems []domain.Element) (*ElementStore, error) {
	s := &ElementStore{index: make(map[domain.ElementID]int, len(elems))}
	for _, e := range elems {
		if _, dup := s.index[e.ID]; dup {
			return nil, fmt.Errorf("duplicate element id %d", e.ID)
		}
		s.index[e.ID] = len(s.elems)
		s.elems = append(s.elems, e)
	}
	return s, nil
}

// NewSeeded returns a store with the default three elements.
func NewSeeded() *ElementStore {
	s, _ := New(domain.SeedElements())
	return s
}

func (s *ElementStore) List() []domain.Element {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Element, len(s.elems))
	copy(out, s.elems)
	return out
}

func (s *ElementStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.elems)
}

func (s *ElementStore) Frame(id domain.ElementID) (vector.Rect, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[id]
	if !ok {
		return vector.Rect{}, notFound(id)
	}
	return s.elems[i].Frame, nil
}

func (s *ElementStore) SetFrame(id domain.ElementID, r vector.Rect) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[id]
	if !ok {
		return notFound(id)
	}
	s.elems[i].Frame = r
	return nil
}

func (s *ElementStore) Selected() (domain.ElementID, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected, s.hasSel
}

// Select makes id the only selected element. Selecting the selected element is a no-op.
func (s *ElementStore) Select(id domain.ElementID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.index[id]; !ok {
		return notFound(id)
	}
	s.selected, s.hasSel = id, true
	return nil
}

// Deselect clears the selection only when id is the selected element.
func (s *ElementStore) Deselect(id domain.ElementID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hasSel && s.selected == id {
		s.selected, s.hasSel = 0, false
	}
}

// ClearSelection deselects whatever is selected.
func (s *ElementStore) ClearSelection() {
	s.mu.Lock()
	s.selected, s.hasSel = 0, false
	s.mu.Unlock()
}

// Toggle selects id when it is not selected and deselects it otherwise.
func (s *ElementStore) Toggle(id domain.ElementID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.index[id]; !ok {
		return notFound(id)
	}
	if s.hasSel && s.selected == id {
		s.selected, s.hasSel = 0, false
	} else {
		s.selected, s.hasSel = id, true
	}
	return nil
}

// Add appends a new element on top with id max+1.
func (s *ElementStore) Add(frame vector.Rect) domain.Element {
	s.mu.Lock()
	defer s.mu.Unlock()
	var next domain.ElementID
	for _, e := range s.elems {
		if e.ID > next {
			next = e.ID
		}
	}
	e := domain.Element{ID: next + 1, Frame: frame}
	s.index[e.ID] = len(s.elems)
	s.elems = append(s.elems, e)
	return e
}

// Remove deletes id, clearing the selection if it pointed at id.
func (s *ElementStore) Remove(id domain.ElementID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[id]
	if !ok {
		return notFound(id)
	}
	s.elems = append(s.elems[:i], s.elems[i+1:]...)
	delete(s.index, id)
	for j := i; j < len(s.elems); j++ {
		s.index[s.elems[j].ID] = j
	}
	if s.hasSel && s.selected == id {
		s.selected, s.hasSel = 0, false
	}
	return nil
}

func (s *ElementStore) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := Snapshot{Elements: make([]domain.Element, len(s.elems)), Selected: s.selected, HasSelected: s.hasSel}
	copy(out.Elements, s.elems)
	return out
}
