/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package drag

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"gocanvas/internal/domain"
	"gocanvas/internal/vector"
)

// ErrAnchorDisabled is returned when a gesture starts on a handle that is not enabled.
var ErrAnchorDisabled = errors.New("anchor disabled")

// PointerID identifies an input device or touch. A mouse uses 0.
type PointerID int

// Engine owns one controller per element and routes pointer gestures to them.
// Like the controllers it is driven from the event loop and is not goroutine-safe.
type Engine struct {
	store       Store
	opts        Options
	controllers map[domain.ElementID]*Controller
	pointers    map[PointerID]domain.ElementID
}

func NewEngine(st Store, opts Options) *Engine {
	return &Engine{
		store:       st,
		opts:        opts,
		controllers: make(map[domain.ElementID]*Controller),
		pointers:    make(map[PointerID]domain.ElementID),
	}
}

// Options returns the options currently in effect.
func (e *Engine) Options() Options { return e.opts }

// SetOptions replaces the options. Gestures in progress pick up the new
// thresholds and policy on their next event.
func (e *Engine) SetOptions(o Options) { e.opts = o }

// Controller returns the controller for id, creating it on first use.
func (e *Engine) Controller(id domain.ElementID) *Controller {
	c, ok := e.controllers[id]
	if !ok {
		c = NewController(id, e.store, &e.opts)
		e.controllers[id] = c
	}
	return c
}

// Forget drops the controller of a removed element, cancelling its gesture.
func (e *Engine) Forget(id domain.ElementID) {
	if c, ok := e.controllers[id]; ok {
		c.sess = nil
		delete(e.controllers, id)
	}
	for p, el := range e.pointers {
		if el == id {
			delete(e.pointers, p)
		}
	}
}

// GestureBegin starts a gesture for ptr on t. It panics if ptr already has a
// gesture; on error no gesture is registered for ptr.
func (e *Engine) GestureBegin(ptr PointerID, p vector.Pt, t Target) error {
	if id, busy := e.pointers[ptr]; busy {
		panic(fmt.Sprintf("drag: GestureBegin on pointer %d while element %d is in a gesture", ptr, id))
	}
	if t.Part == PartHandle && !e.opts.AnchorEnabled(t.Anchor) {
		return fmt.Errorf("%s: %w", t, ErrAnchorDisabled)
	}
	c, known := e.controllers[t.Element]
	if !known {
		c = NewController(t.Element, e.store, &e.opts)
	}
	if err := c.Begin(t, p); err != nil {
		return err
	}
	if !known {
		e.controllers[t.Element] = c
	}
	e.pointers[ptr] = t.Element
	return nil
}

// GestureChange forwards a move. It panics when ptr has no gesture.
func (e *Engine) GestureChange(ptr PointerID, p vector.Pt) error {
	c := e.mustActive(ptr, "GestureChange")
	if err := c.Change(p); err != nil {
		delete(e.pointers, ptr)
		return err
	}
	return nil
}

// GestureEnd finishes the gesture of ptr. It panics when ptr has no gesture.
func (e *Engine) GestureEnd(ptr PointerID, p vector.Pt) error {
	c := e.mustActive(ptr, "GestureEnd")
	delete(e.pointers, ptr)
	return c.End(p)
}

// GestureCancel abandons the gesture of ptr, if there is one.
func (e *Engine) GestureCancel(ptr PointerID) error {
	id, ok := e.pointers[ptr]
	if !ok {
		return nil
	}
	delete(e.pointers, ptr)
	return e.controllers[id].Cancel()
}

// CancelAll abandons every gesture in progress, including those started
// directly on a controller.
func (e *Engine) CancelAll() error {
	clear(e.pointers)
	var errs []error
	for _, id := range slices.Sorted(maps.Keys(e.controllers)) {
		errs = append(errs, e.controllers[id].Cancel())
	}
	return errors.Join(errs...)
}

// InGesture reports whether ptr currently has a gesture.
func (e *Engine) InGesture(ptr PointerID) bool {
	_, ok := e.pointers[ptr]
	return ok
}

// Dragging reports whether element id is being moved.
func (e *Engine) Dragging(id domain.ElementID) bool {
	c, ok := e.controllers[id]
	return ok && c.Dragging()
}

// Resizing reports whether element id is being resized and through which handle.
func (e *Engine) Resizing(id domain.ElementID) (domain.Anchor, bool) {
	c, ok := e.controllers[id]
	if !ok {
		return domain.Anchor{}, false
	}
	return c.Resizing()
}

func (e *Engine) mustActive(ptr PointerID, op string) *Controller {
	id, ok := e.pointers[ptr]
	if !ok {
		panic(fmt.Sprintf("drag: %s on pointer %d without GestureBegin", op, ptr))
	}
	return e.controllers[id]
}
