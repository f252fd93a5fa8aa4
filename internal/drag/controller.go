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
	"log/slog"

	"github.com/google/uuid"

	"gocanvas/internal/domain"
	applog "gocanvas/internal/log"
	"gocanvas/internal/vector"
)

// ErrBusy is returned by Begin when the element already has a gesture in progress.
var ErrBusy = errors.New("element has a gesture in progress")

// Controller runs the gesture state machine for a single element:
// idle, pending (pointer down, below the travel threshold), dragging.
// It is not safe for concurrent use; drive it from the event loop.
type Controller struct {
	id    domain.ElementID
	store Store
	opts  *Options
	log   *slog.Logger
	sess  *Session
}

// NewController returns an idle controller for element id.
func NewController(id domain.ElementID, st Store, opts *Options) *Controller {
	if opts == nil {
		o := DefaultOptions()
		opts = &o
	}
	return &Controller{
		id:    id,
		store: st,
		opts:  opts,
		log:   applog.WithComponent("drag").With(slog.Int("element", int(id))),
	}
}

func (c *Controller) ID() domain.ElementID { return c.id }

// Session returns a copy of the current session, if any.
func (c *Controller) Session() (Session, bool) {
	if c.sess == nil {
		return Session{}, false
	}
	return *c.sess, true
}

// Pending reports whether a gesture has begun, active or not.
func (c *Controller) Pending() bool { return c.sess != nil }

// Active reports whether the current gesture passed its travel threshold.
func (c *Controller) Active() bool { return c.sess != nil && c.sess.Active }

// Dragging reports an active body drag (the element is being moved).
func (c *Controller) Dragging() bool { return c.Active() && c.sess.Target.Part == PartBody }

// Resizing reports an active handle drag and the handle of the stored frame
// under the pointer. Under the normalize policy that is the mirrored anchor
// once the dragged edges have crossed their opposites.
func (c *Controller) Resizing() (domain.Anchor, bool) {
	if c.Active() && c.sess.Target.Part == PartHandle {
		a := c.sess.Target.Anchor
		if c.opts.Policy == PolicyNormalize {
			a = c.sess.working.crossed(a)
		}
		return a, true
	}
	return domain.Anchor{}, false
}

// Begin starts a gesture at p on target t, capturing the pointer offset so the
// frame does not jump. It returns ErrBusy while another gesture is in progress.
func (c *Controller) Begin(t Target, p vector.Pt) error {
	if t.Element != c.id {
		panic(fmt.Sprintf("drag: controller %d got gesture for %s", c.id, t))
	}
	if c.sess != nil {
		return fmt.Errorf("element %d: %w", c.id, ErrBusy)
	}
	if t.Part == PartHandle && !t.Anchor.Valid() {
		panic(fmt.Sprintf("drag: invalid handle anchor %v", t.Anchor))
	}
	f, err := c.store.Frame(c.id)
	if err != nil {
		return err
	}
	s := &Session{
		ID:      uuid.New(),
		Target:  t,
		Offset:  p.Sub(Reference(t, f)),
		Start:   p,
		Initial: f,
		working: rawEdges(f),
	}
	c.sess = s
	c.log.Debug("gesture begin", slog.String("part", t.Part.String()), slog.String("session", s.ID.String()))
	if c.opts.minDistance(t.Part) <= 0 {
		if err := c.activate(); err != nil {
			c.sess = nil
			return err
		}
	}
	return nil
}

// Change feeds a pointer move. Before the threshold only travel is tracked;
// afterwards the frame follows the pointer.
func (c *Controller) Change(p vector.Pt) error {
	if c.sess == nil {
		panic(fmt.Sprintf("drag: Change on element %d without Begin", c.id))
	}
	if err := c.step(p); err != nil {
		c.drop(err)
		return err
	}
	return nil
}

// End applies p as a final move and finishes the gesture. A body gesture that
// never passed the threshold is a tap and toggles selection.
func (c *Controller) End(p vector.Pt) error {
	if c.sess == nil {
		panic(fmt.Sprintf("drag: End on element %d without Begin", c.id))
	}
	if err := c.step(p); err != nil {
		c.drop(err)
		return err
	}
	s := c.sess
	c.sess = nil
	if !s.Active && s.Target.Part == PartBody {
		c.log.Debug("tap", slog.String("session", s.ID.String()))
		return c.store.Toggle(c.id)
	}
	c.log.Debug("gesture end", slog.String("part", s.Target.Part.String()), slog.String("session", s.ID.String()))
	return nil
}

// Cancel abandons the gesture and restores the frame it started with.
// Selection is left as it is. Cancel without a gesture is a no-op.
func (c *Controller) Cancel() error {
	s := c.sess
	if s == nil {
		return nil
	}
	c.sess = nil
	c.log.Debug("gesture cancel", slog.String("session", s.ID.String()))
	if !s.Active {
		return nil
	}
	return c.store.SetFrame(c.id, s.Initial)
}

func (c *Controller) drop(err error) {
	c.log.Warn("gesture dropped", slog.String("session", c.sess.ID.String()), slog.Any("err", err))
	c.sess = nil
}

func (c *Controller) activate() error {
	c.sess.Active = true
	c.log.Debug("gesture active", slog.String("part", c.sess.Target.Part.String()), slog.String("session", c.sess.ID.String()))
	if c.sess.Target.Part == PartBody {
		return c.store.Select(c.id)
	}
	return nil
}

func (c *Controller) step(p vector.Pt) error {
	s := c.sess
	if d := s.Start.Dist(p); d > s.Travel {
		s.Travel = d
	}
	if !s.Active {
		if s.Travel < c.opts.minDistance(s.Target.Part) {
			return nil
		}
		if err := c.activate(); err != nil {
			return err
		}
	}
	if s.Target.Part == PartHandle {
		return c.store.SetFrame(c.id, c.resize(p))
	}
	return c.move(p)
}

// move recenters the frame on the pointer minus the grab offset.
func (c *Controller) move(p vector.Pt) error {
	f, err := c.store.Frame(c.id)
	if err != nil {
		return err
	}
	center := p.Sub(c.sess.Offset)
	f.X = center.X - f.W/2
	f.Y = center.Y - f.H/2
	return c.store.SetFrame(c.id, f)
}

// resize moves the edges the handle controls to the adjusted pointer.
func (c *Controller) resize(p vector.Pt) vector.Rect {
	s := c.sess
	adj := p.Sub(s.Offset)
	left, right, top, bottom := s.Target.Anchor.Controls()
	if left {
		s.working.left = adj.X
	}
	if right {
		s.working.right = adj.X
	}
	if top {
		s.working.top = adj.Y
	}
	if bottom {
		s.working.bottom = adj.Y
	}
	return c.opts.resize(s.working, s.Target.Anchor)
}
