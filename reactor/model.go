/***********************************************************************************************************************
 *
 *   MIT License
 *
 *   Copyright (c) 2022 Nicolas JUHEL
 *
 *   Permission is hereby granted, free of charge, to any person obtaining a copy
 *   of this software and associated documentation files (the "Software"), to deal
 *   in the Software without restriction, including without limitation the rights
 *   to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 *   copies of the Software, and to permit persons to whom the Software is
 *   furnished to do so, subject to the following conditions:
 *
 *   The above copyright notice and this permission notice shall be included in all
 *   copies or substantial portions of the Software.
 *
 *   THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 *   IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 *   FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 *   AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 *   LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 *   OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 *   SOFTWARE.
 *
 *
 **********************************************************************************************************************/

package reactor

import (
	"context"
	"sync"

	libctx "github.com/sundro/xnet/context"
)

const defaultMaxDescriptors = 1024

// registry is the reactor's fd -> EventData arena. Two backings are offered:
// a slice indexed directly by fd (dense, cheap, pre-sized from maxFD and
// grown on demand) and a
// libctx.Config-backed map (sparse, unbounded, one hash lookup per event).
// Create's useHash parameter picks between them.
type registry interface {
	get(fd int) (*EventData, bool)
	set(fd int, ed *EventData)
	delete(fd int)
	walk(fn func(ed *EventData))
}

type hashRegistry struct {
	cfg libctx.Config[int]
}

func newHashRegistry() *hashRegistry {
	return &hashRegistry{cfg: libctx.New[int](context.Background())}
}

func (h *hashRegistry) get(fd int) (*EventData, bool) {
	v, ok := h.cfg.Load(fd)
	if !ok || v == nil {
		return nil, false
	}
	return v.(*EventData), true
}

func (h *hashRegistry) set(fd int, ed *EventData) {
	h.cfg.Store(fd, ed)
}

func (h *hashRegistry) delete(fd int) {
	h.cfg.Delete(fd)
}

func (h *hashRegistry) walk(fn func(ed *EventData)) {
	h.cfg.Walk(func(_ int, val interface{}) bool {
		if ed, ok := val.(*EventData); ok {
			fn(ed)
		}
		return true
	})
}

type arrayRegistry struct {
	slots []*EventData
}

func newArrayRegistry(maxFD int) *arrayRegistry {
	return &arrayRegistry{slots: make([]*EventData, 0, maxFD)}
}

func (a *arrayRegistry) get(fd int) (*EventData, bool) {
	if fd < 0 || fd >= len(a.slots) || a.slots[fd] == nil {
		return nil, false
	}
	return a.slots[fd], true
}

func (a *arrayRegistry) set(fd int, ed *EventData) {
	if fd < 0 {
		return
	}
	if fd >= len(a.slots) {
		grown := make([]*EventData, fd+1)
		copy(grown, a.slots)
		a.slots = grown
	}
	a.slots[fd] = ed
}

func (a *arrayRegistry) delete(fd int) {
	if fd >= 0 && fd < len(a.slots) {
		a.slots[fd] = nil
	}
}

func (a *arrayRegistry) walk(fn func(ed *EventData)) {
	for _, ed := range a.slots {
		if ed != nil {
			fn(ed)
		}
	}
}

// Reactor is the single-threaded dispatcher: one poller, one sorted timer
// list, one fd registry, and the user Callback they all feed into.
type Reactor struct {
	mu       sync.Mutex
	closed   bool
	timerSeq uint64
	timers   []*timer

	pl  poller
	cb  Callback
	reg registry
}

// Create allocates a Reactor pre-sized for maxFD descriptors (0 means
// defaultMaxDescriptors; registration is not capped at maxFD, the registry
// grows on demand), delivering every fired event and expired timer to
// cb. useHash selects the libctx-backed sparse registry over the dense
// slice-indexed one; pick it when fds are not small contiguous integers
// (e.g. layered on something other than the OS's own fd space).
func Create(maxFD int, cb Callback, useHash bool) (*Reactor, error) {
	if cb == nil {
		return nil, ErrorNoCallback.Error()
	}
	if maxFD <= 0 {
		maxFD = defaultMaxDescriptors
	}

	pl, err := newPoller(maxFD)
	if err != nil {
		return nil, ErrorCreate.Error(err)
	}

	var reg registry
	if useHash {
		reg = newHashRegistry()
	} else {
		reg = newArrayRegistry(maxFD)
	}

	return &Reactor{pl: pl, cb: cb, reg: reg}, nil
}

// Register arms mask on fd, tagging it typ and carrying ctx through to every
// future callback invocation for this descriptor.
func (r *Reactor) Register(ctx interface{}, fd int, mask Mask, typ Type) (*EventData, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, ErrorClosed.Error()
	}
	if _, ok := r.reg.get(fd); ok {
		return nil, ErrorInsert.Error()
	}

	if err := r.pl.add(fd, mask); err != nil {
		return nil, ErrorCtl.Error(err)
	}

	ed := &EventData{fd: fd, typ: typ, mask: mask, ctx: ctx, open: true}
	r.reg.set(fd, ed)
	return ed, nil
}

// Modify re-arms ed's descriptor with newMask.
func (r *Reactor) Modify(ed *EventData, newMask Mask) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrorClosed.Error()
	}
	if ed == nil || !ed.open {
		return ErrorNotFound.Error()
	}

	if err := r.pl.modify(ed.fd, newMask); err != nil {
		return ErrorCtl.Error(err)
	}
	ed.mask = newMask
	return nil
}

// Delete deregisters ed, invoking the callback once with ReasonClear before
// the handle is invalidated. It is a no-op if ed is already closed.
func (r *Reactor) Delete(ed *EventData) error {
	if ed == nil {
		return nil
	}

	r.mu.Lock()
	if !ed.open {
		r.mu.Unlock()
		return nil
	}
	ed.open = false
	r.reg.delete(ed.fd)
	_ = r.pl.remove(ed.fd)
	r.mu.Unlock()

	r.cb(ed, ReasonClear)
	return nil
}

// Close tears the reactor down: every still-registered descriptor is cleared
// (ReasonClear) and the poller is released. Close is idempotent.
func (r *Reactor) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true

	var eds []*EventData
	r.reg.walk(func(ed *EventData) { eds = append(eds, ed) })
	r.mu.Unlock()

	for _, ed := range eds {
		ed.open = false
		r.cb(ed, ReasonClear)
	}

	return r.pl.close()
}

const (
	ctlContinue = iota
	ctlBreakReady
	ctlBreakService
)

// dispatch invokes the callback for ed/reason, re-entering it immediately on
// ActionUserCall, and translates the final Action into a Service control
// signal.
func (r *Reactor) dispatch(ed *EventData, reason Reason) int {
	for {
		switch r.cb(ed, reason) {
		case ActionDisconnect:
			_ = r.Delete(ed)
			return ctlContinue
		case ActionUserCall:
			reason = ReasonRead
			continue
		case ActionAccept:
			return ctlBreakReady
		case ActionBreak:
			return ctlBreakService
		default: // ActionNoAction, ActionContinue
			return ctlContinue
		}
	}
}

// dispatchTerminal handles a bit whose reason always tears the descriptor
// down (RDHUP/HUP/ERR): the callback fires once for reporting, then the
// descriptor is deleted regardless of the returned Action, except that
// ActionBreak still exits Service outright, right after the delete.
func (r *Reactor) dispatchTerminal(ed *EventData, reason Reason) int {
	if r.cb(ed, reason) == ActionBreak {
		_ = r.Delete(ed)
		return ctlBreakService
	}
	_ = r.Delete(ed)
	return ctlContinue
}

// Service runs one polling iteration: it blocks up to the smaller of
// timeoutMs and the nearest timer deadline (timeoutMs < 0 means wait
// indefinitely for the timer case but never past it), fires any timers that
// have come due, then dispatches every ready descriptor — write before read,
// per the bit ordering the API facade relies on to flush pending output
// before accepting more input.
func (r *Reactor) Service(timeoutMs int) error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return ErrorClosed.Error()
	}
	eff := r.nextDeadlineMs(timeoutMs)
	r.mu.Unlock()

	evts, err := r.pl.wait(eff, make([]ready, 0, 64))
	if err != nil {
		return ErrorWait.Error(err)
	}

	r.mu.Lock()
	due := r.dueTimers()
	r.mu.Unlock()

	for _, t := range due {
		ed := &EventData{fd: -1, typ: TypeTimer, ctx: t.ctx, open: true}
		if r.dispatch(ed, ReasonTimeout) == ctlBreakService {
			return nil
		}
	}

eventsLoop:
	for _, e := range evts {
		r.mu.Lock()
		ed, ok := r.reg.get(e.fd)
		r.mu.Unlock()
		if !ok || !ed.open {
			continue
		}

		// RDHUP, HUP and ERR are terminal: the matching reason fires once and
		// the descriptor is torn down regardless of the callback's Action.
		if e.mask&MaskRDHup != 0 {
			if r.dispatchTerminal(ed, ReasonClosed) == ctlBreakService {
				return nil
			}
			continue
		}
		if e.mask&MaskHup != 0 {
			if r.dispatchTerminal(ed, ReasonHanged) == ctlBreakService {
				return nil
			}
			continue
		}
		if e.mask&MaskErr != 0 {
			if r.dispatchTerminal(ed, ReasonError) == ctlBreakService {
				return nil
			}
			continue
		}
		if e.mask&MaskPri != 0 {
			switch r.dispatch(ed, ReasonException) {
			case ctlBreakService:
				return nil
			case ctlBreakReady:
				break eventsLoop
			}
			if !ed.open {
				continue
			}
		}
		if e.mask&MaskOut != 0 {
			switch r.dispatch(ed, ReasonWrite) {
			case ctlBreakService:
				return nil
			case ctlBreakReady:
				break eventsLoop
			}
			if !ed.open {
				continue
			}
		}
		if e.mask&MaskIn != 0 {
			switch r.dispatch(ed, ReasonRead) {
			case ctlBreakService:
				return nil
			case ctlBreakReady:
				break eventsLoop
			}
		}
	}

	return nil
}
