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

// Package ticker runs a periodic function on a time.Ticker with the same
// Start/Stop/Restart/Uptime lifecycle as runner/startStop. It is a standalone
// goroutine-driven scheduling building block; it is deliberately not used by
// the event reactor itself, whose own timer list (reactor.AddTimer) must be
// serviced from inside the single-threaded poll loop rather than from an
// independently-running goroutine.
package ticker

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// MinDuration is the smallest tick interval accepted by New; anything shorter
// is raised to this floor to avoid a busy loop.
const MinDuration = 50 * time.Millisecond

// FuncTick is invoked on every tick. Returning an error does not stop the
// ticker; the error is only recorded for later inspection via ErrorsLast/List.
type FuncTick func(ctx context.Context, tck *time.Ticker) error

// Ticker runs FuncTick on a fixed interval until stopped.
type Ticker interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Restart(ctx context.Context) error
	IsRunning() bool
	Uptime() time.Duration
	ErrorsLast() error
	ErrorsList() []error
	ErrorsClean()
}

type ticker struct {
	interval time.Duration
	fn       FuncTick

	mu      sync.Mutex
	running atomic.Bool
	started time.Time
	cancel  context.CancelFunc
	done    chan struct{}

	errMu sync.Mutex
	errs  []error
}

// New returns a Ticker calling fn every d (floored to MinDuration). A nil fn
// is accepted; the ticker then runs without doing anything on each tick.
func New(d time.Duration, fn FuncTick) Ticker {
	if d < MinDuration {
		d = MinDuration
	}
	return &ticker{interval: d, fn: fn}
}

func (t *ticker) Start(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.running.Load() {
		t.stopLocked(ctx)
	}

	cctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	t.cancel = cancel
	t.done = done
	t.started = time.Now()
	t.running.Store(true)

	go func() {
		defer close(done)
		defer t.running.Store(false)

		tk := time.NewTicker(t.interval)
		defer tk.Stop()

		for {
			select {
			case <-cctx.Done():
				return
			case <-tk.C:
				if t.fn != nil {
					if e := t.fn(cctx, tk); e != nil {
						t.addError(e)
					}
				}
			}
		}
	}()

	return nil
}

func (t *ticker) Stop(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopLocked(ctx)
	return nil
}

func (t *ticker) stopLocked(ctx context.Context) {
	if !t.running.Load() {
		return
	}

	if t.cancel != nil {
		t.cancel()
	}

	if t.done != nil {
		select {
		case <-t.done:
		case <-ctx.Done():
		}
	}

	t.started = time.Time{}
}

func (t *ticker) Restart(ctx context.Context) error {
	if e := t.Stop(ctx); e != nil {
		return e
	}
	return t.Start(ctx)
}

func (t *ticker) IsRunning() bool {
	return t.running.Load()
}

func (t *ticker) Uptime() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.running.Load() || t.started.IsZero() {
		return 0
	}
	return time.Since(t.started)
}

func (t *ticker) addError(e error) {
	t.errMu.Lock()
	defer t.errMu.Unlock()
	t.errs = append(t.errs, e)
}

func (t *ticker) ErrorsLast() error {
	t.errMu.Lock()
	defer t.errMu.Unlock()

	if len(t.errs) == 0 {
		return nil
	}
	return t.errs[len(t.errs)-1]
}

func (t *ticker) ErrorsList() []error {
	t.errMu.Lock()
	defer t.errMu.Unlock()

	out := make([]error, len(t.errs))
	copy(out, t.errs)
	return out
}

func (t *ticker) ErrorsClean() {
	t.errMu.Lock()
	defer t.errMu.Unlock()
	t.errs = nil
}
