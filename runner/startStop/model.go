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

// Package startStop wraps a start/stop function pair with lifecycle bookkeeping:
// running state, uptime, and captured errors. api.API.Run uses it to hand the
// reactor's cooperative Service loop off to a managed goroutine, so embedding
// code can Start/Stop/Restart it without hand-rolling a context/waitgroup dance.
package startStop

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// FuncAction is a start or stop hook. It receives the context passed to
// Start/Stop/Restart and runs until that context is canceled (for a start hook,
// cancellation is how Stop asks it to return) or it completes on its own.
type FuncAction func(ctx context.Context) error

// StartStop manages the lifecycle of a long-running start function paired with
// a stop function used to request its shutdown.
type StartStop interface {
	// Start launches the start function in a goroutine and returns immediately.
	// If already running, the previous instance is stopped first.
	Start(ctx context.Context) error
	// Stop cancels the running instance and waits for it to return. Safe to
	// call when not running, and safe to call concurrently.
	Stop(ctx context.Context) error
	// Restart stops then starts the runner.
	Restart(ctx context.Context) error
	// IsRunning reports whether the start function is currently executing.
	IsRunning() bool
	// Uptime returns how long the runner has been running, or zero if stopped.
	Uptime() time.Duration
	// ErrorsLast returns the most recently captured error, or nil.
	ErrorsLast() error
	// ErrorsList returns every captured error, oldest first.
	ErrorsList() []error
	// ErrorsClean discards captured errors.
	ErrorsClean()
}

type runner struct {
	fnStart FuncAction
	fnStop  FuncAction

	mu      sync.Mutex
	running atomic.Bool
	started time.Time
	cancel  context.CancelFunc
	done    chan struct{}

	errMu sync.Mutex
	errs  []error
}

// New returns a StartStop wrapping the given start/stop functions. Either may
// be nil; a nil start function makes Start a no-op that reports no error, a nil
// stop function makes Stop rely solely on context cancellation.
func New(start, stop FuncAction) StartStop {
	return &runner{
		fnStart: start,
		fnStop:  stop,
	}
}

func (r *runner) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running.Load() {
		r.stopLocked(ctx)
	}

	if r.fnStart == nil {
		return nil
	}

	cctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	r.cancel = cancel
	r.done = done
	r.started = time.Now()
	r.running.Store(true)

	go func() {
		defer close(done)
		defer r.running.Store(false)

		if e := r.fnStart(cctx); e != nil {
			r.addError(e)
		}
	}()

	return nil
}

func (r *runner) Stop(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.stopLocked(ctx)
}

func (r *runner) stopLocked(ctx context.Context) error {
	if !r.running.Load() {
		return nil
	}

	var stopErr error
	if r.fnStop != nil {
		stopErr = r.fnStop(ctx)
		if stopErr != nil {
			r.addError(stopErr)
		}
	}

	if r.cancel != nil {
		r.cancel()
	}

	if r.done != nil {
		select {
		case <-r.done:
		case <-ctx.Done():
		}
	}

	r.started = time.Time{}
	return stopErr
}

func (r *runner) Restart(ctx context.Context) error {
	if e := r.Stop(ctx); e != nil {
		return e
	}
	return r.Start(ctx)
}

func (r *runner) IsRunning() bool {
	return r.running.Load()
}

func (r *runner) Uptime() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running.Load() || r.started.IsZero() {
		return 0
	}
	return time.Since(r.started)
}

func (r *runner) addError(e error) {
	r.errMu.Lock()
	defer r.errMu.Unlock()
	r.errs = append(r.errs, e)
}

func (r *runner) ErrorsLast() error {
	r.errMu.Lock()
	defer r.errMu.Unlock()

	if len(r.errs) == 0 {
		return nil
	}
	return r.errs[len(r.errs)-1]
}

func (r *runner) ErrorsList() []error {
	r.errMu.Lock()
	defer r.errMu.Unlock()

	out := make([]error, len(r.errs))
	copy(out, r.errs)
	return out
}

func (r *runner) ErrorsClean() {
	r.errMu.Lock()
	defer r.errMu.Unlock()
	r.errs = nil
}
