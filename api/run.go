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

package api

import (
	"context"
	"time"

	"github.com/sundro/xnet/runner/startStop"
)

// Run hands the reactor's cooperative poll loop off to a managed goroutine,
// calling Service(timeoutMs) in a tight loop until ctx is canceled or StopRun
// is called. It is an alternative to calling Service directly from the
// caller's own loop; the two are mutually exclusive for a given API.
//
// Calling Run again while already running stops the previous goroutine first.
func (a *API) Run(ctx context.Context, timeoutMs int) error {
	if a.ss == nil {
		a.ss = startStop.New(
			func(ctx context.Context) error {
				for {
					select {
					case <-ctx.Done():
						return nil
					default:
					}

					if err := a.Service(timeoutMs); err != nil {
						return err
					}
				}
			},
			nil,
		)
	}

	return a.ss.Start(ctx)
}

// StopRun cancels the goroutine started by Run and waits for it to return.
// Safe to call when Run was never called or has already stopped.
func (a *API) StopRun(ctx context.Context) error {
	if a.ss == nil {
		return nil
	}
	return a.ss.Stop(ctx)
}

// IsRunning reports whether the Run goroutine is currently polling.
func (a *API) IsRunning() bool {
	return a.ss != nil && a.ss.IsRunning()
}

// RunUptime returns how long Run has been polling, or zero if not running.
func (a *API) RunUptime() time.Duration {
	if a.ss == nil {
		return 0
	}
	return a.ss.Uptime()
}
