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

import "time"

// timer is one entry in the reactor's sorted timer list. Both the epoll and
// fallback pollers share this single list-based model rather than also
// maintaining a Linux timerfd: it keeps Service's "next deadline" computation
// identical across backends, at the cost of one extra comparison per Service
// call versus a kernel-armed timerfd.
type timer struct {
	id       uint64
	ctx      interface{}
	deadline time.Time
	period   time.Duration // zero means one-shot
}

// AddTimer registers a timer carrying ctx that fires ReasonTimeout on the
// callback once d has elapsed and again every d after that, until RemoveTimer
// cancels it. The period is always d, so only d == 0 gives a one-shot timer
// (due at once); a delayed timer that fires only once is not available. It
// returns the timer id, used by ExtendTimer to push the deadline back out.
func (r *Reactor) AddTimer(ctx interface{}, d time.Duration) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return 0, ErrorClosed.Error()
	}

	r.timerSeq++
	t := &timer{id: r.timerSeq, ctx: ctx, deadline: time.Now().Add(d), period: d}
	r.insertTimer(t)
	return t.id, nil
}

// ExtendTimer detaches the timer identified by id and reinserts it with a
// fresh deadline d out from now, making d its new period too. It returns
// ErrorNotFound if the timer has been removed, or was a one-shot (d == 0)
// timer that has already fired.
func (r *Reactor) ExtendTimer(id uint64, d time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, t := range r.timers {
		if t.id == id {
			r.timers = append(r.timers[:i], r.timers[i+1:]...)
			t.deadline = time.Now().Add(d)
			t.period = d
			r.insertTimer(t)
			return nil
		}
	}
	return ErrorNotFound.Error()
}

// RemoveTimer cancels a pending timer. It is a no-op if the timer has already
// fired or does not exist.
func (r *Reactor) RemoveTimer(id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, t := range r.timers {
		if t.id == id {
			r.timers = append(r.timers[:i], r.timers[i+1:]...)
			return
		}
	}
}

// insertTimer keeps r.timers sorted by deadline ascending; caller holds r.mu.
func (r *Reactor) insertTimer(t *timer) {
	i := 0
	for ; i < len(r.timers); i++ {
		if t.deadline.Before(r.timers[i].deadline) {
			break
		}
	}
	r.timers = append(r.timers, nil)
	copy(r.timers[i+1:], r.timers[i:])
	r.timers[i] = t
}

// nextDeadlineMs returns the poll timeout implied by the nearest timer and
// the caller's own requested timeout, in milliseconds (caller holds r.mu).
func (r *Reactor) nextDeadlineMs(requestedMs int) int {
	if len(r.timers) == 0 {
		return requestedMs
	}

	until := time.Until(r.timers[0].deadline)
	if until <= 0 {
		return 0
	}

	ms := int(until / time.Millisecond)
	if requestedMs >= 0 && requestedMs < ms {
		return requestedMs
	}
	return ms
}

// dueTimers pops every timer whose deadline has passed, reinserting periodic
// ones with a fresh deadline (caller holds r.mu).
func (r *Reactor) dueTimers() []*timer {
	var due []*timer
	now := time.Now()

	for len(r.timers) > 0 && !r.timers[0].deadline.After(now) {
		t := r.timers[0]
		r.timers = r.timers[1:]
		due = append(due, t)

		if t.period > 0 {
			t.deadline = now.Add(t.period)
			r.insertTimer(t)
		}
	}
	return due
}
