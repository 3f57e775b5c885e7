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

// ready is one descriptor's fired mask, reported by a poller's wait.
type ready struct {
	fd   int
	mask Mask
}

// poller is the platform polling primitive the reactor drives. Linux gets an
// epoll-backed implementation (poller_linux.go); every other POSIX target
// falls back to a poll(2)-backed one (poller_other.go), per spec.md §4.4's
// platform-variant split. Both share the single sorted-list timer model in
// timer.go rather than Linux also using a timerfd, resolving §9's "two
// incompatible timer models" open question uniformly.
type poller interface {
	add(fd int, mask Mask) error
	modify(fd int, mask Mask) error
	remove(fd int) error
	wait(timeoutMs int, buf []ready) ([]ready, error)
	close() error
}
