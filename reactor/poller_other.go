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

//go:build !linux

package reactor

import (
	"sync"

	"golang.org/x/sys/unix"
)

// pollPoller is the non-Linux fallback: a plain poll(2) re-scan of every
// registered fd on each wait. It has none of epoll's O(1) readiness
// reporting, but needs no kernel-side registration beyond the syscall call
// itself, so add/modify/remove only touch the in-process fd set.
type pollPoller struct {
	mu  sync.Mutex
	set map[int]Mask
}

func newPoller(maxFD int) (poller, error) {
	return &pollPoller{set: make(map[int]Mask, maxFD)}, nil
}

func (p *pollPoller) add(fd int, mask Mask) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.set[fd] = mask
	return nil
}

func (p *pollPoller) modify(fd int, mask Mask) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.set[fd] = mask
	return nil
}

func (p *pollPoller) remove(fd int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.set, fd)
	return nil
}

func (p *pollPoller) wait(timeoutMs int, buf []ready) ([]ready, error) {
	p.mu.Lock()
	fds := make([]unix.PollFd, 0, len(p.set))
	for fd, mask := range p.set {
		fds = append(fds, unix.PollFd{Fd: int32(fd), Events: toPoll(mask)})
	}
	p.mu.Unlock()

	if len(fds) == 0 {
		if timeoutMs > 0 {
			// nothing to watch but a deadline was requested: still block for
			// it so timer-only reactors don't busy-spin.
			_, _ = unix.Poll(fds, timeoutMs)
		}
		return buf[:0], nil
	}

	n, err := unix.Poll(fds, timeoutMs)
	if err != nil {
		if err == unix.EINTR {
			return buf[:0], nil
		}
		return nil, err
	}

	out := buf[:0]
	if n == 0 {
		return out, nil
	}
	for _, f := range fds {
		if f.Revents != 0 {
			out = append(out, ready{fd: int(f.Fd), mask: fromPoll(f.Revents)})
		}
	}
	return out, nil
}

func (p *pollPoller) close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.set = nil
	return nil
}

func toPoll(m Mask) int16 {
	var e int16
	if m&MaskIn != 0 {
		e |= unix.POLLIN
	}
	if m&MaskOut != 0 {
		e |= unix.POLLOUT
	}
	if m&MaskPri != 0 {
		e |= unix.POLLPRI
	}
	return e
}

// fromPoll folds POLLERR/POLLNVAL into MaskErr and reports POLLHUP as
// MaskHup: this backend cannot
// distinguish a half-closed peer (POLLRDHUP, Linux-only) from a fully dead
// one, so MaskRDHup is never reported here.
func fromPoll(e int16) Mask {
	var m Mask
	if e&unix.POLLIN != 0 {
		m |= MaskIn
	}
	if e&unix.POLLOUT != 0 {
		m |= MaskOut
	}
	if e&unix.POLLPRI != 0 {
		m |= MaskPri
	}
	if e&(unix.POLLERR|unix.POLLNVAL) != 0 {
		m |= MaskErr
	}
	if e&unix.POLLHUP != 0 {
		m |= MaskHup
	}
	return m
}
