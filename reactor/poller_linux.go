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

//go:build linux

package reactor

import (
	"golang.org/x/sys/unix"
)

type epollPoller struct {
	fd int
}

func newPoller(maxFD int) (poller, error) {
	fd, err := unix.EpollCreate1(0)
	if err != nil {
		return nil, err
	}
	_ = maxFD // epoll's event array is sized per-Wait call, not at creation
	return &epollPoller{fd: fd}, nil
}

func (p *epollPoller) add(fd int, mask Mask) error {
	ev := unix.EpollEvent{Events: toEpoll(mask), Fd: int32(fd)}
	return unix.EpollCtl(p.fd, unix.EPOLL_CTL_ADD, fd, &ev)
}

func (p *epollPoller) modify(fd int, mask Mask) error {
	ev := unix.EpollEvent{Events: toEpoll(mask), Fd: int32(fd)}
	return unix.EpollCtl(p.fd, unix.EPOLL_CTL_MOD, fd, &ev)
}

func (p *epollPoller) remove(fd int) error {
	return unix.EpollCtl(p.fd, unix.EPOLL_CTL_DEL, fd, nil)
}

func (p *epollPoller) wait(timeoutMs int, buf []ready) ([]ready, error) {
	raw := make([]unix.EpollEvent, cap(buf))
	if len(raw) == 0 {
		raw = make([]unix.EpollEvent, 64)
	}

	n, err := unix.EpollWait(p.fd, raw, timeoutMs)
	if err != nil {
		if err == unix.EINTR {
			return buf[:0], nil
		}
		return nil, err
	}

	out := buf[:0]
	for i := 0; i < n; i++ {
		out = append(out, ready{fd: int(raw[i].Fd), mask: fromEpoll(raw[i].Events)})
	}
	return out, nil
}

func (p *epollPoller) close() error {
	return unix.Close(p.fd)
}

func toEpoll(m Mask) uint32 {
	var e uint32
	if m&MaskIn != 0 {
		e |= unix.EPOLLIN
	}
	if m&MaskOut != 0 {
		e |= unix.EPOLLOUT
	}
	if m&MaskPri != 0 {
		e |= unix.EPOLLPRI
	}
	if m&MaskErr != 0 {
		e |= unix.EPOLLERR
	}
	if m&MaskHup != 0 {
		e |= unix.EPOLLHUP
	}
	if m&MaskRDHup != 0 {
		e |= unix.EPOLLRDHUP
	}
	return e
}

func fromEpoll(e uint32) Mask {
	var m Mask
	if e&unix.EPOLLIN != 0 {
		m |= MaskIn
	}
	if e&unix.EPOLLOUT != 0 {
		m |= MaskOut
	}
	if e&unix.EPOLLPRI != 0 {
		m |= MaskPri
	}
	if e&unix.EPOLLERR != 0 {
		m |= MaskErr
	}
	if e&unix.EPOLLHUP != 0 {
		m |= MaskHup
	}
	if e&unix.EPOLLRDHUP != 0 {
		m |= MaskRDHup
	}
	return m
}
