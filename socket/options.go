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

package socket

import (
	"fmt"
	"net"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

// NonBlock switches the socket's read/write deadline behavior: a non-blocking
// socket returns StatusWantRead/StatusWantWrite instead of blocking the
// caller's goroutine when the kernel buffer is not ready.
func (s *Socket) NonBlock(flag bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nonBlockLocked(flag)
}

func (s *Socket) nonBlockLocked(flag bool) error {
	if flag {
		s.flags |= FlagNonBlock
	} else {
		s.flags &^= FlagNonBlock
		if c, ok := s.reader(); ok {
			_ = c.SetDeadline(time.Time{})
		}
	}
	return nil
}

// ReuseAddr marks the socket to bind with SO_REUSEADDR. It only affects a
// socket that has not yet been bound by Create; calling it afterward fails
// with ErrorSetOpt and, like any other option failure, marks the socket
// errored and closes it.
func (s *Socket) ReuseAddr(flag bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ln != nil || s.pc != nil || s.cn != nil {
		return s.fail(ErrorSetOpt, fmt.Errorf("reuse-addr must be set before Create"))
	}

	if flag {
		s.flags |= FlagReuseAddr
	} else {
		s.flags &^= FlagReuseAddr
	}
	return nil
}

// NoDelay toggles TCP_NODELAY on a connected TCP socket.
func (s *Socket) NoDelay(flag bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tc, ok := s.cn.(*net.TCPConn)
	if !ok {
		return nil
	}
	if err := tc.SetNoDelay(flag); err != nil {
		return s.fail(ErrorSetOpt, err)
	}
	return nil
}

// Linger sets SO_LINGER in seconds on a connected TCP socket. Zero disables
// lingering (the socket closes immediately, discarding unsent data); a
// negative value restores the kernel default.
func (s *Socket) Linger(sec int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tc, ok := s.cn.(*net.TCPConn)
	if !ok {
		return nil
	}
	if err := tc.SetLinger(sec); err != nil {
		return s.fail(ErrorSetOpt, err)
	}
	return nil
}

// Oobinline enables SO_OOBINLINE, causing out-of-band data to be delivered
// inline with the regular receive stream.
func (s *Socket) Oobinline(flag bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var set int
	if flag {
		set = 1
	}

	err := s.control(func(fd uintptr) error {
		return unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_OOBINLINE, set)
	})
	if err != nil {
		return s.fail(ErrorSetOpt, err)
	}
	return nil
}

// TimeOutR sets the read deadline to d from now. The deadline is absolute: it
// is not re-armed by later Read/ReadFull calls, and a non-blocking Read
// replaces it with its own short deadline.
func (s *Socket) TimeOutR(d time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.reader()
	if !ok {
		return nil
	}
	if err := c.SetReadDeadline(time.Now().Add(d)); err != nil {
		return s.fail(ErrorSetFl, err)
	}
	return nil
}

// TimeOutS sets the write deadline to d from now. The deadline is absolute:
// it is not re-armed by later Write/WriteFull calls, and a non-blocking Write
// replaces it with its own short deadline.
func (s *Socket) TimeOutS(d time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.reader()
	if !ok {
		return nil
	}
	if err := c.SetWriteDeadline(time.Now().Add(d)); err != nil {
		return s.fail(ErrorSetFl, err)
	}
	return nil
}

// control runs fn against the raw descriptor backing the socket's current
// connection, listener, or packet-conn, whichever is set.
func (s *Socket) control(fn func(fd uintptr) error) error {
	var sc syscall.Conn
	switch {
	case s.cn != nil:
		if v, ok := s.cn.(syscall.Conn); ok {
			sc = v
		}
	case s.ln != nil:
		if v, ok := s.ln.(syscall.Conn); ok {
			sc = v
		}
	case s.pc != nil:
		if v, ok := s.pc.(syscall.Conn); ok {
			sc = v
		}
	}
	if sc == nil {
		return fmt.Errorf("socket has no raw descriptor available")
	}

	raw, err := sc.SyscallConn()
	if err != nil {
		return err
	}

	var controlErr error
	err = raw.Control(func(fd uintptr) {
		controlErr = fn(fd)
	})
	if err != nil {
		return err
	}
	return controlErr
}

// Fd returns the raw descriptor backing the socket, for registration with the
// reactor's poller. It fails if the socket has not yet been created.
func (s *Socket) Fd() (uintptr, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var fd uintptr
	err := s.control(func(f uintptr) error {
		fd = f
		return nil
	})
	return fd, err
}
