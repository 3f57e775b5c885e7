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
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"sync"
	"syscall"
	"time"

	"golang.org/x/sys/unix"

	"github.com/sundro/xnet/certificates"
	liberr "github.com/sundro/xnet/errors"
	"github.com/sundro/xnet/network/protocol"
)

const defaultBacklog = 128

// Socket is a uniform handle over a TCP, UDP, or UNIX-domain connection, with
// an optional TLS session layered on top. A Socket is created empty by Init,
// then turned into a listening, connected, or accepted endpoint by Create or
// Accept.
type Socket struct {
	mu sync.Mutex

	flags  Flags
	proto  protocol.NetworkProtocol
	addr   string
	port   int

	status Status
	err    error

	ln net.Listener
	pc net.PacketConn
	cn net.Conn

	tlsCfg  certificates.TLSConfig
	tlsConn bool // true once the TLS handshake has completed and Close must shut it down
}

// Init validates flags, applies the implied-bit rules, and allocates a TLS
// bundle placeholder when any TLS preference is set. It returns ErrorFlags if
// flags name zero or more than one role, or zero or more than one wire shape.
func Init(flags Flags) (*Socket, error) {
	f := flags.normalize()
	if !f.valid() {
		return nil, ErrorFlags.Error()
	}

	s := &Socket{
		flags:  f,
		proto:  f.derive(),
		status: StatusOpen,
	}

	if f.IsSet(FlagTLS) {
		s.tlsCfg = certificates.New()
	}

	return s, nil
}

// Flags returns the normalized flags the socket was initialized with.
func (s *Socket) Flags() Flags {
	return s.flags
}

// Status returns the last known state of the socket.
func (s *Socket) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// LastError returns the error that produced the current status, or nil.
func (s *Socket) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// IsTLSConnected reports whether the TLS handshake has completed. Close uses
// this to decide whether the underlying connection still owes its peer a TLS
// shutdown (crypto/tls performs that shutdown as part of its own Close, so
// this is informational rather than a branch Close needs to take).
func (s *Socket) IsTLSConnected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tlsConn
}

func (s *Socket) fail(code liberr.CodeError, cause error) error {
	s.status = StatusError
	s.err = code.Error(cause)
	_ = s.closeLocked()
	return s.err
}

// Create opens the underlying connection described by the socket's flags.
// addr must be non-empty; UNIX sockets may omit port, every other protocol
// requires one. Servers bind and listen with net.Listen's kernel-managed
// backlog; maxConn is not applied to it. Clients connect synchronously. TLS servers attach the
// configured certificate bundle to the listener's accept path; TLS clients
// perform the handshake as part of Dial, using addr as the SNI server name.
func (s *Socket) Create(maxConn int, addr string, port int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if addr == "" {
		return s.fail(ErrorAddr, nil)
	}
	if port == 0 && !s.flags.IsSet(FlagUnix) {
		return s.fail(ErrorAddr, fmt.Errorf("port is required for %s", s.proto))
	}

	s.addr = addr
	s.port = port

	network, address := s.network(), s.address()
	if maxConn <= 0 {
		maxConn = defaultBacklog
	}
	_ = maxConn // accepted backlog size; net.Listen's own backlog is kernel-managed

	if s.flags.IsSet(FlagUnix) && s.flags.IsSet(FlagForceBind) && s.flags.IsSet(FlagServer) {
		_ = os.Remove(addr)
	}

	lc := net.ListenConfig{}
	if s.flags.IsSet(FlagReuseAddr) {
		lc.Control = reuseAddrControl
	}

	var err error
	switch {
	case s.flags.IsSet(FlagServer) && s.proto.IsStream():
		s.ln, err = lc.Listen(context.Background(), network, address)
		if err != nil {
			return s.fail(ErrorListen, err)
		}

	case s.flags.IsSet(FlagServer) && s.proto.IsDatagram():
		s.pc, err = lc.ListenPacket(context.Background(), network, address)
		if err != nil {
			return s.fail(ErrorBind, err)
		}
		if s.flags.IsSet(FlagBroadcast) {
			if e := s.control(func(fd uintptr) error {
				return unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_BROADCAST, 1)
			}); e != nil {
				return s.fail(ErrorSetOpt, e)
			}
		}

	case s.flags.IsSet(FlagClient) && s.proto.IsDatagram():
		s.cn, err = net.Dial(network, address)
		if err != nil {
			return s.fail(ErrorConnect, err)
		}

	default: // client, stream
		s.cn, err = net.Dial(network, address)
		if err != nil {
			return s.fail(ErrorConnect, err)
		}
		if s.flags.IsSet(FlagTLS) {
			if e := s.handshakeClient(); e != nil {
				return e
			}
		} else {
			s.status = StatusConnected
		}
	}

	if s.status != StatusConnected && s.status != StatusError {
		s.status = StatusOpen
	}
	if s.flags.IsSet(FlagNonBlock) {
		return s.nonBlockLocked(true)
	}
	return nil
}

func reuseAddrControl(_, _ string, c syscall.RawConn) error {
	var setErr error
	err := c.Control(func(fd uintptr) {
		setErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
	})
	if err != nil {
		return err
	}
	return setErr
}

func (s *Socket) network() string {
	switch s.proto {
	case protocol.NetworkUnix:
		return "unix"
	case protocol.NetworkUnixGram:
		return "unixgram"
	case protocol.NetworkUDP, protocol.NetworkUDP4, protocol.NetworkUDP6:
		return "udp"
	default:
		return "tcp"
	}
}

func (s *Socket) address() string {
	if s.flags.IsSet(FlagUnix) {
		return s.addr
	}
	return net.JoinHostPort(s.addr, strconv.Itoa(s.port))
}

// Accept waits for a new peer on a stream server socket (the listener's NB
// flag does not bound this wait), returning it as a freshly initialized
// Socket with the SERVER and NB bits cleared and PEER set. If the listener is
// TLS-enabled, the TLS handshake runs to completion or failure before Accept
// returns, because the peer is still blocking at that point; an incomplete
// handshake is never reported as StatusWantRead/StatusWantWrite here. A
// non-blocking listener sets NB on the peer after the handshake.
func (s *Socket) Accept() (*Socket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ln == nil {
		return nil, ErrorAccept.Error(fmt.Errorf("not a stream server socket"))
	}

	raw, err := s.ln.Accept()
	if err != nil {
		return nil, s.fail(ErrorAccept, err)
	}

	peerFlags := (s.flags &^ (FlagServer | FlagNonBlock)) | FlagPeer
	peer := &Socket{
		flags:  peerFlags,
		proto:  s.proto,
		cn:     raw,
		status: StatusOpen,
		tlsCfg: s.tlsCfg,
	}

	if s.flags.IsSet(FlagTLS) {
		if e := peer.handshakeServer(); e != nil {
			return peer, e
		}
	} else {
		peer.status = StatusConnected
	}

	if s.flags.IsSet(FlagNonBlock) {
		if e := peer.nonBlockLocked(true); e != nil {
			return peer, e
		}
	}

	return peer, nil
}

// Read performs a single best-effort read: it returns as soon as any data
// arrives, which may be fewer bytes than len(buf). Non-blocking callers see
// (0, nil) with Status() == StatusWantRead when the read would have blocked,
// and (0, nil) with Status() == StatusEOF when the peer has closed cleanly.
func (s *Socket) Read(buf []byte) (int, error) {
	return s.read(buf, false)
}

// ReadFull keeps reading until buf is full or the peer closes. It is the
// exact/chunked counterpart to Read.
func (s *Socket) ReadFull(buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := s.read(buf[total:], false)
		total += n
		if err != nil {
			return total, err
		}
		if n == 0 {
			break
		}
	}
	return total, nil
}

func (s *Socket) read(buf []byte, _ bool) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conn, ok := s.reader()
	if !ok {
		return 0, ErrorRead.Error(fmt.Errorf("socket has no readable connection"))
	}

	if s.flags.IsSet(FlagNonBlock) {
		_ = conn.SetReadDeadline(time.Now().Add(time.Millisecond))
	}

	n, err := conn.Read(buf)
	if err != nil {
		if isTimeout(err) {
			s.status = StatusWantRead
			return 0, nil
		}
		if isEOF(err) {
			s.status = StatusEOF
			return 0, nil
		}
		return 0, s.fail(ErrorRead, err)
	}

	s.status = StatusConnected
	return n, nil
}

// Write performs a single best-effort write, which may write fewer bytes than
// len(buf) for a non-blocking socket whose send buffer is full. Callers
// should retain the unwritten suffix and retry once the reactor signals
// writability again.
func (s *Socket) Write(buf []byte) (int, error) {
	return s.write(buf)
}

// WriteFull keeps writing until every byte of buf has been sent.
func (s *Socket) WriteFull(buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := s.write(buf[total:])
		total += n
		if err != nil {
			return total, err
		}
		if n == 0 && s.Status() == StatusWantWrite {
			break
		}
	}
	return total, nil
}

func (s *Socket) write(buf []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conn, ok := s.reader()
	if !ok {
		return 0, ErrorWrite.Error(fmt.Errorf("socket has no writable connection"))
	}

	if s.flags.IsSet(FlagNonBlock) {
		_ = conn.SetWriteDeadline(time.Now().Add(time.Millisecond))
	}

	n, err := conn.Write(buf)
	if err != nil {
		if isTimeout(err) {
			s.status = StatusWantWrite
			return n, nil
		}
		return n, s.fail(ErrorWrite, err)
	}

	s.status = StatusConnected
	return n, nil
}

func (s *Socket) reader() (net.Conn, bool) {
	if s.cn != nil {
		return s.cn, true
	}
	return nil, false
}

func isTimeout(err error) bool {
	ne, ok := err.(net.Error)
	return ok && ne.Timeout()
}

func isEOF(err error) bool {
	return errors.Is(err, io.EOF)
}

// Close is idempotent. A connected TLS socket is shut down before its
// underlying connection is closed; Close never returns an error for a socket
// that is already closed.
func (s *Socket) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closeLocked()
}

func (s *Socket) closeLocked() error {
	if s.status == StatusClosed {
		return nil
	}

	var err error
	if s.cn != nil {
		err = s.cn.Close()
	}
	if s.ln != nil {
		if e := s.ln.Close(); err == nil {
			err = e
		}
	}
	if s.pc != nil {
		if e := s.pc.Close(); err == nil {
			err = e
		}
	}

	s.status = StatusClosed
	s.tlsConn = false
	return err
}
