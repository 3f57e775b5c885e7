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
	"crypto/tls"
	"time"

	"github.com/sundro/xnet/certificates"
)

// handshakeTimeout bounds how long a single non-blocking Handshake attempt is
// allowed to run before it is reported back as WantRead/WantWrite rather than
// as a completed or failed handshake.
const handshakeTimeout = 2 * time.Millisecond

// SetSSLCert installs the TLS configuration used for the handshake performed
// by Create (client) or Accept (server). Calling it after the handshake has
// already completed has no effect on the current connection.
func (s *Socket) SetSSLCert(cfg certificates.TLSConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tlsCfg = cfg
	s.flags |= FlagTLS
}

func (s *Socket) handshakeClient() error {
	cfg := s.tlsConfig()
	tc := tls.Client(s.cn, cfg)
	return s.stepHandshake(tc)
}

func (s *Socket) handshakeServer() error {
	cfg := s.tlsConfig()
	tc := tls.Server(s.cn, cfg)
	return s.stepHandshake(tc)
}

func (s *Socket) tlsConfig() *tls.Config {
	if s.tlsCfg == nil {
		s.tlsCfg = certificates.New()
	}
	return s.tlsCfg.TLS(s.addr)
}

// stepHandshake drives one attempt of the TLS handshake state machine. A
// blocking socket runs the handshake to completion or failure. A non-blocking
// socket bounds the attempt with handshakeTimeout: a timeout is reported as
// StatusWantRead (the common case, since a handshake spends most of its time
// waiting on the peer's next flight) rather than as an error, and the caller
// is expected to re-arm the connection on the reactor and call Accept/Create's
// underlying retry path again.
func (s *Socket) stepHandshake(tc *tls.Conn) error {
	s.status = StatusHandshaking

	if s.flags.IsSet(FlagNonBlock) {
		_ = tc.SetDeadline(time.Now().Add(handshakeTimeout))
	}

	err := tc.Handshake()
	s.cn = tc

	if err != nil {
		if isTimeout(err) {
			s.status = StatusWantRead
			return nil
		}
		return s.fail(ErrorSSLHandshake, err)
	}

	_ = tc.SetDeadline(time.Time{})
	s.status = StatusConnected
	s.tlsConn = true
	return nil
}
