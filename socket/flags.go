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

// Package socket provides a uniform, non-blocking-capable handle over stream,
// datagram, and UNIX-domain sockets, with optional TLS. It is the transport
// layer the reactor multiplexes and the HTTP/WebSocket codecs read and write
// through.
package socket

import "github.com/sundro/xnet/network/protocol"

// Flags is a bitmask describing the role, wire shape, and TLS/addressing
// preferences of a Socket. It is derived once by Init and consulted by Create
// to pick the syscalls that build the underlying descriptor.
type Flags uint32

const (
	FlagServer Flags = 1 << iota
	FlagClient
	FlagPeer

	FlagStream
	FlagDatagram
	FlagRaw

	FlagTLS
	FlagSSLv2
	FlagSSLv3

	FlagNonBlock

	FlagBroadcast
	FlagMulticast
	FlagUnicast

	FlagForceBind
	FlagReuseAddr

	FlagUnix
	FlagIPv6
)

// IsSet reports whether every bit in mask is present in f.
func (f Flags) IsSet(mask Flags) bool {
	return f&mask == mask
}

// IsAny reports whether any bit in mask is present in f.
func (f Flags) IsAny(mask Flags) bool {
	return f&mask != 0
}

// normalize applies the implied-bit rules from the socket layer contract:
// any SSL preference turns on TLS, and any membership flag implies a UDP
// (datagram) socket.
func (f Flags) normalize() Flags {
	if f.IsAny(FlagSSLv2 | FlagSSLv3) {
		f |= FlagTLS
	}
	if f.IsAny(FlagBroadcast | FlagMulticast | FlagUnicast) {
		f |= FlagDatagram
		f &^= FlagStream | FlagRaw
	}
	return f
}

// valid reports whether f names exactly one role and exactly one wire shape.
func (f Flags) valid() bool {
	role := f & (FlagServer | FlagClient | FlagPeer)
	shape := f & (FlagStream | FlagDatagram | FlagRaw)
	return onebit(uint32(role)) && onebit(uint32(shape))
}

func onebit(v uint32) bool {
	return v != 0 && v&(v-1) == 0
}

// derive computes the (protocol, stream-vs-datagram) pair implied by f, in
// the shape network/protocol.NetworkProtocol already models.
func (f Flags) derive() protocol.NetworkProtocol {
	switch {
	case f.IsSet(FlagUnix) && f.IsSet(FlagDatagram):
		return protocol.NetworkUnixGram
	case f.IsSet(FlagUnix):
		return protocol.NetworkUnix
	case f.IsSet(FlagIPv6) && f.IsSet(FlagDatagram):
		return protocol.NetworkUDP6
	case f.IsSet(FlagIPv6):
		return protocol.NetworkTCP6
	case f.IsSet(FlagDatagram):
		return protocol.NetworkUDP
	default:
		return protocol.NetworkTCP
	}
}
