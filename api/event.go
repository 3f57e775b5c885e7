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

// EventType names the reason a Callback was invoked.
type EventType uint8

const (
	EventError EventType = iota
	EventStatus
	EventListening
	EventAccepted
	EventRead
	EventWrite
	EventComplete
	EventClosed
	EventTimeout
	EventInterrupt
	EventUser
	EventHandshakeRequest
	EventHandshakeResponse
	EventHandshakeAnswer
	EventPing
	EventPong
	EventConnected
)

func (t EventType) String() string {
	switch t {
	case EventError:
		return "error"
	case EventStatus:
		return "status"
	case EventListening:
		return "listening"
	case EventAccepted:
		return "accepted"
	case EventRead:
		return "read"
	case EventWrite:
		return "write"
	case EventComplete:
		return "complete"
	case EventClosed:
		return "closed"
	case EventTimeout:
		return "timeout"
	case EventInterrupt:
		return "interrupt"
	case EventUser:
		return "user"
	case EventHandshakeRequest:
		return "handshake-request"
	case EventHandshakeResponse:
		return "handshake-response"
	case EventHandshakeAnswer:
		return "handshake-answer"
	case EventPing:
		return "ping"
	case EventPong:
		return "pong"
	case EventConnected:
		return "connected"
	}
	return "unknown"
}

// Event is delivered to Callback for every connection occurrence: accept,
// read, write drain, timeout, or teardown. Bytes holds the payload relevant
// to Type — a request body for EventRead on a KindHTTP connection, a frame
// payload for EventRead/EventPing/EventPong on a KindWS connection, or
// whatever raw bytes the socket produced for KindRaw.
type Event struct {
	Type   EventType
	Status Status
	Bytes  []byte
}
