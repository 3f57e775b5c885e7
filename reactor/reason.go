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

// Package reactor is a single-threaded, cooperative event dispatcher that
// multiplexes file descriptors and timers behind one user callback. It is
// the thread of control the socket, HTTP codec, WebSocket codec, and API
// facade packages all run on top of.
package reactor

// Reason is delivered to the user callback alongside the EventData the event
// fired on.
type Reason uint8

const (
	ReasonRead Reason = iota
	ReasonWrite
	ReasonClosed
	ReasonHanged
	ReasonError
	ReasonException
	ReasonClear
	ReasonTimeout
)

func (r Reason) String() string {
	switch r {
	case ReasonRead:
		return "read"
	case ReasonWrite:
		return "write"
	case ReasonClosed:
		return "closed"
	case ReasonHanged:
		return "hanged"
	case ReasonError:
		return "error"
	case ReasonException:
		return "exception"
	case ReasonClear:
		return "clear"
	case ReasonTimeout:
		return "timeout"
	}
	return "unknown"
}
