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

// Package httpcodec is an incremental parser and assembler for HTTP/1.x
// requests and responses, driven by a streaming callback rather than a
// one-shot net/http-style round trip.
package httpcodec

// Status is the state Parse/Receive leave a packet in. It is distinct from
// the errors.CodeError values in error.go: those are operational failures
// (allocation, I/O, bad config); Status describes how far parsing of the
// current packet got.
type Status uint8

const (
	StatusNone Status = iota
	StatusInvalid
	StatusTerminated
	StatusIncomplete
	StatusComplete
	StatusParsed
	StatusHeaderTooBig
	StatusContentTooBig
)

func (s Status) String() string {
	switch s {
	case StatusNone:
		return "none"
	case StatusInvalid:
		return "invalid or unsupported HTTP packet"
	case StatusTerminated:
		return "termination was requested from the callback"
	case StatusIncomplete:
		return "data does not contain a full HTTP packet yet"
	case StatusComplete:
		return "successfully parsed HTTP packet header and body"
	case StatusParsed:
		return "successfully parsed HTTP packet header"
	case StatusHeaderTooBig:
		return "HTTP header is not found within the active limit"
	case StatusContentTooBig:
		return "HTTP payload exceeds the active limit"
	}
	return "unknown status"
}

// Type distinguishes a request packet from a response packet. Init leaves it
// at TypeInitial until InitRequest/InitResponse (or Parse, from the wire) set
// it.
type Type uint8

const (
	TypeInitial Type = iota
	TypeRequest
	TypeResponse
)
