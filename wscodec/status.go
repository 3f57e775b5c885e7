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

// Package wscodec parses and assembles RFC6455 WebSocket frames: FIN/opcode
// byte, the 7/16/64-bit length encoding, masking, and the trailing-bytes
// handling a pipelined connection needs between frames.
package wscodec

// Status is the outcome of Parse.
type Status uint8

const (
	StatusNone Status = iota
	StatusInvalid
	StatusIncomplete
	StatusParsed
	StatusComplete
	StatusFrameTooBig
)

func (s Status) String() string {
	switch s {
	case StatusNone:
		return "none"
	case StatusInvalid:
		return "invalid or unsupported frame"
	case StatusIncomplete:
		return "header bytes still missing"
	case StatusParsed:
		return "header parsed, payload still incomplete"
	case StatusComplete:
		return "header and payload fully received"
	case StatusFrameTooBig:
		return "declared payload length exceeds the configured limit"
	}
	return "unknown status"
}
