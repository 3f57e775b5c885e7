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

package wscodec

// FrameType is the RFC6455 opcode, decoded to a named constant. FrameInvalid
// is both the zero value and the result of decoding an opcode the protocol
// doesn't define.
type FrameType uint8

const (
	FrameContinuation FrameType = iota
	FrameText
	FrameBinary
	frameReserved1
	frameReserved2
	frameReserved3
	frameReserved4
	frameReserved5
	FrameClose
	FramePing
	FramePong
	frameReserved6
	frameReserved7
	frameReserved8
	frameReserved9
	frameReserved10
	FrameInvalid
)

func (t FrameType) String() string {
	switch t {
	case FrameContinuation:
		return "continuation"
	case FrameText:
		return "text"
	case FrameBinary:
		return "binary"
	case FrameClose:
		return "close"
	case FramePing:
		return "ping"
	case FramePong:
		return "pong"
	}
	return "invalid"
}

// frameTypeByOpCode and opCodeByFrameType mirror the teacher's lookup table,
// keeping opcode <-> type translation as one source of truth instead of two
// parallel switch statements that could drift apart.
var frameTypeByOpCode = [16]FrameType{
	0x0: FrameContinuation,
	0x1: FrameText,
	0x2: FrameBinary,
	0x3: frameReserved1,
	0x4: frameReserved2,
	0x5: frameReserved3,
	0x6: frameReserved4,
	0x7: frameReserved5,
	0x8: FrameClose,
	0x9: FramePing,
	0xA: FramePong,
	0xB: frameReserved6,
	0xC: frameReserved7,
	0xD: frameReserved8,
	0xE: frameReserved9,
	0xF: frameReserved10,
}

// opCodeForType returns the wire opcode for t, and false if t has none (only
// FrameInvalid has none, since every other value above is one of the 16
// reserved slots in frameTypeByOpCode).
func opCodeForType(t FrameType) (uint8, bool) {
	for op, ft := range frameTypeByOpCode {
		if ft == t {
			return uint8(op), true
		}
	}
	return 0, false
}

// frameTypeForOpCode classifies a raw 4-bit opcode.
func frameTypeForOpCode(op uint8) FrameType {
	if op > 0xF {
		return FrameInvalid
	}
	return frameTypeByOpCode[op]
}
