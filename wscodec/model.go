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

import "encoding/binary"

// CreateFrame builds a complete RFC6455 frame (header + payload) with no
// masking, matching a server's obligation to send unmasked frames. Header
// width follows the payload length: 2 bytes up to 125, 4 bytes ("126" plus a
// 16-bit length) up to 65535, 10 bytes ("127" plus a 64-bit length) above.
func CreateFrame(payload []byte, frameType FrameType, fin bool) ([]byte, error) {
	op, ok := opCodeForType(frameType)
	if !ok {
		return nil, ErrorType.Error()
	}
	return createFrameBytes(payload, op, fin)
}

func createFrameBytes(payload []byte, opCode uint8, fin bool) ([]byte, error) {
	length := len(payload)

	var finBit uint8
	if fin {
		finBit = 1
	}
	startByte := (finBit << 7) | (opCode & 0x0F)

	var lengthByte uint8
	headerSize := 2
	switch {
	case length <= 125:
		lengthByte = uint8(length)
	case length <= 65535:
		lengthByte = 126
		headerSize += 2
	default:
		lengthByte = 127
		headerSize += 8
	}

	frame := make([]byte, headerSize+length)
	frame[0] = startByte
	frame[1] = lengthByte

	switch lengthByte {
	case 126:
		binary.BigEndian.PutUint16(frame[2:4], uint16(length))
	case 127:
		binary.BigEndian.PutUint64(frame[2:10], uint64(length))
	}

	copy(frame[headerSize:], payload)
	return frame, nil
}

// Frame is a single WebSocket frame, built incrementally from AppendData and
// Parse as bytes arrive off the wire. A Frame is single-use: Reset clears it
// for reuse with the next one.
type Frame struct {
	typ     FrameType
	opCode  uint8
	fin     bool
	masked  bool
	maskKey [4]byte

	payloadLength uint64
	headerSize    int
	complete      bool

	maxPayload uint64

	buf []byte
}

// NewFrame returns an empty Frame ready for AppendData/Parse.
func NewFrame() *Frame {
	return &Frame{}
}

// Reset clears f for reuse, keeping its configured SetMaxPayload limit.
func (f *Frame) Reset() {
	maxPayload := f.maxPayload
	*f = Frame{maxPayload: maxPayload}
}

// SetMaxPayload caps the payload length Parse will accept; zero disables the
// check.
func (f *Frame) SetMaxPayload(n uint64) {
	f.maxPayload = n
}

// AppendData feeds newly-read bytes into f's buffer for Parse to consume.
func (f *Frame) AppendData(data []byte) error {
	if len(data) == 0 {
		return ErrorArgs.Error()
	}
	f.buf = append(f.buf, data...)
	return nil
}

// Type reports the frame's decoded opcode.
func (f *Frame) Type() FrameType { return f.typ }

// Fin reports the FIN bit.
func (f *Frame) Fin() bool { return f.fin }

// Masked reports whether the frame carried a mask key. Parse clears this
// once the payload has been unmasked in place.
func (f *Frame) Masked() bool { return f.masked }

// HeaderSize returns the decoded header width in bytes, including the mask
// key when present.
func (f *Frame) HeaderSize() int { return f.headerSize }

// IsComplete reports whether Parse has seen the full header and payload.
func (f *Frame) IsComplete() bool { return f.complete }

// Parse decodes as much of f's buffer as is available: the FIN/opcode byte,
// the length encoding, and the mask key if present. It returns
// StatusIncomplete whenever a needed field hasn't arrived yet, StatusInvalid
// for an unrecognized opcode, StatusFrameTooBig if the declared length
// exceeds SetMaxPayload, StatusComplete once payload bytes matching the
// declared length are buffered (unmasking them in place), and StatusParsed
// when the header resolved but payload bytes are still missing.
func (f *Frame) Parse() Status {
	f.complete = false
	n := len(f.buf)
	if n < 2 {
		return StatusIncomplete
	}

	startByte := f.buf[0]
	nextByte := f.buf[1]
	lengthByte := nextByte & 0x7F

	f.fin = startByte&0x80 != 0
	f.masked = nextByte&0x80 != 0
	f.opCode = startByte & 0x0F

	f.typ = frameTypeForOpCode(f.opCode)
	if f.typ == FrameInvalid {
		return StatusInvalid
	}

	switch {
	case lengthByte <= 125:
		f.payloadLength = uint64(lengthByte)
		f.headerSize = 2
	case lengthByte == 126:
		if n < 4 {
			return StatusIncomplete
		}
		f.payloadLength = uint64(binary.BigEndian.Uint16(f.buf[2:4]))
		f.headerSize = 4
	default:
		if n < 10 {
			return StatusIncomplete
		}
		f.payloadLength = binary.BigEndian.Uint64(f.buf[2:10])
		f.headerSize = 10
	}

	if f.maxPayload > 0 && f.payloadLength > f.maxPayload {
		return StatusFrameTooBig
	}

	if f.masked {
		if n < f.headerSize+4 {
			return StatusIncomplete
		}
		copy(f.maskKey[:], f.buf[f.headerSize:f.headerSize+4])
		f.headerSize += 4
	}

	frameLen := f.frameLength()
	if frameLen > 0 && f.complete {
		_ = f.unmask()
		return StatusComplete
	}
	return StatusParsed
}

// frameLength returns the total header+payload size implied by the already
// decoded fields, capped at the bytes actually buffered; it marks f complete
// as a side effect once the buffer holds that many bytes, the same coupling
// the teacher's C frame length accessor used.
func (f *Frame) frameLength() int {
	total := f.headerSize + int(f.payloadLength)
	if len(f.buf) < total {
		return len(f.buf)
	}
	f.complete = true
	return total
}

// checkPayload reports whether f has a non-empty payload buffered, and marks
// f complete once the buffered payload reaches the declared length.
func (f *Frame) checkPayload() bool {
	if len(f.buf) == 0 || f.payloadLength == 0 || f.headerSize == 0 {
		return false
	}
	if len(f.buf) <= f.headerSize {
		return false
	}
	if uint64(len(f.buf)-f.headerSize) >= f.payloadLength {
		f.complete = true
	}
	return true
}

// Payload returns the frame's payload bytes, which may be shorter than the
// declared length while more data is still arriving. Bytes of a following
// pipelined frame are not included.
func (f *Frame) Payload() []byte {
	if !f.checkPayload() {
		return nil
	}
	return f.buf[f.headerSize : len(f.buf)-f.GetExtraLength()]
}

// PayloadLength returns how many payload bytes are actually buffered right
// now, excluding any trailing bytes that belong to a following frame.
func (f *Frame) PayloadLength() int {
	if !f.checkPayload() {
		return 0
	}
	extra := f.GetExtraLength()
	return len(f.buf) - f.headerSize - extra
}

// GetExtraLength reports how many bytes beyond this complete frame are
// already buffered — the start of the next pipelined frame.
func (f *Frame) GetExtraLength() int {
	frameLen := f.frameLength()
	if frameLen == 0 || !f.complete {
		return 0
	}
	if frameLen >= len(f.buf) {
		return 0
	}
	return len(f.buf) - frameLen
}

// CutExtraData truncates f's buffer back to exactly this frame, discarding
// whatever trailing bytes GetExtraLength reported.
func (f *Frame) CutExtraData() error {
	extra := f.GetExtraLength()
	if extra == 0 {
		return nil
	}
	frameLen := f.headerSize + int(f.payloadLength)
	f.buf = f.buf[:frameLen]
	return nil
}

// GetExtraData copies the trailing bytes beyond this frame into dst. When
// appendTo is false dst is replaced rather than appended to.
func (f *Frame) GetExtraData(dst []byte, appendTo bool) ([]byte, error) {
	extra := f.GetExtraLength()
	if extra == 0 {
		return dst, nil
	}
	frameLen := f.headerSize + int(f.payloadLength)
	data := f.buf[frameLen : frameLen+extra]
	if !appendTo {
		dst = nil
	}
	return append(dst, data...), nil
}

// unmask XORs the payload in place against the mask key, cycling the key
// every 4 bytes per RFC6455.
func (f *Frame) unmask() error {
	if !f.masked {
		return nil
	}
	length := f.PayloadLength()
	if length == 0 {
		return ErrorMissingPayload.Error()
	}
	payload := f.buf[f.headerSize : f.headerSize+length]
	for i := range payload {
		payload[i] ^= f.maskKey[i%4]
	}
	f.masked = false
	return nil
}
