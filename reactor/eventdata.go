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

package reactor

// Type tags what kind of descriptor an EventData wraps, mirroring the
// listener/peer/client/timer/event/custom distinction the API facade needs
// when it decides how to react to a fired event.
type Type uint8

const (
	TypeCustom Type = iota
	TypeListener
	TypeClient
	TypePeer
	TypeTimer
	TypeEvent
)

// Mask is the normalized event mask the reactor and its pollers exchange,
// independent of the platform's own bit values (see §6.4).
type Mask uint32

const (
	MaskIn Mask = 1 << iota
	MaskOut
	MaskPri
	MaskErr
	MaskHup
	MaskRDHup
)

// EventData is the per-descriptor handle the reactor hands out on Register
// and passes to the callback on every fired event. It is owned by the
// reactor's registry (an arena keyed by fd, per the generic context/arena
// pattern used elsewhere in this module) and is invalidated the moment
// Delete returns.
type EventData struct {
	fd   int
	typ  Type
	mask Mask
	ctx  interface{}

	open bool
}

// Fd returns the descriptor this handle was registered for.
func (e *EventData) Fd() int {
	return e.fd
}

// Type returns the descriptor's role tag.
func (e *EventData) Type() Type {
	return e.typ
}

// Mask returns the event mask currently armed for this descriptor.
func (e *EventData) Mask() Mask {
	return e.mask
}

// Context returns the opaque user value passed to Register.
func (e *EventData) Context() interface{} {
	return e.ctx
}

// Open reports whether this handle is still live in the reactor's registry.
func (e *EventData) Open() bool {
	return e.open
}
