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

package httpcodec

// CallbackType is a bitmask selecting which event kinds reach the callback.
type CallbackType uint16

const (
	CallbackOther CallbackType = 1 << iota
	CallbackWrite
	CallbackError
	CallbackStatus
	CallbackReadHeader
	CallbackReadContent
)

// Has reports whether every bit in want is set in the mask.
func (c CallbackType) Has(want CallbackType) bool {
	return c&want == want
}

// Event is delivered to Callback for every fired event.
type Event struct {
	Type   CallbackType
	Status Status
	Data   []byte
}

// Action is the callback's verdict, narrower than the reactor's five-value
// Action: the HTTP codec only ever needs to know whether to keep buffering,
// to accept the chunk as already handled, to call the packet complete early,
// or to abandon it — there is no accept/break/user-call concept at this
// layer, those belong to the API facade that drives the codec.
type Action int8

const (
	// ActionStop aborts the packet outright; Receive/Parse return
	// StatusTerminated.
	ActionStop Action = -1
	// ActionComplete marks the packet complete immediately without reading
	// any further bytes for it — the callback has already produced a full
	// response of its own.
	ActionComplete Action = 0
	// ActionConsume is the default: the codec keeps buffering and parsing
	// normally.
	ActionConsume Action = 1
)

// Callback receives every event selected by the packet's CallbackType mask.
type Callback func(h *HTTP, ev Event) Action

// fire invokes cb if set and ev.Type is in the packet's mask; it returns
// ActionConsume when there is no callback or the event is masked out, so
// callers can treat the return value uniformly.
func (h *HTTP) fire(ev Event) Action {
	if h.cb == nil || !h.cbMask.Has(ev.Type) {
		return ActionConsume
	}
	return h.cb(h, ev)
}

// fireStatus reports a Status through the Error/Status event classes: any
// Status below StatusTerminated is an error class, StatusTerminated and
// above are lifecycle status reports.
func (h *HTTP) fireStatus(s Status) Status {
	typ := CallbackStatus
	if s < StatusTerminated {
		typ = CallbackError
	}
	if h.fire(Event{Type: typ, Status: s}) == ActionStop {
		return StatusTerminated
	}
	return s
}
