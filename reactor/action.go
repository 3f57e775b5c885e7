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

// Action is the only legal family of return values from a Callback. Service
// translates it into reactor bookkeeping: advance, deregister, re-enter, or
// abandon the descriptor loop.
type Action int8

const (
	// ActionDisconnect tears the descriptor down: Delete is called on its
	// EventData after the callback returns.
	ActionDisconnect Action = -1
	// ActionNoAction means the caller will act later; the reactor suppresses
	// any default behavior for this event.
	ActionNoAction Action = 0
	// ActionContinue proceeds to the next ready descriptor.
	ActionContinue Action = 1
	// ActionUserCall re-enters the callback immediately with the same
	// EventData and ReasonRead, for a caller that wants to keep draining.
	ActionUserCall Action = 2
	// ActionAccept signals that a new descriptor was registered as a side
	// effect of handling this one (e.g. a listener accepting a peer); Service
	// breaks out of the current ready-list iteration since it may now be
	// stale.
	ActionAccept Action = 3
	// ActionBreak exits Service entirely.
	ActionBreak Action = 4
)

// Callback is invoked once per fired event, and again for every ActionUserCall
// re-entry. ed is the EventData the event fired on; reason disambiguates why.
type Callback func(ed *EventData, reason Reason) Action
