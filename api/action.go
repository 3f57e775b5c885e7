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

import "github.com/sundro/xnet/reactor"

// Action is the callback's verdict, matching the shared subset of the
// reactor's own Action values numerically: ActionAccept and ActionBreak are
// facade-internal bookkeeping the user callback never needs to produce.
type Action int8

const (
	// ActionDisconnect tears the connection down: its codec is skipped, the
	// reactor clears its registration, and Closed fires exactly once.
	ActionDisconnect Action = -1
	// ActionNoAction leaves the connection exactly as it is; no mask change,
	// no further dispatch this tick.
	ActionNoAction Action = 0
	// ActionContinue is the default: keep the connection registered and wait
	// for the next readable/writable tick.
	ActionContinue Action = 1
	// ActionUserCall makes the reactor re-dispatch the connection immediately
	// as a read, before Service returns to polling: the connection's read
	// path runs again rather than the event that returned it. This is
	// distinct from Data.RequestWriteNotify, which defers a single future
	// Write event to when tx_buffer actually drains.
	ActionUserCall Action = 2
)

// Callback receives every Event for a connection, alongside its Data. data
// is nil only for EventListening, which has no associated connection yet.
type Callback func(ev Event, data *Data) Action

// translate maps an Action onto the reactor's own wider Action, so dispatch
// can apply it without api knowing anything about ActionAccept/ActionBreak.
func translate(action Action) reactor.Action {
	switch action {
	case ActionDisconnect:
		return reactor.ActionDisconnect
	case ActionUserCall:
		return reactor.ActionUserCall
	case ActionNoAction:
		return reactor.ActionNoAction
	default:
		return reactor.ActionContinue
	}
}
