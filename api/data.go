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

import (
	"time"

	"github.com/sundro/xnet/httpcodec"
	"github.com/sundro/xnet/reactor"
	"github.com/sundro/xnet/socket"
	"github.com/sundro/xnet/wscodec"
)

// receiveChunkSize mirrors the HTTP and WebSocket codecs' own read burst
// size, so a raw connection drains at the same granularity.
const receiveChunkSize = 4096

// listener pairs a registered listening socket with the Endpoint that
// created it; it is the reactor context for every TypeListener EventData.
type listener struct {
	endpoint *Endpoint
	sock     *socket.Socket
	ed       *reactor.EventData
}

// Data is the per-connection state the facade hands to every Callback
// invocation: its socket, its codec handle (when its Endpoint names one),
// and the buffers its lifecycle drains and fills. A Data is only ever
// touched from inside Service, so it carries no locking of its own.
type Data struct {
	api      *API
	ed       *reactor.EventData
	sock     *socket.Socket
	endpoint *Endpoint

	http *httpcodec.HTTP
	ws   *wscodec.Frame

	rxBuffer []byte
	txBuffer []byte

	timerID  uint64
	hasTimer bool

	cancel            bool
	wantDrainCallback bool

	user interface{}
}

func newData(a *API, sock *socket.Socket, ep *Endpoint) *Data {
	d := &Data{api: a, sock: sock, endpoint: ep}
	switch ep.Kind {
	case KindHTTP:
		d.http = httpcodec.New()
	case KindWS:
		d.ws = wscodec.NewFrame()
	}
	return d
}

// Socket returns the connection's underlying transport.
func (d *Data) Socket() *socket.Socket { return d.sock }

// Endpoint returns the Endpoint this connection was accepted from or dialed
// from.
func (d *Data) Endpoint() *Endpoint { return d.endpoint }

// HTTP returns the connection's HTTP codec handle, or nil when its Endpoint
// isn't KindHTTP.
func (d *Data) HTTP() *httpcodec.HTTP { return d.http }

// WS returns the connection's WebSocket frame handle, or nil when its
// Endpoint isn't KindWS.
func (d *Data) WS() *wscodec.Frame { return d.ws }

// RxBuffer returns the raw bytes accumulated so far for a KindRaw
// connection; it is nil for KindHTTP/KindWS connections, whose bytes live
// in HTTP()/WS() instead.
func (d *Data) RxBuffer() []byte { return d.rxBuffer }

// ClearRxBuffer discards RxBuffer's contents, keeping its capacity.
func (d *Data) ClearRxBuffer() { d.rxBuffer = d.rxBuffer[:0] }

// EnqueueWrite appends b to the connection's tx_buffer, arming POLLOUT if
// the buffer was empty. Bytes already enqueued are always sent before b.
func (d *Data) EnqueueWrite(b []byte) error {
	if len(b) == 0 {
		return nil
	}

	empty := len(d.txBuffer) == 0
	d.txBuffer = append(d.txBuffer, b...)

	if empty && d.ed != nil {
		if err := d.api.rx.Modify(d.ed, d.ed.Mask()|reactor.MaskOut); err != nil {
			return ErrorRegister.Error(err)
		}
	}
	return nil
}

// PendingWrite reports how many tx_buffer bytes are still unflushed.
func (d *Data) PendingWrite() int { return len(d.txBuffer) }

// RequestWriteNotify asks the facade to fire a single EventWrite the next
// time tx_buffer fully drains, in place of the default EventComplete. This
// is unrelated to ActionUserCall: that return value makes the reactor
// re-dispatch the connection as a read immediately, this flag defers one future event to
// whenever the socket actually finishes flushing.
func (d *Data) RequestWriteNotify() { d.wantDrainCallback = true }

// SetCancel marks the connection for forced teardown: the next I/O dispatch
// disconnects it instead of invoking its codec, and EventClosed still fires
// exactly once.
func (d *Data) SetCancel(flag bool) { d.cancel = flag }

// Cancelled reports the current cancel flag.
func (d *Data) Cancelled() bool { return d.cancel }

// ArmTimer (re)arms the connection's inactivity timer. A second call before
// expiry extends the deadline rather than stacking a second timer.
func (d *Data) ArmTimer(timeout time.Duration) error {
	if d.hasTimer {
		return d.api.rx.ExtendTimer(d.timerID, timeout)
	}

	id, err := d.api.rx.AddTimer(d, timeout)
	if err != nil {
		return ErrorRegister.Error(err)
	}
	d.timerID = id
	d.hasTimer = true
	return nil
}

// HasTimer reports whether ArmTimer has been called for this connection.
func (d *Data) HasTimer() bool { return d.hasTimer }

// UserData returns the opaque value SetUserData last stored.
func (d *Data) UserData() interface{} { return d.user }

// SetUserData attaches a caller-owned value to the connection, carried
// across every Callback invocation for its lifetime.
func (d *Data) SetUserData(v interface{}) { d.user = v }
