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
	"github.com/sundro/xnet/httpcodec"
	"github.com/sundro/xnet/reactor"
	"github.com/sundro/xnet/runner/startStop"
	"github.com/sundro/xnet/socket"
	"github.com/sundro/xnet/wscodec"
)

// API binds a reactor to the socket/codec layers and a single user Callback:
// AddEndpoint creates a listener or an outbound connection, Service drives
// every connection's lifecycle one poll at a time.
//
// Service is meant to be called directly from the caller's own loop for the
// cooperative, single-threaded use case; ss is an optional StartStop wrapper
// (see run.go) for callers who would rather hand the poll loop off to a
// managed goroutine via Run/StopRun.
type API struct {
	rx  *reactor.Reactor
	cb  Callback
	log apiLogger
	ss  startStop.StartStop
}

// Create allocates an API whose reactor is pre-sized for maxFD descriptors (0
// uses the reactor's own default; the reactor grows past it on demand, so it
// is not a limit), delivering every connection event to cb. log may
// be a logger.Logger, an hclog.Logger, or nil for a default logger.Logger.
func Create(maxFD int, cb Callback, log interface{}) (*API, error) {
	if cb == nil {
		return nil, ErrorInvalidArgs.Error()
	}

	al, err := resolveLogger(log)
	if err != nil {
		return nil, err
	}

	a := &API{cb: cb, log: al}
	rx, err := reactor.Create(maxFD, a.onReactorEvent, false)
	if err != nil {
		return nil, ErrorRegister.Error(err)
	}
	a.rx = rx
	return a, nil
}

// AddEndpoint validates ep, creates its socket, and registers it with the
// reactor: a server Endpoint becomes a listener accepting future peers, a
// client Endpoint becomes a single outbound connection.
func (a *API) AddEndpoint(ep Endpoint) error {
	if err := ep.Validate(); err != nil {
		return err
	}

	flags, err := ep.flags()
	if err != nil {
		return err
	}

	sock, err := socket.Init(flags)
	if err != nil {
		return ErrorAlloc.Error(err)
	}

	if ep.TLS {
		cfg, err := buildTLSConfig(&ep)
		if err != nil {
			return err
		}
		sock.SetSSLCert(cfg)
	}

	addr, port, err := ep.resolveAddr()
	if err != nil {
		return err
	}

	if err := sock.Create(ep.MaxConn, addr, port); err != nil {
		return ErrorRegister.Error(err)
	}

	fd, err := sock.Fd()
	if err != nil {
		return ErrorRegister.Error(err)
	}

	switch ep.Role {
	case RoleServer:
		epCopy := ep
		ln := &listener{endpoint: &epCopy, sock: sock}
		ed, err := a.rx.Register(ln, int(fd), reactor.MaskIn, reactor.TypeListener)
		if err != nil {
			return ErrorRegister.Error(err)
		}
		ln.ed = ed
		a.invoke(Event{Type: EventListening}, nil)
		return nil

	case RoleClient:
		epCopy := ep
		data := newData(a, sock, &epCopy)
		ed, err := a.rx.Register(data, int(fd), reactor.MaskIn, reactor.TypePeer)
		if err != nil {
			return ErrorRegister.Error(err)
		}
		data.ed = ed
		a.invoke(Event{Type: EventConnected}, data)
		return nil

	default:
		return ErrorInvalidRole.Error()
	}
}

// Service runs one reactor polling iteration, dispatching every ready
// connection's events to Callback. See reactor.Reactor.Service.
func (a *API) Service(timeoutMs int) error {
	return a.rx.Service(timeoutMs)
}

// Close tears every listener and connection down and releases the reactor.
func (a *API) Close() error {
	return a.rx.Close()
}

func (a *API) invoke(ev Event, data *Data) Action {
	if a.cb == nil {
		return ActionContinue
	}
	return a.cb(ev, data)
}

// onReactorEvent is the single low-level reactor.Callback backing every API
// instance; it routes by the EventData's Type and, for ReasonClear, ensures
// teardown runs exactly once regardless of which path triggered it.
func (a *API) onReactorEvent(ed *reactor.EventData, reason reactor.Reason) reactor.Action {
	switch ed.Type() {
	case reactor.TypeListener:
		ln, _ := ed.Context().(*listener)
		if ln == nil {
			return reactor.ActionContinue
		}
		return a.onListenerEvent(ln, reason)

	case reactor.TypeTimer:
		data, _ := ed.Context().(*Data)
		return a.onTimerEvent(data)

	default:
		data, ok := ed.Context().(*Data)
		if !ok || data == nil {
			return reactor.ActionContinue
		}
		if reason == reactor.ReasonClear {
			return a.onClear(data)
		}
		return a.onPeerEvent(data, reason)
	}
}

func (a *API) onListenerEvent(ln *listener, reason reactor.Reason) reactor.Action {
	if reason != reactor.ReasonRead {
		return reactor.ActionContinue
	}

	peerSock, err := ln.sock.Accept()
	if err != nil {
		a.log.warnf("accept failed on %s: %v", ln.endpoint.Address, err)
		return reactor.ActionContinue
	}

	fd, err := peerSock.Fd()
	if err != nil {
		_ = peerSock.Close()
		return reactor.ActionContinue
	}

	data := newData(a, peerSock, ln.endpoint)
	ed, err := a.rx.Register(data, int(fd), reactor.MaskIn, reactor.TypePeer)
	if err != nil {
		_ = peerSock.Close()
		return reactor.ActionContinue
	}
	data.ed = ed

	a.invoke(Event{Type: EventAccepted}, data)
	return reactor.ActionAccept
}

// onClear runs teardown exactly once for data, however its disconnect was
// triggered: Delete always invokes ReasonClear before the registration is
// reusable, so this is the sole place EventClosed fires and resources free.
func (a *API) onClear(data *Data) reactor.Action {
	a.invoke(Event{Type: EventClosed}, data)

	if data.hasTimer {
		a.rx.RemoveTimer(data.timerID)
	}
	_ = data.sock.Close()

	return reactor.ActionContinue
}

func (a *API) onPeerEvent(data *Data, reason reactor.Reason) reactor.Action {
	switch reason {
	case reactor.ReasonWrite:
		return a.onPeerWritable(data)

	case reactor.ReasonRead:
		if data.cancel {
			return reactor.ActionDisconnect
		}
		return a.onPeerReadable(data)

	case reactor.ReasonClosed, reactor.ReasonHanged, reactor.ReasonError, reactor.ReasonException:
		a.invoke(Event{Type: EventError, Status: StatusProtocolError}, data)
		return reactor.ActionContinue

	default:
		return reactor.ActionContinue
	}
}

func (a *API) onPeerReadable(data *Data) reactor.Action {
	switch data.endpoint.Kind {
	case KindHTTP:
		return a.readHTTP(data)
	case KindWS:
		return a.readWS(data)
	default:
		return a.readRaw(data)
	}
}

func (a *API) readRaw(data *Data) reactor.Action {
	buf := make([]byte, receiveChunkSize)
	n, err := data.sock.Read(buf)
	if err != nil {
		a.invoke(Event{Type: EventError, Status: StatusProtocolError}, data)
		return reactor.ActionDisconnect
	}
	if n == 0 {
		switch data.sock.Status() {
		case socket.StatusWantRead:
			return reactor.ActionContinue
		case socket.StatusEOF:
			return reactor.ActionDisconnect
		}
		return reactor.ActionContinue
	}

	data.rxBuffer = append(data.rxBuffer, buf[:n]...)
	action := a.invoke(Event{Type: EventRead, Bytes: buf[:n]}, data)
	return translate(action)
}

func (a *API) readHTTP(data *Data) reactor.Action {
	status, err := data.http.Receive(data.sock)
	if err != nil {
		a.invoke(Event{Type: EventError, Status: StatusProtocolError}, data)
		return reactor.ActionDisconnect
	}

	switch status {
	case httpcodec.StatusIncomplete:
		return reactor.ActionContinue
	case httpcodec.StatusComplete:
		action := a.invoke(Event{Type: EventRead, Bytes: data.http.Body()}, data)
		return translate(action)
	default:
		a.invoke(Event{Type: EventError, Status: StatusProtocolError}, data)
		return reactor.ActionDisconnect
	}
}

// readWS drains data's socket into its Frame, firing an event per complete
// frame and looping immediately over any pipelined frame(s) already sitting
// in the buffer before returning to the poller.
func (a *API) readWS(data *Data) reactor.Action {
	for {
		status, err := fillWSFrame(data)
		if err != nil {
			a.invoke(Event{Type: EventError, Status: StatusProtocolError}, data)
			return reactor.ActionDisconnect
		}

		switch status {
		case wscodec.StatusIncomplete:
			return reactor.ActionContinue

		case wscodec.StatusComplete:
			ev := wsEventFor(data.ws.Type())
			payload := append([]byte(nil), data.ws.Payload()...)
			action := a.invoke(Event{Type: ev, Bytes: payload}, data)
			if action == ActionDisconnect {
				return reactor.ActionDisconnect
			}

			extra, _ := data.ws.GetExtraData(nil, false)
			data.ws.Reset()
			if len(extra) > 0 {
				if err := data.ws.AppendData(extra); err != nil {
					a.invoke(Event{Type: EventError, Status: StatusProtocolError}, data)
					return reactor.ActionDisconnect
				}
				continue
			}
			return translate(action)

		default:
			a.invoke(Event{Type: EventError, Status: StatusProtocolError}, data)
			return reactor.ActionDisconnect
		}
	}
}

func wsEventFor(t wscodec.FrameType) EventType {
	switch t {
	case wscodec.FramePing:
		return EventPing
	case wscodec.FramePong:
		return EventPong
	case wscodec.FrameClose:
		return EventClosed
	default:
		return EventRead
	}
}

// fillWSFrame reads off data's socket until its Frame resolves to something
// other than StatusIncomplete, mirroring httpcodec's own receiveHeader loop:
// a non-blocking socket that would block returns StatusIncomplete
// immediately so the reactor can re-invoke later, a blocking one loops to
// completion.
func fillWSFrame(data *Data) (wscodec.Status, error) {
	status := data.ws.Parse()

	buf := make([]byte, receiveChunkSize)
	for status == wscodec.StatusIncomplete {
		n, err := data.sock.Read(buf)
		if err != nil {
			return wscodec.StatusInvalid, ErrorResolve.Error(err)
		}
		if n == 0 {
			switch data.sock.Status() {
			case socket.StatusWantRead:
				return wscodec.StatusIncomplete, nil
			case socket.StatusEOF:
				return wscodec.StatusInvalid, ErrorClosed.Error()
			}
			continue
		}

		if err := data.ws.AppendData(buf[:n]); err != nil {
			return wscodec.StatusInvalid, err
		}
		status = data.ws.Parse()

		if status == wscodec.StatusIncomplete && data.sock.Flags().IsSet(socket.FlagNonBlock) {
			return wscodec.StatusIncomplete, nil
		}
	}
	return status, nil
}

func (a *API) onPeerWritable(data *Data) reactor.Action {
	if data.cancel {
		return reactor.ActionDisconnect
	}
	if len(data.txBuffer) == 0 {
		return reactor.ActionContinue
	}

	n, err := data.sock.Write(data.txBuffer)
	if err != nil {
		a.invoke(Event{Type: EventError, Status: StatusProtocolError}, data)
		return reactor.ActionDisconnect
	}
	data.txBuffer = data.txBuffer[n:]
	if len(data.txBuffer) > 0 {
		return reactor.ActionContinue
	}

	if data.wantDrainCallback {
		data.wantDrainCallback = false
		action := a.invoke(Event{Type: EventWrite}, data)
		return translate(action)
	}

	if data.ed != nil {
		if err := a.rx.Modify(data.ed, reactor.MaskIn); err != nil {
			return reactor.ActionDisconnect
		}
	}
	action := a.invoke(Event{Type: EventComplete}, data)
	return translate(action)
}

// onTimerEvent fires EventTimeout for data. A timer's EventData is an
// ephemeral, per-firing value the reactor synthesizes with fd=-1: it has no
// entry in the descriptor registry, so an ActionDisconnect verdict tears
// down data's real connection directly through its own stable EventData
// instead of relying on the reactor's automatic delete-on-disconnect path,
// which would operate on the wrong (ephemeral) handle.
func (a *API) onTimerEvent(data *Data) reactor.Action {
	if data == nil {
		return reactor.ActionContinue
	}

	action := a.invoke(Event{Type: EventTimeout}, data)
	if action == ActionDisconnect {
		if data.ed != nil {
			_ = a.rx.Delete(data.ed)
		}
		return reactor.ActionContinue
	}
	return reactor.ActionContinue
}
