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

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sundro/xnet/socket"
)

const (
	defaultContentMax = 5 * 1024 * 1024 // XHTTP_PACKAGE_MAX
	defaultHeaderMax  = 32 * 1024       // XHTTP_HEADER_MAX
	receiveChunkSize  = 4096            // XHTTP_RX_SIZE
)

// HTTP is a single request or response packet, built incrementally by
// AddHeader/Assemble on the send side or by AppendData/Parse/Receive on the
// read side. A packet is single-use: InitRequest/InitResponse (or Init
// directly) resets it for reuse.
type HTTP struct {
	method  Method
	typ     Type
	version string
	uri     string
	code    uint16

	headers     *headerMap
	allowUpdate bool

	raw          []byte
	headerLength int
	headerCount  int
	contentLen   uint64

	contentMax uint64
	headerMax  uint64

	complete bool

	cb     Callback
	cbMask CallbackType
}

// New returns an HTTP packet ready for InitRequest/InitResponse, with the
// teacher's default size limits in force.
func New() *HTTP {
	return &HTTP{
		headers:    newHeaderMap(),
		contentMax: defaultContentMax,
		headerMax:  defaultHeaderMax,
	}
}

// SetCallback installs cb and the event mask it wants to receive.
func (h *HTTP) SetCallback(cb Callback, mask CallbackType) {
	h.cb = cb
	h.cbMask = mask
}

// AllowUpdate controls whether AddHeader may overwrite an existing key.
func (h *HTTP) AllowUpdate(flag bool) {
	h.allowUpdate = flag
}

// SetContentMax overrides the accepted body size; zero disables the check.
func (h *HTTP) SetContentMax(n uint64) {
	h.contentMax = n
}

// SetHeaderMax overrides the accepted header block size; zero disables the
// check.
func (h *HTTP) SetHeaderMax(n uint64) {
	h.headerMax = n
}

// Init resets h for a fresh packet of the given method, reusing its buffer
// when capacity allows.
func (h *HTTP) Init(method Method, initialSize int) {
	h.reset()
	h.method = method
	if initialSize > 0 && cap(h.raw) < initialSize {
		h.raw = make([]byte, 0, initialSize)
	}
}

// InitRequest prepares h as a request line of the given method/uri/version.
// An empty version defaults to "1.1".
func (h *HTTP) InitRequest(method Method, uri, version string) {
	h.Init(method, receiveChunkSize)
	h.typ = TypeRequest
	h.uri = uri
	if version == "" {
		version = "1.1"
	}
	h.version = version
}

// InitResponse prepares h as a status line of the given code/version.
func (h *HTTP) InitResponse(code uint16, version string) {
	h.Init(MethodDummy, receiveChunkSize)
	h.typ = TypeResponse
	h.code = code
	if version == "" {
		version = "1.1"
	}
	h.version = version
}

func (h *HTTP) reset() {
	h.headers.clear()
	h.raw = h.raw[:0]
	h.headerLength = 0
	h.headerCount = 0
	h.contentLen = 0
	h.complete = false
	h.typ = TypeInitial
	h.code = 0
	h.uri = ""
	h.version = ""
}

// Method returns the packet's HTTP method (requests only).
func (h *HTTP) Method() Method { return h.method }

// Type reports whether the packet is a request, a response, or not yet
// classified.
func (h *HTTP) Type() Type { return h.typ }

// StatusCode returns the response status code (responses only).
func (h *HTTP) StatusCode() uint16 { return h.code }

// Version returns the HTTP version string, e.g. "1.1".
func (h *HTTP) Version() string { return h.version }

// URI returns the request target (requests only).
func (h *HTTP) URI() string { return h.uri }

// IsComplete reports whether Assemble/Parse/Receive has fully resolved h.
func (h *HTTP) IsComplete() bool { return h.complete }

// GetHeader looks up a header by name, case-insensitively.
func (h *HTTP) GetHeader(name string) (string, bool) {
	return h.headers.get(name)
}

// HeaderCount returns the number of distinct headers currently stored.
func (h *HTTP) HeaderCount() int { return h.headers.len() }

// ContentLength returns the body length, as declared by the Content-Length
// header (Parse) or set by Assemble.
func (h *HTTP) ContentLength() uint64 { return h.contentLen }

// Body returns the bytes of the packet buffer that follow the header block.
func (h *HTTP) Body() []byte {
	if h.headerLength == 0 || len(h.raw) <= h.headerLength {
		return nil
	}
	return h.raw[h.headerLength:]
}

func (h *HTTP) bodySize() int {
	if h.headerLength == 0 || len(h.raw) <= h.headerLength {
		return 0
	}
	return len(h.raw) - h.headerLength
}

// Raw returns the full assembled or received buffer, header block included.
func (h *HTTP) Raw() []byte { return h.raw }

// AddHeader formats a value with fmt.Sprintf and stores it under name. It
// reports (0, nil) when the key already existed and AllowUpdate is false —
// the teacher's "none added" outcome rather than an error — and an error
// only when the formatted value is empty and the packet still carries no
// header at all.
func (h *HTTP) AddHeader(name, format string, args ...interface{}) (int, error) {
	val := fmt.Sprintf(format, args...)
	if val != "" {
		if !h.headers.set(name, val, h.allowUpdate) {
			return 0, nil
		}
	}
	h.complete = false
	if h.headers.len() == 0 {
		return 0, ErrorSetHeader.Error()
	}
	return h.headers.len(), nil
}

// AppendData feeds freshly-read bytes into the packet buffer for Parse to
// consume; Receive calls this internally, direct callers only need it when
// driving the packet from their own I/O loop.
func (h *HTTP) AppendData(data []byte) {
	h.raw = append(h.raw, data...)
}

// Assemble renders the request/status line, headers, and body into h's
// buffer and returns it. A non-empty body gets a forced Content-Length
// header, emitted after whatever AddHeader already queued (a Content-Length
// added earlier is overwritten in its original position). Assemble is
// idempotent once complete: a second call returns the same buffer.
func (h *HTTP) Assemble(body []byte) ([]byte, error) {
	if h.complete {
		return h.raw, nil
	}

	h.raw = h.raw[:0]
	h.headerLength = 0
	h.headerCount = 0

	switch h.typ {
	case TypeRequest:
		h.raw = append(h.raw, fmt.Sprintf("%s %s HTTP/%s\r\n", h.method, h.uri, h.version)...)
	case TypeResponse:
		h.raw = append(h.raw, fmt.Sprintf("HTTP/%s %d %s\r\n", h.version, h.code, statusText(h.code))...)
	default:
		return nil, ErrorAssemble.Error()
	}

	length := len(body)
	if length > 0 {
		prev := h.allowUpdate
		h.allowUpdate = true
		_, err := h.AddHeader("Content-Length", "%d", length)
		h.allowUpdate = prev
		if err != nil {
			return nil, err
		}
	}

	h.headers.walk(func(key, val string) {
		h.raw = append(h.raw, fmt.Sprintf("%s: %s\r\n", key, val)...)
	})
	h.raw = append(h.raw, "\r\n"...)

	h.headerLength = len(h.raw)
	h.headerCount = h.headers.len()
	if length > 0 {
		h.raw = append(h.raw, body...)
	}

	h.contentLen = uint64(length)
	h.complete = true
	return h.raw, nil
}

// Parse looks for a complete header block ("\r\n\r\n") in h's buffer and, if
// found, classifies the packet, extracts the request/status line and
// headers, and reports how far it got. It is safe to call repeatedly as more
// data arrives via AppendData; until the header block is seen it returns
// StatusIncomplete, or StatusHeaderTooBig once the buffer reaches the header
// limit.
func (h *HTTP) Parse() Status {
	idx := strings.Index(string(h.raw), "\r\n\r\n")
	if idx < 0 {
		if h.headerMax > 0 && uint64(len(h.raw)) >= h.headerMax {
			return h.fireStatus(StatusHeaderTooBig)
		}
		return StatusIncomplete
	}

	h.headerLength = idx + 4
	lines := strings.Split(string(h.raw[:idx]), "\r\n")
	if len(lines) == 0 || lines[0] == "" {
		return h.fireStatus(StatusInvalid)
	}
	first := lines[0]

	if strings.HasPrefix(first, "HTTP/") {
		h.typ = TypeResponse
	} else {
		h.typ = TypeRequest
	}

	version, ok := parseVersion(first, h.typ)
	if !ok {
		return h.fireStatus(StatusInvalid)
	}
	h.version = version

	if h.typ == TypeResponse {
		code, ok := parseStatusCode(first)
		if !ok {
			return h.fireStatus(StatusInvalid)
		}
		h.code = code
	} else {
		h.method = parseMethod(first)
		uri, ok := parseURI(first)
		if !ok {
			return h.fireStatus(StatusInvalid)
		}
		h.uri = uri
	}

	h.headers.clear()
	for _, line := range lines[1:] {
		if line == "" {
			continue
		}
		colon := strings.IndexByte(line, ':')
		if colon < 0 {
			continue
		}
		name := line[:colon]
		val := strings.TrimPrefix(line[colon+1:], " ")
		h.headers.setIfAbsent(name, val)
	}
	h.headerCount = h.headers.len()

	h.contentLen = 0
	if cl, ok := h.headers.get("content-length"); ok {
		if n, err := strconv.ParseUint(strings.TrimSpace(cl), 10, 64); err == nil {
			h.contentLen = n
		}
	}

	if h.contentMax > 0 && h.contentLen > h.contentMax {
		return h.fireStatus(StatusContentTooBig)
	}

	status := h.fireStatus(StatusParsed)
	if status == StatusTerminated {
		return status
	}
	if h.checkComplete() {
		return StatusComplete
	}
	return status
}

// checkComplete applies the teacher's completeness rule: a declared
// Content-Length is satisfied by what's already in the buffer, or there was
// no Content-Length and no Content-Type either (a bodyless packet).
func (h *HTTP) checkComplete() bool {
	_, hasType := h.headers.get("content-type")
	size := uint64(h.bodySize())
	complete := (h.contentLen > 0 && size >= h.contentLen) || (h.contentLen == 0 && !hasType)
	h.complete = complete
	return complete
}

// parseVersion extracts the HTTP version token from a status or request
// line, e.g. "HTTP/1.1" from either end of the line.
func parseVersion(line string, typ Type) (string, bool) {
	idx := strings.Index(line, "HTTP/")
	if idx < 0 {
		return "", false
	}
	rest := line[idx+len("HTTP/"):]
	end := strings.IndexAny(rest, " \r\n")
	if typ == TypeResponse {
		if end < 0 {
			return "", false
		}
		return rest[:end], true
	}
	if end >= 0 {
		rest = rest[:end]
	}
	if rest == "" {
		return "", false
	}
	return rest, true
}

// parseStatusCode extracts the numeric code from a status line, e.g. 200
// from "HTTP/1.1 200 OK".
func parseStatusCode(line string) (uint16, bool) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return 0, false
	}
	n, err := strconv.ParseUint(fields[1], 10, 16)
	if err != nil {
		return 0, false
	}
	return uint16(n), true
}

// parseURI extracts the request target from a request line, e.g. "/path"
// from "GET /path HTTP/1.1".
func parseURI(line string) (string, bool) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return "", false
	}
	return fields[1], true
}

// statusText returns the reason phrase for a status code, following the
// common ones the teacher's status tables carry; anything else falls back to
// a generic phrase so Assemble never emits a blank reason.
func statusText(code uint16) string {
	switch code {
	case 100:
		return "Continue"
	case 101:
		return "Switching Protocols"
	case 200:
		return "OK"
	case 201:
		return "Created"
	case 202:
		return "Accepted"
	case 204:
		return "No Content"
	case 301:
		return "Moved Permanently"
	case 302:
		return "Found"
	case 304:
		return "Not Modified"
	case 400:
		return "Bad Request"
	case 401:
		return "Unauthorized"
	case 403:
		return "Forbidden"
	case 404:
		return "Not Found"
	case 405:
		return "Method Not Allowed"
	case 408:
		return "Request Timeout"
	case 409:
		return "Conflict"
	case 411:
		return "Length Required"
	case 413:
		return "Payload Too Large"
	case 500:
		return "Internal Server Error"
	case 501:
		return "Not Implemented"
	case 502:
		return "Bad Gateway"
	case 503:
		return "Service Unavailable"
	case 504:
		return "Gateway Timeout"
	}
	switch {
	case code >= 100 && code < 200:
		return "Informational"
	case code >= 200 && code < 300:
		return "Success"
	case code >= 300 && code < 400:
		return "Redirection"
	case code >= 400 && code < 500:
		return "Client Error"
	case code >= 500:
		return "Server Error"
	}
	return "Unknown"
}

// IsSuccessCode reports whether code is in the 2xx range.
func IsSuccessCode(code uint16) bool {
	return code >= 200 && code < 300
}

// Receive drives the packet's header-then-body read sequence off sock: it
// reads in receiveChunkSize bursts, feeding each one through Parse until the
// header block resolves, then accumulates the body per ContentLength, or
// until EOF for a packet with a Content-Type but no Content-Length; a packet
// with neither is complete once its header block is. On a non-blocking
// socket it returns StatusIncomplete as soon as a read would block, so the
// caller can re-invoke Receive the next time the reactor reports the
// descriptor readable; on a blocking socket it loops until the packet
// resolves or an error occurs.
func (h *HTTP) Receive(sock *socket.Socket) (Status, error) {
	if h.complete {
		return StatusComplete, nil
	}

	status, err := h.receiveHeader(sock)
	if err != nil || status != StatusParsed {
		return status, err
	}
	return h.receiveContent(sock)
}

func (h *HTTP) receiveHeader(sock *socket.Socket) (Status, error) {
	buf := make([]byte, receiveChunkSize)
	status := StatusIncomplete

	for status == StatusIncomplete {
		n, err := sock.Read(buf)
		if err != nil {
			return StatusIncomplete, ErrorRead.Error(err)
		}
		if n == 0 {
			if sock.Status() == socket.StatusWantRead {
				return StatusIncomplete, nil
			}
			if sock.Status() == socket.StatusEOF {
				return StatusIncomplete, ErrorRead.Error(fmt.Errorf("peer closed before header completed"))
			}
			continue
		}

		h.AppendData(buf[:n])
		status = h.Parse()

		if status == StatusHeaderTooBig {
			return status, ErrorHeaderTooBig.Error()
		}
		if status == StatusContentTooBig {
			return status, ErrorContentTooBig.Error()
		}
		if status == StatusInvalid || status == StatusTerminated {
			return status, nil
		}
		if status != StatusIncomplete {
			break
		}
		if sock.Flags().IsSet(socket.FlagNonBlock) {
			return StatusIncomplete, nil
		}
	}

	if status != StatusParsed && status != StatusComplete {
		return status, nil
	}

	switch h.fire(Event{Type: CallbackReadHeader, Data: h.raw[:h.headerLength]}) {
	case ActionStop:
		return StatusTerminated, nil
	case ActionComplete:
		h.complete = true
		return StatusComplete, nil
	}

	if status == StatusComplete {
		return StatusComplete, nil
	}
	return StatusParsed, nil
}

func (h *HTTP) receiveContent(sock *socket.Socket) (Status, error) {
	if h.complete {
		return StatusComplete, nil
	}

	_, hasType := h.headers.get("content-type")
	if h.contentLen == 0 && !hasType {
		h.complete = true
		return StatusComplete, nil
	}

	buf := make([]byte, receiveChunkSize)
	for h.contentLen == 0 || uint64(h.bodySize()) < h.contentLen {
		n, err := sock.Read(buf)
		if err != nil {
			return StatusIncomplete, ErrorRead.Error(err)
		}
		if n == 0 {
			switch sock.Status() {
			case socket.StatusWantRead:
				return StatusIncomplete, nil
			case socket.StatusEOF:
				if h.contentLen == 0 {
					h.complete = true
					return StatusComplete, nil
				}
				return StatusIncomplete, ErrorRead.Error(fmt.Errorf("peer closed before content completed"))
			}
			continue
		}

		switch h.fire(Event{Type: CallbackReadContent, Data: buf[:n]}) {
		case ActionStop:
			return StatusTerminated, nil
		case ActionComplete:
			h.complete = true
			return StatusComplete, nil
		}

		h.AppendData(buf[:n])
		if h.contentMax > 0 && uint64(len(h.raw)) >= h.contentMax {
			return StatusContentTooBig, ErrorContentTooBig.Error()
		}
		if sock.Flags().IsSet(socket.FlagNonBlock) {
			return StatusIncomplete, nil
		}
	}

	h.complete = true
	return StatusComplete, nil
}
