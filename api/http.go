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
	"encoding/base64"
	"encoding/json"
	"strings"

	"github.com/sundro/xnet/httpcodec"
)

// AuthResult is AuthorizeHTTP's verdict.
type AuthResult uint8

const (
	// AuthOK means the request carries valid credentials; the caller should
	// proceed to handle it.
	AuthOK AuthResult = iota
	// AuthReplySent means AuthorizeHTTP already enqueued an error response via
	// RespondHTTP; the caller has nothing further to do but let the
	// connection flush.
	AuthReplySent
)

// statusBody is the literal two-field JSON body every RespondHTTP reply
// carries; its shape is fixed by the wire contract, not by any general
// Endpoint marshaling concern, so it uses encoding/json directly rather
// than the cbor/toml/yaml stack the rest of api wires in for Endpoint.
type statusBody struct {
	Status string `json:"status"`
}

// AuthorizeHTTP checks an incoming request's Basic-auth header and/or API
// key header against the given expectations. An empty expectation skips
// that check. On failure it enqueues the matching error response itself (401
// for missing or wrong credentials, 400 when data carries no HTTP request)
// and returns AuthReplySent; the caller should not also call RespondHTTP.
func AuthorizeHTTP(data *Data, requireUser, requirePass, requireKey string) (AuthResult, error) {
	h := data.HTTP()
	if h == nil {
		return AuthReplySent, RespondHTTP(data, StatusInvalidRequest)
	}

	if requireKey != "" {
		key, ok := h.GetHeader("x-api-key")
		if !ok || key == "" {
			return AuthReplySent, RespondHTTP(data, StatusMissingKey)
		}
		if key != requireKey {
			return AuthReplySent, RespondHTTP(data, StatusInvalidKey)
		}
	}

	if requireUser != "" || requirePass != "" {
		header, ok := h.GetHeader("authorization")
		if !ok || header == "" {
			return AuthReplySent, RespondHTTP(data, StatusMissingToken)
		}

		user, pass, ok := parseBasicAuth(header)
		if !ok || user != requireUser || pass != requirePass {
			return AuthReplySent, RespondHTTP(data, StatusInvalidToken)
		}
	}

	return AuthOK, nil
}

// parseBasicAuth decodes a "Basic <base64(user:pass)>" Authorization header.
func parseBasicAuth(header string) (user, pass string, ok bool) {
	const prefix = "Basic "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", "", false
	}

	raw, err := base64.StdEncoding.DecodeString(header[len(prefix):])
	if err != nil {
		return "", "", false
	}

	pair := string(raw)
	idx := strings.IndexByte(pair, ':')
	if idx < 0 {
		return "", "", false
	}
	return pair[:idx], pair[idx+1:], true
}

// RespondHTTP assembles a {"status":"..."} reply for status and enqueues it
// on data's tx_buffer. It adds a WWW-Authenticate challenge for the
// missing/invalid basic-auth statuses, matching a server that wants the
// client to retry with credentials rather than just seeing a bare 401.
func RespondHTTP(data *Data, status Status) error {
	body, err := json.Marshal(statusBody{Status: status.httpText()})
	if err != nil {
		return ErrorAssemble.Error(err)
	}

	resp := httpcodec.New()
	resp.InitResponse(status.httpCode(), "1.1")
	if status.needsBasicChallenge() {
		if _, err := resp.AddHeader("WWW-Authenticate", `Basic realm="XAPI"`); err != nil {
			return ErrorAssemble.Error(err)
		}
	}
	if _, err := resp.AddHeader("Content-Type", "application/json"); err != nil {
		return ErrorAssemble.Error(err)
	}

	raw, err := resp.Assemble(body)
	if err != nil {
		return ErrorAssemble.Error(err)
	}

	return data.EnqueueWrite(raw)
}
