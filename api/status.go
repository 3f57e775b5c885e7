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

// Status is the facade's own outcome code for an HTTP-speaking connection,
// carried on Event.Status and translated to a wire status line/body by
// RespondHTTP.
type Status uint8

const (
	StatusOK Status = iota
	StatusMissingToken
	StatusInvalidToken
	StatusMissingKey
	StatusInvalidKey
	StatusInvalidRequest
	StatusNotFound
	StatusMethodNotAllowed
	StatusProtocolError
)

// httpCode and httpText give the wire status line RespondHTTP writes for s.
func (s Status) httpCode() uint16 {
	switch s {
	case StatusOK:
		return 200
	case StatusMissingToken, StatusInvalidToken, StatusMissingKey, StatusInvalidKey:
		return 401
	case StatusInvalidRequest:
		return 400
	case StatusNotFound:
		return 404
	case StatusMethodNotAllowed:
		return 405
	}
	return 500
}

func (s Status) httpText() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusMissingToken:
		return "Missing auth basic header"
	case StatusInvalidToken:
		return "Invalid auth basic header"
	case StatusMissingKey:
		return "Missing API key header"
	case StatusInvalidKey:
		return "Invalid API key header"
	case StatusInvalidRequest:
		return "Invalid request URI"
	case StatusNotFound:
		return "API endpoint not found"
	case StatusMethodNotAllowed:
		return "Method not allowed"
	}
	return "Internal error"
}

// needsBasicChallenge reports whether s is a missing/invalid basic-auth
// status, in which case RespondHTTP adds a WWW-Authenticate challenge.
func (s Status) needsBasicChallenge() bool {
	return s == StatusMissingToken || s == StatusInvalidToken
}

func (s Status) String() string {
	return s.httpText()
}
