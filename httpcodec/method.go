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

import "strings"

type Method uint8

const (
	MethodDummy Method = iota
	MethodPut
	MethodGet
	MethodPost
	MethodDelete
	MethodOptions
)

func (m Method) String() string {
	switch m {
	case MethodPut:
		return "PUT"
	case MethodGet:
		return "GET"
	case MethodPost:
		return "POST"
	case MethodDelete:
		return "DELETE"
	case MethodOptions:
		return "OPTIONS"
	case MethodDummy:
		return "DUMMY"
	}
	return "UNKNOWN"
}

// parseMethod classifies the first token of a request line. An unrecognized
// token (including a response's own "HTTP/1.1 200 OK" line) yields
// MethodDummy, matching the teacher's liberal C parser rather than rejecting
// it outright; Parse itself decides request vs. response from the "HTTP"
// prefix before this is ever consulted for a response.
func parseMethod(line string) Method {
	switch {
	case strings.HasPrefix(line, "GET"):
		return MethodGet
	case strings.HasPrefix(line, "PUT"):
		return MethodPut
	case strings.HasPrefix(line, "POST"):
		return MethodPost
	case strings.HasPrefix(line, "DELETE"):
		return MethodDelete
	case strings.HasPrefix(line, "OPTIONS"):
		return MethodOptions
	}
	return MethodDummy
}
