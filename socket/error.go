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

package socket

import "github.com/sundro/xnet/errors"

const (
	ErrorParamsEmpty errors.CodeError = iota + errors.MinPkgSocket
	ErrorFlags
	ErrorAlloc
	ErrorAddr
	ErrorCreate
	ErrorBind
	ErrorListen
	ErrorConnect
	ErrorAccept
	ErrorSetOpt
	ErrorSetFl
	ErrorGetFl
	ErrorSSLContext
	ErrorSSLHandshake
	ErrorRead
	ErrorWrite
	ErrorClosed
)

var isCodeError = false

func IsCodeError() bool {
	return isCodeError
}

func init() {
	isCodeError = errors.ExistInMapMessage(ErrorParamsEmpty)
	errors.RegisterIdFctMessage(ErrorParamsEmpty, getMessage)
}

func getMessage(code errors.CodeError) string {
	switch code {
	case errors.UNK_ERROR:
		return ""
	case ErrorParamsEmpty:
		return "given parameters are empty"
	case ErrorFlags:
		return "flags combination is invalid"
	case ErrorAlloc:
		return "cannot allocate TLS bundle"
	case ErrorAddr:
		return "address is empty or invalid"
	case ErrorCreate:
		return "cannot create socket"
	case ErrorBind:
		return "cannot bind socket"
	case ErrorListen:
		return "cannot listen on socket"
	case ErrorConnect:
		return "cannot connect socket"
	case ErrorAccept:
		return "cannot accept connection"
	case ErrorSetOpt:
		return "cannot set socket option"
	case ErrorSetFl:
		return "cannot set socket flags"
	case ErrorGetFl:
		return "cannot get socket flags"
	case ErrorSSLContext:
		return "cannot set up TLS context"
	case ErrorSSLHandshake:
		return "TLS handshake failed"
	case ErrorRead:
		return "read failed"
	case ErrorWrite:
		return "write failed"
	case ErrorClosed:
		return "socket is closed"
	}

	return ""
}
