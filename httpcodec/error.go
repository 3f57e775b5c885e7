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

import "github.com/sundro/xnet/errors"

const (
	ErrorInit errors.CodeError = iota + errors.MinPkgHTTPCodec
	ErrorAssemble
	ErrorConnect
	ErrorResolve
	ErrorAuth
	ErrorLink
	ErrorProto
	ErrorWrite
	ErrorRead
	ErrorTimeout
	ErrorSetHeader
	ErrorExists
	ErrorAlloc
	ErrorFDMode
	ErrorHeaderTooBig
	ErrorContentTooBig
)

var isCodeError = false

func IsCodeError() bool {
	return isCodeError
}

func init() {
	isCodeError = errors.ExistInMapMessage(ErrorInit)
	errors.RegisterIdFctMessage(ErrorInit, getMessage)
}

func getMessage(code errors.CodeError) string {
	switch code {
	case errors.UNK_ERROR:
		return ""
	case ErrorInit:
		return "failed to init HTTP packet"
	case ErrorAssemble:
		return "failed to assemble HTTP packet"
	case ErrorConnect:
		return "failed to connect remote server"
	case ErrorResolve:
		return "failed to resolve remote address"
	case ErrorAuth:
		return "failed to setup auth header"
	case ErrorLink:
		return "invalid or unsupported address"
	case ErrorProto:
		return "invalid or unsupported protocol"
	case ErrorWrite:
		return "failed to write HTTP packet to the socket"
	case ErrorRead:
		return "failed to read HTTP packet from the socket"
	case ErrorTimeout:
		return "failed to set receive timeout on the socket"
	case ErrorSetHeader:
		return "failed to set header field"
	case ErrorExists:
		return "header already exists"
	case ErrorAlloc:
		return "failed to grow the packet buffer"
	case ErrorFDMode:
		return "operation not allowed on a non-blocking descriptor"
	case ErrorHeaderTooBig:
		return "header block exceeds the configured maximum"
	case ErrorContentTooBig:
		return "content exceeds the configured maximum"
	}
	return ""
}
