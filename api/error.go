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

// Package api binds the reactor, socket, httpcodec, wscodec and urlparse
// packages into a single connection-oriented facade: one Callback per API,
// one Data per connection, driven entirely off Service's cooperative poll
// loop.
package api

import "github.com/sundro/xnet/errors"

const (
	ErrorInvalidArgs errors.CodeError = iota + errors.MinPkgAPI
	ErrorInvalidRole
	ErrorMissingKey
	ErrorInvalidKey
	ErrorMissingToken
	ErrorInvalidToken
	ErrorAuthFailure
	ErrorAssemble
	ErrorRegister
	ErrorResolve
	ErrorCrypt
	ErrorAlloc
	ErrorHanged
	ErrorClosed
	ErrorValidation
)

var isCodeError = false

func IsCodeError() bool {
	return isCodeError
}

func init() {
	isCodeError = errors.ExistInMapMessage(ErrorInvalidArgs)
	errors.RegisterIdFctMessage(ErrorInvalidArgs, getMessage)
}

func getMessage(code errors.CodeError) string {
	switch code {
	case errors.UNK_ERROR:
		return ""
	case ErrorInvalidArgs:
		return "invalid argument"
	case ErrorInvalidRole:
		return "invalid endpoint role"
	case ErrorMissingKey:
		return "missing API key header"
	case ErrorInvalidKey:
		return "invalid API key header"
	case ErrorMissingToken:
		return "missing auth basic header"
	case ErrorInvalidToken:
		return "invalid auth basic header"
	case ErrorAuthFailure:
		return "authorization failed"
	case ErrorAssemble:
		return "failed assembling a response"
	case ErrorRegister:
		return "failed registering a connection with the reactor"
	case ErrorResolve:
		return "failed resolving an endpoint address"
	case ErrorCrypt:
		return "TLS configuration error"
	case ErrorAlloc:
		return "failed allocating a socket"
	case ErrorHanged:
		return "connection hung up unexpectedly"
	case ErrorClosed:
		return "connection already closed"
	case ErrorValidation:
		return "endpoint configuration is invalid"
	}
	return ""
}
