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

package reactor

import "github.com/sundro/xnet/errors"

const (
	ErrorNoCallback errors.CodeError = iota + errors.MinPkgReactor
	ErrorMaxDescriptors
	ErrorCreate
	ErrorCtl
	ErrorInsert
	ErrorWait
	ErrorTimer
	ErrorExtend
	ErrorNotFound
	ErrorClosed
)

var isCodeError = false

func IsCodeError() bool {
	return isCodeError
}

func init() {
	isCodeError = errors.ExistInMapMessage(ErrorNoCallback)
	errors.RegisterIdFctMessage(ErrorNoCallback, getMessage)
}

func getMessage(code errors.CodeError) string {
	switch code {
	case errors.UNK_ERROR:
		return ""
	case ErrorNoCallback:
		return "reactor requires a non-nil callback"
	case ErrorMaxDescriptors:
		return "requested descriptor count exceeds the system limit"
	case ErrorCreate:
		return "cannot create polling primitive"
	case ErrorCtl:
		return "cannot register descriptor with the poller"
	case ErrorInsert:
		return "cannot insert event data into the registry"
	case ErrorWait:
		return "poller wait failed"
	case ErrorTimer:
		return "cannot create timer"
	case ErrorExtend:
		return "cannot extend timer"
	case ErrorNotFound:
		return "descriptor is not registered"
	case ErrorClosed:
		return "reactor is closed"
	}
	return ""
}
