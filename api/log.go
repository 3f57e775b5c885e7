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
	"context"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/sundro/xnet/logger"
)

// apiLogger is the minimal diagnostic surface the facade itself needs:
// one-line reports of accept failures, handshake retries and disconnect
// reasons. It exists so Create can accept either this repository's own
// logger.Logger or a bare hclog.Logger directly, without api depending on
// logger.Logger's much larger method set for its own internal logging.
type apiLogger interface {
	infof(format string, args ...interface{})
	warnf(format string, args ...interface{})
	errorf(format string, args ...interface{})
}

type nativeLogAdapter struct{ l logger.Logger }

func (n nativeLogAdapter) infof(format string, args ...interface{}) {
	n.l.Info(fmt.Sprintf(format, args...), nil)
}
func (n nativeLogAdapter) warnf(format string, args ...interface{}) {
	n.l.Warning(fmt.Sprintf(format, args...), nil)
}
func (n nativeLogAdapter) errorf(format string, args ...interface{}) {
	n.l.Error(fmt.Sprintf(format, args...), nil)
}

type hclogAdapter struct{ l hclog.Logger }

func (h hclogAdapter) infof(format string, args ...interface{}) {
	h.l.Info(fmt.Sprintf(format, args...))
}
func (h hclogAdapter) warnf(format string, args ...interface{}) {
	h.l.Warn(fmt.Sprintf(format, args...))
}
func (h hclogAdapter) errorf(format string, args ...interface{}) {
	h.l.Error(fmt.Sprintf(format, args...))
}

// resolveLogger accepts logger.Logger, hclog.Logger, or nil (which falls
// back to a fresh logger.Logger), and returns api's own minimal adapter
// over whichever was given.
func resolveLogger(log interface{}) (apiLogger, error) {
	switch v := log.(type) {
	case logger.Logger:
		return nativeLogAdapter{v}, nil
	case hclog.Logger:
		return hclogAdapter{v}, nil
	case nil:
		return nativeLogAdapter{logger.New(context.Background())}, nil
	default:
		return nil, ErrorInvalidArgs.Error()
	}
}
