/***********************************************************************************************************************
 *
 *   MIT License
 *
 *   Copyright (c) 2021 Nicolas JUHEL
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

package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-colorable"
	"github.com/sirupsen/logrus"

	logcfg "github.com/sundro/xnet/logger/config"
	logtps "github.com/sundro/xnet/logger/types"
)

type stdWriter uint8

const (
	stdOut stdWriter = iota
	stdErr
)

// stdHook is a logrus.Hook writing directly to os.Stdout/os.Stderr (with
// optional color) for the levels it is registered with. It has no
// background goroutine: Fire writes synchronously.
type stdHook struct {
	w io.Writer
	l []logrus.Level
	s bool // Disable Stack
	d bool // Disable Timestamp
	t bool // Disable Trace
	a bool // Enable AccessLog
}

func newStdHook(opt *logcfg.OptionsStd, s stdWriter, lvls []logrus.Level) *stdHook {
	if opt == nil {
		opt = &logcfg.OptionsStd{}
	}

	if len(lvls) < 1 {
		lvls = logrus.AllLevels
	}

	var w io.Writer

	if opt.DisableColor {
		switch s {
		case stdErr:
			w = os.Stderr
		default:
			w = os.Stdout
		}
	} else {
		switch s {
		case stdErr:
			w = colorable.NewColorableStderr()
		default:
			w = colorable.NewColorableStdout()
		}
	}

	return &stdHook{
		w: w,
		l: lvls,
		s: opt.DisableStack,
		d: opt.DisableTimestamp,
		t: opt.EnableTrace,
		a: opt.EnableAccessLog,
	}
}

func (o *stdHook) Levels() []logrus.Level {
	return o.l
}

// Close satisfies io.Closer so stdHook instances can be tracked by the
// logger's closer; there is no background goroutine or handle to release.
func (o *stdHook) Close() error {
	return nil
}

func (o *stdHook) Fire(entry *logrus.Entry) error {
	ent := entry.Dup()
	ent.Level = entry.Level

	if o.s {
		ent.Data = o.filterKey(ent.Data, logtps.FieldStack)
	}

	if o.d {
		ent.Data = o.filterKey(ent.Data, logtps.FieldTime)
	}

	if !o.t {
		ent.Data = o.filterKey(ent.Data, logtps.FieldCaller)
		ent.Data = o.filterKey(ent.Data, logtps.FieldFile)
		ent.Data = o.filterKey(ent.Data, logtps.FieldLine)
	}

	var (
		p []byte
		e error
	)

	if o.a {
		if len(entry.Message) > 0 {
			if !strings.HasSuffix(entry.Message, "\n") {
				entry.Message += "\n"
			}
			p = []byte(entry.Message)
		} else {
			return nil
		}
	} else {
		if len(ent.Data) < 1 {
			return nil
		} else if p, e = ent.Bytes(); e != nil {
			return e
		}
	}

	if _, e = o.Write(p); e != nil {
		return e
	}

	return nil
}

func (o *stdHook) Write(p []byte) (n int, err error) {
	if o.w == nil {
		return 0, fmt.Errorf("logger: stdout/stderr hook writer not setup")
	}

	return o.w.Write(p)
}

func (o *stdHook) filterKey(f logrus.Fields, key string) logrus.Fields {
	if len(f) < 1 {
		return f
	}

	if _, ok := f[key]; !ok {
		return f
	}

	delete(f, key)
	return f
}
