/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

/*
Package logger provides a structured logging facade built on top of logrus, tuned
for the single-threaded reactor core: every write is synchronous, there are no
background goroutines to start or stop, and Close is a best-effort no-op.

# Overview

Logger extends io.WriteCloser and adds:

  - Level-based filtering with six standard levels (Debug, Info, Warn, Error, Fatal, Panic)
  - Structured logging through default fields and per-entry fields (logger/fields)
  - Automatic caller tracking (file, line, function name, goroutine ID)
  - stdout/stderr sinks with independent color, stack and timestamp controls (logger/config)
  - Integration with the standard library log package and spf13/jwalterweatherman

Entries are built through logger/entry.Entry, and level values through logger/level.Level.

# Output

SetOptions wires two logrus hooks onto an internal *logrus.Logger: one covering
Info/Debug/Trace routed to stdout, the other covering Warn/Error/Fatal/Panic routed
to stderr. Both are plain logrus.Hook implementations (Levels/Fire) with no
background goroutine — Fire writes to the underlying writer inline. Color output
uses mattn/go-colorable unless OptionsStd.DisableColor is set.

# Usage

	log := logger.New(ctx)
	log.SetOptions(&logcfg.Options{
	    Stdout: &logcfg.OptionsStd{EnableTrace: true},
	})
	log.Info("listener started on %s", nil, addr)
	defer log.Close()

# Cloning

Clone duplicates a logger's level, fields and options into an independent
instance with its own context; mutating the clone never affects the original.
*/
package logger
