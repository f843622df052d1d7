/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
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

// Package logger wraps logrus with the level/entry/fields vocabulary shared by every
// component in this module, so a server, a client, a publisher and a subscriber all
// produce the same shaped structured log line.
package logger

import (
	"io"
	"sync"

	logent "github.com/sabouaram/msgrt/logger/entry"
	logfld "github.com/sabouaram/msgrt/logger/fields"
	loglvl "github.com/sabouaram/msgrt/logger/level"
	logtps "github.com/sabouaram/msgrt/logger/types"
	"github.com/sirupsen/logrus"
)

// FuncLog returns a Logger instance; used to defer logger resolution until it's needed.
type FuncLog func() Logger

// Logger is the logging facade passed to every component constructor in this module.
type Logger interface {
	io.WriteCloser

	SetLevel(lvl loglvl.Level)
	GetLevel() loglvl.Level

	SetFields(fields logfld.Fields)
	GetFields() logfld.Fields

	AddHook(hook logtps.Hook)

	// Clone returns a copy of the logger with an independent field set, sharing the
	// same underlying logrus output.
	Clone() Logger

	Entry(lvl loglvl.Level, message string, args ...interface{}) logent.Entry

	Debug(message string, data interface{}, args ...interface{})
	Info(message string, data interface{}, args ...interface{})
	Warning(message string, data interface{}, args ...interface{})
	Error(message string, data interface{}, args ...interface{})
	Fatal(message string, data interface{}, args ...interface{})

	// CheckError logs err (if non-nil) at lvlKO and returns true, or logs at lvlOK
	// (if message is non-empty) and returns false. A frequent pattern at call sites
	// that must log either outcome of a fallible operation.
	CheckError(lvlKO, lvlOK loglvl.Level, message string, err error) bool
}

// New returns a Logger at the given level, writing to logrus's default, unconfigured output.
func New(lvl loglvl.Level) Logger {
	l := &logger{
		m: sync.Mutex{},
		l: logrus.New(),
		f: logfld.New(nil),
	}

	l.l.SetLevel(lvl.Logrus())
	return l
}
