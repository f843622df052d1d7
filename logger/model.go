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

package logger

import (
	"fmt"
	"sync"
	"time"

	logent "github.com/sabouaram/msgrt/logger/entry"
	logfld "github.com/sabouaram/msgrt/logger/fields"
	loglvl "github.com/sabouaram/msgrt/logger/level"
	logtps "github.com/sabouaram/msgrt/logger/types"
	"github.com/sirupsen/logrus"
)

type logger struct {
	m sync.Mutex
	l *logrus.Logger
	f logfld.Fields
}

func (o *logger) Write(p []byte) (n int, err error) {
	o.m.Lock()
	defer o.m.Unlock()
	return o.l.Out.Write(p)
}

func (o *logger) Close() error {
	return nil
}

func (o *logger) SetLevel(lvl loglvl.Level) {
	o.m.Lock()
	defer o.m.Unlock()
	o.l.SetLevel(lvl.Logrus())
}

func (o *logger) GetLevel() loglvl.Level {
	o.m.Lock()
	defer o.m.Unlock()

	return loglvl.Parse(o.l.GetLevel().String())
}

func (o *logger) SetFields(fields logfld.Fields) {
	o.m.Lock()
	defer o.m.Unlock()
	o.f = fields
}

func (o *logger) GetFields() logfld.Fields {
	o.m.Lock()
	defer o.m.Unlock()
	return o.f
}

func (o *logger) AddHook(hook logtps.Hook) {
	o.m.Lock()
	defer o.m.Unlock()
	hook.RegisterHook(o.l)
}

func (o *logger) Clone() Logger {
	o.m.Lock()
	defer o.m.Unlock()

	return &logger{
		l: o.l,
		f: o.f.Clone(),
	}
}

func (o *logger) Entry(lvl loglvl.Level, message string, args ...interface{}) logent.Entry {
	if len(args) > 0 {
		message = fmt.Sprintf(message, args...)
	}

	e := logent.New(lvl).
		SetLogger(func() *logrus.Logger { return o.l }).
		SetEntryContext(time.Now(), 0, "", "", 0, message)

	if f := o.GetFields(); f != nil {
		e = e.FieldMerge(f)
	}

	return e
}

func (o *logger) log(lvl loglvl.Level, message string, data interface{}, args ...interface{}) {
	e := o.Entry(lvl, message, args...)
	if data != nil {
		e = e.DataSet(data)
	}
	e.Log()
}

func (o *logger) Debug(message string, data interface{}, args ...interface{}) {
	o.log(loglvl.DebugLevel, message, data, args...)
}

func (o *logger) Info(message string, data interface{}, args ...interface{}) {
	o.log(loglvl.InfoLevel, message, data, args...)
}

func (o *logger) Warning(message string, data interface{}, args ...interface{}) {
	o.log(loglvl.WarnLevel, message, data, args...)
}

func (o *logger) Error(message string, data interface{}, args ...interface{}) {
	o.log(loglvl.ErrorLevel, message, data, args...)
}

func (o *logger) Fatal(message string, data interface{}, args ...interface{}) {
	o.log(loglvl.FatalLevel, message, data, args...)
}

func (o *logger) CheckError(lvlKO, lvlOK loglvl.Level, message string, err error) bool {
	if err != nil {
		o.log(lvlKO, message, err)
		return true
	} else if message != "" {
		o.log(lvlOK, message, nil)
	}

	return false
}
