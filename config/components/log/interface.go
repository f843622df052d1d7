/*
 * MIT License
 *
 * Copyright (c) 2022 Nicolas JUHEL
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

// Package log is the config component wrapping the module's default logger. Every other
// component (command server/client, publisher, subscriber) depends on it and
// retrieves the shared logger through GetLogger.
package log

import (
	libcfg "github.com/sabouaram/msgrt/config"
	liblog "github.com/sabouaram/msgrt/logger"
	loglvl "github.com/sabouaram/msgrt/logger/level"
)

const ComponentType = "log"

// Config is the viper-bound configuration model for the log component.
type Config struct {
	Level string `mapstructure:"level" json:"level" yaml:"level" validate:"required,oneof=panic fatal error warn warning info debug"`
}

type FuncLog func() liblog.Logger

// Component is the config component interface for the module's default logger.
type Component interface {
	libcfg.Component

	GetLogger() liblog.Logger
	SetLevel(lvl loglvl.Level)
}

// New returns a new, uninitialized log Component. Register it on a config.Config instance
// with ComponentSet before calling Start; the logger itself is built on the first Start.
func New() Component {
	return &componentLog{}
}
