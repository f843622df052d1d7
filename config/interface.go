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

package config

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	libctx "github.com/sabouaram/msgrt/context"
	liberr "github.com/sabouaram/msgrt/errors"
	liblog "github.com/sabouaram/msgrt/logger"
	spfcbr "github.com/spf13/cobra"
	spfvpr "github.com/spf13/viper"
)

// FuncEvent is a hook called around a lifecycle transition (start/reload/stop).
type FuncEvent func() liberr.Error

// FuncContext returns the shared application context, handed to every component at Init.
type FuncContext func() context.Context

// FuncComponentGet retrieves a sibling component by key, used to resolve Dependencies().
type FuncComponentGet func(key string) Component

// FuncComponentViper returns the process-wide viper instance, or nil if none was registered.
type FuncComponentViper func() *spfvpr.Viper

// FuncComponentConfigGet unmarshals the configuration section registered under key into model.
type FuncComponentConfigGet func(key string, model interface{}) error

// Config is the top-level registry and lifecycle driver for Components.
// It mirrors the component-oriented bootstrap used throughout this module: register
// components, register a viper provider, then Start/Reload/Stop them as one unit.
type Config interface {
	ComponentList

	// Context returns the process-wide context shared by every component.
	Context() context.Context

	// CancelAdd registers functions invoked when the shared context is cancelled. They are
	// kept in the shared key/value store, so their call order is not defined.
	CancelAdd(fct ...func())

	// CancelClean clears the cancel-function list registered via CancelAdd.
	CancelClean()

	// ContextMerge merges another typed context store into the one returned by Context.
	ContextMerge(ctx libctx.Config[string]) bool

	// ContextStore / ContextLoad expose the shared context as a simple key/value store,
	// independent of any single component, for cross-component wiring.
	ContextStore(key string, cfg interface{})
	ContextLoad(key string) interface{}

	// RegisterFuncViper exposes the viper instance to every component's FuncComponentViper.
	RegisterFuncViper(fct FuncComponentViper)

	// RegisterFuncStartBefore / RegisterFuncStartAfter bracket Start().
	RegisterFuncStartBefore(fct FuncEvent)
	RegisterFuncStartAfter(fct FuncEvent)

	// RegisterFuncReloadBefore / RegisterFuncReloadAfter bracket Reload().
	RegisterFuncReloadBefore(fct FuncEvent)
	RegisterFuncReloadAfter(fct FuncEvent)

	// RegisterFuncStopBefore / RegisterFuncStopAfter bracket Stop().
	RegisterFuncStopBefore(fct func())
	RegisterFuncStopAfter(fct func())

	// RegisterDefaultLogger exposes a default logger components may fall back to.
	RegisterDefaultLogger(fct liblog.FuncLog)
	GetDefaultLogger() liblog.Logger

	// Start runs ComponentStart for every registered component, honoring Dependencies().
	Start() liberr.Error

	// Reload runs ComponentReload for every registered component, honoring Dependencies().
	Reload() liberr.Error

	// Stop stops every component, ignoring Dependencies order.
	Stop()

	// Shutdown runs the cancel chain, stops every component, then exits the process.
	Shutdown(code int)
}

var (
	rootCtx context.Context
	rootCnl context.CancelFunc
	rootOne sync.Once
)

func rootInit() {
	rootOne.Do(func() {
		rootCtx, rootCnl = context.WithCancel(context.Background())
	})
}

// Shutdown cancels the package-wide root context, waking any WaitNotify caller.
func Shutdown() {
	rootInit()
	rootCnl()
}

// WaitNotify blocks until SIGINT/SIGTERM/SIGQUIT is received or the root context is cancelled.
func WaitNotify() {
	rootInit()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	select {
	case <-quit:
		rootCnl()
	case <-rootCtx.Done():
	}
}

// New returns a Config rooted on the package-wide cancellable context.
func New() Config {
	rootInit()

	c := &configModel{
		m:   sync.Mutex{},
		ctx: libctx.New[string](rootCtx),
		cpt: newComponentList(),
		fct: libctx.New[uint8](rootCtx),
	}

	go func() {
		<-c.ctx.Done()
		c.cancel()
	}()

	return c
}

// RegisterFlagRoot is a convenience wiring point for cmd/ harnesses: it registers every
// component's flags against a single cobra command plus its bound viper instance.
func RegisterFlagRoot(cfg Config, cmd *spfcbr.Command, vpr *spfvpr.Viper) error {
	return cfg.RegisterFlag(cmd, vpr)
}
