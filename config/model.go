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
	"fmt"
	"io"
	"os"
	"sync"

	libctx "github.com/sabouaram/msgrt/context"
	liberr "github.com/sabouaram/msgrt/errors"
	liblog "github.com/sabouaram/msgrt/logger"
	spfcbr "github.com/spf13/cobra"
	spfvpr "github.com/spf13/viper"
)

const (
	fctViper uint8 = iota
	fctStartBefore
	fctStartAfter
	fctReloadBefore
	fctReloadAfter
	fctStopBefore
	fctStopAfter
	fctLoggerDef
)

type configModel struct {
	m sync.Mutex

	ctx libctx.Config[string]
	cpt ComponentList
	fct libctx.Config[uint8]
}

func (c *configModel) _ComponentGetConfig(key string, model interface{}) error {
	if !c.cpt.ComponentHas(key) {
		return fmt.Errorf("component '%s' is not registered", key)
	}

	vpr := c.getViper()
	if vpr == nil {
		return ErrorConfigMissingViper.Error(nil)
	}

	return vpr.UnmarshalKey(key, model)
}

func (c *configModel) Context() context.Context {
	return c.ctx
}

func (c *configModel) ContextMerge(ctx libctx.Config[string]) bool {
	return c.ctx.Merge(ctx)
}

func (c *configModel) ContextStore(key string, cfg interface{}) {
	c.ctx.Store(key, cfg)
}

func (c *configModel) ContextLoad(key string) interface{} {
	v, _ := c.ctx.Load(key)
	return v
}

func (c *configModel) CancelAdd(fct ...func()) {
	for _, f := range fct {
		if f != nil {
			c.ctx.Store(fmt.Sprintf("__cancel_%p", f), f)
		}
	}
}

func (c *configModel) CancelClean() {
	c.ctx.Walk(func(key string, _ interface{}) bool {
		if len(key) > 9 && key[:9] == "__cancel_" {
			c.ctx.Delete(key)
		}
		return true
	})
}

func (c *configModel) cancel() {
	c.ctx.Walk(func(key string, val interface{}) bool {
		if len(key) > 9 && key[:9] == "__cancel_" {
			if f, ok := val.(func()); ok && f != nil {
				f()
			}
		}
		return true
	})

	c.Stop()
}

func (c *configModel) getViper() *spfvpr.Viper {
	if i, l := c.fct.Load(fctViper); !l {
		return nil
	} else if f, k := i.(FuncComponentViper); !k || f == nil {
		return nil
	} else {
		return f()
	}
}

func (c *configModel) RegisterFuncViper(fct FuncComponentViper) {
	c.fct.Store(fctViper, fct)
}

func (c *configModel) runEvent(slot uint8) liberr.Error {
	if i, l := c.fct.Load(slot); !l {
		return nil
	} else if f, k := i.(FuncEvent); !k || f == nil {
		return nil
	} else {
		return f()
	}
}

func (c *configModel) RegisterFuncStartBefore(fct FuncEvent) { c.fct.Store(fctStartBefore, fct) }
func (c *configModel) RegisterFuncStartAfter(fct FuncEvent)  { c.fct.Store(fctStartAfter, fct) }
func (c *configModel) RegisterFuncReloadBefore(fct FuncEvent) {
	c.fct.Store(fctReloadBefore, fct)
}
func (c *configModel) RegisterFuncReloadAfter(fct FuncEvent) { c.fct.Store(fctReloadAfter, fct) }

func (c *configModel) RegisterFuncStopBefore(fct func()) { c.fct.Store(fctStopBefore, fct) }
func (c *configModel) RegisterFuncStopAfter(fct func())  { c.fct.Store(fctStopAfter, fct) }

func (c *configModel) runStopEvent(slot uint8) {
	if i, l := c.fct.Load(slot); !l {
		return
	} else if f, k := i.(func()); k && f != nil {
		f()
	}
}

func (c *configModel) RegisterDefaultLogger(fct liblog.FuncLog) {
	c.fct.Store(fctLoggerDef, fct)
}

func (c *configModel) GetDefaultLogger() liblog.Logger {
	if i, l := c.fct.Load(fctLoggerDef); !l {
		return nil
	} else if f, k := i.(liblog.FuncLog); !k || f == nil {
		return nil
	} else {
		return f()
	}
}

func (c *configModel) Start() liberr.Error {
	if err := c.runEvent(fctStartBefore); err != nil {
		return err
	}

	if err := c.cpt.ComponentStart(c._ComponentGetConfig); err != nil {
		return err
	}

	return c.runEvent(fctStartAfter)
}

func (c *configModel) Reload() liberr.Error {
	if err := c.runEvent(fctReloadBefore); err != nil {
		return err
	}

	if err := c.cpt.ComponentReload(c._ComponentGetConfig); err != nil {
		return err
	}

	return c.runEvent(fctReloadAfter)
}

func (c *configModel) Stop() {
	c.runStopEvent(fctStopBefore)
	c.cpt.ComponentStop()
	c.runStopEvent(fctStopAfter)
}

func (c *configModel) Shutdown(code int) {
	c.cancel()
	os.Exit(code)
}

func (c *configModel) ComponentHas(key string) bool         { return c.cpt.ComponentHas(key) }
func (c *configModel) ComponentType(key string) string      { return c.cpt.ComponentType(key) }
func (c *configModel) ComponentGet(key string) Component    { return c.cpt.ComponentGet(key) }
func (c *configModel) ComponentDel(key string)              { c.cpt.ComponentDel(key) }
func (c *configModel) ComponentList() map[string]Component  { return c.cpt.ComponentList() }
func (c *configModel) ComponentKeys() []string              { return c.cpt.ComponentKeys() }
func (c *configModel) ComponentIsStarted() bool             { return c.cpt.ComponentIsStarted() }
func (c *configModel) ComponentIsRunning(atLeast bool) bool { return c.cpt.ComponentIsRunning(atLeast) }
func (c *configModel) DefaultConfig() io.Reader {
	return c.cpt.DefaultConfig()
}

func (c *configModel) ComponentStart(getCfg FuncComponentConfigGet) liberr.Error {
	return c.cpt.ComponentStart(getCfg)
}

func (c *configModel) ComponentReload(getCfg FuncComponentConfigGet) liberr.Error {
	return c.cpt.ComponentReload(getCfg)
}

func (c *configModel) ComponentStop() { c.cpt.ComponentStop() }

func (c *configModel) ComponentSet(key string, cpt Component) {
	cpt.Init(key, c.Context, c.ComponentGet, c.getViper)
	c.cpt.ComponentSet(key, cpt)
}

func (c *configModel) RegisterFlag(Command *spfcbr.Command, Viper *spfvpr.Viper) error {
	return c.cpt.RegisterFlag(Command, Viper)
}
