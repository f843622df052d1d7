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

package log

import (
	"encoding/json"
	"sync"

	validator "github.com/go-playground/validator/v10"
	libcfg "github.com/sabouaram/msgrt/config"
	liberr "github.com/sabouaram/msgrt/errors"
	liblog "github.com/sabouaram/msgrt/logger"
	loglvl "github.com/sabouaram/msgrt/logger/level"
	spfcbr "github.com/spf13/cobra"
	spfvpr "github.com/spf13/viper"
)

type componentLog struct {
	m sync.Mutex

	key string
	ctx libcfg.FuncContext
	get libcfg.FuncComponentGet
	vpr libcfg.FuncComponentViper

	fsa, fsb func(cpt libcfg.Component) liberr.Error
	fra, frb func(cpt libcfg.Component) liberr.Error

	l liblog.Logger
}

func (o *componentLog) Type() string {
	return ComponentType
}

func (o *componentLog) Init(key string, ctx libcfg.FuncContext, get libcfg.FuncComponentGet, vpr libcfg.FuncComponentViper) {
	o.m.Lock()
	defer o.m.Unlock()

	o.key = key
	o.ctx = ctx
	o.get = get
	o.vpr = vpr
}

func (o *componentLog) RegisterFuncStart(before, after func(cpt libcfg.Component) liberr.Error) {
	o.m.Lock()
	defer o.m.Unlock()

	o.fsa = before
	o.fsb = after
}

func (o *componentLog) RegisterFuncReload(before, after func(cpt libcfg.Component) liberr.Error) {
	o.m.Lock()
	defer o.m.Unlock()

	o.fra = before
	o.frb = after
}

func (o *componentLog) RegisterFlag(Command *spfcbr.Command, Viper *spfvpr.Viper) error {
	Command.PersistentFlags().String(o.key+".level", "info", "default log level (panic, fatal, error, warn, info, debug)")
	return Viper.BindPFlag(o.key+".level", Command.PersistentFlags().Lookup(o.key+".level"))
}

func (o *componentLog) IsStarted() bool {
	o.m.Lock()
	defer o.m.Unlock()
	return o.l != nil
}

func (o *componentLog) IsRunning(atLeast bool) bool {
	return o.IsStarted()
}

func (o *componentLog) _loadConfig(getCfg libcfg.FuncComponentConfigGet) (*Config, liberr.Error) {
	cfg := &Config{Level: "info"}

	if err := getCfg(o.key, cfg); err != nil {
		return nil, ErrorComponentConfig.Error(err)
	}

	if val := validator.New(); val != nil {
		if err := val.Struct(cfg); err != nil {
			return nil, ErrorComponentConfig.Error(err)
		}
	}

	return cfg, nil
}

func (o *componentLog) _run(getCfg libcfg.FuncComponentConfigGet) liberr.Error {
	cfg, err := o._loadConfig(getCfg)
	if err != nil {
		return err
	}

	o.m.Lock()
	defer o.m.Unlock()

	if o.l == nil {
		o.l = liblog.New(loglvl.Parse(cfg.Level))
	} else {
		o.l.SetLevel(loglvl.Parse(cfg.Level))
	}

	return nil
}

func (o *componentLog) Start(getCfg libcfg.FuncComponentConfigGet) liberr.Error {
	if o.fsa != nil {
		if err := o.fsa(o); err != nil {
			return err
		}
	}

	if err := o._run(getCfg); err != nil {
		return err
	}

	if o.fsb != nil {
		return o.fsb(o)
	}

	return nil
}

func (o *componentLog) Reload(getCfg libcfg.FuncComponentConfigGet) liberr.Error {
	if o.fra != nil {
		if err := o.fra(o); err != nil {
			return err
		}
	}

	if err := o._run(getCfg); err != nil {
		return err
	}

	if o.frb != nil {
		return o.frb(o)
	}

	return nil
}

func (o *componentLog) Stop() {
	// the logger itself has no background resource to release; level stays at
	// whatever it was last set to so late log lines from other components'
	// shutdown paths are still emitted.
}

func (o *componentLog) DefaultConfig(indent string) []byte {
	p, _ := json.MarshalIndent(&Config{Level: "info"}, "", indent)
	return p
}

func (o *componentLog) Dependencies() []string {
	return nil
}

func (o *componentLog) GetLogger() liblog.Logger {
	o.m.Lock()
	defer o.m.Unlock()
	return o.l
}

func (o *componentLog) SetLevel(lvl loglvl.Level) {
	o.m.Lock()
	defer o.m.Unlock()
	o.l.SetLevel(lvl)
}
