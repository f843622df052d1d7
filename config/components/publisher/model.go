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

package publisher

import (
	"encoding/json"
	"sync"

	validator "github.com/go-playground/validator/v10"
	libcfg "github.com/sabouaram/msgrt/config"
	liblog "github.com/sabouaram/msgrt/config/components/log"
	liberr "github.com/sabouaram/msgrt/errors"
	liblogger "github.com/sabouaram/msgrt/logger"
	libpub "github.com/sabouaram/msgrt/publisher"
	libtrp "github.com/sabouaram/msgrt/transport"
	spfcbr "github.com/spf13/cobra"
	spfvpr "github.com/spf13/viper"
)

type componentPublisher struct {
	m sync.Mutex

	key string
	ctx libcfg.FuncContext
	get libcfg.FuncComponentGet
	vpr libcfg.FuncComponentViper

	fsa, fsb func(cpt libcfg.Component) liberr.Error
	fra, frb func(cpt libcfg.Component) liberr.Error

	logKey string
	obs    libpub.Observer

	tr  libtrp.Transport
	pub libpub.Publisher
}

func (o *componentPublisher) Type() string {
	return ComponentType
}

func (o *componentPublisher) Init(key string, ctx libcfg.FuncContext, get libcfg.FuncComponentGet, vpr libcfg.FuncComponentViper) {
	o.m.Lock()
	defer o.m.Unlock()

	o.key = key
	o.ctx = ctx
	o.get = get
	o.vpr = vpr
}

func (o *componentPublisher) RegisterFuncStart(before, after func(cpt libcfg.Component) liberr.Error) {
	o.m.Lock()
	defer o.m.Unlock()

	o.fsa = before
	o.fsb = after
}

func (o *componentPublisher) RegisterFuncReload(before, after func(cpt libcfg.Component) liberr.Error) {
	o.m.Lock()
	defer o.m.Unlock()

	o.fra = before
	o.frb = after
}

func (o *componentPublisher) RegisterFlag(Command *spfcbr.Command, Viper *spfvpr.Viper) error {
	flags := Command.PersistentFlags()

	flags.String(o.key+".url", "nats://127.0.0.1:4222", "NATS connection URL")
	flags.String(o.key+".name", "", "publisher identity name")
	flags.String(o.key+".info", "", "publisher identity free-form info")
	flags.String(o.key+".preferIface", "", "preferred local network interface for identity")

	for _, f := range []string{"url", "name", "info", "preferIface"} {
		if err := Viper.BindPFlag(o.key+"."+f, flags.Lookup(o.key+"."+f)); err != nil {
			return err
		}
	}

	return nil
}

func (o *componentPublisher) IsStarted() bool {
	o.m.Lock()
	defer o.m.Unlock()
	return o.pub != nil
}

func (o *componentPublisher) IsRunning(_ bool) bool {
	o.m.Lock()
	defer o.m.Unlock()
	return o.pub != nil
}

func (o *componentPublisher) _loadConfig(getCfg libcfg.FuncComponentConfigGet) (*Config, liberr.Error) {
	cfg := &Config{}

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

func (o *componentPublisher) logFunc() liblogger.FuncLog {
	o.m.Lock()
	logKey := o.logKey
	get := o.get
	o.m.Unlock()

	if get == nil {
		return nil
	}

	cpt := get(logKey)
	if cpt == nil {
		return nil
	}

	lc, ok := cpt.(liblog.Component)
	if !ok {
		return nil
	}

	return func() liblogger.Logger {
		return lc.GetLogger()
	}
}

func (o *componentPublisher) _run(getCfg libcfg.FuncComponentConfigGet) liberr.Error {
	cfg, err := o._loadConfig(getCfg)
	if err != nil {
		return err
	}

	o.m.Lock()
	if o.pub != nil {
		_ = o.pub.Stop()
	}
	if o.tr != nil {
		_ = o.tr.Close()
	}

	o.tr = libtrp.New(libtrp.Config{URL: cfg.URL, Name: cfg.Name})
	o.pub = libpub.New(o.tr, libpub.Config{
		Name:        cfg.Name,
		Info:        cfg.Info,
		PreferIface: cfg.PreferIface,
	}, o.obs, o.logFunc())
	pub := o.pub
	o.m.Unlock()

	if e := pub.Start(o.ctx()); e != nil {
		return ErrorComponentStart.Error(e)
	}

	return nil
}

func (o *componentPublisher) Start(getCfg libcfg.FuncComponentConfigGet) liberr.Error {
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

func (o *componentPublisher) Reload(getCfg libcfg.FuncComponentConfigGet) liberr.Error {
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

func (o *componentPublisher) Stop() {
	o.m.Lock()
	defer o.m.Unlock()

	if o.pub != nil {
		_ = o.pub.Stop()
	}
	if o.tr != nil {
		_ = o.tr.Close()
	}
}

func (o *componentPublisher) DefaultConfig(indent string) []byte {
	p, _ := json.MarshalIndent(&Config{URL: "nats://127.0.0.1:4222"}, "", indent)
	return p
}

func (o *componentPublisher) Dependencies() []string {
	o.m.Lock()
	defer o.m.Unlock()
	return []string{o.logKey}
}

func (o *componentPublisher) Publisher() libpub.Publisher {
	o.m.Lock()
	defer o.m.Unlock()
	return o.pub
}

func (o *componentPublisher) SetObserver(obs libpub.Observer) {
	o.m.Lock()
	defer o.m.Unlock()
	o.obs = obs
}

func (o *componentPublisher) SetLogKey(key string) {
	o.m.Lock()
	defer o.m.Unlock()
	o.logKey = key
}
