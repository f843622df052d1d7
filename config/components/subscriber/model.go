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

package subscriber

import (
	"encoding/json"
	"sync"

	validator "github.com/go-playground/validator/v10"
	libcfg "github.com/sabouaram/msgrt/config"
	liblog "github.com/sabouaram/msgrt/config/components/log"
	liberr "github.com/sabouaram/msgrt/errors"
	liblogger "github.com/sabouaram/msgrt/logger"
	libsub "github.com/sabouaram/msgrt/subscriber"
	libtrp "github.com/sabouaram/msgrt/transport"
	spfcbr "github.com/spf13/cobra"
	spfvpr "github.com/spf13/viper"
)

type componentSubscriber struct {
	m sync.Mutex

	key string
	ctx libcfg.FuncContext
	get libcfg.FuncComponentGet
	vpr libcfg.FuncComponentViper

	fsa, fsb func(cpt libcfg.Component) liberr.Error
	fra, frb func(cpt libcfg.Component) liberr.Error

	logKey string
	obs    libsub.Observer

	tr  libtrp.Transport
	sub libsub.Subscriber
}

func (o *componentSubscriber) Type() string {
	return ComponentType
}

func (o *componentSubscriber) Init(key string, ctx libcfg.FuncContext, get libcfg.FuncComponentGet, vpr libcfg.FuncComponentViper) {
	o.m.Lock()
	defer o.m.Unlock()

	o.key = key
	o.ctx = ctx
	o.get = get
	o.vpr = vpr
}

func (o *componentSubscriber) RegisterFuncStart(before, after func(cpt libcfg.Component) liberr.Error) {
	o.m.Lock()
	defer o.m.Unlock()

	o.fsa = before
	o.fsb = after
}

func (o *componentSubscriber) RegisterFuncReload(before, after func(cpt libcfg.Component) liberr.Error) {
	o.m.Lock()
	defer o.m.Unlock()

	o.fra = before
	o.frb = after
}

func (o *componentSubscriber) RegisterFlag(Command *spfcbr.Command, Viper *spfvpr.Viper) error {
	flags := Command.PersistentFlags()

	flags.String(o.key+".url", "nats://127.0.0.1:4222", "NATS connection URL")
	flags.String(o.key+".name", "", "subscriber identity name")
	flags.String(o.key+".info", "", "subscriber identity free-form info")
	flags.String(o.key+".preferIface", "", "preferred local network interface for identity")
	flags.Bool(o.key+".halt", false, "unsubscribe everything on the first bad-envelope/bad-payload error")

	for _, f := range []string{"url", "name", "info", "preferIface", "halt"} {
		if err := Viper.BindPFlag(o.key+"."+f, flags.Lookup(o.key+"."+f)); err != nil {
			return err
		}
	}

	return nil
}

func (o *componentSubscriber) IsStarted() bool {
	o.m.Lock()
	defer o.m.Unlock()
	return o.sub != nil
}

func (o *componentSubscriber) IsRunning(_ bool) bool {
	o.m.Lock()
	defer o.m.Unlock()
	return o.sub != nil
}

func (o *componentSubscriber) _loadConfig(getCfg libcfg.FuncComponentConfigGet) (*Config, liberr.Error) {
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

func (o *componentSubscriber) logFunc() liblogger.FuncLog {
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

func (o *componentSubscriber) _run(getCfg libcfg.FuncComponentConfigGet) liberr.Error {
	cfg, err := o._loadConfig(getCfg)
	if err != nil {
		return err
	}

	o.m.Lock()
	if o.sub != nil {
		_ = o.sub.Stop()
	}
	if o.tr != nil {
		_ = o.tr.Close()
	}

	policy := libsub.PolicyContinue
	if cfg.Halt {
		policy = libsub.PolicyHalt
	}

	o.tr = libtrp.New(libtrp.Config{URL: cfg.URL, Name: cfg.Name})
	o.sub = libsub.New(o.tr, libsub.Config{
		Name:        cfg.Name,
		Info:        cfg.Info,
		PreferIface: cfg.PreferIface,
		Policy:      policy,
	}, o.obs, o.logFunc())
	sub := o.sub
	o.m.Unlock()

	if e := sub.Start(o.ctx()); e != nil {
		return ErrorComponentStart.Error(e)
	}

	return nil
}

func (o *componentSubscriber) Start(getCfg libcfg.FuncComponentConfigGet) liberr.Error {
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

func (o *componentSubscriber) Reload(getCfg libcfg.FuncComponentConfigGet) liberr.Error {
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

func (o *componentSubscriber) Stop() {
	o.m.Lock()
	defer o.m.Unlock()

	if o.sub != nil {
		_ = o.sub.Stop()
	}
	if o.tr != nil {
		_ = o.tr.Close()
	}
}

func (o *componentSubscriber) DefaultConfig(indent string) []byte {
	p, _ := json.MarshalIndent(&Config{URL: "nats://127.0.0.1:4222"}, "", indent)
	return p
}

func (o *componentSubscriber) Dependencies() []string {
	o.m.Lock()
	defer o.m.Unlock()
	return []string{o.logKey}
}

func (o *componentSubscriber) Subscriber() libsub.Subscriber {
	o.m.Lock()
	defer o.m.Unlock()
	return o.sub
}

func (o *componentSubscriber) SetObserver(obs libsub.Observer) {
	o.m.Lock()
	defer o.m.Unlock()
	o.obs = obs
}

func (o *componentSubscriber) SetLogKey(key string) {
	o.m.Lock()
	defer o.m.Unlock()
	o.logKey = key
}
