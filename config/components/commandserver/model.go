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

package commandserver

import (
	"encoding/json"
	"sync"
	"time"

	validator "github.com/go-playground/validator/v10"
	libcmdsrv "github.com/sabouaram/msgrt/commandserver"
	libcfg "github.com/sabouaram/msgrt/config"
	liblog "github.com/sabouaram/msgrt/config/components/log"
	liberr "github.com/sabouaram/msgrt/errors"
	liblogger "github.com/sabouaram/msgrt/logger"
	libreg "github.com/sabouaram/msgrt/registry"
	libtrp "github.com/sabouaram/msgrt/transport"
	spfcbr "github.com/spf13/cobra"
	spfvpr "github.com/spf13/viper"
)

type componentCommandServer struct {
	m sync.Mutex

	key string
	ctx libcfg.FuncContext
	get libcfg.FuncComponentGet
	vpr libcfg.FuncComponentViper

	fsa, fsb func(cpt libcfg.Component) liberr.Error
	fra, frb func(cpt libcfg.Component) liberr.Error

	logKey string
	obs    libcmdsrv.Observer
	reg    libreg.Registry

	tr  libtrp.Transport
	srv libcmdsrv.Server
}

func (o *componentCommandServer) Type() string {
	return ComponentType
}

func (o *componentCommandServer) Init(key string, ctx libcfg.FuncContext, get libcfg.FuncComponentGet, vpr libcfg.FuncComponentViper) {
	o.m.Lock()
	defer o.m.Unlock()

	o.key = key
	o.ctx = ctx
	o.get = get
	o.vpr = vpr
}

func (o *componentCommandServer) RegisterFuncStart(before, after func(cpt libcfg.Component) liberr.Error) {
	o.m.Lock()
	defer o.m.Unlock()

	o.fsa = before
	o.fsb = after
}

func (o *componentCommandServer) RegisterFuncReload(before, after func(cpt libcfg.Component) liberr.Error) {
	o.m.Lock()
	defer o.m.Unlock()

	o.fra = before
	o.frb = after
}

func (o *componentCommandServer) RegisterFlag(Command *spfcbr.Command, Viper *spfvpr.Viper) error {
	flags := Command.PersistentFlags()

	flags.String(o.key+".url", "nats://127.0.0.1:4222", "NATS connection URL")
	flags.String(o.key+".endpoint", "", "command subject the server listens on")
	flags.String(o.key+".name", "", "server identity name")
	flags.String(o.key+".info", "", "server identity free-form info")
	flags.String(o.key+".preferIface", "", "preferred local network interface for identity")
	flags.Int(o.key+".checkIntervalSecond", 0, "dead-client sweep interval in seconds (0 = default)")
	flags.Int(o.key+".clientDeadTimeoutSecond", 0, "client dead timeout in seconds (0 = default)")
	flags.Bool(o.key+".lenient", false, "accept non-CONNECT commands from unknown clients")

	for _, f := range []string{"url", "endpoint", "name", "info", "preferIface", "checkIntervalSecond", "clientDeadTimeoutSecond", "lenient"} {
		if err := Viper.BindPFlag(o.key+"."+f, flags.Lookup(o.key+"."+f)); err != nil {
			return err
		}
	}

	return nil
}

func (o *componentCommandServer) IsStarted() bool {
	o.m.Lock()
	defer o.m.Unlock()
	return o.srv != nil
}

func (o *componentCommandServer) IsRunning(_ bool) bool {
	o.m.Lock()
	srv := o.srv
	o.m.Unlock()

	return srv != nil && srv.IsRunning()
}

func (o *componentCommandServer) _loadConfig(getCfg libcfg.FuncComponentConfigGet) (*Config, liberr.Error) {
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

func (o *componentCommandServer) logFunc() liblogger.FuncLog {
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

func (o *componentCommandServer) _run(getCfg libcfg.FuncComponentConfigGet) liberr.Error {
	cfg, err := o._loadConfig(getCfg)
	if err != nil {
		return err
	}

	o.m.Lock()
	if o.srv != nil && o.srv.IsRunning() {
		o.srv.Stop()
	}
	if o.tr != nil {
		_ = o.tr.Close()
	}

	policy := libcmdsrv.PolicyStrict
	if cfg.Lenient {
		policy = libcmdsrv.PolicyLenient
	}

	o.tr = libtrp.New(libtrp.Config{URL: cfg.URL, Name: cfg.Name})
	o.srv = libcmdsrv.New(o.tr, libcmdsrv.Config{
		Endpoint:          cfg.Endpoint,
		Name:              cfg.Name,
		Info:              cfg.Info,
		PreferIface:       cfg.PreferIface,
		CheckInterval:     time.Duration(cfg.CheckIntervalSecond) * time.Second,
		ClientDeadTimeout: time.Duration(cfg.ClientDeadTimeoutSecond) * time.Second,
		Policy:            policy,
	}, o.reg, o.obs, o.logFunc())
	srv := o.srv
	o.m.Unlock()

	if e := srv.Start(o.ctx()); e != nil {
		return ErrorComponentStart.Error(e)
	}

	return nil
}

func (o *componentCommandServer) Start(getCfg libcfg.FuncComponentConfigGet) liberr.Error {
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

func (o *componentCommandServer) Reload(getCfg libcfg.FuncComponentConfigGet) liberr.Error {
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

func (o *componentCommandServer) Stop() {
	o.m.Lock()
	defer o.m.Unlock()

	if o.srv != nil {
		o.srv.Stop()
	}
	if o.tr != nil {
		_ = o.tr.Close()
	}
}

func (o *componentCommandServer) DefaultConfig(indent string) []byte {
	p, _ := json.MarshalIndent(&Config{URL: "nats://127.0.0.1:4222"}, "", indent)
	return p
}

func (o *componentCommandServer) Dependencies() []string {
	o.m.Lock()
	defer o.m.Unlock()
	return []string{o.logKey}
}

func (o *componentCommandServer) Server() libcmdsrv.Server {
	o.m.Lock()
	defer o.m.Unlock()
	return o.srv
}

func (o *componentCommandServer) Registry() libreg.Registry {
	o.m.Lock()
	defer o.m.Unlock()
	return o.reg
}

func (o *componentCommandServer) SetObserver(obs libcmdsrv.Observer) {
	o.m.Lock()
	defer o.m.Unlock()
	o.obs = obs
}

func (o *componentCommandServer) SetLogKey(key string) {
	o.m.Lock()
	defer o.m.Unlock()
	o.logKey = key
}
