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

package commandclient

import (
	"encoding/json"
	"sync"
	"time"

	validator "github.com/go-playground/validator/v10"
	libcmdclt "github.com/sabouaram/msgrt/commandclient"
	libcfg "github.com/sabouaram/msgrt/config"
	liblog "github.com/sabouaram/msgrt/config/components/log"
	liberr "github.com/sabouaram/msgrt/errors"
	liblogger "github.com/sabouaram/msgrt/logger"
	libtrp "github.com/sabouaram/msgrt/transport"
	spfcbr "github.com/spf13/cobra"
	spfvpr "github.com/spf13/viper"
)

type componentCommandClient struct {
	m sync.Mutex

	key string
	ctx libcfg.FuncContext
	get libcfg.FuncComponentGet
	vpr libcfg.FuncComponentViper

	fsa, fsb func(cpt libcfg.Component) liberr.Error
	fra, frb func(cpt libcfg.Component) liberr.Error

	logKey string
	obs    libcmdclt.Observer

	tr  libtrp.Transport
	clt libcmdclt.Client
}

func (o *componentCommandClient) Type() string {
	return ComponentType
}

func (o *componentCommandClient) Init(key string, ctx libcfg.FuncContext, get libcfg.FuncComponentGet, vpr libcfg.FuncComponentViper) {
	o.m.Lock()
	defer o.m.Unlock()

	o.key = key
	o.ctx = ctx
	o.get = get
	o.vpr = vpr
}

func (o *componentCommandClient) RegisterFuncStart(before, after func(cpt libcfg.Component) liberr.Error) {
	o.m.Lock()
	defer o.m.Unlock()

	o.fsa = before
	o.fsb = after
}

func (o *componentCommandClient) RegisterFuncReload(before, after func(cpt libcfg.Component) liberr.Error) {
	o.m.Lock()
	defer o.m.Unlock()

	o.fra = before
	o.frb = after
}

func (o *componentCommandClient) RegisterFlag(Command *spfcbr.Command, Viper *spfvpr.Viper) error {
	flags := Command.PersistentFlags()

	flags.String(o.key+".url", "nats://127.0.0.1:4222", "NATS connection URL")
	flags.String(o.key+".endpoint", "", "command subject the client sends requests to")
	flags.String(o.key+".name", "", "client identity name")
	flags.String(o.key+".info", "", "client identity free-form info")
	flags.String(o.key+".preferIface", "", "preferred local network interface for identity")
	flags.Bool(o.key+".connectOnStart", true, "send CONNECT/DISCONNECT around Start/Stop")
	flags.Bool(o.key+".autoKeepalive", false, "run a background ALIVE ticker")
	flags.Int(o.key+".keepaliveIntervalSecond", 0, "ALIVE ticker interval in seconds (0 = default)")
	flags.Int(o.key+".keepaliveTimeoutSecond", 0, "ALIVE round-trip timeout in seconds (0 = default)")
	flags.Int(o.key+".disconnectTimeoutSecond", 0, "DISCONNECT timeout in seconds (0 = default)")

	names := []string{
		"url", "endpoint", "name", "info", "preferIface",
		"connectOnStart", "autoKeepalive",
		"keepaliveIntervalSecond", "keepaliveTimeoutSecond", "disconnectTimeoutSecond",
	}
	for _, f := range names {
		if err := Viper.BindPFlag(o.key+"."+f, flags.Lookup(o.key+"."+f)); err != nil {
			return err
		}
	}

	return nil
}

func (o *componentCommandClient) IsStarted() bool {
	o.m.Lock()
	defer o.m.Unlock()
	return o.clt != nil
}

func (o *componentCommandClient) IsRunning(_ bool) bool {
	o.m.Lock()
	clt := o.clt
	o.m.Unlock()

	return clt != nil && clt.IsConnected()
}

func (o *componentCommandClient) _loadConfig(getCfg libcfg.FuncComponentConfigGet) (*Config, liberr.Error) {
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

func (o *componentCommandClient) logFunc() liblogger.FuncLog {
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

func (o *componentCommandClient) _run(getCfg libcfg.FuncComponentConfigGet) liberr.Error {
	cfg, err := o._loadConfig(getCfg)
	if err != nil {
		return err
	}

	o.m.Lock()
	if o.clt != nil {
		o.clt.Stop(o.ctx())
	}
	if o.tr != nil {
		_ = o.tr.Close()
	}

	connectOnStart := cfg.ConnectOnStart

	o.tr = libtrp.New(libtrp.Config{URL: cfg.URL, Name: cfg.Name})
	o.clt = libcmdclt.New(o.tr, libcmdclt.Config{
		Endpoint:          cfg.Endpoint,
		Name:              cfg.Name,
		Info:              cfg.Info,
		PreferIface:       cfg.PreferIface,
		ConnectOnStart:    &connectOnStart,
		AutoKeepalive:     cfg.AutoKeepalive,
		KeepaliveInterval: time.Duration(cfg.KeepaliveIntervalSecond) * time.Second,
		KeepaliveTimeout:  time.Duration(cfg.KeepaliveTimeoutSecond) * time.Second,
		DisconnectTimeout: time.Duration(cfg.DisconnectTimeoutSecond) * time.Second,
	}, o.obs, o.logFunc())
	clt := o.clt
	o.m.Unlock()

	if e := clt.Start(o.ctx()); e != nil {
		return ErrorComponentStart.Error(e)
	}

	return nil
}

func (o *componentCommandClient) Start(getCfg libcfg.FuncComponentConfigGet) liberr.Error {
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

func (o *componentCommandClient) Reload(getCfg libcfg.FuncComponentConfigGet) liberr.Error {
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

func (o *componentCommandClient) Stop() {
	o.m.Lock()
	defer o.m.Unlock()

	if o.clt != nil {
		o.clt.Stop(o.ctx())
	}
	if o.tr != nil {
		_ = o.tr.Close()
	}
}

func (o *componentCommandClient) DefaultConfig(indent string) []byte {
	p, _ := json.MarshalIndent(&Config{URL: "nats://127.0.0.1:4222", ConnectOnStart: true}, "", indent)
	return p
}

func (o *componentCommandClient) Dependencies() []string {
	o.m.Lock()
	defer o.m.Unlock()
	return []string{o.logKey}
}

func (o *componentCommandClient) Client() libcmdclt.Client {
	o.m.Lock()
	defer o.m.Unlock()
	return o.clt
}

func (o *componentCommandClient) SetObserver(obs libcmdclt.Observer) {
	o.m.Lock()
	defer o.m.Unlock()
	o.obs = obs
}

func (o *componentCommandClient) SetLogKey(key string) {
	o.m.Lock()
	defer o.m.Unlock()
	o.logKey = key
}
