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

// Package commandclient is the config component wrapping a commandclient.Client: it owns
// the NATS transport and the client's own lifecycle, so a complete command client can be
// stood up from a viper-bound config section plus cobra flags.
package commandclient

import (
	libcmdclt "github.com/sabouaram/msgrt/commandclient"
	libcfg "github.com/sabouaram/msgrt/config"
)

const ComponentType = "commandclient"

// DefaultLogKey is the sibling log component key this component resolves its logger
// against, unless overridden with SetLogKey.
const DefaultLogKey = "log"

// Config is the viper-bound configuration model for the commandclient component.
type Config struct {
	// URL is the NATS connection URL the transport connects to.
	URL string `mapstructure:"url" json:"url" yaml:"url" validate:"required"`

	// Endpoint is the subject the client sends requests to.
	Endpoint string `mapstructure:"endpoint" json:"endpoint" yaml:"endpoint" validate:"required"`

	// Name and Info label the client's own identity.
	Name string `mapstructure:"name" json:"name" yaml:"name"`
	Info string `mapstructure:"info" json:"info" yaml:"info"`

	// PreferIface optionally pins the local address embedded in the client identity.
	PreferIface string `mapstructure:"preferIface" json:"preferIface" yaml:"preferIface"`

	// ConnectOnStart issues CONNECT during Start and DISCONNECT during Stop.
	ConnectOnStart bool `mapstructure:"connectOnStart" json:"connectOnStart" yaml:"connectOnStart"`

	// AutoKeepalive runs a background ALIVE ticker while the client is started.
	AutoKeepalive bool `mapstructure:"autoKeepalive" json:"autoKeepalive" yaml:"autoKeepalive"`

	// KeepaliveIntervalSecond is the delay between ALIVE pings when AutoKeepalive is set.
	KeepaliveIntervalSecond int `mapstructure:"keepaliveIntervalSecond" json:"keepaliveIntervalSecond" yaml:"keepaliveIntervalSecond" validate:"gte=0"`

	// KeepaliveTimeoutSecond bounds a single ALIVE round trip.
	KeepaliveTimeoutSecond int `mapstructure:"keepaliveTimeoutSecond" json:"keepaliveTimeoutSecond" yaml:"keepaliveTimeoutSecond" validate:"gte=0"`

	// DisconnectTimeoutSecond bounds the best-effort DISCONNECT sent during Stop.
	DisconnectTimeoutSecond int `mapstructure:"disconnectTimeoutSecond" json:"disconnectTimeoutSecond" yaml:"disconnectTimeoutSecond" validate:"gte=0"`
}

// Component is the config component interface for a commandclient.Client.
type Component interface {
	libcfg.Component

	// Client returns the underlying commandclient.Client. Populated only after Start.
	Client() libcmdclt.Client

	// SetObserver installs the lifecycle Observer used for the next Start/Reload.
	SetObserver(obs libcmdclt.Observer)

	// SetLogKey overrides the sibling log component key used to resolve the logger.
	SetLogKey(key string)
}

// New returns a new, uninitialized commandclient Component. Register it on a
// config.Config instance with ComponentSet before calling Start.
func New() Component {
	return &componentCommandClient{logKey: DefaultLogKey}
}
