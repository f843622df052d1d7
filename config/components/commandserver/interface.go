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

// Package commandserver is the config component wrapping a commandserver.Server: it
// owns the NATS transport, the callback registry and the server's own lifecycle, so a
// complete command server can be stood up from a viper-bound config section plus cobra
// flags instead of a hand-assembled Config literal in main.
package commandserver

import (
	libcmdsrv "github.com/sabouaram/msgrt/commandserver"
	libcfg "github.com/sabouaram/msgrt/config"
	libreg "github.com/sabouaram/msgrt/registry"
)

const ComponentType = "commandserver"

// DefaultLogKey is the sibling log component key this component resolves its logger
// against, unless overridden with SetLogKey.
const DefaultLogKey = "log"

// Config is the viper-bound configuration model for the commandserver component.
type Config struct {
	// URL is the NATS connection URL the transport connects to.
	URL string `mapstructure:"url" json:"url" yaml:"url" validate:"required"`

	// Endpoint is the subject the server listens on.
	Endpoint string `mapstructure:"endpoint" json:"endpoint" yaml:"endpoint" validate:"required"`

	// Name and Info label the server's own identity on lifecycle events.
	Name string `mapstructure:"name" json:"name" yaml:"name"`
	Info string `mapstructure:"info" json:"info" yaml:"info"`

	// PreferIface optionally pins the local address embedded in the server identity.
	PreferIface string `mapstructure:"preferIface" json:"preferIface" yaml:"preferIface"`

	// CheckIntervalSecond is how often the dead-client sweep runs.
	CheckIntervalSecond int `mapstructure:"checkIntervalSecond" json:"checkIntervalSecond" yaml:"checkIntervalSecond" validate:"gte=0"`

	// ClientDeadTimeoutSecond is how long a client may go unseen before it is swept.
	ClientDeadTimeoutSecond int `mapstructure:"clientDeadTimeoutSecond" json:"clientDeadTimeoutSecond" yaml:"clientDeadTimeoutSecond" validate:"gte=0"`

	// Lenient switches the unknown-client policy from strict to lenient (see
	// commandserver.Policy).
	Lenient bool `mapstructure:"lenient" json:"lenient" yaml:"lenient"`
}

// Component is the config component interface for a commandserver.Server.
type Component interface {
	libcfg.Component

	// Server returns the underlying commandserver.Server. Populated only after Start.
	Server() libcmdsrv.Server

	// Registry returns the callback registry commands should be registered against
	// before Start is called.
	Registry() libreg.Registry

	// SetObserver installs the lifecycle Observer used for the next Start/Reload.
	SetObserver(obs libcmdsrv.Observer)

	// SetLogKey overrides the sibling log component key used to resolve the logger.
	SetLogKey(key string)
}

// New returns a new, uninitialized commandserver Component. Register it on a
// config.Config instance with ComponentSet before calling Start.
func New() Component {
	return &componentCommandServer{
		reg:    libreg.New(),
		logKey: DefaultLogKey,
	}
}
