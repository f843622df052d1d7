/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
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

// Package commandclient implements the request/reply command client: a single
// in-flight request per client, an absolute reply deadline that forces a transport
// reset on expiry, and an optional background keepalive task serialized against user
// sends through the same outbound lock.
package commandclient

import (
	"context"
	"time"

	"github.com/sabouaram/msgrt/command"
	"github.com/sabouaram/msgrt/identity"
	"github.com/sabouaram/msgrt/logger"
	"github.com/sabouaram/msgrt/transport"
)

// Defaults applied by New when the corresponding Config field is left zero.
const (
	DefaultKeepaliveInterval = 10 * time.Second
	DefaultKeepaliveTimeout  = 2 * time.Second
	DefaultDisconnectTimeout = 1 * time.Second
)

// Config configures a Client.
type Config struct {
	// Endpoint is the transport subject the server listens on.
	Endpoint string

	// Name and Info label the client's own identity.
	Name string
	Info string

	// PreferIface optionally pins the local address embedded in the client identity.
	PreferIface string

	// ConnectOnStart issues CONNECT during Start and DISCONNECT during Stop. Defaults
	// to true through New.
	ConnectOnStart *bool

	// AutoKeepalive runs a background ALIVE ticker while the client is started.
	AutoKeepalive bool

	// KeepaliveInterval is the delay between ALIVE sends. Defaults to
	// DefaultKeepaliveInterval.
	KeepaliveInterval time.Duration

	// KeepaliveTimeout bounds each ALIVE round trip. Defaults to DefaultKeepaliveTimeout.
	KeepaliveTimeout time.Duration

	// DisconnectTimeout bounds the best-effort DISCONNECT sent by Stop. Defaults to
	// DefaultDisconnectTimeout.
	DisconnectTimeout time.Duration
}

// Observer is the capability set a Client owner may implement to observe the client
// state machine. Embedding BaseObserver satisfies the interface with no-ops.
type Observer interface {
	OnStart()
	OnStop()
	OnSendCommand(cmd command.ID)
	OnReceiveReply(cmd command.ID, result command.Result)
	OnTimeout(cmd command.ID)
	OnReset()
	OnKeepaliveFailed()
	OnError(err error)
}

// BaseObserver implements Observer with no-op methods.
type BaseObserver struct{}

func (BaseObserver) OnStart()                                      {}
func (BaseObserver) OnStop()                                       {}
func (BaseObserver) OnSendCommand(_ command.ID)                    {}
func (BaseObserver) OnReceiveReply(_ command.ID, _ command.Result) {}
func (BaseObserver) OnTimeout(_ command.ID)                        {}
func (BaseObserver) OnReset()                                      {}
func (BaseObserver) OnKeepaliveFailed()                            {}
func (BaseObserver) OnError(_ error)                               {}

// Client is the request/reply command client state machine.
type Client interface {
	// Start resolves the client's identity, connects the transport and, unless
	// ConnectOnStart is false, sends CONNECT. Starting an auto-keepalive client also
	// begins its background ticker.
	Start(ctx context.Context) error

	// Stop sends a best-effort DISCONNECT (if ConnectOnStart), stops any keepalive
	// ticker, and closes the transport.
	Stop(ctx context.Context)

	// SendCommand sends a user command (id must not be in the reserved range) and
	// blocks for a reply up to timeout. On timeout, the reply has Result == TIMEOUT and
	// the client's transport is reset; a subsequent SendCommand may succeed normally.
	SendCommand(ctx context.Context, id command.ID, params []byte, timeout time.Duration) (command.Reply, error)

	// Reset closes and reopens the underlying transport connection, independent of any
	// in-flight request.
	Reset(ctx context.Context) error

	// IsConnected reports whether the last command or keepalive succeeded.
	IsConnected() bool

	// Identity returns the client's own host identity. Populated only after Start.
	Identity() identity.Host
}

// New returns a Client. obs may be nil, in which case a BaseObserver is used.
func New(tr transport.Transport, cfg Config, obs Observer, log logger.FuncLog) Client {
	if cfg.ConnectOnStart == nil {
		t := true
		cfg.ConnectOnStart = &t
	}
	if cfg.KeepaliveInterval <= 0 {
		cfg.KeepaliveInterval = DefaultKeepaliveInterval
	}
	if cfg.KeepaliveTimeout <= 0 {
		cfg.KeepaliveTimeout = DefaultKeepaliveTimeout
	}
	if cfg.DisconnectTimeout <= 0 {
		cfg.DisconnectTimeout = DefaultDisconnectTimeout
	}
	if obs == nil {
		obs = BaseObserver{}
	}

	return newClient(tr, cfg, obs, log)
}
