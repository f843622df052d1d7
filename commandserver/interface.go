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

// Package commandserver implements the request/reply command server: it tracks
// connected clients, sweeps dead ones on a timer, handles the reserved commands
// (CONNECT/DISCONNECT/ALIVE/GET_SERVER_TIME) internally and dispatches everything else
// through a registry.Registry, reporting every transition through an Observer.
package commandserver

import (
	"context"
	"time"

	"github.com/sabouaram/msgrt/command"
	"github.com/sabouaram/msgrt/identity"
	"github.com/sabouaram/msgrt/logger"
	"github.com/sabouaram/msgrt/registry"
	"github.com/sabouaram/msgrt/transport"
)

// Policy controls how the server reacts to a command other than CONNECT arriving from
// an identity it has no client entry for.
type Policy uint8

const (
	// PolicyStrict replies CLIENT_NOT_CONNECTED and never creates an entry. Default.
	PolicyStrict Policy = iota

	// PolicyLenient implicitly registers the identity, then dispatches the command as
	// if it had connected first.
	PolicyLenient
)

// Defaults applied by New when the corresponding Config field is left zero.
const (
	DefaultCheckInterval     = 500 * time.Millisecond
	DefaultClientDeadTimeout = 30 * time.Second
)

// Config configures a Server.
type Config struct {
	// Endpoint is the transport subject the server listens on.
	Endpoint string

	// Name and Info label the server's own identity on lifecycle events.
	Name string
	Info string

	// PreferIface optionally pins the local address embedded in the server identity.
	PreferIface string

	// CheckInterval is how often the dead-client sweep runs. Defaults to
	// DefaultCheckInterval.
	CheckInterval time.Duration

	// ClientDeadTimeout is how long a client may go unseen before it is swept.
	// Defaults to DefaultClientDeadTimeout.
	ClientDeadTimeout time.Duration

	// Policy governs unsolicited non-CONNECT traffic from an unknown identity.
	Policy Policy
}

// Observer is the capability set a Server owner may implement to observe the server
// state machine. Every method is called synchronously around the corresponding
// transition, on the goroutine that performs it: request events on the dispatch
// goroutine, OnDeadClient on the sweep goroutine, OnStart/OnStop on the caller of
// Start/Stop; embedding BaseObserver satisfies the interface with
// no-ops for the events the owner doesn't care about.
type Observer interface {
	OnStart()
	OnStop()
	OnWaitingCommand()
	OnCommandReceived(from identity.Host, cmd command.ID)
	OnInvalidMsgReceived(err error)
	OnSendingResponse(to identity.Host, cmd command.ID, result command.Result)
	OnConnected(client identity.Host)
	OnDisconnected(client identity.Host)
	OnDeadClient(client identity.Host)
	OnServerError(err error)
}

// BaseObserver implements Observer with no-op methods; embed it to override only the
// events of interest.
type BaseObserver struct{}

func (BaseObserver) OnStart()                                                          {}
func (BaseObserver) OnStop()                                                           {}
func (BaseObserver) OnWaitingCommand()                                                 {}
func (BaseObserver) OnCommandReceived(_ identity.Host, _ command.ID)                   {}
func (BaseObserver) OnInvalidMsgReceived(_ error)                                      {}
func (BaseObserver) OnSendingResponse(_ identity.Host, _ command.ID, _ command.Result) {}
func (BaseObserver) OnConnected(_ identity.Host)                                       {}
func (BaseObserver) OnDisconnected(_ identity.Host)                                    {}
func (BaseObserver) OnDeadClient(_ identity.Host)                                      {}
func (BaseObserver) OnServerError(_ error)                                             {}

// Server is the request/reply command server state machine.
type Server interface {
	// Start binds the transport subject and begins dispatching. Calling Start twice
	// without an intervening Stop fails with ErrorAlreadyRunning.
	Start(ctx context.Context) error

	// Stop unsubscribes, stops the dead-client sweep, and returns once both have
	// finished. Safe to call on a Server that was never started.
	Stop()

	// IsRunning reports whether Start has succeeded and Stop has not yet been called.
	IsRunning() bool

	// Clients returns a snapshot of currently connected client identities.
	Clients() []identity.Host

	// Identity returns the server's own host identity. Populated only after Start.
	Identity() identity.Host
}

// New returns a Server. reg supplies the user-command callback table; obs may be nil,
// in which case a BaseObserver is used.
func New(tr transport.Transport, cfg Config, reg registry.Registry, obs Observer, log logger.FuncLog) Server {
	if cfg.CheckInterval <= 0 {
		cfg.CheckInterval = DefaultCheckInterval
	}
	if cfg.ClientDeadTimeout <= 0 {
		cfg.ClientDeadTimeout = DefaultClientDeadTimeout
	}
	if obs == nil {
		obs = BaseObserver{}
	}

	return newServer(tr, cfg, reg, obs, log)
}
