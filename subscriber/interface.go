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

// Package subscriber implements the receiving side of the topic channel: a topic to
// callback table with at most one callback per topic, fed by a receive loop that
// decodes the publish envelope and dispatches to the registered callback, following the
// same type-erased-at-the-registration-site approach as the command registry.
package subscriber

import (
	"context"

	"github.com/sabouaram/msgrt/identity"
	"github.com/sabouaram/msgrt/logger"
	"github.com/sabouaram/msgrt/transport"
)

// Policy controls how the receive loop reacts to an unknown topic or an undecodable
// payload.
type Policy uint8

const (
	// PolicyContinue emits an error event and keeps receiving. Default.
	PolicyContinue Policy = iota

	// PolicyHalt unsubscribes every topic on the first such error.
	PolicyHalt
)

// Config configures a Subscriber.
type Config struct {
	// Name and Info label the subscriber's own identity.
	Name string
	Info string

	// PreferIface optionally pins the local address embedded in the subscriber identity.
	PreferIface string

	// Policy governs the reaction to unknown-topic and bad-payload errors.
	Policy Policy
}

// Observer is the capability set a Subscriber owner may implement to observe receive
// activity. Embedding BaseObserver satisfies the interface with no-ops.
type Observer interface {
	OnStart()
	OnStop()
	OnSubscribed(topic string)
	OnMsgReceived(topic string, seq uint64)
	OnInvalidMsgReceived(err error)
	OnError(err error)
}

// BaseObserver implements Observer with no-op methods.
type BaseObserver struct{}

func (BaseObserver) OnStart()                         {}
func (BaseObserver) OnStop()                          {}
func (BaseObserver) OnSubscribed(_ string)            {}
func (BaseObserver) OnMsgReceived(_ string, _ uint64) {}
func (BaseObserver) OnInvalidMsgReceived(_ error)     {}
func (BaseObserver) OnError(_ error)                  {}

// Handler is the type-erased form every topic registration is reduced to: the raw
// payload carried by the envelope, ready for the registration site's own decoding.
type Handler func(payload []byte) error

// Subscriber is the receiving side of the topic channel.
type Subscriber interface {
	// Start resolves the subscriber's identity and connects the transport.
	Start(ctx context.Context) error

	// Stop unsubscribes every topic and closes the transport.
	Stop() error

	// Subscribe adds a transport-level subscription on topic and registers h as the
	// callback for messages whose envelope.Topic equals topic exactly. Subscribing the
	// same topic twice fails with ErrorAlreadySubscribed.
	Subscribe(topic string, h Handler) error

	// Register adds h as the exact-topic callback without creating a transport
	// subscription; used together with Filter so one prefix subscription can feed
	// several topic callbacks.
	Register(topic string, h Handler) error

	// Filter adds a transport-level subscription on pattern (the backend's wildcard
	// syntax is allowed) feeding the receive loop. A delivered message whose envelope
	// topic has no registered callback is an unknown-topic fault.
	Filter(pattern string) error

	// Unsubscribe cancels topic's transport subscription (if any) and removes its
	// callback.
	Unsubscribe(topic string) error

	// Identity returns the subscriber's own host identity. Populated only after Start.
	Identity() identity.Host
}

// New returns a Subscriber. obs may be nil, in which case a BaseObserver is used.
func New(tr transport.Transport, cfg Config, obs Observer, log logger.FuncLog) Subscriber {
	if obs == nil {
		obs = BaseObserver{}
	}

	return newSubscriber(tr, cfg, obs, log)
}
