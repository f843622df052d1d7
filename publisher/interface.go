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

// Package publisher implements the fan-out side of the topic channel: it stamps every
// outgoing message with the publisher's identity and a strictly increasing per-publisher
// sequence number, then hands the resulting envelope to the transport.
package publisher

import (
	"context"

	"github.com/sabouaram/msgrt/identity"
	"github.com/sabouaram/msgrt/logger"
	"github.com/sabouaram/msgrt/transport"
)

// Config configures a Publisher.
type Config struct {
	// Name and Info label the publisher's own identity carried in every envelope.
	Name string
	Info string

	// PreferIface optionally pins the local address embedded in the publisher identity.
	PreferIface string
}

// Observer is the capability set a Publisher owner may implement to observe publish
// activity. Embedding BaseObserver satisfies the interface with no-ops.
type Observer interface {
	OnStart()
	OnStop()
	OnPublish(topic string, seq uint64)
	OnError(err error)
}

// BaseObserver implements Observer with no-op methods.
type BaseObserver struct{}

func (BaseObserver) OnStart()                     {}
func (BaseObserver) OnStop()                      {}
func (BaseObserver) OnPublish(_ string, _ uint64) {}
func (BaseObserver) OnError(_ error)              {}

// Publisher is the fan-out side of the topic channel.
type Publisher interface {
	// Start resolves the publisher's identity and connects the transport.
	Start(ctx context.Context) error

	// Stop closes the transport. Sequence numbers are not reset by a subsequent Start.
	Stop() error

	// Publish builds an envelope for topic carrying payload, assigns the publisher's
	// next sequence number, and hands the result to the transport.
	Publish(topic string, payload []byte) error

	// Identity returns the publisher's own host identity. Populated only after Start.
	Identity() identity.Host
}

// New returns a Publisher. obs may be nil, in which case a BaseObserver is used.
func New(tr transport.Transport, cfg Config, obs Observer, log logger.FuncLog) Publisher {
	if obs == nil {
		obs = BaseObserver{}
	}

	return newPublisher(tr, cfg, obs, log)
}
