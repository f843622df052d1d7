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

// Package transport abstracts the point-to-point request/reply and the topic publish/
// subscribe messaging primitives that the command and pubsub protocols are built on top
// of, so neither protocol package has to know it is actually running over NATS.
package transport

import (
	"context"
	"time"
)

// Message is a single message received from a subscription, carrying enough information
// for the receiver to reply if the message was sent as a request.
type Message struct {
	Subject string
	Reply   string
	Data    []byte
}

// Handler processes a received Message. Respond may be nil if the message was published,
// not requested, and has no reply subject to answer on.
type Handler func(msg Message, respond func(data []byte) error)

// Subscription is a live subscription created by Subscribe or QueueSubscribe.
type Subscription interface {
	// Subject is the subject or subject-pattern this subscription was created for.
	Subject() string

	// Unsubscribe cancels the subscription. Further messages are not delivered.
	Unsubscribe() error
}

// Transport is the messaging abstraction shared by the command and pubsub protocols.
// A Transport instance represents one connection to the messaging backend; Connect must
// be called before any other method, and Close releases the underlying connection.
type Transport interface {
	// Connect establishes the underlying connection. Calling Connect on an already
	// connected Transport is a no-op.
	Connect(ctx context.Context) error

	// Close releases the underlying connection. A closed Transport cannot be reused.
	Close() error

	// IsConnected reports whether the underlying connection is currently usable.
	IsConnected() bool

	// Publish fires data at subject with no expectation of a reply.
	Publish(subject string, data []byte) error

	// Request sends data to subject and blocks until a reply arrives or timeout elapses.
	Request(ctx context.Context, subject string, data []byte, timeout time.Duration) ([]byte, error)

	// Subscribe registers fct to be called for every message published to subject.
	// subject may use the backend's wildcard syntax (e.g. NATS "foo.*" / "foo.>").
	Subscribe(subject string, fct Handler) (Subscription, error)

	// QueueSubscribe registers fct on subject within queue group; when multiple
	// subscribers share a queue group, the backend delivers each message to exactly
	// one member, implementing competing-consumer load balancing.
	QueueSubscribe(subject, queue string, fct Handler) (Subscription, error)
}

// Config is the connection configuration for New.
type Config struct {
	// URL is the backend connection URL (e.g. "nats://127.0.0.1:4222").
	URL string

	// Name identifies this connection to the backend, useful for server-side monitoring.
	Name string

	// ConnectTimeout bounds how long Connect waits for the initial connection.
	ConnectTimeout time.Duration

	// ReconnectWait is the delay between reconnection attempts after a dropped connection.
	ReconnectWait time.Duration

	// MaxReconnects caps the number of reconnection attempts; negative means unlimited.
	MaxReconnects int
}

// New returns a Transport bound to the given configuration. Connect must still be called
// before the Transport can send or receive.
func New(cfg Config) Transport {
	return &natsTransport{cfg: cfg}
}
