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

package subscriber

import (
	"bytes"
	"context"
	"sync"

	"github.com/sabouaram/msgrt/identity"
	"github.com/sabouaram/msgrt/logger"
	"github.com/sabouaram/msgrt/pubsub"
	"github.com/sabouaram/msgrt/serial"
	"github.com/sabouaram/msgrt/transport"
)

type subscriberImpl struct {
	cfg Config
	tr  transport.Transport
	obs Observer
	cdc serial.Codec
	log logger.FuncLog

	m       sync.Mutex
	id      identity.Identity
	started bool
	halted  bool
	topics  map[string]Handler
	filters map[string]transport.Subscription
}

func newSubscriber(tr transport.Transport, cfg Config, obs Observer, log logger.FuncLog) *subscriberImpl {
	return &subscriberImpl{
		cfg:     cfg,
		tr:      tr,
		obs:     obs,
		cdc:     serial.New(),
		log:     log,
		topics:  make(map[string]Handler),
		filters: make(map[string]transport.Subscription),
	}
}

func (s *subscriberImpl) Start(ctx context.Context) error {
	s.m.Lock()
	defer s.m.Unlock()

	if s.started {
		return ErrorAlreadyStarted.Error(nil)
	}

	id, err := identity.New(s.cfg.Name, s.cfg.Info, s.cfg.PreferIface)
	if err != nil {
		return ErrorIdentity.Error(err)
	}
	s.id = id

	if err = s.tr.Connect(ctx); err != nil {
		return err
	}

	s.started = true
	s.obs.OnStart()

	return nil
}

func (s *subscriberImpl) Stop() error {
	s.m.Lock()
	defer s.m.Unlock()

	if !s.started {
		return nil
	}

	for pattern, sub := range s.filters {
		_ = sub.Unsubscribe()
		delete(s.filters, pattern)
	}
	s.topics = make(map[string]Handler)

	err := s.tr.Close()
	s.started = false
	s.obs.OnStop()

	return err
}

// Register adds h as the callback for messages whose envelope topic equals topic
// exactly, without touching the transport. Pair it with Filter when one transport
// prefix should feed several exact-topic callbacks.
func (s *subscriberImpl) Register(topic string, h Handler) error {
	s.m.Lock()
	defer s.m.Unlock()

	if _, exists := s.topics[topic]; exists {
		return ErrorAlreadySubscribed.Error(nil)
	}

	s.topics[topic] = h
	return nil
}

// Filter adds a transport-level subscription on pattern (which may use the backend's
// wildcard syntax) feeding the receive loop. Dispatch stays keyed by exact envelope
// topic regardless of the pattern that delivered the message.
func (s *subscriberImpl) Filter(pattern string) error {
	s.m.Lock()
	defer s.m.Unlock()

	if !s.started {
		return ErrorNotStarted.Error(nil)
	}

	if _, exists := s.filters[pattern]; exists {
		return ErrorAlreadySubscribed.Error(nil)
	}

	sub, err := s.tr.Subscribe(pattern, func(msg transport.Message, _ func([]byte) error) {
		s.deliver(msg.Data)
	})
	if err != nil {
		return err
	}

	s.filters[pattern] = sub
	s.obs.OnSubscribed(pattern)

	return nil
}

func (s *subscriberImpl) Subscribe(topic string, h Handler) error {
	if err := s.Register(topic, h); err != nil {
		return err
	}

	if err := s.Filter(topic); err != nil {
		s.m.Lock()
		delete(s.topics, topic)
		s.m.Unlock()
		return err
	}

	return nil
}

func (s *subscriberImpl) Unsubscribe(topic string) error {
	s.m.Lock()
	defer s.m.Unlock()

	delete(s.topics, topic)

	sub, ok := s.filters[topic]
	if !ok {
		return nil
	}

	delete(s.filters, topic)
	return sub.Unsubscribe()
}

func (s *subscriberImpl) Identity() identity.Host {
	s.m.Lock()
	defer s.m.Unlock()

	if s.id == nil {
		return identity.Host{}
	}
	return s.id.Host()
}

// deliver runs on whichever goroutine the transport calls the subscription handler on.
func (s *subscriberImpl) deliver(data []byte) {
	s.m.Lock()
	if s.halted {
		s.m.Unlock()
		return
	}
	s.m.Unlock()

	env, err := pubsub.DecodeEnvelope(s.cdc, data)
	if err != nil {
		s.obs.OnInvalidMsgReceived(ErrorBadEnvelope.Error(err))
		return
	}

	// Callbacks are keyed by exact envelope topic: a message reaching us through a
	// prefix subscription whose own topic was never registered is a fault, not a match.
	s.m.Lock()
	h, ok := s.topics[env.Topic]
	s.m.Unlock()

	if !ok {
		s.onFault(ErrorUnknownTopic.Error(nil))
		return
	}

	if err = h(env.Payload); err != nil {
		s.onFault(ErrorBadPayload.Error(err))
		return
	}

	s.obs.OnMsgReceived(env.Topic, env.Sequence)
}

func (s *subscriberImpl) logger() logger.Logger {
	if s.log == nil {
		return nil
	}
	return s.log()
}

func (s *subscriberImpl) onFault(err error) {
	if l := s.logger(); l != nil {
		l.Error("subscriber delivery fault", err)
	}
	s.obs.OnError(err)

	if s.cfg.Policy != PolicyHalt {
		return
	}

	s.m.Lock()
	if s.halted {
		s.m.Unlock()
		return
	}
	s.halted = true
	subs := make([]transport.Subscription, 0, len(s.filters))
	for _, sub := range s.filters {
		subs = append(subs, sub)
	}
	s.m.Unlock()

	for _, sub := range subs {
		_ = sub.Unsubscribe()
	}
}

// readArg decodes the next positional argument from r, following the same
// frame-per-argument layout the command registry uses for its own callback arguments.
func readArg(c serial.Codec, r *bytes.Reader, v interface{}) error {
	_, payload, err := c.ReadFrame(r)
	if err != nil {
		return ErrorBadPayload.Error(err)
	}

	if err = c.Unmarshal(payload, v); err != nil {
		return ErrorBadPayload.Error(err)
	}

	return nil
}

// Subscribe1 registers a callback that decodes the envelope payload as a single typed
// argument, matching the single-value encoding produced by registry.EncodeArgs.
func Subscribe1[A1 any](sub Subscriber, c serial.Codec, topic string, fn func(A1)) error {
	return sub.Subscribe(topic, func(payload []byte) error {
		r := bytes.NewReader(payload)

		var a1 A1
		if err := readArg(c, r, &a1); err != nil {
			return err
		}

		fn(a1)
		return nil
	})
}

// Subscribe2 registers a callback that decodes the envelope payload as two typed
// arguments, read in declaration order.
func Subscribe2[A1 any, A2 any](sub Subscriber, c serial.Codec, topic string, fn func(A1, A2)) error {
	return sub.Subscribe(topic, func(payload []byte) error {
		r := bytes.NewReader(payload)

		var a1 A1
		if err := readArg(c, r, &a1); err != nil {
			return err
		}

		var a2 A2
		if err := readArg(c, r, &a2); err != nil {
			return err
		}

		fn(a1, a2)
		return nil
	})
}
