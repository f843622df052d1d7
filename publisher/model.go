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

package publisher

import (
	"bytes"
	"context"
	"sync"
	syncatomic "sync/atomic"

	"github.com/sabouaram/msgrt/identity"
	"github.com/sabouaram/msgrt/logger"
	"github.com/sabouaram/msgrt/pubsub"
	"github.com/sabouaram/msgrt/serial"
	"github.com/sabouaram/msgrt/transport"
)

type publisherImpl struct {
	cfg Config
	tr  transport.Transport
	obs Observer
	cdc serial.Codec
	log logger.FuncLog

	m       sync.Mutex
	id      identity.Identity
	started bool
	seq     uint64
}

func newPublisher(tr transport.Transport, cfg Config, obs Observer, log logger.FuncLog) *publisherImpl {
	return &publisherImpl{
		cfg: cfg,
		tr:  tr,
		obs: obs,
		cdc: serial.New(),
		log: log,
	}
}

func (p *publisherImpl) Start(ctx context.Context) error {
	p.m.Lock()
	defer p.m.Unlock()

	if p.started {
		return ErrorAlreadyStarted.Error(nil)
	}

	id, err := identity.New(p.cfg.Name, p.cfg.Info, p.cfg.PreferIface)
	if err != nil {
		return ErrorIdentity.Error(err)
	}
	p.id = id

	if err = p.tr.Connect(ctx); err != nil {
		return err
	}

	p.started = true
	p.obs.OnStart()

	return nil
}

func (p *publisherImpl) Stop() error {
	p.m.Lock()
	defer p.m.Unlock()

	if !p.started {
		return nil
	}

	err := p.tr.Close()
	p.started = false
	p.obs.OnStop()

	return err
}

// Publish assigns the next sequence number before building the envelope, so a failed
// transport send still consumes the sequence number rather than risking a retry re-using it.
func (p *publisherImpl) Publish(topic string, payload []byte) error {
	seq := syncatomic.AddUint64(&p.seq, 1) - 1

	p.m.Lock()
	var host identity.Host
	if p.id != nil {
		host = p.id.Host()
	}
	p.m.Unlock()

	env := pubsub.NewEnvelope(topic, host, seq, payload)

	frame, err := pubsub.EncodeEnvelope(p.cdc, env)
	if err != nil {
		p.obs.OnError(err)
		return ErrorEncodeEnvelope.Error(err)
	}

	if err = p.tr.Publish(topic, frame); err != nil {
		if p.log != nil {
			if l := p.log(); l != nil {
				l.Error("publish on topic "+topic+" failed", err)
			}
		}
		p.obs.OnError(err)
		return err
	}

	p.obs.OnPublish(topic, seq)

	return nil
}

func (p *publisherImpl) Identity() identity.Host {
	p.m.Lock()
	defer p.m.Unlock()

	if p.id == nil {
		return identity.Host{}
	}
	return p.id.Host()
}

// Publish1 publishes a single typed value on topic, encoded with the same
// frame-per-argument layout subscriber.Subscribe1 decodes.
func Publish1[A1 any](pub Publisher, c serial.Codec, topic string, a1 A1) error {
	payload, err := encodeArgs(c, a1)
	if err != nil {
		return err
	}
	return pub.Publish(topic, payload)
}

// Publish2 publishes two typed values on topic, in declaration order, matching
// subscriber.Subscribe2.
func Publish2[A1 any, A2 any](pub Publisher, c serial.Codec, topic string, a1 A1, a2 A2) error {
	payload, err := encodeArgs(c, a1, a2)
	if err != nil {
		return err
	}
	return pub.Publish(topic, payload)
}

func encodeArgs(c serial.Codec, args ...interface{}) ([]byte, error) {
	buf := &bytes.Buffer{}

	for _, a := range args {
		payload, err := c.Marshal(a)
		if err != nil {
			return nil, ErrorEncodeEnvelope.Error(err)
		}

		if err = c.WriteFrame(buf, 0, payload); err != nil {
			return nil, ErrorEncodeEnvelope.Error(err)
		}
	}

	return buf.Bytes(), nil
}
