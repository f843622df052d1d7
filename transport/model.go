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

package transport

import (
	"context"
	"sync"
	"time"

	nats "github.com/nats-io/nats.go"
)

type natsTransport struct {
	m sync.Mutex

	cfg Config
	cnx *nats.Conn
}

func (o *natsTransport) Connect(ctx context.Context) error {
	o.m.Lock()
	defer o.m.Unlock()

	if o.cnx != nil && o.cnx.IsConnected() {
		return nil
	}

	opts := []nats.Option{
		nats.Name(o.cfg.Name),
		nats.ReconnectWait(o.cfg.ReconnectWait),
		nats.MaxReconnects(o.cfg.MaxReconnects),
	}

	if o.cfg.ConnectTimeout > 0 {
		opts = append(opts, nats.Timeout(o.cfg.ConnectTimeout))
	}

	cnx, err := nats.Connect(o.cfg.URL, opts...)
	if err != nil {
		return ErrorConnect.Error(err)
	}

	o.cnx = cnx
	return nil
}

func (o *natsTransport) Close() error {
	o.m.Lock()
	defer o.m.Unlock()

	if o.cnx == nil {
		return nil
	}

	o.cnx.Close()
	o.cnx = nil
	return nil
}

func (o *natsTransport) IsConnected() bool {
	o.m.Lock()
	defer o.m.Unlock()

	return o.cnx != nil && o.cnx.IsConnected()
}

func (o *natsTransport) conn() (*nats.Conn, error) {
	o.m.Lock()
	defer o.m.Unlock()

	if o.cnx == nil {
		return nil, ErrorNotConnected.Error(nil)
	}

	return o.cnx, nil
}

func (o *natsTransport) Publish(subject string, data []byte) error {
	cnx, err := o.conn()
	if err != nil {
		return err
	}

	if e := cnx.Publish(subject, data); e != nil {
		return ErrorPublish.Error(e)
	}

	return nil
}

func (o *natsTransport) Request(ctx context.Context, subject string, data []byte, timeout time.Duration) ([]byte, error) {
	cnx, err := o.conn()
	if err != nil {
		return nil, err
	}

	var (
		msg *nats.Msg
		e   error
	)

	if ctx != nil {
		msg, e = cnx.RequestWithContext(ctx, subject, data)
	} else {
		msg, e = cnx.Request(subject, data, timeout)
	}

	if e != nil {
		if e == nats.ErrTimeout || e == context.DeadlineExceeded {
			return nil, ErrorTimeout.Error(e)
		}
		return nil, ErrorRequest.Error(e)
	}

	return msg.Data, nil
}

func (o *natsTransport) Subscribe(subject string, fct Handler) (Subscription, error) {
	cnx, err := o.conn()
	if err != nil {
		return nil, err
	}

	sub, e := cnx.Subscribe(subject, o.dispatch(fct))
	if e != nil {
		return nil, ErrorSubscribe.Error(e)
	}

	return &natsSubscription{sub: sub}, nil
}

func (o *natsTransport) QueueSubscribe(subject, queue string, fct Handler) (Subscription, error) {
	cnx, err := o.conn()
	if err != nil {
		return nil, err
	}

	sub, e := cnx.QueueSubscribe(subject, queue, o.dispatch(fct))
	if e != nil {
		return nil, ErrorSubscribe.Error(e)
	}

	return &natsSubscription{sub: sub}, nil
}

func (o *natsTransport) dispatch(fct Handler) nats.MsgHandler {
	return func(m *nats.Msg) {
		if fct == nil {
			return
		}

		msg := Message{Subject: m.Subject, Reply: m.Reply, Data: m.Data}

		var respond func([]byte) error
		if m.Reply != "" {
			respond = func(data []byte) error {
				return m.Respond(data)
			}
		}

		fct(msg, respond)
	}
}

type natsSubscription struct {
	sub *nats.Subscription
}

func (o *natsSubscription) Subject() string {
	if o.sub == nil {
		return ""
	}
	return o.sub.Subject
}

func (o *natsSubscription) Unsubscribe() error {
	if o.sub == nil {
		return nil
	}
	return o.sub.Unsubscribe()
}
