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

package commandclient

import (
	"context"
	"sync"
	"time"

	"github.com/sabouaram/msgrt/atomic"
	"github.com/sabouaram/msgrt/command"
	liberr "github.com/sabouaram/msgrt/errors"
	"github.com/sabouaram/msgrt/identity"
	"github.com/sabouaram/msgrt/logger"
	"github.com/sabouaram/msgrt/serial"
	"github.com/sabouaram/msgrt/transport"
)

type client struct {
	cfg Config
	tr  transport.Transport
	obs Observer
	cdc serial.Codec
	log logger.FuncLog

	// m serializes every outbound request: a user SendCommand and the keepalive ticker
	// must never race on the same underlying connection, and at most one request may
	// be in flight at a time.
	m sync.Mutex

	id      identity.Identity
	started bool

	connected atomic.Value[bool]

	kaStop chan struct{}
	kaDone chan struct{}
}

func (c *client) logger() logger.Logger {
	if c.log == nil {
		return nil
	}
	return c.log()
}

func newClient(tr transport.Transport, cfg Config, obs Observer, log logger.FuncLog) *client {
	return &client{
		cfg:       cfg,
		tr:        tr,
		obs:       obs,
		cdc:       serial.New(),
		log:       log,
		connected: atomic.NewValue[bool](),
	}
}

func (c *client) Start(ctx context.Context) error {
	c.m.Lock()
	defer c.m.Unlock()

	if c.started {
		return ErrorAlreadyStarted.Error(nil)
	}

	id, err := identity.New(c.cfg.Name, c.cfg.Info, c.cfg.PreferIface)
	if err != nil {
		return ErrorIdentity.Error(err)
	}
	c.id = id

	if err = c.tr.Connect(ctx); err != nil {
		return err
	}

	if *c.cfg.ConnectOnStart {
		rep, sendErr := c.doSend(ctx, command.Connect, nil, c.cfg.KeepaliveTimeout)
		if sendErr != nil {
			return sendErr
		}
		if rep.Result != command.OK {
			return ErrorConnectRefused.Error(nil)
		}
	}

	c.connected.Store(true)

	if c.cfg.AutoKeepalive {
		c.kaStop = make(chan struct{})
		c.kaDone = make(chan struct{})
		go c.keepaliveLoop(c.kaStop, c.kaDone)
	}

	c.started = true
	c.obs.OnStart()

	return nil
}

func (c *client) Stop(ctx context.Context) {
	// The keepalive ticker takes c.m around each send, so it must be drained before
	// Stop acquires the lock for the disconnect/close sequence.
	c.m.Lock()
	if !c.started {
		c.m.Unlock()
		return
	}
	kaStop, kaDone := c.kaStop, c.kaDone
	c.kaStop, c.kaDone = nil, nil
	c.m.Unlock()

	if kaStop != nil {
		close(kaStop)
		<-kaDone
	}

	c.m.Lock()
	defer c.m.Unlock()

	if !c.started {
		return
	}

	if *c.cfg.ConnectOnStart {
		dctx, cancel := context.WithTimeout(ctx, c.cfg.DisconnectTimeout)
		_, _ = c.doSend(dctx, command.Disconnect, nil, c.cfg.DisconnectTimeout)
		cancel()
	}

	_ = c.tr.Close()
	c.started = false
	c.connected.Store(false)
	c.obs.OnStop()
}

// SendCommand is the public entry point for application commands; it refuses to send a
// reserved command id, since those are the protocol's own vocabulary.
func (c *client) SendCommand(ctx context.Context, id command.ID, params []byte, timeout time.Duration) (command.Reply, error) {
	if id.IsReserved() {
		return command.Reply{}, ErrorReservedCommand.Error(nil)
	}

	c.m.Lock()
	defer c.m.Unlock()

	return c.doSend(ctx, id, params, timeout)
}

// doSend performs one request/reply round trip. Callers must hold c.m.
func (c *client) doSend(ctx context.Context, id command.ID, params []byte, timeout time.Duration) (command.Reply, error) {
	var identHost identity.Host
	if c.id != nil {
		identHost = c.id.Host()
	}

	req := command.Request{Identity: identHost, Command: id, Params: params}

	frame, err := command.EncodeRequest(c.cdc, req)
	if err != nil {
		c.obs.OnError(err)
		return command.Reply{}, err
	}

	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	c.obs.OnSendCommand(id)

	raw, err := c.tr.Request(reqCtx, c.cfg.Endpoint, frame, timeout)
	if err != nil {
		if liberr.IsCode(err, transport.ErrorTimeout) {
			if l := c.logger(); l != nil {
				l.Debug("command %d timed out after %s, resetting transport", nil, id, timeout)
			}
			c.resetLocked(context.Background())
			c.connected.Store(false)
			c.obs.OnTimeout(id)
			return command.Reply{Result: command.Timeout, Command: id}, err
		}

		if l := c.logger(); l != nil {
			l.Error("command request failed, resetting transport", err)
		}
		c.resetLocked(context.Background())
		c.connected.Store(false)
		c.obs.OnError(err)
		return command.Reply{}, err
	}

	rep, err := command.DecodeReply(c.cdc, raw)
	if err != nil {
		c.obs.OnError(err)
		return command.Reply{}, err
	}

	c.connected.Store(true)
	c.obs.OnReceiveReply(id, rep.Result)

	return rep, nil
}

// Reset closes and reopens the transport connection. Exposed for callers that want to
// force a reset outside of a timed-out send (e.g. after observing OnKeepaliveFailed).
func (c *client) Reset(ctx context.Context) error {
	c.m.Lock()
	defer c.m.Unlock()

	return c.resetLocked(ctx)
}

func (c *client) resetLocked(ctx context.Context) error {
	_ = c.tr.Close()
	err := c.tr.Connect(ctx)
	c.obs.OnReset()
	return err
}

func (c *client) keepaliveLoop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	t := time.NewTicker(c.cfg.KeepaliveInterval)
	defer t.Stop()

	for {
		select {
		case <-stop:
			return
		case <-t.C:
			c.m.Lock()
			_, err := c.doSend(context.Background(), command.Alive, nil, c.cfg.KeepaliveTimeout)
			c.m.Unlock()

			if err != nil {
				c.connected.Store(false)
				c.obs.OnKeepaliveFailed()
			}
		}
	}
}

func (c *client) IsConnected() bool {
	return c.connected.Load()
}

func (c *client) Identity() identity.Host {
	c.m.Lock()
	defer c.m.Unlock()

	if c.id == nil {
		return identity.Host{}
	}
	return c.id.Host()
}
