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

package commandserver

import (
	"context"
	"sync"
	"time"

	"github.com/sabouaram/msgrt/atomic"
	"github.com/sabouaram/msgrt/command"
	liberr "github.com/sabouaram/msgrt/errors"
	"github.com/sabouaram/msgrt/identity"
	"github.com/sabouaram/msgrt/logger"
	"github.com/sabouaram/msgrt/registry"
	"github.com/sabouaram/msgrt/serial"
	"github.com/sabouaram/msgrt/transport"
)

type clientEntry struct {
	host     identity.Host
	lastSeen atomic.Value[int64]
}

func newClientEntry(host identity.Host) *clientEntry {
	e := &clientEntry{host: host, lastSeen: atomic.NewValue[int64]()}
	e.touch()
	return e
}

func (e *clientEntry) touch() {
	e.lastSeen.Store(time.Now().UnixNano())
}

func (e *clientEntry) idleFor() time.Duration {
	return time.Since(time.Unix(0, e.lastSeen.Load()))
}

type server struct {
	cfg Config
	tr  transport.Transport
	reg registry.Registry
	obs Observer
	cdc serial.Codec
	log logger.FuncLog

	m       sync.Mutex
	id      identity.Identity
	sub     transport.Subscription
	running bool

	clients atomic.MapTyped[string, *clientEntry]

	sweepStop chan struct{}
	sweepDone chan struct{}
}

func newServer(tr transport.Transport, cfg Config, reg registry.Registry, obs Observer, log logger.FuncLog) *server {
	if reg == nil {
		reg = registry.New()
	}

	return &server{
		cfg:     cfg,
		tr:      tr,
		reg:     reg,
		obs:     obs,
		cdc:     serial.New(),
		log:     log,
		clients: atomic.NewMapTyped[string, *clientEntry](),
	}
}

func (s *server) logger() logger.Logger {
	if s.log == nil {
		return nil
	}
	return s.log()
}

func (s *server) Start(ctx context.Context) error {
	s.m.Lock()
	defer s.m.Unlock()

	if s.running {
		return ErrorAlreadyRunning.Error(nil)
	}

	id, err := identity.New(s.cfg.Name, s.cfg.Info, s.cfg.PreferIface)
	if err != nil {
		return ErrorIdentity.Error(err)
	}
	s.id = id

	if err = s.tr.Connect(ctx); err != nil {
		return err
	}

	sub, err := s.tr.Subscribe(s.cfg.Endpoint, s.dispatch)
	if err != nil {
		return ErrorSubscribe.Error(err)
	}
	s.sub = sub

	s.sweepStop = make(chan struct{})
	s.sweepDone = make(chan struct{})
	go s.sweepLoop()

	s.running = true
	s.obs.OnStart()

	return nil
}

func (s *server) Stop() {
	s.m.Lock()
	defer s.m.Unlock()

	if !s.running {
		return
	}

	if s.sub != nil {
		_ = s.sub.Unsubscribe()
		s.sub = nil
	}

	close(s.sweepStop)
	<-s.sweepDone

	s.running = false
	s.obs.OnStop()
}

func (s *server) IsRunning() bool {
	s.m.Lock()
	defer s.m.Unlock()
	return s.running
}

func (s *server) Identity() identity.Host {
	s.m.Lock()
	defer s.m.Unlock()
	if s.id == nil {
		return identity.Host{}
	}
	return s.id.Host()
}

func (s *server) Clients() []identity.Host {
	out := make([]identity.Host, 0)
	s.clients.Range(func(_ string, e *clientEntry) bool {
		out = append(out, e.host)
		return true
	})
	return out
}

func (s *server) sweepLoop() {
	defer close(s.sweepDone)

	t := time.NewTicker(s.cfg.CheckInterval)
	defer t.Stop()

	for {
		select {
		case <-s.sweepStop:
			return
		case <-t.C:
			s.sweepDead()
		}
	}
}

func (s *server) sweepDead() {
	var dead []*clientEntry

	s.clients.Range(func(id string, e *clientEntry) bool {
		if e.idleFor() > s.cfg.ClientDeadTimeout {
			dead = append(dead, e)
			s.clients.Delete(id)
		}
		return true
	})

	for _, e := range dead {
		if l := s.logger(); l != nil {
			l.Debug("client %s timed out, removing", nil, e.host.ID())
		}
		s.obs.OnDeadClient(e.host)
	}
}

// dispatch is the transport.Handler bound to the server's subject; it is invoked once
// per inbound request, on whichever goroutine the transport delivers it on.
func (s *server) dispatch(msg transport.Message, respond func([]byte) error) {
	s.obs.OnWaitingCommand()

	req, err := command.DecodeRequest(s.cdc, msg.Data)
	if err != nil {
		if l := s.logger(); l != nil {
			l.Error("invalid command request received", err)
		}
		s.obs.OnInvalidMsgReceived(err)
		s.reply(respond, command.Reply{Result: command.InvalidMsg}, identity.Host{})
		return
	}

	s.obs.OnCommandReceived(req.Identity, req.Command)

	result, params := s.handle(req)

	if l := s.logger(); l != nil {
		l.Debug("command %d from %s: %s", nil, req.Command, req.Identity.ID(), result.String())
	}

	s.obs.OnSendingResponse(req.Identity, req.Command, result)
	s.reply(respond, command.Reply{Result: result, Command: req.Command, Params: params}, req.Identity)
}

func (s *server) reply(respond func([]byte) error, rep command.Reply, to identity.Host) {
	if respond == nil {
		return
	}

	frame, err := command.EncodeReply(s.cdc, rep)
	if err != nil {
		s.obs.OnServerError(err)
		frame, _ = command.EncodeReply(s.cdc, command.Reply{Result: command.CommandFailed, Command: rep.Command})
	}

	if err = respond(frame); err != nil {
		s.obs.OnServerError(err)
	}
}

// handle runs the server state machine for a single parsed request and returns the
// result code plus reply parameters.
func (s *server) handle(req command.Request) (command.Result, []byte) {
	if req.Command == command.Invalid {
		return command.BadCommand, nil
	}

	id := req.Identity.ID()

	switch req.Command {
	case command.Connect:
		entry, loaded := s.clients.LoadOrStore(id, newClientEntry(req.Identity))
		if loaded {
			entry.touch()
		}
		s.obs.OnConnected(req.Identity)
		return command.OK, nil

	case command.Disconnect:
		if e, ok := s.clients.LoadAndDelete(id); ok {
			s.obs.OnDisconnected(e.host)
		} else {
			s.obs.OnDisconnected(req.Identity)
		}
		return command.OK, nil
	}

	entry, ok := s.clients.Load(id)
	if !ok {
		if s.cfg.Policy != PolicyLenient {
			return command.ClientNotConnected, nil
		}

		entry = newClientEntry(req.Identity)
		s.clients.Store(id, entry)
		s.obs.OnConnected(req.Identity)
	} else {
		entry.touch()
	}

	switch {
	case req.Command == command.Alive:
		return command.OK, nil

	case req.Command == command.GetServerTime:
		payload, err := registry.EncodeArgs(s.cdc, time.Now().UTC().Format(time.RFC3339Nano))
		if err != nil {
			return command.CommandFailed, nil
		}
		return command.OK, payload

	case req.Command.IsReserved():
		return command.UnknownCommand, nil

	default:
		h, found := s.reg.Lookup(req.Command)
		if !found {
			return command.NotImplemented, nil
		}

		out, err := h(req.Params)
		if err != nil {
			if liberr.IsCode(err, registry.ErrorBadParameters) {
				return command.BadParameters, nil
			}
			return command.CommandFailed, nil
		}

		return command.OK, out
	}
}
