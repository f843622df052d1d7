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

// Package registry is the command server's type-erased callback table. Each
// registration captures its own argument/return types at the call site and stores a
// single Handler that knows how to deserialize the wire parameters, invoke the typed
// callback and reserialize its result; the table itself only ever sees bytes in and
// bytes out, so command dispatch never needs a type switch.
package registry

import (
	"github.com/sabouaram/msgrt/atomic"
	"github.com/sabouaram/msgrt/command"
)

// Handler is the type-erased form every registration is reduced to: take the request's
// raw parameter buffer, return the reply's raw parameter buffer.
type Handler func(params []byte) ([]byte, error)

// Registry stores one Handler per user command id and dispatches by id.
type Registry interface {
	// Register associates id with h. id must be in the user range (command.UserMin or
	// above); registering a reserved id fails with ErrorReservedCommand. Registering an
	// id that already has a handler fails with ErrorAlreadyRegistered.
	Register(id command.ID, h Handler) error

	// Unregister removes id's handler, if any.
	Unregister(id command.ID)

	// Lookup returns id's handler and whether one was found.
	Lookup(id command.ID) (Handler, bool)

	// Has reports whether id currently has a handler.
	Has(id command.ID) bool
}

type registry struct {
	m atomic.MapTyped[command.ID, Handler]
}

// New returns an empty Registry. Safe for concurrent registration and dispatch: the
// underlying table is a single writer/many readers map, matching the command server's
// setup-then-dispatch lifecycle.
func New() Registry {
	return &registry{m: atomic.NewMapTyped[command.ID, Handler]()}
}

func (r *registry) Register(id command.ID, h Handler) error {
	if id.IsReserved() {
		return ErrorReservedCommand.Error(nil)
	}

	if _, loaded := r.m.LoadOrStore(id, h); loaded {
		return ErrorAlreadyRegistered.Error(nil)
	}

	return nil
}

func (r *registry) Unregister(id command.ID) {
	r.m.Delete(id)
}

func (r *registry) Lookup(id command.ID) (Handler, bool) {
	return r.m.Load(id)
}

func (r *registry) Has(id command.ID) bool {
	_, ok := r.m.Load(id)
	return ok
}
