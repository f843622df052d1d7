/*
 * MIT License
 *
 * Copyright (c) 2022 Nicolas JUHEL
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

// Package subscriber is the config component wrapping a subscriber.Subscriber: it owns
// the NATS transport and the subscriber's own lifecycle, so a complete topic subscriber
// can be stood up from a viper-bound config section plus cobra flags. Topic
// registrations are the caller's responsibility, made through Subscriber() once Start
// has returned.
package subscriber

import (
	libcfg "github.com/sabouaram/msgrt/config"
	libsub "github.com/sabouaram/msgrt/subscriber"
)

const ComponentType = "subscriber"

// DefaultLogKey is the sibling log component key this component resolves its logger
// against, unless overridden with SetLogKey.
const DefaultLogKey = "log"

// Config is the viper-bound configuration model for the subscriber component.
type Config struct {
	// URL is the NATS connection URL the transport connects to.
	URL string `mapstructure:"url" json:"url" yaml:"url" validate:"required"`

	// Name and Info label the subscriber's own identity.
	Name string `mapstructure:"name" json:"name" yaml:"name"`
	Info string `mapstructure:"info" json:"info" yaml:"info"`

	// PreferIface optionally pins the local address embedded in the subscriber identity.
	PreferIface string `mapstructure:"preferIface" json:"preferIface" yaml:"preferIface"`

	// Halt switches the error policy from continue to halt-on-first-error (see
	// subscriber.Policy).
	Halt bool `mapstructure:"halt" json:"halt" yaml:"halt"`
}

// Component is the config component interface for a subscriber.Subscriber.
type Component interface {
	libcfg.Component

	// Subscriber returns the underlying subscriber.Subscriber. Populated only after
	// Start; register topic handlers against it with Subscribe.
	Subscriber() libsub.Subscriber

	// SetObserver installs the lifecycle Observer used for the next Start/Reload.
	SetObserver(obs libsub.Observer)

	// SetLogKey overrides the sibling log component key used to resolve the logger.
	SetLogKey(key string)
}

// New returns a new, uninitialized subscriber Component. Register it on a config.Config
// instance with ComponentSet before calling Start.
func New() Component {
	return &componentSubscriber{logKey: DefaultLogKey}
}
