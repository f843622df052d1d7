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

// Package pubsub defines the published-message envelope shared by the publisher and
// subscriber packages: topic, publisher identity, a per-publisher sequence number, a
// fixed-format timestamp, and an opaque payload. Both ends marshal/unmarshal through
// the serial package so the layout never drifts between the two sides of the channel.
package pubsub

import (
	"time"

	"github.com/sabouaram/msgrt/identity"
	"github.com/sabouaram/msgrt/serial"
)

// Envelope is the fixed header prepended to every published message. Payload is opaque
// to the envelope itself; the subscriber deserializes it according to the callback
// registered for Topic.
type Envelope struct {
	Topic     string        `msgpack:"topic"`
	Publisher identity.Host `msgpack:"publisher"`
	Sequence  uint64        `msgpack:"sequence"`
	Timestamp string        `msgpack:"timestamp"`
	Payload   []byte        `msgpack:"payload"`
}

// TagEnvelope frames an Envelope through serial.Codec.EncodeFrame/DecodeFrame.
const TagEnvelope serial.Tag = 1

// NewEnvelope stamps topic, seq and payload with the current UTC time in the envelope's
// fixed wire format (RFC3339 with nanosecond precision).
func NewEnvelope(topic string, pub identity.Host, seq uint64, payload []byte) Envelope {
	return Envelope{
		Topic:     topic,
		Publisher: pub,
		Sequence:  seq,
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		Payload:   payload,
	}
}

// EncodeEnvelope marshals env into a self-contained frame ready to hand to a transport.
func EncodeEnvelope(c serial.Codec, env Envelope) ([]byte, error) {
	b, err := c.EncodeFrame(TagEnvelope, &env)
	if err != nil {
		return nil, ErrorEncodeEnvelope.Error(err)
	}
	return b, nil
}

// DecodeEnvelope reconstructs an Envelope from a frame produced by EncodeEnvelope.
func DecodeEnvelope(c serial.Codec, frame []byte) (Envelope, error) {
	var env Envelope
	if _, err := c.DecodeFrame(frame, &env); err != nil {
		return Envelope{}, ErrorDecodeEnvelope.Error(err)
	}
	return env, nil
}
