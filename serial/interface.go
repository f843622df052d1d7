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

// Package serial implements the module's self-describing binary wire codec: every frame
// on the wire is a big-endian, length-prefixed envelope carrying an opaque, msgpack-encoded
// payload. Every other package (command, pubsub, identity) builds its wire records on top
// of this package instead of rolling its own framing.
package serial

import (
	"io"
)

// FrameHeaderSize is the fixed size, in bytes, of a frame header: an 8-byte payload length
// followed by an 8-byte type tag, both big-endian.
const FrameHeaderSize = 16

// MaxFrameSize bounds the payload length accepted by ReadFrame, guarding against a
// corrupt or hostile peer sending an unbounded length prefix.
const MaxFrameSize = 64 * 1024 * 1024

// Tag identifies the logical record type carried by a frame. The command and pubsub
// packages define their own Tag constants; their values overlap, so a tag is only
// meaningful within one protocol.
type Tag uint64

// Codec reads and writes length-prefixed frames and marshals/unmarshals Go values to and
// from the msgpack payload carried inside those frames.
type Codec interface {
	// Marshal serializes v into a msgpack-encoded payload.
	Marshal(v interface{}) ([]byte, error)

	// Unmarshal decodes a msgpack-encoded payload into v.
	Unmarshal(data []byte, v interface{}) error

	// WriteFrame writes a single frame: [u64 payload size][u64 tag][payload] to w.
	WriteFrame(w io.Writer, tag Tag, payload []byte) error

	// ReadFrame reads a single frame from r, returning its tag and payload.
	ReadFrame(r io.Reader) (Tag, []byte, error)

	// EncodeFrame marshals v and wraps the result into a full frame byte slice,
	// without writing it anywhere. Used by transports that hand over whole messages
	// (e.g. NATS) rather than a byte stream.
	EncodeFrame(tag Tag, v interface{}) ([]byte, error)

	// DecodeFrame splits a full frame byte slice produced by EncodeFrame back into
	// its tag and unmarshals the payload into v.
	DecodeFrame(frame []byte, v interface{}) (Tag, error)
}

// New returns the default Codec implementation.
func New() Codec {
	return &codec{}
}
