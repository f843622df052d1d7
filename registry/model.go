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

package registry

import (
	"bytes"

	"github.com/sabouaram/msgrt/command"
	"github.com/sabouaram/msgrt/serial"
)

// argTag is the frame tag used for every positional argument/result written into a
// command's parameter buffer; the registry doesn't need distinct tags per position
// since arity and order are fixed by the registration site, not discovered on the wire.
const argTag serial.Tag = 0

func readArg(c serial.Codec, r *bytes.Reader, v interface{}) error {
	_, payload, err := c.ReadFrame(r)
	if err != nil {
		return ErrorBadParameters.Error(err)
	}

	if err = c.Unmarshal(payload, v); err != nil {
		return ErrorBadParameters.Error(err)
	}

	return nil
}

func writeResult(c serial.Codec, v interface{}) ([]byte, error) {
	payload, err := c.Marshal(v)
	if err != nil {
		return nil, err
	}

	buf := &bytes.Buffer{}
	if err = c.WriteFrame(buf, argTag, payload); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Register0 registers a callback that takes no arguments. The wire order is the
// registration order: none here, just the return value R.
func Register0[R any](reg Registry, c serial.Codec, id command.ID, fn func() (R, error)) error {
	return reg.Register(id, func(params []byte) ([]byte, error) {
		result, err := fn()
		if err != nil {
			return nil, ErrorCallbackFailed.Error(err)
		}
		return writeResult(c, result)
	})
}

// Register1 registers a callback taking a single typed argument. A1 is read from the
// first frame of the parameter buffer, in the order it was declared here.
func Register1[A1 any, R any](reg Registry, c serial.Codec, id command.ID, fn func(A1) (R, error)) error {
	return reg.Register(id, func(params []byte) ([]byte, error) {
		r := bytes.NewReader(params)

		var a1 A1
		if err := readArg(c, r, &a1); err != nil {
			return nil, err
		}

		result, err := fn(a1)
		if err != nil {
			return nil, ErrorCallbackFailed.Error(err)
		}
		return writeResult(c, result)
	})
}

// Register2 registers a callback taking two typed arguments, read in declaration order.
func Register2[A1 any, A2 any, R any](reg Registry, c serial.Codec, id command.ID, fn func(A1, A2) (R, error)) error {
	return reg.Register(id, func(params []byte) ([]byte, error) {
		r := bytes.NewReader(params)

		var a1 A1
		if err := readArg(c, r, &a1); err != nil {
			return nil, err
		}

		var a2 A2
		if err := readArg(c, r, &a2); err != nil {
			return nil, err
		}

		result, err := fn(a1, a2)
		if err != nil {
			return nil, ErrorCallbackFailed.Error(err)
		}
		return writeResult(c, result)
	})
}

// Register3 registers a callback taking three typed arguments, read in declaration order.
func Register3[A1 any, A2 any, A3 any, R any](reg Registry, c serial.Codec, id command.ID, fn func(A1, A2, A3) (R, error)) error {
	return reg.Register(id, func(params []byte) ([]byte, error) {
		r := bytes.NewReader(params)

		var a1 A1
		if err := readArg(c, r, &a1); err != nil {
			return nil, err
		}

		var a2 A2
		if err := readArg(c, r, &a2); err != nil {
			return nil, err
		}

		var a3 A3
		if err := readArg(c, r, &a3); err != nil {
			return nil, err
		}

		result, err := fn(a1, a2, a3)
		if err != nil {
			return nil, ErrorCallbackFailed.Error(err)
		}
		return writeResult(c, result)
	})
}

// EncodeArgs serializes its positional arguments into a parameter buffer, one frame per
// argument in the order given, matching the frame-per-argument layout readArg expects.
// Client code calling a registered command passes the arguments in the same order the
// server registered them.
func EncodeArgs(c serial.Codec, args ...interface{}) ([]byte, error) {
	buf := &bytes.Buffer{}

	for _, a := range args {
		payload, err := c.Marshal(a)
		if err != nil {
			return nil, err
		}

		if err = c.WriteFrame(buf, argTag, payload); err != nil {
			return nil, err
		}
	}

	return buf.Bytes(), nil
}

// DecodeResult deserializes a single return value from a reply's parameter buffer, as
// produced by writeResult on the server side.
func DecodeResult(c serial.Codec, params []byte, v interface{}) error {
	r := bytes.NewReader(params)
	_, payload, err := c.ReadFrame(r)
	if err != nil {
		return err
	}
	return c.Unmarshal(payload, v)
}
