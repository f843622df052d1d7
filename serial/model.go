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

package serial

import (
	"encoding/binary"
	"fmt"
	"io"

	msgpack "github.com/hashicorp/go-msgpack/codec"
)

type codec struct{}

func (c *codec) handle() *msgpack.MsgpackHandle {
	h := &msgpack.MsgpackHandle{}
	h.RawToString = true
	return h
}

func (c *codec) Marshal(v interface{}) ([]byte, error) {
	var buf []byte
	enc := msgpack.NewEncoderBytes(&buf, c.handle())
	if err := enc.Encode(v); err != nil {
		return nil, ErrorEncode.Error(err)
	}
	return buf, nil
}

func (c *codec) Unmarshal(data []byte, v interface{}) error {
	dec := msgpack.NewDecoderBytes(data, c.handle())
	if err := dec.Decode(v); err != nil {
		return ErrorDecode.Error(err)
	}
	return nil
}

func (c *codec) WriteFrame(w io.Writer, tag Tag, payload []byte) error {
	if w == nil {
		return ErrorParamEmpty.Error(nil)
	}

	hdr := make([]byte, FrameHeaderSize)
	binary.BigEndian.PutUint64(hdr[0:8], uint64(len(payload)))
	binary.BigEndian.PutUint64(hdr[8:16], uint64(tag))

	if _, err := w.Write(hdr); err != nil {
		return ErrorWrite.Error(err)
	}

	if len(payload) > 0 {
		if _, err := w.Write(payload); err != nil {
			return ErrorWrite.Error(err)
		}
	}

	return nil
}

func (c *codec) ReadFrame(r io.Reader) (Tag, []byte, error) {
	if r == nil {
		return 0, nil, ErrorParamEmpty.Error(nil)
	}

	hdr := make([]byte, FrameHeaderSize)
	if _, err := io.ReadFull(r, hdr); err != nil {
		return 0, nil, ErrorRead.Error(err)
	}

	size := binary.BigEndian.Uint64(hdr[0:8])
	tag := Tag(binary.BigEndian.Uint64(hdr[8:16]))

	if size > MaxFrameSize {
		return 0, nil, ErrorFrameTooLarge.Error(fmt.Errorf("frame size %d exceeds max %d", size, MaxFrameSize))
	}

	payload := make([]byte, size)
	if size > 0 {
		if _, err := io.ReadFull(r, payload); err != nil {
			return 0, nil, ErrorRead.Error(err)
		}
	}

	return tag, payload, nil
}

func (c *codec) EncodeFrame(tag Tag, v interface{}) ([]byte, error) {
	payload, err := c.Marshal(v)
	if err != nil {
		return nil, err
	}

	out := make([]byte, FrameHeaderSize+len(payload))
	binary.BigEndian.PutUint64(out[0:8], uint64(len(payload)))
	binary.BigEndian.PutUint64(out[8:16], uint64(tag))
	copy(out[FrameHeaderSize:], payload)

	return out, nil
}

func (c *codec) DecodeFrame(frame []byte, v interface{}) (Tag, error) {
	if len(frame) < FrameHeaderSize {
		return 0, ErrorFrameTooShort.Error(fmt.Errorf("frame of %d bytes shorter than header %d", len(frame), FrameHeaderSize))
	}

	size := binary.BigEndian.Uint64(frame[0:8])
	tag := Tag(binary.BigEndian.Uint64(frame[8:16]))

	if uint64(len(frame)-FrameHeaderSize) != size {
		return 0, ErrorFrameTooShort.Error(fmt.Errorf("frame payload length %d does not match header size %d", len(frame)-FrameHeaderSize, size))
	}

	if size > 0 {
		if err := c.Unmarshal(frame[FrameHeaderSize:], v); err != nil {
			return 0, err
		}
	}

	return tag, nil
}
