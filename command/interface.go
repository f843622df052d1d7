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

// Package command defines the request/reply wire records, the reserved command
// vocabulary and the result codes shared by the command server and command client.
// Both sides marshal/unmarshal through the serial package so the layout never drifts
// between the two ends of the channel.
package command

import (
	"github.com/sabouaram/msgrt/identity"
	"github.com/sabouaram/msgrt/serial"
)

// ID is the 32-bit command identifier carried on the wire. Ids below UserMin are
// reserved for the protocol itself; application commands must use UserMin or above.
type ID int32

const (
	// Invalid is never legally sent; it is the zero-value sentinel for a parsed
	// request whose command field was never set.
	Invalid ID = 0

	// Connect begins a session: the server registers the sending identity.
	Connect ID = 1

	// Disconnect ends a session: the server removes the sending identity.
	Disconnect ID = 2

	// Alive is the keepalive ping; it refreshes the client's last-seen deadline.
	Alive ID = 3

	// GetServerTime asks the server to report its current time.
	GetServerTime ID = 4

	// UserMin is the first id an application is allowed to register a callback for.
	UserMin ID = 100
)

// IsReserved reports whether id falls in the protocol-owned range [0, UserMin).
func (id ID) IsReserved() bool {
	return id >= Invalid && id < UserMin
}

// IsUser reports whether id falls in the application-owned range [UserMin, +inf).
func (id ID) IsUser() bool {
	return id >= UserMin
}

// Result is the reply's result code: the single point of truth for whether a command
// succeeded. Callers must not interpret Reply.Params when Result != OK.
type Result int32

const (
	OK Result = iota
	InvalidMsg
	EmptyMsg
	EmptyParams
	BadParameters
	NotImplemented
	UnknownCommand
	CommandFailed
	DisconnectCurrentClient
	ServerStopped
	Timeout
	BadCommand
	ClientNotConnected
)

// String renders the result code for logging.
func (r Result) String() string {
	switch r {
	case OK:
		return "OK"
	case InvalidMsg:
		return "INVALID_MSG"
	case EmptyMsg:
		return "EMPTY_MSG"
	case EmptyParams:
		return "EMPTY_PARAMS"
	case BadParameters:
		return "BAD_PARAMETERS"
	case NotImplemented:
		return "NOT_IMPLEMENTED"
	case UnknownCommand:
		return "UNKNOWN_COMMAND"
	case CommandFailed:
		return "COMMAND_FAILED"
	case DisconnectCurrentClient:
		return "DISCONNECT_CURRENT_CLIENT"
	case ServerStopped:
		return "SERVER_STOPPED"
	case Timeout:
		return "TIMEOUT"
	case BadCommand:
		return "BAD_COMMAND"
	case ClientNotConnected:
		return "CLIENT_NOT_CONNECTED"
	}

	return "UNKNOWN_RESULT"
}

// Request is the wire form sent on the request channel: the sender's host identity,
// the command id, and an opaque parameter buffer the Callback Registry deserializes.
type Request struct {
	Identity identity.Host `msgpack:"identity"`
	Command  ID            `msgpack:"command"`
	Params   []byte        `msgpack:"params"`
}

// Reply is the wire form sent back on the request channel.
type Reply struct {
	Result  Result `msgpack:"result"`
	Command ID     `msgpack:"command"`
	Params  []byte `msgpack:"params"`
}

// Tag values used to frame Request/Reply through serial.Codec.EncodeFrame/DecodeFrame.
const (
	TagRequest serial.Tag = 1
	TagReply   serial.Tag = 2
)

// EncodeRequest marshals req into a self-contained frame ready to hand to a transport.
func EncodeRequest(c serial.Codec, req Request) ([]byte, error) {
	b, err := c.EncodeFrame(TagRequest, &req)
	if err != nil {
		return nil, ErrorEncodeRequest.Error(err)
	}
	return b, nil
}

// DecodeRequest reconstructs a Request from a frame produced by EncodeRequest.
func DecodeRequest(c serial.Codec, frame []byte) (Request, error) {
	var req Request
	if _, err := c.DecodeFrame(frame, &req); err != nil {
		return Request{}, ErrorDecodeRequest.Error(err)
	}
	return req, nil
}

// EncodeReply marshals rep into a self-contained frame ready to hand to a transport.
func EncodeReply(c serial.Codec, rep Reply) ([]byte, error) {
	b, err := c.EncodeFrame(TagReply, &rep)
	if err != nil {
		return nil, ErrorEncodeReply.Error(err)
	}
	return b, nil
}

// DecodeReply reconstructs a Reply from a frame produced by EncodeReply.
func DecodeReply(c serial.Codec, frame []byte) (Reply, error) {
	var rep Reply
	if _, err := c.DecodeFrame(frame, &rep); err != nil {
		return Reply{}, ErrorDecodeReply.Error(err)
	}
	return rep, nil
}
