/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
 */

package transport

import (
	"fmt"

	liberr "github.com/sabouaram/msgrt/errors"
)

const (
	ErrorConnect liberr.CodeError = iota + liberr.MinPkgTransport
	ErrorNotConnected
	ErrorPublish
	ErrorRequest
	ErrorSubscribe
	ErrorTimeout
)

func init() {
	if liberr.ExistInMapMessage(ErrorConnect) {
		panic(fmt.Errorf("error code collision with package msgrt/transport"))
	}
	liberr.RegisterIdFctMessage(ErrorConnect, getMessage)
}

func getMessage(code liberr.CodeError) (message string) {
	switch code {
	case ErrorConnect:
		return "cannot connect to messaging backend"
	case ErrorNotConnected:
		return "transport is not connected"
	case ErrorPublish:
		return "cannot publish message"
	case ErrorRequest:
		return "request failed"
	case ErrorSubscribe:
		return "cannot subscribe"
	case ErrorTimeout:
		return "request timed out"
	}

	return liberr.NullMessage
}
