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
	"fmt"

	liberr "github.com/sabouaram/msgrt/errors"
)

const (
	ErrorReservedCommand liberr.CodeError = iota + liberr.MinPkgRegistry
	ErrorAlreadyRegistered
	ErrorCallbackMissing
	ErrorBadParameters
	ErrorCallbackFailed
)

func init() {
	if liberr.ExistInMapMessage(ErrorReservedCommand) {
		panic(fmt.Errorf("error code collision with package msgrt/registry"))
	}
	liberr.RegisterIdFctMessage(ErrorReservedCommand, getMessage)
}

func getMessage(code liberr.CodeError) (message string) {
	switch code {
	case ErrorReservedCommand:
		return "cannot register a callback on a reserved command id"
	case ErrorAlreadyRegistered:
		return "command id already has a registered callback"
	case ErrorCallbackMissing:
		return "no callback registered for command id"
	case ErrorBadParameters:
		return "parameters do not match the registered callback signature"
	case ErrorCallbackFailed:
		return "callback returned an error"
	}

	return liberr.NullMessage
}
