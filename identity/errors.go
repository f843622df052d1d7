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

package identity

import (
	"fmt"

	liberr "github.com/sabouaram/msgrt/errors"
)

const (
	ErrorUUIDGenerate liberr.CodeError = iota + liberr.MinPkgIdentity
	ErrorHostname
	ErrorInterfaceEnum
	ErrorInterfaceNotFound
	ErrorNoAddress
)

func init() {
	if liberr.ExistInMapMessage(ErrorUUIDGenerate) {
		panic(fmt.Errorf("error code collision with package msgrt/identity"))
	}
	liberr.RegisterIdFctMessage(ErrorUUIDGenerate, getMessage)
}

func getMessage(code liberr.CodeError) (message string) {
	switch code {
	case ErrorUUIDGenerate:
		return "cannot generate process uuid"
	case ErrorHostname:
		return "cannot resolve local hostname"
	case ErrorInterfaceEnum:
		return "cannot enumerate local network interfaces"
	case ErrorInterfaceNotFound:
		return "preferred network interface not found"
	case ErrorNoAddress:
		return "no usable local address found"
	}

	return liberr.NullMessage
}
