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
	"net"
	"os"
	"strconv"
	"sync"

	lbuuid "github.com/hashicorp/go-uuid"
)

type identity struct {
	h Host
}

func (i *identity) Host() Host       { return i.h }
func (i *identity) UUID() string     { return i.h.UUID }
func (i *identity) IP() string       { return i.h.IP }
func (i *identity) Hostname() string { return i.h.Hostname }
func (i *identity) Pid() string      { return i.h.Pid }
func (i *identity) Name() string     { return i.h.Name }
func (i *identity) Info() string     { return i.h.Info }
func (i *identity) ID() string       { return i.h.ID() }

var (
	onceProcess sync.Once
	cachedUUID  string
	cachedHost  string
	cachedErr   error
)

// processUUID resolves the process-wide uuid exactly once; every subsequent Identity
// created in this process shares the same value.
func processUUID() (string, error) {
	onceProcess.Do(func() {
		u, e := lbuuid.GenerateUUID()
		if e != nil {
			cachedErr = ErrorUUIDGenerate.Error(e)
			return
		}
		cachedUUID = u

		h, e := os.Hostname()
		if e != nil {
			cachedErr = ErrorHostname.Error(e)
			return
		}
		cachedHost = h
	})

	if cachedErr != nil {
		return "", cachedErr
	}
	return cachedUUID, nil
}

func processHostname() (string, error) {
	if _, err := processUUID(); err != nil {
		return "", err
	}
	return cachedHost, nil
}

func processPid() string {
	return strconv.Itoa(os.Getpid())
}

// chooseAddress picks the local address embedded in the host identity. With a preferred
// interface name, it returns the first address bound to that interface. Otherwise it
// deterministically picks the first non-loopback IPv4 address across all interfaces,
// falling back to the loopback address if the host has none.
func chooseAddress(preferIface string) (string, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return "", ErrorInterfaceEnum.Error(err)
	}

	if preferIface != "" {
		for _, it := range ifaces {
			if it.Name != preferIface {
				continue
			}

			addrs, e := it.Addrs()
			if e != nil {
				return "", ErrorInterfaceEnum.Error(e)
			}

			for _, a := range addrs {
				if ip := addrIP(a); ip != "" {
					return ip, nil
				}
			}

			return "", ErrorNoAddress.Error(nil)
		}

		return "", ErrorInterfaceNotFound.Error(nil)
	}

	var loopback string

	for _, it := range ifaces {
		if it.Flags&net.FlagUp == 0 {
			continue
		}

		addrs, e := it.Addrs()
		if e != nil {
			continue
		}

		for _, a := range addrs {
			ipAddr, ok := a.(*net.IPNet)
			if !ok || ipAddr.IP.To4() == nil {
				continue
			}

			if ipAddr.IP.IsLoopback() {
				if loopback == "" {
					loopback = ipAddr.IP.String()
				}
				continue
			}

			return ipAddr.IP.String(), nil
		}
	}

	if loopback != "" {
		return loopback, nil
	}

	return "", ErrorNoAddress.Error(nil)
}

func addrIP(a net.Addr) string {
	switch v := a.(type) {
	case *net.IPNet:
		return v.IP.String()
	case *net.IPAddr:
		return v.IP.String()
	}
	return ""
}
