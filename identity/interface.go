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

// Package identity produces the stable per-process host identity record (uuid, chosen
// local address, hostname, pid) shared by the command and pubsub protocols to label a
// client, a server, a publisher or a subscriber on the wire.
package identity

// Host is the wire record carried by every command request and every published envelope
// to identify the peer that sent it. Every field is exported for msgpack marshaling by
// the serial package; field order has no wire significance since Host is marshaled as a
// self-describing msgpack map, not a sequential frame list.
type Host struct {
	UUID     string `msgpack:"uuid"`
	IP       string `msgpack:"ip"`
	Hostname string `msgpack:"hostname"`
	Pid      string `msgpack:"pid"`
	Name     string `msgpack:"name"`
	Info     string `msgpack:"info"`
}

// ID returns the dictionary key servers use to track a connected client: the
// concatenation of ip, hostname and pid, which is stable for the host's process lifetime
// and distinct across hosts sharing the same application Name.
func (h Host) ID() string {
	return h.IP + "//" + h.Hostname + "//" + h.Pid
}

// Identity exposes the process-wide host record plus the two fields an individual
// component (a server, a client, a publisher) chooses for itself: Name and Info.
type Identity interface {
	// Host returns the wire record to embed in a request, a reply or an envelope.
	Host() Host

	// UUID is the random 128-bit identifier chosen once for this process.
	UUID() string

	// IP is the local address chosen at process start, honoring the preferIface argument of New if set.
	IP() string

	// Hostname is the local machine's hostname.
	Hostname() string

	// Pid is the current process id, formatted as a string.
	Pid() string

	// Name is the application-chosen label for this identity.
	Name() string

	// Info is a free-form string the owner may use for extra context.
	Info() string

	// ID returns Host().ID().
	ID() string
}

// New returns an Identity for name/info, honoring preferIface ("" selects a default:
// the first non-loopback IPv4 address, falling back to loopback if none is found).
// The process-wide uuid, hostname and pid are resolved once and cached; only the chosen
// address may vary between calls with a different preferIface.
func New(name, info, preferIface string) (Identity, error) {
	uuid, err := processUUID()
	if err != nil {
		return nil, err
	}

	hostname, err := processHostname()
	if err != nil {
		return nil, err
	}

	ip, err := chooseAddress(preferIface)
	if err != nil {
		return nil, err
	}

	return &identity{
		h: Host{
			UUID:     uuid,
			IP:       ip,
			Hostname: hostname,
			Pid:      processPid(),
			Name:     name,
			Info:     info,
		},
	}, nil
}
