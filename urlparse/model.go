/***********************************************************************************************************************
 *
 *   MIT License
 *
 *   Copyright (c) 2022 Nicolas JUHEL
 *
 *   Permission is hereby granted, free of charge, to any person obtaining a copy
 *   of this software and associated documentation files (the "Software"), to deal
 *   in the Software without restriction, including without limitation the rights
 *   to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 *   copies of the Software, and to permit persons to whom the Software is
 *   furnished to do so, subject to the following conditions:
 *
 *   The above copyright notice and this permission notice shall be included in all
 *   copies or substantial portions of the Software.
 *
 *   THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 *   IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 *   FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 *   AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 *   LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 *   OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 *   SOFTWARE.
 *
 *
 **********************************************************************************************************************/

package urlparse

import (
	"strconv"
	"strings"
)

// defaultPorts mirrors the teacher corpus's own protocol/port table: looked
// up by the exact lowercased scheme, nothing fuzzier.
var defaultPorts = map[string]int{
	"ftp":   21,
	"ssh":   22,
	"smtp":  25,
	"snmp":  161,
	"http":  80,
	"https": 443,
	"ws":    80,
	"wss":   443,
}

// DefaultPort returns the well-known port for protocol, or (0, false) if
// protocol isn't one of the recognized schemes.
func DefaultPort(protocol string) (int, bool) {
	port, ok := defaultPorts[strings.ToLower(protocol)]
	return port, ok
}

// Link is a parsed "<scheme>://[<user>[:<pass>]@]<host>[:<port>][/uri]"
// string.
type Link struct {
	Protocol string
	User     string
	Pass     string
	Host     string // host, with ":port" appended when a port is known
	Addr     string // host alone, no port
	Port     int
	URI      string
	File     string // last path segment, when URI doesn't end in "/"
}

// Parse decomposes input into a Link. The scheme defaults to "http" when
// absent; the port defaults to the scheme's well-known port (falling back to
// unset when the scheme isn't recognized) when input doesn't name one
// explicitly; URI defaults to "/".
func Parse(input string) (Link, error) {
	if input == "" {
		return Link{}, ErrorEmpty.Error()
	}

	var link Link
	rest := input

	link.Protocol = "http"
	if idx := strings.Index(rest, "://"); idx >= 0 {
		link.Protocol = strings.ToLower(rest[:idx])
		rest = rest[idx+3:]
	}

	hostPart := rest
	uriPart := ""
	if idx := strings.IndexByte(rest, '/'); idx >= 0 {
		hostPart = rest[:idx]
		uriPart = rest[idx:]
	}

	if idx := strings.IndexByte(hostPart, '@'); idx >= 0 {
		userinfo := hostPart[:idx]
		hostPart = hostPart[idx+1:]

		if cidx := strings.IndexByte(userinfo, ':'); cidx >= 0 {
			link.User = userinfo[:cidx]
			link.Pass = userinfo[cidx+1:]
		} else {
			link.User = userinfo
		}
	}

	link.Addr = hostPart
	if idx := strings.LastIndexByte(hostPart, ':'); idx >= 0 {
		link.Addr = hostPart[:idx]
		if port, err := strconv.Atoi(hostPart[idx+1:]); err == nil {
			link.Port = port
		}
	}

	if link.Port == 0 {
		if port, ok := DefaultPort(link.Protocol); ok {
			link.Port = port
		}
	}

	if link.Port != 0 {
		link.Host = link.Addr + ":" + strconv.Itoa(link.Port)
	} else {
		link.Host = link.Addr
	}

	link.URI = uriPart
	if link.URI == "" {
		link.URI = "/"
	}

	if !strings.HasSuffix(link.URI, "/") {
		segments := strings.Split(link.URI, "/")
		link.File = segments[len(segments)-1]
	}

	return link, nil
}
