/*
 *
 * Copyright 2025 aeron-go authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 *
 */

package util

import (
	"fmt"
	"strings"
)

// Address is the result of splitting an endpoint string such as
// "example.com:40456" or "[fe80::1%eth0]:40456".
type Address struct {
	Host          string
	Port          string
	IPVersionHint int
}

// Interface is the result of splitting an interface string such as
// "192.168.1.0:40456/24" or "[fe80::1]:40456/64".
type Interface struct {
	Host          string
	Port          string
	Prefix        string
	IPVersionHint int
}

// SplitAddress splits an address string into host and port. IPv6 literals are
// bracketed; a zone suffix ("%eth0") inside the brackets is stripped from the
// host. The port is optional.
func SplitAddress(addr string) (Address, error) {
	if addr == "" {
		return Address{}, fmt.Errorf("no address value")
	}

	host, port, hint, err := splitHostPort(addr)
	if err != nil {
		return Address{}, err
	}
	return Address{Host: host, Port: port, IPVersionHint: hint}, nil
}

// SplitInterface splits an interface string into host, port and subnet prefix.
// The prefix follows a '/' after the host or port; port and prefix are both
// optional.
func SplitInterface(str string) (Interface, error) {
	if str == "" {
		return Interface{}, fmt.Errorf("no interface value")
	}

	prefix := ""
	if slash := strings.LastIndexByte(str, '/'); slash >= 0 {
		prefix = str[slash+1:]
		if prefix == "" {
			return Interface{}, fmt.Errorf("subnet prefix invalid: %q", str)
		}
		str = str[:slash]
	}

	host, port, hint, err := splitHostPort(str)
	if err != nil {
		return Interface{}, err
	}
	return Interface{Host: host, Port: port, Prefix: prefix, IPVersionHint: hint}, nil
}

func splitHostPort(str string) (host, port string, ipVersionHint int, err error) {
	lBrace := strings.IndexByte(str, '[')
	rBrace := strings.LastIndexByte(str, ']')

	if lBrace >= 0 || rBrace >= 0 {
		if lBrace != 0 || rBrace < lBrace {
			return "", "", 0, fmt.Errorf("host address invalid: %q", str)
		}

		host = str[1:rBrace]
		// Strip any zone identifier from the host.
		if percent := strings.IndexByte(host, '%'); percent >= 0 {
			host = host[:percent]
		}

		rest := str[rBrace+1:]
		if rest != "" {
			if rest[0] != ':' || len(rest) == 1 {
				return "", "", 0, fmt.Errorf("port invalid: %q", str)
			}
			port = rest[1:]
		}
		return host, port, 6, nil
	}

	if colon := strings.LastIndexByte(str, ':'); colon >= 0 {
		if colon == len(str)-1 {
			return "", "", 0, fmt.Errorf("port invalid: %q", str)
		}
		return str[:colon], str[colon+1:], 4, nil
	}
	return str, "", 4, nil
}
