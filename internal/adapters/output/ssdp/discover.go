package ssdp

import (
	"context"
	"errors"
	"net"
	"net/url"
	"strings"
	"time"
)

const multicastAddr = "239.255.255.250:1900"

var ErrNoBridge = errors.New("no hue bridge answered the SSDP search")

// Hue bridges answer for this search target and identify themselves with an
// IpBridge SERVER token or a hue-bridgeid header.
const searchRequest = "M-SEARCH * HTTP/1.1\r\n" +
	"HOST: 239.255.255.250:1900\r\n" +
	"MAN: \"ssdp:discover\"\r\n" +
	"MX: 2\r\n" +
	"ST: urn:schemas-upnp-org:device:basic:1\r\n\r\n"

type Discoverer struct {
	addr    string
	timeout time.Duration
}

func NewDiscoverer(timeout time.Duration) *Discoverer {
	return &Discoverer{addr: multicastAddr, timeout: timeout}
}

// Discover returns the host of the first Hue bridge that answers.
func (d *Discoverer) Discover(ctx context.Context) (string, error) {
	dest, err := net.ResolveUDPAddr("udp4", d.addr)
	if err != nil {
		return "", err
	}

	conn, err := net.ListenUDP("udp4", nil)
	if err != nil {
		return "", err
	}
	defer conn.Close()

	deadline := time.Now().Add(d.timeout)
	if dl, ok := ctx.Deadline(); ok && dl.Before(deadline) {
		deadline = dl
	}
	if err := conn.SetDeadline(deadline); err != nil {
		return "", err
	}

	if _, err := conn.WriteToUDP([]byte(searchRequest), dest); err != nil {
		return "", err
	}

	buf := make([]byte, 1024)
	for {
		n, src, err := conn.ReadFromUDP(buf)
		if err != nil {
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				return "", ErrNoBridge
			}
			return "", err
		}
		if host, ok := parseResponse(string(buf[:n]), src); ok {
			return host, nil
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
	}
}

// parseResponse picks the bridge host out of an SSDP answer, preferring the
// LOCATION header over the packet source.
func parseResponse(msg string, src *net.UDPAddr) (string, bool) {
	if !strings.HasPrefix(msg, "HTTP/1.1 200") {
		return "", false
	}

	var location string
	isBridge := false
	for _, line := range strings.Split(msg, "\r\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		switch strings.ToUpper(strings.TrimSpace(key)) {
		case "LOCATION":
			location = value
		case "SERVER":
			if strings.Contains(value, "IpBridge") {
				isBridge = true
			}
		case "HUE-BRIDGEID":
			isBridge = true
		}
	}
	if !isBridge {
		return "", false
	}

	if u, err := url.Parse(location); err == nil && u.Hostname() != "" {
		return u.Hostname(), true
	}
	if src != nil {
		return src.IP.String(), true
	}
	return "", false
}
