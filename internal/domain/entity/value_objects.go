package entity

import (
	"fmt"
	"net"
	"net/url"
	"strings"
)

// defaultPorts lists the schemes that carry a tuple origin and their default port.
var defaultPorts = map[string]string{
	"http":  "80",
	"https": "443",
	"ws":    "80",
	"wss":   "443",
	"ftp":   "21",
}

// ParseAbsoluteURL parses rawURL and requires both a scheme and a host.
func ParseAbsoluteURL(rawURL string) (*url.URL, error) {
	if strings.TrimSpace(rawURL) == "" {
		return nil, fmt.Errorf("url cannot be empty")
	}

	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, fmt.Errorf("invalid url format '%s': %w", rawURL, err)
	}
	if u.Scheme == "" {
		return nil, fmt.Errorf("url '%s' is not absolute", rawURL)
	}
	if _, special := defaultPorts[strings.ToLower(u.Scheme)]; special && u.Host == "" {
		return nil, fmt.Errorf("url '%s' has no host", rawURL)
	}

	return u, nil
}

// Origin returns the serialized origin of u (scheme://host[:port]) with default ports
// dropped. Opaque origins are returned as "".
func Origin(u *url.URL) string {
	scheme := strings.ToLower(u.Scheme)
	defaultPort, special := defaultPorts[scheme]
	if !special || u.Host == "" {
		return ""
	}

	host := strings.ToLower(u.Hostname())
	port := u.Port()
	if port == "" || port == defaultPort {
		if strings.Contains(host, ":") {
			return scheme + "://[" + host + "]"
		}
		return scheme + "://" + host
	}
	return scheme + "://" + net.JoinHostPort(host, port)
}

// RegistrableDomain approximates the registrable domain of hostname as its last two labels.
func RegistrableDomain(hostname string) string {
	labels := strings.Split(strings.ToLower(hostname), ".")
	if len(labels) > 2 {
		labels = labels[len(labels)-2:]
	}
	return strings.Join(labels, ".")
}
