package telemetry

import (
	"net"
	"net/http"
	"time"
)

// Default timeout budget for a single submission request. Connect and whole
// request are bounded independently so a black-holed endpoint cannot hang a
// worker indefinitely.
const (
	DefaultConnectTimeout = 10 * time.Second
	DefaultRequestTimeout = 30 * time.Second
)

func newHTTPClient(t TimeoutSettings) *http.Client {
	connect := DefaultConnectTimeout
	if t.ConnectSeconds > 0 {
		connect = time.Duration(t.ConnectSeconds) * time.Second
	}
	request := DefaultRequestTimeout
	if t.RequestSeconds > 0 {
		request = time.Duration(t.RequestSeconds) * time.Second
	}
	return &http.Client{
		Timeout: request,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			DialContext:         (&net.Dialer{Timeout: connect}).DialContext,
			TLSHandshakeTimeout: connect,
		},
	}
}
