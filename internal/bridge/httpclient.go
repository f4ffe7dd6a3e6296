package bridge

import (
	"net/http"
	"time"
)

// newHTTPClient - build an http.Client honoring the environment's proxy
// configuration (http_proxy/https_proxy/no_proxy, including user:pass@host:port
// credentials embedded in the proxy URL), with the given overall request
// timeout.
func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			TLSHandshakeTimeout: 10 * time.Second,
		},
	}
}
