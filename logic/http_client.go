package logic

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	xproxy "golang.org/x/net/proxy"
)

const (
	feedClientTimeout = 60 * time.Second
	blobClientTimeout = 120 * time.Second
)

// newProxiedClient builds an HTTP client that tunnels through the feed's
// socks5 proxy when one is configured.
func newProxiedClient(proxyUrl string, timeout time.Duration) (*http.Client, error) {

	transport := &http.Transport{}
	if proxyUrl != "" {
		parsed, err := url.Parse(proxyUrl)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy URL '%s': %v", proxyUrl, err)
		}
		dialer, err := xproxy.FromURL(parsed, xproxy.Direct)
		if err != nil {
			return nil, fmt.Errorf("unable to create proxy dialer for '%s': %v", proxyUrl, err)
		}
		if cd, ok := dialer.(xproxy.ContextDialer); ok {
			transport.DialContext = cd.DialContext
		} else {
			transport.Dial = dialer.Dial
		}
	}
	return &http.Client{Transport: transport, Timeout: timeout}, nil
}
