package app

import (
	"net"
	"net/http"
	"time"
)

// newHTTPClient returns the client shared by link fetching and model calls.
// Per-call deadlines come from contexts and the per-request timeouts of the
// callers; the client Timeout is only a backstop above all of them.
func newHTTPClient(cfg Config) *http.Client {
	perHost := cfg.TranslateConcurrency * 4
	if perHost < 32 {
		perHost = 32
	}
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConnsPerHost:   perHost,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ResponseHeaderTimeout: cfg.LLMTimeout,
		ExpectContinueTimeout: 1 * time.Second,
	}
	return &http.Client{
		Transport: transport,
		Timeout:   max(cfg.LLMTimeout, cfg.FetchTimeout, cfg.RequestTimeout),
	}
}
