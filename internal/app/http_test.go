package app

import (
	"net/http"
	"testing"
	"time"
)

func TestNewHTTPClient_Config(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TranslateConcurrency = 16
	cfg.RequestTimeout = 3 * time.Minute
	c := newHTTPClient(cfg)
	if c.Timeout != 3*time.Minute {
		t.Fatalf("expected backstop of the largest timeout, got %v", c.Timeout)
	}
	tr, ok := c.Transport.(*http.Transport)
	if !ok {
		t.Fatalf("expected http.Transport")
	}
	if tr == http.DefaultTransport {
		t.Fatalf("transport should not be default")
	}
	if tr.MaxIdleConnsPerHost != 64 {
		t.Fatalf("expected pool sized from concurrency, got %d", tr.MaxIdleConnsPerHost)
	}
	cfg.TranslateConcurrency = 1
	if got := newHTTPClient(cfg).Transport.(*http.Transport).MaxIdleConnsPerHost; got != 32 {
		t.Fatalf("expected pool floor of 32, got %d", got)
	}
}
