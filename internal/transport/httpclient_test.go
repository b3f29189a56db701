package transport

import (
	"net/http"
	"testing"
	"time"
)

func TestNewHTTPClient(t *testing.T) {
	c := NewHTTPClient(0)
	if c.Timeout != 0 {
		t.Fatalf("expected no overall timeout, got %s", c.Timeout)
	}
	tr, ok := c.Transport.(*http.Transport)
	if !ok {
		t.Fatalf("expected *http.Transport, got %T", c.Transport)
	}
	if tr == http.DefaultTransport {
		t.Fatalf("transport must be a copy, not the shared default")
	}
	if tr.Proxy == nil {
		t.Errorf("expected proxy from environment to be kept")
	}

	if got := NewHTTPClient(3 * time.Second).Timeout; got != 3*time.Second {
		t.Errorf("expected 3s timeout, got %s", got)
	}
}
