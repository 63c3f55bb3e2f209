package geo

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newLookupServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
}

func TestResolvePrefersRegionName(t *testing.T) {
	srv := newLookupServer(t, http.StatusOK, `{"regionName":"California","cityName":"Los Angeles"}`)
	defer srv.Close()

	result := NewResolver(srv.URL).Resolve("203.0.113.7")
	assert.True(t, result.Resolved)
	assert.Equal(t, "California", result.Region)
}

func TestResolveFallsBackToCityName(t *testing.T) {
	srv := newLookupServer(t, http.StatusOK, `{"regionName":"","cityName":"Singapore"}`)
	defer srv.Close()

	result := NewResolver(srv.URL).Resolve("203.0.113.7")
	assert.True(t, result.Resolved)
	assert.Equal(t, "Singapore", result.Region)
}

func TestResolveUnknownWhenServiceHasNoData(t *testing.T) {
	srv := newLookupServer(t, http.StatusOK, `{}`)
	defer srv.Close()

	result := NewResolver(srv.URL).Resolve("127.0.0.1")
	assert.False(t, result.Resolved)
	assert.Equal(t, UnknownRegion, result.Region)
}

func TestResolveUnknownOnServerError(t *testing.T) {
	srv := newLookupServer(t, http.StatusInternalServerError, `oops`)
	defer srv.Close()

	result := NewResolver(srv.URL).Resolve("203.0.113.7")
	assert.False(t, result.Resolved)
	assert.Equal(t, UnknownRegion, result.Region)
}

func TestResolveUnknownOnNetworkError(t *testing.T) {
	srv := newLookupServer(t, http.StatusOK, `{}`)
	srv.Close() // connection refused

	result := NewResolver(srv.URL).Resolve("203.0.113.7")
	assert.False(t, result.Resolved)
	assert.Equal(t, UnknownRegion, result.Region)
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name      string
		forwarded string
		want      string
	}{
		{"no header", "", "127.0.0.1"},
		{"single entry", "203.0.113.7", "203.0.113.7"},
		{"multiple entries", "203.0.113.7, 10.0.0.1, 172.16.0.1", "203.0.113.7"},
		{"entry with spaces", "  203.0.113.7  ,10.0.0.1", "203.0.113.7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/resolve-region", nil)
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			assert.Equal(t, tt.want, ClientIP(req))
		})
	}
}
