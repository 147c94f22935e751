package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestVaryAddsAcceptOnce(t *testing.T) {
	tests := []struct {
		name     string
		upstream []string
		want     []string
	}{
		{"empty", nil, []string{"Accept"}},
		{"already present", []string{"Origin, accept"}, []string{"Origin, accept"}},
		{"other values kept", []string{"Accept-Encoding"}, []string{"Accept-Encoding", "Accept"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outer := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				for _, v := range tt.upstream {
					w.Header().Add("Vary", v)
				}
				Vary()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
					w.WriteHeader(http.StatusOK)
				})).ServeHTTP(w, r)
			})

			resp := httptest.NewRecorder()
			outer.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/v1/numerology", nil))

			got := resp.Header().Values("Vary")
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Fatalf("expected Vary %v, got %v", tt.want, got)
			}
		})
	}
}

func TestVaryPreservesDownstreamResponse(t *testing.T) {
	h := Vary()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/cbor")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte{0xa0})
	}))
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/v1/numerology", nil))

	if resp.Code != http.StatusOK || resp.Header().Get("Content-Type") != "application/cbor" {
		t.Fatalf("downstream response changed: %d %q", resp.Code, resp.Header().Get("Content-Type"))
	}
	if resp.Body.Len() != 1 {
		t.Fatalf("expected body to be preserved, got %d bytes", resp.Body.Len())
	}
}
