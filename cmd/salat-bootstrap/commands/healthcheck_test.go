package commands

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestCheckHealth(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr bool
	}{
		{"200 ok", http.StatusOK, false},
		{"204 no content", http.StatusNoContent, false},
		{"503 unavailable", http.StatusServiceUnavailable, true},
		{"404 not found", http.StatusNotFound, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/health" {
					t.Errorf("probed %q, want /health", r.URL.Path)
				}
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			err := checkHealth(srv.URL+"/health", 2*time.Second)
			if (err != nil) != tt.wantErr {
				t.Errorf("checkHealth() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCheckHealth_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	if err := checkHealth(url+"/health", time.Second); err == nil {
		t.Error("checkHealth() succeeded against a closed server")
	}
}
