package probe

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// fakePinger stands in for the go-redis client so probe semantics can
// be tested without a live server.
type fakePinger struct {
	reply  string
	err    error
	closed bool
}

func (f *fakePinger) Ping(ctx context.Context) (string, error) {
	return f.reply, f.err
}

func (f *fakePinger) Close() error {
	f.closed = true
	return nil
}

func TestNewCacheProbe_RejectsMalformedURL(t *testing.T) {
	if _, err := NewCacheProbe("not-a-redis-url"); err == nil {
		t.Error("NewCacheProbe() accepted a malformed URL")
	}
	if _, err := NewCacheProbe("redis://cache:6379/0"); err != nil {
		t.Errorf("NewCacheProbe() rejected a valid URL: %v", err)
	}
}

func TestCacheProbe_Check(t *testing.T) {
	tests := []struct {
		name    string
		pinger  *fakePinger
		dialErr error
		wantErr string
	}{
		{
			name:   "pong reply succeeds",
			pinger: &fakePinger{reply: "PONG"},
		},
		{
			name:    "non-pong reply fails",
			pinger:  &fakePinger{reply: "LOADING"},
			wantErr: "unexpected ping reply",
		},
		{
			name:    "ping error fails",
			pinger:  &fakePinger{err: errors.New("connection refused")},
			wantErr: "connection refused",
		},
		{
			name:    "dial error fails",
			dialErr: errors.New("no route to host"),
			wantErr: "no route to host",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &CacheProbe{
				url: "redis://cache:6379",
				dial: func() (pinger, error) {
					if tt.dialErr != nil {
						return nil, tt.dialErr
					}
					return tt.pinger, nil
				},
			}

			err := p.Check(context.Background())
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Check() failed: %v", err)
				}
			} else {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("Check() = %v, want error containing %q", err, tt.wantErr)
				}
			}

			// The per-attempt connection must always be closed.
			if tt.pinger != nil && tt.dialErr == nil && !tt.pinger.closed {
				t.Error("Check() did not close the connection")
			}
		})
	}
}
