package probe

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// pinger is the slice of the go-redis client used by the cache probe.
// Tests inject a fake; the real client needs a live server.
type pinger interface {
	Ping(ctx context.Context) (string, error)
	Close() error
}

type redisPinger struct {
	client *redis.Client
}

func (r *redisPinger) Ping(ctx context.Context) (string, error) {
	return r.client.Ping(ctx).Result()
}

func (r *redisPinger) Close() error {
	return r.client.Close()
}

// CacheProbe checks Redis liveness with a PING, treating only a
// literal PONG reply as success. A connection is opened per attempt so
// that every probe is independent of earlier failures.
type CacheProbe struct {
	url  string
	dial func() (pinger, error)
}

// NewCacheProbe builds a probe for the given redis:// URL. The URL is
// validated here so a malformed endpoint fails immediately rather than
// burning the whole readiness budget.
func NewCacheProbe(url string) (*CacheProbe, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing REDIS_URL: %w", err)
	}
	return &CacheProbe{
		url: url,
		dial: func() (pinger, error) {
			return &redisPinger{client: redis.NewClient(opts)}, nil
		},
	}, nil
}

// Check performs one liveness attempt.
func (p *CacheProbe) Check(ctx context.Context) error {
	c, err := p.dial()
	if err != nil {
		return err
	}
	defer c.Close() //nolint:errcheck

	reply, err := c.Ping(ctx)
	if err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	if reply != "PONG" {
		return fmt.Errorf("unexpected ping reply %q", reply)
	}
	return nil
}
