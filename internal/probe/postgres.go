package probe

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"github.com/jackc/pgx/v5/pgconn"
)

// StoreProbe checks Postgres reachability with a plain TCP connect to
// the host/port taken from the connection string. The dispatcher only
// needs to know the store accepts connections; authentication and
// schema state are the initialization step's concern.
type StoreProbe struct {
	addr string
	dial func(ctx context.Context, network, addr string) (net.Conn, error)
}

// NewStoreProbe builds a probe from a Postgres connection string. The
// string is parsed with pgx's own grammar so URL and keyword/value
// forms both work.
func NewStoreProbe(databaseURL string) (*StoreProbe, error) {
	cfg, err := pgconn.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing DATABASE_URL: %w", err)
	}

	d := net.Dialer{}
	return &StoreProbe{
		addr: net.JoinHostPort(cfg.Host, strconv.Itoa(int(cfg.Port))),
		dial: d.DialContext,
	}, nil
}

// Addr returns the host:port the probe connects to.
func (p *StoreProbe) Addr() string {
	return p.addr
}

// Check performs one connectivity attempt.
func (p *StoreProbe) Check(ctx context.Context) error {
	conn, err := p.dial(ctx, "tcp", p.addr)
	if err != nil {
		return fmt.Errorf("connect %s: %w", p.addr, err)
	}
	return conn.Close()
}
