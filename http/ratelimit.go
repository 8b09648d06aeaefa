package http

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// DefaultClientIdleTimeout is how long a client's bucket is kept after its
// last request.
const DefaultClientIdleTimeout = 10 * time.Minute

// ClientLimiter rate limits requests per client address using token
// buckets. Each client gets its own bucket, so one busy client does not
// starve the others. Buckets of clients idle for longer than the idle
// timeout are dropped.
type ClientLimiter struct {
	mu        sync.Mutex
	clients   map[string]*client
	limit     rate.Limit
	burst     int
	idle      time.Duration
	lastSweep time.Time
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewClientLimiter creates a ClientLimiter allowing limit requests per
// second with the given burst for each client.
func NewClientLimiter(limit float64, burst int) *ClientLimiter {
	return &ClientLimiter{
		clients:   make(map[string]*client),
		limit:     rate.Limit(limit),
		burst:     burst,
		idle:      DefaultClientIdleTimeout,
		lastSweep: time.Now(),
	}
}

// Allow reports whether a request from key may proceed now.
func (l *ClientLimiter) Allow(key string) bool {
	now := time.Now()

	l.mu.Lock()
	if now.Sub(l.lastSweep) >= l.idle {
		l.evict(now.Add(-l.idle))
		l.lastSweep = now
	}
	c, ok := l.clients[key]
	if !ok {
		c = &client{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[key] = c
	}
	c.lastSeen = now
	l.mu.Unlock()

	return c.limiter.AllowN(now, 1)
}

// Evict drops the buckets of clients not seen since before and returns how
// many were dropped.
func (l *ClientLimiter) Evict(before time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.evict(before)
}

func (l *ClientLimiter) evict(before time.Time) int {
	n := 0
	for key, c := range l.clients {
		if c.lastSeen.Before(before) {
			delete(l.clients, key)
			n++
		}
	}
	return n
}

// clientKey returns the host part of the request's remote address.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
