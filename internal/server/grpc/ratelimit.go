package grpc

import (
	"context"
	"net"
	"sync"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
)

const (
	maxTrackedPeers = 4096
	peerIdleTTL     = 10 * time.Minute
)

type peerLimiter struct {
	lim  *rate.Limiter
	seen time.Time
}

// authLimiter throttles credential endpoints per remote host.
type authLimiter struct {
	mu      sync.Mutex
	limit   rate.Limit
	burst   int
	methods map[string]bool
	peers   map[string]*peerLimiter
	maxPeer int
	now     func() time.Time
}

func newAuthLimiter(limit rate.Limit, burst int, methods ...string) *authLimiter {
	m := make(map[string]bool, len(methods))
	for _, name := range methods {
		m[name] = true
	}
	return &authLimiter{
		limit:   limit,
		burst:   burst,
		methods: m,
		peers:   make(map[string]*peerLimiter),
		maxPeer: maxTrackedPeers,
		now:     time.Now,
	}
}

func (l *authLimiter) allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	p, ok := l.peers[key]
	if !ok {
		if len(l.peers) >= l.maxPeer {
			l.evict(now)
		}
		p = &peerLimiter{lim: rate.NewLimiter(l.limit, l.burst)}
		l.peers[key] = p
	}
	p.seen = now
	return p.lim.AllowN(now, 1)
}

// evict drops idle peers, then the least recently seen one if the map is
// still full. Callers hold l.mu.
func (l *authLimiter) evict(now time.Time) {
	var oldestKey string
	var oldest time.Time
	for k, p := range l.peers {
		if now.Sub(p.seen) > peerIdleTTL {
			delete(l.peers, k)
			continue
		}
		if oldestKey == "" || p.seen.Before(oldest) {
			oldestKey, oldest = k, p.seen
		}
	}
	if len(l.peers) >= l.maxPeer && oldestKey != "" {
		delete(l.peers, oldestKey)
	}
}

func peerKey(ctx context.Context) string {
	p, ok := peer.FromContext(ctx)
	if !ok || p.Addr == nil {
		return "unknown"
	}
	host, _, err := net.SplitHostPort(p.Addr.String())
	if err != nil {
		return p.Addr.String()
	}
	return host
}

func (l *authLimiter) unaryInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if !l.methods[info.FullMethod] {
		return handler(ctx, req)
	}
	if !l.allow(peerKey(ctx)) {
		return nil, status.Error(codes.ResourceExhausted, "too many attempts, retry later")
	}
	return handler(ctx, req)
}
