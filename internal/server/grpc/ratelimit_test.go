package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/dmitrijs2005/worklog/internal/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
)

func peerCtx(addr string) context.Context {
	a, _ := net.ResolveTCPAddr("tcp", addr)
	return peer.NewContext(context.Background(), &peer.Peer{Addr: a})
}

func TestAuthLimiter_ThrottlesPerHost(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	l := newAuthLimiter(rate.Every(time.Minute), 2, api.FullMethod(api.MethodLogin))
	l.now = func() time.Time { return now }

	info := &grpc.UnaryServerInfo{FullMethod: api.FullMethod(api.MethodLogin)}
	h := func(ctx context.Context, req any) (any, error) { return "ok", nil }

	for i := 0; i < 2; i++ {
		_, err := l.unaryInterceptor(peerCtx("10.0.0.1:5000"), nil, info, h)
		require.NoError(t, err)
	}
	_, err := l.unaryInterceptor(peerCtx("10.0.0.1:5001"), nil, info, h)
	assert.Equal(t, codes.ResourceExhausted, status.Code(err))

	_, err = l.unaryInterceptor(peerCtx("10.0.0.2:5000"), nil, info, h)
	assert.NoError(t, err, "other hosts keep their own budget")

	now = now.Add(time.Minute)
	_, err = l.unaryInterceptor(peerCtx("10.0.0.1:5002"), nil, info, h)
	assert.NoError(t, err, "budget refills over time")
}

func TestAuthLimiter_IgnoresOtherMethods(t *testing.T) {
	l := newAuthLimiter(rate.Every(time.Hour), 1, api.FullMethod(api.MethodLogin))
	info := &grpc.UnaryServerInfo{FullMethod: api.FullMethod(api.MethodListTasks)}
	h := func(ctx context.Context, req any) (any, error) { return "ok", nil }

	for i := 0; i < 5; i++ {
		_, err := l.unaryInterceptor(peerCtx("10.0.0.1:5000"), nil, info, h)
		require.NoError(t, err)
	}
}

func TestAuthLimiter_PeerMapStaysBounded(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	l := newAuthLimiter(rate.Every(time.Minute), 1, api.FullMethod(api.MethodLogin))
	l.maxPeer = 3
	l.now = func() time.Time { return now }

	for _, host := range []string{"10.0.0.1", "10.0.0.2", "10.0.0.3", "10.0.0.4", "10.0.0.5"} {
		now = now.Add(time.Second)
		assert.True(t, l.allow(host))
		assert.LessOrEqual(t, len(l.peers), 3)
	}

	assert.NotContains(t, l.peers, "10.0.0.1", "least recently seen host is evicted first")
	assert.NotContains(t, l.peers, "10.0.0.2")
	assert.Contains(t, l.peers, "10.0.0.5")
	assert.False(t, l.allow("10.0.0.5"), "tracked hosts keep their spent budget")
}

func TestAuthLimiter_EvictsIdlePeersFirst(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	l := newAuthLimiter(rate.Every(time.Minute), 1, api.FullMethod(api.MethodLogin))
	l.maxPeer = 2
	l.now = func() time.Time { return now }

	l.allow("10.0.0.1")
	now = now.Add(peerIdleTTL + time.Second)
	l.allow("10.0.0.2")
	now = now.Add(time.Second)
	l.allow("10.0.0.3")

	assert.Len(t, l.peers, 2)
	assert.NotContains(t, l.peers, "10.0.0.1")
	assert.Contains(t, l.peers, "10.0.0.2")
}

func TestPeerKey_NoPeer(t *testing.T) {
	assert.Equal(t, "unknown", peerKey(context.Background()))
	assert.Equal(t, "10.1.2.3", peerKey(peerCtx("10.1.2.3:80")))
}
