package service

import (
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/yndnr/foldershare-go/internal/core/domain"
	"github.com/yndnr/foldershare-go/pkg/cmap"
)

// RateLimiterRegistry keeps one token bucket per peer.
// A registry built with a non-positive rate allows everything.
type RateLimiterRegistry struct {
	limiters *cmap.Map[*peerLimiter]
	limit    rate.Limit
	burst    int
}

type peerLimiter struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64
}

// NewRateLimiterRegistry creates a registry allowing rps calls per second
// per peer with the given burst. A burst below 1 is raised to 1.
func NewRateLimiterRegistry(rps float64, burst int) *RateLimiterRegistry {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiterRegistry{
		limiters: cmap.New[*peerLimiter](),
		limit:    rate.Limit(rps),
		burst:    burst,
	}
}

// Enabled reports whether the registry limits anything.
func (r *RateLimiterRegistry) Enabled() bool {
	return r != nil && r.limit > 0
}

// Check consumes one token for peer and returns ErrRateLimited when the
// bucket is empty.
func (r *RateLimiterRegistry) Check(peer string) error {
	if !r.Enabled() {
		return nil
	}

	limiter := r.GetOrCreate(peer)
	if limiter.Allow() {
		return nil
	}

	reservation := limiter.Reserve()
	delay := reservation.Delay()
	reservation.Cancel()

	return domain.ErrRateLimited.WithDetails("retry after " + delay.Round(time.Millisecond).String())
}

// GetOrCreate retrieves the limiter for peer, creating it on first use.
func (r *RateLimiterRegistry) GetOrCreate(peer string) *rate.Limiter {
	pl, _ := r.limiters.GetOrSet(peer, func() *peerLimiter {
		return &peerLimiter{limiter: rate.NewLimiter(r.limit, r.burst)}
	})
	pl.lastSeen.Store(time.Now().UnixNano())
	return pl.limiter
}

// Prune drops limiters of peers not seen for idle and returns how many
// were removed.
func (r *RateLimiterRegistry) Prune(idle time.Duration) int {
	cutoff := time.Now().Add(-idle).UnixNano()
	return r.limiters.DeleteIf(func(_ string, pl *peerLimiter) bool {
		return pl.lastSeen.Load() < cutoff
	})
}

// Len returns the number of tracked peers.
func (r *RateLimiterRegistry) Len() int {
	return r.limiters.Count()
}
