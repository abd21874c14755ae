package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

type visitor struct {
	sessions   int
	tokens     int
	lastRefill time.Time
}

// IPRateLimiter caps concurrent game sessions per IP and the rate of input
// frames (swings, controls, pings) per IP.
type IPRateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	now      func() time.Time
	stop     chan struct{}
	stopOnce sync.Once

	maxSessionsPerIP int
	inputRate        int
	inputWindow      time.Duration
}

// NewIPRateLimiter creates a rate limiter.
//   - maxSessionsPerIP: max simultaneous sessions per IP
//   - inputRate: max input frames allowed per inputWindow
//   - inputWindow: time window for the input rate
func NewIPRateLimiter(maxSessionsPerIP, inputRate int, inputWindow time.Duration) *IPRateLimiter {
	rl := &IPRateLimiter{
		visitors:         make(map[string]*visitor),
		now:              time.Now,
		stop:             make(chan struct{}),
		maxSessionsPerIP: maxSessionsPerIP,
		inputRate:        inputRate,
		inputWindow:      inputWindow,
	}
	go rl.cleanup(5 * time.Minute)
	return rl
}

// Stop ends the background cleanup.
func (rl *IPRateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

// ConnectAllowed reserves a session slot for ip if one is free.
func (rl *IPRateLimiter) ConnectAllowed(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v := rl.visitor(ip)
	if v.sessions >= rl.maxSessionsPerIP {
		return false
	}
	v.sessions++
	return true
}

// Disconnect releases a session slot.
func (rl *IPRateLimiter) Disconnect(ip string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, ok := rl.visitors[ip]
	if !ok {
		return
	}
	if v.sessions > 0 {
		v.sessions--
	}
}

// InputAllowed takes one token from ip's bucket. The bucket refills to
// inputRate once per elapsed inputWindow.
func (rl *IPRateLimiter) InputAllowed(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v := rl.visitor(ip)
	now := rl.now()
	if elapsed := now.Sub(v.lastRefill); elapsed >= rl.inputWindow {
		windows := int(elapsed / rl.inputWindow)
		v.tokens += windows * rl.inputRate
		if v.tokens > rl.inputRate {
			v.tokens = rl.inputRate
		}
		v.lastRefill = v.lastRefill.Add(time.Duration(windows) * rl.inputWindow)
	}
	if v.tokens <= 0 {
		return false
	}
	v.tokens--
	return true
}

// Limit is an http middleware applying the input budget to plain requests.
func (rl *IPRateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.InputAllowed(RealIP(r)) {
			http.Error(w, "rate limited", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// visitor returns ip's entry, creating it with a full bucket. Callers hold mu.
func (rl *IPRateLimiter) visitor(ip string) *visitor {
	v, ok := rl.visitors[ip]
	if !ok {
		v = &visitor{tokens: rl.inputRate, lastRefill: rl.now()}
		rl.visitors[ip] = v
	}
	return v
}

// cleanup drops entries without live sessions.
func (rl *IPRateLimiter) cleanup(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			rl.sweep()
		case <-rl.stop:
			return
		}
	}
}

func (rl *IPRateLimiter) sweep() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for ip, v := range rl.visitors {
		if v.sessions <= 0 {
			delete(rl.visitors, ip)
		}
	}
}

// RealIP extracts the client IP from the request.
// Checks X-Forwarded-For (reverse proxies) then RemoteAddr.
func RealIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if comma := strings.Index(xff, ","); comma > 0 {
			return strings.TrimSpace(xff[:comma])
		}
		return strings.TrimSpace(xff)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
