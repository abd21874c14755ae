package ws

import (
	"context"
	"log"
	"net/http"
	"sync/atomic"
	"unicode/utf8"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/igtm/baseball/internal/middleware"
)

const (
	DefaultMaxSessions = 100
	maxTeamRunes       = 10
	defaultTeam        = "Home"
)

// sanitizeTeam validates and cleans a team name for the scoreboard.
// Strips invalid chars, enforces 2-10 rune length, ensures valid UTF-8.
func sanitizeTeam(raw string) string {
	if !utf8.ValidString(raw) {
		return defaultTeam
	}
	cleaned := []rune{}
	for _, r := range raw {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') || r == '_' || r == '-' || r == ' ' ||
			(r >= 0x0400 && r <= 0x04FF) {
			cleaned = append(cleaned, r)
		}
	}
	if len(cleaned) < 2 {
		return defaultTeam
	}
	if len(cleaned) > maxTeamRunes {
		cleaned = cleaned[:maxTeamRunes]
	}
	return string(cleaned)
}

// SessionCreator starts a game for a freshly accepted connection. The
// returned channel closes when that game is over.
type SessionCreator interface {
	CreateSession(conn *Conn) <-chan struct{}
}

// HubStats holds live server metrics.
type HubStats struct {
	ActiveSessions   int64  `json:"activeSessions"`
	TotalConnections uint64 `json:"totalConnections"`
	Rejected         uint64 `json:"rejected"`
}

type Hub struct {
	creator     SessionCreator
	maxSessions int64

	activeSessions   atomic.Int64
	totalConnections atomic.Uint64
	rejected         atomic.Uint64

	limiter        *middleware.IPRateLimiter
	originPatterns []string
}

func NewHub(creator SessionCreator, limiter *middleware.IPRateLimiter, originPatterns []string, maxSessions int) *Hub {
	if maxSessions <= 0 {
		maxSessions = DefaultMaxSessions
	}
	return &Hub{
		creator:        creator,
		maxSessions:    int64(maxSessions),
		limiter:        limiter,
		originPatterns: originPatterns,
	}
}

// Stats returns a snapshot of current server metrics.
func (h *Hub) Stats() HubStats {
	return HubStats{
		ActiveSessions:   h.activeSessions.Load(),
		TotalConnections: h.totalConnections.Load(),
		Rejected:         h.rejected.Load(),
	}
}

func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	ip := middleware.RealIP(r)
	if h.limiter != nil && !h.limiter.ConnectAllowed(ip) {
		h.rejected.Add(1)
		http.Error(w, "too many sessions", http.StatusTooManyRequests)
		return
	}
	release := func() {
		if h.limiter != nil {
			h.limiter.Disconnect(ip)
		}
	}

	acceptOpts := &websocket.AcceptOptions{}
	if len(h.originPatterns) > 0 {
		acceptOpts.OriginPatterns = h.originPatterns
	}
	c, err := websocket.Accept(w, r, acceptOpts)
	if err != nil {
		release()
		log.Printf("ws accept error: %v", err)
		return
	}
	// Swing and control frames are tiny.
	c.SetReadLimit(1024)

	h.totalConnections.Add(1)
	conn := NewConn(c, uuid.NewString(), ip, h.limiter)
	conn.Team = sanitizeTeam(r.URL.Query().Get("name"))

	if h.activeSessions.Add(1) > h.maxSessions {
		h.activeSessions.Add(-1)
		h.rejected.Add(1)
		release()
		log.Printf("max sessions reached, rejecting %s", conn.ID)
		conn.CloseWith(websocket.StatusTryAgainLater, "server full")
		return
	}
	log.Printf("new session: %s [%s] from %s (active: %d)", conn.ID, conn.Team, ip, h.activeSessions.Load())

	// The connection outlives the HTTP handler's request context.
	go conn.WriteLoop(context.Background())

	done := h.creator.CreateSession(conn)

	<-conn.Done()
	<-done
	h.activeSessions.Add(-1)
	release()
	log.Printf("session closed: %s", conn.ID)
}
