package usecase

import (
	"log/slog"
	"sync"
	"time"

	"storefront-cart/internal/pkg/metrics"

	"github.com/google/uuid"
)

type CartSessions interface {
	Session(sessionID uuid.UUID) CartService
}

const sweepInterval = time.Minute

// SessionRegistry holds one CartFacade per cart session and drops sessions
// idle longer than ttl. Dropping a session only forgets in-memory sync state;
// the local cart document stays in its store.
type SessionRegistry struct {
	mu        sync.Mutex
	sessions  map[uuid.UUID]*CartFacade
	deps      FacadeDeps
	ttl       time.Duration
	lastSweep time.Time
	logger    *slog.Logger
}

func NewSessionRegistry(deps FacadeDeps, ttl time.Duration) *SessionRegistry {
	return &SessionRegistry{
		sessions:  make(map[uuid.UUID]*CartFacade),
		deps:      deps,
		ttl:       ttl,
		lastSweep: deps.Clock.Now(),
		logger:    deps.Logger,
	}
}

func (r *SessionRegistry) Session(sessionID uuid.UUID) CartService {
	return r.Facade(sessionID)
}

func (r *SessionRegistry) Facade(sessionID uuid.UUID) *CartFacade {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.deps.Clock.Now()
	if now.Sub(r.lastSweep) >= sweepInterval {
		r.evictLocked(now)
	}

	f, ok := r.sessions[sessionID]
	if !ok {
		f = NewCartFacade(sessionID, r.deps)
		r.sessions[sessionID] = f
		metrics.ActiveSessions.Set(float64(len(r.sessions)))
	}
	return f
}

// Evict drops idle sessions and returns how many were removed.
func (r *SessionRegistry) Evict() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.evictLocked(r.deps.Clock.Now())
}

func (r *SessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *SessionRegistry) evictLocked(now time.Time) int {
	r.lastSweep = now
	if r.ttl <= 0 {
		return 0
	}
	removed := 0
	for id, f := range r.sessions {
		lastSeen, busy := f.idleSince()
		if busy {
			continue
		}
		if now.Sub(lastSeen) > r.ttl {
			delete(r.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		r.logger.Info("evicted idle cart sessions", slog.Int("count", removed))
		metrics.ActiveSessions.Set(float64(len(r.sessions)))
	}
	return removed
}
