package workflow

import (
	"errors"
	"relocation-route-service/internal/domain"
	"relocation-route-service/internal/platform/logging"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrSessionNotFound = errors.New("session not found")

// Store keeps live sessions in memory. Sessions idle for longer than the
// TTL are dropped on the next Create; nothing is persisted.
type Store struct {
	resolver RouteResolver
	ttl      time.Duration
	log      *zap.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewStore(resolver RouteResolver, ttl time.Duration, log *zap.Logger) *Store {
	return &Store{
		resolver: resolver,
		ttl:      ttl,
		log:      logging.OrNop(log),
		sessions: make(map[string]*Session),
	}
}

// Create registers a new Idle session for dashboard.
func (s *Store) Create(dashboard domain.Dashboard) *Session {
	sess := NewSession(uuid.NewString(), dashboard, s.resolver, s.log)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(time.Now())
	s.sessions[sess.ID()] = sess
	return sess
}

func (s *Store) Get(id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *Store) pruneLocked(now time.Time) {
	if s.ttl <= 0 {
		return
	}
	for id, sess := range s.sessions {
		if now.Sub(sess.lastActivity()) > s.ttl {
			delete(s.sessions, id)
			s.log.Debug("session expired", zap.String("session_id", id))
		}
	}
}
