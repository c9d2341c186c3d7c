// Package workflow drives the replacement-site selection flow: resolving
// routes for every candidate once, then letting the operator browse, pick
// and confirm a candidate.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"relocation-route-service/internal/domain"
	"relocation-route-service/internal/platform/logging"
	"relocation-route-service/internal/services"
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	ErrNotReady         = errors.New("candidates are not ready")
	ErrUnknownCandidate = errors.New("unknown candidate")
)

// RouteResolver resolves routes for a batch of destinations in input order.
type RouteResolver interface {
	ResolveBatch(ctx context.Context, origin domain.Coordinates, destinations []domain.Coordinates) ([]services.ResolvedRoute, error)
}

// Session is one operator's selection workflow over a fixed dashboard.
// It is safe for concurrent use.
type Session struct {
	id        string
	dashboard domain.Dashboard
	resolver  RouteResolver
	log       *zap.Logger
	createdAt time.Time

	ready chan struct{}

	mu               sync.Mutex
	load             LoadState
	candidates       []domain.Candidate
	degraded         bool
	selection        SelectionState
	selectedID       string
	browsing         bool
	showConfirmation bool
	updatedAt        time.Time
}

// Snapshot is an immutable view of a session.
type Snapshot struct {
	ID               string
	Current          domain.Location
	Blocked          domain.Location
	Load             LoadState
	Candidates       []domain.Candidate
	// True when the batch failed and candidates carry no route data.
	Degraded         bool
	Selection        SelectionState
	SelectedID       string
	BrowsingOpen     bool
	ShowConfirmation bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Selected returns the selected candidate, if any.
func (s Snapshot) Selected() (domain.Candidate, bool) {
	if s.Selection == NoSelection {
		return domain.Candidate{}, false
	}
	for _, c := range s.Candidates {
		if c.ID == s.SelectedID {
			return c, true
		}
	}
	return domain.Candidate{}, false
}

func NewSession(id string, dashboard domain.Dashboard, resolver RouteResolver, log *zap.Logger) *Session {
	now := time.Now()
	alts := make([]domain.Location, len(dashboard.Alternatives))
	copy(alts, dashboard.Alternatives)
	dashboard.Alternatives = alts

	return &Session{
		id:         id,
		dashboard:  dashboard,
		resolver:   resolver,
		log:        logging.OrNop(log).With(zap.String("session_id", id)),
		createdAt:  now,
		updatedAt:  now,
		ready:      make(chan struct{}),
		candidates: domain.NewCandidates(alts),
	}
}

func (s *Session) ID() string { return s.id }

// Start moves the session from Idle to Loading and resolves routes in the
// background. Only the first call has an effect; it reports whether it did.
//
// Loading cannot be cancelled: the background work is detached from ctx's
// cancellation and always ends in Ready.
func (s *Session) Start(ctx context.Context) bool {
	s.mu.Lock()
	if s.load != Idle {
		s.mu.Unlock()
		return false
	}
	s.load = Loading
	s.touch()
	s.mu.Unlock()

	go s.resolve(context.WithoutCancel(ctx))
	return true
}

func (s *Session) resolve(ctx context.Context) {
	routes, err := s.runBatch(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	cands := domain.NewCandidates(s.dashboard.Alternatives)
	if err == nil && len(routes) != len(cands) {
		err = fmt.Errorf("resolver returned %d routes for %d candidates", len(routes), len(cands))
	}

	if err != nil {
		s.log.Error("route batch failed, showing candidates without routes", zap.Error(err))
		s.degraded = true
	} else {
		for i := range cands {
			cands[i].Resolve(routes[i].Route, routes[i].Source)
		}
	}

	s.candidates = cands
	s.load = Ready
	s.touch()
	close(s.ready)

	s.log.Info("candidates ready", zap.Int("count", len(cands)), zap.Bool("degraded", s.degraded))
}

func (s *Session) runBatch(ctx context.Context) (routes []services.ResolvedRoute, err error) {
	defer func() {
		if r := recover(); r != nil {
			routes, err = nil, fmt.Errorf("route resolver panic: %v", r)
		}
	}()

	if s.resolver == nil {
		return nil, errors.New("no route resolver configured")
	}

	return s.resolver.ResolveBatch(ctx, s.dashboard.Current.Coords, s.dashboard.AlternativeCoords())
}

// Done is closed once the session reaches Ready.
func (s *Session) Done() <-chan struct{} { return s.ready }

// Wait blocks until the session is Ready or ctx is done.
func (s *Session) Wait(ctx context.Context) error {
	select {
	case <-s.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// OpenBrowser opens the candidate browsing view.
func (s *Session) OpenBrowser() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.browsing = true
	s.touch()
}

// CloseBrowser closes the browsing view. An unconfirmed selection is dropped;
// a confirmed one is kept.
func (s *Session) CloseBrowser() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.browsing = false
	if s.selection == Selected {
		s.selection = NoSelection
		s.selectedID = ""
	}
	s.touch()
}

// Select picks a candidate. Picking the current candidate again changes
// nothing; picking another one replaces the selection and drops any
// confirmation.
func (s *Session) Select(candidateID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkCandidate(candidateID); err != nil {
		return err
	}

	if s.selection != NoSelection && s.selectedID == candidateID {
		return nil
	}

	s.selection = Selected
	s.selectedID = candidateID
	s.showConfirmation = false
	s.touch()
	return nil
}

// Confirm selects and confirms a candidate, closes the browsing view and
// raises the confirmation notice.
func (s *Session) Confirm(candidateID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkCandidate(candidateID); err != nil {
		return err
	}

	s.selection = Confirmed
	s.selectedID = candidateID
	s.browsing = false
	s.showConfirmation = true
	s.touch()

	s.log.Info("candidate confirmed", zap.String("candidate_id", candidateID))
	return nil
}

// DismissConfirmation hides the confirmation notice. The selection is kept.
func (s *Session) DismissConfirmation() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.showConfirmation = false
	s.touch()
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		ID:               s.id,
		Current:          s.dashboard.Current,
		Blocked:          s.dashboard.Blocked,
		Load:             s.load,
		Candidates:       domain.CloneCandidates(s.candidates),
		Degraded:         s.degraded,
		Selection:        s.selection,
		SelectedID:       s.selectedID,
		BrowsingOpen:     s.browsing,
		ShowConfirmation: s.showConfirmation,
		CreatedAt:        s.createdAt,
		UpdatedAt:        s.updatedAt,
	}
}

func (s *Session) lastActivity() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt
}

// checkCandidate must be called with s.mu held.
func (s *Session) checkCandidate(id string) error {
	if s.load != Ready {
		return ErrNotReady
	}
	for _, c := range s.candidates {
		if c.ID == id {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownCandidate, id)
}

// touch must be called with s.mu held.
func (s *Session) touch() { s.updatedAt = time.Now() }
