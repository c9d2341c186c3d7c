package workflow

import (
	"context"
	"errors"
	"relocation-route-service/internal/domain"
	"relocation-route-service/internal/services"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type resolverFunc func(ctx context.Context, origin domain.Coordinates, dests []domain.Coordinates) ([]services.ResolvedRoute, error)

func (f resolverFunc) ResolveBatch(ctx context.Context, origin domain.Coordinates, dests []domain.Coordinates) ([]services.ResolvedRoute, error) {
	return f(ctx, origin, dests)
}

func testDashboard() domain.Dashboard {
	return domain.Dashboard{
		Current: domain.Location{ID: "current", Name: "Downtown LA", Coords: domain.Coordinates{Lon: -118.244, Lat: 34.052}},
		Blocked: domain.Location{ID: "blocked", Name: "Grand Park", Coords: domain.Coordinates{Lon: -118.244, Lat: 34.052}},
		Alternatives: []domain.Location{
			{ID: "arts", Name: "Arts District", Coords: domain.Coordinates{Lon: -118.233, Lat: 34.044}, RevenueImpact: "+$900/day"},
			{ID: "echo", Name: "Echo Park Lake", Coords: domain.Coordinates{Lon: -118.259, Lat: 34.078}},
		},
	}
}

func fallbackResolver() RouteResolver {
	fb := services.NewDefaultFallbackResolver()
	return resolverFunc(func(ctx context.Context, origin domain.Coordinates, dests []domain.Coordinates) ([]services.ResolvedRoute, error) {
		out := make([]services.ResolvedRoute, len(dests))
		for i, d := range dests {
			r, src := fb.Resolve(d)
			out[i] = services.ResolvedRoute{Route: r, Source: src}
		}
		return out, nil
	})
}

func readySession(t *testing.T) *Session {
	t.Helper()
	s := NewSession("s1", testDashboard(), fallbackResolver(), nil)
	require.True(t, s.Start(context.Background()))
	waitReady(t, s)
	return s
}

func waitReady(t *testing.T, s *Session) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, s.Wait(ctx))
}

func TestSessionLoadsRoutesInOrder(t *testing.T) {
	s := NewSession("s1", testDashboard(), fallbackResolver(), nil)

	snap := s.Snapshot()
	assert.Equal(t, Idle, snap.Load)
	require.Len(t, snap.Candidates, 2)
	assert.Nil(t, snap.Candidates[0].Route)

	require.True(t, s.Start(context.Background()))
	waitReady(t, s)

	snap = s.Snapshot()
	assert.Equal(t, Ready, snap.Load)
	assert.False(t, snap.Degraded)
	require.Len(t, snap.Candidates, 2)

	assert.Equal(t, "arts", snap.Candidates[0].ID)
	require.NotNil(t, snap.Candidates[0].Route)
	assert.Equal(t, 2100.0, snap.Candidates[0].Route.DistanceMeters)
	assert.Equal(t, domain.RouteSourceSynthetic, snap.Candidates[0].Source)

	assert.Equal(t, "echo", snap.Candidates[1].ID)
	require.NotNil(t, snap.Candidates[1].Route)
	assert.Equal(t, 3500.0, snap.Candidates[1].Route.DistanceMeters)
}

func TestSessionStartTriggersOnce(t *testing.T) {
	var calls atomic.Int64
	release := make(chan struct{})
	inner := fallbackResolver()
	resolver := resolverFunc(func(ctx context.Context, o domain.Coordinates, d []domain.Coordinates) ([]services.ResolvedRoute, error) {
		calls.Add(1)
		<-release
		return inner.ResolveBatch(ctx, o, d)
	})

	s := NewSession("s1", testDashboard(), resolver, nil)
	require.True(t, s.Start(context.Background()))
	assert.Equal(t, Loading, s.Snapshot().Load)
	assert.False(t, s.Start(context.Background()))

	close(release)
	waitReady(t, s)

	assert.False(t, s.Start(context.Background()))
	assert.Equal(t, int64(1), calls.Load())
}

func TestSessionLoadingIgnoresCallerCancellation(t *testing.T) {
	release := make(chan struct{})
	inner := fallbackResolver()
	resolver := resolverFunc(func(ctx context.Context, o domain.Coordinates, d []domain.Coordinates) ([]services.ResolvedRoute, error) {
		<-release
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return inner.ResolveBatch(ctx, o, d)
	})

	ctx, cancel := context.WithCancel(context.Background())
	s := NewSession("s1", testDashboard(), resolver, nil)
	require.True(t, s.Start(ctx))
	cancel()
	close(release)

	waitReady(t, s)
	snap := s.Snapshot()
	assert.False(t, snap.Degraded)
	assert.NotNil(t, snap.Candidates[0].Route)
}

func TestSessionDegradesWhenBatchFails(t *testing.T) {
	cases := map[string]RouteResolver{
		"error": resolverFunc(func(ctx context.Context, o domain.Coordinates, d []domain.Coordinates) ([]services.ResolvedRoute, error) {
			return nil, services.ErrBatchFailed
		}),
		"panic": resolverFunc(func(ctx context.Context, o domain.Coordinates, d []domain.Coordinates) ([]services.ResolvedRoute, error) {
			panic("boom")
		}),
		"short result": resolverFunc(func(ctx context.Context, o domain.Coordinates, d []domain.Coordinates) ([]services.ResolvedRoute, error) {
			return []services.ResolvedRoute{}, nil
		}),
		"nil resolver": nil,
	}

	for name, resolver := range cases {
		t.Run(name, func(t *testing.T) {
			s := NewSession("s1", testDashboard(), resolver, nil)
			require.True(t, s.Start(context.Background()))
			waitReady(t, s)

			snap := s.Snapshot()
			assert.Equal(t, Ready, snap.Load)
			assert.True(t, snap.Degraded)
			require.Len(t, snap.Candidates, 2)
			for _, c := range snap.Candidates {
				assert.Nil(t, c.Route)
			}

			// Candidates without routes are still selectable.
			require.NoError(t, s.Select("arts"))
		})
	}
}

func TestSessionSelectRequiresReady(t *testing.T) {
	s := NewSession("s1", testDashboard(), fallbackResolver(), nil)
	assert.ErrorIs(t, s.Select("arts"), ErrNotReady)
	assert.ErrorIs(t, s.Confirm("arts"), ErrNotReady)
}

func TestSessionSelectUnknownCandidate(t *testing.T) {
	s := readySession(t)
	assert.ErrorIs(t, s.Select("nope"), ErrUnknownCandidate)
	assert.ErrorIs(t, s.Confirm("nope"), ErrUnknownCandidate)
	assert.Equal(t, NoSelection, s.Snapshot().Selection)
}

func TestSessionCloseWithoutConfirmRevertsSelection(t *testing.T) {
	s := readySession(t)

	s.OpenBrowser()
	require.NoError(t, s.Select("echo"))

	snap := s.Snapshot()
	assert.Equal(t, Selected, snap.Selection)
	assert.Equal(t, "echo", snap.SelectedID)
	assert.True(t, snap.BrowsingOpen)

	s.CloseBrowser()

	snap = s.Snapshot()
	assert.Equal(t, NoSelection, snap.Selection)
	assert.Empty(t, snap.SelectedID)
	assert.False(t, snap.BrowsingOpen)
	_, ok := snap.Selected()
	assert.False(t, ok)
}

func TestSessionConfirmClosesBrowser(t *testing.T) {
	s := readySession(t)

	s.OpenBrowser()
	require.NoError(t, s.Select("arts"))
	require.NoError(t, s.Confirm("arts"))

	snap := s.Snapshot()
	assert.Equal(t, Confirmed, snap.Selection)
	assert.Equal(t, "arts", snap.SelectedID)
	assert.False(t, snap.BrowsingOpen)
	assert.True(t, snap.ShowConfirmation)

	selected, ok := snap.Selected()
	require.True(t, ok)
	assert.Equal(t, "Arts District", selected.Name)

	// Closing again keeps a confirmed pick.
	s.CloseBrowser()
	assert.Equal(t, Confirmed, s.Snapshot().Selection)

	s.DismissConfirmation()
	snap = s.Snapshot()
	assert.False(t, snap.ShowConfirmation)
	assert.Equal(t, Confirmed, snap.Selection)
}

func TestSessionReselectIsNoOp(t *testing.T) {
	s := readySession(t)

	require.NoError(t, s.Select("arts"))
	before := s.Snapshot()
	require.NoError(t, s.Select("arts"))
	after := s.Snapshot()

	assert.Equal(t, before.Selection, after.Selection)
	assert.Equal(t, before.SelectedID, after.SelectedID)
	assert.Equal(t, before.UpdatedAt, after.UpdatedAt)

	require.NoError(t, s.Confirm("arts"))
	require.NoError(t, s.Select("arts"))
	assert.Equal(t, Confirmed, s.Snapshot().Selection)
}

func TestSessionNewSelectionAfterConfirm(t *testing.T) {
	s := readySession(t)

	require.NoError(t, s.Confirm("arts"))
	s.OpenBrowser()
	require.NoError(t, s.Select("echo"))

	snap := s.Snapshot()
	assert.Equal(t, Selected, snap.Selection)
	assert.Equal(t, "echo", snap.SelectedID)
	assert.False(t, snap.ShowConfirmation)

	s.CloseBrowser()
	assert.Equal(t, NoSelection, s.Snapshot().Selection)
}

func TestSessionSnapshotIsACopy(t *testing.T) {
	s := readySession(t)

	snap := s.Snapshot()
	snap.Candidates[0].Route.DistanceMeters = -1
	snap.Candidates[0].Name = "changed"

	again := s.Snapshot()
	assert.Equal(t, 2100.0, again.Candidates[0].Route.DistanceMeters)
	assert.Equal(t, "Arts District", again.Candidates[0].Name)
}

func TestSessionWaitHonoursContext(t *testing.T) {
	s := NewSession("s1", testDashboard(), fallbackResolver(), nil)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := s.Wait(ctx)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestStateStrings(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "loading", Loading.String())
	assert.Equal(t, "ready", Ready.String())
	assert.Equal(t, "none", NoSelection.String())
	assert.Equal(t, "selected", Selected.String())
	assert.Equal(t, "confirmed", Confirmed.String())
}
