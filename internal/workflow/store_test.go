package workflow

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreCreateGetDelete(t *testing.T) {
	st := NewStore(fallbackResolver(), time.Hour, nil)

	sess := st.Create(testDashboard())
	_, err := uuid.Parse(sess.ID())
	require.NoError(t, err)
	assert.Equal(t, Idle, sess.Snapshot().Load)

	got, err := st.Get(sess.ID())
	require.NoError(t, err)
	assert.Same(t, sess, got)

	st.Delete(sess.ID())
	_, err = st.Get(sess.ID())
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestStorePrunesIdleSessions(t *testing.T) {
	st := NewStore(fallbackResolver(), 20*time.Millisecond, nil)

	old := st.Create(testDashboard())
	time.Sleep(40 * time.Millisecond)
	fresh := st.Create(testDashboard())

	_, err := st.Get(old.ID())
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = st.Get(fresh.ID())
	assert.NoError(t, err)
	assert.Equal(t, 1, st.Len())
}

func TestStoreSessionsAreIndependent(t *testing.T) {
	st := NewStore(fallbackResolver(), 0, nil)
	a := st.Create(testDashboard())
	b := st.Create(testDashboard())
	require.NotEqual(t, a.ID(), b.ID())

	a.OpenBrowser()
	assert.True(t, a.Snapshot().BrowsingOpen)
	assert.False(t, b.Snapshot().BrowsingOpen)
}
