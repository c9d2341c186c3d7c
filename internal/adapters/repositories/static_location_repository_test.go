package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticLocationRepository_ReturnsCopies(t *testing.T) {
	repo := NewDefaultLocationRepository()

	first, err := repo.Dashboard(context.Background())
	require.NoError(t, err)
	require.Len(t, first.Alternatives, 6)

	first.Alternatives[0].Name = "mutated"

	second, err := repo.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Santa Monica Pier", second.Alternatives[0].Name)
}

func TestStaticLocationRepository_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewDefaultLocationRepository().Dashboard(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDefaultDashboard_CoordinatesValid(t *testing.T) {
	d := DefaultDashboard()
	assert.NoError(t, d.Current.Coords.Validate())
	assert.NoError(t, d.Blocked.Coords.Validate())
	for _, alt := range d.Alternatives {
		assert.NoError(t, alt.Coords.Validate(), alt.ID)
	}
}
