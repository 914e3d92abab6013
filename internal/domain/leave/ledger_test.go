package leave

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dayflow/internal/apperrors"
)

func TestDefaultBalanceAvailability(t *testing.T) {
	b := DefaultBalance("e1")
	want := map[Category]int{CategoryAnnual: 20, CategorySick: 10, CategoryPersonal: 5}
	for c, n := range want {
		got, err := b.Available(c)
		require.NoError(t, err)
		assert.Equal(t, n, got, c)
	}
}

func TestAvailableUnpaidIsCallerError(t *testing.T) {
	b := DefaultBalance("e1")
	_, err := b.Available(CategoryUnpaid)
	assert.True(t, errors.Is(err, ErrUntrackedCategory))
	assert.Error(t, b.Reserve(CategoryUnpaid, 1, true))
}

func TestReserveGuardedAndUnguarded(t *testing.T) {
	b := DefaultBalance("e1")
	require.NoError(t, b.Reserve(CategoryPersonal, 5, true))
	assert.Equal(t, 5, b.UsedPersonal)

	err := b.Reserve(CategoryPersonal, 1, true)
	assert.True(t, errors.Is(err, ErrInsufficientBalance))
	assert.True(t, errors.Is(err, apperrors.ErrBusinessRule))
	assert.Equal(t, "insufficient personal leave balance", err.Error())
	assert.Equal(t, 5, b.UsedPersonal)

	require.NoError(t, b.Reserve(CategoryPersonal, 2, false))
	available, _ := b.Available(CategoryPersonal)
	assert.Equal(t, -2, available)
}

func TestReleaseFloorsAtZero(t *testing.T) {
	b := DefaultBalance("e1")
	require.NoError(t, b.Reserve(CategorySick, 3, true))
	require.NoError(t, b.Release(CategorySick, 5))
	assert.Equal(t, 0, b.UsedSick)
}
