package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCandidateLocks(t *testing.T) {
	locks := newCandidateLocks()

	release, err := locks.acquire(context.Background(), 1)
	require.NoError(t, err)

	// other candidates are not blocked
	other, err := locks.acquire(context.Background(), 2)
	require.NoError(t, err)
	other()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = locks.acquire(ctx, 1)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	release()
	release()

	again, err := locks.acquire(context.Background(), 1)
	require.NoError(t, err)
	again()

	assert.Empty(t, locks.held)
}
