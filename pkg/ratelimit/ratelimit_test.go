package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLimiter_OnePerWindow(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 11, 1, 12, 0, 0, 0, time.UTC)
	l := newMemoryLimiter(time.Minute, func() time.Time { return now })

	ok, err := l.Allow(ctx, "user_a")
	require.NoError(t, err)
	assert.True(t, ok)

	now = now.Add(30 * time.Second)
	ok, err = l.Allow(ctx, "user_a")
	require.NoError(t, err)
	assert.False(t, ok, "second call inside the window is throttled")

	ok, err = l.Allow(ctx, "user_b")
	require.NoError(t, err)
	assert.True(t, ok, "keys are independent")

	now = now.Add(31 * time.Second)
	ok, err = l.Allow(ctx, "user_a")
	require.NoError(t, err)
	assert.True(t, ok, "allowed again after the window")
}
