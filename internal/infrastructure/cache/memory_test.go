package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLocker_Exclusive(t *testing.T) {
	l := NewMemoryLocker(time.Minute)
	defer l.Close()
	ctx := context.Background()

	release, ok, err := l.TryLock(ctx, "t-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, l.Held("t-1"))

	_, ok, err = l.TryLock(ctx, "t-1")
	require.NoError(t, err)
	assert.False(t, ok, "second holder must be refused")

	_, ok, _ = l.TryLock(ctx, "t-2")
	assert.True(t, ok, "other keys are independent")

	release()
	assert.False(t, l.Held("t-1"))

	_, ok, _ = l.TryLock(ctx, "t-1")
	assert.True(t, ok)
}

func TestMemoryLocker_Expiry(t *testing.T) {
	l := NewMemoryLocker(20 * time.Millisecond)
	defer l.Close()
	ctx := context.Background()

	staleRelease, ok, _ := l.TryLock(ctx, "t-1")
	require.True(t, ok)

	time.Sleep(40 * time.Millisecond)

	_, ok, _ = l.TryLock(ctx, "t-1")
	require.True(t, ok, "expired lock can be retaken")

	// The first holder's release must not drop the new holder's lock.
	staleRelease()
	assert.True(t, l.Held("t-1"))
}
