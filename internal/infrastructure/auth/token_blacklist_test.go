package auth_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/inventoryhub/backend/internal/infrastructure/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryTokenBlacklist_RevokeSingleToken(t *testing.T) {
	blacklist := auth.NewInMemoryTokenBlacklist()
	ctx := context.Background()

	require.NoError(t, blacklist.AddToBlacklist(ctx, "logout-jti", time.Hour))

	revoked, err := blacklist.IsBlacklisted(ctx, "logout-jti")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = blacklist.IsBlacklisted(ctx, "still-valid-jti")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestInMemoryTokenBlacklist_EntryExpires(t *testing.T) {
	blacklist := auth.NewInMemoryTokenBlacklist()
	ctx := context.Background()

	require.NoError(t, blacklist.AddToBlacklist(ctx, "short-lived", time.Millisecond))
	time.Sleep(10 * time.Millisecond)

	revoked, err := blacklist.IsBlacklisted(ctx, "short-lived")
	require.NoError(t, err)
	assert.False(t, revoked, "revocation entries lapse with the token itself")
}

func TestInMemoryTokenBlacklist_UserWideInvalidation(t *testing.T) {
	blacklist := auth.NewInMemoryTokenBlacklist()
	ctx := context.Background()

	issuedBefore := time.Now().Add(-time.Hour)

	invalidated, err := blacklist.IsUserTokenInvalidated(ctx, "user-1", issuedBefore)
	require.NoError(t, err)
	assert.False(t, invalidated)

	require.NoError(t, blacklist.AddUserTokensToBlacklist(ctx, "user-1", time.Hour))

	t.Run("token issued before the cutoff is rejected", func(t *testing.T) {
		invalidated, err := blacklist.IsUserTokenInvalidated(ctx, "user-1", issuedBefore)
		require.NoError(t, err)
		assert.True(t, invalidated)
	})

	t.Run("token issued after the cutoff stays valid", func(t *testing.T) {
		issuedAfter := time.Now().Add(time.Second)
		invalidated, err := blacklist.IsUserTokenInvalidated(ctx, "user-1", issuedAfter)
		require.NoError(t, err)
		assert.False(t, invalidated)
	})

	t.Run("other users are unaffected", func(t *testing.T) {
		invalidated, err := blacklist.IsUserTokenInvalidated(ctx, "user-2", issuedBefore)
		require.NoError(t, err)
		assert.False(t, invalidated)
	})
}

func TestInMemoryTokenBlacklist_ManyEntries(t *testing.T) {
	blacklist := auth.NewInMemoryTokenBlacklist()
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		require.NoError(t, blacklist.AddToBlacklist(ctx, fmt.Sprintf("jti-%d", i), time.Hour))
	}

	for i := 0; i < 10; i++ {
		revoked, err := blacklist.IsBlacklisted(ctx, fmt.Sprintf("jti-%d", i))
		require.NoError(t, err)
		assert.True(t, revoked)
	}

	revoked, err := blacklist.IsBlacklisted(ctx, "jti-missing")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestTokenBlacklistImplementations(t *testing.T) {
	var _ auth.TokenBlacklist = (*auth.InMemoryTokenBlacklist)(nil)
	var _ auth.TokenBlacklist = (*auth.RedisTokenBlacklist)(nil)
}
