package connector

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCredential(t *testing.T) {
	t.Run("creates credential for known provider", func(t *testing.T) {
		userID := uuid.New()
		expires := time.Now().Add(time.Hour)

		cred, err := NewCredential(userID, ProviderSalesforce, "access", "refresh", "https://org.my.salesforce.com", expires)
		require.NoError(t, err)

		assert.Equal(t, userID, cred.UserID)
		assert.Equal(t, ProviderSalesforce, cred.Provider)
		assert.Equal(t, "https://org.my.salesforce.com", cred.InstanceURL)
	})

	t.Run("rejects unknown provider", func(t *testing.T) {
		_, err := NewCredential(uuid.New(), Provider("dropbox"), "access", "", "", time.Time{})
		assert.Error(t, err)
	})

	t.Run("rejects empty access token", func(t *testing.T) {
		_, err := NewCredential(uuid.New(), ProviderMicrosoft, "", "", "", time.Time{})
		assert.Error(t, err)
	})
}

func TestCredentialIsExpired(t *testing.T) {
	now := time.Now()

	t.Run("fresh token is not expired", func(t *testing.T) {
		cred := &Credential{ExpiresAt: now.Add(time.Hour)}
		assert.False(t, cred.IsExpired(now))
	})

	t.Run("token inside safety margin counts as expired", func(t *testing.T) {
		cred := &Credential{ExpiresAt: now.Add(30 * time.Second)}
		assert.True(t, cred.IsExpired(now))
	})

	t.Run("past expiry is expired", func(t *testing.T) {
		cred := &Credential{ExpiresAt: now.Add(-time.Minute)}
		assert.True(t, cred.IsExpired(now))
	})

	t.Run("zero expiry never expires", func(t *testing.T) {
		cred := &Credential{}
		assert.False(t, cred.IsExpired(now))
	})
}

func TestCredentialUpdateTokens(t *testing.T) {
	cred, err := NewCredential(uuid.New(), ProviderMicrosoft, "old-access", "old-refresh", "", time.Now())
	require.NoError(t, err)

	t.Run("keeps old refresh token when provider omits a new one", func(t *testing.T) {
		err := cred.UpdateTokens("new-access", "", "", time.Now().Add(time.Hour))
		require.NoError(t, err)

		assert.Equal(t, "new-access", cred.AccessToken)
		assert.Equal(t, "old-refresh", cred.RefreshToken)
	})

	t.Run("adopts rotated refresh token", func(t *testing.T) {
		err := cred.UpdateTokens("newer-access", "new-refresh", "", time.Now().Add(time.Hour))
		require.NoError(t, err)

		assert.Equal(t, "new-refresh", cred.RefreshToken)
	})

	t.Run("rejects empty access token", func(t *testing.T) {
		assert.Error(t, cred.UpdateTokens("", "", "", time.Now()))
	})
}
