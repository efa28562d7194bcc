package session

import (
	"sync"
	"testing"

	"github.com/dmitrijs2005/catalogclient/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContext_ZeroIsAnonymous(t *testing.T) {
	var c Context
	assert.Equal(t, Anonymous, c.State())
	assert.False(t, c.IsAuthenticated())
	assert.Empty(t, c.Credential())
	assert.Nil(t, c.User())
}

func TestContext_AuthenticateAndClear(t *testing.T) {
	c := NewContext()
	require.NoError(t, c.Authenticate("tok", &models.User{ID: "7", Email: "a@b.c"}))

	assert.Equal(t, Authenticated, c.State())
	assert.True(t, c.IsAuthenticated())
	assert.Equal(t, "tok", c.Credential())
	assert.Equal(t, "7", c.User().ID)

	c.Clear()
	assert.Equal(t, Anonymous, c.State())
	assert.Empty(t, c.Credential())
	assert.Nil(t, c.User())
}

func TestContext_EmptyCredentialRejected(t *testing.T) {
	c := NewContext()
	err := c.Authenticate("", &models.User{ID: "1"})
	require.ErrorIs(t, err, ErrNoCredential)
	assert.Nil(t, c.User(), "user must not be held without a credential")

	require.ErrorIs(t, c.Restore("", nil), ErrNoCredential)
	assert.Equal(t, Anonymous, c.State())
}

func TestContext_RestoreThenConfirm(t *testing.T) {
	c := NewContext()
	require.NoError(t, c.Restore("tok", nil))

	assert.Equal(t, Restored, c.State())
	assert.True(t, c.IsAuthenticated())

	assert.True(t, c.Confirm())
	assert.Equal(t, Authenticated, c.State())
	assert.False(t, c.Confirm(), "already authenticated")
}

func TestContext_ConfirmAnonymous(t *testing.T) {
	c := NewContext()
	assert.False(t, c.Confirm())
	assert.Equal(t, Anonymous, c.State())
}

func TestContext_UserIsCopied(t *testing.T) {
	c := NewContext()
	u := &models.User{ID: "1", FirstName: "Ann"}
	require.NoError(t, c.Authenticate("tok", u))

	u.FirstName = "changed"
	got := c.User()
	got.FirstName = "also changed"

	assert.Equal(t, "Ann", c.User().FirstName)
}

func TestContext_ConcurrentAccess(t *testing.T) {
	c := NewContext()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = c.Authenticate("tok", &models.User{ID: "1"})
			c.Clear()
		}()
		go func() {
			defer wg.Done()
			_ = c.Credential()
			_ = c.User()
			_ = c.IsAuthenticated()
		}()
	}
	wg.Wait()
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "anonymous", Anonymous.String())
	assert.Equal(t, "restored", Restored.String())
	assert.Equal(t, "authenticated", Authenticated.String())
	assert.Equal(t, "unknown", State(42).String())
}
