package client

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smc-go/smc/internal/constants"
	"github.com/smc-go/smc/pkg/smc"
)

func TestClient_Login(t *testing.T) {
	t.Run("successful login loads entry points", func(t *testing.T) {
		fake := newFakeSMC(t)

		smcClient := New(&smc.Config{Endpoint: fake.Server.URL, APIKey: testAPIKey}, testAPIVersion)
		assert.Empty(t, smcClient.SessionID())

		require.NoError(t, smcClient.Login(context.Background()))

		assert.True(t, smcClient.LoggedIn())
		assert.Equal(t, "a1b2c3d4", smcClient.SessionID())
		assert.Equal(t, 1, fake.LoginCount)

		href, err := smcClient.entryPoint(constants.EntryPointHost)
		require.NoError(t, err)
		assert.Equal(t, fake.URL("/6.5/host"), href)
	})

	t.Run("rejected credentials", func(t *testing.T) {
		fake := newFakeSMC(t)

		smcClient := New(&smc.Config{Endpoint: fake.Server.URL, APIKey: "bad-key"}, testAPIVersion)
		err := smcClient.Login(context.Background())

		require.Error(t, err)
		assert.True(t, smc.IsUnauthorized(err))
		assert.False(t, smcClient.LoggedIn())
	})

	t.Run("session cookie is replayed on subsequent requests", func(t *testing.T) {
		fake := newFakeSMC(t)

		fake.Mux.HandleFunc("/"+testAPIVersion+"/elements", func(writer http.ResponseWriter, request *http.Request) {
			cookie, err := request.Cookie(constants.SessionCookieName)
			require.NoError(t, err)
			assert.Equal(t, "a1b2c3d4", cookie.Value)

			writeJSON(writer, http.StatusOK, smc.SearchResult{})
		})

		smcClient := fake.NewLoggedInClient(t)

		_, err := smcClient.Elements().Search(context.Background(), smc.NewSearchQuery("x"))
		require.NoError(t, err)
	})

	t.Run("unreachable endpoint", func(t *testing.T) {
		smcClient := New(&smc.Config{
			Endpoint: "http://127.0.0.1:1",
			APIKey:   testAPIKey,
			RetryMax: 1,
		}, testAPIVersion)

		err := smcClient.Login(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "login failed")
	})
}

func TestClient_Logout(t *testing.T) {
	t.Run("logout invalidates the session", func(t *testing.T) {
		fake := newFakeSMC(t)
		smcClient := fake.NewLoggedInClient(t)

		require.NoError(t, smcClient.Logout(context.Background()))
		assert.Equal(t, 1, fake.LogoutCount)
		assert.False(t, smcClient.LoggedIn())

		// Operations after logout fail before touching the network.
		_, err := smcClient.Elements().Search(context.Background(), smc.NewSearchQuery("x"))
		require.ErrorIs(t, err, smc.ErrNotLoggedIn)

		_, err = smcClient.Hosts().Create(context.Background(), &smc.HostCreateRequest{Name: "h", Address: "1.1.1.1"})
		require.ErrorIs(t, err, smc.ErrNotLoggedIn)
	})

	t.Run("logout without a session is a no-op", func(t *testing.T) {
		fake := newFakeSMC(t)

		smcClient := New(&smc.Config{Endpoint: fake.Server.URL, APIKey: testAPIKey}, testAPIVersion)
		require.NoError(t, smcClient.Logout(context.Background()))
		assert.Equal(t, 0, fake.LogoutCount)
	})

	t.Run("double logout contacts the server once", func(t *testing.T) {
		fake := newFakeSMC(t)
		smcClient := fake.NewLoggedInClient(t)

		require.NoError(t, smcClient.Logout(context.Background()))
		require.NoError(t, smcClient.Logout(context.Background()))
		assert.Equal(t, 1, fake.LogoutCount)
	})
}

func TestClient_APIVersion(t *testing.T) {
	fake := newFakeSMC(t)
	smcClient := fake.NewLoggedInClient(t)

	assert.Equal(t, testAPIVersion, smcClient.APIVersion())
}

func TestClient_EntryPointNotFound(t *testing.T) {
	fake := newFakeSMC(t)
	smcClient := fake.NewLoggedInClient(t)

	_, err := smcClient.entryPoint("vpn_profile")
	require.ErrorIs(t, err, smc.ErrEntryPointNotFound)
}
