package smcclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smc-go/smc/pkg/smc"
)

// newFakeSMC starts a minimal SMC serving version discovery, login and the
// per-version entry point list.
func newFakeSMC(t *testing.T, versions ...string) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	server := httptest.NewServer(mux)

	t.Cleanup(server.Close)

	mux.HandleFunc("/api", func(writer http.ResponseWriter, request *http.Request) {
		type versionEntry struct {
			Rel  string `json:"rel"`
			Href string `json:"href"`
		}

		entries := make([]versionEntry, 0, len(versions))
		for _, version := range versions {
			entries = append(entries, versionEntry{
				Rel:  version,
				Href: server.URL + "/" + version,
			})
		}

		writer.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(writer).Encode(map[string]interface{}{"version": entries})
	})

	for _, version := range versions {
		version := version

		mux.HandleFunc("/"+version+"/login", func(writer http.ResponseWriter, request *http.Request) {
			var creds map[string]string

			_ = json.NewDecoder(request.Body).Decode(&creds)

			if creds["authenticationkey"] != "test-key" {
				writer.WriteHeader(http.StatusUnauthorized)

				return
			}

			http.SetCookie(writer, &http.Cookie{Name: "JSESSIONID", Value: "a1b2c3"})
			writer.WriteHeader(http.StatusOK)
		})

		mux.HandleFunc("/"+version+"/api", func(writer http.ResponseWriter, request *http.Request) {
			writer.Header().Set("Content-Type", "application/json")
			fmt.Fprintf(writer, `{"entry_point":[{"rel":"logout","href":"%s/%s/logout"}]}`,
				server.URL, version)
		})

		mux.HandleFunc("/"+version+"/logout", func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusNoContent)
		})
	}

	return server
}

func TestNew(t *testing.T) {
	t.Run("discovers newest version and logs in", func(t *testing.T) {
		server := newFakeSMC(t, "6.5", "6.9", "6.10")

		smcClient, err := New(context.Background(), &smc.Config{
			Endpoint: server.URL,
			APIKey:   "test-key",
		})
		require.NoError(t, err)
		assert.Equal(t, "6.10", smcClient.APIVersion())
		assert.True(t, smcClient.LoggedIn())
	})

	t.Run("pinned version", func(t *testing.T) {
		server := newFakeSMC(t, "6.5", "6.10")

		smcClient, err := New(context.Background(), &smc.Config{
			Endpoint:   server.URL,
			APIKey:     "test-key",
			APIVersion: "6.5",
		})
		require.NoError(t, err)
		assert.Equal(t, "6.5", smcClient.APIVersion())
	})

	t.Run("pinned version not advertised", func(t *testing.T) {
		server := newFakeSMC(t, "6.5")

		_, err := New(context.Background(), &smc.Config{
			Endpoint:   server.URL,
			APIKey:     "test-key",
			APIVersion: "7.0",
		})
		require.ErrorIs(t, err, smc.ErrVersionNotSupported)
	})

	t.Run("no versions advertised", func(t *testing.T) {
		server := newFakeSMC(t)

		_, err := New(context.Background(), &smc.Config{
			Endpoint: server.URL,
			APIKey:   "test-key",
		})
		require.ErrorIs(t, err, smc.ErrNoAPIVersions)
	})

	t.Run("rejected credentials", func(t *testing.T) {
		server := newFakeSMC(t, "6.5")

		_, err := New(context.Background(), &smc.Config{
			Endpoint: server.URL,
			APIKey:   "wrong-key",
		})
		require.Error(t, err)
		assert.True(t, smc.IsUnauthorized(err))
	})

	t.Run("validation", func(t *testing.T) {
		ctx := context.Background()

		_, err := New(ctx, nil)
		require.ErrorIs(t, err, smc.ErrConfigRequired)

		_, err = New(ctx, &smc.Config{APIKey: "test-key"})
		require.ErrorIs(t, err, smc.ErrEndpointRequired)

		_, err = New(ctx, &smc.Config{Endpoint: "smc.example.com"})
		require.ErrorIs(t, err, smc.ErrAPIKeyRequired)
	})

	t.Run("endpoint normalization", func(t *testing.T) {
		server := newFakeSMC(t, "6.5")

		// Trailing slash is trimmed before discovery.
		config := &smc.Config{
			Endpoint: server.URL + "/",
			APIKey:   "test-key",
		}

		_, err := New(context.Background(), config)
		require.NoError(t, err)
		assert.Equal(t, server.URL, config.Endpoint)

		// A bare host gets an https scheme. The fake serves http only, so
		// discovery fails, but the normalized endpoint proves the scheme.
		config = &smc.Config{
			Endpoint: "smc.example.invalid:8082",
			APIKey:   "test-key",
		}

		_, err = New(context.Background(), config)
		require.Error(t, err)
		assert.True(t, strings.HasPrefix(config.Endpoint, "https://"))
	})
}

func TestNewWithAPIKey(t *testing.T) {
	server := newFakeSMC(t, "6.5")

	smcClient, err := NewWithAPIKey(context.Background(), server.URL, "test-key")
	require.NoError(t, err)
	assert.True(t, smcClient.LoggedIn())
}

func TestNewestVersion(t *testing.T) {
	tests := []struct {
		name     string
		versions []string
		want     string
	}{
		{
			name:     "minor compared numerically",
			versions: []string{"6.5", "6.10", "6.9"},
			want:     "6.10",
		},
		{
			name:     "major wins over minor",
			versions: []string{"6.10", "7.0"},
			want:     "7.0",
		},
		{
			name:     "single version",
			versions: []string{"6.5"},
			want:     "6.5",
		},
		{
			name:     "unparseable rels are skipped",
			versions: []string{"beta", "6.5"},
			want:     "6.5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, newestVersion(tt.versions))
		})
	}
}
