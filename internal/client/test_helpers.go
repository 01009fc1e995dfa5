package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/smc-go/smc/internal/constants"
	"github.com/smc-go/smc/pkg/smc"
)

const (
	testAPIVersion = "6.5"
	testAPIKey     = "test-key"
)

// fakeSMC is an httptest-backed SMC that answers the discovery, login,
// entry point, and logout endpoints. Tests register element handlers on
// Mux as needed.
type fakeSMC struct {
	Mux    *http.ServeMux
	Server *httptest.Server

	LoginCount  int
	LogoutCount int
}

// newFakeSMC starts a fake SMC for one test.
func newFakeSMC(t *testing.T) *fakeSMC {
	t.Helper()

	fake := &fakeSMC{Mux: http.NewServeMux()}
	fake.Server = httptest.NewServer(fake.Mux)
	t.Cleanup(fake.Server.Close)

	fake.Mux.HandleFunc("/api", func(writer http.ResponseWriter, request *http.Request) {
		writeJSON(writer, http.StatusOK, map[string]interface{}{
			"version": []map[string]string{
				{"rel": testAPIVersion, "href": fake.URL("/" + testAPIVersion)},
			},
		})
	})

	fake.Mux.HandleFunc("/"+testAPIVersion+"/login", func(writer http.ResponseWriter, request *http.Request) {
		var body struct {
			Domain            string `json:"domain"`
			AuthenticationKey string `json:"authenticationkey"`
		}

		_ = json.NewDecoder(request.Body).Decode(&body)

		if body.AuthenticationKey != testAPIKey {
			writeJSON(writer, http.StatusUnauthorized, map[string]interface{}{
				"message": "Login failed",
			})

			return
		}

		fake.LoginCount++

		http.SetCookie(writer, &http.Cookie{Name: constants.SessionCookieName, Value: "a1b2c3d4", Path: "/"})
		writeJSON(writer, http.StatusOK, map[string]interface{}{})
	})

	fake.Mux.HandleFunc("/"+testAPIVersion+"/api", func(writer http.ResponseWriter, request *http.Request) {
		rels := []string{
			constants.EntryPointElements,
			constants.EntryPointHost,
			constants.EntryPointGroup,
			constants.EntryPointSingleFW,
			constants.EntryPointLogout,
		}

		entryPoints := make([]map[string]string, 0, len(rels))
		for _, rel := range rels {
			entryPoints = append(entryPoints, map[string]string{
				"rel":  rel,
				"href": fake.URL("/" + testAPIVersion + "/" + rel),
			})
		}

		writeJSON(writer, http.StatusOK, map[string]interface{}{"entry_point": entryPoints})
	})

	fake.Mux.HandleFunc("/"+testAPIVersion+"/logout", func(writer http.ResponseWriter, request *http.Request) {
		fake.LogoutCount++

		writer.WriteHeader(http.StatusNoContent)
	})

	return fake
}

// URL joins a path onto the fake server's base URL.
func (f *fakeSMC) URL(path string) string {
	return f.Server.URL + path
}

// NewLoggedInClient builds a client against the fake and logs it in.
func (f *fakeSMC) NewLoggedInClient(t *testing.T) *Client {
	t.Helper()

	smcClient := New(&smc.Config{Endpoint: f.Server.URL, APIKey: testAPIKey}, testAPIVersion)
	require.NoError(t, smcClient.Login(context.Background()))

	return smcClient
}

// HandleSearch serves the generic element search endpoint with a fixed
// result set.
func (f *fakeSMC) HandleSearch(t *testing.T, refs []smc.ElementRef) {
	t.Helper()

	f.Mux.HandleFunc("/"+testAPIVersion+"/elements", func(writer http.ResponseWriter, request *http.Request) {
		filter := request.URL.Query().Get("filter")

		matches := make([]smc.ElementRef, 0, len(refs))

		for _, ref := range refs {
			if filter == "" || strings.Contains(strings.ToLower(ref.Name), strings.ToLower(filter)) {
				matches = append(matches, ref)
			}
		}

		writeJSON(writer, http.StatusOK, smc.SearchResult{Result: matches})
	})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(writer http.ResponseWriter, statusCode int, body interface{}) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(body)
}
