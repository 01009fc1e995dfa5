// Package smcclient provides the main entry point for creating SMC API clients
package smcclient

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/smc-go/smc/internal/client"
	"github.com/smc-go/smc/internal/configloader"
	"github.com/smc-go/smc/internal/constants"
	"github.com/smc-go/smc/pkg/smc"
)

// New creates a new SMC API client: it normalizes the endpoint, discovers
// the API version from "<endpoint>/api", logs in, and returns a ready
// client. Call Logout when done to clear the session from the SMC.
func New(ctx context.Context, config *smc.Config) (smc.Client, error) {
	if config == nil {
		return nil, smc.ErrConfigRequired
	}

	if config.Endpoint == "" {
		return nil, smc.ErrEndpointRequired
	}

	if config.APIKey == "" {
		return nil, smc.ErrAPIKeyRequired
	}

	// Normalize endpoint
	endpoint := strings.TrimSuffix(config.Endpoint, "/")
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}

	config.Endpoint = endpoint

	apiVersion, err := discoverAPIVersion(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("discovering API version: %w", err)
	}

	smcClient := client.New(config, apiVersion)

	err = smcClient.Login(ctx)
	if err != nil {
		return nil, err
	}

	return smcClient, nil
}

// NewWithAPIKey creates a new client with just an endpoint and API key.
func NewWithAPIKey(ctx context.Context, endpoint, apiKey string) (smc.Client, error) {
	return New(ctx, &smc.Config{
		Endpoint: endpoint,
		APIKey:   apiKey,
	})
}

// NewFromFile creates a new client from an .smcrc configuration file. An
// empty path reads the default location (~/.smcrc); SMC_* environment
// variables override file values.
func NewFromFile(ctx context.Context, path string) (smc.Client, error) {
	config, err := configloader.Load(path)
	if err != nil {
		return nil, err
	}

	return New(ctx, config)
}

// createDiscoveryHTTPClient creates an HTTP client for version discovery,
// which runs before any session exists.
func createDiscoveryHTTPClient(config *smc.Config) *http.Client {
	httpClient := &http.Client{
		Timeout: constants.ShortHTTPTimeout,
	}

	if config.HTTPTimeout > 0 {
		httpClient.Timeout = config.HTTPTimeout
	}

	if config.SkipTLSVerify {
		httpClient.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, // #nosec G402 -- opt-in via config, documented as unsafe
		}
	}

	return httpClient
}

// fetchAPIVersions fetches the versions the SMC advertises at /api.
func fetchAPIVersions(ctx context.Context, httpClient *http.Client, endpoint string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"/api", nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("getting API versions: %w", err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)

		return nil, smc.ParseAPIError(resp.StatusCode, body)
	}

	var versionList struct {
		Version []struct {
			Rel  string `json:"rel"`
			Href string `json:"href"`
		} `json:"version"`
	}

	err = json.NewDecoder(resp.Body).Decode(&versionList)
	if err != nil {
		return nil, fmt.Errorf("parsing API versions: %w", err)
	}

	versions := make([]string, 0, len(versionList.Version))
	for _, version := range versionList.Version {
		versions = append(versions, version.Rel)
	}

	return versions, nil
}

// discoverAPIVersion picks the requested API version, or the newest one
// the SMC advertises when none is pinned. A pinned version the server does
// not advertise is an error rather than a silent downgrade.
func discoverAPIVersion(ctx context.Context, config *smc.Config) (string, error) {
	versions, err := fetchAPIVersions(ctx, createDiscoveryHTTPClient(config), config.Endpoint)
	if err != nil {
		return "", err
	}

	if len(versions) == 0 {
		return "", smc.ErrNoAPIVersions
	}

	if config.APIVersion != "" {
		for _, version := range versions {
			if version == config.APIVersion {
				return version, nil
			}
		}

		return "", fmt.Errorf("%w: %s (advertised: %s)",
			smc.ErrVersionNotSupported, config.APIVersion, strings.Join(versions, ", "))
	}

	return newestVersion(versions), nil
}

// newestVersion returns the highest version, comparing rels as
// major.minor pairs ("6.10" is newer than "6.9").
func newestVersion(versions []string) string {
	newest := versions[0]
	newestMajor, newestMinor := -1, -1

	for _, version := range versions {
		major, minor, ok := parseVersion(version)
		if !ok {
			continue
		}

		if major > newestMajor || (major == newestMajor && minor > newestMinor) {
			newest = version
			newestMajor, newestMinor = major, minor
		}
	}

	return newest
}

// parseVersion splits a version rel like "6.5" into its numeric parts.
func parseVersion(version string) (int, int, bool) {
	parts := strings.SplitN(version, ".", 2)

	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}

	minor := 0

	if len(parts) == 2 {
		minor, err = strconv.Atoi(parts[1])
		if err != nil {
			return 0, 0, false
		}
	}

	return major, minor, true
}
