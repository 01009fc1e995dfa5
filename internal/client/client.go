// Package client contains the concrete SMC API client: session lifecycle,
// entry point registry, and the per-resource clients.
package client

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/smc-go/smc/internal/constants"
	internalhttp "github.com/smc-go/smc/internal/http"
	"github.com/smc-go/smc/pkg/smc"
)

// Client implements the smc.Client interface. One Client owns one SMC
// session: the JSESSIONID cookie lives in the HTTP client's jar and the
// entry point registry is filled at login.
type Client struct {
	httpClient *internalhttp.Client
	config     *smc.Config
	apiVersion string
	domain     string
	logger     smc.Logger

	mu          sync.RWMutex
	entryPoints map[string]string
	loggedIn    bool

	// Resource clients
	elements *ElementsClient
	hosts    *HostsClient
	groups   *GroupsClient
	engines  *EnginesClient
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *smc.Config) []internalhttp.Option {
	var httpOpts []internalhttp.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, internalhttp.WithLogger(&loggerAdapter{logger: config.Logger}))
	}

	if config.Debug {
		httpOpts = append(httpOpts, internalhttp.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, internalhttp.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, internalhttp.WithTimeout(config.HTTPTimeout))
	}

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.DefaultRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, internalhttp.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	if config.SkipTLSVerify {
		httpOpts = append(httpOpts, internalhttp.WithTLSConfig(&tls.Config{
			InsecureSkipVerify: true, // #nosec G402 -- opt-in via config, documented as unsafe
		}))
	}

	return httpOpts
}

// New creates a client for the given endpoint and negotiated API version.
// The client is not logged in yet; call Login before using it.
func New(config *smc.Config, apiVersion string) *Client {
	domain := config.Domain
	if domain == "" {
		domain = constants.DefaultDomain
	}

	client := &Client{
		httpClient: internalhttp.NewClient(config.Endpoint, createHTTPClientOptions(config)...),
		config:     config,
		apiVersion: apiVersion,
		domain:     domain,
		logger:     config.Logger,
	}

	client.initializeResourceClients()

	return client
}

// initializeResourceClients initializes all resource-specific clients.
func (c *Client) initializeResourceClients() {
	c.elements = NewElementsClient(c)
	c.hosts = NewHostsClient(c)
	c.groups = NewGroupsClient(c)
	c.engines = NewEnginesClient(c)
}

// loginRequest is the body of the SMC login call.
type loginRequest struct {
	Domain            string `json:"domain"`
	AuthenticationKey string `json:"authenticationkey"`
}

// entryPointList is the envelope of the entry point listing.
type entryPointList struct {
	EntryPoint []smc.Link `json:"entry_point"`
}

// Login authenticates against the SMC and loads the entry point registry.
// The session cookie is stored on the HTTP client and reused by every
// subsequent request.
func (c *Client) Login(ctx context.Context) error {
	loginPath := "/" + c.apiVersion + "/login"

	_, err := c.httpClient.Post(ctx, loginPath, &loginRequest{
		Domain:            c.domain,
		AuthenticationKey: c.config.APIKey,
	})
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	if err := c.loadEntryPoints(ctx); err != nil {
		return err
	}

	c.mu.Lock()
	c.loggedIn = true
	c.mu.Unlock()

	if c.logger != nil {
		c.logger.Info("logged in to SMC", map[string]interface{}{
			"endpoint":    c.config.Endpoint,
			"api_version": c.apiVersion,
			"domain":      c.domain,
		})
	}

	return nil
}

// loadEntryPoints fetches the rel/href registry the SMC exposes for the
// negotiated API version.
func (c *Client) loadEntryPoints(ctx context.Context) error {
	resp, err := c.httpClient.Get(ctx, "/"+c.apiVersion+"/api", nil)
	if err != nil {
		return fmt.Errorf("loading entry points: %w", err)
	}

	var list entryPointList

	err = json.Unmarshal(resp.Body, &list)
	if err != nil {
		return fmt.Errorf("parsing entry points: %w", err)
	}

	entryPoints := make(map[string]string, len(list.EntryPoint))
	for _, link := range list.EntryPoint {
		entryPoints[link.Rel] = link.Href
	}

	c.mu.Lock()
	c.entryPoints = entryPoints
	c.mu.Unlock()

	return nil
}

// Logout invalidates the session server-side and clears local session
// state. Calling Logout without an active session is a no-op.
func (c *Client) Logout(ctx context.Context) error {
	c.mu.Lock()

	if !c.loggedIn {
		c.mu.Unlock()

		return nil
	}

	logoutHref := c.entryPoints[constants.EntryPointLogout]
	c.loggedIn = false
	c.entryPoints = nil
	c.mu.Unlock()

	if logoutHref == "" {
		return nil
	}

	resp, err := c.httpClient.Put(ctx, logoutHref, nil)
	if err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}

	if resp.StatusCode != http.StatusNoContent && c.logger != nil {
		c.logger.Warn("unexpected logout status", map[string]interface{}{
			"status": resp.StatusCode,
		})
	}

	return nil
}

// LoggedIn reports whether the client holds an active session.
func (c *Client) LoggedIn() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.loggedIn
}

// APIVersion returns the negotiated SMC API version.
func (c *Client) APIVersion() string {
	return c.apiVersion
}

// SessionID returns the value of the session cookie for diagnostics. It
// stays readable after logout until the SMC expires the cookie.
func (c *Client) SessionID() string {
	return c.httpClient.Cookie(constants.SessionCookieName)
}

// entryPoint resolves the href of an entry point rel. It is the session
// guard of every operation: without a login there are no entry points.
func (c *Client) entryPoint(rel string) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.loggedIn {
		return "", smc.ErrNotLoggedIn
	}

	href, ok := c.entryPoints[rel]
	if !ok {
		return "", fmt.Errorf("%w: %s", smc.ErrEntryPointNotFound, rel)
	}

	return href, nil
}

// Resource client accessors

// Elements implements smc.Client.Elements.
func (c *Client) Elements() smc.ElementsClient {
	return c.elements
}

// Hosts implements smc.Client.Hosts.
func (c *Client) Hosts() smc.HostsClient {
	return c.hosts
}

// Groups implements smc.Client.Groups.
func (c *Client) Groups() smc.GroupsClient {
	return c.groups
}

// Engines implements smc.Client.Engines.
func (c *Client) Engines() smc.EnginesClient {
	return c.engines
}

// loggerAdapter adapts smc.Logger to the internal http.Logger.
type loggerAdapter struct {
	logger smc.Logger
}

func (l *loggerAdapter) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug(msg, fields)
}

func (l *loggerAdapter) Info(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, fields)
}

func (l *loggerAdapter) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn(msg, fields)
}

func (l *loggerAdapter) Error(msg string, fields map[string]interface{}) {
	l.logger.Error(msg, fields)
}
