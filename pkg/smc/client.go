package smc

import (
	"context"
	"time"
)

// ElementsClient is the generic name/type lookup and removal facility.
type ElementsClient interface {
	// Search runs the generic element search endpoint.
	Search(ctx context.Context, query *SearchQuery) ([]ElementRef, error)
	// Resolve finds elements by name. With exact set, only elements whose
	// name equals name are returned; otherwise the server's substring
	// matches are returned as-is. A miss is an empty slice, not an error.
	Resolve(ctx context.Context, name, typeHint string, exact bool) ([]ElementRef, error)
	// ResolveUnique is Resolve requiring exactly one exact match; zero or
	// multiple matches return a *ResolutionError.
	ResolveUnique(ctx context.Context, name, typeHint string) (*ElementRef, error)
	// Get fetches the raw element body behind an href.
	Get(ctx context.Context, href string) ([]byte, error)
	// Delete deletes the element behind an href.
	Delete(ctx context.Context, href string) error
	// Remove resolves name and deletes it. An ambiguous name fails closed
	// with a *ResolutionError unless opts.All is set, in which case every
	// match is deleted.
	Remove(ctx context.Context, name string, opts *RemoveOptions) error
}

// HostsClient manages host elements.
type HostsClient interface {
	Create(ctx context.Context, request *HostCreateRequest) (*Host, error)
	Get(ctx context.Context, href string) (*Host, error)
	GetByName(ctx context.Context, name string) (*Host, error)
	Update(ctx context.Context, href string, request *HostUpdateRequest) (*Host, error)
	Delete(ctx context.Context, href string) error
}

// GroupsClient manages group elements.
type GroupsClient interface {
	Create(ctx context.Context, request *GroupCreateRequest) (*Group, error)
	Get(ctx context.Context, href string) (*Group, error)
	Update(ctx context.Context, href string, request *GroupUpdateRequest) (*Group, error)
	Delete(ctx context.Context, href string) error
}

// EnginesClient manages firewall engine elements.
type EnginesClient interface {
	// CreateSingleFirewall creates a single firewall and optionally binds
	// a license. See FirewallCreateResult for the partial-success contract.
	CreateSingleFirewall(ctx context.Context, request *FirewallCreateRequest) (*FirewallCreateResult, error)
	Get(ctx context.Context, href string) (*Engine, error)
	// RemoveSingleFirewall resolves a single firewall by name, releases
	// its license when one is bound, and deletes the engine.
	RemoveSingleFirewall(ctx context.Context, name string) error
}

// SessionClient exposes the session lifecycle.
type SessionClient interface {
	// Logout invalidates the session server-side and clears local session
	// state. Safe to call when no session is active.
	Logout(ctx context.Context) error
	// LoggedIn reports whether the client holds an active session.
	LoggedIn() bool
	// APIVersion is the negotiated SMC API version.
	APIVersion() string
	// SessionID returns the current session cookie value for diagnostics,
	// or an empty string when no session cookie is held.
	SessionID() string
}

// Client is the full SMC API client surface.
type Client interface {
	SessionClient

	Elements() ElementsClient
	Hosts() HostsClient
	Groups() GroupsClient
	Engines() EnginesClient
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building an smc.Client.
//
// Endpoint and APIKey are required. The constructor in pkg/smcclient
// normalizes the endpoint (trims a trailing slash, defaults the scheme to
// https), discovers the API version from "<endpoint>/api" unless APIVersion
// pins one, and logs in before returning.
type Config struct {
	// Endpoint is the base URL of the SMC (e.g. "http://smc.example.com:8082").
	Endpoint string `mapstructure:"url"`
	// APIKey is the authentication key of the API client created in the SMC.
	APIKey string `mapstructure:"api_key"`
	// APIVersion pins the SMC API version (e.g. "6.5"); empty means the
	// newest version the server advertises.
	APIVersion string `mapstructure:"api_version"`
	// Domain is the administrative domain to log in to; empty means the
	// Shared Domain.
	Domain string `mapstructure:"domain"`

	// HTTPTimeout bounds each HTTP request; context deadlines still apply.
	HTTPTimeout time.Duration `mapstructure:"timeout"`
	// RetryMax caps transport retries for transient failures (5xx, 429,
	// connection errors). 0 keeps the default.
	RetryMax int `mapstructure:"retry_max"`
	// RetryWaitMin is the minimum backoff between retries.
	RetryWaitMin time.Duration `mapstructure:"retry_wait_min"`
	// RetryWaitMax is the maximum backoff between retries.
	RetryWaitMax time.Duration `mapstructure:"retry_wait_max"`
	// SkipTLSVerify disables TLS certificate verification. Not recommended;
	// prefer a CA bundle trusted by the system.
	SkipTLSVerify bool `mapstructure:"skip_tls_verify"`
	// UserAgent overrides the default User-Agent header.
	UserAgent string `mapstructure:"user_agent"`

	// Debug enables verbose HTTP request/response logging when a Logger
	// is provided.
	Debug bool `mapstructure:"debug"`
	// Logger is an optional structured logger used by the HTTP layer.
	Logger Logger `mapstructure:"-"`
}
