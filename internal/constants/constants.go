package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for quick operations such as API
	// version discovery.
	ShortHTTPTimeout = 10 * time.Second
)

// Retry limits for the transport layer. The SMC can answer 503 under
// heavy database activity, so retries default to a small budget.
const (
	// DefaultRetryMax is the default maximum number of retries.
	DefaultRetryMax = 3

	// DefaultRetryWaitMin is the minimum wait time between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 10 * time.Second
)

// SMC protocol details.
const (
	// SessionCookieName is the cookie the SMC issues on login.
	SessionCookieName = "JSESSIONID"

	// DefaultDomain is the administrative domain used when none is given.
	DefaultDomain = "Shared Domain"

	// DefaultUserAgent identifies the library to the SMC.
	DefaultUserAgent = "smc-go"
)

// Entry point rels used by the resource clients.
const (
	EntryPointLogin    = "login"
	EntryPointLogout   = "logout"
	EntryPointElements = "elements"
	EntryPointHost     = "host"
	EntryPointGroup    = "group"
	EntryPointSingleFW = "single_fw"
)

// Engine link rels for license handling.
const (
	LinkBind   = "bind"
	LinkUnbind = "unbind"
	LinkSelf   = "self"
)
