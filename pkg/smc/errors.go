package smc

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError represents a non-2xx response from the SMC.
type APIError struct {
	StatusCode int      `json:"status"            yaml:"status"`
	Message    string   `json:"message"           yaml:"message"`
	Details    []string `json:"details,omitempty" yaml:"details,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if len(e.Details) > 0 {
		return fmt.Sprintf("%s: %s (status: %d)", e.Message, strings.Join(e.Details, "; "), e.StatusCode)
	}

	return fmt.Sprintf("%s (status: %d)", e.Message, e.StatusCode)
}

// ResolutionKind classifies why a name lookup could not produce a
// unique element.
type ResolutionKind string

const (
	// ResolutionNotFound means the lookup matched nothing.
	ResolutionNotFound ResolutionKind = "not_found"

	// ResolutionAmbiguous means the lookup matched more than one element.
	ResolutionAmbiguous ResolutionKind = "ambiguous"
)

// ResolutionError is returned when a unique element was required but the
// lookup returned zero or multiple matches.
type ResolutionError struct {
	Name    string
	Type    string
	Kind    ResolutionKind
	Matches []ElementRef
}

// Error implements the error interface.
func (e *ResolutionError) Error() string {
	kind := "no element found"
	if e.Kind == ResolutionAmbiguous {
		kind = fmt.Sprintf("%d elements found", len(e.Matches))
	}

	if e.Type != "" {
		return fmt.Sprintf("resolving %q (type %s): %s", e.Name, e.Type, kind)
	}

	return fmt.Sprintf("resolving %q: %s", e.Name, kind)
}

// Common static errors that can be wrapped with context.
var (
	ErrConfigRequired      = errors.New("config is required")
	ErrEndpointRequired    = errors.New("SMC endpoint is required")
	ErrAPIKeyRequired      = errors.New("SMC API key is required")
	ErrNotLoggedIn         = errors.New("no active SMC session, login required")
	ErrNoAPIVersions       = errors.New("no API versions advertised by the SMC")
	ErrVersionNotSupported = errors.New("requested API version not supported by the SMC")
	ErrEntryPointNotFound  = errors.New("entry point not found")
	ErrLinkNotFound        = errors.New("resource link not found")
	ErrMissingLocation     = errors.New("create response did not include a Location header")
	ErrNameRequired        = errors.New("element name is required")
	ErrAddressRequired     = errors.New("host address is required")
	ErrMgmtIPRequired      = errors.New("management IP is required")
	ErrMgmtNetworkRequired = errors.New("management network is required")
)

// ParseAPIError builds an APIError from an SMC error body. The SMC answers
// with a JSON object carrying message/details; anything unparseable falls
// back to the raw body text.
func ParseAPIError(statusCode int, body []byte) *APIError {
	apiErr := APIError{}
	if err := json.Unmarshal(body, &apiErr); err != nil || apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(body))
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(statusCode)
		}
	}

	apiErr.StatusCode = statusCode

	return &apiErr
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}

	resErr := &ResolutionError{}
	if errors.As(err, &resErr) {
		return resErr.Kind == ResolutionNotFound
	}

	return false
}

// IsUnauthorized checks if the error indicates a rejected or expired session.
func IsUnauthorized(err error) bool {
	if errors.Is(err, ErrNotLoggedIn) {
		return true
	}

	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusUnauthorized
	}

	return false
}

// IsDuplicate checks if the error means an element with the same name
// already exists. The SMC signals this with 409, and some versions with a
// 400 carrying a duplicate message.
func IsDuplicate(err error) bool {
	apiErr := &APIError{}
	if !errors.As(err, &apiErr) {
		return false
	}

	if apiErr.StatusCode == http.StatusConflict {
		return true
	}

	return apiErr.StatusCode == http.StatusBadRequest &&
		strings.Contains(strings.ToLower(apiErr.Message), "already exists")
}

// IsResolution checks if the error is a name resolution failure.
func IsResolution(err error) bool {
	resErr := &ResolutionError{}

	return errors.As(err, &resErr)
}
