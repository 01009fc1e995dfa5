package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/smc-go/smc/internal/constants"
	"github.com/smc-go/smc/pkg/smc"
)

// ElementsClient implements smc.ElementsClient: the generic name/type
// lookup used by every multi-step operation, plus removal by name.
type ElementsClient struct {
	session *Client
}

// NewElementsClient creates a new elements client.
func NewElementsClient(session *Client) *ElementsClient {
	return &ElementsClient{session: session}
}

// Search implements smc.ElementsClient.Search.
func (c *ElementsClient) Search(ctx context.Context, query *smc.SearchQuery) ([]smc.ElementRef, error) {
	href, err := c.session.entryPoint(constants.EntryPointElements)
	if err != nil {
		return nil, err
	}

	resp, err := c.session.httpClient.Get(ctx, href, query.ToValues())
	if err != nil {
		return nil, fmt.Errorf("searching elements: %w", err)
	}

	var result smc.SearchResult

	err = json.Unmarshal(resp.Body, &result)
	if err != nil {
		return nil, fmt.Errorf("parsing search result: %w", err)
	}

	return result.Result, nil
}

// Resolve implements smc.ElementsClient.Resolve. The SMC's filter matches
// across the element definition, so exact resolution still requires a
// client-side name comparison on top of the server's exact_match hint.
func (c *ElementsClient) Resolve(ctx context.Context, name, typeHint string, exact bool) ([]smc.ElementRef, error) {
	query := smc.NewSearchQuery(name).WithExactMatch(exact)
	if typeHint != "" {
		query = query.WithType(typeHint)
	}

	refs, err := c.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	if !exact {
		return refs, nil
	}

	matches := make([]smc.ElementRef, 0, len(refs))

	for _, ref := range refs {
		if ref.Name == name {
			matches = append(matches, ref)
		}
	}

	return matches, nil
}

// ResolveUnique implements smc.ElementsClient.ResolveUnique.
func (c *ElementsClient) ResolveUnique(ctx context.Context, name, typeHint string) (*smc.ElementRef, error) {
	refs, err := c.Resolve(ctx, name, typeHint, true)
	if err != nil {
		return nil, err
	}

	switch len(refs) {
	case 0:
		return nil, &smc.ResolutionError{Name: name, Type: typeHint, Kind: smc.ResolutionNotFound}
	case 1:
		return &refs[0], nil
	default:
		return nil, &smc.ResolutionError{
			Name:    name,
			Type:    typeHint,
			Kind:    smc.ResolutionAmbiguous,
			Matches: refs,
		}
	}
}

// Get implements smc.ElementsClient.Get.
func (c *ElementsClient) Get(ctx context.Context, href string) ([]byte, error) {
	if err := c.requireSession(); err != nil {
		return nil, err
	}

	resp, err := c.session.httpClient.Get(ctx, href, nil)
	if err != nil {
		return nil, fmt.Errorf("getting element: %w", err)
	}

	return resp.Body, nil
}

// Delete implements smc.ElementsClient.Delete.
func (c *ElementsClient) Delete(ctx context.Context, href string) error {
	if err := c.requireSession(); err != nil {
		return err
	}

	_, err := c.session.httpClient.Delete(ctx, href)
	if err != nil {
		return fmt.Errorf("deleting element: %w", err)
	}

	return nil
}

// Remove implements smc.ElementsClient.Remove. An ambiguous name fails
// closed unless opts.All is set.
func (c *ElementsClient) Remove(ctx context.Context, name string, opts *smc.RemoveOptions) error {
	if opts == nil {
		opts = &smc.RemoveOptions{}
	}

	if !opts.All {
		ref, err := c.ResolveUnique(ctx, name, opts.Type)
		if err != nil {
			return err
		}

		return c.Delete(ctx, ref.Href)
	}

	refs, err := c.Resolve(ctx, name, opts.Type, true)
	if err != nil {
		return err
	}

	if len(refs) == 0 {
		return &smc.ResolutionError{Name: name, Type: opts.Type, Kind: smc.ResolutionNotFound}
	}

	for _, ref := range refs {
		if err := c.Delete(ctx, ref.Href); err != nil {
			return fmt.Errorf("removing %q: %w", ref.Name, err)
		}
	}

	return nil
}

// requireSession guards href-direct operations that bypass entry point
// lookup.
func (c *ElementsClient) requireSession() error {
	if !c.session.LoggedIn() {
		return smc.ErrNotLoggedIn
	}

	return nil
}
