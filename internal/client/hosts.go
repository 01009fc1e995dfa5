package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/smc-go/smc/internal/constants"
	"github.com/smc-go/smc/pkg/smc"
)

// HostsClient implements smc.HostsClient.
type HostsClient struct {
	session *Client
}

// NewHostsClient creates a new hosts client.
func NewHostsClient(session *Client) *HostsClient {
	return &HostsClient{session: session}
}

// Create implements smc.HostsClient.Create. Duplicate names are enforced
// server-side; check smc.IsDuplicate on the returned error.
func (c *HostsClient) Create(ctx context.Context, request *smc.HostCreateRequest) (*smc.Host, error) {
	if request.Name == "" {
		return nil, smc.ErrNameRequired
	}

	if request.Address == "" {
		return nil, smc.ErrAddressRequired
	}

	href, err := c.session.entryPoint(constants.EntryPointHost)
	if err != nil {
		return nil, err
	}

	host := smc.Host{
		Element: smc.Element{
			Name:    request.Name,
			Comment: request.Comment,
		},
		Address:            request.Address,
		IPv6Address:        request.IPv6Address,
		SecondaryAddresses: request.SecondaryAddresses,
	}

	resp, err := c.session.httpClient.Post(ctx, href, &host)
	if err != nil {
		return nil, fmt.Errorf("creating host: %w", err)
	}

	location := resp.Location()
	if location == "" {
		return nil, smc.ErrMissingLocation
	}

	host.Href = location

	return &host, nil
}

// Get implements smc.HostsClient.Get.
func (c *HostsClient) Get(ctx context.Context, href string) (*smc.Host, error) {
	body, err := c.session.elements.Get(ctx, href)
	if err != nil {
		return nil, err
	}

	var host smc.Host

	err = json.Unmarshal(body, &host)
	if err != nil {
		return nil, fmt.Errorf("parsing host: %w", err)
	}

	host.Href = href

	return &host, nil
}

// GetByName implements smc.HostsClient.GetByName.
func (c *HostsClient) GetByName(ctx context.Context, name string) (*smc.Host, error) {
	ref, err := c.session.elements.ResolveUnique(ctx, name, constants.EntryPointHost)
	if err != nil {
		return nil, err
	}

	return c.Get(ctx, ref.Href)
}

// Update implements smc.HostsClient.Update. The SMC replaces the element
// on PUT, so the request must carry every field that should survive.
func (c *HostsClient) Update(ctx context.Context, href string, request *smc.HostUpdateRequest) (*smc.Host, error) {
	if err := c.session.elements.requireSession(); err != nil {
		return nil, err
	}

	_, err := c.session.httpClient.Put(ctx, href, request)
	if err != nil {
		return nil, fmt.Errorf("updating host: %w", err)
	}

	return c.Get(ctx, href)
}

// Delete implements smc.HostsClient.Delete.
func (c *HostsClient) Delete(ctx context.Context, href string) error {
	return c.session.elements.Delete(ctx, href)
}
