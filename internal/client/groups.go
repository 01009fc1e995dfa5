package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/smc-go/smc/internal/constants"
	"github.com/smc-go/smc/pkg/smc"
)

// GroupsClient implements smc.GroupsClient. Group membership is stored as
// element hrefs; the client resolves member names before any create or
// update request is issued, so an unresolvable member never produces a
// half-built group.
type GroupsClient struct {
	session *Client
}

// NewGroupsClient creates a new groups client.
func NewGroupsClient(session *Client) *GroupsClient {
	return &GroupsClient{session: session}
}

// resolveMembers maps member names to hrefs, failing on the first name
// that does not resolve to exactly one element.
func (c *GroupsClient) resolveMembers(ctx context.Context, members []string) ([]string, error) {
	if len(members) == 0 {
		return nil, nil
	}

	hrefs := make([]string, 0, len(members))

	for _, member := range members {
		ref, err := c.session.elements.ResolveUnique(ctx, member, "")
		if err != nil {
			return nil, fmt.Errorf("resolving group member: %w", err)
		}

		hrefs = append(hrefs, ref.Href)
	}

	return hrefs, nil
}

// Create implements smc.GroupsClient.Create.
func (c *GroupsClient) Create(ctx context.Context, request *smc.GroupCreateRequest) (*smc.Group, error) {
	if request.Name == "" {
		return nil, smc.ErrNameRequired
	}

	href, err := c.session.entryPoint(constants.EntryPointGroup)
	if err != nil {
		return nil, err
	}

	members, err := c.resolveMembers(ctx, request.Members)
	if err != nil {
		return nil, err
	}

	group := smc.Group{
		Element: smc.Element{
			Name:    request.Name,
			Comment: request.Comment,
		},
		Members: members,
	}

	resp, err := c.session.httpClient.Post(ctx, href, &group)
	if err != nil {
		return nil, fmt.Errorf("creating group: %w", err)
	}

	location := resp.Location()
	if location == "" {
		return nil, smc.ErrMissingLocation
	}

	group.Href = location

	return &group, nil
}

// Get implements smc.GroupsClient.Get.
func (c *GroupsClient) Get(ctx context.Context, href string) (*smc.Group, error) {
	body, err := c.session.elements.Get(ctx, href)
	if err != nil {
		return nil, err
	}

	var group smc.Group

	err = json.Unmarshal(body, &group)
	if err != nil {
		return nil, fmt.Errorf("parsing group: %w", err)
	}

	group.Href = href

	return &group, nil
}

// Update implements smc.GroupsClient.Update. Membership is replaced, not
// merged.
func (c *GroupsClient) Update(ctx context.Context, href string, request *smc.GroupUpdateRequest) (*smc.Group, error) {
	if err := c.session.elements.requireSession(); err != nil {
		return nil, err
	}

	members, err := c.resolveMembers(ctx, request.Members)
	if err != nil {
		return nil, err
	}

	group := smc.Group{
		Element: smc.Element{
			Name:    request.Name,
			Comment: request.Comment,
		},
		Members: members,
	}

	_, err = c.session.httpClient.Put(ctx, href, &group)
	if err != nil {
		return nil, fmt.Errorf("updating group: %w", err)
	}

	return c.Get(ctx, href)
}

// Delete implements smc.GroupsClient.Delete.
func (c *GroupsClient) Delete(ctx context.Context, href string) error {
	return c.session.elements.Delete(ctx, href)
}
