package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/smc-go/smc/internal/constants"
	"github.com/smc-go/smc/pkg/smc"
)

// EnginesClient implements smc.EnginesClient. Single firewall creation is
// a two-phase operation against the SMC: create the engine element, then
// bind a license through the engine's bind link. There is no rollback; see
// smc.FirewallCreateResult.
type EnginesClient struct {
	session *Client
}

// NewEnginesClient creates a new engines client.
func NewEnginesClient(session *Client) *EnginesClient {
	return &EnginesClient{session: session}
}

// buildSingleFirewall assembles the engine payload for a single firewall
// with one management interface.
func buildSingleFirewall(request *smc.FirewallCreateRequest) *smc.Engine {
	interfaceID := request.InterfaceID
	if interfaceID == "" {
		interfaceID = "0"
	}

	engine := &smc.Engine{
		Element: smc.Element{
			Name:    request.Name,
			Comment: request.Comment,
		},
		Nodes: []smc.NodeEntry{
			{
				FirewallNode: &smc.FirewallNode{
					Name:         request.Name + " node 1",
					NodeID:       1,
					ActivateTest: true,
				},
			},
		},
		PhysicalInterfaces: []smc.PhysicalInterfaceEntry{
			{
				PhysicalInterface: &smc.PhysicalInterface{
					InterfaceID: interfaceID,
					Interfaces: []smc.InterfaceEntry{
						{
							SingleNodeInterface: &smc.SingleNodeInterface{
								Address:      request.MgmtIP,
								NetworkValue: request.MgmtNetwork,
								NodeID:       1,
								PrimaryMgt:   true,
								AuthRequest:  true,
								Outgoing:     true,
							},
						},
					},
				},
			},
		},
		LogServerRef: request.LogServerRef,
	}

	for i, dns := range request.DNS {
		engine.DomainServerAddress = append(engine.DomainServerAddress, smc.DomainServerAddress{
			Rank:  i + 1,
			Value: dns,
		})
	}

	return engine
}

// CreateSingleFirewall implements smc.EnginesClient.CreateSingleFirewall.
func (c *EnginesClient) CreateSingleFirewall(ctx context.Context, request *smc.FirewallCreateRequest) (*smc.FirewallCreateResult, error) {
	if request.Name == "" {
		return nil, smc.ErrNameRequired
	}

	if request.MgmtIP == "" {
		return nil, smc.ErrMgmtIPRequired
	}

	if request.MgmtNetwork == "" {
		return nil, smc.ErrMgmtNetworkRequired
	}

	href, err := c.session.entryPoint(constants.EntryPointSingleFW)
	if err != nil {
		return nil, err
	}

	engine := buildSingleFirewall(request)

	resp, err := c.session.httpClient.Post(ctx, href, engine)
	if err != nil {
		return nil, fmt.Errorf("creating single firewall: %w", err)
	}

	location := resp.Location()
	if location == "" {
		return nil, smc.ErrMissingLocation
	}

	engine.Href = location
	result := &smc.FirewallCreateResult{Engine: engine}

	if !request.License {
		return result, nil
	}

	// Phase two. The engine exists from here on, so a bind failure is
	// reported on the result instead of the call error.
	result.LicenseError = c.bindLicense(ctx, engine)
	result.Licensed = result.LicenseError == nil

	return result, nil
}

// bindLicense fetches the created engine to learn its action links and
// POSTs the bind link.
func (c *EnginesClient) bindLicense(ctx context.Context, engine *smc.Engine) error {
	created, err := c.Get(ctx, engine.Href)
	if err != nil {
		return fmt.Errorf("fetching engine for license bind: %w", err)
	}

	engine.Links = created.Links

	bindHref, err := created.Links.Find(constants.LinkBind)
	if err != nil {
		return fmt.Errorf("locating bind link: %w", err)
	}

	_, err = c.session.httpClient.Post(ctx, bindHref, nil)
	if err != nil {
		return fmt.Errorf("binding license: %w", err)
	}

	return nil
}

// Get implements smc.EnginesClient.Get.
func (c *EnginesClient) Get(ctx context.Context, href string) (*smc.Engine, error) {
	body, err := c.session.elements.Get(ctx, href)
	if err != nil {
		return nil, err
	}

	var engine smc.Engine

	err = json.Unmarshal(body, &engine)
	if err != nil {
		return nil, fmt.Errorf("parsing engine: %w", err)
	}

	engine.Href = href

	return &engine, nil
}

// RemoveSingleFirewall implements smc.EnginesClient.RemoveSingleFirewall.
// A bound license is released through the unbind link before the engine
// element is deleted, per the SMC engine lifecycle.
func (c *EnginesClient) RemoveSingleFirewall(ctx context.Context, name string) error {
	ref, err := c.session.elements.ResolveUnique(ctx, name, constants.EntryPointSingleFW)
	if err != nil {
		return err
	}

	engine, err := c.Get(ctx, ref.Href)
	if err != nil {
		return err
	}

	// A missing unbind link means no license is bound.
	if unbindHref, err := engine.Links.Find(constants.LinkUnbind); err == nil {
		if _, err := c.session.httpClient.Post(ctx, unbindHref, nil); err != nil {
			return fmt.Errorf("releasing license: %w", err)
		}
	}

	return c.session.elements.Delete(ctx, ref.Href)
}
