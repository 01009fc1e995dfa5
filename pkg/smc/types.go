package smc

// ElementRef is the descriptor the SMC returns from a generic element
// search: enough to identify the element and fetch or delete it by href.
type ElementRef struct {
	Href string `json:"href" yaml:"href"`
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
}

// SearchResult is the envelope of the generic element search endpoint.
type SearchResult struct {
	Result []ElementRef `json:"result" yaml:"result"`
}

// Link represents a single rel/href pair inside an element body.
type Link struct {
	Rel  string `json:"rel"            yaml:"rel"`
	Href string `json:"href"           yaml:"href"`
	Type string `json:"type,omitempty" yaml:"type,omitempty"`
}

// Links represents the "link" list the SMC embeds in element bodies.
type Links []Link

// Find returns the href for the given rel, or ErrLinkNotFound.
func (l Links) Find(rel string) (string, error) {
	for _, link := range l {
		if link.Rel == rel {
			return link.Href, nil
		}
	}

	return "", ErrLinkNotFound
}

// Element carries the fields shared by every SMC element body.
type Element struct {
	Name    string `json:"name"              yaml:"name"`
	Comment string `json:"comment,omitempty" yaml:"comment,omitempty"`
	Links   Links  `json:"link,omitempty"    yaml:"link,omitempty"`

	// Href is the element location. It is not part of the JSON body; the
	// client fills it from the Location header on create or from the
	// reference used to fetch the element.
	Href string `json:"-" yaml:"href,omitempty"`
}

// Host represents a host element.
type Host struct {
	Element

	Address            string   `json:"address"                   yaml:"address"`
	IPv6Address        string   `json:"ipv6_address,omitempty"    yaml:"ipv6_address,omitempty"`
	SecondaryAddresses []string `json:"secondary,omitempty"       yaml:"secondary,omitempty"`
}

// HostCreateRequest represents a request to create a host element.
type HostCreateRequest struct {
	// Name is the element name (unique within the SMC).
	Name string `json:"name" yaml:"name"`
	// Address is the primary IPv4 address.
	Address string `json:"address" yaml:"address"`
	// IPv6Address optionally sets an IPv6 address alongside Address.
	IPv6Address string `json:"ipv6_address,omitempty" yaml:"ipv6_address,omitempty"`
	// SecondaryAddresses optionally lists additional addresses.
	SecondaryAddresses []string `json:"secondary,omitempty" yaml:"secondary,omitempty"`
	// Comment is free-form text stored on the element.
	Comment string `json:"comment,omitempty" yaml:"comment,omitempty"`
}

// HostUpdateRequest represents a full-element update for a host. The SMC
// replaces the element on PUT, so all fields that should survive the update
// must be set.
type HostUpdateRequest struct {
	Name               string   `json:"name"                   yaml:"name"`
	Address            string   `json:"address"                yaml:"address"`
	IPv6Address        string   `json:"ipv6_address,omitempty" yaml:"ipv6_address,omitempty"`
	SecondaryAddresses []string `json:"secondary,omitempty"    yaml:"secondary,omitempty"`
	Comment            string   `json:"comment,omitempty"      yaml:"comment,omitempty"`
}

// Group represents a group element. Members are element hrefs.
type Group struct {
	Element

	Members []string `json:"element,omitempty" yaml:"element,omitempty"`
}

// GroupCreateRequest represents a request to create a group element.
// Members are element names; each is resolved to an href before the create
// request is issued, and any name that does not resolve to exactly one
// element fails the whole call.
type GroupCreateRequest struct {
	Name    string   `json:"name"              yaml:"name"`
	Members []string `json:"members,omitempty" yaml:"members,omitempty"`
	Comment string   `json:"comment,omitempty" yaml:"comment,omitempty"`
}

// GroupUpdateRequest replaces a group's membership. Members are element
// names, resolved the same way as on create.
type GroupUpdateRequest struct {
	Name    string   `json:"name"              yaml:"name"`
	Members []string `json:"members,omitempty" yaml:"members,omitempty"`
	Comment string   `json:"comment,omitempty" yaml:"comment,omitempty"`
}

// FirewallNode is a single engine node of a firewall.
type FirewallNode struct {
	Name         string `json:"name"          yaml:"name"`
	NodeID       int    `json:"nodeid"        yaml:"nodeid"`
	ActivateTest bool   `json:"activate_test" yaml:"activate_test"`
	Disabled     bool   `json:"disabled"      yaml:"disabled"`
}

// NodeEntry wraps a node by its SMC type key.
type NodeEntry struct {
	FirewallNode *FirewallNode `json:"firewall_node,omitempty" yaml:"firewall_node,omitempty"`
}

// SingleNodeInterface is the management-capable interface of a single
// firewall node.
type SingleNodeInterface struct {
	Address      string `json:"address"       yaml:"address"`
	NetworkValue string `json:"network_value" yaml:"network_value"`
	NodeID       int    `json:"nodeid"        yaml:"nodeid"`
	PrimaryMgt   bool   `json:"primary_mgt"   yaml:"primary_mgt"`
	AuthRequest  bool   `json:"auth_request"  yaml:"auth_request"`
	Outgoing     bool   `json:"outgoing"      yaml:"outgoing"`
}

// InterfaceEntry wraps an interface by its SMC type key.
type InterfaceEntry struct {
	SingleNodeInterface *SingleNodeInterface `json:"single_node_interface,omitempty" yaml:"single_node_interface,omitempty"`
}

// PhysicalInterface is one physical interface with its logical interfaces.
type PhysicalInterface struct {
	InterfaceID string           `json:"interface_id" yaml:"interface_id"`
	Interfaces  []InterfaceEntry `json:"interfaces"   yaml:"interfaces"`
}

// PhysicalInterfaceEntry wraps a physical interface by its SMC type key.
type PhysicalInterfaceEntry struct {
	PhysicalInterface *PhysicalInterface `json:"physical_interface,omitempty" yaml:"physical_interface,omitempty"`
}

// DomainServerAddress is a ranked DNS server entry on an engine.
type DomainServerAddress struct {
	Rank  int    `json:"rank"  yaml:"rank"`
	Value string `json:"value" yaml:"value"`
}

// Engine represents a firewall engine element (single_fw).
type Engine struct {
	Element

	Nodes               []NodeEntry              `json:"nodes,omitempty"                 yaml:"nodes,omitempty"`
	PhysicalInterfaces  []PhysicalInterfaceEntry `json:"physicalInterfaces,omitempty"    yaml:"physicalInterfaces,omitempty"`
	DomainServerAddress []DomainServerAddress    `json:"domain_server_address,omitempty" yaml:"domain_server_address,omitempty"`
	LogServerRef        string                   `json:"log_server_ref,omitempty"        yaml:"log_server_ref,omitempty"`
}

// FirewallCreateRequest represents a request to create a single firewall
// with one management interface.
type FirewallCreateRequest struct {
	// Name is the engine name (unique within the SMC).
	Name string `json:"name" yaml:"name"`
	// MgmtIP is the address of the management interface.
	MgmtIP string `json:"mgmt_ip" yaml:"mgmt_ip"`
	// MgmtNetwork is the network of the management interface in CIDR form.
	MgmtNetwork string `json:"mgmt_network" yaml:"mgmt_network"`
	// InterfaceID selects the physical interface; defaults to "0".
	InterfaceID string `json:"interface_id,omitempty" yaml:"interface_id,omitempty"`
	// DNS optionally lists DNS servers, ranked in order.
	DNS []string `json:"dns,omitempty" yaml:"dns,omitempty"`
	// LogServerRef optionally points the engine at a log server element.
	LogServerRef string `json:"log_server_ref,omitempty" yaml:"log_server_ref,omitempty"`
	// License requests a license bind after the engine is created.
	License bool `json:"license,omitempty" yaml:"license,omitempty"`
	// Comment is free-form text stored on the element.
	Comment string `json:"comment,omitempty" yaml:"comment,omitempty"`
}

// FirewallCreateResult reports the outcome of the two-phase single
// firewall creation. The engine create and the license bind are separate
// SMC calls and there is no rollback: when the bind fails the engine stays
// created, the call returns a nil error and LicenseError carries the
// failure so callers can compensate.
type FirewallCreateResult struct {
	// Engine is the created engine, always set on any non-error return.
	Engine *Engine
	// Licensed is true when a license bind was requested and succeeded.
	Licensed bool
	// LicenseError is the bind failure, nil when no bind was requested or
	// the bind succeeded.
	LicenseError error
}

// PartialSuccess reports whether the engine was created but the requested
// license bind failed.
func (r *FirewallCreateResult) PartialSuccess() bool {
	return r != nil && r.Engine != nil && r.LicenseError != nil
}

// RemoveOptions constrains generic element removal.
type RemoveOptions struct {
	// Type narrows resolution to one element type (filter_context).
	Type string
	// All deletes every element matching the name instead of failing
	// closed when the name is ambiguous.
	All bool
}
