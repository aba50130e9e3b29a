/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2024-2026 Pure Storage, Inc. */

package networkinterfaces

import (
	"context"

	"github.com/pure-storage/flasharray-deployment-manager/flasharray"
)

// Interface types.
const (
	TypeEthernet = "eth"
	TypeFibre    = "fc"
)

// Ethernet subtypes.
const (
	SubtypePhysical     = "physical"
	SubtypeVif          = "vif"
	SubtypeLacpBond     = "lacpbond"
	SubtypeVlan         = "vlan"
)

// Interface services.
const (
	ServiceManagement  = "management"
	ServiceReplication = "replication"
	ServiceISCSI       = "iscsi"
	ServiceNVMeTCP     = "nvme-tcp"
	ServiceFile        = "file"
)

// ClearAddress is the sentinel used to remove the address assignment from
// an interface.
const ClearAddress = "0.0.0.0/0"

// ListOpts filters an interface listing.
type ListOpts struct {
	Names        []string `q:"names"`
	ContextNames []string `q:"context_names"`
}

// EthOpts carries the modifiable ethernet attributes of an interface.
type EthOpts struct {
	Address       *string  `json:"address,omitempty"`
	Netmask       *string  `json:"netmask,omitempty"`
	Gateway       *string  `json:"gateway,omitempty"`
	MTU           *int32   `json:"mtu,omitempty"`
	Subtype       *string  `json:"subtype,omitempty"`
	Subinterfaces []string `json:"subinterfaces,omitempty"`
	Subnet        *string  `json:"subnet,omitempty"`
	VLAN          *int32   `json:"vlan,omitempty"`
}

// InterfaceOpts is the sparse set of interface attributes accepted by the
// create and update operations.
type InterfaceOpts struct {
	Name     *string  `json:"name,omitempty"`
	Enabled  *bool    `json:"enabled,omitempty"`
	Services []string `json:"services,omitempty"`
	Eth      *EthOpts `json:"eth,omitempty"`
}

type requestQuery struct {
	Names        []string `q:"names"`
	ContextNames []string `q:"context_names"`
}

// List returns the network interfaces matching the supplied options.
func List(ctx context.Context, c *flasharray.Client, opts ListOpts) ([]NetworkInterface, error) {
	query, err := flasharray.BuildQueryString(opts)
	if err != nil {
		return nil, err
	}

	var s struct {
		Items []NetworkInterface `json:"items"`
	}

	_, err = c.Get(ctx, listURL(c)+query, &s, nil)
	if err != nil {
		return nil, err
	}

	return s.Items, nil
}

// Get retrieves a single interface by exact, case sensitive name.
func Get(ctx context.Context, c *flasharray.Client, name string, contextNames []string) (r GetResult) {
	items, err := List(ctx, c, ListOpts{Names: []string{name}, ContextNames: contextNames})
	if err != nil {
		if flasharray.IsNotFound(err) {
			r.Err = flasharray.NewResourceNotFound(name)
			return r
		}
		if _, ok := err.(flasharray.ErrDefault400); ok {
			r.Err = flasharray.NewResourceNotFound(name)
			return r
		}
		r.Err = err
		return r
	}

	if len(items) == 0 {
		r.Err = flasharray.NewResourceNotFound(name)
		return r
	}

	r.Body = items[0]

	return r
}

// Create provisions a new virtual interface.  Physical interfaces exist as
// hardware and can only be updated.
func Create(ctx context.Context, c *flasharray.Client, name string, contextNames []string, opts InterfaceOpts) (r CreateResult) {
	query, err := flasharray.BuildQueryString(requestQuery{Names: []string{name}, ContextNames: contextNames})
	if err != nil {
		r.Err = err
		return r
	}

	var s struct {
		Items []NetworkInterface `json:"items"`
	}

	_, r.Err = c.Post(ctx, listURL(c)+query, opts, &s, &flasharray.RequestOpts{
		OkCodes: []int{200, 201},
	})
	if r.Err == nil && len(s.Items) > 0 {
		r.Body = s.Items[0]
	}

	return r
}

// Update modifies an existing interface.
func Update(ctx context.Context, c *flasharray.Client, name string, contextNames []string, opts InterfaceOpts) (r UpdateResult) {
	query, err := flasharray.BuildQueryString(requestQuery{Names: []string{name}, ContextNames: contextNames})
	if err != nil {
		r.Err = err
		return r
	}

	var s struct {
		Items []NetworkInterface `json:"items"`
	}

	_, r.Err = c.Patch(ctx, listURL(c)+query, opts, &s, nil)
	if r.Err == nil && len(s.Items) > 0 {
		r.Body = s.Items[0]
	}

	return r
}

// Delete removes a virtual interface.
func Delete(ctx context.Context, c *flasharray.Client, name string, contextNames []string) (r DeleteResult) {
	query, err := flasharray.BuildQueryString(requestQuery{Names: []string{name}, ContextNames: contextNames})
	if err != nil {
		r.Err = err
		return r
	}

	_, r.Err = c.Delete(ctx, listURL(c)+query, nil)

	return r
}
