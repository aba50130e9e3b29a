/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2024-2026 Pure Storage, Inc. */

package networkinterfaces

import (
	"github.com/pure-storage/flasharray-deployment-manager/flasharray"
)

// Extract interprets any commonResult as a NetworkInterface.
func (r commonResult) Extract() (*NetworkInterface, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	iface, ok := r.Body.(NetworkInterface)
	if !ok {
		return nil, nil
	}
	return &iface, nil
}

type commonResult struct {
	flasharray.Result
}

// GetResult represents the result of a get operation.
type GetResult struct {
	commonResult
}

// CreateResult represents the result of a create operation.
type CreateResult struct {
	commonResult
}

// UpdateResult represents the result of an update operation.
type UpdateResult struct {
	commonResult
}

// DeleteResult represents the result of a delete operation.
type DeleteResult struct {
	flasharray.ErrResult
}

// Eth reports the ethernet attributes of an interface.
type Eth struct {
	Address       *string  `json:"address,omitempty"`
	Netmask       *string  `json:"netmask,omitempty"`
	Gateway       *string  `json:"gateway,omitempty"`
	MACAddress    string   `json:"mac_address"`
	MTU           int32    `json:"mtu"`
	Subtype       string   `json:"subtype"`
	Subinterfaces []string `json:"subinterfaces,omitempty"`
	Subnet        *string  `json:"subnet,omitempty"`
	VLAN          *int32   `json:"vlan,omitempty"`
}

// NetworkInterface defines the data associated to a single network
// interface instance.
type NetworkInterface struct {
	Name string `json:"name"`

	// Enabled reports whether the interface is administratively up.
	Enabled bool `json:"enabled"`

	// InterfaceType is "eth" or "fc".
	InterfaceType string `json:"interface_type"`

	// Services lists the service roles bound to this interface.
	Services []string `json:"services"`

	// Speed is the negotiated speed in bits per second.
	Speed int64 `json:"speed"`

	Eth *Eth `json:"eth,omitempty"`
}
