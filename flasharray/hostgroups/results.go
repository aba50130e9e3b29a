/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2024-2026 Pure Storage, Inc. */

package hostgroups

import (
	"github.com/pure-storage/flasharray-deployment-manager/flasharray"
)

// Extract interprets any commonResult as a HostGroup.
func (r commonResult) Extract() (*HostGroup, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	group, ok := r.Body.(HostGroup)
	if !ok {
		return nil, nil
	}
	return &group, nil
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

// ErrResult represents the result of a member or connection operation.
type ErrResult struct {
	flasharray.ErrResult
}

// HostGroup defines the data associated to a single host group instance.
type HostGroup struct {
	Name string `json:"name"`

	HostCount       int32 `json:"host_count"`
	ConnectionCount int32 `json:"connection_count"`
}

// Member is a single host membership record.
type Member struct {
	Group  MemberRef `json:"group"`
	Member MemberRef `json:"member"`
}

// MemberRef names one side of a membership record.
type MemberRef struct {
	Name string `json:"name"`
}

// Connection is a single host group to volume connection.
type Connection struct {
	HostGroup MemberRef `json:"host_group"`
	Volume    MemberRef `json:"volume"`
	LUN       int32     `json:"lun"`
}
