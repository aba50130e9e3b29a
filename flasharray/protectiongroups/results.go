/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2024-2026 Pure Storage, Inc. */

package protectiongroups

import (
	"github.com/pure-storage/flasharray-deployment-manager/flasharray"
)

// Extract interprets any commonResult as a ProtectionGroup.
func (r commonResult) Extract() (*ProtectionGroup, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	group, ok := r.Body.(ProtectionGroup)
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

// ErrResult represents the result of a member or target operation.
type ErrResult struct {
	flasharray.ErrResult
}

// Schedule describes a snapshot or replication schedule as reported by the
// array.  Frequency and At are in milliseconds.
type Schedule struct {
	Enabled   bool      `json:"enabled"`
	Frequency int64     `json:"frequency"`
	At        *int64    `json:"at,omitempty"`
	Blackout  *Blackout `json:"blackout,omitempty"`
}

// Blackout is a replication blackout window in milliseconds since midnight.
type Blackout struct {
	Start int64 `json:"start"`
	End   int64 `json:"end"`
}

// Retention describes a snapshot retention policy.
type Retention struct {
	AllForSec int64 `json:"all_for_sec"`
	PerDay    int32 `json:"per_day"`
	Days      int32 `json:"days"`
}

// ProtectionGroup defines the data associated to a single protection group
// instance.
type ProtectionGroup struct {
	// Name is the unique name of the protection group on its array.
	Name string `json:"name"`

	// Destroyed indicates the group is in its eradication pending window.
	Destroyed bool `json:"destroyed"`

	// TimeRemaining is the remaining eradication window in milliseconds.
	// Only present while the group is destroyed.
	TimeRemaining *int64 `json:"time_remaining,omitempty"`

	HostCount      int32 `json:"host_count"`
	HostGroupCount int32 `json:"host_group_count"`
	VolumeCount    int32 `json:"volume_count"`
	TargetCount    int32 `json:"target_count"`

	SnapshotSchedule    Schedule  `json:"snapshot_schedule"`
	ReplicationSchedule Schedule  `json:"replication_schedule"`
	SourceRetention     Retention `json:"source_retention"`
	TargetRetention     Retention `json:"target_retention"`

	// RetentionLock is "ratcheted" once SafeMode has been enabled on the
	// group.  Enabling is a one way transition.
	RetentionLock string `json:"retention_lock"`
}

// Member is a single membership record from one of the member
// sub-collections.
type Member struct {
	Group  MemberRef `json:"group"`
	Member MemberRef `json:"member"`
}

// MemberRef names one side of a membership record.
type MemberRef struct {
	Name string `json:"name"`
}

// Target is a replication target attached to a protection group.
type Target struct {
	Name    string `json:"name"`
	Allowed bool   `json:"allowed"`
}
