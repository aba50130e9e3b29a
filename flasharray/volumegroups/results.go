/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2024-2026 Pure Storage, Inc. */

package volumegroups

import (
	"github.com/pure-storage/flasharray-deployment-manager/flasharray"
)

// Extract interprets any commonResult as a VolumeGroup.
func (r commonResult) Extract() (*VolumeGroup, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	group, ok := r.Body.(VolumeGroup)
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

// QoS reports the configured quality of service limits.  Absent fields mean
// no limit is set.
type QoS struct {
	BandwidthLimit *int64 `json:"bandwidth_limit,omitempty"`
	IopsLimit      *int64 `json:"iops_limit,omitempty"`
}

// PriorityAdjustment reports the configured DMM priority adjustment.
type PriorityAdjustment struct {
	Operator string `json:"priority_adjustment_operator"`
	Value    int32  `json:"priority_adjustment_value"`
}

// VolumeGroup defines the data associated to a single volume group instance.
type VolumeGroup struct {
	Name string `json:"name"`

	// Destroyed indicates the group is in its eradication pending window.
	Destroyed bool `json:"destroyed"`

	// TimeRemaining is the remaining eradication window in milliseconds.
	TimeRemaining *int64 `json:"time_remaining,omitempty"`

	VolumeCount int32 `json:"volume_count"`

	QoS                QoS                `json:"qos"`
	PriorityAdjustment PriorityAdjustment `json:"priority_adjustment"`
}
