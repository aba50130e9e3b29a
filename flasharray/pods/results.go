/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2024-2026 Pure Storage, Inc. */

package pods

import (
	"github.com/pure-storage/flasharray-deployment-manager/flasharray"
)

// Extract interprets any commonResult as a Pod.
func (r commonResult) Extract() (*Pod, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	pod, ok := r.Body.(Pod)
	if !ok {
		return nil, nil
	}
	return &pod, nil
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

// ErrResult represents the result of a stretch or unstretch operation.
type ErrResult struct {
	flasharray.ErrResult
}

// ResourceName is a reference to another array resource by name.
type ResourceName struct {
	Name string `json:"name"`
}

// PodArray is the status of one member array of a stretched pod.
type PodArray struct {
	Name   string `json:"name"`
	Status string `json:"status"`

	// PreElected indicates the array pre-elected to remain online when the
	// mediator is unreachable.
	PreElected bool `json:"pre_elected"`
}

// Pod defines the data associated to a single pod instance.
type Pod struct {
	// Name is the unique name of the pod within the fleet context.
	Name string `json:"name"`

	// Destroyed indicates the pod is in its eradication pending window.
	Destroyed bool `json:"destroyed"`

	// TimeRemaining is the remaining eradication window in milliseconds.
	TimeRemaining *int64 `json:"time_remaining,omitempty"`

	// Arrays lists the member arrays the pod is stretched across.
	Arrays []PodArray `json:"arrays"`

	// FailoverPreferences orders the arrays preferred to remain online
	// after a split.
	FailoverPreferences []ResourceName `json:"failover_preferences"`

	// Mediator is the failover mediator configured for the pod.
	Mediator string `json:"mediator"`

	// MediatorVersion is reported by arrays which have contacted the
	// mediator at least once.
	MediatorVersion *string `json:"mediator_version,omitempty"`

	// PromotionStatus is either "promoted" or "demoted".
	PromotionStatus string `json:"promotion_status"`

	// RequestedPromotionState mirrors the last requested promotion change
	// while it is still being applied.
	RequestedPromotionState string `json:"requested_promotion_state"`

	// QuotaLimit is the logical size limit of the pod in bytes.
	QuotaLimit *int64 `json:"quota_limit,omitempty"`

	// LinkSourceCount and LinkTargetCount describe pod replica links.
	LinkSourceCount int32 `json:"link_source_count"`
	LinkTargetCount int32 `json:"link_target_count"`

	ArrayCount int32 `json:"array_count"`
}
