/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2024-2026 Pure Storage, Inc. */

package workloads

import (
	"github.com/pure-storage/flasharray-deployment-manager/flasharray"
)

// Extract interprets any commonResult as a Workload.
func (r commonResult) Extract() (*Workload, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	workload, ok := r.Body.(Workload)
	if !ok {
		return nil, nil
	}
	return &workload, nil
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

// ResourceName is a reference to another array resource by name.
type ResourceName struct {
	Name string `json:"name"`
}

// Workload defines the data associated to a single workload instance.
type Workload struct {
	Name string `json:"name"`

	// Preset names the preset the workload was instantiated from.
	Preset ResourceName `json:"preset"`

	// Status is the provisioning status of the workload.
	Status string `json:"status"`

	// Parameters are the effective parameter assignments, including preset
	// defaults.
	Parameters []Parameter `json:"parameters"`

	// Destroyed indicates the workload is in its eradication pending
	// window.
	Destroyed bool `json:"destroyed"`

	// TimeRemaining is the remaining eradication window in milliseconds.
	TimeRemaining *int64 `json:"time_remaining,omitempty"`
}

// PresetParameter is a parameter declaration on a preset, with its default.
type PresetParameter struct {
	Name    string  `json:"name"`
	Type    string  `json:"type"`
	Default *string `json:"default,omitempty"`
}

// Preset defines a workload preset and its parameter defaults.
type Preset struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Parameters  []PresetParameter `json:"parameters"`
}
