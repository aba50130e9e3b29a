/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2024-2026 Pure Storage, Inc. */

package filesystems

import (
	"github.com/pure-storage/flasharray-deployment-manager/flasharray"
)

// Extract interprets any commonResult as a FileSystem.
func (r commonResult) Extract() (*FileSystem, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	fs, ok := r.Body.(FileSystem)
	if !ok {
		return nil, nil
	}
	return &fs, nil
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

// FileSystem defines the data associated to a single managed directory
// parent file system.
type FileSystem struct {
	Name string `json:"name"`

	// Destroyed indicates the file system is in its eradication pending
	// window.
	Destroyed bool `json:"destroyed"`

	// TimeRemaining is the remaining eradication window in milliseconds.
	TimeRemaining *int64 `json:"time_remaining,omitempty"`

	// Created is the creation timestamp in milliseconds since the epoch.
	Created int64 `json:"created"`
}
