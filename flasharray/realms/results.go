/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2024-2026 Pure Storage, Inc. */

package realms

import (
	"github.com/pure-storage/flasharray-deployment-manager/flasharray"
)

// Extract interprets any commonResult as a Realm.
func (r commonResult) Extract() (*Realm, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	realm, ok := r.Body.(Realm)
	if !ok {
		return nil, nil
	}
	return &realm, nil
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

// Realm defines the data associated to a single realm instance.
type Realm struct {
	Name string `json:"name"`

	// Destroyed indicates the realm is in its eradication pending window.
	Destroyed bool `json:"destroyed"`

	// TimeRemaining is the remaining eradication window in milliseconds.
	TimeRemaining *int64 `json:"time_remaining,omitempty"`

	// QuotaLimit is the logical size limit of the realm in bytes.
	QuotaLimit *int64 `json:"quota_limit,omitempty"`
}
