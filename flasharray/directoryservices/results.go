/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2024-2026 Pure Storage, Inc. */

package directoryservices

import (
	"github.com/pure-storage/flasharray-deployment-manager/flasharray"
)

// Extract interprets any commonResult as a DirectoryService.
func (r commonResult) Extract() (*DirectoryService, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	service, ok := r.Body.(DirectoryService)
	if !ok {
		return nil, nil
	}
	return &service, nil
}

type commonResult struct {
	flasharray.Result
}

// GetResult represents the result of a get operation.
type GetResult struct {
	commonResult
}

// UpdateResult represents the result of an update operation.
type UpdateResult struct {
	commonResult
}

// Management reports the management-role specific attributes.
type Management struct {
	UserLoginAttribute string `json:"user_login_attribute"`
	UserObject         string `json:"user_object"`
}

// DirectoryService defines the directory service configuration of one role.
type DirectoryService struct {
	// Name is the role: "management" or "data".
	Name string `json:"name"`

	Enabled bool `json:"enabled"`

	URIs     []string `json:"uris"`
	BaseDN   string   `json:"base_dn"`
	BindUser string   `json:"bind_user"`

	CheckPeer bool `json:"check_peer"`

	Management *Management `json:"management,omitempty"`
}
