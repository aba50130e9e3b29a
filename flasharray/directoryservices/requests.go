/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2024-2026 Pure Storage, Inc. */

package directoryservices

import (
	"context"

	"github.com/pure-storage/flasharray-deployment-manager/flasharray"
)

// Directory service roles.  The array exposes one pre-existing directory
// service configuration per role; roles are patched, never created or
// deleted.
const (
	RoleManagement = "management"
	RoleData       = "data"
)

// ListOpts filters a directory service listing.
type ListOpts struct {
	Names        []string `q:"names"`
	ContextNames []string `q:"context_names"`
}

// ManagementOpts carries the management-role specific attributes.
type ManagementOpts struct {
	UserLoginAttribute *string  `json:"user_login_attribute,omitempty"`
	UserObject         *string  `json:"user_object,omitempty"`
}

// ServiceOpts is the sparse set of directory service attributes accepted by
// the update operation.  Clearing the configuration is expressed with empty
// non-nil values.
type ServiceOpts struct {
	Enabled      *bool           `json:"enabled,omitempty"`
	URIs         []string        `json:"uris,omitempty"`
	BaseDN       *string         `json:"base_dn,omitempty"`
	BindUser     *string         `json:"bind_user,omitempty"`
	BindPassword *string         `json:"bind_password,omitempty"`
	CheckPeer    *bool           `json:"check_peer,omitempty"`
	Certificate  *string         `json:"ca_certificate,omitempty"`
	Management   *ManagementOpts `json:"management,omitempty"`
}

type requestQuery struct {
	Names        []string `q:"names"`
	ContextNames []string `q:"context_names"`
}

// List returns the directory service role configurations.
func List(ctx context.Context, c *flasharray.Client, opts ListOpts) ([]DirectoryService, error) {
	query, err := flasharray.BuildQueryString(opts)
	if err != nil {
		return nil, err
	}

	var s struct {
		Items []DirectoryService `json:"items"`
	}

	_, err = c.Get(ctx, listURL(c)+query, &s, nil)
	if err != nil {
		return nil, err
	}

	return s.Items, nil
}

// Get retrieves the configuration of a single role.
func Get(ctx context.Context, c *flasharray.Client, role string, contextNames []string) (r GetResult) {
	items, err := List(ctx, c, ListOpts{Names: []string{role}, ContextNames: contextNames})
	if err != nil {
		if flasharray.IsNotFound(err) {
			r.Err = flasharray.NewResourceNotFound(role)
			return r
		}
		if _, ok := err.(flasharray.ErrDefault400); ok {
			r.Err = flasharray.NewResourceNotFound(role)
			return r
		}
		r.Err = err
		return r
	}

	if len(items) == 0 {
		r.Err = flasharray.NewResourceNotFound(role)
		return r
	}

	r.Body = items[0]

	return r
}

// Update modifies the configuration of a role.
func Update(ctx context.Context, c *flasharray.Client, role string, contextNames []string, opts ServiceOpts) (r UpdateResult) {
	query, err := flasharray.BuildQueryString(requestQuery{Names: []string{role}, ContextNames: contextNames})
	if err != nil {
		r.Err = err
		return r
	}

	var s struct {
		Items []DirectoryService `json:"items"`
	}

	_, r.Err = c.Patch(ctx, listURL(c)+query, opts, &s, nil)
	if r.Err == nil && len(s.Items) > 0 {
		r.Body = s.Items[0]
	}

	return r
}
