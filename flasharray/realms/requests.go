/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2024-2026 Pure Storage, Inc. */

package realms

import (
	"context"

	"github.com/pure-storage/flasharray-deployment-manager/flasharray"
)

// ListOpts filters a realm listing.
type ListOpts struct {
	Names        []string `q:"names"`
	ContextNames []string `q:"context_names"`
	Destroyed    *bool    `q:"destroyed"`
}

// RealmOpts is the sparse set of realm attributes accepted by the create and
// update operations.
type RealmOpts struct {
	Name       *string `json:"name,omitempty"`
	QuotaLimit *int64  `json:"quota_limit,omitempty"`
	Destroyed  *bool   `json:"destroyed,omitempty"`
}

type requestQuery struct {
	Names        []string `q:"names"`
	ContextNames []string `q:"context_names"`
}

// List returns the realms matching the supplied options.
func List(ctx context.Context, c *flasharray.Client, opts ListOpts) ([]Realm, error) {
	query, err := flasharray.BuildQueryString(opts)
	if err != nil {
		return nil, err
	}

	var s struct {
		Items []Realm `json:"items"`
	}

	_, err = c.Get(ctx, listURL(c)+query, &s, nil)
	if err != nil {
		return nil, err
	}

	return s.Items, nil
}

// Get retrieves a single realm by exact, case sensitive name.
func Get(ctx context.Context, c *flasharray.Client, name string, contextNames []string, destroyed *bool) (r GetResult) {
	items, err := List(ctx, c, ListOpts{
		Names:        []string{name},
		ContextNames: contextNames,
		Destroyed:    destroyed,
	})
	if err != nil {
		if flasharray.IsNotFound(err) {
			r.Err = flasharray.NewResourceNotFound(name)
			return r
		}
		if _, ok := err.(flasharray.ErrDefault400); ok {
			r.Err = flasharray.NewResourceNotFound(name)
			return r
		}
		r.Err = err
		return r
	}

	if len(items) == 0 {
		r.Err = flasharray.NewResourceNotFound(name)
		return r
	}

	r.Body = items[0]

	return r
}

// Create provisions a new realm.
func Create(ctx context.Context, c *flasharray.Client, name string, contextNames []string, opts RealmOpts) (r CreateResult) {
	query, err := flasharray.BuildQueryString(requestQuery{Names: []string{name}, ContextNames: contextNames})
	if err != nil {
		r.Err = err
		return r
	}

	var s struct {
		Items []Realm `json:"items"`
	}

	_, r.Err = c.Post(ctx, listURL(c)+query, opts, &s, &flasharray.RequestOpts{
		OkCodes: []int{200, 201},
	})
	if r.Err == nil && len(s.Items) > 0 {
		r.Body = s.Items[0]
	}

	return r
}

// Update modifies an existing realm.
func Update(ctx context.Context, c *flasharray.Client, name string, contextNames []string, opts RealmOpts) (r UpdateResult) {
	query, err := flasharray.BuildQueryString(requestQuery{Names: []string{name}, ContextNames: contextNames})
	if err != nil {
		r.Err = err
		return r
	}

	var s struct {
		Items []Realm `json:"items"`
	}

	_, r.Err = c.Patch(ctx, listURL(c)+query, opts, &s, nil)
	if r.Err == nil && len(s.Items) > 0 {
		r.Body = s.Items[0]
	}

	return r
}

// Delete eradicates a destroyed realm.
func Delete(ctx context.Context, c *flasharray.Client, name string, contextNames []string) (r DeleteResult) {
	query, err := flasharray.BuildQueryString(requestQuery{Names: []string{name}, ContextNames: contextNames})
	if err != nil {
		r.Err = err
		return r
	}

	_, r.Err = c.Delete(ctx, listURL(c)+query, nil)

	return r
}
