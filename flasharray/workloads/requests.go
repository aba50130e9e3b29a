/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2024-2026 Pure Storage, Inc. */

package workloads

import (
	"context"

	"github.com/pure-storage/flasharray-deployment-manager/flasharray"
)

// ListOpts filters a workload listing.
type ListOpts struct {
	Names        []string `q:"names"`
	ContextNames []string `q:"context_names"`
	Destroyed    *bool    `q:"destroyed"`
}

// Parameter is a single preset parameter assignment.
type Parameter struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// CreateOpts carries the attributes needed to instantiate a workload from a
// preset.
type CreateOpts struct {
	Preset     ResourceName `json:"preset"`
	Parameters []Parameter  `json:"parameters,omitempty"`
}

// WorkloadOpts is the sparse set of workload attributes accepted by the
// update operation.
type WorkloadOpts struct {
	Name      *string `json:"name,omitempty"`
	Destroyed *bool   `json:"destroyed,omitempty"`
}

type requestQuery struct {
	Names        []string `q:"names"`
	ContextNames []string `q:"context_names"`
}

// List returns the workloads matching the supplied options.
func List(ctx context.Context, c *flasharray.Client, opts ListOpts) ([]Workload, error) {
	query, err := flasharray.BuildQueryString(opts)
	if err != nil {
		return nil, err
	}

	var s struct {
		Items []Workload `json:"items"`
	}

	_, err = c.Get(ctx, listURL(c)+query, &s, nil)
	if err != nil {
		return nil, err
	}

	return s.Items, nil
}

// Get retrieves a single workload by exact, case sensitive name.
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

// Create instantiates a new workload from a preset.
func Create(ctx context.Context, c *flasharray.Client, name string, contextNames []string, opts CreateOpts) (r CreateResult) {
	query, err := flasharray.BuildQueryString(requestQuery{Names: []string{name}, ContextNames: contextNames})
	if err != nil {
		r.Err = err
		return r
	}

	var s struct {
		Items []Workload `json:"items"`
	}

	_, r.Err = c.Post(ctx, listURL(c)+query, opts, &s, &flasharray.RequestOpts{
		OkCodes: []int{200, 201},
	})
	if r.Err == nil && len(s.Items) > 0 {
		r.Body = s.Items[0]
	}

	return r
}

// Update modifies an existing workload.
func Update(ctx context.Context, c *flasharray.Client, name string, contextNames []string, opts WorkloadOpts) (r UpdateResult) {
	query, err := flasharray.BuildQueryString(requestQuery{Names: []string{name}, ContextNames: contextNames})
	if err != nil {
		r.Err = err
		return r
	}

	var s struct {
		Items []Workload `json:"items"`
	}

	_, r.Err = c.Patch(ctx, listURL(c)+query, opts, &s, nil)
	if r.Err == nil && len(s.Items) > 0 {
		r.Body = s.Items[0]
	}

	return r
}

// Delete eradicates a destroyed workload.
func Delete(ctx context.Context, c *flasharray.Client, name string, contextNames []string) (r DeleteResult) {
	query, err := flasharray.BuildQueryString(requestQuery{Names: []string{name}, ContextNames: contextNames})
	if err != nil {
		r.Err = err
		return r
	}

	_, r.Err = c.Delete(ctx, listURL(c)+query, nil)

	return r
}

// GetPreset retrieves a workload preset and its parameter defaults.
func GetPreset(ctx context.Context, c *flasharray.Client, name string, contextNames []string) (*Preset, error) {
	query, err := flasharray.BuildQueryString(requestQuery{Names: []string{name}, ContextNames: contextNames})
	if err != nil {
		return nil, err
	}

	var s struct {
		Items []Preset `json:"items"`
	}

	_, err = c.Get(ctx, presetsURL(c)+query, &s, nil)
	if err != nil {
		if _, ok := err.(flasharray.ErrDefault400); ok {
			return nil, flasharray.NewResourceNotFound(name)
		}
		return nil, err
	}

	if len(s.Items) == 0 {
		return nil, flasharray.NewResourceNotFound(name)
	}

	return &s.Items[0], nil
}
