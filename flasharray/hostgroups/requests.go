/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2024-2026 Pure Storage, Inc. */

package hostgroups

import (
	"context"

	"github.com/pure-storage/flasharray-deployment-manager/flasharray"
)

// ListOpts filters a host group listing.
type ListOpts struct {
	Names        []string `q:"names"`
	ContextNames []string `q:"context_names"`
}

// GroupOpts is the sparse set of host group attributes accepted by the
// create and update operations.
type GroupOpts struct {
	Name *string `json:"name,omitempty"`
}

// ConnectionOpts carries the attributes of a volume connection.
type ConnectionOpts struct {
	LUN *int32 `json:"lun,omitempty"`
}

type requestQuery struct {
	Names        []string `q:"names"`
	ContextNames []string `q:"context_names"`
}

type memberQuery struct {
	GroupNames   []string `q:"group_names"`
	MemberNames  []string `q:"member_names"`
	ContextNames []string `q:"context_names"`
}

type connectionQuery struct {
	HostGroupNames []string `q:"host_group_names"`
	VolumeNames    []string `q:"volume_names"`
	ContextNames   []string `q:"context_names"`
}

// List returns the host groups matching the supplied options.
func List(ctx context.Context, c *flasharray.Client, opts ListOpts) ([]HostGroup, error) {
	query, err := flasharray.BuildQueryString(opts)
	if err != nil {
		return nil, err
	}

	var s struct {
		Items []HostGroup `json:"items"`
	}

	_, err = c.Get(ctx, listURL(c)+query, &s, nil)
	if err != nil {
		return nil, err
	}

	return s.Items, nil
}

// Get retrieves a single host group by exact, case sensitive name.
func Get(ctx context.Context, c *flasharray.Client, name string, contextNames []string) (r GetResult) {
	items, err := List(ctx, c, ListOpts{Names: []string{name}, ContextNames: contextNames})
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

// Create provisions a new host group.
func Create(ctx context.Context, c *flasharray.Client, name string, contextNames []string) (r CreateResult) {
	query, err := flasharray.BuildQueryString(requestQuery{Names: []string{name}, ContextNames: contextNames})
	if err != nil {
		r.Err = err
		return r
	}

	var s struct {
		Items []HostGroup `json:"items"`
	}

	_, r.Err = c.Post(ctx, listURL(c)+query, nil, &s, &flasharray.RequestOpts{
		OkCodes: []int{200, 201},
	})
	if r.Err == nil && len(s.Items) > 0 {
		r.Body = s.Items[0]
	}

	return r
}

// Update modifies an existing host group.  Renaming is the only modifiable
// attribute on the group object itself.
func Update(ctx context.Context, c *flasharray.Client, name string, contextNames []string, opts GroupOpts) (r UpdateResult) {
	query, err := flasharray.BuildQueryString(requestQuery{Names: []string{name}, ContextNames: contextNames})
	if err != nil {
		r.Err = err
		return r
	}

	var s struct {
		Items []HostGroup `json:"items"`
	}

	_, r.Err = c.Patch(ctx, listURL(c)+query, opts, &s, nil)
	if r.Err == nil && len(s.Items) > 0 {
		r.Body = s.Items[0]
	}

	return r
}

// Delete removes a host group.  The group must have no members or volume
// connections; callers disconnect members first.
func Delete(ctx context.Context, c *flasharray.Client, name string, contextNames []string) (r DeleteResult) {
	query, err := flasharray.BuildQueryString(requestQuery{Names: []string{name}, ContextNames: contextNames})
	if err != nil {
		r.Err = err
		return r
	}

	_, r.Err = c.Delete(ctx, listURL(c)+query, nil)

	return r
}

// ListHosts returns the member host names of a group.
func ListHosts(ctx context.Context, c *flasharray.Client, group string, contextNames []string) ([]string, error) {
	query, err := flasharray.BuildQueryString(memberQuery{GroupNames: []string{group}, ContextNames: contextNames})
	if err != nil {
		return nil, err
	}

	var s struct {
		Items []Member `json:"items"`
	}

	_, err = c.Get(ctx, hostsURL(c)+query, &s, nil)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(s.Items))
	for _, item := range s.Items {
		names = append(names, item.Member.Name)
	}

	return names, nil
}

// AddHosts adds member hosts to a group.
func AddHosts(ctx context.Context, c *flasharray.Client, group string, hosts []string, contextNames []string) (r ErrResult) {
	query, err := flasharray.BuildQueryString(memberQuery{
		GroupNames:   []string{group},
		MemberNames:  hosts,
		ContextNames: contextNames,
	})
	if err != nil {
		r.Err = err
		return r
	}

	_, r.Err = c.Post(ctx, hostsURL(c)+query, nil, nil, &flasharray.RequestOpts{
		OkCodes: []int{200, 201},
	})

	return r
}

// RemoveHosts removes member hosts from a group.
func RemoveHosts(ctx context.Context, c *flasharray.Client, group string, hosts []string, contextNames []string) (r ErrResult) {
	query, err := flasharray.BuildQueryString(memberQuery{
		GroupNames:   []string{group},
		MemberNames:  hosts,
		ContextNames: contextNames,
	})
	if err != nil {
		r.Err = err
		return r
	}

	_, r.Err = c.Delete(ctx, hostsURL(c)+query, nil)

	return r
}

// ListConnections returns the volumes connected to a group.
func ListConnections(ctx context.Context, c *flasharray.Client, group string, contextNames []string) ([]Connection, error) {
	query, err := flasharray.BuildQueryString(connectionQuery{
		HostGroupNames: []string{group},
		ContextNames:   contextNames,
	})
	if err != nil {
		return nil, err
	}

	var s struct {
		Items []Connection `json:"items"`
	}

	_, err = c.Get(ctx, connectionsURL(c)+query, &s, nil)
	if err != nil {
		return nil, err
	}

	return s.Items, nil
}

// Connect attaches a volume to every host in the group.
func Connect(ctx context.Context, c *flasharray.Client, group string, volume string, contextNames []string, opts ConnectionOpts) (r ErrResult) {
	query, err := flasharray.BuildQueryString(connectionQuery{
		HostGroupNames: []string{group},
		VolumeNames:    []string{volume},
		ContextNames:   contextNames,
	})
	if err != nil {
		r.Err = err
		return r
	}

	var body interface{}
	if opts.LUN != nil {
		body = opts
	}

	_, r.Err = c.Post(ctx, connectionsURL(c)+query, body, nil, &flasharray.RequestOpts{
		OkCodes: []int{200, 201},
	})

	return r
}

// Disconnect detaches a volume from every host in the group.
func Disconnect(ctx context.Context, c *flasharray.Client, group string, volume string, contextNames []string) (r ErrResult) {
	query, err := flasharray.BuildQueryString(connectionQuery{
		HostGroupNames: []string{group},
		VolumeNames:    []string{volume},
		ContextNames:   contextNames,
	})
	if err != nil {
		r.Err = err
		return r
	}

	_, r.Err = c.Delete(ctx, connectionsURL(c)+query, nil)

	return r
}
