/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2024-2026 Pure Storage, Inc. */

package protectiongroups

import (
	"context"

	"github.com/pure-storage/flasharray-deployment-manager/flasharray"
)

// Retention lock modes.
const (
	RetentionLockRatcheted = "ratcheted"
	RetentionLockUnlocked  = "unlocked"
)

// Member endpoint suffixes.  The array manages each membership class through
// its own sub-collection.
const (
	MemberVolumes    = "volumes"
	MemberHosts      = "hosts"
	MemberHostGroups = "host-groups"
)

// ListOpts filters a protection group listing.
type ListOpts struct {
	Names        []string `q:"names"`
	ContextNames []string `q:"context_names"`
	Destroyed    *bool    `q:"destroyed"`
}

// ScheduleOpts carries the modifiable attributes of a snapshot or
// replication schedule.  Frequencies and at-times are expressed in
// milliseconds, matching the wire format.
type ScheduleOpts struct {
	Enabled   *bool  `json:"enabled,omitempty"`
	Frequency *int64 `json:"frequency,omitempty"`
	At        *int64 `json:"at,omitempty"`
	Blackout  *struct {
		Start int64 `json:"start"`
		End   int64 `json:"end"`
	} `json:"blackout,omitempty"`
}

// RetentionOpts carries the modifiable attributes of a retention policy.
type RetentionOpts struct {
	AllForSec *int64 `json:"all_for_sec,omitempty"`
	PerDay    *int32 `json:"per_day,omitempty"`
	Days      *int32 `json:"days,omitempty"`
}

// GroupOpts is the sparse set of protection group attributes accepted by the
// create and update operations.  Nil fields are omitted from the request.
type GroupOpts struct {
	Name                *string        `json:"name,omitempty"`
	SnapshotSchedule    *ScheduleOpts  `json:"snapshot_schedule,omitempty"`
	ReplicationSchedule *ScheduleOpts  `json:"replication_schedule,omitempty"`
	SourceRetention     *RetentionOpts `json:"source_retention,omitempty"`
	TargetRetention     *RetentionOpts `json:"target_retention,omitempty"`
	RetentionLock       *string        `json:"retention_lock,omitempty"`
	Destroyed           *bool          `json:"destroyed,omitempty"`
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

// List returns the protection groups matching the supplied options.
func List(ctx context.Context, c *flasharray.Client, opts ListOpts) ([]ProtectionGroup, error) {
	query, err := flasharray.BuildQueryString(opts)
	if err != nil {
		return nil, err
	}

	var s struct {
		Items []ProtectionGroup `json:"items"`
	}

	_, err = c.Get(ctx, listURL(c)+query, &s, nil)
	if err != nil {
		return nil, err
	}

	return s.Items, nil
}

// Get retrieves a single protection group by exact name.  Name matching is
// case sensitive.  A missing group is reported as ErrResourceNotFound rather
// than an error sentinel from the transport.
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
			// The array reports an unknown name on this endpoint as a 400.
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

// Create provisions a new protection group.
func Create(ctx context.Context, c *flasharray.Client, name string, contextNames []string, opts GroupOpts) (r CreateResult) {
	query, err := flasharray.BuildQueryString(requestQuery{Names: []string{name}, ContextNames: contextNames})
	if err != nil {
		r.Err = err
		return r
	}

	var s struct {
		Items []ProtectionGroup `json:"items"`
	}

	_, r.Err = c.Post(ctx, listURL(c)+query, opts, &s, &flasharray.RequestOpts{
		OkCodes: []int{200, 201},
	})
	if r.Err == nil && len(s.Items) > 0 {
		r.Body = s.Items[0]
	}

	return r
}

// Update modifies an existing protection group.  Only the non-nil fields in
// opts are sent.
func Update(ctx context.Context, c *flasharray.Client, name string, contextNames []string, opts GroupOpts) (r UpdateResult) {
	query, err := flasharray.BuildQueryString(requestQuery{Names: []string{name}, ContextNames: contextNames})
	if err != nil {
		r.Err = err
		return r
	}

	var s struct {
		Items []ProtectionGroup `json:"items"`
	}

	_, r.Err = c.Patch(ctx, listURL(c)+query, opts, &s, nil)
	if r.Err == nil && len(s.Items) > 0 {
		r.Body = s.Items[0]
	}

	return r
}

// Delete eradicates a destroyed protection group.  The group must already be
// in the destroyed state.
func Delete(ctx context.Context, c *flasharray.Client, name string, contextNames []string) (r DeleteResult) {
	query, err := flasharray.BuildQueryString(requestQuery{Names: []string{name}, ContextNames: contextNames})
	if err != nil {
		r.Err = err
		return r
	}

	_, r.Err = c.Delete(ctx, listURL(c)+query, nil)

	return r
}

// ListMembers returns the member names of the given class currently in the
// group.
func ListMembers(ctx context.Context, c *flasharray.Client, group string, memberType string, contextNames []string) ([]string, error) {
	query, err := flasharray.BuildQueryString(memberQuery{GroupNames: []string{group}, ContextNames: contextNames})
	if err != nil {
		return nil, err
	}

	var s struct {
		Items []Member `json:"items"`
	}

	_, err = c.Get(ctx, memberURL(c, memberType)+query, &s, nil)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(s.Items))
	for _, item := range s.Items {
		names = append(names, item.Member.Name)
	}

	return names, nil
}

// AddMembers adds the named members of the given class to the group.
func AddMembers(ctx context.Context, c *flasharray.Client, group string, memberType string, members []string, contextNames []string) (r ErrResult) {
	query, err := flasharray.BuildQueryString(memberQuery{
		GroupNames:   []string{group},
		MemberNames:  members,
		ContextNames: contextNames,
	})
	if err != nil {
		r.Err = err
		return r
	}

	_, r.Err = c.Post(ctx, memberURL(c, memberType)+query, nil, nil, &flasharray.RequestOpts{
		OkCodes: []int{200, 201},
	})

	return r
}

// RemoveMembers removes the named members of the given class from the group.
func RemoveMembers(ctx context.Context, c *flasharray.Client, group string, memberType string, members []string, contextNames []string) (r ErrResult) {
	query, err := flasharray.BuildQueryString(memberQuery{
		GroupNames:   []string{group},
		MemberNames:  members,
		ContextNames: contextNames,
	})
	if err != nil {
		r.Err = err
		return r
	}

	_, r.Err = c.Delete(ctx, memberURL(c, memberType)+query, nil)

	return r
}

// ListTargets returns the replication targets configured on the group.
func ListTargets(ctx context.Context, c *flasharray.Client, group string, contextNames []string) ([]Target, error) {
	query, err := flasharray.BuildQueryString(memberQuery{GroupNames: []string{group}, ContextNames: contextNames})
	if err != nil {
		return nil, err
	}

	var s struct {
		Items []Target `json:"items"`
	}

	_, err = c.Get(ctx, targetsURL(c)+query, &s, nil)
	if err != nil {
		return nil, err
	}

	return s.Items, nil
}

// AddTargets adds replication targets to the group.
func AddTargets(ctx context.Context, c *flasharray.Client, group string, targets []string, contextNames []string) (r ErrResult) {
	query, err := flasharray.BuildQueryString(memberQuery{
		GroupNames:   []string{group},
		MemberNames:  targets,
		ContextNames: contextNames,
	})
	if err != nil {
		r.Err = err
		return r
	}

	_, r.Err = c.Post(ctx, targetsURL(c)+query, nil, nil, &flasharray.RequestOpts{
		OkCodes: []int{200, 201},
	})

	return r
}

// RemoveTargets removes replication targets from the group.
func RemoveTargets(ctx context.Context, c *flasharray.Client, group string, targets []string, contextNames []string) (r ErrResult) {
	query, err := flasharray.BuildQueryString(memberQuery{
		GroupNames:   []string{group},
		MemberNames:  targets,
		ContextNames: contextNames,
	})
	if err != nil {
		r.Err = err
		return r
	}

	_, r.Err = c.Delete(ctx, targetsURL(c)+query, nil)

	return r
}
