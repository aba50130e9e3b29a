/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2024-2026 Pure Storage, Inc. */

package pods

import (
	"context"

	"github.com/pure-storage/flasharray-deployment-manager/flasharray"
)

// Promotion states.
const (
	StatePromoted = "promoted"
	StateDemoted  = "demoted"
)

// ListOpts filters a pod listing.
type ListOpts struct {
	Names        []string `q:"names"`
	ContextNames []string `q:"context_names"`
	Destroyed    *bool    `q:"destroyed"`
}

// PodOpts is the sparse set of pod attributes accepted by the create and
// update operations.
type PodOpts struct {
	Name                    *string        `json:"name,omitempty"`
	FailoverPreferences     []ResourceName `json:"failover_preferences,omitempty"`
	Mediator                *string        `json:"mediator,omitempty"`
	QuotaLimit              *int64         `json:"quota_limit,omitempty"`
	RequestedPromotionState *string        `json:"requested_promotion_state,omitempty"`
	Destroyed               *bool          `json:"destroyed,omitempty"`
}

// StretchOpts controls how a stretch or unstretch request treats in-flight
// I/O.  Quiesce and SkipQuiesce are only honored by arrays that support
// them; callers gate on the REST version before setting either.
type StretchOpts struct {
	Quiesce     *bool
	SkipQuiesce *bool
}

type requestQuery struct {
	Names        []string `q:"names"`
	ContextNames []string `q:"context_names"`
	DestroyContents *bool `q:"destroy_contents"`
}

type stretchQuery struct {
	GroupNames   []string `q:"group_names"`
	MemberNames  []string `q:"member_names"`
	ContextNames []string `q:"context_names"`
	Quiesce      *bool    `q:"quiesce"`
	SkipQuiesce  *bool    `q:"skip_quiesce"`
}

// List returns the pods matching the supplied options.
func List(ctx context.Context, c *flasharray.Client, opts ListOpts) ([]Pod, error) {
	query, err := flasharray.BuildQueryString(opts)
	if err != nil {
		return nil, err
	}

	var s struct {
		Items []Pod `json:"items"`
	}

	_, err = c.Get(ctx, listURL(c)+query, &s, nil)
	if err != nil {
		return nil, err
	}

	return s.Items, nil
}

// Get retrieves a single pod by exact, case sensitive name.
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

// Create provisions a new pod.
func Create(ctx context.Context, c *flasharray.Client, name string, contextNames []string, opts PodOpts) (r CreateResult) {
	query, err := flasharray.BuildQueryString(requestQuery{Names: []string{name}, ContextNames: contextNames})
	if err != nil {
		r.Err = err
		return r
	}

	var s struct {
		Items []Pod `json:"items"`
	}

	_, r.Err = c.Post(ctx, listURL(c)+query, opts, &s, &flasharray.RequestOpts{
		OkCodes: []int{200, 201},
	})
	if r.Err == nil && len(s.Items) > 0 {
		r.Body = s.Items[0]
	}

	return r
}

// Update modifies an existing pod.  Only the non-nil fields in opts are
// sent.
func Update(ctx context.Context, c *flasharray.Client, name string, contextNames []string, opts PodOpts) (r UpdateResult) {
	query, err := flasharray.BuildQueryString(requestQuery{Names: []string{name}, ContextNames: contextNames})
	if err != nil {
		r.Err = err
		return r
	}

	var s struct {
		Items []Pod `json:"items"`
	}

	_, r.Err = c.Patch(ctx, listURL(c)+query, opts, &s, nil)
	if r.Err == nil && len(s.Items) > 0 {
		r.Body = s.Items[0]
	}

	return r
}

// Delete eradicates a destroyed pod.  When destroyContents is true the
// array also eradicates the pod contents in the same operation.
func Delete(ctx context.Context, c *flasharray.Client, name string, contextNames []string, destroyContents *bool) (r DeleteResult) {
	query, err := flasharray.BuildQueryString(requestQuery{
		Names:           []string{name},
		ContextNames:    contextNames,
		DestroyContents: destroyContents,
	})
	if err != nil {
		r.Err = err
		return r
	}

	_, r.Err = c.Delete(ctx, listURL(c)+query, nil)

	return r
}

// Stretch adds an array to the pod, beginning resync of the pod contents to
// the new member.
func Stretch(ctx context.Context, c *flasharray.Client, pod string, array string, contextNames []string, opts StretchOpts) (r ErrResult) {
	query, err := flasharray.BuildQueryString(stretchQuery{
		GroupNames:   []string{pod},
		MemberNames:  []string{array},
		ContextNames: contextNames,
	})
	if err != nil {
		r.Err = err
		return r
	}

	_, r.Err = c.Post(ctx, arraysURL(c)+query, nil, nil, &flasharray.RequestOpts{
		OkCodes: []int{200, 201},
	})

	return r
}

// Unstretch removes an array from the pod.
func Unstretch(ctx context.Context, c *flasharray.Client, pod string, array string, contextNames []string, opts StretchOpts) (r ErrResult) {
	query, err := flasharray.BuildQueryString(stretchQuery{
		GroupNames:   []string{pod},
		MemberNames:  []string{array},
		ContextNames: contextNames,
		Quiesce:      opts.Quiesce,
		SkipQuiesce:  opts.SkipQuiesce,
	})
	if err != nil {
		r.Err = err
		return r
	}

	_, r.Err = c.Delete(ctx, arraysURL(c)+query, nil)

	return r
}
