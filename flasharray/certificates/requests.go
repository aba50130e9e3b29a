/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2024-2026 Pure Storage, Inc. */

package certificates

import (
	"context"

	"github.com/pure-storage/flasharray-deployment-manager/flasharray"
)

// Certificate statuses.
const (
	StatusSelfSigned = "self-signed"
	StatusImported   = "imported"
)

const (
	DefaultKeySize = 2048
	DefaultDays    = 3650
)

// ListOpts filters a certificate listing.
type ListOpts struct {
	Names        []string `q:"names"`
	ContextNames []string `q:"context_names"`
}

// CertificateOpts is the sparse set of certificate attributes accepted by
// the create and update operations.  Generation attributes (common name,
// organization fields, key size, days) apply to self-signed certificates;
// Certificate/IntermediateCertificate/Key apply to imports.  The two sets
// are mutually exclusive.
type CertificateOpts struct {
	CommonName         *string `json:"common_name,omitempty"`
	Country            *string `json:"country,omitempty"`
	Email              *string `json:"email,omitempty"`
	KeySize            *int32  `json:"key_size,omitempty"`
	Locality           *string `json:"locality,omitempty"`
	Organization       *string `json:"organization,omitempty"`
	OrganizationalUnit *string `json:"organizational_unit,omitempty"`
	State              *string `json:"state,omitempty"`
	Days               *int32  `json:"days,omitempty"`

	Certificate             *string `json:"certificate,omitempty"`
	IntermediateCertificate *string `json:"intermediate_certificate,omitempty"`
	Key                     *string `json:"key,omitempty"`
	Passphrase              *string `json:"passphrase,omitempty"`

	Status *string `json:"status,omitempty"`
	Name   *string `json:"name,omitempty"`
}

type requestQuery struct {
	Names        []string `q:"names"`
	ContextNames []string `q:"context_names"`
}

// List returns the certificates matching the supplied options.
func List(ctx context.Context, c *flasharray.Client, opts ListOpts) ([]Certificate, error) {
	query, err := flasharray.BuildQueryString(opts)
	if err != nil {
		return nil, err
	}

	var s struct {
		Items []Certificate `json:"items"`
	}

	_, err = c.Get(ctx, listURL(c)+query, &s, nil)
	if err != nil {
		return nil, err
	}

	return s.Items, nil
}

// Get retrieves a single certificate by exact, case sensitive name.
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

// Create generates a self-signed certificate or imports an external one
// under the given name.
func Create(ctx context.Context, c *flasharray.Client, name string, contextNames []string, opts CertificateOpts) (r CreateResult) {
	query, err := flasharray.BuildQueryString(requestQuery{Names: []string{name}, ContextNames: contextNames})
	if err != nil {
		r.Err = err
		return r
	}

	var s struct {
		Items []Certificate `json:"items"`
	}

	_, r.Err = c.Post(ctx, listURL(c)+query, opts, &s, &flasharray.RequestOpts{
		OkCodes: []int{200, 201},
	})
	if r.Err == nil && len(s.Items) > 0 {
		r.Body = s.Items[0]
	}

	return r
}

// Update regenerates or re-imports an existing certificate.
func Update(ctx context.Context, c *flasharray.Client, name string, contextNames []string, opts CertificateOpts) (r UpdateResult) {
	query, err := flasharray.BuildQueryString(requestQuery{Names: []string{name}, ContextNames: contextNames})
	if err != nil {
		r.Err = err
		return r
	}

	var s struct {
		Items []Certificate `json:"items"`
	}

	_, r.Err = c.Patch(ctx, listURL(c)+query, opts, &s, nil)
	if r.Err == nil && len(s.Items) > 0 {
		r.Body = s.Items[0]
	}

	return r
}

// Delete removes a certificate.  Certificates have no recoverable window.
func Delete(ctx context.Context, c *flasharray.Client, name string, contextNames []string) (r DeleteResult) {
	query, err := flasharray.BuildQueryString(requestQuery{Names: []string{name}, ContextNames: contextNames})
	if err != nil {
		r.Err = err
		return r
	}

	_, r.Err = c.Delete(ctx, listURL(c)+query, nil)

	return r
}
