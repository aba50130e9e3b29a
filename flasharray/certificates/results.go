/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2024-2026 Pure Storage, Inc. */

package certificates

import (
	"github.com/pure-storage/flasharray-deployment-manager/flasharray"
)

// Extract interprets any commonResult as a Certificate.
func (r commonResult) Extract() (*Certificate, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	cert, ok := r.Body.(Certificate)
	if !ok {
		return nil, nil
	}
	return &cert, nil
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

// Certificate defines the data associated to a single certificate instance.
// Optional subject attributes are pointers; the array omits any attribute
// that was not set when the certificate was generated.
type Certificate struct {
	Name string `json:"name"`

	// Status is "self-signed" or "imported".
	Status string `json:"status"`

	CommonName         *string `json:"common_name,omitempty"`
	Country            *string `json:"country,omitempty"`
	Email              *string `json:"email,omitempty"`
	Locality           *string `json:"locality,omitempty"`
	Organization       *string `json:"organization,omitempty"`
	OrganizationalUnit *string `json:"organizational_unit,omitempty"`
	State              *string `json:"state,omitempty"`

	KeySize int32 `json:"key_size"`

	// ValidFrom and ValidTo are milliseconds since the epoch.
	ValidFrom int64 `json:"valid_from"`
	ValidTo   int64 `json:"valid_to"`

	IssuedBy string `json:"issued_by"`
	IssuedTo string `json:"issued_to"`

	// Certificate is the PEM formatted certificate text.
	Certificate string `json:"certificate"`

	IntermediateCertificate *string `json:"intermediate_certificate,omitempty"`
}
