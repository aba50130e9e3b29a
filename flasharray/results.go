/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2024-2026 Pure Storage, Inc. */

package flasharray

// Result is the deferred result of a request.  Resource subpackages embed it
// in their typed result structures and implement Extract methods which
// interpret Body for their own types.
type Result struct {
	// Body is the typed payload stored by the subpackage request function.
	Body interface{}

	// Err is set when the request could not be completed or the array
	// rejected it.
	Err error
}

// ErrResult represents the result of an operation which returns no payload.
type ErrResult struct {
	Result
}

// ExtractErr returns the request error, if any.
func (r ErrResult) ExtractErr() error {
	return r.Err
}
