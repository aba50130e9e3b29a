/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2024-2026 Pure Storage, Inc. */

package v1

// ErrMissingArrayResource defines an error to be used when reporting that
// a referenced array resource (host, volume, target array, preset) does not
// exist on the target array.
type ErrMissingArrayResource struct {
	message string
}

// Error implements the error interface.
func (in ErrMissingArrayResource) Error() string {
	return in.message
}

// NewMissingArrayResource defines a constructor for the
// ErrMissingArrayResource error type.
func NewMissingArrayResource(msg string) error {
	return ErrMissingArrayResource{msg}
}
