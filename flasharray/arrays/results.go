/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2024-2026 Pure Storage, Inc. */

package arrays

// Array defines the identity attributes of the local array.
type Array struct {
	// Name is the configured array name.
	Name string `json:"name"`

	// ID is the array unique identifier.
	ID string `json:"id"`

	// OS is the operating environment name, e.g., "Purity//FA".
	OS string `json:"os"`

	// Version is the operating environment version.
	Version string `json:"version"`
}
