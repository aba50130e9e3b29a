/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2024-2026 Pure Storage, Inc. */

// Package v1 contains API Schema definitions for the FlashArray v1 API
// group.
//
// The schema definitions contained within are based on the FlashArray REST
// 2.x API definitions.  The API documentation contained within this package
// is intended to provide additional information related directly to the
// usage of the deployment manager; refer to the array REST documentation for
// the authoritative description of each attribute.
package v1
