/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2024-2026 Pure Storage, Inc. */

// Package flasharray implements a client for the FlashArray REST 2.x API.
// The top level package provides session handling, REST version negotiation
// and the request primitives; each managed resource type has its own
// subpackage which layers typed requests and results on top of the client.
package flasharray
