/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2024-2026 Pure Storage, Inc. */

package arrays

import (
	"context"

	"github.com/pure-storage/flasharray-deployment-manager/flasharray"
)

// Get retrieves the identity of the array behind the client.  The arrays
// collection always contains exactly one local entry.
func Get(ctx context.Context, c *flasharray.Client) (*Array, error) {
	var s struct {
		Items []Array `json:"items"`
	}

	_, err := c.Get(ctx, listURL(c), &s, nil)
	if err != nil {
		return nil, err
	}

	if len(s.Items) == 0 {
		return nil, flasharray.NewResourceNotFound("array")
	}

	return &s.Items[0], nil
}
