/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2024-2026 Pure Storage, Inc. */

package filesystems

import "github.com/pure-storage/flasharray-deployment-manager/flasharray"

func listURL(c *flasharray.Client) string {
	return c.ResourceURL("file-systems")
}
