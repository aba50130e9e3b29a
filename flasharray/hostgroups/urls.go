/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2024-2026 Pure Storage, Inc. */

package hostgroups

import "github.com/pure-storage/flasharray-deployment-manager/flasharray"

func listURL(c *flasharray.Client) string {
	return c.ResourceURL("host-groups")
}

func hostsURL(c *flasharray.Client) string {
	return c.ResourceURL("host-groups", "hosts")
}

func connectionsURL(c *flasharray.Client) string {
	return c.ResourceURL("connections")
}
