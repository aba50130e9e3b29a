/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2024-2026 Pure Storage, Inc. */

package protectiongroups

import "github.com/pure-storage/flasharray-deployment-manager/flasharray"

func listURL(c *flasharray.Client) string {
	return c.ResourceURL("protection-groups")
}

func memberURL(c *flasharray.Client, memberType string) string {
	return c.ResourceURL("protection-groups", memberType)
}

func targetsURL(c *flasharray.Client) string {
	return c.ResourceURL("protection-groups", "targets")
}
