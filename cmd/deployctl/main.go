/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2024-2026 Pure Storage, Inc. */

package main

import (
	"github.com/pure-storage/flasharray-deployment-manager/cmd/deployctl/cmd"
)

func main() {
	cmd.Execute()
}
