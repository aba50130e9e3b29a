/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2024-2026 Pure Storage, Inc. */

package v1

// Group defines the group name of all of the resources in this package.
const Group = "flasharray.purestorage.com"

// Version defines the version of all of the resources in this package.
const Version = "v1"

// APIVersion defines the full api version string of the resources in this
// package.
const APIVersion = Group + "/" + Version

// Defines the kind names of each of the resources in this package.
const (
	KindStorageArray     = "StorageArray"
	KindNetworkInterface = "NetworkInterface"
	KindProtectionGroup  = "ProtectionGroup"
	KindPod              = "Pod"
	KindVolumeGroup      = "VolumeGroup"
	KindCertificate      = "Certificate"
	KindDirectoryService = "DirectoryService"
	KindHostGroup        = "HostGroup"
	KindRealm            = "Realm"
	KindFileSystem       = "FileSystem"
	KindWorkload         = "Workload"
)
