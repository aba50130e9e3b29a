/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2024-2026 Pure Storage, Inc. */

package common

// Minimum REST API versions for optional array features.  Requests for a
// feature against an array that predates its minimum either fail with a
// version error or, for purely additive parameters, omit the parameter.
const (
	MinVersionSafeMode         = "2.13"
	MinVersionPriority         = "2.17"
	MinVersionQuiesce          = "2.31"
	MinVersionRealms           = "2.36"
	MinVersionContextNames     = "2.38"
	MinVersionFileSystemRename = "2.39"
	MinVersionWorkloads        = "2.40"
)

// Lowest REST API version the manager will negotiate.
const MinSupportedVersion = "2.2"

// Annotation applied to a resource to compute and report the configuration
// delta without issuing any mutating array requests.
const DryRunAnnotation = "flasharray-manager/dry-run"

// Finalizer names used by the resource controllers.
const (
	StorageArrayFinalizerName     = "storagearray.finalizers.flasharray.purestorage.com"
	NetworkInterfaceFinalizerName = "networkinterface.finalizers.flasharray.purestorage.com"
	ProtectionGroupFinalizerName  = "protectiongroup.finalizers.flasharray.purestorage.com"
	PodFinalizerName              = "pod.finalizers.flasharray.purestorage.com"
	VolumeGroupFinalizerName      = "volumegroup.finalizers.flasharray.purestorage.com"
	CertificateFinalizerName      = "certificate.finalizers.flasharray.purestorage.com"
	DirectoryServiceFinalizerName = "directoryservice.finalizers.flasharray.purestorage.com"
	HostGroupFinalizerName        = "hostgroup.finalizers.flasharray.purestorage.com"
	RealmFinalizerName            = "realm.finalizers.flasharray.purestorage.com"
	FileSystemFinalizerName       = "filesystem.finalizers.flasharray.purestorage.com"
	WorkloadFinalizerName         = "workload.finalizers.flasharray.purestorage.com"
)

// Secret keys consumed by the manager.
const (
	SecretAPITokenKey   = "api-token"
	SecretKeyKey        = "key"
	SecretPassphraseKey = "passphrase"
	SecretPasswordKey   = "password"
)
