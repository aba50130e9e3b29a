/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2024-2026 Pure Storage, Inc. */

package build

import (
	v1 "github.com/pure-storage/flasharray-deployment-manager/api/v1"
	"github.com/pure-storage/flasharray-deployment-manager/platform"
)

// DefaultMediator is the mediator assigned to a stretched pod when none was
// configured explicitly.
const DefaultMediator = "purestorage"

// ArrayFilter defines an interface from which concrete storage array filters
// can be defined.  The purpose of an array filter is to remove or adjust
// array level attributes which do not transfer from the exported array to a
// freshly provisioned one.
type ArrayFilter interface {
	Filter(array *v1.StorageArray, info *platform.ArrayInfo, deployment *Deployment) error
}

// ResourceFilter defines an interface from which concrete resource filters
// can be defined.  The purpose of a resource filter is to look at the
// generated resource lists and remove any resources, or any resource
// attributes, which are array-local artifacts rather than intended
// configuration.
type ResourceFilter interface {
	Filter(info *platform.ArrayInfo, deployment *Deployment) error
}

// RESTVersionFilter defines an array filter which pins the exported storage
// array to the REST API version that was negotiated while building the
// deployment.  By default the exported array floats to the newest version
// the manager supports.
type RESTVersionFilter struct {
	version string
}

func NewRESTVersionFilter(version string) *RESTVersionFilter {
	return &RESTVersionFilter{version: version}
}

func (in *RESTVersionFilter) Filter(array *v1.StorageArray, info *platform.ArrayInfo, deployment *Deployment) error {
	if in.version != "" {
		array.Spec.RESTVersion = &in.version
	}

	return nil
}

// DestroyedResourceFilter defines a resource filter which removes resources
// that are pending eradication from the generated deployment.  A destroyed
// resource is an artifact of the eradication window rather than intended
// configuration so re-creating it on a new array would be wrong.
type DestroyedResourceFilter struct {
}

func NewDestroyedResourceFilter() *DestroyedResourceFilter {
	return &DestroyedResourceFilter{}
}

func (in *DestroyedResourceFilter) Filter(info *platform.ArrayInfo, deployment *Deployment) error {
	destroyed := make(map[string]bool)
	for _, r := range info.VolumeGroups {
		if r.Destroyed {
			destroyed[r.Name] = true
		}
	}
	groups := deployment.VolumeGroups[:0]
	for _, r := range deployment.VolumeGroups {
		if !destroyed[r.Name] {
			groups = append(groups, r)
		}
	}
	deployment.VolumeGroups = groups

	destroyed = make(map[string]bool)
	for _, r := range info.Pods {
		if r.Destroyed {
			destroyed[r.Name] = true
		}
	}
	pods := deployment.Pods[:0]
	for _, r := range deployment.Pods {
		if !destroyed[r.Name] {
			pods = append(pods, r)
		}
	}
	deployment.Pods = pods

	destroyed = make(map[string]bool)
	for _, r := range info.ProtectionGroups {
		if r.Destroyed {
			destroyed[r.Name] = true
		}
	}
	protectionGroups := deployment.ProtectionGroups[:0]
	for _, r := range deployment.ProtectionGroups {
		if !destroyed[r.Name] {
			protectionGroups = append(protectionGroups, r)
		}
	}
	deployment.ProtectionGroups = protectionGroups

	destroyed = make(map[string]bool)
	for _, r := range info.Realms {
		if r.Destroyed {
			destroyed[r.Name] = true
		}
	}
	realms := deployment.Realms[:0]
	for _, r := range deployment.Realms {
		if !destroyed[r.Name] {
			realms = append(realms, r)
		}
	}
	deployment.Realms = realms

	destroyed = make(map[string]bool)
	for _, r := range info.FileSystems {
		if r.Destroyed {
			destroyed[r.Name] = true
		}
	}
	fileSystems := deployment.FileSystems[:0]
	for _, r := range deployment.FileSystems {
		if !destroyed[r.Name] {
			fileSystems = append(fileSystems, r)
		}
	}
	deployment.FileSystems = fileSystems

	destroyed = make(map[string]bool)
	for _, r := range info.Workloads {
		if r.Destroyed {
			destroyed[r.Name] = true
		}
	}
	workloads := deployment.Workloads[:0]
	for _, r := range deployment.Workloads {
		if !destroyed[r.Name] {
			workloads = append(workloads, r)
		}
	}
	deployment.Workloads = workloads

	return nil
}

// UnconfiguredInterfaceFilter defines a resource filter which removes
// physical network interfaces that carry no configuration.  Every port on
// the array reports a physical interface record so exporting the
// unconfigured ones would only add noise to the deployment.
type UnconfiguredInterfaceFilter struct {
}

func NewUnconfiguredInterfaceFilter() *UnconfiguredInterfaceFilter {
	return &UnconfiguredInterfaceFilter{}
}

func unconfiguredInterface(iface *v1.NetworkInterface) bool {
	if iface.Spec.Subtype != nil && *iface.Spec.Subtype != "physical" {
		// Virtual interfaces only exist because someone created them.
		return false
	}

	if iface.Spec.Enabled != nil && *iface.Spec.Enabled {
		return false
	}
	if iface.Spec.Address != nil || len(iface.Spec.Services) != 0 {
		return false
	}

	return true
}

func (in *UnconfiguredInterfaceFilter) Filter(info *platform.ArrayInfo, deployment *Deployment) error {
	interfaces := deployment.NetworkInterfaces[:0]
	for _, iface := range deployment.NetworkInterfaces {
		if !unconfiguredInterface(iface) {
			interfaces = append(interfaces, iface)
		}
	}
	deployment.NetworkInterfaces = interfaces

	return nil
}

// DefaultMediatorFilter defines a resource filter which removes the mediator
// attribute from any pod still using the default mediator.  The default is
// assigned by the array so carrying it in the deployment would make every
// exported pod look explicitly configured.
type DefaultMediatorFilter struct {
}

func NewDefaultMediatorFilter() *DefaultMediatorFilter {
	return &DefaultMediatorFilter{}
}

func (in *DefaultMediatorFilter) Filter(info *platform.ArrayInfo, deployment *Deployment) error {
	for _, pod := range deployment.Pods {
		if pod.Spec.Mediator != nil && *pod.Spec.Mediator == DefaultMediator {
			pod.Spec.Mediator = nil
		}
	}

	return nil
}
