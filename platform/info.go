/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2024-2026 Pure Storage, Inc. */

package platform

import (
	"context"

	"github.com/pkg/errors"

	utils "github.com/pure-storage/flasharray-deployment-manager/common"
	"github.com/pure-storage/flasharray-deployment-manager/flasharray"
	"github.com/pure-storage/flasharray-deployment-manager/flasharray/arrays"
	"github.com/pure-storage/flasharray-deployment-manager/flasharray/certificates"
	"github.com/pure-storage/flasharray-deployment-manager/flasharray/directoryservices"
	"github.com/pure-storage/flasharray-deployment-manager/flasharray/filesystems"
	"github.com/pure-storage/flasharray-deployment-manager/flasharray/hostgroups"
	"github.com/pure-storage/flasharray-deployment-manager/flasharray/networkinterfaces"
	"github.com/pure-storage/flasharray-deployment-manager/flasharray/pods"
	"github.com/pure-storage/flasharray-deployment-manager/flasharray/protectiongroups"
	"github.com/pure-storage/flasharray-deployment-manager/flasharray/realms"
	"github.com/pure-storage/flasharray-deployment-manager/flasharray/volumegroups"
	"github.com/pure-storage/flasharray-deployment-manager/flasharray/workloads"
)

// ProtectionGroupInfo couples a protection group with its membership and
// target lists, which live behind separate endpoints.
type ProtectionGroupInfo struct {
	protectiongroups.ProtectionGroup
	Volumes    []string
	Hosts      []string
	HostGroups []string
	Targets    []protectiongroups.Target
}

// HostGroupInfo couples a host group with its host membership and volume
// connections, which live behind separate endpoints.
type HostGroupInfo struct {
	hostgroups.HostGroup
	Hosts       []string
	Connections []hostgroups.Connection
}

// ArrayInfo is a snapshot of the configuration of a single array collected
// thru the REST API.  Since the methods that deal with specific resources
// often need related information from other resources those pieces of
// information are aggregated into a single type to facilitate passing the
// data around and minimizing the number of API calls required.
type ArrayInfo struct {
	arrays.Array

	// APIVersion is the REST version the snapshot was taken with.
	APIVersion string

	VolumeGroups      []volumegroups.VolumeGroup
	Pods              []pods.Pod
	HostGroups        []HostGroupInfo
	ProtectionGroups  []ProtectionGroupInfo
	NetworkInterfaces []networkinterfaces.NetworkInterface
	Certificates      []certificates.Certificate
	DirectoryServices []directoryservices.DirectoryService
	Realms            []realms.Realm
	FileSystems       []filesystems.FileSystem
	Workloads         []workloads.Workload
}

// PopulateArrayInfo collects the full configuration of the array reachable
// thru the supplied client.  Resources behind a REST version gate are
// silently skipped when the array does not support them so that a snapshot
// of an older array still succeeds.
func (in *ArrayInfo) PopulateArrayInfo(ctx context.Context, client *flasharray.Client) error {
	result, err := arrays.Get(ctx, client)
	if err != nil {
		return errors.Wrap(err, "failed to get array identity")
	}
	in.Array = *result
	in.APIVersion = client.APIVersion.String()

	in.VolumeGroups, err = volumegroups.List(ctx, client, volumegroups.ListOpts{})
	if err != nil {
		return errors.Wrap(err, "failed to list volume groups")
	}

	in.Pods, err = pods.List(ctx, client, pods.ListOpts{})
	if err != nil {
		return errors.Wrap(err, "failed to list pods")
	}

	if err = in.populateHostGroups(ctx, client); err != nil {
		return err
	}

	if err = in.populateProtectionGroups(ctx, client); err != nil {
		return err
	}

	in.NetworkInterfaces, err = networkinterfaces.List(ctx, client, networkinterfaces.ListOpts{})
	if err != nil {
		return errors.Wrap(err, "failed to list network interfaces")
	}

	in.Certificates, err = certificates.List(ctx, client, certificates.ListOpts{})
	if err != nil {
		return errors.Wrap(err, "failed to list certificates")
	}

	in.DirectoryServices, err = directoryservices.List(ctx, client, directoryservices.ListOpts{})
	if err != nil {
		return errors.Wrap(err, "failed to list directory services")
	}

	in.FileSystems, err = filesystems.List(ctx, client, filesystems.ListOpts{})
	if err != nil {
		return errors.Wrap(err, "failed to list file systems")
	}

	if client.Supports(utils.MinVersionRealms) {
		in.Realms, err = realms.List(ctx, client, realms.ListOpts{})
		if err != nil {
			return errors.Wrap(err, "failed to list realms")
		}
	}

	if client.Supports(utils.MinVersionWorkloads) {
		in.Workloads, err = workloads.List(ctx, client, workloads.ListOpts{})
		if err != nil {
			return errors.Wrap(err, "failed to list workloads")
		}
	}

	return nil
}

func (in *ArrayInfo) populateHostGroups(ctx context.Context, client *flasharray.Client) error {
	groups, err := hostgroups.List(ctx, client, hostgroups.ListOpts{})
	if err != nil {
		return errors.Wrap(err, "failed to list host groups")
	}

	in.HostGroups = make([]HostGroupInfo, 0, len(groups))
	for _, group := range groups {
		info := HostGroupInfo{HostGroup: group}

		info.Hosts, err = hostgroups.ListHosts(ctx, client, group.Name, nil)
		if err != nil {
			return errors.Wrapf(err, "failed to list hosts of group %q", group.Name)
		}

		info.Connections, err = hostgroups.ListConnections(ctx, client, group.Name, nil)
		if err != nil {
			return errors.Wrapf(err, "failed to list connections of group %q", group.Name)
		}

		in.HostGroups = append(in.HostGroups, info)
	}

	return nil
}

func (in *ArrayInfo) populateProtectionGroups(ctx context.Context, client *flasharray.Client) error {
	groups, err := protectiongroups.List(ctx, client, protectiongroups.ListOpts{})
	if err != nil {
		return errors.Wrap(err, "failed to list protection groups")
	}

	in.ProtectionGroups = make([]ProtectionGroupInfo, 0, len(groups))
	for _, group := range groups {
		info := ProtectionGroupInfo{ProtectionGroup: group}

		info.Volumes, err = protectiongroups.ListMembers(ctx, client, group.Name,
			protectiongroups.MemberVolumes, nil)
		if err != nil {
			return errors.Wrapf(err, "failed to list volume members of group %q", group.Name)
		}

		info.Hosts, err = protectiongroups.ListMembers(ctx, client, group.Name,
			protectiongroups.MemberHosts, nil)
		if err != nil {
			return errors.Wrapf(err, "failed to list host members of group %q", group.Name)
		}

		info.HostGroups, err = protectiongroups.ListMembers(ctx, client, group.Name,
			protectiongroups.MemberHostGroups, nil)
		if err != nil {
			return errors.Wrapf(err, "failed to list host group members of group %q", group.Name)
		}

		info.Targets, err = protectiongroups.ListTargets(ctx, client, group.Name, nil)
		if err != nil {
			return errors.Wrapf(err, "failed to list targets of group %q", group.Name)
		}

		in.ProtectionGroups = append(in.ProtectionGroups, info)
	}

	return nil
}

// FindVolumeGroup looks up a volume group in the snapshot by name.
func (in *ArrayInfo) FindVolumeGroup(name string) (*volumegroups.VolumeGroup, bool) {
	for i := range in.VolumeGroups {
		if in.VolumeGroups[i].Name == name {
			return &in.VolumeGroups[i], true
		}
	}
	return nil, false
}

// FindPod looks up a pod in the snapshot by name.
func (in *ArrayInfo) FindPod(name string) (*pods.Pod, bool) {
	for i := range in.Pods {
		if in.Pods[i].Name == name {
			return &in.Pods[i], true
		}
	}
	return nil, false
}

// FindHostGroup looks up a host group in the snapshot by name.
func (in *ArrayInfo) FindHostGroup(name string) (*HostGroupInfo, bool) {
	for i := range in.HostGroups {
		if in.HostGroups[i].Name == name {
			return &in.HostGroups[i], true
		}
	}
	return nil, false
}

// FindProtectionGroup looks up a protection group in the snapshot by name.
func (in *ArrayInfo) FindProtectionGroup(name string) (*ProtectionGroupInfo, bool) {
	for i := range in.ProtectionGroups {
		if in.ProtectionGroups[i].Name == name {
			return &in.ProtectionGroups[i], true
		}
	}
	return nil, false
}

// FindDirectoryService looks up a directory service role in the snapshot.
func (in *ArrayInfo) FindDirectoryService(role string) (*directoryservices.DirectoryService, bool) {
	for i := range in.DirectoryServices {
		if in.DirectoryServices[i].Name == role {
			return &in.DirectoryServices[i], true
		}
	}
	return nil, false
}
