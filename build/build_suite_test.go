/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2024-2026 Pure Storage, Inc. */

package build

import (
	"bytes"
	"strings"
	"testing"

	v1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	flasharrayv1 "github.com/pure-storage/flasharray-deployment-manager/api/v1"
	"github.com/pure-storage/flasharray-deployment-manager/flasharray/arrays"
	"github.com/pure-storage/flasharray-deployment-manager/flasharray/certificates"
	"github.com/pure-storage/flasharray-deployment-manager/flasharray/directoryservices"
	"github.com/pure-storage/flasharray-deployment-manager/flasharray/hostgroups"
	"github.com/pure-storage/flasharray-deployment-manager/flasharray/networkinterfaces"
	"github.com/pure-storage/flasharray-deployment-manager/flasharray/pods"
	"github.com/pure-storage/flasharray-deployment-manager/flasharray/protectiongroups"
	"github.com/pure-storage/flasharray-deployment-manager/flasharray/volumegroups"
	"github.com/pure-storage/flasharray-deployment-manager/flasharray/workloads"
	v1info "github.com/pure-storage/flasharray-deployment-manager/platform"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestBuild(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Build Suite")
}

func newTestBuilder() *DeploymentBuilder {
	return NewDeploymentBuilder(nil, "purity", "array0", &bytes.Buffer{})
}

var _ = Describe("Deployment builder", func() {
	Describe("buildVolumeGroups", func() {
		It("should render QoS limits in unit notation", func() {
			bandwidth := int64(1073741824)
			iops := int64(50000)
			info := v1info.ArrayInfo{
				VolumeGroups: []volumegroups.VolumeGroup{
					{
						Name: "vg0",
						QoS: volumegroups.QoS{
							BandwidthLimit: &bandwidth,
							IopsLimit:      &iops,
						},
						PriorityAdjustment: volumegroups.PriorityAdjustment{
							Operator: "+",
							Value:    10,
						},
					},
				},
			}

			deployment := Deployment{}
			newTestBuilder().buildVolumeGroups(&deployment, &info)

			Expect(deployment.VolumeGroups).To(HaveLen(1))
			group := deployment.VolumeGroups[0]
			Expect(group.Name).To(Equal("vg0"))
			Expect(group.Namespace).To(Equal("purity"))
			Expect(*group.Spec.BandwidthLimit).To(Equal("1G"))
			Expect(*group.Spec.IOPSLimit).To(Equal("50K"))
			Expect(*group.Spec.PriorityOperator).To(Equal("+"))
			Expect(*group.Spec.PriorityValue).To(Equal(int32(10)))
		})

		It("should omit unset QoS limits", func() {
			info := v1info.ArrayInfo{
				VolumeGroups: []volumegroups.VolumeGroup{{Name: "vg0"}},
			}

			deployment := Deployment{}
			newTestBuilder().buildVolumeGroups(&deployment, &info)

			group := deployment.VolumeGroups[0]
			Expect(group.Spec.BandwidthLimit).To(BeNil())
			Expect(group.Spec.IOPSLimit).To(BeNil())
			Expect(group.Spec.PriorityOperator).To(BeNil())
		})
	})

	Describe("buildPods", func() {
		It("should record the peer of a stretched pod", func() {
			quota := int64(1099511627776)
			info := v1info.ArrayInfo{
				Array: arrays.Array{Name: "array0"},
				Pods: []pods.Pod{
					{
						Name:     "pod0",
						Mediator: "mediator.example.com",
						Arrays: []pods.PodArray{
							{Name: "array0"},
							{Name: "array1"},
						},
						FailoverPreferences: []pods.ResourceName{{Name: "array0"}},
						QuotaLimit:          &quota,
					},
				},
			}

			deployment := Deployment{}
			newTestBuilder().buildPods(&deployment, &info)

			Expect(deployment.Pods).To(HaveLen(1))
			pod := deployment.Pods[0]
			Expect(*pod.Spec.Mediator).To(Equal("mediator.example.com"))
			Expect(*pod.Spec.StretchArray).To(Equal("array1"))
			Expect(pod.Spec.FailoverPreference).To(Equal([]string{"array0"}))
			Expect(*pod.Spec.QuotaLimit).To(Equal("1T"))
		})

		It("should leave the stretch array unset on a local pod", func() {
			info := v1info.ArrayInfo{
				Array: arrays.Array{Name: "array0"},
				Pods: []pods.Pod{
					{Name: "pod0", Arrays: []pods.PodArray{{Name: "array0"}}},
				},
			}

			deployment := Deployment{}
			newTestBuilder().buildPods(&deployment, &info)

			Expect(deployment.Pods[0].Spec.StretchArray).To(BeNil())
		})
	})

	Describe("buildHostGroups", func() {
		It("should carry host membership and volume connections", func() {
			info := v1info.ArrayInfo{
				HostGroups: []v1info.HostGroupInfo{
					{
						HostGroup: hostgroups.HostGroup{Name: "hg0"},
						Hosts:     []string{"host0", "host1"},
						Connections: []hostgroups.Connection{
							{Volume: hostgroups.MemberRef{Name: "vg0/vol0"}, LUN: 254},
						},
					},
				},
			}

			deployment := Deployment{}
			newTestBuilder().buildHostGroups(&deployment, &info)

			group := deployment.HostGroups[0]
			Expect(group.Spec.Hosts).To(Equal([]string{"host0", "host1"}))
			Expect(group.Spec.Volumes).To(HaveLen(1))
			Expect(group.Spec.Volumes[0].Name).To(Equal("vg0/vol0"))
			Expect(*group.Spec.Volumes[0].LUN).To(Equal(int32(254)))
		})
	})

	Describe("buildProtectionGroups", func() {
		It("should render schedules and retention in duration notation", func() {
			at := int64(15 * 3600 * 1000)
			info := v1info.ArrayInfo{
				ProtectionGroups: []v1info.ProtectionGroupInfo{
					{
						ProtectionGroup: protectiongroups.ProtectionGroup{
							Name: "pg0",
							SnapshotSchedule: protectiongroups.Schedule{
								Enabled:   true,
								Frequency: 86400000,
								At:        &at,
							},
							ReplicationSchedule: protectiongroups.Schedule{
								Enabled:   true,
								Frequency: 14400000,
								Blackout: &protectiongroups.Blackout{
									Start: 9 * 3600 * 1000,
									End:   17 * 3600 * 1000,
								},
							},
							SourceRetention: protectiongroups.Retention{
								AllForSec: 86400,
								PerDay:    4,
								Days:      7,
							},
							RetentionLock: "ratcheted",
						},
						Volumes: []string{"vg0/vol0"},
						Targets: []protectiongroups.Target{{Name: "array1"}},
					},
				},
			}

			deployment := Deployment{}
			newTestBuilder().buildProtectionGroups(&deployment, &info)

			group := deployment.ProtectionGroups[0]
			Expect(*group.Spec.SnapshotSchedule.Enabled).To(BeTrue())
			Expect(*group.Spec.SnapshotSchedule.Frequency).To(Equal("24h"))
			Expect(*group.Spec.SnapshotSchedule.At).To(Equal("3PM"))
			Expect(*group.Spec.ReplicationSchedule.Frequency).To(Equal("4h"))
			Expect(group.Spec.ReplicationSchedule.Blackout.Start).To(Equal("9AM"))
			Expect(group.Spec.ReplicationSchedule.Blackout.End).To(Equal("5PM"))
			Expect(*group.Spec.SourceRetention.AllFor).To(Equal("24h"))
			Expect(*group.Spec.SourceRetention.PerDay).To(Equal(int32(4)))
			Expect(*group.Spec.SourceRetention.Days).To(Equal(int32(7)))
			Expect(*group.Spec.SafeMode).To(Equal("ratcheted"))
			Expect(group.Spec.Volumes).To(Equal([]string{"vg0/vol0"}))
			Expect(group.Spec.Targets).To(Equal([]string{"array1"}))
		})
	})

	Describe("buildCertificates", func() {
		It("should export an imported certificate with a placeholder key secret", func() {
			intermediate := "-----BEGIN CERTIFICATE-----\nAA==\n-----END CERTIFICATE-----"
			info := v1info.ArrayInfo{
				Certificates: []certificates.Certificate{
					{
						Name:                    "management",
						Status:                  certificates.StatusImported,
						Certificate:             "-----BEGIN CERTIFICATE-----\nBB==\n-----END CERTIFICATE-----",
						IntermediateCertificate: &intermediate,
					},
				},
			}

			deployment := Deployment{}
			newTestBuilder().buildCertificates(&deployment, &info)

			cert := deployment.Certificates[0]
			Expect(cert.Spec.Generate).To(BeNil())
			Expect(cert.Spec.Import).ToNot(BeNil())
			Expect(*cert.Spec.Import.KeySecret).To(Equal("management-key"))
			Expect(deployment.IncompleteSecrets).To(HaveLen(1))
			Expect(deployment.IncompleteSecrets[0].Name).To(Equal("management-key"))
		})

		It("should export a self-signed certificate as a generation request", func() {
			commonName := "array0.example.com"
			organization := "Example"
			info := v1info.ArrayInfo{
				Certificates: []certificates.Certificate{
					{
						Name:         "management",
						Status:       certificates.StatusSelfSigned,
						CommonName:   &commonName,
						Organization: &organization,
						KeySize:      4096,
					},
				},
			}

			deployment := Deployment{}
			newTestBuilder().buildCertificates(&deployment, &info)

			cert := deployment.Certificates[0]
			Expect(cert.Spec.Import).To(BeNil())
			Expect(cert.Spec.Generate.CommonName).To(Equal("array0.example.com"))
			Expect(*cert.Spec.Generate.Organization).To(Equal("Example"))
			Expect(*cert.Spec.Generate.KeySize).To(Equal(int32(4096)))
			Expect(deployment.IncompleteSecrets).To(BeEmpty())
		})
	})

	Describe("buildDirectoryServices", func() {
		It("should emit a placeholder bind password secret", func() {
			info := v1info.ArrayInfo{
				DirectoryServices: []directoryservices.DirectoryService{
					{
						Name:     "management",
						Enabled:  true,
						URIs:     []string{"ldaps://ldap.example.com"},
						BaseDN:   "DC=example,DC=com",
						BindUser: "CN=manager,DC=example,DC=com",
						Management: &directoryservices.Management{
							UserLoginAttribute: "sAMAccountName",
						},
					},
				},
			}

			deployment := Deployment{}
			newTestBuilder().buildDirectoryServices(&deployment, &info)

			service := deployment.DirectoryServices[0]
			Expect(service.Spec.Role).To(Equal("management"))
			Expect(*service.Spec.Enabled).To(BeTrue())
			Expect(*service.Spec.BindPasswordSecret).To(Equal("management-bind-password"))
			Expect(*service.Spec.UserLoginAttribute).To(Equal("sAMAccountName"))
			Expect(deployment.IncompleteSecrets).To(HaveLen(1))
		})

		It("should leave the bind secret unset without a bind user", func() {
			info := v1info.ArrayInfo{
				DirectoryServices: []directoryservices.DirectoryService{
					{Name: "data"},
				},
			}

			deployment := Deployment{}
			newTestBuilder().buildDirectoryServices(&deployment, &info)

			Expect(deployment.DirectoryServices[0].Spec.BindPasswordSecret).To(BeNil())
			Expect(deployment.IncompleteSecrets).To(BeEmpty())
		})
	})

	Describe("buildWorkloads", func() {
		It("should carry the preset and parameter assignments", func() {
			info := v1info.ArrayInfo{
				Workloads: []workloads.Workload{
					{
						Name:   "oracle-prod",
						Preset: workloads.ResourceName{Name: "oracle"},
						Parameters: []workloads.Parameter{
							{Name: "data_size", Value: "1T"},
							{Name: "log_size", Value: "50G"},
						},
					},
				},
			}

			deployment := Deployment{}
			newTestBuilder().buildWorkloads(&deployment, &info)

			workload := deployment.Workloads[0]
			Expect(workload.Spec.Preset).To(Equal("oracle"))
			Expect(workload.Spec.Parameters).To(Equal(map[string]string{
				"data_size": "1T",
				"log_size":  "50G",
			}))
		})
	})

	Describe("interfaceAddress", func() {
		It("should render the assigned address in CIDR notation", func() {
			address := "192.168.1.10"
			netmask := "255.255.255.0"
			eth := networkinterfaces.Eth{Address: &address, Netmask: &netmask}
			Expect(interfaceAddress(&eth)).To(Equal("192.168.1.10/24"))
		})

		It("should render an IPv6 address in CIDR notation", func() {
			address := "fd00::10"
			netmask := "ffff:ffff:ffff:ffff::"
			eth := networkinterfaces.Eth{Address: &address, Netmask: &netmask}
			Expect(interfaceAddress(&eth)).To(Equal("fd00::10/64"))
		})

		It("should return an empty value for an unassigned interface", func() {
			Expect(interfaceAddress(&networkinterfaces.Eth{})).To(Equal(""))
			Expect(interfaceAddress(nil)).To(Equal(""))
		})
	})

	Describe("ToYAML", func() {
		It("should strip status and creation timestamp attributes", func() {
			quota := "10T"
			deployment := Deployment{
				Namespace: v1.Namespace{
					TypeMeta:   metav1.TypeMeta{APIVersion: "v1", Kind: "Namespace"},
					ObjectMeta: metav1.ObjectMeta{Name: "purity"},
				},
				StorageArray: flasharrayv1.StorageArray{
					TypeMeta: metav1.TypeMeta{APIVersion: apiVersionString, Kind: "StorageArray"},
					ObjectMeta: metav1.ObjectMeta{
						Name:      "array0",
						Namespace: "purity",
					},
					Spec: flasharrayv1.StorageArraySpec{
						Endpoint: "https://array0.example.com",
						Secret:   "array0-api-token",
					},
					Status: flasharrayv1.StorageArrayStatus{Ready: true},
				},
				Realms: []*flasharrayv1.Realm{
					{
						TypeMeta: metav1.TypeMeta{APIVersion: apiVersionString, Kind: "Realm"},
						ObjectMeta: metav1.ObjectMeta{
							Name:      "tenant0",
							Namespace: "purity",
						},
						Spec: flasharrayv1.RealmSpec{QuotaLimit: &quota},
					},
				},
			}

			text, err := deployment.ToYAML()
			Expect(err).To(BeNil())
			Expect(strings.Count(text, yamlSeparator)).To(Equal(4))
			Expect(text).To(ContainSubstring("kind: StorageArray"))
			Expect(text).To(ContainSubstring("kind: Realm"))
			Expect(text).To(ContainSubstring("quotaLimit: 10T"))
			Expect(text).ToNot(ContainSubstring("status:"))
			Expect(text).ToNot(ContainSubstring("creationTimestamp"))
		})
	})
})
