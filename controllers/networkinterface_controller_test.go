/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2024-2026 Pure Storage, Inc. */
package controllers

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	flasharrayv1 "github.com/pure-storage/flasharray-deployment-manager/api/v1"
	"github.com/pure-storage/flasharray-deployment-manager/flasharray/networkinterfaces"
)

var _ = Describe("NetworkInterface controller", func() {

	Describe("splitInterfaceAddress", func() {
		Context("with a valid CIDR address", func() {
			It("should split the address and netmask", func() {
				address, netmask, err := splitInterfaceAddress("192.168.1.10/24")
				Expect(err).To(BeNil())
				Expect(address).To(Equal("192.168.1.10"))
				Expect(netmask).To(Equal("255.255.255.0"))
			})
		})

		Context("with a bare address", func() {
			It("should report a validation error", func() {
				_, _, err := splitInterfaceAddress("192.168.1.10")
				Expect(err).ToNot(BeNil())
			})
		})
	})

	Describe("currentInterfaceAddress", func() {
		Context("with an assigned address", func() {
			It("should render CIDR notation", func() {
				address := "10.0.0.5"
				netmask := "255.255.0.0"
				eth := &networkinterfaces.Eth{Address: &address, Netmask: &netmask}
				Expect(currentInterfaceAddress(eth)).To(Equal("10.0.0.5/16"))
			})
		})

		Context("with an assigned IPv6 address", func() {
			It("should render CIDR notation", func() {
				address := "fd00::10"
				netmask := "ffff:ffff:ffff:ffff::"
				eth := &networkinterfaces.Eth{Address: &address, Netmask: &netmask}
				Expect(currentInterfaceAddress(eth)).To(Equal("fd00::10/64"))
			})
		})

		Context("with no address", func() {
			It("should render the empty string", func() {
				Expect(currentInterfaceAddress(nil)).To(Equal(""))
				Expect(currentInterfaceAddress(&networkinterfaces.Eth{})).To(Equal(""))
			})
		})
	})

	Describe("isVirtualInterface", func() {
		It("should accept the virtual subtypes only", func() {
			vif := networkinterfaces.SubtypeVif
			physical := "physical"
			Expect(isVirtualInterface(&flasharrayv1.NetworkInterfaceSpec{Subtype: &vif})).To(BeTrue())
			Expect(isVirtualInterface(&flasharrayv1.NetworkInterfaceSpec{Subtype: &physical})).To(BeFalse())
			Expect(isVirtualInterface(&flasharrayv1.NetworkInterfaceSpec{})).To(BeFalse())
		})
	})

	Describe("networkInterfaceUpdateRequired", func() {
		Context("with a synchronized interface", func() {
			It("should not request an update", func() {
				enabled := true
				address := "192.168.1.10/24"
				currentAddress := "192.168.1.10"
				currentNetmask := "255.255.255.0"
				instance := &flasharrayv1.NetworkInterface{
					ObjectMeta: metav1.ObjectMeta{Name: "ct0.eth4", Namespace: "default"},
					Spec: flasharrayv1.NetworkInterfaceSpec{
						Enabled: &enabled,
						Address: &address,
					},
				}
				iface := &networkinterfaces.NetworkInterface{
					Name:    "ct0.eth4",
					Enabled: true,
					Eth: &networkinterfaces.Eth{
						Address: &currentAddress,
						Netmask: &currentNetmask,
					},
				}
				_, changed, err := networkInterfaceUpdateRequired(instance, iface)
				Expect(err).To(BeNil())
				Expect(changed).To(BeFalse())
				Expect(instance.Status.Delta).To(Equal(""))
			})
		})

		Context("with a synchronized IPv6 interface", func() {
			It("should not request an update", func() {
				enabled := true
				address := "fd00::10/64"
				currentAddress := "fd00::10"
				currentNetmask := "ffff:ffff:ffff:ffff::"
				instance := &flasharrayv1.NetworkInterface{
					ObjectMeta: metav1.ObjectMeta{Name: "ct0.eth4", Namespace: "default"},
					Spec: flasharrayv1.NetworkInterfaceSpec{
						Enabled: &enabled,
						Address: &address,
					},
				}
				iface := &networkinterfaces.NetworkInterface{
					Name:    "ct0.eth4",
					Enabled: true,
					Eth: &networkinterfaces.Eth{
						Address: &currentAddress,
						Netmask: &currentNetmask,
					},
				}
				_, changed, err := networkInterfaceUpdateRequired(instance, iface)
				Expect(err).To(BeNil())
				Expect(changed).To(BeFalse())
				Expect(instance.Status.Delta).To(Equal(""))
			})
		})

		Context("with a drifted address", func() {
			It("should split the new address into the eth options", func() {
				address := "192.168.2.10/24"
				currentAddress := "192.168.1.10"
				currentNetmask := "255.255.255.0"
				instance := &flasharrayv1.NetworkInterface{
					ObjectMeta: metav1.ObjectMeta{Name: "ct0.eth4", Namespace: "default"},
					Spec:       flasharrayv1.NetworkInterfaceSpec{Address: &address},
				}
				iface := &networkinterfaces.NetworkInterface{
					Name: "ct0.eth4",
					Eth: &networkinterfaces.Eth{
						Address: &currentAddress,
						Netmask: &currentNetmask,
					},
				}
				opts, changed, err := networkInterfaceUpdateRequired(instance, iface)
				Expect(err).To(BeNil())
				Expect(changed).To(BeTrue())
				Expect(opts.Eth).ToNot(BeNil())
				Expect(*opts.Eth.Address).To(Equal("192.168.2.10"))
				Expect(*opts.Eth.Netmask).To(Equal("255.255.255.0"))
			})
		})

		Context("with the clear-address sentinel", func() {
			It("should clear an assigned address", func() {
				address := networkinterfaces.ClearAddress
				currentAddress := "192.168.1.10"
				instance := &flasharrayv1.NetworkInterface{
					ObjectMeta: metav1.ObjectMeta{Name: "ct0.eth4", Namespace: "default"},
					Spec:       flasharrayv1.NetworkInterfaceSpec{Address: &address},
				}
				iface := &networkinterfaces.NetworkInterface{
					Name: "ct0.eth4",
					Eth:  &networkinterfaces.Eth{Address: &currentAddress},
				}
				opts, changed, err := networkInterfaceUpdateRequired(instance, iface)
				Expect(err).To(BeNil())
				Expect(changed).To(BeTrue())
				Expect(opts.Eth).ToNot(BeNil())
				Expect(*opts.Eth.Address).To(Equal(networkinterfaces.ClearAddress))
				Expect(opts.Eth.Netmask).To(BeNil())
			})

			It("should leave an unassigned interface alone", func() {
				address := networkinterfaces.ClearAddress
				instance := &flasharrayv1.NetworkInterface{
					ObjectMeta: metav1.ObjectMeta{Name: "ct0.eth4", Namespace: "default"},
					Spec:       flasharrayv1.NetworkInterfaceSpec{Address: &address},
				}
				iface := &networkinterfaces.NetworkInterface{Name: "ct0.eth4"}
				_, changed, err := networkInterfaceUpdateRequired(instance, iface)
				Expect(err).To(BeNil())
				Expect(changed).To(BeFalse())
			})
		})

		Context("with drifted services", func() {
			It("should request the full services list", func() {
				instance := &flasharrayv1.NetworkInterface{
					ObjectMeta: metav1.ObjectMeta{Name: "ct0.eth4", Namespace: "default"},
					Spec: flasharrayv1.NetworkInterfaceSpec{
						Services: []string{"iscsi", "management"},
					},
				}
				iface := &networkinterfaces.NetworkInterface{
					Name:     "ct0.eth4",
					Services: []string{"iscsi"},
				}
				opts, changed, err := networkInterfaceUpdateRequired(instance, iface)
				Expect(err).To(BeNil())
				Expect(changed).To(BeTrue())
				Expect(opts.Services).To(Equal([]string{"iscsi", "management"}))
			})
		})
	})
})
