/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2024-2026 Pure Storage, Inc. */

package build

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	v1 "github.com/pure-storage/flasharray-deployment-manager/api/v1"
	"github.com/pure-storage/flasharray-deployment-manager/flasharray/realms"
	"github.com/pure-storage/flasharray-deployment-manager/flasharray/volumegroups"
	v1info "github.com/pure-storage/flasharray-deployment-manager/platform"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Deployment filters", func() {
	Describe("DestroyedResourceFilter", func() {
		It("should drop resources pending eradication", func() {
			info := v1info.ArrayInfo{
				VolumeGroups: []volumegroups.VolumeGroup{
					{Name: "vg0"},
					{Name: "vg1", Destroyed: true},
				},
				Realms: []realms.Realm{
					{Name: "tenant0", Destroyed: true},
				},
			}

			deployment := Deployment{
				VolumeGroups: []*v1.VolumeGroup{
					{ObjectMeta: metav1.ObjectMeta{Name: "vg0"}},
					{ObjectMeta: metav1.ObjectMeta{Name: "vg1"}},
				},
				Realms: []*v1.Realm{
					{ObjectMeta: metav1.ObjectMeta{Name: "tenant0"}},
				},
			}

			err := NewDestroyedResourceFilter().Filter(&info, &deployment)
			Expect(err).To(BeNil())
			Expect(deployment.VolumeGroups).To(HaveLen(1))
			Expect(deployment.VolumeGroups[0].Name).To(Equal("vg0"))
			Expect(deployment.Realms).To(BeEmpty())
		})
	})

	Describe("UnconfiguredInterfaceFilter", func() {
		It("should drop bare physical interfaces and keep the rest", func() {
			physical := "physical"
			vif := "vif"
			address := "10.0.0.5/16"
			enabled := true

			deployment := Deployment{
				NetworkInterfaces: []*v1.NetworkInterface{
					{
						ObjectMeta: metav1.ObjectMeta{Name: "ct0.eth4"},
						Spec:       v1.NetworkInterfaceSpec{Subtype: &physical},
					},
					{
						ObjectMeta: metav1.ObjectMeta{Name: "ct0.eth5"},
						Spec: v1.NetworkInterfaceSpec{
							Subtype: &physical,
							Enabled: &enabled,
							Address: &address,
						},
					},
					{
						ObjectMeta: metav1.ObjectMeta{Name: "vir0"},
						Spec:       v1.NetworkInterfaceSpec{Subtype: &vif},
					},
				},
			}

			err := NewUnconfiguredInterfaceFilter().Filter(&v1info.ArrayInfo{}, &deployment)
			Expect(err).To(BeNil())
			Expect(deployment.NetworkInterfaces).To(HaveLen(2))
			Expect(deployment.NetworkInterfaces[0].Name).To(Equal("ct0.eth5"))
			Expect(deployment.NetworkInterfaces[1].Name).To(Equal("vir0"))
		})
	})

	Describe("DefaultMediatorFilter", func() {
		It("should clear the default mediator and keep a custom one", func() {
			defaultMediator := DefaultMediator
			custom := "mediator.example.com"

			deployment := Deployment{
				Pods: []*v1.Pod{
					{
						ObjectMeta: metav1.ObjectMeta{Name: "pod0"},
						Spec:       v1.PodSpec{Mediator: &defaultMediator},
					},
					{
						ObjectMeta: metav1.ObjectMeta{Name: "pod1"},
						Spec:       v1.PodSpec{Mediator: &custom},
					},
				},
			}

			err := NewDefaultMediatorFilter().Filter(&v1info.ArrayInfo{}, &deployment)
			Expect(err).To(BeNil())
			Expect(deployment.Pods[0].Spec.Mediator).To(BeNil())
			Expect(*deployment.Pods[1].Spec.Mediator).To(Equal("mediator.example.com"))
		})
	})

	Describe("RESTVersionFilter", func() {
		It("should pin the negotiated version onto the array", func() {
			array := v1.StorageArray{}
			err := NewRESTVersionFilter("2.39").Filter(&array, &v1info.ArrayInfo{}, &Deployment{})
			Expect(err).To(BeNil())
			Expect(*array.Spec.RESTVersion).To(Equal("2.39"))
		})

		It("should leave the version floating when none was negotiated", func() {
			array := v1.StorageArray{}
			err := NewRESTVersionFilter("").Filter(&array, &v1info.ArrayInfo{}, &Deployment{})
			Expect(err).To(BeNil())
			Expect(array.Spec.RESTVersion).To(BeNil())
		})
	})
})
