/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2024-2026 Pure Storage, Inc. */
package v1

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("volumegroup_webhook functions", func() {

	Describe("validateVolumeGroup function is tested", func() {
		Context("When the QoS limits are well formed", func() {
			It("Successfully validates the volume group", func() {
				bandwidth := "50M"
				iops := "100K"
				r := &VolumeGroup{
					Spec: VolumeGroupSpec{
						BandwidthLimit: &bandwidth,
						IOPSLimit:      &iops,
					},
				}
				err := r.validateVolumeGroup()
				Expect(err).To(BeNil())
			})
		})

		Context("When the QoS limits are being removed", func() {
			It("Accepts the zero sentinel", func() {
				zero := "0"
				r := &VolumeGroup{
					Spec: VolumeGroupSpec{
						BandwidthLimit: &zero,
						IOPSLimit:      &zero,
					},
				}
				err := r.validateVolumeGroup()
				Expect(err).To(BeNil())
			})
		})

		Context("When the bandwidth limit is below the array minimum", func() {
			It("Should reject the limit", func() {
				bandwidth := "512K"
				r := &VolumeGroup{
					Spec: VolumeGroupSpec{BandwidthLimit: &bandwidth},
				}
				err := r.validateVolumeGroup()
				Expect(err).To(HaveOccurred())
				Expect(err.Error()).To(ContainSubstring("out of range"))
			})
		})

		Context("When the IOPS limit is not a number", func() {
			It("Should reject the limit", func() {
				iops := "fast"
				r := &VolumeGroup{
					Spec: VolumeGroupSpec{IOPSLimit: &iops},
				}
				err := r.validateVolumeGroup()
				Expect(err).To(HaveOccurred())
			})
		})

		Context("When only a priority operator is supplied", func() {
			It("Should reject the adjustment", func() {
				operator := "+"
				r := &VolumeGroup{
					Spec: VolumeGroupSpec{PriorityOperator: &operator},
				}
				err := r.validateVolumeGroup()
				Expect(err).To(HaveOccurred())
				Expect(err.Error()).To(ContainSubstring("together"))
			})
		})

		Context("When the adjustment is -0", func() {
			It("Should reject the adjustment", func() {
				operator := "-"
				value := int32(0)
				r := &VolumeGroup{
					Spec: VolumeGroupSpec{
						PriorityOperator: &operator,
						PriorityValue:    &value,
					},
				}
				err := r.validateVolumeGroup()
				Expect(err).To(HaveOccurred())
			})
		})
	})
})
