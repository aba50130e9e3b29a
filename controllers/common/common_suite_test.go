/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2024-2026 Pure Storage, Inc. */
package common

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	v1 "github.com/pure-storage/flasharray-deployment-manager/api/v1"
)

func TestCommon(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Common Suite")
}

var _ = Describe("CompareStructs utils", func() {
	Describe("compare two structs", func() {
		Context("with same string covered from structs ", func() {
			It("should return true for HostGroupVolumeInfo", func() {
				lun1 := int32(7)
				lun2 := int32(7)
				structA := v1.HostGroupVolumeInfo{
					Name: "pgroup1-data",
					LUN:  &lun1,
				}
				structB := v1.HostGroupVolumeInfo{
					Name: "pgroup1-data",
					LUN:  &lun2,
				}
				equalVolumeInfo := CompareStructs(structA, structB)
				Expect(equalVolumeInfo).To(BeTrue())
			})
			It("should return false for HostGroupVolumeInfo", func() {
				lun1 := int32(7)
				lun2 := int32(8)
				structA := v1.HostGroupVolumeInfo{
					Name: "pgroup1-data",
					LUN:  &lun1,
				}
				structB := v1.HostGroupVolumeInfo{
					Name: "pgroup1-data",
					LUN:  &lun2,
				}
				equalVolumeInfo := CompareStructs(structA, structB)
				Expect(equalVolumeInfo).To(BeFalse())
			})
			It("should return true for SnapshotScheduleInfo", func() {
				enabled := true
				frequency := "24h"
				at1 := "3PM"
				at2 := "3PM"
				structC := v1.SnapshotScheduleInfo{
					Enabled:   &enabled,
					Frequency: &frequency,
					At:        &at1,
				}
				structD := v1.SnapshotScheduleInfo{
					Enabled:   &enabled,
					Frequency: &frequency,
					At:        &at2,
				}
				equalScheduleInfo := CompareStructs(structC, structD)
				Expect(equalScheduleInfo).To(BeTrue())
			})
			It("should return false for SnapshotScheduleInfo", func() {
				enabled := true
				frequency := "24h"
				at1 := "3PM"
				at2 := "4PM"
				structC := v1.SnapshotScheduleInfo{
					Enabled:   &enabled,
					Frequency: &frequency,
					At:        &at1,
				}
				structD := v1.SnapshotScheduleInfo{
					Enabled:   &enabled,
					Frequency: &frequency,
					At:        &at2,
				}
				equalScheduleInfo := CompareStructs(structC, structD)
				Expect(equalScheduleInfo).To(BeFalse())
			})
		})
	})
})
