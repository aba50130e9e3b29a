/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2024-2026 Pure Storage, Inc. */
package v1

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("protectiongroup_webhook functions", func() {

	Describe("validateProtectionGroup function is tested", func() {
		Context("When the schedule uses a daily frequency with an at-time", func() {
			It("Successfully validates the protection group", func() {
				enabled := true
				frequency := "24h"
				at := "3PM"
				r := &ProtectionGroup{
					Spec: ProtectionGroupSpec{
						SnapshotSchedule: &SnapshotScheduleInfo{
							Enabled:   &enabled,
							Frequency: &frequency,
							At:        &at,
						},
					},
				}
				err := r.validateProtectionGroup()
				Expect(err).To(BeNil())
			})
		})

		Context("When an at-time is supplied with an hourly frequency", func() {
			It("Should reject the schedule", func() {
				frequency := "4h"
				at := "15:00"
				r := &ProtectionGroup{
					Spec: ProtectionGroupSpec{
						SnapshotSchedule: &SnapshotScheduleInfo{
							Frequency: &frequency,
							At:        &at,
						},
					},
				}
				err := r.validateProtectionGroup()
				Expect(err).To(HaveOccurred())
				Expect(err.Error()).To(ContainSubstring("whole number of days"))
			})
		})

		Context("When the frequency is not a valid duration", func() {
			It("Should reject the schedule", func() {
				frequency := "often"
				r := &ProtectionGroup{
					Spec: ProtectionGroupSpec{
						ReplicationSchedule: &ReplicationScheduleInfo{
							Frequency: &frequency,
						},
					},
				}
				err := r.validateProtectionGroup()
				Expect(err).To(HaveOccurred())
			})
		})

		Context("When the blackout window uses invalid clock times", func() {
			It("Should reject the schedule", func() {
				r := &ProtectionGroup{
					Spec: ProtectionGroupSpec{
						ReplicationSchedule: &ReplicationScheduleInfo{
							Blackout: &BlackoutInfo{Start: "midnight", End: "5AM"},
						},
					},
				}
				err := r.validateProtectionGroup()
				Expect(err).To(HaveOccurred())
			})
		})

		Context("When the retention period is invalid", func() {
			It("Should reject the retention policy", func() {
				allFor := "-24h"
				r := &ProtectionGroup{
					Spec: ProtectionGroupSpec{
						SourceRetention: &RetentionInfo{AllFor: &allFor},
					},
				}
				err := r.validateProtectionGroup()
				Expect(err).To(HaveOccurred())
				Expect(err.Error()).To(ContainSubstring("must not be negative"))
			})
		})
	})

	Describe("ValidateUpdate function is tested", func() {
		Context("When safeMode is already ratcheted", func() {
			It("Should reject an unlock attempt", func() {
				ratcheted := SafeModeRatcheted
				unlocked := SafeModeUnlocked
				old := &ProtectionGroup{
					Spec: ProtectionGroupSpec{SafeMode: &ratcheted},
				}
				updated := &ProtectionGroup{
					Spec: ProtectionGroupSpec{SafeMode: &unlocked},
				}
				validator := &ProtectionGroupCustomValidator{}
				_, err := validator.ValidateUpdate(context.Background(), old, updated)
				Expect(err).To(HaveOccurred())
				Expect(err.Error()).To(ContainSubstring("cannot be unlocked"))
			})

			It("Should allow the group to stay ratcheted", func() {
				ratcheted := SafeModeRatcheted
				old := &ProtectionGroup{
					Spec: ProtectionGroupSpec{SafeMode: &ratcheted},
				}
				updated := old.DeepCopy()
				validator := &ProtectionGroupCustomValidator{}
				_, err := validator.ValidateUpdate(context.Background(), old, updated)
				Expect(err).To(BeNil())
			})
		})
	})
})
