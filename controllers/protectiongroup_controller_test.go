/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2024-2026 Pure Storage, Inc. */
package controllers

import (
	"encoding/json"
	"net/http"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	flasharrayv1 "github.com/pure-storage/flasharray-deployment-manager/api/v1"
	"github.com/pure-storage/flasharray-deployment-manager/flasharray/protectiongroups"
)

var _ = Describe("ProtectionGroup controller", func() {

	Describe("snapshotScheduleOpts", func() {
		Context("with a matching schedule", func() {
			It("should not request an update", func() {
				enabled := true
				frequency := "1h"
				at := int64(0)
				info := &flasharrayv1.SnapshotScheduleInfo{
					Enabled:   &enabled,
					Frequency: &frequency,
				}
				current := &protectiongroups.Schedule{
					Enabled:   true,
					Frequency: 3600000,
					At:        &at,
				}
				var delta strings.Builder
				opts, err := snapshotScheduleOpts(info, current, &delta)
				Expect(err).To(BeNil())
				Expect(opts).To(BeNil())
				Expect(delta.String()).To(Equal(""))
			})
		})

		Context("with a drifted frequency", func() {
			It("should request the new interval in milliseconds", func() {
				frequency := "24h"
				info := &flasharrayv1.SnapshotScheduleInfo{Frequency: &frequency}
				current := &protectiongroups.Schedule{Frequency: 3600000}
				var delta strings.Builder
				opts, err := snapshotScheduleOpts(info, current, &delta)
				Expect(err).To(BeNil())
				Expect(opts).ToNot(BeNil())
				Expect(*opts.Frequency).To(Equal(int64(24 * 3600 * 1000)))
			})
		})

		Context("with an at-time", func() {
			It("should convert the clock time", func() {
				at := "3PM"
				info := &flasharrayv1.SnapshotScheduleInfo{At: &at}
				current := &protectiongroups.Schedule{}
				var delta strings.Builder
				opts, err := snapshotScheduleOpts(info, current, &delta)
				Expect(err).To(BeNil())
				Expect(opts).ToNot(BeNil())
				Expect(*opts.At).To(Equal(int64(15 * 3600 * 1000)))
			})
		})

		Context("with an unparseable frequency", func() {
			It("should report a validation error", func() {
				frequency := "daily"
				info := &flasharrayv1.SnapshotScheduleInfo{Frequency: &frequency}
				current := &protectiongroups.Schedule{}
				var delta strings.Builder
				_, err := snapshotScheduleOpts(info, current, &delta)
				Expect(err).ToNot(BeNil())
			})
		})
	})

	Describe("replicationScheduleOpts", func() {
		Context("with a blackout window", func() {
			It("should convert both clock times", func() {
				info := &flasharrayv1.ReplicationScheduleInfo{
					Blackout: &flasharrayv1.BlackoutInfo{Start: "9AM", End: "5PM"},
				}
				current := &protectiongroups.Schedule{}
				var delta strings.Builder
				opts, err := replicationScheduleOpts(info, current, &delta)
				Expect(err).To(BeNil())
				Expect(opts).ToNot(BeNil())
				Expect(opts.Blackout).ToNot(BeNil())
				Expect(opts.Blackout.Start).To(Equal(int64(9 * 3600 * 1000)))
				Expect(opts.Blackout.End).To(Equal(int64(17 * 3600 * 1000)))
			})
		})

		Context("with a matching blackout window", func() {
			It("should not request an update", func() {
				info := &flasharrayv1.ReplicationScheduleInfo{
					Blackout: &flasharrayv1.BlackoutInfo{Start: "9AM", End: "5PM"},
				}
				current := &protectiongroups.Schedule{
					Blackout: &protectiongroups.Blackout{
						Start: 9 * 3600 * 1000,
						End:   17 * 3600 * 1000,
					},
				}
				var delta strings.Builder
				opts, err := replicationScheduleOpts(info, current, &delta)
				Expect(err).To(BeNil())
				Expect(opts).To(BeNil())
			})
		})
	})

	Describe("retentionOpts", func() {
		Context("with a drifted retention period", func() {
			It("should convert the period to seconds", func() {
				allFor := "24h"
				info := &flasharrayv1.RetentionInfo{AllFor: &allFor}
				current := &protectiongroups.Retention{AllForSec: 3600}
				var delta strings.Builder
				opts, err := retentionOpts(info, current, "SourceRetention", &delta)
				Expect(err).To(BeNil())
				Expect(opts).ToNot(BeNil())
				Expect(*opts.AllForSec).To(Equal(int64(24 * 3600)))
				Expect(delta.String()).To(ContainSubstring("SourceRetention.AllFor"))
			})
		})

		Context("with a matching policy", func() {
			It("should not request an update", func() {
				allFor := "24h"
				perDay := int32(4)
				info := &flasharrayv1.RetentionInfo{AllFor: &allFor, PerDay: &perDay}
				current := &protectiongroups.Retention{AllForSec: 24 * 3600, PerDay: 4}
				var delta strings.Builder
				opts, err := retentionOpts(info, current, "SourceRetention", &delta)
				Expect(err).To(BeNil())
				Expect(opts).To(BeNil())
			})
		})
	})

	Describe("protectionGroupUpdateRequired", func() {
		Context("with a released SafeMode lock", func() {
			It("should reject releasing a ratcheted lock", func() {
				safeMode := flasharrayv1.SafeModeUnlocked
				instance := &flasharrayv1.ProtectionGroup{
					ObjectMeta: metav1.ObjectMeta{Name: "pg0", Namespace: "default"},
					Spec:       flasharrayv1.ProtectionGroupSpec{SafeMode: &safeMode},
				}
				group := &protectiongroups.ProtectionGroup{
					Name:          "pg0",
					RetentionLock: protectiongroups.RetentionLockRatcheted,
				}
				_, _, err := protectionGroupUpdateRequired(instance, group)
				Expect(err).ToNot(BeNil())
			})
		})

		Context("with a newly ratcheted SafeMode lock", func() {
			It("should request the retention lock", func() {
				safeMode := flasharrayv1.SafeModeRatcheted
				instance := &flasharrayv1.ProtectionGroup{
					ObjectMeta: metav1.ObjectMeta{Name: "pg0", Namespace: "default"},
					Spec:       flasharrayv1.ProtectionGroupSpec{SafeMode: &safeMode},
				}
				group := &protectiongroups.ProtectionGroup{
					Name:          "pg0",
					RetentionLock: protectiongroups.RetentionLockUnlocked,
				}
				opts, changed, err := protectionGroupUpdateRequired(instance, group)
				Expect(err).To(BeNil())
				Expect(changed).To(BeTrue())
				Expect(opts.RetentionLock).ToNot(BeNil())
				Expect(*opts.RetentionLock).To(Equal(protectiongroups.RetentionLockRatcheted))
			})
		})

		Context("with a rename", func() {
			It("should request the new name", func() {
				rename := "pg1"
				instance := &flasharrayv1.ProtectionGroup{
					ObjectMeta: metav1.ObjectMeta{Name: "pg0", Namespace: "default"},
					Spec:       flasharrayv1.ProtectionGroupSpec{Rename: &rename},
				}
				group := &protectiongroups.ProtectionGroup{Name: "pg0"}
				opts, changed, err := protectionGroupUpdateRequired(instance, group)
				Expect(err).To(BeNil())
				Expect(changed).To(BeTrue())
				Expect(*opts.Name).To(Equal("pg1"))
				Expect(instance.Status.Delta).To(ContainSubstring("+Name: pg1"))
			})
		})
	})

	Describe("ReconcileUpdated", func() {
		Context("with a rename collision and a pending SafeMode lock", func() {
			It("should drop the rename and still apply the lock", func() {
				var patches []protectiongroups.GroupOpts
				mux := http.NewServeMux()
				mux.HandleFunc("/api/"+testRESTVersion+"/protection-groups", func(w http.ResponseWriter, req *http.Request) {
					switch req.Method {
					case http.MethodGet:
						_ = json.NewEncoder(w).Encode(map[string]interface{}{
							"items": []map[string]interface{}{{"name": "pg1"}},
						})
					case http.MethodPatch:
						opts := protectiongroups.GroupOpts{}
						_ = json.NewDecoder(req.Body).Decode(&opts)
						patches = append(patches, opts)
						_ = json.NewEncoder(w).Encode(map[string]interface{}{
							"items": []map[string]interface{}{
								{"name": "pg0", "retention_lock": "ratcheted"},
							},
						})
					}
				})
				client := newTestArrayClient(mux)

				logger, recorder := newTestEventLogger()
				r := &ProtectionGroupReconciler{ReconcilerEventLogger: logger}

				rename := "pg1"
				safeMode := flasharrayv1.SafeModeRatcheted
				instance := &flasharrayv1.ProtectionGroup{
					ObjectMeta: metav1.ObjectMeta{Name: "pg0", Namespace: "default"},
					Spec: flasharrayv1.ProtectionGroupSpec{
						Rename:   &rename,
						SafeMode: &safeMode,
					},
				}
				group := &protectiongroups.ProtectionGroup{Name: "pg0"}

				Expect(r.ReconcileUpdated(client, instance, group)).To(Succeed())
				Expect(recorder.Events).To(Receive(ContainSubstring("already exists")))
				Expect(patches).To(HaveLen(1))
				Expect(patches[0].Name).To(BeNil())
				Expect(patches[0].RetentionLock).ToNot(BeNil())
				Expect(*patches[0].RetentionLock).To(Equal(protectiongroups.RetentionLockRatcheted))
				Expect(group.RetentionLock).To(Equal(protectiongroups.RetentionLockRatcheted))
			})
		})

		Context("with only a colliding rename", func() {
			It("should degrade to a warning without issuing a request", func() {
				patched := 0
				mux := http.NewServeMux()
				mux.HandleFunc("/api/"+testRESTVersion+"/protection-groups", func(w http.ResponseWriter, req *http.Request) {
					switch req.Method {
					case http.MethodGet:
						_ = json.NewEncoder(w).Encode(map[string]interface{}{
							"items": []map[string]interface{}{{"name": "pg1"}},
						})
					case http.MethodPatch:
						patched++
					}
				})
				client := newTestArrayClient(mux)

				logger, recorder := newTestEventLogger()
				r := &ProtectionGroupReconciler{ReconcilerEventLogger: logger}

				rename := "pg1"
				instance := &flasharrayv1.ProtectionGroup{
					ObjectMeta: metav1.ObjectMeta{Name: "pg0", Namespace: "default"},
					Spec:       flasharrayv1.ProtectionGroupSpec{Rename: &rename},
				}
				group := &protectiongroups.ProtectionGroup{Name: "pg0"}

				Expect(r.ReconcileUpdated(client, instance, group)).To(Succeed())
				Expect(recorder.Events).To(Receive(ContainSubstring("already exists")))
				Expect(patched).To(BeZero())
			})
		})
	})
})
