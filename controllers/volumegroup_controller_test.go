/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2024-2026 Pure Storage, Inc. */
package controllers

import (
	"encoding/json"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	flasharrayv1 "github.com/pure-storage/flasharray-deployment-manager/api/v1"
	"github.com/pure-storage/flasharray-deployment-manager/flasharray/volumegroups"
)

var _ = Describe("VolumeGroup controller", func() {

	Describe("volumeGroupQoSOpts", func() {
		Context("with human readable limits", func() {
			It("should convert both limits", func() {
				bandwidth := "50M"
				iops := "100K"
				spec := &flasharrayv1.VolumeGroupSpec{
					BandwidthLimit: &bandwidth,
					IOPSLimit:      &iops,
				}
				qos, err := volumeGroupQoSOpts(spec)
				Expect(err).To(BeNil())
				Expect(qos).ToNot(BeNil())
				Expect(*qos.BandwidthLimit).To(Equal(int64(50 * 1024 * 1024)))
				Expect(*qos.IopsLimit).To(Equal(int64(100 * 1000)))
			})
		})

		Context("with the removal sentinel", func() {
			It("should produce a zero limit", func() {
				bandwidth := "0"
				spec := &flasharrayv1.VolumeGroupSpec{BandwidthLimit: &bandwidth}
				qos, err := volumeGroupQoSOpts(spec)
				Expect(err).To(BeNil())
				Expect(qos).ToNot(BeNil())
				Expect(*qos.BandwidthLimit).To(Equal(int64(0)))
			})
		})

		Context("with an unparseable limit", func() {
			It("should report a validation error", func() {
				bandwidth := "fifty"
				spec := &flasharrayv1.VolumeGroupSpec{BandwidthLimit: &bandwidth}
				_, err := volumeGroupQoSOpts(spec)
				Expect(err).ToNot(BeNil())
			})
		})
	})

	Describe("volumeGroupUpdateRequired", func() {
		Context("with a synchronized group", func() {
			It("should not request an update", func() {
				bandwidth := "1G"
				limit := int64(1024 * 1024 * 1024)
				instance := &flasharrayv1.VolumeGroup{
					ObjectMeta: metav1.ObjectMeta{Name: "vg0", Namespace: "default"},
					Spec:       flasharrayv1.VolumeGroupSpec{BandwidthLimit: &bandwidth},
				}
				group := &volumegroups.VolumeGroup{
					Name: "vg0",
					QoS:  volumegroups.QoS{BandwidthLimit: &limit},
				}
				_, changed, err := volumeGroupUpdateRequired(instance, group)
				Expect(err).To(BeNil())
				Expect(changed).To(BeFalse())
				Expect(instance.Status.Delta).To(Equal(""))
			})
		})

		Context("with a drifted bandwidth limit", func() {
			It("should request an update and record the delta", func() {
				bandwidth := "2G"
				limit := int64(1024 * 1024 * 1024)
				instance := &flasharrayv1.VolumeGroup{
					ObjectMeta: metav1.ObjectMeta{Name: "vg0", Namespace: "default"},
					Spec:       flasharrayv1.VolumeGroupSpec{BandwidthLimit: &bandwidth},
				}
				group := &volumegroups.VolumeGroup{
					Name: "vg0",
					QoS:  volumegroups.QoS{BandwidthLimit: &limit},
				}
				opts, changed, err := volumeGroupUpdateRequired(instance, group)
				Expect(err).To(BeNil())
				Expect(changed).To(BeTrue())
				Expect(opts.QoS).ToNot(BeNil())
				Expect(*opts.QoS.BandwidthLimit).To(Equal(int64(2 * 1024 * 1024 * 1024)))
				Expect(instance.Status.Delta).ToNot(Equal(""))
			})
		})

		Context("with a rename", func() {
			It("should request the new name", func() {
				rename := "vg1"
				instance := &flasharrayv1.VolumeGroup{
					ObjectMeta: metav1.ObjectMeta{Name: "vg0", Namespace: "default"},
					Spec:       flasharrayv1.VolumeGroupSpec{Rename: &rename},
				}
				group := &volumegroups.VolumeGroup{Name: "vg0"}
				opts, changed, err := volumeGroupUpdateRequired(instance, group)
				Expect(err).To(BeNil())
				Expect(changed).To(BeTrue())
				Expect(opts.Name).ToNot(BeNil())
				Expect(*opts.Name).To(Equal("vg1"))
			})
		})
	})

	Describe("ReconcileUpdated", func() {
		Context("with a rename collision and a drifted bandwidth limit", func() {
			It("should drop the rename and still apply the limit", func() {
				var patches []volumegroups.GroupOpts
				mux := http.NewServeMux()
				mux.HandleFunc("/api/"+testRESTVersion+"/volume-groups", func(w http.ResponseWriter, req *http.Request) {
					switch req.Method {
					case http.MethodGet:
						_ = json.NewEncoder(w).Encode(map[string]interface{}{
							"items": []map[string]interface{}{{"name": "vg1"}},
						})
					case http.MethodPatch:
						opts := volumegroups.GroupOpts{}
						_ = json.NewDecoder(req.Body).Decode(&opts)
						patches = append(patches, opts)
						_ = json.NewEncoder(w).Encode(map[string]interface{}{
							"items": []map[string]interface{}{
								{"name": "vg0", "qos": map[string]int64{"bandwidth_limit": 52428800}},
							},
						})
					}
				})
				client := newTestArrayClient(mux)

				logger, recorder := newTestEventLogger()
				r := &VolumeGroupReconciler{ReconcilerEventLogger: logger}

				rename := "vg1"
				bandwidth := "50M"
				instance := &flasharrayv1.VolumeGroup{
					ObjectMeta: metav1.ObjectMeta{Name: "vg0", Namespace: "default"},
					Spec: flasharrayv1.VolumeGroupSpec{
						Rename:         &rename,
						BandwidthLimit: &bandwidth,
					},
				}
				group := &volumegroups.VolumeGroup{Name: "vg0"}

				Expect(r.ReconcileUpdated(client, instance, group)).To(Succeed())
				Expect(recorder.Events).To(Receive(ContainSubstring("already exists")))
				Expect(patches).To(HaveLen(1))
				Expect(patches[0].Name).To(BeNil())
				Expect(patches[0].QoS).ToNot(BeNil())
				Expect(*patches[0].QoS.BandwidthLimit).To(Equal(int64(50 * 1024 * 1024)))
				Expect(*group.QoS.BandwidthLimit).To(Equal(int64(50 * 1024 * 1024)))
			})
		})

		Context("with only a colliding rename", func() {
			It("should degrade to a warning without issuing a request", func() {
				patched := 0
				mux := http.NewServeMux()
				mux.HandleFunc("/api/"+testRESTVersion+"/volume-groups", func(w http.ResponseWriter, req *http.Request) {
					switch req.Method {
					case http.MethodGet:
						_ = json.NewEncoder(w).Encode(map[string]interface{}{
							"items": []map[string]interface{}{{"name": "vg1"}},
						})
					case http.MethodPatch:
						patched++
					}
				})
				client := newTestArrayClient(mux)

				logger, recorder := newTestEventLogger()
				r := &VolumeGroupReconciler{ReconcilerEventLogger: logger}

				rename := "vg1"
				instance := &flasharrayv1.VolumeGroup{
					ObjectMeta: metav1.ObjectMeta{Name: "vg0", Namespace: "default"},
					Spec:       flasharrayv1.VolumeGroupSpec{Rename: &rename},
				}
				group := &volumegroups.VolumeGroup{Name: "vg0"}

				Expect(r.ReconcileUpdated(client, instance, group)).To(Succeed())
				Expect(recorder.Events).To(Receive(ContainSubstring("already exists")))
				Expect(patched).To(BeZero())
				Expect(group.Name).To(Equal("vg0"))
			})
		})
	})
})
