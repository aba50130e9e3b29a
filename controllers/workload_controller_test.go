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
	"github.com/pure-storage/flasharray-deployment-manager/flasharray/workloads"
)

var _ = Describe("Workload controller", func() {

	Describe("workloadParameters", func() {
		Context("with an unordered parameter map", func() {
			It("should produce a deterministically sorted list", func() {
				spec := &flasharrayv1.WorkloadSpec{
					Preset: "oracle-small",
					Parameters: map[string]string{
						"sga_size":  "16G",
						"data_size": "1T",
						"log_size":  "100G",
					},
				}
				params := workloadParameters(spec)
				Expect(params).To(Equal([]workloads.Parameter{
					{Name: "data_size", Value: "1T"},
					{Name: "log_size", Value: "100G"},
					{Name: "sga_size", Value: "16G"},
				}))
			})
		})

		Context("with no parameters", func() {
			It("should produce a nil list", func() {
				spec := &flasharrayv1.WorkloadSpec{Preset: "oracle-small"}
				Expect(workloadParameters(spec)).To(BeNil())
			})
		})
	})

	Describe("workloadCreateParameters", func() {
		It("should fold preset defaults underneath the assignments", func() {
			defaultLog := "50G"
			defaultData := "500G"
			preset := &workloads.Preset{
				Name: "oracle-small",
				Parameters: []workloads.PresetParameter{
					{Name: "data_size", Default: &defaultData},
					{Name: "log_size", Default: &defaultLog},
					{Name: "instance_name"},
				},
			}
			spec := &flasharrayv1.WorkloadSpec{
				Preset: "oracle-small",
				Parameters: map[string]string{
					"data_size":     "1T",
					"instance_name": "prod",
				},
			}
			params, err := workloadCreateParameters(spec, preset)
			Expect(err).To(BeNil())
			Expect(params).To(Equal([]workloads.Parameter{
				{Name: "data_size", Value: "1T"},
				{Name: "instance_name", Value: "prod"},
				{Name: "log_size", Value: "50G"},
			}))
		})
	})

	Describe("workloadUpdateRequired", func() {
		Context("with a synchronized workload", func() {
			It("should not request an update", func() {
				instance := &flasharrayv1.Workload{
					ObjectMeta: metav1.ObjectMeta{Name: "wl0", Namespace: "default"},
					Spec:       flasharrayv1.WorkloadSpec{Preset: "oracle-small"},
				}
				workload := &workloads.Workload{Name: "wl0"}
				_, changed := workloadUpdateRequired(instance, workload)
				Expect(changed).To(BeFalse())
				Expect(instance.Status.Delta).To(Equal(""))
			})
		})

		Context("with a rename", func() {
			It("should request the new name", func() {
				rename := "wl1"
				instance := &flasharrayv1.Workload{
					ObjectMeta: metav1.ObjectMeta{Name: "wl0", Namespace: "default"},
					Spec: flasharrayv1.WorkloadSpec{
						Preset: "oracle-small",
						Rename: &rename,
					},
				}
				workload := &workloads.Workload{Name: "wl0"}
				opts, changed := workloadUpdateRequired(instance, workload)
				Expect(changed).To(BeTrue())
				Expect(*opts.Name).To(Equal("wl1"))
				Expect(instance.Status.Delta).To(ContainSubstring("+Name: wl1"))
			})
		})

		Context("with an already applied rename", func() {
			It("should not request an update", func() {
				rename := "wl1"
				instance := &flasharrayv1.Workload{
					ObjectMeta: metav1.ObjectMeta{Name: "wl0", Namespace: "default"},
					Spec: flasharrayv1.WorkloadSpec{
						Preset: "oracle-small",
						Rename: &rename,
					},
				}
				workload := &workloads.Workload{Name: "wl1"}
				_, changed := workloadUpdateRequired(instance, workload)
				Expect(changed).To(BeFalse())
			})
		})
	})

	Describe("ReconcileUpdated", func() {
		Context("with a colliding rename", func() {
			It("should degrade to a warning without issuing a request", func() {
				patched := 0
				mux := http.NewServeMux()
				mux.HandleFunc("/api/"+testRESTVersion+"/workloads", func(w http.ResponseWriter, req *http.Request) {
					switch req.Method {
					case http.MethodGet:
						_ = json.NewEncoder(w).Encode(map[string]interface{}{
							"items": []map[string]interface{}{{"name": "wl1"}},
						})
					case http.MethodPatch:
						patched++
					}
				})
				client := newTestArrayClient(mux)

				logger, recorder := newTestEventLogger()
				r := &WorkloadReconciler{ReconcilerEventLogger: logger}

				rename := "wl1"
				instance := &flasharrayv1.Workload{
					ObjectMeta: metav1.ObjectMeta{Name: "wl0", Namespace: "default"},
					Spec: flasharrayv1.WorkloadSpec{
						Preset: "oracle-small",
						Rename: &rename,
					},
				}
				workload := &workloads.Workload{
					Name:   "wl0",
					Preset: workloads.ResourceName{Name: "oracle-small"},
				}

				Expect(r.ReconcileUpdated(client, instance, workload)).To(Succeed())
				Expect(recorder.Events).To(Receive(ContainSubstring("already exists")))
				Expect(patched).To(BeZero())
				Expect(workload.Name).To(Equal("wl0"))
			})
		})

		Context("with a rename to a free name", func() {
			It("should issue the rename", func() {
				var patches []workloads.WorkloadOpts
				mux := http.NewServeMux()
				mux.HandleFunc("/api/"+testRESTVersion+"/workloads", func(w http.ResponseWriter, req *http.Request) {
					switch req.Method {
					case http.MethodGet:
						_ = json.NewEncoder(w).Encode(map[string]interface{}{
							"items": []map[string]interface{}{},
						})
					case http.MethodPatch:
						opts := workloads.WorkloadOpts{}
						_ = json.NewDecoder(req.Body).Decode(&opts)
						patches = append(patches, opts)
						_ = json.NewEncoder(w).Encode(map[string]interface{}{
							"items": []map[string]interface{}{
								{"name": "wl1", "preset": map[string]string{"name": "oracle-small"}},
							},
						})
					}
				})
				client := newTestArrayClient(mux)

				logger, _ := newTestEventLogger()
				r := &WorkloadReconciler{ReconcilerEventLogger: logger}

				rename := "wl1"
				instance := &flasharrayv1.Workload{
					ObjectMeta: metav1.ObjectMeta{Name: "wl0", Namespace: "default"},
					Spec: flasharrayv1.WorkloadSpec{
						Preset: "oracle-small",
						Rename: &rename,
					},
				}
				workload := &workloads.Workload{
					Name:   "wl0",
					Preset: workloads.ResourceName{Name: "oracle-small"},
				}

				Expect(r.ReconcileUpdated(client, instance, workload)).To(Succeed())
				Expect(patches).To(HaveLen(1))
				Expect(patches[0].Name).ToNot(BeNil())
				Expect(*patches[0].Name).To(Equal("wl1"))
				Expect(workload.Name).To(Equal("wl1"))
			})
		})
	})
})
