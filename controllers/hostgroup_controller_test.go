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
	"github.com/pure-storage/flasharray-deployment-manager/flasharray/hostgroups"
)

var _ = Describe("HostGroup controller", func() {

	Describe("hostGroupUpdateRequired", func() {
		Context("with a synchronized group", func() {
			It("should not request an update", func() {
				instance := &flasharrayv1.HostGroup{
					ObjectMeta: metav1.ObjectMeta{Name: "hg0", Namespace: "default"},
				}
				group := &hostgroups.HostGroup{Name: "hg0"}
				_, changed := hostGroupUpdateRequired(instance, group)
				Expect(changed).To(BeFalse())
				Expect(instance.Status.Delta).To(Equal(""))
			})
		})

		Context("with a rename", func() {
			It("should request the new name", func() {
				rename := "hg1"
				instance := &flasharrayv1.HostGroup{
					ObjectMeta: metav1.ObjectMeta{Name: "hg0", Namespace: "default"},
					Spec:       flasharrayv1.HostGroupSpec{Rename: &rename},
				}
				group := &hostgroups.HostGroup{Name: "hg0"}
				opts, changed := hostGroupUpdateRequired(instance, group)
				Expect(changed).To(BeTrue())
				Expect(opts.Name).ToNot(BeNil())
				Expect(*opts.Name).To(Equal("hg1"))
			})
		})
	})

	Describe("ReconcileUpdated", func() {
		Context("with a colliding rename", func() {
			It("should degrade to a warning without issuing a request", func() {
				patched := 0
				mux := http.NewServeMux()
				mux.HandleFunc("/api/"+testRESTVersion+"/host-groups", func(w http.ResponseWriter, req *http.Request) {
					switch req.Method {
					case http.MethodGet:
						_ = json.NewEncoder(w).Encode(map[string]interface{}{
							"items": []map[string]interface{}{{"name": "hg1"}},
						})
					case http.MethodPatch:
						patched++
					}
				})
				client := newTestArrayClient(mux)

				logger, recorder := newTestEventLogger()
				r := &HostGroupReconciler{ReconcilerEventLogger: logger}

				rename := "hg1"
				instance := &flasharrayv1.HostGroup{
					ObjectMeta: metav1.ObjectMeta{Name: "hg0", Namespace: "default"},
					Spec:       flasharrayv1.HostGroupSpec{Rename: &rename},
				}
				group := &hostgroups.HostGroup{Name: "hg0"}

				Expect(r.ReconcileUpdated(client, instance, group)).To(Succeed())
				Expect(recorder.Events).To(Receive(ContainSubstring("already exists")))
				Expect(patched).To(BeZero())
				Expect(group.Name).To(Equal("hg0"))
			})
		})

		Context("with a rename to a free name", func() {
			It("should issue the rename", func() {
				var patches []hostgroups.GroupOpts
				mux := http.NewServeMux()
				mux.HandleFunc("/api/"+testRESTVersion+"/host-groups", func(w http.ResponseWriter, req *http.Request) {
					switch req.Method {
					case http.MethodGet:
						_ = json.NewEncoder(w).Encode(map[string]interface{}{
							"items": []map[string]interface{}{},
						})
					case http.MethodPatch:
						opts := hostgroups.GroupOpts{}
						_ = json.NewDecoder(req.Body).Decode(&opts)
						patches = append(patches, opts)
						_ = json.NewEncoder(w).Encode(map[string]interface{}{
							"items": []map[string]interface{}{{"name": "hg1"}},
						})
					}
				})
				client := newTestArrayClient(mux)

				logger, _ := newTestEventLogger()
				r := &HostGroupReconciler{ReconcilerEventLogger: logger}

				rename := "hg1"
				instance := &flasharrayv1.HostGroup{
					ObjectMeta: metav1.ObjectMeta{Name: "hg0", Namespace: "default"},
					Spec:       flasharrayv1.HostGroupSpec{Rename: &rename},
				}
				group := &hostgroups.HostGroup{Name: "hg0"}

				Expect(r.ReconcileUpdated(client, instance, group)).To(Succeed())
				Expect(patches).To(HaveLen(1))
				Expect(patches[0].Name).ToNot(BeNil())
				Expect(*patches[0].Name).To(Equal("hg1"))
				Expect(group.Name).To(Equal("hg1"))
			})
		})
	})
})
