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
	"github.com/pure-storage/flasharray-deployment-manager/flasharray/pods"
)

var _ = Describe("Pod controller", func() {

	Describe("podQuotaLimit", func() {
		It("should convert a human readable limit", func() {
			quota := "1T"
			limit, err := podQuotaLimit(&flasharrayv1.PodSpec{QuotaLimit: &quota})
			Expect(err).To(BeNil())
			Expect(limit).ToNot(BeNil())
			Expect(*limit).To(Equal(int64(1) << 40))
		})

		It("should treat the zero sentinel as a removal", func() {
			quota := "0"
			limit, err := podQuotaLimit(&flasharrayv1.PodSpec{QuotaLimit: &quota})
			Expect(err).To(BeNil())
			Expect(limit).ToNot(BeNil())
			Expect(*limit).To(Equal(int64(0)))
		})

		It("should reject an unparseable limit", func() {
			quota := "huge"
			_, err := podQuotaLimit(&flasharrayv1.PodSpec{QuotaLimit: &quota})
			Expect(err).ToNot(BeNil())
		})
	})

	Describe("podMemberNames", func() {
		It("should extract the member array names", func() {
			pod := &pods.Pod{Arrays: []pods.PodArray{
				{Name: "array-a", Status: "online"},
				{Name: "array-b", Status: "online"},
			}}
			Expect(podMemberNames(pod)).To(Equal([]string{"array-a", "array-b"}))
		})
	})

	Describe("podUpdateRequired", func() {
		Context("with a synchronized pod", func() {
			It("should not request an update", func() {
				mediator := "purestorage"
				quota := "1T"
				limit := int64(1) << 40
				instance := &flasharrayv1.Pod{
					ObjectMeta: metav1.ObjectMeta{Name: "pod0", Namespace: "default"},
					Spec: flasharrayv1.PodSpec{
						Mediator:   &mediator,
						QuotaLimit: &quota,
					},
				}
				pod := &pods.Pod{
					Name:       "pod0",
					Mediator:   "purestorage",
					QuotaLimit: &limit,
				}
				_, changed, err := podUpdateRequired(instance, pod)
				Expect(err).To(BeNil())
				Expect(changed).To(BeFalse())
				Expect(instance.Status.Delta).To(Equal(""))
			})
		})

		Context("with a drifted mediator", func() {
			It("should request the new mediator", func() {
				mediator := "mediator.example.com"
				instance := &flasharrayv1.Pod{
					ObjectMeta: metav1.ObjectMeta{Name: "pod0", Namespace: "default"},
					Spec:       flasharrayv1.PodSpec{Mediator: &mediator},
				}
				pod := &pods.Pod{Name: "pod0", Mediator: "purestorage"}
				opts, changed, err := podUpdateRequired(instance, pod)
				Expect(err).To(BeNil())
				Expect(changed).To(BeTrue())
				Expect(*opts.Mediator).To(Equal("mediator.example.com"))
			})
		})

		Context("with a promotion request", func() {
			It("should request promotion of a demoted pod", func() {
				promoted := true
				instance := &flasharrayv1.Pod{
					ObjectMeta: metav1.ObjectMeta{Name: "pod0", Namespace: "default"},
					Spec:       flasharrayv1.PodSpec{Promoted: &promoted},
				}
				pod := &pods.Pod{
					Name:                    "pod0",
					PromotionStatus:         pods.StateDemoted,
					RequestedPromotionState: pods.StateDemoted,
				}
				opts, changed, err := podUpdateRequired(instance, pod)
				Expect(err).To(BeNil())
				Expect(changed).To(BeTrue())
				Expect(*opts.RequestedPromotionState).To(Equal(pods.StatePromoted))
			})

			It("should not repeat an in-flight promotion request", func() {
				promoted := true
				instance := &flasharrayv1.Pod{
					ObjectMeta: metav1.ObjectMeta{Name: "pod0", Namespace: "default"},
					Spec:       flasharrayv1.PodSpec{Promoted: &promoted},
				}
				pod := &pods.Pod{
					Name:                    "pod0",
					PromotionStatus:         pods.StateDemoted,
					RequestedPromotionState: pods.StatePromoted,
				}
				_, changed, err := podUpdateRequired(instance, pod)
				Expect(err).To(BeNil())
				Expect(changed).To(BeFalse())
			})
		})

		Context("with drifted failover preferences", func() {
			It("should request the full preference list", func() {
				instance := &flasharrayv1.Pod{
					ObjectMeta: metav1.ObjectMeta{Name: "pod0", Namespace: "default"},
					Spec: flasharrayv1.PodSpec{
						FailoverPreference: []string{"array-a", "array-b"},
					},
				}
				pod := &pods.Pod{
					Name:                "pod0",
					FailoverPreferences: []pods.ResourceName{{Name: "array-a"}},
				}
				opts, changed, err := podUpdateRequired(instance, pod)
				Expect(err).To(BeNil())
				Expect(changed).To(BeTrue())
				Expect(opts.FailoverPreferences).To(Equal([]pods.ResourceName{
					{Name: "array-a"}, {Name: "array-b"}}))
			})
		})
	})

	Describe("ReconcileUpdated", func() {
		Context("with a rename collision and a drifted mediator", func() {
			It("should drop the rename and still apply the mediator", func() {
				var patches []pods.PodOpts
				mux := http.NewServeMux()
				mux.HandleFunc("/api/"+testRESTVersion+"/pods", func(w http.ResponseWriter, req *http.Request) {
					switch req.Method {
					case http.MethodGet:
						_ = json.NewEncoder(w).Encode(map[string]interface{}{
							"items": []map[string]interface{}{{"name": "pod1"}},
						})
					case http.MethodPatch:
						opts := pods.PodOpts{}
						_ = json.NewDecoder(req.Body).Decode(&opts)
						patches = append(patches, opts)
						_ = json.NewEncoder(w).Encode(map[string]interface{}{
							"items": []map[string]interface{}{
								{"name": "pod0", "mediator": "mediator.example.com"},
							},
						})
					}
				})
				client := newTestArrayClient(mux)

				logger, recorder := newTestEventLogger()
				r := &PodReconciler{ReconcilerEventLogger: logger}

				rename := "pod1"
				mediator := "mediator.example.com"
				instance := &flasharrayv1.Pod{
					ObjectMeta: metav1.ObjectMeta{Name: "pod0", Namespace: "default"},
					Spec: flasharrayv1.PodSpec{
						Rename:   &rename,
						Mediator: &mediator,
					},
				}
				pod := &pods.Pod{Name: "pod0", Mediator: "purestorage"}

				Expect(r.ReconcileUpdated(client, instance, pod)).To(Succeed())
				Expect(recorder.Events).To(Receive(ContainSubstring("already exists")))
				Expect(patches).To(HaveLen(1))
				Expect(patches[0].Name).To(BeNil())
				Expect(patches[0].Mediator).ToNot(BeNil())
				Expect(*patches[0].Mediator).To(Equal("mediator.example.com"))
				Expect(pod.Mediator).To(Equal("mediator.example.com"))
			})
		})

		Context("with only a colliding rename", func() {
			It("should degrade to a warning without issuing a request", func() {
				patched := 0
				mux := http.NewServeMux()
				mux.HandleFunc("/api/"+testRESTVersion+"/pods", func(w http.ResponseWriter, req *http.Request) {
					switch req.Method {
					case http.MethodGet:
						_ = json.NewEncoder(w).Encode(map[string]interface{}{
							"items": []map[string]interface{}{{"name": "pod1"}},
						})
					case http.MethodPatch:
						patched++
					}
				})
				client := newTestArrayClient(mux)

				logger, recorder := newTestEventLogger()
				r := &PodReconciler{ReconcilerEventLogger: logger}

				rename := "pod1"
				instance := &flasharrayv1.Pod{
					ObjectMeta: metav1.ObjectMeta{Name: "pod0", Namespace: "default"},
					Spec:       flasharrayv1.PodSpec{Rename: &rename},
				}
				pod := &pods.Pod{Name: "pod0"}

				Expect(r.ReconcileUpdated(client, instance, pod)).To(Succeed())
				Expect(recorder.Events).To(Receive(ContainSubstring("already exists")))
				Expect(patched).To(BeZero())
			})
		})

		Context("with a demotion requested on a stretched pod", func() {
			It("should fail before issuing the request", func() {
				patched := 0
				mux := http.NewServeMux()
				mux.HandleFunc("/api/"+testRESTVersion+"/pods", func(w http.ResponseWriter, req *http.Request) {
					if req.Method == http.MethodPatch {
						patched++
					}
				})
				client := newTestArrayClient(mux)

				logger, _ := newTestEventLogger()
				r := &PodReconciler{ReconcilerEventLogger: logger}

				promoted := false
				instance := &flasharrayv1.Pod{
					ObjectMeta: metav1.ObjectMeta{Name: "pod0", Namespace: "default"},
					Spec:       flasharrayv1.PodSpec{Promoted: &promoted},
				}
				pod := &pods.Pod{
					Name:            "pod0",
					PromotionStatus: pods.StatePromoted,
					Arrays: []pods.PodArray{
						{Name: "array0", Status: "online"},
						{Name: "array1", Status: "online"},
					},
				}

				err := r.ReconcileUpdated(client, instance, pod)
				Expect(err).ToNot(BeNil())
				Expect(err.Error()).To(ContainSubstring("unstretch before changing the promotion state"))
				Expect(patched).To(BeZero())
			})
		})
	})

	Describe("ReconcileMembers", func() {
		Context("with a stretch requested on a demoted pod", func() {
			It("should fail before issuing the request", func() {
				stretched := 0
				mux := http.NewServeMux()
				mux.HandleFunc("/api/"+testRESTVersion+"/arrays", func(w http.ResponseWriter, req *http.Request) {
					_ = json.NewEncoder(w).Encode(map[string]interface{}{
						"items": []map[string]interface{}{{"name": "array0"}},
					})
				})
				mux.HandleFunc("/api/"+testRESTVersion+"/pods/arrays", func(w http.ResponseWriter, req *http.Request) {
					stretched++
				})
				client := newTestArrayClient(mux)

				logger, _ := newTestEventLogger()
				r := &PodReconciler{ReconcilerEventLogger: logger}

				peer := "array1"
				instance := &flasharrayv1.Pod{
					ObjectMeta: metav1.ObjectMeta{Name: "pod0", Namespace: "default"},
					Spec:       flasharrayv1.PodSpec{StretchArray: &peer},
				}
				pod := &pods.Pod{
					Name:            "pod0",
					PromotionStatus: pods.StateDemoted,
					Arrays:          []pods.PodArray{{Name: "array0", Status: "online"}},
				}

				err := r.ReconcileMembers(client, instance, pod)
				Expect(err).ToNot(BeNil())
				Expect(err.Error()).To(ContainSubstring("promote before stretching"))
				Expect(stretched).To(BeZero())
			})
		})
	})
})
