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
	"github.com/pure-storage/flasharray-deployment-manager/flasharray/realms"
)

var _ = Describe("Realm controller", func() {

	Describe("realmQuotaLimit", func() {
		It("should convert a human readable limit", func() {
			quota := "10T"
			limit, err := realmQuotaLimit(&flasharrayv1.RealmSpec{QuotaLimit: &quota})
			Expect(err).To(BeNil())
			Expect(limit).ToNot(BeNil())
			Expect(*limit).To(Equal(int64(10) << 40))
		})

		It("should leave an unmanaged limit alone", func() {
			limit, err := realmQuotaLimit(&flasharrayv1.RealmSpec{})
			Expect(err).To(BeNil())
			Expect(limit).To(BeNil())
		})

		It("should reject an unparseable limit", func() {
			quota := "lots"
			_, err := realmQuotaLimit(&flasharrayv1.RealmSpec{QuotaLimit: &quota})
			Expect(err).ToNot(BeNil())
		})
	})

	Describe("realmUpdateRequired", func() {
		Context("with a synchronized realm", func() {
			It("should not request an update", func() {
				quota := "10T"
				limit := int64(10) << 40
				instance := &flasharrayv1.Realm{
					ObjectMeta: metav1.ObjectMeta{Name: "tenant-a", Namespace: "default"},
					Spec:       flasharrayv1.RealmSpec{QuotaLimit: &quota},
				}
				realm := &realms.Realm{Name: "tenant-a", QuotaLimit: &limit}
				_, changed, err := realmUpdateRequired(instance, realm)
				Expect(err).To(BeNil())
				Expect(changed).To(BeFalse())
				Expect(instance.Status.Delta).To(Equal(""))
			})
		})

		Context("with a drifted quota limit", func() {
			It("should request the new limit", func() {
				quota := "20T"
				limit := int64(10) << 40
				instance := &flasharrayv1.Realm{
					ObjectMeta: metav1.ObjectMeta{Name: "tenant-a", Namespace: "default"},
					Spec:       flasharrayv1.RealmSpec{QuotaLimit: &quota},
				}
				realm := &realms.Realm{Name: "tenant-a", QuotaLimit: &limit}
				opts, changed, err := realmUpdateRequired(instance, realm)
				Expect(err).To(BeNil())
				Expect(changed).To(BeTrue())
				Expect(*opts.QuotaLimit).To(Equal(int64(20) << 40))
			})
		})

		Context("with a rename", func() {
			It("should request the new name", func() {
				rename := "tenant-b"
				instance := &flasharrayv1.Realm{
					ObjectMeta: metav1.ObjectMeta{Name: "tenant-a", Namespace: "default"},
					Spec:       flasharrayv1.RealmSpec{Rename: &rename},
				}
				realm := &realms.Realm{Name: "tenant-a"}
				opts, changed, err := realmUpdateRequired(instance, realm)
				Expect(err).To(BeNil())
				Expect(changed).To(BeTrue())
				Expect(*opts.Name).To(Equal("tenant-b"))
			})
		})
	})

	Describe("ReconcileUpdated", func() {
		Context("with a rename collision and a drifted quota", func() {
			It("should drop the rename and still apply the quota", func() {
				var patches []realms.RealmOpts
				mux := http.NewServeMux()
				mux.HandleFunc("/api/"+testRESTVersion+"/realms", func(w http.ResponseWriter, req *http.Request) {
					switch req.Method {
					case http.MethodGet:
						_ = json.NewEncoder(w).Encode(map[string]interface{}{
							"items": []map[string]interface{}{{"name": "tenant-b"}},
						})
					case http.MethodPatch:
						opts := realms.RealmOpts{}
						_ = json.NewDecoder(req.Body).Decode(&opts)
						patches = append(patches, opts)
						_ = json.NewEncoder(w).Encode(map[string]interface{}{
							"items": []map[string]interface{}{
								{"name": "tenant-a", "quota_limit": 1073741824},
							},
						})
					}
				})
				client := newTestArrayClient(mux)

				logger, recorder := newTestEventLogger()
				r := &RealmReconciler{ReconcilerEventLogger: logger}

				rename := "tenant-b"
				quota := "1G"
				instance := &flasharrayv1.Realm{
					ObjectMeta: metav1.ObjectMeta{Name: "tenant-a", Namespace: "default"},
					Spec: flasharrayv1.RealmSpec{
						Rename:     &rename,
						QuotaLimit: &quota,
					},
				}
				realm := &realms.Realm{Name: "tenant-a"}

				Expect(r.ReconcileUpdated(client, instance, realm)).To(Succeed())
				Expect(recorder.Events).To(Receive(ContainSubstring("already exists")))
				Expect(patches).To(HaveLen(1))
				Expect(patches[0].Name).To(BeNil())
				Expect(patches[0].QuotaLimit).ToNot(BeNil())
				Expect(*patches[0].QuotaLimit).To(Equal(int64(1024 * 1024 * 1024)))
				Expect(*realm.QuotaLimit).To(Equal(int64(1024 * 1024 * 1024)))
			})
		})

		Context("with only a colliding rename", func() {
			It("should degrade to a warning without issuing a request", func() {
				patched := 0
				mux := http.NewServeMux()
				mux.HandleFunc("/api/"+testRESTVersion+"/realms", func(w http.ResponseWriter, req *http.Request) {
					switch req.Method {
					case http.MethodGet:
						_ = json.NewEncoder(w).Encode(map[string]interface{}{
							"items": []map[string]interface{}{{"name": "tenant-b"}},
						})
					case http.MethodPatch:
						patched++
					}
				})
				client := newTestArrayClient(mux)

				logger, recorder := newTestEventLogger()
				r := &RealmReconciler{ReconcilerEventLogger: logger}

				rename := "tenant-b"
				instance := &flasharrayv1.Realm{
					ObjectMeta: metav1.ObjectMeta{Name: "tenant-a", Namespace: "default"},
					Spec:       flasharrayv1.RealmSpec{Rename: &rename},
				}
				realm := &realms.Realm{Name: "tenant-a"}

				Expect(r.ReconcileUpdated(client, instance, realm)).To(Succeed())
				Expect(recorder.Events).To(Receive(ContainSubstring("already exists")))
				Expect(patched).To(BeZero())
			})
		})
	})
})
