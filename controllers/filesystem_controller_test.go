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
	"github.com/pure-storage/flasharray-deployment-manager/flasharray/filesystems"
)

var _ = Describe("FileSystem controller", func() {

	Describe("fileSystemUpdateRequired", func() {
		Context("with a synchronized file system", func() {
			It("should not request an update", func() {
				instance := &flasharrayv1.FileSystem{
					ObjectMeta: metav1.ObjectMeta{Name: "fs0", Namespace: "default"},
				}
				fs := &filesystems.FileSystem{Name: "fs0"}
				_, changed := fileSystemUpdateRequired(instance, fs)
				Expect(changed).To(BeFalse())
				Expect(instance.Status.Delta).To(Equal(""))
			})
		})

		Context("with a rename", func() {
			It("should request the new name", func() {
				rename := "fs1"
				instance := &flasharrayv1.FileSystem{
					ObjectMeta: metav1.ObjectMeta{Name: "fs0", Namespace: "default"},
					Spec:       flasharrayv1.FileSystemSpec{Rename: &rename},
				}
				fs := &filesystems.FileSystem{Name: "fs0"}
				opts, changed := fileSystemUpdateRequired(instance, fs)
				Expect(changed).To(BeTrue())
				Expect(opts.Name).ToNot(BeNil())
				Expect(*opts.Name).To(Equal("fs1"))
				Expect(instance.Status.Delta).To(ContainSubstring("+Name: fs1"))
			})
		})
	})

	Describe("ReconcileUpdated", func() {
		Context("with a colliding rename", func() {
			It("should degrade to a warning without issuing a request", func() {
				patched := 0
				mux := http.NewServeMux()
				mux.HandleFunc("/api/"+testRESTVersion+"/file-systems", func(w http.ResponseWriter, req *http.Request) {
					switch req.Method {
					case http.MethodGet:
						_ = json.NewEncoder(w).Encode(map[string]interface{}{
							"items": []map[string]interface{}{{"name": "fs1"}},
						})
					case http.MethodPatch:
						patched++
					}
				})
				client := newTestArrayClient(mux)

				logger, recorder := newTestEventLogger()
				r := &FileSystemReconciler{ReconcilerEventLogger: logger}

				rename := "fs1"
				instance := &flasharrayv1.FileSystem{
					ObjectMeta: metav1.ObjectMeta{Name: "fs0", Namespace: "default"},
					Spec:       flasharrayv1.FileSystemSpec{Rename: &rename},
				}
				fs := &filesystems.FileSystem{Name: "fs0"}

				Expect(r.ReconcileUpdated(client, instance, fs)).To(Succeed())
				Expect(recorder.Events).To(Receive(ContainSubstring("already exists")))
				Expect(patched).To(BeZero())
				Expect(fs.Name).To(Equal("fs0"))
			})
		})

		Context("with a rename to a free name", func() {
			It("should issue the rename", func() {
				var patches []filesystems.FileSystemOpts
				mux := http.NewServeMux()
				mux.HandleFunc("/api/"+testRESTVersion+"/file-systems", func(w http.ResponseWriter, req *http.Request) {
					switch req.Method {
					case http.MethodGet:
						_ = json.NewEncoder(w).Encode(map[string]interface{}{
							"items": []map[string]interface{}{},
						})
					case http.MethodPatch:
						opts := filesystems.FileSystemOpts{}
						_ = json.NewDecoder(req.Body).Decode(&opts)
						patches = append(patches, opts)
						_ = json.NewEncoder(w).Encode(map[string]interface{}{
							"items": []map[string]interface{}{{"name": "fs1"}},
						})
					}
				})
				client := newTestArrayClient(mux)

				logger, _ := newTestEventLogger()
				r := &FileSystemReconciler{ReconcilerEventLogger: logger}

				rename := "fs1"
				instance := &flasharrayv1.FileSystem{
					ObjectMeta: metav1.ObjectMeta{Name: "fs0", Namespace: "default"},
					Spec:       flasharrayv1.FileSystemSpec{Rename: &rename},
				}
				fs := &filesystems.FileSystem{Name: "fs0"}

				Expect(r.ReconcileUpdated(client, instance, fs)).To(Succeed())
				Expect(patches).To(HaveLen(1))
				Expect(patches[0].Name).ToNot(BeNil())
				Expect(*patches[0].Name).To(Equal("fs1"))
				Expect(fs.Name).To(Equal("fs1"))
			})
		})
	})
})
