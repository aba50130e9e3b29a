/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2024-2026 Pure Storage, Inc. */

package manager

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"

	v1 "github.com/pure-storage/flasharray-deployment-manager/api/v1"
)

var _ = Describe("Monitor", func() {
	Describe("CommonMonitorBody state handling", func() {
		Context("with a formatted state", func() {
			It("should report the last state set", func() {
				body := &CommonMonitorBody{}
				body.SetState("waiting for %q to be created", "pgroup1")
				Expect(body.State()).To(Equal("waiting for \"pgroup1\" to be created"))
				body.SetState("resource ready")
				Expect(body.State()).To(Equal("resource ready"))
			})
		})
	})

	Describe("Monitor key generation", func() {
		Context("with a populated object", func() {
			It("should key on the object UID", func() {
				object := &v1.ProtectionGroup{
					ObjectMeta: metav1.ObjectMeta{
						Name:      "pgroup1",
						Namespace: "deployment",
						UID:       types.UID("6a2f21a5-0d7f-4c3f-9d73-0a6b9c2ff001"),
					},
				}
				Expect(BuildMonitorKey(object)).To(Equal("6a2f21a5-0d7f-4c3f-9d73-0a6b9c2ff001"))

				monitor := &Monitor{Object: object}
				Expect(monitor.GetKey()).To(Equal("6a2f21a5-0d7f-4c3f-9d73-0a6b9c2ff001"))
				Expect(monitor.GetNamespace()).To(Equal("deployment"))
			})
		})
	})
})
