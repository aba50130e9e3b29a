/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2024-2026 Pure Storage, Inc. */
package controllers

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	flasharrayv1 "github.com/pure-storage/flasharray-deployment-manager/api/v1"
	"github.com/pure-storage/flasharray-deployment-manager/flasharray/directoryservices"
)

var _ = Describe("DirectoryService controller", func() {

	Describe("directoryServiceUpdateRequired", func() {
		Context("with a synchronized role", func() {
			It("should not request an update", func() {
				enabled := true
				baseDN := "DC=example,DC=com"
				instance := &flasharrayv1.DirectoryService{
					ObjectMeta: metav1.ObjectMeta{Name: "management", Namespace: "default"},
					Spec: flasharrayv1.DirectoryServiceSpec{
						Role:    directoryservices.RoleManagement,
						Enabled: &enabled,
						BaseDN:  &baseDN,
					},
				}
				service := &directoryservices.DirectoryService{
					Name:    directoryservices.RoleManagement,
					Enabled: true,
					BaseDN:  "DC=example,DC=com",
				}
				_, changed, err := directoryServiceUpdateRequired(instance, service)
				Expect(err).To(BeNil())
				Expect(changed).To(BeFalse())
				Expect(instance.Status.Delta).To(Equal(""))
			})
		})

		Context("with user attributes on the data role", func() {
			It("should report a validation error", func() {
				attribute := "userPrincipalName"
				instance := &flasharrayv1.DirectoryService{
					ObjectMeta: metav1.ObjectMeta{Name: "data", Namespace: "default"},
					Spec: flasharrayv1.DirectoryServiceSpec{
						Role:               directoryservices.RoleData,
						UserLoginAttribute: &attribute,
					},
				}
				service := &directoryservices.DirectoryService{
					Name: directoryservices.RoleData,
				}
				_, _, err := directoryServiceUpdateRequired(instance, service)
				Expect(err).ToNot(BeNil())
			})
		})

		Context("with drifted attributes", func() {
			It("should attach the write-only CA certificate", func() {
				baseDN := "DC=example,DC=com"
				certificate := "-----BEGIN CERTIFICATE-----\nMIIB\n-----END CERTIFICATE-----"
				instance := &flasharrayv1.DirectoryService{
					ObjectMeta: metav1.ObjectMeta{Name: "management", Namespace: "default"},
					Spec: flasharrayv1.DirectoryServiceSpec{
						Role:        directoryservices.RoleManagement,
						BaseDN:      &baseDN,
						Certificate: &certificate,
					},
				}
				service := &directoryservices.DirectoryService{
					Name:   directoryservices.RoleManagement,
					BaseDN: "DC=old,DC=com",
				}
				opts, changed, err := directoryServiceUpdateRequired(instance, service)
				Expect(err).To(BeNil())
				Expect(changed).To(BeTrue())
				Expect(*opts.BaseDN).To(Equal("DC=example,DC=com"))
				Expect(opts.Certificate).ToNot(BeNil())
			})

			It("should not attach the certificate when nothing drifted", func() {
				certificate := "-----BEGIN CERTIFICATE-----\nMIIB\n-----END CERTIFICATE-----"
				instance := &flasharrayv1.DirectoryService{
					ObjectMeta: metav1.ObjectMeta{Name: "management", Namespace: "default"},
					Spec: flasharrayv1.DirectoryServiceSpec{
						Role:        directoryservices.RoleManagement,
						Certificate: &certificate,
					},
				}
				service := &directoryservices.DirectoryService{
					Name: directoryservices.RoleManagement,
				}
				opts, changed, err := directoryServiceUpdateRequired(instance, service)
				Expect(err).To(BeNil())
				Expect(changed).To(BeFalse())
				Expect(opts.Certificate).To(BeNil())
			})
		})

		Context("with drifted management attributes", func() {
			It("should request the management options", func() {
				attribute := "sAMAccountName"
				instance := &flasharrayv1.DirectoryService{
					ObjectMeta: metav1.ObjectMeta{Name: "management", Namespace: "default"},
					Spec: flasharrayv1.DirectoryServiceSpec{
						Role:               directoryservices.RoleManagement,
						UserLoginAttribute: &attribute,
					},
				}
				service := &directoryservices.DirectoryService{
					Name: directoryservices.RoleManagement,
					Management: &directoryservices.Management{
						UserLoginAttribute: "userPrincipalName",
					},
				}
				opts, changed, err := directoryServiceUpdateRequired(instance, service)
				Expect(err).To(BeNil())
				Expect(changed).To(BeTrue())
				Expect(opts.Management).ToNot(BeNil())
				Expect(*opts.Management.UserLoginAttribute).To(Equal("sAMAccountName"))
			})
		})
	})
})
