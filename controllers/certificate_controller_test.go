/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2024-2026 Pure Storage, Inc. */
package controllers

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	flasharrayv1 "github.com/pure-storage/flasharray-deployment-manager/api/v1"
	"github.com/pure-storage/flasharray-deployment-manager/flasharray/certificates"
)

var _ = Describe("Certificate controller", func() {

	Describe("stringChanged", func() {
		It("should ignore unmanaged attributes", func() {
			have := "US"
			Expect(stringChanged(nil, &have)).To(BeFalse())
			Expect(stringChanged(nil, nil)).To(BeFalse())
		})

		It("should detect drift against an unset attribute", func() {
			want := "US"
			empty := ""
			Expect(stringChanged(&want, nil)).To(BeTrue())
			Expect(stringChanged(&empty, nil)).To(BeFalse())
		})

		It("should compare managed attributes", func() {
			want := "US"
			have := "CA"
			same := "US"
			Expect(stringChanged(&want, &have)).To(BeTrue())
			Expect(stringChanged(&want, &same)).To(BeFalse())
		})
	})

	Describe("generateOpts", func() {
		Context("with a matching subject", func() {
			It("should not request regeneration", func() {
				commonName := "array.example.com"
				organization := "Example"
				info := &flasharrayv1.CertificateGeneration{
					CommonName:   "array.example.com",
					Organization: &organization,
				}
				cert := &certificates.Certificate{
					Status:       certificates.StatusSelfSigned,
					CommonName:   &commonName,
					Organization: &organization,
				}
				var delta strings.Builder
				Expect(generateOpts(info, cert, &delta)).To(BeNil())
				Expect(delta.String()).To(Equal(""))
			})
		})

		Context("with a drifted common name", func() {
			It("should send the full subject", func() {
				commonName := "old.example.com"
				organization := "Example"
				days := int32(365)
				info := &flasharrayv1.CertificateGeneration{
					CommonName:   "new.example.com",
					Organization: &organization,
					Days:         &days,
				}
				cert := &certificates.Certificate{
					Status:       certificates.StatusSelfSigned,
					CommonName:   &commonName,
					Organization: &organization,
				}
				var delta strings.Builder
				opts := generateOpts(info, cert, &delta)
				Expect(opts).ToNot(BeNil())
				Expect(*opts.CommonName).To(Equal("new.example.com"))
				Expect(*opts.Organization).To(Equal("Example"))
				Expect(*opts.Days).To(Equal(int32(365)))
				Expect(*opts.Status).To(Equal(certificates.StatusSelfSigned))
			})
		})

		Context("with an imported certificate", func() {
			It("should request regeneration", func() {
				commonName := "array.example.com"
				info := &flasharrayv1.CertificateGeneration{
					CommonName: "array.example.com",
				}
				cert := &certificates.Certificate{
					Status:     certificates.StatusImported,
					CommonName: &commonName,
				}
				var delta strings.Builder
				opts := generateOpts(info, cert, &delta)
				Expect(opts).ToNot(BeNil())
				Expect(*opts.Status).To(Equal(certificates.StatusSelfSigned))
			})
		})
	})

	Describe("importOpts", func() {
		Context("with a matching certificate", func() {
			It("should not request an update", func() {
				pem := "-----BEGIN CERTIFICATE-----\nMIIB\n-----END CERTIFICATE-----"
				info := &flasharrayv1.CertificateImport{Certificate: pem + "\n"}
				cert := &certificates.Certificate{
					Status:      certificates.StatusImported,
					Certificate: pem,
				}
				var delta strings.Builder
				Expect(importOpts(info, cert, &delta)).To(BeNil())
			})
		})

		Context("with a replacement certificate", func() {
			It("should send the new PEM text", func() {
				pem := "-----BEGIN CERTIFICATE-----\nMIIC\n-----END CERTIFICATE-----"
				info := &flasharrayv1.CertificateImport{Certificate: pem}
				cert := &certificates.Certificate{
					Status:      certificates.StatusImported,
					Certificate: "-----BEGIN CERTIFICATE-----\nMIIB\n-----END CERTIFICATE-----",
				}
				var delta strings.Builder
				opts := importOpts(info, cert, &delta)
				Expect(opts).ToNot(BeNil())
				Expect(*opts.Certificate).To(Equal(pem))
				Expect(*opts.Status).To(Equal(certificates.StatusImported))
			})
		})

		Context("with a self-signed certificate", func() {
			It("should request the import", func() {
				pem := "-----BEGIN CERTIFICATE-----\nMIIC\n-----END CERTIFICATE-----"
				info := &flasharrayv1.CertificateImport{Certificate: pem}
				cert := &certificates.Certificate{
					Status:      certificates.StatusSelfSigned,
					Certificate: pem,
				}
				var delta strings.Builder
				Expect(importOpts(info, cert, &delta)).ToNot(BeNil())
			})
		})
	})
})
