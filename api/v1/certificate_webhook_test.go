/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2024-2026 Pure Storage, Inc. */
package v1

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

const testCertificatePEM = `-----BEGIN CERTIFICATE-----
MIIBszCCAVmgAwIBAgIUN1HSF1vLkeRYdJ45Jtzq0fGG1hswCgYIKoZIzj0EAwIw
GjEYMBYGA1UEAwwPYXJyYXkwMC5leGFtcGxlMB4XDTI0MDEwMTAwMDAwMFoXDTM0
MDEwMTAwMDAwMFowGjEYMBYGA1UEAwwPYXJyYXkwMC5leGFtcGxlMFkwEwYHKoZI
zj0CAQYIKoZIzj0DAQcDQgAE1p9y2aXvC0eKFW5vN7p0x5cx6r4Rf6nC4hMUZkMq
4e8w4dG8u7nq0b8pZfX0gq0m0y0z0C2w5m6b7n8p9q0r0aNTMFEwHQYDVR0OBBYE
FJb0cW1N8mVq9pW9m2m7m8p9q0r0MB8GA1UdIwQYMBaAFJb0cW1N8mVq9pW9m2m7
m8p9q0r0MA8GA1UdEwEB/wQFMAMBAf8wCgYIKoZIzj0EAwIDSAAwRQIhAKx0cW1N
8mVq9pW9m2m7m8p9q0r0aNTMFEwHQYDVR0OBBYEFJb0AiB0cW1N8mVq9pW9m2m7
-----END CERTIFICATE-----`

var _ = Describe("certificate_webhook functions", func() {

	Describe("validateCertificate function is tested", func() {
		Context("When neither generate nor import is supplied", func() {
			It("Should reject the certificate", func() {
				r := &Certificate{Spec: CertificateSpec{}}
				err := r.validateCertificate()
				Expect(err).To(HaveOccurred())
				Expect(err.Error()).To(ContainSubstring("one of generate or import"))
			})
		})

		Context("When both generate and import are supplied", func() {
			It("Should reject the certificate", func() {
				r := &Certificate{
					Spec: CertificateSpec{
						Generate: &CertificateGeneration{CommonName: "array00.example"},
						Import:   &CertificateImport{Certificate: testCertificatePEM},
					},
				}
				err := r.validateCertificate()
				Expect(err).To(HaveOccurred())
				Expect(err.Error()).To(ContainSubstring("mutually exclusive"))
			})
		})

		Context("When the imported certificate is not PEM", func() {
			It("Should reject the certificate", func() {
				r := &Certificate{
					Spec: CertificateSpec{
						Import: &CertificateImport{Certificate: "not a certificate"},
					},
				}
				err := r.validateCertificate()
				Expect(err).To(HaveOccurred())
				Expect(err.Error()).To(ContainSubstring("PEM"))
			})
		})

		Context("When a self signed subject is supplied", func() {
			It("Successfully validates the certificate", func() {
				r := &Certificate{
					Spec: CertificateSpec{
						Generate: &CertificateGeneration{CommonName: "array00.example"},
					},
				}
				err := r.validateCertificate()
				Expect(err).To(BeNil())
			})
		})
	})

	Describe("Default function is tested", func() {
		Context("When key size and validity are omitted", func() {
			It("Applies the generation defaults", func() {
				r := &Certificate{
					Spec: CertificateSpec{
						Generate: &CertificateGeneration{CommonName: "array00.example"},
					},
				}
				defaulter := &CertificateCustomDefaulter{}
				err := defaulter.Default(context.Background(), r)
				Expect(err).To(BeNil())
				Expect(r.Spec.Generate.KeySize).NotTo(BeNil())
				Expect(*r.Spec.Generate.KeySize).To(Equal(DefaultCertificateKeySize))
				Expect(*r.Spec.Generate.Days).To(Equal(DefaultCertificateDays))
			})
		})
	})
})
