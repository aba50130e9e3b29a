/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2024-2026 Pure Storage, Inc. */

package v1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// CertificateGeneration defines the subject attributes used to generate a
// self-signed certificate.
type CertificateGeneration struct {
	// CommonName is the certificate subject common name.
	CommonName string `json:"commonName"`

	// +optional
	Country *string `json:"country,omitempty"`

	// +optional
	Email *string `json:"email,omitempty"`

	// +optional
	Locality *string `json:"locality,omitempty"`

	// +optional
	Organization *string `json:"organization,omitempty"`

	// +optional
	OrganizationalUnit *string `json:"organizationalUnit,omitempty"`

	// +optional
	Province *string `json:"province,omitempty"`

	// KeySize is the RSA key size in bits.
	// +kubebuilder:validation:Enum=1024;2048;4096
	// +optional
	KeySize *int32 `json:"keySize,omitempty"`

	// Days is the validity period of the generated certificate.
	// +kubebuilder:validation:Minimum=1
	// +optional
	Days *int32 `json:"days,omitempty"`
}

// CertificateImport defines the attributes used to import an external
// certificate.
type CertificateImport struct {
	// Certificate is the PEM formatted certificate text.
	Certificate string `json:"certificate"`

	// IntermediateCertificate is an optional PEM formatted intermediate.
	// +optional
	IntermediateCertificate *string `json:"intermediateCertificate,omitempty"`

	// KeySecret names a secret in the same namespace holding the "key"
	// and optional "passphrase" entries for the private key.
	// +optional
	KeySecret *string `json:"keySecret,omitempty"`
}

// CertificateSpec defines the desired state of Certificate.  Exactly one of
// Generate or Import must be supplied.
type CertificateSpec struct {
	// Generate requests a self-signed certificate with the given subject.
	// +optional
	Generate *CertificateGeneration `json:"generate,omitempty"`

	// Import installs an externally produced certificate.
	// +optional
	Import *CertificateImport `json:"import,omitempty"`

	// ContextNames scopes fleet operations to the named fleet members.
	// +optional
	ContextNames []string `json:"contextNames,omitempty"`
}

// CertificateStatus defines the observed state of Certificate
type CertificateStatus struct {
	// +optional
	InSync bool `json:"inSync"`

	// +optional
	Reconciled bool `json:"reconciled"`

	// Kind reports whether the installed certificate is "self-signed" or
	// "imported".
	// +optional
	Kind string `json:"kind,omitempty"`

	// Certificate is the PEM formatted certificate currently installed,
	// exported for consumption by other resources.
	// +optional
	Certificate string `json:"certificate,omitempty"`

	// ValidTo is the expiry timestamp in milliseconds since the epoch.
	// +optional
	ValidTo int64 `json:"validTo,omitempty"`

	// Delta between desired configuration vs current configuration.
	// +optional
	Delta string `json:"delta"`
}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:printcolumn:name="insync",type="boolean",JSONPath=".status.inSync",description="The current synchronization state."
// +kubebuilder:printcolumn:name="kind",type="string",JSONPath=".status.kind",description="The certificate kind."
// Certificate defines a named SSL certificate on the array, either self
// signed or imported.
type Certificate struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   CertificateSpec   `json:"spec,omitempty"`
	Status CertificateStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true
// CertificateList contains a list of Certificate
type CertificateList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []Certificate `json:"items"`
}

func init() {
	SchemeBuilder.Register(&Certificate{}, &CertificateList{})
}
