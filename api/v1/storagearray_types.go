/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2024-2026 Pure Storage, Inc. */

package v1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// StorageArraySpec defines the desired state of StorageArray
type StorageArraySpec struct {
	// Endpoint is the base URL of the array management interface, e.g.,
	// "https://array00.example.com".
	// +kubebuilder:validation:Pattern=`^https?://.+$`
	Endpoint string `json:"endpoint"`

	// Secret is the name of a secret in the same namespace holding the
	// "api-token" key used to authenticate against the array.
	Secret string `json:"secret"`

	// InsecureTLS disables verification of the array management
	// certificate.  Arrays are commonly deployed with self-signed
	// management certificates.
	// +optional
	InsecureTLS *bool `json:"insecureTLS,omitempty"`

	// RESTVersion pins the negotiated REST API version rather than using
	// the highest version supported by both sides.
	// +optional
	RESTVersion *string `json:"restVersion,omitempty"`
}

// StorageArrayStatus defines the observed state of StorageArray
type StorageArrayStatus struct {
	// Ready defines whether an authenticated session to the array has been
	// established.  Resource reconcilers in this namespace wait for this.
	// +optional
	Ready bool `json:"ready"`

	// ArrayName is the array name reported by the array itself.
	// +optional
	ArrayName string `json:"arrayName,omitempty"`

	// PurityVersion is the operating environment version of the array.
	// +optional
	PurityVersion string `json:"purityVersion,omitempty"`

	// APIVersion is the REST API version negotiated with the array.
	// +optional
	APIVersion string `json:"apiVersion,omitempty"`

	// Defines whether the resource has been reconciled successfully at
	// least once.
	// +optional
	Reconciled bool `json:"reconciled"`
}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:printcolumn:name="endpoint",type="string",JSONPath=".spec.endpoint",description="The array management endpoint."
// +kubebuilder:printcolumn:name="ready",type="boolean",JSONPath=".status.ready",description="The array session state."
// +kubebuilder:printcolumn:name="version",type="string",JSONPath=".status.apiVersion",description="The negotiated REST API version."
// StorageArray defines the connection attributes of a single FlashArray.
// Exactly one StorageArray is expected per namespace; every other resource
// in the namespace is reconciled against it.
type StorageArray struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   StorageArraySpec   `json:"spec,omitempty"`
	Status StorageArrayStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true
// StorageArrayList contains a list of StorageArray
type StorageArrayList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []StorageArray `json:"items"`
}

func init() {
	SchemeBuilder.Register(&StorageArray{}, &StorageArrayList{})
}
