/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2024-2026 Pure Storage, Inc. */

package v1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// RealmSpec defines the desired state of Realm
type RealmSpec struct {
	// QuotaLimit is the logical quota for the realm expressed as a human
	// readable size (e.g. "1T").  A value of "0" removes the quota.
	// +optional
	QuotaLimit *string `json:"quotaLimit,omitempty"`

	// Rename changes the array side name of the realm.
	// +optional
	Rename *string `json:"rename,omitempty"`

	// Eradicate permanently removes the realm when the custom resource is
	// deleted rather than leaving it in the destroyed state.
	// +optional
	Eradicate bool `json:"eradicate,omitempty"`

	// ContextNames scopes fleet operations to the named fleet members.
	// +optional
	ContextNames []string `json:"contextNames,omitempty"`
}

// RealmStatus defines the observed state of Realm
type RealmStatus struct {
	// +optional
	InSync bool `json:"inSync"`

	// +optional
	Reconciled bool `json:"reconciled"`

	// Destroyed reports whether the array side realm is pending
	// eradication.
	// +optional
	Destroyed bool `json:"destroyed"`

	// Delta between desired configuration vs current configuration.
	// +optional
	Delta string `json:"delta"`
}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:printcolumn:name="insync",type="boolean",JSONPath=".status.inSync",description="The current synchronization state."
// +kubebuilder:printcolumn:name="reconciled",type="boolean",JSONPath=".status.reconciled",description="The current reconciliation state."
// Realm defines an isolated management domain on the array.
type Realm struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   RealmSpec   `json:"spec,omitempty"`
	Status RealmStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true
// RealmList contains a list of Realm
type RealmList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []Realm `json:"items"`
}

func init() {
	SchemeBuilder.Register(&Realm{}, &RealmList{})
}
