/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2024-2026 Pure Storage, Inc. */

package v1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// FileSystemSpec defines the desired state of FileSystem
type FileSystemSpec struct {
	// Rename changes the array side name of the file system.
	// +optional
	Rename *string `json:"rename,omitempty"`

	// Eradicate permanently removes the file system when the custom
	// resource is deleted rather than leaving it in the destroyed state.
	// +optional
	Eradicate bool `json:"eradicate,omitempty"`

	// ContextNames scopes fleet operations to the named fleet members.
	// +optional
	ContextNames []string `json:"contextNames,omitempty"`
}

// FileSystemStatus defines the observed state of FileSystem
type FileSystemStatus struct {
	// +optional
	InSync bool `json:"inSync"`

	// +optional
	Reconciled bool `json:"reconciled"`

	// Destroyed reports whether the array side file system is pending
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
// FileSystem defines a managed file system container on the array.
type FileSystem struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   FileSystemSpec   `json:"spec,omitempty"`
	Status FileSystemStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true
// FileSystemList contains a list of FileSystem
type FileSystemList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []FileSystem `json:"items"`
}

func init() {
	SchemeBuilder.Register(&FileSystem{}, &FileSystemList{})
}
