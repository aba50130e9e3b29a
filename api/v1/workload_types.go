/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2024-2026 Pure Storage, Inc. */

package v1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// WorkloadSpec defines the desired state of Workload
type WorkloadSpec struct {
	// Preset is the name of the workload preset the workload is deployed
	// from.  Immutable after creation.
	Preset string `json:"preset"`

	// PresetContext is the fleet member that owns the preset when it does
	// not reside on the local array.
	// +optional
	PresetContext *string `json:"presetContext,omitempty"`

	// Parameters supplies values for the preset parameters.  Parameters
	// omitted here take the preset defaults.
	// +optional
	Parameters map[string]string `json:"parameters,omitempty"`

	// Rename changes the array side name of the workload.
	// +optional
	Rename *string `json:"rename,omitempty"`

	// Eradicate permanently removes the workload when the custom resource
	// is deleted rather than leaving it in the destroyed state.
	// +optional
	Eradicate bool `json:"eradicate,omitempty"`

	// ContextNames scopes fleet operations to the named fleet members.
	// +optional
	ContextNames []string `json:"contextNames,omitempty"`
}

// WorkloadStatus defines the observed state of Workload
type WorkloadStatus struct {
	// +optional
	InSync bool `json:"inSync"`

	// +optional
	Reconciled bool `json:"reconciled"`

	// Destroyed reports whether the array side workload is pending
	// eradication.
	// +optional
	Destroyed bool `json:"destroyed"`

	// WorkloadStatus is the deployment status reported by the array.
	// +optional
	WorkloadStatus string `json:"workloadStatus"`

	// Delta between desired configuration vs current configuration.
	// +optional
	Delta string `json:"delta"`
}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:printcolumn:name="preset",type="string",JSONPath=".spec.preset",description="The workload preset."
// +kubebuilder:printcolumn:name="insync",type="boolean",JSONPath=".status.inSync",description="The current synchronization state."
// +kubebuilder:printcolumn:name="reconciled",type="boolean",JSONPath=".status.reconciled",description="The current reconciliation state."
// Workload defines a workload deployed from a preset on the array.
type Workload struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   WorkloadSpec   `json:"spec,omitempty"`
	Status WorkloadStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true
// WorkloadList contains a list of Workload
type WorkloadList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []Workload `json:"items"`
}

func init() {
	SchemeBuilder.Register(&Workload{}, &WorkloadList{})
}
