/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2024-2026 Pure Storage, Inc. */

package v1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// VolumeGroupSpec defines the desired state of VolumeGroup
type VolumeGroupSpec struct {
	// BandwidthLimit is the QoS bandwidth limit as a human readable
	// string, e.g. "50M".  "0" removes the limit.
	// +optional
	BandwidthLimit *string `json:"bandwidthLimit,omitempty"`

	// IOPSLimit is the QoS IOPS limit, e.g. "100K".  "0" removes the
	// limit.
	// +optional
	IOPSLimit *string `json:"iopsLimit,omitempty"`

	// PriorityOperator is the DMM priority adjustment direction.
	// +kubebuilder:validation:Enum=+;-
	// +optional
	PriorityOperator *string `json:"priorityOperator,omitempty"`

	// PriorityValue is the DMM priority adjustment magnitude.
	// +kubebuilder:validation:Enum=0;10
	// +optional
	PriorityValue *int32 `json:"priorityValue,omitempty"`

	// Rename changes the array side name of the group.
	// +optional
	Rename *string `json:"rename,omitempty"`

	// Eradicate allows the group to be eradicated when the resource is
	// deleted.
	// +optional
	Eradicate bool `json:"eradicate,omitempty"`

	// ContextNames scopes fleet operations to the named fleet members.
	// +optional
	ContextNames []string `json:"contextNames,omitempty"`
}

// VolumeGroupStatus defines the observed state of VolumeGroup
type VolumeGroupStatus struct {
	// +optional
	InSync bool `json:"inSync"`

	// +optional
	Reconciled bool `json:"reconciled"`

	// Destroyed reports that the array side group is in its eradication
	// pending window.
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
// VolumeGroup defines a volume group and its quality of service limits.
type VolumeGroup struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   VolumeGroupSpec   `json:"spec,omitempty"`
	Status VolumeGroupStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true
// VolumeGroupList contains a list of VolumeGroup
type VolumeGroupList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []VolumeGroup `json:"items"`
}

func init() {
	SchemeBuilder.Register(&VolumeGroup{}, &VolumeGroupList{})
}
