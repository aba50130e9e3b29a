/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2024-2026 Pure Storage, Inc. */

package v1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// HostGroupVolumeInfo defines a volume connection to a host group.
type HostGroupVolumeInfo struct {
	// Name is the volume name.
	Name string `json:"name"`

	// LUN is the logical unit number for the connection; allocated by the
	// array when not supplied.
	// +kubebuilder:validation:Minimum=1
	// +kubebuilder:validation:Maximum=4095
	// +optional
	LUN *int32 `json:"lun,omitempty"`
}

// HostGroupSpec defines the desired state of HostGroup
type HostGroupSpec struct {
	// Hosts is the set of member host names.  A nil list leaves
	// membership unmanaged; an empty list removes all members.
	// +optional
	Hosts []string `json:"hosts,omitempty"`

	// Volumes is the set of volumes connected to the group.
	// +optional
	Volumes []HostGroupVolumeInfo `json:"volumes,omitempty"`

	// Rename changes the array side name of the group.
	// +optional
	Rename *string `json:"rename,omitempty"`

	// ContextNames scopes fleet operations to the named fleet members.
	// +optional
	ContextNames []string `json:"contextNames,omitempty"`
}

// HostGroupStatus defines the observed state of HostGroup
type HostGroupStatus struct {
	// +optional
	InSync bool `json:"inSync"`

	// +optional
	Reconciled bool `json:"reconciled"`

	// Delta between desired configuration vs current configuration.
	// +optional
	Delta string `json:"delta"`
}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:printcolumn:name="insync",type="boolean",JSONPath=".status.inSync",description="The current synchronization state."
// +kubebuilder:printcolumn:name="reconciled",type="boolean",JSONPath=".status.reconciled",description="The current reconciliation state."
// HostGroup defines a group of hosts sharing volume connections.
type HostGroup struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   HostGroupSpec   `json:"spec,omitempty"`
	Status HostGroupStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true
// HostGroupList contains a list of HostGroup
type HostGroupList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []HostGroup `json:"items"`
}

func init() {
	SchemeBuilder.Register(&HostGroup{}, &HostGroupList{})
}
