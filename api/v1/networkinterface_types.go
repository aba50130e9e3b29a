/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2024-2026 Pure Storage, Inc. */

package v1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// NetworkInterfaceSpec defines the desired state of NetworkInterface
type NetworkInterfaceSpec struct {
	// Enabled defines whether the interface is administratively up.
	// +optional
	Enabled *bool `json:"enabled,omitempty"`

	// Services lists the service roles bound to this interface.
	// +optional
	Services []string `json:"services,omitempty"`

	// Address is the interface address in CIDR notation.  "0.0.0.0/0"
	// removes the current assignment.
	// +optional
	Address *string `json:"address,omitempty"`

	// Gateway is the gateway address for the interface subnet.
	// +optional
	Gateway *string `json:"gateway,omitempty"`

	// MTU is the maximum transfer unit of the interface.
	// +kubebuilder:validation:Minimum=1280
	// +kubebuilder:validation:Maximum=9216
	// +optional
	MTU *int32 `json:"mtu,omitempty"`

	// Subtype is the interface subtype.  Virtual interfaces are created
	// and deleted by the manager; physical interfaces only support
	// updates.
	// +kubebuilder:validation:Enum=physical;vif;lacpbond;vlan
	// +optional
	Subtype *string `json:"subtype,omitempty"`

	// Subinterfaces lists the physical interfaces aggregated under a
	// virtual interface.
	// +optional
	Subinterfaces []string `json:"subinterfaces,omitempty"`

	// VLAN is the VLAN tag of a vlan subtype interface.
	// +kubebuilder:validation:Minimum=1
	// +kubebuilder:validation:Maximum=4094
	// +optional
	VLAN *int32 `json:"vlan,omitempty"`

	// ContextNames scopes fleet operations to the named fleet members.
	// +optional
	ContextNames []string `json:"contextNames,omitempty"`
}

// NetworkInterfaceStatus defines the observed state of NetworkInterface
type NetworkInterfaceStatus struct {
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
// NetworkInterface defines the attributes of a single array network
// interface, physical or virtual.
type NetworkInterface struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   NetworkInterfaceSpec   `json:"spec,omitempty"`
	Status NetworkInterfaceStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true
// NetworkInterfaceList contains a list of NetworkInterface
type NetworkInterfaceList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []NetworkInterface `json:"items"`
}

func init() {
	SchemeBuilder.Register(&NetworkInterface{}, &NetworkInterfaceList{})
}
