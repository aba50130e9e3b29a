/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2024-2026 Pure Storage, Inc. */

package v1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// DirectoryServiceSpec defines the desired state of DirectoryService
type DirectoryServiceSpec struct {
	// Role selects which directory service binding is managed.  The array
	// exposes one configuration per role.
	// +kubebuilder:validation:Enum=management;data
	Role string `json:"role"`

	// Enabled defines whether directory authentication is active for the
	// role.
	// +optional
	Enabled *bool `json:"enabled,omitempty"`

	// URIs lists the directory server URIs in failover order.
	// +optional
	URIs []string `json:"uris,omitempty"`

	// BaseDN is the search base distinguished name.
	// +optional
	BaseDN *string `json:"baseDN,omitempty"`

	// BindUser is the account used to query the directory.
	// +optional
	BindUser *string `json:"bindUser,omitempty"`

	// BindPasswordSecret names a secret in the same namespace holding the
	// "password" entry for the bind user.
	// +optional
	BindPasswordSecret *string `json:"bindPasswordSecret,omitempty"`

	// UserLoginAttribute is the directory attribute holding login names.
	// Management role only.
	// +optional
	UserLoginAttribute *string `json:"userLoginAttribute,omitempty"`

	// UserObject is the directory object class of user entries.
	// Management role only.
	// +optional
	UserObject *string `json:"userObject,omitempty"`

	// CheckPeer enables verification of the directory server certificate.
	// +optional
	CheckPeer *bool `json:"checkPeer,omitempty"`

	// Certificate is the PEM formatted CA certificate used to verify the
	// directory server.
	// +optional
	Certificate *string `json:"certificate,omitempty"`
}

// DirectoryServiceStatus defines the observed state of DirectoryService
type DirectoryServiceStatus struct {
	// +optional
	InSync bool `json:"inSync"`

	// +optional
	Reconciled bool `json:"reconciled"`

	// Enabled mirrors the enablement state reported by the array.
	// +optional
	Enabled bool `json:"enabled"`

	// Delta between desired configuration vs current configuration.
	// +optional
	Delta string `json:"delta"`
}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:printcolumn:name="role",type="string",JSONPath=".spec.role",description="The directory service role."
// +kubebuilder:printcolumn:name="insync",type="boolean",JSONPath=".status.inSync",description="The current synchronization state."
// DirectoryService defines the directory service binding of one array role.
// Deleting the resource resets the role configuration to its defaults.
type DirectoryService struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   DirectoryServiceSpec   `json:"spec,omitempty"`
	Status DirectoryServiceStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true
// DirectoryServiceList contains a list of DirectoryService
type DirectoryServiceList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []DirectoryService `json:"items"`
}

func init() {
	SchemeBuilder.Register(&DirectoryService{}, &DirectoryServiceList{})
}
