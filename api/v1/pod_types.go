/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2024-2026 Pure Storage, Inc. */

package v1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// PodSpec defines the desired state of Pod
type PodSpec struct {
	// FailoverPreference orders the member arrays preferred to remain
	// online if the pod is split.
	// +optional
	FailoverPreference []string `json:"failoverPreference,omitempty"`

	// Mediator is the failover mediator used by the pod.
	// +optional
	Mediator *string `json:"mediator,omitempty"`

	// QuotaLimit is the logical size limit of the pod, e.g. "10T".  "0"
	// removes the limit.
	// +optional
	QuotaLimit *string `json:"quotaLimit,omitempty"`

	// StretchArray is the name of a peer array to stretch the pod to.  An
	// empty value unstretches the pod back to the local array only.
	// +optional
	StretchArray *string `json:"stretchArray,omitempty"`

	// Promoted requests the promotion state of the pod.  Demoting a pod
	// makes its volumes read only.
	// +optional
	Promoted *bool `json:"promoted,omitempty"`

	// Quiesce requests that all pending I/O is flushed before an
	// unstretch completes.  Requires array support.
	// +optional
	Quiesce *bool `json:"quiesce,omitempty"`

	// SkipQuiesce allows an unstretch to discard pending I/O.  Requires
	// array support and is mutually exclusive with Quiesce.
	// +optional
	SkipQuiesce *bool `json:"skipQuiesce,omitempty"`

	// Rename changes the array side name of the pod.
	// +optional
	Rename *string `json:"rename,omitempty"`

	// Eradicate allows the pod to be eradicated when the resource is
	// deleted.
	// +optional
	Eradicate bool `json:"eradicate,omitempty"`

	// DeleteContents eradicates the pod contents together with the pod.
	// +optional
	DeleteContents bool `json:"deleteContents,omitempty"`

	// ContextNames scopes fleet operations to the named fleet members.
	// +optional
	ContextNames []string `json:"contextNames,omitempty"`
}

// PodStatus defines the observed state of Pod
type PodStatus struct {
	// +optional
	InSync bool `json:"inSync"`

	// +optional
	Reconciled bool `json:"reconciled"`

	// Destroyed reports that the array side pod is in its eradication
	// pending window.
	// +optional
	Destroyed bool `json:"destroyed"`

	// PromotionStatus mirrors the promotion state reported by the array.
	// +optional
	PromotionStatus string `json:"promotionStatus,omitempty"`

	// Arrays lists the member arrays the pod is stretched across.
	// +optional
	Arrays []string `json:"arrays,omitempty"`

	// Delta between desired configuration vs current configuration.
	// +optional
	Delta string `json:"delta"`
}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:printcolumn:name="insync",type="boolean",JSONPath=".status.inSync",description="The current synchronization state."
// +kubebuilder:printcolumn:name="promotion",type="string",JSONPath=".status.promotionStatus",description="The pod promotion state."
// Pod defines an ActiveCluster replication container which groups volumes
// and protection groups across arrays.
type Pod struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   PodSpec   `json:"spec,omitempty"`
	Status PodStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true
// PodList contains a list of Pod
type PodList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []Pod `json:"items"`
}

func init() {
	SchemeBuilder.Register(&Pod{}, &PodList{})
}
