/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2024-2026 Pure Storage, Inc. */

package v1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// SafeMode retention lock states.
const (
	SafeModeRatcheted = "ratcheted"
	SafeModeUnlocked  = "unlocked"
)

// SnapshotScheduleInfo defines the desired snapshot schedule of a protection
// group.  Times are human readable strings; "1h" style durations for the
// frequency and a "3PM" or "15:00" style clock time for the at-time.
type SnapshotScheduleInfo struct {
	// Enabled defines whether scheduled snapshots are taken.
	// +optional
	Enabled *bool `json:"enabled,omitempty"`

	// Frequency is the interval between scheduled snapshots.
	// +optional
	Frequency *string `json:"frequency,omitempty"`

	// At is the preferred time of day to take the snapshot.  Only valid
	// when the frequency is a whole number of days.
	// +optional
	At *string `json:"at,omitempty"`
}

// BlackoutInfo defines a replication blackout window.
type BlackoutInfo struct {
	// Start is the clock time at which replication pauses.
	Start string `json:"start"`

	// End is the clock time at which replication resumes.
	End string `json:"end"`
}

// ReplicationScheduleInfo defines the desired replication schedule of a
// protection group.
type ReplicationScheduleInfo struct {
	// Enabled defines whether scheduled replication is performed.
	// +optional
	Enabled *bool `json:"enabled,omitempty"`

	// Frequency is the interval between replicated snapshots.
	// +optional
	Frequency *string `json:"frequency,omitempty"`

	// At is the preferred time of day to replicate.  Only valid when the
	// frequency is a whole number of days.
	// +optional
	At *string `json:"at,omitempty"`

	// Blackout suspends replication daily between two clock times.
	// +optional
	Blackout *BlackoutInfo `json:"blackout,omitempty"`
}

// RetentionInfo defines a snapshot retention policy.
type RetentionInfo struct {
	// AllFor is the period to retain all snapshots, e.g. "24h".
	// +optional
	AllFor *string `json:"allFor,omitempty"`

	// PerDay is the number of snapshots retained per day after the AllFor
	// period.
	// +optional
	PerDay *int32 `json:"perDay,omitempty"`

	// Days is the number of days to retain the PerDay snapshots.
	// +optional
	Days *int32 `json:"days,omitempty"`
}

// ProtectionGroupSpec defines the desired state of ProtectionGroup
type ProtectionGroupSpec struct {
	// Volumes is the set of member volume names.  A nil list leaves
	// membership unmanaged; an empty list removes all volume members.
	// +optional
	Volumes []string `json:"volumes,omitempty"`

	// Hosts is the set of member host names.
	// +optional
	Hosts []string `json:"hosts,omitempty"`

	// HostGroups is the set of member host group names.
	// +optional
	HostGroups []string `json:"hostGroups,omitempty"`

	// Targets is the set of replication target array or offload target
	// names.
	// +optional
	Targets []string `json:"targets,omitempty"`

	// SnapshotSchedule configures scheduled snapshots of the group.
	// +optional
	SnapshotSchedule *SnapshotScheduleInfo `json:"snapshotSchedule,omitempty"`

	// ReplicationSchedule configures scheduled replication to the targets.
	// +optional
	ReplicationSchedule *ReplicationScheduleInfo `json:"replicationSchedule,omitempty"`

	// SourceRetention configures snapshot retention on the local array.
	// +optional
	SourceRetention *RetentionInfo `json:"sourceRetention,omitempty"`

	// TargetRetention configures snapshot retention on the targets.
	// +optional
	TargetRetention *RetentionInfo `json:"targetRetention,omitempty"`

	// SafeMode enables the SafeMode retention lock on the group.  Enabling
	// is irreversible and requires array support.
	// +kubebuilder:validation:Enum=ratcheted;unlocked
	// +optional
	SafeMode *string `json:"safeMode,omitempty"`

	// Rename changes the array side name of the group.  The resource
	// continues to be tracked under its original name.
	// +optional
	Rename *string `json:"rename,omitempty"`

	// Eradicate allows the group to be eradicated when the resource is
	// deleted rather than left in its eradication pending window.
	// +optional
	Eradicate bool `json:"eradicate,omitempty"`

	// ContextNames scopes fleet operations to the named fleet members.
	// Silently ignored on arrays that predate fleet contexts.
	// +optional
	ContextNames []string `json:"contextNames,omitempty"`
}

// ProtectionGroupStatus defines the observed state of ProtectionGroup
type ProtectionGroupStatus struct {
	// Defines whether the resource has been provisioned on the target
	// array.
	// +optional
	InSync bool `json:"inSync"`

	// Reconciled defines whether the group has been successfully
	// reconciled at least once.
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
// ProtectionGroup defines a named grouping of volumes, hosts or host groups
// with associated snapshot and replication schedules.
type ProtectionGroup struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   ProtectionGroupSpec   `json:"spec,omitempty"`
	Status ProtectionGroupStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true
// ProtectionGroupList contains a list of ProtectionGroup
type ProtectionGroupList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []ProtectionGroup `json:"items"`
}

func init() {
	SchemeBuilder.Register(&ProtectionGroup{}, &ProtectionGroupList{})
}
