/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2024-2026 Pure Storage, Inc. */

package controllers

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-logr/logr"
	perrors "github.com/pkg/errors"
	"k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/runtime"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/reconcile"

	flasharrayv1 "github.com/pure-storage/flasharray-deployment-manager/api/v1"
	utils "github.com/pure-storage/flasharray-deployment-manager/common"
	"github.com/pure-storage/flasharray-deployment-manager/controllers/common"
	arrayManager "github.com/pure-storage/flasharray-deployment-manager/controllers/manager"
	"github.com/pure-storage/flasharray-deployment-manager/flasharray"
	"github.com/pure-storage/flasharray-deployment-manager/flasharray/protectiongroups"
)

var logProtectionGroup = log.Log.WithName("controller").WithName("protectiongroup")

const ProtectionGroupControllerName = "protectiongroup-controller"

const ProtectionGroupFinalizerName = utils.ProtectionGroupFinalizerName

var _ reconcile.Reconciler = &ProtectionGroupReconciler{}

// ProtectionGroupReconciler reconciles a ProtectionGroup object
type ProtectionGroupReconciler struct {
	client.Client
	Log    logr.Logger
	Scheme *runtime.Scheme
	arrayManager.ArrayManager
	common.ReconcilerErrorHandler
	common.ReconcilerEventLogger
}

func protectionGroupContextNames(c *flasharray.Client, instance *flasharrayv1.ProtectionGroup) []string {
	if c.Supports(utils.MinVersionContextNames) {
		return instance.Spec.ContextNames
	}
	return nil
}

// snapshotScheduleOpts builds the sparse schedule update needed to align the
// array schedule with the configured one.  Returns nil when the schedule is
// already in sync.
func snapshotScheduleOpts(info *flasharrayv1.SnapshotScheduleInfo, current *protectiongroups.Schedule, delta *strings.Builder) (*protectiongroups.ScheduleOpts, error) {
	if info == nil {
		return nil, nil
	}

	opts := protectiongroups.ScheduleOpts{}
	changed := false

	if info.Enabled != nil && *info.Enabled != current.Enabled {
		opts.Enabled = info.Enabled
		delta.WriteString(fmt.Sprintf("\t+SnapshotSchedule.Enabled: %t\n", *opts.Enabled))
		changed = true
	}

	if info.Frequency != nil {
		frequency, err := utils.ParseFrequency(*info.Frequency)
		if err != nil {
			return nil, common.NewValidationError(fmt.Sprintf(
				"invalid snapshot frequency %q: %s", *info.Frequency, err.Error()))
		}
		if frequency != current.Frequency {
			opts.Frequency = &frequency
			delta.WriteString(fmt.Sprintf("\t+SnapshotSchedule.Frequency: %s\n", *info.Frequency))
			changed = true
		}
	}

	if info.At != nil {
		at, err := utils.ParseTimeOfDay(*info.At)
		if err != nil {
			return nil, common.NewValidationError(fmt.Sprintf(
				"invalid snapshot at-time %q: %s", *info.At, err.Error()))
		}
		if current.At == nil || at != *current.At {
			opts.At = &at
			delta.WriteString(fmt.Sprintf("\t+SnapshotSchedule.At: %s\n", *info.At))
			changed = true
		}
	}

	if !changed {
		return nil, nil
	}

	return &opts, nil
}

// replicationScheduleOpts is the replication counterpart of
// snapshotScheduleOpts and additionally handles the blackout window.
func replicationScheduleOpts(info *flasharrayv1.ReplicationScheduleInfo, current *protectiongroups.Schedule, delta *strings.Builder) (*protectiongroups.ScheduleOpts, error) {
	if info == nil {
		return nil, nil
	}

	opts := protectiongroups.ScheduleOpts{}
	changed := false

	if info.Enabled != nil && *info.Enabled != current.Enabled {
		opts.Enabled = info.Enabled
		delta.WriteString(fmt.Sprintf("\t+ReplicationSchedule.Enabled: %t\n", *opts.Enabled))
		changed = true
	}

	if info.Frequency != nil {
		frequency, err := utils.ParseFrequency(*info.Frequency)
		if err != nil {
			return nil, common.NewValidationError(fmt.Sprintf(
				"invalid replication frequency %q: %s", *info.Frequency, err.Error()))
		}
		if frequency != current.Frequency {
			opts.Frequency = &frequency
			delta.WriteString(fmt.Sprintf("\t+ReplicationSchedule.Frequency: %s\n", *info.Frequency))
			changed = true
		}
	}

	if info.At != nil {
		at, err := utils.ParseTimeOfDay(*info.At)
		if err != nil {
			return nil, common.NewValidationError(fmt.Sprintf(
				"invalid replication at-time %q: %s", *info.At, err.Error()))
		}
		if current.At == nil || at != *current.At {
			opts.At = &at
			delta.WriteString(fmt.Sprintf("\t+ReplicationSchedule.At: %s\n", *info.At))
			changed = true
		}
	}

	if info.Blackout != nil {
		start, err := utils.ParseTimeOfDay(info.Blackout.Start)
		if err != nil {
			return nil, common.NewValidationError(fmt.Sprintf(
				"invalid blackout start %q: %s", info.Blackout.Start, err.Error()))
		}
		end, err := utils.ParseTimeOfDay(info.Blackout.End)
		if err != nil {
			return nil, common.NewValidationError(fmt.Sprintf(
				"invalid blackout end %q: %s", info.Blackout.End, err.Error()))
		}
		if current.Blackout == nil || start != current.Blackout.Start || end != current.Blackout.End {
			blackout := struct {
				Start int64 `json:"start"`
				End   int64 `json:"end"`
			}{Start: start, End: end}
			opts.Blackout = &blackout
			delta.WriteString(fmt.Sprintf("\t+ReplicationSchedule.Blackout: %s-%s\n",
				info.Blackout.Start, info.Blackout.End))
			changed = true
		}
	}

	if !changed {
		return nil, nil
	}

	return &opts, nil
}

// retentionOpts builds the sparse retention update for either the source or
// the target retention policy.
func retentionOpts(info *flasharrayv1.RetentionInfo, current *protectiongroups.Retention, label string, delta *strings.Builder) (*protectiongroups.RetentionOpts, error) {
	if info == nil {
		return nil, nil
	}

	opts := protectiongroups.RetentionOpts{}
	changed := false

	if info.AllFor != nil {
		allFor, err := utils.ParseFrequency(*info.AllFor)
		if err != nil {
			return nil, common.NewValidationError(fmt.Sprintf(
				"invalid retention period %q: %s", *info.AllFor, err.Error()))
		}
		// The retention endpoint takes seconds rather than milliseconds.
		allForSec := allFor / 1000
		if allForSec != current.AllForSec {
			opts.AllForSec = &allForSec
			delta.WriteString(fmt.Sprintf("\t+%s.AllFor: %s\n", label, *info.AllFor))
			changed = true
		}
	}

	if info.PerDay != nil && *info.PerDay != current.PerDay {
		opts.PerDay = info.PerDay
		delta.WriteString(fmt.Sprintf("\t+%s.PerDay: %d\n", label, *opts.PerDay))
		changed = true
	}

	if info.Days != nil && *info.Days != current.Days {
		opts.Days = info.Days
		delta.WriteString(fmt.Sprintf("\t+%s.Days: %d\n", label, *opts.Days))
		changed = true
	}

	if !changed {
		return nil, nil
	}

	return &opts, nil
}

// protectionGroupOpts assembles the sparse group update needed to align the
// array group with the stored configuration.  The name is handled by the
// caller since renames need a collision check first.
func protectionGroupOpts(spec *flasharrayv1.ProtectionGroupSpec, group *protectiongroups.ProtectionGroup, delta *strings.Builder) (opts protectiongroups.GroupOpts, result bool, err error) {
	opts.SnapshotSchedule, err = snapshotScheduleOpts(spec.SnapshotSchedule, &group.SnapshotSchedule, delta)
	if err != nil {
		return opts, false, err
	}

	opts.ReplicationSchedule, err = replicationScheduleOpts(spec.ReplicationSchedule, &group.ReplicationSchedule, delta)
	if err != nil {
		return opts, false, err
	}

	opts.SourceRetention, err = retentionOpts(spec.SourceRetention, &group.SourceRetention, "SourceRetention", delta)
	if err != nil {
		return opts, false, err
	}

	opts.TargetRetention, err = retentionOpts(spec.TargetRetention, &group.TargetRetention, "TargetRetention", delta)
	if err != nil {
		return opts, false, err
	}

	if spec.SafeMode != nil && *spec.SafeMode != group.RetentionLock {
		if group.RetentionLock == protectiongroups.RetentionLockRatcheted {
			// The lock is a one way transition.
			return opts, false, common.NewValidationError(
				"the SafeMode retention lock cannot be released once ratcheted")
		}
		if *spec.SafeMode == flasharrayv1.SafeModeRatcheted {
			lock := protectiongroups.RetentionLockRatcheted
			opts.RetentionLock = &lock
			delta.WriteString(fmt.Sprintf("\t+RetentionLock: %s\n", lock))
		}
	}

	result = opts.SnapshotSchedule != nil || opts.ReplicationSchedule != nil ||
		opts.SourceRetention != nil || opts.TargetRetention != nil ||
		opts.RetentionLock != nil

	return opts, result, nil
}

// protectionGroupUpdateRequired is a utility function which determines whether
// an update is needed to a protection group array resource in order to
// reconcile with the latest stored configuration.  Membership and targets are
// handled by their own sub-reconcilers.
func protectionGroupUpdateRequired(instance *flasharrayv1.ProtectionGroup, group *protectiongroups.ProtectionGroup) (opts protectiongroups.GroupOpts, result bool, err error) {
	var delta strings.Builder

	spec := instance.Spec

	opts, result, err = protectionGroupOpts(&spec, group, &delta)
	if err != nil {
		return opts, result, err
	}

	if spec.Rename != nil && *spec.Rename != group.Name {
		opts.Name = spec.Rename
		delta.WriteString(fmt.Sprintf("\t+Name: %s\n", *opts.Name))
		result = true
	}

	deltaString := delta.String()
	if deltaString != "" {
		deltaString = "\n" + strings.TrimSuffix(deltaString, "\n")
		logProtectionGroup.Info(fmt.Sprintf("delta configuration:%s\n", deltaString))
	}
	instance.Status.Delta = deltaString

	return opts, result, err
}

// checkProtectionGroupVersions enforces the array version requirements of
// features that cannot be silently dropped.
func checkProtectionGroupVersions(client *flasharray.Client, instance *flasharrayv1.ProtectionGroup) error {
	spec := instance.Spec

	if spec.SafeMode != nil && *spec.SafeMode == flasharrayv1.SafeModeRatcheted {
		if !client.Supports(utils.MinVersionSafeMode) {
			return common.NewVersionDependency(fmt.Sprintf(
				"the SafeMode retention lock requires REST version %s", utils.MinVersionSafeMode))
		}
	}

	return nil
}

// IsDryRun reports whether the resource is annotated so that reconciliation
// only reports differences without applying them.
func (r *ProtectionGroupReconciler) IsDryRun(instance *flasharrayv1.ProtectionGroup) bool {
	_, present := instance.Annotations[utils.DryRunAnnotation]
	return present
}

// ReconcileNew is a method which handles reconciling a new data resource and
// creates the corresponding array resource thru the array API.  Members and
// targets are attached once the group exists.
func (r *ProtectionGroupReconciler) ReconcileNew(client *flasharray.Client, instance *flasharrayv1.ProtectionGroup) (*protectiongroups.ProtectionGroup, error) {
	if instance.Status.Reconciled && r.StopAfterInSync() {
		// Do not process any further changes once we have reached a
		// synchronized state unless there is an annotation on the resource.
		if _, present := instance.Annotations[arrayManager.ReconcileAfterInSync]; !present {
			msg := common.NoProvisioningAfterReconciled
			r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceUpdated, msg)
			return nil, common.NewChangeAfterInSync(msg)
		} else {
			logProtectionGroup.Info(common.ProvisioningAllowedAfterReconciled)
		}
	}

	if err := checkProtectionGroupVersions(client, instance); err != nil {
		return nil, err
	}

	var delta strings.Builder
	opts, _, err := protectionGroupOpts(&instance.Spec, &protectiongroups.ProtectionGroup{}, &delta)
	if err != nil {
		return nil, err
	}

	if r.IsDryRun(instance) {
		r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceWait,
			"dry-run: protection group would be created")
		return nil, nil
	}

	logProtectionGroup.Info("creating protection group", "opts", opts)

	group, err := protectiongroups.Create(context.TODO(), client, instance.Name,
		protectionGroupContextNames(client, instance), opts).Extract()
	if err != nil {
		err = perrors.Wrapf(err, "failed to create: %s", common.FormatStruct(opts))
		return nil, err
	}

	r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceCreated,
		"protection group has been created")

	return group, nil
}

// ReconcileRecovered restores a protection group that is still within its
// eradication pending window.
func (r *ProtectionGroupReconciler) ReconcileRecovered(client *flasharray.Client, instance *flasharrayv1.ProtectionGroup, group *protectiongroups.ProtectionGroup) (*protectiongroups.ProtectionGroup, error) {
	if r.IsDryRun(instance) {
		r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceWait,
			"dry-run: protection group would be recovered")
		return group, nil
	}

	destroyed := false
	opts := protectiongroups.GroupOpts{Destroyed: &destroyed}

	logProtectionGroup.Info("recovering destroyed protection group", "name", group.Name)

	result, err := protectiongroups.Update(context.TODO(), client, group.Name,
		protectionGroupContextNames(client, instance), opts).Extract()
	if err != nil {
		err = perrors.Wrap(err, "failed to recover protection group")
		return nil, err
	}

	r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceUpdated,
		"protection group has been recovered from its eradication pending window")

	return result, nil
}

// ReconcileMembers aligns one membership class of the group with its
// configured list.  A nil list leaves that class unmanaged.
func (r *ProtectionGroupReconciler) ReconcileMembers(client *flasharray.Client, instance *flasharrayv1.ProtectionGroup, group *protectiongroups.ProtectionGroup, memberType string, configured []string) error {
	if configured == nil {
		return nil
	}

	contextNames := protectionGroupContextNames(client, instance)

	current, err := protectiongroups.ListMembers(context.TODO(), client, group.Name, memberType, contextNames)
	if err != nil {
		err = perrors.Wrapf(err, "failed to list members: %s", memberType)
		return err
	}

	added, removed, _ := utils.ListDelta(current, configured)
	if len(added) == 0 && len(removed) == 0 {
		return nil
	}

	if r.IsDryRun(instance) {
		r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceWait,
			"dry-run: protection group %s membership would be changed", memberType)
		return nil
	}

	if len(added) > 0 {
		logProtectionGroup.Info("adding members", "type", memberType, "members", added)

		err = protectiongroups.AddMembers(context.TODO(), client, group.Name, memberType, added, contextNames).ExtractErr()
		if err != nil {
			err = perrors.Wrapf(err, "failed to add members: %v", added)
			return err
		}

		r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceUpdated,
			"%s %q have been added", memberType, strings.Join(added, ","))
	}

	if len(removed) > 0 {
		logProtectionGroup.Info("removing members", "type", memberType, "members", removed)

		err = protectiongroups.RemoveMembers(context.TODO(), client, group.Name, memberType, removed, contextNames).ExtractErr()
		if err != nil {
			err = perrors.Wrapf(err, "failed to remove members: %v", removed)
			return err
		}

		r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceUpdated,
			"%s %q have been removed", memberType, strings.Join(removed, ","))
	}

	return nil
}

// ReconcileTargets aligns the replication targets of the group with the
// configured list and reports targets that the remote array has not yet
// allowed.
func (r *ProtectionGroupReconciler) ReconcileTargets(client *flasharray.Client, instance *flasharrayv1.ProtectionGroup, group *protectiongroups.ProtectionGroup) error {
	if instance.Spec.Targets == nil {
		return nil
	}

	if !utils.IsReconcilerEnabled(utils.Targets) {
		return nil
	}

	contextNames := protectionGroupContextNames(client, instance)

	targets, err := protectiongroups.ListTargets(context.TODO(), client, group.Name, contextNames)
	if err != nil {
		err = perrors.Wrap(err, "failed to list targets")
		return err
	}

	current := make([]string, 0, len(targets))
	for _, t := range targets {
		current = append(current, t.Name)
		if !t.Allowed && utils.ContainsString(instance.Spec.Targets, t.Name) {
			r.ReconcilerEventLogger.WarningEvent(instance, common.ResourceDependency,
				"target %q has not been allowed on the remote array", t.Name)
		}
	}

	added, removed, _ := utils.ListDelta(current, instance.Spec.Targets)
	if len(added) == 0 && len(removed) == 0 {
		return nil
	}

	if r.IsDryRun(instance) {
		r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceWait,
			"dry-run: protection group targets would be changed")
		return nil
	}

	if len(added) > 0 {
		logProtectionGroup.Info("adding targets", "targets", added)

		err = protectiongroups.AddTargets(context.TODO(), client, group.Name, added, contextNames).ExtractErr()
		if err != nil {
			err = perrors.Wrapf(err, "failed to add targets: %v", added)
			return err
		}

		r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceUpdated,
			"targets %q have been added", strings.Join(added, ","))
	}

	if len(removed) > 0 {
		logProtectionGroup.Info("removing targets", "targets", removed)

		err = protectiongroups.RemoveTargets(context.TODO(), client, group.Name, removed, contextNames).ExtractErr()
		if err != nil {
			err = perrors.Wrapf(err, "failed to remove targets: %v", removed)
			return err
		}

		r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceUpdated,
			"targets %q have been removed", strings.Join(removed, ","))
	}

	return nil
}

// ReconcileUpdated is a method which handles reconciling an existing data
// resource and updates the corresponding array resource thru the array API
// to match the desired state of the resource.
func (r *ProtectionGroupReconciler) ReconcileUpdated(client *flasharray.Client, instance *flasharrayv1.ProtectionGroup, group *protectiongroups.ProtectionGroup) error {
	opts, ok, err := protectionGroupUpdateRequired(instance, group)
	if err != nil {
		return err
	}

	if ok {
		if instance.Status.Reconciled && r.StopAfterInSync() {
			// Do not process any further changes once we have reached a
			// synchronized state unless there is an annotation on the resource.
			if _, present := instance.Annotations[arrayManager.ReconcileAfterInSync]; !present {
				msg := common.NoChangesAfterReconciled
				r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceUpdated, msg)
				return common.NewChangeAfterInSync(msg)
			} else {
				logProtectionGroup.Info(common.ChangedAllowedAfterReconciled)
			}
		}

		if err := checkProtectionGroupVersions(client, instance); err != nil {
			return err
		}

		if opts.Name != nil {
			_, err := protectiongroups.Get(context.TODO(), client, *opts.Name,
				protectionGroupContextNames(client, instance), nil).Extract()
			if err == nil {
				// A collision only degrades the rename.  Any other staged
				// changes still apply.
				r.ReconcilerEventLogger.WarningEvent(instance, common.ResourceDependency,
					"rename collision: protection group %q already exists", *opts.Name)
				opts.Name = nil
				if common.CompareStructs(opts, protectiongroups.GroupOpts{}) {
					return nil
				}
			} else if !flasharray.IsNotFound(perrors.Cause(err)) {
				return err
			}
		}

		if r.IsDryRun(instance) {
			r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceWait,
				"dry-run: protection group would be updated")
			return nil
		}

		logProtectionGroup.Info("updating protection group", "opts", opts)

		result, err := protectiongroups.Update(context.TODO(), client, group.Name,
			protectionGroupContextNames(client, instance), opts).Extract()
		if err != nil {
			err = perrors.Wrapf(err, "failed to update: %s", common.FormatStruct(opts))
			return err
		}

		*group = *result

		r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceUpdated,
			"protection group has been updated")
	}

	return nil
}

// ReconciledDeleted is a method which handles the deletion of a resource.
// The array resource is destroyed and, when eradication is allowed,
// eradicated rather than left in its pending window.
func (r *ProtectionGroupReconciler) ReconciledDeleted(client *flasharray.Client, instance *flasharrayv1.ProtectionGroup, group *protectiongroups.ProtectionGroup) error {
	if utils.ContainsString(instance.ObjectMeta.Finalizers, ProtectionGroupFinalizerName) {
		if group != nil && !r.IsDryRun(instance) {
			if !group.Destroyed {
				destroyed := true
				opts := protectiongroups.GroupOpts{Destroyed: &destroyed}
				_, err := protectiongroups.Update(context.TODO(), client, group.Name,
					protectionGroupContextNames(client, instance), opts).Extract()
				if err != nil {
					err = perrors.Wrap(err, "failed to destroy protection group")
					return err
				}

				r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceDeleted,
					"protection group has been destroyed")
			}

			if instance.Spec.Eradicate {
				err := protectiongroups.Delete(context.TODO(), client, group.Name,
					protectionGroupContextNames(client, instance)).ExtractErr()
				if err != nil {
					err = perrors.Wrap(err, "failed to eradicate protection group")
					return err
				}

				r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceDeleted,
					"protection group has been eradicated")
			}
		}

		// Remove the finalizer so the kubernetes delete operation can continue.
		instance.ObjectMeta.Finalizers = utils.RemoveString(instance.ObjectMeta.Finalizers, ProtectionGroupFinalizerName)
		if err := r.Client.Update(context.Background(), instance); err != nil {
			return err
		}
	}

	return nil
}

// statusUpdateRequired is a utility function which determines whether an
// update is required to the resource status attribute.  Updating this
// unnecessarily will result in an infinite reconciliation loop.
func (r *ProtectionGroupReconciler) statusUpdateRequired(instance *flasharrayv1.ProtectionGroup, group *protectiongroups.ProtectionGroup, inSync bool) (result bool) {
	status := &instance.Status

	destroyed := group != nil && group.Destroyed
	if status.Destroyed != destroyed {
		status.Destroyed = destroyed
		result = true
	}

	if status.InSync != inSync {
		status.InSync = inSync
		result = true
	}

	if status.InSync && !status.Reconciled {
		// Record the fact that we have reached inSync at least once.
		status.Reconciled = true
		result = true
	}

	return result
}

// FindExistingResource attempts to find the array resource with the same
// name as the kubernetes resource.  Both the live and the eradication
// pending namespaces are searched.
func (r *ProtectionGroupReconciler) FindExistingResource(client *flasharray.Client, instance *flasharrayv1.ProtectionGroup) (group *protectiongroups.ProtectionGroup, err error) {
	contextNames := protectionGroupContextNames(client, instance)

	group, err = protectiongroups.Get(context.TODO(), client, instance.Name, contextNames, nil).Extract()
	if err != nil {
		if !flasharray.IsNotFound(perrors.Cause(err)) {
			err = perrors.Wrapf(err, "failed to get: %s", instance.Name)
			return nil, err
		}

		destroyed := true
		group, err = protectiongroups.Get(context.TODO(), client, instance.Name, contextNames, &destroyed).Extract()
		if err != nil {
			if !flasharray.IsNotFound(perrors.Cause(err)) {
				err = perrors.Wrapf(err, "failed to get destroyed: %s", instance.Name)
				return nil, err
			}

			return nil, nil
		}
	}

	return group, nil
}

// ReconcileResource interacts with the array API in order to reconcile the
// state of a protection group with the state stored in the k8s database.
func (r *ProtectionGroupReconciler) ReconcileResource(client *flasharray.Client, instance *flasharrayv1.ProtectionGroup) error {
	group, err := r.FindExistingResource(client, instance)
	if err != nil {
		return err
	}

	if !instance.DeletionTimestamp.IsZero() {
		err = r.ReconciledDeleted(client, instance, group)

	} else {
		if group == nil {
			group, err = r.ReconcileNew(client, instance)
		} else if group.Destroyed {
			group, err = r.ReconcileRecovered(client, instance, group)
		}

		if err == nil && group != nil {
			err = r.ReconcileUpdated(client, instance, group)
		}

		if err == nil && group != nil && utils.IsReconcilerEnabled(utils.Members) {
			spec := instance.Spec
			err = r.ReconcileMembers(client, instance, group, protectiongroups.MemberVolumes, spec.Volumes)
			if err == nil {
				err = r.ReconcileMembers(client, instance, group, protectiongroups.MemberHosts, spec.Hosts)
			}
			if err == nil {
				err = r.ReconcileMembers(client, instance, group, protectiongroups.MemberHostGroups, spec.HostGroups)
			}
		}

		if err == nil && group != nil {
			err = r.ReconcileTargets(client, instance, group)
		}

		inSync := err == nil && group != nil

		if instance.Status.InSync != inSync {
			r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceUpdated, "synchronization has changed to: %t", inSync)
		}

		if r.statusUpdateRequired(instance, group, inSync) {
			logProtectionGroup.Info("updating protection group", "status", instance.Status)

			err2 := r.Client.Status().Update(context.TODO(), instance)
			if err2 != nil {
				err2 = perrors.Wrapf(err2, "failed to update status: %s",
					instance.Name)
				return err2
			}
		}
	}

	return err
}

// StopAfterInSync determines whether the reconciler should continue processing
// change requests after the configuration has been reconciled a first time.
func (r *ProtectionGroupReconciler) StopAfterInSync() bool {
	// If the option is not found or the option was specified in a form other
	// than a bool then assume the safest default value possible.
	return utils.GetReconcilerOptionBool(utils.ProtectionGroup, utils.StopAfterInSync, true)
}

// Reconcile reads that state of the cluster for a ProtectionGroup object and makes changes based on the state read
// +kubebuilder:rbac:groups=flasharray.purestorage.com,resources=protectiongroups,verbs=get;list;watch;create;update;patch;delete
// +kubebuilder:rbac:groups=flasharray.purestorage.com,resources=protectiongroups/status,verbs=get;update;patch
// +kubebuilder:rbac:groups=flasharray.purestorage.com,resources=protectiongroups/finalizers,verbs=update
func (r *ProtectionGroupReconciler) Reconcile(ctx context.Context, request ctrl.Request) (ctrl.Result, error) {
	_ = log.FromContext(ctx)

	savedLog := logProtectionGroup
	logProtectionGroup = logProtectionGroup.WithName(request.NamespacedName.String())
	defer func() { logProtectionGroup = savedLog }()

	// Fetch the ProtectionGroup instance
	instance := &flasharrayv1.ProtectionGroup{}
	err := r.Client.Get(context.TODO(), request.NamespacedName, instance)
	if err != nil {
		if errors.IsNotFound(err) {
			// Object not found, return.  Created objects are automatically
			// garbage collected. For additional cleanup logic use finalizers.
			return reconcile.Result{}, nil
		}

		logProtectionGroup.Error(err, "unable to read object: %v", request)
		// Error reading the object - requeue the request.
		return reconcile.Result{}, err
	}

	if instance.DeletionTimestamp.IsZero() {
		// Ensure that the object has a finalizer setup as a pre-delete hook so
		// that we can delete any array resources that we previously added.
		if !utils.ContainsString(instance.ObjectMeta.Finalizers, ProtectionGroupFinalizerName) {
			instance.ObjectMeta.Finalizers = append(instance.ObjectMeta.Finalizers, ProtectionGroupFinalizerName)
			if err := r.Client.Update(context.Background(), instance); err != nil {
				return reconcile.Result{}, err
			}

			// Might as well return immediately as the update is going to cause
			// another reconcile event for this resource and we don't want to
			// access the array API more than necessary.
			return reconcile.Result{}, nil
		}
	}

	if !utils.IsReconcilerEnabled(utils.ProtectionGroup) {
		return reconcile.Result{}, nil
	}

	arrayClient := r.GetArrayClient(request.Namespace)
	if arrayClient == nil {
		// The client has not been authenticated by the storage array
		// controller so wait.
		r.ReconcilerEventLogger.WarningEvent(instance, common.ResourceDependency,
			"waiting for array client creation")
		return common.RetryMissingClient, nil
	}

	if !r.ArrayManager.GetArrayReady(request.Namespace) {
		r.ReconcilerEventLogger.WarningEvent(instance, common.ResourceDependency,
			"waiting for array reconciliation")
		return common.RetryArrayNotReady, nil
	}

	err = r.ReconcileResource(arrayClient, instance)
	if err != nil {
		return r.ReconcilerErrorHandler.HandleReconcilerError(request, err)
	}

	return ctrl.Result{}, nil
}

// SetupWithManager sets up the controller with the Manager.
func (r *ProtectionGroupReconciler) SetupWithManager(mgr ctrl.Manager) error {
	tMgr := arrayManager.GetInstance(mgr)
	r.Client = mgr.GetClient()
	r.Scheme = mgr.GetScheme()
	r.ArrayManager = tMgr
	r.ReconcilerErrorHandler = &common.ErrorHandler{
		ArrayManager: tMgr,
		Logger:       logProtectionGroup}
	r.ReconcilerEventLogger = &common.EventLogger{
		EventRecorder: mgr.GetEventRecorderFor(ProtectionGroupControllerName),
		Logger:        logProtectionGroup}
	return ctrl.NewControllerManagedBy(mgr).
		For(&flasharrayv1.ProtectionGroup{}).
		Complete(r)
}
