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
	"github.com/pure-storage/flasharray-deployment-manager/flasharray/volumegroups"
)

var logVolumeGroup = log.Log.WithName("controller").WithName("volumegroup")

const VolumeGroupControllerName = "volumegroup-controller"

const VolumeGroupFinalizerName = utils.VolumeGroupFinalizerName

var _ reconcile.Reconciler = &VolumeGroupReconciler{}

// VolumeGroupReconciler reconciles a VolumeGroup object
type VolumeGroupReconciler struct {
	client.Client
	Log    logr.Logger
	Scheme *runtime.Scheme
	arrayManager.ArrayManager
	common.ReconcilerErrorHandler
	common.ReconcilerEventLogger
}

// volumeGroupContextNames returns the fleet context names to include on each
// request.  Context names are an additive parameter so they are silently
// omitted when the array does not support them.
func volumeGroupContextNames(c *flasharray.Client, instance *flasharrayv1.VolumeGroup) []string {
	if c.Supports(utils.MinVersionContextNames) {
		return instance.Spec.ContextNames
	}
	return nil
}

// volumeGroupQoSOpts converts the human readable spec limits into the byte
// and operation counts accepted by the array.  The "0" sentinel removes a
// limit.
func volumeGroupQoSOpts(spec *flasharrayv1.VolumeGroupSpec) (*volumegroups.QoSOpts, error) {
	if spec.BandwidthLimit == nil && spec.IOPSLimit == nil {
		return nil, nil
	}

	opts := volumegroups.QoSOpts{}

	if spec.BandwidthLimit != nil {
		value, err := utils.ParseSize(*spec.BandwidthLimit)
		if err != nil {
			return nil, common.NewValidationError(fmt.Sprintf(
				"invalid bandwidth limit %q: %s", *spec.BandwidthLimit, err))
		}
		opts.BandwidthLimit = &value
	}

	if spec.IOPSLimit != nil {
		value, err := utils.ParseIOPS(*spec.IOPSLimit)
		if err != nil {
			return nil, common.NewValidationError(fmt.Sprintf(
				"invalid IOPS limit %q: %s", *spec.IOPSLimit, err))
		}
		opts.IopsLimit = &value
	}

	return &opts, nil
}

// volumeGroupUpdateRequired is a utility function which determines whether an
// update is needed to a volume group array resource in order to reconcile
// with the latest stored configuration.
func volumeGroupUpdateRequired(instance *flasharrayv1.VolumeGroup, group *volumegroups.VolumeGroup) (opts volumegroups.GroupOpts, result bool, err error) {
	var delta strings.Builder

	spec := instance.Spec

	if spec.Rename != nil && *spec.Rename != group.Name {
		opts.Name = spec.Rename
		delta.WriteString(fmt.Sprintf("\t+Name: %s\n", *opts.Name))
		result = true
	}

	qos, err := volumeGroupQoSOpts(&spec)
	if err != nil {
		return opts, false, err
	}

	if qos != nil {
		changed := false
		if qos.BandwidthLimit != nil {
			current := int64(0)
			if group.QoS.BandwidthLimit != nil {
				current = *group.QoS.BandwidthLimit
			}
			if *qos.BandwidthLimit != current {
				delta.WriteString(fmt.Sprintf("\t+BandwidthLimit: %d\n", *qos.BandwidthLimit))
				changed = true
			}
		}
		if qos.IopsLimit != nil {
			current := int64(0)
			if group.QoS.IopsLimit != nil {
				current = *group.QoS.IopsLimit
			}
			if *qos.IopsLimit != current {
				delta.WriteString(fmt.Sprintf("\t+IOPSLimit: %d\n", *qos.IopsLimit))
				changed = true
			}
		}
		if changed {
			opts.QoS = qos
			result = true
		}
	}

	if spec.PriorityOperator != nil && spec.PriorityValue != nil {
		if *spec.PriorityOperator != group.PriorityAdjustment.Operator ||
			*spec.PriorityValue != group.PriorityAdjustment.Value {
			opts.PriorityAdjustment = &volumegroups.PriorityAdjustmentOpts{
				Operator: spec.PriorityOperator,
				Value:    spec.PriorityValue,
			}
			delta.WriteString(fmt.Sprintf("\t+PriorityAdjustment: %s%d\n",
				*spec.PriorityOperator, *spec.PriorityValue))
			result = true
		}
	}

	deltaString := delta.String()
	if deltaString != "" {
		deltaString = "\n" + strings.TrimSuffix(deltaString, "\n")
		logVolumeGroup.Info(fmt.Sprintf("delta configuration:%s\n", deltaString))
	}
	instance.Status.Delta = deltaString

	return opts, result, nil
}

// checkVolumeGroupVersions validates that the configuration does not depend
// on REST features which the array does not support.
func checkVolumeGroupVersions(c *flasharray.Client, instance *flasharrayv1.VolumeGroup) error {
	if instance.Spec.PriorityOperator != nil || instance.Spec.PriorityValue != nil {
		if !c.Supports(utils.MinVersionPriority) {
			return common.NewVersionDependency(fmt.Sprintf(
				"priority adjustment requires REST version %s", utils.MinVersionPriority))
		}
	}
	return nil
}

// IsDryRun reports whether the resource is annotated so that reconciliation
// only reports differences without applying them.
func (r *VolumeGroupReconciler) IsDryRun(instance *flasharrayv1.VolumeGroup) bool {
	_, present := instance.Annotations[utils.DryRunAnnotation]
	return present
}

// ReconcileNew is a method which handles reconciling a new data resource and
// creates the corresponding array resource thru the array API.
func (r *VolumeGroupReconciler) ReconcileNew(client *flasharray.Client, instance *flasharrayv1.VolumeGroup) (*volumegroups.VolumeGroup, error) {
	if instance.Status.Reconciled && r.StopAfterInSync() {
		// Do not process any further changes once we have reached a
		// synchronized state unless there is an annotation on the resource.
		if _, present := instance.Annotations[arrayManager.ReconcileAfterInSync]; !present {
			msg := common.NoProvisioningAfterReconciled
			r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceUpdated, msg)
			return nil, common.NewChangeAfterInSync(msg)
		} else {
			logVolumeGroup.Info(common.ProvisioningAllowedAfterReconciled)
		}
	}

	if err := checkVolumeGroupVersions(client, instance); err != nil {
		return nil, err
	}

	opts := volumegroups.GroupOpts{}

	qos, err := volumeGroupQoSOpts(&instance.Spec)
	if err != nil {
		return nil, err
	}
	opts.QoS = qos

	if instance.Spec.PriorityOperator != nil && instance.Spec.PriorityValue != nil {
		opts.PriorityAdjustment = &volumegroups.PriorityAdjustmentOpts{
			Operator: instance.Spec.PriorityOperator,
			Value:    instance.Spec.PriorityValue,
		}
	}

	if r.IsDryRun(instance) {
		r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceWait,
			"dry-run: volume group would be created")
		return nil, nil
	}

	logVolumeGroup.Info("creating volume group", "opts", opts)

	group, err := volumegroups.Create(context.TODO(), client, instance.Name,
		volumeGroupContextNames(client, instance), opts).Extract()
	if err != nil {
		err = perrors.Wrapf(err, "failed to create: %s", common.FormatStruct(opts))
		return nil, err
	}

	r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceCreated,
		"volume group has been created")

	return group, nil
}

// ReconcileRecovered restores a volume group that is still within its
// eradication pending window so that it can be reconciled in place rather
// than recreated under a temporary name.
func (r *VolumeGroupReconciler) ReconcileRecovered(client *flasharray.Client, instance *flasharrayv1.VolumeGroup, group *volumegroups.VolumeGroup) (*volumegroups.VolumeGroup, error) {
	if r.IsDryRun(instance) {
		r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceWait,
			"dry-run: volume group would be recovered")
		return group, nil
	}

	destroyed := false
	opts := volumegroups.GroupOpts{Destroyed: &destroyed}

	logVolumeGroup.Info("recovering destroyed volume group", "name", group.Name)

	result, err := volumegroups.Update(context.TODO(), client, group.Name,
		volumeGroupContextNames(client, instance), opts).Extract()
	if err != nil {
		err = perrors.Wrap(err, "failed to recover volume group")
		return nil, err
	}

	r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceUpdated,
		"volume group has been recovered from its eradication pending window")

	return result, nil
}

// ReconcileUpdated is a method which handles reconciling an existing data
// resource and updates the corresponding array resource thru the array API to
// match the desired state of the resource.
func (r *VolumeGroupReconciler) ReconcileUpdated(client *flasharray.Client, instance *flasharrayv1.VolumeGroup, group *volumegroups.VolumeGroup) error {
	opts, ok, err := volumeGroupUpdateRequired(instance, group)
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
				logVolumeGroup.Info(common.ChangedAllowedAfterReconciled)
			}
		}

		if err := checkVolumeGroupVersions(client, instance); err != nil {
			return err
		}

		if opts.Name != nil {
			// Renames are rejected by the array when the target name is
			// already taken.  Check first so that the failure is reported
			// as an event rather than a request error.
			_, err := volumegroups.Get(context.TODO(), client, *opts.Name,
				volumeGroupContextNames(client, instance), nil).Extract()
			if err == nil {
				// A collision only degrades the rename.  Any other staged
				// changes still apply.
				r.ReconcilerEventLogger.WarningEvent(instance, common.ResourceDependency,
					"rename collision: volume group %q already exists", *opts.Name)
				opts.Name = nil
				if common.CompareStructs(opts, volumegroups.GroupOpts{}) {
					return nil
				}
			} else if !flasharray.IsNotFound(perrors.Cause(err)) {
				return err
			}
		}

		if r.IsDryRun(instance) {
			r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceWait,
				"dry-run: volume group would be updated")
			return nil
		}

		logVolumeGroup.Info("updating volume group", "opts", opts)

		result, err := volumegroups.Update(context.TODO(), client, group.Name,
			volumeGroupContextNames(client, instance), opts).Extract()
		if err != nil {
			err = perrors.Wrapf(err, "failed to update: %s", common.FormatStruct(opts))
			return err
		}

		*group = *result

		r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceUpdated,
			"volume group has been updated")
	}

	return nil
}

// ReconciledDeleted is a method which handles the deletion of a resource.  The
// array resource is destroyed and, when eradication is allowed, eradicated
// rather than left in its pending window.
func (r *VolumeGroupReconciler) ReconciledDeleted(client *flasharray.Client, instance *flasharrayv1.VolumeGroup, group *volumegroups.VolumeGroup) error {
	if utils.ContainsString(instance.ObjectMeta.Finalizers, VolumeGroupFinalizerName) {
		if group != nil && !r.IsDryRun(instance) {
			if !group.Destroyed {
				destroyed := true
				opts := volumegroups.GroupOpts{Destroyed: &destroyed}
				_, err := volumegroups.Update(context.TODO(), client, group.Name,
					volumeGroupContextNames(client, instance), opts).Extract()
				if err != nil {
					err = perrors.Wrap(err, "failed to destroy volume group")
					return err
				}

				r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceDeleted,
					"volume group has been destroyed")
			}

			if instance.Spec.Eradicate {
				err := volumegroups.Delete(context.TODO(), client, group.Name,
					volumeGroupContextNames(client, instance)).ExtractErr()
				if err != nil {
					err = perrors.Wrap(err, "failed to eradicate volume group")
					return err
				}

				r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceDeleted,
					"volume group has been eradicated")
			}
		}

		// Remove the finalizer so the kubernetes delete operation can continue.
		instance.ObjectMeta.Finalizers = utils.RemoveString(instance.ObjectMeta.Finalizers, VolumeGroupFinalizerName)
		if err := r.Client.Update(context.Background(), instance); err != nil {
			return err
		}
	}

	return nil
}

// statusUpdateRequired is a utility function which determines whether an
// update is required to the resource status attribute.  Updating this
// unnecessarily will result in an infinite reconciliation loop.
func (r *VolumeGroupReconciler) statusUpdateRequired(instance *flasharrayv1.VolumeGroup, group *volumegroups.VolumeGroup, inSync bool) (result bool) {
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

// FindExistingResource attempts to find the array resource with the same name
// as the kubernetes resource.  Both the live and the eradication pending
// namespaces are searched so that a destroyed group can be recovered rather
// than recreated.
func (r *VolumeGroupReconciler) FindExistingResource(client *flasharray.Client, instance *flasharrayv1.VolumeGroup) (group *volumegroups.VolumeGroup, err error) {
	contextNames := volumeGroupContextNames(client, instance)

	group, err = volumegroups.Get(context.TODO(), client, instance.Name, contextNames, nil).Extract()
	if err != nil {
		if !flasharray.IsNotFound(perrors.Cause(err)) {
			err = perrors.Wrapf(err, "failed to get: %s", instance.Name)
			return nil, err
		}

		// The group may have been destroyed but not yet eradicated.
		destroyed := true
		group, err = volumegroups.Get(context.TODO(), client, instance.Name, contextNames, &destroyed).Extract()
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
// state of a volume group with the state stored in the k8s database.
func (r *VolumeGroupReconciler) ReconcileResource(client *flasharray.Client, instance *flasharrayv1.VolumeGroup) error {
	group, err := r.FindExistingResource(client, instance)
	if err != nil {
		return err
	}

	if !instance.DeletionTimestamp.IsZero() {
		err = r.ReconciledDeleted(client, instance, group)

	} else {
		if group == nil {
			group, err = r.ReconcileNew(client, instance)
		} else {
			if group.Destroyed {
				group, err = r.ReconcileRecovered(client, instance, group)
			}
			if err == nil && group != nil {
				err = r.ReconcileUpdated(client, instance, group)
			}
		}

		inSync := err == nil && group != nil

		if instance.Status.InSync != inSync {
			r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceUpdated, "synchronization has changed to: %t", inSync)
		}

		if r.statusUpdateRequired(instance, group, inSync) {
			// Update the resource status to link it to the array object.
			logVolumeGroup.Info("updating volume group", "status", instance.Status)

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
func (r *VolumeGroupReconciler) StopAfterInSync() bool {
	// If the option is not found or the option was specified in a form other
	// than a bool then assume the safest default value possible.
	return utils.GetReconcilerOptionBool(utils.VolumeGroup, utils.StopAfterInSync, true)
}

// Reconcile reads that state of the cluster for a VolumeGroup object and makes changes based on the state read
// +kubebuilder:rbac:groups=flasharray.purestorage.com,resources=volumegroups,verbs=get;list;watch;create;update;patch;delete
// +kubebuilder:rbac:groups=flasharray.purestorage.com,resources=volumegroups/status,verbs=get;update;patch
// +kubebuilder:rbac:groups=flasharray.purestorage.com,resources=volumegroups/finalizers,verbs=update
func (r *VolumeGroupReconciler) Reconcile(ctx context.Context, request ctrl.Request) (ctrl.Result, error) {
	_ = log.FromContext(ctx)

	savedLog := logVolumeGroup
	logVolumeGroup = logVolumeGroup.WithName(request.NamespacedName.String())
	defer func() { logVolumeGroup = savedLog }()

	// Fetch the VolumeGroup instance
	instance := &flasharrayv1.VolumeGroup{}
	err := r.Client.Get(context.TODO(), request.NamespacedName, instance)
	if err != nil {
		if errors.IsNotFound(err) {
			// Object not found, return.  Created objects are automatically
			// garbage collected. For additional cleanup logic use finalizers.
			return reconcile.Result{}, nil
		}

		logVolumeGroup.Error(err, "unable to read object: %v", request)
		// Error reading the object - requeue the request.
		return reconcile.Result{}, err
	}

	if instance.DeletionTimestamp.IsZero() {
		// Ensure that the object has a finalizer setup as a pre-delete hook so
		// that we can delete any array resources that we previously added.
		if !utils.ContainsString(instance.ObjectMeta.Finalizers, VolumeGroupFinalizerName) {
			instance.ObjectMeta.Finalizers = append(instance.ObjectMeta.Finalizers, VolumeGroupFinalizerName)
			if err := r.Client.Update(context.Background(), instance); err != nil {
				return reconcile.Result{}, err
			}

			// Might as well return immediately as the update is going to cause
			// another reconcile event for this resource and we don't want to
			// access the array API more than necessary.
			return reconcile.Result{}, nil
		}
	}

	if !utils.IsReconcilerEnabled(utils.VolumeGroup) {
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
func (r *VolumeGroupReconciler) SetupWithManager(mgr ctrl.Manager) error {
	tMgr := arrayManager.GetInstance(mgr)
	r.Client = mgr.GetClient()
	r.Scheme = mgr.GetScheme()
	r.ArrayManager = tMgr
	r.ReconcilerErrorHandler = &common.ErrorHandler{
		ArrayManager: tMgr,
		Logger:       logVolumeGroup}
	r.ReconcilerEventLogger = &common.EventLogger{
		EventRecorder: mgr.GetEventRecorderFor(VolumeGroupControllerName),
		Logger:        logVolumeGroup}
	return ctrl.NewControllerManagedBy(mgr).
		For(&flasharrayv1.VolumeGroup{}).
		Complete(r)
}
