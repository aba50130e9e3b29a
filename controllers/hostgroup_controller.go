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
	"github.com/pure-storage/flasharray-deployment-manager/flasharray/hostgroups"
)

var logHostGroup = log.Log.WithName("controller").WithName("hostgroup")

const HostGroupControllerName = "hostgroup-controller"

const HostGroupFinalizerName = utils.HostGroupFinalizerName

var _ reconcile.Reconciler = &HostGroupReconciler{}

// HostGroupReconciler reconciles a HostGroup object
type HostGroupReconciler struct {
	client.Client
	Log    logr.Logger
	Scheme *runtime.Scheme
	arrayManager.ArrayManager
	common.ReconcilerErrorHandler
	common.ReconcilerEventLogger
}

func hostGroupContextNames(c *flasharray.Client, instance *flasharrayv1.HostGroup) []string {
	if c.Supports(utils.MinVersionContextNames) {
		return instance.Spec.ContextNames
	}
	return nil
}

// hostGroupUpdateRequired is a utility function which determines whether an
// update is needed to a host group array resource in order to reconcile with
// the latest stored configuration.  Membership and volume connections are
// handled by their own sub-reconcilers.
func hostGroupUpdateRequired(instance *flasharrayv1.HostGroup, group *hostgroups.HostGroup) (opts hostgroups.GroupOpts, result bool) {
	var delta strings.Builder

	spec := instance.Spec

	if spec.Rename != nil && *spec.Rename != group.Name {
		opts.Name = spec.Rename
		delta.WriteString(fmt.Sprintf("\t+Name: %s\n", *opts.Name))
		result = true
	}

	deltaString := delta.String()
	if deltaString != "" {
		deltaString = "\n" + strings.TrimSuffix(deltaString, "\n")
		logHostGroup.Info(fmt.Sprintf("delta configuration:%s\n", deltaString))
	}
	instance.Status.Delta = deltaString

	return opts, result
}

// IsDryRun reports whether the resource is annotated so that reconciliation
// only reports differences without applying them.
func (r *HostGroupReconciler) IsDryRun(instance *flasharrayv1.HostGroup) bool {
	_, present := instance.Annotations[utils.DryRunAnnotation]
	return present
}

// ReconcileNew is a method which handles reconciling a new data resource and
// creates the corresponding array resource thru the array API.
func (r *HostGroupReconciler) ReconcileNew(client *flasharray.Client, instance *flasharrayv1.HostGroup) (*hostgroups.HostGroup, error) {
	if instance.Status.Reconciled && r.StopAfterInSync() {
		// Do not process any further changes once we have reached a
		// synchronized state unless there is an annotation on the resource.
		if _, present := instance.Annotations[arrayManager.ReconcileAfterInSync]; !present {
			msg := common.NoProvisioningAfterReconciled
			r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceUpdated, msg)
			return nil, common.NewChangeAfterInSync(msg)
		} else {
			logHostGroup.Info(common.ProvisioningAllowedAfterReconciled)
		}
	}

	if r.IsDryRun(instance) {
		r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceWait,
			"dry-run: host group would be created")
		return nil, nil
	}

	logHostGroup.Info("creating host group", "name", instance.Name)

	group, err := hostgroups.Create(context.TODO(), client, instance.Name,
		hostGroupContextNames(client, instance)).Extract()
	if err != nil {
		err = perrors.Wrapf(err, "failed to create: %s", instance.Name)
		return nil, err
	}

	r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceCreated,
		"host group has been created")

	return group, nil
}

// ReconcileHosts aligns the group membership with the configured host list.
// A nil host list leaves membership unmanaged.
func (r *HostGroupReconciler) ReconcileHosts(client *flasharray.Client, instance *flasharrayv1.HostGroup, group *hostgroups.HostGroup) error {
	if instance.Spec.Hosts == nil {
		return nil
	}

	if !utils.IsReconcilerEnabled(utils.HostGroupMembers) {
		return nil
	}

	contextNames := hostGroupContextNames(client, instance)

	current, err := hostgroups.ListHosts(context.TODO(), client, group.Name, contextNames)
	if err != nil {
		err = perrors.Wrap(err, "failed to list hosts")
		return err
	}

	added, removed, _ := utils.ListDelta(current, instance.Spec.Hosts)
	if len(added) == 0 && len(removed) == 0 {
		return nil
	}

	if r.IsDryRun(instance) {
		r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceWait,
			"dry-run: host group membership would be changed")
		return nil
	}

	if len(added) > 0 {
		logHostGroup.Info("adding hosts", "hosts", added)

		err = hostgroups.AddHosts(context.TODO(), client, group.Name, added, contextNames).ExtractErr()
		if err != nil {
			err = perrors.Wrapf(err, "failed to add hosts: %v", added)
			return err
		}

		r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceUpdated,
			"hosts %q have been added", strings.Join(added, ","))
	}

	if len(removed) > 0 {
		logHostGroup.Info("removing hosts", "hosts", removed)

		err = hostgroups.RemoveHosts(context.TODO(), client, group.Name, removed, contextNames).ExtractErr()
		if err != nil {
			err = perrors.Wrapf(err, "failed to remove hosts: %v", removed)
			return err
		}

		r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceUpdated,
			"hosts %q have been removed", strings.Join(removed, ","))
	}

	return nil
}

// ReconcileConnections aligns the volume connections of the group with the
// configured volume list.  A connection with the wrong logical unit number
// is cycled since the array does not allow it to be changed in place.
func (r *HostGroupReconciler) ReconcileConnections(client *flasharray.Client, instance *flasharrayv1.HostGroup, group *hostgroups.HostGroup) error {
	if instance.Spec.Volumes == nil {
		return nil
	}

	if !utils.IsReconcilerEnabled(utils.HostGroupVolumes) {
		return nil
	}

	contextNames := hostGroupContextNames(client, instance)

	connections, err := hostgroups.ListConnections(context.TODO(), client, group.Name, contextNames)
	if err != nil {
		err = perrors.Wrap(err, "failed to list connections")
		return err
	}

	current := make(map[string]int32)
	for _, c := range connections {
		current[c.Volume.Name] = c.LUN
	}

	configured := make(map[string]*int32)
	for i := range instance.Spec.Volumes {
		v := &instance.Spec.Volumes[i]
		configured[v.Name] = v.LUN
	}

	disconnects := make([]string, 0)
	for volume := range current {
		if _, ok := configured[volume]; !ok {
			disconnects = append(disconnects, volume)
		}
	}

	connects := make([]flasharrayv1.HostGroupVolumeInfo, 0)
	for i := range instance.Spec.Volumes {
		v := instance.Spec.Volumes[i]
		lun, ok := current[v.Name]
		if !ok {
			connects = append(connects, v)
		} else if v.LUN != nil && *v.LUN != lun {
			// Cycle the connection to change its logical unit number.
			disconnects = append(disconnects, v.Name)
			connects = append(connects, v)
		}
	}

	if len(disconnects) == 0 && len(connects) == 0 {
		return nil
	}

	if r.IsDryRun(instance) {
		r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceWait,
			"dry-run: host group volume connections would be changed")
		return nil
	}

	for _, volume := range disconnects {
		logHostGroup.Info("disconnecting volume", "volume", volume)

		err = hostgroups.Disconnect(context.TODO(), client, group.Name, volume, contextNames).ExtractErr()
		if err != nil {
			err = perrors.Wrapf(err, "failed to disconnect volume: %s", volume)
			return err
		}

		r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceUpdated,
			"volume %q has been disconnected", volume)
	}

	for _, v := range connects {
		logHostGroup.Info("connecting volume", "volume", v.Name)

		opts := hostgroups.ConnectionOpts{LUN: v.LUN}
		err = hostgroups.Connect(context.TODO(), client, group.Name, v.Name, contextNames, opts).ExtractErr()
		if err != nil {
			err = perrors.Wrapf(err, "failed to connect volume: %s", v.Name)
			return err
		}

		r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceUpdated,
			"volume %q has been connected", v.Name)
	}

	return nil
}

// ReconcileUpdated is a method which handles reconciling an existing data
// resource and updates the corresponding array resource thru the array API
// to match the desired state of the resource.
func (r *HostGroupReconciler) ReconcileUpdated(client *flasharray.Client, instance *flasharrayv1.HostGroup, group *hostgroups.HostGroup) error {
	if opts, ok := hostGroupUpdateRequired(instance, group); ok {
		if instance.Status.Reconciled && r.StopAfterInSync() {
			// Do not process any further changes once we have reached a
			// synchronized state unless there is an annotation on the resource.
			if _, present := instance.Annotations[arrayManager.ReconcileAfterInSync]; !present {
				msg := common.NoChangesAfterReconciled
				r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceUpdated, msg)
				return common.NewChangeAfterInSync(msg)
			} else {
				logHostGroup.Info(common.ChangedAllowedAfterReconciled)
			}
		}

		if opts.Name != nil {
			_, err := hostgroups.Get(context.TODO(), client, *opts.Name,
				hostGroupContextNames(client, instance)).Extract()
			if err == nil {
				// A collision only degrades the rename.  Any other staged
				// changes still apply.
				r.ReconcilerEventLogger.WarningEvent(instance, common.ResourceDependency,
					"rename collision: host group %q already exists", *opts.Name)
				opts.Name = nil
				if common.CompareStructs(opts, hostgroups.GroupOpts{}) {
					return nil
				}
			} else if !flasharray.IsNotFound(perrors.Cause(err)) {
				return err
			}
		}

		if r.IsDryRun(instance) {
			r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceWait,
				"dry-run: host group would be updated")
			return nil
		}

		logHostGroup.Info("updating host group", "opts", opts)

		result, err := hostgroups.Update(context.TODO(), client, group.Name,
			hostGroupContextNames(client, instance), opts).Extract()
		if err != nil {
			err = perrors.Wrapf(err, "failed to update: %s", common.FormatStruct(opts))
			return err
		}

		*group = *result

		r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceUpdated,
			"host group has been updated")
	}

	return nil
}

// ReconciledDeleted is a method which handles the deletion of a resource.
// Host groups have no eradication pending window so the array resource is
// removed outright.
func (r *HostGroupReconciler) ReconciledDeleted(client *flasharray.Client, instance *flasharrayv1.HostGroup, group *hostgroups.HostGroup) error {
	if utils.ContainsString(instance.ObjectMeta.Finalizers, HostGroupFinalizerName) {
		if group != nil && !r.IsDryRun(instance) {
			err := hostgroups.Delete(context.TODO(), client, group.Name,
				hostGroupContextNames(client, instance)).ExtractErr()
			if err != nil {
				err = perrors.Wrap(err, "failed to delete host group")
				return err
			}

			r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceDeleted,
				"host group has been deleted")
		}

		// Remove the finalizer so the kubernetes delete operation can continue.
		instance.ObjectMeta.Finalizers = utils.RemoveString(instance.ObjectMeta.Finalizers, HostGroupFinalizerName)
		if err := r.Client.Update(context.Background(), instance); err != nil {
			return err
		}
	}

	return nil
}

// statusUpdateRequired is a utility function which determines whether an
// update is required to the resource status attribute.  Updating this
// unnecessarily will result in an infinite reconciliation loop.
func (r *HostGroupReconciler) statusUpdateRequired(instance *flasharrayv1.HostGroup, inSync bool) (result bool) {
	status := &instance.Status

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
// name as the kubernetes resource.
func (r *HostGroupReconciler) FindExistingResource(client *flasharray.Client, instance *flasharrayv1.HostGroup) (group *hostgroups.HostGroup, err error) {
	group, err = hostgroups.Get(context.TODO(), client, instance.Name,
		hostGroupContextNames(client, instance)).Extract()
	if err != nil {
		if !flasharray.IsNotFound(perrors.Cause(err)) {
			err = perrors.Wrapf(err, "failed to get: %s", instance.Name)
			return nil, err
		}

		return nil, nil
	}

	return group, nil
}

// ReconcileResource interacts with the array API in order to reconcile the
// state of a host group with the state stored in the k8s database.
func (r *HostGroupReconciler) ReconcileResource(client *flasharray.Client, instance *flasharrayv1.HostGroup) error {
	group, err := r.FindExistingResource(client, instance)
	if err != nil {
		return err
	}

	if !instance.DeletionTimestamp.IsZero() {
		err = r.ReconciledDeleted(client, instance, group)

	} else {
		if group == nil {
			group, err = r.ReconcileNew(client, instance)
		}

		if err == nil && group != nil {
			err = r.ReconcileUpdated(client, instance, group)
		}

		if err == nil && group != nil {
			err = r.ReconcileHosts(client, instance, group)
		}

		if err == nil && group != nil {
			err = r.ReconcileConnections(client, instance, group)
		}

		inSync := err == nil && group != nil

		if instance.Status.InSync != inSync {
			r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceUpdated, "synchronization has changed to: %t", inSync)
		}

		if r.statusUpdateRequired(instance, inSync) {
			logHostGroup.Info("updating host group", "status", instance.Status)

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
func (r *HostGroupReconciler) StopAfterInSync() bool {
	// If the option is not found or the option was specified in a form other
	// than a bool then assume the safest default value possible.
	return utils.GetReconcilerOptionBool(utils.HostGroup, utils.StopAfterInSync, true)
}

// Reconcile reads that state of the cluster for a HostGroup object and makes changes based on the state read
// +kubebuilder:rbac:groups=flasharray.purestorage.com,resources=hostgroups,verbs=get;list;watch;create;update;patch;delete
// +kubebuilder:rbac:groups=flasharray.purestorage.com,resources=hostgroups/status,verbs=get;update;patch
// +kubebuilder:rbac:groups=flasharray.purestorage.com,resources=hostgroups/finalizers,verbs=update
func (r *HostGroupReconciler) Reconcile(ctx context.Context, request ctrl.Request) (ctrl.Result, error) {
	_ = log.FromContext(ctx)

	savedLog := logHostGroup
	logHostGroup = logHostGroup.WithName(request.NamespacedName.String())
	defer func() { logHostGroup = savedLog }()

	// Fetch the HostGroup instance
	instance := &flasharrayv1.HostGroup{}
	err := r.Client.Get(context.TODO(), request.NamespacedName, instance)
	if err != nil {
		if errors.IsNotFound(err) {
			// Object not found, return.  Created objects are automatically
			// garbage collected. For additional cleanup logic use finalizers.
			return reconcile.Result{}, nil
		}

		logHostGroup.Error(err, "unable to read object: %v", request)
		// Error reading the object - requeue the request.
		return reconcile.Result{}, err
	}

	if instance.DeletionTimestamp.IsZero() {
		// Ensure that the object has a finalizer setup as a pre-delete hook so
		// that we can delete any array resources that we previously added.
		if !utils.ContainsString(instance.ObjectMeta.Finalizers, HostGroupFinalizerName) {
			instance.ObjectMeta.Finalizers = append(instance.ObjectMeta.Finalizers, HostGroupFinalizerName)
			if err := r.Client.Update(context.Background(), instance); err != nil {
				return reconcile.Result{}, err
			}

			// Might as well return immediately as the update is going to cause
			// another reconcile event for this resource and we don't want to
			// access the array API more than necessary.
			return reconcile.Result{}, nil
		}
	}

	if !utils.IsReconcilerEnabled(utils.HostGroup) {
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
func (r *HostGroupReconciler) SetupWithManager(mgr ctrl.Manager) error {
	tMgr := arrayManager.GetInstance(mgr)
	r.Client = mgr.GetClient()
	r.Scheme = mgr.GetScheme()
	r.ArrayManager = tMgr
	r.ReconcilerErrorHandler = &common.ErrorHandler{
		ArrayManager: tMgr,
		Logger:       logHostGroup}
	r.ReconcilerEventLogger = &common.EventLogger{
		EventRecorder: mgr.GetEventRecorderFor(HostGroupControllerName),
		Logger:        logHostGroup}
	return ctrl.NewControllerManagedBy(mgr).
		For(&flasharrayv1.HostGroup{}).
		Complete(r)
}
