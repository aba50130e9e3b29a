/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2024-2026 Pure Storage, Inc. */

package controllers

import (
	"context"
	"fmt"
	"strings"
	"time"

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
	"github.com/pure-storage/flasharray-deployment-manager/flasharray/arrays"
)

var logStorageArray = log.Log.WithName("controller").WithName("storagearray")

const StorageArrayControllerName = "storagearray-controller"

const StorageArrayFinalizerName = utils.StorageArrayFinalizerName

// ArraySessionMonitorInterval is how often the session watchdog polls the
// array once a session has been established.
const ArraySessionMonitorInterval = 60 * time.Second

var _ reconcile.Reconciler = &StorageArrayReconciler{}

// StorageArrayReconciler reconciles a StorageArray object.  It is the master
// of the array client; every other controller in the namespace waits for it
// to establish an authenticated session.
type StorageArrayReconciler struct {
	client.Client
	Log    logr.Logger
	Scheme *runtime.Scheme
	arrayManager.ArrayManager
	common.ReconcilerErrorHandler
	common.ReconcilerEventLogger
}

// ArraySessionMonitor is a monitor body which polls the array identity
// endpoint to verify that the established session is still usable.  When the
// session fails the reconciler is notified so that it can rebuild the client.
type ArraySessionMonitor struct {
	arrayManager.CommonMonitorBody
}

// Run implements the MonitorBody interface for the session watchdog.
func (m *ArraySessionMonitor) Run(client *flasharray.Client) (stop bool, err error) {
	_, err = arrays.Get(context.TODO(), client)
	if err != nil {
		m.SetState("array session has failed: %s", err.Error())
		return true, err
	}

	m.SetState("array session is healthy")

	return false, nil
}

// HTTPSRequired determines whether the reconciler requires the array
// endpoint to be HTTPS before establishing a session.
func (r *StorageArrayReconciler) HTTPSRequired() bool {
	return utils.GetReconcilerOptionBool(utils.StorageArray, utils.HTTPSRequired, true)
}

// statusUpdateRequired is a utility function which determines whether an
// update is required to the resource status attribute.  Updating this
// unnecessarily will result in an infinite reconciliation loop.
func (r *StorageArrayReconciler) statusUpdateRequired(instance *flasharrayv1.StorageArray, array *arrays.Array, client *flasharray.Client, ready bool) (result bool) {
	status := &instance.Status

	if status.Ready != ready {
		status.Ready = ready
		result = true
	}

	arrayName := ""
	purityVersion := ""
	if array != nil {
		arrayName = array.Name
		purityVersion = array.Version
	}

	if status.ArrayName != arrayName {
		status.ArrayName = arrayName
		result = true
	}

	if status.PurityVersion != purityVersion {
		status.PurityVersion = purityVersion
		result = true
	}

	apiVersion := ""
	if client != nil && client.APIVersion != nil {
		apiVersion = client.APIVersion.String()
	}

	if status.APIVersion != apiVersion {
		status.APIVersion = apiVersion
		result = true
	}

	if status.Ready && !status.Reconciled {
		// Record the fact that we have reached ready at least once.
		status.Reconciled = true
		result = true
	}

	return result
}

// updateStatus writes back the resource status when it has drifted.
func (r *StorageArrayReconciler) updateStatus(instance *flasharrayv1.StorageArray, array *arrays.Array, client *flasharray.Client, ready bool) error {
	if r.statusUpdateRequired(instance, array, client, ready) {
		logStorageArray.Info("updating storage array", "status", instance.Status)

		err := r.Client.Status().Update(context.TODO(), instance)
		if err != nil {
			return perrors.Wrapf(err, "failed to update status: %s", instance.Name)
		}
	}

	return nil
}

// ReconciledDeleted is a method which handles the deletion of a resource.
// The session state tracked for the namespace is torn down so that resource
// controllers stop reconciling against the array.
func (r *StorageArrayReconciler) ReconciledDeleted(instance *flasharrayv1.StorageArray) error {
	if utils.ContainsString(instance.ObjectMeta.Finalizers, StorageArrayFinalizerName) {
		r.CancelMonitor(instance)
		r.SetArrayReady(instance.Namespace, false)
		r.SetArrayClient(instance.Namespace, nil)

		r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceDeleted,
			"array session has been torn down")

		// Remove the finalizer so the kubernetes delete operation can continue.
		instance.ObjectMeta.Finalizers = utils.RemoveString(instance.ObjectMeta.Finalizers, StorageArrayFinalizerName)
		if err := r.Client.Update(context.Background(), instance); err != nil {
			return err
		}
	}

	return nil
}

// ReconcileResource establishes and validates the array session and keeps the
// resource status aligned with the array identity.
func (r *StorageArrayReconciler) ReconcileResource(instance *flasharrayv1.StorageArray) error {
	if !instance.DeletionTimestamp.IsZero() {
		return r.ReconciledDeleted(instance)
	}

	if r.HTTPSRequired() && strings.HasPrefix(instance.Spec.Endpoint, arrayManager.HTTPPrefix) {
		return common.NewHTTPSClientRequired(fmt.Sprintf(
			"HTTPS is required; endpoint %q is not acceptable", instance.Spec.Endpoint))
	}

	arrayClient := r.GetArrayClient(instance.Namespace)
	if arrayClient == nil {
		var err error

		arrayClient, err = r.BuildArrayClient(instance.Namespace)
		if err != nil {
			if err2 := r.updateStatus(instance, nil, nil, false); err2 != nil {
				logStorageArray.Error(err2, "status update failed")
			}
			return err
		}

		r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceCreated,
			"array session has been established")
	}

	if !arrayClient.Supports(utils.MinSupportedVersion) {
		return common.NewVersionDependency(fmt.Sprintf(
			"the array must support at least REST version %s", utils.MinSupportedVersion))
	}

	array, err := arrays.Get(context.TODO(), arrayClient)
	if err != nil {
		err = perrors.Wrap(err, "failed to query array identity")
		return err
	}

	if err := r.updateStatus(instance, array, arrayClient, true); err != nil {
		return err
	}

	if !r.GetArrayReady(instance.Namespace) {
		r.SetArrayReady(instance.Namespace, true)

		r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceUpdated,
			"array %q is ready", array.Name)

		if err := r.NotifyArrayDependencies(instance.Namespace); err != nil {
			return err
		}
	}

	// Restart the session watchdog.  It forces another reconciliation when
	// the session stops working.
	r.CancelMonitor(instance)

	monitor := &arrayManager.Monitor{
		MonitorBody: &ArraySessionMonitor{},
		Logger:      logStorageArray,
		Interval:    ArraySessionMonitorInterval,
		Object:      instance,
	}

	return r.ArrayManager.StartMonitor(monitor, "monitoring array session health")
}

// Reconcile reads that state of the cluster for a StorageArray object and makes changes based on the state read
// +kubebuilder:rbac:groups=flasharray.purestorage.com,resources=storagearrays,verbs=get;list;watch;create;update;patch;delete
// +kubebuilder:rbac:groups=flasharray.purestorage.com,resources=storagearrays/status,verbs=get;update;patch
// +kubebuilder:rbac:groups=flasharray.purestorage.com,resources=storagearrays/finalizers,verbs=update
// +kubebuilder:rbac:groups="",resources=secrets,verbs=get;list;watch
// +kubebuilder:rbac:groups="",resources=events,verbs=create;patch
func (r *StorageArrayReconciler) Reconcile(ctx context.Context, request ctrl.Request) (ctrl.Result, error) {
	_ = log.FromContext(ctx)

	savedLog := logStorageArray
	logStorageArray = logStorageArray.WithName(request.NamespacedName.String())
	defer func() { logStorageArray = savedLog }()

	// Fetch the StorageArray instance
	instance := &flasharrayv1.StorageArray{}
	err := r.Client.Get(context.TODO(), request.NamespacedName, instance)
	if err != nil {
		if errors.IsNotFound(err) {
			// Object not found, return.  Created objects are automatically
			// garbage collected. For additional cleanup logic use finalizers.
			return reconcile.Result{}, nil
		}

		logStorageArray.Error(err, "unable to read object: %v", request)
		// Error reading the object - requeue the request.
		return reconcile.Result{}, err
	}

	if instance.DeletionTimestamp.IsZero() {
		// Ensure that the object has a finalizer setup as a pre-delete hook so
		// that we can tear down the namespace session state.
		if !utils.ContainsString(instance.ObjectMeta.Finalizers, StorageArrayFinalizerName) {
			instance.ObjectMeta.Finalizers = append(instance.ObjectMeta.Finalizers, StorageArrayFinalizerName)
			if err := r.Client.Update(context.Background(), instance); err != nil {
				return reconcile.Result{}, err
			}

			// Might as well return immediately as the update is going to cause
			// another reconcile event for this resource and we don't want to
			// access the array API more than necessary.
			return reconcile.Result{}, nil
		}
	}

	if !utils.IsReconcilerEnabled(utils.StorageArray) {
		return reconcile.Result{}, nil
	}

	err = r.ReconcileResource(instance)
	if err != nil {
		return r.ReconcilerErrorHandler.HandleReconcilerError(request, err)
	}

	return ctrl.Result{}, nil
}

// SetupWithManager sets up the controller with the Manager.
func (r *StorageArrayReconciler) SetupWithManager(mgr ctrl.Manager) error {
	tMgr := arrayManager.GetInstance(mgr)
	r.Client = mgr.GetClient()
	r.Scheme = mgr.GetScheme()
	r.ArrayManager = tMgr
	r.ReconcilerErrorHandler = &common.ErrorHandler{
		ArrayManager: tMgr,
		Logger:       logStorageArray}
	r.ReconcilerEventLogger = &common.EventLogger{
		EventRecorder: mgr.GetEventRecorderFor(StorageArrayControllerName),
		Logger:        logStorageArray}
	return ctrl.NewControllerManagedBy(mgr).
		For(&flasharrayv1.StorageArray{}).
		Complete(r)
}
