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
	"github.com/pure-storage/flasharray-deployment-manager/flasharray/realms"
)

var logRealm = log.Log.WithName("controller").WithName("realm")

const RealmControllerName = "realm-controller"

const RealmFinalizerName = utils.RealmFinalizerName

var _ reconcile.Reconciler = &RealmReconciler{}

// RealmReconciler reconciles a Realm object
type RealmReconciler struct {
	client.Client
	Log    logr.Logger
	Scheme *runtime.Scheme
	arrayManager.ArrayManager
	common.ReconcilerErrorHandler
	common.ReconcilerEventLogger
}

func realmContextNames(c *flasharray.Client, instance *flasharrayv1.Realm) []string {
	if c.Supports(utils.MinVersionContextNames) {
		return instance.Spec.ContextNames
	}
	return nil
}

// realmQuotaLimit converts the human readable quota into the byte count
// accepted by the array.  The "0" sentinel removes the quota.
func realmQuotaLimit(spec *flasharrayv1.RealmSpec) (*int64, error) {
	if spec.QuotaLimit == nil {
		return nil, nil
	}

	value, err := utils.ParseSize(*spec.QuotaLimit)
	if err != nil {
		return nil, common.NewValidationError(fmt.Sprintf(
			"invalid quota limit %q: %s", *spec.QuotaLimit, err))
	}

	return &value, nil
}

// realmUpdateRequired is a utility function which determines whether an
// update is needed to a realm array resource in order to reconcile with the
// latest stored configuration.
func realmUpdateRequired(instance *flasharrayv1.Realm, realm *realms.Realm) (opts realms.RealmOpts, result bool, err error) {
	var delta strings.Builder

	spec := instance.Spec

	if spec.Rename != nil && *spec.Rename != realm.Name {
		opts.Name = spec.Rename
		delta.WriteString(fmt.Sprintf("\t+Name: %s\n", *opts.Name))
		result = true
	}

	quota, err := realmQuotaLimit(&spec)
	if err != nil {
		return opts, false, err
	}

	if quota != nil {
		current := int64(0)
		if realm.QuotaLimit != nil {
			current = *realm.QuotaLimit
		}
		if *quota != current {
			opts.QuotaLimit = quota
			delta.WriteString(fmt.Sprintf("\t+QuotaLimit: %d\n", *opts.QuotaLimit))
			result = true
		}
	}

	deltaString := delta.String()
	if deltaString != "" {
		deltaString = "\n" + strings.TrimSuffix(deltaString, "\n")
		logRealm.Info(fmt.Sprintf("delta configuration:%s\n", deltaString))
	}
	instance.Status.Delta = deltaString

	return opts, result, nil
}

// IsDryRun reports whether the resource is annotated so that reconciliation
// only reports differences without applying them.
func (r *RealmReconciler) IsDryRun(instance *flasharrayv1.Realm) bool {
	_, present := instance.Annotations[utils.DryRunAnnotation]
	return present
}

// ReconcileNew is a method which handles reconciling a new data resource and
// creates the corresponding array resource thru the array API.
func (r *RealmReconciler) ReconcileNew(client *flasharray.Client, instance *flasharrayv1.Realm) (*realms.Realm, error) {
	if instance.Status.Reconciled && r.StopAfterInSync() {
		// Do not process any further changes once we have reached a
		// synchronized state unless there is an annotation on the resource.
		if _, present := instance.Annotations[arrayManager.ReconcileAfterInSync]; !present {
			msg := common.NoProvisioningAfterReconciled
			r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceUpdated, msg)
			return nil, common.NewChangeAfterInSync(msg)
		} else {
			logRealm.Info(common.ProvisioningAllowedAfterReconciled)
		}
	}

	opts := realms.RealmOpts{}

	quota, err := realmQuotaLimit(&instance.Spec)
	if err != nil {
		return nil, err
	}
	opts.QuotaLimit = quota

	if r.IsDryRun(instance) {
		r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceWait,
			"dry-run: realm would be created")
		return nil, nil
	}

	logRealm.Info("creating realm", "opts", opts)

	realm, err := realms.Create(context.TODO(), client, instance.Name,
		realmContextNames(client, instance), opts).Extract()
	if err != nil {
		err = perrors.Wrapf(err, "failed to create: %s", common.FormatStruct(opts))
		return nil, err
	}

	r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceCreated,
		"realm has been created")

	return realm, nil
}

// ReconcileRecovered restores a realm that is still within its eradication
// pending window.
func (r *RealmReconciler) ReconcileRecovered(client *flasharray.Client, instance *flasharrayv1.Realm, realm *realms.Realm) (*realms.Realm, error) {
	if r.IsDryRun(instance) {
		r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceWait,
			"dry-run: realm would be recovered")
		return realm, nil
	}

	destroyed := false
	opts := realms.RealmOpts{Destroyed: &destroyed}

	logRealm.Info("recovering destroyed realm", "name", realm.Name)

	result, err := realms.Update(context.TODO(), client, realm.Name,
		realmContextNames(client, instance), opts).Extract()
	if err != nil {
		err = perrors.Wrap(err, "failed to recover realm")
		return nil, err
	}

	r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceUpdated,
		"realm has been recovered from its eradication pending window")

	return result, nil
}

// ReconcileUpdated is a method which handles reconciling an existing data
// resource and updates the corresponding array resource thru the array API to
// match the desired state of the resource.
func (r *RealmReconciler) ReconcileUpdated(client *flasharray.Client, instance *flasharrayv1.Realm, realm *realms.Realm) error {
	opts, ok, err := realmUpdateRequired(instance, realm)
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
				logRealm.Info(common.ChangedAllowedAfterReconciled)
			}
		}

		if opts.Name != nil {
			_, err := realms.Get(context.TODO(), client, *opts.Name,
				realmContextNames(client, instance), nil).Extract()
			if err == nil {
				// A collision only degrades the rename.  Any other staged
				// changes still apply.
				r.ReconcilerEventLogger.WarningEvent(instance, common.ResourceDependency,
					"rename collision: realm %q already exists", *opts.Name)
				opts.Name = nil
				if common.CompareStructs(opts, realms.RealmOpts{}) {
					return nil
				}
			} else if !flasharray.IsNotFound(perrors.Cause(err)) {
				return err
			}
		}

		if r.IsDryRun(instance) {
			r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceWait,
				"dry-run: realm would be updated")
			return nil
		}

		logRealm.Info("updating realm", "opts", opts)

		result, err := realms.Update(context.TODO(), client, realm.Name,
			realmContextNames(client, instance), opts).Extract()
		if err != nil {
			err = perrors.Wrapf(err, "failed to update: %s", common.FormatStruct(opts))
			return err
		}

		*realm = *result

		r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceUpdated,
			"realm has been updated")
	}

	return nil
}

// ReconciledDeleted is a method which handles the deletion of a resource.
// The array resource is destroyed and, when eradication is allowed,
// eradicated rather than left in its pending window.
func (r *RealmReconciler) ReconciledDeleted(client *flasharray.Client, instance *flasharrayv1.Realm, realm *realms.Realm) error {
	if utils.ContainsString(instance.ObjectMeta.Finalizers, RealmFinalizerName) {
		if realm != nil && !r.IsDryRun(instance) {
			if !realm.Destroyed {
				destroyed := true
				opts := realms.RealmOpts{Destroyed: &destroyed}
				_, err := realms.Update(context.TODO(), client, realm.Name,
					realmContextNames(client, instance), opts).Extract()
				if err != nil {
					err = perrors.Wrap(err, "failed to destroy realm")
					return err
				}

				r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceDeleted,
					"realm has been destroyed")
			}

			if instance.Spec.Eradicate {
				err := realms.Delete(context.TODO(), client, realm.Name,
					realmContextNames(client, instance)).ExtractErr()
				if err != nil {
					err = perrors.Wrap(err, "failed to eradicate realm")
					return err
				}

				r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceDeleted,
					"realm has been eradicated")
			}
		}

		// Remove the finalizer so the kubernetes delete operation can continue.
		instance.ObjectMeta.Finalizers = utils.RemoveString(instance.ObjectMeta.Finalizers, RealmFinalizerName)
		if err := r.Client.Update(context.Background(), instance); err != nil {
			return err
		}
	}

	return nil
}

// statusUpdateRequired is a utility function which determines whether an
// update is required to the resource status attribute.  Updating this
// unnecessarily will result in an infinite reconciliation loop.
func (r *RealmReconciler) statusUpdateRequired(instance *flasharrayv1.Realm, realm *realms.Realm, inSync bool) (result bool) {
	status := &instance.Status

	destroyed := realm != nil && realm.Destroyed
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
func (r *RealmReconciler) FindExistingResource(client *flasharray.Client, instance *flasharrayv1.Realm) (realm *realms.Realm, err error) {
	contextNames := realmContextNames(client, instance)

	realm, err = realms.Get(context.TODO(), client, instance.Name, contextNames, nil).Extract()
	if err != nil {
		if !flasharray.IsNotFound(perrors.Cause(err)) {
			err = perrors.Wrapf(err, "failed to get: %s", instance.Name)
			return nil, err
		}

		destroyed := true
		realm, err = realms.Get(context.TODO(), client, instance.Name, contextNames, &destroyed).Extract()
		if err != nil {
			if !flasharray.IsNotFound(perrors.Cause(err)) {
				err = perrors.Wrapf(err, "failed to get destroyed: %s", instance.Name)
				return nil, err
			}

			return nil, nil
		}
	}

	return realm, nil
}

// ReconcileResource interacts with the array API in order to reconcile the
// state of a realm with the state stored in the k8s database.
func (r *RealmReconciler) ReconcileResource(client *flasharray.Client, instance *flasharrayv1.Realm) error {
	if !client.Supports(utils.MinVersionRealms) {
		// Realms are not an additive parameter on another resource; without
		// array support there is nothing this controller can manage.
		return common.NewVersionDependency(fmt.Sprintf(
			"realms require REST version %s", utils.MinVersionRealms))
	}

	realm, err := r.FindExistingResource(client, instance)
	if err != nil {
		return err
	}

	if !instance.DeletionTimestamp.IsZero() {
		err = r.ReconciledDeleted(client, instance, realm)

	} else {
		if realm == nil {
			realm, err = r.ReconcileNew(client, instance)
		} else {
			if realm.Destroyed {
				realm, err = r.ReconcileRecovered(client, instance, realm)
			}
			if err == nil && realm != nil {
				err = r.ReconcileUpdated(client, instance, realm)
			}
		}

		inSync := err == nil && realm != nil

		if instance.Status.InSync != inSync {
			r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceUpdated, "synchronization has changed to: %t", inSync)
		}

		if r.statusUpdateRequired(instance, realm, inSync) {
			logRealm.Info("updating realm", "status", instance.Status)

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
func (r *RealmReconciler) StopAfterInSync() bool {
	// If the option is not found or the option was specified in a form other
	// than a bool then assume the safest default value possible.
	return utils.GetReconcilerOptionBool(utils.Realm, utils.StopAfterInSync, true)
}

// Reconcile reads that state of the cluster for a Realm object and makes changes based on the state read
// +kubebuilder:rbac:groups=flasharray.purestorage.com,resources=realms,verbs=get;list;watch;create;update;patch;delete
// +kubebuilder:rbac:groups=flasharray.purestorage.com,resources=realms/status,verbs=get;update;patch
// +kubebuilder:rbac:groups=flasharray.purestorage.com,resources=realms/finalizers,verbs=update
func (r *RealmReconciler) Reconcile(ctx context.Context, request ctrl.Request) (ctrl.Result, error) {
	_ = log.FromContext(ctx)

	savedLog := logRealm
	logRealm = logRealm.WithName(request.NamespacedName.String())
	defer func() { logRealm = savedLog }()

	// Fetch the Realm instance
	instance := &flasharrayv1.Realm{}
	err := r.Client.Get(context.TODO(), request.NamespacedName, instance)
	if err != nil {
		if errors.IsNotFound(err) {
			// Object not found, return.  Created objects are automatically
			// garbage collected. For additional cleanup logic use finalizers.
			return reconcile.Result{}, nil
		}

		logRealm.Error(err, "unable to read object: %v", request)
		// Error reading the object - requeue the request.
		return reconcile.Result{}, err
	}

	if instance.DeletionTimestamp.IsZero() {
		// Ensure that the object has a finalizer setup as a pre-delete hook so
		// that we can delete any array resources that we previously added.
		if !utils.ContainsString(instance.ObjectMeta.Finalizers, RealmFinalizerName) {
			instance.ObjectMeta.Finalizers = append(instance.ObjectMeta.Finalizers, RealmFinalizerName)
			if err := r.Client.Update(context.Background(), instance); err != nil {
				return reconcile.Result{}, err
			}

			// Might as well return immediately as the update is going to cause
			// another reconcile event for this resource and we don't want to
			// access the array API more than necessary.
			return reconcile.Result{}, nil
		}
	}

	if !utils.IsReconcilerEnabled(utils.Realm) {
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
func (r *RealmReconciler) SetupWithManager(mgr ctrl.Manager) error {
	tMgr := arrayManager.GetInstance(mgr)
	r.Client = mgr.GetClient()
	r.Scheme = mgr.GetScheme()
	r.ArrayManager = tMgr
	r.ReconcilerErrorHandler = &common.ErrorHandler{
		ArrayManager: tMgr,
		Logger:       logRealm}
	r.ReconcilerEventLogger = &common.EventLogger{
		EventRecorder: mgr.GetEventRecorderFor(RealmControllerName),
		Logger:        logRealm}
	return ctrl.NewControllerManagedBy(mgr).
		For(&flasharrayv1.Realm{}).
		Complete(r)
}
