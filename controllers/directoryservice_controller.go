/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2024-2026 Pure Storage, Inc. */

package controllers

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-logr/logr"
	perrors "github.com/pkg/errors"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/types"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/reconcile"

	flasharrayv1 "github.com/pure-storage/flasharray-deployment-manager/api/v1"
	utils "github.com/pure-storage/flasharray-deployment-manager/common"
	"github.com/pure-storage/flasharray-deployment-manager/controllers/common"
	arrayManager "github.com/pure-storage/flasharray-deployment-manager/controllers/manager"
	"github.com/pure-storage/flasharray-deployment-manager/flasharray"
	"github.com/pure-storage/flasharray-deployment-manager/flasharray/directoryservices"
)

var logDirectoryService = log.Log.WithName("controller").WithName("directoryservice")

const DirectoryServiceControllerName = "directoryservice-controller"

const DirectoryServiceFinalizerName = utils.DirectoryServiceFinalizerName

// SecretPasswordKey is the secret data key holding the bind password.
const SecretPasswordKey = "password"

var _ reconcile.Reconciler = &DirectoryServiceReconciler{}

// DirectoryServiceReconciler reconciles a DirectoryService object.  Directory
// service roles exist on the array from the factory so the reconciler only
// ever patches them; deleting the resource resets the role to its defaults.
type DirectoryServiceReconciler struct {
	client.Client
	Log    logr.Logger
	Scheme *runtime.Scheme
	arrayManager.ArrayManager
	common.ReconcilerErrorHandler
	common.ReconcilerEventLogger
}

// directoryServiceUpdateRequired is a utility function which determines
// whether an update is needed to a directory service role in order to
// reconcile with the latest stored configuration.  The bind password and CA
// certificate are write only on the array so they are attached whenever any
// observable attribute drifts.
func directoryServiceUpdateRequired(instance *flasharrayv1.DirectoryService, service *directoryservices.DirectoryService) (opts directoryservices.ServiceOpts, result bool, err error) {
	var delta strings.Builder

	spec := instance.Spec

	if spec.Role != directoryservices.RoleManagement {
		if spec.UserLoginAttribute != nil || spec.UserObject != nil {
			err = common.NewValidationError(
				"user attributes only apply to the management role")
			return opts, false, err
		}
	}

	if spec.Enabled != nil && *spec.Enabled != service.Enabled {
		opts.Enabled = spec.Enabled
		delta.WriteString(fmt.Sprintf("\t+Enabled: %t\n", *opts.Enabled))
		result = true
	}

	if spec.URIs != nil && utils.ListChanged(spec.URIs, service.URIs) {
		opts.URIs = spec.URIs
		delta.WriteString(fmt.Sprintf("\t+URIs: %s\n", strings.Join(opts.URIs, ",")))
		result = true
	}

	if spec.BaseDN != nil && *spec.BaseDN != service.BaseDN {
		opts.BaseDN = spec.BaseDN
		delta.WriteString(fmt.Sprintf("\t+BaseDN: %s\n", *opts.BaseDN))
		result = true
	}

	if spec.BindUser != nil && *spec.BindUser != service.BindUser {
		opts.BindUser = spec.BindUser
		delta.WriteString(fmt.Sprintf("\t+BindUser: %s\n", *opts.BindUser))
		result = true
	}

	if spec.CheckPeer != nil && *spec.CheckPeer != service.CheckPeer {
		opts.CheckPeer = spec.CheckPeer
		delta.WriteString(fmt.Sprintf("\t+CheckPeer: %t\n", *opts.CheckPeer))
		result = true
	}

	management := directoryservices.ManagementOpts{}
	managementChanged := false

	if spec.UserLoginAttribute != nil {
		current := ""
		if service.Management != nil {
			current = service.Management.UserLoginAttribute
		}
		if *spec.UserLoginAttribute != current {
			management.UserLoginAttribute = spec.UserLoginAttribute
			delta.WriteString(fmt.Sprintf("\t+UserLoginAttribute: %s\n", *spec.UserLoginAttribute))
			managementChanged = true
		}
	}

	if spec.UserObject != nil {
		current := ""
		if service.Management != nil {
			current = service.Management.UserObject
		}
		if *spec.UserObject != current {
			management.UserObject = spec.UserObject
			delta.WriteString(fmt.Sprintf("\t+UserObject: %s\n", *spec.UserObject))
			managementChanged = true
		}
	}

	if managementChanged {
		opts.Management = &management
		result = true
	}

	if result {
		opts.Certificate = spec.Certificate
	}

	deltaString := delta.String()
	if deltaString != "" {
		deltaString = "\n" + strings.TrimSuffix(deltaString, "\n")
		logDirectoryService.Info(fmt.Sprintf("delta configuration:%s\n", deltaString))
	}
	instance.Status.Delta = deltaString

	return opts, result, err
}

// attachBindPassword resolves the bind password secret and attaches it to the
// request options.
func (r *DirectoryServiceReconciler) attachBindPassword(instance *flasharrayv1.DirectoryService, opts *directoryservices.ServiceOpts) error {
	if instance.Spec.BindPasswordSecret == nil {
		return nil
	}

	secret := &corev1.Secret{}
	name := types.NamespacedName{Namespace: instance.Namespace, Name: *instance.Spec.BindPasswordSecret}
	if err := r.Client.Get(context.TODO(), name, secret); err != nil {
		if errors.IsNotFound(err) {
			return common.NewMissingKubernetesResource(fmt.Sprintf(
				"bind password secret %q was not found", name.Name))
		}
		return err
	}

	passwordBytes, ok := secret.Data[SecretPasswordKey]
	if !ok {
		return common.NewUserDataError(fmt.Sprintf(
			"bind password secret %q has no %q entry", name.Name, SecretPasswordKey))
	}

	password := string(passwordBytes)
	opts.BindPassword = &password

	return nil
}

// IsDryRun reports whether the resource is annotated so that reconciliation
// only reports differences without applying them.
func (r *DirectoryServiceReconciler) IsDryRun(instance *flasharrayv1.DirectoryService) bool {
	_, present := instance.Annotations[utils.DryRunAnnotation]
	return present
}

// ReconcileUpdated is a method which handles reconciling an existing data
// resource and updates the corresponding array resource thru the array API
// to match the desired state of the resource.
func (r *DirectoryServiceReconciler) ReconcileUpdated(client *flasharray.Client, instance *flasharrayv1.DirectoryService, service *directoryservices.DirectoryService) error {
	opts, ok, err := directoryServiceUpdateRequired(instance, service)
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
				logDirectoryService.Info(common.ChangedAllowedAfterReconciled)
			}
		}

		if err := r.attachBindPassword(instance, &opts); err != nil {
			return err
		}

		if r.IsDryRun(instance) {
			r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceWait,
				"dry-run: directory service would be updated")
			return nil
		}

		logDirectoryService.Info("updating directory service", "role", service.Name)

		result, err := directoryservices.Update(context.TODO(), client, service.Name, nil, opts).Extract()
		if err != nil {
			err = perrors.Wrapf(err, "failed to update role: %s", service.Name)
			return err
		}

		*service = *result

		r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceUpdated,
			"directory service has been updated")
	}

	return nil
}

// ReconciledDeleted is a method which handles the deletion of a resource.
// The role itself cannot be deleted so its configuration is disabled and
// cleared instead.
func (r *DirectoryServiceReconciler) ReconciledDeleted(client *flasharray.Client, instance *flasharrayv1.DirectoryService, service *directoryservices.DirectoryService) error {
	if utils.ContainsString(instance.ObjectMeta.Finalizers, DirectoryServiceFinalizerName) {
		if service != nil && !r.IsDryRun(instance) {
			enabled := false
			empty := ""
			opts := directoryservices.ServiceOpts{
				Enabled:  &enabled,
				BaseDN:   &empty,
				BindUser: &empty,
			}

			_, err := directoryservices.Update(context.TODO(), client, service.Name, nil, opts).Extract()
			if err != nil {
				err = perrors.Wrapf(err, "failed to reset role: %s", service.Name)
				return err
			}

			r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceDeleted,
				"directory service has been reset")
		}

		// Remove the finalizer so the kubernetes delete operation can continue.
		instance.ObjectMeta.Finalizers = utils.RemoveString(instance.ObjectMeta.Finalizers, DirectoryServiceFinalizerName)
		if err := r.Client.Update(context.Background(), instance); err != nil {
			return err
		}
	}

	return nil
}

// statusUpdateRequired is a utility function which determines whether an
// update is required to the resource status attribute.  Updating this
// unnecessarily will result in an infinite reconciliation loop.
func (r *DirectoryServiceReconciler) statusUpdateRequired(instance *flasharrayv1.DirectoryService, service *directoryservices.DirectoryService, inSync bool) (result bool) {
	status := &instance.Status

	enabled := service != nil && service.Enabled
	if status.Enabled != enabled {
		status.Enabled = enabled
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

// FindExistingResource retrieves the array side configuration of the role
// managed by this resource.  The roles are factory provisioned so a missing
// role points at a bad role value rather than a missing resource.
func (r *DirectoryServiceReconciler) FindExistingResource(client *flasharray.Client, instance *flasharrayv1.DirectoryService) (service *directoryservices.DirectoryService, err error) {
	service, err = directoryservices.Get(context.TODO(), client, instance.Spec.Role, nil).Extract()
	if err != nil {
		if !flasharray.IsNotFound(perrors.Cause(err)) {
			err = perrors.Wrapf(err, "failed to get role: %s", instance.Spec.Role)
			return nil, err
		}

		return nil, flasharrayv1.NewMissingArrayResource(fmt.Sprintf(
			"directory service role %q was not found", instance.Spec.Role))
	}

	return service, nil
}

// ReconcileResource interacts with the array API in order to reconcile the
// state of a directory service role with the state stored in the k8s
// database.
func (r *DirectoryServiceReconciler) ReconcileResource(client *flasharray.Client, instance *flasharrayv1.DirectoryService) error {
	service, err := r.FindExistingResource(client, instance)
	if err != nil && instance.DeletionTimestamp.IsZero() {
		return err
	}

	if !instance.DeletionTimestamp.IsZero() {
		err = r.ReconciledDeleted(client, instance, service)

	} else {
		err = r.ReconcileUpdated(client, instance, service)

		inSync := err == nil

		if instance.Status.InSync != inSync {
			r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceUpdated, "synchronization has changed to: %t", inSync)
		}

		if r.statusUpdateRequired(instance, service, inSync) {
			logDirectoryService.Info("updating directory service", "status", instance.Status)

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
func (r *DirectoryServiceReconciler) StopAfterInSync() bool {
	// If the option is not found or the option was specified in a form other
	// than a bool then assume the safest default value possible.
	return utils.GetReconcilerOptionBool(utils.DirectoryService, utils.StopAfterInSync, true)
}

// Reconcile reads that state of the cluster for a DirectoryService object and makes changes based on the state read
// +kubebuilder:rbac:groups=flasharray.purestorage.com,resources=directoryservices,verbs=get;list;watch;create;update;patch;delete
// +kubebuilder:rbac:groups=flasharray.purestorage.com,resources=directoryservices/status,verbs=get;update;patch
// +kubebuilder:rbac:groups=flasharray.purestorage.com,resources=directoryservices/finalizers,verbs=update
// +kubebuilder:rbac:groups="",resources=secrets,verbs=get;list;watch
func (r *DirectoryServiceReconciler) Reconcile(ctx context.Context, request ctrl.Request) (ctrl.Result, error) {
	_ = log.FromContext(ctx)

	savedLog := logDirectoryService
	logDirectoryService = logDirectoryService.WithName(request.NamespacedName.String())
	defer func() { logDirectoryService = savedLog }()

	// Fetch the DirectoryService instance
	instance := &flasharrayv1.DirectoryService{}
	err := r.Client.Get(context.TODO(), request.NamespacedName, instance)
	if err != nil {
		if errors.IsNotFound(err) {
			// Object not found, return.  Created objects are automatically
			// garbage collected. For additional cleanup logic use finalizers.
			return reconcile.Result{}, nil
		}

		logDirectoryService.Error(err, "unable to read object: %v", request)
		// Error reading the object - requeue the request.
		return reconcile.Result{}, err
	}

	if instance.DeletionTimestamp.IsZero() {
		// Ensure that the object has a finalizer setup as a pre-delete hook so
		// that we can reset the role configuration on delete.
		if !utils.ContainsString(instance.ObjectMeta.Finalizers, DirectoryServiceFinalizerName) {
			instance.ObjectMeta.Finalizers = append(instance.ObjectMeta.Finalizers, DirectoryServiceFinalizerName)
			if err := r.Client.Update(context.Background(), instance); err != nil {
				return reconcile.Result{}, err
			}

			// Might as well return immediately as the update is going to cause
			// another reconcile event for this resource and we don't want to
			// access the array API more than necessary.
			return reconcile.Result{}, nil
		}
	}

	if !utils.IsReconcilerEnabled(utils.DirectoryService) {
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
func (r *DirectoryServiceReconciler) SetupWithManager(mgr ctrl.Manager) error {
	tMgr := arrayManager.GetInstance(mgr)
	r.Client = mgr.GetClient()
	r.Scheme = mgr.GetScheme()
	r.ArrayManager = tMgr
	r.ReconcilerErrorHandler = &common.ErrorHandler{
		ArrayManager: tMgr,
		Logger:       logDirectoryService}
	r.ReconcilerEventLogger = &common.EventLogger{
		EventRecorder: mgr.GetEventRecorderFor(DirectoryServiceControllerName),
		Logger:        logDirectoryService}
	return ctrl.NewControllerManagedBy(mgr).
		For(&flasharrayv1.DirectoryService{}).
		Complete(r)
}
