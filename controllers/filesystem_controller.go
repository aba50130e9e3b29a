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
	"github.com/pure-storage/flasharray-deployment-manager/flasharray/filesystems"
)

var logFileSystem = log.Log.WithName("controller").WithName("filesystem")

const FileSystemControllerName = "filesystem-controller"

const FileSystemFinalizerName = utils.FileSystemFinalizerName

var _ reconcile.Reconciler = &FileSystemReconciler{}

// FileSystemReconciler reconciles a FileSystem object
type FileSystemReconciler struct {
	client.Client
	Log    logr.Logger
	Scheme *runtime.Scheme
	arrayManager.ArrayManager
	common.ReconcilerErrorHandler
	common.ReconcilerEventLogger
}

func fileSystemContextNames(c *flasharray.Client, instance *flasharrayv1.FileSystem) []string {
	if c.Supports(utils.MinVersionContextNames) {
		return instance.Spec.ContextNames
	}
	return nil
}

// fileSystemUpdateRequired is a utility function which determines whether an
// update is needed to a file system array resource in order to reconcile
// with the latest stored configuration.
func fileSystemUpdateRequired(instance *flasharrayv1.FileSystem, fs *filesystems.FileSystem) (opts filesystems.FileSystemOpts, result bool) {
	var delta strings.Builder

	spec := instance.Spec

	if spec.Rename != nil && *spec.Rename != fs.Name {
		opts.Name = spec.Rename
		delta.WriteString(fmt.Sprintf("\t+Name: %s\n", *opts.Name))
		result = true
	}

	deltaString := delta.String()
	if deltaString != "" {
		deltaString = "\n" + strings.TrimSuffix(deltaString, "\n")
		logFileSystem.Info(fmt.Sprintf("delta configuration:%s\n", deltaString))
	}
	instance.Status.Delta = deltaString

	return opts, result
}

// IsDryRun reports whether the resource is annotated so that reconciliation
// only reports differences without applying them.
func (r *FileSystemReconciler) IsDryRun(instance *flasharrayv1.FileSystem) bool {
	_, present := instance.Annotations[utils.DryRunAnnotation]
	return present
}

// ReconcileNew is a method which handles reconciling a new data resource and
// creates the corresponding array resource thru the array API.
func (r *FileSystemReconciler) ReconcileNew(client *flasharray.Client, instance *flasharrayv1.FileSystem) (*filesystems.FileSystem, error) {
	if instance.Status.Reconciled && r.StopAfterInSync() {
		// Do not process any further changes once we have reached a
		// synchronized state unless there is an annotation on the resource.
		if _, present := instance.Annotations[arrayManager.ReconcileAfterInSync]; !present {
			msg := common.NoProvisioningAfterReconciled
			r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceUpdated, msg)
			return nil, common.NewChangeAfterInSync(msg)
		} else {
			logFileSystem.Info(common.ProvisioningAllowedAfterReconciled)
		}
	}

	if r.IsDryRun(instance) {
		r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceWait,
			"dry-run: file system would be created")
		return nil, nil
	}

	logFileSystem.Info("creating file system", "name", instance.Name)

	fs, err := filesystems.Create(context.TODO(), client, instance.Name,
		fileSystemContextNames(client, instance)).Extract()
	if err != nil {
		err = perrors.Wrapf(err, "failed to create: %s", instance.Name)
		return nil, err
	}

	r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceCreated,
		"file system has been created")

	return fs, nil
}

// ReconcileRecovered restores a file system that is still within its
// eradication pending window.
func (r *FileSystemReconciler) ReconcileRecovered(client *flasharray.Client, instance *flasharrayv1.FileSystem, fs *filesystems.FileSystem) (*filesystems.FileSystem, error) {
	if r.IsDryRun(instance) {
		r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceWait,
			"dry-run: file system would be recovered")
		return fs, nil
	}

	destroyed := false
	opts := filesystems.FileSystemOpts{Destroyed: &destroyed}

	logFileSystem.Info("recovering destroyed file system", "name", fs.Name)

	result, err := filesystems.Update(context.TODO(), client, fs.Name,
		fileSystemContextNames(client, instance), opts).Extract()
	if err != nil {
		err = perrors.Wrap(err, "failed to recover file system")
		return nil, err
	}

	r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceUpdated,
		"file system has been recovered from its eradication pending window")

	return result, nil
}

// ReconcileUpdated is a method which handles reconciling an existing data
// resource and updates the corresponding array resource thru the array API
// to match the desired state of the resource.
func (r *FileSystemReconciler) ReconcileUpdated(client *flasharray.Client, instance *flasharrayv1.FileSystem, fs *filesystems.FileSystem) error {
	if opts, ok := fileSystemUpdateRequired(instance, fs); ok {
		if instance.Status.Reconciled && r.StopAfterInSync() {
			// Do not process any further changes once we have reached a
			// synchronized state unless there is an annotation on the resource.
			if _, present := instance.Annotations[arrayManager.ReconcileAfterInSync]; !present {
				msg := common.NoChangesAfterReconciled
				r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceUpdated, msg)
				return common.NewChangeAfterInSync(msg)
			} else {
				logFileSystem.Info(common.ChangedAllowedAfterReconciled)
			}
		}

		if opts.Name != nil {
			if !client.Supports(utils.MinVersionFileSystemRename) {
				return common.NewVersionDependency(fmt.Sprintf(
					"file system rename requires REST version %s", utils.MinVersionFileSystemRename))
			}

			_, err := filesystems.Get(context.TODO(), client, *opts.Name,
				fileSystemContextNames(client, instance), nil).Extract()
			if err == nil {
				// A collision only degrades the rename.  Any other staged
				// changes still apply.
				r.ReconcilerEventLogger.WarningEvent(instance, common.ResourceDependency,
					"rename collision: file system %q already exists", *opts.Name)
				opts.Name = nil
				if common.CompareStructs(opts, filesystems.FileSystemOpts{}) {
					return nil
				}
			} else if !flasharray.IsNotFound(perrors.Cause(err)) {
				return err
			}
		}

		if r.IsDryRun(instance) {
			r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceWait,
				"dry-run: file system would be updated")
			return nil
		}

		logFileSystem.Info("updating file system", "opts", opts)

		result, err := filesystems.Update(context.TODO(), client, fs.Name,
			fileSystemContextNames(client, instance), opts).Extract()
		if err != nil {
			err = perrors.Wrapf(err, "failed to update: %s", common.FormatStruct(opts))
			return err
		}

		*fs = *result

		r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceUpdated,
			"file system has been updated")
	}

	return nil
}

// ReconciledDeleted is a method which handles the deletion of a resource.
// The array resource is destroyed and, when eradication is allowed,
// eradicated rather than left in its pending window.
func (r *FileSystemReconciler) ReconciledDeleted(client *flasharray.Client, instance *flasharrayv1.FileSystem, fs *filesystems.FileSystem) error {
	if utils.ContainsString(instance.ObjectMeta.Finalizers, FileSystemFinalizerName) {
		if fs != nil && !r.IsDryRun(instance) {
			if !fs.Destroyed {
				destroyed := true
				opts := filesystems.FileSystemOpts{Destroyed: &destroyed}
				_, err := filesystems.Update(context.TODO(), client, fs.Name,
					fileSystemContextNames(client, instance), opts).Extract()
				if err != nil {
					err = perrors.Wrap(err, "failed to destroy file system")
					return err
				}

				r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceDeleted,
					"file system has been destroyed")
			}

			if instance.Spec.Eradicate {
				err := filesystems.Delete(context.TODO(), client, fs.Name,
					fileSystemContextNames(client, instance)).ExtractErr()
				if err != nil {
					err = perrors.Wrap(err, "failed to eradicate file system")
					return err
				}

				r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceDeleted,
					"file system has been eradicated")
			}
		}

		// Remove the finalizer so the kubernetes delete operation can continue.
		instance.ObjectMeta.Finalizers = utils.RemoveString(instance.ObjectMeta.Finalizers, FileSystemFinalizerName)
		if err := r.Client.Update(context.Background(), instance); err != nil {
			return err
		}
	}

	return nil
}

// statusUpdateRequired is a utility function which determines whether an
// update is required to the resource status attribute.  Updating this
// unnecessarily will result in an infinite reconciliation loop.
func (r *FileSystemReconciler) statusUpdateRequired(instance *flasharrayv1.FileSystem, fs *filesystems.FileSystem, inSync bool) (result bool) {
	status := &instance.Status

	destroyed := fs != nil && fs.Destroyed
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
func (r *FileSystemReconciler) FindExistingResource(client *flasharray.Client, instance *flasharrayv1.FileSystem) (fs *filesystems.FileSystem, err error) {
	contextNames := fileSystemContextNames(client, instance)

	fs, err = filesystems.Get(context.TODO(), client, instance.Name, contextNames, nil).Extract()
	if err != nil {
		if !flasharray.IsNotFound(perrors.Cause(err)) {
			err = perrors.Wrapf(err, "failed to get: %s", instance.Name)
			return nil, err
		}

		destroyed := true
		fs, err = filesystems.Get(context.TODO(), client, instance.Name, contextNames, &destroyed).Extract()
		if err != nil {
			if !flasharray.IsNotFound(perrors.Cause(err)) {
				err = perrors.Wrapf(err, "failed to get destroyed: %s", instance.Name)
				return nil, err
			}

			return nil, nil
		}
	}

	return fs, nil
}

// ReconcileResource interacts with the array API in order to reconcile the
// state of a file system with the state stored in the k8s database.
func (r *FileSystemReconciler) ReconcileResource(client *flasharray.Client, instance *flasharrayv1.FileSystem) error {
	fs, err := r.FindExistingResource(client, instance)
	if err != nil {
		return err
	}

	if !instance.DeletionTimestamp.IsZero() {
		err = r.ReconciledDeleted(client, instance, fs)

	} else {
		if fs == nil {
			fs, err = r.ReconcileNew(client, instance)
		} else {
			if fs.Destroyed {
				fs, err = r.ReconcileRecovered(client, instance, fs)
			}
			if err == nil && fs != nil {
				err = r.ReconcileUpdated(client, instance, fs)
			}
		}

		inSync := err == nil && fs != nil

		if instance.Status.InSync != inSync {
			r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceUpdated, "synchronization has changed to: %t", inSync)
		}

		if r.statusUpdateRequired(instance, fs, inSync) {
			logFileSystem.Info("updating file system", "status", instance.Status)

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
func (r *FileSystemReconciler) StopAfterInSync() bool {
	// If the option is not found or the option was specified in a form other
	// than a bool then assume the safest default value possible.
	return utils.GetReconcilerOptionBool(utils.FileSystem, utils.StopAfterInSync, true)
}

// Reconcile reads that state of the cluster for a FileSystem object and makes changes based on the state read
// +kubebuilder:rbac:groups=flasharray.purestorage.com,resources=filesystems,verbs=get;list;watch;create;update;patch;delete
// +kubebuilder:rbac:groups=flasharray.purestorage.com,resources=filesystems/status,verbs=get;update;patch
// +kubebuilder:rbac:groups=flasharray.purestorage.com,resources=filesystems/finalizers,verbs=update
func (r *FileSystemReconciler) Reconcile(ctx context.Context, request ctrl.Request) (ctrl.Result, error) {
	_ = log.FromContext(ctx)

	savedLog := logFileSystem
	logFileSystem = logFileSystem.WithName(request.NamespacedName.String())
	defer func() { logFileSystem = savedLog }()

	// Fetch the FileSystem instance
	instance := &flasharrayv1.FileSystem{}
	err := r.Client.Get(context.TODO(), request.NamespacedName, instance)
	if err != nil {
		if errors.IsNotFound(err) {
			// Object not found, return.  Created objects are automatically
			// garbage collected. For additional cleanup logic use finalizers.
			return reconcile.Result{}, nil
		}

		logFileSystem.Error(err, "unable to read object: %v", request)
		// Error reading the object - requeue the request.
		return reconcile.Result{}, err
	}

	if instance.DeletionTimestamp.IsZero() {
		// Ensure that the object has a finalizer setup as a pre-delete hook so
		// that we can delete any array resources that we previously added.
		if !utils.ContainsString(instance.ObjectMeta.Finalizers, FileSystemFinalizerName) {
			instance.ObjectMeta.Finalizers = append(instance.ObjectMeta.Finalizers, FileSystemFinalizerName)
			if err := r.Client.Update(context.Background(), instance); err != nil {
				return reconcile.Result{}, err
			}

			// Might as well return immediately as the update is going to cause
			// another reconcile event for this resource and we don't want to
			// access the array API more than necessary.
			return reconcile.Result{}, nil
		}
	}

	if !utils.IsReconcilerEnabled(utils.FileSystem) {
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
func (r *FileSystemReconciler) SetupWithManager(mgr ctrl.Manager) error {
	tMgr := arrayManager.GetInstance(mgr)
	r.Client = mgr.GetClient()
	r.Scheme = mgr.GetScheme()
	r.ArrayManager = tMgr
	r.ReconcilerErrorHandler = &common.ErrorHandler{
		ArrayManager: tMgr,
		Logger:       logFileSystem}
	r.ReconcilerEventLogger = &common.EventLogger{
		EventRecorder: mgr.GetEventRecorderFor(FileSystemControllerName),
		Logger:        logFileSystem}
	return ctrl.NewControllerManagedBy(mgr).
		For(&flasharrayv1.FileSystem{}).
		Complete(r)
}
