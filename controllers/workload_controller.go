/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2024-2026 Pure Storage, Inc. */

package controllers

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/go-logr/logr"
	"github.com/imdario/mergo"
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
	"github.com/pure-storage/flasharray-deployment-manager/flasharray/workloads"
)

var logWorkload = log.Log.WithName("controller").WithName("workload")

const WorkloadControllerName = "workload-controller"

const WorkloadFinalizerName = utils.WorkloadFinalizerName

var _ reconcile.Reconciler = &WorkloadReconciler{}

// WorkloadReconciler reconciles a Workload object
type WorkloadReconciler struct {
	client.Client
	Log    logr.Logger
	Scheme *runtime.Scheme
	arrayManager.ArrayManager
	common.ReconcilerErrorHandler
	common.ReconcilerEventLogger
}

func workloadContextNames(c *flasharray.Client, instance *flasharrayv1.Workload) []string {
	if c.Supports(utils.MinVersionContextNames) {
		return instance.Spec.ContextNames
	}
	return nil
}

// presetContextNames returns the context names used for preset lookups.  A
// preset owned by another fleet member is resolved through its owning
// context.
func presetContextNames(c *flasharray.Client, instance *flasharrayv1.Workload) []string {
	if !c.Supports(utils.MinVersionContextNames) {
		return nil
	}
	if instance.Spec.PresetContext != nil {
		return []string{*instance.Spec.PresetContext}
	}
	return instance.Spec.ContextNames
}

// workloadParameters converts the parameter map into the sorted list form
// accepted by the array.
func workloadParameters(spec *flasharrayv1.WorkloadSpec) []workloads.Parameter {
	if len(spec.Parameters) == 0 {
		return nil
	}

	names := make([]string, 0, len(spec.Parameters))
	for name := range spec.Parameters {
		names = append(names, name)
	}
	sort.Strings(names)

	result := make([]workloads.Parameter, 0, len(names))
	for _, name := range names {
		result = append(result, workloads.Parameter{Name: name, Value: spec.Parameters[name]})
	}

	return result
}

// validateWorkloadPreset checks that the configured preset exists and that
// every supplied parameter is declared by it.  The preset is returned so that
// its parameter defaults can be folded into the create request.
func (r *WorkloadReconciler) validateWorkloadPreset(client *flasharray.Client, instance *flasharrayv1.Workload) (*workloads.Preset, error) {
	preset, err := workloads.GetPreset(context.TODO(), client, instance.Spec.Preset,
		presetContextNames(client, instance))
	if err != nil {
		if flasharray.IsNotFound(perrors.Cause(err)) {
			return nil, flasharrayv1.NewMissingArrayResource(fmt.Sprintf(
				"workload preset %q was not found", instance.Spec.Preset))
		}
		return nil, err
	}

	declared := make(map[string]bool)
	for _, p := range preset.Parameters {
		declared[p.Name] = true
	}

	for name := range instance.Spec.Parameters {
		if !declared[name] {
			return nil, common.NewUserDataError(fmt.Sprintf(
				"parameter %q is not declared by preset %q", name, preset.Name))
		}
	}

	return preset, nil
}

// workloadCreateParameters folds the preset parameter defaults underneath the
// configured assignments so that the create request carries the full
// effective parameter set.
func workloadCreateParameters(spec *flasharrayv1.WorkloadSpec, preset *workloads.Preset) ([]workloads.Parameter, error) {
	assignments := make(map[string]string, len(spec.Parameters))
	for name, value := range spec.Parameters {
		assignments[name] = value
	}

	defaults := make(map[string]string)
	for _, p := range preset.Parameters {
		if p.Default != nil {
			defaults[p.Name] = *p.Default
		}
	}

	if err := mergo.Merge(&assignments, defaults); err != nil {
		return nil, perrors.Wrap(err, "failed to merge preset parameter defaults")
	}

	merged := flasharrayv1.WorkloadSpec{Parameters: assignments}

	return workloadParameters(&merged), nil
}

// workloadUpdateRequired is a utility function which determines whether an
// update is needed to a workload array resource in order to reconcile with
// the latest stored configuration.  The preset and its parameters are fixed
// at creation so only the name can be changed in place.
func workloadUpdateRequired(instance *flasharrayv1.Workload, workload *workloads.Workload) (opts workloads.WorkloadOpts, result bool) {
	var delta strings.Builder

	spec := instance.Spec

	if spec.Rename != nil && *spec.Rename != workload.Name {
		opts.Name = spec.Rename
		delta.WriteString(fmt.Sprintf("\t+Name: %s\n", *opts.Name))
		result = true
	}

	deltaString := delta.String()
	if deltaString != "" {
		deltaString = "\n" + strings.TrimSuffix(deltaString, "\n")
		logWorkload.Info(fmt.Sprintf("delta configuration:%s\n", deltaString))
	}
	instance.Status.Delta = deltaString

	return opts, result
}

// IsDryRun reports whether the resource is annotated so that reconciliation
// only reports differences without applying them.
func (r *WorkloadReconciler) IsDryRun(instance *flasharrayv1.Workload) bool {
	_, present := instance.Annotations[utils.DryRunAnnotation]
	return present
}

// ReconcileNew is a method which handles reconciling a new data resource and
// creates the corresponding array resource thru the array API.
func (r *WorkloadReconciler) ReconcileNew(client *flasharray.Client, instance *flasharrayv1.Workload) (*workloads.Workload, error) {
	if instance.Status.Reconciled && r.StopAfterInSync() {
		// Do not process any further changes once we have reached a
		// synchronized state unless there is an annotation on the resource.
		if _, present := instance.Annotations[arrayManager.ReconcileAfterInSync]; !present {
			msg := common.NoProvisioningAfterReconciled
			r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceUpdated, msg)
			return nil, common.NewChangeAfterInSync(msg)
		} else {
			logWorkload.Info(common.ProvisioningAllowedAfterReconciled)
		}
	}

	preset, err := r.validateWorkloadPreset(client, instance)
	if err != nil {
		return nil, err
	}

	parameters, err := workloadCreateParameters(&instance.Spec, preset)
	if err != nil {
		return nil, err
	}

	opts := workloads.CreateOpts{
		Preset:     workloads.ResourceName{Name: instance.Spec.Preset},
		Parameters: parameters,
	}

	if r.IsDryRun(instance) {
		r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceWait,
			"dry-run: workload would be created")
		return nil, nil
	}

	logWorkload.Info("creating workload", "opts", opts)

	workload, err := workloads.Create(context.TODO(), client, instance.Name,
		workloadContextNames(client, instance), opts).Extract()
	if err != nil {
		err = perrors.Wrapf(err, "failed to create: %s", common.FormatStruct(opts))
		return nil, err
	}

	r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceCreated,
		"workload has been created from preset %q", instance.Spec.Preset)

	return workload, nil
}

// ReconcileRecovered restores a workload that is still within its
// eradication pending window.
func (r *WorkloadReconciler) ReconcileRecovered(client *flasharray.Client, instance *flasharrayv1.Workload, workload *workloads.Workload) (*workloads.Workload, error) {
	if r.IsDryRun(instance) {
		r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceWait,
			"dry-run: workload would be recovered")
		return workload, nil
	}

	destroyed := false
	opts := workloads.WorkloadOpts{Destroyed: &destroyed}

	logWorkload.Info("recovering destroyed workload", "name", workload.Name)

	result, err := workloads.Update(context.TODO(), client, workload.Name,
		workloadContextNames(client, instance), opts).Extract()
	if err != nil {
		err = perrors.Wrap(err, "failed to recover workload")
		return nil, err
	}

	r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceUpdated,
		"workload has been recovered from its eradication pending window")

	return result, nil
}

// ReconcileUpdated is a method which handles reconciling an existing data
// resource and updates the corresponding array resource thru the array API
// to match the desired state of the resource.
func (r *WorkloadReconciler) ReconcileUpdated(client *flasharray.Client, instance *flasharrayv1.Workload, workload *workloads.Workload) error {
	if instance.Spec.Preset != workload.Preset.Name {
		// The preset is fixed at creation.  This is caught by the webhook
		// for updates but the array side workload may predate the resource.
		return common.NewValidationError(fmt.Sprintf(
			"workload was deployed from preset %q; preset cannot be changed to %q",
			workload.Preset.Name, instance.Spec.Preset))
	}

	if opts, ok := workloadUpdateRequired(instance, workload); ok {
		if instance.Status.Reconciled && r.StopAfterInSync() {
			// Do not process any further changes once we have reached a
			// synchronized state unless there is an annotation on the resource.
			if _, present := instance.Annotations[arrayManager.ReconcileAfterInSync]; !present {
				msg := common.NoChangesAfterReconciled
				r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceUpdated, msg)
				return common.NewChangeAfterInSync(msg)
			} else {
				logWorkload.Info(common.ChangedAllowedAfterReconciled)
			}
		}

		if opts.Name != nil {
			_, err := workloads.Get(context.TODO(), client, *opts.Name,
				workloadContextNames(client, instance), nil).Extract()
			if err == nil {
				// A collision only degrades the rename.  Any other staged
				// changes still apply.
				r.ReconcilerEventLogger.WarningEvent(instance, common.ResourceDependency,
					"rename collision: workload %q already exists", *opts.Name)
				opts.Name = nil
				if common.CompareStructs(opts, workloads.WorkloadOpts{}) {
					return nil
				}
			} else if !flasharray.IsNotFound(perrors.Cause(err)) {
				return err
			}
		}

		if r.IsDryRun(instance) {
			r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceWait,
				"dry-run: workload would be updated")
			return nil
		}

		logWorkload.Info("updating workload", "opts", opts)

		result, err := workloads.Update(context.TODO(), client, workload.Name,
			workloadContextNames(client, instance), opts).Extract()
		if err != nil {
			err = perrors.Wrapf(err, "failed to update: %s", common.FormatStruct(opts))
			return err
		}

		*workload = *result

		r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceUpdated,
			"workload has been updated")
	}

	return nil
}

// ReconciledDeleted is a method which handles the deletion of a resource.
// The array resource is destroyed and, when eradication is allowed,
// eradicated rather than left in its pending window.
func (r *WorkloadReconciler) ReconciledDeleted(client *flasharray.Client, instance *flasharrayv1.Workload, workload *workloads.Workload) error {
	if utils.ContainsString(instance.ObjectMeta.Finalizers, WorkloadFinalizerName) {
		if workload != nil && !r.IsDryRun(instance) {
			if !workload.Destroyed {
				destroyed := true
				opts := workloads.WorkloadOpts{Destroyed: &destroyed}
				_, err := workloads.Update(context.TODO(), client, workload.Name,
					workloadContextNames(client, instance), opts).Extract()
				if err != nil {
					err = perrors.Wrap(err, "failed to destroy workload")
					return err
				}

				r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceDeleted,
					"workload has been destroyed")
			}

			if instance.Spec.Eradicate {
				err := workloads.Delete(context.TODO(), client, workload.Name,
					workloadContextNames(client, instance)).ExtractErr()
				if err != nil {
					err = perrors.Wrap(err, "failed to eradicate workload")
					return err
				}

				r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceDeleted,
					"workload has been eradicated")
			}
		}

		// Remove the finalizer so the kubernetes delete operation can continue.
		instance.ObjectMeta.Finalizers = utils.RemoveString(instance.ObjectMeta.Finalizers, WorkloadFinalizerName)
		if err := r.Client.Update(context.Background(), instance); err != nil {
			return err
		}
	}

	return nil
}

// statusUpdateRequired is a utility function which determines whether an
// update is required to the resource status attribute.  Updating this
// unnecessarily will result in an infinite reconciliation loop.
func (r *WorkloadReconciler) statusUpdateRequired(instance *flasharrayv1.Workload, workload *workloads.Workload, inSync bool) (result bool) {
	status := &instance.Status

	destroyed := workload != nil && workload.Destroyed
	if status.Destroyed != destroyed {
		status.Destroyed = destroyed
		result = true
	}

	workloadStatus := ""
	if workload != nil {
		workloadStatus = workload.Status
	}
	if status.WorkloadStatus != workloadStatus {
		status.WorkloadStatus = workloadStatus
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
func (r *WorkloadReconciler) FindExistingResource(client *flasharray.Client, instance *flasharrayv1.Workload) (workload *workloads.Workload, err error) {
	contextNames := workloadContextNames(client, instance)

	workload, err = workloads.Get(context.TODO(), client, instance.Name, contextNames, nil).Extract()
	if err != nil {
		if !flasharray.IsNotFound(perrors.Cause(err)) {
			err = perrors.Wrapf(err, "failed to get: %s", instance.Name)
			return nil, err
		}

		destroyed := true
		workload, err = workloads.Get(context.TODO(), client, instance.Name, contextNames, &destroyed).Extract()
		if err != nil {
			if !flasharray.IsNotFound(perrors.Cause(err)) {
				err = perrors.Wrapf(err, "failed to get destroyed: %s", instance.Name)
				return nil, err
			}

			return nil, nil
		}
	}

	return workload, nil
}

// ReconcileResource interacts with the array API in order to reconcile the
// state of a workload with the state stored in the k8s database.
func (r *WorkloadReconciler) ReconcileResource(client *flasharray.Client, instance *flasharrayv1.Workload) error {
	if !client.Supports(utils.MinVersionWorkloads) {
		// Workloads are a whole resource type; without array support there
		// is nothing this controller can manage.
		return common.NewVersionDependency(fmt.Sprintf(
			"workloads require REST version %s", utils.MinVersionWorkloads))
	}

	workload, err := r.FindExistingResource(client, instance)
	if err != nil {
		return err
	}

	if !instance.DeletionTimestamp.IsZero() {
		err = r.ReconciledDeleted(client, instance, workload)

	} else {
		if workload == nil {
			workload, err = r.ReconcileNew(client, instance)
		} else {
			if workload.Destroyed {
				workload, err = r.ReconcileRecovered(client, instance, workload)
			}
			if err == nil && workload != nil {
				err = r.ReconcileUpdated(client, instance, workload)
			}
		}

		inSync := err == nil && workload != nil

		if instance.Status.InSync != inSync {
			r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceUpdated, "synchronization has changed to: %t", inSync)
		}

		if r.statusUpdateRequired(instance, workload, inSync) {
			logWorkload.Info("updating workload", "status", instance.Status)

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
func (r *WorkloadReconciler) StopAfterInSync() bool {
	// If the option is not found or the option was specified in a form other
	// than a bool then assume the safest default value possible.
	return utils.GetReconcilerOptionBool(utils.Workload, utils.StopAfterInSync, true)
}

// Reconcile reads that state of the cluster for a Workload object and makes changes based on the state read
// +kubebuilder:rbac:groups=flasharray.purestorage.com,resources=workloads,verbs=get;list;watch;create;update;patch;delete
// +kubebuilder:rbac:groups=flasharray.purestorage.com,resources=workloads/status,verbs=get;update;patch
// +kubebuilder:rbac:groups=flasharray.purestorage.com,resources=workloads/finalizers,verbs=update
func (r *WorkloadReconciler) Reconcile(ctx context.Context, request ctrl.Request) (ctrl.Result, error) {
	_ = log.FromContext(ctx)

	savedLog := logWorkload
	logWorkload = logWorkload.WithName(request.NamespacedName.String())
	defer func() { logWorkload = savedLog }()

	// Fetch the Workload instance
	instance := &flasharrayv1.Workload{}
	err := r.Client.Get(context.TODO(), request.NamespacedName, instance)
	if err != nil {
		if errors.IsNotFound(err) {
			// Object not found, return.  Created objects are automatically
			// garbage collected. For additional cleanup logic use finalizers.
			return reconcile.Result{}, nil
		}

		logWorkload.Error(err, "unable to read object: %v", request)
		// Error reading the object - requeue the request.
		return reconcile.Result{}, err
	}

	if instance.DeletionTimestamp.IsZero() {
		// Ensure that the object has a finalizer setup as a pre-delete hook so
		// that we can delete any array resources that we previously added.
		if !utils.ContainsString(instance.ObjectMeta.Finalizers, WorkloadFinalizerName) {
			instance.ObjectMeta.Finalizers = append(instance.ObjectMeta.Finalizers, WorkloadFinalizerName)
			if err := r.Client.Update(context.Background(), instance); err != nil {
				return reconcile.Result{}, err
			}

			// Might as well return immediately as the update is going to cause
			// another reconcile event for this resource and we don't want to
			// access the array API more than necessary.
			return reconcile.Result{}, nil
		}
	}

	if !utils.IsReconcilerEnabled(utils.Workload) {
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
func (r *WorkloadReconciler) SetupWithManager(mgr ctrl.Manager) error {
	tMgr := arrayManager.GetInstance(mgr)
	r.Client = mgr.GetClient()
	r.Scheme = mgr.GetScheme()
	r.ArrayManager = tMgr
	r.ReconcilerErrorHandler = &common.ErrorHandler{
		ArrayManager: tMgr,
		Logger:       logWorkload}
	r.ReconcilerEventLogger = &common.EventLogger{
		EventRecorder: mgr.GetEventRecorderFor(WorkloadControllerName),
		Logger:        logWorkload}
	return ctrl.NewControllerManagedBy(mgr).
		For(&flasharrayv1.Workload{}).
		Complete(r)
}
