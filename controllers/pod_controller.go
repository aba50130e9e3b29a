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
	"github.com/pure-storage/flasharray-deployment-manager/flasharray/arrays"
	"github.com/pure-storage/flasharray-deployment-manager/flasharray/pods"
)

var logPod = log.Log.WithName("controller").WithName("pod")

const PodControllerName = "pod-controller"

const PodFinalizerName = utils.PodFinalizerName

var _ reconcile.Reconciler = &PodReconciler{}

// PodReconciler reconciles a Pod object
type PodReconciler struct {
	client.Client
	Log    logr.Logger
	Scheme *runtime.Scheme
	arrayManager.ArrayManager
	common.ReconcilerErrorHandler
	common.ReconcilerEventLogger
}

func podContextNames(c *flasharray.Client, instance *flasharrayv1.Pod) []string {
	if c.Supports(utils.MinVersionContextNames) {
		return instance.Spec.ContextNames
	}
	return nil
}

// podQuotaLimit converts the human readable quota limit into the byte count
// accepted by the array.  The "0" sentinel removes the limit.
func podQuotaLimit(spec *flasharrayv1.PodSpec) (*int64, error) {
	if spec.QuotaLimit == nil {
		return nil, nil
	}

	bytes, err := utils.ParseSize(*spec.QuotaLimit)
	if err != nil {
		return nil, common.NewValidationError(fmt.Sprintf(
			"invalid quota limit %q: %s", *spec.QuotaLimit, err.Error()))
	}

	return &bytes, nil
}

// podMemberNames extracts the sorted-by-array order member list reported by
// the array.
func podMemberNames(pod *pods.Pod) []string {
	result := make([]string, 0, len(pod.Arrays))
	for _, a := range pod.Arrays {
		result = append(result, a.Name)
	}
	return result
}

func podFailoverNames(pod *pods.Pod) []string {
	result := make([]string, 0, len(pod.FailoverPreferences))
	for _, a := range pod.FailoverPreferences {
		result = append(result, a.Name)
	}
	return result
}

// podRequestedState maps the promotion intent onto the array state values.
func podRequestedState(promoted bool) string {
	if promoted {
		return pods.StatePromoted
	}
	return pods.StateDemoted
}

// checkPodVersions enforces the array version requirements of features that
// cannot be silently dropped.
func checkPodVersions(client *flasharray.Client, instance *flasharrayv1.Pod) error {
	spec := instance.Spec

	quiesce := (spec.Quiesce != nil && *spec.Quiesce) ||
		(spec.SkipQuiesce != nil && *spec.SkipQuiesce)
	if quiesce && !client.Supports(utils.MinVersionQuiesce) {
		return common.NewVersionDependency(fmt.Sprintf(
			"quiesced unstretch requires REST version %s", utils.MinVersionQuiesce))
	}

	return nil
}

// podUpdateRequired is a utility function which determines whether an update
// is needed to a pod array resource in order to reconcile with the latest
// stored configuration.  Membership changes are handled separately since they
// use the stretch API rather than an update.
func podUpdateRequired(instance *flasharrayv1.Pod, pod *pods.Pod) (opts pods.PodOpts, result bool, err error) {
	var delta strings.Builder

	spec := instance.Spec

	if spec.Rename != nil && *spec.Rename != pod.Name {
		opts.Name = spec.Rename
		delta.WriteString(fmt.Sprintf("\t+Name: %s\n", *opts.Name))
		result = true
	}

	if spec.Mediator != nil && *spec.Mediator != pod.Mediator {
		opts.Mediator = spec.Mediator
		delta.WriteString(fmt.Sprintf("\t+Mediator: %s\n", *opts.Mediator))
		result = true
	}

	if len(spec.FailoverPreference) > 0 && utils.ListChanged(spec.FailoverPreference, podFailoverNames(pod)) {
		preferences := make([]pods.ResourceName, 0, len(spec.FailoverPreference))
		for _, name := range spec.FailoverPreference {
			preferences = append(preferences, pods.ResourceName{Name: name})
		}
		opts.FailoverPreferences = preferences
		delta.WriteString(fmt.Sprintf("\t+FailoverPreferences: %s\n",
			strings.Join(spec.FailoverPreference, ",")))
		result = true
	}

	limit, err := podQuotaLimit(&spec)
	if err != nil {
		return opts, result, err
	}
	if limit != nil {
		current := int64(0)
		if pod.QuotaLimit != nil {
			current = *pod.QuotaLimit
		}
		if *limit != current {
			opts.QuotaLimit = limit
			delta.WriteString(fmt.Sprintf("\t+QuotaLimit: %d\n", *opts.QuotaLimit))
			result = true
		}
	}

	if spec.Promoted != nil {
		requested := podRequestedState(*spec.Promoted)
		if requested != pod.PromotionStatus && requested != pod.RequestedPromotionState {
			opts.RequestedPromotionState = &requested
			delta.WriteString(fmt.Sprintf("\t+RequestedPromotionState: %s\n", requested))
			result = true
		}
	}

	deltaString := delta.String()
	if deltaString != "" {
		deltaString = "\n" + strings.TrimSuffix(deltaString, "\n")
		logPod.Info(fmt.Sprintf("delta configuration:%s\n", deltaString))
	}
	instance.Status.Delta = deltaString

	return opts, result, err
}

// IsDryRun reports whether the resource is annotated so that reconciliation
// only reports differences without applying them.
func (r *PodReconciler) IsDryRun(instance *flasharrayv1.Pod) bool {
	_, present := instance.Annotations[utils.DryRunAnnotation]
	return present
}

// ReconcileNew is a method which handles reconciling a new data resource and
// creates the corresponding array resource thru the array API.  Failover
// preferences are applied after the membership has been established.
func (r *PodReconciler) ReconcileNew(client *flasharray.Client, instance *flasharrayv1.Pod) (*pods.Pod, error) {
	if instance.Status.Reconciled && r.StopAfterInSync() {
		// Do not process any further changes once we have reached a
		// synchronized state unless there is an annotation on the resource.
		if _, present := instance.Annotations[arrayManager.ReconcileAfterInSync]; !present {
			msg := common.NoProvisioningAfterReconciled
			r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceUpdated, msg)
			return nil, common.NewChangeAfterInSync(msg)
		} else {
			logPod.Info(common.ProvisioningAllowedAfterReconciled)
		}
	}

	limit, err := podQuotaLimit(&instance.Spec)
	if err != nil {
		return nil, err
	}

	opts := pods.PodOpts{
		Mediator:   instance.Spec.Mediator,
		QuotaLimit: limit,
	}

	if r.IsDryRun(instance) {
		r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceWait,
			"dry-run: pod would be created")
		return nil, nil
	}

	logPod.Info("creating pod", "opts", opts)

	pod, err := pods.Create(context.TODO(), client, instance.Name,
		podContextNames(client, instance), opts).Extract()
	if err != nil {
		err = perrors.Wrapf(err, "failed to create: %s", common.FormatStruct(opts))
		return nil, err
	}

	r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceCreated,
		"pod has been created")

	return pod, nil
}

// ReconcileRecovered restores a pod that is still within its eradication
// pending window.
func (r *PodReconciler) ReconcileRecovered(client *flasharray.Client, instance *flasharrayv1.Pod, pod *pods.Pod) (*pods.Pod, error) {
	if r.IsDryRun(instance) {
		r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceWait,
			"dry-run: pod would be recovered")
		return pod, nil
	}

	destroyed := false
	opts := pods.PodOpts{Destroyed: &destroyed}

	logPod.Info("recovering destroyed pod", "name", pod.Name)

	result, err := pods.Update(context.TODO(), client, pod.Name,
		podContextNames(client, instance), opts).Extract()
	if err != nil {
		err = perrors.Wrap(err, "failed to recover pod")
		return nil, err
	}

	r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceUpdated,
		"pod has been recovered from its eradication pending window")

	return result, nil
}

// ReconcileMembers aligns the pod membership with the requested stretch
// configuration.  The local array is always a member; at most one peer can
// be requested.
func (r *PodReconciler) ReconcileMembers(client *flasharray.Client, instance *flasharrayv1.Pod, pod *pods.Pod) error {
	spec := instance.Spec

	peer := ""
	if spec.StretchArray != nil {
		peer = *spec.StretchArray
	}

	members := podMemberNames(pod)

	stretchRequired := peer != "" && !utils.ContainsString(members, peer)

	local, err := arrays.Get(context.TODO(), client)
	if err != nil {
		err = perrors.Wrap(err, "failed to get local array")
		return err
	}

	removals := make([]string, 0)
	for _, member := range members {
		if member != local.Name && member != peer {
			removals = append(removals, member)
		}
	}

	if !stretchRequired && len(removals) == 0 {
		return nil
	}

	if err := checkPodVersions(client, instance); err != nil {
		return err
	}

	if stretchRequired && pod.PromotionStatus == pods.StateDemoted {
		// The array rejects stretching a demoted pod.  Report the reason
		// rather than surfacing the request error.
		return common.NewValidationError(fmt.Sprintf(
			"pod is demoted; promote before stretching to %q", peer))
	}

	if instance.Status.Reconciled && r.StopAfterInSync() {
		if _, present := instance.Annotations[arrayManager.ReconcileAfterInSync]; !present {
			msg := common.NoChangesAfterReconciled
			r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceUpdated, msg)
			return common.NewChangeAfterInSync(msg)
		} else {
			logPod.Info(common.ChangedAllowedAfterReconciled)
		}
	}

	if r.IsDryRun(instance) {
		r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceWait,
			"dry-run: pod membership would be changed")
		return nil
	}

	opts := pods.StretchOpts{
		Quiesce:     spec.Quiesce,
		SkipQuiesce: spec.SkipQuiesce,
	}

	contextNames := podContextNames(client, instance)

	for _, member := range removals {
		logPod.Info("unstretching pod", "array", member)

		err := pods.Unstretch(context.TODO(), client, pod.Name, member, contextNames, opts).ExtractErr()
		if err != nil {
			err = perrors.Wrapf(err, "failed to unstretch from: %s", member)
			return err
		}

		r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceUpdated,
			"pod has been unstretched from array %q", member)
	}

	if stretchRequired {
		logPod.Info("stretching pod", "array", peer)

		err := pods.Stretch(context.TODO(), client, pod.Name, peer, contextNames, opts).ExtractErr()
		if err != nil {
			err = perrors.Wrapf(err, "failed to stretch to: %s", peer)
			return err
		}

		r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceUpdated,
			"pod has been stretched to array %q", peer)
	}

	result, err := pods.Get(context.TODO(), client, pod.Name, contextNames, nil).Extract()
	if err != nil {
		err = perrors.Wrap(err, "failed to refresh pod")
		return err
	}

	*pod = *result

	return nil
}

// ReconcileUpdated is a method which handles reconciling an existing data
// resource and updates the corresponding array resource thru the array API
// to match the desired state of the resource.
func (r *PodReconciler) ReconcileUpdated(client *flasharray.Client, instance *flasharrayv1.Pod, pod *pods.Pod) error {
	opts, ok, err := podUpdateRequired(instance, pod)
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
				logPod.Info(common.ChangedAllowedAfterReconciled)
			}
		}

		if opts.RequestedPromotionState != nil && len(pod.Arrays) > 1 {
			// The array rejects promotion changes on a stretched pod.
			// Report the reason rather than surfacing the request error.
			return common.NewValidationError(fmt.Sprintf(
				"pod is stretched to %s; unstretch before changing the promotion state",
				strings.Join(podMemberNames(pod), ",")))
		}

		if opts.Name != nil {
			_, err := pods.Get(context.TODO(), client, *opts.Name,
				podContextNames(client, instance), nil).Extract()
			if err == nil {
				// A collision only degrades the rename.  Any other staged
				// changes still apply.
				r.ReconcilerEventLogger.WarningEvent(instance, common.ResourceDependency,
					"rename collision: pod %q already exists", *opts.Name)
				opts.Name = nil
				if common.CompareStructs(opts, pods.PodOpts{}) {
					return nil
				}
			} else if !flasharray.IsNotFound(perrors.Cause(err)) {
				return err
			}
		}

		if r.IsDryRun(instance) {
			r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceWait,
				"dry-run: pod would be updated")
			return nil
		}

		logPod.Info("updating pod", "opts", opts)

		result, err := pods.Update(context.TODO(), client, pod.Name,
			podContextNames(client, instance), opts).Extract()
		if err != nil {
			err = perrors.Wrapf(err, "failed to update: %s", common.FormatStruct(opts))
			return err
		}

		*pod = *result

		r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceUpdated,
			"pod has been updated")
	}

	return nil
}

// ReconciledDeleted is a method which handles the deletion of a resource.
// The array resource is destroyed and, when eradication is allowed,
// eradicated rather than left in its pending window.
func (r *PodReconciler) ReconciledDeleted(client *flasharray.Client, instance *flasharrayv1.Pod, pod *pods.Pod) error {
	if utils.ContainsString(instance.ObjectMeta.Finalizers, PodFinalizerName) {
		if pod != nil && !r.IsDryRun(instance) {
			if !pod.Destroyed {
				destroyed := true
				opts := pods.PodOpts{Destroyed: &destroyed}
				_, err := pods.Update(context.TODO(), client, pod.Name,
					podContextNames(client, instance), opts).Extract()
				if err != nil {
					err = perrors.Wrap(err, "failed to destroy pod")
					return err
				}

				r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceDeleted,
					"pod has been destroyed")
			}

			if instance.Spec.Eradicate {
				var destroyContents *bool
				if instance.Spec.DeleteContents {
					destroyContents = &instance.Spec.DeleteContents
				}

				err := pods.Delete(context.TODO(), client, pod.Name,
					podContextNames(client, instance), destroyContents).ExtractErr()
				if err != nil {
					err = perrors.Wrap(err, "failed to eradicate pod")
					return err
				}

				r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceDeleted,
					"pod has been eradicated")
			}
		}

		// Remove the finalizer so the kubernetes delete operation can continue.
		instance.ObjectMeta.Finalizers = utils.RemoveString(instance.ObjectMeta.Finalizers, PodFinalizerName)
		if err := r.Client.Update(context.Background(), instance); err != nil {
			return err
		}
	}

	return nil
}

// statusUpdateRequired is a utility function which determines whether an
// update is required to the resource status attribute.  Updating this
// unnecessarily will result in an infinite reconciliation loop.
func (r *PodReconciler) statusUpdateRequired(instance *flasharrayv1.Pod, pod *pods.Pod, inSync bool) (result bool) {
	status := &instance.Status

	destroyed := pod != nil && pod.Destroyed
	if status.Destroyed != destroyed {
		status.Destroyed = destroyed
		result = true
	}

	promotionStatus := ""
	var members []string
	if pod != nil {
		promotionStatus = pod.PromotionStatus
		members = podMemberNames(pod)
	}

	if status.PromotionStatus != promotionStatus {
		status.PromotionStatus = promotionStatus
		result = true
	}

	if utils.ListChanged(status.Arrays, members) {
		status.Arrays = members
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
func (r *PodReconciler) FindExistingResource(client *flasharray.Client, instance *flasharrayv1.Pod) (pod *pods.Pod, err error) {
	contextNames := podContextNames(client, instance)

	pod, err = pods.Get(context.TODO(), client, instance.Name, contextNames, nil).Extract()
	if err != nil {
		if !flasharray.IsNotFound(perrors.Cause(err)) {
			err = perrors.Wrapf(err, "failed to get: %s", instance.Name)
			return nil, err
		}

		destroyed := true
		pod, err = pods.Get(context.TODO(), client, instance.Name, contextNames, &destroyed).Extract()
		if err != nil {
			if !flasharray.IsNotFound(perrors.Cause(err)) {
				err = perrors.Wrapf(err, "failed to get destroyed: %s", instance.Name)
				return nil, err
			}

			return nil, nil
		}
	}

	return pod, nil
}

// ReconcileResource interacts with the array API in order to reconcile the
// state of a pod with the state stored in the k8s database.
func (r *PodReconciler) ReconcileResource(client *flasharray.Client, instance *flasharrayv1.Pod) error {
	pod, err := r.FindExistingResource(client, instance)
	if err != nil {
		return err
	}

	if !instance.DeletionTimestamp.IsZero() {
		err = r.ReconciledDeleted(client, instance, pod)

	} else {
		if pod == nil {
			pod, err = r.ReconcileNew(client, instance)
		} else if pod.Destroyed {
			pod, err = r.ReconcileRecovered(client, instance, pod)
		}

		if err == nil && pod != nil {
			err = r.ReconcileMembers(client, instance, pod)
		}

		if err == nil && pod != nil {
			err = r.ReconcileUpdated(client, instance, pod)
		}

		inSync := err == nil && pod != nil

		if instance.Status.InSync != inSync {
			r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceUpdated, "synchronization has changed to: %t", inSync)
		}

		if r.statusUpdateRequired(instance, pod, inSync) {
			logPod.Info("updating pod", "status", instance.Status)

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
func (r *PodReconciler) StopAfterInSync() bool {
	// If the option is not found or the option was specified in a form other
	// than a bool then assume the safest default value possible.
	return utils.GetReconcilerOptionBool(utils.Pod, utils.StopAfterInSync, true)
}

// Reconcile reads that state of the cluster for a Pod object and makes changes based on the state read
// +kubebuilder:rbac:groups=flasharray.purestorage.com,resources=pods,verbs=get;list;watch;create;update;patch;delete
// +kubebuilder:rbac:groups=flasharray.purestorage.com,resources=pods/status,verbs=get;update;patch
// +kubebuilder:rbac:groups=flasharray.purestorage.com,resources=pods/finalizers,verbs=update
func (r *PodReconciler) Reconcile(ctx context.Context, request ctrl.Request) (ctrl.Result, error) {
	_ = log.FromContext(ctx)

	savedLog := logPod
	logPod = logPod.WithName(request.NamespacedName.String())
	defer func() { logPod = savedLog }()

	// Fetch the Pod instance
	instance := &flasharrayv1.Pod{}
	err := r.Client.Get(context.TODO(), request.NamespacedName, instance)
	if err != nil {
		if errors.IsNotFound(err) {
			// Object not found, return.  Created objects are automatically
			// garbage collected. For additional cleanup logic use finalizers.
			return reconcile.Result{}, nil
		}

		logPod.Error(err, "unable to read object: %v", request)
		// Error reading the object - requeue the request.
		return reconcile.Result{}, err
	}

	if instance.DeletionTimestamp.IsZero() {
		// Ensure that the object has a finalizer setup as a pre-delete hook so
		// that we can delete any array resources that we previously added.
		if !utils.ContainsString(instance.ObjectMeta.Finalizers, PodFinalizerName) {
			instance.ObjectMeta.Finalizers = append(instance.ObjectMeta.Finalizers, PodFinalizerName)
			if err := r.Client.Update(context.Background(), instance); err != nil {
				return reconcile.Result{}, err
			}

			// Might as well return immediately as the update is going to cause
			// another reconcile event for this resource and we don't want to
			// access the array API more than necessary.
			return reconcile.Result{}, nil
		}
	}

	if !utils.IsReconcilerEnabled(utils.Pod) {
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
func (r *PodReconciler) SetupWithManager(mgr ctrl.Manager) error {
	tMgr := arrayManager.GetInstance(mgr)
	r.Client = mgr.GetClient()
	r.Scheme = mgr.GetScheme()
	r.ArrayManager = tMgr
	r.ReconcilerErrorHandler = &common.ErrorHandler{
		ArrayManager: tMgr,
		Logger:       logPod}
	r.ReconcilerEventLogger = &common.EventLogger{
		EventRecorder: mgr.GetEventRecorderFor(PodControllerName),
		Logger:        logPod}
	return ctrl.NewControllerManagedBy(mgr).
		For(&flasharrayv1.Pod{}).
		Complete(r)
}
