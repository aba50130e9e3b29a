/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2024-2026 Pure Storage, Inc. */

package controllers

import (
	"context"
	"fmt"
	"net"
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
	"github.com/pure-storage/flasharray-deployment-manager/flasharray/networkinterfaces"
)

var logNetworkInterface = log.Log.WithName("controller").WithName("networkinterface")

const NetworkInterfaceControllerName = "networkinterface-controller"

const NetworkInterfaceFinalizerName = utils.NetworkInterfaceFinalizerName

var _ reconcile.Reconciler = &NetworkInterfaceReconciler{}

// NetworkInterfaceReconciler reconciles a NetworkInterface object
type NetworkInterfaceReconciler struct {
	client.Client
	Log    logr.Logger
	Scheme *runtime.Scheme
	arrayManager.ArrayManager
	common.ReconcilerErrorHandler
	common.ReconcilerEventLogger
}

func networkInterfaceContextNames(c *flasharray.Client, instance *flasharrayv1.NetworkInterface) []string {
	if c.Supports(utils.MinVersionContextNames) {
		return instance.Spec.ContextNames
	}
	return nil
}

// isVirtualInterface reports whether the configured subtype is one that the
// manager is allowed to create and delete.  Physical interfaces exist as
// hardware.
func isVirtualInterface(spec *flasharrayv1.NetworkInterfaceSpec) bool {
	if spec.Subtype == nil {
		return false
	}
	switch *spec.Subtype {
	case networkinterfaces.SubtypeVif, networkinterfaces.SubtypeLacpBond, networkinterfaces.SubtypeVlan:
		return true
	}
	return false
}

// splitInterfaceAddress splits a CIDR address into the separate address and
// netmask strings used by the interface endpoint.
func splitInterfaceAddress(cidr string) (address string, netmask string, err error) {
	ip, ipNet, err := net.ParseCIDR(cidr)
	if err != nil {
		return "", "", common.NewValidationError(fmt.Sprintf(
			"invalid interface address %q: %s", cidr, err.Error()))
	}

	return ip.String(), net.IP(ipNet.Mask).String(), nil
}

// currentInterfaceAddress renders the address currently assigned to an
// interface in CIDR notation, or "" when no address is assigned.
func currentInterfaceAddress(eth *networkinterfaces.Eth) string {
	if eth == nil || eth.Address == nil {
		return ""
	}
	if eth.Netmask == nil {
		return *eth.Address
	}

	ip := net.ParseIP(*eth.Netmask)
	if ip == nil {
		return *eth.Address
	}

	// IPv4 netmasks parse to a 4 byte mask; IPv6 netmasks keep all 16.
	mask := net.IPMask(ip.To4())
	if mask == nil {
		mask = net.IPMask(ip.To16())
	}
	ones, bits := mask.Size()
	if bits == 0 {
		// Not a canonical prefix mask.
		return *eth.Address
	}

	return fmt.Sprintf("%s/%d", *eth.Address, ones)
}

// networkInterfaceUpdateRequired is a utility function which determines
// whether an update is needed to an interface array resource in order to
// reconcile with the latest stored configuration.
func networkInterfaceUpdateRequired(instance *flasharrayv1.NetworkInterface, iface *networkinterfaces.NetworkInterface) (opts networkinterfaces.InterfaceOpts, result bool, err error) {
	var delta strings.Builder

	spec := instance.Spec

	if spec.Enabled != nil && *spec.Enabled != iface.Enabled {
		opts.Enabled = spec.Enabled
		delta.WriteString(fmt.Sprintf("\t+Enabled: %t\n", *opts.Enabled))
		result = true
	}

	if spec.Services != nil && utils.ListChanged(spec.Services, iface.Services) {
		opts.Services = spec.Services
		delta.WriteString(fmt.Sprintf("\t+Services: %s\n", strings.Join(opts.Services, ",")))
		result = true
	}

	eth := networkinterfaces.EthOpts{}
	ethChanged := false

	if spec.Address != nil {
		current := currentInterfaceAddress(iface.Eth)
		if *spec.Address == networkinterfaces.ClearAddress {
			if current != "" {
				clear := networkinterfaces.ClearAddress
				eth.Address = &clear
				delta.WriteString("\t+Address: none\n")
				ethChanged = true
			}
		} else if *spec.Address != current {
			address, netmask, err2 := splitInterfaceAddress(*spec.Address)
			if err2 != nil {
				return opts, result, err2
			}
			eth.Address = &address
			eth.Netmask = &netmask
			delta.WriteString(fmt.Sprintf("\t+Address: %s\n", *spec.Address))
			ethChanged = true
		}
	}

	if spec.Gateway != nil {
		current := ""
		if iface.Eth != nil && iface.Eth.Gateway != nil {
			current = *iface.Eth.Gateway
		}
		if *spec.Gateway != current {
			eth.Gateway = spec.Gateway
			delta.WriteString(fmt.Sprintf("\t+Gateway: %s\n", *eth.Gateway))
			ethChanged = true
		}
	}

	if spec.MTU != nil {
		current := int32(0)
		if iface.Eth != nil {
			current = iface.Eth.MTU
		}
		if *spec.MTU != current {
			eth.MTU = spec.MTU
			delta.WriteString(fmt.Sprintf("\t+MTU: %d\n", *eth.MTU))
			ethChanged = true
		}
	}

	if spec.Subinterfaces != nil {
		var current []string
		if iface.Eth != nil {
			current = iface.Eth.Subinterfaces
		}
		if utils.ListChanged(spec.Subinterfaces, current) {
			eth.Subinterfaces = spec.Subinterfaces
			delta.WriteString(fmt.Sprintf("\t+Subinterfaces: %s\n",
				strings.Join(eth.Subinterfaces, ",")))
			ethChanged = true
		}
	}

	if spec.VLAN != nil {
		current := int32(0)
		if iface.Eth != nil && iface.Eth.VLAN != nil {
			current = *iface.Eth.VLAN
		}
		if *spec.VLAN != current {
			eth.VLAN = spec.VLAN
			delta.WriteString(fmt.Sprintf("\t+VLAN: %d\n", *eth.VLAN))
			ethChanged = true
		}
	}

	if ethChanged {
		opts.Eth = &eth
		result = true
	}

	deltaString := delta.String()
	if deltaString != "" {
		deltaString = "\n" + strings.TrimSuffix(deltaString, "\n")
		logNetworkInterface.Info(fmt.Sprintf("delta configuration:%s\n", deltaString))
	}
	instance.Status.Delta = deltaString

	return opts, result, err
}

// IsDryRun reports whether the resource is annotated so that reconciliation
// only reports differences without applying them.
func (r *NetworkInterfaceReconciler) IsDryRun(instance *flasharrayv1.NetworkInterface) bool {
	_, present := instance.Annotations[utils.DryRunAnnotation]
	return present
}

// ReconcileNew is a method which handles reconciling a new data resource.
// Only virtual interfaces can be created; a missing physical interface is a
// user error since the hardware either exists or it does not.
func (r *NetworkInterfaceReconciler) ReconcileNew(client *flasharray.Client, instance *flasharrayv1.NetworkInterface) (*networkinterfaces.NetworkInterface, error) {
	if !isVirtualInterface(&instance.Spec) {
		return nil, flasharrayv1.NewMissingArrayResource(fmt.Sprintf(
			"physical interface %q was not found", instance.Name))
	}

	if instance.Status.Reconciled && r.StopAfterInSync() {
		// Do not process any further changes once we have reached a
		// synchronized state unless there is an annotation on the resource.
		if _, present := instance.Annotations[arrayManager.ReconcileAfterInSync]; !present {
			msg := common.NoProvisioningAfterReconciled
			r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceUpdated, msg)
			return nil, common.NewChangeAfterInSync(msg)
		} else {
			logNetworkInterface.Info(common.ProvisioningAllowedAfterReconciled)
		}
	}

	opts, _, err := networkInterfaceUpdateRequired(instance, &networkinterfaces.NetworkInterface{})
	if err != nil {
		return nil, err
	}

	if opts.Eth == nil {
		opts.Eth = &networkinterfaces.EthOpts{}
	}
	opts.Eth.Subtype = instance.Spec.Subtype

	if r.IsDryRun(instance) {
		r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceWait,
			"dry-run: interface would be created")
		return nil, nil
	}

	logNetworkInterface.Info("creating interface", "opts", opts)

	iface, err := networkinterfaces.Create(context.TODO(), client, instance.Name,
		networkInterfaceContextNames(client, instance), opts).Extract()
	if err != nil {
		err = perrors.Wrapf(err, "failed to create: %s", common.FormatStruct(opts))
		return nil, err
	}

	r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceCreated,
		"interface has been created")

	return iface, nil
}

// ReconcileUpdated is a method which handles reconciling an existing data
// resource and updates the corresponding array resource thru the array API
// to match the desired state of the resource.
func (r *NetworkInterfaceReconciler) ReconcileUpdated(client *flasharray.Client, instance *flasharrayv1.NetworkInterface, iface *networkinterfaces.NetworkInterface) error {
	opts, ok, err := networkInterfaceUpdateRequired(instance, iface)
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
				logNetworkInterface.Info(common.ChangedAllowedAfterReconciled)
			}
		}

		if r.IsDryRun(instance) {
			r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceWait,
				"dry-run: interface would be updated")
			return nil
		}

		logNetworkInterface.Info("updating interface", "opts", opts)

		result, err := networkinterfaces.Update(context.TODO(), client, iface.Name,
			networkInterfaceContextNames(client, instance), opts).Extract()
		if err != nil {
			err = perrors.Wrapf(err, "failed to update: %s", common.FormatStruct(opts))
			return err
		}

		*iface = *result

		r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceUpdated,
			"interface has been updated")
	}

	return nil
}

// ReconciledDeleted is a method which handles the deletion of a resource.
// Virtual interfaces are removed from the array; physical interfaces keep
// their configuration since the hardware remains either way.
func (r *NetworkInterfaceReconciler) ReconciledDeleted(client *flasharray.Client, instance *flasharrayv1.NetworkInterface, iface *networkinterfaces.NetworkInterface) error {
	if utils.ContainsString(instance.ObjectMeta.Finalizers, NetworkInterfaceFinalizerName) {
		if iface != nil && isVirtualInterface(&instance.Spec) && !r.IsDryRun(instance) {
			err := networkinterfaces.Delete(context.TODO(), client, iface.Name,
				networkInterfaceContextNames(client, instance)).ExtractErr()
			if err != nil {
				err = perrors.Wrap(err, "failed to delete interface")
				return err
			}

			r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceDeleted,
				"interface has been deleted")
		}

		// Remove the finalizer so the kubernetes delete operation can continue.
		instance.ObjectMeta.Finalizers = utils.RemoveString(instance.ObjectMeta.Finalizers, NetworkInterfaceFinalizerName)
		if err := r.Client.Update(context.Background(), instance); err != nil {
			return err
		}
	}

	return nil
}

// statusUpdateRequired is a utility function which determines whether an
// update is required to the resource status attribute.  Updating this
// unnecessarily will result in an infinite reconciliation loop.
func (r *NetworkInterfaceReconciler) statusUpdateRequired(instance *flasharrayv1.NetworkInterface, inSync bool) (result bool) {
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
func (r *NetworkInterfaceReconciler) FindExistingResource(client *flasharray.Client, instance *flasharrayv1.NetworkInterface) (iface *networkinterfaces.NetworkInterface, err error) {
	iface, err = networkinterfaces.Get(context.TODO(), client, instance.Name,
		networkInterfaceContextNames(client, instance)).Extract()
	if err != nil {
		if !flasharray.IsNotFound(perrors.Cause(err)) {
			err = perrors.Wrapf(err, "failed to get: %s", instance.Name)
			return nil, err
		}

		return nil, nil
	}

	return iface, nil
}

// ReconcileResource interacts with the array API in order to reconcile the
// state of a network interface with the state stored in the k8s database.
func (r *NetworkInterfaceReconciler) ReconcileResource(client *flasharray.Client, instance *flasharrayv1.NetworkInterface) error {
	iface, err := r.FindExistingResource(client, instance)
	if err != nil {
		return err
	}

	if !instance.DeletionTimestamp.IsZero() {
		err = r.ReconciledDeleted(client, instance, iface)

	} else {
		if iface == nil {
			iface, err = r.ReconcileNew(client, instance)
		} else {
			err = r.ReconcileUpdated(client, instance, iface)
		}

		inSync := err == nil && iface != nil

		if instance.Status.InSync != inSync {
			r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceUpdated, "synchronization has changed to: %t", inSync)
		}

		if r.statusUpdateRequired(instance, inSync) {
			logNetworkInterface.Info("updating interface", "status", instance.Status)

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
func (r *NetworkInterfaceReconciler) StopAfterInSync() bool {
	// If the option is not found or the option was specified in a form other
	// than a bool then assume the safest default value possible.
	return utils.GetReconcilerOptionBool(utils.NetworkInterface, utils.StopAfterInSync, true)
}

// Reconcile reads that state of the cluster for a NetworkInterface object and makes changes based on the state read
// +kubebuilder:rbac:groups=flasharray.purestorage.com,resources=networkinterfaces,verbs=get;list;watch;create;update;patch;delete
// +kubebuilder:rbac:groups=flasharray.purestorage.com,resources=networkinterfaces/status,verbs=get;update;patch
// +kubebuilder:rbac:groups=flasharray.purestorage.com,resources=networkinterfaces/finalizers,verbs=update
func (r *NetworkInterfaceReconciler) Reconcile(ctx context.Context, request ctrl.Request) (ctrl.Result, error) {
	_ = log.FromContext(ctx)

	savedLog := logNetworkInterface
	logNetworkInterface = logNetworkInterface.WithName(request.NamespacedName.String())
	defer func() { logNetworkInterface = savedLog }()

	// Fetch the NetworkInterface instance
	instance := &flasharrayv1.NetworkInterface{}
	err := r.Client.Get(context.TODO(), request.NamespacedName, instance)
	if err != nil {
		if errors.IsNotFound(err) {
			// Object not found, return.  Created objects are automatically
			// garbage collected. For additional cleanup logic use finalizers.
			return reconcile.Result{}, nil
		}

		logNetworkInterface.Error(err, "unable to read object: %v", request)
		// Error reading the object - requeue the request.
		return reconcile.Result{}, err
	}

	if instance.DeletionTimestamp.IsZero() {
		// Ensure that the object has a finalizer setup as a pre-delete hook so
		// that we can delete any array resources that we previously added.
		if !utils.ContainsString(instance.ObjectMeta.Finalizers, NetworkInterfaceFinalizerName) {
			instance.ObjectMeta.Finalizers = append(instance.ObjectMeta.Finalizers, NetworkInterfaceFinalizerName)
			if err := r.Client.Update(context.Background(), instance); err != nil {
				return reconcile.Result{}, err
			}

			// Might as well return immediately as the update is going to cause
			// another reconcile event for this resource and we don't want to
			// access the array API more than necessary.
			return reconcile.Result{}, nil
		}
	}

	if !utils.IsReconcilerEnabled(utils.NetworkInterface) {
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
func (r *NetworkInterfaceReconciler) SetupWithManager(mgr ctrl.Manager) error {
	tMgr := arrayManager.GetInstance(mgr)
	r.Client = mgr.GetClient()
	r.Scheme = mgr.GetScheme()
	r.ArrayManager = tMgr
	r.ReconcilerErrorHandler = &common.ErrorHandler{
		ArrayManager: tMgr,
		Logger:       logNetworkInterface}
	r.ReconcilerEventLogger = &common.EventLogger{
		EventRecorder: mgr.GetEventRecorderFor(NetworkInterfaceControllerName),
		Logger:        logNetworkInterface}
	return ctrl.NewControllerManagedBy(mgr).
		For(&flasharrayv1.NetworkInterface{}).
		Complete(r)
}
