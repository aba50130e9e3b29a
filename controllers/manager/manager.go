/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2024-2026 Pure Storage, Inc. */

package manager

import (
	"context"
	"strconv"
	"sync"

	perrors "github.com/pkg/errors"
	v1 "github.com/pure-storage/flasharray-deployment-manager/api/v1"
	"github.com/pure-storage/flasharray-deployment-manager/flasharray"
	"k8s.io/apimachinery/pkg/api/meta"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"sigs.k8s.io/controller-runtime/pkg/client"
	logf "sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/manager"
)

var log = logf.Log.WithName("manager")

const HTTPSNotEnabled = "server gave HTTP response to HTTPS client"

const (
	// Defines HTTP and HTTPS URL prefixes.
	HTTPSPrefix = "https://"
	HTTPPrefix  = "http://"
)

const (
	// Defines annotation keys for resources.
	NotificationCountKey = "flasharray-manager/notifications"
	ReconcileAfterInSync = "flasharray-manager/reconcile-after-insync"
)

// ArrayManager wraps a runtime manager and provides the ability to
// coordinate certain functions across the different resource controllers.
type ArrayManager interface {
	ResetArrayClient(namespace string) error
	GetArrayClient(namespace string) *flasharray.Client
	SetArrayClient(namespace string, client *flasharray.Client)
	GetKubernetesClient() client.Client
	BuildArrayClient(namespace string) (*flasharray.Client, error)
	NotifyArrayDependencies(namespace string) error
	NotifyResource(object client.Object) error
	SetArrayReady(namespace string, value bool)
	GetArrayReady(namespace string) bool
	StartMonitor(monitor *Monitor, message string) error
	CancelMonitor(object client.Object)
}

// ArrayNamespace holds the per-namespace connection state.  One array is
// managed per namespace.
type ArrayNamespace struct {
	client *flasharray.Client
	ready  bool
}

// StorageManager is the concrete ArrayManager implementation.
type StorageManager struct {
	manager.Manager
	lock     sync.Mutex
	arrays   map[string]*ArrayNamespace
	monitors map[string]*Monitor
}

func NewStorageManager(manager manager.Manager) ArrayManager {
	return &StorageManager{
		Manager:  manager,
		arrays:   make(map[string]*ArrayNamespace),
		monitors: make(map[string]*Monitor),
	}
}

// BaseError defines a common Error implementation for all manager errors
// that derive from this structure.
type BaseError struct {
	message string
}

// Error implements the Error interface for all structures that derive from
// BaseError.
func (in BaseError) Error() string {
	return in.message
}

// ClientError defines an error to be used on a semantic error encountered
// while attempting to build an array client object.
type ClientError struct {
	BaseError
}

// NewClientError defines a wrapper to correctly instantiate a manager client
// error.
func NewClientError(msg string) error {
	return perrors.WithStack(ClientError{BaseError{msg}})
}

// WaitForMonitor defines a special error object that signals to the
// common error handler that a monitor has been launched to trigger another
// reconciliation attempt only when certain criteria have been met.
type WaitForMonitor struct {
	BaseError
}

// NewWaitForMonitor defines a constructor for the WaitForMonitor error type.
func NewWaitForMonitor(msg string) error {
	return WaitForMonitor{BaseError{msg}}
}

// getNextCount takes a number in string form and returns the next sequential
// value.  If the initial value is not a number then 0 as used as the initial
// input value.
func getNextCount(value string) string {
	var err error

	count := 0
	if value != "" {
		count, err = strconv.Atoi(value)
		if err != nil {
			log.Info("unexpected annotation", "value", value)
			count = 0
		}
	}

	return strconv.Itoa(count + 1)
}

// NotifyStorageArrayController updates an annotation on the StorageArray
// resource in the given namespace to force its controller to re-run its
// reconcile loop.  The storage array controller is the master of the array
// client so it is the one that rebuilds it.
func (m *StorageManager) NotifyStorageArrayController(namespace string) error {
	arrays := &v1.StorageArrayList{}
	opts := client.ListOptions{}
	opts.Namespace = namespace
	err := m.GetClient().List(context.TODO(), arrays, &opts)
	if err != nil {
		err = perrors.Wrap(err, "failed to query storage array list")
		return err
	}

	// There should only be a single array, but for the sake of completeness
	// update any instance returned by the API.
	for _, obj := range arrays.Items {
		if obj.Annotations == nil {
			obj.Annotations = make(map[string]string)
		}
		count := getNextCount(obj.Annotations[NotificationCountKey])
		obj.Annotations[NotificationCountKey] = count

		err := m.GetClient().Update(context.TODO(), &obj)
		if err != nil {
			err = perrors.Wrap(err, "failed to notify storage array controller")
			return err
		}

		log.Info("storage array controller has been notified", "name", obj.Name)
	}

	return nil
}

// arrayDependencies defines the list of controllers to be notified on an
// array session event.  Every controller that manages array resources waits
// for the storage array controller to establish a session.
var arrayDependencies = []schema.GroupVersionKind{
	{Group: v1.Group, Version: v1.Version, Kind: v1.KindNetworkInterface},
	{Group: v1.Group, Version: v1.Version, Kind: v1.KindProtectionGroup},
	{Group: v1.Group, Version: v1.Version, Kind: v1.KindPod},
	{Group: v1.Group, Version: v1.Version, Kind: v1.KindVolumeGroup},
	{Group: v1.Group, Version: v1.Version, Kind: v1.KindCertificate},
	{Group: v1.Group, Version: v1.Version, Kind: v1.KindDirectoryService},
	{Group: v1.Group, Version: v1.Version, Kind: v1.KindHostGroup},
	{Group: v1.Group, Version: v1.Version, Kind: v1.KindRealm},
	{Group: v1.Group, Version: v1.Version, Kind: v1.KindFileSystem},
	{Group: v1.Group, Version: v1.Version, Kind: v1.KindWorkload},
}

// notifyControllers updates an annotation on each of the listed controller
// kinds to force each to re-run its reconcile loop.  This should only be
// executed by the storage array controller.
func (m *StorageManager) notifyControllers(namespace string, gvkList []schema.GroupVersionKind) error {
	for _, gvk := range gvkList {
		objects := &unstructured.UnstructuredList{}
		objects.SetGroupVersionKind(gvk)
		opts := client.ListOptions{}
		opts.Namespace = namespace
		err := m.GetClient().List(context.TODO(), objects, &opts)
		if err != nil {
			err = perrors.Wrapf(err, "failed to query %s list", gvk.Kind)
			return err
		}

		for _, obj := range objects.Items {
			annotations := obj.GetAnnotations()
			if annotations == nil {
				annotations = make(map[string]string)
			}

			count := getNextCount(annotations[NotificationCountKey])
			annotations[NotificationCountKey] = count

			obj.SetAnnotations(annotations)

			err := m.GetClient().Update(context.TODO(), &obj)
			if err != nil {
				err = perrors.Wrapf(err, "failed to notify %s controller", obj.GetKind())
				return err
			}

			log.Info("controller has been notified", "name", obj.GetName(), "kind", obj.GetKind())
		}
	}

	return nil
}

// notifyController updates an annotation on a single controller to force it
// to re-run its reconcile loop.
func (m *StorageManager) notifyController(object client.Object) error {
	key := client.ObjectKeyFromObject(object)

	result := object.DeepCopyObject().(client.Object)
	err := m.GetClient().Get(context.Background(), key, result)
	if err != nil {
		err = perrors.Wrapf(err, "failed to query resource %+v", key)
		return err
	}

	accessor := meta.NewAccessor()

	annotations, err := accessor.Annotations(result)
	if err != nil {
		err = perrors.Wrap(err, "failed to get annotations via accessor")
		return err
	}

	if annotations == nil {
		annotations = make(map[string]string)
	}

	count := getNextCount(annotations[NotificationCountKey])
	annotations[NotificationCountKey] = count

	err = accessor.SetAnnotations(result, annotations)
	if err != nil {
		err = perrors.Wrap(err, "failed to set annotations via accessor")
		return err
	}

	err = m.GetClient().Update(context.TODO(), result)
	if err != nil {
		err = perrors.Wrapf(err, "failed to notify resource controller")
		return err
	}

	log.V(2).Info("controller has been notified", "key", key)

	return nil
}

func (m *StorageManager) NotifyArrayDependencies(namespace string) error {
	return m.notifyControllers(namespace, arrayDependencies)
}

func (m *StorageManager) NotifyResource(object client.Object) error {
	return m.notifyController(object)
}

// GetKubernetesClient returns a reference to the Kubernetes client
func (m *StorageManager) GetKubernetesClient() client.Client {
	return m.GetClient()
}

// GetArrayClient returns the array client instance for a given namespace.
// Nil is returned when no session has been established yet.
func (m *StorageManager) GetArrayClient(namespace string) *flasharray.Client {
	m.lock.Lock()
	defer func() { m.lock.Unlock() }()

	// Look for an existing client
	if obj, ok := m.arrays[namespace]; ok {
		return obj.client
	}

	return nil
}

// SetArrayClient stores the array client instance for a given namespace.
func (m *StorageManager) SetArrayClient(namespace string, client *flasharray.Client) {
	m.lock.Lock()
	defer func() { m.lock.Unlock() }()

	if obj, ok := m.arrays[namespace]; !ok {
		m.arrays[namespace] = &ArrayNamespace{client: client}
	} else {
		obj.client = client
	}
}

// ResetArrayClient deletes the array client instance for a given namespace.
func (m *StorageManager) ResetArrayClient(namespace string) error {
	m.lock.Lock()
	defer func() { m.lock.Unlock() }()

	// Look for an existing client
	if obj, ok := m.arrays[namespace]; ok {
		if obj.client == nil {
			// Already reset.
			return nil
		}
		obj.client = nil
	} else {
		// ArrayNamespace doesn't exist yet
		return nil
	}

	// The storage array controller is the master of the client so notify it
	// so that it can recreate it.
	return m.NotifyStorageArrayController(namespace)
}

// SetArrayReady allows setting the readiness state for a given namespace.
func (m *StorageManager) SetArrayReady(namespace string, value bool) {
	m.lock.Lock()
	defer func() { m.lock.Unlock() }()

	if obj, ok := m.arrays[namespace]; !ok {
		m.arrays[namespace] = &ArrayNamespace{ready: value}
	} else {
		obj.ready = value
	}
}

// GetArrayReady returns whether the array session for the specified namespace
// is ready for all controllers to reconcile their resources.
func (m *StorageManager) GetArrayReady(namespace string) bool {
	m.lock.Lock()
	defer func() { m.lock.Unlock() }()

	if obj, ok := m.arrays[namespace]; !ok {
		return false
	} else {
		return obj.ready
	}
}

// StartMonitor starts the specified monitor, generates an event, and then
// return an error suitable to stop the reconciler from running until the
// monitor has explicitly triggered a new reconcilable event.
func (m *StorageManager) StartMonitor(monitor *Monitor, message string) error {
	m.lock.Lock()
	defer func() { m.lock.Unlock() }()

	key := monitor.GetKey()
	m.monitors[key] = monitor

	log.V(2).Info("starting monitor", "key", key)

	// Run the monitor.
	monitor.Start(m)

	// Return an error which has specific handling to stop and wait for the
	// monitor
	return NewWaitForMonitor(message)
}

// CancelMonitor stops any monitor currently running against the resource
// being reconciled.
func (m *StorageManager) CancelMonitor(object client.Object) {
	m.lock.Lock()
	defer func() { m.lock.Unlock() }()

	key := BuildMonitorKey(object)
	if monitor, ok := m.monitors[key]; ok {
		log.V(2).Info("stopping monitor", "key", key)
		monitor.Stop()
		delete(m.monitors, key)
	}
}

var instance ArrayManager
var once sync.Once

// GetInstance returns a singleton instance of the array manager
func GetInstance(mgr manager.Manager) ArrayManager {
	once.Do(func() {
		instance = NewStorageManager(mgr)
	})

	return instance
}
