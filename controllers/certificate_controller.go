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
	"github.com/pure-storage/flasharray-deployment-manager/flasharray/certificates"
)

var logCertificate = log.Log.WithName("controller").WithName("certificate")

const CertificateControllerName = "certificate-controller"

const CertificateFinalizerName = utils.CertificateFinalizerName

// Secret data keys for imported certificate private keys.
const (
	SecretKeyKey        = "key"
	SecretPassphraseKey = "passphrase"
)

var _ reconcile.Reconciler = &CertificateReconciler{}

// CertificateReconciler reconciles a Certificate object
type CertificateReconciler struct {
	client.Client
	Log    logr.Logger
	Scheme *runtime.Scheme
	arrayManager.ArrayManager
	common.ReconcilerErrorHandler
	common.ReconcilerEventLogger
}

func certificateContextNames(c *flasharray.Client, instance *flasharrayv1.Certificate) []string {
	if c.Supports(utils.MinVersionContextNames) {
		return instance.Spec.ContextNames
	}
	return nil
}

func stringChanged(want *string, have *string) bool {
	if want == nil {
		return false
	}
	if have == nil {
		return *want != ""
	}
	return *want != *have
}

// generateOpts builds the sparse update needed to align a self-signed
// certificate subject with the configured one.  Returns nil when the subject
// is already in sync.  The validity period only applies when the certificate
// is regenerated for another reason since the array does not report it in a
// comparable form.
func generateOpts(info *flasharrayv1.CertificateGeneration, cert *certificates.Certificate, delta *strings.Builder) *certificates.CertificateOpts {
	opts := certificates.CertificateOpts{}
	changed := false

	if cert.Status != certificates.StatusSelfSigned {
		delta.WriteString(fmt.Sprintf("\t+Status: %s\n", certificates.StatusSelfSigned))
		changed = true
	}

	if cert.CommonName == nil || info.CommonName != *cert.CommonName {
		delta.WriteString(fmt.Sprintf("\t+CommonName: %s\n", info.CommonName))
		changed = true
	}

	if stringChanged(info.Country, cert.Country) {
		delta.WriteString(fmt.Sprintf("\t+Country: %s\n", *info.Country))
		changed = true
	}

	if stringChanged(info.Email, cert.Email) {
		delta.WriteString(fmt.Sprintf("\t+Email: %s\n", *info.Email))
		changed = true
	}

	if stringChanged(info.Locality, cert.Locality) {
		delta.WriteString(fmt.Sprintf("\t+Locality: %s\n", *info.Locality))
		changed = true
	}

	if stringChanged(info.Organization, cert.Organization) {
		delta.WriteString(fmt.Sprintf("\t+Organization: %s\n", *info.Organization))
		changed = true
	}

	if stringChanged(info.OrganizationalUnit, cert.OrganizationalUnit) {
		delta.WriteString(fmt.Sprintf("\t+OrganizationalUnit: %s\n", *info.OrganizationalUnit))
		changed = true
	}

	if stringChanged(info.Province, cert.State) {
		delta.WriteString(fmt.Sprintf("\t+Province: %s\n", *info.Province))
		changed = true
	}

	if info.KeySize != nil && *info.KeySize != cert.KeySize {
		delta.WriteString(fmt.Sprintf("\t+KeySize: %d\n", *info.KeySize))
		changed = true
	}

	if !changed {
		return nil
	}

	// Regeneration replaces the whole certificate so the full subject is
	// sent, not just the fields that drifted.
	commonName := info.CommonName
	opts.CommonName = &commonName
	opts.Country = info.Country
	opts.Email = info.Email
	opts.Locality = info.Locality
	opts.Organization = info.Organization
	opts.OrganizationalUnit = info.OrganizationalUnit
	opts.State = info.Province
	opts.KeySize = info.KeySize
	opts.Days = info.Days

	status := certificates.StatusSelfSigned
	opts.Status = &status

	return &opts
}

// importOpts builds the update needed to align an imported certificate with
// the configured PEM text.  Returns nil when the installed certificate
// already matches.  The private key is resolved separately since it lives in
// a kubernetes secret.
func importOpts(info *flasharrayv1.CertificateImport, cert *certificates.Certificate, delta *strings.Builder) *certificates.CertificateOpts {
	if cert.Status == certificates.StatusImported &&
		strings.TrimSpace(cert.Certificate) == strings.TrimSpace(info.Certificate) {
		return nil
	}

	delta.WriteString("\t+Certificate: imported PEM\n")

	opts := certificates.CertificateOpts{}

	certificate := info.Certificate
	opts.Certificate = &certificate
	opts.IntermediateCertificate = info.IntermediateCertificate

	status := certificates.StatusImported
	opts.Status = &status

	return &opts
}

// certificateUpdateRequired is a utility function which determines whether an
// update is needed to a certificate array resource in order to reconcile with
// the latest stored configuration.
func certificateUpdateRequired(instance *flasharrayv1.Certificate, cert *certificates.Certificate) (opts *certificates.CertificateOpts) {
	var delta strings.Builder

	spec := instance.Spec

	if spec.Generate != nil {
		opts = generateOpts(spec.Generate, cert, &delta)
	} else if spec.Import != nil {
		opts = importOpts(spec.Import, cert, &delta)
	}

	deltaString := delta.String()
	if deltaString != "" {
		deltaString = "\n" + strings.TrimSuffix(deltaString, "\n")
		logCertificate.Info(fmt.Sprintf("delta configuration:%s\n", deltaString))
	}
	instance.Status.Delta = deltaString

	return opts
}

// attachPrivateKey resolves the private key secret referenced by an import
// and attaches it to the request options.
func (r *CertificateReconciler) attachPrivateKey(instance *flasharrayv1.Certificate, opts *certificates.CertificateOpts) error {
	if instance.Spec.Import == nil || instance.Spec.Import.KeySecret == nil {
		return nil
	}

	secret := &corev1.Secret{}
	name := types.NamespacedName{Namespace: instance.Namespace, Name: *instance.Spec.Import.KeySecret}
	if err := r.Client.Get(context.TODO(), name, secret); err != nil {
		if errors.IsNotFound(err) {
			return common.NewMissingKubernetesResource(fmt.Sprintf(
				"key secret %q was not found", name.Name))
		}
		return err
	}

	keyBytes, ok := secret.Data[SecretKeyKey]
	if !ok {
		return common.NewUserDataError(fmt.Sprintf(
			"key secret %q has no %q entry", name.Name, SecretKeyKey))
	}

	key := string(keyBytes)
	opts.Key = &key

	if passBytes, ok := secret.Data[SecretPassphraseKey]; ok {
		passphrase := string(passBytes)
		opts.Passphrase = &passphrase
	}

	return nil
}

// IsDryRun reports whether the resource is annotated so that reconciliation
// only reports differences without applying them.
func (r *CertificateReconciler) IsDryRun(instance *flasharrayv1.Certificate) bool {
	_, present := instance.Annotations[utils.DryRunAnnotation]
	return present
}

// ReconcileNew is a method which handles reconciling a new data resource and
// creates the corresponding array resource thru the array API.
func (r *CertificateReconciler) ReconcileNew(client *flasharray.Client, instance *flasharrayv1.Certificate) (*certificates.Certificate, error) {
	if instance.Status.Reconciled && r.StopAfterInSync() {
		// Do not process any further changes once we have reached a
		// synchronized state unless there is an annotation on the resource.
		if _, present := instance.Annotations[arrayManager.ReconcileAfterInSync]; !present {
			msg := common.NoProvisioningAfterReconciled
			r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceUpdated, msg)
			return nil, common.NewChangeAfterInSync(msg)
		} else {
			logCertificate.Info(common.ProvisioningAllowedAfterReconciled)
		}
	}

	opts := certificateUpdateRequired(instance, &certificates.Certificate{})
	if opts == nil {
		return nil, common.NewValidationError(
			"one of generate or import must be supplied")
	}

	if err := r.attachPrivateKey(instance, opts); err != nil {
		return nil, err
	}

	if r.IsDryRun(instance) {
		r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceWait,
			"dry-run: certificate would be created")
		return nil, nil
	}

	logCertificate.Info("creating certificate", "name", instance.Name)

	cert, err := certificates.Create(context.TODO(), client, instance.Name,
		certificateContextNames(client, instance), *opts).Extract()
	if err != nil {
		err = perrors.Wrapf(err, "failed to create: %s", instance.Name)
		return nil, err
	}

	r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceCreated,
		"certificate has been created")

	return cert, nil
}

// ReconcileUpdated is a method which handles reconciling an existing data
// resource and updates the corresponding array resource thru the array API
// to match the desired state of the resource.
func (r *CertificateReconciler) ReconcileUpdated(client *flasharray.Client, instance *flasharrayv1.Certificate, cert *certificates.Certificate) error {
	opts := certificateUpdateRequired(instance, cert)
	if opts == nil {
		return nil
	}

	if instance.Status.Reconciled && r.StopAfterInSync() {
		// Do not process any further changes once we have reached a
		// synchronized state unless there is an annotation on the resource.
		if _, present := instance.Annotations[arrayManager.ReconcileAfterInSync]; !present {
			msg := common.NoChangesAfterReconciled
			r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceUpdated, msg)
			return common.NewChangeAfterInSync(msg)
		} else {
			logCertificate.Info(common.ChangedAllowedAfterReconciled)
		}
	}

	if err := r.attachPrivateKey(instance, opts); err != nil {
		return err
	}

	if r.IsDryRun(instance) {
		r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceWait,
			"dry-run: certificate would be updated")
		return nil
	}

	logCertificate.Info("updating certificate", "name", cert.Name)

	result, err := certificates.Update(context.TODO(), client, cert.Name,
		certificateContextNames(client, instance), *opts).Extract()
	if err != nil {
		err = perrors.Wrapf(err, "failed to update: %s", cert.Name)
		return err
	}

	*cert = *result

	r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceUpdated,
		"certificate has been updated")

	return nil
}

// ReconciledDeleted is a method which handles the deletion of a resource.
// Certificates have no eradication pending window so the array resource is
// removed outright.
func (r *CertificateReconciler) ReconciledDeleted(client *flasharray.Client, instance *flasharrayv1.Certificate, cert *certificates.Certificate) error {
	if utils.ContainsString(instance.ObjectMeta.Finalizers, CertificateFinalizerName) {
		if cert != nil && !r.IsDryRun(instance) {
			err := certificates.Delete(context.TODO(), client, cert.Name,
				certificateContextNames(client, instance)).ExtractErr()
			if err != nil {
				err = perrors.Wrap(err, "failed to delete certificate")
				return err
			}

			r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceDeleted,
				"certificate has been deleted")
		}

		// Remove the finalizer so the kubernetes delete operation can continue.
		instance.ObjectMeta.Finalizers = utils.RemoveString(instance.ObjectMeta.Finalizers, CertificateFinalizerName)
		if err := r.Client.Update(context.Background(), instance); err != nil {
			return err
		}
	}

	return nil
}

// statusUpdateRequired is a utility function which determines whether an
// update is required to the resource status attribute.  Updating this
// unnecessarily will result in an infinite reconciliation loop.
func (r *CertificateReconciler) statusUpdateRequired(instance *flasharrayv1.Certificate, cert *certificates.Certificate, inSync bool) (result bool) {
	status := &instance.Status

	kind := ""
	pem := ""
	validTo := int64(0)
	if cert != nil {
		kind = cert.Status
		pem = cert.Certificate
		validTo = cert.ValidTo
	}

	if status.Kind != kind {
		status.Kind = kind
		result = true
	}

	if status.Certificate != pem {
		status.Certificate = pem
		result = true
	}

	if status.ValidTo != validTo {
		status.ValidTo = validTo
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
// name as the kubernetes resource.
func (r *CertificateReconciler) FindExistingResource(client *flasharray.Client, instance *flasharrayv1.Certificate) (cert *certificates.Certificate, err error) {
	cert, err = certificates.Get(context.TODO(), client, instance.Name,
		certificateContextNames(client, instance)).Extract()
	if err != nil {
		if !flasharray.IsNotFound(perrors.Cause(err)) {
			err = perrors.Wrapf(err, "failed to get: %s", instance.Name)
			return nil, err
		}

		return nil, nil
	}

	return cert, nil
}

// ReconcileResource interacts with the array API in order to reconcile the
// state of a certificate with the state stored in the k8s database.
func (r *CertificateReconciler) ReconcileResource(client *flasharray.Client, instance *flasharrayv1.Certificate) error {
	cert, err := r.FindExistingResource(client, instance)
	if err != nil {
		return err
	}

	if !instance.DeletionTimestamp.IsZero() {
		err = r.ReconciledDeleted(client, instance, cert)

	} else {
		if cert == nil {
			cert, err = r.ReconcileNew(client, instance)
		} else {
			err = r.ReconcileUpdated(client, instance, cert)
		}

		inSync := err == nil && cert != nil

		if instance.Status.InSync != inSync {
			r.ReconcilerEventLogger.NormalEvent(instance, common.ResourceUpdated, "synchronization has changed to: %t", inSync)
		}

		if r.statusUpdateRequired(instance, cert, inSync) {
			logCertificate.Info("updating certificate", "status", "modified")

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
func (r *CertificateReconciler) StopAfterInSync() bool {
	// If the option is not found or the option was specified in a form other
	// than a bool then assume the safest default value possible.
	return utils.GetReconcilerOptionBool(utils.Certificate, utils.StopAfterInSync, true)
}

// Reconcile reads that state of the cluster for a Certificate object and makes changes based on the state read
// +kubebuilder:rbac:groups=flasharray.purestorage.com,resources=certificates,verbs=get;list;watch;create;update;patch;delete
// +kubebuilder:rbac:groups=flasharray.purestorage.com,resources=certificates/status,verbs=get;update;patch
// +kubebuilder:rbac:groups=flasharray.purestorage.com,resources=certificates/finalizers,verbs=update
// +kubebuilder:rbac:groups="",resources=secrets,verbs=get;list;watch
func (r *CertificateReconciler) Reconcile(ctx context.Context, request ctrl.Request) (ctrl.Result, error) {
	_ = log.FromContext(ctx)

	savedLog := logCertificate
	logCertificate = logCertificate.WithName(request.NamespacedName.String())
	defer func() { logCertificate = savedLog }()

	// Fetch the Certificate instance
	instance := &flasharrayv1.Certificate{}
	err := r.Client.Get(context.TODO(), request.NamespacedName, instance)
	if err != nil {
		if errors.IsNotFound(err) {
			// Object not found, return.  Created objects are automatically
			// garbage collected. For additional cleanup logic use finalizers.
			return reconcile.Result{}, nil
		}

		logCertificate.Error(err, "unable to read object: %v", request)
		// Error reading the object - requeue the request.
		return reconcile.Result{}, err
	}

	if instance.DeletionTimestamp.IsZero() {
		// Ensure that the object has a finalizer setup as a pre-delete hook so
		// that we can delete any array resources that we previously added.
		if !utils.ContainsString(instance.ObjectMeta.Finalizers, CertificateFinalizerName) {
			instance.ObjectMeta.Finalizers = append(instance.ObjectMeta.Finalizers, CertificateFinalizerName)
			if err := r.Client.Update(context.Background(), instance); err != nil {
				return reconcile.Result{}, err
			}

			// Might as well return immediately as the update is going to cause
			// another reconcile event for this resource and we don't want to
			// access the array API more than necessary.
			return reconcile.Result{}, nil
		}
	}

	if !utils.IsReconcilerEnabled(utils.Certificate) {
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
func (r *CertificateReconciler) SetupWithManager(mgr ctrl.Manager) error {
	tMgr := arrayManager.GetInstance(mgr)
	r.Client = mgr.GetClient()
	r.Scheme = mgr.GetScheme()
	r.ArrayManager = tMgr
	r.ReconcilerErrorHandler = &common.ErrorHandler{
		ArrayManager: tMgr,
		Logger:       logCertificate}
	r.ReconcilerEventLogger = &common.EventLogger{
		EventRecorder: mgr.GetEventRecorderFor(CertificateControllerName),
		Logger:        logCertificate}
	return ctrl.NewControllerManagedBy(mgr).
		For(&flasharrayv1.Certificate{}).
		Complete(r)
}
