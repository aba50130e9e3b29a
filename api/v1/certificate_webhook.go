/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2024-2026 Pure Storage, Inc. */

package v1

import (
	"context"
	"encoding/pem"
	"errors"
	"fmt"

	"k8s.io/apimachinery/pkg/runtime"
	ctrl "sigs.k8s.io/controller-runtime"
	logf "sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/webhook"
	"sigs.k8s.io/controller-runtime/pkg/webhook/admission"
)

// Webhook response reasons
const CertificateAllowedReason string = "allowed to be admitted"

// Defaults applied to generated certificates.
const (
	DefaultCertificateKeySize int32 = 2048
	DefaultCertificateDays    int32 = 3650
)

// log is for logging in this package.
var certificatelog = logf.Log.WithName("certificate-resource")

type CertificateCustomDefaulter struct{}

type CertificateCustomValidator struct{}

func (r *Certificate) SetupWebhookWithManager(mgr ctrl.Manager) error {
	return ctrl.NewWebhookManagedBy(mgr).
		For(r).
		WithDefaulter(&CertificateCustomDefaulter{}).
		WithValidator(&CertificateCustomValidator{}).
		Complete()
}

// +kubebuilder:webhook:path=/mutate-flasharray-purestorage-com-v1-certificate,mutating=true,failurePolicy=fail,sideEffects=None,groups=flasharray.purestorage.com,resources=certificates,verbs=create;update,versions=v1,name=mcertificate.kb.io,admissionReviewVersions=v1

var _ webhook.CustomDefaulter = &CertificateCustomDefaulter{}

// Default implements webhook.CustomDefaulter so a webhook will be registered for the type
func (d *CertificateCustomDefaulter) Default(ctx context.Context, obj runtime.Object) error {
	certificate, ok := obj.(*Certificate)
	if !ok {
		return fmt.Errorf("expected a Certificate but got %T", obj)
	}

	certificatelog.Info("default", "name", certificate.Name)

	if generate := certificate.Spec.Generate; generate != nil {
		if generate.KeySize == nil {
			keySize := DefaultCertificateKeySize
			generate.KeySize = &keySize
		}
		if generate.Days == nil {
			days := DefaultCertificateDays
			generate.Days = &days
		}
	}

	return nil
}

func validatePEM(label string, text string) error {
	block, _ := pem.Decode([]byte(text))
	if block == nil {
		return fmt.Errorf("%s is not PEM formatted", label)
	}
	return nil
}

func (r *Certificate) validateCertificate() error {
	generate := r.Spec.Generate
	imported := r.Spec.Import

	if generate == nil && imported == nil {
		return errors.New("one of generate or import must be supplied")
	}

	if generate != nil && imported != nil {
		return errors.New("generate and import are mutually exclusive")
	}

	if imported != nil {
		if err := validatePEM("certificate", imported.Certificate); err != nil {
			return err
		}
		if imported.IntermediateCertificate != nil {
			err := validatePEM("intermediate certificate", *imported.IntermediateCertificate)
			if err != nil {
				return err
			}
		}
	}

	certificatelog.Info(CertificateAllowedReason)
	return nil
}

// +kubebuilder:webhook:verbs=create;update,path=/validate-flasharray-purestorage-com-v1-certificate,mutating=false,failurePolicy=fail,sideEffects=None,groups=flasharray.purestorage.com,resources=certificates,versions=v1,name=vcertificate.kb.io,admissionReviewVersions=v1

var _ webhook.CustomValidator = &CertificateCustomValidator{}

// ValidateCreate implements webhook.CustomValidator so a webhook will be registered for the type
func (v *CertificateCustomValidator) ValidateCreate(ctx context.Context, obj runtime.Object) (admission.Warnings, error) {
	certificate, ok := obj.(*Certificate)
	if !ok {
		return nil, fmt.Errorf("expected a Certificate but got %T", obj)
	}

	certificatelog.Info("validate create", "name", certificate.Name)

	return nil, certificate.validateCertificate()
}

// ValidateUpdate implements webhook.CustomValidator so a webhook will be registered for the type
func (v *CertificateCustomValidator) ValidateUpdate(ctx context.Context, oldObj, newObj runtime.Object) (admission.Warnings, error) {
	certificate, ok := newObj.(*Certificate)
	if !ok {
		return nil, fmt.Errorf("expected a Certificate but got %T", newObj)
	}

	certificatelog.Info("validate update", "name", certificate.Name)

	return nil, certificate.validateCertificate()
}

// ValidateDelete implements webhook.CustomValidator so a webhook will be registered for the type
func (v *CertificateCustomValidator) ValidateDelete(ctx context.Context, obj runtime.Object) (admission.Warnings, error) {
	certificate, ok := obj.(*Certificate)
	if !ok {
		return nil, fmt.Errorf("expected a Certificate but got %T", obj)
	}

	certificatelog.Info("validate delete", "name", certificate.Name)

	return nil, nil
}
