/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2024-2026 Pure Storage, Inc. */

package v1

import (
	"context"
	"errors"
	"fmt"

	"github.com/alecthomas/units"
	"k8s.io/apimachinery/pkg/runtime"
	ctrl "sigs.k8s.io/controller-runtime"
	logf "sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/webhook"
	"sigs.k8s.io/controller-runtime/pkg/webhook/admission"
)

// Webhook response reasons
const VolumeGroupAllowedReason string = "allowed to be admitted"

// QoS limit bounds enforced by the array.
const (
	MinBandwidthLimit = int64(units.Mebibyte)
	MaxBandwidthLimit = 512 * int64(units.Gibibyte)
	MinIOPSLimit      = int64(100)
	MaxIOPSLimit      = 100 * int64(units.Megabyte)
)

// log is for logging in this package.
var volumegrouplog = logf.Log.WithName("volumegroup-resource")

type VolumeGroupCustomValidator struct{}

func (r *VolumeGroup) SetupWebhookWithManager(mgr ctrl.Manager) error {
	return ctrl.NewWebhookManagedBy(mgr).
		For(r).
		WithValidator(&VolumeGroupCustomValidator{}).
		Complete()
}

func (r *VolumeGroup) validateBandwidthLimit() error {
	if r.Spec.BandwidthLimit == nil || *r.Spec.BandwidthLimit == "0" {
		return nil
	}

	value, err := units.ParseBase2Bytes(*r.Spec.BandwidthLimit + "B")
	if err != nil {
		return fmt.Errorf("invalid bandwidth limit %q: %s", *r.Spec.BandwidthLimit, err)
	}

	if int64(value) < MinBandwidthLimit || int64(value) > MaxBandwidthLimit {
		return fmt.Errorf("bandwidth limit %q out of range [1M, 512G]", *r.Spec.BandwidthLimit)
	}

	return nil
}

func (r *VolumeGroup) validateIOPSLimit() error {
	if r.Spec.IOPSLimit == nil || *r.Spec.IOPSLimit == "0" {
		return nil
	}

	value, err := units.ParseMetricBytes(*r.Spec.IOPSLimit + "B")
	if err != nil {
		return fmt.Errorf("invalid IOPS limit %q: %s", *r.Spec.IOPSLimit, err)
	}

	if int64(value) < MinIOPSLimit || int64(value) > MaxIOPSLimit {
		return fmt.Errorf("IOPS limit %q out of range [100, 100M]", *r.Spec.IOPSLimit)
	}

	return nil
}

func (r *VolumeGroup) validatePriorityAdjustment() error {
	operator := r.Spec.PriorityOperator
	value := r.Spec.PriorityValue

	if operator == nil && value == nil {
		return nil
	}

	if operator == nil || value == nil {
		return errors.New("priority operator and value must be supplied together")
	}

	// The array accepts +0, +10 and -10.
	if *operator == "-" && *value == 0 {
		return errors.New("priority adjustment -0 is not accepted; use +0")
	}

	return nil
}

func (r *VolumeGroup) validateVolumeGroup() error {
	if err := r.validateBandwidthLimit(); err != nil {
		return err
	}

	if err := r.validateIOPSLimit(); err != nil {
		return err
	}

	if err := r.validatePriorityAdjustment(); err != nil {
		return err
	}

	if r.Spec.Rename != nil && *r.Spec.Rename == "" {
		return errors.New("rename must not be an empty name")
	}

	volumegrouplog.Info(VolumeGroupAllowedReason)
	return nil
}

// +kubebuilder:webhook:verbs=create;update,path=/validate-flasharray-purestorage-com-v1-volumegroup,mutating=false,failurePolicy=fail,sideEffects=None,groups=flasharray.purestorage.com,resources=volumegroups,versions=v1,name=vvolumegroup.kb.io,admissionReviewVersions=v1

var _ webhook.CustomValidator = &VolumeGroupCustomValidator{}

// ValidateCreate implements webhook.CustomValidator so a webhook will be registered for the type
func (v *VolumeGroupCustomValidator) ValidateCreate(ctx context.Context, obj runtime.Object) (admission.Warnings, error) {
	group, ok := obj.(*VolumeGroup)
	if !ok {
		return nil, fmt.Errorf("expected a VolumeGroup but got %T", obj)
	}

	volumegrouplog.Info("validate create", "name", group.Name)

	return nil, group.validateVolumeGroup()
}

// ValidateUpdate implements webhook.CustomValidator so a webhook will be registered for the type
func (v *VolumeGroupCustomValidator) ValidateUpdate(ctx context.Context, oldObj, newObj runtime.Object) (admission.Warnings, error) {
	group, ok := newObj.(*VolumeGroup)
	if !ok {
		return nil, fmt.Errorf("expected a VolumeGroup but got %T", newObj)
	}

	volumegrouplog.Info("validate update", "name", group.Name)

	return nil, group.validateVolumeGroup()
}

// ValidateDelete implements webhook.CustomValidator so a webhook will be registered for the type
func (v *VolumeGroupCustomValidator) ValidateDelete(ctx context.Context, obj runtime.Object) (admission.Warnings, error) {
	group, ok := obj.(*VolumeGroup)
	if !ok {
		return nil, fmt.Errorf("expected a VolumeGroup but got %T", obj)
	}

	volumegrouplog.Info("validate delete", "name", group.Name)

	return nil, nil
}
