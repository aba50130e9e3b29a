/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2024-2026 Pure Storage, Inc. */

package v1

import (
	"context"
	"errors"
	"fmt"
	"time"

	"k8s.io/apimachinery/pkg/runtime"
	ctrl "sigs.k8s.io/controller-runtime"
	logf "sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/webhook"
	"sigs.k8s.io/controller-runtime/pkg/webhook/admission"
)

// Webhook response reasons
const ProtectionGroupAllowedReason string = "allowed to be admitted"

// log is for logging in this package.
var protectiongrouplog = logf.Log.WithName("protectiongroup-resource")

// clockTimeLayouts are the accepted formats for schedule at-times and
// blackout windows.
var clockTimeLayouts = []string{"3PM", "3pm", "15:04"}

type ProtectionGroupCustomValidator struct{}

func (r *ProtectionGroup) SetupWebhookWithManager(mgr ctrl.Manager) error {
	return ctrl.NewWebhookManagedBy(mgr).
		For(r).
		WithValidator(&ProtectionGroupCustomValidator{}).
		Complete()
}

func validateClockTime(value string) error {
	for _, layout := range clockTimeLayouts {
		if _, err := time.Parse(layout, value); err == nil {
			return nil
		}
	}
	return fmt.Errorf("%q is not a valid clock time; use e.g. \"3PM\" or \"15:00\"", value)
}

func validateScheduleTimes(frequency *string, at *string) error {
	var interval time.Duration

	if frequency != nil {
		var err error
		interval, err = time.ParseDuration(*frequency)
		if err != nil {
			return fmt.Errorf("invalid schedule frequency %q: %s", *frequency, err)
		}
		if interval <= 0 {
			return fmt.Errorf("schedule frequency %q must be positive", *frequency)
		}
	}

	if at != nil {
		if err := validateClockTime(*at); err != nil {
			return err
		}
		if frequency == nil || interval%(24*time.Hour) != 0 {
			return errors.New("schedule at-time requires a frequency of a whole number of days")
		}
	}

	return nil
}

func (r *ProtectionGroup) validateSchedules() error {
	if r.Spec.SnapshotSchedule != nil {
		err := validateScheduleTimes(r.Spec.SnapshotSchedule.Frequency, r.Spec.SnapshotSchedule.At)
		if err != nil {
			return err
		}
	}

	if r.Spec.ReplicationSchedule != nil {
		err := validateScheduleTimes(r.Spec.ReplicationSchedule.Frequency, r.Spec.ReplicationSchedule.At)
		if err != nil {
			return err
		}

		if blackout := r.Spec.ReplicationSchedule.Blackout; blackout != nil {
			if err := validateClockTime(blackout.Start); err != nil {
				return err
			}
			if err := validateClockTime(blackout.End); err != nil {
				return err
			}
		}
	}

	return nil
}

func (r *ProtectionGroup) validateRetention(label string, retention *RetentionInfo) error {
	if retention == nil || retention.AllFor == nil {
		return nil
	}

	period, err := time.ParseDuration(*retention.AllFor)
	if err != nil {
		return fmt.Errorf("invalid %s retention period %q: %s", label, *retention.AllFor, err)
	}
	if period < 0 {
		return fmt.Errorf("%s retention period %q must not be negative", label, *retention.AllFor)
	}

	return nil
}

func (r *ProtectionGroup) validateProtectionGroup() error {
	if err := r.validateSchedules(); err != nil {
		return err
	}

	if err := r.validateRetention("source", r.Spec.SourceRetention); err != nil {
		return err
	}

	if err := r.validateRetention("target", r.Spec.TargetRetention); err != nil {
		return err
	}

	if r.Spec.Rename != nil && *r.Spec.Rename == "" {
		return errors.New("rename must not be an empty name")
	}

	protectiongrouplog.Info(ProtectionGroupAllowedReason)
	return nil
}

// +kubebuilder:webhook:verbs=create;update,path=/validate-flasharray-purestorage-com-v1-protectiongroup,mutating=false,failurePolicy=fail,sideEffects=None,groups=flasharray.purestorage.com,resources=protectiongroups,versions=v1,name=vprotectiongroup.kb.io,admissionReviewVersions=v1

var _ webhook.CustomValidator = &ProtectionGroupCustomValidator{}

// ValidateCreate implements webhook.CustomValidator so a webhook will be registered for the type
func (v *ProtectionGroupCustomValidator) ValidateCreate(ctx context.Context, obj runtime.Object) (admission.Warnings, error) {
	group, ok := obj.(*ProtectionGroup)
	if !ok {
		return nil, fmt.Errorf("expected a ProtectionGroup but got %T", obj)
	}

	protectiongrouplog.Info("validate create", "name", group.Name)

	return nil, group.validateProtectionGroup()
}

// ValidateUpdate implements webhook.CustomValidator so a webhook will be registered for the type
func (v *ProtectionGroupCustomValidator) ValidateUpdate(ctx context.Context, oldObj, newObj runtime.Object) (admission.Warnings, error) {
	group, ok := newObj.(*ProtectionGroup)
	if !ok {
		return nil, fmt.Errorf("expected a ProtectionGroup but got %T", newObj)
	}

	protectiongrouplog.Info("validate update", "name", group.Name)

	if old, ok := oldObj.(*ProtectionGroup); ok {
		// SafeMode ratchets; the array refuses to unlock a locked group.
		if old.Spec.SafeMode != nil && *old.Spec.SafeMode == SafeModeRatcheted {
			if group.Spec.SafeMode == nil || *group.Spec.SafeMode != SafeModeRatcheted {
				return nil, errors.New("safeMode cannot be unlocked once ratcheted")
			}
		}
	}

	return nil, group.validateProtectionGroup()
}

// ValidateDelete implements webhook.CustomValidator so a webhook will be registered for the type
func (v *ProtectionGroupCustomValidator) ValidateDelete(ctx context.Context, obj runtime.Object) (admission.Warnings, error) {
	group, ok := obj.(*ProtectionGroup)
	if !ok {
		return nil, fmt.Errorf("expected a ProtectionGroup but got %T", obj)
	}

	protectiongrouplog.Info("validate delete", "name", group.Name)

	return nil, nil
}
