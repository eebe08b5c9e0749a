// Copyright 2023 Arch Systems Inc.
//
//    Licensed under the Apache License, Version 2.0 (the "License");
//    you may not use this file except in compliance with the License.
//    You may obtain a copy of the License at
//
//        http://www.apache.org/licenses/LICENSE-2.0
//
//    Unless required by applicable law or agreed to in writing, software
//    distributed under the License is distributed on an "AS IS" BASIS,
//    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//    See the License for the specific language governing permissions and
//    limitations under the License.

package app

import (
	"context"
	"fmt"
	"time"

	"github.com/mendersoftware/go-lib-micro/log"
	"github.com/pkg/errors"

	"github.com/iotile/deviceota/client/notifications"
	"github.com/iotile/deviceota/model"
)

// ReconcileVersionReport consumes one device version report and brings
// the deployment state in line with it: append a history record, rebind
// the device to the reported software definition, confirm or synthesize
// the matching deployment action, and leave an audit note.
//
// The outcome is NoOp for reports that decode to a sentinel, repeat the
// device's current version, or cannot be decoded at all; such reports
// are processed and must be acknowledged. Errors are retryable: nothing
// past the failing step has been applied and the report should be
// redelivered.
func (a *app) ReconcileVersionReport(
	ctx context.Context,
	report model.VersionReport,
) (model.ReconcileOutcome, error) {
	l := log.FromContext(ctx)

	// Step 1: decode. Malformed values will not repair themselves on
	// redelivery, so the report is dropped with an operator alert.
	version, err := model.DecodeVersionTag(report.Value)
	if err != nil {
		a.alertStaff(ctx, fmt.Sprintf(
			"Unable to decode tag and version: %s (Device %s)",
			err, report.DeviceID,
		))
		return model.ReconcileNoOp, nil
	}

	// Step 2: devices from before tags were implemented report a
	// sentinel value carrying no information
	if version.IsSentinel(report.Kind) {
		return model.ReconcileNoOp, nil
	}

	last, err := a.store.LatestDeviceVersion(ctx, report.DeviceID, report.Kind)
	if err != nil {
		return "", retryable(err, "reconcile: cannot read current version")
	}
	if last != nil && last.Tag == version.Tag &&
		last.Major == version.Major && last.Minor == version.Minor {
		// Retried telemetry re-reports the same version; nothing
		// has changed
		l.Infof("ignoring version report for device %s: no change",
			report.DeviceID)
		return model.ReconcileNoOp, nil
	}

	device, err := a.registry.GetDevice(ctx, report.DeviceID)
	if err != nil {
		return "", retryable(err, "reconcile: cannot look up device")
	} else if device == nil {
		return "", RetryableError{Err: errors.Wrapf(ErrDeviceNotFound,
			"reconcile: device %s", report.DeviceID)}
	}

	// Step 3: append the history record
	attr := &model.DeviceVersionAttribute{
		DeviceID:        device.ID,
		Kind:            report.Kind,
		VersionTag:      version,
		StreamerLocalID: report.StreamerLocalID,
		UpdatedTs:       report.Timestamp.UTC(),
	}
	if err := a.store.InsertDeviceVersion(ctx, attr); err != nil {
		a.alertStaff(ctx, fmt.Sprintf(
			"Unable to create version attribute: %s (Device %s)",
			err, device.ID,
		))
		return "", retryable(err, "reconcile: cannot append version history")
	}

	// Step 4: rebind the device to the reported definition
	definition, err := a.resolveDefinition(ctx, device.ID, report.Kind, version)
	if err != nil {
		return "", err
	}
	if err := a.registry.SetDeviceBinding(
		ctx, device.ID, report.Kind, definition.ID,
	); err != nil {
		return "", retryable(err, "reconcile: cannot rebind device")
	}

	note := fmt.Sprintf("Device %s has been updated:", device.ID)
	switch report.Kind {
	case model.VersionKindOS:
		note += fmt.Sprintf("\n- New OS definition: %s %s",
			definition.Name, definition.Version)
	case model.VersionKindApp:
		note += fmt.Sprintf("\n- New app definition: %s %s",
			definition.Name, definition.Version)
	}

	// Step 5: confirm the outstanding deployment action, or synthesize
	// one when the device updated without the agent recording it
	request, note, err := a.resolveDeploymentAction(ctx, device, note)
	if err != nil {
		return "", err
	}

	// Step 6: the audit note never blocks the transition
	if err := a.submitAuditNote(ctx, device, request, note,
		report.Timestamp); err != nil {
		l.Warnf("failed to submit audit note for device %s: %s",
			device.ID, err.Error())
	}

	return model.ReconcileCommitted, nil
}

// resolveDefinition finds the catalog definition for the reported
// (tag, major, minor). A tag that is known but lacks the exact version
// falls back to the newest definition for the tag alone with an
// operator alert; an entirely unknown tag is a retryable failure since
// the catalog may simply not have it yet.
func (a *app) resolveDefinition(
	ctx context.Context,
	deviceID string,
	kind model.VersionKind,
	version model.VersionTag,
) (*model.SoftwareDefinition, error) {
	definition, err := a.catalog.FindDefinition(
		ctx, kind, version.Tag, version.Major, version.Minor,
	)
	if err != nil {
		return nil, retryable(err, "reconcile: catalog lookup failed")
	}
	if definition != nil {
		return definition, nil
	}

	definition, err = a.catalog.LatestForTag(ctx, kind, version.Tag)
	if err != nil {
		return nil, retryable(err, "reconcile: catalog lookup failed")
	}
	if definition != nil {
		a.alertStaff(ctx, fmt.Sprintf(
			"Found unknown %s tag (with exact version): %s, Device: %s "+
				"(Using last version found)", kind, version, deviceID,
		))
		return definition, nil
	}

	a.alertStaff(ctx, fmt.Sprintf(
		"Found unknown %s tag (no definition found): %s, Device: %s",
		kind, version, deviceID,
	))
	return nil, RetryableError{Err: errors.Errorf(
		"reconcile: no definition for %s tag %s", kind, version,
	)}
}

// resolveDeploymentAction completes the most recent successful,
// unconfirmed action if there is one; otherwise, if a released request
// applies to the device, records an auto-created action for it. A device
// updated through channels the cloud never requested has neither, which
// is a normal path.
func (a *app) resolveDeploymentAction(
	ctx context.Context,
	device *model.Device,
	note string,
) (*model.DeploymentRequest, string, error) {
	l := log.FromContext(ctx)

	action, err := a.store.LatestUnconfirmedAction(ctx, device.ID)
	if err != nil {
		return nil, note, retryable(err,
			"reconcile: cannot look up deployment actions")
	}

	var request *model.DeploymentRequest
	if action != nil {
		action.DeviceConfirmation = true
		note += fmt.Sprintf(
			"\n- Deployment Action %s has been set to complete", action.ID)
		if action.Log != "" {
			action.Log = action.Log + "\n" + note
		} else {
			action.Log = note
		}
		if err := a.store.UpdateDeploymentAction(ctx, action); err != nil {
			return nil, note, retryable(err,
				"reconcile: cannot complete deployment action")
		}

		request, err = a.store.GetDeploymentRequest(ctx, action.DeploymentID)
		if err != nil {
			return nil, note, retryable(err,
				"reconcile: cannot load deployment request")
		}
	}

	if request == nil {
		// The agent may have failed to record its action; check for a
		// released request that applies to the device anyway
		requests, err := a.deviceDeployments(ctx, device, true)
		if err != nil {
			return nil, note, retryable(err,
				"reconcile: cannot resolve applicable deployments")
		}
		if len(requests) > 0 {
			request = &requests[0]
		}
	}

	if request != nil && action == nil {
		l.Warnf("deployment %s had no associated action, "+
			"yet device %s was updated", request.ID, device.ID)
		note += "\n- Deployment Action auto created by cloud"
		autoAction := &model.DeploymentAction{
			DeploymentID:       request.ID,
			DeviceID:           device.ID,
			AttemptSuccessful:  true,
			DeviceConfirmation: true,
			Log:                note,
		}
		if err := a.store.InsertDeploymentAction(ctx, autoAction); err != nil {
			// The update itself already happened; losing the
			// synthetic action is not worth a redelivery
			a.alertStaff(ctx, fmt.Sprintf(
				"Unable to create DeploymentAction: %s (Device %s)",
				err, device.ID,
			))
		}
	}

	return request, note, nil
}

// submitAuditNote attributes the rebinding to the request's creator,
// falling back to the device's claimant and then the org's creator.
func (a *app) submitAuditNote(
	ctx context.Context,
	device *model.Device,
	request *model.DeploymentRequest,
	note string,
	timestamp time.Time,
) error {
	var createdBy string
	if request != nil {
		createdBy = request.CreatedBy
	}
	if createdBy == "" {
		createdBy = device.ClaimedBy
	}
	if createdBy == "" {
		org, err := a.registry.GetOrg(ctx, device.OrgID)
		if err != nil {
			return err
		}
		if org != nil {
			createdBy = org.CreatedBy
		}
	}

	return a.notifications.SubmitAuditNote(ctx, notifications.AuditNote{
		TargetID:  device.ID,
		Note:      note,
		CreatedBy: createdBy,
		Timestamp: timestamp.UTC(),
	})
}

func (a *app) alertStaff(ctx context.Context, message string) {
	l := log.FromContext(ctx)
	l.Error(message)
	if err := a.notifications.StaffAlert(ctx, message); err != nil {
		l.Warnf("failed to deliver staff alert: %s", err.Error())
	}
}
