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

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/iotile/deviceota/client/catalog"
	"github.com/iotile/deviceota/client/notifications"
	"github.com/iotile/deviceota/client/permissions"
	"github.com/iotile/deviceota/client/registry"
	"github.com/iotile/deviceota/model"
	"github.com/iotile/deviceota/store"
	"github.com/iotile/deviceota/utils"
)

// App errors
var (
	ErrDeviceNotFound     = errors.New("device not found")
	ErrDeploymentNotFound = errors.New("deployment request not found")
	ErrScopeNotFound      = errors.New("scope not found")
	ErrForbidden          = errors.New("access denied")
)

// RetryableError wraps a fatal reconciliation failure that an
// at-least-once delivery queue should redeliver.
type RetryableError struct {
	Err error
}

func (e RetryableError) Error() string {
	return e.Err.Error()
}

func (e RetryableError) Unwrap() error {
	return e.Err
}

// IsRetryable reports whether the error asks for redelivery
func IsRetryable(err error) bool {
	var rerr RetryableError
	return errors.As(err, &rerr)
}

func retryable(err error, msg string) error {
	return RetryableError{Err: errors.Wrap(err, msg)}
}

// RequestsQuery narrows a deployment request listing: either a scope
// token ("global", a fleet ID or an org ID) or plain fleet/org ID lists
// combined with OR.
type RequestsQuery struct {
	Scope    string
	FleetIDs []string
	OrgIDs   []string
}

// DeviceDeploymentInfo is the OTA state of one device: the released
// requests that currently apply to it, the actions agents recorded for
// it, and its reported version history.
type DeviceDeploymentInfo struct {
	Device      *model.Device                  `json:"device"`
	Deployments []model.DeploymentRequest      `json:"deployments"`
	Actions     []model.DeploymentAction       `json:"actions"`
	Versions    []model.DeviceVersionAttribute `json:"versions"`
}

// App interface describes app objects
//
//nolint:lll
//go:generate ../utils/mockgen.sh
type App interface {
	HealthCheck(ctx context.Context) error
	CreateDeploymentRequest(ctx context.Context, actorID string, request *model.DeploymentRequest) error
	GetDeploymentRequest(ctx context.Context, requestID string) (*model.DeploymentRequest, error)
	DeleteDeploymentRequest(ctx context.Context, actorID, requestID string) error
	ListDeploymentRequests(ctx context.Context, actorID string, query RequestsQuery) ([]model.DeploymentRequest, error)
	AffectedDevices(ctx context.Context, requestID string) ([]model.Device, error)
	DeviceDeploymentInfo(ctx context.Context, actorID, deviceID string) (*DeviceDeploymentInfo, error)
	ReconcileVersionReport(ctx context.Context, report model.VersionReport) (model.ReconcileOutcome, error)
}

// app is an app object
type app struct {
	store         store.DataStore
	registry      registry.Client
	catalog       catalog.Client
	permissions   permissions.Client
	notifications notifications.Client
	clock         utils.Clock
}

// New initializes a new deviceota App
func New(
	ds store.DataStore,
	reg registry.Client,
	cat catalog.Client,
	perm permissions.Client,
	notif notifications.Client,
) App {
	return &app{
		store:         ds,
		registry:      reg,
		catalog:       cat,
		permissions:   perm,
		notifications: notif,
		clock:         utils.RealClock{},
	}
}

// HealthCheck performs a health check and returns an error if it fails
func (a *app) HealthCheck(ctx context.Context) error {
	return a.store.Ping(ctx)
}

// CreateDeploymentRequest validates and stores a new deployment request.
// The actor must hold the manage_ota capability on the owning org.
func (a *app) CreateDeploymentRequest(
	ctx context.Context,
	actorID string,
	request *model.DeploymentRequest,
) error {
	if request == nil {
		return errors.New("nil DeploymentRequest")
	}
	if err := request.Validate(); err != nil {
		return errors.Wrap(err, "app: cannot create invalid DeploymentRequest")
	}

	org, err := a.registry.GetOrg(ctx, request.OrgID)
	if err != nil {
		return err
	} else if org == nil {
		return ErrScopeNotFound
	}
	if request.FleetID != "" {
		fleet, err := a.registry.GetFleet(ctx, request.FleetID)
		if err != nil {
			return err
		} else if fleet == nil {
			return ErrScopeNotFound
		}
	}

	allowed, err := a.permissions.HasCapability(
		ctx, actorID, request.OrgID, permissions.CapabilityManageOTA,
	)
	if err != nil {
		return err
	} else if !allowed {
		return ErrForbidden
	}

	if request.ID == "" {
		request.ID = uuid.New().String()
	}
	request.CreatedBy = actorID
	request.CreatedTs = a.clock.Now().UTC()
	return a.store.InsertDeploymentRequest(ctx, request)
}

// GetDeploymentRequest returns a deployment request
func (a *app) GetDeploymentRequest(
	ctx context.Context,
	requestID string,
) (*model.DeploymentRequest, error) {
	request, err := a.store.GetDeploymentRequest(ctx, requestID)
	if err != nil {
		return nil, err
	} else if request == nil {
		return nil, ErrDeploymentNotFound
	}
	return request, nil
}

// DeleteDeploymentRequest deletes a deployment request after checking
// the actor's manage_ota capability on the owning org
func (a *app) DeleteDeploymentRequest(
	ctx context.Context,
	actorID, requestID string,
) error {
	request, err := a.store.GetDeploymentRequest(ctx, requestID)
	if err != nil {
		return err
	} else if request == nil {
		return ErrDeploymentNotFound
	}

	allowed, err := a.permissions.HasCapability(
		ctx, actorID, request.OrgID, permissions.CapabilityManageOTA,
	)
	if err != nil {
		return err
	} else if !allowed {
		return ErrForbidden
	}

	return a.store.DeleteDeploymentRequest(ctx, requestID)
}

// DeviceDeploymentInfo returns the OTA state of one device
func (a *app) DeviceDeploymentInfo(
	ctx context.Context,
	actorID, deviceID string,
) (*DeviceDeploymentInfo, error) {
	device, err := a.registry.GetDevice(ctx, deviceID)
	if err != nil {
		return nil, err
	} else if device == nil {
		return nil, ErrDeviceNotFound
	}

	allowed, err := a.permissions.HasCapability(
		ctx, actorID, device.OrgID, permissions.CapabilityReadOrg,
	)
	if err != nil {
		return nil, err
	} else if !allowed {
		return nil, ErrForbidden
	}

	deployments, err := a.deviceDeployments(ctx, device, true)
	if err != nil {
		return nil, err
	}
	actions, err := a.store.ListDeviceActions(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	versions, err := a.store.ListDeviceVersions(ctx, deviceID, "")
	if err != nil {
		return nil, err
	}

	return &DeviceDeploymentInfo{
		Device:      device,
		Deployments: deployments,
		Actions:     actions,
		Versions:    versions,
	}, nil
}
