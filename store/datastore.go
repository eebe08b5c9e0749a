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

package store

import (
	"context"
	"errors"

	"github.com/iotile/deviceota/model"
)

// DataStore interface for DataStore services
//
//nolint:lll - skip line length check for interface declaration.
//go:generate ../utils/mockgen.sh
type DataStore interface {
	Ping(ctx context.Context) error

	InsertDeploymentRequest(ctx context.Context, request *model.DeploymentRequest) error
	GetDeploymentRequest(ctx context.Context, requestID string) (*model.DeploymentRequest, error)
	DeleteDeploymentRequest(ctx context.Context, requestID string) error
	// ListDeploymentRequests returns the requests matching the filter,
	// most recently released first.
	ListDeploymentRequests(ctx context.Context, filter model.DeploymentFilter) ([]model.DeploymentRequest, error)

	InsertDeploymentAction(ctx context.Context, action *model.DeploymentAction) error
	UpdateDeploymentAction(ctx context.Context, action *model.DeploymentAction) error
	// LatestUnconfirmedAction returns the device's most recently
	// attempted action with attempt_successful set and
	// device_confirmation unset, or nil if there is none.
	LatestUnconfirmedAction(ctx context.Context, deviceID string) (*model.DeploymentAction, error)
	ListDeviceActions(ctx context.Context, deviceID string) ([]model.DeploymentAction, error)
	ListRequestActions(ctx context.Context, requestID string) ([]model.DeploymentAction, error)

	InsertDeviceVersion(ctx context.Context, attr *model.DeviceVersionAttribute) error
	// LatestDeviceVersion returns the most recently created version
	// record for the (device, kind) pair, or nil if the device never
	// reported that kind.
	LatestDeviceVersion(ctx context.Context, deviceID string, kind model.VersionKind) (*model.DeviceVersionAttribute, error)
	// ListDeviceVersions returns the device's version history for a
	// kind, last reported (updated_ts) first. An empty kind lists all
	// kinds.
	ListDeviceVersions(ctx context.Context, deviceID string, kind model.VersionKind) ([]model.DeviceVersionAttribute, error)

	Close() error
}

var (
	ErrDeploymentNotFound = errors.New("store: deployment request not found")
)
