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
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	cat_mocks "github.com/iotile/deviceota/client/catalog/mocks"
	notif_mocks "github.com/iotile/deviceota/client/notifications/mocks"
	perm_mocks "github.com/iotile/deviceota/client/permissions/mocks"
	reg_mocks "github.com/iotile/deviceota/client/registry/mocks"
	"github.com/iotile/deviceota/client/permissions"
	"github.com/iotile/deviceota/model"
	store_mocks "github.com/iotile/deviceota/store/mocks"
	"github.com/iotile/deviceota/utils"
)

func anyCtx() interface{} {
	return mock.MatchedBy(func(ctx context.Context) bool {
		return true
	})
}

func newTestApp(
	store *store_mocks.DataStore,
	reg *reg_mocks.Client,
	cat *cat_mocks.Client,
	perm *perm_mocks.Client,
	notif *notif_mocks.Client,
) *app {
	return &app{
		store:         store,
		registry:      reg,
		catalog:       cat,
		permissions:   perm,
		notifications: notif,
		clock: utils.MockClock{
			CurrentTime: time.Date(2023, 5, 10, 12, 0, 0, 0, time.UTC),
		},
	}
}

func TestHealthCheck(t *testing.T) {
	err := errors.New("error")

	store := &store_mocks.DataStore{}
	store.On("Ping", anyCtx()).Return(err)

	app := New(store, nil, nil, nil, nil)

	ctx := context.Background()
	res := app.HealthCheck(ctx)
	assert.Equal(t, err, res)

	store.AssertExpectations(t)
}

func TestCreateDeploymentRequest(t *testing.T) {
	const actorID = "user-1"

	testCases := []struct {
		Name string

		Request *model.DeploymentRequest
		Org     *model.Org
		Fleet   *model.Fleet
		Allowed bool

		Err string
	}{
		{
			Name: "ok, org scoped",
			Request: &model.DeploymentRequest{
				ScriptID:          "script-1",
				OrgID:             "org-1",
				SelectionCriteria: []string{"os_tag:eq:2050"},
			},
			Org:     &model.Org{ID: "org-1"},
			Allowed: true,
		},
		{
			Name: "ok, fleet scoped",
			Request: &model.DeploymentRequest{
				ScriptID: "script-1",
				OrgID:    "org-1",
				FleetID:  "fleet-1",
			},
			Org:     &model.Org{ID: "org-1"},
			Fleet:   &model.Fleet{ID: "fleet-1", OrgID: "org-1"},
			Allowed: true,
		},
		{
			Name: "error, invalid request",
			Request: &model.DeploymentRequest{
				OrgID: "org-1",
			},
			Err: "cannot create invalid DeploymentRequest",
		},
		{
			Name: "error, unknown org",
			Request: &model.DeploymentRequest{
				ScriptID: "script-1",
				OrgID:    "org-x",
			},
			Err: ErrScopeNotFound.Error(),
		},
		{
			Name: "error, unknown fleet",
			Request: &model.DeploymentRequest{
				ScriptID: "script-1",
				OrgID:    "org-1",
				FleetID:  "fleet-x",
			},
			Org: &model.Org{ID: "org-1"},
			Err: ErrScopeNotFound.Error(),
		},
		{
			Name: "error, no manage capability",
			Request: &model.DeploymentRequest{
				ScriptID: "script-1",
				OrgID:    "org-1",
			},
			Org: &model.Org{ID: "org-1"},
			Err: ErrForbidden.Error(),
		},
	}
	for i := range testCases {
		tc := testCases[i]
		t.Run(tc.Name, func(t *testing.T) {
			store := &store_mocks.DataStore{}
			reg := &reg_mocks.Client{}
			perm := &perm_mocks.Client{}

			if tc.Request.Validate() == nil {
				reg.On("GetOrg", anyCtx(), tc.Request.OrgID).
					Return(tc.Org, nil)
				if tc.Org != nil && tc.Request.FleetID != "" {
					reg.On("GetFleet", anyCtx(), tc.Request.FleetID).
						Return(tc.Fleet, nil)
				}
				if tc.Org != nil &&
					(tc.Request.FleetID == "" || tc.Fleet != nil) {
					perm.On("HasCapability", anyCtx(), actorID,
						tc.Request.OrgID,
						permissions.CapabilityManageOTA,
					).Return(tc.Allowed, nil)
				}
			}
			if tc.Err == "" {
				store.On("InsertDeploymentRequest", anyCtx(),
					tc.Request).Return(nil)
			}

			app := newTestApp(store, reg, nil, perm, nil)

			ctx := context.Background()
			err := app.CreateDeploymentRequest(ctx, actorID, tc.Request)
			if tc.Err != "" {
				if assert.Error(t, err) {
					assert.Contains(t, err.Error(), tc.Err)
				}
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, tc.Request.ID)
				assert.Equal(t, actorID, tc.Request.CreatedBy)
				assert.False(t, tc.Request.CreatedTs.IsZero())
			}

			store.AssertExpectations(t)
			reg.AssertExpectations(t)
			perm.AssertExpectations(t)
		})
	}
}

func TestGetDeploymentRequest(t *testing.T) {
	const requestID = "req-1"

	store := &store_mocks.DataStore{}
	store.On("GetDeploymentRequest", anyCtx(), requestID).
		Return(&model.DeploymentRequest{ID: requestID}, nil)
	store.On("GetDeploymentRequest", anyCtx(), "req-x").
		Return(nil, nil)

	app := New(store, nil, nil, nil, nil)

	ctx := context.Background()
	request, err := app.GetDeploymentRequest(ctx, requestID)
	assert.NoError(t, err)
	assert.Equal(t, requestID, request.ID)

	_, err = app.GetDeploymentRequest(ctx, "req-x")
	assert.Equal(t, ErrDeploymentNotFound, err)

	store.AssertExpectations(t)
}

func TestDeleteDeploymentRequest(t *testing.T) {
	const actorID = "user-1"
	const requestID = "req-1"

	testCases := []struct {
		Name string

		Request *model.DeploymentRequest
		Allowed bool

		Err error
	}{
		{
			Name: "ok",
			Request: &model.DeploymentRequest{
				ID:    requestID,
				OrgID: "org-1",
			},
			Allowed: true,
		},
		{
			Name: "error, not found",
			Err:  ErrDeploymentNotFound,
		},
		{
			Name: "error, forbidden",
			Request: &model.DeploymentRequest{
				ID:    requestID,
				OrgID: "org-1",
			},
			Err: ErrForbidden,
		},
	}
	for i := range testCases {
		tc := testCases[i]
		t.Run(tc.Name, func(t *testing.T) {
			store := &store_mocks.DataStore{}
			perm := &perm_mocks.Client{}

			store.On("GetDeploymentRequest", anyCtx(), requestID).
				Return(tc.Request, nil)
			if tc.Request != nil {
				perm.On("HasCapability", anyCtx(), actorID,
					tc.Request.OrgID, permissions.CapabilityManageOTA,
				).Return(tc.Allowed, nil)
			}
			if tc.Err == nil {
				store.On("DeleteDeploymentRequest", anyCtx(), requestID).
					Return(nil)
			}

			app := New(store, nil, nil, perm, nil)

			ctx := context.Background()
			err := app.DeleteDeploymentRequest(ctx, actorID, requestID)
			assert.Equal(t, tc.Err, err)

			store.AssertExpectations(t)
			perm.AssertExpectations(t)
		})
	}
}

func TestDeviceDeploymentInfo(t *testing.T) {
	const actorID = "user-1"
	const deviceID = "device-1"

	device := &model.Device{ID: deviceID, OrgID: "org-1"}
	released := time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC)
	deployments := []model.DeploymentRequest{
		{ID: "req-1", OrgID: "org-1", ReleasedOn: &released},
	}
	actions := []model.DeploymentAction{
		{ID: "act-1", DeploymentID: "req-1", DeviceID: deviceID},
	}
	versions := []model.DeviceVersionAttribute{
		{DeviceID: deviceID, Kind: model.VersionKindOS,
			VersionTag: model.VersionTag{Tag: 2050, Major: 2, Minor: 11}},
	}

	store := &store_mocks.DataStore{}
	reg := &reg_mocks.Client{}
	perm := &perm_mocks.Client{}

	reg.On("GetDevice", anyCtx(), deviceID).Return(device, nil)
	perm.On("HasCapability", anyCtx(), actorID, "org-1",
		permissions.CapabilityReadOrg).Return(true, nil)
	reg.On("ListDeviceFleets", anyCtx(), deviceID).
		Return([]model.Fleet{}, nil)
	reg.On("ListVendorOrgs", anyCtx()).Return([]model.Org{}, nil)
	store.On("ListDeploymentRequests", anyCtx(),
		mock.AnythingOfType("model.DeploymentFilter")).
		Return(deployments, nil)
	store.On("ListDeviceActions", anyCtx(), deviceID).
		Return(actions, nil)
	store.On("ListDeviceVersions", anyCtx(), deviceID,
		model.VersionKind("")).Return(versions, nil)

	app := New(store, reg, nil, perm, nil)

	ctx := context.Background()
	info, err := app.DeviceDeploymentInfo(ctx, actorID, deviceID)
	assert.NoError(t, err)
	assert.Equal(t, device, info.Device)
	assert.Equal(t, deployments, info.Deployments)
	assert.Equal(t, actions, info.Actions)
	assert.Equal(t, versions, info.Versions)

	store.AssertExpectations(t)
	reg.AssertExpectations(t)
	perm.AssertExpectations(t)
}

func TestDeviceDeploymentInfoNotFound(t *testing.T) {
	reg := &reg_mocks.Client{}
	reg.On("GetDevice", anyCtx(), "device-x").Return(nil, nil)

	app := New(nil, reg, nil, nil, nil)

	ctx := context.Background()
	_, err := app.DeviceDeploymentInfo(ctx, "user-1", "device-x")
	assert.Equal(t, ErrDeviceNotFound, err)

	reg.AssertExpectations(t)
}

func TestIsRetryable(t *testing.T) {
	err := retryable(errors.New("boom"), "reconcile")
	assert.True(t, IsRetryable(err))
	assert.False(t, IsRetryable(errors.New("boom")))
	assert.Contains(t, err.Error(), "reconcile")
}
