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

package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/iotile/deviceota/app"
	app_mocks "github.com/iotile/deviceota/app/mocks"
	"github.com/iotile/deviceota/model"
)

const headerAuthorization = "Authorization"

const JWTUser = "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9." +
	"eyJzdWIiOiIxMjM0NTY3ODkwIiwibWVuZGVyLnVzZXIiOnRydWUsIm1lbmRlci5wbGFuIj" +
	"oiZW50ZXJwcmlzZSIsIm1lbmRlci50ZW5hbnQiOiJhYmNkIn0." +
	"sn10_eTex-otOTJ7WCp_7NUwiz9lBT0KiPOdZF9Jt4w"
const JWTUserID = "1234567890"

func anyContext() interface{} {
	return mock.MatchedBy(func(_ context.Context) bool {
		return true
	})
}

func TestManagementGetDeployment(t *testing.T) {
	testCases := []struct {
		Name          string
		RequestID     string
		Authorization string

		GetRequest *model.DeploymentRequest
		GetError   error

		HTTPStatus int
	}{
		{
			Name:          "ok",
			RequestID:     "req-1",
			Authorization: "Bearer " + JWTUser,

			GetRequest: &model.DeploymentRequest{
				ID:       "req-1",
				ScriptID: "script-1",
				OrgID:    "org-1",
			},

			HTTPStatus: 200,
		},
		{
			Name:      "ko, missing auth",
			RequestID: "req-1",

			HTTPStatus: 401,
		},
		{
			Name:          "ko, not found",
			RequestID:     "req-x",
			Authorization: "Bearer " + JWTUser,

			GetError: app.ErrDeploymentNotFound,

			HTTPStatus: 404,
		},
		{
			Name:          "ko, other error",
			RequestID:     "req-1",
			Authorization: "Bearer " + JWTUser,

			GetError: errors.New("error"),

			HTTPStatus: 400,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			otaApp := &app_mocks.App{}
			if tc.Authorization != "" {
				otaApp.On("GetDeploymentRequest", anyContext(),
					tc.RequestID,
				).Return(tc.GetRequest, tc.GetError)
			}

			router, _ := NewRouter(otaApp, nil)

			url := strings.Replace(APIURLManagementDeploymentsID,
				":requestId", tc.RequestID, 1)
			req, err := http.NewRequest("GET", url, nil)
			if !assert.NoError(t, err) {
				t.FailNow()
			}
			if tc.Authorization != "" {
				req.Header.Set(headerAuthorization, tc.Authorization)
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tc.HTTPStatus, w.Code)

			if tc.HTTPStatus == http.StatusOK {
				var response *model.DeploymentRequest
				body := w.Body.Bytes()
				_ = json.Unmarshal(body, &response)
				assert.Equal(t, tc.GetRequest, response)
			}

			otaApp.AssertExpectations(t)
		})
	}
}

func TestManagementListDeployments(t *testing.T) {
	testCases := []struct {
		Name string
		URL  string

		Query     app.RequestsQuery
		Requests  []model.DeploymentRequest
		ListError error

		HTTPStatus int
	}{
		{
			Name: "ok, scope token",
			URL:  APIURLManagementDeployments + "?scope=fleet-1",

			Query: app.RequestsQuery{Scope: "fleet-1"},
			Requests: []model.DeploymentRequest{
				{ID: "req-1", ScriptID: "script-1", OrgID: "org-1"},
			},

			HTTPStatus: 200,
		},
		{
			Name: "ok, plain filters",
			URL: APIURLManagementDeployments +
				"?fleet=fleet-1&fleet=fleet-2&org=org-1",

			Query: app.RequestsQuery{
				FleetIDs: []string{"fleet-1", "fleet-2"},
				OrgIDs:   []string{"org-1"},
			},
			Requests: []model.DeploymentRequest{},

			HTTPStatus: 200,
		},
		{
			Name: "ok, comma-separated plain filters",
			URL: APIURLManagementDeployments +
				"?fleet=fleet-1,fleet-2&org=org-1,org-2",

			Query: app.RequestsQuery{
				FleetIDs: []string{"fleet-1", "fleet-2"},
				OrgIDs:   []string{"org-1", "org-2"},
			},
			Requests: []model.DeploymentRequest{},

			HTTPStatus: 200,
		},
		{
			Name: "ko, unknown scope",
			URL:  APIURLManagementDeployments + "?scope=what",

			Query:     app.RequestsQuery{Scope: "what"},
			ListError: app.ErrScopeNotFound,

			HTTPStatus: 404,
		},
		{
			Name: "ko, forbidden",
			URL:  APIURLManagementDeployments + "?scope=fleet-1",

			Query:     app.RequestsQuery{Scope: "fleet-1"},
			ListError: app.ErrForbidden,

			HTTPStatus: 403,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			otaApp := &app_mocks.App{}
			otaApp.On("ListDeploymentRequests", anyContext(),
				JWTUserID, tc.Query,
			).Return(tc.Requests, tc.ListError)

			router, _ := NewRouter(otaApp, nil)

			req, _ := http.NewRequest("GET", tc.URL, nil)
			req.Header.Set(headerAuthorization, "Bearer "+JWTUser)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tc.HTTPStatus, w.Code)

			if tc.HTTPStatus == http.StatusOK {
				var response []model.DeploymentRequest
				_ = json.Unmarshal(w.Body.Bytes(), &response)
				assert.Equal(t, tc.Requests, response)
			}

			otaApp.AssertExpectations(t)
		})
	}
}

func TestManagementCreateDeployment(t *testing.T) {
	testCases := []struct {
		Name string

		Body        interface{}
		CreateError error

		HTTPStatus int
	}{
		{
			Name: "ok",
			Body: model.DeploymentRequest{
				ScriptID:          "script-1",
				OrgID:             "org-1",
				SelectionCriteria: []string{"os_tag:eq:2050"},
			},

			HTTPStatus: 201,
		},
		{
			Name: "ko, validation error",
			Body: model.DeploymentRequest{
				OrgID: "org-1",
			},
			CreateError: errors.Wrap(
				model.DeploymentRequest{OrgID: "org-1"}.Validate(),
				"app: cannot create invalid DeploymentRequest",
			),

			HTTPStatus: 400,
		},
		{
			Name: "ko, unknown org",
			Body: model.DeploymentRequest{
				ScriptID: "script-1",
				OrgID:    "org-x",
			},
			CreateError: app.ErrScopeNotFound,

			HTTPStatus: 404,
		},
		{
			Name: "ko, forbidden",
			Body: model.DeploymentRequest{
				ScriptID: "script-1",
				OrgID:    "org-1",
			},
			CreateError: app.ErrForbidden,

			HTTPStatus: 403,
		},
		{
			Name: "ko, malformed payload",
			Body: "not a deployment request",

			HTTPStatus: 400,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			otaApp := &app_mocks.App{}
			if _, ok := tc.Body.(model.DeploymentRequest); ok {
				otaApp.On("CreateDeploymentRequest", anyContext(),
					JWTUserID,
					mock.AnythingOfType("*model.DeploymentRequest"),
				).Return(tc.CreateError)
			}

			router, _ := NewRouter(otaApp, nil)

			body, _ := json.Marshal(tc.Body)
			req, _ := http.NewRequest("POST",
				APIURLManagementDeployments, bytes.NewReader(body))
			req.Header.Set(headerAuthorization, "Bearer "+JWTUser)
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tc.HTTPStatus, w.Code)

			if tc.HTTPStatus == http.StatusCreated {
				assert.Contains(t, w.Header().Get("Location"),
					APIURLManagementDeployments)
			}

			otaApp.AssertExpectations(t)
		})
	}
}

func TestManagementDeleteDeployment(t *testing.T) {
	testCases := []struct {
		Name string

		DeleteError error

		HTTPStatus int
	}{
		{
			Name:       "ok",
			HTTPStatus: 204,
		},
		{
			Name:        "ko, not found",
			DeleteError: app.ErrDeploymentNotFound,
			HTTPStatus:  404,
		},
		{
			Name:        "ko, forbidden",
			DeleteError: app.ErrForbidden,
			HTTPStatus:  403,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			otaApp := &app_mocks.App{}
			otaApp.On("DeleteDeploymentRequest", anyContext(),
				JWTUserID, "req-1",
			).Return(tc.DeleteError)

			router, _ := NewRouter(otaApp, nil)

			url := strings.Replace(APIURLManagementDeploymentsID,
				":requestId", "req-1", 1)
			req, _ := http.NewRequest("DELETE", url, nil)
			req.Header.Set(headerAuthorization, "Bearer "+JWTUser)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tc.HTTPStatus, w.Code)

			otaApp.AssertExpectations(t)
		})
	}
}

func TestManagementDeploymentDevices(t *testing.T) {
	testCases := []struct {
		Name string

		Devices      []model.Device
		DevicesError error

		HTTPStatus int
	}{
		{
			Name: "ok",
			Devices: []model.Device{
				{ID: "device-1", OrgID: "org-1"},
				{ID: "device-2", OrgID: "org-1"},
			},
			HTTPStatus: 200,
		},
		{
			Name:         "ko, not found",
			DevicesError: app.ErrDeploymentNotFound,
			HTTPStatus:   404,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			otaApp := &app_mocks.App{}
			otaApp.On("AffectedDevices", anyContext(), "req-1").
				Return(tc.Devices, tc.DevicesError)

			router, _ := NewRouter(otaApp, nil)

			url := strings.Replace(APIURLManagementDeploymentsIDDevices,
				":requestId", "req-1", 1)
			req, _ := http.NewRequest("GET", url, nil)
			req.Header.Set(headerAuthorization, "Bearer "+JWTUser)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tc.HTTPStatus, w.Code)

			if tc.HTTPStatus == http.StatusOK {
				var response []model.Device
				_ = json.Unmarshal(w.Body.Bytes(), &response)
				assert.Equal(t, tc.Devices, response)
			}

			otaApp.AssertExpectations(t)
		})
	}
}

func TestManagementGetDeviceInfo(t *testing.T) {
	testCases := []struct {
		Name string

		Info      *app.DeviceDeploymentInfo
		InfoError error

		HTTPStatus int
	}{
		{
			Name: "ok",
			Info: &app.DeviceDeploymentInfo{
				Device: &model.Device{ID: "device-1", OrgID: "org-1"},
				Deployments: []model.DeploymentRequest{
					{ID: "req-1", ScriptID: "script-1", OrgID: "org-1"},
				},
				Actions:  []model.DeploymentAction{},
				Versions: []model.DeviceVersionAttribute{},
			},
			HTTPStatus: 200,
		},
		{
			Name:       "ko, not found",
			InfoError:  app.ErrDeviceNotFound,
			HTTPStatus: 404,
		},
		{
			Name:       "ko, forbidden",
			InfoError:  app.ErrForbidden,
			HTTPStatus: 403,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			otaApp := &app_mocks.App{}
			otaApp.On("DeviceDeploymentInfo", anyContext(),
				JWTUserID, "device-1",
			).Return(tc.Info, tc.InfoError)

			router, _ := NewRouter(otaApp, nil)

			url := strings.Replace(APIURLManagementDevice,
				":deviceId", "device-1", 1)
			req, _ := http.NewRequest("GET", url, nil)
			req.Header.Set(headerAuthorization, "Bearer "+JWTUser)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tc.HTTPStatus, w.Code)

			otaApp.AssertExpectations(t)
		})
	}
}
