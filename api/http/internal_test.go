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
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/vmihailenco/msgpack/v5"

	app_mocks "github.com/iotile/deviceota/app/mocks"
	nats_mocks "github.com/iotile/deviceota/client/nats/mocks"
	"github.com/iotile/deviceota/model"
)

func TestInternalSubmitVersionReport(t *testing.T) {
	reportTs := time.Date(2023, 5, 10, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		Name string

		DeviceID string
		Body     interface{}

		PublishErr error

		HTTPStatus int
	}{
		{
			Name:     "ok",
			DeviceID: "device-1",
			Body: model.VersionReport{
				Kind:            model.VersionKindOS,
				Value:           2050,
				StreamerLocalID: 42,
				Timestamp:       reportTs,
			},

			HTTPStatus: 202,
		},
		{
			Name:     "ko, unknown kind",
			DeviceID: "device-1",
			Body: map[string]interface{}{
				"kind":  "firmware",
				"value": 2050,
			},

			HTTPStatus: 400,
		},
		{
			Name:     "ko, malformed payload",
			DeviceID: "device-1",
			Body:     "junk",

			HTTPStatus: 400,
		},
		{
			Name:     "ko, queue unavailable",
			DeviceID: "device-1",
			Body: model.VersionReport{
				Kind:  model.VersionKindOS,
				Value: 2050,
			},

			PublishErr: errors.New("nats: connection closed"),

			HTTPStatus: 500,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			otaApp := &app_mocks.App{}
			natsClient := &nats_mocks.Client{}
			if tc.HTTPStatus != http.StatusBadRequest {
				natsClient.On("Publish",
					model.GetReportSubject(tc.DeviceID),
					mock.MatchedBy(func(data []byte) bool {
						report := model.VersionReport{}
						if err := msgpack.Unmarshal(
							data, &report); err != nil {
							return false
						}
						return report.DeviceID == tc.DeviceID &&
							report.Kind == model.VersionKindOS &&
							report.Value == 2050
					}),
				).Return(tc.PublishErr)
			}

			router, _ := NewRouter(otaApp, natsClient)

			body, _ := json.Marshal(tc.Body)
			url := strings.Replace(APIURLInternalDeviceVersionReport,
				":deviceId", tc.DeviceID, 1)
			req, _ := http.NewRequest("POST", url, bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tc.HTTPStatus, w.Code)

			natsClient.AssertExpectations(t)
			otaApp.AssertExpectations(t)
		})
	}
}
