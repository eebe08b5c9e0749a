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

package notifications

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCheckHealth(t *testing.T) {
	t.Parallel()

	expiredCtx, cancel := context.WithDeadline(
		context.TODO(), time.Now().Add(-1*time.Second))
	defer cancel()

	testCases := []struct {
		Name string

		Ctx          context.Context
		ResponseCode int

		Err bool
	}{
		{
			Name:         "ok",
			Ctx:          context.Background(),
			ResponseCode: http.StatusNoContent,
		},
		{
			Name: "error, expired deadline",
			Ctx:  expiredCtx,
			Err:  true,
		},
		{
			Name:         "error, service unhealthy",
			Ctx:          context.Background(),
			ResponseCode: http.StatusServiceUnavailable,
			Err:          true,
		},
	}
	for i := range testCases {
		tc := testCases[i]
		t.Run(tc.Name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(
				func(w http.ResponseWriter, r *http.Request) {
					assert.Equal(t, HealthCheckURI, r.URL.Path)
					w.WriteHeader(tc.ResponseCode)
				}))
			defer srv.Close()

			client := NewClient(srv.URL)
			err := client.CheckHealth(tc.Ctx)
			if tc.Err {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSubmitAuditNote(t *testing.T) {
	noteTs := time.Date(2023, 5, 10, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		Name string

		Note         AuditNote
		ResponseCode int

		Err string
	}{
		{
			Name: "ok",
			Note: AuditNote{
				TargetID:  "device-1",
				Note:      "Device device-1 has been updated:",
				CreatedBy: "user-1",
				Timestamp: noteTs,
			},
			ResponseCode: http.StatusCreated,
		},
		{
			Name: "error, invalid note",
			Note: AuditNote{
				CreatedBy: "user-1",
			},
			Err: "invalid AuditNote entry",
		},
		{
			Name: "error, rejected",
			Note: AuditNote{
				TargetID:  "device-1",
				Note:      "note",
				Timestamp: noteTs,
			},
			ResponseCode: http.StatusBadRequest,
			Err:          "unexpected HTTP status",
		},
	}
	for i := range testCases {
		tc := testCases[i]
		t.Run(tc.Name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(
				func(w http.ResponseWriter, r *http.Request) {
					assert.Equal(t, AuditNoteURI, r.URL.Path)
					var note AuditNote
					_ = json.NewDecoder(r.Body).Decode(&note)
					assert.Equal(t, tc.Note, note)
					w.WriteHeader(tc.ResponseCode)
				}))
			defer srv.Close()

			client := NewClient(srv.URL)
			err := client.SubmitAuditNote(context.Background(), tc.Note)
			if tc.Err != "" {
				if assert.Error(t, err) {
					assert.Contains(t, err.Error(), tc.Err)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestStaffAlert(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, StaffAlertURI, r.URL.Path)
			var alert StaffAlertMessage
			_ = json.NewDecoder(r.Body).Decode(&alert)
			assert.Equal(t, "Found unknown os tag", alert.Message)
			w.WriteHeader(http.StatusAccepted)
		}))
	defer srv.Close()

	client := NewClient(srv.URL)
	err := client.StaffAlert(context.Background(), "Found unknown os tag")
	assert.NoError(t, err)
}
