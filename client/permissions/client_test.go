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

package permissions

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasCapability(t *testing.T) {
	testCases := []struct {
		Name string

		ResponseCode int

		Allowed bool
		Err     bool
	}{
		{
			Name:         "allowed",
			ResponseCode: http.StatusNoContent,
			Allowed:      true,
		},
		{
			Name:         "allowed, 200",
			ResponseCode: http.StatusOK,
			Allowed:      true,
		},
		{
			Name:         "denied",
			ResponseCode: http.StatusForbidden,
		},
		{
			Name:         "unknown actor or org",
			ResponseCode: http.StatusNotFound,
		},
		{
			Name:         "server error",
			ResponseCode: http.StatusInternalServerError,
			Err:          true,
		},
	}
	for i := range testCases {
		tc := testCases[i]
		t.Run(tc.Name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(
				func(w http.ResponseWriter, r *http.Request) {
					assert.Equal(t,
						"/api/internal/v1/permissions/orgs/org-1/check",
						r.URL.Path)
					query := r.URL.Query()
					assert.Equal(t, "user-1", query.Get("actor"))
					assert.Equal(t, CapabilityManageOTA,
						query.Get("capability"))
					w.WriteHeader(tc.ResponseCode)
				}))
			defer srv.Close()

			client := NewClient(srv.URL, 10)
			allowed, err := client.HasCapability(context.Background(),
				"user-1", "org-1", CapabilityManageOTA)
			if tc.Err {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.Allowed, allowed)
		})
	}
}
