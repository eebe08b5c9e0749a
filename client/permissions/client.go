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
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const (
	uriCheck = "/api/internal/v1/permissions/orgs/:id/check"
)

// Capabilities checked against the permissions service
const (
	// CapabilityManageOTA gates creating and deleting deployment
	// requests for an organization.
	CapabilityManageOTA = "manage_ota"
	// CapabilityReadOrg gates read access to an organization and the
	// fleets under it.
	CapabilityReadOrg = "read_org"
)

// Client is the permissions service client.
//
//go:generate ../../utils/mockgen.sh
type Client interface {
	// HasCapability reports whether the actor holds the capability on
	// the organization. Unknown actors and orgs simply report false.
	HasCapability(ctx context.Context, actorID, orgID, capability string) (bool, error)
}

type client struct {
	client  *http.Client
	uriBase string
}

// NewClient returns a new permissions client
func NewClient(uriBase string, timeout int) *client {
	return &client{
		uriBase: uriBase,
		client:  &http.Client{Timeout: time.Duration(timeout) * time.Second},
	}
}

func (c *client) HasCapability(
	ctx context.Context,
	actorID, orgID, capability string,
) (bool, error) {
	repl := strings.NewReplacer(":id", orgID)
	query := url.Values{}
	query.Set("actor", actorID)
	query.Set("capability", capability)
	uri := c.uriBase + repl.Replace(uriCheck) + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, "GET", uri, nil)
	if err != nil {
		return false, err
	}

	rsp, err := c.client.Do(req)
	if err != nil {
		return false, errors.Wrap(err, "permissions request failed")
	}
	defer rsp.Body.Close()

	switch rsp.StatusCode {
	case http.StatusNoContent, http.StatusOK:
		return true, nil
	case http.StatusForbidden, http.StatusNotFound:
		return false, nil
	}
	return false, errors.Errorf(
		"permissions request failed with unexpected status %v",
		rsp.StatusCode)
}
