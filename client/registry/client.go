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

package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/iotile/deviceota/model"
)

const (
	uriDevice        = "/api/internal/v1/registry/devices/:id"
	uriDeviceFleets  = "/api/internal/v1/registry/devices/:id/fleets"
	uriDeviceBinding = "/api/internal/v1/registry/devices/:id/binding"
	uriFleet         = "/api/internal/v1/registry/fleets/:id"
	uriFleetDevices  = "/api/internal/v1/registry/fleets/:id/devices"
	uriOrg           = "/api/internal/v1/registry/orgs/:id"
	uriOrgFleets     = "/api/internal/v1/registry/orgs/:id/fleets"
	uriOrgDevices    = "/api/internal/v1/registry/orgs/:id/devices"
	uriVendorDevices = "/api/internal/v1/registry/orgs/:id/vendor-devices"
	uriVendorOrgs    = "/api/internal/v1/registry/orgs?is_vendor=true"
)

// Client is the device registry client. Lookups return nil without an
// error when the identifier is unknown, so callers can distinguish
// not-found from transport failures.
//
//go:generate ../../utils/mockgen.sh
type Client interface {
	GetDevice(ctx context.Context, deviceID string) (*model.Device, error)
	GetFleet(ctx context.Context, fleetID string) (*model.Fleet, error)
	GetOrg(ctx context.Context, orgID string) (*model.Org, error)
	ListDeviceFleets(ctx context.Context, deviceID string) ([]model.Fleet, error)
	ListOrgFleets(ctx context.Context, orgID string) ([]model.Fleet, error)
	ListFleetDevices(ctx context.Context, fleetID string) ([]model.Device, error)
	ListOrgDevices(ctx context.Context, orgID string) ([]model.Device, error)
	// ListVendorDevices returns all active, claimed devices whose bound
	// OS definition was published by the vendor org.
	ListVendorDevices(ctx context.Context, vendorOrgID string) ([]model.Device, error)
	ListVendorOrgs(ctx context.Context) ([]model.Org, error)
	// SetDeviceBinding rebinds the device's OS or application
	// definition reference.
	SetDeviceBinding(ctx context.Context, deviceID string, kind model.VersionKind, definitionID string) error
}

type client struct {
	client  *http.Client
	uriBase string
}

// NewClient returns a new device registry client
func NewClient(uriBase string, timeout int) *client {
	return &client{
		uriBase: strings.TrimSuffix(uriBase, "/"),
		client:  &http.Client{Timeout: time.Duration(timeout) * time.Second},
	}
}

func (c *client) GetDevice(
	ctx context.Context,
	deviceID string,
) (*model.Device, error) {
	device := &model.Device{}
	found, err := c.getJSON(ctx, uriDevice, deviceID, device)
	if err != nil || !found {
		return nil, err
	}
	return device, nil
}

func (c *client) GetFleet(
	ctx context.Context,
	fleetID string,
) (*model.Fleet, error) {
	fleet := &model.Fleet{}
	found, err := c.getJSON(ctx, uriFleet, fleetID, fleet)
	if err != nil || !found {
		return nil, err
	}
	return fleet, nil
}

func (c *client) GetOrg(
	ctx context.Context,
	orgID string,
) (*model.Org, error) {
	org := &model.Org{}
	found, err := c.getJSON(ctx, uriOrg, orgID, org)
	if err != nil || !found {
		return nil, err
	}
	return org, nil
}

func (c *client) ListDeviceFleets(
	ctx context.Context,
	deviceID string,
) ([]model.Fleet, error) {
	fleets := []model.Fleet{}
	_, err := c.getJSON(ctx, uriDeviceFleets, deviceID, &fleets)
	return fleets, err
}

func (c *client) ListOrgFleets(
	ctx context.Context,
	orgID string,
) ([]model.Fleet, error) {
	fleets := []model.Fleet{}
	_, err := c.getJSON(ctx, uriOrgFleets, orgID, &fleets)
	return fleets, err
}

func (c *client) ListFleetDevices(
	ctx context.Context,
	fleetID string,
) ([]model.Device, error) {
	devices := []model.Device{}
	_, err := c.getJSON(ctx, uriFleetDevices, fleetID, &devices)
	return devices, err
}

func (c *client) ListOrgDevices(
	ctx context.Context,
	orgID string,
) ([]model.Device, error) {
	devices := []model.Device{}
	_, err := c.getJSON(ctx, uriOrgDevices, orgID, &devices)
	return devices, err
}

func (c *client) ListVendorDevices(
	ctx context.Context,
	vendorOrgID string,
) ([]model.Device, error) {
	devices := []model.Device{}
	_, err := c.getJSON(ctx, uriVendorDevices, vendorOrgID, &devices)
	return devices, err
}

func (c *client) ListVendorOrgs(ctx context.Context) ([]model.Org, error) {
	orgs := []model.Org{}
	_, err := c.getJSON(ctx, uriVendorOrgs, "", &orgs)
	return orgs, err
}

func (c *client) SetDeviceBinding(
	ctx context.Context,
	deviceID string,
	kind model.VersionKind,
	definitionID string,
) error {
	repl := strings.NewReplacer(":id", deviceID)
	url := c.uriBase + repl.Replace(uriDeviceBinding)

	payload, _ := json.Marshal(map[string]string{
		"kind":       string(kind),
		"definition": definitionID,
	})
	req, err := http.NewRequestWithContext(
		ctx, "PUT", url, bytes.NewReader(payload),
	)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	rsp, err := c.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "set device binding request failed")
	}
	defer rsp.Body.Close()

	if rsp.StatusCode >= 300 {
		return errors.Errorf(
			"set device binding request failed with unexpected status %v",
			rsp.StatusCode)
	}
	return nil
}

// getJSON performs a GET and decodes the response body. It returns false
// without an error on 404.
func (c *client) getJSON(
	ctx context.Context,
	uri string,
	id string,
	out interface{},
) (bool, error) {
	repl := strings.NewReplacer(":id", id)
	url := c.uriBase + repl.Replace(uri)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return false, err
	}

	rsp, err := c.client.Do(req)
	if err != nil {
		return false, errors.Wrap(err, "device registry request failed")
	}
	defer rsp.Body.Close()

	if rsp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if rsp.StatusCode != http.StatusOK {
		return false, errors.Errorf(
			"device registry request failed with unexpected status %v",
			rsp.StatusCode)
	}
	if err := json.NewDecoder(rsp.Body).Decode(out); err != nil {
		return false, errors.Wrap(err, "error parsing device registry response")
	}
	return true, nil
}
