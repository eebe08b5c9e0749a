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

	"github.com/iotile/deviceota/client/permissions"
	"github.com/iotile/deviceota/model"
)

// baseDeviceSet resolves a request's pre-criteria candidate devices:
// the fleet's members for a fleet-scoped request, every active claimed
// device running the vendor's OS for a fleet-less vendor request, or all
// of the org's devices otherwise.
func (a *app) baseDeviceSet(
	ctx context.Context,
	request *model.DeploymentRequest,
) ([]model.Device, error) {
	if request.FleetID != "" {
		return a.registry.ListFleetDevices(ctx, request.FleetID)
	}

	org, err := a.registry.GetOrg(ctx, request.OrgID)
	if err != nil {
		return nil, err
	} else if org == nil {
		return nil, ErrScopeNotFound
	}

	if org.IsVendor {
		return a.registry.ListVendorDevices(ctx, org.ID)
	}
	return a.registry.ListOrgDevices(ctx, org.ID)
}

// deviceDeployments returns the deployment requests that apply to a
// device, most recently released first: requests targeting any fleet the
// device belongs to, fleet-less requests of the owning org, and all
// vendor-global requests.
func (a *app) deviceDeployments(
	ctx context.Context,
	device *model.Device,
	releasedOnly bool,
) ([]model.DeploymentRequest, error) {
	fleets, err := a.registry.ListDeviceFleets(ctx, device.ID)
	if err != nil {
		return nil, err
	}
	vendors, err := a.registry.ListVendorOrgs(ctx)
	if err != nil {
		return nil, err
	}

	filter := model.DeploymentFilter{ReleasedOnly: releasedOnly}
	for _, fleet := range fleets {
		filter.FleetIDs = append(filter.FleetIDs, fleet.ID)
	}
	filter.FleetlessOrgIDs = append(filter.FleetlessOrgIDs, device.OrgID)
	for _, vendor := range vendors {
		if vendor.ID != device.OrgID {
			filter.FleetlessOrgIDs = append(filter.FleetlessOrgIDs, vendor.ID)
		}
	}

	return a.store.ListDeploymentRequests(ctx, filter)
}

// ListDeploymentRequests lists the released deployment requests visible
// through the query's scope token or fleet/org filters. Listing without
// any filter yields an empty result rather than the whole collection.
func (a *app) ListDeploymentRequests(
	ctx context.Context,
	actorID string,
	query RequestsQuery,
) ([]model.DeploymentRequest, error) {
	var (
		filter model.DeploymentFilter
		err    error
	)
	if query.Scope != "" {
		filter, err = a.scopeFilter(ctx, actorID, query.Scope)
	} else {
		filter, err = a.plainFilter(ctx, actorID, query)
	}
	if err != nil {
		return nil, err
	}
	if filter.Empty() {
		return []model.DeploymentRequest{}, nil
	}
	filter.ReleasedOnly = true
	return a.store.ListDeploymentRequests(ctx, filter)
}

// scopeFilter translates a scope token into a deployment filter per the
// visibility cascade. The token is "global", a fleet ID or an org ID;
// unknown tokens fail closed as not found, known ones without read
// access as forbidden.
func (a *app) scopeFilter(
	ctx context.Context,
	actorID, scope string,
) (model.DeploymentFilter, error) {
	var filter model.DeploymentFilter

	vendors, err := a.registry.ListVendorOrgs(ctx)
	if err != nil {
		return filter, err
	}
	vendorIDs := make([]string, 0, len(vendors))
	for _, vendor := range vendors {
		vendorIDs = append(vendorIDs, vendor.ID)
	}

	if scope == model.ScopeGlobal {
		filter.FleetlessOrgIDs = vendorIDs
		return filter, nil
	}

	fleet, err := a.registry.GetFleet(ctx, scope)
	if err != nil {
		return filter, err
	}
	if fleet != nil {
		if err := a.checkReadAccess(ctx, actorID, fleet.OrgID); err != nil {
			return filter, err
		}
		// Any deployment to this fleet, fleet-less deployments to its
		// org, and vendor-global deployments
		filter.FleetIDs = []string{fleet.ID}
		filter.FleetlessOrgIDs = append([]string{fleet.OrgID}, vendorIDs...)
		return filter, nil
	}

	org, err := a.registry.GetOrg(ctx, scope)
	if err != nil {
		return filter, err
	} else if org == nil {
		return filter, ErrScopeNotFound
	}
	if err := a.checkReadAccess(ctx, actorID, org.ID); err != nil {
		return filter, err
	}
	// Any deployment owned by this org, deployments targeting a fleet
	// under it, and vendor-global deployments
	orgFleets, err := a.registry.ListOrgFleets(ctx, org.ID)
	if err != nil {
		return filter, err
	}
	for _, orgFleet := range orgFleets {
		filter.FleetIDs = append(filter.FleetIDs, orgFleet.ID)
	}
	filter.OrgIDs = []string{org.ID}
	filter.FleetlessOrgIDs = vendorIDs
	return filter, nil
}

// plainFilter translates the comma-separated fleet/org filters into an
// OR of their scopes. Each named fleet or org must exist and be readable
// by the actor; vendor orgs are readable by anyone.
func (a *app) plainFilter(
	ctx context.Context,
	actorID string,
	query RequestsQuery,
) (model.DeploymentFilter, error) {
	var filter model.DeploymentFilter

	for _, fleetID := range query.FleetIDs {
		fleet, err := a.registry.GetFleet(ctx, fleetID)
		if err != nil {
			return filter, err
		} else if fleet == nil {
			return filter, ErrScopeNotFound
		}
		if err := a.checkReadAccess(ctx, actorID, fleet.OrgID); err != nil {
			return filter, err
		}
		filter.FleetIDs = append(filter.FleetIDs, fleet.ID)
	}

	for _, orgID := range query.OrgIDs {
		org, err := a.registry.GetOrg(ctx, orgID)
		if err != nil {
			return filter, err
		} else if org == nil {
			return filter, ErrScopeNotFound
		}
		if !org.IsVendor {
			if err := a.checkReadAccess(ctx, actorID, org.ID); err != nil {
				return filter, err
			}
		}
		filter.OrgIDs = append(filter.OrgIDs, org.ID)
	}

	return filter, nil
}

func (a *app) checkReadAccess(ctx context.Context, actorID, orgID string) error {
	allowed, err := a.permissions.HasCapability(
		ctx, actorID, orgID, permissions.CapabilityReadOrg,
	)
	if err != nil {
		return err
	} else if !allowed {
		return ErrForbidden
	}
	return nil
}
