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

	"github.com/pkg/errors"

	"github.com/iotile/deviceota/model"
)

// AffectedDevices computes the devices a deployment request currently
// targets: the request's base scope narrowed by its selection criteria.
// A device qualifies only if, for every criterion, at least one of its
// version records of the criterion's kind satisfies it; criteria of
// different kinds are evaluated independently and ANDed at the device
// level.
func (a *app) AffectedDevices(
	ctx context.Context,
	requestID string,
) ([]model.Device, error) {
	request, err := a.store.GetDeploymentRequest(ctx, requestID)
	if err != nil {
		return nil, err
	} else if request == nil {
		return nil, ErrDeploymentNotFound
	}

	rules, err := model.ParseSelectionCriteria(request.SelectionCriteria)
	if err != nil {
		// Criteria are validated at creation time, so this only
		// happens for records predating the rule vocabulary
		return nil, errors.Wrap(err, "invalid selection criteria")
	}

	baseSet, err := a.baseDeviceSet(ctx, request)
	if err != nil {
		return nil, err
	}

	devices := make([]model.Device, 0, len(baseSet))
	seen := make(map[string]struct{}, len(baseSet))
	for _, device := range baseSet {
		if _, dup := seen[device.ID]; dup {
			continue
		}
		seen[device.ID] = struct{}{}

		match, err := a.deviceMatches(ctx, device.ID, rules)
		if err != nil {
			return nil, err
		}
		if match {
			devices = append(devices, device)
		}
	}
	return devices, nil
}

// deviceMatches checks all rules against the device's version history,
// fetching each kind's records at most once.
func (a *app) deviceMatches(
	ctx context.Context,
	deviceID string,
	rules []model.SelectionRule,
) (bool, error) {
	recordsByKind := map[model.VersionKind][]model.DeviceVersionAttribute{}

	for _, rule := range rules {
		kind := rule.Kind()
		records, ok := recordsByKind[kind]
		if !ok {
			var err error
			records, err = a.store.ListDeviceVersions(ctx, deviceID, kind)
			if err != nil {
				return false, err
			}
			recordsByKind[kind] = records
		}

		var match bool
		for _, record := range records {
			if rule.Matches(record) {
				match = true
				break
			}
		}
		if !match {
			return false, nil
		}
	}
	return true, nil
}
