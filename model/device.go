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

package model

import "time"

// Device is the registry's view of a physical device. The OTA service
// reads it for scope resolution and rebinds OSDefinitionID or
// AppDefinitionID when the device reports a new version; everything else
// is owned by the device registry.
type Device struct {
	ID     string `json:"device_id" bson:"_id"`
	OrgID  string `json:"org" bson:"org_id"`
	Active bool   `json:"active" bson:"active"`
	// Claimed devices belong to a project; unclaimed ones are excluded
	// from vendor-global rollouts.
	Claimed   bool   `json:"claimed" bson:"claimed"`
	ClaimedBy string `json:"claimed_by,omitempty" bson:"claimed_by,omitempty"`

	OSDefinitionID  string `json:"os_definition,omitempty" bson:"os_definition_id,omitempty"`
	AppDefinitionID string `json:"app_definition,omitempty" bson:"app_definition_id,omitempty"`

	UpdatedTs time.Time `json:"updated_ts" bson:"updated_ts,omitempty"`
}

// Fleet is a named group of devices under one organization, used as a
// rollout scope.
type Fleet struct {
	ID    string `json:"id" bson:"_id"`
	OrgID string `json:"org" bson:"org_id"`
	Name  string `json:"name" bson:"name"`
}

// Org is the registry's view of an organization. Vendor organizations
// publish software definitions distributable to any customer, so their
// fleet-less deployment requests are global.
type Org struct {
	ID        string `json:"id" bson:"_id"`
	Name      string `json:"name" bson:"name"`
	IsVendor  bool   `json:"is_vendor" bson:"is_vendor"`
	CreatedBy string `json:"created_by,omitempty" bson:"created_by,omitempty"`
}

// SoftwareDefinition is the catalog's view of a published firmware or
// application build: the (tag, major, minor) triple devices report, plus
// the definition's own release version used for "newest" ordering.
type SoftwareDefinition struct {
	ID   string      `json:"id" bson:"_id"`
	Kind VersionKind `json:"kind" bson:"kind"`
	Name string      `json:"name" bson:"name"`

	Tag   uint32 `json:"tag" bson:"tag"`
	Major uint8  `json:"major_version" bson:"major_version"`
	Minor uint8  `json:"minor_version" bson:"minor_version"`

	Version string `json:"version" bson:"version"`
	OrgID   string `json:"org" bson:"org_id"`
	Active  bool   `json:"active" bson:"active"`
}
