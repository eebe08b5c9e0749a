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

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ScopeGlobal is the scope token selecting vendor-global deployment
// requests only.
const ScopeGlobal = "global"

// DeploymentRequest targets a device script at one or more devices.
// The scope is determined by FleetID: when set the request targets that
// fleet; when unset it targets the owning org, or every customer device
// when the owning org is a vendor. The selection criteria narrow the
// scope further; all criteria must hold for a device to qualify.
type DeploymentRequest struct {
	ID       string `json:"id" bson:"_id"`
	ScriptID string `json:"script" bson:"script_id"`
	FleetID  string `json:"fleet,omitempty" bson:"fleet_id,omitempty"`
	OrgID    string `json:"org" bson:"org_id"`

	// SelectionCriteria is an ordered list of "type:op:value" strings,
	// persisted verbatim.
	SelectionCriteria []string `json:"selection_criteria" bson:"selection_criteria"`

	// ReleasedOn unset means the request is a draft agents must not act
	// on; CompletedOn set means it is terminally done.
	ReleasedOn  *time.Time `json:"released_on,omitempty" bson:"released_on,omitempty"`
	CompletedOn *time.Time `json:"completed_on,omitempty" bson:"completed_on,omitempty"`

	CreatedTs time.Time `json:"created_ts" bson:"created_ts"`
	CreatedBy string    `json:"created_by,omitempty" bson:"created_by,omitempty"`
}

// Validate checks the request is well formed, including that every
// selection criterion parses against the closed rule vocabulary.
func (d DeploymentRequest) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.ScriptID, validation.Required),
		validation.Field(&d.OrgID, validation.Required),
		validation.Field(&d.SelectionCriteria,
			validation.By(validateSelectionCriteria)),
	)
}

func validateSelectionCriteria(value interface{}) error {
	criteria, _ := value.([]string)
	_, err := ParseSelectionCriteria(criteria)
	return err
}

// Released reports whether the request is visible to agents at the given
// time: released in the past and not yet completed.
func (d DeploymentRequest) Released(now time.Time) bool {
	return d.ReleasedOn != nil && !d.ReleasedOn.After(now) &&
		d.CompletedOn == nil
}

// DeploymentAction records one attempt by an agent (mobile or gateway)
// to apply a deployment request to one device. AttemptSuccessful is what
// the agent reported; DeviceConfirmation is set only once the device
// itself reports the new version.
type DeploymentAction struct {
	ID            string     `json:"id" bson:"_id"`
	DeploymentID  string     `json:"deployment" bson:"deployment_id"`
	DeviceID      string     `json:"device" bson:"device_id"`
	LastAttemptOn *time.Time `json:"last_attempt_on,omitempty" bson:"last_attempt_on,omitempty"`

	AttemptSuccessful  bool `json:"attempt_successful" bson:"attempt_successful"`
	DeviceConfirmation bool `json:"device_confirmation" bson:"device_confirmation"`

	// Log is free-text agent data, appended to by the reconciler when
	// the device confirms the update.
	Log string `json:"log,omitempty" bson:"log,omitempty"`

	CreatedTs time.Time `json:"created_ts" bson:"created_ts"`
}

// Validate checks the action references a deployment and a device
func (a DeploymentAction) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.DeploymentID, validation.Required),
		validation.Field(&a.DeviceID, validation.Required),
	)
}

// DeploymentFilter selects deployment requests for listings. FleetIDs
// and OrgIDs are ORed; ReleasedOnly additionally restricts to released,
// not completed requests.
type DeploymentFilter struct {
	FleetIDs []string
	OrgIDs   []string
	// FleetlessOrgIDs matches org-wide requests only (no fleet set), as
	// the visibility cascade requires for org and vendor terms.
	FleetlessOrgIDs []string
	ReleasedOnly    bool
}

// Empty reports whether the filter matches nothing at all.
func (f DeploymentFilter) Empty() bool {
	return len(f.FleetIDs) == 0 && len(f.OrgIDs) == 0 &&
		len(f.FleetlessOrgIDs) == 0
}
