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
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// AuditNote is one append-only entry in a target's audit trail. For OTA
// updates the target is the device and the note describes the rebinding.
type AuditNote struct {
	// TargetID identifies the object the note is attached to.
	TargetID string `json:"target"`
	// Note is the free-text body.
	Note string `json:"note"`
	// CreatedBy is the user the note is attributed to.
	CreatedBy string    `json:"created_by"`
	Timestamp time.Time `json:"timestamp,omitempty"`
}

func (n AuditNote) Validate() error {
	return validation.ValidateStruct(&n,
		validation.Field(&n.TargetID, validation.Required),
		validation.Field(&n.Note, validation.Required),
		validation.Field(&n.Timestamp, validation.Required),
	)
}

// StaffAlertMessage is the payload of a fire-and-forget operator alert
type StaffAlertMessage struct {
	Message string `json:"message"`
}
