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
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// VersionReport is the single telemetry event the OTA service consumes:
// a device reporting the packed version value for one kind. It is
// published to NATS msgpack-encoded and reconciled asynchronously.
type VersionReport struct {
	DeviceID string      `json:"device_id" msgpack:"device_id"`
	Kind     VersionKind `json:"kind" msgpack:"kind"`
	// Value is the packed 32-bit version value as carried in the
	// stream payload.
	Value int64 `json:"value" msgpack:"value"`
	// StreamerLocalID is the device-assigned sequence number of the
	// report.
	StreamerLocalID int64     `json:"streamer_local_id" msgpack:"streamer_local_id"`
	Timestamp       time.Time `json:"timestamp" msgpack:"timestamp"`
}

// Validate checks the report identifies a device and a known kind
func (r VersionReport) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.DeviceID, validation.Required),
		validation.Field(&r.Kind, validation.Required,
			validation.In(VersionKindOS, VersionKindApp)),
	)
}

// GetReportSubject returns the NATS subject version reports for the
// device are published to.
func GetReportSubject(deviceID string) string {
	return strings.Join([]string{"ota", "reports", deviceID}, ".")
}

// ReportSubjectWildcard subscribes to the version reports of every device
const ReportSubjectWildcard = "ota.reports.*"

// ReconcileOutcome is the terminal state of reconciling one report.
type ReconcileOutcome string

// Values for the reconcile outcome
const (
	// ReconcileCommitted means the report produced a new history
	// record, a device rebinding and (possibly) a completed action.
	ReconcileCommitted ReconcileOutcome = "committed"
	// ReconcileNoOp means the report was validly processed but ignored:
	// a sentinel, a duplicate, or an undecodable value.
	ReconcileNoOp ReconcileOutcome = "noop"
)
