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
	"fmt"
	"math"
	"time"

	"github.com/pkg/errors"
)

// VersionKind selects which aspect of a device a version record refers to.
type VersionKind string

// Values for the version kind attribute
const (
	// VersionKindOS is the firmware running on the physical device
	VersionKindOS VersionKind = "os"
	// VersionKindApp is the application logic running on top of the OS
	VersionKindApp VersionKind = "app"
)

// Bit layout of the packed version value, least significant bits first:
// 20 bit tag, 6 bit minor version, 6 bit major version.
const (
	versionTagBits   = 20
	versionTagMask   = 1<<versionTagBits - 1
	versionPartBits  = 6
	versionPartMask  = 1<<versionPartBits - 1
	versionMinorOffs = versionTagBits
	versionMajorOffs = versionTagBits + versionPartBits
)

// ErrVersionDecode is returned when a reported value cannot be unpacked
var ErrVersionDecode = errors.New("cannot decode packed version value")

// VersionTag is a decoded device version report: an opaque tag identifying
// which firmware or application is installed, plus its version number.
type VersionTag struct {
	Tag   uint32 `json:"tag" bson:"tag"`
	Major uint8  `json:"major_version" bson:"major_version"`
	Minor uint8  `json:"minor_version" bson:"minor_version"`
}

// DecodeVersionTag unpacks the 32-bit wire value reported by a device.
// Values are carried as signed integers in stream payloads, so anything
// outside the uint32 range is a decode error.
func DecodeVersionTag(value int64) (VersionTag, error) {
	if value < 0 || value > math.MaxUint32 {
		return VersionTag{}, errors.Wrapf(
			ErrVersionDecode, "value %d out of range", value,
		)
	}
	raw := uint32(value)
	return VersionTag{
		Tag:   raw & versionTagMask,
		Minor: uint8((raw >> versionMinorOffs) & versionPartMask),
		Major: uint8((raw >> versionMajorOffs) & versionPartMask),
	}, nil
}

// Encode packs the version tag back into its wire representation.
func (v VersionTag) Encode() uint32 {
	return v.Tag&versionTagMask |
		uint32(v.Minor&versionPartMask)<<versionMinorOffs |
		uint32(v.Major&versionPartMask)<<versionMajorOffs
}

// IsSentinel reports whether the tag is the "not yet tagged" placeholder
// programmed into devices from before tags were introduced. Such reports
// carry no information and must be ignored.
func (v VersionTag) IsSentinel(kind VersionKind) bool {
	switch kind {
	case VersionKindApp:
		return v.Tag == 0 && v.Major == 0 && v.Minor == 0
	case VersionKindOS:
		return v.Tag == 1024 && v.Major == 0 && v.Minor == 0
	}
	return false
}

func (v VersionTag) String() string {
	return fmt.Sprintf("%d v%d.%d", v.Tag, v.Major, v.Minor)
}

// DeviceVersionAttribute is one append-only history record of a version
// reported by a device. The current version for a (device, kind) pair is
// the most recently created record; "last reported" listings order by
// UpdatedTs instead.
type DeviceVersionAttribute struct {
	ID       string      `json:"id" bson:"_id"`
	DeviceID string      `json:"device_id" bson:"device_id"`
	Kind     VersionKind `json:"kind" bson:"kind"`
	VersionTag `bson:",inline"`
	// StreamerLocalID is the device-assigned sequence number of the
	// report that produced this record.
	StreamerLocalID int64     `json:"streamer_local_id" bson:"streamer_local_id"`
	UpdatedTs       time.Time `json:"updated_ts" bson:"updated_ts"`
	CreatedTs       time.Time `json:"created_ts" bson:"created_ts"`
}
