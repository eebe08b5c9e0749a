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

package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/iotile/deviceota/model"
)

const (
	uriDefinitions = "/api/internal/v1/catalog/definitions"
)

// Client is the software definition catalog client.
//
//go:generate ../../utils/mockgen.sh
type Client interface {
	// FindDefinition returns the best active definition matching the
	// exact (tag, major, minor) triple for a kind, ordered by the
	// definition's own (major, minor, patch) release version
	// descending, or nil when there is no exact match.
	FindDefinition(ctx context.Context, kind model.VersionKind,
		tag uint32, major, minor uint8) (*model.SoftwareDefinition, error)
	// LatestForTag returns the newest active definition carrying the
	// tag regardless of its version, or nil when the tag is unknown.
	LatestForTag(ctx context.Context, kind model.VersionKind,
		tag uint32) (*model.SoftwareDefinition, error)
}

type client struct {
	client  *http.Client
	uriBase string
}

// NewClient returns a new software catalog client
func NewClient(uriBase string, timeout int) *client {
	return &client{
		uriBase: uriBase,
		client:  &http.Client{Timeout: time.Duration(timeout) * time.Second},
	}
}

func (c *client) FindDefinition(
	ctx context.Context,
	kind model.VersionKind,
	tag uint32,
	major, minor uint8,
) (*model.SoftwareDefinition, error) {
	query := url.Values{}
	query.Set("kind", string(kind))
	query.Set("tag", strconv.FormatUint(uint64(tag), 10))
	query.Set("major", strconv.FormatUint(uint64(major), 10))
	query.Set("minor", strconv.FormatUint(uint64(minor), 10))
	return c.findOne(ctx, query)
}

func (c *client) LatestForTag(
	ctx context.Context,
	kind model.VersionKind,
	tag uint32,
) (*model.SoftwareDefinition, error) {
	query := url.Values{}
	query.Set("kind", string(kind))
	query.Set("tag", strconv.FormatUint(uint64(tag), 10))
	return c.findOne(ctx, query)
}

// findOne queries the catalog for active definitions matching the query,
// newest release first, and returns the first hit.
func (c *client) findOne(
	ctx context.Context,
	query url.Values,
) (*model.SoftwareDefinition, error) {
	query.Set("active", "true")
	query.Set("sort", "-version")
	uri := c.uriBase + uriDefinitions + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, "GET", uri, nil)
	if err != nil {
		return nil, err
	}

	rsp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "catalog request failed")
	}
	defer rsp.Body.Close()

	if rsp.StatusCode != http.StatusOK {
		return nil, errors.Errorf(
			"catalog request failed with unexpected status %v",
			rsp.StatusCode)
	}

	defs := []model.SoftwareDefinition{}
	if err := json.NewDecoder(rsp.Body).Decode(&defs); err != nil {
		return nil, errors.Wrap(err, "error parsing catalog response")
	}
	if len(defs) == 0 {
		return nil, nil
	}
	return &defs[0], nil
}
