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
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const (
	HealthCheckURI = "/api/v1/health"
	AuditNoteURI   = "/api/v1/notifications/audit_note"
	StaffAlertURI  = "/api/v1/notifications/staff_alert"
)

const (
	defaultTimeout = time.Duration(5) * time.Second
)

// Client is the notifications client: the append-only audit trail and
// the fire-and-forget operator alert channel.
//
//go:generate ../../utils/mockgen.sh
type Client interface {
	CheckHealth(ctx context.Context) error
	SubmitAuditNote(ctx context.Context, note AuditNote) error
	StaffAlert(ctx context.Context, message string) error
}

type ClientOptions struct {
	Client *http.Client
}

// NewClient returns a new notifications client
func NewClient(url string, opts ...ClientOptions) Client {
	// Initialize default options
	var clientOpts = ClientOptions{
		Client: &http.Client{},
	}
	// Merge options
	for _, opt := range opts {
		if opt.Client != nil {
			clientOpts.Client = opt.Client
		}
	}

	return &client{
		url:    strings.TrimSuffix(url, "/"),
		client: *clientOpts.Client,
	}
}

type client struct {
	url    string
	client http.Client
}

func (c *client) CheckHealth(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaultTimeout)
		defer cancel()
	}
	req, _ := http.NewRequestWithContext(
		ctx, "GET", c.url+HealthCheckURI, nil,
	)

	rsp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer rsp.Body.Close()
	if rsp.StatusCode >= http.StatusOK && rsp.StatusCode < 300 {
		return nil
	}
	return errors.Errorf("health check HTTP error: %s", rsp.Status)
}

// SubmitAuditNote appends a note to the audit trail of the note's target
func (c *client) SubmitAuditNote(ctx context.Context, note AuditNote) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaultTimeout)
		defer cancel()
	}
	if note.Timestamp.IsZero() {
		note.Timestamp = time.Now()
	}
	if err := note.Validate(); err != nil {
		return errors.Wrap(err, "notifications: invalid AuditNote entry")
	}
	return c.post(ctx, AuditNoteURI, note)
}

// StaffAlert notifies operators; delivery mechanics are the
// notification service's concern
func (c *client) StaffAlert(ctx context.Context, message string) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaultTimeout)
		defer cancel()
	}
	return c.post(ctx, StaffAlertURI, StaffAlertMessage{Message: message})
}

func (c *client) post(ctx context.Context, uri string, body interface{}) error {
	payload, _ := json.Marshal(body)
	req, err := http.NewRequestWithContext(ctx,
		"POST",
		c.url+uri,
		bytes.NewReader(payload),
	)
	if err != nil {
		return errors.Wrap(err, "notifications: error preparing HTTP request")
	}
	req.Header.Set("Content-Type", "application/json")

	rsp, err := c.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "notifications: failed to submit notification")
	}
	defer rsp.Body.Close()

	if rsp.StatusCode < 300 {
		return nil
	}

	return errors.Errorf(
		"notifications: unexpected HTTP status from notifications service: %s",
		rsp.Status,
	)
}
