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

package server

import (
	"context"
	"time"

	"github.com/mendersoftware/go-lib-micro/log"
	natsio "github.com/nats-io/nats.go"
	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/iotile/deviceota/app"
	"github.com/iotile/deviceota/client/nats"
	"github.com/iotile/deviceota/model"
)

const (
	reportChannelSize = 100
	// Pause before requeueing a report that failed with a retryable
	// error, so a hard collaborator outage does not spin the queue.
	requeueDelay = time.Second
)

// ConsumeReports subscribes to the version report subject and feeds
// every report through the reconciler. Reports that fail with a
// retryable error are published back to the queue; everything else is
// dropped after reconciliation.
func ConsumeReports(
	ctx context.Context,
	natsClient nats.Client,
	otaApp app.App,
) error {
	reportChan := make(chan *natsio.Msg, reportChannelSize)
	sub, err := natsClient.ChanSubscribe(
		model.ReportSubjectWildcard, reportChan,
	)
	if err != nil {
		return errors.Wrap(err, "failed to subscribe to version reports")
	}
	//nolint:errcheck
	defer sub.Unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg := <-reportChan:
			handleReport(ctx, natsClient, otaApp, msg)
		}
	}
}

func handleReport(
	ctx context.Context,
	natsClient nats.Client,
	otaApp app.App,
	msg *natsio.Msg,
) {
	l := log.FromContext(ctx)

	report := model.VersionReport{}
	if err := msgpack.Unmarshal(msg.Data, &report); err != nil {
		l.Errorf("failed to decode version report on %q: %s",
			msg.Subject, err)
		return
	}

	outcome, err := otaApp.ReconcileVersionReport(ctx, report)
	if err == nil {
		if outcome == model.ReconcileNoOp {
			l.Debugf("version report for device %s acked without effect",
				report.DeviceID)
		}
		return
	}
	if app.IsRetryable(err) {
		l.Warnf("requeueing version report for device %s: %s",
			report.DeviceID, err)
		select {
		case <-ctx.Done():
			return
		case <-time.After(requeueDelay):
		}
		if err := natsClient.Publish(msg.Subject, msg.Data); err != nil {
			l.Errorf("failed to requeue version report for device %s: %s",
				report.DeviceID, err)
		}
		return
	}
	l.Errorf("version report for device %s failed: %s", report.DeviceID, err)
}
