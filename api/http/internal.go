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

package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mendersoftware/go-lib-micro/log"
	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/iotile/deviceota/app"
	"github.com/iotile/deviceota/client/nats"
	"github.com/iotile/deviceota/model"
)

// InternalController contains internal end-points
type InternalController struct {
	app  app.App
	nats nats.Client
}

// NewInternalController returns a new InternalController
func NewInternalController(
	app app.App,
	nc nats.Client,
) *InternalController {
	return &InternalController{
		app:  app,
		nats: nc,
	}
}

// SubmitVersionReport accepts a raw streamer version report and queues
// it for reconciliation
func (h InternalController) SubmitVersionReport(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.FromContext(ctx)
	deviceID := c.Param("deviceId")

	report := model.VersionReport{}
	if err := c.ShouldBindJSON(&report); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": errors.Wrap(err, "invalid payload").Error(),
		})
		return
	}
	report.DeviceID = deviceID

	if err := report.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	data, err := msgpack.Marshal(report)
	if err != nil {
		l.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to encode the version report",
		})
		return
	}
	if err := h.nats.Publish(model.GetReportSubject(deviceID), data); err != nil {
		l.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to queue the version report",
		})
		return
	}

	c.Writer.WriteHeader(http.StatusAccepted)
}
