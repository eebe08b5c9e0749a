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
	"strings"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/mendersoftware/go-lib-micro/identity"
	"github.com/mendersoftware/go-lib-micro/log"
	"github.com/pkg/errors"

	"github.com/iotile/deviceota/app"
	"github.com/iotile/deviceota/model"
)

// HTTP errors
var (
	ErrMissingUserAuthentication = errors.New(
		"missing or non-user identity in the authorization headers",
	)
)

// ManagementController container for end-points
type ManagementController struct {
	app app.App
}

// NewManagementController returns a new ManagementController
func NewManagementController(app app.App) *ManagementController {
	return &ManagementController{app: app}
}

// queryIDList flattens the values of a repeatable query parameter into
// one ID list; each value may itself carry comma-separated IDs.
func queryIDList(values []string) []string {
	var ids []string
	for _, value := range values {
		for _, id := range strings.Split(value, ",") {
			if id != "" {
				ids = append(ids, id)
			}
		}
	}
	return ids
}

func userID(c *gin.Context) (string, bool) {
	idata := identity.FromContext(c.Request.Context())
	if idata == nil || !idata.IsUser {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": ErrMissingUserAuthentication.Error(),
		})
		return "", false
	}
	return idata.Subject, true
}

// ListDeployments returns the deployment requests visible from the
// requested scope
func (h ManagementController) ListDeployments(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.FromContext(ctx)

	actorID, ok := userID(c)
	if !ok {
		return
	}

	query := app.RequestsQuery{
		Scope:    c.Query("scope"),
		FleetIDs: queryIDList(c.QueryArray("fleet")),
		OrgIDs:   queryIDList(c.QueryArray("org")),
	}
	requests, err := h.app.ListDeploymentRequests(ctx, actorID, query)
	if err == app.ErrScopeNotFound {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	} else if err == app.ErrForbidden {
		c.JSON(http.StatusForbidden, gin.H{
			"error": err.Error(),
		})
		return
	} else if err != nil {
		l.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, requests)
}

// CreateDeployment creates a new deployment request
func (h ManagementController) CreateDeployment(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.FromContext(ctx)

	actorID, ok := userID(c)
	if !ok {
		return
	}

	request := &model.DeploymentRequest{}
	if err := c.ShouldBindJSON(request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": errors.Wrap(err, "invalid payload").Error(),
		})
		return
	}

	err := h.app.CreateDeploymentRequest(ctx, actorID, request)
	if err == app.ErrScopeNotFound {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	} else if err == app.ErrForbidden {
		c.JSON(http.StatusForbidden, gin.H{
			"error": err.Error(),
		})
		return
	} else if _, ok := errors.Cause(err).(validation.Errors); ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	} else if err != nil {
		l.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.Header("Location", APIURLManagementDeployments+"/"+request.ID)
	c.JSON(http.StatusCreated, request)
}

// GetDeployment returns one deployment request
func (h ManagementController) GetDeployment(c *gin.Context) {
	ctx := c.Request.Context()

	if _, ok := userID(c); !ok {
		return
	}
	requestID := c.Param("requestId")

	request, err := h.app.GetDeploymentRequest(ctx, requestID)
	if err == app.ErrDeploymentNotFound {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	} else if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, request)
}

// DeleteDeployment removes a deployment request
func (h ManagementController) DeleteDeployment(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.FromContext(ctx)

	actorID, ok := userID(c)
	if !ok {
		return
	}
	requestID := c.Param("requestId")

	err := h.app.DeleteDeploymentRequest(ctx, actorID, requestID)
	if err == app.ErrDeploymentNotFound {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	} else if err == app.ErrForbidden {
		c.JSON(http.StatusForbidden, gin.H{
			"error": err.Error(),
		})
		return
	} else if err != nil {
		l.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.Writer.WriteHeader(http.StatusNoContent)
}

// DeploymentDevices returns the devices a deployment request currently
// selects
func (h ManagementController) DeploymentDevices(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.FromContext(ctx)

	if _, ok := userID(c); !ok {
		return
	}
	requestID := c.Param("requestId")

	devices, err := h.app.AffectedDevices(ctx, requestID)
	if err == app.ErrDeploymentNotFound {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	} else if _, ok := errors.Cause(err).(validation.Errors); ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	} else if err != nil {
		l.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, devices)
}

// GetDeviceInfo returns the OTA state of one device
func (h ManagementController) GetDeviceInfo(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.FromContext(ctx)

	actorID, ok := userID(c)
	if !ok {
		return
	}
	deviceID := c.Param("deviceId")

	info, err := h.app.DeviceDeploymentInfo(ctx, actorID, deviceID)
	if err == app.ErrDeviceNotFound {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	} else if err == app.ErrForbidden {
		c.JSON(http.StatusForbidden, gin.H{
			"error": err.Error(),
		})
		return
	} else if err != nil {
		l.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, info)
}
