// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package api

import (
	"errors"
	"net/http"

	"github.com/Thermoquad/tonelight/pkg/bridge"
	"github.com/Thermoquad/tonelight/pkg/presetstore"
	"github.com/gin-gonic/gin"
)

// respondError maps a bridge or library error to a status code
func respondError(c *gin.Context, err error) {
	status, code := http.StatusInternalServerError, "internal_error"

	switch {
	case errors.Is(err, bridge.ErrPreconditionRejected):
		status, code = http.StatusUnprocessableEntity, "precondition_rejected"
	case errors.Is(err, bridge.ErrNotConnected):
		status, code = http.StatusServiceUnavailable, "not_connected"
	case errors.Is(err, bridge.ErrAlreadyConnected):
		status, code = http.StatusConflict, "already_connected"
	case errors.Is(err, bridge.ErrTransportUnavailable):
		status, code = http.StatusBadGateway, "transport_unavailable"
	case errors.Is(err, presetstore.ErrPresetNotFound):
		status, code = http.StatusNotFound, "not_found"
	case errors.Is(err, presetstore.ErrInvalidPreset):
		status, code = http.StatusBadRequest, "invalid_preset"
	}

	c.JSON(status, ErrorResponse{Error: code, Message: err.Error()})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid_request", Message: msg})
}

// accepted answers a command that was queued or sent
func accepted(c *gin.Context, err error) {
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, StatusResponse{Status: "accepted"})
}
