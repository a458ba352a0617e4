// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package api

import (
	"net/http"

	"github.com/Thermoquad/tonelight/pkg/presetstore"
	"github.com/gin-gonic/gin"
)

func presetsResponse(presets []presetstore.Preset) PresetsResponse {
	return PresetsResponse{Presets: presets, Count: len(presets)}
}

// listPresets handles GET /presets
// @Summary      List library presets
// @Tags         presets
// @Produce      json
// @Success      200  {object}  PresetsResponse
// @Failure      500  {object}  ErrorResponse  "Internal error"
// @Router       /presets [get]
func (r *Router) listPresets(c *gin.Context) {
	presets, err := r.library.Load(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, presetsResponse(presets))
}

// putPreset handles PUT /presets/:name
// @Summary      Create or replace a library preset
// @Tags         presets
// @Accept       json
// @Produce      json
// @Param        name  path  string  true  "Preset name"
// @Param        request  body  LibraryPresetRequest  true  "Slots"
// @Success      200  {object}  PresetsResponse
// @Failure      400  {object}  ErrorResponse  "Invalid request"
// @Failure      500  {object}  ErrorResponse  "Internal error"
// @Router       /presets/{name} [put]
func (r *Router) putPreset(c *gin.Context) {
	var req LibraryPresetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid preset body")
		return
	}

	presets, err := r.library.Save(c.Request.Context(), presetstore.Preset{
		Name:  c.Param("name"),
		Slots: req.Slots,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, presetsResponse(presets))
}

// deletePreset handles DELETE /presets/:name
// @Summary      Delete a library preset
// @Tags         presets
// @Produce      json
// @Param        name  path  string  true  "Preset name"
// @Success      200  {object}  PresetsResponse
// @Failure      404  {object}  ErrorResponse  "Preset not found"
// @Failure      500  {object}  ErrorResponse  "Internal error"
// @Router       /presets/{name} [delete]
func (r *Router) deletePreset(c *gin.Context) {
	presets, err := r.library.Delete(c.Request.Context(), c.Param("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, presetsResponse(presets))
}

// pushLibraryPreset handles POST /presets/:name/push. Slots whose channels
// are all zero are skipped.
// @Summary      Push a library preset to device slots 0-2
// @Tags         presets
// @Produce      json
// @Param        name  path  string  true  "Preset name"
// @Success      202  {object}  PushResponse
// @Failure      404  {object}  ErrorResponse  "Preset not found"
// @Failure      422  {object}  ErrorResponse  "Precondition rejected"
// @Failure      503  {object}  ErrorResponse  "Not connected"
// @Router       /presets/{name}/push [post]
func (r *Router) pushLibraryPreset(c *gin.Context) {
	name := c.Param("name")
	preset, err := r.library.Get(c.Request.Context(), name)
	if err != nil {
		respondError(c, err)
		return
	}

	pushed, err := r.device.PushPresetSlots(preset.Slots[:])
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, PushResponse{Preset: name, Pushed: pushed})
}
