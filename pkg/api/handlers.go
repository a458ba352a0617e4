// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Thermoquad/tonelight/pkg/tonelight"
	"github.com/gin-gonic/gin"
)

//////////////////////////////////////////////////////////////
// Health and connection
//////////////////////////////////////////////////////////////

// health handles GET /health. The service is healthy whether or not a
// device is attached; the connection state is informational.
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Router       /health [get]
func (r *Router) health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:     "healthy",
		Connection: r.device.State(),
		Timestamp:  time.Now(),
	})
}

func (r *Router) connectionResponse() ConnectionResponse {
	resp := ConnectionResponse{
		State:    r.device.State(),
		PortInfo: r.device.PortInfo(),
		Removed:  r.device.Removed(),
	}
	if err := r.device.LastError(); err != nil {
		resp.Error = err.Error()
	}
	return resp
}

// getConnection handles GET /connection
// @Summary      Get connection state
// @Tags         connection
// @Produce      json
// @Success      200  {object}  ConnectionResponse
// @Router       /connection [get]
func (r *Router) getConnection(c *gin.Context) {
	c.JSON(http.StatusOK, r.connectionResponse())
}

// connect handles POST /connection
// @Summary      Connect to the device
// @Tags         connection
// @Produce      json
// @Success      200  {object}  ConnectionResponse
// @Failure      409  {object}  ErrorResponse  "Already connected"
// @Failure      502  {object}  ErrorResponse  "Transport unavailable"
// @Router       /connection [post]
func (r *Router) connect(c *gin.Context) {
	if err := r.device.Connect(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, r.connectionResponse())
}

// disconnect handles DELETE /connection
// @Summary      Disconnect from the device
// @Tags         connection
// @Produce      json
// @Success      200  {object}  ConnectionResponse
// @Router       /connection [delete]
func (r *Router) disconnect(c *gin.Context) {
	r.device.Disconnect()
	c.JSON(http.StatusOK, r.connectionResponse())
}

//////////////////////////////////////////////////////////////
// State and log
//////////////////////////////////////////////////////////////

// getState handles GET /state
// @Summary      Get device state
// @Tags         state
// @Produce      json
// @Success      200  {object}  StateResponse
// @Router       /state [get]
func (r *Router) getState(c *gin.Context) {
	snap := r.device.Snapshot()
	stats := r.device.Stats()

	c.JSON(http.StatusOK, StateResponse{
		Connection: r.connectionResponse(),
		State:      snap,
		Labels: Labels{
			Motor:     tonelight.MotorStateLabel(snap.MotorState()),
			MotorMode: tonelight.MotorModeLabel(snap.MotorMode()),
			Shutter:   tonelight.ShutterStateLabel(snap.ShutterState()),
			IOMode:    tonelight.IOModeLabel(snap.IOMode()),
		},
		Stats: StatsResponse{
			TotalLines:     stats.TotalLines,
			TelemetryLines: stats.TelemetryLines,
			LogLines:       stats.LogLines,
			MalformedLines: stats.MalformedLines,
			ErrorLines:     stats.ErrorLines,
			WarningLines:   stats.WarningLines,
			CommandsSent:   stats.CommandsSent,
			LineRate:       stats.LineRate,
			ValidPercent:   stats.ValidPercent(),
		},
		Timestamp: time.Now(),
	})
}

// getLog handles GET /log, optionally limited with ?tail=N
// @Summary      Get console log
// @Tags         state
// @Produce      json
// @Param        tail  query  int  false  "Newest N lines only"
// @Success      200  {object}  LogResponse
// @Failure      400  {object}  ErrorResponse  "Invalid request"
// @Router       /log [get]
func (r *Router) getLog(c *gin.Context) {
	lines := r.device.Log()
	if raw := c.Query("tail"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			badRequest(c, "tail must be a non-negative integer")
			return
		}
		lines = r.device.LogTail(n)
	}
	c.JSON(http.StatusOK, LogResponse{Lines: lines, Count: len(lines)})
}

// clearLog handles DELETE /log
// @Summary      Clear console log
// @Tags         state
// @Success      204
// @Router       /log [delete]
func (r *Router) clearLog(c *gin.Context) {
	r.device.ClearLog()
	c.Status(http.StatusNoContent)
}

// sendCommand handles POST /commands
// @Summary      Send a raw console command
// @Tags         commands
// @Accept       json
// @Produce      json
// @Param        request  body  CommandRequest  true  "Command"
// @Success      202  {object}  StatusResponse
// @Failure      400  {object}  ErrorResponse  "Invalid request"
// @Failure      503  {object}  ErrorResponse  "Not connected"
// @Router       /commands [post]
func (r *Router) sendCommand(c *gin.Context) {
	var req CommandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "command is required")
		return
	}
	if req.Queued {
		accepted(c, r.device.SendQueued(req.Command))
		return
	}
	accepted(c, r.device.Send(req.Command))
}

//////////////////////////////////////////////////////////////
// Motor
//////////////////////////////////////////////////////////////

// moveMotor handles POST /motor/move
// @Summary      Travel or jog the motor
// @Tags         motor
// @Accept       json
// @Produce      json
// @Param        request  body  MoveRequest  true  "Direction and jog flag"
// @Success      202  {object}  StatusResponse
// @Failure      400  {object}  ErrorResponse  "Invalid request"
// @Failure      422  {object}  ErrorResponse  "Precondition rejected"
// @Failure      503  {object}  ErrorResponse  "Not connected"
// @Router       /motor/move [post]
func (r *Router) moveMotor(c *gin.Context) {
	var req MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "direction is required")
		return
	}
	dir := tonelight.Direction(req.Direction)
	if dir != tonelight.Forward && dir != tonelight.Backward {
		badRequest(c, fmt.Sprintf("direction must be %q or %q", tonelight.Forward, tonelight.Backward))
		return
	}
	accepted(c, r.device.MoveMotor(dir, req.Jog))
}

// stopMotor handles POST /motor/stop
// @Summary      Stop the motor
// @Tags         motor
// @Produce      json
// @Success      202  {object}  StatusResponse
// @Failure      503  {object}  ErrorResponse  "Not connected"
// @Router       /motor/stop [post]
func (r *Router) stopMotor(c *gin.Context) {
	accepted(c, r.device.StopMotor())
}

// setMotorMode handles PUT /motor/mode
// @Summary      Set the motor mode
// @Tags         motor
// @Accept       json
// @Produce      json
// @Param        request  body  ModeRequest  true  "MANUAL, SEMI_AUTO or AUTO"
// @Success      202  {object}  StatusResponse
// @Failure      400  {object}  ErrorResponse  "Invalid request"
// @Failure      503  {object}  ErrorResponse  "Not connected"
// @Router       /motor/mode [put]
func (r *Router) setMotorMode(c *gin.Context) {
	var req ModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "mode is required")
		return
	}
	mode, err := tonelight.ParseMotorMode(req.Mode)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	accepted(c, r.device.SetMotorMode(mode))
}

// setMotorSetting handles PUT /motor/settings/:name
// @Summary      Change a motor setting
// @Tags         motor
// @Accept       json
// @Produce      json
// @Param        name  path  string  true  "Setting name"
// @Param        request  body  SettingRequest  true  "Value"
// @Success      202  {object}  StatusResponse
// @Failure      400  {object}  ErrorResponse  "Invalid request"
// @Failure      422  {object}  ErrorResponse  "Precondition rejected"
// @Failure      503  {object}  ErrorResponse  "Not connected"
// @Router       /motor/settings/{name} [put]
func (r *Router) setMotorSetting(c *gin.Context) {
	var req SettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "value is required")
		return
	}
	accepted(c, r.device.SetMotorSetting(c.Param("name"), *req.Value))
}

//////////////////////////////////////////////////////////////
// Shutter
//////////////////////////////////////////////////////////////

// shoot handles POST /shutter/shoot
// @Summary      Fire the shutter
// @Tags         shutter
// @Produce      json
// @Success      202  {object}  StatusResponse
// @Failure      503  {object}  ErrorResponse  "Not connected"
// @Router       /shutter/shoot [post]
func (r *Router) shoot(c *gin.Context) {
	accepted(c, r.device.Shoot())
}

// toggleTriplet handles POST /shutter/triplet
// @Summary      Toggle triplet mode
// @Tags         shutter
// @Produce      json
// @Success      202  {object}  StatusResponse
// @Failure      503  {object}  ErrorResponse  "Not connected"
// @Router       /shutter/triplet [post]
func (r *Router) toggleTriplet(c *gin.Context) {
	accepted(c, r.device.ToggleTriplet())
}

// setShutterSetting handles PUT /shutter/settings/:name
// @Summary      Change a shutter setting
// @Tags         shutter
// @Accept       json
// @Produce      json
// @Param        name  path  string  true  "Setting name"
// @Param        request  body  SettingRequest  true  "Value"
// @Success      202  {object}  StatusResponse
// @Failure      400  {object}  ErrorResponse  "Invalid request"
// @Failure      422  {object}  ErrorResponse  "Precondition rejected"
// @Failure      503  {object}  ErrorResponse  "Not connected"
// @Router       /shutter/settings/{name} [put]
func (r *Router) setShutterSetting(c *gin.Context) {
	var req SettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "value is required")
		return
	}
	accepted(c, r.device.SetShutterSetting(c.Param("name"), *req.Value))
}

//////////////////////////////////////////////////////////////
// LED
//////////////////////////////////////////////////////////////

// toggleDark handles POST /led/dark
// @Summary      Toggle dark mode
// @Tags         led
// @Produce      json
// @Success      202  {object}  StatusResponse
// @Failure      503  {object}  ErrorResponse  "Not connected"
// @Router       /led/dark [post]
func (r *Router) toggleDark(c *gin.Context) {
	accepted(c, r.device.ToggleDark())
}

// setChannel handles PUT /led/channels/:channel
// @Summary      Set one LED channel
// @Tags         led
// @Accept       json
// @Produce      json
// @Param        channel  path  string  true  "r, g, b, w or ir"
// @Param        request  body  ChannelRequest  true  "Brightness 0-1023"
// @Success      202  {object}  StatusResponse
// @Failure      400  {object}  ErrorResponse  "Invalid request"
// @Failure      422  {object}  ErrorResponse  "Precondition rejected"
// @Failure      503  {object}  ErrorResponse  "Not connected"
// @Router       /led/channels/{channel} [put]
func (r *Router) setChannel(c *gin.Context) {
	var req ChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "value is required")
		return
	}
	accepted(c, r.device.SetLED(tonelight.LEDChannel(c.Param("channel")), *req.Value))
}

// slotParam parses the :slot path parameter. Range is checked by the
// intent layer.
func slotParam(c *gin.Context) (int, bool) {
	n, err := strconv.Atoi(c.Param("slot"))
	if err != nil {
		badRequest(c, "slot must be an integer")
		return 0, false
	}
	return n, true
}

// loadPreset handles POST /led/presets/:slot/load
// @Summary      Load a device preset
// @Tags         led
// @Produce      json
// @Param        slot  path  int  true  "Slot 0-8"
// @Success      202  {object}  StatusResponse
// @Failure      400  {object}  ErrorResponse  "Invalid request"
// @Failure      422  {object}  ErrorResponse  "Precondition rejected"
// @Failure      503  {object}  ErrorResponse  "Not connected"
// @Router       /led/presets/{slot}/load [post]
func (r *Router) loadPreset(c *gin.Context) {
	n, ok := slotParam(c)
	if !ok {
		return
	}
	accepted(c, r.device.LoadPreset(n))
}

// savePreset handles POST /led/presets/:slot/save
// @Summary      Save the LEDs into a device preset
// @Tags         led
// @Produce      json
// @Param        slot  path  int  true  "Slot 0-8"
// @Success      202  {object}  StatusResponse
// @Failure      400  {object}  ErrorResponse  "Invalid request"
// @Failure      422  {object}  ErrorResponse  "Precondition rejected"
// @Failure      503  {object}  ErrorResponse  "Not connected"
// @Router       /led/presets/{slot}/save [post]
func (r *Router) savePreset(c *gin.Context) {
	n, ok := slotParam(c)
	if !ok {
		return
	}
	accepted(c, r.device.SavePreset(n))
}

// pushPreset handles PUT /led/presets/:slot
// @Summary      Write a device preset slot
// @Tags         led
// @Accept       json
// @Produce      json
// @Param        slot  path  int  true  "Slot 0-8"
// @Param        request  body  SlotRequest  true  "Slot values"
// @Success      202  {object}  StatusResponse
// @Failure      400  {object}  ErrorResponse  "Invalid request"
// @Failure      422  {object}  ErrorResponse  "Precondition rejected"
// @Failure      503  {object}  ErrorResponse  "Not connected"
// @Router       /led/presets/{slot} [put]
func (r *Router) pushPreset(c *gin.Context) {
	n, ok := slotParam(c)
	if !ok {
		return
	}
	var req SlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid slot body")
		return
	}
	accepted(c, r.device.PushPreset(n, req.Slot))
}

//////////////////////////////////////////////////////////////
// Device
//////////////////////////////////////////////////////////////

// setDebugLevel handles PUT /debug/level
// @Summary      Set the firmware debug level
// @Tags         device
// @Accept       json
// @Produce      json
// @Param        request  body  DebugLevelRequest  true  "Level"
// @Success      202  {object}  StatusResponse
// @Failure      400  {object}  ErrorResponse  "Invalid request"
// @Failure      422  {object}  ErrorResponse  "Precondition rejected"
// @Failure      503  {object}  ErrorResponse  "Not connected"
// @Router       /debug/level [put]
func (r *Router) setDebugLevel(c *gin.Context) {
	var req DebugLevelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "level is required")
		return
	}
	accepted(c, r.device.SetDebugLevel(tonelight.DebugLevel(req.Level)))
}
