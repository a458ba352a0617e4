// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package api

import (
	"time"

	"github.com/Thermoquad/tonelight/pkg/bridge"
	"github.com/Thermoquad/tonelight/pkg/presetstore"
	"github.com/Thermoquad/tonelight/pkg/tonelight"
)

// --- Request DTOs ---

// CommandRequest is the body of POST /commands
type CommandRequest struct {
	Command string `json:"command" binding:"required"`
	Queued  bool   `json:"queued"`
}

// MoveRequest is the body of POST /motor/move
type MoveRequest struct {
	Direction string `json:"direction" binding:"required"`
	Jog       bool   `json:"jog"`
}

// ModeRequest is the body of PUT /motor/mode
type ModeRequest struct {
	Mode string `json:"mode" binding:"required"`
}

// SettingRequest is the body of PUT /motor/settings/:name and
// PUT /shutter/settings/:name
type SettingRequest struct {
	Value *float64 `json:"value" binding:"required"`
}

// ChannelRequest is the body of PUT /led/channels/:channel
type ChannelRequest struct {
	Value *int `json:"value" binding:"required"`
}

// SlotRequest is the body of PUT /led/presets/:slot
type SlotRequest struct {
	Slot tonelight.PresetSlot `json:"slot"`
}

// DebugLevelRequest is the body of PUT /debug/level
type DebugLevelRequest struct {
	Level string `json:"level" binding:"required"`
}

// LibraryPresetRequest is the body of PUT /presets/:name
type LibraryPresetRequest struct {
	Slots [presetstore.SlotsPerPreset]tonelight.PresetSlot `json:"slots"`
}

// --- Response DTOs ---

// ErrorResponse represents an API error
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// StatusResponse acknowledges an accepted command
type StatusResponse struct {
	Status string `json:"status"`
}

// HealthResponse is returned from GET /health
type HealthResponse struct {
	Status     string                 `json:"status"`
	Connection bridge.ConnectionState `json:"connection"`
	Timestamp  time.Time              `json:"timestamp"`
}

// ConnectionResponse is returned from the /connection endpoints
type ConnectionResponse struct {
	State    bridge.ConnectionState `json:"state"`
	PortInfo string                 `json:"port_info"`
	Error    string                 `json:"error,omitempty"`
	Removed  bool                   `json:"removed,omitempty"`
}

// Labels are the display names of the enumerated device values
type Labels struct {
	Motor     string `json:"motor"`
	MotorMode string `json:"motor_mode"`
	Shutter   string `json:"shutter"`
	IOMode    string `json:"io_mode"`
}

// StatsResponse summarizes the telemetry seen this session
type StatsResponse struct {
	TotalLines     uint64  `json:"total_lines"`
	TelemetryLines uint64  `json:"telemetry_lines"`
	LogLines       uint64  `json:"log_lines"`
	MalformedLines uint64  `json:"malformed_lines"`
	ErrorLines     uint64  `json:"error_lines"`
	WarningLines   uint64  `json:"warning_lines"`
	CommandsSent   uint64  `json:"commands_sent"`
	LineRate       float64 `json:"line_rate"`
	ValidPercent   float64 `json:"valid_percent"`
}

// StateResponse is returned from GET /state
type StateResponse struct {
	Connection ConnectionResponse `json:"connection"`
	State      tonelight.State    `json:"state"`
	Labels     Labels             `json:"labels"`
	Stats      StatsResponse      `json:"stats"`
	Timestamp  time.Time          `json:"timestamp"`
}

// LogResponse is returned from GET /log
type LogResponse struct {
	Lines []string `json:"lines"`
	Count int      `json:"count"`
}

// PresetsResponse is returned from the /presets endpoints
type PresetsResponse struct {
	Presets []presetstore.Preset `json:"presets"`
	Count   int                  `json:"count"`
}

// PushResponse is returned from POST /presets/:name/push
type PushResponse struct {
	Preset string `json:"preset"`
	Pushed int    `json:"pushed"`
}
