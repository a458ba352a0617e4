// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package tonelight

// Wire constants
const (
	// APIPrefix marks a telemetry line carrying one key=value update
	APIPrefix = "[API]"

	// PresetsKey is the only key whose value uses the preset table encoding
	PresetsKey = "led.presets"

	// DefaultBaudRate is the rate the firmware's USB CDC console runs at
	DefaultBaudRate = 115200

	// MaxBrightness is the upper bound of an LED channel (10-bit PWM)
	MaxBrightness = 1023

	// Device preset slots are addressed 0-8
	MinPresetSlot = 0
	MaxPresetSlot = 8

	// PresetFieldCount is r, g, b, ir, w, channel
	PresetFieldCount = 6
)

// Top-level sections of the device state the firmware reports
const (
	SectionLED       = "led"
	SectionMotor     = "motor"
	SectionShutter   = "shutter"
	SectionIndicator = "indicator"
	SectionDevice    = "device"
	SectionDebug     = "debug"
)

// KnownSections lists every top-level key the firmware is known to emit
var KnownSections = map[string]bool{
	SectionLED:       true,
	SectionMotor:     true,
	SectionShutter:   true,
	SectionIndicator: true,
	SectionDevice:    true,
	SectionDebug:     true,
}

// MotorState is the device-reported motor state machine value
type MotorState string

const (
	MotorOff        MotorState = "OFF"
	MotorIdle       MotorState = "IDLE"
	MotorMovingFwd  MotorState = "MOVING_FWD"
	MotorMovingRev  MotorState = "MOVING_REV"
	MotorFeedingFwd MotorState = "FEEDING_FWD"
	MotorFeedingRev MotorState = "FEEDING_REV"
	MotorJogging    MotorState = "JOGGING"
)

// MotorMode selects how the transport advances frames
type MotorMode string

const (
	MotorModeManual   MotorMode = "MANUAL"
	MotorModeSemiAuto MotorMode = "SEMI_AUTO"
	MotorModeAuto     MotorMode = "AUTO"
)

// MotorModes in the order the control panel cycles through them
var MotorModes = []MotorMode{MotorModeManual, MotorModeSemiAuto, MotorModeAuto}

// ShutterState is the device-reported shutter state machine value
type ShutterState string

const (
	ShutterIdle         ShutterState = "IDLE"
	ShutterFocus        ShutterState = "FOCUS"
	ShutterBetweenShots ShutterState = "BETWEEN_SHOTS"
	ShutterOn           ShutterState = "SHUTTER_ON"
	ShutterPostHold     ShutterState = "POST_HOLD"
	ShutterDone         ShutterState = "DONE"
)

// IOMode is what the device's physical encoder currently drives
type IOMode string

const (
	IOModeLED   IOMode = "LED_CONTROL"
	IOModeMotor IOMode = "MOTOR_CONTROL"
)

// DebugLevel is the firmware's telemetry verbosity
type DebugLevel string

const (
	DebugNone    DebugLevel = "none"
	DebugAPI     DebugLevel = "api"
	DebugError   DebugLevel = "error"
	DebugWarning DebugLevel = "warning"
	DebugInfo    DebugLevel = "info"
	DebugDebug   DebugLevel = "debug"
	DebugVerbose DebugLevel = "verbose"
)

// DebugLevels in increasing verbosity
var DebugLevels = []DebugLevel{DebugNone, DebugAPI, DebugError, DebugWarning, DebugInfo, DebugDebug, DebugVerbose}

// LEDChannel names a brightness channel in the `led set` command
type LEDChannel string

const (
	ChannelRed      LEDChannel = "r"
	ChannelGreen    LEDChannel = "g"
	ChannelBlue     LEDChannel = "b"
	ChannelWhite    LEDChannel = "w"
	ChannelInfrared LEDChannel = "ir"
)

// LEDChannels in panel order
var LEDChannels = []LEDChannel{ChannelRed, ChannelGreen, ChannelBlue, ChannelWhite, ChannelInfrared}

// Direction of a motor move
type Direction string

const (
	Forward  Direction = "forward"
	Backward Direction = "backward"
)

// Motor settings accepted by `motor <name> <value>`
var MotorSettings = map[string]string{
	"travel":     "travel_mm",
	"jog":        "jog_mm",
	"backlash":   "backlash_mm",
	"feedspeed":  "feed_speed",
	"microsteps": "microsteps",
	"diameter":   "roller_diameter",
	"frames":     "frames_auto",
	"speed":      "max_speed",
	"accel":      "max_accel",
}

// Shutter settings accepted by `shutter <name> <value>`
var ShutterSettings = map[string]string{
	"focus":  "focus_time",
	"factor": "hold_factor",
	"fps":    "fps",
	"gap":    "time_between_shots",
}
