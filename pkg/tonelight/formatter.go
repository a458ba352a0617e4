// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package tonelight

import (
	"fmt"
	"strings"
	"time"
)

// Severity is the bracketed tag a firmware log line carries, if any
type Severity uint8

const (
	SeverityNone Severity = iota
	SeverityError
	SeverityWarn
	SeverityAPI
	SeverityInfo
	SeverityDebug
	SeverityVerbose
)

var severityTags = []struct {
	tag string
	sev Severity
}{
	{"[ERROR]", SeverityError},
	{"[WARN]", SeverityWarn},
	{APIPrefix, SeverityAPI},
	{"[INFO]", SeverityInfo},
	{"[DEBUG]", SeverityDebug},
	{"[VERBOSE]", SeverityVerbose},
}

// ClassifySeverity returns the first recognised severity tag in a line
func ClassifySeverity(line string) Severity {
	for _, t := range severityTags {
		if strings.Contains(line, t.tag) {
			return t.sev
		}
	}
	return SeverityNone
}

// String returns the tag name without brackets
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "ERROR"
	case SeverityWarn:
		return "WARN"
	case SeverityAPI:
		return "API"
	case SeverityInfo:
		return "INFO"
	case SeverityDebug:
		return "DEBUG"
	case SeverityVerbose:
		return "VERBOSE"
	default:
		return ""
	}
}

// MotorStateLabel returns the operator-facing name of a motor state
func MotorStateLabel(s MotorState) string {
	switch s {
	case MotorOff:
		return "Disabled"
	case MotorIdle:
		return "Ready"
	case MotorMovingFwd, MotorMovingRev:
		return "Moving"
	case MotorFeedingFwd, MotorFeedingRev:
		return "Feeding"
	case MotorJogging:
		return "Jogging"
	default:
		return "N/A"
	}
}

// ShutterStateLabel returns the operator-facing name of a shutter state
func ShutterStateLabel(s ShutterState) string {
	switch s {
	case ShutterIdle:
		return "Ready"
	case ShutterFocus:
		return "Focus"
	case ShutterBetweenShots, ShutterOn:
		return "Shooting"
	case ShutterPostHold:
		return "Holding"
	case ShutterDone:
		return "Finished"
	default:
		return "N/A"
	}
}

// IOModeLabel returns the operator-facing name of the encoder mode
func IOModeLabel(m IOMode) string {
	switch m {
	case IOModeLED:
		return "LED"
	case IOModeMotor:
		return "Motor"
	default:
		return "N/A"
	}
}

// MotorModeLabel returns the operator-facing name of a motor mode
func MotorModeLabel(m MotorMode) string {
	switch m {
	case MotorModeManual:
		return "Manual"
	case MotorModeSemiAuto:
		return "Semi-auto"
	case MotorModeAuto:
		return "Auto"
	default:
		return "N/A"
	}
}

// FormatMessage formats a decoded line for the raw log view
func FormatMessage(ts time.Time, msg Message) string {
	timestamp := ts.Format("15:04:05.000")
	if msg.Patch != nil {
		return fmt.Sprintf("[%s] %-7s %s", timestamp, "PATCH", msg.Patch.String())
	}
	tag := msg.Severity.String()
	if tag == "" {
		tag = "LOG"
	}
	return fmt.Sprintf("[%s] %-7s %s", timestamp, tag, msg.Raw)
}
