// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package tonelight

import (
	"errors"
	"fmt"
	"time"
)

// Statistics tracks line counts and error rates for a telemetry stream
type Statistics struct {
	StartTime      time.Time
	LastUpdateTime time.Time

	// Counters
	TotalLines       uint64
	TelemetryLines   uint64
	LogLines         uint64
	MalformedLines   uint64
	SkippedPresets   uint64
	FractionalPreset uint64
	ErrorLines       uint64
	WarningLines     uint64
	CommandsSent     uint64

	// Rates (calculated)
	LineRate  float64 // lines/sec
	ErrorRate float64 // malformed + device errors per sec
}

// NewStatistics creates a new statistics tracker
func NewStatistics() *Statistics {
	now := time.Now()
	return &Statistics{
		StartTime:      now,
		LastUpdateTime: now,
	}
}

// Update counts one decoded line and its decode error, if any
func (s *Statistics) Update(msg Message, decodeErr error) {
	s.TotalLines++
	s.LastUpdateTime = time.Now()

	switch msg.Severity {
	case SeverityError:
		s.ErrorLines++
	case SeverityWarn:
		s.WarningLines++
	}

	if decodeErr != nil {
		s.MalformedLines++
		return
	}

	if msg.Kind == LineLog {
		s.LogLines++
		return
	}
	s.TelemetryLines++

	if msg.Warnings != nil {
		for _, err := range unwrapJoined(msg.Warnings) {
			if errors.Is(err, ErrFractionalPreset) {
				s.FractionalPreset++
			} else {
				s.SkippedPresets++
			}
		}
	}
}

func unwrapJoined(err error) []error {
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		return j.Unwrap()
	}
	return []error{err}
}

// CountCommand records one command written to the device
func (s *Statistics) CountCommand() {
	s.CommandsSent++
}

// CalculateRates calculates line and error rates
func (s *Statistics) CalculateRates() {
	elapsed := time.Since(s.StartTime).Seconds()
	if elapsed > 0 {
		s.LineRate = float64(s.TotalLines) / elapsed
		s.ErrorRate = float64(s.MalformedLines+s.ErrorLines) / elapsed
	}
}

// ValidPercent returns the share of lines that decoded cleanly
func (s *Statistics) ValidPercent() float64 {
	if s.TotalLines == 0 {
		return 0
	}
	return float64(s.TotalLines-s.MalformedLines) * 100.0 / float64(s.TotalLines)
}

// String returns a formatted statistics summary
func (s *Statistics) String() string {
	s.CalculateRates()

	var malformedPercent float64
	if s.TotalLines > 0 {
		malformedPercent = float64(s.MalformedLines) * 100.0 / float64(s.TotalLines)
	}

	elapsed := time.Since(s.StartTime)

	result := fmt.Sprintf("=== Statistics (%.0f seconds) ===\n", elapsed.Seconds())
	result += fmt.Sprintf("Total Lines:     %8d\n", s.TotalLines)
	result += fmt.Sprintf("Telemetry:       %8d\n", s.TelemetryLines)
	result += fmt.Sprintf("Log Lines:       %8d\n", s.LogLines)

	if s.MalformedLines > 0 {
		result += fmt.Sprintf("Malformed:       %8d (%.1f%%)\n", s.MalformedLines, malformedPercent)
	}
	if s.SkippedPresets > 0 {
		result += fmt.Sprintf("  Skipped Presets:  %5d\n", s.SkippedPresets)
	}
	if s.FractionalPreset > 0 {
		result += fmt.Sprintf("  Fractional:       %5d\n", s.FractionalPreset)
	}
	if s.ErrorLines > 0 {
		result += fmt.Sprintf("Device Errors:   %8d\n", s.ErrorLines)
	}
	if s.WarningLines > 0 {
		result += fmt.Sprintf("Device Warnings: %8d\n", s.WarningLines)
	}
	if s.CommandsSent > 0 {
		result += fmt.Sprintf("Commands Sent:   %8d\n", s.CommandsSent)
	}

	result += fmt.Sprintf("Line Rate:       %8.1f lines/sec\n", s.LineRate)
	result += fmt.Sprintf("Error Rate:      %8.1f errors/sec\n", s.ErrorRate)
	result += "================================\n"

	return result
}

// Reset resets all statistics counters
func (s *Statistics) Reset() {
	*s = *NewStatistics()
}
