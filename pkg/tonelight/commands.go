// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package tonelight

// Command builder functions return the text of one host-to-device frame,
// without the trailing newline the transport appends. Builders taking
// user input validate it and return ErrInvalidCommand when the device
// would reject it anyway.

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidCommand is returned when a command argument is out of range
var ErrInvalidCommand = errors.New("invalid command")

// Fixed commands
const (
	CmdStatus         = "status"
	CmdLEDDark        = "led dark"
	CmdMotorStop      = "motor stop"
	CmdShutterShoot   = "shutter shoot"
	CmdShutterTriplet = "shutter triplet"
)

// ValidPresetSlot reports whether n addresses a device preset slot
func ValidPresetSlot(n int) bool {
	return n >= MinPresetSlot && n <= MaxPresetSlot
}

func checkPresetSlot(n int) error {
	if !ValidPresetSlot(n) {
		return fmt.Errorf("%w: preset slot %d outside %d-%d", ErrInvalidCommand, n, MinPresetSlot, MaxPresetSlot)
	}
	return nil
}

// NewLEDSet creates `led set <channel> <value>`
func NewLEDSet(ch LEDChannel, value int) (string, error) {
	switch ch {
	case ChannelRed, ChannelGreen, ChannelBlue, ChannelWhite, ChannelInfrared:
	default:
		return "", fmt.Errorf("%w: unknown LED channel %q", ErrInvalidCommand, ch)
	}
	if value < 0 || value > MaxBrightness {
		return "", fmt.Errorf("%w: brightness %d outside 0-%d", ErrInvalidCommand, value, MaxBrightness)
	}
	return fmt.Sprintf("led set %s %d", ch, value), nil
}

// NewPresetLoad creates `led preset load <n>`
func NewPresetLoad(n int) (string, error) {
	if err := checkPresetSlot(n); err != nil {
		return "", err
	}
	return fmt.Sprintf("led preset load %d", n), nil
}

// NewPresetSave creates `led preset save <n>`
func NewPresetSave(n int) (string, error) {
	if err := checkPresetSlot(n); err != nil {
		return "", err
	}
	return fmt.Sprintf("led preset save %d", n), nil
}

// NewPresetPush creates `led preset push <n> r.<r> g.<g> b.<b> ir.<ir> w.<w> ch.<ch>`
func NewPresetPush(n int, slot PresetSlot) (string, error) {
	if err := checkPresetSlot(n); err != nil {
		return "", err
	}
	return fmt.Sprintf("led preset push %d %s", n, slot.Fields()), nil
}

// NewMotorMove creates `motor <forward|backward> <steps>`
func NewMotorMove(dir Direction, steps float64) (string, error) {
	if dir != Forward && dir != Backward {
		return "", fmt.Errorf("%w: unknown direction %q", ErrInvalidCommand, dir)
	}
	if !(steps > 0) || math.IsInf(steps, 0) {
		return "", fmt.Errorf("%w: step count %s is not positive", ErrInvalidCommand, FormatNumber(steps))
	}
	return fmt.Sprintf("motor %s %s", dir, FormatNumber(steps)), nil
}

// NewMotorMode creates `motor mode <manual|semi|auto>`.
// SEMI_AUTO is spelled "semi" on the wire.
func NewMotorMode(mode MotorMode) (string, error) {
	switch mode {
	case MotorModeManual:
		return "motor mode manual", nil
	case MotorModeSemiAuto:
		return "motor mode semi", nil
	case MotorModeAuto:
		return "motor mode auto", nil
	}
	return "", fmt.Errorf("%w: unknown motor mode %q", ErrInvalidCommand, mode)
}

// NewMotorSetting creates `motor <setting> <value>`
func NewMotorSetting(name string, value float64) (string, error) {
	if _, ok := MotorSettings[name]; !ok {
		return "", fmt.Errorf("%w: unknown motor setting %q", ErrInvalidCommand, name)
	}
	return settingCommand("motor", name, value)
}

// NewShutterSetting creates `shutter <setting> <value>`
func NewShutterSetting(name string, value float64) (string, error) {
	if _, ok := ShutterSettings[name]; !ok {
		return "", fmt.Errorf("%w: unknown shutter setting %q", ErrInvalidCommand, name)
	}
	return settingCommand("shutter", name, value)
}

func settingCommand(family, name string, value float64) (string, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return "", fmt.Errorf("%w: %s %s value is not finite", ErrInvalidCommand, family, name)
	}
	return fmt.Sprintf("%s %s %s", family, name, FormatNumber(value)), nil
}

// NewDebugLevel creates `debug level <level>`
func NewDebugLevel(level DebugLevel) (string, error) {
	for _, l := range DebugLevels {
		if l == level {
			return "debug level " + string(level), nil
		}
	}
	return "", fmt.Errorf("%w: unknown debug level %q", ErrInvalidCommand, level)
}

// FormatNumber prints a number without exponent or trailing zeros
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ParseMotorMode accepts MANUAL/SEMI_AUTO/AUTO in any case, and the wire
// spellings manual/semi/auto
func ParseMotorMode(s string) (MotorMode, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "MANUAL":
		return MotorModeManual, nil
	case "SEMI_AUTO", "SEMI":
		return MotorModeSemiAuto, nil
	case "AUTO":
		return MotorModeAuto, nil
	}
	return "", fmt.Errorf("%w: unknown motor mode %q", ErrInvalidCommand, s)
}
