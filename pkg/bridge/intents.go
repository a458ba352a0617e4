// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package bridge

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Thermoquad/tonelight/pkg/tonelight"
)

// captureSettle is how long CapturePanel waits for the status reply
const captureSettle = 150 * time.Millisecond

// reject logs a failed guard and returns ErrPreconditionRejected
func (c *Controller) reject(format string, args ...any) error {
	err := fmt.Errorf("%w: %s", ErrPreconditionRejected, fmt.Sprintf(format, args...))
	c.log.Warn().Err(err).Msg("command rejected")
	return err
}

// build turns an ErrInvalidCommand from a builder into a rejection
func (c *Controller) build(cmd string, err error) (string, error) {
	if err == nil {
		return cmd, nil
	}
	if errors.Is(err, tonelight.ErrInvalidCommand) {
		return "", c.reject("%v", err)
	}
	return "", err
}

//////////////////////////////////////////////////////////////
// Motor
//////////////////////////////////////////////////////////////

// MoveMotor moves the transport by the configured travel distance, or by
// the jog distance when jog is set. The motor must report IDLE.
func (c *Controller) MoveMotor(dir tonelight.Direction, jog bool) error {
	if !c.connected() {
		return ErrNotConnected
	}

	snap := c.store.Snapshot()
	if state := snap.MotorState(); state != tonelight.MotorIdle {
		return c.reject("motor is %s, not %s", orUnknown(string(state)), tonelight.MotorIdle)
	}

	key := "motor.travel_steps"
	if jog {
		key = "motor.jog_steps"
	}
	steps, ok := snap.Number(key)
	if !ok || !(steps > 0) || math.IsInf(steps, 0) {
		return c.reject("%s is not a positive number", key)
	}

	cmd, err := c.build(tonelight.NewMotorMove(dir, steps))
	if err != nil {
		return err
	}
	return c.enqueue(cmd)
}

// StopMotor stops the motor and asks for a fresh status
func (c *Controller) StopMotor() error {
	return c.enqueue(tonelight.CmdMotorStop, tonelight.CmdStatus)
}

// SetMotorMode selects manual, semi-automatic or automatic advance
func (c *Controller) SetMotorMode(mode tonelight.MotorMode) error {
	cmd, err := c.build(tonelight.NewMotorMode(mode))
	if err != nil {
		return err
	}
	return c.enqueue(cmd)
}

// CycleMotorMode selects the mode after the one the device reports
func (c *Controller) CycleMotorMode() error {
	current := c.store.Snapshot().MotorMode()
	next := tonelight.MotorModes[0]
	for i, m := range tonelight.MotorModes {
		if m == current {
			next = tonelight.MotorModes[(i+1)%len(tonelight.MotorModes)]
			break
		}
	}
	return c.SetMotorMode(next)
}

// SetMotorSetting changes one motor parameter such as travel or jog
func (c *Controller) SetMotorSetting(name string, value float64) error {
	cmd, err := c.build(tonelight.NewMotorSetting(name, value))
	if err != nil {
		return err
	}
	return c.enqueue(cmd)
}

//////////////////////////////////////////////////////////////
// Shutter
//////////////////////////////////////////////////////////////

// Shoot fires the shutter sequence
func (c *Controller) Shoot() error {
	return c.enqueue(tonelight.CmdShutterShoot)
}

// ToggleTriplet flips the device's triplet exposure mode
func (c *Controller) ToggleTriplet() error {
	return c.enqueue(tonelight.CmdShutterTriplet)
}

// SetShutterSetting changes one shutter parameter such as fps or gap
func (c *Controller) SetShutterSetting(name string, value float64) error {
	cmd, err := c.build(tonelight.NewShutterSetting(name, value))
	if err != nil {
		return err
	}
	return c.enqueue(cmd)
}

//////////////////////////////////////////////////////////////
// LED
//////////////////////////////////////////////////////////////

// ToggleDark flips the device's dark mode
func (c *Controller) ToggleDark() error {
	return c.enqueue(tonelight.CmdLEDDark)
}

// SetLED sets one channel's brightness through the throttled path, so a
// slider drag sends at most one command per window
func (c *Controller) SetLED(ch tonelight.LEDChannel, value int) error {
	cmd, err := c.build(tonelight.NewLEDSet(ch, value))
	if err != nil {
		return err
	}
	return c.throttled(cmd)
}

// ApplyPanel sets all five channels from a slot, then asks for status
func (c *Controller) ApplyPanel(slot tonelight.PresetSlot) error {
	cmds := make([]string, 0, len(tonelight.LEDChannels)+1)
	for _, ch := range tonelight.LEDChannels {
		cmd, err := c.build(tonelight.NewLEDSet(ch, slot.Brightness(ch)))
		if err != nil {
			return err
		}
		cmds = append(cmds, cmd)
	}
	return c.enqueue(append(cmds, tonelight.CmdStatus)...)
}

// CapturePanel asks for status, waits for the reply to settle and returns
// the device's current channel values as a slot
func (c *Controller) CapturePanel(ctx context.Context) (tonelight.PresetSlot, error) {
	if err := c.enqueue(tonelight.CmdStatus); err != nil {
		return tonelight.PresetSlot{}, err
	}

	select {
	case <-ctx.Done():
		return tonelight.PresetSlot{}, ctx.Err()
	case <-time.After(captureSettle):
	}

	snap := c.store.Snapshot()
	if _, ok := snap.Lookup(tonelight.SectionLED); !ok {
		return tonelight.PresetSlot{}, c.reject("device has not reported LED values")
	}
	level := func(ch tonelight.LEDChannel) int {
		n, _ := snap.Number(tonelight.SectionLED + "." + string(ch))
		return int(n)
	}
	return tonelight.PresetSlot{
		R:  level(tonelight.ChannelRed),
		G:  level(tonelight.ChannelGreen),
		B:  level(tonelight.ChannelBlue),
		W:  level(tonelight.ChannelWhite),
		IR: level(tonelight.ChannelInfrared),
	}, nil
}

// LoadPreset recalls device preset slot n (0-8)
func (c *Controller) LoadPreset(n int) error {
	cmd, err := c.build(tonelight.NewPresetLoad(n))
	if err != nil {
		return err
	}
	return c.enqueue(cmd)
}

// SavePreset stores the current LED values in device preset slot n (0-8)
func (c *Controller) SavePreset(n int) error {
	cmd, err := c.build(tonelight.NewPresetSave(n))
	if err != nil {
		return err
	}
	return c.enqueue(cmd)
}

// PushPreset writes a slot's values into device preset slot n (0-8)
func (c *Controller) PushPreset(n int, slot tonelight.PresetSlot) error {
	cmd, err := c.build(tonelight.NewPresetPush(n, slot))
	if err != nil {
		return err
	}
	return c.enqueue(cmd)
}

// PushPresetSlots pushes each slot to the device slot of the same index,
// skipping slots whose channels are all zero. It returns how many were
// pushed.
func (c *Controller) PushPresetSlots(slots []tonelight.PresetSlot) (int, error) {
	pushed := 0
	for i, slot := range slots {
		if slot.Sum() == 0 {
			continue
		}
		if err := c.PushPreset(i, slot); err != nil {
			return pushed, err
		}
		pushed++
	}
	return pushed, nil
}

//////////////////////////////////////////////////////////////
// Device
//////////////////////////////////////////////////////////////

// Status asks the device to report its full state
func (c *Controller) Status() error {
	return c.enqueue(tonelight.CmdStatus)
}

// SetDebugLevel changes the firmware's console verbosity
func (c *Controller) SetDebugLevel(level tonelight.DebugLevel) error {
	cmd, err := c.build(tonelight.NewDebugLevel(level))
	if err != nil {
		return err
	}
	return c.enqueue(cmd)
}

// Send writes a raw console command through the throttled path
func (c *Controller) Send(cmd string) error {
	if strings.TrimSpace(cmd) == "" {
		return c.reject("empty command")
	}
	return c.throttled(cmd)
}

// SendQueued writes a raw console command through the FIFO queue
func (c *Controller) SendQueued(cmd string) error {
	if strings.TrimSpace(cmd) == "" {
		return c.reject("empty command")
	}
	return c.enqueue(cmd)
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
