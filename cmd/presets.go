// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Thermoquad/tonelight/pkg/presetstore"
	"github.com/Thermoquad/tonelight/pkg/tonelight"
	"github.com/spf13/cobra"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "Manage the host-side library of named preset triplets",
	Long: `Each library preset is a name and three LED slots. A slot is written as
r,g,b,ir,w[,channel] with values 0-1023; the channel defaults to the slot's
position.

The library lives in a SQLite database (see presets.database in the config).`,
}

var presetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List library presets",
	Args:  cobra.NoArgs,
	RunE:  runPresetsList,
}

var presetsSetCmd = &cobra.Command{
	Use:   "set <name> <slot> [slot] [slot]",
	Short: "Create or replace a library preset",
	Args:  cobra.RangeArgs(2, 1+presetstore.SlotsPerPreset),
	RunE:  runPresetsSet,
}

var presetsDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a library preset",
	Args:  cobra.ExactArgs(1),
	RunE:  runPresetsDelete,
}

var presetsPushCmd = &cobra.Command{
	Use:   "push <name>",
	Short: "Write a library preset into device preset slots 0-2",
	Long: `Push each non-blank slot of a library preset into the device preset slot of
the same position. Slots whose channels are all zero are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runPresetsPush,
}

var presetsCaptureCmd = &cobra.Command{
	Use:   "capture <name> <slot>",
	Short: "Store the device's current LED values in one slot of a library preset",
	Long: `Ask the device for status, read back its LED values and store them in slot
0-2 of the named preset. The preset is created blank if it does not exist.`,
	Args: cobra.ExactArgs(2),
	RunE: runPresetsCapture,
}

func init() {
	rootCmd.AddCommand(presetsCmd)
	presetsCmd.AddCommand(presetsListCmd, presetsSetCmd, presetsDeleteCmd, presetsPushCmd, presetsCaptureCmd)
}

// parseSlot reads r,g,b,ir,w[,channel]
func parseSlot(s string, index int) (tonelight.PresetSlot, error) {
	fields := strings.Split(s, ",")
	if len(fields) != 5 && len(fields) != 6 {
		return tonelight.PresetSlot{}, fmt.Errorf("slot %q: want r,g,b,ir,w[,channel]", s)
	}

	vals := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return tonelight.PresetSlot{}, fmt.Errorf("slot %q: %q is not an integer", s, f)
		}
		if i < 5 && (n < 0 || n > tonelight.MaxBrightness) {
			return tonelight.PresetSlot{}, fmt.Errorf("slot %q: %d is outside 0-%d", s, n, tonelight.MaxBrightness)
		}
		vals[i] = n
	}

	slot := tonelight.PresetSlot{R: vals[0], G: vals[1], B: vals[2], IR: vals[3], W: vals[4], Channel: index}
	if len(vals) == 6 {
		slot.Channel = vals[5]
	}
	return slot, nil
}

// blankPreset has every slot off, with channels 0-2
func blankPreset(name string) presetstore.Preset {
	p := presetstore.Preset{Name: name}
	for i := range p.Slots {
		p.Slots[i].Channel = i
	}
	return p
}

func printPreset(p presetstore.Preset) {
	fmt.Printf("%s\n", p.Name)
	for i, s := range p.Slots {
		fmt.Printf("  %d: %s\n", i, s.Fields())
	}
}

func runPresetsList(cmd *cobra.Command, args []string) error {
	library, err := openLibrary()
	if err != nil {
		return err
	}
	defer library.Close()

	presets, err := library.Load(context.Background())
	if err != nil {
		return err
	}
	for _, p := range presets {
		printPreset(p)
	}
	return nil
}

func runPresetsSet(cmd *cobra.Command, args []string) error {
	preset := blankPreset(args[0])
	for i, raw := range args[1:] {
		slot, err := parseSlot(raw, i)
		if err != nil {
			return err
		}
		preset.Slots[i] = slot
	}

	library, err := openLibrary()
	if err != nil {
		return err
	}
	defer library.Close()

	if _, err := library.Save(context.Background(), preset); err != nil {
		return err
	}
	printPreset(preset)
	return nil
}

func runPresetsDelete(cmd *cobra.Command, args []string) error {
	library, err := openLibrary()
	if err != nil {
		return err
	}
	defer library.Close()

	if _, err := library.Delete(context.Background(), args[0]); err != nil {
		return err
	}
	fmt.Printf("Deleted %s\n", args[0])
	return nil
}

func runPresetsPush(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext()
	defer stop()

	library, err := openLibrary()
	if err != nil {
		return err
	}
	defer library.Close()

	preset, err := library.Get(ctx, args[0])
	if err != nil {
		return err
	}

	ctrl, err := connectController(ctx)
	if err != nil {
		return err
	}
	defer ctrl.Close()

	pushed, err := ctrl.PushPresetSlots(preset.Slots[:])
	if err != nil {
		return err
	}
	if err := ctrl.WaitIdle(ctx); err != nil {
		return err
	}
	fmt.Printf("Pushed %d of %d slots from %s\n", pushed, len(preset.Slots), preset.Name)
	return nil
}

func runPresetsCapture(cmd *cobra.Command, args []string) error {
	name := args[0]
	index, err := strconv.Atoi(args[1])
	if err != nil || index < 0 || index >= presetstore.SlotsPerPreset {
		return fmt.Errorf("slot must be 0-%d", presetstore.SlotsPerPreset-1)
	}

	ctx, stop := signalContext()
	defer stop()

	library, err := openLibrary()
	if err != nil {
		return err
	}
	defer library.Close()

	preset, err := library.Get(ctx, name)
	if errors.Is(err, presetstore.ErrPresetNotFound) {
		preset = blankPreset(name)
	} else if err != nil {
		return err
	}

	ctrl, err := connectController(ctx)
	if err != nil {
		return err
	}
	defer ctrl.Close()

	// Let the connect-time status reply land first
	if err := ctrl.WaitIdle(ctx); err != nil {
		return err
	}
	slot, err := ctrl.CapturePanel(ctx)
	if err != nil {
		return err
	}
	slot.Channel = preset.Slots[index].Channel
	preset.Slots[index] = slot

	if _, err := library.Save(ctx, preset); err != nil {
		return err
	}
	printPreset(preset)
	return nil
}
