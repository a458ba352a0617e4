// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package presetstore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/Thermoquad/tonelight/pkg/tonelight"
	"github.com/rs/zerolog"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "presets.db"), zerolog.Nop())
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func names(presets []Preset) []string {
	out := make([]string, len(presets))
	for i, p := range presets {
		out[i] = p.Name
	}
	return out
}

func TestStore_FirstLoadPersistsDefaults(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	presets, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(presets) != 2 || presets[0].Name != "Basic RGB" || presets[1].Name != "Blank" {
		t.Fatalf("Load() = %v, want the defaults", names(presets))
	}
	if presets[0].Slots[1] != (tonelight.PresetSlot{G: 1023, Channel: 1}) {
		t.Errorf("Basic RGB slot 1 = %+v", presets[0].Slots[1])
	}

	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM kv WHERE key = ?`, LibraryKey).Scan(&count); err != nil {
		t.Fatalf("query error: %v", err)
	}
	if count != 1 {
		t.Errorf("defaults not persisted (rows = %d)", count)
	}
}

func TestStore_SaveReplacesOrAppends(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	warm := Preset{Name: "Warm", Slots: [SlotsPerPreset]tonelight.PresetSlot{{R: 800, W: 200}}}
	presets, err := s.Save(ctx, warm)
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if got := names(presets); len(got) != 3 || got[2] != "Warm" {
		t.Fatalf("names after append = %v", got)
	}

	warm.Slots[0].R = 900
	if _, err := s.Save(ctx, warm); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	got, err := s.Get(ctx, "Warm")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.Slots[0].R != 900 {
		t.Errorf("Warm slot 0 R = %d, want 900", got.Slots[0].R)
	}

	all, _ := s.Load(ctx)
	if len(all) != 3 {
		t.Errorf("len(Load()) = %d, want 3 (replace, not append)", len(all))
	}

	if _, err := s.Save(ctx, Preset{Name: "  "}); !errors.Is(err, ErrInvalidPreset) {
		t.Errorf("Save(blank name) error = %v, want ErrInvalidPreset", err)
	}
}

func TestStore_Delete(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	presets, err := s.Delete(ctx, "Blank")
	if err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if got := names(presets); len(got) != 1 || got[0] != "Basic RGB" {
		t.Errorf("names after delete = %v", got)
	}

	if _, err := s.Delete(ctx, "Blank"); !errors.Is(err, ErrPresetNotFound) {
		t.Errorf("second Delete error = %v, want ErrPresetNotFound", err)
	}
	if _, err := s.Get(ctx, "Blank"); !errors.Is(err, ErrPresetNotFound) {
		t.Errorf("Get(deleted) error = %v, want ErrPresetNotFound", err)
	}
}

func TestStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "presets.db")

	s, err := Open(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	if _, err := s.Save(ctx, Preset{Name: "Scan"}); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	s.Close()

	s, err = Open(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	defer s.Close()

	if _, err := s.Get(ctx, "Scan"); err != nil {
		t.Errorf("Get after reopen error: %v", err)
	}
}

func TestStore_CorruptValueYieldsEmptyLibrary(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	if _, err := s.db.Exec(`INSERT INTO kv (key, value) VALUES (?, ?)`, LibraryKey, []byte("not cbor")); err != nil {
		t.Fatalf("insert error: %v", err)
	}

	presets, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(presets) != 0 {
		t.Errorf("Load() = %v, want empty", names(presets))
	}
}
