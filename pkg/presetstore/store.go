// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

// Package presetstore persists the host-side library of named LED preset
// triplets. The whole library is one CBOR value under a fixed key in a
// SQLite key-value table and is rewritten on every change.
package presetstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Thermoquad/tonelight/pkg/tonelight"
	"github.com/fxamacker/cbor/v2"
	"github.com/rs/zerolog"

	_ "modernc.org/sqlite"
)

// LibraryKey is the key the preset library is stored under
const LibraryKey = "tonelight-presets"

// SlotsPerPreset is the number of panel slots in a library preset
const SlotsPerPreset = 3

var (
	// ErrPresetNotFound is returned when no preset has the given name
	ErrPresetNotFound = errors.New("preset not found")

	// ErrInvalidPreset is returned for a preset without a name
	ErrInvalidPreset = errors.New("invalid preset")
)

const schema = `
CREATE TABLE IF NOT EXISTS kv (
    key         TEXT PRIMARY KEY,
    value       BLOB NOT NULL,
    updated_at  TEXT NOT NULL DEFAULT (datetime('now'))
);`

// Preset is a named triplet of LED panel slots
type Preset struct {
	Name  string                               `json:"name" cbor:"name"`
	Slots [SlotsPerPreset]tonelight.PresetSlot `json:"slots" cbor:"slots"`
}

// DefaultPresets are written on first use
func DefaultPresets() []Preset {
	return []Preset{
		{
			Name: "Basic RGB",
			Slots: [SlotsPerPreset]tonelight.PresetSlot{
				{R: tonelight.MaxBrightness, Channel: 0},
				{G: tonelight.MaxBrightness, Channel: 1},
				{B: tonelight.MaxBrightness, Channel: 2},
			},
		},
		{
			Name: "Blank",
			Slots: [SlotsPerPreset]tonelight.PresetSlot{
				{Channel: 0},
				{Channel: 1},
				{Channel: 2},
			},
		},
	}
}

// Store is the preset library backed by a SQLite database
type Store struct {
	db   *sql.DB
	path string
	log  zerolog.Logger
	mu   sync.Mutex
}

// Open opens or creates the library database at path. An empty path
// selects the default location under the user's config directory.
func Open(path string, logger zerolog.Logger) (*Store, error) {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("failed to determine database path: %w", err)
		}
	}

	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to expand home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	dsn := fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Store{db: db, path: path, log: logger}, nil
}

// DefaultPath returns $XDG_CONFIG_HOME/tonelight/presets.db, falling back
// to ~/.config
func DefaultPath() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "tonelight", "presets.db"), nil
}

// Path returns the database file location
func (s *Store) Path() string {
	return s.path
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

// Load returns the library. On first use the defaults are persisted and
// returned. A stored value that cannot be decoded yields an empty library
// and is left in place until the next save.
func (s *Store) Load(ctx context.Context) ([]Preset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *Store) load(ctx context.Context) ([]Preset, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, LibraryKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		defaults := DefaultPresets()
		if err := s.persist(ctx, defaults); err != nil {
			return nil, err
		}
		return defaults, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read preset library: %w", err)
	}

	var presets []Preset
	if err := cbor.Unmarshal(raw, &presets); err != nil {
		s.log.Warn().Err(err).Str("key", LibraryKey).Msg("invalid preset storage, ignoring")
		return []Preset{}, nil
	}
	if presets == nil {
		presets = []Preset{}
	}
	return presets, nil
}

// Get returns the preset with the given name
func (s *Store) Get(ctx context.Context, name string) (Preset, error) {
	presets, err := s.Load(ctx)
	if err != nil {
		return Preset{}, err
	}
	for _, p := range presets {
		if p.Name == name {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("%w: %q", ErrPresetNotFound, name)
}

// Save replaces the preset with the same name, or appends it
func (s *Store) Save(ctx context.Context, preset Preset) ([]Preset, error) {
	preset.Name = strings.TrimSpace(preset.Name)
	if preset.Name == "" {
		return nil, fmt.Errorf("%w: name is empty", ErrInvalidPreset)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	presets, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	replaced := false
	for i := range presets {
		if presets[i].Name == preset.Name {
			presets[i] = preset
			replaced = true
			break
		}
	}
	if !replaced {
		presets = append(presets, preset)
	}

	if err := s.persist(ctx, presets); err != nil {
		return nil, err
	}
	return presets, nil
}

// Delete removes every preset with the given name
func (s *Store) Delete(ctx context.Context, name string) ([]Preset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	presets, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	kept := presets[:0]
	for _, p := range presets {
		if p.Name != name {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(presets) {
		return nil, fmt.Errorf("%w: %q", ErrPresetNotFound, name)
	}

	if err := s.persist(ctx, kept); err != nil {
		return nil, err
	}
	return kept, nil
}

func (s *Store) persist(ctx context.Context, presets []Preset) error {
	data, err := cbor.Marshal(presets)
	if err != nil {
		return fmt.Errorf("failed to encode preset library: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, datetime('now'))
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, LibraryKey, data)
	if err != nil {
		return fmt.Errorf("failed to write preset library: %w", err)
	}
	return nil
}
