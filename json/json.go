// Package json persists viewer state as JSON files.
package json

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fwojciec/mdview"
)

// envelope is the v1 wire format for persisted state.
type envelope struct {
	Version   int           `json:"version"`
	Current   string        `json:"current"`
	UpdatedAt time.Time     `json:"updated_at"`
	Documents []documentDTO `json:"documents"`
}

type documentDTO struct {
	Path   string `json:"path"`
	Offset int    `json:"offset"`
}

// MarshalState serializes State to JSON in v1 envelope format. Documents
// are sorted by path so equal states encode identically.
func MarshalState(s mdview.State) ([]byte, error) {
	env := envelope{
		Version:   1,
		Current:   s.Current,
		UpdatedAt: s.UpdatedAt,
		Documents: make([]documentDTO, 0, len(s.Offsets)),
	}
	for path, off := range s.Offsets {
		if off < 0 {
			return nil, fmt.Errorf("document %s: negative offset %d", path, off)
		}
		env.Documents = append(env.Documents, documentDTO{Path: path, Offset: off})
	}
	sort.Slice(env.Documents, func(i, j int) bool {
		return env.Documents[i].Path < env.Documents[j].Path
	})
	return json.MarshalIndent(env, "", "  ")
}

// UnmarshalState deserializes State from JSON in v1 envelope format.
func UnmarshalState(data []byte) (mdview.State, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return mdview.State{}, fmt.Errorf("unmarshal envelope: %w", err)
	}
	if env.Version != 1 {
		return mdview.State{}, fmt.Errorf("unsupported envelope version: %d", env.Version)
	}
	offsets := make(map[string]int, len(env.Documents))
	for i, d := range env.Documents {
		if d.Path == "" {
			return mdview.State{}, fmt.Errorf("document %d: empty path", i)
		}
		offsets[d.Path] = max(d.Offset, 0)
	}
	return mdview.State{
		Current:   env.Current,
		Offsets:   offsets,
		UpdatedAt: env.UpdatedAt,
	}, nil
}

// Save writes State to a JSON file, creating parent directories as needed.
func Save(path string, s mdview.State) error {
	data, err := MarshalState(s)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Load reads State from a JSON file.
func Load(path string) (mdview.State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return mdview.State{}, fmt.Errorf("read file: %w", err)
	}
	return UnmarshalState(data)
}
