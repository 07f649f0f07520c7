package main

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/fwojciec/mdview"
	mdjson "github.com/fwojciec/mdview/json"
	"github.com/fwojciec/mdview/yaml"
)

// loadSettings reads the config file at path. An empty path means the
// default location, which may be missing.
func loadSettings(path string) (yaml.Settings, error) {
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath()
	}
	s, err := yaml.Load(path)
	switch {
	case err == nil:
		return s, nil
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		return yaml.DefaultSettings(), nil
	default:
		return yaml.Settings{}, err
	}
}

// loadState reads the state file at path. A missing file is an empty state.
func loadState(path string) (mdview.State, error) {
	s, err := mdjson.Load(path)
	switch {
	case err == nil:
		return s, nil
	case errors.Is(err, fs.ErrNotExist):
		return mdview.State{Offsets: map[string]int{}}, nil
	default:
		return mdview.State{}, fmt.Errorf("load state: %w", err)
	}
}

// mergeOffsets keeps the offsets of documents not opened in this run.
func mergeOffsets(previous, current map[string]int) map[string]int {
	out := make(map[string]int, len(previous)+len(current))
	maps.Copy(out, previous)
	maps.Copy(out, current)
	return out
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "mdview", "config.yaml")
}

func defaultStatePath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "mdview", "state.json")
}

// openCommand returns the command that opens url with the desktop's default
// handler.
func openCommand(goos, url string) *exec.Cmd {
	switch goos {
	case "darwin":
		return exec.Command("open", url)
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return exec.Command("xdg-open", url)
	}
}

func openURL(url string) error {
	cmd := openCommand(runtime.GOOS, url)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start opener: %w", err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
