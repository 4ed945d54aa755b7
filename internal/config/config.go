// Package config persists AudioManagerSettings capacity tuning across runs.
// Settings are stored as JSON at os.UserConfigDir()/soundstage/settings.json.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// File mirrors the capacity fields of soundstage.AudioManagerSettings.
// It is a plain struct (not an import of the root package) so this package
// has no dependency on soundstage itself and can be reused by any host.
type File struct {
	NumCommands   int `json:"num_commands"`
	NumSounds     int `json:"num_sounds"`
	NumInstances  int `json:"num_instances"`
	NumParameters int `json:"num_parameters"`
	NumSubTracks  int `json:"num_sub_tracks"`
	NumSendTracks int `json:"num_send_tracks"`
	NumGroups     int `json:"num_groups"`
	NumMetronomes int `json:"num_metronomes"`
	NumSequences  int `json:"num_sequences"`
	NumStreams    int `json:"num_streams"`
}

// Default returns capacity tuning sized for a small-to-medium game.
func Default() File {
	return File{
		NumCommands:   512,
		NumSounds:     256,
		NumInstances:  128,
		NumParameters: 128,
		NumSubTracks:  32,
		NumSendTracks: 8,
		NumGroups:     32,
		NumMetronomes: 4,
		NumSequences:  64,
		NumStreams:    16,
	}
}

// Path returns the absolute path to the settings file.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "soundstage", "settings.json"), nil
}

// Load reads the settings file and returns it. If the file is missing or
// unreadable, the default settings are returned — never an error.
func Load() File {
	path, err := Path()
	if err != nil {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Default()
	}
	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Default()
	}
	return cfg
}

// Save writes cfg to disk, creating the directory if needed.
func Save(cfg File) error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
