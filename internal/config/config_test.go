package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"soundstage/internal/config"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()
	if cfg.NumCommands <= 0 {
		t.Error("expected a positive default command queue capacity")
	}
	if cfg.NumInstances <= 0 {
		t.Error("expected a positive default instance capacity")
	}
	if cfg.NumSubTracks <= 0 {
		t.Error("expected a positive default sub-track capacity")
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	cfg := config.File{
		NumCommands:   1024,
		NumSounds:     64,
		NumInstances:  32,
		NumParameters: 16,
		NumSubTracks:  4,
		NumSendTracks: 2,
		NumGroups:     8,
		NumMetronomes: 1,
		NumStreams:    4,
	}

	if err := config.Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded := config.Load()
	if loaded != cfg {
		t.Errorf("loaded settings differ: want %+v got %+v", cfg, loaded)
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg := config.Load()
	if cfg.NumInstances == 0 {
		t.Error("expected non-zero defaults")
	}
}

func TestLoadCorruptFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	path := filepath.Join(dir, "soundstage", "settings.json")
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("not json {{{"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg := config.Load()
	if cfg != config.Default() {
		t.Errorf("expected defaults on corrupt file, got %+v", cfg)
	}
}

func TestSaveCreatesDirectory(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	if err := config.Save(config.Default()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	path := filepath.Join(dir, "soundstage", "settings.json")
	if _, err := os.Stat(path); err != nil {
		t.Errorf("settings file not created: %v", err)
	}
}
