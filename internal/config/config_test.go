// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaultsWhenNoFile(t *testing.T) {
	cfg, path, err := loadWithOptions(context.Background(), LoadOptions{
		ConfigDirPath: t.TempDir(),
	})
	if err != nil {
		t.Fatalf("loadWithOptions: %v", err)
	}
	if path != "" {
		t.Errorf("resolved path should be empty without a file, got %q", path)
	}
	if !cfg.Sources.Cargo || cfg.Sources.Pip {
		t.Errorf("defaults not applied: %+v", cfg.Sources)
	}
	if cfg.Usage.Mode != UsageModeScan {
		t.Errorf("usage mode = %q, want scan", cfg.Usage.Mode)
	}
	if cfg.UI.ColorScheme != ColorSchemeAuto {
		t.Errorf("color scheme = %q, want auto", cfg.UI.ColorScheme)
	}
}

func TestLoadFromConfigDir(t *testing.T) {
	dir := t.TempDir()
	content := `
[sources]
pip = true
flatpak = false

[usage]
mode = "hook"
shell = "fish"

[ui]
verbose = true
`
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, resolved, err := loadWithOptions(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("loadWithOptions: %v", err)
	}
	if resolved != path {
		t.Errorf("resolved = %q, want %q", resolved, path)
	}

	// File values override defaults; untouched keys keep defaults.
	if !cfg.Sources.Pip || cfg.Sources.Flatpak {
		t.Errorf("file toggles not applied: %+v", cfg.Sources)
	}
	if !cfg.Sources.Cargo {
		t.Error("cargo default should survive a partial file")
	}
	if cfg.Usage.Mode != UsageModeHook || cfg.Usage.Shell != "fish" {
		t.Errorf("usage = %+v, want hook/fish", cfg.Usage)
	}
	if !cfg.UI.Verbose {
		t.Error("ui.verbose should be true")
	}
}

func TestLoadExplicitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	if err := os.WriteFile(path, []byte("[ui]\ncolor_scheme = \"dark\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, resolved, err := loadWithOptions(context.Background(), LoadOptions{ConfigFilePath: path})
	if err != nil {
		t.Fatalf("loadWithOptions: %v", err)
	}
	if resolved != path {
		t.Errorf("resolved = %q, want %q", resolved, path)
	}
	if cfg.UI.ColorScheme != ColorSchemeDark {
		t.Errorf("color scheme = %q, want dark", cfg.UI.ColorScheme)
	}
}

func TestLoadExplicitFileMissing(t *testing.T) {
	_, _, err := loadWithOptions(context.Background(), LoadOptions{
		ConfigFilePath: filepath.Join(t.TempDir(), "nope.toml"),
	})
	if err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
	if !strings.Contains(err.Error(), "config file not found") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadMalformedTOML(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[sources\ncargo ="), 0o644); err != nil {
		t.Fatal(err)
	}

	_, _, err := loadWithOptions(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[usage]\nmode = \"realtime\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, _, err := loadWithOptions(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !errors.Is(err, ErrInvalidUsageMode) {
		t.Errorf("error should wrap ErrInvalidUsageMode, got %v", err)
	}
}

func TestLoadCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := loadWithOptions(ctx, LoadOptions{ConfigDirPath: t.TempDir()})
	if err == nil {
		t.Fatal("expected error for canceled context")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	SetConfigDirOverride(t.TempDir())
	defer Reset()

	cfg := DefaultConfig()
	cfg.Sources.Brew = true
	cfg.Usage.Mode = UsageModeHook
	cfg.Usage.Shell = "zsh"
	cfg.UI.ColorScheme = ColorSchemeLight

	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	dir, err := ConfigDir()
	if err != nil {
		t.Fatal(err)
	}
	loaded, _, err := loadWithOptions(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("reload: %v", err)
	}

	if !loaded.Sources.Brew {
		t.Error("brew toggle lost in round trip")
	}
	if loaded.Usage.Mode != UsageModeHook || loaded.Usage.Shell != "zsh" {
		t.Errorf("usage lost in round trip: %+v", loaded.Usage)
	}
	if loaded.UI.ColorScheme != ColorSchemeLight {
		t.Errorf("color scheme lost in round trip: %q", loaded.UI.ColorScheme)
	}
}

func TestGenerateTOML(t *testing.T) {
	t.Parallel()

	out, err := GenerateTOML(DefaultConfig())
	if err != nil {
		t.Fatalf("GenerateTOML: %v", err)
	}
	for _, want := range []string{"[sources]", "[usage]", "[ui]", "cargo = true", "mode = 'scan'"} {
		if !strings.Contains(out, want) {
			t.Errorf("generated TOML missing %q:\n%s", want, out)
		}
	}
}

func TestCreateDefaultConfigIdempotent(t *testing.T) {
	SetConfigDirOverride(t.TempDir())
	defer Reset()

	if err := CreateDefaultConfig(); err != nil {
		t.Fatalf("CreateDefaultConfig: %v", err)
	}

	dir, _ := ConfigDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("# sentinel\n[ui]\nverbose = true\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	// Second call must not clobber an existing file.
	if err := CreateDefaultConfig(); err != nil {
		t.Fatalf("CreateDefaultConfig (second): %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "sentinel") {
		t.Error("existing config file was overwritten")
	}
}

func TestProviderLoad(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[ui]\nverbose = true\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.UI.Verbose {
		t.Error("provider should surface file values")
	}
}
