package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/enitrat/cairo-doc/internal/driver"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "cairodoc.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestFindCairodocTomlWalksUpward(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[package]\nname = \"token\"\n")
	nested := filepath.Join(root, "contracts", "erc20")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	path, found, err := findCairodocToml(nested)
	if err != nil {
		t.Fatalf("findCairodocToml: %v", err)
	}
	if !found {
		t.Fatalf("manifest not found from nested dir")
	}
	if filepath.Dir(path) != root {
		t.Errorf("found %s, want manifest in %s", path, root)
	}
}

func TestFindCairodocTomlMissing(t *testing.T) {
	_, found, err := findCairodocToml(t.TempDir())
	if err != nil {
		t.Fatalf("findCairodocToml: %v", err)
	}
	if found {
		t.Errorf("found a manifest in an empty directory")
	}
}

func TestLoadProjectConfigValidation(t *testing.T) {
	dir := t.TempDir()

	path := writeManifest(t, dir, "[output]\ndirectory = \"docs\"\n")
	if _, err := loadProjectConfig(path); err == nil {
		t.Errorf("config without [package].name should fail")
	}

	path = writeManifest(t, dir, `[package]
name = "token"

[output]
directory = "docs"
prefix = "gen_"
`)
	cfg, err := loadProjectConfig(path)
	if err != nil {
		t.Fatalf("loadProjectConfig: %v", err)
	}
	if cfg.Output.Directory != "docs" || cfg.Output.Prefix != "gen_" {
		t.Errorf("config = %+v", cfg)
	}
}

func TestApplyManifestFlagsWin(t *testing.T) {
	manifest := &projectManifest{
		Root: "/proj",
		Config: projectConfig{
			Output: outputConfig{Directory: "docs", Prefix: "gen_"},
		},
	}

	opts := driver.DocOptions{}
	applyManifest(&opts, manifest)
	if opts.OutputDir != filepath.Join("/proj", "docs") {
		t.Errorf("OutputDir = %q", opts.OutputDir)
	}
	if opts.Prefix != "gen_" {
		t.Errorf("Prefix = %q", opts.Prefix)
	}

	opts = driver.DocOptions{OutputDir: "explicit", Prefix: "cli_"}
	applyManifest(&opts, manifest)
	if opts.OutputDir != "explicit" || opts.Prefix != "cli_" {
		t.Errorf("flags must win over manifest, got %+v", opts)
	}
}

func TestReadUIMode(t *testing.T) {
	for value, want := range map[string]uiMode{
		"":     uiModeAuto,
		"auto": uiModeAuto,
		"ON":   uiModeOn,
		"off":  uiModeOff,
	} {
		got, err := readUIMode(value)
		if err != nil {
			t.Errorf("readUIMode(%q): %v", value, err)
		}
		if got != want {
			t.Errorf("readUIMode(%q) = %v, want %v", value, got, want)
		}
	}

	if _, err := readUIMode("fancy"); err == nil {
		t.Errorf("invalid mode should error")
	}
}
