package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/enitrat/cairo-doc/internal/driver"
)

// projectManifest is an optional cairodoc.toml discovered upward from the
// working directory. Command-line flags always win over manifest values.
type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
}

type projectConfig struct {
	Package packageConfig `toml:"package"`
	Output  outputConfig  `toml:"output"`
}

type packageConfig struct {
	Name string `toml:"name"`
}

type outputConfig struct {
	Directory string `toml:"directory"`
	Prefix    string `toml:"prefix"`
	InPlace   bool   `toml:"in_place"`
}

func findCairodocToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "cairodoc.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadProjectManifest(startDir string) (*projectManifest, bool, error) {
	manifestPath, ok, err := findCairodocToml(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := loadProjectConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &projectManifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

func loadProjectConfig(path string) (projectConfig, error) {
	var cfg projectConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return projectConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return projectConfig{}, fmt.Errorf("%s: missing [package]", path)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return projectConfig{}, fmt.Errorf("%s: missing [package].name", path)
	}
	return cfg, nil
}

// applyManifest fills options the user did not set explicitly.
func applyManifest(opts *driver.DocOptions, manifest *projectManifest) {
	out := manifest.Config.Output
	if opts.OutputDir == "" && out.Directory != "" {
		// Относительные пути манифеста привязаны к его каталогу.
		if filepath.IsAbs(out.Directory) {
			opts.OutputDir = out.Directory
		} else {
			opts.OutputDir = filepath.Join(manifest.Root, out.Directory)
		}
	}
	if opts.Prefix == "" && out.Prefix != "" {
		opts.Prefix = out.Prefix
	}
	if !opts.InPlace && out.InPlace && opts.OutputDir == "" && opts.OutputName == "" {
		opts.InPlace = true
	}
}
