package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const noStampTomlMessage = "no stamp.toml found\nplease specify the target explicitly, e.g.:\n  stamp expand path/to/src"

type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
}

type projectConfig struct {
	Package packageConfig `toml:"package"`
	Source  sourceConfig  `toml:"source"`
	Output  outputConfig  `toml:"output"`
}

type packageConfig struct {
	Name string `toml:"name"`
}

type sourceConfig struct {
	Dir string `toml:"dir"`
}

type outputConfig struct {
	Dir string `toml:"dir"`
}

// SourceDir returns the absolute source directory ([source].dir, default
// "src").
func (m *projectManifest) SourceDir() string {
	dir := strings.TrimSpace(m.Config.Source.Dir)
	if dir == "" {
		dir = "src"
	}
	return filepath.Join(m.Root, filepath.FromSlash(dir))
}

// OutputDir returns the absolute output directory ([output].dir, default
// "gen").
func (m *projectManifest) OutputDir() string {
	dir := strings.TrimSpace(m.Config.Output.Dir)
	if dir == "" {
		dir = "gen"
	}
	return filepath.Join(m.Root, filepath.FromSlash(dir))
}

// findStampToml walks up from startDir looking for a stamp.toml.
func findStampToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "stamp.toml")
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
	manifestPath, ok, err := findStampToml(startDir)
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
