package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "stamp.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFindStampToml_WalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[package]\nname = \"demo\"\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	path, ok, err := findStampToml(nested)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatalf("manifest not found from nested dir")
	}
	if filepath.Dir(path) != root {
		t.Errorf("found %q, want manifest in %q", path, root)
	}
}

func TestFindStampToml_Missing(t *testing.T) {
	_, ok, err := findStampToml(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Errorf("found a manifest in an empty tree")
	}
}

func TestLoadProjectConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `[package]
name = "demo"

[source]
dir = "stp"

[output]
dir = "generated"
`)
	cfg, err := loadProjectConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Package.Name != "demo" {
		t.Errorf("name = %q, want demo", cfg.Package.Name)
	}

	m := &projectManifest{Path: path, Root: dir, Config: cfg}
	if got, want := m.SourceDir(), filepath.Join(dir, "stp"); got != want {
		t.Errorf("SourceDir = %q, want %q", got, want)
	}
	if got, want := m.OutputDir(), filepath.Join(dir, "generated"); got != want {
		t.Errorf("OutputDir = %q, want %q", got, want)
	}
}

func TestLoadProjectConfig_Defaults(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "[package]\nname = \"demo\"\n")
	cfg, err := loadProjectConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	m := &projectManifest{Path: path, Root: dir, Config: cfg}
	if got, want := m.SourceDir(), filepath.Join(dir, "src"); got != want {
		t.Errorf("SourceDir = %q, want %q", got, want)
	}
	if got, want := m.OutputDir(), filepath.Join(dir, "gen"); got != want {
		t.Errorf("OutputDir = %q, want %q", got, want)
	}
}

func TestLoadProjectConfig_MissingName(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "[source]\ndir = \"src\"\n")
	if _, err := loadProjectConfig(path); err == nil {
		t.Errorf("expected error for missing [package].name")
	}
}
