package plugin

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ManifestFile)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadManifest(t *testing.T) {
	path := writeManifest(t, `
name = "fmt.go"
version = "1.2.0"
main = "fmt.lua"
answers = ["format"]
emits = ["format.done"]
listens = ["buffer.*"]
`)

	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Name != "fmt.go" || m.Version != "1.2.0" || m.Main != "fmt.lua" {
		t.Errorf("unexpected manifest: %+v", m)
	}
	if !reflect.DeepEqual(m.Answers, []string{"format"}) {
		t.Errorf("answers = %v", m.Answers)
	}
	if !reflect.DeepEqual(m.Listens, []string{"buffer.*"}) {
		t.Errorf("listens = %v", m.Listens)
	}
}

func TestLoadManifest_DefaultMain(t *testing.T) {
	path := writeManifest(t, `name = "p"`)

	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Main != "init.lua" {
		t.Errorf("expected default main init.lua, got %q", m.Main)
	}
}

func TestLoadManifest_MissingName(t *testing.T) {
	path := writeManifest(t, `version = "1.0.0"`)

	if _, err := LoadManifest(path); !errors.Is(err, ErrInvalidManifest) {
		t.Errorf("expected ErrInvalidManifest, got %v", err)
	}
}

func TestLoadManifest_MissingFile(t *testing.T) {
	if _, err := LoadManifest(filepath.Join(t.TempDir(), ManifestFile)); err == nil {
		t.Error("expected error for missing manifest")
	}
}
