package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCmdPlane(t *testing.T) {
	objPath := filepath.Join(t.TempDir(), "plane.obj")

	var out bytes.Buffer
	if err := cmdPlane([]string{"-width", "4", "-height", "2", "-resolution", "2", "-obj", objPath}, &out); err != nil {
		t.Fatalf("plane: %v", err)
	}

	s := out.String()
	for _, want := range []string{"vertices:  9", "indices:   24", "triangles: 8"} {
		if !strings.Contains(s, want) {
			t.Errorf("output missing %q:\n%s", want, s)
		}
	}

	data, err := os.ReadFile(objPath)
	if err != nil {
		t.Fatalf("read obj: %v", err)
	}
	if got := strings.Count(string(data), "\nv "); got != 9 {
		t.Errorf("obj vertices: got %d, want 9", got)
	}
	if got := strings.Count(string(data), "\nf "); got != 8 {
		t.Errorf("obj faces: got %d, want 8", got)
	}
}

func TestCmdBlade(t *testing.T) {
	var out bytes.Buffer
	if err := cmdBlade([]string{"-vertices", "8"}, &out); err != nil {
		t.Fatalf("blade: %v", err)
	}
	s := out.String()
	if !strings.Contains(s, "blade 9 vertices") {
		t.Errorf("expected the vertex count rounded up to 9:\n%s", s)
	}
	if !strings.Contains(s, "indices:   48") {
		t.Errorf("expected (9-1)*6 indices:\n%s", s)
	}
}

func TestCmdScatter(t *testing.T) {
	var out bytes.Buffer
	if err := cmdScatter([]string{"-count", "99", "-limit", "2"}, &out); err != nil {
		t.Fatalf("scatter: %v", err)
	}
	s := out.String()
	if !strings.Contains(s, "instances:  100") {
		t.Errorf("99 blades should round up to 100:\n%s", s)
	}
	if got := strings.Count(s, "  ["); got != 2 {
		t.Errorf("printed placements: got %d, want 2", got)
	}
}

func TestCmdArgs(t *testing.T) {
	var out bytes.Buffer
	if err := cmdArgs(nil, &out); err != nil {
		t.Fatalf("args: %v", err)
	}
	s := out.String()
	if !strings.Contains(s, "instance_count=10000") {
		t.Errorf("default grass draw missing:\n%s", s)
	}
	if !strings.Contains(s, "index_count=36 instance_count=100") {
		t.Errorf("default cube draw missing:\n%s", s)
	}
	if !strings.Contains(s, "draws: 3") {
		t.Errorf("expected three draws:\n%s", s)
	}
}

func TestLoadSceneConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("plane:\n  resolution: 3\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	p, err := loadScene(path)
	if err != nil {
		t.Fatalf("loadScene: %v", err)
	}
	if p.Plane.Resolution != 3 {
		t.Errorf("resolution: got %d, want 3", p.Plane.Resolution)
	}

	if _, err := loadScene(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for a missing config")
	}
}
