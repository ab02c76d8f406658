package store

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig_SaveLoadRoundTrip(t *testing.T) {
	t.Setenv("DOLIST_CONFIG_DIR", t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load missing config: %v", err)
	}
	if cfg.CurrentWorkspace != "" {
		t.Fatalf("expected empty config, got %+v", cfg)
	}

	cfg.CurrentWorkspace = "side-project"
	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("save config: %v", err)
	}

	got, err := LoadConfig()
	if err != nil {
		t.Fatalf("reload config: %v", err)
	}
	if got.CurrentWorkspace != "side-project" {
		t.Fatalf("workspace not persisted: %+v", got)
	}
}

func TestWorkspaceDir_UnderConfigDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DOLIST_CONFIG_DIR", dir)

	got, err := WorkspaceDir("default")
	if err != nil {
		t.Fatalf("workspace dir: %v", err)
	}
	want := filepath.Join(dir, "workspaces", "default")
	if got != want {
		t.Fatalf("workspace dir = %q, want %q", got, want)
	}

	if _, err := WorkspaceDir("  "); err == nil {
		t.Fatalf("expected error for blank workspace name")
	}
}

func TestListWorkspaces(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DOLIST_CONFIG_DIR", dir)

	ws, err := ListWorkspaces()
	if err != nil {
		t.Fatalf("list (empty): %v", err)
	}
	if len(ws) != 0 {
		t.Fatalf("expected no workspaces, got %v", ws)
	}

	for _, name := range []string{"beta", "alpha"} {
		if err := os.MkdirAll(filepath.Join(dir, "workspaces", name), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
	}
	ws, err = ListWorkspaces()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(ws) != 2 || ws[0] != "alpha" || ws[1] != "beta" {
		t.Fatalf("expected sorted [alpha beta], got %v", ws)
	}
}

func TestDiscoverDir_WalksUp(t *testing.T) {
	root := t.TempDir()
	storeDir := filepath.Join(root, ".dolist")
	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(storeDir, 0o755); err != nil {
		t.Fatalf("mkdir store: %v", err)
	}
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir nested: %v", err)
	}

	got, ok := DiscoverDir(nested)
	if !ok || got != storeDir {
		t.Fatalf("DiscoverDir = %q, %v; want %q, true", got, ok, storeDir)
	}

	if _, ok := DiscoverDir(t.TempDir()); ok {
		t.Fatalf("expected no discovery in a bare dir")
	}
}
