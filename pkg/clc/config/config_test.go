package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	if cfg.History.Path != "~/.clc_history.db" {
		t.Errorf("default history path = %q", cfg.History.Path)
	}
	if cfg.History.Size != 100 {
		t.Errorf("default history size = %d", cfg.History.Size)
	}
	if cfg.Output.Mode != "plain" {
		t.Errorf("default output mode = %q", cfg.Output.Mode)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
history:
  path: /tmp/test_history.db
  size: 25
output:
  mode: hex
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.History.Path != "/tmp/test_history.db" {
		t.Errorf("history path = %q", cfg.History.Path)
	}
	if cfg.History.Size != 25 {
		t.Errorf("history size = %d", cfg.History.Size)
	}
	if cfg.Output.Mode != "hex" {
		t.Errorf("output mode = %q", cfg.Output.Mode)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("output:\n  mode: bin\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Output.Mode != "bin" {
		t.Errorf("output mode = %q", cfg.Output.Mode)
	}
	if cfg.History.Size != 100 || cfg.History.Path != "~/.clc_history.db" {
		t.Errorf("unset history settings changed: %+v", cfg.History)
	}
}

func TestLoadInvalidSizeResets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("history:\n  size: -3\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.History.Size != 100 {
		t.Errorf("size = %d, want default 100", cfg.History.Size)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("missing explicit config file loaded")
	}
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("history: [not a map"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("malformed config loaded")
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	got := ExpandPath("~/.clc_history.db")
	if !strings.HasPrefix(got, home) {
		t.Errorf("ExpandPath(~/...) = %q, want under %q", got, home)
	}
	if got := ExpandPath("/absolute/path"); got != "/absolute/path" {
		t.Errorf("ExpandPath rewrote absolute path: %q", got)
	}
	if got := ExpandPath("relative/path"); got != "relative/path" {
		t.Errorf("ExpandPath rewrote relative path: %q", got)
	}
}
