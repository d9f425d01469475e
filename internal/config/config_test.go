package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"camctl/internal/config"
)

func TestLoadDefaultsWhenNoFileExists(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(oldWD); err != nil {
			t.Fatalf("Chdir back: %v", err)
		}
	})

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if cfg.Camera.User != "admin" {
		t.Fatalf("default user = %q", cfg.Camera.User)
	}
	wantOutput := filepath.Join(tempHome, "camctl", "recordings")
	if cfg.Download.OutputDir != wantOutput {
		t.Fatalf("output dir = %q, want %q", cfg.Download.OutputDir, wantOutput)
	}
	if !cfg.History.Enabled {
		t.Fatal("history should default to enabled")
	}
}

func TestLoadParsesFileAndAppliesEnvOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.toml")
	content := strings.Join([]string{
		`[camera]`,
		`host = "192.168.1.20"`,
		`password = "file-secret"`,
		`channel = 1`,
		`[download]`,
		`stream = "sub"`,
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CAMCTL_PASSWORD", "env-secret")

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists {
		t.Fatal("expected file to be found")
	}
	if cfg.Camera.Host != "192.168.1.20" || cfg.Camera.Channel != 1 {
		t.Fatalf("file values not applied: %+v", cfg.Camera)
	}
	if cfg.Camera.Password != "env-secret" {
		t.Fatalf("environment must override the file, got %q", cfg.Camera.Password)
	}
	if cfg.Download.Stream != "sub" {
		t.Fatalf("stream = %q", cfg.Download.Stream)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[download]\nstream = \"ultra\"\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected validation error for bad stream value")
	}
}

func TestRequireCredentials(t *testing.T) {
	cfg := config.Default()
	if err := cfg.RequireCredentials(); err == nil {
		t.Fatal("expected error without host")
	}
	cfg.Camera.Host = "10.0.0.2"
	if err := cfg.RequireCredentials(); err == nil {
		t.Fatal("expected error without password")
	}
	cfg.Camera.Password = "s3cret"
	if err := cfg.RequireCredentials(); err != nil {
		t.Fatalf("RequireCredentials: %v", err)
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists {
		t.Fatal("sample file should exist")
	}
	if cfg.Download.Stream != "main" {
		t.Fatalf("sample stream = %q", cfg.Download.Stream)
	}
}
