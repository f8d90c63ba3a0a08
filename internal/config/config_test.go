package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigTransparent(t *testing.T) {
	cfg := DefaultConfig()
	if !cfg.ForwardToServer("wl_surface") || !cfg.ForwardToClient("wl_surface") {
		t.Fatal("default config must forward every interface both ways")
	}
}

func TestLoadEmptyPathReturnsDefault(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
}

func TestLoadOverridesOneDirection(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "veil.yaml")
	yamlSrc := "logLevel: debug\n" +
		"defaultForwardToServer: true\n" +
		"defaultForwardToClient: true\n" +
		"interfaces:\n" +
		"  wl_surface:\n" +
		"    forwardToClient: false\n"
	if err := os.WriteFile(path, []byte(yamlSrc), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if !cfg.ForwardToServer("wl_surface") {
		t.Error("wl_surface forwardToServer should remain true (unset)")
	}
	if cfg.ForwardToClient("wl_surface") {
		t.Error("wl_surface forwardToClient should be overridden to false")
	}
	if !cfg.ForwardToClient("wl_compositor") {
		t.Error("wl_compositor should fall back to the process default")
	}
}

func TestWatcherLoadsInitialConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "veil.yaml")
	if err := os.WriteFile(path, []byte("logLevel: info\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("NewWatcher error: %v", err)
	}
	defer w.Close()

	if w.Current().LogLevel != "info" {
		t.Fatalf("initial LogLevel = %q, want info", w.Current().LogLevel)
	}
}
