package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCacheDir(t *testing.T) {
	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", "cloudgram")
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if dir != filepath.Join("/tmp/xdg-cache", "cloudgram") {
		t.Errorf("cacheDir() = %q, want XDG override", dir)
	}
}

func TestConfigFile(t *testing.T) {
	path, err := configFile()
	if err != nil {
		t.Fatalf("configFile() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".config", "cloudgram", "config.toml")
	if path != expected {
		t.Errorf("configFile() = %q, want %q", path, expected)
	}
}

func TestConfigFileXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")

	path, err := configFile()
	if err != nil {
		t.Fatalf("configFile() error: %v", err)
	}
	if path != filepath.Join("/tmp/xdg-config", "cloudgram", "config.toml") {
		t.Errorf("configFile() = %q, want XDG override", path)
	}
}
