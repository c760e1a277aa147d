package server

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("WHITTED_ROOT_DIR", t.TempDir())

	cfg := LoadConfig()
	if cfg.Address != ":8080" {
		t.Errorf("Expected default address :8080, got %q", cfg.Address)
	}
	if cfg.SceneDir != "scenes" {
		t.Errorf("Expected default scene directory, got %q", cfg.SceneDir)
	}
	if cfg.S3.Configured() {
		t.Error("Expected S3 to be unconfigured by default")
	}
}

func TestLoadConfig_ReadsEnvironment(t *testing.T) {
	t.Setenv("WHITTED_ROOT_DIR", t.TempDir())
	t.Setenv("WHITTED_ADDRESS", "127.0.0.1:9999")
	t.Setenv("WHITTED_SCENE_DIR", "/srv/scenes")
	t.Setenv("WHITTED_POST_KEY", "secret")
	t.Setenv("S3_ACCESS_KEY", "key")
	t.Setenv("S3_BUCKET", "renders")
	t.Setenv("CDN_URL", "https://cdn.example.com")

	cfg := LoadConfig()
	if cfg.Address != "127.0.0.1:9999" || cfg.SceneDir != "/srv/scenes" || cfg.PostKey != "secret" {
		t.Errorf("Expected environment overrides, got %+v", cfg)
	}
	if !cfg.S3.Configured() {
		t.Error("Expected S3 to be configured")
	}
	if cfg.S3.CDNURL != "https://cdn.example.com" {
		t.Errorf("Expected CDN URL, got %q", cfg.S3.CDNURL)
	}
}

func TestLoadConfig_ReadsDotEnvFile(t *testing.T) {
	rootDir := t.TempDir()
	envFile := "WHITTED_POST_KEY=filekey\n"
	if err := os.WriteFile(filepath.Join(rootDir, ".env"), []byte(envFile), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("WHITTED_ROOT_DIR", rootDir)
	defer os.Unsetenv("WHITTED_POST_KEY")

	cfg := LoadConfig()
	if cfg.PostKey != "filekey" {
		t.Errorf("Expected the post key from .env, got %q", cfg.PostKey)
	}
}
