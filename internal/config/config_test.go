package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfigYAMLRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()

	cfg := DefaultConfig()
	cfg.Share.KakaoAppKey = "abcd1234"
	cfg.Share.TypeOGBaseURL = "https://cdn.example.com/rest-types/"
	cfg.Quiz.AutoFinish = false

	// Write to disk
	if err := WriteConfig(tmpDir, cfg); err != nil {
		t.Fatalf("WriteConfig failed: %v", err)
	}

	// Read back
	loaded, err := ReadConfig(tmpDir)
	if err != nil {
		t.Fatalf("ReadConfig failed: %v", err)
	}

	if loaded.Share.KakaoAppKey != "abcd1234" {
		t.Errorf("KakaoAppKey: got %q, want %q", loaded.Share.KakaoAppKey, "abcd1234")
	}
	if loaded.Share.TypeOGBaseURL != cfg.Share.TypeOGBaseURL {
		t.Errorf("TypeOGBaseURL: got %q, want %q", loaded.Share.TypeOGBaseURL, cfg.Share.TypeOGBaseURL)
	}
	if loaded.Quiz.AutoFinish {
		t.Error("AutoFinish: got true, want false")
	}
}

func TestDefaultConfigTimings(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.LoadingDelay() != time.Second {
		t.Errorf("LoadingDelay: got %v, want 1s", cfg.LoadingDelay())
	}
	if cfg.ToastDuration() != 2200*time.Millisecond {
		t.Errorf("ToastDuration: got %v, want 2.2s", cfg.ToastDuration())
	}
	if !cfg.Quiz.AutoFinish {
		t.Error("AutoFinish should default to true")
	}
	if cfg.Cleanup.MaxAgeDays != 30 {
		t.Errorf("MaxAgeDays: got %d, want 30", cfg.Cleanup.MaxAgeDays)
	}
}

func TestNonPositiveTimingsFallBack(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Quiz.LoadingMs = 0
	cfg.Quiz.ToastMs = -5
	if cfg.LoadingDelay() != time.Second {
		t.Errorf("LoadingDelay: got %v, want 1s", cfg.LoadingDelay())
	}
	if cfg.ToastDuration() != 2200*time.Millisecond {
		t.Errorf("ToastDuration: got %v, want 2.2s", cfg.ToastDuration())
	}
}

func TestPartialConfigKeepsDefaults(t *testing.T) {
	// Simulate a hand-written config that sets only one field.
	tmpDir := t.TempDir()
	partial := `share:
  kakao_app_key: key-from-file
`
	if err := os.WriteFile(filepath.Join(tmpDir, "config.yaml"), []byte(partial), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := ReadConfig(tmpDir)
	if err != nil {
		t.Fatalf("ReadConfig failed on partial config: %v", err)
	}
	if cfg.Share.KakaoAppKey != "key-from-file" {
		t.Errorf("KakaoAppKey: got %q", cfg.Share.KakaoAppKey)
	}
	if cfg.Quiz.LoadingMs != 1000 || cfg.Share.NativeCommand != "termux-share" {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadOrDefaultOnMalformed(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, "config.yaml"), []byte("quiz: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg := LoadOrDefault(tmpDir)
	if cfg == nil || cfg.Version != 1 {
		t.Errorf("LoadOrDefault = %+v, want defaults", cfg)
	}
	if _, err := ReadConfig(t.TempDir()); err == nil {
		t.Error("ReadConfig on empty dir should error")
	}
}

func TestDefaultDirHonoursEnv(t *testing.T) {
	t.Setenv(HomeEnv, "/tmp/reststyle-home")
	dir, err := DefaultDir()
	if err != nil {
		t.Fatal(err)
	}
	if dir != "/tmp/reststyle-home" {
		t.Errorf("DefaultDir = %q", dir)
	}
}
