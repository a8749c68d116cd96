// Package config handles reading and writing config.yaml in the app directory.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level structure for config.yaml.
type Config struct {
	Version int           `yaml:"version"`
	Brand   BrandConfig   `yaml:"brand"`
	Quiz    QuizConfig    `yaml:"quiz"`
	Share   ShareConfig   `yaml:"share"`
	Cleanup CleanupConfig `yaml:"cleanup"`
}

// BrandConfig holds display branding.
type BrandConfig struct {
	Name string `yaml:"name"`
}

// QuizConfig controls session timing.
type QuizConfig struct {
	AutoFinish bool `yaml:"auto_finish"`
	LoadingMs  int  `yaml:"loading_ms"`
	ToastMs    int  `yaml:"toast_ms"`
}

// ShareConfig holds share and preview settings.
type ShareConfig struct {
	SiteURL string `yaml:"site_url"`

	// OGImageDefault should be a public URL for Kakao feeds.
	OGImageDefault string `yaml:"og_image_default"`

	// TypeOGBaseURL prefixes type-{index}.png, e.g. "https://cdn.site.com/rest-types/".
	TypeOGBaseURL string `yaml:"type_og_base_url"`

	// Kakao memo API settings. The access token is a user token with the
	// talk_message scope.
	KakaoAppKey      string `yaml:"kakao_app_key"`
	KakaoAccessToken string `yaml:"kakao_access_token"`
	KakaoAPIBase     string `yaml:"kakao_api_base"`

	// NativeCommand receives the share text on stdin, e.g. "termux-share".
	NativeCommand string `yaml:"native_command"`
}

// CleanupConfig controls pruning of log.jsonl.
type CleanupConfig struct {
	MaxAgeDays int `yaml:"max_age_days"`
}

const configFile = "config.yaml"

// HomeEnv overrides the default app directory.
const HomeEnv = "RESTSTYLE_HOME"

// DefaultDir returns $RESTSTYLE_HOME, or ~/.reststyle.
func DefaultDir() (string, error) {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".reststyle"), nil
}

// ReadConfig reads config.yaml from the given app directory.
// Returns an error if the file is not found or YAML is malformed.
// Fields absent from the file keep their default values.
func ReadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, configFile)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault reads config.yaml, falling back to defaults when the file
// is missing or invalid.
func LoadOrDefault(dir string) *Config {
	cfg, err := ReadConfig(dir)
	if err != nil {
		return DefaultConfig()
	}
	return cfg
}

// WriteConfig writes cfg to config.yaml in the given app directory.
// Creates the directory if it does not exist.
func WriteConfig(dir string, cfg *Config) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	path := filepath.Join(dir, configFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Brand: BrandConfig{
			Name: "MindVR",
		},
		Quiz: QuizConfig{
			AutoFinish: true,
			LoadingMs:  1000,
			ToastMs:    2200,
		},
		Share: ShareConfig{
			SiteURL:        "https://reststyle.mindvr.kr/",
			OGImageDefault: "/og-default.png",
			KakaoAPIBase:   "https://kapi.kakao.com",
			NativeCommand:  "termux-share",
		},
		Cleanup: CleanupConfig{
			MaxAgeDays: 30,
		},
	}
}

// LoadingDelay returns the Loading screen duration.
func (c *Config) LoadingDelay() time.Duration {
	if c.Quiz.LoadingMs <= 0 {
		return time.Second
	}
	return time.Duration(c.Quiz.LoadingMs) * time.Millisecond
}

// ToastDuration returns how long confirmations stay visible.
func (c *Config) ToastDuration() time.Duration {
	if c.Quiz.ToastMs <= 0 {
		return 2200 * time.Millisecond
	}
	return time.Duration(c.Quiz.ToastMs) * time.Millisecond
}
