package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvAPI overrides api.base_url when set.
const EnvAPI = "TPOTVIEW_API"

type Config struct {
	LogLevel string    `yaml:"log_level"`
	LogFile  string    `yaml:"log_file"`
	API      APIConfig `yaml:"api"`
	UI       UIConfig  `yaml:"ui"`
}

type APIConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type UIConfig struct {
	Sensors        []string      `yaml:"sensors"`
	CopyFeedback   time.Duration `yaml:"copy_feedback"`
	Mouse          bool          `yaml:"mouse"`
	HighlightStyle string        `yaml:"highlight_style"`
}

var defaultSensors = []string{"Cowrie", "Dionaea", "Suricata", "Wordpot"}

func DefaultConfig() *Config {
	sensors := make([]string, len(defaultSensors))
	copy(sensors, defaultSensors)
	return &Config{
		LogLevel: "info",
		API: APIConfig{
			BaseURL: "http://127.0.0.1:5000",
			Timeout: 15 * time.Second,
		},
		UI: UIConfig{
			Sensors:        sensors,
			CopyFeedback:   1200 * time.Millisecond,
			Mouse:          true,
			HighlightStyle: "monokai",
		},
	}
}

// Dir is where tpotview keeps its config and preferences.
func Dir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "tpotview")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "tpotview")
}

func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// Load reads a YAML (or JSON) config file over the defaults. An empty path
// returns the defaults; a missing file at the default path does too.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		applyEnv(cfg)
		return cfg, Validate(cfg)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && path == DefaultPath() {
			applyEnv(cfg)
			return cfg, Validate(cfg)
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	trimmed := strings.TrimSpace(string(content))
	if len(trimmed) == 0 {
		return nil, errors.New("config file is empty")
	}
	// JSON configs are valid YAML.
	if err := yaml.Unmarshal([]byte(trimmed), cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	applyDefaults(cfg)
	applyEnv(cfg)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	def := DefaultConfig()
	if cfg.LogLevel == "" {
		cfg.LogLevel = def.LogLevel
	}
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = def.API.BaseURL
	}
	if cfg.API.Timeout <= 0 {
		cfg.API.Timeout = def.API.Timeout
	}
	if len(cfg.UI.Sensors) == 0 {
		cfg.UI.Sensors = def.UI.Sensors
	}
	if cfg.UI.CopyFeedback <= 0 {
		cfg.UI.CopyFeedback = def.UI.CopyFeedback
	}
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvAPI)); v != "" {
		cfg.API.BaseURL = v
	}
}

func Validate(cfg *Config) error {
	u, err := url.Parse(cfg.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api.base_url must be an absolute URL, got %q", cfg.API.BaseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api.base_url scheme must be http or https, got %q", u.Scheme)
	}
	switch strings.ToLower(cfg.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log_level must be one of: debug, info, warn, error")
	}
	for _, s := range cfg.UI.Sensors {
		if strings.TrimSpace(s) == "" {
			return errors.New("ui.sensors entries must be non-empty")
		}
		if s == "all" {
			return errors.New(`ui.sensors must not contain the reserved value "all"`)
		}
	}
	return nil
}
