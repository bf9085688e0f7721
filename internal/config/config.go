package config

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// Config carries the fetch-job settings (the same shape as the fetcher's
// config.json) plus the installer's own provisioning settings.
type Config struct {
	GCSBucketName      string `json:"gcs_bucket_name"`
	PubSubSubscription string `json:"pubsub_subscription"`
	DestinationPath    string `json:"destination_path"`
	ServiceAccountPath string `json:"service_account_path"`

	FetchScript     string `json:"fetch_script"`
	LogFile         string `json:"log_file"`
	VenvDir         string `json:"venv_dir"`
	Python          string `json:"python"`
	IntervalMinutes int    `json:"interval_minutes"`
}

func Default() Config {
	return Config{
		FetchScript:     "/opt/gcs-sync/fetch_pubsub_files.py",
		LogFile:         "/opt/logs/gcs-sync.log",
		VenvDir:         "/opt/gcs-sync/venv",
		Python:          "python3",
		IntervalMinutes: 5,
	}
}

// Load reads a JSON config file over the defaults, so keys absent from the
// file keep their default values.
func Load(fs afero.Fs, path string) (Config, error) {
	cfg := Default()
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if !filepath.IsAbs(c.FetchScript) {
		return fmt.Errorf("fetch_script must be absolute, got %q", c.FetchScript)
	}
	if !filepath.IsAbs(c.LogFile) {
		return fmt.Errorf("log_file must be absolute, got %q", c.LogFile)
	}
	if c.IntervalMinutes <= 0 {
		return fmt.Errorf("interval_minutes must be positive, got %d", c.IntervalMinutes)
	}
	return nil
}
