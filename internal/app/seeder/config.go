package seeder

import (
	"errors"
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds seeder pipeline settings.
type Config struct {
	ContentPath string `yaml:"content_path" env:"SEEDER_CONTENT_PATH" env-default:"./content.yaml"`
	DryRun      bool   `yaml:"dry_run"      env:"SEEDER_DRY_RUN"`
}

// LoadConfig reads seeder settings from the YAML file at path, or from the
// environment alone when path is empty. Environment variables win over the
// file.
func LoadConfig(path string) (*Config, error) {
	var (
		cfg Config
		err error
	)
	if path != "" {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("seeder config: %w", err)
	}

	if cfg.ContentPath == "" {
		return nil, errors.New("seeder config: content_path is required")
	}
	return &cfg, nil
}
