package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"
	"go.uber.org/multierr"
)

// Forest holds the forest hyperparameters. A nil Seed seeds from the clock.
type Forest struct {
	Trees      int     `yaml:"trees" validate:"gt=0"`
	Alpha      int     `yaml:"alpha" validate:"gt=0"`
	Beta       float64 `yaml:"beta" validate:"gte=0,lt=1"`
	Candidates int     `yaml:"candidates" validate:"gt=0"`
	OOBWindow  int     `yaml:"oob_window" validate:"gt=0"`
	Workers    int     `yaml:"workers" validate:"gte=0"`
	Seed       *int64  `yaml:"seed"`
}

type Server struct {
	Port   string `yaml:"port" validate:"required,numeric"`
	APIKey string `yaml:"api_key"`
}

type Log struct {
	File  string `yaml:"file"`
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
}

type Config struct {
	Forest Forest `yaml:"forest"`
	Server Server `yaml:"server"`
	Log    Log    `yaml:"log"`
}

func Default() Config {
	return Config{
		Forest: Forest{Trees: 100, Alpha: 2, Beta: 0.05, Candidates: 10, OOBWindow: 1000},
		Server: Server{Port: "8080"},
		Log:    Log{Level: "info"},
	}
}

// Load starts from Default, applies the YAML file at path (if path is not
// empty), then environment overrides, then validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, Validate(cfg)
}

func Validate(cfg Config) error {
	return validator.New().Struct(cfg)
}

func applyEnv(cfg *Config) error {
	var err error
	str := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	num := func(key string, dst *int) {
		if v := os.Getenv(key); v != "" {
			n, e := strconv.Atoi(v)
			if e != nil {
				err = multierr.Append(err, fmt.Errorf("%s: %w", key, e))
				return
			}
			*dst = n
		}
	}
	str("PORT", &cfg.Server.Port)
	str("API_KEY", &cfg.Server.APIKey)
	str("LOG_FILE", &cfg.Log.File)
	str("LOG_LEVEL", &cfg.Log.Level)
	num("ORF_TREES", &cfg.Forest.Trees)
	num("ORF_ALPHA", &cfg.Forest.Alpha)
	num("ORF_CANDIDATES", &cfg.Forest.Candidates)
	num("ORF_OOB_WINDOW", &cfg.Forest.OOBWindow)
	num("ORF_WORKERS", &cfg.Forest.Workers)
	if v := os.Getenv("ORF_BETA"); v != "" {
		b, e := strconv.ParseFloat(v, 64)
		if e != nil {
			err = multierr.Append(err, fmt.Errorf("ORF_BETA: %w", e))
		} else {
			cfg.Forest.Beta = b
		}
	}
	if v := os.Getenv("ORF_SEED"); v != "" {
		s, e := strconv.ParseInt(v, 10, 64)
		if e != nil {
			err = multierr.Append(err, fmt.Errorf("ORF_SEED: %w", e))
		} else {
			cfg.Forest.Seed = &s
		}
	}
	return err
}
