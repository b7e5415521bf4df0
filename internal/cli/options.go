package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/chess10kp/tuicher/internal/config"
)

const defaultConfigPath = "~/.config/tuicher/config.toml"

type Options struct {
	ConfigPath string
	EnvFile    string
	LogFile    bool
}

// loadConfig reads the optional env file, then the config file with the
// environment overlay applied, and validates the result.
func (o *Options) loadConfig() (*config.Config, error) {
	if o.EnvFile != "" {
		if err := godotenv.Load(o.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", o.EnvFile, err)
		}
	}

	path := strings.TrimSpace(o.ConfigPath)
	if path == "" {
		path = defaultConfigPath
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.ApplyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// redirectLog sends log output to <cache_dir>/tuicher.log.
func redirectLog(cfg *config.Config) (func(), error) {
	indexPath, err := cfg.IndexPath()
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(indexPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(filepath.Join(dir, "tuicher.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	log.SetOutput(f)
	return func() {
		log.SetOutput(os.Stderr)
		f.Close()
	}, nil
}

func bindFlags(cmd *cobra.Command, opts *Options) {
	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", opts.ConfigPath, "path to config.toml")
	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", opts.EnvFile, "optional .env file applied before the config")
	cmd.PersistentFlags().BoolVar(&opts.LogFile, "log-file", opts.LogFile, "write logs to tuicher.log in the cache directory")
}

func newDefaultOptions() *Options {
	return &Options{
		ConfigPath: defaultConfigPath,
		EnvFile:    ".env",
	}
}
