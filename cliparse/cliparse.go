package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port          int    `env:"PORT" envDefault:"3318"`
	DataFile      string `env:"DATA_FILE"`
	DatabaseURL   string `env:"DATABASE_URL"`
	DatabaseType  string `env:"DATABASE_TYPE" envDefault:"sqlite"`
	AdminKeySalt  string `env:"ADMIN_KEY_SALT"`
	MaxUploadMB   int    `env:"MAX_UPLOAD_MB" envDefault:"10"`
	PrintAdminKey bool
}

// MaxUploadBytes is MaxUploadMB in bytes
func (c Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

// ParseFlags loads .env, reads the environment, then applies flags on top
func ParseFlags(args []string) (Config, error) {
	var flags Config
	var envFile string

	fs := flag.NewFlagSet("activity-star", flag.ContinueOnError)

	fs.StringVar(&envFile, "env-file", ".env", "Dotenv file to load (missing file is ignored)")

	// Network and sources (can be CLI args or env)
	fs.IntVar(&flags.Port, "p", 0, "Server port")
	fs.StringVar(&flags.DataFile, "f", "", "Workbook (.xlsx) or CSV directory to load at startup")
	fs.StringVar(&flags.DatabaseURL, "d", "", "Source database URL to load at startup")
	fs.StringVar(&flags.DatabaseType, "t", "", "Source database type (sqlite or postgres)")
	fs.IntVar(&flags.MaxUploadMB, "max-upload-mb", 0, "Maximum workbook upload size in MB")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&flags.AdminKeySalt, "admin-salt", "", "Admin key salt (prefer env)")
	fs.BoolVar(&flags.PrintAdminKey, "print-admin-key", false, "Print the admin key for the configured salt and exit")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	// CLI overrides env
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "p":
			cfg.Port = flags.Port
		case "f":
			cfg.DataFile = flags.DataFile
		case "d":
			cfg.DatabaseURL = flags.DatabaseURL
		case "t":
			cfg.DatabaseType = flags.DatabaseType
		case "max-upload-mb":
			cfg.MaxUploadMB = flags.MaxUploadMB
		case "admin-salt":
			cfg.AdminKeySalt = flags.AdminKeySalt
		case "print-admin-key":
			cfg.PrintAdminKey = flags.PrintAdminKey
		}
	})

	if cfg.Port < 1 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("invalid port %d", cfg.Port)
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("invalid database type %q (use sqlite or postgres)", cfg.DatabaseType)
	}
	if cfg.MaxUploadMB < 1 {
		return Config{}, errors.New("max upload size must be at least 1 MB")
	}
	if cfg.DataFile != "" && cfg.DatabaseURL != "" {
		return Config{}, errors.New("use either a data file (-f) or a database URL (-d), not both")
	}
	if cfg.PrintAdminKey && cfg.AdminKeySalt == "" {
		return Config{}, errors.New("ADMIN_KEY_SALT required to print the admin key")
	}

	return cfg, nil
}
