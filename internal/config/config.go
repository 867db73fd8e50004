package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Settings holds the flags the core reads but does not own. They are passed
// explicitly into validating calls rather than consulted globally.
type Settings struct {
	RequireNationalID bool
	EnableClearing    bool
}

// Masav identifies the fund toward the banking portal.
type Masav struct {
	InstitutionCode string // 8 digits
	SenderCode      string // 5 digits
	InstitutionName string
}

// Config holds all configuration for the application.
type Config struct {
	DataFile string
	Env      string

	Settings Settings
	Masav    Masav
}

// Load reads configuration from environment variables. A .env file is
// honored when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DataFile: getEnv("GEMACH_DATA_FILE", "gemach.json"),
		Env:      getEnv("ENV", "development"),
		Settings: Settings{
			RequireNationalID: getBool("GEMACH_REQUIRE_NATIONAL_ID", true),
			EnableClearing:    getBool("GEMACH_ENABLE_CLEARING", false),
		},
		Masav: Masav{
			InstitutionCode: getEnv("MASAV_INSTITUTION_CODE", ""),
			SenderCode:      getEnv("MASAV_SENDER_CODE", ""),
			InstitutionName: getEnv("MASAV_INSTITUTION_NAME", ""),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.DataFile == "" {
		return fmt.Errorf("GEMACH_DATA_FILE is required")
	}
	if c.Settings.EnableClearing {
		if len(c.Masav.InstitutionCode) != 8 {
			return fmt.Errorf("MASAV_INSTITUTION_CODE must be 8 digits when clearing is enabled")
		}
		if len(c.Masav.SenderCode) != 5 {
			return fmt.Errorf("MASAV_SENDER_CODE must be 5 digits when clearing is enabled")
		}
		if c.Masav.InstitutionName == "" {
			return fmt.Errorf("MASAV_INSTITUTION_NAME is required when clearing is enabled")
		}
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}
