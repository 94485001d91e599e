package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	EnvLogMode   = "RAIDCALC_LOG_MODE"
	EnvScheme    = "RAIDCALC_SCHEME"
	EnvDriveSize = "RAIDCALC_DRIVE_SIZE"
	EnvHistory   = "RAIDCALC_HISTORY"
)

// Settings are the process defaults read from the environment. LogMode is
// "dev", "prod" or empty for no logging.
type Settings struct {
	LogMode          string
	DefaultScheme    string
	DefaultDriveSize float64
	HistoryFile      string
}

// Defaults returns the settings used when nothing is configured.
func Defaults() Settings {
	return Settings{
		LogMode:          "",
		DefaultScheme:    "raid5",
		DefaultDriveSize: 12,
		HistoryFile:      "/tmp/raidcalc_history",
	}
}

// LoadEnv loads the given .env files (missing ones are skipped) and reads
// Settings from the environment. Variables already set in the process win
// over values from the files.
func LoadEnv(paths ...string) (Settings, error) {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return Settings{}, fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return FromEnv()
}

// FromEnv reads Settings from the current environment.
func FromEnv() (Settings, error) {
	s := Defaults()
	if v := os.Getenv(EnvLogMode); v != "" {
		s.LogMode = v
	}
	if v := os.Getenv(EnvScheme); v != "" {
		s.DefaultScheme = v
	}
	if v := os.Getenv(EnvDriveSize); v != "" {
		size, err := strconv.ParseFloat(v, 64)
		if err != nil || size <= 0 {
			return Settings{}, fmt.Errorf("invalid %s %q: must be a positive number of TB", EnvDriveSize, v)
		}
		s.DefaultDriveSize = size
	}
	if v := os.Getenv(EnvHistory); v != "" {
		s.HistoryFile = v
	}
	return s, nil
}
