package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ServerConfig holds the HTTP server settings for the api binary.
//
// Values are resolved in three layers: built-in defaults, then the
// optional YAML config file, then environment variable overrides.
type ServerConfig struct {
	Addr              string        `yaml:"addr"`
	BaseURL           string        `yaml:"base_url"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	RequestTimeout    time.Duration `yaml:"request_timeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"`
	MaxBodyBytes      int64         `yaml:"max_body_bytes"`

	// AuthRateLimit caps requests per client IP on the credential
	// endpoints within AuthRateWindow.
	AuthRateLimit  int           `yaml:"auth_rate_limit"`
	AuthRateWindow time.Duration `yaml:"auth_rate_window"`
}

// WorkerConfig holds the scheduler settings for the worker binary.
type WorkerConfig struct {
	Addr           string        `yaml:"addr"`
	Timezone       string        `yaml:"timezone"`
	DigestSchedule string        `yaml:"digest_schedule"`
	PurgeSchedule  string        `yaml:"purge_schedule"`
	StatsInterval  time.Duration `yaml:"stats_interval"`
	JobTimeout     time.Duration `yaml:"job_timeout"`
}

// File is the root of the YAML configuration file.
type File struct {
	Server ServerConfig `yaml:"server"`
	Worker WorkerConfig `yaml:"worker"`
}

func defaultFile() File {
	return File{
		Server: ServerConfig{
			Addr:              ":8080",
			BaseURL:           "http://localhost:8080",
			ReadHeaderTimeout: 10 * time.Second,
			RequestTimeout:    30 * time.Second,
			ShutdownTimeout:   5 * time.Second,
			MaxBodyBytes:      1 << 20,
			AuthRateLimit:     5,
			AuthRateWindow:    time.Minute,
		},
		Worker: WorkerConfig{
			Addr:           ":9090",
			Timezone:       "Asia/Ho_Chi_Minh",
			DigestSchedule: "0 7 * * *",
			PurgeSchedule:  "@hourly",
			StatsInterval:  time.Minute,
			JobTimeout:     10 * time.Minute,
		},
	}
}

// Load reads the configuration file named by CONFIG_FILE (or the given
// path when non-empty) on top of the defaults, then applies environment
// overrides. A missing file is not an error; a malformed one is.
func Load(path string) (File, error) {
	cfg := defaultFile()

	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return cfg, fmt.Errorf("read config file %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (f *File) applyEnv() {
	f.Server.Addr = GetEnvString("SERVER_ADDR", f.Server.Addr)
	f.Server.BaseURL = GetEnvString("BASE_URL", f.Server.BaseURL)
	f.Server.RequestTimeout = GetEnvDuration("REQUEST_TIMEOUT", f.Server.RequestTimeout)
	f.Server.ShutdownTimeout = GetEnvDuration("SHUTDOWN_TIMEOUT", f.Server.ShutdownTimeout)
	f.Server.AuthRateLimit = GetEnvInt("AUTH_RATE_LIMIT", f.Server.AuthRateLimit)
	f.Server.AuthRateWindow = GetEnvDuration("AUTH_RATE_WINDOW", f.Server.AuthRateWindow)

	f.Worker.Addr = GetEnvString("WORKER_ADDR", f.Worker.Addr)
	f.Worker.Timezone = GetEnvString("WORKER_TIMEZONE", f.Worker.Timezone)
	f.Worker.DigestSchedule = GetEnvString("DIGEST_SCHEDULE", f.Worker.DigestSchedule)
	f.Worker.PurgeSchedule = GetEnvString("PURGE_SCHEDULE", f.Worker.PurgeSchedule)
	f.Worker.StatsInterval = GetEnvDuration("STATS_INTERVAL", f.Worker.StatsInterval)
	f.Worker.JobTimeout = GetEnvDuration("JOB_TIMEOUT", f.Worker.JobTimeout)
}

func (f *File) validate() error {
	for name, d := range map[string]time.Duration{
		"read_header_timeout": f.Server.ReadHeaderTimeout,
		"request_timeout":     f.Server.RequestTimeout,
		"shutdown_timeout":    f.Server.ShutdownTimeout,
		"auth_rate_window":    f.Server.AuthRateWindow,
		"stats_interval":      f.Worker.StatsInterval,
		"job_timeout":         f.Worker.JobTimeout,
	} {
		if err := ValidatePositiveDuration(d); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	if f.Server.AuthRateLimit < 1 {
		return fmt.Errorf("auth_rate_limit must be at least 1, got %d", f.Server.AuthRateLimit)
	}
	if f.Server.MaxBodyBytes < 1 {
		return fmt.Errorf("max_body_bytes must be positive, got %d", f.Server.MaxBodyBytes)
	}
	return nil
}
