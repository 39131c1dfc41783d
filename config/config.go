package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const envPrefix = "WEATHERDASH"

type Config struct {
	Geocoding Geocoding `yaml:"geocoding"`
	Forecast  Forecast  `yaml:"forecast"`
	Dashboard Dashboard `yaml:"dashboard"`
	Server    Server    `yaml:"server"`
	Telemetry Telemetry `yaml:"telemetry"`
}

type Geocoding struct {
	Endpoint string        `yaml:"endpoint"`
	Language string        `yaml:"language"`
	Timeout  time.Duration `yaml:"timeout"`
}

type Forecast struct {
	Endpoint string        `yaml:"endpoint"`
	Timezone string        `yaml:"timezone"`
	Timeout  time.Duration `yaml:"timeout"`
	// RateLimit is requests per second; zero disables throttling.
	RateLimit float64 `yaml:"rateLimit"`
	Burst     int     `yaml:"burst"`
}

type Dashboard struct {
	DefaultCity string `yaml:"defaultCity"`
	// Latitude and Longitude stand in for a device position on hosts that
	// have one. Both must be set to be used.
	Latitude  *float64 `yaml:"latitude"`
	Longitude *float64 `yaml:"longitude"`
}

type Server struct {
	Addr           string        `yaml:"addr"`
	ParticleTick   time.Duration `yaml:"particleTick"`
	RequestTimeout time.Duration `yaml:"requestTimeout"`
}

type Telemetry struct {
	ServiceName string `yaml:"serviceName"`
	ZipkinURL   string `yaml:"zipkinURL"`
	Verbosity   int    `yaml:"verbosity"`
}

// Load decodes the embedded defaults, merges the optional file at path over
// them and finally applies WEATHERDASH_* environment overrides.
func Load(defaults []byte, path string) (Config, error) {
	var cfg Config

	if err := yaml.Unmarshal(defaults, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode default config: %w", err)
	}

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}

		if err = yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("decode config %s: %w", path, err)
		}
	}

	applyEnv(&cfg, viper.New())

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func applyEnv(cfg *Config, v *viper.Viper) {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	stringKeys := map[string]*string{
		"geocoding.endpoint":    &cfg.Geocoding.Endpoint,
		"geocoding.language":    &cfg.Geocoding.Language,
		"forecast.endpoint":     &cfg.Forecast.Endpoint,
		"forecast.timezone":     &cfg.Forecast.Timezone,
		"dashboard.defaultcity": &cfg.Dashboard.DefaultCity,
		"server.addr":           &cfg.Server.Addr,
		"telemetry.servicename": &cfg.Telemetry.ServiceName,
		"telemetry.zipkinurl":   &cfg.Telemetry.ZipkinURL,
	}
	for key, dst := range stringKeys {
		if v.IsSet(key) {
			*dst = v.GetString(key)
		}
	}

	durations := map[string]*time.Duration{
		"geocoding.timeout":     &cfg.Geocoding.Timeout,
		"forecast.timeout":      &cfg.Forecast.Timeout,
		"server.particletick":   &cfg.Server.ParticleTick,
		"server.requesttimeout": &cfg.Server.RequestTimeout,
	}
	for key, dst := range durations {
		if v.IsSet(key) {
			*dst = v.GetDuration(key)
		}
	}

	if v.IsSet("forecast.ratelimit") {
		cfg.Forecast.RateLimit = v.GetFloat64("forecast.ratelimit")
	}
	if v.IsSet("forecast.burst") {
		cfg.Forecast.Burst = v.GetInt("forecast.burst")
	}
	if v.IsSet("telemetry.verbosity") {
		cfg.Telemetry.Verbosity = v.GetInt("telemetry.verbosity")
	}
	if v.IsSet("dashboard.latitude") && v.IsSet("dashboard.longitude") {
		lat, lon := v.GetFloat64("dashboard.latitude"), v.GetFloat64("dashboard.longitude")
		cfg.Dashboard.Latitude, cfg.Dashboard.Longitude = &lat, &lon
	}
}

func (c Config) Validate() error {
	var errs []error

	if c.Geocoding.Endpoint == "" {
		errs = append(errs, errors.New("geocoding.endpoint is required"))
	}
	if c.Forecast.Endpoint == "" {
		errs = append(errs, errors.New("forecast.endpoint is required"))
	}
	if c.Forecast.RateLimit < 0 {
		errs = append(errs, errors.New("forecast.rateLimit must not be negative"))
	}
	if c.Forecast.RateLimit > 0 && c.Forecast.Burst < 1 {
		errs = append(errs, errors.New("forecast.burst must be at least 1 when rate limiting"))
	}
	if strings.TrimSpace(c.Dashboard.DefaultCity) == "" {
		errs = append(errs, errors.New("dashboard.defaultCity is required"))
	}
	if (c.Dashboard.Latitude == nil) != (c.Dashboard.Longitude == nil) {
		errs = append(errs, errors.New("dashboard.latitude and dashboard.longitude must be set together"))
	}

	return errors.Join(errs...)
}

// DeviceLocation reports the configured stand-in device position.
func (d Dashboard) DeviceLocation() (latitude, longitude float64, ok bool) {
	if d.Latitude == nil || d.Longitude == nil {
		return 0, 0, false
	}
	return *d.Latitude, *d.Longitude, true
}
