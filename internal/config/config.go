package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vango-dev/reconcile/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "reconcile.json"

	// DefaultPort is the default stream server port.
	DefaultPort = 7400

	// DefaultHost is the default stream server host.
	DefaultHost = "localhost"

	// DefaultStreamPath is the websocket route of the stream server.
	DefaultStreamPath = "/stream"

	// DefaultNamespace prefixes every exported metric.
	DefaultNamespace = "reconcile"

	// DefaultSnapshotDir is where the file driver writes snapshots.
	DefaultSnapshotDir = "snapshots"
)

// Snapshot drivers.
const (
	DriverFile = "file"
	DriverS3   = "s3"
)

// Config represents the complete reconcile.json configuration.
type Config struct {
	// Server configures `reconcile serve`.
	Server ServerConfig `json:"server,omitempty"`

	// Metrics configures the Prometheus hook set.
	Metrics MetricsConfig `json:"metrics,omitempty"`

	// Tracing configures the OpenTelemetry hook set.
	Tracing TracingConfig `json:"tracing,omitempty"`

	// Snapshot selects where rendered HTML is stored.
	Snapshot SnapshotConfig `json:"snapshot,omitempty"`

	// Log configures the command's logger.
	Log LogConfig `json:"log,omitempty"`

	// Render configures HTML serialisation.
	Render RenderConfig `json:"render,omitempty"`

	configPath string
}

// ServerConfig contains stream server settings.
type ServerConfig struct {
	Host string `json:"host,omitempty"`
	Port int    `json:"port,omitempty"`

	// Path is the websocket route; mutation frames are streamed from it.
	Path string `json:"path,omitempty"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	Enabled   bool   `json:"enabled,omitempty"`
	Namespace string `json:"namespace,omitempty"`
	Subsystem string `json:"subsystem,omitempty"`
}

// TracingConfig contains OpenTelemetry settings.
type TracingConfig struct {
	Enabled bool `json:"enabled,omitempty"`

	// Tracer is the instrumentation name passed to the tracer provider.
	Tracer string `json:"tracer,omitempty"`
}

// SnapshotConfig contains snapshot storage settings.
type SnapshotConfig struct {
	// Driver is "file" or "s3".
	Driver string `json:"driver,omitempty"`

	// Dir is the directory used by the file driver.
	Dir string `json:"dir,omitempty"`

	Bucket string `json:"bucket,omitempty"`
	Prefix string `json:"prefix,omitempty"`
	Region string `json:"region,omitempty"`

	// Endpoint overrides the S3 endpoint (MinIO, localstack).
	Endpoint string `json:"endpoint,omitempty"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level,omitempty"`
}

// RenderConfig contains HTML output settings.
type RenderConfig struct {
	Pretty bool   `json:"pretty,omitempty"`
	Indent string `json:"indent,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Server: ServerConfig{
			Host: DefaultHost,
			Port: DefaultPort,
			Path: DefaultStreamPath,
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: DefaultNamespace,
		},
		Tracing: TracingConfig{
			Tracer: DefaultNamespace,
		},
		Snapshot: SnapshotConfig{
			Driver: DriverFile,
			Dir:    DefaultSnapshotDir,
		},
		Log: LogConfig{
			Level: "info",
		},
		Render: RenderConfig{
			Indent: "  ",
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for reconcile.json in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("C141").
				WithDetail("No reconcile.json found in " + filepath.Dir(path)).
				WithSuggestion("Create reconcile.json or pass settings as flags")
		}
		return nil, errors.New("C120").Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("C120").
			WithDetail("Failed to parse reconcile.json: " + err.Error()).
			WithSuggestion("Check that reconcile.json is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("C120").Wrap(err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("C120").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.Path == "" {
		c.Server.Path = DefaultStreamPath
	}
	if !strings.HasPrefix(c.Server.Path, "/") {
		c.Server.Path = "/" + c.Server.Path
	}

	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
	if c.Tracing.Tracer == "" {
		c.Tracing.Tracer = DefaultNamespace
	}

	if c.Snapshot.Driver == "" {
		c.Snapshot.Driver = DriverFile
	}
	if c.Snapshot.Dir == "" {
		c.Snapshot.Dir = DefaultSnapshotDir
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Render.Indent == "" {
		c.Render.Indent = "  "
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.New("C121").
			WithDetail("Port must be between 0 and 65535")
	}

	switch c.Snapshot.Driver {
	case DriverFile, "":
	case DriverS3:
		if c.Snapshot.Bucket == "" {
			return errors.New("C123").
				WithSuggestion("Set snapshot.bucket in reconcile.json")
		}
	default:
		return errors.New("C122").
			WithDetail("Driver " + strconv.Quote(c.Snapshot.Driver) + " is not one of file, s3")
	}

	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// Address returns the host:port the stream server listens on.
func (c *Config) Address() string {
	return c.Server.Host + ":" + strconv.Itoa(c.Server.Port)
}

// SnapshotDir returns the absolute snapshot directory for the file driver.
func (c *Config) SnapshotDir() string {
	if filepath.IsAbs(c.Snapshot.Dir) {
		return c.Snapshot.Dir
	}
	return filepath.Join(c.Dir(), c.Snapshot.Dir)
}

// ParseLevel maps a level name to a slog level. The empty string is info.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, errors.New("C124").
		WithDetail("Level " + strconv.Quote(name) + " is not one of debug, info, warn, error")
}
