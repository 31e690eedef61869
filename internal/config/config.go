package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const (
	AppName    = "feedsync"
	AppVersion = "1.0.0"
)

// DefaultUserAgent identifies the reader to feed hosts.
var DefaultUserAgent = "Mozilla/5.0 (compatible; " + AppName + "/" + AppVersion + ")"

const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

type FetchConfig struct {
	MaxRetries        int
	RetryDelay        time.Duration
	Timeout           time.Duration
	RequestsPerSecond float64
}

type RefreshConfig struct {
	Concurrency         int
	Interval            time.Duration // 0 disables the scheduler
	DefaultFeedInterval time.Duration
}

type Config struct {
	Addr             string        `yaml:"addr"`
	DataDir          string        `yaml:"data_dir"`
	Store            string        `yaml:"store"`
	DBPath           string        `yaml:"db_path"`
	PostgresDSN      string        `yaml:"postgres_dsn"`
	PostgresMaxConns int           `yaml:"postgres_max_conns"`
	RedisAddr        string        `yaml:"redis_addr"`
	RedisPassword    string        `yaml:"redis_password"`
	RedisDB          int           `yaml:"redis_db"`
	RedisPrefix      string        `yaml:"redis_prefix"`
	LogLevel         string        `yaml:"log_level"`
	LogFormat        string        `yaml:"log_format"`
	UserAgent        string        `yaml:"user_agent"`
	ProxyURL         string        `yaml:"proxy_url"`
	NodeID           int64         `yaml:"node_id"`
	Fetch            FetchConfig   `yaml:"-"`
	Refresh          RefreshConfig `yaml:"-"`
}

// fileConfig mirrors the YAML layout; durations are written as strings ("1s", "15m").
type fileConfig struct {
	Config  `yaml:",inline"`
	Fetch   fileFetch   `yaml:"fetch"`
	Refresh fileRefresh `yaml:"refresh"`
}

type fileFetch struct {
	MaxRetries        *int     `yaml:"max_retries"`
	RetryDelay        string   `yaml:"retry_delay"`
	Timeout           string   `yaml:"timeout"`
	RequestsPerSecond *float64 `yaml:"requests_per_second"`
}

type fileRefresh struct {
	Concurrency         *int   `yaml:"concurrency"`
	Interval            string `yaml:"interval"`
	DefaultFeedInterval string `yaml:"default_feed_interval"`
}

func Default() Config {
	dataDir := "./data"
	return Config{
		Addr:             ":8080",
		DataDir:          dataDir,
		Store:            StoreSQLite,
		DBPath:           filepath.Join(dataDir, AppName+".db"),
		PostgresMaxConns: 10,
		RedisAddr:        "localhost:6379",
		RedisPrefix:      AppName + ":",
		LogLevel:         "info",
		LogFormat:        "text",
		UserAgent:        DefaultUserAgent,
		Fetch: FetchConfig{
			MaxRetries: 3,
			RetryDelay: time.Second,
			Timeout:    30 * time.Second,
		},
		Refresh: RefreshConfig{
			Concurrency:         8,
			DefaultFeedInterval: 30 * time.Minute,
		},
	}
}

// DefaultPath returns the config file location under the XDG config home.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.yaml")
}

// Load builds the configuration from defaults, then the YAML file at path,
// then FEEDSYNC_* environment variables. An empty path means DefaultPath;
// a missing default file is not an error, a missing explicit file is.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if err := applyFile(&cfg, path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			err = nil
		}
		if err != nil {
			return Config{}, err
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	cfg.DataDir = filepath.Clean(cfg.DataDir)
	cfg.DBPath = filepath.Clean(cfg.DBPath)
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Store {
	case StoreMemory, StoreSQLite, StorePostgres, StoreRedis:
	default:
		return fmt.Errorf("unknown store %q", c.Store)
	}
	if c.Store == StorePostgres && c.PostgresDSN == "" {
		return errors.New("postgres store requires postgres_dsn")
	}
	if c.Fetch.MaxRetries < 1 {
		return errors.New("fetch.max_retries must be at least 1")
	}
	if c.Fetch.RetryDelay < 0 || c.Fetch.Timeout < 0 || c.Refresh.Interval < 0 {
		return errors.New("durations must not be negative")
	}
	return nil
}

func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	fc := fileConfig{Config: *cfg}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	merged := fc.Config
	merged.Fetch = cfg.Fetch
	merged.Refresh = cfg.Refresh

	if fc.Fetch.MaxRetries != nil {
		merged.Fetch.MaxRetries = *fc.Fetch.MaxRetries
	}
	if fc.Fetch.RequestsPerSecond != nil {
		merged.Fetch.RequestsPerSecond = *fc.Fetch.RequestsPerSecond
	}
	if fc.Refresh.Concurrency != nil {
		merged.Refresh.Concurrency = *fc.Refresh.Concurrency
	}
	durations := []struct {
		raw  string
		dest *time.Duration
		name string
	}{
		{fc.Fetch.RetryDelay, &merged.Fetch.RetryDelay, "fetch.retry_delay"},
		{fc.Fetch.Timeout, &merged.Fetch.Timeout, "fetch.timeout"},
		{fc.Refresh.Interval, &merged.Refresh.Interval, "refresh.interval"},
		{fc.Refresh.DefaultFeedInterval, &merged.Refresh.DefaultFeedInterval, "refresh.default_feed_interval"},
	}
	for _, d := range durations {
		if d.raw == "" {
			continue
		}
		parsed, err := time.ParseDuration(d.raw)
		if err != nil {
			return fmt.Errorf("parse %s: %w", d.name, err)
		}
		*d.dest = parsed
	}

	// A data_dir without db_path moves the database along with it.
	if fc.DataDir != cfg.DataDir && fc.DBPath == cfg.DBPath {
		merged.DBPath = filepath.Join(merged.DataDir, AppName+".db")
	}
	*cfg = merged
	return nil
}

func applyEnv(cfg *Config) error {
	strs := map[string]*string{
		"FEEDSYNC_ADDR":           &cfg.Addr,
		"FEEDSYNC_STORE":          &cfg.Store,
		"FEEDSYNC_POSTGRES_DSN":   &cfg.PostgresDSN,
		"FEEDSYNC_REDIS_ADDR":     &cfg.RedisAddr,
		"FEEDSYNC_REDIS_PASSWORD": &cfg.RedisPassword,
		"FEEDSYNC_REDIS_PREFIX":   &cfg.RedisPrefix,
		"FEEDSYNC_LOG_LEVEL":      &cfg.LogLevel,
		"FEEDSYNC_LOG_FORMAT":     &cfg.LogFormat,
		"FEEDSYNC_USER_AGENT":     &cfg.UserAgent,
		"FEEDSYNC_PROXY_URL":      &cfg.ProxyURL,
	}
	for key, dest := range strs {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dest = v
		}
	}

	if v := os.Getenv("FEEDSYNC_DATA_DIR"); v != "" {
		cfg.DataDir = v
		if os.Getenv("FEEDSYNC_DB_PATH") == "" {
			cfg.DBPath = filepath.Join(v, AppName+".db")
		}
	}
	if v := os.Getenv("FEEDSYNC_DB_PATH"); v != "" {
		cfg.DBPath = v
	}

	ints := map[string]*int{
		"FEEDSYNC_POSTGRES_MAX_CONNS":  &cfg.PostgresMaxConns,
		"FEEDSYNC_REDIS_DB":            &cfg.RedisDB,
		"FEEDSYNC_FETCH_MAX_RETRIES":   &cfg.Fetch.MaxRetries,
		"FEEDSYNC_REFRESH_CONCURRENCY": &cfg.Refresh.Concurrency,
	}
	for key, dest := range ints {
		v := os.Getenv(key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse %s: %w", key, err)
		}
		*dest = n
	}

	if v := os.Getenv("FEEDSYNC_NODE_ID"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("parse FEEDSYNC_NODE_ID: %w", err)
		}
		cfg.NodeID = n
	}
	if v := os.Getenv("FEEDSYNC_FETCH_REQUESTS_PER_SECOND"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("parse FEEDSYNC_FETCH_REQUESTS_PER_SECOND: %w", err)
		}
		cfg.Fetch.RequestsPerSecond = f
	}

	durations := map[string]*time.Duration{
		"FEEDSYNC_FETCH_RETRY_DELAY":             &cfg.Fetch.RetryDelay,
		"FEEDSYNC_FETCH_TIMEOUT":                 &cfg.Fetch.Timeout,
		"FEEDSYNC_REFRESH_INTERVAL":              &cfg.Refresh.Interval,
		"FEEDSYNC_REFRESH_DEFAULT_FEED_INTERVAL": &cfg.Refresh.DefaultFeedInterval,
	}
	for key, dest := range durations {
		v := os.Getenv(key)
		if v == "" {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse %s: %w", key, err)
		}
		*dest = d
	}
	return nil
}
