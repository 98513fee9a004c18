package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	defaultPath = "."

	defaultBackendTimeout    = 15 * time.Second
	defaultRevalidateTimeout = 10 * time.Second
	defaultStorageProvider   = "blob"
	defaultBlobURL           = "file:///tmp/storefront"
	defaultHTTPPort          = 8090
	defaultMaxBodySize       = "1M"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int    `json:"port" yaml:"port"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	// Backend is the remote storefront REST API consumed by the client core
	Backend *BackendConfig `json:"backend" yaml:"backend"`

	// Storage selects the durable key-value store holding cart and session state
	Storage *StorageConfig `json:"storage" yaml:"storage"`

	Session *SessionConfig `json:"session" yaml:"session"`
}

// BackendConfig defines how the client reaches the storefront API
type BackendConfig struct {
	BaseURL string         `json:"baseUrl" yaml:"baseUrl"`
	Timeout time.Duration  `json:"timeout" yaml:"timeout"`
	Breaker *BreakerConfig `json:"breaker" yaml:"breaker"`
}

// BreakerConfig tunes the circuit breaker wrapped around backend calls
type BreakerConfig struct {
	// Half-open probes allowed before the breaker closes again
	MaxRequests uint32 `json:"maxRequests" yaml:"maxRequests"`

	// Cyclic period in the closed state after which failure counts reset (0 keeps counts)
	Interval time.Duration `json:"interval" yaml:"interval"`

	// How long the breaker stays open before probing
	OpenTimeout time.Duration `json:"openTimeout" yaml:"openTimeout"`

	// Consecutive failures that trip the breaker
	ConsecutiveFailures uint32 `json:"consecutiveFailures" yaml:"consecutiveFailures"`
}

// StorageConfig defines the durable key-value backend
type StorageConfig struct {
	// Provider is one of "blob", "sqlite", "redis", "postgres" or "mysql"
	Provider string `json:"provider" yaml:"provider"`

	// Namespace prefixes every key so several stores can share one backend
	Namespace string `json:"namespace" yaml:"namespace"`

	Blob struct {
		URL string `json:"url" yaml:"url"`
	} `json:"blob" yaml:"blob"`

	SQLite struct {
		Path string `json:"path" yaml:"path"`
	} `json:"sqlite" yaml:"sqlite"`

	Redis struct {
		Addr     string `json:"addr" yaml:"addr"`
		Password string `json:"password" yaml:"password"`
		DB       int    `json:"db" yaml:"db"`
	} `json:"redis" yaml:"redis"`

	Postgres struct {
		DSN string `json:"dsn" yaml:"dsn"`
	} `json:"postgres" yaml:"postgres"`

	MySQL struct {
		DSN string `json:"dsn" yaml:"dsn"`
	} `json:"mysql" yaml:"mysql"`
}

// SessionConfig defines session restore behaviour
type SessionConfig struct {
	// Upper bound for the background profile re-validation after a restore
	RevalidateTimeout time.Duration `json:"revalidateTimeout" yaml:"revalidateTimeout"`

	// Invalidate restored JWTs whose exp claim has passed without asking the backend
	CheckExpiry bool `json:"checkExpiry" yaml:"checkExpiry"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			searchPaths = append(searchPaths, filepath.Join(pwd, path))
		}
	}

	configFile, found := findConfigFile(currEnv, searchPaths)
	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// BACKEND_BASEURL -> backend.baseUrl, aligned with the keys already present in YAML
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			return canonicalizeEnvKey(k, existingConfigMap), v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func findConfigFile(name string, searchPaths []string) (string, bool) {
	for _, path := range searchPaths {
		candidate := filepath.Join(path, name+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
	}

	return "", false
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (cfg *Config) applyDefaults() error {
	if cfg.Backend == nil || strings.TrimSpace(cfg.Backend.BaseURL) == "" {
		return errors.New("backend.baseUrl is required")
	}
	cfg.Backend.BaseURL = strings.TrimRight(cfg.Backend.BaseURL, "/")
	if cfg.Backend.Timeout <= 0 {
		cfg.Backend.Timeout = defaultBackendTimeout
	}
	if cfg.Backend.Breaker == nil {
		cfg.Backend.Breaker = &BreakerConfig{}
	}
	if cfg.Backend.Breaker.ConsecutiveFailures == 0 {
		cfg.Backend.Breaker.ConsecutiveFailures = 5
	}
	if cfg.Backend.Breaker.OpenTimeout <= 0 {
		cfg.Backend.Breaker.OpenTimeout = 30 * time.Second
	}

	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = defaultHTTPPort
	}
	if cfg.HTTP.MaxRequestBodySize == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxBodySize
	}

	if cfg.Storage == nil {
		cfg.Storage = &StorageConfig{}
	}
	if cfg.Storage.Provider == "" {
		cfg.Storage.Provider = defaultStorageProvider
	}
	if cfg.Storage.Provider == defaultStorageProvider && cfg.Storage.Blob.URL == "" {
		cfg.Storage.Blob.URL = defaultBlobURL
	}

	if cfg.Session == nil {
		cfg.Session = &SessionConfig{CheckExpiry: true}
	}
	if cfg.Session.RevalidateTimeout <= 0 {
		cfg.Session.RevalidateTimeout = defaultRevalidateTimeout
	}

	return nil
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}
