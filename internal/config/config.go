// Package config loads service configuration from an optional YAML file and
// PATHLET_-prefixed environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "PATHLET_"
	// EnvConfigFile names the variable holding the YAML config path.
	EnvConfigFile = EnvPrefix + "CONFIG_FILE"
	// EnvPort is the port variable set by Cloud Run.
	EnvPort = "PORT"
)

// Narrative providers.
const (
	ProviderNone        = "none"
	ProviderHuggingFace = "huggingface"
	ProviderGenAI       = "genai"
)

// Narrative cache backends.
const (
	CacheNone      = "none"
	CacheMemory    = "memory"
	CacheFirestore = "firestore"
)

type Config struct {
	Env     string `koanf:"env" validate:"oneof=development production test"`
	Version string `koanf:"version"`

	HTTP struct {
		Port              int           `koanf:"port" validate:"min=1,max=65535"`
		MaxBodyBytes      int64         `koanf:"maxBodyBytes" validate:"min=1024"`
		ReadTimeout       time.Duration `koanf:"readTimeout" validate:"gt=0"`
		ReadHeaderTimeout time.Duration `koanf:"readHeaderTimeout" validate:"gt=0"`
		WriteTimeout      time.Duration `koanf:"writeTimeout" validate:"gt=0"`
		IdleTimeout       time.Duration `koanf:"idleTimeout" validate:"gt=0"`
		ShutdownTimeout   time.Duration `koanf:"shutdownTimeout" validate:"gt=0"`
	} `koanf:"http"`

	Log struct {
		Level string `koanf:"level" validate:"oneof=debug info warn error"`
	} `koanf:"log"`

	CORS struct {
		AllowedOrigins []string `koanf:"allowedOrigins" validate:"dive,required"`
		MaxAge         int      `koanf:"maxAge" validate:"min=0"`
	} `koanf:"cors"`

	RateLimit struct {
		Enabled           bool `koanf:"enabled"`
		RequestsPerMinute int  `koanf:"requestsPerMinute" validate:"min=1"`
		Burst             int  `koanf:"burst" validate:"min=1"`
	} `koanf:"rateLimit"`

	Narrative struct {
		Provider string        `koanf:"provider" validate:"oneof=none huggingface genai"`
		APIKey   string        `koanf:"apiKey" validate:"required_if=Provider genai"`
		Model    string        `koanf:"model"`
		BaseURL  string        `koanf:"baseUrl" validate:"omitempty,url"`
		Timeout  time.Duration `koanf:"timeout" validate:"gt=0"`

		Cache struct {
			Backend    string        `koanf:"backend" validate:"oneof=none memory firestore"`
			TTL        time.Duration `koanf:"ttl" validate:"min=0"`
			Collection string        `koanf:"collection"`
		} `koanf:"cache"`
	} `koanf:"narrative"`

	GCP struct {
		ProjectID       string `koanf:"projectId" validate:"required_if=CacheBackend firestore"`
		CredentialsFile string `koanf:"credentialsFile"`
		// CacheBackend mirrors Narrative.Cache.Backend for validation.
		CacheBackend string `koanf:"-"`
	} `koanf:"gcp"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	cfg := &Config{Env: "development", Version: "dev"}

	cfg.HTTP.Port = 8080
	cfg.HTTP.MaxBodyBytes = 1 << 20
	cfg.HTTP.ReadTimeout = 5 * time.Second
	cfg.HTTP.ReadHeaderTimeout = 2 * time.Second
	cfg.HTTP.WriteTimeout = 30 * time.Second
	cfg.HTTP.IdleTimeout = 60 * time.Second
	cfg.HTTP.ShutdownTimeout = 10 * time.Second

	cfg.Log.Level = "info"

	cfg.CORS.AllowedOrigins = []string{"*"}
	cfg.CORS.MaxAge = 300

	cfg.RateLimit.Enabled = true
	cfg.RateLimit.RequestsPerMinute = 10
	cfg.RateLimit.Burst = 10

	cfg.Narrative.Provider = ProviderNone
	cfg.Narrative.Timeout = 10 * time.Second
	cfg.Narrative.Cache.Backend = CacheMemory
	cfg.Narrative.Cache.TTL = 24 * time.Hour
	cfg.Narrative.Cache.Collection = "narratives"

	return cfg
}

// Load reads an optional .env file and then calls LoadFile with the path in
// PATHLET_CONFIG_FILE.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}
	return LoadFile(os.Getenv(EnvConfigFile))
}

// LoadFile builds the configuration from defaults, the YAML file at path (if
// path is not empty) and environment overrides, then validates it.
func LoadFile(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	known := knownKeys(k.Raw())
	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(key, value string) (string, any) {
			if key == EnvConfigFile {
				return "", nil
			}
			name := canonicalizeEnvKey(strings.TrimPrefix(key, EnvPrefix), known)
			if strings.HasSuffix(name, "allowedOrigins") {
				return name, splitList(value)
			}
			return name, value
		},
	}), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	cfg := Default()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			TagName:          "koanf",
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
			MatchName: strings.EqualFold,
		},
	}); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := applyPort(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	c.GCP.CacheBackend = c.Narrative.Cache.Backend
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.HTTP.Port)
}

// applyPort honours PORT unless PATHLET_HTTP_PORT is set.
func applyPort(cfg *Config) error {
	if _, ok := os.LookupEnv(EnvPrefix + "HTTP_PORT"); ok {
		return nil
	}
	raw := strings.TrimSpace(os.Getenv(EnvPort))
	if raw == "" {
		return nil
	}
	port, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", EnvPort, raw, err)
	}
	cfg.HTTP.Port = port
	return nil
}

func splitList(v string) []string {
	var out []string
	for part := range strings.SplitSeq(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// knownKeys merges the keys of the loaded file with the struct defaults so
// env overrides line up with camelCase keys even without a file.
func knownKeys(loaded map[string]any) map[string]any {
	known := map[string]any{
		"env":     nil,
		"version": nil,
		"http": map[string]any{
			"port": nil, "maxBodyBytes": nil, "readTimeout": nil, "readHeaderTimeout": nil,
			"writeTimeout": nil, "idleTimeout": nil, "shutdownTimeout": nil,
		},
		"log":       map[string]any{"level": nil},
		"cors":      map[string]any{"allowedOrigins": nil, "maxAge": nil},
		"rateLimit": map[string]any{"enabled": nil, "requestsPerMinute": nil, "burst": nil},
		"narrative": map[string]any{
			"provider": nil, "apiKey": nil, "model": nil, "baseUrl": nil, "timeout": nil,
			"cache": map[string]any{"backend": nil, "ttl": nil, "collection": nil},
		},
		"gcp": map[string]any{"projectId": nil, "credentialsFile": nil},
	}
	for k, v := range loaded {
		if _, ok := known[k]; !ok {
			known[k] = v
		}
	}
	return known
}

// canonicalizeEnvKey converts NARRATIVE_API_KEY to narrative.apiKey by
// matching the longest run of underscore-separated segments against the
// existing keys at each level.
func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	var segments []string
	for s := range strings.SplitSeq(strings.ToLower(rawKey), "_") {
		if s != "" {
			segments = append(segments, s)
		}
	}

	canonical := make([]string, 0, len(segments))
	current := existing
	for i := 0; i < len(segments); {
		matched, next, width := "", map[string]any(nil), 0
		for j := len(segments); j > i; j-- {
			if key, child, ok := findExistingSegment(current, strings.Join(segments[i:j], "")); ok {
				matched, next, width = key, child, j-i
				break
			}
		}
		if width == 0 {
			canonical = append(canonical, segments[i])
			current = nil
			i++
			continue
		}
		canonical = append(canonical, matched)
		current = next
		i += width
	}
	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (string, map[string]any, bool) {
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
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}
