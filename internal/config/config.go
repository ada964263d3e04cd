package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig
	Model   ModelConfig
	Storage StorageConfig
	Log     LogConfig

	// EnvFileLoaded reports whether a .env file was found; the logger is not
	// ready yet when config loads, so callers log it themselves.
	EnvFileLoaded bool
}

type ServerConfig struct {
	Host        string
	Port        string
	Env         string
	Version     string
	CORSOrigins []string
}

type ModelConfig struct {
	Provider     string
	Endpoint     string
	Name         string
	Timeout      time.Duration
	GeminiAPIKey string
	GeminiModel  string
}

type StorageConfig struct {
	UploadPath        string
	MaxFileSize       int64
	AllowedExtensions []string
}

type LogConfig struct {
	JSON  bool
	Debug bool
}

const (
	ProviderOllama = "ollama"
	ProviderGemini = "gemini"
)

// room for multipart boundaries, headers and the other form fields
const multipartOverhead = 1024 * 1024

// env var name for every config key
var envBindings = map[string]string{
	"server.host":          "HOST",
	"server.port":          "PORT",
	"server.env":           "ENV",
	"server.version":       "APP_VERSION",
	"server.cors-origins":  "CORS_ORIGINS",
	"model.provider":       "MODEL_PROVIDER",
	"model.endpoint":       "MODEL_ENDPOINT",
	"model.name":           "MODEL_NAME",
	"model.timeout":        "MODEL_TIMEOUT",
	"model.gemini-api-key": "GEMINI_API_KEY",
	"model.gemini-model":   "GEMINI_MODEL",
	"storage.upload-path":  "UPLOAD_PATH",
	"storage.max-size":     "MAX_FILE_SIZE",
	"storage.extensions":   "ALLOWED_FILE_TYPES",
	"log.json":             "LOG_JSON",
	"log.debug":            "LOG_DEBUG",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", "8000")
	v.SetDefault("server.env", "development")
	v.SetDefault("server.version", "1.0.0")
	v.SetDefault("server.cors-origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:8000,http://127.0.0.1:8000")
	v.SetDefault("model.provider", ProviderOllama)
	v.SetDefault("model.endpoint", "http://localhost:11434")
	v.SetDefault("model.name", "gemma3")
	v.SetDefault("model.timeout", "10m")
	v.SetDefault("model.gemini-api-key", "")
	v.SetDefault("model.gemini-model", "gemini-2.5-flash")
	v.SetDefault("storage.upload-path", "uploads")
	v.SetDefault("storage.max-size", int64(50*1024*1024))
	v.SetDefault("storage.extensions", ".pdf")
	v.SetDefault("log.json", false)
	v.SetDefault("log.debug", false)
}

// Load reads the .env file (if any) and resolves configuration from the environment.
func Load() *Config {
	return LoadFrom(viper.New())
}

// LoadFrom resolves configuration using v, so callers can bind command line flags
// to the same keys before loading.
func LoadFrom(v *viper.Viper) *Config {
	envLoaded := godotenv.Load() == nil

	setDefaults(v)
	for key, env := range envBindings {
		// BindEnv only fails when no key is given
		_ = v.BindEnv(key, env)
	}

	return &Config{
		Server: ServerConfig{
			Host:        v.GetString("server.host"),
			Port:        v.GetString("server.port"),
			Env:         v.GetString("server.env"),
			Version:     v.GetString("server.version"),
			CORSOrigins: splitList(v.GetString("server.cors-origins")),
		},
		Model: ModelConfig{
			Provider:     strings.ToLower(strings.TrimSpace(v.GetString("model.provider"))),
			Endpoint:     strings.TrimRight(v.GetString("model.endpoint"), "/"),
			Name:         v.GetString("model.name"),
			Timeout:      getDuration(v, "model.timeout", 10*time.Minute),
			GeminiAPIKey: v.GetString("model.gemini-api-key"),
			GeminiModel:  v.GetString("model.gemini-model"),
		},
		Storage: StorageConfig{
			UploadPath:        v.GetString("storage.upload-path"),
			MaxFileSize:       v.GetInt64("storage.max-size"),
			AllowedExtensions: normalizeExtensions(splitList(v.GetString("storage.extensions"))),
		},
		Log: LogConfig{
			JSON:  v.GetBool("log.json"),
			Debug: v.GetBool("log.debug"),
		},
		EnvFileLoaded: envLoaded,
	}
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}

// BodyLimit is the request size the HTTP server accepts. It leaves room over
// MaxFileSize so an oversized upload reaches the upload size check and gets a
// JSON error. Zero means the server default.
func (s StorageConfig) BodyLimit() int {
	if s.MaxFileSize <= 0 {
		return 0
	}
	return int(s.MaxFileSize + multipartOverhead)
}

func getDuration(v *viper.Viper, key string, defaultValue time.Duration) time.Duration {
	if d := v.GetDuration(key); d > 0 {
		return d
	}
	return defaultValue
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func normalizeExtensions(exts []string) []string {
	result := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		result = append(result, ext)
	}
	return result
}
