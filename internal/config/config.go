package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"

	StoreFile     = "file"
	StorePostgres = "postgres"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	LLM      LLMConfig      `mapstructure:"llm"`
	Gemini   GeminiConfig   `mapstructure:"gemini"`
	OpenAI   OpenAIConfig   `mapstructure:"openai"`
	Scoring  ScoringConfig  `mapstructure:"scoring"`
	Store    StoreConfig    `mapstructure:"store"`
	Database DatabaseConfig `mapstructure:"db"`
	Storage  StorageConfig  `mapstructure:"storage"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Env  string `mapstructure:"env"`
}

type LogConfig struct {
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

type LLMConfig struct {
	Provider string `mapstructure:"provider"`
}

type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type OpenAIConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type ScoringConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts"`
	Pace        time.Duration `mapstructure:"pace"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

type StoreConfig struct {
	Backend       string        `mapstructure:"backend"`
	Retention     time.Duration `mapstructure:"retention"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"name"`
}

type StorageConfig struct {
	UploadPath  string `mapstructure:"upload_path"`
	SessionPath string `mapstructure:"session_path"`
	ReportPath  string `mapstructure:"report_path"`
	MaxFileSize int64  `mapstructure:"max_file_size"`
}

// Load reads .env (if present) and the process environment. Keys are the
// upper-cased config paths with dots replaced by underscores, except for the
// aliases bound in bindAliases.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using environment and default values.")
	}

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	if err := bindAliases(v); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "3000")
	v.SetDefault("server.env", "development")

	v.SetDefault("log.json", false)
	v.SetDefault("log.debug", false)

	v.SetDefault("llm.provider", ProviderGemini)
	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model", "gemini-2.5-flash")
	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.model", "gpt-4o-mini")

	v.SetDefault("scoring.max_attempts", 1)
	v.SetDefault("scoring.pace", "1s")
	v.SetDefault("scoring.timeout", "60s")

	v.SetDefault("store.backend", StoreFile)
	v.SetDefault("store.retention", "1h")
	v.SetDefault("store.sweep_interval", "10m")

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "postgres")
	v.SetDefault("db.name", "resume_ranker")

	v.SetDefault("storage.upload_path", "./resumes")
	v.SetDefault("storage.session_path", "./temp")
	v.SetDefault("storage.report_path", "./results")
	v.SetDefault("storage.max_file_size", 10485760)
}

// bindAliases keeps the flat environment names used in deployment.
func bindAliases(v *viper.Viper) error {
	aliases := map[string]string{
		"server.port":           "PORT",
		"server.env":            "ENV",
		"llm.provider":          "LLM_PROVIDER",
		"store.backend":         "STORE_BACKEND",
		"store.retention":       "RETENTION",
		"store.sweep_interval":  "SWEEP_INTERVAL",
		"storage.upload_path":   "UPLOAD_PATH",
		"storage.session_path":  "SESSION_PATH",
		"storage.report_path":   "REPORT_PATH",
		"storage.max_file_size": "MAX_FILE_SIZE",
	}
	for key, env := range aliases {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}
	return nil
}

func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case ProviderGemini, ProviderOpenAI:
	default:
		return fmt.Errorf("llm provider must be %q or %q, got %q", ProviderGemini, ProviderOpenAI, c.LLM.Provider)
	}

	switch c.Store.Backend {
	case StoreFile, StorePostgres:
	default:
		return fmt.Errorf("store backend must be %q or %q, got %q", StoreFile, StorePostgres, c.Store.Backend)
	}

	if c.Scoring.MaxAttempts < 1 {
		return fmt.Errorf("scoring.max_attempts must be at least 1")
	}
	if c.Scoring.Pace < 0 {
		return fmt.Errorf("scoring.pace must be non-negative")
	}
	if c.Store.Retention <= 0 {
		return fmt.Errorf("store.retention must be positive")
	}
	if c.Storage.MaxFileSize <= 0 {
		return fmt.Errorf("storage.max_file_size must be positive")
	}

	return nil
}

// APIKey returns the key of the configured provider.
func (c *Config) APIKey() string {
	if c.LLM.Provider == ProviderOpenAI {
		return c.OpenAI.APIKey
	}
	return c.Gemini.APIKey
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}
