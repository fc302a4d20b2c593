package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// current holds the most recently loaded configuration.
var current atomic.Pointer[Config]

// Config struct is the top-level configuration structure.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Gateway  GatewayConfig  `mapstructure:"gateway"`
	Quiz     QuizConfig     `mapstructure:"quiz"`
	Advisor  AdvisorConfig  `mapstructure:"advisor"`
	Archive  ArchiveConfig  `mapstructure:"archive"`
}

// ServerConfig holds server-related settings.
type ServerConfig struct {
	Port          string `mapstructure:"port"`
	SessionSecret string `mapstructure:"session_secret"`
	SecureCookies bool   `mapstructure:"secure_cookies"`
	AppID         string `mapstructure:"app_id"`
	StaticDir     string `mapstructure:"static_dir"`
	AuthRateLimit int    `mapstructure:"auth_rate_limit"`

	// Quiz, chat and resume state of a browser is dropped after StateIdle
	// without requests; the check runs every StateSweep.
	StateIdle  time.Duration `mapstructure:"state_idle"`
	StateSweep time.Duration `mapstructure:"state_sweep"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"` // postgres|sqlite
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	Path     string `mapstructure:"path"` // sqlite only

	LogLevel  string        `mapstructure:"log_level"`  // silent|error|warn|info
	SlowQuery time.Duration `mapstructure:"slow_query"` // statements slower than this are logged as warnings
}

// LoggingConfig holds settings for the logger.
type LoggingConfig struct {
	Directory  string `mapstructure:"directory"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
}

// GatewayConfig points the web service at the advisor backend.
type GatewayConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"` // zero means no timeout
}

// QuizConfig holds question bank and result settings.
type QuizConfig struct {
	QuestionsFile string `mapstructure:"questions_file"`
	Celebrate     bool   `mapstructure:"celebrate"`
}

// AdvisorConfig holds the advisor backend settings.
type AdvisorConfig struct {
	Port        string   `mapstructure:"port"`
	APIKey      string   `mapstructure:"api_key"`
	Model       string   `mapstructure:"model"`
	CORSOrigins []string `mapstructure:"cors_origins"`
	MaxUpload   int64    `mapstructure:"max_upload"`
}

// ArchiveConfig configures the optional S3-compatible store for uploaded resumes.
type ArchiveConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Endpoint  string `mapstructure:"endpoint"`
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// setDefaults sets the default values for the configuration.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "5050")
	v.SetDefault("server.session_secret", "change-me-in-production")
	v.SetDefault("server.secure_cookies", false)
	v.SetDefault("server.app_id", "careercompass")
	v.SetDefault("server.static_dir", "web")
	v.SetDefault("server.auth_rate_limit", 5)
	v.SetDefault("server.state_idle", "30m")
	v.SetDefault("server.state_sweep", "1m")

	// Database defaults
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.host", "db")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "user")
	v.SetDefault("database.password", "password")
	v.SetDefault("database.dbname", "careercompass")
	v.SetDefault("database.path", "careercompass.db")
	v.SetDefault("database.log_level", "warn")
	v.SetDefault("database.slow_query", "200ms")

	// Logging defaults
	v.SetDefault("logging.directory", "logs")
	v.SetDefault("logging.max_size", 10)   // 10 MB
	v.SetDefault("logging.max_backups", 3) // Keep 3 backups
	v.SetDefault("logging.max_age", 7)     // 7 days
	v.SetDefault("logging.compress", true) // Compress old logs

	v.SetDefault("gateway.base_url", "http://127.0.0.1:5000")
	v.SetDefault("gateway.timeout", 0)

	v.SetDefault("quiz.questions_file", "config/questions.yaml")
	v.SetDefault("quiz.celebrate", false)

	v.SetDefault("advisor.port", "5000")
	v.SetDefault("advisor.model", "gemini-2.5-pro")
	v.SetDefault("advisor.cors_origins", []string{"http://localhost:5050", "http://127.0.0.1:5050"})
	v.SetDefault("advisor.max_upload", 10<<20)

	v.SetDefault("archive.enabled", false)
	v.SetDefault("archive.region", "auto")
}

// Init loads the configuration with Viper and starts watching the file for changes.
func Init(projectRoot string, log *zap.Logger) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.AddConfigPath(filepath.Join(projectRoot, "config"))
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// e.g., CAREERCOMPASS_SERVER_PORT
	v.SetEnvPrefix("CAREERCOMPASS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// It's okay if the file doesn't exist; defaults and env vars will be used.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	conf := &Config{}
	if err := v.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	current.Store(conf)

	// Components read their settings at construction; a reload only
	// replaces the snapshot returned by Current.
	v.OnConfigChange(func(e fsnotify.Event) {
		log.Info("Configuration file changed, reloading.", zap.String("file", e.Name))
		next := &Config{}
		if err := v.Unmarshal(next); err != nil {
			log.Error("Error reloading configuration", zap.Error(err))
			return
		}
		current.Store(next)
	})
	if v.ConfigFileUsed() != "" {
		v.WatchConfig()
	}

	log.Info("Configuration loaded successfully")
	return conf, nil
}

// Current returns the latest loaded configuration, or nil before Init.
func Current() *Config {
	return current.Load()
}
