package config

import "time"

// Config represents the main configuration structure
type Config struct {
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Detection DetectionConfig `yaml:"detection" mapstructure:"detection"`
	Masking   MaskingConfig   `yaml:"masking" mapstructure:"masking"`
	Cache     CacheConfig     `yaml:"cache" mapstructure:"cache"`
	WebSocket WebSocketConfig `yaml:"websocket" mapstructure:"websocket"`
	Logging   LoggingConfig   `yaml:"logging" mapstructure:"logging"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port          int           `yaml:"port" mapstructure:"port"`
	ReadTimeout   time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout  time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
	IdleTimeout   time.Duration `yaml:"idle_timeout" mapstructure:"idle_timeout"`
	MaxTextLength int           `yaml:"max_text_length" mapstructure:"max_text_length"`
	BatchLimit    int           `yaml:"batch_limit" mapstructure:"batch_limit"`
}

// DetectionConfig controls the PII detection engine
type DetectionConfig struct {
	ConfidenceThreshold float64 `yaml:"confidence_threshold" mapstructure:"confidence_threshold"`
	ContextValidation   bool    `yaml:"context_validation" mapstructure:"context_validation"`
	StrictValidation    bool    `yaml:"strict_validation" mapstructure:"strict_validation"`
	CollectStatistics   bool    `yaml:"collect_statistics" mapstructure:"collect_statistics"`
	IncludeContext      bool    `yaml:"include_context" mapstructure:"include_context"`
}

// MaskingConfig controls masking strategy selection
type MaskingConfig struct {
	// DefaultStrategy, when set, overrides the per-type defaults for
	// every PII type at startup.
	DefaultStrategy string `yaml:"default_strategy" mapstructure:"default_strategy"`

	// Strategies maps PII type names to strategy names, applied after
	// DefaultStrategy.
	Strategies map[string]string `yaml:"strategies" mapstructure:"strategies"`
}

// CacheConfig contains detection result cache configuration
type CacheConfig struct {
	Enabled  bool          `yaml:"enabled" mapstructure:"enabled"`
	RedisURL string        `yaml:"redis_url" mapstructure:"redis_url"`
	TTL      time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// WebSocketConfig contains WebSocket configuration
type WebSocketConfig struct {
	Enabled         bool          `yaml:"enabled" mapstructure:"enabled"`
	Path            string        `yaml:"path" mapstructure:"path"`
	MaxConnections  int           `yaml:"max_connections" mapstructure:"max_connections"`
	ReadBufferSize  int           `yaml:"read_buffer_size" mapstructure:"read_buffer_size"`
	WriteBufferSize int           `yaml:"write_buffer_size" mapstructure:"write_buffer_size"`
	PingInterval    time.Duration `yaml:"ping_interval" mapstructure:"ping_interval"`
	PongTimeout     time.Duration `yaml:"pong_timeout" mapstructure:"pong_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
	MaxMessageSize  int64         `yaml:"max_message_size" mapstructure:"max_message_size"`
	AllowedOrigins  []string      `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"` // json or console
	File   struct {
		Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
		Path    string `yaml:"path" mapstructure:"path"`
	} `yaml:"file" mapstructure:"file"`
}

// GetDefaults returns a configuration with sensible defaults
func GetDefaults() *Config {
	return &Config{
		Server: ServerConfig{
			Port:          8080,
			ReadTimeout:   30 * time.Second,
			WriteTimeout:  30 * time.Second,
			IdleTimeout:   60 * time.Second,
			MaxTextLength: 1 << 20,
			BatchLimit:    100,
		},
		Detection: DetectionConfig{
			ConfidenceThreshold: 0.7,
			ContextValidation:   true,
			StrictValidation:    true,
			CollectStatistics:   true,
		},
		Masking: MaskingConfig{
			Strategies: map[string]string{},
		},
		Cache: CacheConfig{
			Enabled:  false,
			RedisURL: "redis://localhost:6379",
			TTL:      time.Hour,
		},
		WebSocket: WebSocketConfig{
			Enabled:         true,
			Path:            "/ws",
			MaxConnections:  100,
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			PingInterval:    30 * time.Second,
			PongTimeout:     60 * time.Second,
			WriteTimeout:    10 * time.Second,
			MaxMessageSize:  512,
			AllowedOrigins:  []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}
