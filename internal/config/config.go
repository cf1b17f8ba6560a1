package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds the full application configuration. It is built once at
// startup and passed down to the run loop and provider constructors.
type Config struct {
	Logger LoggerConfig `mapstructure:"logger"`
	ADB    ADBConfig    `mapstructure:"adb"`
	Agent  AgentConfig  `mapstructure:"agent"`
	LLM    LLMConfig    `mapstructure:"llm"`
}

// LoggerConfig controls console and file logging.
type LoggerConfig struct {
	Level       string `mapstructure:"level"`
	Format      string `mapstructure:"format"`
	ServiceName string `mapstructure:"service_name"`
	AddSource   bool   `mapstructure:"add_source"`
	LogFile     string `mapstructure:"log_file"`
	MaxSize     int    `mapstructure:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups"`
	MaxAge      int    `mapstructure:"max_age"`
	Compress    bool   `mapstructure:"compress"`
}

// ADBConfig describes the adb binary and the UI dump transfer paths.
type ADBConfig struct {
	Path           string `mapstructure:"path"`
	DeviceDumpPath string `mapstructure:"device_dump_path"`
	LocalDumpPath  string `mapstructure:"local_dump_path"`
}

// AgentConfig bounds the run loop.
type AgentConfig struct {
	MaxSteps  int           `mapstructure:"max_steps"`
	StepDelay time.Duration `mapstructure:"step_delay"`
}

// LLMConfig selects the decision backend and carries per-provider settings.
type LLMConfig struct {
	Provider string         `mapstructure:"provider"`
	OpenAI   ProviderConfig `mapstructure:"openai"`
	Groq     ProviderConfig `mapstructure:"groq"`
	Bedrock  BedrockConfig  `mapstructure:"bedrock"`
	Gemini   ProviderConfig `mapstructure:"gemini"`
}

type ProviderConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type BedrockConfig struct {
	Model  string `mapstructure:"model"`
	Region string `mapstructure:"region"`
}

// Model returns the model identifier for the selected provider.
func (l LLMConfig) Model() string {
	switch l.Provider {
	case "openai":
		return l.OpenAI.Model
	case "bedrock":
		return l.Bedrock.Model
	case "gemini":
		return l.Gemini.Model
	default:
		return l.Groq.Model
	}
}

// SetDefaults initializes default values on the given viper instance.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.service_name", "agent-cli")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 50)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 14)
	v.SetDefault("logger.compress", true)

	v.SetDefault("adb.path", "adb")
	v.SetDefault("adb.device_dump_path", "/sdcard/window_dump.xml")
	v.SetDefault("adb.local_dump_path", "window_dump.xml")

	v.SetDefault("agent.max_steps", 10)
	v.SetDefault("agent.step_delay", "2s")

	v.SetDefault("llm.provider", "groq")
	v.SetDefault("llm.groq.model", "llama-3.3-70b-versatile")
	v.SetDefault("llm.openai.model", "gpt-4o")
	v.SetDefault("llm.bedrock.model", "us.meta.llama3-3-70b-instruct-v1:0")
	v.SetDefault("llm.bedrock.region", "us-east-1")
	v.SetDefault("llm.gemini.model", "gemini-2.0-flash")
}

// NewConfigFromViper unmarshals and validates a configuration from viper.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	// Credentials and provider selection keep their historical env names,
	// independent of the viper env prefix.
	v.BindEnv("llm.provider", "LLM_PROVIDER")
	v.BindEnv("llm.openai.api_key", "OPENAI_API_KEY")
	v.BindEnv("llm.openai.model", "OPENAI_MODEL")
	v.BindEnv("llm.groq.api_key", "GROQ_API_KEY")
	v.BindEnv("llm.groq.model", "GROQ_MODEL")
	v.BindEnv("llm.bedrock.model", "BEDROCK_MODEL")
	v.BindEnv("llm.bedrock.region", "AWS_REGION")
	v.BindEnv("llm.gemini.api_key", "GEMINI_API_KEY")
	v.BindEnv("llm.gemini.model", "GEMINI_MODEL")
	v.BindEnv("adb.path", "ADB_PATH")
	v.BindEnv("agent.max_steps", "MAX_STEPS")
	v.BindEnv("agent.step_delay", "STEP_DELAY")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// NewDefaultConfig creates a configuration populated with default values.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// Validate checks the configuration for required fields and sane values.
// A failure here aborts the run before any step executes.
func (c *Config) Validate() error {
	if c.Agent.MaxSteps <= 0 {
		return fmt.Errorf("agent.max_steps must be a positive integer")
	}
	if c.Agent.StepDelay < 0 {
		return fmt.Errorf("agent.step_delay must not be negative")
	}
	if c.ADB.Path == "" {
		return fmt.Errorf("adb.path is a required configuration field")
	}
	return c.LLM.Validate()
}

// Validate checks that the selected provider has the credentials it needs.
// Bedrock relies on the AWS credential chain and is not checked here.
func (l LLMConfig) Validate() error {
	switch l.Provider {
	case "groq":
		if l.Groq.APIKey == "" {
			return fmt.Errorf("GROQ_API_KEY is required when using the groq provider")
		}
	case "openai":
		if l.OpenAI.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required when using the openai provider")
		}
	case "gemini":
		if l.Gemini.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required when using the gemini provider")
		}
	case "bedrock":
	default:
		return fmt.Errorf("unknown llm provider %q", l.Provider)
	}
	return nil
}
