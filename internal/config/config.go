// Package config loads InStock configuration from the environment, an
// optional YAML file and a discovered .env file, and sets up logging.
package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/karibuclean/instock/internal/store"
)

// Provider identifies the LLM backend for the forecaster and classifier.
type Provider string

const (
	ProviderOllama    Provider = "ollama"
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
	ProviderBedrock   Provider = "bedrock"
)

// Config holds all configuration values.
type Config struct {
	// Local persistence
	DataDir string

	// LLM access
	LLMProvider     Provider
	LLMModel        string
	OllamaHost      string
	OpenAIAPIKey    string
	AnthropicAPIKey string
	BedrockModelID  string

	// HTTP server
	ServerAddr string

	// Logging
	LogFile  string
	LogLevel slog.Level
}

// fileConfig mirrors the optional YAML config file. Environment variables
// take precedence over file values.
type fileConfig struct {
	DataDir        string `yaml:"data_dir"`
	LLMProvider    string `yaml:"llm_provider"`
	LLMModel       string `yaml:"llm_model"`
	OllamaHost     string `yaml:"ollama_host"`
	BedrockModelID string `yaml:"bedrock_model_id"`
	ServerAddr     string `yaml:"server_addr"`
	LogFile        string `yaml:"log_file"`
	LogLevel       string `yaml:"log_level"`
}

// Load reads configuration with precedence env > config.yaml > defaults.
// A .env file in the working directory or a parent is loaded first.
func Load() Config {
	loadDotEnv()

	dataDir := getEnv("INSTOCK_DATA_DIR", defaultDataDir())
	file := readFileConfig(getEnv("INSTOCK_CONFIG", filepath.Join(dataDir, "config.yaml")))

	return Config{
		DataDir: pick(os.Getenv("INSTOCK_DATA_DIR"), file.DataDir, defaultDataDir()),

		LLMProvider:     Provider(pick(os.Getenv("INSTOCK_LLM_PROVIDER"), file.LLMProvider, string(ProviderAnthropic))),
		LLMModel:        pick(os.Getenv("INSTOCK_LLM_MODEL"), file.LLMModel, ""),
		OllamaHost:      pick(os.Getenv("OLLAMA_HOST"), file.OllamaHost, "http://localhost:11434"),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		BedrockModelID:  pick(os.Getenv("INSTOCK_BEDROCK_MODEL_ID"), file.BedrockModelID, "anthropic.claude-3-5-sonnet-20240620-v1:0"),

		ServerAddr: pick(os.Getenv("INSTOCK_SERVER_ADDR"), file.ServerAddr, ":8085"),

		LogFile:  pick(os.Getenv("INSTOCK_LOG_FILE"), file.LogFile, filepath.Join(os.TempDir(), "instock.log")),
		LogLevel: parseLogLevel(pick(os.Getenv("INSTOCK_LOG_LEVEL"), file.LogLevel, "INFO")),
	}
}

// ItemsPath returns the path of the persisted inventory document.
func (c Config) ItemsPath() string {
	return filepath.Join(c.DataDir, store.ItemsFile)
}

// JobsPath returns the path of the persisted job document.
func (c Config) JobsPath() string {
	return filepath.Join(c.DataDir, store.JobsFile)
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".instock"
	}
	return filepath.Join(home, ".instock")
}

func readFileConfig(path string) fileConfig {
	var fc fileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return fc
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		slog.Warn("ignoring unparseable config file", "path", path, "error", err)
		return fileConfig{}
	}
	return fc
}

// loadDotEnv walks up from the working directory looking for a .env file,
// stopping at the filesystem root or after a handful of levels.
func loadDotEnv() {
	dir, err := os.Getwd()
	if err != nil {
		return
	}
	for range 5 {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// pick returns the first non-empty value.
func pick(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
