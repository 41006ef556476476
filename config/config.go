package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

var AppConfig Config

type GeminiConfig struct {
	APIKey  string        `json:"-"`
	Model   string        `json:"model"`
	BaseURL string        `json:"base_url"`
	Timeout time.Duration `json:"timeout"`
}

type DNSConfig struct {
	ResolverURL string        `json:"resolver_url"`
	Timeout     time.Duration `json:"timeout"`
}

type Config struct {
	Environment    string       `json:"environment"`
	ServerPort     string       `json:"server_port"`
	AllowedOrigins []string     `json:"allowed_origins"`
	DNS            DNSConfig    `json:"dns"`
	Gemini         GeminiConfig `json:"gemini"`
	SentryDSN      string       `json:"-"`
}

func init() {
	// A missing .env file is fine; the environment may carry everything.
	_ = godotenv.Load()
}

func LoadConfig() error {
	AppConfig = Config{
		Environment:    getEnv("ENVIRONMENT", "development"),
		ServerPort:     getEnv("SERVER_PORT", "5000"),
		AllowedOrigins: splitCSV(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		DNS: DNSConfig{
			ResolverURL: getEnv("DNS_RESOLVER_URL", "https://dns.google/resolve"),
			Timeout:     time.Duration(getEnvAsInt("DNS_TIMEOUT_SECONDS", 5)) * time.Second,
		},
		Gemini: GeminiConfig{
			APIKey:  getEnv("GEMINI_API_KEY", ""),
			Model:   getEnv("GEMINI_MODEL", "gemini-3-flash-preview"),
			BaseURL: getEnv("GEMINI_API_URL", "https://generativelanguage.googleapis.com"),
			Timeout: time.Duration(getEnvAsInt("AI_TIMEOUT_SECONDS", 8)) * time.Second,
		},
		SentryDSN: getEnv("SENTRY_DSN", ""),
	}

	if AppConfig.DNS.Timeout <= 0 {
		return fmt.Errorf("DNS_TIMEOUT_SECONDS must be positive")
	}
	if AppConfig.Gemini.Timeout <= 0 {
		return fmt.Errorf("AI_TIMEOUT_SECONDS must be positive")
	}
	if AppConfig.Gemini.APIKey == "" {
		log.Warn("GEMINI_API_KEY not set: reputation scoring will be skipped")
	}

	logConfig()
	return nil
}

// Helper functions
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	var value int
	_, err := fmt.Sscanf(valueStr, "%d", &value)
	if err != nil {
		return fallback
	}
	return value
}

func splitCSV(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func logConfig() {
	log.WithFields(log.Fields{
		"environment":  AppConfig.Environment,
		"server_port":  AppConfig.ServerPort,
		"dns_resolver": AppConfig.DNS.ResolverURL,
		"gemini_model": AppConfig.Gemini.Model,
		"gemini_key":   AppConfig.Gemini.APIKey != "",
		"sentry":       AppConfig.SentryDSN != "",
	}).Info("Loaded configuration")
}
