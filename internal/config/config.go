package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// GroqEndpoint адрес chat-completion API. Не настраивается через окружение.
const GroqEndpoint = "https://api.groq.com/openai/v1/chat/completions"

var (
	ErrMissingAPIKey = errors.New("GROQ_API_KEY is required")
	ErrMissingModel  = errors.New("MODEL_ID is required")
)

type Config struct {
	HTTPAddr       string
	LogLevel       string
	LogFormat      string
	RequestTimeout time.Duration
	Groq           GroqConfig
}

// GroqConfig параметры обращения к модели. Неизменяемы после загрузки.
type GroqConfig struct {
	APIKey   string
	Model    string
	Endpoint string
}

// LoadDotEnv подгружает переменные из .env-файлов, если они есть.
// Уже выставленные переменные окружения не перезаписываются.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	existing := make([]string, 0, len(paths))
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("load dotenv: %w", err)
	}
	return nil
}

func Load() (Config, error) {
	var cfg Config

	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8080")
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.LogFormat = getEnv("LOG_FORMAT", "json")

	// 0 — без общего таймаута, как у http.Client по умолчанию.
	reqTimeout, err := parseDuration(getEnv("HTTP_CLIENT_TIMEOUT", "0s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse HTTP_CLIENT_TIMEOUT: %w", err)
	}
	cfg.RequestTimeout = reqTimeout

	cfg.Groq = GroqConfig{
		APIKey:   getEnv("GROQ_API_KEY", ""),
		Model:    getEnv("MODEL_ID", ""),
		Endpoint: GroqEndpoint,
	}
	if err := cfg.Groq.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate проверяет только наличие ключа и модели: остальное отвергнет сам сервис.
func (c GroqConfig) Validate() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	if c.Model == "" {
		return ErrMissingModel
	}
	return nil
}

func parseDuration(value string) (time.Duration, error) {
	if value == "" {
		return 0, fmt.Errorf("duration is empty")
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("duration must not be negative: %s", value)
	}
	return d, nil
}

func getEnv(key, def string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return def
}
