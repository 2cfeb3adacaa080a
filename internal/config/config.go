package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env              string
	ServerAddr       string
	DatabaseURL      string
	FrontendOrigin   string
	CloudinaryCloud  string
	CloudinaryKey    string
	CloudinarySecret string
	BrevoAPIKey      string
	BrevoSenderEmail string
	BrevoSenderName  string
	BrevoSandbox     bool
	EmailRecipients  []string
	RedisURL         string
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	CacheTTLSeconds  int
	Timezone         *time.Location
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	loc, err := time.LoadLocation(getEnv("TZ", "Asia/Kolkata"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Env:              getEnv("APP_ENV", "development"),
		ServerAddr:       getEnv("SERVER_ADDR", ":5000"),
		DatabaseURL:      getEnv("DATABASE_URL", "postgres://localhost:5432/payana?sslmode=require"),
		FrontendOrigin:   getEnv("FRONTEND_ORIGIN", "*"),
		CloudinaryCloud:  getEnv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryKey:    getEnv("CLOUDINARY_API_KEY", ""),
		CloudinarySecret: getEnv("CLOUDINARY_API_SECRET", ""),
		BrevoAPIKey:      getEnv("BREVO_API_KEY", ""),
		BrevoSenderEmail: getEnv("BREVO_SENDER_EMAIL", ""),
		BrevoSenderName:  getEnv("BREVO_SENDER_NAME", "Payana Overseas"),
		BrevoSandbox:     getEnv("BREVO_SANDBOX", "false") == "true",
		EmailRecipients:  SplitRecipients(getEnv("EMAIL_RECEIVERS", "")),
		RedisURL:         getEnv("REDIS_URL", ""),
		RedisAddr:        getEnv("REDIS_ADDR", ""),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		RedisDB:          getEnvInt("REDIS_DB", 0),
		CacheTTLSeconds:  getEnvInt("CACHE_TTL_SECONDS", 60),
		Timezone:         loc,
	}

	return cfg, nil
}

// SplitRecipients parses a comma-separated recipient list, dropping empties.
func SplitRecipients(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
