package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	DSN           string
	JWTSecret     string
	SessionTTLHrs int
	GeminiAPIKey  string
	GeminiModel   string
	SMTPHost      string
	SMTPPort      int
	SMTPUsername  string
	SMTPPassword  string
	MailFrom      string
	BaseURL       string
	StaticDir     string
	Env           string
}

func Load() *Config {
	_ = godotenv.Load()
	ttl, err := strconv.Atoi(getEnv("SESSION_TTL_HOURS", "168"))
	if err != nil {
		ttl = 168
	}
	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		smtpPort = 587
	}

	c := &Config{
		Port:          getEnv("PORT", "8080"),
		DSN:           mustEnv("DB_DSN"),
		JWTSecret:     mustEnv("JWT_SECRET"),
		SessionTTLHrs: ttl,
		GeminiAPIKey:  mustEnv("GEMINI_API_KEY"),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		SMTPHost:      getEnv("SMTP_HOST", ""),
		SMTPPort:      smtpPort,
		SMTPUsername:  getEnv("SMTP_USERNAME", ""),
		SMTPPassword:  getEnv("SMTP_PASSWORD", ""),
		MailFrom:      getEnv("MAIL_FROM", "no-reply@lessonhub.local"),
		BaseURL:       getEnv("BASE_URL", "http://localhost:8080"),
		StaticDir:     getEnv("STATIC_DIR", "static"),
		Env:           getEnv("ENV", "dev"),
	}
	log.Printf("config loaded: env=%s port=%s", c.Env, c.Port)
	return c
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func mustEnv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("missing env: %s", k)
	}
	return v
}
