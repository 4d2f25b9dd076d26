package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port       string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	JWTSecret    string
	JWTExpiresIn string // minutes

	AdminEmail    string
	AdminPassword string
	AdminFullName string

	// Messaging gateway (outbound sends) and webhook (inbound updates).
	GatewayURL   string // empty -> console transport
	GatewayToken string
	WebhookToken string

	// Trigger timing.
	Timezone          string
	NotifyLeadMinutes int
	CollectLagMinutes int
	// Provisional records older than this many days are purged daily.
	ProvisionalTTLDays int
}

func Load() *Config {
	return &Config{
		Port:       getenv("PORT", "8080"),
		DBHost:     getenv("DB_HOST", "localhost"),
		DBPort:     getenv("DB_PORT", "5432"),
		DBUser:     getenv("DB_USER", "postgres"),
		DBPassword: getenv("DB_PASSWORD", "postgres"),
		DBName:     getenv("DB_NAME", "attendance_db"),
		DBSSLMode:  getenv("DB_SSLMODE", "disable"),

		JWTSecret:    getenv("JWT_SECRET", "supersecret_change_me"),
		JWTExpiresIn: getenv("JWT_EXPIRES_IN", "60"),

		AdminEmail:    getenv("ADMIN_EMAIL", "admin@example.com"),
		AdminPassword: getenv("ADMIN_PASSWORD", "admin123"),
		AdminFullName: getenv("ADMIN_FULL_NAME", "Administrator"),

		GatewayURL:   getenv("GATEWAY_URL", ""),
		GatewayToken: getenv("GATEWAY_TOKEN", ""),
		WebhookToken: getenv("WEBHOOK_TOKEN", ""),

		Timezone:           getenv("TIMEZONE", "Europe/Moscow"),
		NotifyLeadMinutes:  getenvInt("NOTIFY_LEAD_MINUTES", 5),
		CollectLagMinutes:  getenvInt("COLLECT_LAG_MINUTES", 10),
		ProvisionalTTLDays: getenvInt("PROVISIONAL_TTL_DAYS", 14),
	}
}

func getenv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
