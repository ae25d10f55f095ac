package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"
)

// Config holds all runtime settings, read once from the environment at
// startup and treated as immutable afterwards.
type Config struct {
	// Server
	Port           string
	AllowedOrigins []string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Auth
	JWTSecret string
	JWTExpiry time.Duration

	// Password reset
	ResetTokenTTL time.Duration

	// Uploads
	UploadDir     string
	UploadBaseURL string

	// Twilio Verify (email OTP); optional, a dev verifier is used when unset
	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioVerifySID  string

	// Rate limit (requests per second per client, burst)
	RateLimitRPS   float64
	RateLimitBurst int
}

// Load reads the configuration from environment variables. Required
// variables missing leads to an error rather than a partially working
// process.
func Load() (*Config, error) {
	cfg := &Config{}

	var missing []string
	required := func(key string) string {
		v := os.Getenv(key)
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}

	cfg.DBHost = required("DB_HOST")
	cfg.DBPort = required("DB_PORT")
	cfg.DBUser = required("DB_USER")
	cfg.DBPassword = required("DB_PASSWORD")
	cfg.DBName = required("DB_NAME")
	cfg.JWTSecret = required("JWT_SECRET")

	if len(missing) > 0 {
		return nil, fmt.Errorf("required environment variables are not set: %v", missing)
	}

	cfg.DBSSLMode = getEnvString("DB_SSLMODE", "disable")
	cfg.Port = getEnvString("PORT", "8080")
	cfg.AllowedOrigins = strings.Split(getEnvString("ALLOWED_ORIGINS", "*"), ",")
	cfg.JWTExpiry = getEnvDuration("JWT_EXPIRY", 72*time.Hour)
	cfg.ResetTokenTTL = getEnvDuration("RESET_TOKEN_TTL", time.Hour)
	cfg.UploadDir = getEnvString("UPLOAD_DIR", "./uploads")
	cfg.UploadBaseURL = getEnvString("UPLOAD_BASE_URL", "/uploads")
	cfg.TwilioAccountSID = os.Getenv("TWILIO_ACCOUNT_SID")
	cfg.TwilioAuthToken = os.Getenv("TWILIO_AUTH_TOKEN")
	cfg.TwilioVerifySID = os.Getenv("TWILIO_VERIFY_SERVICE_SID")
	cfg.RateLimitRPS = getEnvFloat("RATE_LIMIT_RPS", 10)
	cfg.RateLimitBurst = getEnvInt("RATE_LIMIT_BURST", 20)

	return cfg, nil
}

// DSN builds the postgres connection string the way the database package
// expects it.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode,
	)
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvFloat(key string, defaultVal float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return defaultVal
	}
	return f
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
