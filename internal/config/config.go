package config

import (
	"os"
	"strconv"
	"time"
)

// BackendKind selects which content backend the public renderer reads from.
// It is explicit startup configuration; the serving code never inspects
// hostnames to guess an environment.
type BackendKind string

const (
	BackendLocal  BackendKind = "local"
	BackendStrapi BackendKind = "strapi"
)

type Config struct {
	Addr           string
	DatabaseDriver string
	DatabaseURL    string
	MigrationsDir  string
	CORSOrigin     string

	SessionSecret string
	SessionTTL    time.Duration
	BcryptCost    int

	DefaultAdminUser     string
	DefaultAdminPassword string

	// Redis session registry; memory-backed sessions when empty.
	RedisURL string

	Backend     BackendKind
	StrapiURL   string
	HTTPTimeout time.Duration

	// Asset URL rewriting between environments (blocks renderer).
	Environment  string
	AssetDevBase string

	// MinIO object storage for /uploads/; disabled when endpoint is empty.
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioSecure    bool

	// Meilisearch for site search; memory fallback when URL is empty.
	MeiliURL    string
	MeiliAPIKey string

	// Git-backed content history; disabled when dir is empty.
	HistoryDir string

	// SMTP delivery for the contact form; disabled unless host, port,
	// from, and recipient are all set.
	SMTPHost         string
	SMTPPort         string
	SMTPUsername     string
	SMTPPassword     string
	SMTPFrom         string
	SMTPFromName     string
	ContactRecipient string
}

func Load() Config {
	return Config{
		Addr:           getenv("API_ADDR", ":3002"),
		DatabaseDriver: getenv("PORTFOLIO_DB_DRIVER", "sqlite"),
		DatabaseURL:    getenv("PORTFOLIO_DB_URL", "file:portfolio.db?_pragma=busy_timeout(5000)"),
		MigrationsDir:  getenv("PORTFOLIO_MIGRATIONS_DIR", "./migrations"),
		CORSOrigin:     getenv("PORTFOLIO_CORS_ORIGIN", "*"),

		SessionSecret: getenv("PORTFOLIO_SESSION_SECRET", "portfolio-dev-secret"),
		SessionTTL:    time.Duration(getenvInt("PORTFOLIO_SESSION_TTL_SECONDS", 86400)) * time.Second,
		BcryptCost:    getenvInt("PORTFOLIO_BCRYPT_COST", 10),

		DefaultAdminUser:     getenv("PORTFOLIO_ADMIN_USER", "admin"),
		DefaultAdminPassword: getenv("PORTFOLIO_ADMIN_PASSWORD", "changeme-admin"),

		RedisURL: getenv("REDIS_URL", ""),

		Backend:     BackendKind(getenv("PORTFOLIO_BACKEND", string(BackendLocal))),
		StrapiURL:   getenv("STRAPI_URL", "http://localhost:1337"),
		HTTPTimeout: time.Duration(getenvInt("PORTFOLIO_HTTP_TIMEOUT_SECONDS", 10)) * time.Second,

		Environment:  getenv("PORTFOLIO_ENV", "development"),
		AssetDevBase: getenv("PORTFOLIO_ASSET_DEV_BASE", "http://localhost:1337"),

		MinioEndpoint:  getenv("MINIO_ENDPOINT", ""),
		MinioAccessKey: getenv("MINIO_ACCESS_KEY", ""),
		MinioSecretKey: getenv("MINIO_SECRET_KEY", ""),
		MinioBucket:    getenv("MINIO_BUCKET", "portfolio-uploads"),
		MinioSecure:    getenvBool("MINIO_SECURE", false),

		MeiliURL:    getenv("MEILI_URL", ""),
		MeiliAPIKey: getenv("MEILI_API_KEY", ""),

		HistoryDir: getenv("PORTFOLIO_HISTORY_DIR", "./data/history"),

		SMTPHost:         getenv("SMTP_HOST", ""),
		SMTPPort:         getenv("SMTP_PORT", "587"),
		SMTPUsername:     getenv("SMTP_USERNAME", ""),
		SMTPPassword:     getenv("SMTP_PASSWORD", ""),
		SMTPFrom:         getenv("SMTP_FROM", ""),
		SMTPFromName:     getenv("SMTP_FROM_NAME", "Portfolio"),
		ContactRecipient: getenv("CONTACT_RECIPIENT", ""),
	}
}

// IsDevelopment reports whether asset URLs should use the absolute dev base.
func (c Config) IsDevelopment() bool {
	return c.Environment != "production"
}

func getenv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getenvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}
