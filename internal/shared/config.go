package shared

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	LogLevel    string
	HTTPAddr    string
	MetricsAddr string
	MySQLDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	CacheTTL    time.Duration
	CORSOrigins []string

	MailDriver     string
	MailgunBaseURL string
	MailgunDomain  string
	MailgunAPIKey  string
	MailgunRPS     int
	MailSenderName string

	SeedWorkers int
}

// Load reads the process environment. A .env file in the working directory,
// when present, fills in variables that are not already set.
func Load() Config {
	if err := godotenv.Load(); err == nil {
		log.Debug().Msg(".env loaded")
	}

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
			log.Warn().Str("key", k).Str("value", v).Msg("not an integer, using default")
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		LogLevel:    env("LOG_LEVEL", "info"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ""),
		MySQLDSN:    env("MYSQL_DSN", "root:root@tcp(localhost:3306)/estate?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:   env("REDIS_ADDR", "localhost:6379"),
		RedisPass:   env("REDIS_PASSWORD", ""),
		RedisDB:     atoi("REDIS_DB", 0),
		CacheTTL:    time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
		CORSOrigins: splitList(env("CORS_ORIGINS", "http://localhost:5173")),

		MailDriver:     env("MAIL_DRIVER", "mailgun"),
		MailgunBaseURL: env("MAILGUN_BASE_URL", "https://api.mailgun.net"),
		// key and domain have no default; a missing value fails at send time
		MailgunDomain:  os.Getenv("MAILGUN_DOMAIN"),
		MailgunAPIKey:  os.Getenv("MAILGUN_API_KEY"),
		MailgunRPS:     atoi("MAILGUN_RPS", 5),
		MailSenderName: env("MAIL_SENDER_NAME", "Contact Immo"),

		SeedWorkers: atoi("SEED_WORKERS", 4),
	}
	if c.MailDriver == "mailgun" && c.MailgunAPIKey == "" {
		log.Warn().Msg("MAILGUN_API_KEY is empty")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
