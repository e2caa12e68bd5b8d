package config

import (
	"flag"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	// Server-side settings
	DatabaseDSN    string        `env:"DATABASE_URI"`
	AuthSecret     string        `env:"AUTH_SECRET"`
	QueryTimeout   time.Duration `env:"QUERY_TIMEOUT"`
	ReviewInterval time.Duration `env:"REVIEW_INTERVAL"`
	CORSOrigins    []string      `env:"CORS_ORIGINS" envSeparator:","`

	// Shared settings
	BaseURL     string `env:"BASE_URL"`
	EnableHTTPS bool   `env:"ENABLE_HTTPS"`

	// Client-side settings
	ServerURL      string        `env:"-"`
	ClientDBPath   string        `env:"CLIENT_DB_PATH"`
	TokenFile      string        `env:"TOKEN_FILE"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
	Version        bool          `env:"-"` // show client version and exit (flag only)
}

const (
	defaultAuthSecret     = "dev-secret-key"
	defaultBaseURL        = "localhost:8081"
	defaultDatabaseDSN    = "file:flashcards.db"
	defaultQueryTimeout   = 5 * time.Second
	defaultRequestTimeout = 10 * time.Second
	defaultReviewInterval = 24 * time.Hour
)

var hostPortRe = regexp.MustCompile(`^[A-Za-z0-9\.\-]+:\d{1,5}$`)

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// flags работают ТОЛЬКО если переменные из env не заданы
	// Server flags
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "строка подключения к БД (postgres://... или sqlite file:...)")
	flag.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "секрет для подписи JWT")
	flag.DurationVar(&cfg.QueryTimeout, "query-timeout", cfg.QueryTimeout, "таймаут одного запроса к БД")
	flag.DurationVar(&cfg.ReviewInterval, "review-interval", cfg.ReviewInterval, "через сколько карточка снова считается к повторению")
	// Shared/client flags
	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "base URL of the flashcards server (host:port)")
	flag.BoolVar(&cfg.EnableHTTPS, "https", cfg.EnableHTTPS, "enable HTTPS (client: prefer https scheme for BaseURL)")
	// Client flags
	flag.StringVar(&cfg.ClientDBPath, "client-db", cfg.ClientDBPath, "directory for per-user client SQLite caches")
	flag.StringVar(&cfg.TokenFile, "token-file", cfg.TokenFile, "path to auth token file (client)")
	flag.DurationVar(&cfg.RequestTimeout, "request-timeout", cfg.RequestTimeout, "timeout of a single API call (client)")
	flag.BoolVar(&cfg.Version, "version", cfg.Version, "Show client version and exit")

	flag.Parse()

	cfg.applyDefaults()
	return cfg
}

// applyDefaults заполняет незаданные поля значениями по умолчанию.
func (cfg *Config) applyDefaults() {
	if cfg.AuthSecret == "" {
		cfg.AuthSecret = defaultAuthSecret
	}
	if cfg.DatabaseDSN == "" {
		cfg.DatabaseDSN = defaultDatabaseDSN
	}
	if cfg.QueryTimeout <= 0 {
		cfg.QueryTimeout = defaultQueryTimeout
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}
	if cfg.ReviewInterval <= 0 {
		cfg.ReviewInterval = defaultReviewInterval
	}

	// validate BaseURL: must be in "address:port" (no scheme, no path). Otherwise use default.
	if !hostPortRe.MatchString(cfg.BaseURL) {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.EnableHTTPS {
		cfg.ServerURL = "https://" + cfg.BaseURL
	} else {
		cfg.ServerURL = "http://" + cfg.BaseURL
	}

	origins := cfg.CORSOrigins[:0]
	for _, o := range cfg.CORSOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	cfg.CORSOrigins = origins
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{"http://localhost:3000"}
	}

	// Fill client defaults if empty. Пустой TokenFile означает файл в каталоге конфигурации.
	if cfg.ClientDBPath == "" {
		if dir, err := os.UserConfigDir(); err == nil {
			cfg.ClientDBPath = filepath.Join(dir, "Flashcards", "users")
		}
	}
}
