package configs

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// =======================
// CONFIG
// =======================
type Config struct {
	Port           string        `env:"PORT" envDefault:"3000"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"5s"`

	JWTSecret string `env:"JWT_SECRET"`
	// role yang boleh ubah schedule / materialisasi; kosong = semua user login
	WriteRoles []string `env:"AUTH_WRITE_ROLES" envSeparator:","`

	CORSOrigins  []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://localhost:5173"`
	RateLimitMax int      `env:"RATE_LIMIT_MAX" envDefault:"100"`

	DB DBConfig `envPrefix:"DB_"`

	// <= 0 berarti satu siklus (Weekly: jumlah hari, lainnya: 1)
	EventGenerationHorizon int    `env:"EVENT_GENERATION_HORIZON" envDefault:"0"`
	AutoMaterializeCron    string `env:"AUTO_MATERIALIZE_CRON"`

	RedisURL           string `env:"REDIS_URL"`
	RedisEventsChannel string `env:"REDIS_EVENTS_CHANNEL" envDefault:"church-events"`
}

type DBConfig struct {
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     string `env:"PORT" envDefault:"5432"`
	User     string `env:"USER"`
	Password string `env:"PASSWORD"`
	Name     string `env:"NAME"`
	SSLMode  string `env:"SSLMODE" envDefault:"require"`
	// ms, ikut timeout request
	StatementTimeout int `env:"STATEMENT_TIMEOUT" envDefault:"3000"`
}

func (c DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=iescms&options=-c statement_timeout=%d",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode, c.StatementTimeout,
	)
}

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ Tidak menemukan .env file, menggunakan ENV dari sistem")
		} else {
			log.Println("✅ .env file berhasil dimuat!")
		}
	} else {
		log.Println("🚀 Running in Railway, menggunakan ENV dari sistem")
	}
}

// Load baca .env (kalau ada) lalu parse ENV ke Config.
func Load() (Config, error) {
	LoadEnv()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.JWTSecret == "" {
		log.Println("❌ JWT_SECRET belum diset!")
	}
	return cfg, nil
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}
