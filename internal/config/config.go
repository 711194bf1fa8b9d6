package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Client memusatkan konfigurasi sisi klien (CLI dan SDK).
type Client struct {
	BaseURL     string
	TokenFile   string
	HTTPTimeout time.Duration
}

// Server memusatkan konfigurasi server stub kurikulumd.
type Server struct {
	Port      int
	JWTSecret string
	TokenTTL  time.Duration
	RateLimit RateLimitConfig
}

// RateLimitConfig merepresentasikan batas sederhana untuk throttling.
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// LoadClient memuat variabel lingkungan sisi klien dan menerapkan default aman.
func LoadClient() (*Client, error) {
	_ = godotenv.Load()

	cfg := &Client{}

	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(getEnv("KURIKULUM_BASE_URL", "http://localhost:8080")), "/")
	if cfg.BaseURL == "" {
		return nil, errors.New("KURIKULUM_BASE_URL wajib diisi")
	}

	tokenFile := strings.TrimSpace(getEnv("KURIKULUM_TOKEN_FILE", ""))
	if tokenFile == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, errors.New("direktori konfigurasi pengguna tidak ditemukan; setel KURIKULUM_TOKEN_FILE")
		}
		tokenFile = filepath.Join(dir, "kurikulum", "access_token")
	}
	cfg.TokenFile = tokenFile

	timeout, err := parseDurationEnv("KURIKULUM_HTTP_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.HTTPTimeout = timeout

	return cfg, nil
}

// LoadServer memuat variabel lingkungan kurikulumd dan menerapkan default.
func LoadServer() (*Server, error) {
	_ = godotenv.Load()

	cfg := &Server{}

	portStr := getEnv("KURIKULUMD_PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil || port <= 0 {
		return nil, errors.New("KURIKULUMD_PORT tidak valid")
	}
	cfg.Port = port

	cfg.JWTSecret = strings.TrimSpace(getEnv("KURIKULUMD_JWT_SECRET", ""))
	if cfg.JWTSecret == "" {
		// Stub pengembangan; rahasia default hanya untuk lingkungan lokal.
		cfg.JWTSecret = "kurikulumd-dev-secret-jangan-dipakai-produksi"
	}

	ttl, err := parseDurationEnv("KURIKULUMD_TOKEN_TTL", 12*time.Hour)
	if err != nil {
		return nil, err
	}
	cfg.TokenTTL = ttl

	cfg.RateLimit = RateLimitConfig{RequestsPerSecond: 20, Burst: 40}
	if rps := getEnv("KURIKULUMD_RATE_LIMIT_RPS", ""); rps != "" {
		parsed, err := strconv.ParseFloat(rps, 64)
		if err != nil || parsed <= 0 {
			return nil, errors.New("KURIKULUMD_RATE_LIMIT_RPS tidak valid")
		}
		cfg.RateLimit.RequestsPerSecond = parsed
	}
	if burst := getEnv("KURIKULUMD_RATE_LIMIT_BURST", ""); burst != "" {
		parsed, err := strconv.Atoi(burst)
		if err != nil || parsed <= 0 {
			return nil, errors.New("KURIKULUMD_RATE_LIMIT_BURST tidak valid")
		}
		cfg.RateLimit.Burst = parsed
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return def
}

func parseDurationEnv(key string, def time.Duration) (time.Duration, error) {
	val := getEnv(key, "")
	if val == "" {
		return def, nil
	}
	dur, err := time.ParseDuration(val)
	if err != nil {
		return 0, errors.New(key + " tidak valid")
	}
	return dur, nil
}
