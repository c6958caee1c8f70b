package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Delivery stores order lifecycle settings.
type Delivery struct {
	ExpiryThreshold time.Duration // minimum age before a PENDING order expires
	SweepInterval   time.Duration // how often the sweeper runs
}

// Matching stores courier selection settings.
type Matching struct {
	Strategy string // first_free or top_rated
}

// Kafka stores event stream settings. Empty Brokers disables publishing.
type Kafka struct {
	Brokers []string
	Topic   string
}

// RateLimit stores HTTP rate limiter settings. Zero Rate disables limiting.
type RateLimit struct {
	Rate  float64 // requests per second per client
	Burst int
}

// Config stores service settings.
type Config struct {
	Port      int
	PprofPort int
	Items     []string // allowed item categories; empty means built-in set
	Delivery  Delivery
	Matching  Matching
	Kafka     Kafka
	RateLimit RateLimit
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg := &Config{
		Port:      defaultPort,
		PprofPort: defaultPprofPort,
		Delivery:  DefaultDelivery(),
		Matching:  DefaultMatching(),
		Kafka:     DefaultKafka(),
		RateLimit: DefaultRateLimit(),
	}

	var err error
	if cfg.Port, err = intEnv("PORT", cfg.Port); err != nil {
		return nil, err
	}
	if cfg.PprofPort, err = intEnv("PPROF_PORT", cfg.PprofPort); err != nil {
		return nil, err
	}
	if cfg.Delivery.ExpiryThreshold, err = durationEnv("EXPIRY_THRESHOLD", cfg.Delivery.ExpiryThreshold); err != nil {
		return nil, err
	}
	if cfg.Delivery.SweepInterval, err = durationEnv("SWEEP_INTERVAL", cfg.Delivery.SweepInterval); err != nil {
		return nil, err
	}
	if v := os.Getenv("MATCHING_STRATEGY"); v != "" {
		cfg.Matching.Strategy = v
	}
	cfg.Items = listEnv("ALLOWED_ITEMS")
	cfg.Kafka.Brokers = listEnv("KAFKA_BROKERS")
	if v := os.Getenv("KAFKA_TOPIC"); v != "" {
		cfg.Kafka.Topic = v
	}
	if cfg.RateLimit.Rate, err = floatEnv("RATE_LIMIT_RPS", cfg.RateLimit.Rate); err != nil {
		return nil, err
	}
	if cfg.RateLimit.Burst, err = intEnv("RATE_LIMIT_BURST", cfg.RateLimit.Burst); err != nil {
		return nil, err
	}

	pflag.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	pflag.StringVar(&cfg.Matching.Strategy, "strategy", cfg.Matching.Strategy, "courier matching strategy")
	if err := pflag.CommandLine.Parse(os.Args[1:]); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port: %d", cfg.Port)
	}
	if cfg.PprofPort < 0 || cfg.PprofPort > 65535 {
		return nil, fmt.Errorf("invalid pprof port: %d", cfg.PprofPort)
	}
	switch cfg.Matching.Strategy {
	case "first_free", "top_rated":
	default:
		return nil, fmt.Errorf("unknown matching strategy: %q", cfg.Matching.Strategy)
	}
	if cfg.Delivery.ExpiryThreshold <= 0 {
		return nil, fmt.Errorf("invalid expiry threshold: %s", cfg.Delivery.ExpiryThreshold)
	}
	if cfg.Delivery.SweepInterval <= 0 {
		return nil, fmt.Errorf("invalid sweep interval: %s", cfg.Delivery.SweepInterval)
	}
	return cfg, nil
}

func intEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}
	return n, nil
}

func floatEnv(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}
	return f, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}
	return d, nil
}

func listEnv(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
