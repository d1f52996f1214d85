package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.GetAPIBasePath() != "/api/v1" {
		t.Errorf("base path = %q", cfg.GetAPIBasePath())
	}
	if cfg.Booking.AllowPricingGaps {
		t.Error("pricing gaps should be rejected by default")
	}
	if cfg.Kafka.Enabled {
		t.Error("kafka should be disabled by default")
	}
	if cfg.Redis.Addr != "localhost:6379" {
		t.Errorf("redis addr = %q", cfg.Redis.Addr)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_NAME", "park")
	t.Setenv("JWT_EXPIRES_IN", "30m")
	t.Setenv("RATE_LIMIT_WHITELISTED_IPS", "10.0.0.1,10.0.0.2")
	t.Setenv("BOOKING_ALLOW_PRICING_GAPS", "true")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.GetServerAddress() != ":9000" {
		t.Errorf("address = %q", cfg.GetServerAddress())
	}
	want := "host=db port=5432 user=zombieland password=zombieland dbname=park sslmode=disable"
	if cfg.Database.DSN != want {
		t.Errorf("DSN = %q", cfg.Database.DSN)
	}
	if cfg.JWT.JWTExpiresIn != 30*time.Minute {
		t.Errorf("JWT expiry = %s", cfg.JWT.JWTExpiresIn)
	}
	if len(cfg.RateLimit.WhitelistedIPs) != 2 {
		t.Errorf("whitelist = %v", cfg.RateLimit.WhitelistedIPs)
	}
	if !cfg.Booking.AllowPricingGaps {
		t.Error("expected pricing gaps to be allowed")
	}
	if len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Brokers[1] != "k2:9092" {
		t.Errorf("brokers = %v", cfg.Kafka.Brokers)
	}
}

func TestLoadRejectsMalformedValues(t *testing.T) {
	t.Setenv("READ_TIMEOUT", "soon")
	if _, err := Load(); err == nil {
		t.Fatal("expected parse error")
	}
}
