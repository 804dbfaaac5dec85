package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.JWT.AccessExpiresIn != 30*time.Minute {
		t.Fatalf("access expiry = %v, want 30m", cfg.JWT.AccessExpiresIn)
	}
	if cfg.JWT.RefreshExpiresIn != 7*24*time.Hour {
		t.Fatalf("refresh expiry = %v, want 168h", cfg.JWT.RefreshExpiresIn)
	}
	if cfg.JWT.AccessSecret == cfg.JWT.RefreshSecret {
		t.Fatalf("access and refresh secrets must differ")
	}
	if !cfg.UsingFallbackSecrets() {
		t.Fatalf("bare environment should report fallback secrets")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_ACCESS_SECRET", "a-real-access-secret")
	t.Setenv("JWT_REFRESH_SECRET", "a-real-refresh-secret")
	t.Setenv("JWT_ACCESS_TOKEN_EXPIRY", "15m")
	t.Setenv("KAFKA_BROKERS", "broker-1:9092, broker-2:9092")

	cfg := Load()

	if cfg.UsingFallbackSecrets() {
		t.Fatalf("overridden secrets still reported as fallback")
	}
	if cfg.JWT.AccessExpiresIn != 15*time.Minute {
		t.Fatalf("access expiry = %v, want 15m", cfg.JWT.AccessExpiresIn)
	}
	if len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Brokers[1] != "broker-2:9092" {
		t.Fatalf("unexpected brokers: %v", cfg.Kafka.Brokers)
	}
}

func TestLoadPartialFallback(t *testing.T) {
	t.Setenv("JWT_ACCESS_SECRET", "a-real-access-secret")

	cfg := Load()

	// Overriding only one secret still leaves the deployment forgeable.
	if !cfg.UsingFallbackSecrets() {
		t.Fatalf("partial override should still report fallback secrets")
	}
}
