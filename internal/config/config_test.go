package config

import (
	"log/slog"
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_StorageDriverValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("defaults to memory", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.StorageDriver != StorageMemory {
			t.Fatalf("unexpected default storage driver: %q", cfg.StorageDriver)
		}
	})

	t.Run("accepts postgres", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "postgres")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.StorageDriver != StoragePostgres {
			t.Fatalf("unexpected storage driver: %q", cfg.StorageDriver)
		}
	})

	t.Run("rejects unknown driver", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "sqlite")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for unknown STORAGE_DRIVER")
		}
	})
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_PyroscopeAppNameDefaultsToServiceName(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("APP_SERVICE_NAME", "fantasy-manager-api-test")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "http://localhost:4040")
	t.Setenv("PYROSCOPE_APP_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PyroscopeAppName != "fantasy-manager-api-test" {
		t.Fatalf("unexpected pyroscope app name: %q", cfg.PyroscopeAppName)
	}
}

func TestLoad_CORSOriginsDefaultAndParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("default wildcard", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
			t.Fatalf("unexpected default CORS origins: %+v", cfg.CORSAllowedOrigins)
		}
	})

	t.Run("comma separated parsing", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example.com, http://localhost:5173 ")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 2 {
			t.Fatalf("unexpected CORS origins length: %d", len(cfg.CORSAllowedOrigins))
		}
		if cfg.CORSAllowedOrigins[0] != "https://a.example.com" {
			t.Fatalf("unexpected first CORS origin: %s", cfg.CORSAllowedOrigins[0])
		}
		if cfg.CORSAllowedOrigins[1] != "http://localhost:5173" {
			t.Fatalf("unexpected second CORS origin: %s", cfg.CORSAllowedOrigins[1])
		}
	})
}

func TestLoad_CacheConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("CACHE_ENABLED", "")
		t.Setenv("CACHE_TTL", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.CacheEnabled {
			t.Fatalf("expected cache enabled by default")
		}
		if cfg.CacheTTL != 30*time.Second {
			t.Fatalf("unexpected default cache ttl: %s", cfg.CacheTTL)
		}
	})

	t.Run("invalid ttl", func(t *testing.T) {
		t.Setenv("CACHE_TTL", "bad")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid CACHE_TTL")
		}
	})
}

func TestLoad_JanusCircuitConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.JanusCircuitEnabled {
			t.Fatalf("expected circuit breaker enabled by default")
		}
		if cfg.JanusCircuitFailureCount != 5 {
			t.Fatalf("unexpected failure count: %d", cfg.JanusCircuitFailureCount)
		}
		if cfg.JanusCircuitOpenTimeout != 15*time.Second {
			t.Fatalf("unexpected open timeout: %s", cfg.JanusCircuitOpenTimeout)
		}
	})

	t.Run("rejects zero failure count", func(t *testing.T) {
		t.Setenv("JANUS_CIRCUIT_FAILURE_COUNT", "0")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for JANUS_CIRCUIT_FAILURE_COUNT=0")
		}
	})
}

func TestLoad_MarketJobConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.MarketRefreshBatchSize != 10 {
			t.Fatalf("unexpected refresh batch size: %d", cfg.MarketRefreshBatchSize)
		}
		if cfg.MarketListingTTL != 24*time.Hour {
			t.Fatalf("unexpected listing ttl: %s", cfg.MarketListingTTL)
		}
		if cfg.MarketSweepWorkers != 4 {
			t.Fatalf("unexpected sweep workers: %d", cfg.MarketSweepWorkers)
		}
	})

	t.Run("rejects non-positive ttl", func(t *testing.T) {
		t.Setenv("MARKET_LISTING_TTL", "0s")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for MARKET_LISTING_TTL=0s")
		}
	})
}

func TestLoad_LogLevelParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("debug", func(t *testing.T) {
		t.Setenv("APP_LOG_LEVEL", "debug")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.LogLevel != slog.LevelDebug {
			t.Fatalf("unexpected log level: %s", cfg.LogLevel)
		}
	})

	t.Run("unknown falls back to info", func(t *testing.T) {
		t.Setenv("APP_LOG_LEVEL", "chatty")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.LogLevel != slog.LevelInfo {
			t.Fatalf("unexpected log level: %s", cfg.LogLevel)
		}
	})
}
