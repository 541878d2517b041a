package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != defaultPort {
		t.Fatalf("expected default port %s, got %s", defaultPort, cfg.Port)
	}
	if cfg.ShutdownTimeout != defaultShutdown {
		t.Fatalf("expected default shutdown timeout, got %s", cfg.ShutdownTimeout)
	}
	if cfg.Log.Level != defaultLogLevel || cfg.Log.Format != defaultLogFormat {
		t.Fatalf("unexpected log defaults %+v", cfg.Log)
	}
	if cfg.Storage.Backend != BackendFile {
		t.Fatalf("expected default backend %s, got %s", BackendFile, cfg.Storage.Backend)
	}
	if cfg.Storage.Key != "basketballPlayers" {
		t.Fatalf("expected default storage key, got %s", cfg.Storage.Key)
	}
	if cfg.Metrics.ServiceName != defaultService {
		t.Fatalf("expected default service name, got %s", cfg.Metrics.ServiceName)
	}
	if !cfg.Metrics.Enabled {
		t.Fatalf("expected metrics enabled by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv(envPort, "5000")
	t.Setenv(envLogLevel, "debug")
	t.Setenv(envBackend, "SQLite")
	t.Setenv(envSQLitePath, "/tmp/roster.db")
	t.Setenv(envStorageKey, "roster")
	t.Setenv(envMetricsOn, "false")
	t.Setenv(envS3Gzip, "yes")

	cfg := Load()

	if cfg.Port != "5000" {
		t.Fatalf("expected port 5000, got %s", cfg.Port)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("expected debug level, got %s", cfg.Log.Level)
	}
	if cfg.Storage.Backend != BackendSQLite {
		t.Fatalf("expected backend to be lowercased, got %s", cfg.Storage.Backend)
	}
	if cfg.Storage.SQLitePath != "/tmp/roster.db" || cfg.Storage.Key != "roster" {
		t.Fatalf("unexpected storage config %+v", cfg.Storage)
	}
	if cfg.Metrics.Enabled {
		t.Fatalf("expected metrics disabled")
	}
	if !cfg.Storage.S3Gzip {
		t.Fatalf("expected gzip enabled")
	}
}

func TestLoadReadsDotEnvWithoutOverridingEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("S3_PREFIX=from-file\nPORT=7000\n"), 0o644); err != nil {
		t.Fatalf("failed to write env file: %v", err)
	}
	prev := envFile
	envFile = path
	t.Cleanup(func() {
		envFile = prev
		_ = os.Unsetenv(envS3Prefix)
	})
	t.Setenv(envPort, "6000")

	cfg := Load()

	if cfg.Storage.S3Prefix != "from-file" {
		t.Fatalf("expected prefix from .env, got %s", cfg.Storage.S3Prefix)
	}
	if cfg.Port != "6000" {
		t.Fatalf("expected real env to win over .env, got %s", cfg.Port)
	}
}

func TestAddrs(t *testing.T) {
	cfg := Config{Port: "4000", Metrics: MetricsConfig{Port: ":9090"}}
	if cfg.Addr() != ":4000" {
		t.Fatalf("unexpected addr %s", cfg.Addr())
	}
	if cfg.MetricsAddr() != ":9090" {
		t.Fatalf("unexpected metrics addr %s", cfg.MetricsAddr())
	}
}

func TestStorageValidate(t *testing.T) {
	cases := []struct {
		name    string
		cfg     StorageConfig
		wantErr bool
	}{
		{"memory", StorageConfig{Backend: BackendMemory, Key: "k"}, false},
		{"file", StorageConfig{Backend: BackendFile, Key: "k", Path: "data"}, false},
		{"file missing path", StorageConfig{Backend: BackendFile, Key: "k"}, true},
		{"sqlite missing path", StorageConfig{Backend: BackendSQLite, Key: "k"}, true},
		{"postgres missing dsn", StorageConfig{Backend: BackendPostgres, Key: "k"}, true},
		{"postgres", StorageConfig{Backend: BackendPostgres, Key: "k", PostgresDSN: "host=db"}, false},
		{"s3 missing bucket", StorageConfig{Backend: BackendS3, Key: "k"}, true},
		{"s3", StorageConfig{Backend: BackendS3, Key: "k", S3Bucket: "b"}, false},
		{"unknown", StorageConfig{Backend: "redis", Key: "k"}, true},
		{"missing key", StorageConfig{Backend: BackendMemory}, true},
	}
	for _, tc := range cases {
		err := tc.cfg.Validate()
		if (err != nil) != tc.wantErr {
			t.Fatalf("%s: expected error=%v, got %v", tc.name, tc.wantErr, err)
		}
	}
}
