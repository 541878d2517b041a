package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// StorageConfig selects and configures the key-value slot backing the roster.
type StorageConfig struct {
	Backend     string
	Key         string
	Path        string // file backend directory
	SQLitePath  string
	PostgresDSN string
	S3Bucket    string
	S3Prefix    string
	S3Gzip      bool
}

func loadStorage(v *viper.Viper) StorageConfig {
	return StorageConfig{
		Backend:     strings.ToLower(envOrDefault(v, envBackend, defaultBackend)),
		Key:         envOrDefault(v, envStorageKey, defaultStorageKey),
		Path:        envOrDefault(v, envStoragePath, defaultStoragePath),
		SQLitePath:  envOrDefault(v, envSQLitePath, defaultSQLitePath),
		PostgresDSN: envOrDefault(v, envPostgresDSN, ""),
		S3Bucket:    envOrDefault(v, envS3Bucket, ""),
		S3Prefix:    envOrDefault(v, envS3Prefix, defaultS3Prefix),
		S3Gzip:      boolEnvOrDefault(v, envS3Gzip, false),
	}
}

// Validate ensures the selected backend has what it needs.
func (s StorageConfig) Validate() error {
	if s.Key == "" {
		return errors.New("storage key is required")
	}
	switch s.Backend {
	case BackendMemory:
		return nil
	case BackendFile:
		if s.Path == "" {
			return errors.New("storage path is required for the file backend")
		}
	case BackendSQLite:
		if s.SQLitePath == "" {
			return errors.New("sqlite path is required for the sqlite backend")
		}
	case BackendPostgres:
		if s.PostgresDSN == "" {
			return errors.New("postgres dsn is required for the postgres backend")
		}
	case BackendS3:
		if s.S3Bucket == "" {
			return errors.New("s3 bucket is required for the s3 backend")
		}
	default:
		return fmt.Errorf("unknown storage backend %q", s.Backend)
	}
	return nil
}
