package config

import "time"

const (
	envPort         = "PORT"
	envLogLevel     = "LOG_LEVEL"
	envLogFormat    = "LOG_FORMAT"
	envLogFile      = "LOG_FILE"
	envShutdown     = "SHUTDOWN_TIMEOUT"
	envMetricsPort  = "METRICS_PORT"
	envMetricsOn    = "METRICS_ENABLED"
	envOtelEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService  = "OTEL_SERVICE_NAME"
	envOtelInsecure = "OTEL_EXPORTER_OTLP_INSECURE"
	envBackend      = "STORAGE_BACKEND"
	envStoragePath  = "STORAGE_PATH"
	envStorageKey   = "STORAGE_KEY"
	envSQLitePath   = "SQLITE_PATH"
	envPostgresDSN  = "POSTGRES_DSN"
	envS3Bucket     = "S3_BUCKET"
	envS3Prefix     = "S3_PREFIX"
	envS3Gzip       = "S3_GZIP"

	defaultPort        = "4000"
	defaultLogLevel    = "info"
	defaultLogFormat   = "text"
	defaultShutdown    = 10 * time.Second
	defaultMetricsPort = "9090"
	defaultService     = "nba-roster-service"
	defaultBackend     = BackendFile
	defaultStoragePath = "data/roster"
	// Same slot key the browser build used, so exported localStorage dumps load as-is.
	defaultStorageKey = "basketballPlayers"
	defaultSQLitePath = "data/roster.db"
	defaultS3Prefix   = "roster"
)

// Storage backends understood by the kv package.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendS3       = "s3"
)
