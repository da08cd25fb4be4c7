package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	DB        DBConfig
	S3        S3Config
	Log       LogConfig
	Queue     QueueConfig
	Extractor ExtractorConfig
	Job       JobConfig
	Email     EmailConfig
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// S3Config holds AWS S3 settings for section attachments.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// QueueConfig holds ingest queue worker settings.
type QueueConfig struct {
	PollIntervalSecs int `mapstructure:"poll_interval_secs"`
	MaxRetries       int `mapstructure:"max_retries"`
	Concurrency      int `mapstructure:"concurrency"`
}

// ExtractorConfig holds settings for the two external extraction programs.
type ExtractorConfig struct {
	Python          string `mapstructure:"python"`
	SlicerScript    string `mapstructure:"slicer_script"`
	MetadataScript  string `mapstructure:"metadata_script"`
	SlicerTimeout   int    `mapstructure:"slicer_timeout_secs"`
	MetadataTimeout int    `mapstructure:"metadata_timeout_secs"`
	StorageRoot     string `mapstructure:"storage_root"`
}

// JobConfig holds pipeline-level settings.
type JobConfig struct {
	TimeoutSecs int `mapstructure:"timeout_secs"`
	// ContinueOnMetadataFailure keeps the pipeline running after a failed
	// metadata extraction, materializing sections under the parent's prior
	// metadata. This mirrors the historical behavior of the ingestion job.
	ContinueOnMetadataFailure bool   `mapstructure:"continue_on_metadata_failure"`
	FrontendURL               string `mapstructure:"frontend_url"`
}

// EmailConfig holds notification delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
}

// Load reads configuration from environment variables with the GAZETTED_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("GAZETTED")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "gazetted")
	v.SetDefault("db.password", "gazetted_secret")
	v.SetDefault("db.name", "gazetted_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "gazetted-attachments")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// Queue defaults. Ingestion jobs are resource-intensive, so a single
	// retry before the dead queue and a small concurrency ceiling.
	v.SetDefault("queue.poll_interval_secs", 10)
	v.SetDefault("queue.max_retries", 1)
	v.SetDefault("queue.concurrency", 2)

	// Extractor defaults
	v.SetDefault("extractor.python", "python3")
	v.SetDefault("extractor.slicer_script", "/opt/gazette-slicer/slice_gazette.py")
	v.SetDefault("extractor.metadata_script", "/opt/gazette-slicer/process_gazette.py")
	v.SetDefault("extractor.slicer_timeout_secs", 900)
	v.SetDefault("extractor.metadata_timeout_secs", 780)
	v.SetDefault("extractor.storage_root", "/var/lib/gazetted/gazettes")

	// Job defaults
	v.SetDefault("job.timeout_secs", 1800)
	v.SetDefault("job.continue_on_metadata_failure", true)
	v.SetDefault("job.frontend_url", "http://localhost:3000")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "us-east-1")
	v.SetDefault("email.from_address", "noreply@gazetted.local")
	v.SetDefault("email.from_name", "Gazette Ingestion")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"db.host":                          "GAZETTED_DB_HOST",
		"db.port":                          "GAZETTED_DB_PORT",
		"db.user":                          "GAZETTED_DB_USER",
		"db.password":                      "GAZETTED_DB_PASSWORD",
		"db.name":                          "GAZETTED_DB_NAME",
		"db.sslmode":                       "GAZETTED_DB_SSLMODE",
		"db.max_open":                      "GAZETTED_DB_MAX_OPEN",
		"db.max_idle":                      "GAZETTED_DB_MAX_IDLE",
		"s3.region":                        "GAZETTED_S3_REGION",
		"s3.bucket":                        "GAZETTED_S3_BUCKET",
		"s3.endpoint":                      "GAZETTED_S3_ENDPOINT",
		"s3.access_key":                    "GAZETTED_S3_ACCESS_KEY",
		"s3.secret_key":                    "GAZETTED_S3_SECRET_KEY",
		"s3.presign_expiry":                "GAZETTED_S3_PRESIGN_EXPIRY",
		"log.level":                        "GAZETTED_LOG_LEVEL",
		"log.format":                       "GAZETTED_LOG_FORMAT",
		"queue.poll_interval_secs":         "GAZETTED_QUEUE_POLL_INTERVAL_SECS",
		"queue.max_retries":                "GAZETTED_QUEUE_MAX_RETRIES",
		"queue.concurrency":                "GAZETTED_QUEUE_CONCURRENCY",
		"extractor.python":                 "GAZETTED_EXTRACTOR_PYTHON",
		"extractor.slicer_script":          "GAZETTED_EXTRACTOR_SLICER_SCRIPT",
		"extractor.metadata_script":        "GAZETTED_EXTRACTOR_METADATA_SCRIPT",
		"extractor.slicer_timeout_secs":    "GAZETTED_EXTRACTOR_SLICER_TIMEOUT_SECS",
		"extractor.metadata_timeout_secs":  "GAZETTED_EXTRACTOR_METADATA_TIMEOUT_SECS",
		"extractor.storage_root":           "GAZETTED_EXTRACTOR_STORAGE_ROOT",
		"job.timeout_secs":                 "GAZETTED_JOB_TIMEOUT_SECS",
		"job.continue_on_metadata_failure": "GAZETTED_JOB_CONTINUE_ON_METADATA_FAILURE",
		"job.frontend_url":                 "GAZETTED_JOB_FRONTEND_URL",
		"email.provider":                   "GAZETTED_EMAIL_PROVIDER",
		"email.region":                     "GAZETTED_EMAIL_REGION",
		"email.from_address":               "GAZETTED_EMAIL_FROM_ADDRESS",
		"email.from_name":                  "GAZETTED_EMAIL_FROM_NAME",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.Queue = QueueConfig{
		PollIntervalSecs: v.GetInt("queue.poll_interval_secs"),
		MaxRetries:       v.GetInt("queue.max_retries"),
		Concurrency:      v.GetInt("queue.concurrency"),
	}
	cfg.Extractor = ExtractorConfig{
		Python:          v.GetString("extractor.python"),
		SlicerScript:    v.GetString("extractor.slicer_script"),
		MetadataScript:  v.GetString("extractor.metadata_script"),
		SlicerTimeout:   v.GetInt("extractor.slicer_timeout_secs"),
		MetadataTimeout: v.GetInt("extractor.metadata_timeout_secs"),
		StorageRoot:     v.GetString("extractor.storage_root"),
	}
	cfg.Job = JobConfig{
		TimeoutSecs:               v.GetInt("job.timeout_secs"),
		ContinueOnMetadataFailure: v.GetBool("job.continue_on_metadata_failure"),
		FrontendURL:               v.GetString("job.frontend_url"),
	}
	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
	}

	return cfg, nil
}

// SlicerTimeoutDuration returns the slicer per-call timeout as a duration.
func (e *ExtractorConfig) SlicerTimeoutDuration() time.Duration {
	return time.Duration(e.SlicerTimeout) * time.Second
}

// MetadataTimeoutDuration returns the metadata per-call timeout as a duration.
func (e *ExtractorConfig) MetadataTimeoutDuration() time.Duration {
	return time.Duration(e.MetadataTimeout) * time.Second
}

// TimeoutDuration returns the whole-job timeout as a duration.
func (j *JobConfig) TimeoutDuration() time.Duration {
	return time.Duration(j.TimeoutSecs) * time.Second
}
