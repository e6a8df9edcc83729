package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/rpupo63/myfolio-api/errs"
)

const (
	StorageSupabase = "supabase"
	StorageS3       = "s3"
)

// DefaultOrigins are the front-ends allowed to call the API when ACCEPTED_ORIGINS is unset.
var DefaultOrigins = []string{
	"http://localhost:3000",
	"https://sowndarya-ragavan.vercel.app",
}

type Config struct {
	Port                string `env:"PORT" envDefault:"8080"`
	ReadTimeoutSeconds  int    `env:"READ_TIMEOUT_SECONDS" envDefault:"180"`
	WriteTimeoutSeconds int    `env:"WRITE_TIMEOUT_SECONDS" envDefault:"180"`
	IdleTimeoutSeconds  int    `env:"IDLE_TIMEOUT_SECONDS" envDefault:"180"`

	DatabaseURL         string   `env:"DATABASE_URL"`
	DatabaseReplicaURLs []string `env:"DATABASE_REPLICA_URLS" envSeparator:","`
	SupabaseDBHost      string   `env:"SUPABASE_DB_HOST"`
	SupabaseDBUser      string   `env:"SUPABASE_DB_USER"`
	SupabaseDBPassword  string   `env:"SUPABASE_DB_PASSWORD"`
	SupabaseDBName      string   `env:"SUPABASE_DB_NAME"`
	SupabaseDBPort      string   `env:"SUPABASE_DB_PORT" envDefault:"5432"`

	StorageBackend  string `env:"STORAGE_BACKEND" envDefault:"supabase"`
	SupabaseURL     string `env:"SUPABASE_URL"`
	SupabaseKey     string `env:"SUPABASE_KEY"`
	BucketName      string `env:"BUCKET_NAME" envDefault:"demo-pdfs"`
	S3Region        string `env:"S3_REGION"`
	S3Endpoint      string `env:"S3_ENDPOINT"`
	S3PublicBaseURL string `env:"S3_PUBLIC_BASE_URL"`
	MaxUploadBytes  int64  `env:"MAX_UPLOAD_BYTES" envDefault:"20971520"`

	AcceptedOrigins []string `env:"ACCEPTED_ORIGINS" envSeparator:","`
	LogLevel        string   `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat       string   `env:"LOG_FORMAT" envDefault:"json"`

	// GenerateColumnReport prints the column mismatch report and exits instead of serving.
	GenerateColumnReport bool `env:"GENERATE_COLUMN_REPORT"`
}

// Bootstrap holds the settings read before Config, since they decide where the rest comes from.
type Bootstrap struct {
	SSMParameterPath string `env:"SSM_PARAMETER_PATH"`
}

func LoadBootstrap() (Bootstrap, error) {
	var boot Bootstrap
	if err := env.Parse(&boot); err != nil {
		return Bootstrap{}, errs.NewConfigError("bootstrap", fmt.Errorf("parse env: %w", err))
	}
	return boot, nil
}

// Load parses the process environment into a Config and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, errs.NewConfigError("environment", fmt.Errorf("parse env: %w", err))
	}
	if len(cfg.AcceptedOrigins) == 0 {
		cfg.AcceptedOrigins = DefaultOrigins
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.DSN() == "" {
		return errs.NewEnvironmentVariableError("DATABASE_URL")
	}
	switch c.StorageBackend {
	case StorageSupabase:
		if c.SupabaseURL == "" {
			return errs.NewEnvironmentVariableError("SUPABASE_URL")
		}
		if _, err := url.Parse(c.SupabaseURL); err != nil {
			return errs.NewConfigError("SUPABASE_URL", err)
		}
		if c.SupabaseKey == "" {
			return errs.NewEnvironmentVariableError("SUPABASE_KEY")
		}
	case StorageS3:
		if c.S3Region == "" {
			return errs.NewEnvironmentVariableError("S3_REGION")
		}
	default:
		return errs.NewConfigError("STORAGE_BACKEND", fmt.Errorf("unsupported backend %q", c.StorageBackend))
	}
	if c.BucketName == "" {
		return errs.NewEnvironmentVariableError("BUCKET_NAME")
	}
	if c.MaxUploadBytes <= 0 {
		return errs.NewConfigError("MAX_UPLOAD_BYTES", fmt.Errorf("must be positive, got %d", c.MaxUploadBytes))
	}
	return nil
}

// DSN returns DATABASE_URL, or a key/value DSN assembled from the SUPABASE_DB_* settings.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	if c.SupabaseDBHost == "" {
		return ""
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=require",
		c.SupabaseDBHost,
		c.SupabaseDBUser,
		c.SupabaseDBPassword,
		c.SupabaseDBName,
		c.SupabaseDBPort,
	)
}

func (c *Config) Address() string {
	return fmt.Sprintf("0.0.0.0:%s", c.Port) // Bind to 0.0.0.0 for external access
}

func (c *Config) ReadTimeout() time.Duration {
	return time.Duration(c.ReadTimeoutSeconds) * time.Second
}

func (c *Config) WriteTimeout() time.Duration {
	return time.Duration(c.WriteTimeoutSeconds) * time.Second
}

func (c *Config) IdleTimeout() time.Duration {
	return time.Duration(c.IdleTimeoutSeconds) * time.Second
}

// Origins returns the trimmed, non-empty CORS origins.
func (c *Config) Origins() []string {
	origins := make([]string, 0, len(c.AcceptedOrigins))
	for _, o := range c.AcceptedOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
