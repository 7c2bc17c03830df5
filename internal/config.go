package internal

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

type Config struct {
	Server        ServerConfig        `mapstructure:"http_server"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Security      SecurityConfig      `mapstructure:"security"`
	Assets        AssetsConfig        `mapstructure:"assets"`
	Otp           OtpConfig           `mapstructure:"otp"`
	Upload        UploadConfig        `mapstructure:"upload"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

type ServerConfig struct {
	Port              int           `mapstructure:"port"`
	BaseURL           string        `mapstructure:"base_url"`
	AllowedOrigins    string        `mapstructure:"allowed_origins"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
}

type DatabaseConfig struct {
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	Source          string        `mapstructure:"source"`
}

type SecurityConfig struct {
	AccessTokenSecret    string        `mapstructure:"access_token_secret"`
	RefreshTokenSecret   string        `mapstructure:"refresh_token_secret"`
	AccessTokenDuration  time.Duration `mapstructure:"access_token_duration"`
	RefreshTokenDuration time.Duration `mapstructure:"refresh_token_duration"`
	BCryptCost           int           `mapstructure:"bcrypt_cost"`
}

// AssetsConfig picks the status vocabulary for this deployment. The two
// vocabularies are never mixed within one store.
type AssetsConfig struct {
	Workflow          string `mapstructure:"workflow"`
	RetiredIsTerminal bool   `mapstructure:"retired_is_terminal"`
	LocationRequired  bool   `mapstructure:"location_required"`
}

type OtpConfig struct {
	RequireVerification bool          `mapstructure:"require_verification"`
	TTL                 time.Duration `mapstructure:"ttl"`
	SMTPAddr            string        `mapstructure:"smtp_addr"`
	SMTPUser            string        `mapstructure:"smtp_user"`
	SMTPPassword        string        `mapstructure:"smtp_password"`
	FromAddress         string        `mapstructure:"from_address"`
}

type UploadConfig struct {
	Dir          string `mapstructure:"dir"`
	BaseURL      string `mapstructure:"base_url"`
	MaxSizeBytes int64  `mapstructure:"max_size_bytes"`
}

type ObservabilityConfig struct {
	Logging LoggingConfig `mapstructure:"logging"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

const (
	WorkflowApproval  = "approval"
	WorkflowInventory = "inventory"
)

func (c *Config) Validate() error {
	var errs []string

	if err := c.Server.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("server config: %v", err))
	}
	if err := c.Database.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("database config: %v", err))
	}
	if err := c.Security.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("security config: %v", err))
	}
	if err := c.Assets.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("assets config: %v", err))
	}
	if err := c.Otp.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("otp config: %v", err))
	}
	if err := c.Upload.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("upload config: %v", err))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

func (c *ServerConfig) Validate() error {
	if c.AllowedOrigins != "" {
		origins := strings.Split(c.AllowedOrigins, ",")
		for _, origin := range origins {
			origin = strings.TrimSpace(origin)
			if origin == "*" {
				continue
			}
			if _, err := url.Parse(origin); err != nil {
				return fmt.Errorf("invalid allowed origin %s: %w", origin, err)
			}
		}
	}
	if c.ReadTimeout < c.ReadHeaderTimeout {
		return errors.New("read_timeout must be >= read_header_timeout")
	}
	return nil
}

func (c *DatabaseConfig) Validate() error {
	if c.MaxIdleConns > c.MaxOpenConns {
		return errors.New("max_idle_conns cannot be greater than max_open_conns")
	}
	return nil
}

func (c *DatabaseConfig) GetDSN() string {
	return c.Source
}

func (c *SecurityConfig) Validate() error {
	if len(c.AccessTokenSecret) < 32 {
		return errors.New("access_token_secret must be at least 32 characters")
	}
	if len(c.RefreshTokenSecret) < 32 {
		return errors.New("refresh_token_secret must be at least 32 characters")
	}
	if c.BCryptCost < 10 || c.BCryptCost > 15 {
		return errors.New("bcrypt_cost must be between 10 and 15")
	}
	return nil
}

func (c *AssetsConfig) Validate() error {
	switch c.Workflow {
	case WorkflowApproval, WorkflowInventory:
		return nil
	case "":
		return errors.New("workflow is required (approval or inventory)")
	default:
		return fmt.Errorf("unknown workflow %q", c.Workflow)
	}
}

func (c *OtpConfig) Validate() error {
	if c.TTL <= 0 {
		return errors.New("ttl must be positive")
	}
	if c.RequireVerification && c.SMTPAddr == "" {
		return errors.New("smtp_addr is required when require_verification is enabled")
	}
	return nil
}

func (c *UploadConfig) Validate() error {
	if c.Dir == "" {
		return errors.New("dir is required")
	}
	if c.MaxSizeBytes <= 0 {
		return errors.New("max_size_bytes must be positive")
	}
	return nil
}
