// internal/common/config/config.go
package config

import "fmt"

// Storage backends selectable through storage.backend.
const (
	BackendXLSX     = "xlsx"
	BackendMongo    = "mongo"
	BackendSheets   = "sheets"
	BackendPostgres = "postgres"
)

// Notification channels selectable through notifications.channel.
const (
	ChannelLINE = "line"
	ChannelSNS  = "sns"
	ChannelSES  = "ses"
	ChannelNone = "none"
)

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig          `mapstructure:"app"`
	Server        ServerConfig       `mapstructure:"server"`
	Storage       StorageConfig      `mapstructure:"storage"`
	Database      DatabaseConfig     `mapstructure:"database"`
	Positions     PositionsConfig    `mapstructure:"positions"`
	Resumes       ResumeConfig       `mapstructure:"resumes"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	RateLimit     RateLimitConfig    `mapstructure:"rate_limit"`
	Logging       LoggingConfig      `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
	IDPrefix    string `mapstructure:"id_prefix"`
	LineOAURL   string `mapstructure:"line_oa_url"`
}

type ServerConfig struct {
	Port            int `mapstructure:"port"`
	RequestTimeout  int `mapstructure:"request_timeout"`  // milliseconds
	ShutdownTimeout int `mapstructure:"shutdown_timeout"` // milliseconds
}

// Addr returns the listen address for the HTTP server
func (s ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

type StorageConfig struct {
	Backend string       `mapstructure:"backend"`
	XLSX    XLSXConfig   `mapstructure:"xlsx"`
	Sheets  SheetsConfig `mapstructure:"sheets"`
}

type XLSXConfig struct {
	Path  string `mapstructure:"path"`
	Sheet string `mapstructure:"sheet"`
}

type SheetsConfig struct {
	SpreadsheetID   string `mapstructure:"spreadsheet_id"`
	Sheet           string `mapstructure:"sheet"`
	CredentialsJSON string `mapstructure:"credentials_json"`
	CredentialsFile string `mapstructure:"credentials_file"`
}

type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Mongo    MongoConfig    `mapstructure:"mongo"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type MongoConfig struct {
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
	Timeout  int    `mapstructure:"timeout"` // milliseconds
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// PositionsConfig selects where open positions are read from.
type PositionsConfig struct {
	Source      string `mapstructure:"source"` // static | mongo | postgres
	CatalogPath string `mapstructure:"catalog_path"`
}

// ResumeConfig holds the upload policy and optional object storage.
type ResumeConfig struct {
	MaxBytes  int64       `mapstructure:"max_bytes"`
	UploadDir string      `mapstructure:"upload_dir"` // local copy when MinIO is off; empty keeps bytes in the record
	MinIO     MinIOConfig `mapstructure:"minio"`
}

type MinIOConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

// NotificationConfig holds settings for the HR notification channel.
type NotificationConfig struct {
	Channel string `mapstructure:"channel"`
	Timeout int    `mapstructure:"timeout"` // milliseconds
	LINE    struct {
		ChannelAccessToken string `mapstructure:"channel_access_token"`
		ChannelSecret      string `mapstructure:"channel_secret"`
		GroupID            string `mapstructure:"group_id"`
		Endpoint           string `mapstructure:"endpoint"`
	} `mapstructure:"line"`
	AWS struct {
		Region string `mapstructure:"region"`
		SES    struct {
			FromEmail  string   `mapstructure:"from_email"`
			Recipients []string `mapstructure:"recipients"`
		} `mapstructure:"ses"`
		SNS struct {
			TopicARN string `mapstructure:"topic_arn"`
		} `mapstructure:"sns"`
	} `mapstructure:"aws"`
}

type RateLimitConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Limit   int  `mapstructure:"limit"`
	Window  int  `mapstructure:"window"` // milliseconds
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
