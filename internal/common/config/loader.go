// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultLineOAURL      = "https://line.me/R/ti/p/@dygs-logistics"
	DefaultIDPrefix       = "DYGS"
	DefaultMaxResumeBytes = 5 * 1024 * 1024
)

// Load reads configs/config.yaml, merges config.<APP_ENVIRONMENT>.yaml on top
// and applies environment overrides.
func Load() (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig() // optional

	return finalize(v)
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return finalize(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

func finalize(v *viper.Viper) (*Config, error) {
	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	overrideEmptyConfig(&cfg)
	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// Find project root by looking for go.mod
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok {
			continue
		}
		if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
			expanded := os.ExpandEnv(strVal)
			if expanded != strVal {
				v.Set(key, expanded)
			}
		}
	}
}

// overrideEmptyConfig fills values the deployment environment provides
// under their conventional names.
func overrideEmptyConfig(cfg *Config) {
	setIfEmpty(&cfg.Storage.Backend, "STORAGE_BACKEND")
	setIfEmpty(&cfg.App.Environment, "APP_ENVIRONMENT")
	setIfEmpty(&cfg.App.LineOAURL, "LINE_OA_URL")

	// MongoDB
	setIfEmpty(&cfg.Database.Mongo.URI, "MONGODB_URI")

	// LINE Messaging API
	setIfEmpty(&cfg.Notifications.LINE.ChannelAccessToken, "LINE_CHANNEL_ACCESS_TOKEN")
	setIfEmpty(&cfg.Notifications.LINE.ChannelSecret, "LINE_CHANNEL_SECRET")
	setIfEmpty(&cfg.Notifications.LINE.GroupID, "LINE_GROUP_ID")

	// Google Sheets
	setIfEmpty(&cfg.Storage.Sheets.SpreadsheetID, "GOOGLE_SHEET_ID")
	setIfEmpty(&cfg.Storage.Sheets.CredentialsJSON, "GOOGLE_SERVICE_ACCOUNT_KEY")

	// Database overrides
	setIfEmpty(&cfg.Database.Postgres.User, "DB_USER")
	setIfEmpty(&cfg.Database.Postgres.Password, "DB_PASSWORD")
	setIfEmpty(&cfg.Database.Redis.Address, "REDIS_ADDRESS")

	if cfg.Server.Port == 0 {
		if val := os.Getenv("PORT"); val != "" {
			if port, err := strconv.Atoi(val); err == nil {
				cfg.Server.Port = port
			}
		}
	}
}

func setIfEmpty(field *string, envKey string) {
	if *field != "" {
		return
	}
	if val := os.Getenv(envKey); val != "" {
		*field = val
	}
}

// applyDefaults sets default values for optional configuration fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "dygs-jobs"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}
	if cfg.App.IDPrefix == "" {
		cfg.App.IDPrefix = DefaultIDPrefix
	}
	if cfg.App.LineOAURL == "" {
		cfg.App.LineOAURL = DefaultLineOAURL
	}

	// Server defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 5000
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = 30000
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 30000
	}

	// Storage defaults
	cfg.Storage.Backend = strings.ToLower(strings.TrimSpace(cfg.Storage.Backend))
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = BackendXLSX
	}
	if cfg.Storage.XLSX.Path == "" {
		cfg.Storage.XLSX.Path = "applications.xlsx"
	}
	if cfg.Storage.XLSX.Sheet == "" {
		cfg.Storage.XLSX.Sheet = "Applications"
	}
	if cfg.Storage.Sheets.Sheet == "" {
		cfg.Storage.Sheets.Sheet = "Applications"
	}

	// Database defaults
	if cfg.Database.Postgres.Port == 0 {
		cfg.Database.Postgres.Port = 5432
	}
	if cfg.Database.Postgres.MaxConnections == 0 {
		cfg.Database.Postgres.MaxConnections = 25
	}
	if cfg.Database.Postgres.MaxIdle == 0 {
		cfg.Database.Postgres.MaxIdle = 5
	}
	if cfg.Database.Postgres.SSLMode == "" {
		cfg.Database.Postgres.SSLMode = "disable"
	}
	if cfg.Database.Mongo.Database == "" {
		cfg.Database.Mongo.Database = "dygs_jobs"
	}
	if cfg.Database.Mongo.Timeout == 0 {
		cfg.Database.Mongo.Timeout = 10000
	}

	// Positions follow the document store when it is the active backend
	if cfg.Positions.Source == "" {
		switch cfg.Storage.Backend {
		case BackendMongo:
			cfg.Positions.Source = BackendMongo
		case BackendPostgres:
			cfg.Positions.Source = BackendPostgres
		default:
			cfg.Positions.Source = "static"
		}
	}

	// Resume defaults
	if cfg.Resumes.MaxBytes == 0 {
		cfg.Resumes.MaxBytes = DefaultMaxResumeBytes
	}
	if cfg.Resumes.MinIO.Bucket == "" {
		cfg.Resumes.MinIO.Bucket = "resumes"
	}
	if cfg.Resumes.MinIO.Region == "" {
		cfg.Resumes.MinIO.Region = "us-east-1"
	}

	// Notification defaults
	if cfg.Notifications.Channel == "" {
		if cfg.Notifications.LINE.ChannelAccessToken != "" && cfg.Notifications.LINE.GroupID != "" {
			cfg.Notifications.Channel = ChannelLINE
		} else {
			cfg.Notifications.Channel = ChannelNone
		}
	}
	if cfg.Notifications.Timeout == 0 {
		cfg.Notifications.Timeout = 10000
	}
	if cfg.Notifications.AWS.Region == "" {
		cfg.Notifications.AWS.Region = "ap-southeast-1"
	}

	// Rate limit defaults
	if cfg.RateLimit.Limit == 0 {
		cfg.RateLimit.Limit = 5
	}
	if cfg.RateLimit.Window == 0 {
		cfg.RateLimit.Window = 60000
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}
}

// validateConfig validates critical configuration fields
func validateConfig(cfg *Config) error {
	switch cfg.Storage.Backend {
	case BackendXLSX:
	case BackendMongo:
		if cfg.Database.Mongo.URI == "" {
			return fmt.Errorf("database.mongo.uri is required for the mongo backend")
		}
	case BackendSheets:
		if cfg.Storage.Sheets.SpreadsheetID == "" {
			return fmt.Errorf("storage.sheets.spreadsheet_id is required for the sheets backend")
		}
		if cfg.Storage.Sheets.CredentialsJSON == "" && cfg.Storage.Sheets.CredentialsFile == "" {
			return fmt.Errorf("storage.sheets credentials are required for the sheets backend")
		}
	case BackendPostgres:
		if err := validatePostgres(cfg.Database.Postgres); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported storage.backend %q", cfg.Storage.Backend)
	}

	switch cfg.Positions.Source {
	case "static":
	case BackendMongo:
		if cfg.Database.Mongo.URI == "" {
			return fmt.Errorf("database.mongo.uri is required for mongo positions")
		}
	case BackendPostgres:
		if err := validatePostgres(cfg.Database.Postgres); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported positions.source %q", cfg.Positions.Source)
	}

	switch cfg.Notifications.Channel {
	case ChannelNone:
	case ChannelLINE:
		if cfg.Notifications.LINE.ChannelAccessToken == "" {
			return fmt.Errorf("notifications.line.channel_access_token is required")
		}
		if cfg.Notifications.LINE.GroupID == "" {
			return fmt.Errorf("notifications.line.group_id is required")
		}
	case ChannelSNS:
		if cfg.Notifications.AWS.SNS.TopicARN == "" {
			return fmt.Errorf("notifications.aws.sns.topic_arn is required")
		}
	case ChannelSES:
		if cfg.Notifications.AWS.SES.FromEmail == "" {
			return fmt.Errorf("notifications.aws.ses.from_email is required")
		}
		if len(cfg.Notifications.AWS.SES.Recipients) == 0 {
			return fmt.Errorf("notifications.aws.ses.recipients is required")
		}
	default:
		return fmt.Errorf("unsupported notifications.channel %q", cfg.Notifications.Channel)
	}

	if cfg.Resumes.MinIO.Enabled && cfg.Resumes.MinIO.Endpoint == "" {
		return fmt.Errorf("resumes.minio.endpoint is required when minio is enabled")
	}

	if cfg.RateLimit.Enabled && cfg.Database.Redis.Address == "" {
		return fmt.Errorf("database.redis.address is required when rate_limit is enabled")
	}

	return nil
}

func validatePostgres(p PostgresConfig) error {
	if p.Host == "" {
		return fmt.Errorf("database.postgres.host is required")
	}
	if p.Database == "" {
		return fmt.Errorf("database.postgres.database is required")
	}
	if p.User == "" {
		return fmt.Errorf("database.postgres.user is required")
	}
	return nil
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
