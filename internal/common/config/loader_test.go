// internal/common/config/loader_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"STORAGE_BACKEND", "MONGODB_URI", "LINE_CHANNEL_ACCESS_TOKEN", "LINE_CHANNEL_SECRET",
		"LINE_GROUP_ID", "LINE_OA_URL", "GOOGLE_SHEET_ID", "GOOGLE_SERVICE_ACCOUNT_KEY",
		"PORT", "DB_USER", "DB_PASSWORD", "REDIS_ADDRESS", "APP_ENVIRONMENT",
	} {
		t.Setenv(key, "")
	}
}

// ==========================
// Defaults
// ==========================

func TestLoadFromFile_Defaults(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "app:\n  name: dygs-jobs\n")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, BackendXLSX, cfg.Storage.Backend)
	assert.Equal(t, "applications.xlsx", cfg.Storage.XLSX.Path)
	assert.Equal(t, "Applications", cfg.Storage.XLSX.Sheet)
	assert.Equal(t, "static", cfg.Positions.Source)
	assert.Equal(t, ChannelNone, cfg.Notifications.Channel)
	assert.Equal(t, int64(DefaultMaxResumeBytes), cfg.Resumes.MaxBytes)
	assert.Equal(t, DefaultLineOAURL, cfg.App.LineOAURL)
	assert.Equal(t, "DYGS", cfg.App.IDPrefix)
	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, ":5000", cfg.Server.Addr())
	assert.Equal(t, "dygs_jobs", cfg.Database.Mongo.Database)
}

// ==========================
// Environment Overrides
// ==========================

func TestLoadFromFile_EnvironmentOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORAGE_BACKEND", "mongo")
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("LINE_CHANNEL_ACCESS_TOKEN", "token")
	t.Setenv("LINE_GROUP_ID", "C123")
	t.Setenv("LINE_OA_URL", "https://line.me/R/ti/p/@example")
	t.Setenv("PORT", "8081")

	path := writeConfig(t, "storage:\n  backend: \"\"\n")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, BackendMongo, cfg.Storage.Backend)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Database.Mongo.URI)
	assert.Equal(t, BackendMongo, cfg.Positions.Source)
	assert.Equal(t, ChannelLINE, cfg.Notifications.Channel)
	assert.Equal(t, "https://line.me/R/ti/p/@example", cfg.App.LineOAURL)
	assert.Equal(t, 8081, cfg.Server.Port)
}

func TestLoadFromFile_ExpandsPlaceholders(t *testing.T) {
	clearEnv(t)
	t.Setenv("GOOGLE_SHEET_ID", "sheet-123")
	t.Setenv("TEST_SA_KEY", `{"type":"service_account"}`)

	path := writeConfig(t, `
storage:
  backend: sheets
  sheets:
    spreadsheet_id: ${GOOGLE_SHEET_ID}
    credentials_json: ${TEST_SA_KEY}
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "sheet-123", cfg.Storage.Sheets.SpreadsheetID)
	assert.Equal(t, `{"type":"service_account"}`, cfg.Storage.Sheets.CredentialsJSON)
}

// ==========================
// Validation
// ==========================

func TestLoadFromFile_Validation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name:    "mongo without uri",
			body:    "storage:\n  backend: mongo\n",
			wantErr: "database.mongo.uri",
		},
		{
			name:    "sheets without credentials",
			body:    "storage:\n  backend: sheets\n  sheets:\n    spreadsheet_id: abc\n",
			wantErr: "credentials",
		},
		{
			name:    "postgres without host",
			body:    "storage:\n  backend: postgres\n",
			wantErr: "database.postgres.host",
		},
		{
			name:    "unknown backend",
			body:    "storage:\n  backend: csv\n",
			wantErr: "unsupported storage.backend",
		},
		{
			name:    "line without group",
			body:    "notifications:\n  channel: line\n  line:\n    channel_access_token: abc\n",
			wantErr: "group_id",
		},
		{
			name:    "ses without recipients",
			body:    "notifications:\n  channel: ses\n  aws:\n    ses:\n      from_email: hr@example.com\n",
			wantErr: "recipients",
		},
		{
			name:    "rate limit without redis",
			body:    "rate_limit:\n  enabled: true\n",
			wantErr: "database.redis.address",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			path := writeConfig(t, tt.body)

			cfg, err := LoadFromFile(path)
			assert.Nil(t, cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestGetDuration(t *testing.T) {
	assert.Equal(t, 1500*time.Millisecond, GetDuration(1500))
}
