// internal/common/config/loader_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfigFile(t, `
app:
  name: admissions-notifier
  environment: test
database:
  postgres:
    host: localhost
    port: 5432
    database: notifier
    user: notifier
  redis:
    address: localhost:6379
notifications:
  sms:
    sender_id: SCHOOL
  organization:
    name: Al Noor International School
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "admissions-notifier", cfg.App.Name)
	assert.Equal(t, "localhost", cfg.Database.Postgres.Host)
	assert.Equal(t, "notifier", cfg.Database.Postgres.Database)
	assert.Equal(t, "SCHOOL", cfg.Notifications.SMS.SenderID)

	// Defaults fill whatever the file leaves out.
	assert.Equal(t, ":8090", cfg.Server.Address)
	assert.Equal(t, "en", cfg.Notifications.DefaultLocale)
	assert.Equal(t, "disable", cfg.Database.Postgres.SSLMode)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadFromFile_ExpandsEnvVars(t *testing.T) {
	t.Setenv("NOTIFIER_TEST_DB_PASSWORD", "s3cret")

	path := writeConfigFile(t, `
database:
  postgres:
    host: localhost
    database: notifier
    user: notifier
    password: ${NOTIFIER_TEST_DB_PASSWORD}
  redis:
    address: localhost:6379
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", cfg.Database.Postgres.Password)
}

func TestLoadFromFile_ValidationFailure(t *testing.T) {
	path := writeConfigFile(t, `
database:
  postgres:
    database: notifier
    user: notifier
  redis:
    address: localhost:6379
`)

	_, err := LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.postgres.host")
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
