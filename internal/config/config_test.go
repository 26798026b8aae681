package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_FromFile(t *testing.T) {
	path := writeConfig(t, `
mongo:
  connection_string: mongodb://db.internal:27017
  database_name: flashcards
http:
  listen_address: ":9090"
  allowed_origins:
    - https://cards.example.com
log:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "mongodb://db.internal:27017", cfg.Mongo.ConnectionString)
	assert.Equal(t, "flashcards", cfg.Mongo.DatabaseName)
	assert.Equal(t, ":9090", cfg.HTTP.ListenAddress)
	assert.Equal(t, []string{"https://cards.example.com"}, cfg.HTTP.AllowedOrigins)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(EnvConfigFile, "")
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "mongodb://localhost:27017", cfg.Mongo.ConnectionString)
	assert.Equal(t, ":8080", cfg.HTTP.ListenAddress)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.HTTP.AllowedOrigins)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
mongo:
  connection_string: mongodb://db.internal:27017
  database_name: flashcards
`)
	t.Setenv("CARDSTORE_MONGO_DATABASE_NAME", "flashcards_test")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "flashcards_test", cfg.Mongo.DatabaseName)
	assert.Equal(t, "mongodb://db.internal:27017", cfg.Mongo.ConnectionString)
}

func TestLoad_ConfigFileFromEnv(t *testing.T) {
	path := writeConfig(t, `
mongo:
  database_name: from_env_file
`)
	t.Setenv(EnvConfigFile, path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "from_env_file", cfg.Mongo.DatabaseName)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	cfg := &Config{}
	cfg.Mongo.ConnectionString = "mongodb://localhost:27017"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mongo.database_name")
	assert.NotContains(t, err.Error(), "mongo.connection_string")

	cfg.Mongo.DatabaseName = "flashcards"
	assert.NoError(t, cfg.Validate())
}
