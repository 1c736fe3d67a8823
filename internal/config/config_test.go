package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("APP_NAME", "skillsift")
	t.Setenv("APP_ENV", "test")
	t.Setenv("HTTP_PORT", "8080")
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("APP_NAME", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("HTTP_PORT", "")

	_, err := Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errMissingRequiredEnv))
	assert.Contains(t, err.Error(), "APP_NAME")
	assert.Contains(t, err.Error(), "HTTP_PORT")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)
	t.Setenv("MAX_FILE_SIZE", "")
	t.Setenv("SUPPORTED_FILE_TYPES", "")
	t.Setenv("BATCH_WORKERS", "")
	t.Setenv("RABBITMQ_EXCHANGE", "")
	t.Setenv("DB_HOST", "")
	t.Setenv("JOB_FETCH_ALLOW_PRIVATE", "")
	t.Setenv("ANALYSIS_RETENTION", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, int64(10*1024*1024), cfg.Analysis.MaxFileSize)
	assert.Equal(t, []string{".pdf", ".docx", ".txt"}, cfg.Analysis.SupportedFileTypes)
	assert.Equal(t, 20, cfg.Analysis.MaxExtractedSkills)
	assert.Equal(t, 4, cfg.Analysis.BatchWorkers)
	assert.Equal(t, "skillsift.events", cfg.RabbitMQ.Exchange)
	assert.False(t, cfg.Database.Enabled())
	assert.False(t, cfg.Analysis.JobFetchAllowPrivate)
	assert.Equal(t, 30*24*time.Hour, cfg.Analysis.Retention)
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("SUPPORTED_FILE_TYPES", "PDF, .txt")
	t.Setenv("JOB_FETCH_TIMEOUT", "5")
	t.Setenv("ADMIN_JWT_EXPIRES_IN", "30m")
	t.Setenv("JOB_FETCH_HEADLESS", "true")
	t.Setenv("JOB_FETCH_ALLOW_PRIVATE", "true")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_NAME", "skillsift")
	t.Setenv("DB_POOL_MAX_CONNS", "8")
	t.Setenv("ANALYSIS_RETENTION", "168h")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{".pdf", ".txt"}, cfg.Analysis.SupportedFileTypes)
	assert.Equal(t, 5*time.Second, cfg.Analysis.JobFetchTimeout)
	assert.Equal(t, 30*time.Minute, cfg.JWT.AdminExpiresIn)
	assert.True(t, cfg.Analysis.JobFetchHeadless)
	assert.True(t, cfg.Analysis.JobFetchAllowPrivate)
	assert.True(t, cfg.Database.Enabled())
	assert.Equal(t, int32(8), cfg.Database.PoolMaxConns)
	assert.Equal(t, 7*24*time.Hour, cfg.Analysis.Retention)
}

func TestLoad_InvalidValue(t *testing.T) {
	setRequired(t)
	t.Setenv("BATCH_WORKERS", "many")

	_, err := Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errInvalidEnv))
	assert.Contains(t, err.Error(), "BATCH_WORKERS")
}
