package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "local", cfg.StorageDriver)
	assert.Equal(t, "users.yaml", cfg.UsersFile)
	assert.Equal(t, "/etc/uploaded", cfg.StorageRoot)
	assert.False(t, cfg.StorageUseSSL)
	assert.False(t, cfg.IsProduction())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("APP_ENV", "production")
	t.Setenv("STORAGE_DRIVER", "s3")
	t.Setenv("STORAGE_USE_SSL", "true")
	t.Setenv("USERS_FILE", "/etc/uploader/users.yaml")
	t.Setenv("PUBLIC_BASE_URL", "https://upload.example.org")

	cfg := Load()

	assert.Equal(t, "9000", cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "s3", cfg.StorageDriver)
	assert.True(t, cfg.StorageUseSSL)
	assert.Equal(t, "/etc/uploader/users.yaml", cfg.UsersFile)
	assert.Equal(t, "https://upload.example.org", cfg.PublicBaseURL)
}
