package config

import (
	"github.com/stretchr/testify/assert"
	"log/slog"
	"os"
	"testing"
	"time"
)

func TestConfig(t *testing.T) {
	os.Setenv("API_SMTP_PORT", "2526")
	os.Setenv("API_VENDOR_URI", "https://vendor.example.org/mail/rest/v1/mails/send")
	os.Setenv("API_VENDOR_CACHE_TTL", "23h")
	os.Setenv("DB_PATH", "/var/lib/relay/accounts.json")
	os.Setenv("LOG_LEVEL", "4")
	cfg, err := NewConfigFromEnv()
	assert.Nil(t, err)
	assert.Equal(t, uint16(2526), cfg.Api.Smtp.Port)
	assert.Equal(t, uint32(1048576), cfg.Api.Smtp.Data.Limit)
	assert.Equal(t, time.Minute, cfg.Api.Smtp.Timeout.Read)
	assert.Equal(t, uint16(8000), cfg.Api.Http.Port)
	assert.Equal(t, time.Minute, cfg.Api.Http.Timeout.Read)
	assert.Equal(t, time.Minute, cfg.Api.Http.Timeout.Write)
	assert.Equal(t, "https://vendor.example.org/mail/rest/v1/mails/send", cfg.Api.Vendor.Uri)
	assert.Equal(t, 23*time.Hour, cfg.Api.Vendor.Cache.Ttl)
	assert.Equal(t, "/var/lib/relay/accounts.json", cfg.Db.Path)
	assert.Equal(t, slog.LevelWarn, slog.Level(cfg.Log.Level))
}
