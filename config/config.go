package config

import (
	"github.com/kelseyhightower/envconfig"
	"time"
)

type Config struct {
	Api ApiConfig
	Db  struct {
		Path string `envconfig:"DB_PATH" default:"accounts.json" required:"true"`
	}
	Log struct {
		Level int `envconfig:"LOG_LEVEL" default:"-4" required:"true"`
	}
}

type ApiConfig struct {
	Smtp struct {
		Host string `envconfig:"API_SMTP_HOST" default:"0.0.0.0" required:"true"`
		Port uint16 `envconfig:"API_SMTP_PORT" default:"2525" required:"true"`
		Data struct {
			Limit uint32 `envconfig:"API_SMTP_DATA_LIMIT" default:"1048576" required:"true"`
		}
		Recipients struct {
			Limit uint16 `envconfig:"API_SMTP_RECIPIENTS_LIMIT" default:"100" required:"true"`
		}
		Timeout struct {
			Read  time.Duration `envconfig:"API_SMTP_TIMEOUT_READ" default:"1m" required:"true"`
			Write time.Duration `envconfig:"API_SMTP_TIMEOUT_WRITE" default:"1m" required:"true"`
		}
	}
	Http struct {
		Port    uint16 `envconfig:"API_HTTP_PORT" default:"8000" required:"true"`
		Timeout struct {
			Read  time.Duration `envconfig:"API_HTTP_TIMEOUT_READ" default:"1m" required:"true"`
			Write time.Duration `envconfig:"API_HTTP_TIMEOUT_WRITE" default:"1m" required:"true"`
		}
	}
	Vendor VendorConfig
}

type VendorConfig struct {
	Uri     string        `envconfig:"API_VENDOR_URI" default:"https://www.brityworks.com/mail/rest/v1/mails/send" required:"true"`
	Timeout time.Duration `envconfig:"API_VENDOR_TIMEOUT" default:"1m" required:"true"`
	Probe   struct {
		Timeout time.Duration `envconfig:"API_VENDOR_PROBE_TIMEOUT" default:"30s" required:"true"`
	}
	Cache VendorCacheConfig
}

type VendorCacheConfig struct {
	Size uint32        `envconfig:"API_VENDOR_CACHE_SIZE" default:"100" required:"true"`
	Ttl  time.Duration `envconfig:"API_VENDOR_CACHE_TTL" default:"1m" required:"true"`
}

func NewConfigFromEnv() (cfg Config, err error) {
	err = envconfig.Process("", &cfg)
	return
}
