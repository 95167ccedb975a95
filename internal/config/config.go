package config

import (
	"time"

	"github.com/rowjay/scissors/internal/constants"
	"github.com/rowjay/scissors/internal/validator"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Port               string        `validate:"required,numeric"`
	LinkServiceURL     string        `validate:"required,url"`
	Environment        string        `validate:"required"`
	RequestTimeout     time.Duration `validate:"gt=0"`
	RecentCount        int           `validate:"oneof=2 4"`
	CopyConfirmDelay   time.Duration `validate:"gt=0"`
	DownloadToastDelay time.Duration `validate:"gt=0"`
	ErrorToastDelay    time.Duration `validate:"gt=0"`
	SessionTTL         time.Duration `validate:"gt=0"`
	MaxQRCodeBytes     int64         `validate:"gt=0"`
	SecureCookies      bool
}

func Load() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()
	viper.SetDefault("port", constants.DefaultPort)
	viper.SetDefault("link_service_url", constants.DefaultLinkService)
	viper.SetDefault("app_env", constants.DefaultEnvironment)
	viper.SetDefault("request_timeout", constants.RequestTimeout)
	viper.SetDefault("recent_count", constants.DefaultRecentCount)
	viper.SetDefault("copy_confirm_delay", constants.CopyConfirmDelay)
	viper.SetDefault("download_toast_delay", constants.DownloadToastDelay)
	viper.SetDefault("error_toast_delay", constants.ErrorToastDelay)
	viper.SetDefault("session_ttl", constants.SessionTTL)
	viper.SetDefault("max_qrcode_bytes", constants.MaxQRCodeBytes)
	viper.SetDefault("secure_cookies", false)

	if err := viper.ReadInConfig(); err != nil {
		log.Debug().Err(err).Msg("No config file read, using defaults and environment")
	}

	return &Config{
		Port:               viper.GetString("port"),
		LinkServiceURL:     viper.GetString("link_service_url"),
		Environment:        viper.GetString("app_env"),
		RequestTimeout:     viper.GetDuration("request_timeout"),
		RecentCount:        viper.GetInt("recent_count"),
		CopyConfirmDelay:   viper.GetDuration("copy_confirm_delay"),
		DownloadToastDelay: viper.GetDuration("download_toast_delay"),
		ErrorToastDelay:    viper.GetDuration("error_toast_delay"),
		SessionTTL:         viper.GetDuration("session_ttl"),
		MaxQRCodeBytes:     viper.GetInt64("max_qrcode_bytes"),
		SecureCookies:      viper.GetBool("secure_cookies"),
	}
}

// Validate checks the loaded values before anything is wired from them.
func (c *Config) Validate() error {
	return validator.NewRequestValidator().ValidateStruct("config.Validate", c)
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
