package config

import (
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type APICfg struct {
	Key     string
	BaseURL string
}

type HTTPCfg struct {
	TimeoutSec int
	MaxRetries uint64
}

type Cfg struct {
	API  APICfg
	HTTP HTTPCfg
}

// Load reads configuration from the environment, with .env as a fallback
// for local use.
func Load() Cfg {
	// Ignore a missing .env; real deployments set the environment directly.
	_ = godotenv.Load()

	viper.AutomaticEnv()
	viper.SetDefault("SC_BASE_URL", "https://app.scrapecloud.example.com")
	viper.SetDefault("SC_TIMEOUT_SEC", 30)
	viper.SetDefault("SC_MAX_RETRIES", 3)
	viper.SetDefault("SC_LOG_LEVEL", "info")

	if level, err := zerolog.ParseLevel(viper.GetString("SC_LOG_LEVEL")); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	cfg := Cfg{
		API: APICfg{
			Key:     viper.GetString("SC_API_KEY"),
			BaseURL: viper.GetString("SC_BASE_URL"),
		},
		HTTP: HTTPCfg{
			TimeoutSec: viper.GetInt("SC_TIMEOUT_SEC"),
			MaxRetries: viper.GetUint64("SC_MAX_RETRIES"),
		},
	}

	if cfg.API.Key == "" {
		log.Warn().Msg("SC_API_KEY is not set; requests will be rejected by the API")
	}
	return cfg
}
