package config

import (
	"sync"

	"github.com/spf13/viper"
)

var once sync.Once

func InitConfig() {
	once.Do(func() {
		viper.AutomaticEnv()

		viper.BindEnv("telegram_bot_token", "TELEGRAM_BOT_TOKEN")
		viper.BindEnv("owner_id", "OWNER_ID")
		viper.BindEnv("data_dir", "DATA_DIR")
		viper.BindEnv("metrics_port", "METRICS_PORT")
		viper.BindEnv("debug", "DEBUG")
		viper.BindEnv("lang", "LANG")
		viper.BindEnv("live_interval_seconds", "LIVE_INTERVAL_SECONDS")
		viper.BindEnv("default_cooldown_seconds", "DEFAULT_COOLDOWN_SECONDS")

		viper.SetDefault("data_dir", "./data")
		viper.SetDefault("metrics_port", 9090)
		viper.SetDefault("debug", false)
		viper.SetDefault("lang", "en")
		viper.SetDefault("live_interval_seconds", 25)
		viper.SetDefault("default_cooldown_seconds", 30)
	})
}

func GetString(key string) string {
	InitConfig()
	return viper.GetString(key)
}

func GetInt(key string) int {
	InitConfig()
	return viper.GetInt(key)
}

func GetInt64(key string) int64 {
	InitConfig()
	return viper.GetInt64(key)
}

func GetBool(key string) bool {
	InitConfig()
	return viper.GetBool(key)
}
