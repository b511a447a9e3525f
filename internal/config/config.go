package config

import "github.com/spf13/viper"

type Config struct {
	App struct {
		Env      string
		Timezone string
		Locale   string
	} `mapstructure:"app"`

	Telegram struct {
		Token       string
		AdminChatID int64 `mapstructure:"admin_chat_id"`
	} `mapstructure:"telegram"`

	Backend struct {
		BaseURL string `mapstructure:"base_url"`
		Token   string
	} `mapstructure:"backend"`

	HTTP struct {
		Addr string
	} `mapstructure:"http"`

	Metrics struct {
		Enabled bool
	} `mapstructure:"metrics"`
}

func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	// ENV overrides (APP_*) for deploy-time secrets like tokens.
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()

	v.SetDefault("app.locale", "en")
	v.SetDefault("http.addr", ":8081")

	var c Config
	if err := v.ReadInConfig(); err != nil {
		return c, err
	}
	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}
	return c, nil
}
