package auth

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config задаёт адрес внешнего сервиса аутентификации
type Config struct {
	Addr string `mapstructure:"Addr"`
}

func NewConfig(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(path)
	v.BindEnv("Addr", "AUTH_ADDR")

	if err := v.ReadInConfig(); err != nil {
		fmt.Printf("Warning: using only environment variables: %v\n", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal auth config: %w", err)
	}

	if cfg.Addr == "" {
		return nil, fmt.Errorf("auth service address is not configured")
	}

	return &cfg, nil
}
