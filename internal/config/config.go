package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel   string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort   string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort string `yaml:"socket-port" env:"SOCKET_PORT" env-default:"8080"`
	Redis      Redis  `yaml:"redis"`
	Ads        Ads    `yaml:"ads"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// Ads configures the interstitial schedule. With Enabled false (or no
// endpoint) the null provider is wired in and the rest of the app is
// none the wiser.
type Ads struct {
	Enabled              bool   `yaml:"enabled" env:"ADS_ENABLED" env-default:"false"`
	Endpoint             string `yaml:"endpoint" env:"ADS_ENDPOINT" env-default:""`
	UnitID               string `yaml:"unit-id" env:"ADS_UNIT_ID" env-default:""`
	GamesPerInterstitial int    `yaml:"games-per-interstitial" env:"ADS_GAMES_PER_INTERSTITIAL" env-default:"3"`
	LoadRetries          int    `yaml:"load-retries" env:"ADS_LOAD_RETRIES" env-default:"2"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
