package util

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	NodeID        string `mapstructure:"NODE_ID" validate:"required,hostname_port"`
	JWTSecret     string `mapstructure:"JWT_SECRET" validate:"required"`
	RedisAddress  string `mapstructure:"REDIS_ADDR" validate:"required"`
	RedisPassword string `mapstructure:"REDIS_PW"`
	Port          string `mapstructure:"PORT" validate:"required,number"`
}

func LoadConfig() (*Config, error) {
	godotenv.Load()

	config := &Config{
		NodeID:        os.Getenv("NODE_ID"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		RedisAddress:  os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PW"),
		Port:          os.Getenv("PORT"),
	}

	if err := Validate.Struct(config); err != nil {
		return nil, err
	}

	return config, nil
}
