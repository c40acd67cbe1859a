package config

import (
	"log"
	"sync"
)

type AppConfig struct {
	Name    string
	Env     string
	Port    string
	BaseURL string
}

func (c *AppConfig) IsProduction() bool {
	return c.Env == "production"
}

var (
	appConfig *AppConfig
	appOnce   sync.Once
)

func LoadAppConfig() *AppConfig {
	appOnce.Do(func() {
		e := env()
		appEnv := e.GetString("APP_ENV")
		if appEnv == "" {
			appEnv = "development"
			log.Printf("Warning: APP_ENV not set, defaulting to %s", appEnv)
		}
		appConfig = &AppConfig{
			Name:    e.GetString("APP_NAME"),
			Env:     appEnv,
			Port:    e.GetString("APP_PORT"),
			BaseURL: e.GetString("APP_URL"),
		}
	})
	return appConfig
}
