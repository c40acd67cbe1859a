package config

import (
	"fmt"
	"sync"
)

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN renders the postgres connection string.
func (c *DBConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=Asia/Kolkata",
		c.Host,
		c.User,
		c.Password,
		c.Name,
		c.Port,
		c.SSLMode,
	)
}

var (
	dbConfig *DBConfig
	dbOnce   sync.Once
)

func LoadDBConfig() *DBConfig {
	dbOnce.Do(func() {
		e := env()
		dbConfig = &DBConfig{
			Host:     e.GetString("DB_HOST"),
			Port:     e.GetString("DB_PORT"),
			User:     e.GetString("DB_USER"),
			Password: e.GetString("DB_PASSWORD"),
			Name:     e.GetString("DB_NAME"),
			SSLMode:  e.GetString("DB_SSLMODE"),
		}
	})
	return dbConfig
}
