package config

import "time"

type Config struct {
	BaseURL   string
	HttpPort  int
	ApiPrefix string
	Seed      struct {
		Enabled       bool
		AdminEmail    string
		AdminPassword string
	}
	Db struct {
		Dsn         string
		Automigrate bool
		PoolMax     int
	}
	Jwt struct {
		SecretKey string
		Expiry    time.Duration
	}
	Login struct {
		MaxAttempts int
		LockWindow  time.Duration
	}
	Notifications struct {
		Email string
	}
	Smtp struct {
		Host     string
		Port     int
		Username string
		Password string
		From     string
	}
	FileUploader struct {
		CloudName string
		ApiKey    string
		ApiSecret string
	}
	RedisServer  string
	KafkaServers string
}
