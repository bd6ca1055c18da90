package config

import "fmt"

// AppConfig contains the HTTP server configuration.
type AppConfig struct {
	Host string `env:"APP_HOST" env-default:"localhost"`
	Port uint16 `env:"APP_PORT" env-default:"8080"`
}

func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%d", a.Host, a.Port)
}

// DbConfig contains the Postgres connection configuration.
type DbConfig struct {
	Host     string `env:"PG_HOST" env-default:"localhost"`
	Port     uint16 `env:"PG_PORT" env-default:"5432"`
	Database string `env:"PG_DATABASE" env-default:"verificationapp_db"`
	User     string `env:"PG_USER" env-default:"verificationapp"`
	Password string `env:"PG_PASSWORD" env-default:"pwd"`
}

func (d DbConfig) ToDatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		d.User, d.Password, d.Host, d.Port, d.Database)
}

// EmailConfig contains the SMTP configuration for outbound notices.
type EmailConfig struct {
	Host     string `env:"EMAIL_HOST" env-default:"localhost"`
	Port     uint16 `env:"EMAIL_PORT" env-default:"1025"`
	Username string `env:"EMAIL_USERNAME" env-default:""`
	Password string `env:"EMAIL_PASSWORD" env-default:""`
	From     string `env:"EMAIL_FROM" env-default:"noreply@example.com"`
	TLS      bool   `env:"EMAIL_TLS" env-default:"false"`
}

// JwtConfig contains the bearer token configuration.
type JwtConfig struct {
	Secret string `env:"JWT_SECRET" env-default:"very-secure-jwt-secret"`
	Issuer string `env:"JWT_ISSUER" env-default:"verificationapp"`
}

// Config aggregates all application configuration.
type Config struct {
	App   AppConfig
	Db    DbConfig
	Email EmailConfig
	Jwt   JwtConfig
}
