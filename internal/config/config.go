package config

import (
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string `env:"ENV" env-default:"local"`
	UploadDir  string `env:"UPLOAD_DIR" env-default:"uploads"`
	HTTPServer HTTPServer
	Postgres   Postgres
	Mail       Mail
	Tokens     Tokens
}

type HTTPServer struct {
	Address     string        `env:"HTTP_ADDRESS" env-default:":5000"`
	Timeout     time.Duration `env:"HTTP_TIMEOUT" env-default:"4s"`
	IdleTimeout time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`

	// SendRequiresAuth gates POST /send-emails behind a bearer token.
	// Turning it off is a deployment decision, not an accident.
	SendRequiresAuth bool `env:"SEND_REQUIRES_AUTH" env-default:"true"`
}

type Postgres struct {
	DSN string `env:"POSTGRES_DSN" env-required:"true"`
}

type Mail struct {
	Host          string `env:"SMTP_HOST" env-default:"smtp.gmail.com"`
	Port          int    `env:"SMTP_PORT" env-default:"465"`
	User          string `env:"EMAIL_USER" env-required:"true"`
	Password      string `env:"EMAIL_PASS" env-required:"true"`
	FromName      string `env:"EMAIL_FROM_NAME" env-default:"Phoenix Support"`
	TestRecipient string `env:"EMAIL_TEST_RECIPIENT" env-default:"your-email@gmail.com"`
}

type Tokens struct {
	Secret         string        `env:"JWT_SECRET" env-required:"true"`
	AccessTokenTTL time.Duration `env:"ACCESS_TOKEN_TTL" env-default:"1h"`
}

func MustLoad() *Config {
	var cfg Config

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		panic("Failed to read config: " + err.Error())
	}

	return &cfg
}
