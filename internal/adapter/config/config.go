package config

import (
	"flag"
	"fmt"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	Database *Database
	HTTP     *HTTP
	Paystack *Paystack
	Cipher   *Cipher
	App      *App
}

const AppModeProduction = "PROD"
const AppModeDevelop = "DEV"

type App struct {
	LogLevel string `env:"LOG_LEVEL"`
	Mode     string
}

type Database struct {
	DSN string `env:"DATABASE_URI"`
}

type HTTP struct {
	HostString string `env:"RUN_ADDRESS"`
}

type Paystack struct {
	APIURL      string `env:"PAYSTACK_API_URL"`
	SecretKey   string `env:"PAYSTACK_SECRET_KEY"`
	CallbackURL string `env:"PAYSTACK_CALLBACK_URL"`
}

type Cipher struct {
	// Key is the hex-encoded 32-byte credential encryption key.
	Key string `env:"CREDENTIAL_KEY"`
}

func NewConfig() (*Config, error) {
	var db Database
	var http HTTP
	var paystack Paystack
	var cipher Cipher
	var app App

	flag.StringVar(&db.DSN, "d", "", "Database string")
	flag.StringVar(&http.HostString, "a", `localhost:8080`, "HTTP server endpoint")
	flag.StringVar(&paystack.APIURL, "p", `https://api.paystack.co`, "Paystack API URL")
	flag.StringVar(&app.LogLevel, "l", `error`, "Log level")
	flag.StringVar(&app.Mode, "m", `DEV`, "PROD / DEV")
	flag.Parse()

	err := env.Parse(&db)
	if err != nil {
		return nil, fmt.Errorf("error parsing env database config: %w", err)
	}
	err = env.Parse(&http)
	if err != nil {
		return nil, fmt.Errorf("error parsing http config: %w", err)
	}
	err = env.Parse(&paystack)
	if err != nil {
		return nil, fmt.Errorf("error parsing paystack config: %w", err)
	}
	err = env.Parse(&cipher)
	if err != nil {
		return nil, fmt.Errorf("error parsing cipher config: %w", err)
	}
	err = env.Parse(&app)
	if err != nil {
		return nil, fmt.Errorf("error parsing app config: %w", err)
	}

	config := Config{
		Database: &db,
		HTTP:     &http,
		Paystack: &paystack,
		Cipher:   &cipher,
		App:      &app,
	}

	return &config, nil
}
