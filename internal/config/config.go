package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Store StoreConfig
	Desk  DeskConfig
}

// StoreConfig locates the flat reservation log on disk.
type StoreConfig struct {
	File string `envconfig:"HOTEL_RESERVATION_FILE" default:"reservations.txt"`
}

// DeskConfig drives the front-desk console. OperatorPassword gates check-in
// and check-out; leaving it empty disables the gate. It belongs to the
// front-end, not the engine.
type DeskConfig struct {
	OperatorPassword string `envconfig:"HOTEL_OPERATOR_PASSWORD" default:""`
	DateFormat       string `envconfig:"HOTEL_DATE_FORMAT" default:"2006/01/02"`
}

func Load() (Config, error) {
	// A missing .env file is fine, the environment may be set directly.
	_ = godotenv.Load()

	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("process env config: %w", err)
	}

	return cfg, nil
}
