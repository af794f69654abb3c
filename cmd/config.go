package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"INFO"`

	// Orders are kept in memory unless DB_HOST is set.
	DBHost     string `env:"DB_HOST"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME"`
	DBSslMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	// Dispatch notifications go to Kafka only when KAFKA_HOST is set.
	KafkaHost              string `env:"KAFKA_HOST"`
	KafkaOrderChangedTopic string `env:"KAFKA_ORDER_CHANGED_TOPIC" envDefault:"order.changed"`

	AutoDispatchDelay time.Duration `env:"AUTO_DISPATCH_DELAY" envDefault:"15s"`
	AutoReceiptDelay  time.Duration `env:"AUTO_RECEIPT_DELAY" envDefault:"3s"`
	PickerMinDelay    time.Duration `env:"PICKER_MIN_DELAY" envDefault:"1s"`
	PickerMaxDelay    time.Duration `env:"PICKER_MAX_DELAY" envDefault:"45s"`
	PickerKickSpec    string        `env:"PICKER_KICK_SPEC" envDefault:"@every 5s"`
	ListFloor         int           `env:"LIST_FLOOR" envDefault:"10"`
}

// LoadConfig reads the environment, after loading .env when one exists.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.PickerMaxDelay < cfg.PickerMinDelay {
		return Config{}, fmt.Errorf("PICKER_MAX_DELAY %s is below PICKER_MIN_DELAY %s",
			cfg.PickerMaxDelay, cfg.PickerMinDelay)
	}
	return cfg, nil
}

// UsePostgres reports whether orders are stored in PostgreSQL.
func (c Config) UsePostgres() bool {
	return c.DBHost != ""
}

func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
