package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config holds the loaded configuration
type Config struct {
	Port           string
	Env            string
	APIBaseURL     string
	RequestTimeout time.Duration
	RedisURL       string
	ShippingFee    decimal.Decimal
}

// Load reads configuration from the .env file and environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return Config{
		Port:           getEnv("PORT", "8090"),
		Env:            getEnv("APP_ENV", "development"),
		APIBaseURL:     getEnv("API_BASE_URL", "http://localhost:3000"),
		RequestTimeout: getDuration("API_TIMEOUT", 10*time.Second),
		RedisURL:       getEnv("REDIS_URL", "redis://localhost:6379"),
		ShippingFee:    getDecimal("SHIPPING_FEE", "15.90"),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
		log.Printf("Invalid duration for %s, using default", key)
	}
	return defaultVal
}

func getDecimal(key, defaultVal string) decimal.Decimal {
	raw := getEnv(key, defaultVal)
	d, err := decimal.NewFromString(raw)
	if err != nil {
		log.Printf("Invalid decimal for %s, using default", key)
		d, _ = decimal.NewFromString(defaultVal)
	}
	return d
}
