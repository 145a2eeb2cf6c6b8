package config

import (
	"log"
	"os"
	"strconv"

	"github.com/codeOfTheFuture/mern-stack-authentication/pkg/constant"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	Env               string
	Port              string
	DBURL             string
	JWTSecret         string
	SessionExpiryDays int
	BcryptCost        int
}

func Load() *Config {
	return &Config{
		Env:               getEnv("ENV", constant.EnvDevelopment),
		Port:              getEnv("PORT", constant.DefaultPort),
		DBURL:             mustGetEnv("DB_URL"),
		JWTSecret:         mustGetEnv("JWT_SECRET"),
		SessionExpiryDays: getEnvAsInt("SESSION_EXPIRY_DAYS", constant.DefaultSessionExpiryDays),
		BcryptCost:        getEnvAsInt("BCRYPT_COST", bcrypt.DefaultCost),
	}
}

// IsDevelopment reports whether the service runs in the development
// environment. Controls the Secure cookie flag and error stack exposure.
func (c *Config) IsDevelopment() bool {
	return c.Env == constant.EnvDevelopment
}

func getEnv(key string, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func mustGetEnv(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	log.Fatalf("Missing required environment variable: %s", key)
	return ""
}

func getEnvAsInt(key string, defaultVal int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Printf("Invalid value for %s, using default %d", key, defaultVal)
		return defaultVal
	}
	return val
}
