package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var AppEnv Config

type Config struct {
	MongoURI       string
	DBName         string
	DBMode         string // "mongo" (default) or "memory"
	RedisAddr      string
	NotifyChannel  string
	Port           string
	RequestTimeout time.Duration
}

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	AppEnv = Config{
		MongoURI:       getEnvOrDefault("MONGO_URI", ""),
		DBName:         getEnvOrDefault("DB_NAME", "cafeorders"),
		DBMode:         getEnvOrDefault("DB_MODE", "mongo"),
		RedisAddr:      getEnvOrDefault("REDIS_ADDR", ""),
		NotifyChannel:  getEnvOrDefault("NOTIFY_CHANNEL", "orders.events"),
		Port:           getEnvOrDefault("PORT", "8080"),
		RequestTimeout: getDurationEnv("REQUEST_TIMEOUT", 5, time.Second),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int, unit time.Duration) time.Duration {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return time.Duration(parsed) * unit
		}
	}
	return time.Duration(defaultValue) * unit
}
