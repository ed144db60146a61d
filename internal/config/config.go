package config

import "os"

// Config is the process configuration, read from the environment. Load a
// .env file first with godotenv if one exists.
type Config struct {
	Port        string
	DatabaseURL string
	RedisAddr   string
	// BaseURL is the externally reachable site origin, used for feed links
	// and canonical feed URLs.
	BaseURL string
	// FeedLanguage is the RSS channel language.
	FeedLanguage string
	// FeedGooglePlay enables the googleplay namespace and tags.
	FeedGooglePlay bool
}

func Load() Config {
	return Config{
		Port:           getEnv("PORT", "8080"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RedisAddr:      getEnv("REDIS_ADDR", "127.0.0.1:6379"),
		BaseURL:        getEnv("BASE_URL", "http://localhost:8080"),
		FeedLanguage:   getEnv("FEED_LANGUAGE", "en-us"),
		FeedGooglePlay: os.Getenv("FEED_GOOGLEPLAY") == "true",
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
