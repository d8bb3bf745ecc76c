package config

import (
	"os"
	"strconv"
	"time"
)

// getEnv returns the variable's value or fallback when unset
func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

// getEnvMulti returns the first set variable among keys, or fallback
func getEnvMulti(keys []string, fallback string) string {
	for _, key := range keys {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
	}
	return fallback
}

// getEnvAsInt parses the variable as an int, returning fallback on absence
// or parse failure
func getEnvAsInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// getEnvAsDuration parses the variable as a time.Duration, returning
// fallback on absence or parse failure
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
