package main

import (
	"log"
	"strconv"

	"qna-backend/internal/shared/utils"
)

// workerConfig is the slice of configuration the worker reads directly.
type workerConfig struct {
	RedisAddr     string
	Concurrency   int
	RetentionDays int
}

func loadWorkerConfig() *workerConfig {
	cfg := &workerConfig{
		RedisAddr:     utils.GetEnvVariable("REDIS_HOST", "localhost:6379"),
		Concurrency:   getEnvInt("WORKER_CONCURRENCY", 20),
		RetentionDays: getEnvInt("NOTIFICATION_RETENTION_DAYS", 30),
	}

	log.Printf("[Config] Redis: %s, Concurrency: %d", cfg.RedisAddr, cfg.Concurrency)
	return cfg
}

func getEnvInt(key string, defaultValue int) int {
	raw := utils.GetEnvVariable(key, "")
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue
	}
	return value
}
