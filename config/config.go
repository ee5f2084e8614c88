package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
)

//go:embed version
var version string

//go:embed name
var name string

type LogLevel string

const (
	Debug  LogLevel = "debug"
	Info   LogLevel = "info"
	Notice LogLevel = "notice"
	Warn   LogLevel = "warn"
	Error  LogLevel = "error"
)

func GetVersion() string {
	return strings.TrimSpace(version)
}

func GetName() string {
	return strings.TrimSpace(name)
}

func GetLogLevel() LogLevel {
	if IsDebug() {
		return Debug
	}
	logLevel := os.Getenv("ECOCART_LOG_LEVEL")
	if logLevel == "" {
		return Info
	}
	return LogLevel(logLevel)
}

func IsDebug() bool {
	return os.Getenv("ECOCART_DEBUG") == "true"
}

func GetDBFolderPath() string {
	dbFolderPath := os.Getenv("ECOCART_DB_FOLDER")
	if dbFolderPath == "" {
		dbFolderPath = "/etc/ecocart"
	}
	return dbFolderPath
}

func GetDBPath() string {
	return fmt.Sprintf("%s/%s.db", GetDBFolderPath(), GetName())
}

func GetLogFolder() string {
	logFolderPath := os.Getenv("ECOCART_LOG_FOLDER")
	if logFolderPath == "" {
		logFolderPath = "/var/log"
	}
	return logFolderPath
}

// GetRedisAddr returns the Redis address used for sessions and caching.
// Empty means Redis is disabled and the in-process fallbacks are used.
func GetRedisAddr() string {
	return os.Getenv("ECOCART_REDIS_ADDR")
}

func GetRedisPassword() string {
	return os.Getenv("ECOCART_REDIS_PASSWORD")
}
