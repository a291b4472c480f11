package config

import (
	"os"
	"strconv"
)

// Server captures process-level configuration.
type Server struct {
	Addr         string
	PostgresDSN  string
	SettingsPath string
	Classifier   string
	Concurrency  int
}

// FromEnv builds a Server config from environment variables so main stays lean.
//
// CRM_POSTGRES_DSN empty means in-memory stores; CRM_SETTINGS_PATH empty means
// the built-in default settings; CRM_CLASSIFIER overrides the settings file's
// classifier selection; CRM_SYNC_CONCURRENCY below two means sequential runs.
func FromEnv() Server {
	addr := os.Getenv("CRM_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	concurrency := 0
	if v := os.Getenv("CRM_SYNC_CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			concurrency = n
		}
	}
	return Server{
		Addr:         addr,
		PostgresDSN:  os.Getenv("CRM_POSTGRES_DSN"),
		SettingsPath: os.Getenv("CRM_SETTINGS_PATH"),
		Classifier:   os.Getenv("CRM_CLASSIFIER"),
		Concurrency:  concurrency,
	}
}
