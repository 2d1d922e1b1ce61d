package config_test

import (
	"testing"
	"time"

	"github.com/interviewer/backend/internal/infrastructure/config"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{
		"SERVER_ADDRESS", "SHUTDOWN_TIMEOUT", "CONTENT_DIR", "CONTENT_FILES",
		"CONTENT_WORKERS", "DATA_DIR", "SQLITE_PATH", "KV_BACKEND", "REDIS_ADDR", "REDIS_DB",
	} {
		t.Setenv(k, "")
	}

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.ServerAddress != ":8080" {
		t.Errorf("expected :8080, got %q", cfg.ServerAddress)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("expected 10s shutdown timeout, got %v", cfg.ShutdownTimeout)
	}
	if cfg.KVBackend != config.KVFile {
		t.Errorf("expected file KV backend, got %q", cfg.KVBackend)
	}
	if cfg.SQLitePath != "data/interviewer.db" {
		t.Errorf("expected data/interviewer.db, got %q", cfg.SQLitePath)
	}
	if len(cfg.ContentFiles) != 0 {
		t.Errorf("expected no explicit content files, got %v", cfg.ContentFiles)
	}
}

func TestLoad_ContentFilesList(t *testing.T) {
	t.Setenv("CONTENT_FILES", "react.json, vue.yaml ,,")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.ContentFiles) != 2 || cfg.ContentFiles[0] != "react.json" || cfg.ContentFiles[1] != "vue.yaml" {
		t.Errorf("unexpected content files: %v", cfg.ContentFiles)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"bad duration", "SHUTDOWN_TIMEOUT", "soon"},
		{"bad workers", "CONTENT_WORKERS", "many"},
		{"zero workers", "CONTENT_WORKERS", "0"},
		{"unknown kv", "KV_BACKEND", "etcd"},
		{"redis without address", "KV_BACKEND", "redis"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("REDIS_ADDR", "")
			t.Setenv(tt.key, tt.val)

			if _, err := config.Load(); err == nil {
				t.Errorf("expected error for %s=%q", tt.key, tt.val)
			}
		})
	}
}
