package common

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()

	if cfg.Server.Addr != ":5000" {
		t.Errorf("Addr = %q, want :5000", cfg.Server.Addr)
	}
	if cfg.Storage.DataDir != "./data" {
		t.Errorf("DataDir = %q", cfg.Storage.DataDir)
	}
	if cfg.Storage.InboxDir != "" {
		t.Errorf("InboxDir = %q, want empty (watcher disabled)", cfg.Storage.InboxDir)
	}
	if cfg.Queue.Workers != 4 || cfg.Queue.ProcessTimeout != 2*time.Minute {
		t.Errorf("Queue = %+v", cfg.Queue)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":8080")
	t.Setenv("DATA_DIR", "/var/lib/declascan")
	t.Setenv("QUEUE_WORKERS", "8")
	t.Setenv("PROCESS_TIMEOUT", "30s")
	t.Setenv("MAX_UPLOAD_BYTES", "1048576")

	cfg := LoadConfig()
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Addr = %q", cfg.Server.Addr)
	}
	if cfg.Storage.DataDir != "/var/lib/declascan" {
		t.Errorf("DataDir = %q", cfg.Storage.DataDir)
	}
	if cfg.Queue.Workers != 8 || cfg.Queue.ProcessTimeout != 30*time.Second {
		t.Errorf("Queue = %+v", cfg.Queue)
	}
	if cfg.Server.MaxUploadSize != 1<<20 {
		t.Errorf("MaxUploadSize = %d", cfg.Server.MaxUploadSize)
	}
}

func TestLoadConfigIgnoresMalformedEnv(t *testing.T) {
	t.Setenv("QUEUE_WORKERS", "many")
	t.Setenv("PROCESS_TIMEOUT", "soon")

	cfg := LoadConfig()
	if cfg.Queue.Workers != 4 {
		t.Errorf("Workers = %d, want default on parse failure", cfg.Queue.Workers)
	}
	if cfg.Queue.ProcessTimeout != 2*time.Minute {
		t.Errorf("ProcessTimeout = %v, want default on parse failure", cfg.Queue.ProcessTimeout)
	}
}

func TestValidateRejectsBadConfig(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty addr", func(c *Config) { c.Server.Addr = "" }},
		{"empty data dir", func(c *Config) { c.Storage.DataDir = "" }},
		{"zero workers", func(c *Config) { c.Queue.Workers = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := LoadConfig()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
