package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"ENVIRONMENT", "TABLE_PREFIX", "PORT", "TOKEN_TTL", "MAX_ATTACHMENT_SIZE"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Environment != "dev" {
		t.Errorf("Environment = %q, want dev", cfg.Environment)
	}
	if cfg.TablePrefix != "dev_" {
		t.Errorf("TablePrefix = %q, want dev_", cfg.TablePrefix)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.TokenTTL != time.Hour {
		t.Errorf("TokenTTL = %v, want 1h", cfg.TokenTTL)
	}
	if cfg.MaxAttachmentSize != DefaultMaxAttachmentSize {
		t.Errorf("MaxAttachmentSize = %d, want %d", cfg.MaxAttachmentSize, DefaultMaxAttachmentSize)
	}
	if cfg.MaxAttachmentsPerPrompt != DefaultMaxAttachmentsPerPrompt {
		t.Errorf("MaxAttachmentsPerPrompt = %d, want %d", cfg.MaxAttachmentsPerPrompt, DefaultMaxAttachmentsPerPrompt)
	}
}

func TestTablePrefixPerEnvironment(t *testing.T) {
	tests := []struct {
		env  string
		want string
	}{
		{"dev", "dev_"},
		{"test", "test_"},
		{"prod", "prod_"},
		{"staging", "dev_"},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Setenv("TABLE_PREFIX", "")
			t.Setenv("ENVIRONMENT", tt.env)
			cfg := Load()
			if cfg.TablePrefix != tt.want {
				t.Errorf("TablePrefix = %q, want %q", cfg.TablePrefix, tt.want)
			}
		})
	}

	t.Run("explicit override wins", func(t *testing.T) {
		t.Setenv("ENVIRONMENT", "prod")
		t.Setenv("TABLE_PREFIX", "custom_")
		cfg := Load()
		if cfg.TablePrefix != "custom_" {
			t.Errorf("TablePrefix = %q, want custom_", cfg.TablePrefix)
		}
	})
}

func TestDurationAndIntOverrides(t *testing.T) {
	t.Setenv("TOKEN_TTL", "15m")
	t.Setenv("MAX_ATTACHMENT_SIZE", "1024")
	cfg := Load()
	if cfg.TokenTTL != 15*time.Minute {
		t.Errorf("TokenTTL = %v, want 15m", cfg.TokenTTL)
	}
	if cfg.MaxAttachmentSize != 1024 {
		t.Errorf("MaxAttachmentSize = %d, want 1024", cfg.MaxAttachmentSize)
	}

	t.Run("malformed values fall back to defaults", func(t *testing.T) {
		t.Setenv("TOKEN_TTL", "soon")
		t.Setenv("MAX_ATTACHMENT_SIZE", "lots")
		cfg := Load()
		if cfg.TokenTTL != time.Hour {
			t.Errorf("TokenTTL = %v, want 1h", cfg.TokenTTL)
		}
		if cfg.MaxAttachmentSize != DefaultMaxAttachmentSize {
			t.Errorf("MaxAttachmentSize = %d, want default", cfg.MaxAttachmentSize)
		}
	})
}
