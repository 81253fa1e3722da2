package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	os.Setenv("MYSQL_DSN", "user:pass@tcp(localhost:3306)/backoffice")
	os.Setenv("JWT_SECRET", "test-secret")
	defer func() {
		os.Unsetenv("MYSQL_DSN")
		os.Unsetenv("JWT_SECRET")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.MySQL.DSN == "" {
		t.Error("MySQL DSN should not be empty")
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("Expected HTTPAddr :8080, got %s", cfg.HTTPAddr)
	}
	if cfg.JWT.ExpireMinutes != 1440 {
		t.Errorf("Expected default JWT expiry 1440, got %d", cfg.JWT.ExpireMinutes)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	os.Unsetenv("MYSQL_DSN")
	os.Unsetenv("JWT_SECRET")

	if _, err := Load(); err == nil {
		t.Error("Expected error when MYSQL_DSN is missing")
	}

	os.Setenv("MYSQL_DSN", "user:pass@tcp(localhost:3306)/backoffice")
	defer os.Unsetenv("MYSQL_DSN")

	if _, err := Load(); err == nil {
		t.Error("Expected error when JWT_SECRET is missing")
	}
}

func TestLoadFromINI_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	iniPath := filepath.Join(dir, "backoffice.ini")
	content := `[mysql]
dsn = ini:dsn@tcp(localhost:3306)/ini

[jwt]
secret = ini-secret
expire_minutes = 60

[app]
http_addr = :9090
`
	if err := os.WriteFile(iniPath, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write INI file: %v", err)
	}

	os.Setenv("JWT_SECRET", "env-secret")
	defer os.Unsetenv("JWT_SECRET")
	os.Unsetenv("MYSQL_DSN")
	os.Unsetenv("HTTP_ADDR")
	os.Unsetenv("JWT_EXPIRE_MINUTES")

	cfg, err := LoadFromINI(iniPath)
	if err != nil {
		t.Fatalf("LoadFromINI() failed: %v", err)
	}

	// ENV wins over INI
	if cfg.JWT.Secret != "env-secret" {
		t.Errorf("Expected env-secret, got %s", cfg.JWT.Secret)
	}
	// INI wins over default
	if cfg.MySQL.DSN != "ini:dsn@tcp(localhost:3306)/ini" {
		t.Errorf("Expected INI DSN, got %s", cfg.MySQL.DSN)
	}
	if cfg.HTTPAddr != ":9090" {
		t.Errorf("Expected :9090, got %s", cfg.HTTPAddr)
	}
	if cfg.JWT.ExpireMinutes != 60 {
		t.Errorf("Expected 60, got %d", cfg.JWT.ExpireMinutes)
	}
}
