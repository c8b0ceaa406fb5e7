package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg := LoadConfig(filepath.Join(t.TempDir(), "nope.yml"))
	if cfg.Web.Port != DefaultAppConfig.Web.Port {
		t.Errorf("port = %d, want default %d", cfg.Web.Port, DefaultAppConfig.Web.Port)
	}
	if cfg.Session.CookieName != "cixi_session" {
		t.Errorf("cookie name = %q", cfg.Session.CookieName)
	}
}

func TestLoadConfigReadsYaml(t *testing.T) {
	cfile := filepath.Join(t.TempDir(), "cixiadmin.yml")
	body := "web:\n  port: 9090\ndatabase:\n  name: cixi_test\n"
	if err := os.WriteFile(cfile, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := LoadConfig(cfile)
	if cfg.Web.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.Web.Port)
	}
	if cfg.Database.Name != "cixi_test" {
		t.Errorf("database name = %q, want cixi_test", cfg.Database.Name)
	}
	// untouched sections keep their defaults
	if cfg.Web.Host != DefaultAppConfig.Web.Host {
		t.Errorf("host = %q", cfg.Web.Host)
	}
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	cfile := filepath.Join(t.TempDir(), "cixiadmin.yml")
	if err := os.WriteFile(cfile, []byte("web:\n  port: 9090\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CIXI_WEB_PORT", "7070")
	t.Setenv("CIXI_WEB_SECRET", "from-env")

	cfg := LoadConfig(cfile)
	if cfg.Web.Port != 7070 {
		t.Errorf("port = %d, want env override 7070", cfg.Web.Port)
	}
	if cfg.Web.Secret != "from-env" {
		t.Errorf("secret = %q", cfg.Web.Secret)
	}
}
