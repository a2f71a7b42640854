package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

func TestGetConfigDir(t *testing.T) {
	configDir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}

	if !strings.Contains(configDir, "vibetagger") {
		t.Errorf("GetConfigDir() = %v, should contain 'vibetagger'", configDir)
	}

	t.Logf("Config directory: %s", configDir)
}

func TestGetConfigDir_XDG(t *testing.T) {
	if runtime.GOOS == "windows" || runtime.GOOS == "darwin" {
		t.Skip("XDG_CONFIG_HOME only applies on Linux and other Unix-like systems")
	}

	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", base)

	configDir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}
	if want := filepath.Join(base, "vibetagger"); configDir != want {
		t.Errorf("GetConfigDir() = %v, want %v", configDir, want)
	}
}

func TestGetConfigPath(t *testing.T) {
	configPath, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}

	if filepath.Base(configPath) != "config.yaml" {
		t.Errorf("GetConfigPath() should end with 'config.yaml', got: %v", configPath)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Version != 1 {
		t.Errorf("Default().Version = %v, want 1", cfg.Version)
	}
	if cfg.Server == nil {
		t.Fatal("Default().Server should not be nil")
	}
	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 8080 {
		t.Errorf("Default().Server = %+v", cfg.Server)
	}
	if cfg.Server.Advertise {
		t.Error("Default().Server.Advertise should be false")
	}
	if cfg.DiscoverTimeout() != 5*time.Second {
		t.Errorf("DiscoverTimeout() = %v, want 5s", cfg.DiscoverTimeout())
	}
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Version != CurrentVersion || cfg.Server.Port != 8080 {
		t.Errorf("Load() of a missing file = %+v, want defaults", cfg)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Model = "gemini-2.5-flash"
	cfg.LogLevel = "debug"
	cfg.Server.Port = 9000
	cfg.Server.Advertise = true
	cfg.Server.InstanceName = "studio"
	cfg.Discover.Timeout = 12

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file left behind after Save()")
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if runtime.GOOS != "windows" && info.Mode().Perm() != 0600 {
		t.Errorf("config file mode = %v, want 0600", info.Mode().Perm())
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if loaded.Model != "gemini-2.5-flash" {
		t.Errorf("Model = %q", loaded.Model)
	}
	if loaded.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", loaded.LogLevel)
	}
	if *loaded.Server != *cfg.Server {
		t.Errorf("Server = %+v, want %+v", loaded.Server, cfg.Server)
	}
	if loaded.DiscoverTimeout() != 12*time.Second {
		t.Errorf("DiscoverTimeout() = %v", loaded.DiscoverTimeout())
	}
}

func TestSave_NeverWritesAPIKey(t *testing.T) {
	t.Setenv(APIKeyEnvVar, "super-secret-key")
	path := filepath.Join(t.TempDir(), "config.yaml")

	if err := Default().Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if strings.Contains(string(data), "super-secret-key") {
		t.Error("config file contains the API key")
	}
}

func TestLoad_PartialFileGetsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("version: 1\nmodel: custom\n"), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Model != "custom" {
		t.Errorf("Model = %q", cfg.Model)
	}
	if cfg.Server == nil || cfg.Server.Port != 8080 || cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Server = %+v, want defaults", cfg.Server)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad version", "version: 2\n"},
		{"missing version", "model: x\n"},
		{"invalid yaml", "version: [1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0600); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("Load() error = nil")
			}
		})
	}
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	got, err := Init(path)
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if got != path {
		t.Errorf("Init() = %v, want %v", got, path)
	}

	if _, err := Init(path); err == nil {
		t.Error("second Init() should refuse to overwrite")
	}
}

func TestAPIKey(t *testing.T) {
	tests := []struct {
		name     string
		primary  string
		fallback string
		want     string
	}{
		{"primary wins", "primary", "fallback", "primary"},
		{"fallback", "", "fallback", "fallback"},
		{"none", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(APIKeyEnvVar, tt.primary)
			t.Setenv(FallbackAPIKeyEnvVar, tt.fallback)
			if got := APIKey(); got != tt.want {
				t.Errorf("APIKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte(APIKeyEnvVar+"=from-dotenv\n"), 0600); err != nil {
		t.Fatal(err)
	}

	// t.Setenv registers cleanup; unset so godotenv can populate it.
	t.Setenv(APIKeyEnvVar, "")
	os.Unsetenv(APIKeyEnvVar)

	if err := LoadDotEnv(envFile); err != nil {
		t.Fatalf("LoadDotEnv() error = %v", err)
	}
	if got := os.Getenv(APIKeyEnvVar); got != "from-dotenv" {
		t.Errorf("%s = %q, want from-dotenv", APIKeyEnvVar, got)
	}
}

func TestLoadDotEnv_DoesNotOverride(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(envFile, []byte(APIKeyEnvVar+"=from-dotenv\n"), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(APIKeyEnvVar, "from-env")

	if err := LoadDotEnv(envFile); err != nil {
		t.Fatalf("LoadDotEnv() error = %v", err)
	}
	if got := os.Getenv(APIKeyEnvVar); got != "from-env" {
		t.Errorf("%s = %q, want from-env", APIKeyEnvVar, got)
	}
}

func TestLoadDotEnv_MissingFile(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Errorf("LoadDotEnv() error = %v, want nil for a missing file", err)
	}
}
