package settings

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSettings_Defaults(t *testing.T) {
	s := &Settings{}

	if got := s.GetVarsDir(); got != DefaultVarsDir {
		t.Errorf("GetVarsDir() default = %q, want %q", got, DefaultVarsDir)
	}
	if got := s.GetOutputDir(); got != DefaultOutputDir {
		t.Errorf("GetOutputDir() default = %q, want %q", got, DefaultOutputDir)
	}
	if got := s.GetRedisAddr(); got != DefaultRedisAddr {
		t.Errorf("GetRedisAddr() default = %q, want %q", got, DefaultRedisAddr)
	}
}

func TestSettings_SetGet(t *testing.T) {
	s := &Settings{}

	for _, kv := range [][2]string{
		{"vars_dir", "/srv/dc1/vars"},
		{"output_dir", "/srv/dc1/host_vars"},
		{"redis_addr", "10.0.0.5:6379"},
		{"redis_db", "4"},
		{"format", "yaml"},
	} {
		if err := s.Set(kv[0], kv[1]); err != nil {
			t.Fatalf("Set(%s) error = %v", kv[0], err)
		}
		got, err := s.Get(kv[0])
		if err != nil || got != kv[1] {
			t.Errorf("Get(%s) = %q, %v; want %q", kv[0], got, err, kv[1])
		}
	}
	if s.GetVarsDir() != "/srv/dc1/vars" || s.RedisDB != 4 {
		t.Errorf("settings = %+v", s)
	}
}

func TestSettings_SetInvalid(t *testing.T) {
	s := &Settings{}
	tests := []struct{ key, value string }{
		{"redis_db", "x"},
		{"redis_db", "-1"},
		{"format", "xml"},
		{"network", "prod"},
	}
	for _, tt := range tests {
		if err := s.Set(tt.key, tt.value); err == nil {
			t.Errorf("Set(%s, %s) should fail", tt.key, tt.value)
		}
	}
	if _, err := s.Get("network"); err == nil {
		t.Error("Get(network) should fail")
	}
}

func TestSettings_Clear(t *testing.T) {
	s := &Settings{
		VarsDir:   "vars",
		OutputDir: "out",
		RedisAddr: "redis:6379",
		RedisDB:   2,
	}

	s.Clear()

	if s.VarsDir != "" || s.OutputDir != "" || s.RedisAddr != "" || s.RedisDB != 0 {
		t.Error("Clear() should reset all fields to empty")
	}
}

func TestSettings_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")

	original := &Settings{
		VarsDir:   "/srv/dc1/vars",
		OutputDir: "/srv/dc1/host_vars",
		RedisAddr: "10.0.0.5:6379",
		RedisDB:   3,
		Format:    "json",
	}

	if err := original.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() failed: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() failed: %v", err)
	}
	if *loaded != *original {
		t.Errorf("loaded = %+v, want %+v", loaded, original)
	}
}

func TestSettings_LoadNonExistent(t *testing.T) {
	s, err := LoadFrom("/nonexistent/path/settings.json")
	if err != nil {
		t.Fatalf("LoadFrom() non-existent should not error: %v", err)
	}
	if s == nil {
		t.Fatal("LoadFrom() should return non-nil Settings")
	}
	if s.VarsDir != "" || s.RedisAddr != "" {
		t.Error("LoadFrom() non-existent should return empty settings")
	}
}

func TestSettings_LoadInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte("invalid json {"), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	if _, err := LoadFrom(path); err == nil {
		t.Error("LoadFrom() with invalid JSON should error")
	}
}

func TestSettings_SaveCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subdir", "nested", "settings.json")

	s := &Settings{VarsDir: "vars"}
	if err := s.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() should create directories: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("SaveTo() should have created the file")
	}
}

func TestLoadSave_Home(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	s, err := Load()
	if err != nil {
		t.Fatalf("Load() with non-existent file should not error: %v", err)
	}
	if s.VarsDir != "" {
		t.Error("Load() with non-existent file should return empty settings")
	}

	s.VarsDir = "saved-vars"
	if err := s.Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(home, ".fabricgen", "settings.json")); err != nil {
		t.Fatalf("Save() did not create the file: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() after Save() failed: %v", err)
	}
	if loaded.VarsDir != "saved-vars" {
		t.Errorf("VarsDir = %q, want saved-vars", loaded.VarsDir)
	}
}

func TestDefaultSettingsPath_NoHome(t *testing.T) {
	t.Setenv("HOME", "")

	if path := DefaultSettingsPath(); path != "fabricgen_settings.json" {
		t.Errorf("DefaultSettingsPath() with no HOME = %q, want %q", path, "fabricgen_settings.json")
	}
}

func TestLoadFrom_ReadError(t *testing.T) {
	dirAsFile := filepath.Join(t.TempDir(), "settings.json")
	if err := os.Mkdir(dirAsFile, 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	if _, err := LoadFrom(dirAsFile); err == nil {
		t.Error("LoadFrom() should error when path is a directory")
	}
}

func TestSaveTo_MkdirError(t *testing.T) {
	blockingFile := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blockingFile, []byte("blocking"), 0644); err != nil {
		t.Fatalf("Failed to create blocking file: %v", err)
	}

	s := &Settings{VarsDir: "vars"}
	if err := s.SaveTo(filepath.Join(blockingFile, "subdir", "settings.json")); err == nil {
		t.Error("SaveTo() should fail when directory creation fails")
	}
}
