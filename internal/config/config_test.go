package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Editor.StartMode != ModeEdit {
		t.Errorf("expected start mode 'edit', got %s", cfg.Editor.StartMode)
	}
	if !cfg.Editor.NormalizeOnLoad {
		t.Error("expected normalize_on_load to default to true")
	}
	if cfg.Editor.MaxCellWidth != 24 {
		t.Errorf("expected max cell width 24, got %d", cfg.Editor.MaxCellWidth)
	}
	if cfg.Log.Enabled {
		t.Error("expected logging to be disabled by default")
	}
	if cfg.StartsInDragMode() {
		t.Error("expected default config not to start in drag mode")
	}
}

func TestConfig_ApplyEnv(t *testing.T) {
	t.Setenv("MDGRID_MODE", "DRAG")
	t.Setenv("MDGRID_LOG", "yes")
	t.Setenv("MDGRID_LOG_DIR", "/tmp/mdgrid-logs")

	cfg := DefaultConfig()
	cfg.ApplyEnv()

	if !cfg.StartsInDragMode() {
		t.Errorf("expected drag mode from env, got %s", cfg.Editor.StartMode)
	}
	if !cfg.Log.Enabled {
		t.Error("expected logging enabled from env")
	}
	if cfg.Log.Dir != "/tmp/mdgrid-logs" {
		t.Errorf("expected log dir from env, got %s", cfg.Log.Dir)
	}
}

func TestConfig_ApplyEnvIgnoresBadMode(t *testing.T) {
	t.Setenv("MDGRID_MODE", "sideways")

	cfg := DefaultConfig()
	cfg.ApplyEnv()

	if cfg.Editor.StartMode != ModeEdit {
		t.Errorf("expected start mode to stay 'edit', got %s", cfg.Editor.StartMode)
	}
}

func TestLoader_SaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	loader := NewLoaderWithPath(configPath)

	cfg := DefaultConfig()
	cfg.Editor.StartMode = ModeDrag
	cfg.Editor.MaxCellWidth = 40

	if err := loader.Save(cfg); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	if !loader.Exists() {
		t.Error("expected config file to exist after save")
	}

	loaded, err := loader.LoadRaw()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if loaded.Editor.StartMode != ModeDrag {
		t.Errorf("expected start mode 'drag', got %s", loaded.Editor.StartMode)
	}
	if loaded.Editor.MaxCellWidth != 40 {
		t.Errorf("expected max cell width 40, got %d", loaded.Editor.MaxCellWidth)
	}
}

func TestLoader_LoadNonExistent(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nonexistent", "config.yaml")

	loader := NewLoaderWithPath(configPath)

	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("expected no error for non-existent file, got: %v", err)
	}

	if cfg.Editor.StartMode != ModeEdit {
		t.Errorf("expected start mode 'edit', got %s", cfg.Editor.StartMode)
	}
}

func TestLoader_PartialFileKeepsDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := "editor:\n  start_mode: drag\n"
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := NewLoaderWithPath(configPath).Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if !cfg.StartsInDragMode() {
		t.Errorf("expected drag mode, got %s", cfg.Editor.StartMode)
	}
	if cfg.Editor.MaxCellWidth != 24 {
		t.Errorf("expected default max cell width 24, got %d", cfg.Editor.MaxCellWidth)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("expected default log level 'info', got %s", cfg.Log.Level)
	}
}

func TestLoader_ExpandEnvVars(t *testing.T) {
	t.Setenv("TEST_LOG_DIR", "/var/log/mdgrid")

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `log:
  enabled: true
  dir: ${TEST_LOG_DIR}
  level: debug
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := NewLoaderWithPath(configPath).Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Log.Dir != "/var/log/mdgrid" {
		t.Errorf("expected expanded log dir, got %s", cfg.Log.Dir)
	}

	raw, err := NewLoaderWithPath(configPath).LoadRaw()
	if err != nil {
		t.Fatalf("failed to load raw config: %v", err)
	}
	if raw.Log.Dir != "${TEST_LOG_DIR}" {
		t.Errorf("expected raw log dir reference, got %s", raw.Log.Dir)
	}
}

func TestExpandEnvVars_UnsetVar(t *testing.T) {
	os.Unsetenv("UNSET_VAR_FOR_TEST")

	got := expandEnvVars("dir: ${UNSET_VAR_FOR_TEST}")
	if got != "dir: " {
		t.Errorf("expected unset var to expand to empty string, got %q", got)
	}
}

func TestGetEnvOrDefault(t *testing.T) {
	t.Setenv("TEST_VAR", "test-value")

	if v := GetEnvOrDefault("TEST_VAR", "default"); v != "test-value" {
		t.Errorf("expected 'test-value', got %s", v)
	}

	if v := GetEnvOrDefault("NONEXISTENT_VAR", "default"); v != "default" {
		t.Errorf("expected 'default', got %s", v)
	}
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		value    string
		expected bool
	}{
		{"true", true},
		{"TRUE", true},
		{"1", true},
		{"yes", true},
		{"false", false},
		{"0", false},
		{"no", false},
		{"", false},
		{"invalid", false},
	}

	for _, tc := range tests {
		t.Setenv("TEST_BOOL", tc.value)
		if got := GetEnvBool("TEST_BOOL"); got != tc.expected {
			t.Errorf("GetEnvBool(%q): expected %v, got %v", tc.value, tc.expected, got)
		}
	}
}

func TestNewLoader(t *testing.T) {
	t.Setenv(ConfigPathEnv, "")

	loader, err := NewLoader()
	if err != nil {
		t.Fatalf("failed to create loader: %v", err)
	}

	path := loader.ConfigPath()
	if filepath.Base(path) != ConfigFileName {
		t.Errorf("expected config file name %s, got %s", ConfigFileName, filepath.Base(path))
	}
	if filepath.Base(filepath.Dir(path)) != ConfigDirName {
		t.Errorf("expected config dir %s, got %s", ConfigDirName, filepath.Dir(path))
	}
}

func TestNewLoader_EnvOverride(t *testing.T) {
	custom := filepath.Join(t.TempDir(), "custom.yaml")
	t.Setenv(ConfigPathEnv, custom)

	loader, err := NewLoader()
	if err != nil {
		t.Fatalf("failed to create loader: %v", err)
	}
	if loader.ConfigPath() != custom {
		t.Errorf("expected %s, got %s", custom, loader.ConfigPath())
	}
}

func TestLoader_Init(t *testing.T) {
	loader := NewLoaderWithPath(filepath.Join(t.TempDir(), "config.yaml"))

	if err := loader.Init(); err != nil {
		t.Fatalf("failed to init config: %v", err)
	}
	if !loader.Exists() {
		t.Error("expected config file to exist after init")
	}
	if err := loader.Init(); err == nil {
		t.Error("expected error when initializing existing config")
	}
}

func TestLoader_LoadInvalidYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("{{{{invalid yaml"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if _, err := NewLoaderWithPath(configPath).Load(); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestSet(t *testing.T) {
	tests := []struct {
		key     string
		value   string
		wantErr bool
		check   func(*Config) bool
	}{
		{"editor.start_mode", "drag", false, func(c *Config) bool { return c.Editor.StartMode == ModeDrag }},
		{"editor.start_mode", "Edit", false, func(c *Config) bool { return c.Editor.StartMode == ModeEdit }},
		{"editor.start_mode", "fly", true, nil},
		{"editor.normalize_on_load", "false", false, func(c *Config) bool { return !c.Editor.NormalizeOnLoad }},
		{"editor.normalize_on_load", "maybe", true, nil},
		{"editor.max_cell_width", "12", false, func(c *Config) bool { return c.Editor.MaxCellWidth == 12 }},
		{"editor.max_cell_width", "2", true, nil},
		{"editor.max_cell_width", "wide", true, nil},
		{"editor.show_source", "0", false, func(c *Config) bool { return !c.Editor.ShowSource }},
		{"log.enabled", "true", false, func(c *Config) bool { return c.Log.Enabled }},
		{"log.dir", "/tmp/x", false, func(c *Config) bool { return c.Log.Dir == "/tmp/x" }},
		{"log.level", "DEBUG", false, func(c *Config) bool { return c.Log.Level == "debug" }},
		{"log.level", "loud", true, nil},
		{"format.language", "ko", true, nil},
	}

	for _, tc := range tests {
		t.Run(tc.key+"="+tc.value, func(t *testing.T) {
			cfg := DefaultConfig()
			err := Set(cfg, tc.key, tc.value)
			if tc.wantErr {
				if err == nil {
					t.Errorf("expected error for %s=%s", tc.key, tc.value)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.check(cfg) {
				t.Errorf("%s=%s not applied: %+v", tc.key, tc.value, cfg)
			}
		})
	}
}

func TestKeys_AllSettable(t *testing.T) {
	samples := map[string]string{
		"editor.start_mode":        "edit",
		"editor.normalize_on_load": "true",
		"editor.max_cell_width":    "10",
		"editor.show_source":       "true",
		"log.enabled":              "false",
		"log.dir":                  "",
		"log.level":                "info",
	}
	for _, key := range Keys() {
		value, ok := samples[key]
		if !ok {
			t.Fatalf("no sample value for key %s", key)
		}
		if err := Set(DefaultConfig(), key, value); err != nil {
			t.Errorf("Set(%s) failed: %v", key, err)
		}
	}
}
