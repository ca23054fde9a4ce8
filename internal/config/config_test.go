package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Window.Width != 800 {
		t.Errorf("expected width 800, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 600 {
		t.Errorf("expected height 600, got %d", cfg.Window.Height)
	}
	if cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Window.VSync {
		t.Error("expected vsync to be true by default")
	}

	if cfg.Camera.Distance != 0.5 {
		t.Errorf("expected camera distance 0.5, got %f", cfg.Camera.Distance)
	}
	if cfg.Camera.Azimuth != 0 || cfg.Camera.Elevation != 0 {
		t.Errorf("expected zero start angles, got azimuth %f elevation %f", cfg.Camera.Azimuth, cfg.Camera.Elevation)
	}

	if cfg.Scene.Model != "" {
		t.Errorf("expected no default model, got %s", cfg.Scene.Model)
	}
	if cfg.Scene.ShowFPS {
		t.Error("expected show_fps to be false by default")
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
window:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false

camera:
  distance: 4.0
  azimuth: 45.0
  elevation: -10.0

scene:
  model: "models/bunny.obj"
  show_fps: true

logging:
  level: "debug"
  log_file: "viewer.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Window.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 1080 {
		t.Errorf("expected height 1080, got %d", cfg.Window.Height)
	}
	if !cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Window.VSync {
		t.Error("expected vsync to be false")
	}

	if cfg.Camera.Distance != 4.0 {
		t.Errorf("expected camera distance 4.0, got %f", cfg.Camera.Distance)
	}
	if cfg.Camera.Azimuth != 45.0 {
		t.Errorf("expected azimuth 45.0, got %f", cfg.Camera.Azimuth)
	}
	if cfg.Camera.Elevation != -10.0 {
		t.Errorf("expected elevation -10.0, got %f", cfg.Camera.Elevation)
	}

	if cfg.Scene.Model != "models/bunny.obj" {
		t.Errorf("expected model models/bunny.obj, got %s", cfg.Scene.Model)
	}
	if !cfg.Scene.ShowFPS {
		t.Error("expected show_fps to be true")
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "viewer.log" {
		t.Errorf("expected log file 'viewer.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
window:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)

	// No config file exists yet
	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("window:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name: "debug flag",
			setup: func() {
				*flagDebug = true
			},
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
				if !cfg.Scene.ShowFPS {
					t.Error("expected show_fps to be enabled with debug flag")
				}
			},
			teardown: func() {
				*flagDebug = false
			},
		},
		{
			name: "model flag",
			setup: func() {
				*flagModel = "assets/teapot.obj"
			},
			verify: func(cfg *Config) {
				if cfg.Scene.Model != "assets/teapot.obj" {
					t.Errorf("expected model assets/teapot.obj, got %s", cfg.Scene.Model)
				}
			},
			teardown: func() {
				*flagModel = ""
			},
		},
		{
			name: "windowed flag",
			setup: func() {
				*flagWindowed = true
			},
			verify: func(cfg *Config) {
				if cfg.Window.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
			},
			teardown: func() {
				*flagWindowed = false
			},
		},
		{
			name: "fullscreen flag",
			setup: func() {
				*flagFullscreen = true
			},
			verify: func(cfg *Config) {
				if !cfg.Window.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() {
				*flagFullscreen = false
			},
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(cfg *Config) {
				if cfg.Window.Width != 2560 {
					t.Errorf("expected width 2560, got %d", cfg.Window.Width)
				}
				if cfg.Window.Height != 1440 {
					t.Errorf("expected height 1440, got %d", cfg.Window.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
window:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width comes from the flag, height from the file.
	if cfg.Window.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Window.Height)
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved", "config.yaml")

	cfg := Default()
	cfg.Window.Width = 1024
	cfg.Scene.Model = "cube.obj"

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reloading saved config: %v", err)
	}

	if loaded.Window.Width != 1024 {
		t.Errorf("expected width 1024 after round trip, got %d", loaded.Window.Width)
	}
	if loaded.Scene.Model != "cube.obj" {
		t.Errorf("expected model cube.obj after round trip, got %s", loaded.Scene.Model)
	}
}
