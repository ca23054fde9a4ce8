// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Camera  CameraConfig  `yaml:"camera"`
	Scene   SceneConfig   `yaml:"scene"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// CameraConfig holds the starting orbit. Angles are degrees in the file
// and converted to radians when the camera is built.
type CameraConfig struct {
	Distance  float32 `yaml:"distance"`
	Azimuth   float32 `yaml:"azimuth"`
	Elevation float32 `yaml:"elevation"`
}

// SceneConfig holds what to show.
type SceneConfig struct {
	Model   string `yaml:"model"` // OBJ path; empty shows the built-in triangle
	ShowFPS bool   `yaml:"show_fps"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:      800,
			Height:     600,
			Fullscreen: false,
			VSync:      true,
		},
		Camera: CameraConfig{
			Distance:  0.5,
			Azimuth:   0,
			Elevation: 0,
		},
		Scene: SceneConfig{
			Model:   "",
			ShowFPS: false,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
