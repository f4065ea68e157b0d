// Package config holds the testbed's YAML configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Window struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type Capture struct {
	// Path chooses the exporter: a video extension pipes frames to ffmpeg,
	// anything else is a PNG sequence directory. Empty disables capture.
	Path   string `yaml:"path"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	FPS    int    `yaml:"fps"`
}

type Config struct {
	Window      Window  `yaml:"window"`
	StartPaused bool    `yaml:"start_paused"`
	DebugDraw   bool    `yaml:"debug_draw"`
	Textured    bool    `yaml:"textured"`
	TimeStep    float64 `yaml:"time_step"`
	Zoom        float64 `yaml:"zoom"`
	Scene       string  `yaml:"scene"`
	Scenario    string  `yaml:"scenario"`
	Capture     Capture `yaml:"capture"`
}

func Default() Config {
	return Config{
		Window: Window{
			Width:  1280,
			Height: 720,
			Title:  "physbed",
		},
		DebugDraw: true,
		Textured:  true,
		TimeStep:  1.0 / 60,
		Zoom:      20,
	}
}

// Load reads path over the defaults. A missing file is not an error; the
// defaults are returned unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Capture.Width == 0 {
		cfg.Capture.Width = cfg.Window.Width
	}
	if cfg.Capture.Height == 0 {
		cfg.Capture.Height = cfg.Window.Height
	}
	if cfg.Capture.FPS == 0 {
		cfg.Capture.FPS = 60
	}
	return cfg, nil
}
