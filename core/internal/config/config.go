package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// DefaultFile is looked up in the project root when no --config is given.
const DefaultFile = "work-manifest.yaml"

// Config holds the scanner layout. Every field has a baked-in default, so the
// tool runs without a config file.
type Config struct {
	// ProjectRoot is the directory emitted paths are relative to. Set by the CLI.
	ProjectRoot string `yaml:"-"`

	// RootDir is the scanned asset folder, relative to ProjectRoot.
	RootDir string `yaml:"root_dir"`
	// OutputFile is the manifest file name, relative to RootDir.
	OutputFile string `yaml:"output_file"`

	DisplayImageDir string `yaml:"display_image_dir"`
	RenderImageDir  string `yaml:"render_image_dir"`
	ModelDir        string `yaml:"model_dir"`

	ImageExtensions []string `yaml:"image_extensions"`
	ModelExtensions []string `yaml:"model_extensions"`

	// MaxDepth bounds the recursive model search.
	MaxDepth int `yaml:"max_depth"`

	LogLevel      string `yaml:"log_level"`
	WatchDebounce string `yaml:"watch_debounce"` // e.g. "500ms"
}

func Default() Config {
	return Config{
		ProjectRoot:     ".",
		RootDir:         "WORK_DISPLAY",
		OutputFile:      "manifest.json",
		DisplayImageDir: "DISPLAY_IMAGE",
		RenderImageDir:  "RENDER_IMAGES",
		ModelDir:        "CAD_MODEL",
		ImageExtensions: []string{"jpg", "jpeg", "png", "gif", "webp"},
		ModelExtensions: []string{"gltf", "glb", "fbx"},
		MaxDepth:        6,
		LogLevel:        "info",
		WatchDebounce:   "500ms",
	}
}

// Load reads a YAML file over the defaults. Unknown keys are rejected. A
// missing file returns an error wrapping fs.ErrNotExist.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	for _, f := range []struct{ key, val string }{
		{"root_dir", c.RootDir},
		{"output_file", c.OutputFile},
		{"display_image_dir", c.DisplayImageDir},
		{"render_image_dir", c.RenderImageDir},
		{"model_dir", c.ModelDir},
	} {
		if strings.TrimSpace(f.val) == "" {
			errs = append(errs, fmt.Errorf("%s must not be empty", f.key))
		}
	}
	if len(c.ImageExtensions) == 0 {
		errs = append(errs, errors.New("image_extensions must not be empty"))
	}
	if len(c.ModelExtensions) == 0 {
		errs = append(errs, errors.New("model_extensions must not be empty"))
	}
	if c.MaxDepth < 0 {
		errs = append(errs, fmt.Errorf("max_depth must be >= 0, got %d", c.MaxDepth))
	}
	if c.LogLevel != "" {
		if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
			errs = append(errs, fmt.Errorf("log_level: %w", err))
		}
	}
	if _, err := c.Debounce(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Debounce parses WatchDebounce.
func (c Config) Debounce() (time.Duration, error) {
	d, err := time.ParseDuration(c.WatchDebounce)
	if err != nil {
		return 0, fmt.Errorf("watch_debounce: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("watch_debounce must be positive, got %s", d)
	}
	return d, nil
}

func (c Config) RootPath() string {
	return filepath.Join(c.ProjectRoot, c.RootDir)
}

func (c Config) OutputPath() string {
	return filepath.Join(c.RootPath(), c.OutputFile)
}
