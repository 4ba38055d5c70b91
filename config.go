package vista

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Default tuning values. Durations are in seconds, FOV angles in degrees.
const (
	DefaultZoomMin            = 30.0
	DefaultZoomMax            = 100.0
	DefaultZoomEase           = 0.1
	DefaultFOV                = 75.0
	DefaultTransitionDuration = 0.3
)

// Options is the construction-time configuration for an Engine.
// The zero value is not usable; start from DefaultOptions or LoadOptions and
// set Panoramas.
type Options struct {
	// Panoramas is the ordered panorama list. Display order = thumbnail order.
	// At least one entry is required; ids must be unique.
	Panoramas []Descriptor `yaml:"panoramas"`

	// ZoomMin and ZoomMax bound the camera field of view in degrees.
	ZoomMin float64 `yaml:"zoomMin"`
	ZoomMax float64 `yaml:"zoomMax"`

	// ZoomEase is the fraction of the remaining FOV distance covered each
	// tick, in (0, 1]. 1 snaps immediately.
	ZoomEase float64 `yaml:"zoomEase"`

	// FOV is the initial field of view in degrees, clamped to [ZoomMin, ZoomMax].
	FOV float64 `yaml:"fov"`

	// TransitionDuration is the crossfade length in seconds.
	TransitionDuration float64 `yaml:"transitionDuration"`

	// Thumbnails hides the built-in thumbnail strip when false.
	Thumbnails bool `yaml:"thumbnails"`

	// SnapshotDir is where Snapshot writes WebP captures. Defaults to
	// "snapshots" relative to the working directory.
	SnapshotDir string `yaml:"snapshotDir"`

	// Loader fetches and decodes a panorama source. Nil means the default
	// loader (local files and http/https URLs).
	Loader Loader `yaml:"-"`
}

// DefaultOptions returns an Options with all tuning fields set to their
// defaults and an empty panorama list.
func DefaultOptions() Options {
	return Options{
		ZoomMin:            DefaultZoomMin,
		ZoomMax:            DefaultZoomMax,
		ZoomEase:           DefaultZoomEase,
		FOV:                DefaultFOV,
		TransitionDuration: DefaultTransitionDuration,
		Thumbnails:         true,
		SnapshotDir:        "snapshots",
	}
}

// LoadOptions reads a YAML options file. Unset tuning fields fall back to
// their defaults; the panorama list comes from the file as-is.
func LoadOptions(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("vista: read options %s: %w", path, err)
	}
	return ParseOptions(data)
}

// ParseOptions parses YAML options data. See LoadOptions.
func ParseOptions(data []byte) (Options, error) {
	opts := DefaultOptions()
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return Options{}, fmt.Errorf("vista: parse options: %w", err)
	}
	return opts, nil
}

// validate checks the invariants New relies on.
func (o *Options) validate() error {
	if len(o.Panoramas) == 0 {
		return fmt.Errorf("vista: options: no panoramas configured")
	}
	seen := make(map[string]bool, len(o.Panoramas))
	for _, d := range o.Panoramas {
		if d.ID == "" {
			return fmt.Errorf("vista: options: panorama with empty id (source %q)", d.Source)
		}
		if seen[d.ID] {
			return fmt.Errorf("vista: options: duplicate panorama id %q", d.ID)
		}
		seen[d.ID] = true
	}
	if o.ZoomMin <= 0 || o.ZoomMax <= o.ZoomMin {
		return fmt.Errorf("vista: options: zoom range [%g, %g] is invalid", o.ZoomMin, o.ZoomMax)
	}
	if o.ZoomEase <= 0 || o.ZoomEase > 1 {
		return fmt.Errorf("vista: options: zoom ease %g outside (0, 1]", o.ZoomEase)
	}
	if o.TransitionDuration <= 0 {
		return fmt.Errorf("vista: options: transition duration %g must be positive", o.TransitionDuration)
	}
	return nil
}
