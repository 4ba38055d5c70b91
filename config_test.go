package vista

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseOptionsDefaults(t *testing.T) {
	opts, err := ParseOptions([]byte(`
panoramas:
  - id: plaza
    source: assets/plaza.jpg
  - id: rooftop
    source: assets/rooftop.jpg
`))
	if err != nil {
		t.Fatalf("ParseOptions: %v", err)
	}
	if len(opts.Panoramas) != 2 || opts.Panoramas[0].ID != "plaza" {
		t.Errorf("panoramas = %+v", opts.Panoramas)
	}
	if opts.ZoomMin != DefaultZoomMin || opts.ZoomMax != DefaultZoomMax {
		t.Errorf("zoom range = [%g, %g], want defaults", opts.ZoomMin, opts.ZoomMax)
	}
	if opts.TransitionDuration != DefaultTransitionDuration {
		t.Errorf("duration = %g, want default", opts.TransitionDuration)
	}
	if !opts.Thumbnails {
		t.Error("thumbnails default = false, want true")
	}
	if err := opts.validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestParseOptionsOverrides(t *testing.T) {
	opts, err := ParseOptions([]byte(`
panoramas:
  - id: one
    source: one.png
zoomMin: 20
zoomMax: 90
zoomEase: 0.25
fov: 60
transitionDuration: 0.5
thumbnails: false
snapshotDir: captures
`))
	if err != nil {
		t.Fatalf("ParseOptions: %v", err)
	}
	if opts.ZoomMin != 20 || opts.ZoomMax != 90 || opts.ZoomEase != 0.25 {
		t.Errorf("zoom settings = %g/%g/%g", opts.ZoomMin, opts.ZoomMax, opts.ZoomEase)
	}
	if opts.FOV != 60 || opts.TransitionDuration != 0.5 {
		t.Errorf("fov/duration = %g/%g", opts.FOV, opts.TransitionDuration)
	}
	if opts.Thumbnails {
		t.Error("thumbnails not overridden to false")
	}
	if opts.SnapshotDir != "captures" {
		t.Errorf("snapshotDir = %q", opts.SnapshotDir)
	}
}

func TestParseOptionsBadYAML(t *testing.T) {
	if _, err := ParseOptions([]byte("panoramas: [")); err == nil {
		t.Error("malformed YAML did not error")
	}
}

func TestLoadOptionsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tour.yaml")
	data := "panoramas:\n  - id: a\n    source: a.jpg\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	opts, err := LoadOptions(path)
	if err != nil {
		t.Fatalf("LoadOptions: %v", err)
	}
	if len(opts.Panoramas) != 1 {
		t.Errorf("panoramas = %+v", opts.Panoramas)
	}

	if _, err := LoadOptions(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file did not error")
	}
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Options)
		want   string
	}{
		{"empty list", func(o *Options) { o.Panoramas = nil }, "no panoramas"},
		{"empty id", func(o *Options) { o.Panoramas[0].ID = "" }, "empty id"},
		{"duplicate id", func(o *Options) { o.Panoramas[1].ID = "a" }, "duplicate"},
		{"inverted zoom range", func(o *Options) { o.ZoomMax = o.ZoomMin - 1 }, "zoom range"},
		{"zero ease", func(o *Options) { o.ZoomEase = 0 }, "ease"},
		{"ease above one", func(o *Options) { o.ZoomEase = 1.5 }, "ease"},
		{"zero duration", func(o *Options) { o.TransitionDuration = 0 }, "duration"},
	}
	for _, tc := range cases {
		opts := DefaultOptions()
		opts.Panoramas = testDescriptors()
		tc.mutate(&opts)
		err := opts.validate()
		if err == nil {
			t.Errorf("%s: validate passed", tc.name)
			continue
		}
		if !strings.Contains(err.Error(), tc.want) {
			t.Errorf("%s: error %q does not mention %q", tc.name, err, tc.want)
		}
	}
}
