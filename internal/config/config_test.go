package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/absorb/pkg/density"
	"github.com/matzehuels/absorb/pkg/pipeline"
	"github.com/matzehuels/absorb/pkg/spectrum"
)

// isolate points every lookup location at a fresh temp dir and clears overrides.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	for _, k := range []string{EnvConfig, EnvCacheBackend, EnvCacheDir, EnvRedisURL, EnvXsect, EnvLogFile, EnvLogLevel, EnvResolution} {
		t.Setenv(k, "")
	}
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDefault(t *testing.T) {
	dir := isolate(t)
	cfg := Default()

	want := Defaults{
		Radius:       pipeline.DefaultRadius,
		Spectrum:     pipeline.DefaultSpectrum,
		SpectrumType: "Wavelength",
		Density:      pipeline.DefaultDensity,
		DensityType:  "PackedFraction",
		Resolution:   pipeline.DefaultResolution,
	}
	if diff := cmp.Diff(want, cfg.Defaults); diff != "" {
		t.Errorf("Defaults mismatch (-want +got):\n%s", diff)
	}
	if cfg.Cache.Backend != "file" {
		t.Errorf("Cache.Backend = %q, want file", cfg.Cache.Backend)
	}
	if got, want := cfg.Cache.Dir, filepath.Join(dir, "cache", AppName); got != want {
		t.Errorf("Cache.Dir = %q, want %q", got, want)
	}
	if cfg.Cache.TTL.Duration != 24*time.Hour {
		t.Errorf("Cache.TTL = %v, want 24h", cfg.Cache.TTL)
	}
}

func TestLoadMissingDefaultFile(t *testing.T) {
	isolate(t)
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("Load() without a file should equal Default() (-want +got):\n%s", diff)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	dir := isolate(t)
	if _, err := Load(filepath.Join(dir, "nope.toml")); err == nil {
		t.Error("Load(missing explicit path) should fail")
	}
}

func TestLoadFile(t *testing.T) {
	dir := isolate(t)
	path, _ := DefaultPath()
	writeFile(t, path, `
[defaults]
radius = 0.25
spectrum = 17.48
spectrum_type = "Energy"
density = 6.38
density_type = "RHO"

[tables]
xsect = "/data/Xsect.dat"

[cache]
backend = "redis"
redis_url = "redis://localhost:6379/1"
ttl = "2h"

[log]
file = "`+filepath.Join(dir, "absorb.log")+`"
level = "debug"
`)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := Defaults{
		Radius:       0.25,
		Spectrum:     17.48,
		SpectrumType: "Energy",
		Density:      6.38,
		DensityType:  "RHO",
		Resolution:   pipeline.DefaultResolution,
	}
	if diff := cmp.Diff(want, cfg.Defaults); diff != "" {
		t.Errorf("Defaults mismatch (-want +got):\n%s", diff)
	}
	if cfg.Tables.Xsect != "/data/Xsect.dat" {
		t.Errorf("Tables.Xsect = %q", cfg.Tables.Xsect)
	}
	if cfg.Cache.Backend != "redis" || cfg.Cache.RedisURL != "redis://localhost:6379/1" {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if cfg.Cache.TTL.Duration != 2*time.Hour {
		t.Errorf("Cache.TTL = %v, want 2h", cfg.Cache.TTL)
	}
	if cfg.Log.Level != "debug" || cfg.Log.MaxBackups != 3 {
		t.Errorf("Log = %+v", cfg.Log)
	}

	req := cfg.Request("Cu")
	if req.SpectrumType != spectrum.Energy || req.DensityType != density.Measured {
		t.Errorf("Request() types = %q/%q, want Energy/RHO", req.SpectrumType, req.DensityType)
	}
	if err := req.ValidateAndSetDefaults(); err != nil {
		t.Errorf("Request().ValidateAndSetDefaults() error = %v", err)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.toml")
	writeFile(t, path, "[cache]\nbackend = \"file\"\n")

	t.Setenv(EnvCacheBackend, "none")
	t.Setenv(EnvXsect, "/env/Xsect.dat")
	t.Setenv(EnvResolution, "64")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Cache.Backend != "none" {
		t.Errorf("Cache.Backend = %q, want none", cfg.Cache.Backend)
	}
	if cfg.Tables.Xsect != "/env/Xsect.dat" {
		t.Errorf("Tables.Xsect = %q", cfg.Tables.Xsect)
	}
	if cfg.Defaults.Resolution != 64 {
		t.Errorf("Defaults.Resolution = %d, want 64", cfg.Defaults.Resolution)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     map[string]string
	}{
		{"bad toml", "[cache\nbackend=", nil},
		{"bad backend", "[cache]\nbackend = \"memcached\"\n", nil},
		{"bad level", "[log]\nlevel = \"loud\"\n", nil},
		{"bad spectrum type", "[defaults]\nspectrum_type = \"frequency\"\n", nil},
		{"bad ttl", "[cache]\nttl = \"soon\"\n", nil},
		{"bad env resolution", "", map[string]string{EnvResolution: "many"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := filepath.Join(dir, "config.toml")
			writeFile(t, path, tt.content)
			if _, err := Load(path); err == nil {
				t.Error("Load() should fail")
			}
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, ".env")
	writeFile(t, path, "ABSORB_REDIS_URL=redis://cache:6379/0\n")
	os.Unsetenv(EnvRedisURL)

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv() error = %v", err)
	}
	if got := os.Getenv(EnvRedisURL); got != "redis://cache:6379/0" {
		t.Errorf("%s = %q after LoadDotEnv", EnvRedisURL, got)
	}
	if err := LoadDotEnv(filepath.Join(dir, "missing.env")); err != nil {
		t.Errorf("LoadDotEnv(missing) error = %v, want nil", err)
	}
}

func TestDefaultPathXDG(t *testing.T) {
	dir := isolate(t)
	got, err := DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath() error = %v", err)
	}
	if want := filepath.Join(dir, "config", AppName, "config.toml"); got != want {
		t.Errorf("DefaultPath() = %q, want %q", got, want)
	}
}

func TestCacheDirHome(t *testing.T) {
	isolate(t)
	t.Setenv("XDG_CACHE_HOME", "")
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir, err := CacheDir()
	if err != nil {
		t.Fatalf("CacheDir() error = %v", err)
	}
	if want := filepath.Join(home, ".cache", AppName); dir != want {
		t.Errorf("CacheDir() = %q, want %q", dir, want)
	}
}
