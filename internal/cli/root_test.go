package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/absorb/internal/config"
)

// runCLI runs the CLI in an isolated environment and returns stdout, stderr
// and the exit code.
func runCLI(t *testing.T, args ...string) (string, string, int) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	for _, env := range []string{
		config.EnvConfig, config.EnvCacheBackend, config.EnvCacheDir, config.EnvRedisURL,
		config.EnvXsect, config.EnvLogFile, config.EnvLogLevel, config.EnvResolution,
	} {
		t.Setenv(env, "")
	}

	var out, errOut bytes.Buffer
	old := stdout
	stdout = &out
	defer func() { stdout = old }()

	full := append([]string{"--env-file", filepath.Join(dir, "none.env")}, args...)
	code := run(context.Background(), full, &errOut)
	return out.String(), errOut.String(), code
}

func TestComputeJSON(t *testing.T) {
	out, errOut, code := runCLI(t, "compute", "-f", "YBa2Cu3O6.5", "--resolution", "20", "--json")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, errOut)
	}
	var res struct {
		Absorption struct {
			Requested struct {
				MuR      float64 `json:"mu_r"`
				Reliable bool    `json:"reliable"`
			} `json:"requested"`
		} `json:"absorption"`
	}
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if !(res.Absorption.Requested.MuR > 0) || !res.Absorption.Requested.Reliable {
		t.Errorf("requested = %+v, want positive reliable muR", res.Absorption.Requested)
	}
}

func TestComputeTable(t *testing.T) {
	out, errOut, code := runCLI(t, "compute", "Al2O3", "-d", "3.95", "--density-type", "RHO", "--resolution", "10")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, errOut)
	}
	for _, want := range []string{"Al2O3", "μR", "Element", "ideal:"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(out, iconFresh) {
		t.Errorf("output missing cache status:\n%s", out)
	}
}

func TestComputeErrorsVerbatim(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown element", []string{"compute", "-f", "Xx2O3"}, "INVALID_FORMULA"},
		{"spectrum out of range", []string{"compute", "-f", "Cu", "-s", "3.5"}, "INVALID_SPECTRUM_RANGE"},
		{"packing fraction", []string{"compute", "-f", "Cu", "-d", "1.5"}, "INVALID_DENSITY"},
		{"radius", []string{"compute", "-f", "Cu", "-r", "0"}, "INVALID_RADIUS"},
		{"beyond table", []string{"compute", "-f", "Es2O3"}, "UNSUPPORTED_ELEMENT"},
		{"energy without value", []string{"compute", "-f", "Cu", "--spectrum-type", "Energy"}, "requires --spectrum"},
		{"energy below range", []string{"compute", "-f", "Cu", "--spectrum-type", "Energy", "-s", "4.0"}, "INVALID_SPECTRUM_RANGE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errOut, code := runCLI(t, append(tt.args, "--no-cache")...)
			if code != 1 {
				t.Errorf("exit code = %d, want 1", code)
			}
			if !strings.Contains(errOut, tt.want) {
				t.Errorf("stderr = %q, want %s", errOut, tt.want)
			}
		})
	}
}

func TestComputeEnergyBound(t *testing.T) {
	_, errOut, code := runCLI(t, "compute", "-f", "SiO2", "--spectrum-type", "Energy", "-s", "4.13", "--resolution", "10", "--no-cache")
	if code != 0 {
		t.Errorf("exit code = %d at 4.13 keV, stderr: %s", code, errOut)
	}
}

func TestScanCSV(t *testing.T) {
	out, errOut, code := runCLI(t, "scan", "-f", "Cu", "--resolution", "12", "--csv", "--no-cache")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, errOut)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 13 {
		t.Errorf("csv lines = %d, want header + 12", len(lines))
	}
}

func TestScanTable(t *testing.T) {
	out, errOut, code := runCLI(t, "scan", "-f", "Cu", "--resolution", "40", "--points", "5", "--no-cache")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, errOut)
	}
	if !strings.Contains(out, "λ (Å)") {
		t.Errorf("output missing curve table:\n%s", out)
	}
}

func TestExport(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "cu.json")
	csvPath := filepath.Join(dir, "cu.csv")
	_, errOut, code := runCLI(t, "export", "-f", "Cu", "--resolution", "10", "-o", jsonPath, "-o", csvPath, "--no-cache")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, errOut)
	}
	for _, p := range []string{jsonPath, csvPath} {
		if info, err := os.Stat(p); err != nil || info.Size() == 0 {
			t.Errorf("%s missing or empty: %v", p, err)
		}
	}
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	_, errOut, code := runCLI(t, "export", "-f", "Cu", "-o", filepath.Join(t.TempDir(), "cu.svg"))
	if code != 1 || !strings.Contains(errOut, "INVALID_INPUT") {
		t.Errorf("exit = %d, stderr = %q, want INVALID_INPUT", code, errOut)
	}
}

func TestElements(t *testing.T) {
	out, errOut, code := runCLI(t, "elements", "--heavy")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, errOut)
	}
	if !strings.Contains(out, "Au") || !strings.Contains(out, "Cf") {
		t.Errorf("heavy elements missing:\n%s", out)
	}
	if strings.Contains(out, " Cu ") {
		t.Errorf("--heavy should omit Cu:\n%s", out)
	}
}

func TestCachePath(t *testing.T) {
	out, _, code := runCLI(t, "cache", "path")
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if got := strings.TrimSpace(out); !strings.HasSuffix(got, filepath.Join("cache", appName)) {
		t.Errorf("cache path = %q, want .../cache/%s", got, appName)
	}
}

func TestCacheClearEmpty(t *testing.T) {
	out, _, code := runCLI(t, "cache", "clear")
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(out, "empty") && !strings.Contains(out, "Cleared") {
		t.Errorf("output = %q", out)
	}
}

func TestCompletion(t *testing.T) {
	out, _, code := runCLI(t, "completion", "bash")
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(out, "absorb") {
		t.Error("bash completion should mention the command name")
	}
}

func TestCompletionHelp(t *testing.T) {
	out, _, code := runCLI(t, "completion", "--help")
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(out, "absorb completion zsh") {
		t.Errorf("help missing install example:\n%s", out)
	}
}

func TestInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[cache]\nbackend = \"memcached\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, errOut, code := runCLI(t, "--config", path, "compute", "-f", "Cu")
	if code != 1 || !strings.Contains(errOut, "unknown cache backend") {
		t.Errorf("exit = %d, stderr = %q", code, errOut)
	}
}
