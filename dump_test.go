package imageconf

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

func dumpFixture(t *testing.T) *Config {
	t.Helper()
	cfg := New()
	err := cfg.ReadString(`[build]
product = eos
arch = amd64

[image]
name = ${build:product}-${build:arch}
packages = chromium
  vlc
`, "defaults.ini")
	if err != nil {
		t.Fatalf("ReadString failed: %v", err)
	}
	return cfg
}

func TestDump_DefaultMatchesWriteTo(t *testing.T) {
	cfg := dumpFixture(t)

	var buf bytes.Buffer
	if err := Dump(&buf, cfg); err != nil {
		t.Fatalf("Dump failed: %v", err)
	}
	if got, want := buf.String(), cfg.String(); got != want {
		t.Errorf("Dump() = %q, want %q", got, want)
	}
}

func TestDump_Resolved(t *testing.T) {
	cfg := dumpFixture(t)

	var buf bytes.Buffer
	if err := Dump(&buf, cfg, Resolved()); err != nil {
		t.Fatalf("Dump failed: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "name = eos-amd64\n") {
		t.Errorf("Expected resolved name, got: %s", output)
	}
	if strings.Contains(output, "${") {
		t.Errorf("Expected no references in resolved output, got: %s", output)
	}

	// Dump never writes back into the store.
	raw, err := cfg.GetRaw("image", "name")
	if err != nil {
		t.Fatalf("GetRaw failed: %v", err)
	}
	if raw != "${build:product}-${build:arch}" {
		t.Errorf("store was modified: %q", raw)
	}
}

func TestDump_ResolvedError(t *testing.T) {
	cfg := dumpFixture(t)
	if err := cfg.Set("image", "broken", "${missing}"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	var buf bytes.Buffer
	err := Dump(&buf, cfg, Resolved())
	var ie *InterpolationError
	if !errors.As(err, &ie) {
		t.Fatalf("expected *InterpolationError, got %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output on error, got: %s", buf.String())
	}
}

func TestDump_WithSources(t *testing.T) {
	cfg := dumpFixture(t)
	if err := cfg.Set("build", "arch", "arm64"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	var buf bytes.Buffer
	if err := Dump(&buf, cfg, WithSources()); err != nil {
		t.Fatalf("Dump failed: %v", err)
	}

	want := `[build]
# source: defaults.ini
product = eos
# source: set
arch = arm64

[image]
# source: defaults.ini
name = ${build:product}-${build:arch}
# source: defaults.ini
packages = chromium
	vlc

`
	if got := buf.String(); got != want {
		t.Errorf("Dump(WithSources())\ngot:  %q\nwant: %q", got, want)
	}
}

func TestDump_JSON(t *testing.T) {
	cfg := dumpFixture(t)

	var buf bytes.Buffer
	if err := Dump(&buf, cfg, AsJSON(), Resolved()); err != nil {
		t.Fatalf("Dump failed: %v", err)
	}
	if !strings.HasSuffix(buf.String(), "\n") {
		t.Errorf("Expected trailing newline, got: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "\n  \"build\": {") {
		t.Errorf("Expected two-space indentation, got: %s", buf.String())
	}

	var got map[string]map[string]string
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("Invalid JSON output: %v", err)
	}
	if got["image"]["name"] != "eos-amd64" {
		t.Errorf("image.name = %q, want %q", got["image"]["name"], "eos-amd64")
	}
	if got["image"]["packages"] != "chromium\nvlc" {
		t.Errorf("image.packages = %q, want %q", got["image"]["packages"], "chromium\nvlc")
	}
}

func TestDump_JSONCompact(t *testing.T) {
	cfg := dumpFixture(t)

	var buf bytes.Buffer
	if err := Dump(&buf, cfg, AsJSON(), WithIndent("")); err != nil {
		t.Fatalf("Dump failed: %v", err)
	}
	if n := strings.Count(buf.String(), "\n"); n != 1 {
		t.Errorf("Expected single-line JSON, got %d newlines: %s", n, buf.String())
	}
}

func TestDump_TOML(t *testing.T) {
	cfg := dumpFixture(t)

	var buf bytes.Buffer
	if err := Dump(&buf, cfg, AsTOML()); err != nil {
		t.Fatalf("Dump failed: %v", err)
	}

	var got map[string]map[string]string
	if err := toml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("Invalid TOML output: %v\n%s", err, buf.String())
	}
	if got["build"]["arch"] != "amd64" {
		t.Errorf("build.arch = %q, want %q", got["build"]["arch"], "amd64")
	}
	if got["image"]["name"] != "${build:product}-${build:arch}" {
		t.Errorf("image.name = %q, want the raw reference", got["image"]["name"])
	}
	if got["image"]["packages"] != "chromium\nvlc" {
		t.Errorf("image.packages = %q, want %q", got["image"]["packages"], "chromium\nvlc")
	}
}

func TestDump_YAML(t *testing.T) {
	cfg := dumpFixture(t)

	var buf bytes.Buffer
	if err := Dump(&buf, cfg, WithFormat("YAML")); err != nil {
		t.Fatalf("Dump failed: %v", err)
	}
	output := buf.String()

	// Section order follows the store, not alphabetical order.
	if strings.Index(output, "build:") > strings.Index(output, "image:") {
		t.Errorf("Expected build before image, got: %s", output)
	}
	if !strings.Contains(output, "packages: |") {
		t.Errorf("Expected literal block for multi-line value, got: %s", output)
	}

	var got map[string]map[string]string
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("Invalid YAML output: %v\n%s", err, output)
	}
	if got["image"]["packages"] != "chromium\nvlc" {
		t.Errorf("image.packages = %q, want %q", got["image"]["packages"], "chromium\nvlc")
	}
	if got["build"]["product"] != "eos" {
		t.Errorf("build.product = %q, want %q", got["build"]["product"], "eos")
	}
}

func TestDump_Errors(t *testing.T) {
	var buf bytes.Buffer

	if err := Dump(&buf, nil); err == nil {
		t.Error("Expected error for nil config")
	}

	err := Dump(&buf, New(), WithFormat("xml"))
	if err == nil || !strings.Contains(err.Error(), "unsupported dump format: xml") {
		t.Errorf("Expected unsupported format error, got: %v", err)
	}
}
