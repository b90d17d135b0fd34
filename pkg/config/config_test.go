package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Rouzip/gopapi/pkg/papi"
	"github.com/google/go-cmp/cmp"
)

func TestDefault(t *testing.T) {
	c := Default()
	if err := c.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	v, err := c.PAPIVersion()
	if err != nil || v != papi.CurrentVersion {
		t.Errorf("PAPIVersion() = %s, %v, want %s", v, err, papi.CurrentVersion)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.yaml")
	doc := `
library: /opt/papi/lib/libpapi.so.5
version: "5.4"
interval: 15s
groups:
  - name: l1
    events: [PAPI_L1_DCM, PAPI_TOT_INS]
    size: 1M
    repeat: 3
  - name: cold
    events: [PAPI_TOT_CYC]
    size: 64k
    thrash: 32M
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	want := &Config{
		Library:  "/opt/papi/lib/libpapi.so.5",
		Version:  "5.4",
		Listen:   ":8080",
		Interval: 15 * time.Second,
		Groups: []Group{
			{Name: "l1", Events: []string{"PAPI_L1_DCM", "PAPI_TOT_INS"}, Size: "1M", Repeat: 3},
			{Name: "cold", Events: []string{"PAPI_TOT_CYC"}, Size: "64k", Thrash: "32M"},
		},
	}
	if diff := cmp.Diff(want, c); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}

	size, thrash, err := c.Groups[1].Sizes()
	if err != nil || size != 64<<10 || thrash != 32<<20 {
		t.Errorf("Sizes() = %d, %d, %v", size, thrash, err)
	}
	if c.Groups[1].Windows() != 1 || c.Groups[0].Windows() != 3 {
		t.Errorf("Windows() = %d, %d", c.Groups[0].Windows(), c.Groups[1].Windows())
	}
}

func TestParseKeepsDefaultGroups(t *testing.T) {
	c, err := Parse([]byte("listen: 127.0.0.1:9100\n"))
	if err != nil {
		t.Fatal(err)
	}
	if c.Listen != "127.0.0.1:9100" {
		t.Errorf("Listen = %q", c.Listen)
	}
	if diff := cmp.Diff(Default().Groups, c.Groups); diff != "" {
		t.Errorf("groups mismatch (-want +got):\n%s", diff)
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"syntax", "groups: [", "failed to parse config"},
		{"version", `version: "five"`, "invalid version"},
		{"interval", "interval: 0s", "interval must be positive"},
		{"no events", "groups: [{name: a, size: 1k}]", "at least one event"},
		{"duplicate", "groups: [{name: a, events: [X], size: 1k}, {name: a, events: [Y], size: 1k}]", "duplicate name"},
		{"size", "groups: [{name: a, events: [X], size: big}]", "invalid size"},
		{"zero size", "groups: [{name: a, events: [X], size: \"0\"}]", "size must be positive"},
		{"repeat", "groups: [{name: a, events: [X], size: 1k, repeat: -2}]", "repeat must not be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Parse() error = %v, want %q", err, tt.want)
			}
		})
	}
}
