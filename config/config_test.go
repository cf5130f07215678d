package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/creastat/logmerge"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "logmerge.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
max_buffer: 16
log_level: debug
metrics:
  addr: ":9102"
output:
  kind: file
  path: /tmp/merged.jsonl
sources:
  - kind: file
    name: app
    path: /var/log/app.jsonl
  - kind: sql
    name: audit
    conn_string: postgres://localhost/logs
    table: audit_log
  - kind: pebble
    dir: /var/lib/logstore
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.MaxBuffer != 16 {
		t.Fatalf("max_buffer = %d, want 16", cfg.MaxBuffer)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("log_level = %q, want debug", cfg.LogLevel)
	}
	if cfg.Metrics.Addr != ":9102" {
		t.Fatalf("metrics.addr = %q", cfg.Metrics.Addr)
	}
	if cfg.Output.Kind != "file" || cfg.Output.Path != "/tmp/merged.jsonl" {
		t.Fatalf("output = %+v", cfg.Output)
	}
	if len(cfg.Sources) != 3 {
		t.Fatalf("parsed %d sources, want 3", len(cfg.Sources))
	}
	if cfg.Sources[1].Kind != "sql" || cfg.Sources[1].Table != "audit_log" {
		t.Fatalf("sources[1] = %+v", cfg.Sources[1])
	}
	// Unnamed sources get a kind-index name.
	if cfg.Sources[2].Name != "pebble-2" {
		t.Fatalf("sources[2].name = %q, want pebble-2", cfg.Sources[2].Name)
	}
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
sources:
  - kind: file
    path: /var/log/app.jsonl
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.MaxBuffer != logmerge.DefaultMaxBuffer {
		t.Fatalf("max_buffer = %d, want default %d", cfg.MaxBuffer, logmerge.DefaultMaxBuffer)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("log_level = %q, want info", cfg.LogLevel)
	}
	if cfg.Output.Kind != "stdout" {
		t.Fatalf("output.kind = %q, want stdout", cfg.Output.Kind)
	}
	if cfg.Sources[0].Name != "file-0" {
		t.Fatalf("sources[0].name = %q, want file-0", cfg.Sources[0].Name)
	}
}

func TestLoadValidation(t *testing.T) {
	cases := []struct {
		name    string
		content string
		errPart string
	}{
		{
			name:    "no sources",
			content: "log_level: info\n",
			errPart: "at least one source",
		},
		{
			name: "negative max buffer",
			content: `
max_buffer: -3
sources:
  - kind: file
    path: /var/log/app.jsonl
`,
			errPart: "max_buffer must be positive",
		},
		{
			name: "unknown output kind",
			content: `
output:
  kind: kafka
sources:
  - kind: file
    path: /var/log/app.jsonl
`,
			errPart: "unknown output kind",
		},
		{
			name: "file output without path",
			content: `
output:
  kind: file
sources:
  - kind: file
    path: /var/log/app.jsonl
`,
			errPart: "output.path is required",
		},
		{
			name: "sql source without table",
			content: `
sources:
  - kind: sql
    conn_string: postgres://localhost/logs
`,
			errPart: "table is required",
		},
		{
			name: "unknown source kind",
			content: `
sources:
  - kind: syslog
`,
			errPart: "unknown kind",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.content))
			if err == nil {
				t.Fatal("expected load to fail")
			}
			if !strings.Contains(err.Error(), tc.errPart) {
				t.Fatalf("error %q does not contain %q", err, tc.errPart)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected load to fail")
	}
}
