package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"verdant/internal/config"
	"verdant/internal/trace"
)

func writeFile(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, config.FileName)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestLoadKeepsDefaults(t *testing.T) {
	path := writeFile(t, t.TempDir(), "[parse]\njobs = 4\n")
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Parse.Jobs != 4 {
		t.Fatalf("jobs = %d", cfg.Parse.Jobs)
	}
	if !cfg.Cache.Enabled || cfg.Cache.Size != 1<<16 {
		t.Fatalf("cache defaults lost: %+v", cfg.Cache)
	}
	if cfg.Trace.Level != "off" || cfg.Path != path {
		t.Fatalf("unexpected %+v", cfg)
	}
}

func TestLoadFullFile(t *testing.T) {
	body := `
[cache]
enabled = false
size = 1024

[parse]
disk_cache = true
visit_structured_trivia = true

[trace]
level = "detail"
output = "trace.ndjson"
mode = "both"
`
	cfg, err := config.Load(writeFile(t, t.TempDir(), body))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Cache.Enabled || cfg.Cache.Size != 1024 || !cfg.Parse.DiskCache || !cfg.Parse.VisitStructuredTrivia {
		t.Fatalf("unexpected %+v", cfg)
	}
	tc, err := cfg.TraceSettings()
	if err != nil {
		t.Fatalf("trace settings: %v", err)
	}
	if tc.Level != trace.LevelDetail || tc.Mode != trace.ModeBoth || tc.OutputPath != "trace.ndjson" {
		t.Fatalf("unexpected trace config %+v", tc)
	}
}

func TestLoadRejects(t *testing.T) {
	for _, body := range []string{
		"[cache]\nsize = -1\n",
		"[trace]\nlevel = \"loud\"\n",
		"[trace]\nmode = \"sideways\"\n",
		"[parse]\nthreads = 2\n",
	} {
		_, err := config.Load(writeFile(t, t.TempDir(), body))
		if !errors.Is(err, config.ErrInvalid) {
			t.Fatalf("%q: expected ErrInvalid, got %v", body, err)
		}
	}
	if _, err := config.Load(writeFile(t, t.TempDir(), "[cache\n")); err == nil {
		t.Fatalf("expected a parse error")
	}
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	want := writeFile(t, root, "")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	got, ok, err := config.Find(nested)
	if err != nil || !ok {
		t.Fatalf("find: ok=%v err=%v", ok, err)
	}
	wantAbs, _ := filepath.Abs(want)
	if got != wantAbs {
		t.Fatalf("found %q, want %q", got, wantAbs)
	}
	cfg, err := config.Discover(nested)
	if err != nil || cfg.Path != got {
		t.Fatalf("discover: %+v %v", cfg, err)
	}
}

func TestDiscoverWithoutFile(t *testing.T) {
	dir := t.TempDir()
	if _, ok, _ := config.Find(dir); ok {
		t.Skip("a verdant.toml exists above the temp dir")
	}
	cfg, err := config.Discover(dir)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if cfg.Path != "" || !cfg.Cache.Enabled {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}
