package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Default("/data")
	if cfg.Storage != "sqlite" || cfg.DBPath != filepath.Join("/data", "tasklist.db") {
		t.Fatalf("unexpected storage defaults: %+v", cfg)
	}
	if cfg.Key != "todos" || cfg.Filter != "all" {
		t.Fatalf("unexpected key/filter defaults: %+v", cfg)
	}
	if !cfg.Mouse || !cfg.AltScreen {
		t.Fatalf("expected mouse and alt screen on: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("TASKLIST_STORAGE", "FILE")
	t.Setenv("TASKLIST_DATA_DIR", "state")
	t.Setenv("TASKLIST_KEY", "work")
	t.Setenv("TASKLIST_FILTER", "completed")
	t.Setenv("TASKLIST_LOG_LEVEL", "debug")
	t.Setenv("TASKLIST_MOUSE", "off")
	t.Setenv("TASKLIST_ALT_SCREEN", "maybe")

	cfg := FromEnv(Default("/data"))
	if cfg.Storage != "file" || cfg.DataDir != "state" || cfg.StorageLocation() != "state" {
		t.Fatalf("unexpected storage overrides: %+v", cfg)
	}
	if cfg.Key != "work" || cfg.Filter != "completed" || cfg.LogLevel != "debug" {
		t.Fatalf("unexpected overrides: %+v", cfg)
	}
	if cfg.Mouse {
		t.Fatal("expected mouse disabled from env")
	}
	if !cfg.AltScreen {
		t.Fatal("unparseable bool should keep the base value")
	}
}

func TestLoadFileOverlaysBase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasklist.yaml")
	body := "storage: file\nfilter: uncompleted\nmouse: false\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadFile(Default("/data"), path)
	if err != nil {
		t.Fatalf("load file: %v", err)
	}
	if cfg.Storage != "file" || cfg.Filter != "uncompleted" || cfg.Mouse {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.Key != "todos" || cfg.DataDir != "/data" {
		t.Fatalf("base values lost: %+v", cfg)
	}
}

func TestPrecedenceFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasklist.yaml")
	if err := os.WriteFile(path, []byte("key: from-file\nfilter: completed\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("TASKLIST_KEY", "from-env")

	cfg, err := LoadFile(Default("/data"), path)
	if err != nil {
		t.Fatalf("load file: %v", err)
	}
	cfg = FromEnv(cfg)
	if cfg.Key != "from-env" || cfg.Filter != "completed" {
		t.Fatalf("unexpected precedence result: %+v", cfg)
	}
}

func TestLoadFileErrors(t *testing.T) {
	if _, err := LoadFile(Default("/data"), filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("storage: [unterminated"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadFile(Default("/data"), path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadFileTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	body := "storage = \"file\"\nkey = \"work\"\nalt_screen = false\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if got := FindFile(dir); got != path {
		t.Fatalf("expected FindFile to return %s, got %q", path, got)
	}
	cfg, err := LoadFile(Default("/data"), path)
	if err != nil {
		t.Fatalf("load toml: %v", err)
	}
	if cfg.Storage != "file" || cfg.Key != "work" || cfg.AltScreen {
		t.Fatalf("toml values not applied: %+v", cfg)
	}
	if cfg.Filter != "all" || !cfg.Mouse {
		t.Fatalf("base values lost: %+v", cfg)
	}
}

func TestFindFilePrefersYAML(t *testing.T) {
	dir := t.TempDir()
	if FindFile(dir) != "" {
		t.Fatal("expected no config file in empty dir")
	}
	for _, name := range []string{"config.toml", "config.yaml"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if got := FindFile(dir); filepath.Base(got) != "config.yaml" {
		t.Fatalf("expected config.yaml first, got %q", got)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	if err := LoadDotEnv(dir); err != nil {
		t.Fatalf("missing .env should be ignored: %v", err)
	}

	body := "TASKLIST_KEY=from-dotenv\nTASKLIST_FILTER=uncompleted\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(body), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Setenv("TASKLIST_KEY", "from-env")
	t.Setenv("TASKLIST_FILTER", "")
	os.Unsetenv("TASKLIST_FILTER")

	if err := LoadDotEnv(dir); err != nil {
		t.Fatalf("load .env: %v", err)
	}
	cfg := FromEnv(Default("/data"))
	if cfg.Key != "from-env" {
		t.Fatalf("existing variable should win over .env, got %q", cfg.Key)
	}
	if cfg.Filter != "uncompleted" {
		t.Fatalf("expected filter from .env, got %q", cfg.Filter)
	}
}

func TestValidate(t *testing.T) {
	cases := []Config{
		func() Config { c := Default("/d"); c.Storage = "redis"; return c }(),
		func() Config { c := Default("/d"); c.DBPath = ""; return c }(),
		func() Config { c := Default("/d"); c.Storage = "file"; c.DataDir = " "; return c }(),
		func() Config { c := Default("/d"); c.Key = ""; return c }(),
		func() Config { c := Default("/d"); c.Filter = "done"; return c }(),
	}
	for i, c := range cases {
		if err := c.Validate(); err == nil {
			t.Fatalf("case %d: expected validation error for %+v", i, c)
		}
	}
}
