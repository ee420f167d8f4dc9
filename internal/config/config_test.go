package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Width != 80 {
		t.Errorf("width=%d, want 80", cfg.Width)
	}
	if cfg.ChunkSize != 64 {
		t.Errorf("chunk_size=%d, want 64", cfg.ChunkSize)
	}
	if cfg.Format != "text" {
		t.Errorf("format=%q, want text", cfg.Format)
	}
	if cfg.Highlight.Style != "monokai" {
		t.Errorf("highlight.style=%q, want monokai", cfg.Highlight.Style)
	}
	if len(cfg.Mermaid.ExtraKeywords) != 0 {
		t.Errorf("extra keywords=%v, want none", cfg.Mermaid.ExtraKeywords)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("STREAMMD_WIDTH", "120")
	t.Setenv("STREAMMD_FORMAT", "json")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Width != 120 {
		t.Errorf("width=%d, want 120", cfg.Width)
	}
	if cfg.Format != "json" {
		t.Errorf("format=%q, want json", cfg.Format)
	}
}

func TestValidate(t *testing.T) {
	good := &Config{Width: 80, ChunkSize: 64, Format: "yaml"}
	if err := good.Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}
	bad := &Config{Width: 80, ChunkSize: 64, Format: "xml"}
	if err := bad.Validate(); err == nil {
		t.Error("unknown format accepted")
	}
	negative := &Config{Width: -1, Format: "text"}
	if err := negative.Validate(); err == nil {
		t.Error("negative width accepted")
	}
}
