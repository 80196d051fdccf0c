package main

import (
	"flag"
	"io"
	"path/filepath"
	"testing"
	"time"
)

func newTestFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("persona-generator", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func TestParseFlags_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := parseFlags(newTestFlagSet(), []string{"-posts", "posts.csv", "-out", "run1"})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if cfg.Model != "gpt-5-nano" {
		t.Fatalf("Model=%q", cfg.Model)
	}
	if cfg.MixedTarget != 30 || cfg.CommunityTarget != 20 || cfg.IndividualTarget != 25 || cfg.LengthTarget != 15 {
		t.Fatalf("targets=%d/%d/%d/%d", cfg.MixedTarget, cfg.CommunityTarget, cfg.IndividualTarget, cfg.LengthTarget)
	}
	if cfg.Delay != 2*time.Second {
		t.Fatalf("Delay=%v", cfg.Delay)
	}
	if cfg.ProfilesPath != filepath.Join("run1", "all_personalities.jsonl") {
		t.Fatalf("ProfilesPath=%q", cfg.ProfilesPath)
	}
	if cfg.BrowserPath != filepath.Join("run1", "personality_browser.csv") {
		t.Fatalf("BrowserPath=%q", cfg.BrowserPath)
	}
	if cfg.SummaryPath != filepath.Join("run1", "generation_summary.txt") {
		t.Fatalf("SummaryPath=%q", cfg.SummaryPath)
	}
	if cfg.SchemaPath != filepath.Join("run1", "profiles.schema.json") {
		t.Fatalf("SchemaPath=%q", cfg.SchemaPath)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestParseFlags_Overrides(t *testing.T) {
	t.Parallel()

	cfg, err := parseFlags(newTestFlagSet(), []string{
		"-posts", "posts.csv",
		"-out", "run2",
		"-model", "gpt-5-mini",
		"-mixed", "5",
		"-individual", "0",
		"-min-individual-words", "300",
		"-max-output-tokens", "900",
		"-delay", "500ms",
		"-seed", "7",
		"-overwrite",
		"-profiles", "custom.jsonl",
	})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if cfg.Model != "gpt-5-mini" || cfg.MixedTarget != 5 || cfg.IndividualTarget != 0 {
		t.Fatalf("cfg=%+v", cfg)
	}
	if cfg.IndividualMinWords != 300 || cfg.MaxOutputTokens != 900 {
		t.Fatalf("cfg=%+v", cfg)
	}
	if cfg.Delay != 500*time.Millisecond || cfg.Seed != 7 || !cfg.Overwrite {
		t.Fatalf("cfg=%+v", cfg)
	}
	if cfg.ProfilesPath != "custom.jsonl" {
		t.Fatalf("ProfilesPath=%q", cfg.ProfilesPath)
	}
	// Unset output paths still derive from -out.
	if cfg.BrowserPath != filepath.Join("run2", "personality_browser.csv") {
		t.Fatalf("BrowserPath=%q", cfg.BrowserPath)
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	valid := defaultConfig()
	valid.PostsPath = "posts.csv"
	valid.OutDir = "."
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing posts", func(c *Config) { c.PostsPath = "" }},
		{"missing model", func(c *Config) { c.Model = "" }},
		{"negative target", func(c *Config) { c.MixedTarget = -1 }},
		{"zero min community posts", func(c *Config) { c.CommunityMinPosts = 0 }},
		{"negative min individual words", func(c *Config) { c.IndividualMinWords = -1 }},
		{"zero post chars", func(c *Config) { c.MaxPostChars = 0 }},
		{"zero output tokens", func(c *Config) { c.MaxOutputTokens = 0 }},
		{"negative delay", func(c *Config) { c.Delay = -time.Second }},
	}
	for _, tc := range cases {
		c := valid
		tc.mutate(&c)
		if err := c.Validate(); err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
}
