package main

import (
	"flag"
	"io"
	"path/filepath"
	"testing"
)

func newTestFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("corpus-parser", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func TestParseFlags_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := parseFlags(newTestFlagSet(), []string{"-in", "corpus.txt"})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if cfg.InPath != "corpus.txt" {
		t.Fatalf("InPath=%q", cfg.InPath)
	}
	if cfg.Separator != "[SEP]" {
		t.Fatalf("Separator=%q", cfg.Separator)
	}
	if cfg.PostsPath != filepath.Join(".", "reddit_posts_clean.csv") {
		t.Fatalf("PostsPath=%q", cfg.PostsPath)
	}
	if cfg.SectionsPath != filepath.Join(".", "reddit_sections_clean.csv") {
		t.Fatalf("SectionsPath=%q", cfg.SectionsPath)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestParseFlags_Overrides(t *testing.T) {
	t.Parallel()

	cfg, err := parseFlags(newTestFlagSet(), []string{
		"-in", "corpus.txt",
		"-out", "data",
		"-posts", "p.csv",
		"-sep", "<sec>",
		"-sample", "3",
	})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if cfg.OutDir != "data" || cfg.PostsPath != "p.csv" || cfg.Separator != "<sec>" || cfg.Sample != 3 {
		t.Fatalf("cfg=%+v", cfg)
	}
	if cfg.SectionsPath != filepath.Join("data", "reddit_sections_clean.csv") {
		t.Fatalf("SectionsPath=%q", cfg.SectionsPath)
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	valid := Config{InPath: "corpus.txt", OutDir: ".", Separator: "[SEP]"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing in", func(c *Config) { c.InPath = "" }},
		{"missing out", func(c *Config) { c.OutDir = "" }},
		{"empty separator", func(c *Config) { c.Separator = "" }},
		{"negative sample", func(c *Config) { c.Sample = -1 }},
	}
	for _, tc := range cases {
		c := valid
		tc.mutate(&c)
		if err := c.Validate(); err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
}
