package main

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
)

type Config struct {
	InPath       string
	OutDir       string
	PostsPath    string
	SectionsPath string
	Separator    string
	Sample       int
}

func (c Config) Validate() error {
	if c.InPath == "" {
		return errors.New("missing -in")
	}
	if c.OutDir == "" {
		return errors.New("missing -out")
	}
	if c.Separator == "" {
		return errors.New("-sep must not be empty")
	}
	if c.Sample < 0 {
		return errors.New("sample must be >= 0")
	}
	return nil
}

func defaultConfig() Config {
	return Config{
		OutDir:    ".",
		Separator: "[SEP]",
		Sample:    0,
	}
}

func parseFlags(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := defaultConfig()
	fs.SetOutput(os.Stderr)

	fs.StringVar(&cfg.InPath, "in", cfg.InPath, "Path to the annotated CoNLL-format corpus file")
	fs.StringVar(&cfg.OutDir, "out", cfg.OutDir, "Output directory for the post and section tables")
	fs.StringVar(&cfg.PostsPath, "posts", "", "Optional path for the post table (default: <out>/reddit_posts_clean.csv)")
	fs.StringVar(&cfg.SectionsPath, "sections", "", "Optional path for the section table (default: <out>/reddit_sections_clean.csv)")
	fs.StringVar(&cfg.Separator, "sep", cfg.Separator, "Section separator literal")
	fs.IntVar(&cfg.Sample, "sample", cfg.Sample, "Print a text preview of the first N parsed posts (0 disables)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg.InPath = filepath.Clean(cfg.InPath)
	cfg.OutDir = filepath.Clean(cfg.OutDir)
	if cfg.PostsPath == "" {
		cfg.PostsPath = filepath.Join(cfg.OutDir, "reddit_posts_clean.csv")
	}
	if cfg.SectionsPath == "" {
		cfg.SectionsPath = filepath.Join(cfg.OutDir, "reddit_sections_clean.csv")
	}
	return cfg, nil
}
