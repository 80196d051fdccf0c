package main

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"time"
)

type Config struct {
	PostsPath string
	OutDir    string
	Model     string
	APIKey    string

	ProfilesPath string
	BrowserPath  string
	SummaryPath  string
	SchemaPath   string

	MixedTarget      int
	CommunityTarget  int
	IndividualTarget int
	LengthTarget     int

	CommunityMinPosts  int
	IndividualMinWords int

	MaxPostChars    int
	MaxOutputTokens int
	Delay           time.Duration
	Seed            int64
	Overwrite       bool
}

func (c Config) Validate() error {
	if c.PostsPath == "" {
		return errors.New("missing -posts")
	}
	if c.OutDir == "" {
		return errors.New("missing -out")
	}
	if c.Model == "" {
		return errors.New("missing -model")
	}
	if c.MixedTarget < 0 || c.CommunityTarget < 0 || c.IndividualTarget < 0 || c.LengthTarget < 0 {
		return errors.New("strategy targets must be >= 0")
	}
	if c.CommunityMinPosts < 1 {
		return errors.New("min-community-posts must be >= 1")
	}
	if c.IndividualMinWords < 0 {
		return errors.New("min-individual-words must be >= 0")
	}
	if c.MaxPostChars <= 0 {
		return errors.New("max-post-chars must be > 0")
	}
	if c.MaxOutputTokens <= 0 {
		return errors.New("max-output-tokens must be > 0")
	}
	if c.Delay < 0 {
		return errors.New("delay must be >= 0")
	}
	return nil
}

func defaultConfig() Config {
	return Config{
		Model:              "gpt-5-nano",
		MixedTarget:        30,
		CommunityTarget:    20,
		IndividualTarget:   25,
		LengthTarget:       15,
		CommunityMinPosts:  2,
		IndividualMinWords: 200,
		MaxPostChars:       4000,
		MaxOutputTokens:    1500,
		Delay:              2 * time.Second,
		Seed:               1,
	}
}

func parseFlags(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := defaultConfig()
	fs.SetOutput(os.Stderr)

	fs.StringVar(&cfg.PostsPath, "posts", cfg.PostsPath, "Path to the post table CSV produced by corpus-parser")
	fs.StringVar(&cfg.OutDir, "out", cfg.OutDir, "Output directory for profiles, browser CSV, and summary")
	fs.StringVar(&cfg.Model, "model", cfg.Model, "OpenAI model to use")
	fs.StringVar(&cfg.APIKey, "api-key", "", "OpenAI API key (overrides OPENAI_API_KEY env var)")
	fs.StringVar(&cfg.ProfilesPath, "profiles", "", "Optional path for profiles JSONL (default: <out>/all_personalities.jsonl)")
	fs.StringVar(&cfg.BrowserPath, "browser", "", "Optional path for the browser CSV (default: <out>/personality_browser.csv)")
	fs.StringVar(&cfg.SummaryPath, "summary", "", "Optional path for the summary report (default: <out>/generation_summary.txt)")
	fs.StringVar(&cfg.SchemaPath, "schema", "", "Optional path for the profile JSON schema (default: <out>/profiles.schema.json)")
	fs.IntVar(&cfg.MixedTarget, "mixed", cfg.MixedTarget, "Target number of mixed-theme cohorts")
	fs.IntVar(&cfg.CommunityTarget, "community", cfg.CommunityTarget, "Target number of same-community cohorts")
	fs.IntVar(&cfg.IndividualTarget, "individual", cfg.IndividualTarget, "Target number of individual-post cohorts")
	fs.IntVar(&cfg.LengthTarget, "length", cfg.LengthTarget, "Target number of length-based cohorts")
	fs.IntVar(&cfg.CommunityMinPosts, "min-community-posts", cfg.CommunityMinPosts, "Minimum posts for a community to qualify")
	fs.IntVar(&cfg.IndividualMinWords, "min-individual-words", cfg.IndividualMinWords, "A post qualifies for the individual strategy when its word count exceeds this")
	fs.IntVar(&cfg.MaxPostChars, "max-post-chars", cfg.MaxPostChars, "Per-post character budget in the prompt")
	fs.IntVar(&cfg.MaxOutputTokens, "max-output-tokens", cfg.MaxOutputTokens, "Max output tokens per generation call")
	fs.DurationVar(&cfg.Delay, "delay", cfg.Delay, "Mandatory delay after every generation call")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "RNG seed for cohort sampling (fixed for reproducible grouping)")
	fs.BoolVar(&cfg.Overwrite, "overwrite", false, "Overwrite an existing profiles file instead of refusing")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg.PostsPath = filepath.Clean(cfg.PostsPath)
	cfg.OutDir = filepath.Clean(cfg.OutDir)
	if cfg.ProfilesPath == "" {
		cfg.ProfilesPath = filepath.Join(cfg.OutDir, "all_personalities.jsonl")
	}
	if cfg.BrowserPath == "" {
		cfg.BrowserPath = filepath.Join(cfg.OutDir, "personality_browser.csv")
	}
	if cfg.SummaryPath == "" {
		cfg.SummaryPath = filepath.Join(cfg.OutDir, "generation_summary.txt")
	}
	if cfg.SchemaPath == "" {
		cfg.SchemaPath = filepath.Join(cfg.OutDir, "profiles.schema.json")
	}
	return cfg, nil
}
