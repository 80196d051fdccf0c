package main

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
)

type Config struct {
	ProfilesPath string

	SocialLevel   string
	AgeRange      string
	MinComplexity int
	MaxComplexity int
	Roles         []string
	Tags          []string
	SourceType    string

	Diverse int
	Random  bool
	Seed    int64
	Pretty  bool
}

func (c Config) Validate() error {
	if c.ProfilesPath == "" {
		return errors.New("missing -profiles")
	}
	if c.MinComplexity < 0 || c.MaxComplexity < 0 {
		return errors.New("complexity bounds must be >= 0")
	}
	if c.MaxComplexity > 0 && c.MinComplexity > c.MaxComplexity {
		return errors.New("min-complexity must be <= max-complexity")
	}
	if c.Diverse < 0 {
		return errors.New("diverse must be >= 0")
	}
	if c.Diverse > 0 && c.Random {
		return errors.New("-diverse and -random are mutually exclusive")
	}
	return nil
}

func defaultConfig() Config {
	return Config{
		Seed:   1,
		Pretty: true,
	}
}

func parseFlags(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := defaultConfig()
	fs.SetOutput(os.Stderr)

	var roles, tags string
	fs.StringVar(&cfg.ProfilesPath, "profiles", cfg.ProfilesPath, "Path to the profiles JSONL produced by persona-generator")
	fs.StringVar(&cfg.SocialLevel, "social", "", "Filter: social level (introvert/ambivert/extrovert)")
	fs.StringVar(&cfg.AgeRange, "age", "", "Filter: exact age range bucket (e.g. 20-25)")
	fs.IntVar(&cfg.MinComplexity, "min-complexity", 0, "Filter: minimum complexity score (0 disables)")
	fs.IntVar(&cfg.MaxComplexity, "max-complexity", 0, "Filter: maximum complexity score (0 disables)")
	fs.StringVar(&roles, "roles", "", "Filter: comma-separated role tags (any match)")
	fs.StringVar(&tags, "tags", "", "Filter: comma-separated personality tags (any match)")
	fs.StringVar(&cfg.SourceType, "source", "", "Filter: source strategy (mixed/community/individual/length)")
	fs.IntVar(&cfg.Diverse, "diverse", 0, "Select a diverse sample of K profiles instead of listing matches")
	fs.BoolVar(&cfg.Random, "random", false, "Pick one random matching profile")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "RNG seed for -random")
	fs.BoolVar(&cfg.Pretty, "pretty", cfg.Pretty, "Pretty-print the selection JSON")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg.ProfilesPath = filepath.Clean(cfg.ProfilesPath)
	cfg.Roles = splitCSVList(roles)
	cfg.Tags = splitCSVList(tags)
	return cfg, nil
}

func splitCSVList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
