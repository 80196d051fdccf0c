package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"

	"github.com/theimaginaryfoundation/reverie-personas/personas"
	"github.com/theimaginaryfoundation/reverie-personas/personas/fileutils"
	"github.com/theimaginaryfoundation/reverie-personas/personas/provider"
)

func main() {
	cfg, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}

	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		fmt.Fprintln(os.Stderr, "missing OPENAI_API_KEY (or pass -api-key)")
		os.Exit(2)
	}

	posts, err := personas.ReadPostsCSV(cfg.PostsPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}
	if len(posts) == 0 {
		fmt.Fprintln(os.Stderr, "post table is empty")
		os.Exit(2)
	}

	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		fmt.Fprintln(os.Stderr, fmt.Errorf("mkdir -out: %w", err).Error())
		os.Exit(2)
	}
	if !cfg.Overwrite && fileutils.FileExists(cfg.ProfilesPath) {
		fmt.Fprintf(os.Stderr, "profiles file already exists: %s (pass -overwrite)\n", cfg.ProfilesPath)
		os.Exit(2)
	}

	groupCfg := personas.DefaultGroupingConfig()
	groupCfg.MixedTarget = cfg.MixedTarget
	groupCfg.CommunityTarget = cfg.CommunityTarget
	groupCfg.IndividualTarget = cfg.IndividualTarget
	groupCfg.LengthTarget = cfg.LengthTarget
	groupCfg.CommunityMinPosts = cfg.CommunityMinPosts
	groupCfg.IndividualMinWords = cfg.IndividualMinWords

	rng := rand.New(rand.NewSource(cfg.Seed))
	cohorts := personas.BuildCohorts(posts, groupCfg, rng)
	if len(cohorts) == 0 {
		fmt.Fprintln(os.Stderr, "no cohorts could be built from the post table")
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Profiles are appended line by line so an interrupted run still leaves a
	// valid, usable collection behind.
	out, err := os.OpenFile(cfg.ProfilesPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		fmt.Fprintln(os.Stderr, fmt.Errorf("open profiles file: %w", err).Error())
		os.Exit(2)
	}
	defer out.Close()
	w := bufio.NewWriter(out)

	var profiles []personas.PersonalityProfile
	opts := personas.GenerateOptions{
		MaxPostChars:    cfg.MaxPostChars,
		MaxOutputTokens: cfg.MaxOutputTokens,
		Delay:           cfg.Delay,
		Logf: func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		},
	}
	gen := provider.New(apiKey, cfg.Model)

	summary, runErr := personas.GenerateProfiles(ctx, gen, cohorts, opts, func(p personas.PersonalityProfile) error {
		if err := personas.WriteProfileLine(w, p); err != nil {
			return err
		}
		if err := w.Flush(); err != nil {
			return err
		}
		profiles = append(profiles, p)
		return nil
	})
	fatal := runErr != nil && !errors.Is(runErr, context.Canceled)
	if fatal {
		fmt.Fprintln(os.Stderr, runErr.Error())
	}

	if err := personas.WriteBrowserCSV(cfg.BrowserPath, profiles); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
	}
	if err := fileutils.WriteFileAtomicSameDir(cfg.SummaryPath, []byte(summary.Render()), 0o644); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
	}
	schema := provider.GenerateSchema[personas.PersonalityProfile]()
	if err := fileutils.WriteJSONFileAtomic(cfg.SchemaPath, schema, true); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
	}

	fmt.Fprintf(os.Stdout, "cohorts=%d attempted=%d succeeded=%d failed=%d api_calls=%d profiles=%s browser=%s summary=%s\n",
		len(cohorts), summary.Attempted, summary.Succeeded, summary.Failed, summary.APICalls,
		cfg.ProfilesPath, cfg.BrowserPath, cfg.SummaryPath)
	if fatal {
		os.Exit(1)
	}
}
