package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/theimaginaryfoundation/reverie-personas/personas"
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

	profiles, err := personas.ReadProfilesJSONL(cfg.ProfilesPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}

	filter := personas.ProfileFilter{
		SocialLevel:   cfg.SocialLevel,
		AgeRange:      cfg.AgeRange,
		MinComplexity: cfg.MinComplexity,
		MaxComplexity: cfg.MaxComplexity,
		Roles:         cfg.Roles,
		Tags:          cfg.Tags,
		SourceType:    personas.Strategy(cfg.SourceType),
	}
	matched := personas.FilterProfiles(profiles, filter)

	var selection []personas.PersonalityProfile
	switch {
	case cfg.Random:
		rng := rand.New(rand.NewSource(cfg.Seed))
		p, ok := personas.RandomProfile(profiles, filter, rng)
		if !ok {
			fmt.Fprintln(os.Stderr, "no profile matches the filter")
			os.Exit(1)
		}
		selection = []personas.PersonalityProfile{p}
	case cfg.Diverse > 0:
		selection = personas.DiverseSample(matched, cfg.Diverse)
	default:
		selection = matched
	}

	enc := json.NewEncoder(os.Stdout)
	if cfg.Pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(selection); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "loaded=%d matched=%d selected=%d\n", len(profiles), len(matched), len(selection))
}
