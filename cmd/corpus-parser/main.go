package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/theimaginaryfoundation/reverie-personas/personas"
	"github.com/theimaginaryfoundation/reverie-personas/personas/fileutils"
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

	f, err := os.Open(cfg.InPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, fmt.Errorf("open -in: %w", err).Error())
		os.Exit(2)
	}
	defer f.Close()

	posts, err := personas.ParseCorpus(f, personas.ParseOptions{SectionSeparator: cfg.Separator})
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
	sections := personas.SectionRecords(posts)
	stats := personas.Stats(posts)

	if err := personas.WritePostsCSV(cfg.PostsPath, posts); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
	if err := personas.WriteSectionsCSV(cfg.SectionsPath, sections); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	for i := 0; i < cfg.Sample && i < len(posts); i++ {
		p := posts[i]
		fmt.Fprintf(os.Stderr, "%d. %s (r/%s) sections=%d words=%d\n   %s\n",
			i+1, p.PostID, p.Subreddit, len(p.Sections), p.WordCount, fileutils.Truncate(p.FullText, 200))
	}

	fmt.Fprintf(os.Stdout, "posts=%d sections=%d words=%d subreddits=%d posts_csv=%s sections_csv=%s\n",
		stats.Posts, stats.Sections, stats.Words, len(stats.Subreddits), cfg.PostsPath, cfg.SectionsPath)
}
