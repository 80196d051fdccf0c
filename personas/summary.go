package personas

import (
	"fmt"
	"sort"
	"strings"
)

// StrategyCount tracks per-strategy outcomes.
type StrategyCount struct {
	Attempted int `json:"attempted"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// RunSummary aggregates one generation run. It is updated as the run proceeds so a
// partial (interrupted) run still reports accurate counts.
type RunSummary struct {
	Attempted int `json:"attempted"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
	APICalls  int `json:"api_calls"`

	ByStrategy    map[Strategy]StrategyCount `json:"by_strategy"`
	ByAgeRange    map[string]int             `json:"by_age_range"`
	BySocialLevel map[string]int             `json:"by_social_level"`

	subreddits map[string]struct{}
}

// NewRunSummary returns a summary with all maps initialized.
func NewRunSummary() RunSummary {
	return RunSummary{
		ByStrategy:    make(map[Strategy]StrategyCount),
		ByAgeRange:    make(map[string]int),
		BySocialLevel: make(map[string]int),
		subreddits:    make(map[string]struct{}),
	}
}

func (s *RunSummary) recordAttempt(strategy Strategy) {
	s.Attempted++
	c := s.ByStrategy[strategy]
	c.Attempted++
	s.ByStrategy[strategy] = c
}

func (s *RunSummary) recordFailure(strategy Strategy) {
	s.Failed++
	c := s.ByStrategy[strategy]
	c.Failed++
	s.ByStrategy[strategy] = c
}

func (s *RunSummary) recordSuccess(p PersonalityProfile) {
	s.Succeeded++
	c := s.ByStrategy[p.SourceType]
	c.Succeeded++
	s.ByStrategy[p.SourceType] = c
	s.ByAgeRange[p.AgeRange]++
	s.BySocialLevel[p.SocialLevel]++
	for _, sub := range p.Subreddits {
		s.subreddits[sub] = struct{}{}
	}
}

// UniqueSubreddits counts distinct communities contributing to emitted profiles.
func (s RunSummary) UniqueSubreddits() int {
	return len(s.subreddits)
}

// Render produces the human-readable generation report.
func (s RunSummary) Render() string {
	var b strings.Builder
	b.WriteString("PERSONALITY GENERATION SUMMARY\n")
	b.WriteString(strings.Repeat("=", 50) + "\n\n")
	fmt.Fprintf(&b, "Cohorts attempted:      %d\n", s.Attempted)
	fmt.Fprintf(&b, "Profiles generated:     %d\n", s.Succeeded)
	fmt.Fprintf(&b, "Cohorts skipped:        %d\n", s.Failed)
	fmt.Fprintf(&b, "API calls made:         %d\n", s.APICalls)
	fmt.Fprintf(&b, "Contributing subreddits: %d\n", s.UniqueSubreddits())

	b.WriteString("\nBY STRATEGY:\n")
	for _, strat := range Strategies {
		c, ok := s.ByStrategy[strat]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "  %-12s attempted=%d succeeded=%d failed=%d\n", strat, c.Attempted, c.Succeeded, c.Failed)
	}

	writeCounts := func(title string, m map[string]int) {
		if len(m) == 0 {
			return
		}
		b.WriteString("\n" + title + ":\n")
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "  %-12s %d\n", k, m[k])
		}
	}
	writeCounts("BY AGE RANGE", s.ByAgeRange)
	writeCounts("BY SOCIAL LEVEL", s.BySocialLevel)
	return b.String()
}
