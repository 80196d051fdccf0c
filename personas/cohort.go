package personas

import (
	"fmt"
	"math/rand"
	"sort"
)

// Strategy is one of the four fixed cohort-building policies.
type Strategy string

const (
	StrategyMixed      Strategy = "mixed"
	StrategyCommunity  Strategy = "community"
	StrategyIndividual Strategy = "individual"
	StrategyLength     Strategy = "length"
)

// Strategies is the fixed order cohort pools are concatenated in.
var Strategies = []Strategy{StrategyMixed, StrategyCommunity, StrategyIndividual, StrategyLength}

// Cohort is a transient selection of posts that produces one profile.
type Cohort struct {
	Strategy   Strategy
	Identifier string
	Posts      []Post

	// Themes records the distinct thematic buckets of a mixed cohort.
	Themes []string

	// Subreddit is set for community cohorts.
	Subreddit string

	TotalWords int
}

// GroupingConfig is the immutable configuration for cohort building.
type GroupingConfig struct {
	MixedTarget      int
	CommunityTarget  int
	IndividualTarget int
	LengthTarget     int

	// MixedMinWords filters out trivially short posts when sampling mixed cohorts.
	MixedMinWords int

	// CommunityMinPosts is the minimum post count for a community to qualify.
	CommunityMinPosts int
	// CommunityMaxPosts caps how many of a community's posts join its cohort.
	CommunityMaxPosts int

	// IndividualMinWords: a post qualifies only when its word count exceeds this.
	IndividualMinWords int

	BriefMinWords    int
	BriefMaxWords    int
	DetailedMinWords int
	BriefGroupMin    int
	BriefGroupMax    int
	DetailedGroupMax int
}

// DefaultGroupingConfig returns the reference pipeline's targets and thresholds.
func DefaultGroupingConfig() GroupingConfig {
	return GroupingConfig{
		MixedTarget:        30,
		CommunityTarget:    20,
		IndividualTarget:   25,
		LengthTarget:       15,
		MixedMinWords:      100,
		CommunityMinPosts:  2,
		CommunityMaxPosts:  5,
		IndividualMinWords: 200,
		BriefMinWords:      50,
		BriefMaxWords:      200,
		DetailedMinWords:   500,
		BriefGroupMin:      3,
		BriefGroupMax:      5,
		DetailedGroupMax:   2,
	}
}

// Theme names for the mixed strategy.
const (
	ThemeMentalHealth  = "mental-health"
	ThemeRelationships = "relationships"
	ThemeLifestyle     = "lifestyle"
	ThemeAdvice        = "advice"
	ThemePersonal      = "personal"
	ThemeOther         = "other"
)

var themeBySubreddit = map[string]string{
	"depression": ThemeMentalHealth,
	"anxiety":    ThemeMentalHealth,
	"BPD":        ThemeMentalHealth,
	"OCD":        ThemeMentalHealth,
	"bipolar":    ThemeMentalHealth,
	"autism":     ThemeMentalHealth,
	"ADHD":       ThemeMentalHealth,

	"relationship_advice": ThemeRelationships,
	"dating_advice":       ThemeRelationships,
	"Marriage":            ThemeRelationships,
	"relationships":       ThemeRelationships,

	"stopdrinking": ThemeLifestyle,
	"NoFap":        ThemeLifestyle,
	"fitness":      ThemeLifestyle,
	"weed":         ThemeLifestyle,
	"whiskey":      ThemeLifestyle,

	"AmItheAsshole":   ThemeAdvice,
	"AITAH":           ThemeAdvice,
	"legaladvice":     ThemeAdvice,
	"personalfinance": ThemeAdvice,

	"offmychest":     ThemePersonal,
	"TrueOffMyChest": ThemePersonal,
	"confessions":    ThemePersonal,
	"Vent":           ThemePersonal,
}

// ThemeFor maps a subreddit to its thematic bucket.
func ThemeFor(subreddit string) string {
	if t, ok := themeBySubreddit[subreddit]; ok {
		return t
	}
	return ThemeOther
}

// BuildCohorts builds the master cohort sequence: mixed, community, individual,
// length, in that order. A strategy whose pool runs out simply yields fewer cohorts
// than its target. Posts may appear in more than one cohort across strategies.
func BuildCohorts(posts []Post, cfg GroupingConfig, rng *rand.Rand) []Cohort {
	var out []Cohort
	out = append(out, buildMixedCohorts(posts, cfg, rng)...)
	out = append(out, buildCommunityCohorts(posts, cfg)...)
	out = append(out, buildIndividualCohorts(posts, cfg)...)
	out = append(out, buildLengthCohorts(posts, cfg, rng)...)
	return out
}

func buildMixedCohorts(posts []Post, cfg GroupingConfig, rng *rand.Rand) []Cohort {
	byTheme := make(map[string][]Post)
	for _, p := range posts {
		if p.WordCount < cfg.MixedMinWords {
			continue
		}
		t := ThemeFor(p.Subreddit)
		byTheme[t] = append(byTheme[t], p)
	}

	used := make(map[string]struct{})
	available := func() []string {
		var themes []string
		for t, ps := range byTheme {
			for _, p := range ps {
				if _, ok := used[p.PostID]; !ok {
					themes = append(themes, t)
					break
				}
			}
		}
		sort.Strings(themes)
		return themes
	}

	var out []Cohort
	for len(out) < cfg.MixedTarget {
		themes := available()
		if len(themes) < 2 {
			break
		}
		want := 3
		if len(themes) < want {
			want = len(themes)
		}
		rng.Shuffle(len(themes), func(i, j int) { themes[i], themes[j] = themes[j], themes[i] })
		picked := themes[:want]

		var members []Post
		var memberThemes []string
		for _, t := range picked {
			var candidates []Post
			for _, p := range byTheme[t] {
				if _, ok := used[p.PostID]; !ok {
					candidates = append(candidates, p)
				}
			}
			if len(candidates) == 0 {
				continue
			}
			p := candidates[rng.Intn(len(candidates))]
			members = append(members, p)
			memberThemes = append(memberThemes, t)
			used[p.PostID] = struct{}{}
		}
		if len(members) < 2 {
			continue
		}
		sort.Strings(memberThemes)
		out = append(out, Cohort{
			Strategy:   StrategyMixed,
			Identifier: fmt.Sprintf("mixed_%d", len(out)+1),
			Posts:      members,
			Themes:     memberThemes,
			TotalWords: totalWords(members),
		})
	}
	return out
}

func buildCommunityCohorts(posts []Post, cfg GroupingConfig) []Cohort {
	bySub := make(map[string][]Post)
	for _, p := range posts {
		if p.Subreddit == "unknown" {
			continue
		}
		bySub[p.Subreddit] = append(bySub[p.Subreddit], p)
	}

	type subCount struct {
		name  string
		count int
	}
	var subs []subCount
	for name, ps := range bySub {
		if len(ps) >= cfg.CommunityMinPosts {
			subs = append(subs, subCount{name, len(ps)})
		}
	}
	sort.Slice(subs, func(i, j int) bool {
		if subs[i].count != subs[j].count {
			return subs[i].count > subs[j].count
		}
		return subs[i].name < subs[j].name
	})

	var out []Cohort
	for _, sc := range subs {
		if len(out) >= cfg.CommunityTarget {
			break
		}
		ps := append([]Post(nil), bySub[sc.name]...)
		sort.SliceStable(ps, func(i, j int) bool { return ps[i].WordCount > ps[j].WordCount })
		if len(ps) > cfg.CommunityMaxPosts {
			ps = ps[:cfg.CommunityMaxPosts]
		}
		out = append(out, Cohort{
			Strategy:   StrategyCommunity,
			Identifier: sc.name,
			Posts:      ps,
			Subreddit:  sc.name,
			TotalWords: totalWords(ps),
		})
	}
	return out
}

func buildIndividualCohorts(posts []Post, cfg GroupingConfig) []Cohort {
	var out []Cohort
	for _, p := range posts {
		if len(out) >= cfg.IndividualTarget {
			break
		}
		if p.WordCount <= cfg.IndividualMinWords {
			continue
		}
		out = append(out, Cohort{
			Strategy:   StrategyIndividual,
			Identifier: fmt.Sprintf("%s_%s", p.Subreddit, p.PostID),
			Posts:      []Post{p},
			TotalWords: p.WordCount,
		})
	}
	return out
}

func buildLengthCohorts(posts []Post, cfg GroupingConfig, rng *rand.Rand) []Cohort {
	var brief, detailed []Post
	for _, p := range posts {
		switch {
		case p.WordCount >= cfg.BriefMinWords && p.WordCount <= cfg.BriefMaxWords:
			brief = append(brief, p)
		case p.WordCount >= cfg.DetailedMinWords:
			detailed = append(detailed, p)
		}
	}
	rng.Shuffle(len(brief), func(i, j int) { brief[i], brief[j] = brief[j], brief[i] })

	var out []Cohort
	briefN, detailedN := 0, 0
	takeBrief := true
	for len(out) < cfg.LengthTarget {
		madeProgress := false
		if takeBrief && len(brief) >= cfg.BriefGroupMin {
			n := cfg.BriefGroupMax
			if n > len(brief) {
				n = len(brief)
			}
			members := brief[:n]
			brief = brief[n:]
			briefN++
			out = append(out, Cohort{
				Strategy:   StrategyLength,
				Identifier: fmt.Sprintf("brief_comm_%d", briefN),
				Posts:      members,
				TotalWords: totalWords(members),
			})
			madeProgress = true
		} else if !takeBrief && len(detailed) > 0 {
			n := cfg.DetailedGroupMax
			if n > len(detailed) {
				n = len(detailed)
			}
			members := detailed[:n]
			detailed = detailed[n:]
			detailedN++
			out = append(out, Cohort{
				Strategy:   StrategyLength,
				Identifier: fmt.Sprintf("detailed_comm_%d", detailedN),
				Posts:      members,
				TotalWords: totalWords(members),
			})
			madeProgress = true
		}
		takeBrief = !takeBrief
		if !madeProgress {
			// The preferred sub-strategy is exhausted; if the other one is too, stop.
			if len(brief) < cfg.BriefGroupMin && len(detailed) == 0 {
				break
			}
		}
	}
	return out
}

func totalWords(posts []Post) int {
	n := 0
	for _, p := range posts {
		n += p.WordCount
	}
	return n
}

// Subreddits returns the distinct communities contributing to a cohort, sorted.
func (c Cohort) Subreddits() []string {
	seen := make(map[string]struct{}, len(c.Posts))
	var out []string
	for _, p := range c.Posts {
		if _, ok := seen[p.Subreddit]; !ok {
			seen[p.Subreddit] = struct{}{}
			out = append(out, p.Subreddit)
		}
	}
	sort.Strings(out)
	return out
}

// PostIDs returns the cohort's member post identifiers in member order.
func (c Cohort) PostIDs() []string {
	out := make([]string, 0, len(c.Posts))
	for _, p := range c.Posts {
		out = append(out, p.PostID)
	}
	return out
}
