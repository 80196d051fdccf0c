package personas

import (
	"regexp"
	"sort"
	"strings"

	"github.com/theimaginaryfoundation/reverie-personas/personas/fileutils"
)

// Section names the generation prompt asks for and the extractor recognizes.
const (
	SectionCoreTraits         = "CORE_TRAITS"
	SectionCommunicationStyle = "COMMUNICATION_STYLE"
	SectionInterests          = "INTERESTS_HOBBIES"
	SectionSocialBehavior     = "SOCIAL_BEHAVIOR"
	SectionEmotionalPatterns  = "EMOTIONAL_PATTERNS"
	SectionLifestyleHabits    = "LIFESTYLE_HABITS"
	SectionBackgroundHints    = "BACKGROUND_HINTS"
	SectionUniqueQuirks       = "UNIQUE_QUIRKS"
)

// ResponseSections is the documented section order of a generation response.
var ResponseSections = []string{
	SectionCoreTraits,
	SectionCommunicationStyle,
	SectionInterests,
	SectionSocialBehavior,
	SectionEmotionalPatterns,
	SectionLifestyleHabits,
	SectionBackgroundHints,
	SectionUniqueQuirks,
}

// ProfileFields is the best-effort extraction of a free-form model response.
// Sections the response omitted are empty, never nil.
type ProfileFields struct {
	Summary    string
	CoreTraits []string
	Interests  []string
	Breakdown  ProfileBreakdown

	// Found marks which documented sections were present in the response.
	Found map[string]bool
}

// HasCoreTraits reports whether the response was usable at all.
func (f ProfileFields) HasCoreTraits() bool {
	return f.Found[SectionCoreTraits] && len(f.CoreTraits) > 0
}

var (
	bulletRe     = regexp.MustCompile(`^\s*(?:[-*•]|\d+[.)])\s+`)
	labelValueRe = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9 /&'-]{0,40}):\s+(.+)$`)
	nonHeaderRe  = regexp.MustCompile(`[^A-Z0-9]+`)
)

// ParseProfileText splits a model response on its documented section delimiters and
// extracts list items and label:value pairs per section. It never fails: unmatched
// sections simply stay empty.
func ParseProfileText(raw string) ProfileFields {
	fields := ProfileFields{Found: make(map[string]bool)}
	sections := make(map[string]*ProfileSection, len(ResponseSections))
	for _, name := range ResponseSections {
		sections[name] = &ProfileSection{Items: []string{}, Fields: map[string]string{}}
	}

	known := make(map[string]struct{}, len(ResponseSections))
	for _, name := range ResponseSections {
		known[name] = struct{}{}
	}

	var preamble []string
	current := ""
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimRight(line, " \t\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if name, rest, ok := matchSectionHeader(trimmed, known); ok {
			current = name
			fields.Found[name] = true
			if rest != "" {
				addSectionLine(sections[name], rest)
			}
			continue
		}

		if current == "" {
			preamble = append(preamble, trimmed)
			continue
		}
		addSectionLine(sections[current], trimmed)
	}

	fields.CoreTraits = sections[SectionCoreTraits].flatten()
	fields.Interests = sections[SectionInterests].flatten()
	fields.Breakdown = ProfileBreakdown{
		CommunicationStyle: *sections[SectionCommunicationStyle],
		SocialBehavior:     *sections[SectionSocialBehavior],
		EmotionalPatterns:  *sections[SectionEmotionalPatterns],
		LifestyleHabits:    *sections[SectionLifestyleHabits],
		BackgroundHints:    *sections[SectionBackgroundHints],
		UniqueQuirks:       *sections[SectionUniqueQuirks],
	}

	summary := strings.Join(preamble, " ")
	if summary == "" && len(fields.CoreTraits) > 0 {
		n := len(fields.CoreTraits)
		if n > 3 {
			n = 3
		}
		summary = strings.Join(fields.CoreTraits[:n], ", ")
	}
	fields.Summary = fileutils.Truncate(summary, 200)
	return fields
}

// matchSectionHeader recognizes lines like "CORE_TRAITS:", "**CORE TRAITS**",
// "### INTERESTS & HOBBIES" and variants. Inline content after the colon is
// returned as the section's first line.
func matchSectionHeader(line string, known map[string]struct{}) (name, rest string, ok bool) {
	s := strings.TrimLeft(line, "#> ")
	s = strings.Trim(s, "*_ ")
	if s == "" {
		return "", "", false
	}

	head := s
	if i := strings.IndexByte(s, ':'); i >= 0 {
		head = s[:i]
		rest = strings.Trim(strings.Trim(strings.TrimSpace(s[i+1:]), "*_"), " ")
	}
	head = strings.Trim(head, "*_ ")
	if len(head) > 48 {
		return "", "", false
	}

	key := nonHeaderRe.ReplaceAllString(strings.ToUpper(head), "_")
	key = strings.Trim(key, "_")
	if _, found := known[key]; !found {
		return "", "", false
	}
	// A known name followed by prose is a header only when the name stood alone
	// before the colon, which the trimming above already guarantees.
	return key, rest, true
}

func addSectionLine(sec *ProfileSection, line string) {
	if m := bulletRe.FindString(line); m != "" {
		item := strings.Trim(strings.TrimPrefix(line, m), "*_ ")
		if item == "" {
			return
		}
		if k, v, ok := splitLabelValue(item); ok {
			sec.Fields[k] = v
			return
		}
		sec.Items = append(sec.Items, item)
		return
	}
	if k, v, ok := splitLabelValue(line); ok {
		sec.Fields[k] = v
		return
	}
	sec.Items = append(sec.Items, strings.Trim(line, "*_ "))
}

func splitLabelValue(line string) (key, value string, ok bool) {
	m := labelValueRe.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	key = strings.ToLower(strings.TrimSpace(m[1]))
	key = strings.ReplaceAll(key, " ", "_")
	value = strings.Trim(strings.TrimSpace(m[2]), "*_")
	if key == "" || value == "" {
		return "", "", false
	}
	return key, value, true
}

// flatten returns a section's items followed by its field values, for fields that
// are consumed as flat lists (core traits, interests).
func (s *ProfileSection) flatten() []string {
	out := append([]string{}, s.Items...)
	if len(s.Fields) > 0 {
		keys := make([]string, 0, len(s.Fields))
		for k := range s.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			out = append(out, s.Fields[k])
		}
	}
	return out
}

// BuildProfile assembles a profile record (without an identifier) from a cohort and
// its parsed response. The caller assigns the sequential id at emission time.
func BuildProfile(c Cohort, raw string, fields ProfileFields) PersonalityProfile {
	subreddits := c.Subreddits()
	p := PersonalityProfile{
		SourceType:       c.Strategy,
		SourceIdentifier: c.Identifier,
		SourcePosts:      len(c.Posts),
		SourceWords:      c.TotalWords,
		Subreddits:       subreddits,
		PostIDs:          c.PostIDs(),
		Summary:          fields.Summary,
		CoreTraits:       fields.CoreTraits,
		Interests:        fields.Interests,
		Breakdown:        fields.Breakdown,
		RawResponse:      raw,
	}
	p.AgeRange = deriveAgeRange(fields.Breakdown.BackgroundHints)
	p.SocialLevel = deriveSocialLevel(fields.CoreTraits, fields.Breakdown.SocialBehavior)
	p.ComplexityScore = deriveComplexity(fields, subreddits)
	p.SuitableRoles = deriveRoles(fields.CoreTraits, fields.Interests)
	p.Tags = buildTags(subreddits, fields.CoreTraits, fields.Interests, p.SocialLevel, p.AgeRange)
	p.normalize()
	return p
}

func sectionText(s ProfileSection) string {
	parts := append([]string{}, s.Items...)
	for _, v := range s.Fields {
		parts = append(parts, v)
	}
	return strings.ToLower(strings.Join(parts, " "))
}

func deriveAgeRange(background ProfileSection) string {
	text := strings.ToLower(sectionText(background))
	switch {
	case strings.Contains(text, "15-18") || strings.Contains(text, "teen") || strings.Contains(text, "high school"):
		return "15-18"
	case strings.Contains(text, "18-22") || strings.Contains(text, "college"):
		return "18-22"
	case strings.Contains(text, "20-25") || strings.Contains(text, "20"):
		return "20-25"
	case strings.Contains(text, "25-35") || strings.Contains(text, "30") || strings.Contains(text, "career"):
		return "25-35"
	case strings.Contains(text, "35-45") || strings.Contains(text, "40") || strings.Contains(text, "middle"):
		return "35-45"
	default:
		return "unknown"
	}
}

var (
	introvertWords = []string{"shy", "introvert", "anxious", "withdrawn", "quiet"}
	extrovertWords = []string{"outgoing", "extrovert", "social", "talkative", "gregarious"}
)

func deriveSocialLevel(coreTraits []string, social ProfileSection) string {
	combined := strings.ToLower(strings.Join(coreTraits, " ")) + " " + sectionText(social)
	for _, w := range introvertWords {
		if strings.Contains(combined, w) {
			return SocialIntrovert
		}
	}
	for _, w := range extrovertWords {
		if strings.Contains(combined, w) {
			return SocialExtrovert
		}
	}
	return SocialAmbivert
}

func deriveComplexity(fields ProfileFields, subreddits []string) int {
	score := 1
	if len(fields.CoreTraits) >= 4 {
		score++
	}
	if len(fields.Interests) >= 3 {
		score++
	}
	if len(subreddits) >= 3 {
		score++
	}
	q := fields.Breakdown.UniqueQuirks
	if len(q.Items) > 0 || len(q.Fields) > 0 {
		score++
	}
	return clampComplexity(score)
}

type roleRule struct {
	role     string
	keywords []string
	traits   bool // match against traits instead of interests
}

var roleRules = []roleRule{
	{role: "whiskey_enthusiast", keywords: []string{"whiskey", "alcohol", "drinking", "bar"}},
	{role: "fitness_enthusiast", keywords: []string{"fitness", "gym", "exercise", "sports"}},
	{role: "gamer_streamer", keywords: []string{"gaming", "streaming", "twitch"}},
	{role: "analyst_type", keywords: []string{"analytical", "logical", "methodical"}, traits: true},
	{role: "creative_type", keywords: []string{"creative", "artistic", "imaginative"}, traits: true},
	{role: "helper_type", keywords: []string{"helpful", "caring", "supportive"}, traits: true},
}

func deriveRoles(coreTraits, interests []string) []string {
	traits := strings.ToLower(strings.Join(coreTraits, " "))
	hobbies := strings.ToLower(strings.Join(interests, " "))
	var roles []string
	for _, r := range roleRules {
		haystack := hobbies
		if r.traits {
			haystack = traits
		}
		for _, kw := range r.keywords {
			if strings.Contains(haystack, kw) {
				roles = append(roles, r.role)
				break
			}
		}
	}
	return roles
}

func buildTags(subreddits, coreTraits, interests []string, socialLevel, ageRange string) []string {
	seen := make(map[string]struct{})
	add := func(s string) {
		s = strings.TrimSpace(strings.ToLower(s))
		s = strings.ReplaceAll(s, " ", "_")
		if s == "" {
			return
		}
		seen[s] = struct{}{}
	}
	for _, s := range subreddits {
		add(s)
	}
	for _, t := range coreTraits {
		add(t)
	}
	for _, i := range interests {
		add(i)
	}
	add(socialLevel)
	add(ageRange)

	tags := make([]string, 0, len(seen))
	for t := range seen {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}
