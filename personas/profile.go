package personas

// Social level buckets.
const (
	SocialIntrovert = "introvert"
	SocialAmbivert  = "ambivert"
	SocialExtrovert = "extrovert"
)

// PersonalityProfile is the output record produced from one cohort. Every
// list-typed field is always present (possibly empty), never absent, so downstream
// consumers never branch on field presence. Immutable after emission.
type PersonalityProfile struct {
	ID string `json:"id"`

	SourceType       Strategy `json:"source_type"`
	SourceIdentifier string   `json:"source_identifier"`
	SourcePosts      int      `json:"source_posts"`
	SourceWords      int      `json:"source_words"`

	Subreddits []string `json:"subreddits"`
	PostIDs    []string `json:"post_ids"`

	Summary    string   `json:"personality_summary"`
	CoreTraits []string `json:"core_traits"`
	Interests  []string `json:"interests"`

	// AgeRange is a categorical bucket (e.g. "20-25"), or "unknown".
	AgeRange string `json:"age_range"`

	// SocialLevel is introvert, ambivert, or extrovert.
	SocialLevel string `json:"social_level"`

	// ComplexityScore is bounded to [1,5].
	ComplexityScore int `json:"complexity_score"`

	SuitableRoles []string `json:"suitable_roles"`
	Tags          []string `json:"personality_tags"`

	Breakdown ProfileBreakdown `json:"breakdown"`

	RawResponse string `json:"raw_response"`
}

// ProfileBreakdown is the structured view of the model's sectioned response.
// A section the model omitted is empty, not missing.
type ProfileBreakdown struct {
	CommunicationStyle ProfileSection `json:"communication_style"`
	SocialBehavior     ProfileSection `json:"social_behavior"`
	EmotionalPatterns  ProfileSection `json:"emotional_patterns"`
	LifestyleHabits    ProfileSection `json:"lifestyle_habits"`
	BackgroundHints    ProfileSection `json:"background_hints"`
	UniqueQuirks       ProfileSection `json:"unique_quirks"`
}

// ProfileSection holds the extracted content of one response section: bullet/line
// items plus any label:value pairs.
type ProfileSection struct {
	Items  []string          `json:"items"`
	Fields map[string]string `json:"fields"`
}

func (s *ProfileSection) normalize() {
	if s.Items == nil {
		s.Items = []string{}
	}
	if s.Fields == nil {
		s.Fields = map[string]string{}
	}
}

// normalize enforces the always-present invariant on every list/map field and
// clamps the complexity score.
func (p *PersonalityProfile) normalize() {
	if p.Subreddits == nil {
		p.Subreddits = []string{}
	}
	if p.PostIDs == nil {
		p.PostIDs = []string{}
	}
	if p.CoreTraits == nil {
		p.CoreTraits = []string{}
	}
	if p.Interests == nil {
		p.Interests = []string{}
	}
	if p.SuitableRoles == nil {
		p.SuitableRoles = []string{}
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	p.ComplexityScore = clampComplexity(p.ComplexityScore)
	p.Breakdown.CommunicationStyle.normalize()
	p.Breakdown.SocialBehavior.normalize()
	p.Breakdown.EmotionalPatterns.normalize()
	p.Breakdown.LifestyleHabits.normalize()
	p.Breakdown.BackgroundHints.normalize()
	p.Breakdown.UniqueQuirks.normalize()
}

func clampComplexity(n int) int {
	if n < 1 {
		return 1
	}
	if n > 5 {
		return 5
	}
	return n
}
