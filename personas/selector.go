package personas

import (
	"math/rand"
)

// ProfileFilter selects profiles from an emitted collection. Zero-valued fields
// match everything.
type ProfileFilter struct {
	SocialLevel string
	AgeRange    string

	// MinComplexity/MaxComplexity form an inclusive range; 0 means unbounded.
	MinComplexity int
	MaxComplexity int

	// Roles matches profiles suitable for ANY of these roles.
	Roles []string

	// Tags matches profiles carrying ANY of these tags.
	Tags []string

	SourceType Strategy
}

// Matches reports whether a profile passes the filter.
func (f ProfileFilter) Matches(p PersonalityProfile) bool {
	if f.SocialLevel != "" && p.SocialLevel != f.SocialLevel {
		return false
	}
	if f.AgeRange != "" && p.AgeRange != f.AgeRange {
		return false
	}
	if f.MinComplexity > 0 && p.ComplexityScore < f.MinComplexity {
		return false
	}
	if f.MaxComplexity > 0 && p.ComplexityScore > f.MaxComplexity {
		return false
	}
	if f.SourceType != "" && p.SourceType != f.SourceType {
		return false
	}
	if len(f.Roles) > 0 && !containsAny(p.SuitableRoles, f.Roles) {
		return false
	}
	if len(f.Tags) > 0 && !containsAny(p.Tags, f.Tags) {
		return false
	}
	return true
}

func containsAny(have, want []string) bool {
	set := make(map[string]struct{}, len(have))
	for _, h := range have {
		set[h] = struct{}{}
	}
	for _, w := range want {
		if _, ok := set[w]; ok {
			return true
		}
	}
	return false
}

// FilterProfiles returns the profiles matching f, in collection order.
func FilterProfiles(profiles []PersonalityProfile, f ProfileFilter) []PersonalityProfile {
	var out []PersonalityProfile
	for _, p := range profiles {
		if f.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}

// RandomProfile picks one matching profile at random.
func RandomProfile(profiles []PersonalityProfile, f ProfileFilter, rng *rand.Rand) (PersonalityProfile, bool) {
	candidates := FilterProfiles(profiles, f)
	if len(candidates) == 0 {
		return PersonalityProfile{}, false
	}
	return candidates[rng.Intn(len(candidates))], true
}

// DiverseSample greedily selects up to k profiles maximizing coverage of distinct
// social levels and source strategies: each pick is the profile that covers the
// most not-yet-seen values, ties broken by collection order. Remaining slots are
// filled in collection order.
func DiverseSample(profiles []PersonalityProfile, k int) []PersonalityProfile {
	if k <= 0 {
		return nil
	}
	if k > len(profiles) {
		k = len(profiles)
	}

	used := make([]bool, len(profiles))
	seenSocial := make(map[string]struct{})
	seenStrategy := make(map[Strategy]struct{})

	gain := func(p PersonalityProfile) int {
		g := 0
		if _, ok := seenSocial[p.SocialLevel]; !ok {
			g++
		}
		if _, ok := seenStrategy[p.SourceType]; !ok {
			g++
		}
		return g
	}

	var out []PersonalityProfile
	for len(out) < k {
		best, bestGain := -1, -1
		for i, p := range profiles {
			if used[i] {
				continue
			}
			if g := gain(p); g > bestGain {
				best, bestGain = i, g
			}
		}
		if best < 0 {
			break
		}
		used[best] = true
		p := profiles[best]
		seenSocial[p.SocialLevel] = struct{}{}
		seenStrategy[p.SourceType] = struct{}{}
		out = append(out, p)
	}
	return out
}
