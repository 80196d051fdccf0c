package personas

import (
	"fmt"
	"strings"

	"github.com/theimaginaryfoundation/reverie-personas/personas/fileutils"
)

// PostSeparator delimits member posts inside a prompt.
const PostSeparator = "---POST SEPARATOR---"

const profilePromptHeader = `Analyze the following Reddit post(s) and extract a detailed personality profile for the author. Focus on creating a specific, nuanced character that could be used in a simulation.`

const profilePromptSchema = `Respond in plain text using EXACTLY these section headers, each on its own line, in this order. Under each header use "- " bullet lines for lists and "Label: value" lines for single values. Do not add other headers.

CORE_TRAITS:
- 3-5 key personality characteristics; use specific adjectives (e.g. "methodical and detail-oriented", not just "organized")

COMMUNICATION_STYLE:
- How they express themselves (formal/casual, direct/indirect, emotional/logical)
- Typical language patterns or phrases they might use

INTERESTS_HOBBIES:
- What they're passionate about, how they spend free time, level of expertise

SOCIAL_BEHAVIOR:
- How they interact with others, comfort in social situations, relationship patterns

EMOTIONAL_PATTERNS:
- How they handle stress, conflict, or challenges; what motivates them; common emotional responses

LIFESTYLE_HABITS:
- Daily routines or preferences, living situation, work/life balance approach

BACKGROUND_HINTS:
- Age range: approximate age range and life stage
- Possible education/career background, cultural or regional influences

UNIQUE_QUIRKS:
- Specific behaviors, preferences, or viewpoints that make them distinctive
- Any notable contradictions or complexities

Create a cohesive personality that feels like a real person with depth, contradictions, and specific details.`

// BuildPrompt renders the generation prompt for one cohort. Each member post is
// truncated to maxPostChars to bound prompt size.
func BuildPrompt(c Cohort, maxPostChars int) string {
	if maxPostChars <= 0 {
		maxPostChars = 4000
	}
	texts := make([]string, 0, len(c.Posts))
	for _, p := range c.Posts {
		text := p.FullText
		if len(text) > maxPostChars {
			text = fileutils.Truncate(text, maxPostChars) + "[truncated]"
		}
		texts = append(texts, text)
	}

	var b strings.Builder
	b.WriteString(profilePromptHeader)
	b.WriteString("\n\nREDDIT POSTS:\n")
	b.WriteString(strings.Join(texts, "\n\n"+PostSeparator+"\n\n"))
	b.WriteString("\n\n")
	b.WriteString(profilePromptSchema)
	if len(c.Themes) > 0 {
		fmt.Fprintf(&b, "\n\nThe posts span these themes: %s.", strings.Join(c.Themes, ", "))
	}
	return b.String()
}
