package personas

import (
	"encoding/csv"
	"errors"
	"strconv"
	"strings"

	"github.com/theimaginaryfoundation/reverie-personas/personas/fileutils"
)

// listJoin is the fixed separator for list fields in the browser projection.
const listJoin = "; "

var browserHeader = []string{
	"id", "personality_summary", "core_traits", "interests",
	"age_range", "social_level", "complexity_score", "suitable_roles",
	"source_type", "subreddits", "tags", "source_words",
}

// WriteBrowserCSV writes the flattened one-row-per-profile projection, optimized
// for human browsing and spreadsheet filtering.
func WriteBrowserCSV(path string, profiles []PersonalityProfile) error {
	if path == "" {
		return errors.New("WriteBrowserCSV: path is empty")
	}
	var b strings.Builder
	w := csv.NewWriter(&b)
	if err := w.Write(browserHeader); err != nil {
		return err
	}
	for _, p := range profiles {
		row := []string{
			p.ID,
			p.Summary,
			strings.Join(p.CoreTraits, listJoin),
			strings.Join(p.Interests, listJoin),
			p.AgeRange,
			p.SocialLevel,
			strconv.Itoa(p.ComplexityScore),
			strings.Join(p.SuitableRoles, listJoin),
			string(p.SourceType),
			strings.Join(p.Subreddits, listJoin),
			strings.Join(p.Tags, listJoin),
			strconv.Itoa(p.SourceWords),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return fileutils.WriteFileAtomicSameDir(path, []byte(b.String()), 0o644)
}
