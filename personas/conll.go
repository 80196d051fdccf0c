package personas

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// Post is one reconstructed Reddit post, stripped of token annotations.
// Immutable once emitted by ParseCorpus.
type Post struct {
	PostID    string   `json:"post_id"`
	Subreddit string   `json:"subreddit"`
	URL       string   `json:"url"`
	Sections  []string `json:"sections"`
	FullText  string   `json:"full_text"`
	WordCount int      `json:"word_count"`
}

// SectionRecord is one section of a post, flattened for the section table.
type SectionRecord struct {
	PostID       string `json:"post_id"`
	Subreddit    string `json:"subreddit"`
	SectionIndex int    `json:"section_index"`
	SectionText  string `json:"section_text"`
	WordCount    int    `json:"word_count"`
}

// CorpusStats summarizes one parse pass.
type CorpusStats struct {
	Posts      int
	Sections   int
	Words      int
	Subreddits []string
}

// ParseOptions controls corpus scanning.
type ParseOptions struct {
	// SectionSeparator is the literal separator line between sections (defaults to "[SEP]").
	SectionSeparator string

	// MaxLineBytes bounds a single input line (defaults to 1MB).
	MaxLineBytes int
}

var (
	subredditRe = regexp.MustCompile(`/r/([^/\s]+)`)
	postIDRe    = regexp.MustCompile(`/comments/([^/\s]+)`)
)

// ParseCorpus scans an annotated CoNLL-style corpus and reconstructs clean posts.
//
// A bare-URL line opens a new post; the separator line opens a new section; every
// other non-blank line is `<token> <label>` and contributes only the token. Posts
// and sections with zero words are dropped. Malformed lines are skipped; the scan
// only fails on unreadable input.
func ParseCorpus(r io.Reader, opts ParseOptions) ([]Post, error) {
	if r == nil {
		return nil, errors.New("ParseCorpus: reader is nil")
	}
	sep := opts.SectionSeparator
	if sep == "" {
		sep = "[SEP]"
	}
	maxLine := opts.MaxLineBytes
	if maxLine <= 0 {
		maxLine = 1 << 20
	}

	var (
		posts   []Post
		current *Post
		words   []string
	)

	closeSection := func() {
		if current == nil || len(words) == 0 {
			return
		}
		current.Sections = append(current.Sections, strings.Join(words, " "))
		words = words[:0]
	}
	closePost := func() {
		closeSection()
		if current == nil {
			return
		}
		current.FullText = strings.Join(current.Sections, " ")
		current.WordCount = len(strings.Fields(current.FullText))
		if current.WordCount > 0 {
			if current.PostID == "" {
				current.PostID = fmt.Sprintf("post_%d", len(posts)+1)
			}
			posts = append(posts, *current)
		}
		current = nil
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLine)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "https://") || strings.HasPrefix(line, "http://") {
			closePost()
			url := strings.Fields(line)[0]
			current = &Post{
				PostID:    extractPostID(url),
				Subreddit: extractSubreddit(url),
				URL:       url,
			}
			continue
		}

		// Separators and tokens before the first boundary have no post to land in.
		if current == nil {
			continue
		}

		if line == sep {
			closeSection()
			continue
		}

		// Token line: the label is the last whitespace-delimited field. Lines
		// without a label still contribute their single token.
		if i := strings.LastIndexFunc(line, unicode.IsSpace); i > 0 {
			if tok := strings.TrimSpace(line[:i]); tok != "" {
				words = append(words, strings.Fields(tok)...)
			}
		} else {
			words = append(words, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("ParseCorpus: scan: %w", err)
	}
	closePost()

	return posts, nil
}

func extractSubreddit(url string) string {
	if m := subredditRe.FindStringSubmatch(url); m != nil {
		return m[1]
	}
	return "unknown"
}

func extractPostID(url string) string {
	if m := postIDRe.FindStringSubmatch(url); m != nil {
		return m[1]
	}
	return ""
}

// SectionRecords flattens posts into the section table, in post order.
func SectionRecords(posts []Post) []SectionRecord {
	var out []SectionRecord
	for _, p := range posts {
		for i, s := range p.Sections {
			out = append(out, SectionRecord{
				PostID:       p.PostID,
				Subreddit:    p.Subreddit,
				SectionIndex: i,
				SectionText:  s,
				WordCount:    len(strings.Fields(s)),
			})
		}
	}
	return out
}

// Stats computes corpus statistics over parsed posts.
func Stats(posts []Post) CorpusStats {
	st := CorpusStats{Posts: len(posts)}
	seen := make(map[string]struct{})
	for _, p := range posts {
		st.Sections += len(p.Sections)
		st.Words += p.WordCount
		if _, ok := seen[p.Subreddit]; !ok {
			seen[p.Subreddit] = struct{}{}
			st.Subreddits = append(st.Subreddits, p.Subreddit)
		}
	}
	sort.Strings(st.Subreddits)
	return st
}
