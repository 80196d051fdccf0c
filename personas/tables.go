package personas

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/theimaginaryfoundation/reverie-personas/personas/fileutils"
)

var postsHeader = []string{"post_id", "subreddit", "url", "section_count", "word_count", "full_text"}
var sectionsHeader = []string{"post_id", "subreddit", "section_index", "section_text", "word_count"}

// WritePostsCSV writes the post table atomically.
func WritePostsCSV(path string, posts []Post) error {
	if path == "" {
		return errors.New("WritePostsCSV: path is empty")
	}
	var b strings.Builder
	w := csv.NewWriter(&b)
	if err := w.Write(postsHeader); err != nil {
		return err
	}
	for _, p := range posts {
		row := []string{
			p.PostID,
			p.Subreddit,
			p.URL,
			strconv.Itoa(len(p.Sections)),
			strconv.Itoa(p.WordCount),
			p.FullText,
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

// ReadPostsCSV loads the post table written by WritePostsCSV. Section texts are not
// round-tripped through the table; only the per-post fields the generator needs.
func ReadPostsCSV(path string) ([]Post, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ReadPostsCSV: open: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(bufio.NewReader(f))
	r.FieldsPerRecord = len(postsHeader)

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("ReadPostsCSV: read header: %w", err)
	}
	if len(header) == 0 || header[0] != "post_id" {
		return nil, fmt.Errorf("ReadPostsCSV: unexpected header %v", header)
	}

	var posts []Post
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ReadPostsCSV: read row: %w", err)
		}
		wc, err := strconv.Atoi(row[4])
		if err != nil {
			return nil, fmt.Errorf("ReadPostsCSV: word_count %q: %w", row[4], err)
		}
		posts = append(posts, Post{
			PostID:    row[0],
			Subreddit: row[1],
			URL:       row[2],
			FullText:  row[5],
			WordCount: wc,
		})
	}
	return posts, nil
}

// WriteSectionsCSV writes the section table atomically.
func WriteSectionsCSV(path string, sections []SectionRecord) error {
	if path == "" {
		return errors.New("WriteSectionsCSV: path is empty")
	}
	var b strings.Builder
	w := csv.NewWriter(&b)
	if err := w.Write(sectionsHeader); err != nil {
		return err
	}
	for _, s := range sections {
		row := []string{
			s.PostID,
			s.Subreddit,
			strconv.Itoa(s.SectionIndex),
			s.SectionText,
			strconv.Itoa(s.WordCount),
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

// WriteProfileLine appends one profile as a JSONL row. Used by the generation loop
// so an interrupted run still leaves a valid collection on disk.
func WriteProfileLine(w io.Writer, p PersonalityProfile) error {
	line, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("WriteProfileLine: marshal: %w", err)
	}
	if _, err := w.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("WriteProfileLine: write: %w", err)
	}
	return nil
}

// ReadProfilesJSONL loads a profile collection written line by line.
func ReadProfilesJSONL(path string) ([]PersonalityProfile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ReadProfilesJSONL: open: %w", err)
	}
	defer f.Close()

	var out []PersonalityProfile
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 8<<20)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var p PersonalityProfile
		if err := json.Unmarshal([]byte(line), &p); err != nil {
			return nil, fmt.Errorf("ReadProfilesJSONL: unmarshal: %w", err)
		}
		p.normalize()
		out = append(out, p)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("ReadProfilesJSONL: scan: %w", err)
	}
	return out, nil
}
