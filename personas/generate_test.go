package personas

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

// scriptedGenerator returns one canned result per call, in order.
type scriptedGenerator struct {
	responses []string
	errs      []error
	calls     int
	prompts   []string
}

func (g *scriptedGenerator) Generate(_ context.Context, prompt string, _ int) (string, error) {
	i := g.calls
	g.calls++
	g.prompts = append(g.prompts, prompt)
	if i < len(g.errs) && g.errs[i] != nil {
		return "", g.errs[i]
	}
	if i < len(g.responses) {
		return g.responses[i], nil
	}
	return "", errors.New("no scripted response")
}

func usableResponse(trait string) string {
	return fmt.Sprintf("CORE_TRAITS:\n- %s\nINTERESTS_HOBBIES:\n- reading", trait)
}

func testCohorts(n int) []Cohort {
	var out []Cohort
	for i := 0; i < n; i++ {
		out = append(out, Cohort{
			Strategy:   StrategyMixed,
			Identifier: fmt.Sprintf("mixed_%d", i+1),
			Posts:      []Post{{PostID: fmt.Sprintf("p%d", i), Subreddit: "test", FullText: "hello", WordCount: 1}},
			TotalWords: 1,
		})
	}
	return out
}

func TestGenerateProfiles_DenseIDsAcrossFailures(t *testing.T) {
	t.Parallel()

	gen := &scriptedGenerator{
		responses: []string{usableResponse("calm"), "", usableResponse("bold"), "no sections here", usableResponse("dry")},
		errs:      []error{nil, errors.New("rate limited"), nil, nil, nil},
	}

	var emitted []PersonalityProfile
	summary, err := GenerateProfiles(context.Background(), gen, testCohorts(5), GenerateOptions{}, func(p PersonalityProfile) error {
		emitted = append(emitted, p)
		return nil
	})
	if err != nil {
		t.Fatalf("GenerateProfiles: %v", err)
	}

	if len(emitted) != 3 {
		t.Fatalf("emitted=%d, want 3", len(emitted))
	}
	for i, p := range emitted {
		want := fmt.Sprintf("personality_%03d", i+1)
		if p.ID != want {
			t.Fatalf("emitted[%d].ID=%q, want %q (ids must be dense despite skips)", i, p.ID, want)
		}
	}
	if summary.Attempted != 5 || summary.Succeeded != 3 || summary.Failed != 2 {
		t.Fatalf("summary=%+v", summary)
	}
	if summary.APICalls != 5 {
		t.Fatalf("APICalls=%d, want 5 (failures still consume a call)", summary.APICalls)
	}
}

func TestGenerateProfiles_UnparseableResponseCountsAsFailure(t *testing.T) {
	t.Parallel()

	gen := &scriptedGenerator{responses: []string{"I am a helpful assistant."}}
	var warnings []string
	summary, err := GenerateProfiles(context.Background(), gen, testCohorts(1), GenerateOptions{
		Logf: func(format string, args ...any) { warnings = append(warnings, fmt.Sprintf(format, args...)) },
	}, func(PersonalityProfile) error {
		t.Fatalf("emit called for unusable response")
		return nil
	})
	if err != nil {
		t.Fatalf("GenerateProfiles: %v", err)
	}
	if summary.Failed != 1 || summary.Succeeded != 0 {
		t.Fatalf("summary=%+v", summary)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "CORE_TRAITS") {
		t.Fatalf("warnings=%v", warnings)
	}
}

func TestGenerateProfiles_CancelKeepsEmitted(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	gen := &scriptedGenerator{responses: []string{usableResponse("calm"), usableResponse("bold"), usableResponse("dry")}}

	var emitted []PersonalityProfile
	summary, err := GenerateProfiles(ctx, gen, testCohorts(3), GenerateOptions{}, func(p PersonalityProfile) error {
		emitted = append(emitted, p)
		if len(emitted) == 2 {
			cancel()
		}
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err=%v, want context.Canceled", err)
	}
	if len(emitted) != 2 {
		t.Fatalf("emitted=%d, want 2 (already-emitted profiles stay)", len(emitted))
	}
	if summary.Succeeded != 2 || summary.Attempted != 2 {
		t.Fatalf("summary=%+v", summary)
	}
	if gen.calls != 2 {
		t.Fatalf("calls=%d, want 2 (no call after cancellation)", gen.calls)
	}
}

func TestGenerateProfiles_EmitErrorIsFatal(t *testing.T) {
	t.Parallel()

	gen := &scriptedGenerator{responses: []string{usableResponse("calm"), usableResponse("bold")}}
	sentinel := errors.New("disk full")
	_, err := GenerateProfiles(context.Background(), gen, testCohorts(2), GenerateOptions{}, func(PersonalityProfile) error {
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("err=%v, want wrapped %v", err, sentinel)
	}
	if gen.calls != 1 {
		t.Fatalf("calls=%d, want 1 (loop stops on emit failure)", gen.calls)
	}
}

func TestGenerateProfiles_NilGenerator(t *testing.T) {
	t.Parallel()

	_, err := GenerateProfiles(context.Background(), nil, testCohorts(1), GenerateOptions{}, func(PersonalityProfile) error { return nil })
	if err == nil {
		t.Fatalf("expected error for nil generator")
	}
}

func TestGenerateProfiles_PromptContainsPosts(t *testing.T) {
	t.Parallel()

	cohorts := []Cohort{{
		Strategy:   StrategyCommunity,
		Identifier: "anxiety",
		Subreddit:  "anxiety",
		Posts: []Post{
			{PostID: "a1", Subreddit: "anxiety", FullText: "rough week honestly", WordCount: 3},
			{PostID: "a2", Subreddit: "anxiety", FullText: "thanks everyone", WordCount: 2},
		},
		TotalWords: 5,
	}}
	gen := &scriptedGenerator{responses: []string{usableResponse("calm")}}
	if _, err := GenerateProfiles(context.Background(), gen, cohorts, GenerateOptions{}, func(PersonalityProfile) error { return nil }); err != nil {
		t.Fatalf("GenerateProfiles: %v", err)
	}
	prompt := gen.prompts[0]
	if !strings.Contains(prompt, "rough week honestly") || !strings.Contains(prompt, "thanks everyone") {
		t.Fatalf("prompt missing post text:\n%s", prompt)
	}
	if !strings.Contains(prompt, PostSeparator) {
		t.Fatalf("prompt missing separator:\n%s", prompt)
	}
	if !strings.Contains(prompt, SectionCoreTraits) {
		t.Fatalf("prompt missing schema section names:\n%s", prompt)
	}
}
