package personas

import (
	"context"
	"fmt"
	"time"
)

// TextGenerator is the one external operation the pipeline depends on.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, maxOutputTokens int) (string, error)
}

// GenerateOptions configures the profile synthesis loop.
type GenerateOptions struct {
	// MaxPostChars bounds each member post's contribution to the prompt.
	MaxPostChars int

	// MaxOutputTokens bounds each generation response.
	MaxOutputTokens int

	// Delay is the mandatory pause after every call, successful or not.
	Delay time.Duration

	// Logf receives a non-fatal warning per skipped cohort. Nil disables logging.
	Logf func(format string, args ...any)
}

// DefaultGenerateOptions returns the reference pipeline's call parameters.
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{
		MaxPostChars:    4000,
		MaxOutputTokens: 1500,
		Delay:           2 * time.Second,
	}
}

// GenerateProfiles processes cohorts strictly in sequence: render prompt, one
// blocking generation call, mandatory delay, best-effort parse, emit. A cohort
// whose call fails or whose response lacks CORE_TRAITS is skipped and counted;
// it never aborts the run. Emitted profiles get dense 1-based personality_NNN
// identifiers regardless of skips.
//
// emit is called once per successful profile, in emission order, so the caller
// can append to durable output as the run proceeds. An emit error is fatal (it
// means output can no longer be recorded). Context cancellation stops the loop
// before the next cohort; everything already emitted stays intact and the
// partial summary is still returned.
func GenerateProfiles(ctx context.Context, gen TextGenerator, cohorts []Cohort, opts GenerateOptions, emit func(PersonalityProfile) error) (RunSummary, error) {
	summary := NewRunSummary()
	if gen == nil {
		return summary, fmt.Errorf("GenerateProfiles: generator is nil")
	}
	if opts.MaxOutputTokens <= 0 {
		opts.MaxOutputTokens = DefaultGenerateOptions().MaxOutputTokens
	}
	logf := opts.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}

	emitted := 0
	for _, c := range cohorts {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		summary.recordAttempt(c.Strategy)

		prompt := BuildPrompt(c, opts.MaxPostChars)
		raw, err := gen.Generate(ctx, prompt, opts.MaxOutputTokens)
		summary.APICalls++
		sleepWithContext(ctx, opts.Delay)
		if err != nil {
			summary.recordFailure(c.Strategy)
			logf("warning: cohort %s (%s): generation failed: %v", c.Identifier, c.Strategy, err)
			continue
		}

		fields := ParseProfileText(raw)
		if !fields.HasCoreTraits() {
			summary.recordFailure(c.Strategy)
			logf("warning: cohort %s (%s): response has no usable CORE_TRAITS section", c.Identifier, c.Strategy)
			continue
		}

		profile := BuildProfile(c, raw, fields)
		emitted++
		profile.ID = fmt.Sprintf("personality_%03d", emitted)
		if err := emit(profile); err != nil {
			return summary, fmt.Errorf("GenerateProfiles: emit %s: %w", profile.ID, err)
		}
		summary.recordSuccess(profile)
	}
	return summary, nil
}

// sleepWithContext waits the rate-limit courtesy delay but wakes early on
// cancellation so an interrupt doesn't hang on the pause.
func sleepWithContext(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
