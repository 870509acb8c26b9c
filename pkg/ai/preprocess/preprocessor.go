package preprocess

import (
	"context"
	"log"
	"strings"
	"time"
	"unicode"

	"ai-stemtutor-be/internal/constant"
	"ai-stemtutor-be/pkg/ai/provider"
)

// NormalizedRequest is the cleaned, classified form of a submission, ready
// for the provider. It is a pure value; the preprocessor never touches the
// interaction record.
type NormalizedRequest struct {
	Text            string
	Subject         string
	GradeLevel      string   // define requests only
	MathExpressions []string // solve requests only
	HasEquations    bool
}

// Preprocessor normalizes raw solve/define input and resolves the subject.
// Preprocessing cannot fail: malformed input is normalized, never rejected,
// and a classification failure degrades to the default subject.
type Preprocessor struct {
	provider        provider.AIProvider
	defaultSubject  string
	classifyTimeout time.Duration
}

func NewPreprocessor(aiProvider provider.AIProvider, defaultSubject string) *Preprocessor {
	if defaultSubject == "" {
		defaultSubject = constant.DefaultSubject
	}
	return &Preprocessor{
		provider:        aiProvider,
		defaultSubject:  defaultSubject,
		classifyTimeout: 15 * time.Second,
	}
}

// cleanText collapses whitespace runs and strips control characters.
func cleanText(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			continue
		}
		b.WriteRune(r)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// detectSubject resolves the subject for a piece of content. A supported
// hint wins outright. Otherwise a single capped classification call is made;
// any failure there falls back to the default subject.
func (p *Preprocessor) detectSubject(ctx context.Context, text, hint string) string {
	hint = strings.ToLower(strings.TrimSpace(hint))
	if hint != "" && constant.IsSupportedSubject(hint) {
		return hint
	}

	if p.provider == nil {
		return p.defaultSubject
	}

	classifyCtx, cancel := context.WithTimeout(ctx, p.classifyTimeout)
	defer cancel()

	prompt := provider.BuildClassifyPrompt(text, constant.SupportedSubjects)
	response, err := p.provider.Complete(classifyCtx, prompt, provider.ClassifySubjectOptions()...)
	if err != nil {
		log.Printf("[WARN] Subject classification failed, falling back to %q: %v", p.defaultSubject, err)
		return p.defaultSubject
	}

	detected := strings.ToLower(strings.TrimSpace(response))
	if constant.IsSupportedSubject(detected) {
		return detected
	}
	return p.defaultSubject
}
