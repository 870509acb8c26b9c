package preprocess

import (
	"context"
	"strings"

	"ai-stemtutor-be/internal/constant"
)

// PrepareDefine normalizes a term: cleans and lowercases it, resolves the
// subject and attaches the grade level unchanged (defaulted when absent).
func (p *Preprocessor) PrepareDefine(ctx context.Context, term, subjectHint, gradeLevel string) *NormalizedRequest {
	cleaned := strings.ToLower(cleanText(term))

	if gradeLevel = strings.TrimSpace(gradeLevel); gradeLevel == "" {
		gradeLevel = constant.DefaultGradeLevel
	}

	return &NormalizedRequest{
		Text:       cleaned,
		Subject:    p.detectSubject(ctx, cleaned, subjectHint),
		GradeLevel: gradeLevel,
	}
}
