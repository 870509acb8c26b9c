package preprocess

import (
	"context"
	"regexp"
	"strings"
)

// Math symbol normalization: unicode operators to ASCII, then uniform
// spacing around operators so expression extraction sees one shape.
var mathSymbolReplacer = strings.NewReplacer(
	"×", "*",
	"÷", "/",
	"−", "-",
	"=", " = ",
	"+", " + ",
	"-", " - ",
	"*", " * ",
	"/", " / ",
)

// Patterns for expressions worth surfacing to the provider as hints.
var mathExpressionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:\d+\.?\d*|\.\d+)\s*[-+*/=]\s*(?:\d+\.?\d*|\.\d+)`),       // basic arithmetic
	regexp.MustCompile(`[a-zA-Z]\s*[-+*/=]\s*\d+`),                                  // variable operations
	regexp.MustCompile(`[a-zA-Z]\([a-zA-Z]\)`),                                      // function notation
	regexp.MustCompile(`\b\w+\s*=\s*[-+]?\d*\.?\d+`),                                // assignments
	regexp.MustCompile(`√\d+`),                                                      // square roots
	regexp.MustCompile(`\b[xyz]\b`),                                                 // common variables
	regexp.MustCompile(`\b[abc]\b`),                                                 // common coefficients
	regexp.MustCompile(`\(\s*[-+]?\d*\.?\d+\s*[,\s]\s*[-+]?\d*\.?\d+\s*\)`),         // coordinates
}

// PrepareSolve normalizes a STEM problem: cleans the text, normalizes math
// notation, extracts candidate expressions and resolves the subject.
func (p *Preprocessor) PrepareSolve(ctx context.Context, problem, subjectHint string) *NormalizedRequest {
	cleaned := cleanText(problem)
	cleaned = normalizeMathSymbols(cleaned)

	expressions := extractMathExpressions(cleaned)

	return &NormalizedRequest{
		Text:            cleaned,
		Subject:         p.detectSubject(ctx, cleaned, subjectHint),
		MathExpressions: expressions,
		HasEquations:    len(expressions) > 0,
	}
}

func normalizeMathSymbols(text string) string {
	return strings.Join(strings.Fields(mathSymbolReplacer.Replace(text)), " ")
}

func extractMathExpressions(text string) []string {
	var expressions []string
	seen := make(map[string]bool)
	for _, pattern := range mathExpressionPatterns {
		for _, match := range pattern.FindAllString(text, -1) {
			expr := strings.TrimSpace(match)
			if expr != "" && !seen[expr] {
				seen[expr] = true
				expressions = append(expressions, expr)
			}
		}
	}
	return expressions
}
