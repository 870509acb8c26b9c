package provider

import (
	"errors"
	"regexp"
	"strings"
)

// Parsing of the tagged completion format. The model is told to answer in
// flat pseudo-XML tags; regexes are enough here and tolerate surrounding
// prose or markdown fences the model sometimes adds anyway. Optional
// sections may be missing, the terminal field (answer / basic definition)
// may not.

var (
	stepRe        = regexp.MustCompile(`(?s)<step>(.*?)</step>`)
	explanationRe = regexp.MustCompile(`(?s)<explanation>(.*?)</explanation>`)
	conceptsRe    = regexp.MustCompile(`(?s)<concepts>(.*?)</concepts>`)
	answerRe      = regexp.MustCompile(`(?s)<answer>(.*?)</answer>`)

	basicDefRe    = regexp.MustCompile(`(?s)<basic_definition>(.*?)</basic_definition>`)
	detailedDefRe = regexp.MustCompile(`(?s)<detailed_definition>(.*?)</detailed_definition>`)
	exampleRe     = regexp.MustCompile(`(?s)<example>(.*?)</example>`)
	relatedRe     = regexp.MustCompile(`(?s)<related>(.*?)</related>`)
)

var (
	ErrMissingAnswer     = errors.New("response has no <answer> section")
	ErrMissingDefinition = errors.New("response has no <basic_definition> section")
)

// ParseSolution extracts a structured solution from raw model output.
func ParseSolution(raw string) (*Solution, error) {
	answer := extractOne(answerRe, raw)
	if answer == "" {
		return nil, ErrMissingAnswer
	}

	solution := &Solution{
		FinalAnswer: answer,
	}

	for _, m := range stepRe.FindAllStringSubmatch(raw, -1) {
		block := m[1]
		explanation := extractOne(explanationRe, block)
		if explanation == "" {
			// Tolerate a bare step body without the inner tag.
			explanation = strings.TrimSpace(block)
		}
		if explanation == "" {
			continue
		}
		solution.Steps = append(solution.Steps, SolutionStep{
			Explanation: explanation,
			KeyConcepts: splitList(extractOne(conceptsRe, block)),
		})
	}

	return solution, nil
}

// ParseDefinition extracts a structured definition from raw model output.
func ParseDefinition(raw string) (*Definition, error) {
	basic := extractOne(basicDefRe, raw)
	if basic == "" {
		return nil, ErrMissingDefinition
	}

	definition := &Definition{
		BasicDefinition:    basic,
		DetailedDefinition: extractOne(detailedDefRe, raw),
		RelatedConcepts:    splitList(extractOne(relatedRe, raw)),
	}

	for _, m := range exampleRe.FindAllStringSubmatch(raw, -1) {
		if example := strings.TrimSpace(m[1]); example != "" {
			definition.Examples = append(definition.Examples, example)
		}
	}

	return definition, nil
}

func extractOne(re *regexp.Regexp, s string) string {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var items []string
	for _, part := range strings.Split(s, ",") {
		if item := strings.TrimSpace(part); item != "" {
			items = append(items, item)
		}
	}
	return items
}
