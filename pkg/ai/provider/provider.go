package provider

import (
	"context"

	"ai-stemtutor-be/pkg/llm"
)

// SolutionStep is one step of a worked solution.
type SolutionStep struct {
	Explanation string   `json:"explanation"`
	KeyConcepts []string `json:"key_concepts,omitempty"`
}

// Solution is the structured result of a solve call.
type Solution struct {
	Steps       []SolutionStep `json:"steps"`
	FinalAnswer string         `json:"final_answer"`
	Subject     string         `json:"subject"`
}

// Definition is the structured result of a define call.
type Definition struct {
	BasicDefinition    string   `json:"basic_definition"`
	DetailedDefinition string   `json:"detailed_definition,omitempty"`
	Examples           []string `json:"examples,omitempty"`
	RelatedConcepts    []string `json:"related_concepts,omitempty"`
}

// SolveInput carries a preprocessed problem to the provider.
type SolveInput struct {
	Problem string
	Subject string

	// Strict switches the prompt to the harsher formatting variant. Set by
	// the retry layer after a structurally invalid response.
	Strict bool
}

// DefineInput carries a preprocessed term to the provider.
type DefineInput struct {
	Term       string
	Subject    string
	GradeLevel string
	Strict     bool
}

// AIProvider is the capability set the orchestrator needs from an upstream
// AI vendor. All operations are blocking network calls bounded by ctx.
type AIProvider interface {
	// Complete sends a raw prompt and returns the raw completion text.
	Complete(ctx context.Context, prompt string, opts ...llm.Option) (string, error)

	// Solve returns a stepwise solution plus a final answer. A response
	// without a final answer is an invalid-response error.
	Solve(ctx context.Context, input SolveInput) (*Solution, error)

	// Define returns a structured definition. A response without the basic
	// definition is an invalid-response error.
	Define(ctx context.Context, input DefineInput) (*Definition, error)
}
