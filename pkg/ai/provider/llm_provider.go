package provider

import (
	"context"

	"ai-stemtutor-be/pkg/llm"
)

// Request parameters carried over from the product's tuning: lower
// temperatures for solving and defining, 1500 tokens per completion.
const (
	defaultTemperature    = 0.7
	solveTemperature      = 0.3
	definitionTemperature = 0.3
	maxCompletionTokens   = 1500
)

// llmBackedProvider implements AIProvider on top of any llm.LLMProvider by
// building tagged prompts and validating the tagged output.
type llmBackedProvider struct {
	client llm.LLMProvider
}

var _ AIProvider = &llmBackedProvider{}

// New wraps an LLM backend as an AIProvider.
func New(client llm.LLMProvider) AIProvider {
	return &llmBackedProvider{client: client}
}

func (p *llmBackedProvider) Complete(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	options := []llm.Option{
		llm.WithTemperature(defaultTemperature),
		llm.WithMaxTokens(maxCompletionTokens),
	}
	options = append(options, opts...)
	return p.client.Generate(ctx, prompt, options...)
}

func (p *llmBackedProvider) Solve(ctx context.Context, input SolveInput) (*Solution, error) {
	raw, err := p.client.Generate(ctx, buildSolvePrompt(input),
		llm.WithTemperature(solveTemperature),
		llm.WithMaxTokens(maxCompletionTokens),
		llm.WithSystem(solveSystemPrompt),
	)
	if err != nil {
		return nil, err
	}

	solution, err := ParseSolution(raw)
	if err != nil {
		return nil, llm.InvalidResponse("provider.solve", err)
	}
	solution.Subject = input.Subject
	return solution, nil
}

func (p *llmBackedProvider) Define(ctx context.Context, input DefineInput) (*Definition, error) {
	raw, err := p.client.Generate(ctx, buildDefinePrompt(input),
		llm.WithTemperature(definitionTemperature),
		llm.WithMaxTokens(maxCompletionTokens),
		llm.WithSystem(defineSystemPrompt),
	)
	if err != nil {
		return nil, err
	}

	definition, err := ParseDefinition(raw)
	if err != nil {
		return nil, llm.InvalidResponse("provider.define", err)
	}
	return definition, nil
}

// ClassifySubjectOptions returns the completion options for the
// subject-classification call: near-deterministic and short.
func ClassifySubjectOptions() []llm.Option {
	return []llm.Option{
		llm.WithTemperature(0.1),
		llm.WithMaxTokens(16),
		llm.WithSystem(classifySystemPrompt),
	}
}
