package provider

import (
	"context"
	"errors"
	"strings"
	"testing"

	"ai-stemtutor-be/pkg/llm"
)

// scriptedLLM returns canned completions and records prompts.
type scriptedLLM struct {
	response string
	err      error
	prompts  []string
}

func (s *scriptedLLM) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	if len(history) > 0 {
		s.prompts = append(s.prompts, history[len(history)-1].Content)
	}
	return s.response, s.err
}

func (s *scriptedLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	s.prompts = append(s.prompts, prompt)
	return s.response, s.err
}

func TestSolveParsesTaggedOutput(t *testing.T) {
	client := &scriptedLLM{response: `<step><explanation>Divide by 2</explanation></step><answer>x = 2</answer>`}
	p := New(client)

	solution, err := p.Solve(context.Background(), SolveInput{Problem: "2x = 4", Subject: "algebra"})
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if solution.FinalAnswer != "x = 2" {
		t.Errorf("FinalAnswer = %q", solution.FinalAnswer)
	}
	if solution.Subject != "algebra" {
		t.Errorf("Subject = %q, want algebra", solution.Subject)
	}
	if len(client.prompts) != 1 || !strings.Contains(client.prompts[0], "2x = 4") {
		t.Errorf("prompt did not include the problem: %v", client.prompts)
	}
}

func TestSolveMalformedOutputIsInvalidResponse(t *testing.T) {
	client := &scriptedLLM{response: "Sure! The answer is two."}
	p := New(client)

	_, err := p.Solve(context.Background(), SolveInput{Problem: "2x = 4", Subject: "algebra"})
	if err == nil {
		t.Fatal("Solve() expected error, got nil")
	}
	if got := llm.Classify(err); got != llm.ClassInvalidResponse {
		t.Errorf("Classify() = %v, want %v", got, llm.ClassInvalidResponse)
	}
}

func TestSolvePropagatesProviderError(t *testing.T) {
	providerErr := llm.Transient("ollama.chat", errors.New("connection refused"))
	client := &scriptedLLM{err: providerErr}
	p := New(client)

	_, err := p.Solve(context.Background(), SolveInput{Problem: "2x = 4", Subject: "algebra"})
	if got := llm.Classify(err); got != llm.ClassTransient {
		t.Errorf("Classify() = %v, want %v", got, llm.ClassTransient)
	}
}

func TestDefineParsesTaggedOutput(t *testing.T) {
	client := &scriptedLLM{response: `<basic_definition>A three-sided polygon.</basic_definition><related>polygon</related>`}
	p := New(client)

	definition, err := p.Define(context.Background(), DefineInput{Term: "triangle", Subject: "geometry", GradeLevel: "high school"})
	if err != nil {
		t.Fatalf("Define() error = %v", err)
	}
	if definition.BasicDefinition != "A three-sided polygon." {
		t.Errorf("BasicDefinition = %q", definition.BasicDefinition)
	}
}

func TestDefineMissingDefinitionIsInvalidResponse(t *testing.T) {
	client := &scriptedLLM{response: "a triangle has three sides"}
	p := New(client)

	_, err := p.Define(context.Background(), DefineInput{Term: "triangle", Subject: "geometry", GradeLevel: "high school"})
	if got := llm.Classify(err); got != llm.ClassInvalidResponse {
		t.Errorf("Classify() = %v, want %v", got, llm.ClassInvalidResponse)
	}
}
