package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorClass
	}{
		{"transient provider error", Transient("ollama.chat", errors.New("connection refused")), ClassTransient},
		{"invalid response", InvalidResponse("gemini.chat", errors.New("empty candidates")), ClassInvalidResponse},
		{"fatal provider error", Fatal("gemini.chat", errors.New("bad api key")), ClassFatal},
		{"wrapped provider error", fmt.Errorf("solve: %w", Transient("x", errors.New("timeout"))), ClassTransient},
		{"deadline exceeded", context.DeadlineExceeded, ClassTransient},
		{"context canceled", context.Canceled, ClassTransient},
		{"unknown error", errors.New("something odd"), ClassFatal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.err); got != tt.want {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		status int
		want   ErrorClass
	}{
		{401, ClassFatal},
		{403, ClassFatal},
		{408, ClassTransient},
		{429, ClassTransient},
		{500, ClassTransient},
		{503, ClassTransient},
		{400, ClassFatal},
		{404, ClassFatal},
	}

	for _, tt := range tests {
		if got := ClassifyStatus(tt.status); got != tt.want {
			t.Errorf("ClassifyStatus(%d) = %v, want %v", tt.status, got, tt.want)
		}
	}
}
