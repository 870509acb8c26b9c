package entity

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func newSolveInteraction() *Interaction {
	return NewInteraction(uuid.New(), InteractionRequest{
		Kind:  KindSolve,
		Solve: &SolveRequest{Text: "2x + 3 = 7", Subject: "algebra"},
	})
}

func TestNewInteraction(t *testing.T) {
	owner := uuid.New()
	i := NewInteraction(owner, InteractionRequest{
		Kind:  KindSolve,
		Solve: &SolveRequest{Text: "2x = 4"},
	})

	if i.Status != StatusPending {
		t.Errorf("Status = %v, want pending", i.Status)
	}
	if i.Kind != KindSolve {
		t.Errorf("Kind = %v, want solve", i.Kind)
	}
	if i.UserId != owner {
		t.Errorf("UserId = %v, want %v", i.UserId, owner)
	}
	if i.Id == uuid.Nil {
		t.Error("Id is nil")
	}
	if i.IsTerminal() {
		t.Error("new interaction should not be terminal")
	}
	if i.CompletedAt != nil {
		t.Error("CompletedAt should be nil before a terminal state")
	}
}

func TestLifecycleCompleted(t *testing.T) {
	i := newSolveInteraction()

	if err := i.MarkProcessing(); err != nil {
		t.Fatalf("MarkProcessing() error = %v", err)
	}
	if i.Status != StatusProcessing {
		t.Errorf("Status = %v, want processing", i.Status)
	}

	result := &InteractionResult{
		Kind:  KindSolve,
		Solve: &SolveResult{FinalAnswer: "x = 2", Subject: "algebra"},
	}
	if err := i.MarkCompleted(result); err != nil {
		t.Fatalf("MarkCompleted() error = %v", err)
	}

	if !i.IsTerminal() {
		t.Error("completed interaction should be terminal")
	}
	if i.Response == nil {
		t.Error("Response is nil after completion")
	}
	if i.Error != "" {
		t.Errorf("Error = %q, want empty", i.Error)
	}
	if i.CompletedAt == nil {
		t.Error("CompletedAt is nil after completion")
	}
}

func TestLifecycleFailed(t *testing.T) {
	i := newSolveInteraction()
	_ = i.MarkProcessing()

	if err := i.MarkFailed("provider failed after 3 attempts: transient: timeout"); err != nil {
		t.Fatalf("MarkFailed() error = %v", err)
	}

	if !i.IsTerminal() {
		t.Error("failed interaction should be terminal")
	}
	if i.Response != nil {
		t.Error("Response must be nil on failure")
	}
	if i.Error == "" {
		t.Error("Error must be set on failure")
	}
	if i.CompletedAt == nil {
		t.Error("CompletedAt is nil after failure")
	}
}

func TestIllegalTransitions(t *testing.T) {
	t.Run("pending cannot complete directly", func(t *testing.T) {
		i := newSolveInteraction()
		if err := i.MarkCompleted(&InteractionResult{Kind: KindSolve}); !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("error = %v, want ErrInvalidTransition", err)
		}
	})

	t.Run("pending cannot fail directly", func(t *testing.T) {
		i := newSolveInteraction()
		if err := i.MarkFailed("boom"); !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("error = %v, want ErrInvalidTransition", err)
		}
	})

	t.Run("terminal state is immutable", func(t *testing.T) {
		i := newSolveInteraction()
		_ = i.MarkProcessing()
		_ = i.MarkCompleted(&InteractionResult{Kind: KindSolve, Solve: &SolveResult{FinalAnswer: "x = 2"}})

		if err := i.MarkProcessing(); !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("MarkProcessing after completed: error = %v, want ErrInvalidTransition", err)
		}
		if err := i.MarkFailed("late failure"); !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("MarkFailed after completed: error = %v, want ErrInvalidTransition", err)
		}
		if i.Error != "" || i.Response == nil {
			t.Error("terminal record mutated by rejected transition")
		}
	})

	t.Run("processing cannot be re-entered", func(t *testing.T) {
		i := newSolveInteraction()
		_ = i.MarkProcessing()
		if err := i.MarkProcessing(); !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("error = %v, want ErrInvalidTransition", err)
		}
	})
}
