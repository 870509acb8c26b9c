package entity

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type InteractionKind string

const (
	KindSolve  InteractionKind = "solve"
	KindDefine InteractionKind = "define"
)

type InteractionStatus string

const (
	StatusPending    InteractionStatus = "pending"
	StatusProcessing InteractionStatus = "processing"
	StatusCompleted  InteractionStatus = "completed"
	StatusFailed     InteractionStatus = "failed"
)

var ErrInvalidTransition = errors.New("invalid interaction status transition")

// SolveRequest is the submitted payload of a solve interaction.
type SolveRequest struct {
	Text    string `json:"text"`
	Subject string `json:"subject,omitempty"`
}

// DefineRequest is the submitted payload of a define interaction.
type DefineRequest struct {
	Term       string `json:"term"`
	Subject    string `json:"subject,omitempty"`
	GradeLevel string `json:"grade_level,omitempty"`
}

// InteractionRequest is a tagged variant keyed by Kind: exactly one of
// Solve/Define is set.
type InteractionRequest struct {
	Kind   InteractionKind `json:"kind"`
	Solve  *SolveRequest   `json:"solve,omitempty"`
	Define *DefineRequest  `json:"define,omitempty"`
}

// SolutionStep is one step of a completed solve result.
type SolutionStep struct {
	Explanation string   `json:"explanation"`
	KeyConcepts []string `json:"key_concepts,omitempty"`
}

// SolveResult is the provider's structured solution.
type SolveResult struct {
	Steps       []SolutionStep `json:"steps"`
	FinalAnswer string         `json:"final_answer"`
	Subject     string         `json:"subject"`
}

// DefineResult is the provider's structured definition.
type DefineResult struct {
	BasicDefinition    string   `json:"basic_definition"`
	DetailedDefinition string   `json:"detailed_definition,omitempty"`
	Examples           []string `json:"examples,omitempty"`
	RelatedConcepts    []string `json:"related_concepts,omitempty"`
}

// InteractionResult is a tagged variant keyed by Kind: exactly one of
// Solve/Define is set.
type InteractionResult struct {
	Kind   InteractionKind `json:"kind"`
	Solve  *SolveResult    `json:"solve,omitempty"`
	Define *DefineResult   `json:"define,omitempty"`
}

// Interaction is one submitted AI request and its lifecycle record. Status
// moves strictly forward along pending -> processing -> {completed, failed};
// once terminal the record is immutable.
type Interaction struct {
	Id           uuid.UUID
	UserId       uuid.UUID
	Kind         InteractionKind
	Status       InteractionStatus
	Request      InteractionRequest
	Response     *InteractionResult
	Error        string
	AttemptCount int
	CreatedAt    time.Time
	CompletedAt  *time.Time
}

// NewInteraction allocates a pending interaction owned by userId.
func NewInteraction(userId uuid.UUID, request InteractionRequest) *Interaction {
	return &Interaction{
		Id:        uuid.New(),
		UserId:    userId,
		Kind:      request.Kind,
		Status:    StatusPending,
		Request:   request,
		CreatedAt: time.Now(),
	}
}

func (i *Interaction) IsTerminal() bool {
	return i.Status == StatusCompleted || i.Status == StatusFailed
}

// MarkProcessing transitions pending -> processing.
func (i *Interaction) MarkProcessing() error {
	if i.Status != StatusPending {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, i.Status, StatusProcessing)
	}
	i.Status = StatusProcessing
	return nil
}

// MarkCompleted transitions processing -> completed, storing the result and
// stamping CompletedAt.
func (i *Interaction) MarkCompleted(result *InteractionResult) error {
	if i.Status != StatusProcessing {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, i.Status, StatusCompleted)
	}
	now := time.Now()
	i.Status = StatusCompleted
	i.Response = result
	i.Error = ""
	i.CompletedAt = &now
	return nil
}

// MarkFailed transitions processing -> failed, storing the error description
// and stamping CompletedAt.
func (i *Interaction) MarkFailed(message string) error {
	if i.Status != StatusProcessing {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, i.Status, StatusFailed)
	}
	now := time.Now()
	i.Status = StatusFailed
	i.Response = nil
	i.Error = message
	i.CompletedAt = &now
	return nil
}
