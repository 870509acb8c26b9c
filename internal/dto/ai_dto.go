package dto

import (
	"time"

	"github.com/google/uuid"
)

type SolveProblemRequest struct {
	Text    string `json:"text" validate:"required"`
	Subject string `json:"subject"`
}

type DefineTermRequest struct {
	Term       string `json:"term" validate:"required"`
	Subject    string `json:"subject"`
	GradeLevel string `json:"grade_level"`
}

type SubmitInteractionResponse struct {
	Id     uuid.UUID `json:"id"`
	Status string    `json:"status"`
}

type SolutionStepResponse struct {
	Explanation string   `json:"explanation"`
	KeyConcepts []string `json:"key_concepts,omitempty"`
}

type SolveResultResponse struct {
	Steps       []SolutionStepResponse `json:"steps"`
	FinalAnswer string                 `json:"final_answer"`
	Subject     string                 `json:"subject"`
}

type DefineResultResponse struct {
	BasicDefinition    string   `json:"basic_definition"`
	DetailedDefinition string   `json:"detailed_definition,omitempty"`
	Examples           []string `json:"examples,omitempty"`
	RelatedConcepts    []string `json:"related_concepts,omitempty"`
}

// InteractionResultResponse carries exactly one of Solve/Define, matching
// the interaction kind.
type InteractionResultResponse struct {
	Solve  *SolveResultResponse  `json:"solve,omitempty"`
	Define *DefineResultResponse `json:"define,omitempty"`
}

type InteractionStatusResponse struct {
	Id           uuid.UUID                  `json:"id"`
	Kind         string                     `json:"kind"`
	Status       string                     `json:"status"`
	AttemptCount int                        `json:"attempt_count"`
	CreatedAt    time.Time                  `json:"created_at"`
	CompletedAt  *time.Time                 `json:"completed_at,omitempty"`
	Response     *InteractionResultResponse `json:"response,omitempty"`
	Error        string                     `json:"error,omitempty"`
}

// InteractionSubmittedMessage is the queue payload linking a background task
// to its interaction record.
type InteractionSubmittedMessage struct {
	InteractionId uuid.UUID `json:"interaction_id"`
}
