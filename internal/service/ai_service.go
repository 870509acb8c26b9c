package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ai-stemtutor-be/internal/dto"
	"ai-stemtutor-be/internal/entity"
	"ai-stemtutor-be/internal/pkg/apperrors"
	"ai-stemtutor-be/internal/pkg/logger"
	"ai-stemtutor-be/internal/repository/contract"
	"ai-stemtutor-be/pkg/ai/preprocess"
	"ai-stemtutor-be/pkg/ai/provider"
	"ai-stemtutor-be/pkg/ai/retry"
	"ai-stemtutor-be/pkg/events"
	"ai-stemtutor-be/pkg/llm"
	pktNats "ai-stemtutor-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

const moduleAIService = "AI_SERVICE"

// IAIService drives a single interaction from submission to its terminal
// state. Submit and GetStatus are the synchronous surface; Run is invoked by
// the background worker only.
type IAIService interface {
	SubmitSolve(ctx context.Context, userId uuid.UUID, req *dto.SolveProblemRequest) (*dto.SubmitInteractionResponse, error)
	SubmitDefine(ctx context.Context, userId uuid.UUID, req *dto.DefineTermRequest) (*dto.SubmitInteractionResponse, error)
	GetStatus(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.InteractionStatusResponse, error)
	ListInteractions(ctx context.Context, userId uuid.UUID, limit, offset int) ([]*dto.InteractionStatusResponse, error)

	// Run executes the interaction's background task. Every failure,
	// including panics, is absorbed into a terminal failed record.
	Run(ctx context.Context, id uuid.UUID)
}

type aiService struct {
	interactionRepo contract.InteractionRepository
	preprocessor    *preprocess.Preprocessor
	aiProvider      provider.AIProvider
	retryPolicy     *retry.Policy
	pubSub          *gochannel.GoChannel
	submitTopic     string
	eventPublisher  *pktNats.Publisher
	requestTimeout  time.Duration
	sysLogger       logger.ILogger
}

func NewAIService(
	interactionRepo contract.InteractionRepository,
	preprocessor *preprocess.Preprocessor,
	aiProvider provider.AIProvider,
	retryPolicy *retry.Policy,
	pubSub *gochannel.GoChannel,
	submitTopic string,
	eventPublisher *pktNats.Publisher,
	requestTimeout time.Duration,
	sysLogger logger.ILogger,
) IAIService {
	return &aiService{
		interactionRepo: interactionRepo,
		preprocessor:    preprocessor,
		aiProvider:      aiProvider,
		retryPolicy:     retryPolicy,
		pubSub:          pubSub,
		submitTopic:     submitTopic,
		eventPublisher:  eventPublisher,
		requestTimeout:  requestTimeout,
		sysLogger:       sysLogger,
	}
}

// --- Synchronous surface ---

func (s *aiService) SubmitSolve(ctx context.Context, userId uuid.UUID, req *dto.SolveProblemRequest) (*dto.SubmitInteractionResponse, error) {
	return s.submit(ctx, userId, entity.InteractionRequest{
		Kind:  entity.KindSolve,
		Solve: &entity.SolveRequest{Text: req.Text, Subject: req.Subject},
	})
}

func (s *aiService) SubmitDefine(ctx context.Context, userId uuid.UUID, req *dto.DefineTermRequest) (*dto.SubmitInteractionResponse, error) {
	return s.submit(ctx, userId, entity.InteractionRequest{
		Kind:   entity.KindDefine,
		Define: &entity.DefineRequest{Term: req.Term, Subject: req.Subject, GradeLevel: req.GradeLevel},
	})
}

func (s *aiService) submit(ctx context.Context, userId uuid.UUID, request entity.InteractionRequest) (*dto.SubmitInteractionResponse, error) {
	interaction := entity.NewInteraction(userId, request)

	if err := s.interactionRepo.Create(ctx, interaction); err != nil {
		return nil, err
	}

	msgPayload := dto.InteractionSubmittedMessage{InteractionId: interaction.Id}
	msgJson, err := json.Marshal(msgPayload)
	if err != nil {
		return nil, err
	}
	if err := s.pubSub.Publish(s.submitTopic, message.NewMessage(watermill.NewUUID(), msgJson)); err != nil {
		return nil, fmt.Errorf("enqueue interaction %s: %w", interaction.Id, err)
	}

	s.sysLogger.Info(moduleAIService, "Interaction submitted", map[string]interface{}{
		"interaction_id": interaction.Id.String(),
		"kind":           string(interaction.Kind),
	})

	return &dto.SubmitInteractionResponse{
		Id:     interaction.Id,
		Status: string(interaction.Status),
	}, nil
}

func (s *aiService) GetStatus(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.InteractionStatusResponse, error) {
	interaction, err := s.interactionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if interaction == nil {
		return nil, apperrors.ErrInteractionNotFound
	}
	if interaction.UserId != userId {
		return nil, apperrors.ErrInteractionForbidden
	}
	return toStatusResponse(interaction), nil
}

func (s *aiService) ListInteractions(ctx context.Context, userId uuid.UUID, limit, offset int) ([]*dto.InteractionStatusResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	interactions, err := s.interactionRepo.FindAllByUser(ctx, userId, limit, offset)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.InteractionStatusResponse, 0, len(interactions))
	for _, interaction := range interactions {
		responses = append(responses, toStatusResponse(interaction))
	}
	return responses, nil
}

// --- Background task ---

func (s *aiService) Run(ctx context.Context, id uuid.UUID) {
	interaction, err := s.interactionRepo.FindByID(ctx, id)
	if err != nil {
		s.sysLogger.Error(moduleAIService, "Failed to load interaction for processing", map[string]interface{}{
			"interaction_id": id.String(),
			"error":          err.Error(),
		})
		return
	}
	if interaction == nil {
		s.sysLogger.Warn(moduleAIService, "Queued interaction no longer exists", map[string]interface{}{
			"interaction_id": id.String(),
		})
		return
	}
	if interaction.Status != entity.StatusPending {
		// Single-flight: another delivery already owns this record.
		s.sysLogger.Warn(moduleAIService, "Skipping interaction not in pending state", map[string]interface{}{
			"interaction_id": id.String(),
			"status":         string(interaction.Status),
		})
		return
	}

	if err := interaction.MarkProcessing(); err != nil {
		return
	}
	if err := s.interactionRepo.Update(ctx, interaction); err != nil {
		s.sysLogger.Error(moduleAIService, "Failed to persist processing transition", map[string]interface{}{
			"interaction_id": id.String(),
			"error":          err.Error(),
		})
		return
	}

	result, runErr := s.process(ctx, interaction)

	if runErr != nil {
		failure := fmt.Sprintf("provider failed after %d attempt(s) (%s): %v",
			interaction.AttemptCount, llm.Classify(runErr), runErr)
		if interaction.AttemptCount == 0 {
			// The failure happened before any provider invocation.
			failure = fmt.Sprintf("interaction processing failed: %v", runErr)
		}
		_ = interaction.MarkFailed(failure)
	} else {
		_ = interaction.MarkCompleted(result)
	}

	if err := s.interactionRepo.Update(ctx, interaction); err != nil {
		s.sysLogger.Error(moduleAIService, "Failed to persist terminal transition", map[string]interface{}{
			"interaction_id": id.String(),
			"error":          err.Error(),
		})
		return
	}

	s.publishLifecycleEvent(ctx, interaction)

	s.sysLogger.Info(moduleAIService, "Interaction reached terminal state", map[string]interface{}{
		"interaction_id": id.String(),
		"status":         string(interaction.Status),
		"attempts":       interaction.AttemptCount,
	})
}

// process runs preprocessing and the provider call chain. Panics are mapped
// to errors so the record can never be left stuck in processing.
func (s *aiService) process(ctx context.Context, interaction *entity.Interaction) (result *entity.InteractionResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during interaction processing: %v", r)
		}
	}()

	switch interaction.Kind {
	case entity.KindSolve:
		return s.processSolve(ctx, interaction)
	case entity.KindDefine:
		return s.processDefine(ctx, interaction)
	default:
		return nil, fmt.Errorf("unknown interaction kind %q", interaction.Kind)
	}
}

func (s *aiService) processSolve(ctx context.Context, interaction *entity.Interaction) (*entity.InteractionResult, error) {
	req := interaction.Request.Solve
	if req == nil {
		return nil, fmt.Errorf("solve interaction without solve payload")
	}

	normalized := s.preprocessor.PrepareSolve(ctx, req.Text, req.Subject)

	var solution *provider.Solution
	strict := false
	err := s.retryPolicy.Execute(ctx, func(ctx context.Context, attempt int) error {
		s.recordAttempt(ctx, interaction, attempt)

		callCtx, cancel := context.WithTimeout(ctx, s.requestTimeout)
		defer cancel()

		res, callErr := s.aiProvider.Solve(callCtx, provider.SolveInput{
			Problem: normalized.Text,
			Subject: normalized.Subject,
			Strict:  strict,
		})
		if callErr != nil {
			if llm.Classify(callErr) == llm.ClassInvalidResponse {
				strict = true
			}
			return callErr
		}
		solution = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	steps := make([]entity.SolutionStep, 0, len(solution.Steps))
	for _, step := range solution.Steps {
		steps = append(steps, entity.SolutionStep{
			Explanation: step.Explanation,
			KeyConcepts: step.KeyConcepts,
		})
	}
	return &entity.InteractionResult{
		Kind: entity.KindSolve,
		Solve: &entity.SolveResult{
			Steps:       steps,
			FinalAnswer: solution.FinalAnswer,
			Subject:     solution.Subject,
		},
	}, nil
}

func (s *aiService) processDefine(ctx context.Context, interaction *entity.Interaction) (*entity.InteractionResult, error) {
	req := interaction.Request.Define
	if req == nil {
		return nil, fmt.Errorf("define interaction without define payload")
	}

	normalized := s.preprocessor.PrepareDefine(ctx, req.Term, req.Subject, req.GradeLevel)

	var definition *provider.Definition
	strict := false
	err := s.retryPolicy.Execute(ctx, func(ctx context.Context, attempt int) error {
		s.recordAttempt(ctx, interaction, attempt)

		callCtx, cancel := context.WithTimeout(ctx, s.requestTimeout)
		defer cancel()

		res, callErr := s.aiProvider.Define(callCtx, provider.DefineInput{
			Term:       normalized.Text,
			Subject:    normalized.Subject,
			GradeLevel: normalized.GradeLevel,
			Strict:     strict,
		})
		if callErr != nil {
			if llm.Classify(callErr) == llm.ClassInvalidResponse {
				strict = true
			}
			return callErr
		}
		definition = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &entity.InteractionResult{
		Kind: entity.KindDefine,
		Define: &entity.DefineResult{
			BasicDefinition:    definition.BasicDefinition,
			DetailedDefinition: definition.DetailedDefinition,
			Examples:           definition.Examples,
			RelatedConcepts:    definition.RelatedConcepts,
		},
	}, nil
}

// recordAttempt makes the attempt count visible to callers polling status
// mid-flight. A persistence hiccup here only delays visibility.
func (s *aiService) recordAttempt(ctx context.Context, interaction *entity.Interaction, attempt int) {
	interaction.AttemptCount = attempt
	if err := s.interactionRepo.Update(ctx, interaction); err != nil {
		s.sysLogger.Warn(moduleAIService, "Failed to persist attempt count", map[string]interface{}{
			"interaction_id": interaction.Id.String(),
			"attempt":        attempt,
			"error":          err.Error(),
		})
	}
}

func (s *aiService) publishLifecycleEvent(ctx context.Context, interaction *entity.Interaction) {
	if s.eventPublisher == nil {
		return
	}

	var event events.Event
	if interaction.Status == entity.StatusCompleted {
		event = events.NewInteractionCompleted(interaction.Id, interaction.UserId, string(interaction.Kind))
	} else {
		event = events.NewInteractionFailed(interaction.Id, interaction.UserId, string(interaction.Kind), interaction.Error)
	}

	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.sysLogger.Warn(moduleAIService, "Failed to publish lifecycle event", map[string]interface{}{
			"interaction_id": interaction.Id.String(),
			"error":          err.Error(),
		})
	}
}

func toStatusResponse(interaction *entity.Interaction) *dto.InteractionStatusResponse {
	res := &dto.InteractionStatusResponse{
		Id:           interaction.Id,
		Kind:         string(interaction.Kind),
		Status:       string(interaction.Status),
		AttemptCount: interaction.AttemptCount,
		CreatedAt:    interaction.CreatedAt,
		CompletedAt:  interaction.CompletedAt,
		Error:        interaction.Error,
	}

	if interaction.Response != nil {
		result := &dto.InteractionResultResponse{}
		if solve := interaction.Response.Solve; solve != nil {
			steps := make([]dto.SolutionStepResponse, 0, len(solve.Steps))
			for _, step := range solve.Steps {
				steps = append(steps, dto.SolutionStepResponse{
					Explanation: step.Explanation,
					KeyConcepts: step.KeyConcepts,
				})
			}
			result.Solve = &dto.SolveResultResponse{
				Steps:       steps,
				FinalAnswer: solve.FinalAnswer,
				Subject:     solve.Subject,
			}
		}
		if define := interaction.Response.Define; define != nil {
			result.Define = &dto.DefineResultResponse{
				BasicDefinition:    define.BasicDefinition,
				DetailedDefinition: define.DetailedDefinition,
				Examples:           define.Examples,
				RelatedConcepts:    define.RelatedConcepts,
			}
		}
		res.Response = result
	}

	return res
}
