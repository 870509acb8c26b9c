package mapper

import (
	"encoding/json"
	"fmt"

	"ai-stemtutor-be/internal/entity"
	"ai-stemtutor-be/internal/model"
)

type InteractionMapper struct{}

func NewInteractionMapper() *InteractionMapper {
	return &InteractionMapper{}
}

func (m *InteractionMapper) ToEntity(record *model.AIInteraction) (*entity.Interaction, error) {
	if record == nil {
		return nil, nil
	}

	var request entity.InteractionRequest
	if err := json.Unmarshal(record.RequestData, &request); err != nil {
		return nil, fmt.Errorf("decode request payload of interaction %s: %w", record.Id, err)
	}

	var response *entity.InteractionResult
	if len(record.ResponseData) > 0 {
		response = &entity.InteractionResult{}
		if err := json.Unmarshal(record.ResponseData, response); err != nil {
			return nil, fmt.Errorf("decode response payload of interaction %s: %w", record.Id, err)
		}
	}

	return &entity.Interaction{
		Id:           record.Id,
		UserId:       record.UserId,
		Kind:         entity.InteractionKind(record.Kind),
		Status:       entity.InteractionStatus(record.Status),
		Request:      request,
		Response:     response,
		Error:        record.FailureMessage,
		AttemptCount: record.AttemptCount,
		CreatedAt:    record.CreatedAt,
		CompletedAt:  record.CompletedAt,
	}, nil
}

func (m *InteractionMapper) ToEntities(records []*model.AIInteraction) ([]*entity.Interaction, error) {
	interactions := make([]*entity.Interaction, 0, len(records))
	for _, record := range records {
		interaction, err := m.ToEntity(record)
		if err != nil {
			return nil, err
		}
		interactions = append(interactions, interaction)
	}
	return interactions, nil
}

func (m *InteractionMapper) ToModel(interaction *entity.Interaction) (*model.AIInteraction, error) {
	if interaction == nil {
		return nil, nil
	}

	requestData, err := json.Marshal(interaction.Request)
	if err != nil {
		return nil, fmt.Errorf("encode request payload: %w", err)
	}

	var responseData []byte
	if interaction.Response != nil {
		responseData, err = json.Marshal(interaction.Response)
		if err != nil {
			return nil, fmt.Errorf("encode response payload: %w", err)
		}
	}

	return &model.AIInteraction{
		Id:             interaction.Id,
		UserId:         interaction.UserId,
		Kind:           string(interaction.Kind),
		Status:         string(interaction.Status),
		RequestData:    requestData,
		ResponseData:   responseData,
		FailureMessage: interaction.Error,
		AttemptCount:   interaction.AttemptCount,
		CreatedAt:      interaction.CreatedAt,
		CompletedAt:    interaction.CompletedAt,
	}, nil
}
