package contract

import (
	"context"

	"ai-stemtutor-be/internal/entity"

	"github.com/google/uuid"
)

// InteractionRepository is the record store the orchestrator needs: records
// are addressed by id only, updates replace the full record. Reads return
// snapshots; a nil interaction (with nil error) means not found.
type InteractionRepository interface {
	Create(ctx context.Context, interaction *entity.Interaction) error
	Update(ctx context.Context, interaction *entity.Interaction) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Interaction, error)
	FindAllByUser(ctx context.Context, userId uuid.UUID, limit, offset int) ([]*entity.Interaction, error)
}
