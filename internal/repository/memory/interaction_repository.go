package memory

import (
	"context"
	"encoding/json"
	"sort"

	"ai-stemtutor-be/internal/entity"
	"ai-stemtutor-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// InteractionRepository is an in-memory record store backed by go-cache.
// Records are stored and returned as deep copies so readers always see a
// consistent snapshot and terminal records stay byte-identical across reads.
// Retention is left to the embedder; entries never expire on their own.
type InteractionRepository struct {
	cache *cache.Cache
}

var _ contract.InteractionRepository = &InteractionRepository{}

func NewInteractionRepository() *InteractionRepository {
	return &InteractionRepository{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

func clone(interaction *entity.Interaction) *entity.Interaction {
	raw, _ := json.Marshal(interaction)
	copied := &entity.Interaction{}
	_ = json.Unmarshal(raw, copied)
	// Timestamps lose their monotonic clock reading in a JSON round-trip,
	// so carry them over directly to keep time comparisons exact.
	copied.CreatedAt = interaction.CreatedAt
	if interaction.CompletedAt != nil {
		t := *interaction.CompletedAt
		copied.CompletedAt = &t
	}
	return copied
}

func (r *InteractionRepository) Create(ctx context.Context, interaction *entity.Interaction) error {
	r.cache.Set(interaction.Id.String(), clone(interaction), cache.NoExpiration)
	return nil
}

func (r *InteractionRepository) Update(ctx context.Context, interaction *entity.Interaction) error {
	r.cache.Set(interaction.Id.String(), clone(interaction), cache.NoExpiration)
	return nil
}

func (r *InteractionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Interaction, error) {
	x, found := r.cache.Get(id.String())
	if !found {
		return nil, nil
	}
	return clone(x.(*entity.Interaction)), nil
}

func (r *InteractionRepository) FindAllByUser(ctx context.Context, userId uuid.UUID, limit, offset int) ([]*entity.Interaction, error) {
	var interactions []*entity.Interaction
	for _, item := range r.cache.Items() {
		interaction := item.Object.(*entity.Interaction)
		if interaction.UserId == userId {
			interactions = append(interactions, clone(interaction))
		}
	}

	sort.Slice(interactions, func(i, j int) bool {
		return interactions[i].CreatedAt.After(interactions[j].CreatedAt)
	})

	if offset >= len(interactions) {
		return []*entity.Interaction{}, nil
	}
	interactions = interactions[offset:]
	if limit > 0 && limit < len(interactions) {
		interactions = interactions[:limit]
	}
	return interactions, nil
}
