package implementation

import (
	"context"
	"errors"

	"ai-stemtutor-be/internal/entity"
	"ai-stemtutor-be/internal/mapper"
	"ai-stemtutor-be/internal/model"
	"ai-stemtutor-be/internal/repository/contract"
	"ai-stemtutor-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InteractionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.InteractionMapper
}

func NewInteractionRepository(db *gorm.DB) contract.InteractionRepository {
	return &InteractionRepositoryImpl{
		db:     db,
		mapper: mapper.NewInteractionMapper(),
	}
}

func (r *InteractionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *InteractionRepositoryImpl) Create(ctx context.Context, interaction *entity.Interaction) error {
	m, err := r.mapper.ToModel(interaction)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *InteractionRepositoryImpl) Update(ctx context.Context, interaction *entity.Interaction) error {
	m, err := r.mapper.ToModel(interaction)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *InteractionRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*entity.Interaction, error) {
	var m model.AIInteraction
	query := r.applySpecifications(r.db.WithContext(ctx), specification.ByID{ID: id})
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m)
}

func (r *InteractionRepositoryImpl) FindAllByUser(ctx context.Context, userId uuid.UUID, limit, offset int) ([]*entity.Interaction, error) {
	var models []*model.AIInteraction
	query := r.applySpecifications(
		r.db.WithContext(ctx),
		specification.ByUserID{UserID: userId},
		specification.NewestFirst{},
		specification.Pagination{Limit: limit, Offset: offset},
	)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models)
}
