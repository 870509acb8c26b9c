package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AIInteraction struct {
	Id             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId         uuid.UUID      `gorm:"type:uuid;not null;index"`
	Kind           string         `gorm:"type:ai_interaction_kind;not null"`
	Status         string         `gorm:"type:ai_interaction_status;not null;index"`
	RequestData    datatypes.JSON `gorm:"not null"`
	ResponseData   datatypes.JSON
	FailureMessage string    `gorm:"type:text"`
	AttemptCount   int       `gorm:"not null;default:0"`
	CreatedAt      time.Time `gorm:"autoCreateTime;index"`
	CompletedAt    *time.Time
}

func (AIInteraction) TableName() string {
	return "ai_interactions"
}
