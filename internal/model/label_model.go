package model

import (
	"time"

	"github.com/google/uuid"
)

type Label struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;index"`
	Value     string    `gorm:"type:varchar(100);not null"`
	Position  int64     `gorm:"not null;default:0"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Label) TableName() string {
	return "labels"
}
