package entity

import (
	"time"

	"github.com/google/uuid"
)

type Label struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Value     string
	Position  int64
	CreatedAt time.Time
}
