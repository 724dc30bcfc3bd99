package entity

import (
	"time"

	"github.com/google/uuid"
)

type NoteDocument struct {
	Id         uuid.UUID
	UserId     uuid.UUID
	Collection string
	Title      string
	Content    string
	BgColor    string
	IsChecked  bool
	Labels     []string
	Position   int64
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}
