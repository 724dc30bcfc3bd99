package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// NoteDocument stores a note in either the "notes" or "archives" collection.
// Position orders a collection: prepends take a negative key, appends a
// positive one.
type NoteDocument struct {
	Id         uuid.UUID                   `gorm:"type:uuid;primaryKey"`
	UserId     uuid.UUID                   `gorm:"type:uuid;not null;index:idx_note_documents_owner"`
	Collection string                      `gorm:"type:varchar(16);not null;index:idx_note_documents_owner"`
	Title      string                      `gorm:"type:varchar(255)"`
	Content    string                      `gorm:"type:text"`
	BgColor    string                      `gorm:"type:varchar(16);not null;default:'#fff'"`
	IsChecked  bool                        `gorm:"not null;default:false"`
	Labels     datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	Position   int64                       `gorm:"not null;default:0"`
	CreatedAt  time.Time                   `gorm:"autoCreateTime"`
	UpdatedAt  time.Time                   `gorm:"autoUpdateTime"`
}

func (NoteDocument) TableName() string {
	return "note_documents"
}
