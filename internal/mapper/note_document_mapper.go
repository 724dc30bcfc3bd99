package mapper

import (
	"time"

	"keep-notes-be/internal/entity"
	"keep-notes-be/internal/model"
	"keep-notes-be/internal/notestate"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type NoteDocumentMapper struct{}

func NewNoteDocumentMapper() *NoteDocumentMapper {
	return &NoteDocumentMapper{}
}

func (m *NoteDocumentMapper) ToEntity(d *model.NoteDocument) *entity.NoteDocument {
	if d == nil {
		return nil
	}

	var updatedAt *time.Time
	if !d.UpdatedAt.IsZero() {
		t := d.UpdatedAt
		updatedAt = &t
	}

	labels := make([]string, len(d.Labels))
	copy(labels, d.Labels)

	return &entity.NoteDocument{
		Id:         d.Id,
		UserId:     d.UserId,
		Collection: d.Collection,
		Title:      d.Title,
		Content:    d.Content,
		BgColor:    d.BgColor,
		IsChecked:  d.IsChecked,
		Labels:     labels,
		Position:   d.Position,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  updatedAt,
	}
}

func (m *NoteDocumentMapper) ToModel(d *entity.NoteDocument) *model.NoteDocument {
	if d == nil {
		return nil
	}

	var updatedAt time.Time
	if d.UpdatedAt != nil {
		updatedAt = *d.UpdatedAt
	}

	labels := make(datatypes.JSONSlice[string], len(d.Labels))
	copy(labels, d.Labels)

	return &model.NoteDocument{
		Id:         d.Id,
		UserId:     d.UserId,
		Collection: d.Collection,
		Title:      d.Title,
		Content:    d.Content,
		BgColor:    d.BgColor,
		IsChecked:  d.IsChecked,
		Labels:     labels,
		Position:   d.Position,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  updatedAt,
	}
}

func (m *NoteDocumentMapper) ToEntities(docs []*model.NoteDocument) []*entity.NoteDocument {
	entities := make([]*entity.NoteDocument, len(docs))
	for i, d := range docs {
		entities[i] = m.ToEntity(d)
	}
	return entities
}

// ToNote drops storage-only fields.
func (m *NoteDocumentMapper) ToNote(d *entity.NoteDocument) notestate.Note {
	labels := make([]string, len(d.Labels))
	copy(labels, d.Labels)
	return notestate.Note{
		Id:        d.Id.String(),
		Title:     d.Title,
		Content:   d.Content,
		BgColor:   d.BgColor,
		IsChecked: d.IsChecked,
		Labels:    labels,
	}
}

func (m *NoteDocumentMapper) ToNotes(docs []*entity.NoteDocument) []notestate.Note {
	notes := make([]notestate.Note, len(docs))
	for i, d := range docs {
		notes[i] = m.ToNote(d)
	}
	return notes
}

// FromNote builds the stored form of n. It fails when n.Id is not a uuid.
func (m *NoteDocumentMapper) FromNote(userId uuid.UUID, collection notestate.NoteType, n notestate.Note, position int64) (*entity.NoteDocument, error) {
	id, err := uuid.Parse(n.Id)
	if err != nil {
		return nil, err
	}
	labels := make([]string, len(n.Labels))
	copy(labels, n.Labels)
	return &entity.NoteDocument{
		Id:         id,
		UserId:     userId,
		Collection: string(collection),
		Title:      n.Title,
		Content:    n.Content,
		BgColor:    n.BgColor,
		IsChecked:  n.IsChecked,
		Labels:     labels,
		Position:   position,
		CreatedAt:  time.Now(),
	}, nil
}
