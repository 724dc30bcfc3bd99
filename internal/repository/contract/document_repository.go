package contract

import (
	"context"
	"errors"

	"keep-notes-be/internal/entity"
	"keep-notes-be/internal/repository/specification"

	"github.com/google/uuid"
)

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrUnknownField     = errors.New("field cannot be updated")
)

// Updatable document fields, keyed by their client names.
const (
	FieldTitle     = "title"
	FieldContent   = "content"
	FieldBgColor   = "bgColor"
	FieldIsChecked = "isChecked"
	FieldLabels    = "labels"
	FieldPosition  = "position"
)

// DocumentRepository is the keyed store behind the note collections. Every
// write names the collection ("notes" or "archives") it targets.
type DocumentRepository interface {
	Create(ctx context.Context, doc *entity.NoteDocument) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, field string, value interface{}, collection string) error
	Delete(ctx context.Context, id uuid.UUID, collection string) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.NoteDocument, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.NoteDocument, error)
}
