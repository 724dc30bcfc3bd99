package implementation

import (
	"context"
	"errors"
	"fmt"

	"keep-notes-be/internal/entity"
	"keep-notes-be/internal/mapper"
	"keep-notes-be/internal/model"
	"keep-notes-be/internal/repository/contract"
	"keep-notes-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var documentColumns = map[string]string{
	contract.FieldTitle:     "title",
	contract.FieldContent:   "content",
	contract.FieldBgColor:   "bg_color",
	contract.FieldIsChecked: "is_checked",
	contract.FieldLabels:    "labels",
	contract.FieldPosition:  "position",
}

type DocumentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.NoteDocumentMapper
}

func NewDocumentRepository(db *gorm.DB) contract.DocumentRepository {
	return &DocumentRepositoryImpl{
		db:     db,
		mapper: mapper.NewNoteDocumentMapper(),
	}
}

func (r *DocumentRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *DocumentRepositoryImpl) Create(ctx context.Context, doc *entity.NoteDocument) (uuid.UUID, error) {
	if doc.Id == uuid.Nil {
		doc.Id = uuid.New()
	}
	m := r.mapper.ToModel(doc)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return uuid.Nil, err
	}
	*doc = *r.mapper.ToEntity(m)
	return doc.Id, nil
}

func (r *DocumentRepositoryImpl) Update(ctx context.Context, id uuid.UUID, field string, value interface{}, collection string) error {
	column, ok := documentColumns[field]
	if !ok {
		return fmt.Errorf("%w: %s", contract.ErrUnknownField, field)
	}
	if labels, ok := value.([]string); ok {
		value = datatypes.JSONSlice[string](labels)
	}

	result := r.db.WithContext(ctx).
		Model(&model.NoteDocument{}).
		Where("id = ? AND collection = ?", id, collection).
		Update(column, value)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %s/%s", contract.ErrDocumentNotFound, collection, id)
	}
	return nil
}

// Delete removes the row for good so the same id can be recreated in the
// other collection.
func (r *DocumentRepositoryImpl) Delete(ctx context.Context, id uuid.UUID, collection string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND collection = ?", id, collection).
		Delete(&model.NoteDocument{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %s/%s", contract.ErrDocumentNotFound, collection, id)
	}
	return nil
}

func (r *DocumentRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.NoteDocument, error) {
	var m model.NoteDocument
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *DocumentRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.NoteDocument, error) {
	var models []*model.NoteDocument
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
