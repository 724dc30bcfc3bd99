package implementation

import (
	"context"

	"keep-notes-be/internal/entity"
	"keep-notes-be/internal/mapper"
	"keep-notes-be/internal/model"
	"keep-notes-be/internal/repository/contract"
	"keep-notes-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LabelRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.LabelMapper
}

func NewLabelRepository(db *gorm.DB) contract.LabelRepository {
	return &LabelRepositoryImpl{
		db:     db,
		mapper: mapper.NewLabelMapper(),
	}
}

func (r *LabelRepositoryImpl) Create(ctx context.Context, label *entity.Label) (uuid.UUID, error) {
	if label.Id == uuid.Nil {
		label.Id = uuid.New()
	}
	m := r.mapper.ToModel(label)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return uuid.Nil, err
	}
	*label = *r.mapper.ToEntity(m)
	return label.Id, nil
}

func (r *LabelRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Label, error) {
	var models []*model.Label
	query := r.db.WithContext(ctx)
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
