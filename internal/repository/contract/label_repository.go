package contract

import (
	"context"

	"keep-notes-be/internal/entity"
	"keep-notes-be/internal/repository/specification"

	"github.com/google/uuid"
)

type LabelRepository interface {
	Create(ctx context.Context, label *entity.Label) (uuid.UUID, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Label, error)
}
