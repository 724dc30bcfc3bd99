package unitofwork

import (
	"context"

	"keep-notes-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	DocumentRepository() contract.DocumentRepository
	LabelRepository() contract.LabelRepository
}
