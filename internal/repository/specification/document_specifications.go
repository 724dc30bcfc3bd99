package specification

import "gorm.io/gorm"

type InCollection struct {
	Collection string
}

func (s InCollection) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("collection = ?", s.Collection)
}

// DisplayOrder sorts documents the way the client shows them.
type DisplayOrder struct{}

func (s DisplayOrder) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC").Order("created_at ASC")
}
