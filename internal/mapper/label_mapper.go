package mapper

import (
	"keep-notes-be/internal/entity"
	"keep-notes-be/internal/model"
	"keep-notes-be/internal/notestate"
)

type LabelMapper struct{}

func NewLabelMapper() *LabelMapper {
	return &LabelMapper{}
}

func (m *LabelMapper) ToEntity(l *model.Label) *entity.Label {
	if l == nil {
		return nil
	}
	return &entity.Label{
		Id:        l.Id,
		UserId:    l.UserId,
		Value:     l.Value,
		Position:  l.Position,
		CreatedAt: l.CreatedAt,
	}
}

func (m *LabelMapper) ToModel(l *entity.Label) *model.Label {
	if l == nil {
		return nil
	}
	return &model.Label{
		Id:        l.Id,
		UserId:    l.UserId,
		Value:     l.Value,
		Position:  l.Position,
		CreatedAt: l.CreatedAt,
	}
}

func (m *LabelMapper) ToEntities(labels []*model.Label) []*entity.Label {
	entities := make([]*entity.Label, len(labels))
	for i, l := range labels {
		entities[i] = m.ToEntity(l)
	}
	return entities
}

func (m *LabelMapper) ToLabels(labels []*entity.Label) []notestate.Label {
	out := make([]notestate.Label, len(labels))
	for i, l := range labels {
		out[i] = notestate.Label{Id: l.Id.String(), Value: l.Value}
	}
	return out
}
