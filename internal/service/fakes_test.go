package service

import (
	"context"
	"sort"
	"sync"

	"keep-notes-be/internal/entity"
	"keep-notes-be/internal/repository/contract"
	"keep-notes-be/internal/repository/specification"
	"keep-notes-be/internal/repository/unitofwork"
	"keep-notes-be/pkg/events"

	"github.com/google/uuid"
)

type fakeDocumentRepository struct {
	mu   sync.Mutex
	docs map[uuid.UUID]*entity.NoteDocument
}

func newFakeDocumentRepository(docs ...*entity.NoteDocument) *fakeDocumentRepository {
	r := &fakeDocumentRepository{docs: map[uuid.UUID]*entity.NoteDocument{}}
	for _, d := range docs {
		r.docs[d.Id] = d
	}
	return r
}

func (r *fakeDocumentRepository) Create(ctx context.Context, doc *entity.NoteDocument) (uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *doc
	r.docs[doc.Id] = &cp
	return doc.Id, nil
}

func (r *fakeDocumentRepository) Update(ctx context.Context, id uuid.UUID, field string, value interface{}, collection string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.docs[id]
	if !ok || d.Collection != collection {
		return contract.ErrDocumentNotFound
	}
	switch field {
	case contract.FieldTitle:
		d.Title = value.(string)
	case contract.FieldContent:
		d.Content = value.(string)
	case contract.FieldBgColor:
		d.BgColor = value.(string)
	case contract.FieldIsChecked:
		d.IsChecked = value.(bool)
	case contract.FieldLabels:
		d.Labels = append([]string(nil), value.([]string)...)
	case contract.FieldPosition:
		d.Position = value.(int64)
	default:
		return contract.ErrUnknownField
	}
	return nil
}

func (r *fakeDocumentRepository) Delete(ctx context.Context, id uuid.UUID, collection string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.docs[id]
	if !ok || d.Collection != collection {
		return contract.ErrDocumentNotFound
	}
	delete(r.docs, id)
	return nil
}

func (r *fakeDocumentRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.NoteDocument, error) {
	all, _ := r.FindAll(ctx, specs...)
	if len(all) == 0 {
		return nil, nil
	}
	return all[0], nil
}

// FindAll understands the specifications the services use.
func (r *fakeDocumentRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.NoteDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*entity.NoteDocument
	for _, d := range r.docs {
		if matchesDocument(d, specs) {
			cp := *d
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (r *fakeDocumentRepository) get(id uuid.UUID) (entity.NoteDocument, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.docs[id]
	if !ok {
		return entity.NoteDocument{}, false
	}
	return *d, true
}

func matchesDocument(d *entity.NoteDocument, specs []specification.Specification) bool {
	for _, s := range specs {
		switch s := s.(type) {
		case specification.UserOwnedBy:
			if d.UserId != s.UserID {
				return false
			}
		case specification.InCollection:
			if d.Collection != s.Collection {
				return false
			}
		case specification.ByID:
			if d.Id != s.ID {
				return false
			}
		}
	}
	return true
}

type fakeLabelRepository struct {
	mu     sync.Mutex
	labels []*entity.Label
}

func (r *fakeLabelRepository) Create(ctx context.Context, label *entity.Label) (uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *label
	r.labels = append(r.labels, &cp)
	return label.Id, nil
}

func (r *fakeLabelRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Label, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Label
	for _, l := range r.labels {
		owned := true
		for _, s := range specs {
			if u, ok := s.(specification.UserOwnedBy); ok && l.UserId != u.UserID {
				owned = false
			}
		}
		if owned {
			cp := *l
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (r *fakeLabelRepository) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.labels)
}

type fakeUnitOfWork struct {
	docs   *fakeDocumentRepository
	labels *fakeLabelRepository
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error                 { return nil }
func (u *fakeUnitOfWork) Commit() error                                   { return nil }
func (u *fakeUnitOfWork) Rollback() error                                 { return nil }
func (u *fakeUnitOfWork) DocumentRepository() contract.DocumentRepository { return u.docs }
func (u *fakeUnitOfWork) LabelRepository() contract.LabelRepository       { return u.labels }

type fakeRepositoryFactory struct {
	uow *fakeUnitOfWork
}

func (f *fakeRepositoryFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

func newFakeFactory(docs *fakeDocumentRepository, labels *fakeLabelRepository) *fakeRepositoryFactory {
	return &fakeRepositoryFactory{uow: &fakeUnitOfWork{docs: docs, labels: labels}}
}

type recordingEventPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingEventPublisher) Publish(ctx context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingEventPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.EventType()
	}
	return out
}

type recordingBroadcaster struct {
	mu     sync.Mutex
	pushes map[uuid.UUID]int
}

func (b *recordingBroadcaster) SendState(userId uuid.UUID, state interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.pushes == nil {
		b.pushes = map[uuid.UUID]int{}
	}
	b.pushes[userId]++
}

func (b *recordingBroadcaster) count(userId uuid.UUID) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pushes[userId]
}
