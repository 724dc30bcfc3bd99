package service

import (
	"context"
	"encoding/json"
	"time"

	"keep-notes-be/internal/dto"
	"keep-notes-be/internal/mapper"
	"keep-notes-be/internal/notestate"
	"keep-notes-be/internal/pkg/logger"
	"keep-notes-be/internal/repository/memory"
	"keep-notes-be/internal/repository/specification"
	"keep-notes-be/internal/repository/unitofwork"
	"keep-notes-be/pkg/events"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const noteModule = "NoteService"

const eventPublishTimeout = 5 * time.Second

type INoteService interface {
	State(ctx context.Context, userId uuid.UUID) (*dto.StateResponse, error)
	Dispatch(ctx context.Context, userId uuid.UUID, action notestate.Action) (*dto.DispatchResponse, error)
	CreateNote(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (*dto.DispatchResponse, error)
	CreateLabel(ctx context.Context, userId uuid.UUID, req *dto.CreateLabelRequest) (*dto.DispatchResponse, error)
	OpenEditableNote(ctx context.Context, userId uuid.UUID, id string) (*dto.DispatchResponse, error)
	EditBuffer(ctx context.Context, userId uuid.UUID, req *dto.EditBufferRequest) (*dto.DispatchResponse, error)
}

// EventPublisher is satisfied by the NATS publisher.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// StateBroadcaster pushes a user's new state to their live connections.
type StateBroadcaster interface {
	SendState(userId uuid.UUID, state interface{})
}

type noteService struct {
	uowFactory       unitofwork.RepositoryFactory
	sessions         *memory.SessionRepository
	reducer          notestate.Reducer
	publisherService IPublisherService
	eventPublisher   EventPublisher
	broadcaster      StateBroadcaster
	documentMapper   *mapper.NoteDocumentMapper
	labelMapper      *mapper.LabelMapper
	logger           logger.ILogger
	now              func() time.Time
}

// NewNoteService wires the per-user stores to persistence. eventPublisher
// and broadcaster may be nil.
func NewNoteService(
	uowFactory unitofwork.RepositoryFactory,
	sessions *memory.SessionRepository,
	reducer notestate.Reducer,
	publisherService IPublisherService,
	eventPublisher EventPublisher,
	broadcaster StateBroadcaster,
	log logger.ILogger,
) INoteService {
	return &noteService{
		uowFactory:       uowFactory,
		sessions:         sessions,
		reducer:          reducer,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		broadcaster:      broadcaster,
		documentMapper:   mapper.NewNoteDocumentMapper(),
		labelMapper:      mapper.NewLabelMapper(),
		logger:           log,
		now:              time.Now,
	}
}

func (s *noteService) State(ctx context.Context, userId uuid.UUID) (*dto.StateResponse, error) {
	store, err := s.session(ctx, userId)
	if err != nil {
		return nil, err
	}
	return ToStateResponse(store.State()), nil
}

func (s *noteService) Dispatch(ctx context.Context, userId uuid.UUID, action notestate.Action) (*dto.DispatchResponse, error) {
	if err := ValidateActionIds(action); err != nil {
		return nil, err
	}

	store, err := s.session(ctx, userId)
	if err != nil {
		return nil, err
	}

	change := store.Dispatch(action)
	if change.Outcome != notestate.Applied {
		s.logger.Debug(noteModule, "Action not applied", map[string]interface{}{
			"user_id": userId,
			"action":  action.Type,
			"id":      action.Id,
			"outcome": change.Outcome.String(),
		})
	}

	return &dto.DispatchResponse{
		Outcome: change.Outcome,
		State:   ToStateResponse(store.State()),
	}, nil
}

// ValidateActionIds rejects ADD_NOTE and ADD_LABEL payloads whose ids the
// document and label tables cannot store.
func ValidateActionIds(action notestate.Action) error {
	switch action.Type {
	case notestate.ActionAddNote:
		if action.Note != nil {
			if _, err := uuid.Parse(action.Note.Id); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Note id must be a uuid")
			}
		}
	case notestate.ActionAddLabel:
		if action.Label != nil {
			if _, err := uuid.Parse(action.Label.Id); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Label id must be a uuid")
			}
		}
	}
	return nil
}

func (s *noteService) CreateNote(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (*dto.DispatchResponse, error) {
	id := req.Id
	if id == "" {
		id = uuid.NewString()
	}
	bgColor := req.BgColor
	if bgColor == "" {
		bgColor = notestate.DefaultColor
	}
	labels := notestate.UniqueLabels(req.Labels)
	if labels == nil {
		labels = []string{}
	}

	return s.Dispatch(ctx, userId, notestate.AddNote(notestate.Note{
		Id:        id,
		Title:     req.Title,
		Content:   req.Content,
		BgColor:   bgColor,
		IsChecked: req.IsChecked,
		Labels:    labels,
	}))
}

func (s *noteService) CreateLabel(ctx context.Context, userId uuid.UUID, req *dto.CreateLabelRequest) (*dto.DispatchResponse, error) {
	id := req.Id
	if id == "" {
		id = uuid.NewString()
	}
	return s.Dispatch(ctx, userId, notestate.AddLabel(notestate.Label{Id: id, Value: req.Value}))
}

// OpenEditableNote snapshots the stored note with id into the edit buffer.
func (s *noteService) OpenEditableNote(ctx context.Context, userId uuid.UUID, id string) (*dto.DispatchResponse, error) {
	store, err := s.session(ctx, userId)
	if err != nil {
		return nil, err
	}

	note, _, ok := store.State().Locate(id)
	if !ok {
		return &dto.DispatchResponse{
			Outcome: notestate.Missed,
			State:   ToStateResponse(store.State()),
		}, nil
	}
	return s.Dispatch(ctx, userId, notestate.GetEditableNote(note))
}

func (s *noteService) EditBuffer(ctx context.Context, userId uuid.UUID, req *dto.EditBufferRequest) (*dto.DispatchResponse, error) {
	store, err := s.session(ctx, userId)
	if err != nil {
		return nil, err
	}

	current := store.State().EditableNote
	if current == nil {
		return nil, fiber.NewError(fiber.StatusConflict, "No note is being edited")
	}

	edited := current.Clone()
	if req.Title != nil {
		edited.Title = *req.Title
	}
	if req.Content != nil {
		edited.Content = *req.Content
	}
	return s.Dispatch(ctx, userId, notestate.GetEditableNote(edited))
}

// session returns the user's resident store, loading it from the document
// store on first use.
func (s *noteService) session(ctx context.Context, userId uuid.UUID) (*notestate.Store, error) {
	if store, ok := s.sessions.Get(userId); ok {
		return store, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	notes, err := uow.DocumentRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.InCollection{Collection: string(notestate.NoteTypeNotes)},
		specification.DisplayOrder{},
	)
	if err != nil {
		return nil, err
	}

	archives, err := uow.DocumentRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.InCollection{Collection: string(notestate.NoteTypeArchives)},
		specification.DisplayOrder{},
	)
	if err != nil {
		return nil, err
	}

	labels, err := uow.LabelRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "position"},
	)
	if err != nil {
		return nil, err
	}

	state := notestate.NewAppState()
	state.Notes = notestate.NewCollection(s.documentMapper.ToNotes(notes)...)
	state.Archives = notestate.NewCollection(s.documentMapper.ToNotes(archives)...)
	state.Labels = notestate.NewCollection(s.labelMapper.ToLabels(labels)...)

	if err := notestate.Validate(state, s.reducer.RequireKnownLabels); err != nil {
		s.logger.Warn(noteModule, "Loaded state breaks invariants", map[string]interface{}{"user_id": userId, "error": err})
	}

	s.logger.Info(noteModule, "Session loaded", map[string]interface{}{
		"user_id":  userId,
		"notes":    state.Notes.Len(),
		"archives": state.Archives.Len(),
		"labels":   state.Labels.Len(),
	})

	store := notestate.NewStore(s.reducer, state)
	store.Subscribe(s.onChange(userId))
	return s.sessions.SaveIfAbsent(userId, store), nil
}

// onChange fans one transition out to persistence, domain events and live
// connections. None of these feed back into the state.
func (s *noteService) onChange(userId uuid.UUID) notestate.Listener {
	return func(change notestate.Change) {
		if change.Outcome == notestate.Applied {
			s.persist(userId, change)
			s.publishEvent(userId, change)
		}
		if s.broadcaster != nil {
			s.broadcaster.SendState(userId, ToStateResponse(change.Next))
		}
	}
}

func (s *noteService) persist(userId uuid.UUID, change notestate.Change) {
	msg, ok := s.persistMessage(userId, change)
	if !ok {
		return
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		s.logger.Error(noteModule, "Failed to encode persist message", map[string]interface{}{"error": err})
		return
	}
	if err := s.publisherService.Publish(context.Background(), payload); err != nil {
		s.logger.Error(noteModule, "Failed to publish persist message", map[string]interface{}{
			"error":   err,
			"action":  change.Action.Type,
			"user_id": userId,
		})
	}
}

// persistMessage describes the document store writes for a transition.
// Prepended entries get a negative position, appended ones a positive one.
func (s *noteService) persistMessage(userId uuid.UUID, change notestate.Change) (*dto.PersistActionMessage, bool) {
	a := change.Action
	now := s.now()
	msg := &dto.PersistActionMessage{
		UserId:     userId,
		Action:     a.Type,
		NoteType:   a.NoteType,
		NoteId:     a.Id,
		OccurredAt: now,
	}

	snapshot := func(t notestate.NoteType, id string) bool {
		notes, _ := change.Next.Collection(t)
		n, ok := notes.Get(id)
		if ok {
			msg.Note = &n
		}
		return ok
	}

	switch a.Type {
	case notestate.ActionAddNote:
		msg.NoteType = notestate.NoteTypeNotes
		msg.NoteId = a.Note.Id
		msg.Position = -now.UnixNano()
		return msg, snapshot(notestate.NoteTypeNotes, a.Note.Id)

	case notestate.ActionDeleteNote:
		return msg, true

	case notestate.ActionUpdateNote:
		msg.NoteId = change.Prev.EditableNote.Id
		msg.Position = now.UnixNano()
		return msg, snapshot(a.NoteType, msg.NoteId)

	case notestate.ActionChangeNoteColor, notestate.ActionAddNoteLabel, notestate.ActionDeleteNoteLabel:
		return msg, snapshot(a.NoteType, a.Id)

	case notestate.ActionToggleNoteProperty:
		msg.Property = a.Property
		return msg, snapshot(a.NoteType, a.Id)

	case notestate.ActionArchiveNote:
		msg.From = notestate.NoteTypeNotes
		msg.NoteType = notestate.NoteTypeArchives
		msg.Position = now.UnixNano()
		return msg, snapshot(notestate.NoteTypeArchives, a.Id)

	case notestate.ActionUnarchiveNote:
		msg.From = notestate.NoteTypeArchives
		msg.NoteType = notestate.NoteTypeNotes
		msg.Position = now.UnixNano()
		return msg, snapshot(notestate.NoteTypeNotes, a.Id)

	case notestate.ActionAddLabel:
		label := *a.Label
		msg.Label = &label
		msg.Position = -now.UnixNano()
		return msg, true
	}

	return nil, false
}

var noteEventTypes = map[notestate.ActionType]string{
	notestate.ActionAddNote:       events.NoteCreated,
	notestate.ActionDeleteNote:    events.NoteDeleted,
	notestate.ActionArchiveNote:   events.NoteArchived,
	notestate.ActionUnarchiveNote: events.NoteUnarchived,
	notestate.ActionAddLabel:      events.LabelCreated,
}

func (s *noteService) publishEvent(userId uuid.UUID, change notestate.Change) {
	if s.eventPublisher == nil {
		return
	}
	eventType, ok := noteEventTypes[change.Action.Type]
	if !ok {
		return
	}

	data := map[string]interface{}{"user_id": userId.String()}
	switch {
	case change.Action.Note != nil:
		data["note_id"] = change.Action.Note.Id
		data["title"] = change.Action.Note.Title
	case change.Action.Label != nil:
		data["label_id"] = change.Action.Label.Id
		data["value"] = change.Action.Label.Value
	default:
		data["note_id"] = change.Action.Id
	}

	evt := events.BaseEvent{Type: eventType, Data: data, OccurredAt: s.now()}

	// Publishing waits for a JetStream ack; keep it off the dispatch path.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), eventPublishTimeout)
		defer cancel()
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn(noteModule, "Failed to publish event", map[string]interface{}{"error": err, "type": eventType})
		}
	}()
}

// ToStateResponse renders a state for the client, expanding checklist notes
// into todo items.
func ToStateResponse(state notestate.AppState) *dto.StateResponse {
	res := &dto.StateResponse{
		Notes:    toNoteResponses(state.Notes.Items()),
		Archives: toNoteResponses(state.Archives.Items()),
		Labels:   state.Labels.Items(),
	}
	if state.EditableNote != nil {
		n := toNoteResponse(*state.EditableNote)
		res.EditableNote = &n
	}
	return res
}

func toNoteResponses(notes []notestate.Note) []dto.NoteResponse {
	out := make([]dto.NoteResponse, len(notes))
	for i, n := range notes {
		out[i] = toNoteResponse(n)
	}
	return out
}

func toNoteResponse(n notestate.Note) dto.NoteResponse {
	res := dto.NoteResponse{Note: n}
	if n.IsChecked {
		res.Todos = notestate.ParseChecklist(n.Content)
	}
	return res
}
