package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"keep-notes-be/internal/dto"
	"keep-notes-be/internal/entity"
	"keep-notes-be/internal/mapper"
	"keep-notes-be/internal/notestate"
	"keep-notes-be/internal/pkg/logger"
	"keep-notes-be/internal/repository/contract"
	"keep-notes-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

const consumerModule = "PersistenceConsumer"

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService writes applied transitions to the document store. Writes
// are best effort: failures are logged and the message is acked, the
// in-memory state stays as it is.
type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	mapper     *mapper.NoteDocumentMapper
	logger     logger.ILogger
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		uowFactory: uowFactory,
		mapper:     mapper.NewNoteDocumentMapper(),
		logger:     log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	// Ack on receipt so the publisher is released while the writes run; the
	// loop in Consume still applies messages one at a time, in order.
	msg.Ack()

	var payload dto.PersistActionMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error(consumerModule, "Failed to unmarshal message", map[string]interface{}{"error": err, "message_id": msg.UUID})
		return
	}

	if err := cs.apply(ctx, &payload); err != nil {
		level := cs.logger.Error
		if errors.Is(err, contract.ErrDocumentNotFound) {
			level = cs.logger.Warn
		}
		level(consumerModule, "Failed to persist action", map[string]interface{}{
			"error":   err,
			"action":  payload.Action,
			"note_id": payload.NoteId,
			"user_id": payload.UserId,
		})
		return
	}

	cs.logger.Debug(consumerModule, "Persisted action", map[string]interface{}{
		"action":  payload.Action,
		"note_id": payload.NoteId,
		"user_id": payload.UserId,
	})
}

func (cs *consumerService) apply(ctx context.Context, p *dto.PersistActionMessage) error {
	uow := cs.uowFactory.NewUnitOfWork(ctx)
	docs := uow.DocumentRepository()
	collection := string(p.NoteType)

	if p.Note == nil && p.Action != notestate.ActionDeleteNote && p.Action != notestate.ActionAddLabel {
		return fmt.Errorf("action %s carries no note", p.Action)
	}

	switch p.Action {
	case notestate.ActionAddNote:
		doc, err := cs.document(p)
		if err != nil {
			return err
		}
		_, err = docs.Create(ctx, doc)
		return err

	case notestate.ActionDeleteNote:
		id, err := uuid.Parse(p.NoteId)
		if err != nil {
			return err
		}
		return docs.Delete(ctx, id, collection)

	case notestate.ActionUpdateNote:
		id, err := uuid.Parse(p.NoteId)
		if err != nil {
			return err
		}
		err = cs.updateFields(ctx, docs, id, collection, map[string]interface{}{
			contract.FieldTitle:     p.Note.Title,
			contract.FieldContent:   p.Note.Content,
			contract.FieldBgColor:   p.Note.BgColor,
			contract.FieldIsChecked: p.Note.IsChecked,
			contract.FieldLabels:    p.Note.Labels,
			contract.FieldPosition:  p.Position,
		})
		if !errors.Is(err, contract.ErrDocumentNotFound) {
			return err
		}
		doc, derr := cs.document(p)
		if derr != nil {
			return derr
		}
		_, err = docs.Create(ctx, doc)
		return err

	case notestate.ActionChangeNoteColor:
		id, err := uuid.Parse(p.NoteId)
		if err != nil {
			return err
		}
		return docs.Update(ctx, id, contract.FieldBgColor, p.Note.BgColor, collection)

	case notestate.ActionToggleNoteProperty:
		id, err := uuid.Parse(p.NoteId)
		if err != nil {
			return err
		}
		value, ok := p.Note.Flag(p.Property)
		if !ok {
			return fmt.Errorf("unknown property %q", p.Property)
		}
		return cs.updateFields(ctx, docs, id, collection, map[string]interface{}{
			string(p.Property):    value,
			contract.FieldContent: p.Note.Content,
		})

	case notestate.ActionArchiveNote, notestate.ActionUnarchiveNote:
		return cs.move(ctx, uow, p)

	case notestate.ActionAddLabel:
		if p.Label == nil {
			return fmt.Errorf("action %s carries no label", p.Action)
		}
		userLabel := &entity.Label{
			UserId:   p.UserId,
			Value:    p.Label.Value,
			Position: p.Position,
		}
		id, err := uuid.Parse(p.Label.Id)
		if err != nil {
			return err
		}
		userLabel.Id = id
		_, err = uow.LabelRepository().Create(ctx, userLabel)
		return err

	case notestate.ActionAddNoteLabel, notestate.ActionDeleteNoteLabel:
		id, err := uuid.Parse(p.NoteId)
		if err != nil {
			return err
		}
		return docs.Update(ctx, id, contract.FieldLabels, p.Note.Labels, collection)
	}

	return fmt.Errorf("action %s is not persisted", p.Action)
}

// move re-creates the document in the destination collection inside one
// transaction.
func (cs *consumerService) move(ctx context.Context, uow unitofwork.UnitOfWork, p *dto.PersistActionMessage) error {
	doc, err := cs.document(p)
	if err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	if err := uow.DocumentRepository().Delete(ctx, doc.Id, string(p.From)); err != nil {
		_ = uow.Rollback()
		return err
	}
	if _, err := uow.DocumentRepository().Create(ctx, doc); err != nil {
		_ = uow.Rollback()
		return err
	}
	return uow.Commit()
}

func (cs *consumerService) updateFields(ctx context.Context, docs contract.DocumentRepository, id uuid.UUID, collection string, fields map[string]interface{}) error {
	for field, value := range fields {
		if err := docs.Update(ctx, id, field, value, collection); err != nil {
			return err
		}
	}
	return nil
}

func (cs *consumerService) document(p *dto.PersistActionMessage) (*entity.NoteDocument, error) {
	if p.Note == nil {
		return nil, fmt.Errorf("action %s carries no note", p.Action)
	}
	return cs.mapper.FromNote(p.UserId, p.NoteType, *p.Note, p.Position)
}
