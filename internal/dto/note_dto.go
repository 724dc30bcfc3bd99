package dto

import (
	"time"

	"keep-notes-be/internal/notestate"

	"github.com/google/uuid"
)

type CreateNoteRequest struct {
	Id        string   `json:"id" validate:"omitempty,uuid"`
	Title     string   `json:"title" validate:"max=255"`
	Content   string   `json:"content"`
	BgColor   string   `json:"bgColor" validate:"omitempty,notecolor"`
	IsChecked bool     `json:"isChecked"`
	Labels    []string `json:"labels"`
}

type DispatchActionRequest struct {
	Type     notestate.ActionType `json:"type" validate:"required"`
	NoteType notestate.NoteType   `json:"noteType" validate:"omitempty,notetype"`
	Id       string               `json:"id"`
	Note     *notestate.Note      `json:"note"`
	Label    *notestate.Label     `json:"label"`
	LabelId  string               `json:"labelId"`
	BgColor  string               `json:"bgColor" validate:"omitempty,notecolor"`
	Property notestate.Property   `json:"property"`
}

func (r *DispatchActionRequest) ToAction() notestate.Action {
	return notestate.Action{
		Type:     r.Type,
		NoteType: r.NoteType,
		Id:       r.Id,
		Note:     r.Note,
		Label:    r.Label,
		LabelId:  r.LabelId,
		BgColor:  r.BgColor,
		Property: r.Property,
	}
}

type ChangeNoteColorRequest struct {
	BgColor string `json:"bgColor" validate:"required,notecolor"`
}

type OpenEditableNoteRequest struct {
	Id string `json:"id" validate:"required"`
}

// EditBufferRequest changes fields of the note being edited. Nil fields are
// left alone.
type EditBufferRequest struct {
	Title   *string `json:"title" validate:"omitempty,max=255"`
	Content *string `json:"content"`
}

type CreateLabelRequest struct {
	Id    string `json:"id" validate:"omitempty,uuid"`
	Value string `json:"value" validate:"required,max=100"`
}

type NoteLabelRequest struct {
	LabelId string `json:"labelId" validate:"required"`
}

type NoteResponse struct {
	notestate.Note
	Todos []notestate.TodoItem `json:"todos,omitempty"`
}

type StateResponse struct {
	Notes        []NoteResponse    `json:"notes"`
	Archives     []NoteResponse    `json:"archives"`
	Labels       []notestate.Label `json:"labels"`
	EditableNote *NoteResponse     `json:"editableNote"`
}

type DispatchResponse struct {
	Outcome notestate.Outcome `json:"outcome"`
	State   *StateResponse    `json:"state"`
}

// PersistActionMessage is published after each applied transition and
// turned into document store writes by the consumer.
type PersistActionMessage struct {
	UserId     uuid.UUID            `json:"user_id"`
	Action     notestate.ActionType `json:"action"`
	NoteType   notestate.NoteType   `json:"note_type,omitempty"`
	From       notestate.NoteType   `json:"from,omitempty"`
	NoteId     string               `json:"note_id,omitempty"`
	Note       *notestate.Note      `json:"note,omitempty"`
	Label      *notestate.Label     `json:"label,omitempty"`
	Property   notestate.Property   `json:"property,omitempty"`
	Position   int64                `json:"position,omitempty"`
	OccurredAt time.Time            `json:"occurred_at"`
}
