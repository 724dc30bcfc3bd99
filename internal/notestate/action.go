package notestate

type ActionType string

const (
	ActionAddNote            ActionType = "ADD_NOTE"
	ActionDeleteNote         ActionType = "DELETE_NOTE"
	ActionUpdateNote         ActionType = "UPDATE_NOTE"
	ActionChangeNoteColor    ActionType = "CHANGE_NOTE_COLOR"
	ActionToggleNoteProperty ActionType = "TOGGLE_NOTE_PROPERTY"
	ActionGetEditableNote    ActionType = "GET_EDITABLE_NOTE"
	ActionClearEditableNote  ActionType = "CLEAR_EDITABLE_NOTE"
	ActionArchiveNote        ActionType = "ARCHIVE_NOTE"
	ActionUnarchiveNote      ActionType = "UNARCHIVE_NOTE"
	ActionAddLabel           ActionType = "ADD_LABEL"
	ActionAddNoteLabel       ActionType = "ADD_NOTE_LABEL"
	ActionDeleteNoteLabel    ActionType = "DELETE_NOTE_LABEL"
)

var actionTypes = map[ActionType]struct{}{
	ActionAddNote:            {},
	ActionDeleteNote:         {},
	ActionUpdateNote:         {},
	ActionChangeNoteColor:    {},
	ActionToggleNoteProperty: {},
	ActionGetEditableNote:    {},
	ActionClearEditableNote:  {},
	ActionArchiveNote:        {},
	ActionUnarchiveNote:      {},
	ActionAddLabel:           {},
	ActionAddNoteLabel:       {},
	ActionDeleteNoteLabel:    {},
}

func (t ActionType) Known() bool {
	_, ok := actionTypes[t]
	return ok
}

// Action is a tagged record. Only the fields relevant to Type are read:
//
//	ADD_NOTE, GET_EDITABLE_NOTE        Note
//	DELETE_NOTE                        NoteType, Id
//	UPDATE_NOTE                        NoteType
//	CHANGE_NOTE_COLOR                  NoteType, Id, BgColor
//	TOGGLE_NOTE_PROPERTY               NoteType, Id, Property
//	ARCHIVE_NOTE, UNARCHIVE_NOTE       Id
//	ADD_LABEL                          Label
//	ADD_NOTE_LABEL, DELETE_NOTE_LABEL  NoteType, Id, LabelId
type Action struct {
	Type     ActionType `json:"type"`
	NoteType NoteType   `json:"noteType,omitempty"`
	Id       string     `json:"id,omitempty"`
	Note     *Note      `json:"note,omitempty"`
	Label    *Label     `json:"label,omitempty"`
	LabelId  string     `json:"labelId,omitempty"`
	BgColor  string     `json:"bgColor,omitempty"`
	Property Property   `json:"property,omitempty"`
}

func AddNote(note Note) Action {
	n := note.Clone()
	return Action{Type: ActionAddNote, Note: &n}
}

func DeleteNote(noteType NoteType, id string) Action {
	return Action{Type: ActionDeleteNote, NoteType: noteType, Id: id}
}

func UpdateNote(noteType NoteType) Action {
	return Action{Type: ActionUpdateNote, NoteType: noteType}
}

func ChangeNoteColor(noteType NoteType, id, bgColor string) Action {
	return Action{Type: ActionChangeNoteColor, NoteType: noteType, Id: id, BgColor: bgColor}
}

func ToggleNoteProperty(noteType NoteType, id string, property Property) Action {
	return Action{Type: ActionToggleNoteProperty, NoteType: noteType, Id: id, Property: property}
}

func GetEditableNote(note Note) Action {
	n := note.Clone()
	return Action{Type: ActionGetEditableNote, Note: &n}
}

func ClearEditableNote() Action {
	return Action{Type: ActionClearEditableNote}
}

func ArchiveNote(id string) Action {
	return Action{Type: ActionArchiveNote, Id: id}
}

func UnarchiveNote(id string) Action {
	return Action{Type: ActionUnarchiveNote, Id: id}
}

func AddLabel(label Label) Action {
	l := label
	return Action{Type: ActionAddLabel, Label: &l}
}

func AddNoteLabel(noteType NoteType, id, labelId string) Action {
	return Action{Type: ActionAddNoteLabel, NoteType: noteType, Id: id, LabelId: labelId}
}

func DeleteNoteLabel(noteType NoteType, id, labelId string) Action {
	return Action{Type: ActionDeleteNoteLabel, NoteType: noteType, Id: id, LabelId: labelId}
}
