package events

const (
	NoteCreated    = "NOTE_CREATED"
	NoteDeleted    = "NOTE_DELETED"
	NoteArchived   = "NOTE_ARCHIVED"
	NoteUnarchived = "NOTE_UNARCHIVED"
	LabelCreated   = "LABEL_CREATED"
)
