package notestate

import (
	"errors"
	"fmt"
)

var (
	ErrNoteInBothCollections = errors.New("note is both active and archived")
	ErrDanglingEditableNote  = errors.New("editable note is not in any collection")
	ErrUnknownLabel          = errors.New("note references an unknown label")
	ErrUnknownNoteType       = errors.New("unknown note type")
)

// Validate checks the structural invariants of s. Label references are only
// checked when strictLabels is set.
func Validate(s AppState, strictLabels bool) error {
	var errs []error

	for _, id := range s.Notes.Ids() {
		if s.Archives.Has(id) {
			errs = append(errs, fmt.Errorf("%w: %s", ErrNoteInBothCollections, id))
		}
	}

	if s.EditableNote != nil {
		if _, _, ok := s.Locate(s.EditableNote.Id); !ok {
			errs = append(errs, fmt.Errorf("%w: %s", ErrDanglingEditableNote, s.EditableNote.Id))
		}
	}

	if strictLabels {
		for _, t := range []NoteType{NoteTypeNotes, NoteTypeArchives} {
			notes, _ := s.Collection(t)
			for _, n := range notes.Items() {
				for _, l := range n.Labels {
					if !s.Labels.Has(l) {
						errs = append(errs, fmt.Errorf("%w: note %s label %s", ErrUnknownLabel, n.Id, l))
					}
				}
			}
		}
	}

	return errors.Join(errs...)
}

// ParseNoteType maps a path or payload value to a NoteType.
func ParseNoteType(s string) (NoteType, error) {
	t := NoteType(s)
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownNoteType, s)
	}
	return t, nil
}
