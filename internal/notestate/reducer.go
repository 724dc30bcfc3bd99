package notestate

// Reducer computes the next AppState for an Action. The zero value follows
// the default client behavior; the flags opt into stricter rules.
type Reducer struct {
	// ClearEditableOnlyOnMatch makes DELETE_NOTE clear the editable note
	// only when it is the note being deleted.
	ClearEditableOnlyOnMatch bool

	// RequireKnownLabels rejects ADD_NOTE and ADD_NOTE_LABEL carrying label
	// ids that are not in the global label collection.
	RequireKnownLabels bool
}

// Reduce applies action to state with the default Reducer.
func Reduce(state AppState, action Action) (AppState, Outcome) {
	return Reducer{}.Reduce(state, action)
}

func (r Reducer) Reduce(state AppState, action Action) (AppState, Outcome) {
	switch action.Type {
	case ActionAddNote:
		return r.addNote(state, action)
	case ActionDeleteNote:
		return r.deleteNote(state, action)
	case ActionUpdateNote:
		return updateNote(state, action)
	case ActionChangeNoteColor:
		return changeNoteColor(state, action)
	case ActionToggleNoteProperty:
		return toggleNoteProperty(state, action)
	case ActionGetEditableNote:
		return getEditableNote(state, action)
	case ActionClearEditableNote:
		return state.withEditable(nil), Applied
	case ActionArchiveNote:
		return moveNote(state, action.Id, NoteTypeNotes)
	case ActionUnarchiveNote:
		return moveNote(state, action.Id, NoteTypeArchives)
	case ActionAddLabel:
		return addLabel(state, action)
	case ActionAddNoteLabel:
		return r.addNoteLabel(state, action)
	case ActionDeleteNoteLabel:
		return deleteNoteLabel(state, action)
	default:
		return state, Ignored
	}
}

// addNote rejects ids already present in either collection.
func (r Reducer) addNote(state AppState, action Action) (AppState, Outcome) {
	if action.Note == nil || action.Note.Id == "" {
		return state, Rejected
	}
	if state.Notes.Has(action.Note.Id) || state.Archives.Has(action.Note.Id) {
		return state, Rejected
	}
	if r.RequireKnownLabels {
		for _, l := range action.Note.Labels {
			if !state.Labels.Has(l) {
				return state, Rejected
			}
		}
	}
	note := action.Note.Clone()
	note.Labels = UniqueLabels(note.Labels)
	next := state
	next.Notes = state.Notes.Prepend(note)
	return next, Applied
}

func (r Reducer) deleteNote(state AppState, action Action) (AppState, Outcome) {
	notes, ok := state.Collection(action.NoteType)
	if !ok {
		return state, Rejected
	}

	outcome := Missed
	if notes.Has(action.Id) {
		outcome = Applied
	}
	next := state.withCollection(action.NoteType, notes.Remove(action.Id))

	if !r.ClearEditableOnlyOnMatch || (state.EditableNote != nil && state.EditableNote.Id == action.Id) {
		next = next.withEditable(nil)
	}
	return next, outcome
}

// updateNote commits the edit buffer back into its collection. The committed
// note moves to the tail.
func updateNote(state AppState, action Action) (AppState, Outcome) {
	notes, ok := state.Collection(action.NoteType)
	if !ok {
		return state, Rejected
	}
	if state.EditableNote == nil {
		return state, Missed
	}
	edited := state.EditableNote.Clone()

	other, _ := state.Collection(action.NoteType.Other())
	if other.Has(edited.Id) {
		return state, Rejected
	}

	next := state.withCollection(action.NoteType, notes.Remove(edited.Id).Append(edited))
	return next.withEditable(nil), Applied
}

func changeNoteColor(state AppState, action Action) (AppState, Outcome) {
	return updateEntry(state, action.NoteType, action.Id, func(n Note) Note {
		out := n.Clone()
		out.BgColor = action.BgColor
		return out
	})
}

// toggleNoteProperty flips a boolean field. An open edit buffer's content is
// folded into the entry at the same time, so switching checklist mode keeps
// unsaved text.
func toggleNoteProperty(state AppState, action Action) (AppState, Outcome) {
	if _, ok := (Note{}).Flag(action.Property); !ok {
		return state, Rejected
	}
	return updateEntry(state, action.NoteType, action.Id, func(n Note) Note {
		current, _ := n.Flag(action.Property)
		out := n.withFlag(action.Property, !current)
		if state.EditableNote != nil {
			out.Content = state.EditableNote.Content
		}
		return out
	})
}

func getEditableNote(state AppState, action Action) (AppState, Outcome) {
	if action.Note == nil {
		return state, Rejected
	}
	if _, _, ok := state.Locate(action.Note.Id); !ok {
		return state, Missed
	}
	return state.withEditable(action.Note), Applied
}

// moveNote moves the note with id out of from and appends it to the other
// collection.
func moveNote(state AppState, id string, from NoteType) (AppState, Outcome) {
	src, _ := state.Collection(from)
	dst, _ := state.Collection(from.Other())

	note, ok := src.Get(id)
	if !ok {
		next := state.withCollection(from, src.clone())
		return next.withCollection(from.Other(), dst.clone()), Missed
	}

	next := state.withCollection(from, src.Remove(id))
	return next.withCollection(from.Other(), dst.Append(note.Clone())), Applied
}

func addLabel(state AppState, action Action) (AppState, Outcome) {
	if action.Label == nil || action.Label.Id == "" {
		return state, Rejected
	}
	next := state
	next.Labels = state.Labels.Prepend(*action.Label)
	return next, Applied
}

func (r Reducer) addNoteLabel(state AppState, action Action) (AppState, Outcome) {
	if action.LabelId == "" {
		return state, Rejected
	}
	if r.RequireKnownLabels && !state.Labels.Has(action.LabelId) {
		return state, Rejected
	}
	return updateEntry(state, action.NoteType, action.Id, func(n Note) Note {
		out := n.Clone()
		if !out.HasLabel(action.LabelId) {
			out.Labels = append(out.Labels, action.LabelId)
		}
		return out
	})
}

func deleteNoteLabel(state AppState, action Action) (AppState, Outcome) {
	return updateEntry(state, action.NoteType, action.Id, func(n Note) Note {
		out := n.Clone()
		kept := out.Labels[:0]
		for _, l := range out.Labels {
			if l != action.LabelId {
				kept = append(kept, l)
			}
		}
		out.Labels = kept
		return out
	})
}

// updateEntry rewrites one note in place. A missing id still rebuilds the
// container.
func updateEntry(state AppState, noteType NoteType, id string, fn func(Note) Note) (AppState, Outcome) {
	notes, ok := state.Collection(noteType)
	if !ok {
		return state, Rejected
	}
	note, found := notes.Get(id)
	if !found {
		return state.withCollection(noteType, notes.clone()), Missed
	}
	updated, _ := notes.Replace(fn(note))
	return state.withCollection(noteType, updated), Applied
}

// UniqueLabels drops repeated label ids, keeping first occurrences in order.
func UniqueLabels(labels []string) []string {
	if labels == nil {
		return nil
	}
	seen := make(map[string]struct{}, len(labels))
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	return out
}
