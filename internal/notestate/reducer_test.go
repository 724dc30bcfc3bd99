package notestate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func note(id, content string) Note {
	return Note{Id: id, Content: content, BgColor: DefaultColor, Labels: []string{}}
}

func stateWith(notes, archives []Note) AppState {
	s := NewAppState()
	s.Notes = NewCollection(notes...)
	s.Archives = NewCollection(archives...)
	return s
}

func TestAddNoteThenDeleteRestoresNotes(t *testing.T) {
	start := stateWith([]Note{note("b", ""), note("c", "")}, nil)
	editable := note("b", "draft")
	start.EditableNote = &editable

	added, outcome := Reduce(start, AddNote(note("a", "hello")))
	require.Equal(t, Applied, outcome)
	assert.Equal(t, []string{"a", "b", "c"}, added.Notes.Ids())

	deleted, outcome := Reduce(added, DeleteNote(NoteTypeNotes, "a"))
	require.Equal(t, Applied, outcome)
	assert.Equal(t, start.Notes.Items(), deleted.Notes.Items())
	assert.Nil(t, deleted.EditableNote)
}

func TestDeleteNote(t *testing.T) {
	editable := note("x", "")
	start := stateWith([]Note{note("a", ""), note("x", "")}, nil)
	start.EditableNote = &editable

	t.Run("default clears editable for any id", func(t *testing.T) {
		next, outcome := Reduce(start, DeleteNote(NoteTypeNotes, "a"))
		assert.Equal(t, Applied, outcome)
		assert.Nil(t, next.EditableNote)
		assert.Equal(t, []string{"x"}, next.Notes.Ids())
	})

	t.Run("strict keeps editable for other ids", func(t *testing.T) {
		r := Reducer{ClearEditableOnlyOnMatch: true}
		next, _ := r.Reduce(start, DeleteNote(NoteTypeNotes, "a"))
		require.NotNil(t, next.EditableNote)
		assert.Equal(t, "x", next.EditableNote.Id)

		next, _ = r.Reduce(start, DeleteNote(NoteTypeNotes, "x"))
		assert.Nil(t, next.EditableNote)
	})

	t.Run("miss keeps collection", func(t *testing.T) {
		next, outcome := Reduce(start, DeleteNote(NoteTypeNotes, "nope"))
		assert.Equal(t, Missed, outcome)
		assert.Equal(t, start.Notes.Ids(), next.Notes.Ids())
		assert.Nil(t, next.EditableNote)
	})

	t.Run("unknown note type", func(t *testing.T) {
		next, outcome := Reduce(start, DeleteNote("trash", "a"))
		assert.Equal(t, Rejected, outcome)
		assert.Equal(t, start, next)
	})

	t.Run("input state untouched", func(t *testing.T) {
		Reduce(start, DeleteNote(NoteTypeNotes, "a"))
		assert.Equal(t, []string{"a", "x"}, start.Notes.Ids())
		assert.NotNil(t, start.EditableNote)
	})
}

func TestUpdateNoteCommitsEditBuffer(t *testing.T) {
	start := stateWith([]Note{note("a", "old")}, nil)
	edited := note("a", "new")
	start.EditableNote = &edited

	next, outcome := Reduce(start, UpdateNote(NoteTypeNotes))
	require.Equal(t, Applied, outcome)
	assert.Equal(t, []Note{note("a", "new")}, next.Notes.Items())
	assert.Nil(t, next.EditableNote)
}

func TestUpdateNoteMovesEntryToTail(t *testing.T) {
	start := stateWith([]Note{note("a", ""), note("b", ""), note("c", "")}, nil)
	edited := note("a", "changed")
	start.EditableNote = &edited

	next, _ := Reduce(start, UpdateNote(NoteTypeNotes))
	assert.Equal(t, []string{"b", "c", "a"}, next.Notes.Ids())
}

func TestUpdateNotePreconditions(t *testing.T) {
	start := stateWith([]Note{note("a", "")}, []Note{note("z", "")})

	_, outcome := Reduce(start, UpdateNote(NoteTypeNotes))
	assert.Equal(t, Missed, outcome)

	archived := note("z", "edit")
	start.EditableNote = &archived
	next, outcome := Reduce(start, UpdateNote(NoteTypeNotes))
	assert.Equal(t, Rejected, outcome)
	assert.NoError(t, Validate(next, false))

	next, outcome = Reduce(start, UpdateNote(NoteTypeArchives))
	assert.Equal(t, Applied, outcome)
	got, _ := next.Archives.Get("z")
	assert.Equal(t, "edit", got.Content)
}

func TestChangeNoteColor(t *testing.T) {
	start := stateWith([]Note{note("a", "x"), note("b", "y")}, nil)

	next, outcome := Reduce(start, ChangeNoteColor(NoteTypeNotes, "b", "#f28b82"))
	require.Equal(t, Applied, outcome)
	b, _ := next.Notes.Get("b")
	assert.Equal(t, "#f28b82", b.BgColor)
	assert.Equal(t, "y", b.Content)
	a, _ := next.Notes.Get("a")
	assert.Equal(t, DefaultColor, a.BgColor)

	_, outcome = Reduce(start, ChangeNoteColor(NoteTypeNotes, "zz", "#f28b82"))
	assert.Equal(t, Missed, outcome)
}

func TestToggleNoteProperty(t *testing.T) {
	start := stateWith([]Note{note("a", "x")}, nil)

	next, outcome := Reduce(start, ToggleNoteProperty(NoteTypeNotes, "a", PropertyIsChecked))
	require.Equal(t, Applied, outcome)
	a, _ := next.Notes.Get("a")
	assert.True(t, a.IsChecked)
	assert.Equal(t, "x", a.Content)

	back, _ := Reduce(next, ToggleNoteProperty(NoteTypeNotes, "a", PropertyIsChecked))
	a, _ = back.Notes.Get("a")
	assert.False(t, a.IsChecked)
}

func TestToggleNotePropertyMergesEditBuffer(t *testing.T) {
	start := stateWith([]Note{note("a", "saved")}, nil)
	edited := note("a", "unsaved")
	start.EditableNote = &edited

	next, _ := Reduce(start, ToggleNoteProperty(NoteTypeNotes, "a", PropertyIsChecked))
	a, _ := next.Notes.Get("a")
	assert.True(t, a.IsChecked)
	assert.Equal(t, "unsaved", a.Content)
	require.NotNil(t, next.EditableNote)
}

func TestToggleNotePropertyUnknown(t *testing.T) {
	start := stateWith([]Note{note("a", "")}, nil)

	_, outcome := Reduce(start, ToggleNoteProperty(NoteTypeNotes, "a", "isPinned"))
	assert.Equal(t, Rejected, outcome)

	_, outcome = Reduce(start, ToggleNoteProperty(NoteTypeArchives, "a", PropertyIsChecked))
	assert.Equal(t, Missed, outcome)
}

func TestEditableNote(t *testing.T) {
	start := stateWith([]Note{note("a", "v1")}, nil)

	snapshot := note("a", "v1")
	next, outcome := Reduce(start, GetEditableNote(snapshot))
	require.Equal(t, Applied, outcome)
	require.NotNil(t, next.EditableNote)

	next.EditableNote.Content = "mutated"
	stored, _ := next.Notes.Get("a")
	assert.Equal(t, "v1", stored.Content)

	cleared, outcome := Reduce(next, ClearEditableNote())
	assert.Equal(t, Applied, outcome)
	assert.Nil(t, cleared.EditableNote)

	_, outcome = Reduce(start, GetEditableNote(note("ghost", "")))
	assert.Equal(t, Missed, outcome)
}

func TestArchiveNote(t *testing.T) {
	start := stateWith([]Note{note("a", "")}, nil)

	next, outcome := Reduce(start, ArchiveNote("a"))
	require.Equal(t, Applied, outcome)
	assert.Equal(t, 0, next.Notes.Len())
	assert.Equal(t, []Note{note("a", "")}, next.Archives.Items())
}

func TestArchiveRoundTrip(t *testing.T) {
	start := stateWith([]Note{note("a", ""), note("b", "")}, nil)

	archived, _ := Reduce(start, ArchiveNote("a"))
	require.NoError(t, Validate(archived, false))
	assert.False(t, archived.Notes.Has("a"))
	assert.True(t, archived.Archives.Has("a"))

	restored, outcome := Reduce(archived, UnarchiveNote("a"))
	require.Equal(t, Applied, outcome)
	require.NoError(t, Validate(restored, false))
	assert.True(t, restored.Notes.Has("a"))
	assert.False(t, restored.Archives.Has("a"))
	assert.Equal(t, []string{"b", "a"}, restored.Notes.Ids())
}

func TestArchiveMissDoesNotInsertPlaceholder(t *testing.T) {
	start := stateWith([]Note{note("a", "")}, nil)

	next, outcome := Reduce(start, ArchiveNote("ghost"))
	assert.Equal(t, Missed, outcome)
	assert.Equal(t, 0, next.Archives.Len())
	assert.Equal(t, 1, next.Notes.Len())

	next, outcome = Reduce(start, UnarchiveNote("a"))
	assert.Equal(t, Missed, outcome)
	assert.Equal(t, []string{"a"}, next.Notes.Ids())
}

func TestAddLabelPrepends(t *testing.T) {
	s := NewAppState()
	s, _ = Reduce(s, AddLabel(Label{Id: "l1", Value: "work"}))
	s, _ = Reduce(s, AddLabel(Label{Id: "l2", Value: "home"}))
	assert.Equal(t, []string{"l2", "l1"}, s.Labels.Ids())

	_, outcome := Reduce(s, AddLabel(Label{Value: "no id"}))
	assert.Equal(t, Rejected, outcome)
}

func TestAddNoteLabelIsIdempotent(t *testing.T) {
	start := stateWith([]Note{note("a", "")}, nil)

	once, _ := Reduce(start, AddNoteLabel(NoteTypeNotes, "a", "work"))
	twice, outcome := Reduce(once, AddNoteLabel(NoteTypeNotes, "a", "work"))
	assert.Equal(t, Applied, outcome)

	a1, _ := once.Notes.Get("a")
	a2, _ := twice.Notes.Get("a")
	assert.Equal(t, []string{"work"}, a1.Labels)
	assert.Equal(t, a1.Labels, a2.Labels)

	orig, _ := start.Notes.Get("a")
	assert.Empty(t, orig.Labels)
}

func TestAddNoteLabelRequireKnownLabels(t *testing.T) {
	start := stateWith([]Note{note("a", "")}, nil)
	r := Reducer{RequireKnownLabels: true}

	_, outcome := r.Reduce(start, AddNoteLabel(NoteTypeNotes, "a", "work"))
	assert.Equal(t, Rejected, outcome)

	withLabel, _ := r.Reduce(start, AddLabel(Label{Id: "work", Value: "Work"}))
	next, outcome := r.Reduce(withLabel, AddNoteLabel(NoteTypeNotes, "a", "work"))
	assert.Equal(t, Applied, outcome)
	assert.NoError(t, Validate(next, true))
}

func TestDeleteNoteLabel(t *testing.T) {
	n := note("a", "")
	n.Labels = []string{"work", "home"}
	start := stateWith([]Note{n}, nil)

	next, outcome := Reduce(start, DeleteNoteLabel(NoteTypeNotes, "a", "work"))
	require.Equal(t, Applied, outcome)
	a, _ := next.Notes.Get("a")
	assert.Equal(t, []string{"home"}, a.Labels)

	same, outcome := Reduce(next, DeleteNoteLabel(NoteTypeNotes, "a", "absent"))
	assert.Equal(t, Applied, outcome)
	a, _ = same.Notes.Get("a")
	assert.Equal(t, []string{"home"}, a.Labels)

	orig, _ := start.Notes.Get("a")
	assert.Equal(t, []string{"work", "home"}, orig.Labels)
}

func TestUnknownActionReturnsSameState(t *testing.T) {
	start := stateWith([]Note{note("a", "")}, nil)

	next, outcome := Reduce(start, Action{Type: "RENAME_EVERYTHING"})
	assert.Equal(t, Ignored, outcome)
	assert.Equal(t, start, next)
}

func TestAddNoteRejectsArchivedId(t *testing.T) {
	start := stateWith(nil, []Note{note("a", "")})

	next, outcome := Reduce(start, AddNote(note("a", "")))
	assert.Equal(t, Rejected, outcome)
	assert.NoError(t, Validate(next, false))
}

func TestAddNoteRejectsExistingId(t *testing.T) {
	start := stateWith([]Note{note("a", "first")}, nil)

	next, outcome := Reduce(start, AddNote(note("a", "second")))
	assert.Equal(t, Rejected, outcome)
	assert.Equal(t, start, next)
	assert.NoError(t, Validate(next, false))
}

func TestAddNoteRequireKnownLabels(t *testing.T) {
	r := Reducer{RequireKnownLabels: true}
	start := stateWith(nil, nil)
	n := note("a", "")
	n.Labels = []string{"ghost"}

	next, outcome := r.Reduce(start, AddNote(n))
	assert.Equal(t, Rejected, outcome)
	assert.Equal(t, 0, next.Notes.Len())

	withLabel, _ := r.Reduce(start, AddLabel(Label{Id: "ghost", Value: "Ghost"}))
	next, outcome = r.Reduce(withLabel, AddNote(n))
	assert.Equal(t, Applied, outcome)
	assert.NoError(t, Validate(next, true))
}

func TestNoteLabelsAreASet(t *testing.T) {
	n := note("a", "")
	n.Labels = []string{"x", "y", "x"}

	added, outcome := Reduce(stateWith(nil, nil), AddNote(n))
	require.Equal(t, Applied, outcome)
	a, _ := added.Notes.Get("a")
	assert.Equal(t, []string{"x", "y"}, a.Labels)

	next, outcome := Reduce(added, DeleteNoteLabel(NoteTypeNotes, "a", "x"))
	require.Equal(t, Applied, outcome)
	a, _ = next.Notes.Get("a")
	assert.NotContains(t, a.Labels, "x")
	assert.Equal(t, []string{"y"}, a.Labels)
}

func TestDeleteNoteLabelRemovesEveryOccurrence(t *testing.T) {
	n := note("a", "")
	n.Labels = []string{"x", "home", "x"}
	start := stateWith([]Note{n}, nil)

	next, _ := Reduce(start, DeleteNoteLabel(NoteTypeNotes, "a", "x"))
	a, _ := next.Notes.Get("a")
	assert.Equal(t, []string{"home"}, a.Labels)

	orig, _ := start.Notes.Get("a")
	assert.Equal(t, []string{"x", "home", "x"}, orig.Labels)
}
