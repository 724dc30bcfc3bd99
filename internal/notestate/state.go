package notestate

import "encoding/json"

type NoteType string

const (
	NoteTypeNotes    NoteType = "notes"
	NoteTypeArchives NoteType = "archives"
)

func (t NoteType) Valid() bool {
	return t == NoteTypeNotes || t == NoteTypeArchives
}

// Other returns the collection a note of this type would move to.
func (t NoteType) Other() NoteType {
	if t == NoteTypeArchives {
		return NoteTypeNotes
	}
	return NoteTypeArchives
}

// Property names a boolean field of Note that can be toggled.
type Property string

const (
	PropertyIsChecked Property = "isChecked"
)

type Note struct {
	Id        string   `json:"id"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	BgColor   string   `json:"bgColor"`
	IsChecked bool     `json:"isChecked"`
	Labels    []string `json:"labels"`
}

func (n Note) Key() string {
	return n.Id
}

// Clone returns a copy that shares no memory with n.
func (n Note) Clone() Note {
	out := n
	out.Labels = make([]string, len(n.Labels))
	copy(out.Labels, n.Labels)
	return out
}

func (n Note) HasLabel(label string) bool {
	for _, l := range n.Labels {
		if l == label {
			return true
		}
	}
	return false
}

// Flag reads a toggleable property. ok is false for unknown properties.
func (n Note) Flag(p Property) (value bool, ok bool) {
	switch p {
	case PropertyIsChecked:
		return n.IsChecked, true
	}
	return false, false
}

func (n Note) withFlag(p Property, value bool) Note {
	out := n.Clone()
	switch p {
	case PropertyIsChecked:
		out.IsChecked = value
	}
	return out
}

type Label struct {
	Id    string `json:"id"`
	Value string `json:"value"`
}

func (l Label) Key() string {
	return l.Id
}

// AppState is replaced wholesale on every transition.
type AppState struct {
	Notes        Collection[Note]
	Archives     Collection[Note]
	Labels       Collection[Label]
	EditableNote *Note
}

func NewAppState() AppState {
	return AppState{
		Notes:    NewCollection[Note](),
		Archives: NewCollection[Note](),
		Labels:   NewCollection[Label](),
	}
}

// Collection returns the notes held under t.
func (s AppState) Collection(t NoteType) (Collection[Note], bool) {
	switch t {
	case NoteTypeNotes:
		return s.Notes, true
	case NoteTypeArchives:
		return s.Archives, true
	}
	return Collection[Note]{}, false
}

func (s AppState) withCollection(t NoteType, c Collection[Note]) AppState {
	next := s
	if t == NoteTypeArchives {
		next.Archives = c
	} else {
		next.Notes = c
	}
	return next
}

func (s AppState) withEditable(n *Note) AppState {
	next := s
	if n == nil {
		next.EditableNote = nil
		return next
	}
	snapshot := n.Clone()
	next.EditableNote = &snapshot
	return next
}

// Locate finds a note in either collection.
func (s AppState) Locate(id string) (Note, NoteType, bool) {
	if n, ok := s.Notes.Get(id); ok {
		return n, NoteTypeNotes, true
	}
	if n, ok := s.Archives.Get(id); ok {
		return n, NoteTypeArchives, true
	}
	return Note{}, "", false
}

type appStateJSON struct {
	Notes        Collection[Note]  `json:"notes"`
	Archives     Collection[Note]  `json:"archives"`
	Labels       Collection[Label] `json:"labels"`
	EditableNote *Note             `json:"editableNote"`
}

func (s AppState) MarshalJSON() ([]byte, error) {
	return json.Marshal(appStateJSON(s))
}

func (s *AppState) UnmarshalJSON(data []byte) error {
	var raw appStateJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = AppState(raw)
	return nil
}
