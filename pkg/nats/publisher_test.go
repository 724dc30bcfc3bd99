package nats

import (
	"testing"

	"keep-notes-be/pkg/events"

	"github.com/stretchr/testify/assert"
)

func TestSubject(t *testing.T) {
	assert.Equal(t, "events.NOTE_ARCHIVED", Subject(events.NoteArchived))
}
